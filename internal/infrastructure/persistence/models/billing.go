package models

import (
	"time"

	"github.com/astris/backend/internal/domain/billing"
	"github.com/google/uuid"
)

// BillingProfileModel is the persistence model for a user's billing
// state. One row per user; webhook reconciliation upserts on user_id.
type BillingProfileModel struct {
	BaseModel
	UserID               uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	StripeCustomerID     string     `gorm:"type:varchar(100);index"`
	StripeSubscriptionID string     `gorm:"type:varchar(100)"`
	PriceID              string     `gorm:"type:varchar(100)"`
	Status               string     `gorm:"type:varchar(20);not null;default:'CANCELED'"`
	Plan                 string     `gorm:"type:varchar(20);not null;default:'FREE'"`
	CurrentPeriodEnd     *time.Time
	CancelAtPeriodEnd    bool `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (BillingProfileModel) TableName() string {
	return "billing_profiles"
}

// ToDomain converts the persistence model to a domain BillingProfile.
func (m *BillingProfileModel) ToDomain() *billing.BillingProfile {
	return &billing.BillingProfile{
		BaseEntity:           m.BaseModel.ToDomain(),
		UserID:               m.UserID,
		StripeCustomerID:     m.StripeCustomerID,
		StripeSubscriptionID: m.StripeSubscriptionID,
		PriceID:              m.PriceID,
		Status:               billing.SubscriptionStatus(m.Status),
		Plan:                 billing.Plan(m.Plan),
		CurrentPeriodEnd:     m.CurrentPeriodEnd,
		CancelAtPeriodEnd:    m.CancelAtPeriodEnd,
	}
}

// BillingProfileModelFromDomain builds the persistence model from a
// domain BillingProfile.
func BillingProfileModelFromDomain(p *billing.BillingProfile) *BillingProfileModel {
	m := &BillingProfileModel{
		UserID:               p.UserID,
		StripeCustomerID:     p.StripeCustomerID,
		StripeSubscriptionID: p.StripeSubscriptionID,
		PriceID:              p.PriceID,
		Status:               string(p.Status),
		Plan:                 string(p.Plan),
		CurrentPeriodEnd:     p.CurrentPeriodEnd,
		CancelAtPeriodEnd:    p.CancelAtPeriodEnd,
	}
	m.FromDomainBaseEntity(p.BaseEntity)
	return m
}
