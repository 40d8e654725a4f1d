package models

import (
	"time"

	"github.com/astris/backend/internal/domain/identity"
	"github.com/google/uuid"
)

// UserModel is the persistence model for the User domain entity.
type UserModel struct {
	BaseModel
	Email         string `gorm:"type:varchar(200);not null;uniqueIndex"`
	PasswordHash  string `gorm:"type:varchar(255);not null"`
	Name          string `gorm:"type:varchar(200)"`
	EmailVerified bool   `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User entity.
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseEntity:    m.BaseModel.ToDomain(),
		Email:         m.Email,
		PasswordHash:  m.PasswordHash,
		Name:          m.Name,
		EmailVerified: m.EmailVerified,
	}
}

// UserModelFromDomain builds the persistence model from a domain User.
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{
		Email:         u.Email,
		PasswordHash:  u.PasswordHash,
		Name:          u.Name,
		EmailVerified: u.EmailVerified,
	}
	m.FromDomainBaseEntity(u.BaseEntity)
	return m
}

// AccountTokenModel is the persistence model for verification and
// password-reset tokens.
type AccountTokenModel struct {
	BaseModel
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Token     string    `gorm:"type:varchar(128);not null;uniqueIndex"`
	Purpose   string    `gorm:"type:varchar(30);not null;index"`
	ExpiresAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (AccountTokenModel) TableName() string {
	return "account_tokens"
}

// ToDomain converts the persistence model to a domain AccountToken.
func (m *AccountTokenModel) ToDomain() *identity.AccountToken {
	return &identity.AccountToken{
		BaseEntity: m.BaseModel.ToDomain(),
		UserID:     m.UserID,
		Token:      m.Token,
		Purpose:    identity.TokenPurpose(m.Purpose),
		ExpiresAt:  m.ExpiresAt,
	}
}

// AccountTokenModelFromDomain builds the persistence model from a
// domain AccountToken.
func AccountTokenModelFromDomain(t *identity.AccountToken) *AccountTokenModel {
	m := &AccountTokenModel{
		UserID:    t.UserID,
		Token:     t.Token,
		Purpose:   string(t.Purpose),
		ExpiresAt: t.ExpiresAt,
	}
	m.FromDomainBaseEntity(t.BaseEntity)
	return m
}
