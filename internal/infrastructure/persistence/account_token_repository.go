package persistence

import (
	"context"
	"errors"

	"github.com/astris/backend/internal/domain/identity"
	"github.com/astris/backend/internal/domain/shared"
	"github.com/astris/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAccountTokenRepository implements AccountTokenRepository using GORM
type GormAccountTokenRepository struct {
	db *gorm.DB
}

// NewGormAccountTokenRepository creates a new GormAccountTokenRepository
func NewGormAccountTokenRepository(db *gorm.DB) *GormAccountTokenRepository {
	return &GormAccountTokenRepository{db: db}
}

// Save stores a token
func (r *GormAccountTokenRepository) Save(ctx context.Context, token *identity.AccountToken) error {
	model := models.AccountTokenModelFromDomain(token)
	return r.db.WithContext(ctx).Save(model).Error
}

// FindByToken finds a token by its opaque value and purpose
func (r *GormAccountTokenRepository) FindByToken(ctx context.Context, token string, purpose identity.TokenPurpose) (*identity.AccountToken, error) {
	if token == "" {
		return nil, shared.ErrNotFound
	}
	var model models.AccountTokenModel
	if err := r.db.WithContext(ctx).
		Where("token = ? AND purpose = ?", token, string(purpose)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// DeleteByUser removes all tokens of the given purpose for a user
func (r *GormAccountTokenRepository) DeleteByUser(ctx context.Context, userID uuid.UUID, purpose identity.TokenPurpose) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND purpose = ?", userID, string(purpose)).
		Delete(&models.AccountTokenModel{}).Error
}

// Delete removes a single token
func (r *GormAccountTokenRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.AccountTokenModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormAccountTokenRepository implements AccountTokenRepository
var _ identity.AccountTokenRepository = (*GormAccountTokenRepository)(nil)
