package persistence

import (
	"context"
	"errors"

	"github.com/astris/backend/internal/domain/forecast"
	"github.com/astris/backend/internal/domain/shared"
	"github.com/astris/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormProjectRepository implements ProjectRepository using GORM
type GormProjectRepository struct {
	db *gorm.DB
}

// NewGormProjectRepository creates a new GormProjectRepository
func NewGormProjectRepository(db *gorm.DB) *GormProjectRepository {
	return &GormProjectRepository{db: db}
}

// FindByIDAndUser resolves a project owned by the user. The owner is
// part of the lookup itself, so a foreign project is a plain miss.
func (r *GormProjectRepository) FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*forecast.Project, error) {
	var model models.ProjectModel
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByUser lists the user's projects, newest first
func (r *GormProjectRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*forecast.Project, error) {
	var projectModels []*models.ProjectModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&projectModels).Error; err != nil {
		return nil, err
	}

	projects := make([]*forecast.Project, len(projectModels))
	for i, model := range projectModels {
		projects[i] = model.ToDomain()
	}
	return projects, nil
}

// CountByUser returns the user's live project count
func (r *GormProjectRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ProjectModel{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CreateWithSeedRow persists the project and its seed P&L row in one
// transaction
func (r *GormProjectRepository) CreateWithSeedRow(ctx context.Context, project *forecast.Project, seed *forecast.PnlRow) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(models.ProjectModelFromDomain(project)).Error; err != nil {
			return err
		}
		if seed != nil {
			if err := tx.Create(models.PnlRowModelFromDomain(seed)).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Save persists project changes
func (r *GormProjectRepository) Save(ctx context.Context, project *forecast.Project) error {
	model := models.ProjectModelFromDomain(project)
	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes the project and cascades to its forecast rows
func (r *GormProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.PnlRowModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.BalanceRowModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.ProjectModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Ensure GormProjectRepository implements ProjectRepository
var _ forecast.ProjectRepository = (*GormProjectRepository)(nil)
