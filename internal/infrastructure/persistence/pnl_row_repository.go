package persistence

import (
	"context"
	"errors"

	"github.com/astris/backend/internal/domain/forecast"
	"github.com/astris/backend/internal/domain/shared"
	"github.com/astris/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPnlRowRepository implements PnlRowRepository using GORM
type GormPnlRowRepository struct {
	db *gorm.DB
}

// NewGormPnlRowRepository creates a new GormPnlRowRepository
func NewGormPnlRowRepository(db *gorm.DB) *GormPnlRowRepository {
	return &GormPnlRowRepository{db: db}
}

// FindByProject lists rows for a project, year ascending
func (r *GormPnlRowRepository) FindByProject(ctx context.Context, projectID uuid.UUID) ([]*forecast.PnlRow, error) {
	var rowModels []*models.PnlRowModel
	if err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("year ASC").
		Find(&rowModels).Error; err != nil {
		return nil, err
	}

	rows := make([]*forecast.PnlRow, len(rowModels))
	for i, model := range rowModels {
		rows[i] = model.ToDomain()
	}
	return rows, nil
}

// FindByProjectAndYear resolves one row
func (r *GormPnlRowRepository) FindByProjectAndYear(ctx context.Context, projectID uuid.UUID, year int) (*forecast.PnlRow, error) {
	var model models.PnlRowModel
	if err := r.db.WithContext(ctx).
		Where("project_id = ? AND year = ?", projectID, year).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForUser resolves a row by its own ID joined through the
// owning project, so rows of other users are plain misses.
func (r *GormPnlRowRepository) FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*forecast.PnlRow, error) {
	var model models.PnlRowModel
	if err := r.db.WithContext(ctx).
		Joins("JOIN projects ON pnl_rows.project_id = projects.id").
		Where("pnl_rows.id = ? AND projects.user_id = ?", id, userID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save upserts a row keyed by (project_id, year)
func (r *GormPnlRowRepository) Save(ctx context.Context, row *forecast.PnlRow) error {
	model := models.PnlRowModelFromDomain(row)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "project_id"}, {Name: "year"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"revenue",
				"cogs",
				"opex",
				"depreciation",
				"interest",
				"taxes",
				"revenue_growth_pct",
				"cogs_pct",
				"opex_pct",
				"tax_rate_pct",
				"updated_at",
			}),
		}).
		Create(model).Error
}

// DeleteByProject removes all rows of a project
func (r *GormPnlRowRepository) DeleteByProject(ctx context.Context, projectID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Delete(&models.PnlRowModel{}).Error
}

// Ensure GormPnlRowRepository implements PnlRowRepository
var _ forecast.PnlRowRepository = (*GormPnlRowRepository)(nil)
