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

// GormBalanceRowRepository implements BalanceRowRepository using GORM
type GormBalanceRowRepository struct {
	db *gorm.DB
}

// NewGormBalanceRowRepository creates a new GormBalanceRowRepository
func NewGormBalanceRowRepository(db *gorm.DB) *GormBalanceRowRepository {
	return &GormBalanceRowRepository{db: db}
}

// FindByProject lists rows for a project, year ascending
func (r *GormBalanceRowRepository) FindByProject(ctx context.Context, projectID uuid.UUID) ([]*forecast.BalanceRow, error) {
	var rowModels []*models.BalanceRowModel
	if err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("year ASC").
		Find(&rowModels).Error; err != nil {
		return nil, err
	}

	rows := make([]*forecast.BalanceRow, len(rowModels))
	for i, model := range rowModels {
		rows[i] = model.ToDomain()
	}
	return rows, nil
}

// FindByProjectAndYear resolves one row
func (r *GormBalanceRowRepository) FindByProjectAndYear(ctx context.Context, projectID uuid.UUID, year int) (*forecast.BalanceRow, error) {
	var model models.BalanceRowModel
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

// Save upserts a row keyed by (project_id, year)
func (r *GormBalanceRowRepository) Save(ctx context.Context, row *forecast.BalanceRow) error {
	model := models.BalanceRowModelFromDomain(row)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "project_id"}, {Name: "year"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"fixed_assets",
				"investments",
				"inventory",
				"receivables",
				"other_short_term_assets",
				"cash",
				"equity",
				"equity_contribution",
				"dividend",
				"long_debt",
				"short_debt",
				"payables",
				"other_short_term_liabilities",
				"depreciation_pct",
				"interest_rate_pct",
				"ratio_dio",
				"ratio_dso",
				"ratio_dpo",
				"ratio_oca_pct",
				"ratio_ocl_pct",
				"updated_at",
			}),
		}).
		Create(model).Error
}

// DeleteByProject removes all rows of a project
func (r *GormBalanceRowRepository) DeleteByProject(ctx context.Context, projectID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Delete(&models.BalanceRowModel{}).Error
}

// Ensure GormBalanceRowRepository implements BalanceRowRepository
var _ forecast.BalanceRowRepository = (*GormBalanceRowRepository)(nil)
