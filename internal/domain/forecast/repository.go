package forecast

import (
	"context"

	"github.com/google/uuid"
)

// ProjectRepository defines persistence operations for projects. Every
// lookup that takes a userID filters by owner in the query itself so a
// miss is indistinguishable from a foreign project.
type ProjectRepository interface {
	// FindByIDAndUser resolves a project owned by the user,
	// shared.ErrNotFound otherwise.
	FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*Project, error)

	// FindByUser lists the user's projects, newest first.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*Project, error)

	// CountByUser returns the user's live project count.
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)

	// CreateWithSeedRow persists the project and its seed P&L row in
	// one transaction; neither survives if the other fails.
	CreateWithSeedRow(ctx context.Context, project *Project, seed *PnlRow) error

	// Save persists project changes.
	Save(ctx context.Context, project *Project) error

	// Delete removes the project and cascades to its rows.
	Delete(ctx context.Context, id uuid.UUID) error
}

// PnlRowRepository persists P&L forecast years.
type PnlRowRepository interface {
	// FindByProject lists rows for a project, year ascending.
	FindByProject(ctx context.Context, projectID uuid.UUID) ([]*PnlRow, error)

	// FindByProjectAndYear resolves one row, shared.ErrNotFound on a miss.
	FindByProjectAndYear(ctx context.Context, projectID uuid.UUID, year int) (*PnlRow, error)

	// FindByIDForUser resolves a row by its own ID joined through the
	// owning project, so foreign rows are simply not found.
	FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*PnlRow, error)

	// Save upserts a row keyed by (projectID, year).
	Save(ctx context.Context, row *PnlRow) error

	// DeleteByProject removes all rows of a project.
	DeleteByProject(ctx context.Context, projectID uuid.UUID) error
}

// BalanceRowRepository persists balance-sheet forecast years.
type BalanceRowRepository interface {
	// FindByProject lists rows for a project, year ascending.
	FindByProject(ctx context.Context, projectID uuid.UUID) ([]*BalanceRow, error)

	// FindByProjectAndYear resolves one row, shared.ErrNotFound on a miss.
	FindByProjectAndYear(ctx context.Context, projectID uuid.UUID, year int) (*BalanceRow, error)

	// Save upserts a row keyed by (projectID, year).
	Save(ctx context.Context, row *BalanceRow) error

	// DeleteByProject removes all rows of a project.
	DeleteByProject(ctx context.Context, projectID uuid.UUID) error
}
