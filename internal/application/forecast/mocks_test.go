package forecast

import (
	"context"

	"github.com/astris/backend/internal/domain/forecast"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockProjectRepository is a mock implementation of forecast.ProjectRepository
type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*forecast.Project, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*forecast.Project), args.Error(1)
}

func (m *MockProjectRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*forecast.Project, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]*forecast.Project), args.Error(1)
}

func (m *MockProjectRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProjectRepository) CreateWithSeedRow(ctx context.Context, project *forecast.Project, seed *forecast.PnlRow) error {
	args := m.Called(ctx, project, seed)
	return args.Error(0)
}

func (m *MockProjectRepository) Save(ctx context.Context, project *forecast.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPnlRowRepository is a mock implementation of forecast.PnlRowRepository
type MockPnlRowRepository struct {
	mock.Mock
}

func (m *MockPnlRowRepository) FindByProject(ctx context.Context, projectID uuid.UUID) ([]*forecast.PnlRow, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).([]*forecast.PnlRow), args.Error(1)
}

func (m *MockPnlRowRepository) FindByProjectAndYear(ctx context.Context, projectID uuid.UUID, year int) (*forecast.PnlRow, error) {
	args := m.Called(ctx, projectID, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*forecast.PnlRow), args.Error(1)
}

func (m *MockPnlRowRepository) FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*forecast.PnlRow, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*forecast.PnlRow), args.Error(1)
}

func (m *MockPnlRowRepository) Save(ctx context.Context, row *forecast.PnlRow) error {
	args := m.Called(ctx, row)
	return args.Error(0)
}

func (m *MockPnlRowRepository) DeleteByProject(ctx context.Context, projectID uuid.UUID) error {
	args := m.Called(ctx, projectID)
	return args.Error(0)
}

// MockBalanceRowRepository is a mock implementation of forecast.BalanceRowRepository
type MockBalanceRowRepository struct {
	mock.Mock
}

func (m *MockBalanceRowRepository) FindByProject(ctx context.Context, projectID uuid.UUID) ([]*forecast.BalanceRow, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).([]*forecast.BalanceRow), args.Error(1)
}

func (m *MockBalanceRowRepository) FindByProjectAndYear(ctx context.Context, projectID uuid.UUID, year int) (*forecast.BalanceRow, error) {
	args := m.Called(ctx, projectID, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*forecast.BalanceRow), args.Error(1)
}

func (m *MockBalanceRowRepository) Save(ctx context.Context, row *forecast.BalanceRow) error {
	args := m.Called(ctx, row)
	return args.Error(0)
}

func (m *MockBalanceRowRepository) DeleteByProject(ctx context.Context, projectID uuid.UUID) error {
	args := m.Called(ctx, projectID)
	return args.Error(0)
}

// MockEntitlementChecker is a mock implementation of EntitlementChecker
type MockEntitlementChecker struct {
	mock.Mock
}

func (m *MockEntitlementChecker) CheckCanCreateProject(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockEntitlementChecker) CheckForecastYears(ctx context.Context, userID uuid.UUID, years int) error {
	args := m.Called(ctx, userID, years)
	return args.Error(0)
}
