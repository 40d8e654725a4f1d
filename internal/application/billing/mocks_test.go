package billing

import (
	"context"

	"github.com/astris/backend/internal/domain/billing"
	"github.com/astris/backend/internal/domain/forecast"
	infrabilling "github.com/astris/backend/internal/infrastructure/billing"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockBillingProfileRepository is a mock implementation of billing.BillingProfileRepository
type MockBillingProfileRepository struct {
	mock.Mock
}

func (m *MockBillingProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*billing.BillingProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.BillingProfile), args.Error(1)
}

func (m *MockBillingProfileRepository) FindByStripeCustomerID(ctx context.Context, customerID string) (*billing.BillingProfile, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.BillingProfile), args.Error(1)
}

func (m *MockBillingProfileRepository) Save(ctx context.Context, profile *billing.BillingProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

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

// MockPaymentGateway is a mock implementation of PaymentGateway
type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) EnsureCustomer(ctx context.Context, userID uuid.UUID, email, existingID string) (string, error) {
	args := m.Called(ctx, userID, email, existingID)
	return args.String(0), args.Error(1)
}

func (m *MockPaymentGateway) CreateCheckoutSession(ctx context.Context, input infrabilling.CheckoutSessionInput) (string, error) {
	args := m.Called(ctx, input)
	return args.String(0), args.Error(1)
}

func (m *MockPaymentGateway) CreatePortalSession(ctx context.Context, customerID string) (string, error) {
	args := m.Called(ctx, customerID)
	return args.String(0), args.Error(1)
}

func (m *MockPaymentGateway) RetrieveSubscription(ctx context.Context, subscriptionID string) (billing.SubscriptionSnapshot, error) {
	args := m.Called(ctx, subscriptionID)
	return args.Get(0).(billing.SubscriptionSnapshot), args.Error(1)
}
