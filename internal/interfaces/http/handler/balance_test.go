package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	forecastapp "github.com/astris/backend/internal/application/forecast"
	"github.com/astris/backend/internal/domain/forecast"
	"github.com/astris/backend/internal/domain/shared"
	"github.com/astris/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupBalanceRouter(userID uuid.UUID, projectRepo *MockProjectRepository, rowRepo *MockBalanceRowRepository, pnlRepo *MockPnlRowRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	service := forecastapp.NewBalanceService(projectRepo, rowRepo, pnlRepo, zap.NewNop())
	handler := NewBalanceHandler(service)

	r := gin.New()
	r.Use(authAs(userID))
	projects := r.Group("/api/v1/projects")
	{
		projects.GET("/:id/balance", handler.ListRows)
		projects.POST("/:id/balance", handler.CreateRow)
		projects.PUT("/:id/balance/:year/amount", handler.UpdateAmountField)
		projects.PUT("/:id/balance/:year/ratio", handler.UpdateRatioField)
		projects.DELETE("/:id/balance", handler.DeleteRows)
	}
	return r
}

func decodeBalanceRow(t *testing.T, resp dto.Response) BalanceRowResponse {
	t.Helper()
	raw, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var row BalanceRowResponse
	require.NoError(t, json.Unmarshal(raw, &row))
	return row
}

func TestBalanceHandler_CreateRow_DerivesFromRatios(t *testing.T) {
	userID := uuid.New()
	projectRepo := new(MockProjectRepository)
	rowRepo := new(MockBalanceRowRepository)
	pnlRepo := new(MockPnlRowRepository)
	router := setupBalanceRouter(userID, projectRepo, rowRepo, pnlRepo)

	project := newTestProject(t, userID)
	pnlRow := forecast.NewPnlRow(project.ID, 2026, forecast.PnlRowInput{
		Revenue: decimal.NewFromInt(73000),
		Cogs:    decimal.NewFromInt(36500),
	})

	projectRepo.On("FindByIDAndUser", mock.Anything, project.ID, userID).Return(project, nil)
	rowRepo.On("FindByProjectAndYear", mock.Anything, project.ID, 2026).Return(nil, shared.ErrNotFound)
	pnlRepo.On("FindByProjectAndYear", mock.Anything, project.ID, 2026).Return(pnlRow, nil)
	rowRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

	w := performJSON(t, router, http.MethodPost, "/api/v1/projects/"+project.ID.String()+"/balance", CreateBalanceYearRequest{
		Year:     2026,
		RatioDso: 30,
		RatioDpo: 20,
	}, nil)

	require.Equal(t, http.StatusCreated, w.Code)
	row := decodeBalanceRow(t, decodeResponse(t, w))
	// 30/365 * 73000 = 6000, 20/365 * 36500 = 2000
	assert.True(t, row.Receivables.Equal(decimal.NewFromInt(6000)), row.Receivables.String())
	assert.True(t, row.Payables.Equal(decimal.NewFromInt(2000)), row.Payables.String())
	assert.Equal(t, forecast.DefaultDepreciationPct, row.DepreciationPct)
	assert.Equal(t, forecast.DefaultInterestRatePct, row.InterestRatePct)
}

func TestBalanceHandler_CreateRow_KeepsEnteredAmountsWithoutRatios(t *testing.T) {
	userID := uuid.New()
	projectRepo := new(MockProjectRepository)
	rowRepo := new(MockBalanceRowRepository)
	pnlRepo := new(MockPnlRowRepository)
	router := setupBalanceRouter(userID, projectRepo, rowRepo, pnlRepo)

	project := newTestProject(t, userID)
	projectRepo.On("FindByIDAndUser", mock.Anything, project.ID, userID).Return(project, nil)
	rowRepo.On("FindByProjectAndYear", mock.Anything, project.ID, 2026).Return(nil, shared.ErrNotFound)
	rowRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

	w := performJSON(t, router, http.MethodPost, "/api/v1/projects/"+project.ID.String()+"/balance", CreateBalanceYearRequest{
		Year:      2026,
		Inventory: 15000,
		Cash:      40000,
	}, nil)

	require.Equal(t, http.StatusCreated, w.Code)
	row := decodeBalanceRow(t, decodeResponse(t, w))
	assert.True(t, row.Inventory.Equal(decimal.NewFromInt(15000)))
	assert.True(t, row.Cash.Equal(decimal.NewFromInt(40000)))
	pnlRepo.AssertNotCalled(t, "FindByProjectAndYear", mock.Anything, mock.Anything, mock.Anything)
}

func TestBalanceHandler_UpdateAmountField(t *testing.T) {
	userID := uuid.New()
	projectRepo := new(MockProjectRepository)
	rowRepo := new(MockBalanceRowRepository)
	pnlRepo := new(MockPnlRowRepository)
	router := setupBalanceRouter(userID, projectRepo, rowRepo, pnlRepo)

	project := newTestProject(t, userID)
	existing := forecast.NewBalanceRow(project.ID, 2026, forecast.BalanceRowInput{})
	projectRepo.On("FindByIDAndUser", mock.Anything, project.ID, userID).Return(project, nil)
	rowRepo.On("FindByProjectAndYear", mock.Anything, project.ID, 2026).Return(existing, nil)
	rowRepo.On("Save", mock.Anything, existing).Return(nil)

	w := performJSON(t, router, http.MethodPut, "/api/v1/projects/"+project.ID.String()+"/balance/2026/amount", UpdateBalanceFieldRequest{
		Field: "longDebt",
		Value: 250000,
	}, nil)

	require.Equal(t, http.StatusOK, w.Code)
	row := decodeBalanceRow(t, decodeResponse(t, w))
	assert.True(t, row.LongDebt.Equal(decimal.NewFromInt(250000)))
}

func TestBalanceHandler_UpdateAmountField_DerivedFieldRejected(t *testing.T) {
	userID := uuid.New()
	projectRepo := new(MockProjectRepository)
	rowRepo := new(MockBalanceRowRepository)
	router := setupBalanceRouter(userID, projectRepo, rowRepo, new(MockPnlRowRepository))

	project := newTestProject(t, userID)
	existing := forecast.NewBalanceRow(project.ID, 2026, forecast.BalanceRowInput{})
	projectRepo.On("FindByIDAndUser", mock.Anything, project.ID, userID).Return(project, nil)
	rowRepo.On("FindByProjectAndYear", mock.Anything, project.ID, 2026).Return(existing, nil)

	w := performJSON(t, router, http.MethodPut, "/api/v1/projects/"+project.ID.String()+"/balance/2026/amount", UpdateBalanceFieldRequest{
		Field: "inventory",
		Value: 99999,
	}, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
	rowRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestBalanceHandler_UpdateRatioField_Rederives(t *testing.T) {
	userID := uuid.New()
	projectRepo := new(MockProjectRepository)
	rowRepo := new(MockBalanceRowRepository)
	pnlRepo := new(MockPnlRowRepository)
	router := setupBalanceRouter(userID, projectRepo, rowRepo, pnlRepo)

	project := newTestProject(t, userID)
	existing := forecast.NewBalanceRow(project.ID, 2026, forecast.BalanceRowInput{})
	pnlRow := forecast.NewPnlRow(project.ID, 2026, forecast.PnlRowInput{
		Revenue: decimal.NewFromInt(73000),
	})

	projectRepo.On("FindByIDAndUser", mock.Anything, project.ID, userID).Return(project, nil)
	rowRepo.On("FindByProjectAndYear", mock.Anything, project.ID, 2026).Return(existing, nil)
	pnlRepo.On("FindByProjectAndYear", mock.Anything, project.ID, 2026).Return(pnlRow, nil)
	rowRepo.On("Save", mock.Anything, existing).Return(nil)

	w := performJSON(t, router, http.MethodPut, "/api/v1/projects/"+project.ID.String()+"/balance/2026/ratio", UpdateBalanceRatioRequest{
		Field: "ratioDso",
		Value: 30,
	}, nil)

	require.Equal(t, http.StatusOK, w.Code)
	row := decodeBalanceRow(t, decodeResponse(t, w))
	assert.Equal(t, 30.0, row.RatioDso)
	assert.True(t, row.Receivables.Equal(decimal.NewFromInt(6000)), row.Receivables.String())
}

func TestBalanceHandler_UpdateRatioField_RowMissing(t *testing.T) {
	userID := uuid.New()
	projectRepo := new(MockProjectRepository)
	rowRepo := new(MockBalanceRowRepository)
	router := setupBalanceRouter(userID, projectRepo, rowRepo, new(MockPnlRowRepository))

	project := newTestProject(t, userID)
	projectRepo.On("FindByIDAndUser", mock.Anything, project.ID, userID).Return(project, nil)
	rowRepo.On("FindByProjectAndYear", mock.Anything, project.ID, 2026).Return(nil, shared.ErrNotFound)

	w := performJSON(t, router, http.MethodPut, "/api/v1/projects/"+project.ID.String()+"/balance/2026/ratio", UpdateBalanceRatioRequest{
		Field: "ratioDso",
		Value: 30,
	}, nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeNotFound, resp.Error.Code)
}

func TestBalanceHandler_ListRows_ForeignProject(t *testing.T) {
	userID := uuid.New()
	projectRepo := new(MockProjectRepository)
	router := setupBalanceRouter(userID, projectRepo, new(MockBalanceRowRepository), new(MockPnlRowRepository))

	projectID := uuid.New()
	projectRepo.On("FindByIDAndUser", mock.Anything, projectID, userID).Return(nil, shared.ErrNotFound)

	w := performJSON(t, router, http.MethodGet, "/api/v1/projects/"+projectID.String()+"/balance", nil, nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBalanceHandler_DeleteRows(t *testing.T) {
	userID := uuid.New()
	projectRepo := new(MockProjectRepository)
	rowRepo := new(MockBalanceRowRepository)
	router := setupBalanceRouter(userID, projectRepo, rowRepo, new(MockPnlRowRepository))

	project := newTestProject(t, userID)
	projectRepo.On("FindByIDAndUser", mock.Anything, project.ID, userID).Return(project, nil)
	rowRepo.On("DeleteByProject", mock.Anything, project.ID).Return(nil)

	w := performJSON(t, router, http.MethodDelete, "/api/v1/projects/"+project.ID.String()+"/balance", nil, nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
	rowRepo.AssertExpectations(t)
}
