package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/media-planner-api/internal/api/handler/router"
	"github.com/vfg2006/media-planner-api/internal/domain"
	"github.com/vfg2006/media-planner-api/internal/usecases/planning"
	"github.com/vfg2006/media-planner-api/internal/usecases/planning/mocks"
	"github.com/vfg2006/media-planner-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

func decodeAPIError(t *testing.T, rec *httptest.ResponseRecorder) apiErrors.APIError {
	t.Helper()

	var apiErr apiErrors.APIError
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&apiErr))
	return apiErr
}

func TestCalculateMaxBudget(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name       string
		path       string
		body       string
		setup      func(planner *mocks.MockPlanner)
		wantStatus int
		wantCode   string
		validate   func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name: "Cálculo com sucesso na rota sem versão",
			path: "/campaign/calculate",
			body: `{"totalBudgetZ":10000,"adBudgets":[1000,2000,1500],"agencyFeePercentage":0.1,"thirdPartyFeePercentage":0.05,"fixedAgencyHoursCost":500}`,
			setup: func(planner *mocks.MockPlanner) {
				planner.EXPECT().
					CalculateMaxBudget(gomock.Any(), &domain.CalculateBudgetRequest{
						TotalBudgetZ:            10000,
						AdBudgets:               []float64{1000, 2000, 1500},
						AgencyFeePercentage:     0.1,
						ThirdPartyFeePercentage: 0.05,
						FixedAgencyHoursCost:    500,
					}).
					Return(&domain.CalculateBudgetResponse{
						MaxBudgetForTargetAd: 3760.75,
						TotalBudget:          9999.8625,
						RemainingBudget:      0.1375,
						Iterations:           3766,
					}, nil)
			},
			wantStatus: http.StatusOK,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp map[string]interface{}
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				assert.Equal(t, 3760.75, resp["maxBudgetForTargetAd"])
				assert.Equal(t, 9999.8625, resp["totalBudget"])
				assert.Equal(t, 0.1375, resp["remainingBudget"])
				assert.NotContains(t, resp, "calculationId")
			},
		},
		{
			name: "Cálculo com sucesso na rota versionada",
			path: "/v1/campaign/calculate",
			body: `{"totalBudgetZ":5000,"adBudgets":[2000]}`,
			setup: func(planner *mocks.MockPlanner) {
				planner.EXPECT().
					CalculateMaxBudget(gomock.Any(), gomock.Any()).
					Return(&domain.CalculateBudgetResponse{MaxBudgetForTargetAd: 2999, CalculationID: "abc123"}, nil)
			},
			wantStatus: http.StatusOK,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Contains(t, rec.Body.String(), `"calculationId":"abc123"`)
			},
		},
		{
			name:       "JSON malformado",
			path:       "/campaign/calculate",
			body:       `{"totalBudgetZ":`,
			setup:      func(planner *mocks.MockPlanner) {},
			wantStatus: http.StatusBadRequest,
			wantCode:   apiErrors.ErrInvalidFormat,
		},
		{
			name: "Valor negativo informa o campo",
			path: "/campaign/calculate",
			body: `{"totalBudgetZ":1000,"agencyFeePercentage":-0.1}`,
			setup: func(planner *mocks.MockPlanner) {
				planner.EXPECT().
					CalculateMaxBudget(gomock.Any(), gomock.Any()).
					Return(nil, planning.NewFieldError(planning.ErrNegativeValue, apiErrors.ErrNegativeValue,
						"agencyFeePercentage", "agencyFeePercentage não pode ser negativo"))
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   apiErrors.ErrNegativeValue,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				apiErr := decodeAPIError(t, rec)
				assert.Equal(t, map[string]interface{}{"field": "agencyFeePercentage"}, apiErr.Details)
			},
		},
		{
			name: "Sem convergência retorna erro genérico",
			path: "/campaign/calculate",
			body: `{"totalBudgetZ":1000}`,
			setup: func(planner *mocks.MockPlanner) {
				planner.EXPECT().
					CalculateMaxBudget(gomock.Any(), gomock.Any()).
					Return(nil, planning.NewPlanningError(planning.ErrNonConvergence, apiErrors.ErrNonConvergence,
						"sem convergência após 100000 iterações"))
			},
			wantStatus: http.StatusInternalServerError,
			wantCode:   apiErrors.ErrNonConvergence,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.NotContains(t, rec.Body.String(), "100000")
			},
		},
		{
			name: "Erro inesperado",
			path: "/campaign/calculate",
			body: `{"totalBudgetZ":1000}`,
			setup: func(planner *mocks.MockPlanner) {
				planner.EXPECT().
					CalculateMaxBudget(gomock.Any(), gomock.Any()).
					Return(nil, context.Canceled)
			},
			wantStatus: http.StatusInternalServerError,
			wantCode:   apiErrors.ErrInternalServer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			planner := mocks.NewMockPlanner(ctrl)
			tt.setup(planner)
			rt := router.New(router.WithRoutes(Campaign(planner)...))

			req := httptest.NewRequest(http.MethodPost, tt.path, strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			rt.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			if tt.wantCode != "" && tt.validate == nil {
				assert.Equal(t, tt.wantCode, decodeAPIError(t, rec).Code)
			}
			if tt.validate != nil {
				tt.validate(t, rec)
			}
		})
	}
}

func TestListCalculations(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name       string
		query      string
		setup      func(planner *mocks.MockPlanner)
		wantStatus int
		wantBody   string
		wantCode   string
	}{
		{
			name:  "Lista vazia",
			query: "",
			setup: func(planner *mocks.MockPlanner) {
				planner.EXPECT().ListCalculations(gomock.Any(), 0).Return(nil, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   "[]",
		},
		{
			name:  "Limite informado",
			query: "?limit=5",
			setup: func(planner *mocks.MockPlanner) {
				planner.EXPECT().
					ListCalculations(gomock.Any(), 5).
					Return([]*domain.Calculation{{ID: "abc", Outcome: domain.CalculationOutcomeConverged}}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "Limite inválido",
			query:      "?limit=abc",
			setup:      func(planner *mocks.MockPlanner) {},
			wantStatus: http.StatusBadRequest,
			wantCode:   apiErrors.ErrInvalidFormat,
		},
		{
			name:  "Histórico desabilitado",
			query: "",
			setup: func(planner *mocks.MockPlanner) {
				planner.EXPECT().
					ListCalculations(gomock.Any(), 0).
					Return(nil, planning.NewPlanningError(planning.ErrHistoryDisabled, apiErrors.ErrServiceDisabled, ""))
			},
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   apiErrors.ErrServiceDisabled,
		},
		{
			name:  "Erro no banco de dados",
			query: "",
			setup: func(planner *mocks.MockPlanner) {
				planner.EXPECT().
					ListCalculations(gomock.Any(), 0).
					Return(nil, planning.NewPlanningError(planning.ErrFetchCalculations, apiErrors.ErrDatabaseOperation, ""))
			},
			wantStatus: http.StatusInternalServerError,
			wantCode:   apiErrors.ErrDatabaseOperation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			planner := mocks.NewMockPlanner(ctrl)
			tt.setup(planner)
			rt := router.New(router.WithRoutes(Campaign(planner)...))

			req := httptest.NewRequest(http.MethodGet, "/v1/campaign/calculations"+tt.query, nil)
			rec := httptest.NewRecorder()
			rt.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			}
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decodeAPIError(t, rec).Code)
			}
		})
	}
}
