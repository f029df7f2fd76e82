package planning

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/media-planner-api/infrastructure/repository/mocks"
	"github.com/vfg2006/media-planner-api/internal/config"
	"github.com/vfg2006/media-planner-api/internal/domain"
	"github.com/vfg2006/media-planner-api/pkg/apiErrors"
	"github.com/vfg2006/media-planner-api/pkg/metrics"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func testConfig() *config.Config {
	return &config.Config{
		Solver: config.Solver{
			MaxIterations: 100000,
			Tolerance:     0.01,
			InitialStep:   1,
		},
		CalculationHistory: config.CalculationHistory{
			Enabled:   true,
			ListLimit: 50,
		},
	}
}

func newTestService(cfg *config.Config, repo *mocks.MockCalculationRepository, m *metrics.Metrics) *Service {
	var planner Planner
	if repo != nil {
		planner = NewService(cfg, repo, m)
	} else {
		planner = NewService(cfg, nil, m)
	}

	service := planner.(*Service)
	service.now = func() time.Time { return fixedNow }
	service.generateID = func() (string, error) { return "calc123456", nil }
	return service
}

func campaignRequest() *domain.CalculateBudgetRequest {
	return &domain.CalculateBudgetRequest{
		TotalBudgetZ:            10000,
		AdBudgets:               []float64{1000, 2000, 1500},
		AgencyFeePercentage:     0.1,
		ThirdPartyFeePercentage: 0.05,
		FixedAgencyHoursCost:    500,
	}
}

func TestService_CalculateMaxBudget(t *testing.T) {
	m := metrics.New()
	service := newTestService(testConfig(), nil, m)

	response, err := service.CalculateMaxBudget(context.Background(), campaignRequest())
	require.NoError(t, err)

	assert.InDelta(t, 3760.75, response.MaxBudgetForTargetAd, 1e-9)
	assert.InDelta(t, 9999.8625, response.TotalBudget, 1e-6)
	assert.InDelta(t, 0.1375, response.RemainingBudget, 1e-6)
	assert.False(t, response.Clamped)
	assert.Empty(t, response.CalculationID)

	assert.Equal(t, domain.BudgetBreakdown{
		CommittedAdSpend:     4500,
		TargetAdSpend:        3760.75,
		TotalAdSpend:         8260.75,
		AgencyFee:            826.08,
		ThirdPartyFee:        413.04,
		FixedAgencyHoursCost: 500,
		TotalBudget:          9999.86,
	}, response.Breakdown)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.CalculationsTotal.WithLabelValues(metrics.OutcomeConverged)))
}

func TestService_CalculateMaxBudget_ZeroFees(t *testing.T) {
	service := newTestService(testConfig(), nil, nil)

	response, err := service.CalculateMaxBudget(context.Background(), &domain.CalculateBudgetRequest{
		TotalBudgetZ: 5000,
		AdBudgets:    []float64{2000},
	})
	require.NoError(t, err)

	// a busca devolve o último ponto abaixo do orçamento
	assert.Equal(t, 2999.0, response.MaxBudgetForTargetAd)
	assert.Equal(t, 4999.0, response.TotalBudget)
	assert.Equal(t, 1.0, response.RemainingBudget)
	assert.Equal(t, 3000, response.Iterations)
}

func TestService_CalculateMaxBudget_RecordsHistory(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name        string
		request     *domain.CalculateBudgetRequest
		setup       func(repo *mocks.MockCalculationRepository)
		wantID      string
		wantClamped bool
	}{
		{
			name:    "Cálculo convergido é salvo com os resultados",
			request: campaignRequest(),
			setup: func(repo *mocks.MockCalculationRepository) {
				repo.EXPECT().
					Save(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, calculation *domain.Calculation) error {
						assert.Equal(t, "calc123456", calculation.ID)
						assert.Equal(t, domain.CalculationOutcomeConverged, calculation.Outcome)
						assert.Equal(t, []float64{1000, 2000, 1500}, calculation.AdBudgets)
						require.NotNil(t, calculation.MaxBudgetForTargetAd)
						assert.InDelta(t, 3760.75, *calculation.MaxBudgetForTargetAd, 1e-9)
						assert.Equal(t, fixedNow, calculation.CreatedAt)
						return nil
					})
			},
			wantID: "calc123456",
		},
		{
			name: "Cálculo limitado a zero é salvo como clamped",
			request: &domain.CalculateBudgetRequest{
				TotalBudgetZ: 100,
				AdBudgets:    []float64{1000},
			},
			setup: func(repo *mocks.MockCalculationRepository) {
				repo.EXPECT().
					Save(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, calculation *domain.Calculation) error {
						assert.Equal(t, domain.CalculationOutcomeClamped, calculation.Outcome)
						assert.Equal(t, 0.0, *calculation.MaxBudgetForTargetAd)
						assert.Equal(t, -900.0, *calculation.RemainingBudget)
						return nil
					})
			},
			wantID:      "calc123456",
			wantClamped: true,
		},
		{
			name:    "Falha ao salvar não impede a resposta",
			request: campaignRequest(),
			setup: func(repo *mocks.MockCalculationRepository) {
				repo.EXPECT().
					Save(gomock.Any(), gomock.Any()).
					Return(errors.New("conexão recusada"))
			},
			wantID: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewMockCalculationRepository(ctrl)
			tt.setup(repo)
			service := newTestService(testConfig(), repo, nil)

			response, err := service.CalculateMaxBudget(context.Background(), tt.request)
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, response.CalculationID)
			assert.Equal(t, tt.wantClamped, response.Clamped)
		})
	}
}

func TestService_CalculateMaxBudget_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name      string
		request   *domain.CalculateBudgetRequest
		wantErr   error
		wantCode  string
		wantField string
	}{
		{
			name:     "Requisição ausente",
			request:  nil,
			wantErr:  ErrInvalidRequest,
			wantCode: apiErrors.ErrMissingRequiredData,
		},
		{
			name: "Taxa da agência negativa",
			request: &domain.CalculateBudgetRequest{
				TotalBudgetZ:        1000,
				AgencyFeePercentage: -0.1,
			},
			wantErr:   ErrNegativeValue,
			wantCode:  apiErrors.ErrNegativeValue,
			wantField: "agencyFeePercentage",
		},
		{
			name: "Orçamento de anúncio negativo",
			request: &domain.CalculateBudgetRequest{
				TotalBudgetZ: 1000,
				AdBudgets:    []float64{100, -1},
			},
			wantErr:   ErrNegativeValue,
			wantCode:  apiErrors.ErrNegativeValue,
			wantField: "adBudgets[1]",
		},
		{
			name: "Orçamento total negativo",
			request: &domain.CalculateBudgetRequest{
				TotalBudgetZ: -5,
			},
			wantErr:   ErrNegativeValue,
			wantCode:  apiErrors.ErrNegativeValue,
			wantField: "totalBudgetZ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// nenhuma chamada ao repositório é esperada
			repo := mocks.NewMockCalculationRepository(ctrl)
			m := metrics.New()
			service := newTestService(testConfig(), repo, m)

			response, err := service.CalculateMaxBudget(context.Background(), tt.request)
			assert.Nil(t, response)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, IsValidationError(err))

			var planningErr *PlanningError
			require.True(t, errors.As(err, &planningErr))
			assert.Equal(t, tt.wantCode, planningErr.Code)
			assert.Equal(t, tt.wantField, planningErr.Field)
			assert.Equal(t, 1.0, testutil.ToFloat64(m.CalculationsTotal.WithLabelValues(metrics.OutcomeInvalid)))
		})
	}
}

func TestService_CalculateMaxBudget_NonConvergence(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := testConfig()
	cfg.Solver.MaxIterations = 10

	repo := mocks.NewMockCalculationRepository(ctrl)
	repo.EXPECT().
		Save(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, calculation *domain.Calculation) error {
			assert.Equal(t, domain.CalculationOutcomeNonConvergence, calculation.Outcome)
			assert.Equal(t, 10, calculation.Iterations)
			assert.Nil(t, calculation.MaxBudgetForTargetAd)
			assert.Nil(t, calculation.TotalBudget)
			return nil
		})

	m := metrics.New()
	service := newTestService(cfg, repo, m)

	response, err := service.CalculateMaxBudget(context.Background(), &domain.CalculateBudgetRequest{TotalBudgetZ: 1000})
	assert.Nil(t, response)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNonConvergence)
	assert.False(t, IsValidationError(err))

	var planningErr *PlanningError
	require.True(t, errors.As(err, &planningErr))
	assert.Equal(t, apiErrors.ErrNonConvergence, planningErr.Code)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CalculationsTotal.WithLabelValues(metrics.OutcomeNonConvergence)))
}

func TestService_ListCalculations(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("Histórico desabilitado", func(t *testing.T) {
		service := newTestService(testConfig(), nil, nil)

		_, err := service.ListCalculations(context.Background(), 10)
		assert.ErrorIs(t, err, ErrHistoryDisabled)

		var planningErr *PlanningError
		require.True(t, errors.As(err, &planningErr))
		assert.Equal(t, apiErrors.ErrServiceDisabled, planningErr.Code)
	})

	limits := []struct {
		name      string
		requested int
		expected  int
	}{
		{"Limite zerado usa o padrão", 0, 50},
		{"Limite acima do máximo é reduzido", 500, 50},
		{"Limite válido é mantido", 5, 5},
	}
	for _, tt := range limits {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewMockCalculationRepository(ctrl)
			repo.EXPECT().
				ListRecent(gomock.Any(), tt.expected).
				Return([]*domain.Calculation{{ID: "abc"}}, nil)
			service := newTestService(testConfig(), repo, nil)

			calculations, err := service.ListCalculations(context.Background(), tt.requested)
			require.NoError(t, err)
			assert.Len(t, calculations, 1)
		})
	}

	t.Run("Erro no banco de dados", func(t *testing.T) {
		repo := mocks.NewMockCalculationRepository(ctrl)
		repo.EXPECT().
			ListRecent(gomock.Any(), 50).
			Return(nil, errors.New("timeout"))
		service := newTestService(testConfig(), repo, nil)

		_, err := service.ListCalculations(context.Background(), 0)
		assert.ErrorIs(t, err, ErrFetchCalculations)
	})
}
