package planning

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/media-planner-api/infrastructure/repository"
	"github.com/vfg2006/media-planner-api/internal/config"
	"github.com/vfg2006/media-planner-api/internal/domain"
	"github.com/vfg2006/media-planner-api/internal/solver"
	"github.com/vfg2006/media-planner-api/pkg/apiErrors"
	"github.com/vfg2006/media-planner-api/pkg/log"
	"github.com/vfg2006/media-planner-api/pkg/metrics"
	"github.com/vfg2006/media-planner-api/pkg/utils"
)

//go:generate mockgen -source=service.go -destination=mocks/planner.go -package=mocks

type Planner interface {
	CalculateMaxBudget(ctx context.Context, request *domain.CalculateBudgetRequest) (*domain.CalculateBudgetResponse, error)
	ListCalculations(ctx context.Context, limit int) ([]*domain.Calculation, error)
}

type Service struct {
	solverCfg       config.Solver
	historyCfg      config.CalculationHistory
	calculationRepo repository.CalculationRepository
	metrics         *metrics.Metrics
	now             func() time.Time
	generateID      func() (string, error)
}

// NewService cria o serviço de planejamento. calculationRepo pode ser nil quando o
// histórico está desabilitado.
func NewService(
	cfg *config.Config,
	calculationRepo repository.CalculationRepository,
	m *metrics.Metrics,
) Planner {
	return &Service{
		solverCfg:       cfg.Solver,
		historyCfg:      cfg.CalculationHistory,
		calculationRepo: calculationRepo,
		metrics:         m,
		now:             time.Now,
		generateID:      utils.GenerateID,
	}
}

func (s *Service) CalculateMaxBudget(ctx context.Context, request *domain.CalculateBudgetRequest) (*domain.CalculateBudgetResponse, error) {
	logger := log.ForContext(ctx)

	if request == nil {
		s.metrics.ObserveCalculation(metrics.OutcomeInvalid, 0)
		return nil, NewPlanningError(ErrInvalidRequest, apiErrors.ErrMissingRequiredData, "corpo da requisição ausente")
	}

	params := toParams(request)
	if err := params.Validate(); err != nil {
		s.metrics.ObserveCalculation(metrics.OutcomeInvalid, 0)
		return nil, validationError(err)
	}

	result, err := solver.Solve(params, s.solverOptions(logger)...)
	if err != nil {
		var nonConvergence *solver.NonConvergenceError
		if errors.As(err, &nonConvergence) {
			s.metrics.ObserveCalculation(metrics.OutcomeNonConvergence, nonConvergence.Iterations)
			logger.WithFields(log.Fields{
				"calculation_iterations":    nonConvergence.Iterations,
				"calculation_last_feasible": nonConvergence.LastFeasible,
				"budget_total":              request.TotalBudgetZ,
			}).Warn("planning: busca do orçamento máximo não convergiu")

			s.record(ctx, logger, request, nil, nonConvergence.Iterations, domain.CalculationOutcomeNonConvergence)

			return nil, NewPlanningError(ErrNonConvergence, apiErrors.ErrNonConvergence,
				fmt.Sprintf("sem convergência após %d iterações", nonConvergence.Iterations))
		}
		return nil, err
	}

	response := buildResponse(request, params, result)

	outcome := domain.CalculationOutcomeConverged
	metricOutcome := metrics.OutcomeConverged
	if result.Clamped {
		outcome = domain.CalculationOutcomeClamped
		metricOutcome = metrics.OutcomeClamped
	}
	s.metrics.ObserveCalculation(metricOutcome, result.Iterations)

	response.CalculationID = s.record(ctx, logger, request, response, result.Iterations, outcome)

	logger.WithFields(log.Fields{
		"budget_max_target_ad":   utils.RoundWithTwoDecimalPlace(response.MaxBudgetForTargetAd),
		"budget_total":           utils.RoundWithTwoDecimalPlace(response.TotalBudget),
		"budget_remaining":       utils.RoundWithTwoDecimalPlace(response.RemainingBudget),
		"calculation_iterations": response.Iterations,
		"calculation_clamped":    response.Clamped,
	}).Info("planning: orçamento máximo calculado")

	return response, nil
}

func (s *Service) ListCalculations(ctx context.Context, limit int) ([]*domain.Calculation, error) {
	if s.calculationRepo == nil {
		return nil, NewPlanningError(ErrHistoryDisabled, apiErrors.ErrServiceDisabled, "habilite CALCULATION_HISTORY_ENABLED")
	}

	if limit <= 0 || limit > s.historyCfg.ListLimit {
		limit = s.historyCfg.ListLimit
	}

	calculations, err := s.calculationRepo.ListRecent(ctx, limit)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("planning: erro ao listar cálculos")
		return nil, NewPlanningError(ErrFetchCalculations, apiErrors.ErrDatabaseOperation, "falha ao consultar histórico de cálculos")
	}

	return calculations, nil
}

func (s *Service) solverOptions(logger log.Logger) []solver.Option {
	opts := []solver.Option{
		solver.WithMaxIterations(s.solverCfg.MaxIterations),
		solver.WithTolerance(s.solverCfg.Tolerance),
		solver.WithInitialStep(s.solverCfg.InitialStep),
	}
	if s.solverCfg.TraceIterations {
		opts = append(opts, solver.WithObserver(iterationLogger(logger)))
	}
	return opts
}

// record salva o cálculo no histórico. Falhas são apenas logadas.
func (s *Service) record(
	ctx context.Context,
	logger log.Logger,
	request *domain.CalculateBudgetRequest,
	response *domain.CalculateBudgetResponse,
	iterations int,
	outcome domain.CalculationOutcome,
) string {
	if s.calculationRepo == nil {
		return ""
	}

	id, err := s.generateID()
	if err != nil {
		logger.WithError(fmt.Errorf("%w: %v", ErrGenerateID, err)).Warn("planning: cálculo não registrado no histórico")
		return ""
	}

	calculation := &domain.Calculation{
		ID:                      id,
		TotalBudgetZ:            request.TotalBudgetZ,
		AdBudgets:               request.AdBudgets,
		AgencyFeePercentage:     request.AgencyFeePercentage,
		ThirdPartyFeePercentage: request.ThirdPartyFeePercentage,
		FixedAgencyHoursCost:    request.FixedAgencyHoursCost,
		Iterations:              iterations,
		Outcome:                 outcome,
		CreatedAt:               s.now().UTC(),
	}
	if response != nil {
		calculation.MaxBudgetForTargetAd = &response.MaxBudgetForTargetAd
		calculation.TotalBudget = &response.TotalBudget
		calculation.RemainingBudget = &response.RemainingBudget
	}

	if err := s.calculationRepo.Save(ctx, calculation); err != nil {
		logger.WithError(err).Warn("planning: cálculo não registrado no histórico")
		return ""
	}

	return id
}

func toParams(request *domain.CalculateBudgetRequest) solver.Params {
	return solver.Params{
		TotalBudgetTarget:  request.TotalBudgetZ,
		CommittedAdBudgets: request.AdBudgets,
		AgencyFeeRate:      request.AgencyFeePercentage,
		ThirdPartyFeeRate:  request.ThirdPartyFeePercentage,
		FixedAgencyCost:    request.FixedAgencyHoursCost,
	}
}

// buildResponse deriva totalBudget e remainingBudget a partir do orçamento resolvido
func buildResponse(request *domain.CalculateBudgetRequest, params solver.Params, result solver.Result) *domain.CalculateBudgetResponse {
	maxBudget := result.TargetAdBudget
	totalAdSpend := maxBudget + params.CommittedTotal()
	totalBudget := totalAdSpend*(1+request.AgencyFeePercentage+request.ThirdPartyFeePercentage) + request.FixedAgencyHoursCost

	return &domain.CalculateBudgetResponse{
		MaxBudgetForTargetAd: maxBudget,
		TotalBudget:          totalBudget,
		RemainingBudget:      request.TotalBudgetZ - totalBudget,
		Iterations:           result.Iterations,
		Clamped:              result.Clamped,
		Breakdown:            buildBreakdown(request, maxBudget),
	}
}

func buildBreakdown(request *domain.CalculateBudgetRequest, maxBudget float64) domain.BudgetBreakdown {
	committed := decimal.Zero
	for _, budget := range request.AdBudgets {
		committed = committed.Add(decimal.NewFromFloat(budget))
	}

	target := decimal.NewFromFloat(maxBudget)
	totalAdSpend := committed.Add(target)
	agencyFee := totalAdSpend.Mul(decimal.NewFromFloat(request.AgencyFeePercentage))
	thirdPartyFee := totalAdSpend.Mul(decimal.NewFromFloat(request.ThirdPartyFeePercentage))
	fixed := decimal.NewFromFloat(request.FixedAgencyHoursCost)
	total := totalAdSpend.Add(agencyFee).Add(thirdPartyFee).Add(fixed)

	return domain.BudgetBreakdown{
		CommittedAdSpend:     utils.DecimalToCents(committed),
		TargetAdSpend:        utils.DecimalToCents(target),
		TotalAdSpend:         utils.DecimalToCents(totalAdSpend),
		AgencyFee:            utils.DecimalToCents(agencyFee),
		ThirdPartyFee:        utils.DecimalToCents(thirdPartyFee),
		FixedAgencyHoursCost: utils.DecimalToCents(fixed),
		TotalBudget:          utils.DecimalToCents(total),
	}
}

var requestFieldNames = map[string]string{
	"totalBudgetTarget": "totalBudgetZ",
	"agencyFeeRate":     "agencyFeePercentage",
	"thirdPartyFeeRate": "thirdPartyFeePercentage",
	"fixedAgencyCost":   "fixedAgencyHoursCost",
}

// requestField traduz o nome do parâmetro do solver para o campo JSON da requisição
func requestField(field string) string {
	if name, ok := requestFieldNames[field]; ok {
		return name
	}
	return strings.Replace(field, "committedAdBudgets", "adBudgets", 1)
}

func validationError(err error) error {
	var paramErr *solver.InvalidParamError
	if !errors.As(err, &paramErr) {
		return NewPlanningError(ErrInvalidRequest, apiErrors.ErrInvalidRequest, err.Error())
	}

	field := requestField(paramErr.Field)
	if errors.Is(paramErr, solver.ErrNonFiniteValue) {
		return NewFieldError(ErrNonFiniteValue, apiErrors.ErrNonFiniteValue, field, field+" deve ser um número finito")
	}
	return NewFieldError(ErrNegativeValue, apiErrors.ErrNegativeValue, field, field+" não pode ser negativo")
}
