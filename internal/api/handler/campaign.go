package handler

import (
	"errors"
	"net/http"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/media-planner-api/internal/domain"
	"github.com/vfg2006/media-planner-api/internal/usecases/planning"
	"github.com/vfg2006/media-planner-api/pkg/apiErrors"
	"github.com/vfg2006/media-planner-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// CalculateMaxBudget calcula o orçamento máximo do anúncio alvo para a campanha
func CalculateMaxBudget(service planning.Planner) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		logger.Debug("INIT - CalculateMaxBudget")

		w.Header().Set("Content-Type", "application/json")

		var request domain.CalculateBudgetRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição inválido: "+err.Error(), nil)
			return
		}

		resp, err := service.CalculateMaxBudget(r.Context(), &request)
		if err != nil {
			writePlanningError(w, logger, err)
			return
		}

		if err := json.NewEncoder(w).Encode(resp); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}

// ListCalculations retorna os cálculos mais recentes do histórico
func ListCalculations(service planning.Planner) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		w.Header().Set("Content-Type", "application/json")

		limit := 0
		if rawLimit := r.URL.Query().Get("limit"); rawLimit != "" {
			parsed, err := strconv.Atoi(rawLimit)
			if err != nil || parsed < 0 {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro limit deve ser um inteiro positivo", map[string]interface{}{
					"limit": rawLimit,
				})
				return
			}
			limit = parsed
		}

		calculations, err := service.ListCalculations(r.Context(), limit)
		if err != nil {
			writePlanningError(w, logger, err)
			return
		}

		if calculations == nil {
			calculations = []*domain.Calculation{}
		}

		if err := json.NewEncoder(w).Encode(calculations); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}

func writePlanningError(w http.ResponseWriter, logger log.Logger, err error) {
	var planningErr *planning.PlanningError
	if !errors.As(err, &planningErr) {
		logger.WithError(err).Error("Erro inesperado no planejamento")
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno ao calcular orçamento", nil)
		return
	}

	switch {
	case planning.IsValidationError(planningErr):
		logger.WithError(planningErr).Warn("Requisição de cálculo inválida")

		var details map[string]interface{}
		if planningErr.Field != "" {
			details = map[string]interface{}{"field": planningErr.Field}
		}
		apiErrors.WriteError(w, planningErr.Code, planningErr.Details, details)

	case errors.Is(planningErr, planning.ErrNonConvergence):
		// o último valor parcial não é exposto ao cliente
		logger.WithError(planningErr).Error("Cálculo do orçamento não convergiu")
		apiErrors.WriteError(w, planningErr.Code, "Não foi possível calcular o orçamento", nil)

	case errors.Is(planningErr, planning.ErrHistoryDisabled):
		apiErrors.WriteError(w, planningErr.Code, "Histórico de cálculos desabilitado", nil)

	default:
		logger.WithError(planningErr).Error("Erro no planejamento")
		apiErrors.WriteError(w, planningErr.Code, "Erro ao processar a requisição", nil)
	}
}
