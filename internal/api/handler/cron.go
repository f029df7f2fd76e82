package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/media-planner-api/internal/scheduler"
	"github.com/vfg2006/media-planner-api/pkg/apiErrors"
)

// CronJobType define o tipo de cron job que será executada
const (
	CronJobTypeCalculationHistoryCleanup = "calculation-history-cleanup"
	CronJobTypeAll                       = "all"
)

// CronJobServices contém os serviços de cron necessários para executar manualmente
type CronJobServices struct {
	CalculationHistoryCleanupService *scheduler.CalculationHistoryCleanupService
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunCronJob")

		w.Header().Set("Content-Type", "application/json")

		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		switch cronType {
		case CronJobTypeCalculationHistoryCleanup, CronJobTypeAll:
			cleanup := services.CalculationHistoryCleanupService
			if cleanup == nil || !cleanup.Status().Enabled {
				apiErrors.WriteError(w, apiErrors.ErrServiceDisabled, "Limpeza do histórico de cálculos não disponível", nil)
				return
			}
			cleanup.TriggerManualCleanup()

		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest,
				"Tipo de cron job inválido. Valores aceitos: calculation-history-cleanup, all", nil)
			return
		}

		w.WriteHeader(http.StatusAccepted)
		response := map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		}
		json.NewEncoder(w).Encode(response)
	})
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetCronStatus")

		w.Header().Set("Content-Type", "application/json")

		status := map[string]any{}
		if services.CalculationHistoryCleanupService != nil {
			status[CronJobTypeCalculationHistoryCleanup] = services.CalculationHistoryCleanupService.Status()
		}

		json.NewEncoder(w).Encode(status)
	})
}
