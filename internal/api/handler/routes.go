package handler

import (
	"net/http"

	"github.com/vfg2006/media-planner-api/internal/api/handler/router"
	"github.com/vfg2006/media-planner-api/internal/usecases/planning"
)

// Healthcheck registra a rota de saúde. db pode ser nil quando o histórico está desabilitado.
func Healthcheck(db Pinger) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(db),
		},
	}
}

// Campaign registra o cálculo do orçamento. A rota sem versão atende o frontend existente.
func Campaign(service planning.Planner) []router.Route {
	return []router.Route{
		{
			Path:    "/campaign/calculate",
			Method:  http.MethodPost,
			Handler: CalculateMaxBudget(service),
		},
		{
			Path:    "/v1/campaign/calculate",
			Method:  http.MethodPost,
			Handler: CalculateMaxBudget(service),
		},
		{
			Path:    "/v1/campaign/calculations",
			Method:  http.MethodGet,
			Handler: ListCalculations(service),
		},
	}
}

func Metrics(handler http.Handler) []router.Route {
	return []router.Route{
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: handler,
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/:type/run",
			Method:  http.MethodPost,
			Handler: RunCronJob(services),
		},
		{
			Path:    "/v1/cron/status",
			Method:  http.MethodGet,
			Handler: GetCronStatus(services),
		},
	}
}
