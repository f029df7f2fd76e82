// Package metrics expõe as métricas Prometheus da API
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "media_planner"

// Resultados possíveis de um cálculo
const (
	OutcomeConverged      = "converged"
	OutcomeClamped        = "clamped"
	OutcomeNonConvergence = "non_convergence"
	OutcomeInvalid        = "invalid"
)

const (
	CleanupSuccess = "success"
	CleanupError   = "error"
)

type Metrics struct {
	registry *prometheus.Registry

	RequestsTotal     *prometheus.CounterVec
	RequestDuration   *prometheus.HistogramVec
	CalculationsTotal *prometheus.CounterVec
	SolverIterations  prometheus.Histogram
	HistoryCleanups   *prometheus.CounterVec
	HistoryDeleted    prometheus.Counter
}

// New cria as métricas em um registry próprio, sem tocar no registry global
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: registry,
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total de requisições HTTP por método, rota e status",
		}, []string{"method", "path", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duração das requisições HTTP",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
		CalculationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "budget_calculations_total",
			Help:      "Total de cálculos de orçamento por resultado",
		}, []string{"outcome"}),
		SolverIterations: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "solver_iterations",
			Help:      "Iterações usadas por cálculo",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		}),
		HistoryCleanups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "calculation_history_cleanups_total",
			Help:      "Execuções da limpeza do histórico de cálculos",
		}, []string{"status"}),
		HistoryDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "calculation_history_deleted_total",
			Help:      "Registros removidos do histórico de cálculos",
		}),
	}

	registry.MustRegister(
		m.RequestsTotal,
		m.RequestDuration,
		m.CalculationsTotal,
		m.SolverIterations,
		m.HistoryCleanups,
		m.HistoryDeleted,
	)

	return m
}

// Registry retorna o registry usado pelas métricas
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler expõe as métricas no formato Prometheus
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveCalculation(outcome string, iterations int) {
	if m == nil {
		return
	}
	m.CalculationsTotal.WithLabelValues(outcome).Inc()
	if outcome != OutcomeInvalid {
		m.SolverIterations.Observe(float64(iterations))
	}
}

func (m *Metrics) ObserveRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

func (m *Metrics) ObserveCleanup(deleted int64, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.HistoryCleanups.WithLabelValues(CleanupError).Inc()
		return
	}
	m.HistoryCleanups.WithLabelValues(CleanupSuccess).Inc()
	m.HistoryDeleted.Add(float64(deleted))
}
