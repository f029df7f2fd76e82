// Package scheduler contém os serviços agendados da API
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/media-planner-api/infrastructure/repository"
	"github.com/vfg2006/media-planner-api/internal/config"
	"github.com/vfg2006/media-planner-api/pkg/metrics"
)

type CalculationHistoryCleanupConfig struct {
	CronSchedule  string
	RetentionDays int
	Enabled       bool
}

// CleanupStatus resume o estado da limpeza para o endpoint de status
type CleanupStatus struct {
	Enabled            bool      `json:"enabled"`
	Running            bool      `json:"running"`
	CronSchedule       string    `json:"cron_schedule"`
	RetentionDays      int       `json:"retention_days"`
	LastRunStartedAt   time.Time `json:"last_run_started_at"`
	LastRunCompletedAt time.Time `json:"last_run_completed_at"`
	LastDeletedRows    int64     `json:"last_deleted_rows"`
	LastError          string    `json:"last_error,omitempty"`
}

// CalculationHistoryCleanupService remove cálculos mais antigos que a retenção configurada
type CalculationHistoryCleanupService struct {
	scheduler          *gocron.Scheduler
	calculationRepo    repository.CalculationRepository
	metrics            *metrics.Metrics
	config             CalculationHistoryCleanupConfig
	now                func() time.Time
	running            bool
	mutex              sync.Mutex
	lastRunStartedAt   time.Time
	lastRunCompletedAt time.Time
	lastDeletedRows    int64
	lastError          error
}

func NewCalculationHistoryCleanupService(
	calculationRepo repository.CalculationRepository,
	m *metrics.Metrics,
	cfg *config.Config,
) *CalculationHistoryCleanupService {
	cleanupConfig := CalculationHistoryCleanupConfig{
		CronSchedule:  cfg.CalculationHistory.CleanupCron,
		RetentionDays: cfg.CalculationHistory.RetentionDays,
		Enabled:       cfg.CalculationHistory.CleanupEnabled && calculationRepo != nil,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule":  cleanupConfig.CronSchedule,
		"retention_days": cleanupConfig.RetentionDays,
		"enabled":        cleanupConfig.Enabled,
	}).Info("Configuração da limpeza do histórico de cálculos carregada")

	return &CalculationHistoryCleanupService{
		scheduler:       gocron.NewScheduler(time.Local),
		calculationRepo: calculationRepo,
		metrics:         m,
		config:          cleanupConfig,
		now:             time.Now,
	}
}

func (s *CalculationHistoryCleanupService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Limpeza do histórico de cálculos desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron de limpeza do histórico de cálculos")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if _, err := s.Cleanup(ctx); err != nil {
			logrus.WithError(err).Error("Erro na limpeza do histórico de cálculos")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar limpeza do histórico de cálculos: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron de limpeza do histórico de cálculos")
		s.scheduler.Stop()
	}()

	return nil
}

// Cleanup remove os cálculos anteriores ao limite de retenção. Execuções sobrepostas são ignoradas.
func (s *CalculationHistoryCleanupService) Cleanup(ctx context.Context) (int64, error) {
	if s.calculationRepo == nil {
		return 0, nil
	}

	s.mutex.Lock()
	if s.running {
		s.mutex.Unlock()
		logrus.Warn("Limpeza do histórico de cálculos já está em execução")
		return 0, nil
	}
	s.running = true
	s.lastRunStartedAt = s.now()
	s.mutex.Unlock()

	cutoff := s.now().AddDate(0, 0, -s.config.RetentionDays)
	deleted, err := s.calculationRepo.DeleteOlderThan(ctx, cutoff)
	s.metrics.ObserveCleanup(deleted, err)

	s.mutex.Lock()
	s.running = false
	s.lastRunCompletedAt = s.now()
	s.lastDeletedRows = deleted
	s.lastError = err
	s.mutex.Unlock()

	if err != nil {
		return 0, fmt.Errorf("erro ao remover cálculos anteriores a %s: %w", cutoff.Format(time.DateOnly), err)
	}

	logrus.WithFields(logrus.Fields{
		"cutoff":  cutoff.Format(time.DateOnly),
		"deleted": deleted,
	}).Info("Limpeza do histórico de cálculos concluída")

	return deleted, nil
}

// TriggerManualCleanup executa a limpeza em background, fora do agendamento
func (s *CalculationHistoryCleanupService) TriggerManualCleanup() {
	go func() {
		logrus.Info("Limpeza manual do histórico de cálculos iniciada")
		if _, err := s.Cleanup(context.Background()); err != nil {
			logrus.WithError(err).Error("Erro na limpeza manual do histórico de cálculos")
		}
	}()
}

func (s *CalculationHistoryCleanupService) Status() CleanupStatus {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	status := CleanupStatus{
		Enabled:            s.config.Enabled,
		Running:            s.running,
		CronSchedule:       s.config.CronSchedule,
		RetentionDays:      s.config.RetentionDays,
		LastRunStartedAt:   s.lastRunStartedAt,
		LastRunCompletedAt: s.lastRunCompletedAt,
		LastDeletedRows:    s.lastDeletedRows,
	}
	if s.lastError != nil {
		status.LastError = s.lastError.Error()
	}
	return status
}
