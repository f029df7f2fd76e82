package scheduler

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
	"github.com/vfg2006/media-planner-api/pkg/metrics"
	"go.uber.org/mock/gomock"
)

func cleanupConfig(enabled bool) *config.Config {
	return &config.Config{
		CalculationHistory: config.CalculationHistory{
			Enabled:        true,
			RetentionDays:  90,
			CleanupCron:    "0 3 * * *",
			CleanupEnabled: enabled,
		},
	}
}

func TestCalculationHistoryCleanupService_Cleanup(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	now := time.Date(2025, 4, 10, 3, 0, 0, 0, time.UTC)
	expectedCutoff := time.Date(2025, 1, 10, 3, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		setup       func(repo *mocks.MockCalculationRepository)
		wantDeleted int64
		wantErr     bool
		wantStatus  string
	}{
		{
			name: "Remove cálculos anteriores à retenção",
			setup: func(repo *mocks.MockCalculationRepository) {
				repo.EXPECT().
					DeleteOlderThan(gomock.Any(), expectedCutoff).
					Return(int64(42), nil)
			},
			wantDeleted: 42,
			wantStatus:  metrics.CleanupSuccess,
		},
		{
			name: "Erro no banco de dados é propagado",
			setup: func(repo *mocks.MockCalculationRepository) {
				repo.EXPECT().
					DeleteOlderThan(gomock.Any(), expectedCutoff).
					Return(int64(0), errors.New("conexão perdida"))
			},
			wantErr:    true,
			wantStatus: metrics.CleanupError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewMockCalculationRepository(ctrl)
			tt.setup(repo)

			m := metrics.New()
			service := NewCalculationHistoryCleanupService(repo, m, cleanupConfig(true))
			service.now = func() time.Time { return now }

			deleted, err := service.Cleanup(context.Background())
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantDeleted, deleted)
			assert.Equal(t, 1.0, testutil.ToFloat64(m.HistoryCleanups.WithLabelValues(tt.wantStatus)))

			status := service.Status()
			assert.False(t, status.Running)
			assert.Equal(t, now, status.LastRunStartedAt)
			assert.Equal(t, now, status.LastRunCompletedAt)
			assert.Equal(t, tt.wantErr, status.LastError != "")
		})
	}
}

func TestCalculationHistoryCleanupService_SkipsOverlappingRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// nenhuma chamada ao repositório é esperada
	repo := mocks.NewMockCalculationRepository(ctrl)
	service := NewCalculationHistoryCleanupService(repo, nil, cleanupConfig(true))
	service.running = true

	deleted, err := service.Cleanup(context.Background())
	require.NoError(t, err)
	assert.Zero(t, deleted)
}

func TestCalculationHistoryCleanupService_Disabled(t *testing.T) {
	t.Run("Sem repositório", func(t *testing.T) {
		service := NewCalculationHistoryCleanupService(nil, nil, cleanupConfig(true))

		assert.False(t, service.Status().Enabled)
		require.NoError(t, service.Start(context.Background()))

		deleted, err := service.Cleanup(context.Background())
		require.NoError(t, err)
		assert.Zero(t, deleted)
	})

	t.Run("Desabilitado por configuração", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := NewCalculationHistoryCleanupService(mocks.NewMockCalculationRepository(ctrl), nil, cleanupConfig(false))

		status := service.Status()
		assert.False(t, status.Enabled)
		assert.Equal(t, "0 3 * * *", status.CronSchedule)
		assert.Equal(t, 90, status.RetentionDays)
		require.NoError(t, service.Start(context.Background()))
	})
}

func TestCalculationHistoryCleanupService_StartInvalidCron(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := cleanupConfig(true)
	cfg.CalculationHistory.CleanupCron = "não é cron"

	service := NewCalculationHistoryCleanupService(mocks.NewMockCalculationRepository(ctrl), nil, cfg)

	err := service.Start(context.Background())
	assert.Error(t, err)
}
