// Package migration cria o schema usado pelo histórico de cálculos
package migration

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/media-planner-api/infrastructure/database/postgres"
)

// Statements são idempotentes e executados em ordem, dentro de uma única transação
var Statements = []string{
	`CREATE TABLE IF NOT EXISTS campaign_calculation (
		id                          VARCHAR(21) PRIMARY KEY,
		total_budget_z              DOUBLE PRECISION NOT NULL,
		ad_budgets                  DOUBLE PRECISION[] NOT NULL DEFAULT '{}',
		agency_fee_percentage       DOUBLE PRECISION NOT NULL DEFAULT 0,
		third_party_fee_percentage  DOUBLE PRECISION NOT NULL DEFAULT 0,
		fixed_agency_hours_cost     DOUBLE PRECISION NOT NULL DEFAULT 0,
		max_budget_for_target_ad    DOUBLE PRECISION,
		total_budget                DOUBLE PRECISION,
		remaining_budget            DOUBLE PRECISION,
		iterations                  INTEGER NOT NULL,
		outcome                     VARCHAR(32) NOT NULL,
		created_at                  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_campaign_calculation_created_at ON campaign_calculation (created_at DESC)`,
}

// Apply executa as migrações do histórico de cálculos
func Apply(ctx context.Context, conn postgres.Conn) error {
	return conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		for i, statement := range Statements {
			if _, err := tx.ExecContext(ctx, statement); err != nil {
				return errors.Wrapf(err, "erro ao executar migração %d", i+1)
			}
		}

		logrus.WithField("statements", len(Statements)).Info("Migrações do histórico de cálculos aplicadas")
		return nil
	})
}
