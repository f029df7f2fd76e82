// Package repository contém as implementações dos repositórios para acesso aos dados
package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/vfg2006/media-planner-api/infrastructure/database/postgres"
	"github.com/vfg2006/media-planner-api/internal/domain"
)

//go:generate mockgen -source=calculation.go -destination=mocks/calculation.go -package=mocks

const (
	calculationTable      = "campaign_calculation"
	calculationTableAlias = "campaign_calculation cc"
)

var calculationColumns = []string{
	"cc.id",
	"cc.total_budget_z",
	"cc.ad_budgets",
	"cc.agency_fee_percentage",
	"cc.third_party_fee_percentage",
	"cc.fixed_agency_hours_cost",
	"cc.max_budget_for_target_ad",
	"cc.total_budget",
	"cc.remaining_budget",
	"cc.iterations",
	"cc.outcome",
	"cc.created_at",
}

type CalculationRepository interface {
	Save(ctx context.Context, calculation *domain.Calculation) error
	ListRecent(ctx context.Context, limit int) ([]*domain.Calculation, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type calculationRepository struct {
	conn postgres.Queryer
}

func NewCalculationRepository(conn postgres.Queryer) CalculationRepository {
	return &calculationRepository{
		conn: conn,
	}
}

func (r *calculationRepository) Save(ctx context.Context, calculation *domain.Calculation) error {
	query, args, err := insertCalculationQuery(calculation)
	if err != nil {
		return errors.Wrap(err, "erro ao construir query de inserção")
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrapf(err, "erro ao salvar cálculo %s", calculation.ID)
	}

	return nil
}

func (r *calculationRepository) ListRecent(ctx context.Context, limit int) ([]*domain.Calculation, error) {
	query, args, err := listRecentCalculationsQuery(limit)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao executar a query")
	}
	defer rows.Close()

	calculations := make([]*domain.Calculation, 0)
	for rows.Next() {
		calculation, err := scanCalculation(rows)
		if err != nil {
			return nil, errors.Wrap(err, "erro ao escanear cálculo")
		}
		calculations = append(calculations, calculation)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante a iteração de linhas")
	}

	return calculations, nil
}

func (r *calculationRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	query, args, err := deleteCalculationsOlderThanQuery(cutoff)
	if err != nil {
		return 0, errors.Wrap(err, "erro ao construir query de remoção")
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, errors.Wrap(err, "erro ao remover cálculos antigos")
	}

	return result.RowsAffected()
}

func insertCalculationQuery(calculation *domain.Calculation) (string, []interface{}, error) {
	// pq.Array(nil) vira NULL e a coluna é NOT NULL
	adBudgets := calculation.AdBudgets
	if adBudgets == nil {
		adBudgets = []float64{}
	}

	return squirrel.
		Insert(calculationTable).
		Columns(
			"id",
			"total_budget_z",
			"ad_budgets",
			"agency_fee_percentage",
			"third_party_fee_percentage",
			"fixed_agency_hours_cost",
			"max_budget_for_target_ad",
			"total_budget",
			"remaining_budget",
			"iterations",
			"outcome",
			"created_at",
		).
		Values(
			calculation.ID,
			calculation.TotalBudgetZ,
			pq.Array(adBudgets),
			calculation.AgencyFeePercentage,
			calculation.ThirdPartyFeePercentage,
			calculation.FixedAgencyHoursCost,
			nullFloat(calculation.MaxBudgetForTargetAd),
			nullFloat(calculation.TotalBudget),
			nullFloat(calculation.RemainingBudget),
			calculation.Iterations,
			string(calculation.Outcome),
			calculation.CreatedAt,
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

func listRecentCalculationsQuery(limit int) (string, []interface{}, error) {
	return squirrel.
		Select(calculationColumns...).
		From(calculationTableAlias).
		OrderBy("cc.created_at DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

func deleteCalculationsOlderThanQuery(cutoff time.Time) (string, []interface{}, error) {
	return squirrel.
		Delete(calculationTable).
		Where(squirrel.Lt{"created_at": cutoff}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

func scanCalculation(rows *sql.Rows) (*domain.Calculation, error) {
	calculation := &domain.Calculation{}
	var (
		maxBudget       sql.NullFloat64
		totalBudget     sql.NullFloat64
		remainingBudget sql.NullFloat64
		outcome         string
	)

	err := rows.Scan(
		&calculation.ID,
		&calculation.TotalBudgetZ,
		pq.Array(&calculation.AdBudgets),
		&calculation.AgencyFeePercentage,
		&calculation.ThirdPartyFeePercentage,
		&calculation.FixedAgencyHoursCost,
		&maxBudget,
		&totalBudget,
		&remainingBudget,
		&calculation.Iterations,
		&outcome,
		&calculation.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	calculation.MaxBudgetForTargetAd = floatPtr(maxBudget)
	calculation.TotalBudget = floatPtr(totalBudget)
	calculation.RemainingBudget = floatPtr(remainingBudget)
	calculation.Outcome = domain.CalculationOutcome(outcome)

	return calculation, nil
}

func nullFloat(value *float64) sql.NullFloat64 {
	if value == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *value, Valid: true}
}

func floatPtr(value sql.NullFloat64) *float64 {
	if !value.Valid {
		return nil
	}
	v := value.Float64
	return &v
}
