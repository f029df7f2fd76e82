package domain

import "time"

// CalculateBudgetRequest são os parâmetros da campanha enviados pelo planejamento de mídia
type CalculateBudgetRequest struct {
	TotalBudgetZ            float64   `json:"totalBudgetZ"`
	AdBudgets               []float64 `json:"adBudgets"`
	AgencyFeePercentage     float64   `json:"agencyFeePercentage"`     // fracionário, 0.10 = 10%
	ThirdPartyFeePercentage float64   `json:"thirdPartyFeePercentage"` // fracionário
	FixedAgencyHoursCost    float64   `json:"fixedAgencyHoursCost"`
}

type CalculateBudgetResponse struct {
	MaxBudgetForTargetAd float64         `json:"maxBudgetForTargetAd"`
	TotalBudget          float64         `json:"totalBudget"`
	RemainingBudget      float64         `json:"remainingBudget"`
	Iterations           int             `json:"iterations"`
	Clamped              bool            `json:"clamped"`
	Breakdown            BudgetBreakdown `json:"breakdown"`
	CalculationID        string          `json:"calculationId,omitempty"`
}

// BudgetBreakdown detalha o orçamento total em centavos arredondados
type BudgetBreakdown struct {
	CommittedAdSpend     float64 `json:"committedAdSpend"`
	TargetAdSpend        float64 `json:"targetAdSpend"`
	TotalAdSpend         float64 `json:"totalAdSpend"`
	AgencyFee            float64 `json:"agencyFee"`
	ThirdPartyFee        float64 `json:"thirdPartyFee"`
	FixedAgencyHoursCost float64 `json:"fixedAgencyHoursCost"`
	TotalBudget          float64 `json:"totalBudget"`
}

type CalculationOutcome string

const (
	CalculationOutcomeConverged      CalculationOutcome = "converged"
	CalculationOutcomeClamped        CalculationOutcome = "clamped"
	CalculationOutcomeNonConvergence CalculationOutcome = "non_convergence"
)

// Calculation é o registro de um cálculo no histórico
type Calculation struct {
	ID                      string             `json:"id"`
	TotalBudgetZ            float64            `json:"totalBudgetZ"`
	AdBudgets               []float64          `json:"adBudgets"`
	AgencyFeePercentage     float64            `json:"agencyFeePercentage"`
	ThirdPartyFeePercentage float64            `json:"thirdPartyFeePercentage"`
	FixedAgencyHoursCost    float64            `json:"fixedAgencyHoursCost"`
	MaxBudgetForTargetAd    *float64           `json:"maxBudgetForTargetAd,omitempty"`
	TotalBudget             *float64           `json:"totalBudget,omitempty"`
	RemainingBudget         *float64           `json:"remainingBudget,omitempty"`
	Iterations              int                `json:"iterations"`
	Outcome                 CalculationOutcome `json:"outcome"`
	CreatedAt               time.Time          `json:"createdAt"`
}
