package planning

import (
	"errors"
	"fmt"
)

// Erros específicos do planejamento de orçamento
var (
	// Erros de validação
	ErrInvalidRequest = errors.New("invalid budget request")
	ErrNegativeValue  = errors.New("negative value")
	ErrNonFiniteValue = errors.New("non-finite value")

	// Erros de cálculo
	ErrNonConvergence = errors.New("budget search did not converge")

	// Erros do histórico
	ErrHistoryDisabled   = errors.New("calculation history is disabled")
	ErrFetchCalculations = errors.New("error fetching calculations from database")
	ErrGenerateID        = errors.New("error generating calculation ID")
)

// PlanningError é um erro com contexto adicional para o planejamento
type PlanningError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	Field   string // Campo da requisição envolvido (quando aplicável)
	Details string // Detalhes adicionais
}

func (e *PlanningError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *PlanningError) Unwrap() error {
	return e.Err
}

func NewPlanningError(err error, code string, details string) *PlanningError {
	return &PlanningError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

// NewFieldError cria um PlanningError apontando o campo inválido
func NewFieldError(err error, code string, field string, details string) *PlanningError {
	return &PlanningError{
		Err:     err,
		Code:    code,
		Field:   field,
		Details: details,
	}
}

// IsValidationError verifica se o erro foi causado por dados de entrada
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidRequest) ||
		errors.Is(err, ErrNegativeValue) ||
		errors.Is(err, ErrNonFiniteValue)
}
