package solver

import (
	"errors"
	"fmt"
)

var (
	ErrNonConvergence = errors.New("solver: busca não convergiu dentro do limite de iterações")
	ErrNegativeValue  = errors.New("valor negativo")
	ErrNonFiniteValue = errors.New("valor não finito")
)

// NonConvergenceError indica que o limite de iterações foi atingido sem alcançar a tolerância.
// LastFeasible é apenas diagnóstico e não deve ser tratado como resultado.
type NonConvergenceError struct {
	LastFeasible float64
	Iterations   int
}

func (e *NonConvergenceError) Error() string {
	return fmt.Sprintf("%s (iterações: %d, último valor viável: %.2f)", ErrNonConvergence.Error(), e.Iterations, e.LastFeasible)
}

func (e *NonConvergenceError) Unwrap() error {
	return ErrNonConvergence
}

// InvalidParamError aponta o campo que falhou na validação
type InvalidParamError struct {
	Field string
	Value float64
	Err   error
}

func (e *InvalidParamError) Error() string {
	return fmt.Sprintf("%s: %s (%v)", e.Field, e.Err.Error(), e.Value)
}

func (e *InvalidParamError) Unwrap() error {
	return e.Err
}

func committedFieldName(i int) string {
	return fmt.Sprintf("committedAdBudgets[%d]", i)
}
