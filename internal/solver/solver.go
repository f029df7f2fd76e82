// Package solver encontra o orçamento máximo de um anúncio adicional dentro do orçamento total da campanha
package solver

import (
	"math"
)

const (
	DefaultMaxIterations = 100000
	DefaultTolerance     = 0.01
	DefaultInitialStep   = 1.0
)

// Params reúne os coeficientes fixos da equação de orçamento
type Params struct {
	TotalBudgetTarget  float64
	CommittedAdBudgets []float64
	AgencyFeeRate      float64 // fracionário, 0.1 = 10%
	ThirdPartyFeeRate  float64 // fracionário
	FixedAgencyCost    float64
}

// Result é o resultado de uma resolução bem sucedida
type Result struct {
	TargetAdBudget     float64
	DerivedTotalBudget float64
	RemainingBudget    float64
	Iterations         int
	Clamped            bool // a solução sem restrição seria negativa
}

// Iteration descreve o estado da busca em uma iteração
type Iteration struct {
	Number     int
	X          float64
	Calculated float64
}

// Observer recebe cada iteração da busca. Apenas observação, não altera o resultado.
type Observer func(Iteration)

type options struct {
	maxIterations int
	tolerance     float64
	initialStep   float64
	observer      Observer
}

// Option configura o Solve
type Option func(*options)

func WithMaxIterations(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxIterations = n
		}
	}
}

func WithTolerance(eps float64) Option {
	return func(o *options) {
		if eps > 0 {
			o.tolerance = eps
		}
	}
}

func WithInitialStep(step float64) Option {
	return func(o *options) {
		if step > 0 {
			o.initialStep = step
		}
	}
}

func WithObserver(observer Observer) Option {
	return func(o *options) {
		o.observer = observer
	}
}

// CommittedTotal soma os orçamentos já comprometidos
func (p Params) CommittedTotal() float64 {
	total := 0.0
	for _, budget := range p.CommittedAdBudgets {
		total += budget
	}
	return total
}

// FeeMultiplier retorna 1 + taxa da agência + taxa de terceiros
func (p Params) FeeMultiplier() float64 {
	return 1 + p.AgencyFeeRate + p.ThirdPartyFeeRate
}

// TotalBudget avalia f(x) = (x + S) × (1 + r_a + r_t) + h
func (p Params) TotalBudget(targetAdBudget float64) float64 {
	return (targetAdBudget+p.CommittedTotal())*p.FeeMultiplier() + p.FixedAgencyCost
}

// Validate verifica se todos os campos são finitos e não negativos.
// Solve não chama Validate; cabe a quem chama decidir.
func (p Params) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"totalBudgetTarget", p.TotalBudgetTarget},
		{"agencyFeeRate", p.AgencyFeeRate},
		{"thirdPartyFeeRate", p.ThirdPartyFeeRate},
		{"fixedAgencyCost", p.FixedAgencyCost},
	}
	for i, budget := range p.CommittedAdBudgets {
		fields = append(fields, struct {
			name  string
			value float64
		}{committedFieldName(i), budget})
	}

	for _, field := range fields {
		if math.IsNaN(field.value) || math.IsInf(field.value, 0) {
			return &InvalidParamError{Field: field.name, Value: field.value, Err: ErrNonFiniteValue}
		}
		if field.value < 0 {
			return &InvalidParamError{Field: field.name, Value: field.value, Err: ErrNegativeValue}
		}
	}

	return nil
}

// Solve procura o maior orçamento x ≥ 0 para o anúncio alvo tal que f(x) fique a menos
// da tolerância do orçamento total. A busca avança com passo fixo enquanto está abaixo do
// orçamento e divide o passo pela metade a cada estouro.
//
// Na convergência o valor retornado é o último ponto abaixo do orçamento, não o x que
// satisfez a tolerância.
func Solve(params Params, opts ...Option) (Result, error) {
	o := options{
		maxIterations: DefaultMaxIterations,
		tolerance:     DefaultTolerance,
		initialStep:   DefaultInitialStep,
	}
	for _, opt := range opts {
		opt(&o)
	}

	committed := params.CommittedTotal()
	multiplier := params.FeeMultiplier()
	f := func(x float64) float64 {
		return (x+committed)*multiplier + params.FixedAgencyCost
	}

	x := 0.0
	step := o.initialStep
	lastFeasible := 0.0
	iteration := 0
	clamped := false

	for iteration < o.maxIterations {
		calculated := f(x)
		if o.observer != nil {
			o.observer(Iteration{Number: iteration, X: x, Calculated: calculated})
		}

		if math.Abs(calculated-params.TotalBudgetTarget) < o.tolerance {
			return params.result(lastFeasible, iteration, false), nil
		}

		if calculated > params.TotalBudgetTarget {
			step /= 2
			x -= step
		} else {
			lastFeasible = x
			x += step
		}

		if x < 0 {
			x = 0
			clamped = true
			break
		}

		iteration++
	}

	if clamped {
		return params.result(lastFeasible, iteration, true), nil
	}

	return Result{}, &NonConvergenceError{
		LastFeasible: lastFeasible,
		Iterations:   iteration,
	}
}

func (p Params) result(targetAdBudget float64, iterations int, clamped bool) Result {
	derived := p.TotalBudget(targetAdBudget)
	return Result{
		TargetAdBudget:     targetAdBudget,
		DerivedTotalBudget: derived,
		RemainingBudget:    p.TotalBudgetTarget - derived,
		Iterations:         iterations,
		Clamped:            clamped,
	}
}
