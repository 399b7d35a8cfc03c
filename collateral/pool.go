package collateral

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Pool is the collateral backing one simulation path. Aggregation is
// order-independent. A Pool is owned by exactly one path and never shared.
type Pool []*Mortgage

// Step advances every loan one month and aggregates their cashflows.
func (p Pool) Step(rng *rand.Rand, a Assumptions) PeriodCashflow {
	var agg PeriodCashflow
	for _, m := range p {
		agg.Add(m.Step(rng, a))
	}
	return agg
}

// Balance returns the aggregate outstanding principal.
func (p Pool) Balance() float64 {
	var total float64
	for _, m := range p {
		total += m.Balance
	}
	return total
}

// AnyAlive reports whether any loan can still produce cashflow.
func (p Pool) AnyAlive() bool {
	for _, m := range p {
		if m.Status == StatusAlive {
			return true
		}
	}
	return false
}

// GeneratorConfig parameterizes synthetic pool generation.
//
// Real loan-tape ingestion can replace Generate entirely: any constructor
// that yields a Pool of valid mortgages satisfies the same contract.
type GeneratorConfig struct {
	Loans        int
	TermMonths   int
	PrincipalMin float64
	PrincipalMax float64
	RateMean     float64 // annual note rate, decimal
	RateStdDev   float64
	RateFloor    float64 // lower clip keeping drawn rates positive
}

// Generate builds a pool of independently parameterized loans: principal
// uniform in [PrincipalMin, PrincipalMax], rate Gaussian around RateMean
// clipped at RateFloor. It is a pure function of the random source, so the
// same source state yields the same pool.
func Generate(cfg GeneratorConfig, src rand.Source) (Pool, error) {
	if cfg.Loans <= 0 {
		return nil, fmt.Errorf("Generate: pool size must be positive, got %d", cfg.Loans)
	}

	principal := distuv.Uniform{Min: cfg.PrincipalMin, Max: cfg.PrincipalMax, Src: src}
	rate := distuv.Normal{Mu: cfg.RateMean, Sigma: cfg.RateStdDev, Src: src}

	pool := make(Pool, 0, cfg.Loans)
	for i := 0; i < cfg.Loans; i++ {
		r := math.Max(cfg.RateFloor, rate.Rand())
		m, err := NewMortgage(principal.Rand(), r, cfg.TermMonths)
		if err != nil {
			return nil, fmt.Errorf("Generate: loan %d: %w", i, err)
		}
		pool = append(pool, m)
	}
	return pool, nil
}
