// Package sim prices a sequential-pay mortgage structure by Monte Carlo:
// it projects collateral cashflows, routes them through the waterfall,
// discounts per-tranche receipts, and averages across independent paths.
package sim

import (
	"errors"
	"fmt"

	"github.com/meenmo/mbslib/collateral"
	"github.com/meenmo/mbslib/waterfall"
)

var (
	// ErrNoTranches is returned when a config defines no liability classes.
	ErrNoTranches = errors.New("no tranche definitions")
)

// Config holds every pricing input. Call Validate before simulating; the
// engines assume a validated config.
type Config struct {
	// Pool generation.
	PoolSize     int
	TermMonths   int
	PrincipalMin float64
	PrincipalMax float64
	RateMean     float64 // annual note rate, decimal
	RateStdDev   float64
	RateFloor    float64

	// Behavioral assumptions, annualized decimals.
	CPR      float64 // conditional prepayment rate
	CDR      float64 // conditional default rate
	Recovery float64 // fraction of defaulted balance recovered

	// Pricing.
	DiscountRate float64 // annual
	Months       int     // projection horizon
	Runs         int     // Monte Carlo paths
	Tranches     []waterfall.TrancheDef

	// Reproducibility and execution. A fixed Seed reproduces results
	// exactly at any worker count. Workers <= 0 means one per CPU.
	Seed    uint64
	Workers int
}

// DefaultConfig mirrors the reference deal: ~100mm of collateral notional
// against a 50/30/20mm Senior/Mezz/Equity stack.
var DefaultConfig = Config{
	PoolSize:     400,
	TermMonths:   360,
	PrincipalMin: 180_000,
	PrincipalMax: 320_000,
	RateMean:     0.045,
	RateStdDev:   0.005,
	RateFloor:    0.01,
	CPR:          0.08,
	CDR:          0.02,
	Recovery:     0.60,
	DiscountRate: 0.05,
	Months:       360,
	Runs:         50,
	Tranches: []waterfall.TrancheDef{
		{Name: "Senior", Face: 50_000_000, Coupon: 0.03},
		{Name: "Mezz", Face: 30_000_000, Coupon: 0.05},
		{Name: "Equity", Face: 20_000_000, Coupon: 0.00},
	},
	Seed: 1,
}

// Validate fails fast on inputs that would make the simulation meaningless.
// A config error aborts the whole run before any simulation work starts.
func (c Config) Validate() error {
	if c.PoolSize <= 0 {
		return fmt.Errorf("Validate: pool size must be positive, got %d", c.PoolSize)
	}
	if c.TermMonths <= 0 {
		return fmt.Errorf("Validate: term must be positive, got %d", c.TermMonths)
	}
	if c.PrincipalMin <= 0 || c.PrincipalMax < c.PrincipalMin {
		return fmt.Errorf("Validate: bad principal range [%v, %v]", c.PrincipalMin, c.PrincipalMax)
	}
	if c.RateStdDev < 0 {
		return fmt.Errorf("Validate: negative rate stdev %v", c.RateStdDev)
	}
	if c.RateFloor < 0 {
		return fmt.Errorf("Validate: negative rate floor %v", c.RateFloor)
	}
	if c.CPR < 0 || c.CPR > 1 {
		return fmt.Errorf("Validate: CPR %v outside [0, 1]", c.CPR)
	}
	if c.CDR < 0 || c.CDR > 1 {
		return fmt.Errorf("Validate: CDR %v outside [0, 1]", c.CDR)
	}
	if c.Recovery < 0 || c.Recovery > 1 {
		return fmt.Errorf("Validate: recovery %v outside [0, 1]", c.Recovery)
	}
	if c.DiscountRate < 0 {
		return fmt.Errorf("Validate: negative discount rate %v", c.DiscountRate)
	}
	if c.Months <= 0 {
		return fmt.Errorf("Validate: months must be positive, got %d", c.Months)
	}
	if c.Runs <= 0 {
		return fmt.Errorf("Validate: runs must be positive, got %d", c.Runs)
	}
	if len(c.Tranches) == 0 {
		return fmt.Errorf("Validate: %w", ErrNoTranches)
	}
	for _, def := range c.Tranches {
		if def.Name == "" {
			return fmt.Errorf("Validate: unnamed tranche")
		}
		if def.Face <= 0 {
			return fmt.Errorf("Validate: tranche %s has non-positive face %v", def.Name, def.Face)
		}
		if def.Coupon < 0 {
			return fmt.Errorf("Validate: tranche %s has negative coupon %v", def.Name, def.Coupon)
		}
	}
	return nil
}

func (c Config) generator() collateral.GeneratorConfig {
	return collateral.GeneratorConfig{
		Loans:        c.PoolSize,
		TermMonths:   c.TermMonths,
		PrincipalMin: c.PrincipalMin,
		PrincipalMax: c.PrincipalMax,
		RateMean:     c.RateMean,
		RateStdDev:   c.RateStdDev,
		RateFloor:    c.RateFloor,
	}
}

func (c Config) assumptions() collateral.Assumptions {
	return collateral.NewAssumptions(c.CPR, c.CDR, c.Recovery)
}
