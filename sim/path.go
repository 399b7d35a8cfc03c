package sim

import (
	"math"

	"golang.org/x/exp/rand"

	"github.com/meenmo/mbslib/collateral"
	"github.com/meenmo/mbslib/waterfall"
)

// PathResult is one path's discounted value per tranche, in tranche order,
// alongside the discounted total collateral cash for the same path. The
// waterfall can never distribute more than the collateral delivers, so the
// tranche PVs always sum to at most CollateralPV.
type PathResult struct {
	TranchePV    []float64
	CollateralPV float64
}

// PricePath prices one Monte Carlo path: generate a fresh pool from the
// source, instantiate fresh tranches, then month by month step the pool,
// run the waterfall, and discount each tranche's receipt at the
// monthly-equivalent discount rate.
//
// The loop stops early once no loan can produce further cashflow; this is
// an optimization, not a correctness requirement.
func PricePath(cfg Config, src rand.Source) (PathResult, error) {
	pool, err := collateral.Generate(cfg.generator(), src)
	if err != nil {
		return PathResult{}, err
	}

	rng := rand.New(src)
	assumptions := cfg.assumptions()
	tranches := waterfall.NewStructure(cfg.Tranches)

	res := PathResult{TranchePV: make([]float64, len(tranches))}
	monthlyDisc := cfg.DiscountRate / 12.0

	for month := 1; month <= cfg.Months; month++ {
		if !pool.AnyAlive() {
			break
		}

		cf := pool.Step(rng, assumptions)
		receipts := waterfall.Allocate(tranches, cf)

		discount := math.Pow(1+monthlyDisc, float64(month))
		for i, r := range receipts {
			res.TranchePV[i] += r.Cash() / discount
		}
		res.CollateralPV += cf.Cash() / discount
	}

	return res, nil
}
