package waterfall

import (
	"math"

	"github.com/meenmo/mbslib/collateral"
)

// Allocate runs one period of the waterfall, mutating tranche balances and
// returning per-tranche receipts in tranche order.
//
// Order of operations within the period is strict:
//
//  1. Credit losses write balances down junior first (reverse order),
//     cascading to the next-senior tranche. Losses never produce cash.
//  2. Interest accrues on post-loss balances and pays senior first;
//     unpaid accrual is dropped, never carried forward, and leftover
//     interest cash rolls into the principal bucket.
//  3. Principal (scheduled + prepayments + recoveries + leftover interest)
//     pays sequentially senior first, each tranche capped at its balance.
//
// A zero-balance tranche accrues nothing and receives nothing, so it stays
// retired for the rest of the path.
func Allocate(tranches []*Tranche, cf collateral.PeriodCashflow) []Receipt {
	receipts := make([]Receipt, len(tranches))

	loss := cf.Loss
	for i := len(tranches) - 1; i >= 0 && loss > 0; i-- {
		tr := tranches[i]
		hit := math.Min(tr.Balance, loss)
		tr.Balance -= hit
		loss -= hit
	}

	interestAvailable := cf.Interest
	for i, tr := range tranches {
		due := tr.Balance * tr.Coupon / 12.0
		paid := math.Min(due, interestAvailable)
		interestAvailable -= paid
		receipts[i].Interest = paid
	}

	principalAvailable := cf.Principal() + interestAvailable
	for i, tr := range tranches {
		paid := math.Min(tr.Balance, principalAvailable)
		tr.Balance -= paid
		principalAvailable -= paid
		receipts[i].Principal = paid
	}

	return receipts
}
