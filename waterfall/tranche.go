// Package waterfall allocates pooled collateral cashflows across a
// sequential-pay liability structure.
package waterfall

// TrancheDef is one liability class's deal terms: face amount and annual
// coupon. Slice order establishes priority, senior first, for interest and
// principal; loss absorption runs in reverse, most junior first.
type TrancheDef struct {
	Name   string
	Face   float64
	Coupon float64 // annual, decimal
}

// Tranche is per-path liability state. Balance only ever decreases, via
// principal paydown or loss write-down.
type Tranche struct {
	Name    string
	Balance float64
	Coupon  float64
}

// NewStructure instantiates fresh tranche state from deal terms. Each
// simulation path owns its own structure.
func NewStructure(defs []TrancheDef) []*Tranche {
	trs := make([]*Tranche, len(defs))
	for i, d := range defs {
		trs[i] = &Tranche{Name: d.Name, Balance: d.Face, Coupon: d.Coupon}
	}
	return trs
}

// Receipt is the cash paid to one tranche in one period.
type Receipt struct {
	Interest  float64
	Principal float64
}

// Cash is the total receipt for the period, the quantity a pricer discounts.
func (r Receipt) Cash() float64 {
	return r.Interest + r.Principal
}
