package collateral

// PeriodCashflow is one month of collateral cash, split by source.
//
// Amounts are in currency units. Loss is the unrecovered part of defaulted
// balances: a write-down passed to the liability side, not cash.
type PeriodCashflow struct {
	Interest           float64
	ScheduledPrincipal float64
	Prepayment         float64
	Recovery           float64
	Loss               float64
}

// Principal is the total principal cash for the period: scheduled
// amortization plus prepayments plus default recoveries.
func (c PeriodCashflow) Principal() float64 {
	return c.ScheduledPrincipal + c.Prepayment + c.Recovery
}

// Cash is the total cash delivered to the structure this period.
func (c PeriodCashflow) Cash() float64 {
	return c.Interest + c.Principal()
}

// Add accumulates another cashflow into c, field by field.
func (c *PeriodCashflow) Add(o PeriodCashflow) {
	c.Interest += o.Interest
	c.ScheduledPrincipal += o.ScheduledPrincipal
	c.Prepayment += o.Prepayment
	c.Recovery += o.Recovery
	c.Loss += o.Loss
}
