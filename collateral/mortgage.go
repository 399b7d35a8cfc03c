// Package collateral models a pool of fixed-rate amortizing mortgages and
// their month-by-month cashflow behavior under prepayment and default
// assumptions.
package collateral

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/exp/rand"
)

var (
	// ErrNonPositivePrincipal is returned when a loan is created with a
	// principal at or below zero.
	ErrNonPositivePrincipal = errors.New("non-positive principal")
	// ErrNonPositiveTerm is returned when a loan is created with a term at
	// or below zero months.
	ErrNonPositiveTerm = errors.New("non-positive term")
	// ErrBadPayment is returned when the annuity formula produces a
	// non-finite or non-positive level payment.
	ErrBadPayment = errors.New("rate does not produce a finite positive payment")
)

// balanceEpsilon is the threshold below which a balance counts as paid off.
const balanceEpsilon = 1e-9

// Status tracks a loan's lifecycle. Every status other than StatusAlive is
// terminal: the loan produces no further cashflow for the rest of the path.
type Status int

const (
	StatusAlive Status = iota
	StatusPrepaid
	StatusDefaulted
	StatusMatured
)

func (s Status) String() string {
	switch s {
	case StatusAlive:
		return "ALIVE"
	case StatusPrepaid:
		return "PREPAID"
	case StatusDefaulted:
		return "DEFAULTED"
	case StatusMatured:
		return "MATURED"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Mortgage is a plain-vanilla fixed-rate fully amortizing loan.
//
// Balance only ever decreases; once Status leaves StatusAlive the loan is
// closed and Step returns all-zero cashflows.
type Mortgage struct {
	OriginalPrincipal float64
	Balance           float64
	Rate              float64 // annual note rate, decimal (0.045 == 4.5%)
	Payment           float64 // level monthly payment fixed at origination
	Remaining         int     // remaining scheduled months
	Status            Status
}

// NewMortgage builds a fully amortizing loan and computes its level monthly
// payment via the standard annuity formula:
//
//	payment = P * r / (1 - (1+r)^-n)
//
// where r is the monthly rate and n the term in months. A zero rate
// degenerates to straight-line principal, payment = P / n.
func NewMortgage(principal, annualRate float64, termMonths int) (*Mortgage, error) {
	if principal <= 0 || math.IsNaN(principal) || math.IsInf(principal, 0) {
		return nil, fmt.Errorf("NewMortgage: %w (%v)", ErrNonPositivePrincipal, principal)
	}
	if termMonths <= 0 {
		return nil, fmt.Errorf("NewMortgage: %w (%d)", ErrNonPositiveTerm, termMonths)
	}

	monthlyRate := annualRate / 12.0
	var payment float64
	if monthlyRate == 0 {
		payment = principal / float64(termMonths)
	} else {
		payment = principal * monthlyRate / (1 - math.Pow(1+monthlyRate, -float64(termMonths)))
	}
	if math.IsNaN(payment) || math.IsInf(payment, 0) || payment <= 0 {
		return nil, fmt.Errorf("NewMortgage: %w (rate %v, term %d)", ErrBadPayment, annualRate, termMonths)
	}

	return &Mortgage{
		OriginalPrincipal: principal,
		Balance:           principal,
		Rate:              annualRate,
		Payment:           payment,
		Remaining:         termMonths,
		Status:            StatusAlive,
	}, nil
}

// Assumptions are the per-period behavioral probabilities applied to every
// loan in a pool, already converted to monthly terms.
type Assumptions struct {
	MonthlyPrepay  float64 // single-month mortality derived from annual CPR
	MonthlyDefault float64 // single-month mortality derived from annual CDR
	Recovery       float64 // fraction of a defaulted balance returned as cash
}

// NewAssumptions converts annualized CPR/CDR to their monthly single-month
// mortalities, smm = 1 - (1-annual)^(1/12).
func NewAssumptions(cpr, cdr, recovery float64) Assumptions {
	return Assumptions{
		MonthlyPrepay:  annualToMonthly(cpr),
		MonthlyDefault: annualToMonthly(cdr),
		Recovery:       recovery,
	}
}

func annualToMonthly(rate float64) float64 {
	return 1 - math.Pow(1-rate, 1.0/12.0)
}

// Step advances the loan one month, mutating balance, remaining term and
// status, and returns the period's cashflow.
//
// Within the period the order is: scheduled amortization first, then a
// prepayment trial on the post-amortization balance, then a default trial
// for loans that did not prepay. A prepayment returns the entire remaining
// balance as cash; a default splits it into recovered cash and a permanent
// credit loss. Loans in a terminal status return an all-zero cashflow, so
// the pool can step every loan unconditionally.
func (m *Mortgage) Step(rng *rand.Rand, a Assumptions) PeriodCashflow {
	if m.Status != StatusAlive || m.Balance <= balanceEpsilon {
		return PeriodCashflow{}
	}

	interest := m.Balance * m.Rate / 12.0
	// Final-period true-up: never amortize past the outstanding balance.
	scheduled := math.Min(m.Payment-interest, m.Balance)
	if scheduled < 0 {
		scheduled = 0
	}
	remainder := m.Balance - scheduled
	m.Remaining--

	cf := PeriodCashflow{Interest: interest, ScheduledPrincipal: scheduled}

	switch {
	case remainder > balanceEpsilon && rng.Float64() < a.MonthlyPrepay:
		cf.Prepayment = remainder
		m.Balance = 0
		m.Status = StatusPrepaid
	case remainder > balanceEpsilon && rng.Float64() < a.MonthlyDefault:
		cf.Recovery = remainder * a.Recovery
		cf.Loss = remainder - cf.Recovery
		m.Balance = 0
		m.Status = StatusDefaulted
	default:
		m.Balance = remainder
		if m.Remaining <= 0 || m.Balance <= balanceEpsilon {
			m.Balance = 0
			m.Status = StatusMatured
		}
	}

	return cf
}
