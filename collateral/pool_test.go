package collateral_test

import (
	"math"
	"testing"

	"golang.org/x/exp/rand"

	"github.com/meenmo/mbslib/collateral"
)

func testGeneratorConfig() collateral.GeneratorConfig {
	return collateral.GeneratorConfig{
		Loans:        200,
		TermMonths:   360,
		PrincipalMin: 180_000,
		PrincipalMax: 320_000,
		RateMean:     0.045,
		RateStdDev:   0.005,
		RateFloor:    0.01,
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	t.Parallel()

	cfg := testGeneratorConfig()
	a, err := collateral.Generate(cfg, rand.NewSource(7))
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	b, err := collateral.Generate(cfg, rand.NewSource(7))
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	if len(a) != len(b) {
		t.Fatalf("pool sizes differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Balance != b[i].Balance || a[i].Rate != b[i].Rate || a[i].Payment != b[i].Payment {
			t.Fatalf("loan %d differs between identically seeded pools: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestGenerate_Ranges(t *testing.T) {
	t.Parallel()

	cfg := testGeneratorConfig()
	pool, err := collateral.Generate(cfg, rand.NewSource(8))
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	for i, m := range pool {
		if m.OriginalPrincipal < cfg.PrincipalMin || m.OriginalPrincipal > cfg.PrincipalMax {
			t.Fatalf("loan %d principal %v outside [%v, %v]", i, m.OriginalPrincipal, cfg.PrincipalMin, cfg.PrincipalMax)
		}
		if m.Rate < cfg.RateFloor {
			t.Fatalf("loan %d rate %v below floor %v", i, m.Rate, cfg.RateFloor)
		}
		if m.Remaining != cfg.TermMonths {
			t.Fatalf("loan %d remaining %d, want %d", i, m.Remaining, cfg.TermMonths)
		}
	}
}

func TestGenerate_RateFloorClips(t *testing.T) {
	t.Parallel()

	cfg := testGeneratorConfig()
	cfg.RateMean = -0.05 // every draw lands below the floor
	cfg.RateStdDev = 0

	pool, err := collateral.Generate(cfg, rand.NewSource(9))
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	for i, m := range pool {
		if m.Rate != cfg.RateFloor {
			t.Fatalf("loan %d rate %v, want clipped to %v", i, m.Rate, cfg.RateFloor)
		}
	}
}

func TestGenerate_InvalidSize(t *testing.T) {
	t.Parallel()

	cfg := testGeneratorConfig()
	cfg.Loans = 0
	if _, err := collateral.Generate(cfg, rand.NewSource(10)); err == nil {
		t.Fatal("expected error for zero pool size")
	}
}

func TestPool_StepAggregates(t *testing.T) {
	t.Parallel()

	m1, err := collateral.NewMortgage(200_000, 0.045, 360)
	if err != nil {
		t.Fatalf("NewMortgage error: %v", err)
	}
	m2, err := collateral.NewMortgage(300_000, 0.06, 360)
	if err != nil {
		t.Fatalf("NewMortgage error: %v", err)
	}
	pool := collateral.Pool{m1, m2}

	wantInterest := 200_000*0.045/12 + 300_000*0.06/12
	wantBalance := 500_000.0
	if math.Abs(pool.Balance()-wantBalance) > 1e-9 {
		t.Fatalf("pool balance: got %v, want %v", pool.Balance(), wantBalance)
	}

	rng := rand.New(rand.NewSource(11))
	cf := pool.Step(rng, collateral.Assumptions{})

	if math.Abs(cf.Interest-wantInterest) > 1e-9 {
		t.Fatalf("aggregate interest: got %v, want %v", cf.Interest, wantInterest)
	}
	wantScheduled := m1.Payment + m2.Payment - wantInterest
	if math.Abs(cf.ScheduledPrincipal-wantScheduled) > 1e-9 {
		t.Fatalf("aggregate scheduled principal: got %v, want %v", cf.ScheduledPrincipal, wantScheduled)
	}
	if !pool.AnyAlive() {
		t.Fatal("pool should still be alive after one month")
	}
}

func TestPool_AnyAlive(t *testing.T) {
	t.Parallel()

	m, err := collateral.NewMortgage(100_000, 0.04, 12)
	if err != nil {
		t.Fatalf("NewMortgage error: %v", err)
	}
	pool := collateral.Pool{m}

	rng := rand.New(rand.NewSource(12))
	for i := 0; i < 12; i++ {
		pool.Step(rng, collateral.Assumptions{})
	}
	if pool.AnyAlive() {
		t.Fatal("pool should be dead after full amortization")
	}
	if pool.Balance() != 0 {
		t.Fatalf("dead pool balance: got %v, want 0", pool.Balance())
	}

	// Stepping a dead pool stays a no-op.
	if cf := pool.Step(rng, collateral.Assumptions{}); cf != (collateral.PeriodCashflow{}) {
		t.Fatalf("dead pool produced cashflow: %+v", cf)
	}
}
