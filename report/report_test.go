package report_test

import (
	"testing"

	"github.com/meenmo/mbslib/report"
	"github.com/meenmo/mbslib/sim"
)

func TestFormat(t *testing.T) {
	t.Parallel()

	res := &sim.Result{
		Runs: 1,
		Tranches: []sim.TrancheValue{
			{Name: "Senior", PV: 48_123_456.78},
			{Name: "Mezz", PV: 29_000_000},
			{Name: "Equity", PV: 0},
		},
	}

	got := report.Format(res)
	want := "Senior: $48,123,457\nMezz: $29,000,000\nEquity: $0\n"
	if got != want {
		t.Fatalf("Format mismatch:\ngot  %q\nwant %q", got, want)
	}
}
