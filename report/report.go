// Package report renders pricing results for terminal output.
package report

import (
	"fmt"
	"strings"

	"github.com/leekchan/accounting"

	"github.com/meenmo/mbslib/sim"
)

// Format renders one "Name: $X,XXX,XXX" line per tranche, deal order.
func Format(res *sim.Result) string {
	ac := accounting.Accounting{Symbol: "$", Precision: 0}
	var b strings.Builder
	for _, tv := range res.Tranches {
		fmt.Fprintf(&b, "%s: %s\n", tv.Name, ac.FormatMoney(tv.PV))
	}
	return b.String()
}

// FormatVerbose additionally shows each estimate's Monte Carlo standard
// error and the number of paths.
func FormatVerbose(res *sim.Result) string {
	ac := accounting.Accounting{Symbol: "$", Precision: 0}
	var b strings.Builder
	fmt.Fprintf(&b, "runs: %d\n", res.Runs)
	for _, tv := range res.Tranches {
		fmt.Fprintf(&b, "%s: %s (se %s)\n", tv.Name, ac.FormatMoney(tv.PV), ac.FormatMoney(tv.StdErr))
	}
	return b.String()
}
