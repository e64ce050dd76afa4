// Package advice generates a canned plan-improvement narrative from the
// summary statistics of a projection run. It performs no simulation: the
// narrative is chosen by thresholds on the final projected assets.
package advice

import (
	"fmt"
	"strings"

	"github.com/lifeplan-tools/lifeplan-forecast/pkg/format"
	"github.com/lifeplan-tools/lifeplan-forecast/pkg/summary"
)

// Thresholds on final projected assets, in yen.
const (
	cautiousCeiling  = 10000000
	comfortableFloor = 50000000
)

// Input carries the projection outcome and the user's free-text goal
// description.
type Input struct {
	Goal    string
	Summary summary.Summary
}

// Generate returns a markdown narrative for the projection outcome.
func Generate(in Input) string {
	var b strings.Builder
	b.WriteString("## Life Plan Review\n\n")

	if goal := strings.TrimSpace(in.Goal); goal != "" {
		fmt.Fprintf(&b, "Your stated goal: %s\n\n", goal)
	}

	s := in.Summary
	fmt.Fprintf(&b, "Final projected assets: **%s**. Mean annual balance: %s (income %s, expenses %s).\n\n",
		format.Currency(s.FinalAssets), format.Currency(s.MeanBalance),
		format.Currency(s.MeanIncome), format.Currency(s.MeanExpense))

	switch {
	case s.FinalAssets < 0:
		fmt.Fprintf(&b, "Your plan runs out of money: assets first go negative in year %d and bottom out at %s in year %d.\n\n",
			s.FirstNegativeYear, format.Currency(s.MinAssets), s.MinAssetsYear)
		b.WriteString(`1. **Rebalance spending now.** Recurring expenses exceed what your income can sustain; target the largest categories first.
2. **Increase income.** A secondary income stream or delayed retirement step-down materially changes the trajectory.
3. **Re-examine large lump costs.** Deferring or reducing one-off and schooling lump sums buys years of runway.
`)
	case s.FinalAssets < cautiousCeiling:
		b.WriteString(`Your plan stays solvent but leaves a thin margin.

1. **Trim variable spending.** A modest cut of the leisure and dining categories compounds over the horizon.
2. **Review subscriptions and insurance.** Cancel what you no longer need and check that coverage matches your situation.
3. **Automate saving.** Move a fixed amount to investments each month before discretionary spending.
`)
	case s.FinalAssets < comfortableFloor:
		b.WriteString(`Your plan is on a steady footing.

1. **Make tax-advantaged accounts the default.** Max out the available tax-free investment allowances for long-term compounding.
2. **Diversify.** Spread investments across domestic and international index funds in line with your risk tolerance.
3. **Revisit the plan yearly.** Income steps, schooling, and housing decisions shift the projection; keep the inputs current.
`)
	default:
		b.WriteString(`Your plan is comfortably funded.

1. **Protect the downside.** With the goal within reach, consider shifting part of the portfolio toward lower-volatility assets.
2. **Plan the surplus deliberately.** Earmark excess assets for legacy, giving, or earlier retirement rather than letting them drift.
3. **Keep lifestyle inflation in check.** The projection assumes today's spending pattern; revisit it when income steps up.
`)
	}

	return b.String()
}
