// Package faq holds the static frequently-asked-questions content.
package faq

// Entry is one question/answer pair.
type Entry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Entries returns the FAQ content in display order.
func Entries() []Entry {
	return entries
}

var entries = []Entry{
	{
		Question: "What is a life plan?",
		Answer:   "A life plan maps your future income, expenses, and asset formation so you can tell whether your goals are achievable.",
	},
	{
		Question: "What does the simulation tell me?",
		Answer:   "From your current income, expenses, and assets it projects year-by-year savings and net worth over the chosen horizon.",
	},
	{
		Question: "Can I change the starting values?",
		Answer:   "Yes. Every household, income, and expense parameter can be adjusted freely and re-simulated.",
	},
	{
		Question: "How do I save my data?",
		Answer:   "Export the current parameters as a CSV file and import it later to pick up where you left off.",
	},
	{
		Question: "How do I use the improvement advice?",
		Answer:   "Describe your goal and the tool reviews the projection outcome and suggests concrete adjustments.",
	},
	{
		Question: "What happens when the family grows?",
		Answer:   "Add a household member and configure schooling stages; the projection accrues the lump sums and annual costs automatically.",
	},
	{
		Question: "How should I set the investment return rate?",
		Answer:   "Match it to your risk tolerance and actual portfolio: lower for conservative holdings, higher for equity-heavy ones.",
	},
	{
		Question: "How do I set a retirement savings target?",
		Answer:   "Work backwards from the annual spending you expect in retirement, or start from published household survey figures.",
	},
	{
		Question: "Can I model a mortgage?",
		Answer:   "Yes. Configure the loan principal, rate, term, and start year; the fixed monthly payment is amortized and the housing expense line is suppressed while the loan runs.",
	},
	{
		Question: "What does a negative year-end asset value mean?",
		Answer:   "The plan is infeasible as configured: cumulative spending outruns income and investment growth. It is a warning, not an error.",
	},
}
