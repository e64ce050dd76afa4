package sim

// YearlyRecord is the engine's output for one simulated year. Values are
// immutable once produced.
type YearlyRecord struct {
	// Year is the 1-based simulation year.
	Year int `json:"year"`

	// Ages maps member name to the member's age at the start of the year.
	Ages map[string]int `json:"ages"`

	Income        float64 `json:"income"`
	Expense       float64 `json:"expense"`
	Balance       float64 `json:"balance"`
	YearEndAssets float64 `json:"yearEndAssets"`

	// Itemized re-statements of the aggregate income/expense figures.
	RecurringExpenses float64 `json:"recurringExpenses"`
	InsurancePremiums float64 `json:"insurancePremiums"`
	LoanPayment       float64 `json:"loanPayment"`
	SchoolLumpSums    float64 `json:"schoolLumpSums"`
	SchoolAnnualCosts float64 `json:"schoolAnnualCosts"`
	OneOffExpenses    float64 `json:"oneOffExpenses"`
	InsurancePayouts  float64 `json:"insurancePayouts"`
}
