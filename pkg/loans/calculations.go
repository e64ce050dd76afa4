// Package loans provides fixed-rate loan amortization calculations.
package loans

import (
	"math"

	"github.com/lifeplan-tools/lifeplan-forecast/pkg/constants"
)

// Loan describes a fixed-rate, fixed-term amortizing loan. StartYear is the
// 1-based simulation year in which repayment begins.
type Loan struct {
	Principal  float64 `json:"principal" yaml:"principal"`
	AnnualRate float64 `json:"annualRate" yaml:"annualRate"`
	TermYears  int     `json:"termYears" yaml:"termYears"`
	StartYear  int     `json:"startYear" yaml:"startYear"`
}

// MonthlyPayment calculates the fixed monthly payment for a loan using the
// standard annuity formula. A non-positive principal or term means no loan
// and yields a zero payment.
func MonthlyPayment(principal, annualRate float64, termYears int) float64 {
	if principal <= 0 || termYears <= 0 {
		return 0
	}

	numPayments := float64(termYears * constants.MonthsPerYear)
	if annualRate == 0 {
		// For zero interest, simply divide the principal by term
		return principal / numPayments
	}

	monthlyRate := annualRate / constants.MonthsPerYear
	power := math.Pow(1.00+monthlyRate, numPayments)
	return principal * monthlyRate * power / (power - 1.00)
}

// MonthlyPayment returns the fixed monthly payment for the loan.
func (l Loan) MonthlyPayment() float64 {
	return MonthlyPayment(l.Principal, l.AnnualRate, l.TermYears)
}

// inTerm reports whether the given simulation year falls inside the
// repayment window [StartYear, StartYear+TermYears-1].
func (l Loan) inTerm(year int) bool {
	return l.TermYears > 0 && l.StartYear <= year && year <= l.StartYear+l.TermYears-1
}

// AnnualPayment returns the total loan cost for the given simulation year:
// twelve monthly payments while the repayment window is active, zero
// otherwise.
func (l Loan) AnnualPayment(year int) float64 {
	if !l.inTerm(year) {
		return 0
	}
	return l.MonthlyPayment() * constants.MonthsPerYear
}

// CoversHousing reports whether the loan covers housing costs in the given
// year, which suppresses the recurring housing expense line.
func (l Loan) CoversHousing(year int) bool {
	return l.Principal > 0 && l.inTerm(year)
}
