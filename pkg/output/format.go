// Package output provides utilities for formatting and displaying
// projection results.
package output

import (
	"fmt"
	"strings"

	"github.com/lifeplan-tools/lifeplan-forecast/internal/sim"
	"github.com/lifeplan-tools/lifeplan-forecast/pkg/constants"
	"github.com/lifeplan-tools/lifeplan-forecast/pkg/format"
	"github.com/lifeplan-tools/lifeplan-forecast/pkg/summary"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ValidateFormat checks whether the requested output format is supported.
func ValidateFormat(outputFormat string) error {
	switch outputFormat {
	case constants.OutputFormatPretty, constants.OutputFormatCSV:
		return nil
	}
	return fmt.Errorf("invalid output format %q, expected %s or %s",
		outputFormat, constants.OutputFormatPretty, constants.OutputFormatCSV)
}

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(records []sim.YearlyRecord) {
	p := message.NewPrinter(language.Japanese)
	fmt.Printf("Year | Income          | Expense         | Balance         | Year-End Assets\n")
	fmt.Printf("____ | _______________ | _______________ | _______________ | _______________\n")
	for _, record := range records {
		_, _ = p.Printf("%4d | ¥%14.0f | ¥%14.0f | ¥%14.0f | ¥%14.0f\n",
			record.Year, record.Income, record.Expense, record.Balance, record.YearEndAssets)
	}

	s := summary.FromRecords(records)
	fmt.Printf("\nFinal year-end assets: %s\n", format.Currency(s.FinalAssets))
	if s.FirstNegativeYear > 0 {
		fmt.Printf("Warning: assets go negative in year %d, bottoming out at %s in year %d\n",
			s.FirstNegativeYear, format.Currency(s.MinAssets), s.MinAssetsYear)
	}
}

// CsvString returns the records in comma-separated value format.
func CsvString(records []sim.YearlyRecord) string {
	var b strings.Builder
	b.WriteString(`"year","income","expense","balance","yearEndAssets",` +
		`"recurringExpenses","insurancePremiums","loanPayment",` +
		`"schoolLumpSums","schoolAnnualCosts","oneOffExpenses","insurancePayouts"` + "\n")
	for _, r := range records {
		fmt.Fprintf(&b, `"%d","%.2f","%.2f","%.2f","%.2f","%.2f","%.2f","%.2f","%.2f","%.2f","%.2f","%.2f"`+"\n",
			r.Year, r.Income, r.Expense, r.Balance, r.YearEndAssets,
			r.RecurringExpenses, r.InsurancePremiums, r.LoanPayment,
			r.SchoolLumpSums, r.SchoolAnnualCosts, r.OneOffExpenses, r.InsurancePayouts)
	}
	return b.String()
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(records []sim.YearlyRecord) {
	fmt.Print(CsvString(records))
}
