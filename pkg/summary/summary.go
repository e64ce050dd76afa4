// Package summary derives aggregate statistics from a projection run for
// the presentation layer and the advice generator.
package summary

import (
	"github.com/lifeplan-tools/lifeplan-forecast/internal/sim"
	"github.com/lifeplan-tools/lifeplan-forecast/pkg/mathutil"
)

// Summary holds the aggregate outcome of one projection run.
type Summary struct {
	FinalAssets float64 `json:"finalAssets"`
	MeanBalance float64 `json:"meanBalance"`
	MeanIncome  float64 `json:"meanIncome"`
	MeanExpense float64 `json:"meanExpense"`

	// FirstNegativeYear is the first year in which year-end assets go
	// negative, or 0 when they never do.
	FirstNegativeYear int `json:"firstNegativeYear"`

	MinAssets     float64 `json:"minAssets"`
	MinAssetsYear int     `json:"minAssetsYear"`
}

// FromRecords computes the summary statistics for a record sequence. An
// empty sequence yields the zero Summary.
func FromRecords(records []sim.YearlyRecord) Summary {
	if len(records) == 0 {
		return Summary{}
	}

	var s Summary
	s.MinAssets = records[0].YearEndAssets
	s.MinAssetsYear = records[0].Year

	var totalBalance, totalIncome, totalExpense float64
	for _, record := range records {
		totalBalance += record.Balance
		totalIncome += record.Income
		totalExpense += record.Expense
		if record.YearEndAssets < s.MinAssets {
			s.MinAssets = record.YearEndAssets
			s.MinAssetsYear = record.Year
		}
		if s.FirstNegativeYear == 0 && mathutil.IsNegative(record.YearEndAssets) {
			s.FirstNegativeYear = record.Year
		}
	}

	n := float64(len(records))
	s.FinalAssets = records[len(records)-1].YearEndAssets
	s.MeanBalance = totalBalance / n
	s.MeanIncome = totalIncome / n
	s.MeanExpense = totalExpense / n
	return s
}
