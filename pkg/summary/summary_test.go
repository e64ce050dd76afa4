package summary_test

import (
	"math"
	"testing"

	"github.com/lifeplan-tools/lifeplan-forecast/internal/sim"
	"github.com/lifeplan-tools/lifeplan-forecast/pkg/summary"
)

func TestFromRecords(t *testing.T) {
	records := []sim.YearlyRecord{
		{Year: 1, Income: 1000, Expense: 400, Balance: 600, YearEndAssets: 600},
		{Year: 2, Income: 1000, Expense: 1600, Balance: -600, YearEndAssets: 0},
		{Year: 3, Income: 1000, Expense: 2000, Balance: -1000, YearEndAssets: -1000},
		{Year: 4, Income: 3000, Expense: 400, Balance: 2600, YearEndAssets: 1600},
	}

	s := summary.FromRecords(records)

	if s.FinalAssets != 1600 {
		t.Errorf("FinalAssets = %.2f, expected 1600", s.FinalAssets)
	}
	if math.Abs(s.MeanBalance-400) > 0.01 {
		t.Errorf("MeanBalance = %.2f, expected 400", s.MeanBalance)
	}
	if math.Abs(s.MeanIncome-1500) > 0.01 {
		t.Errorf("MeanIncome = %.2f, expected 1500", s.MeanIncome)
	}
	if math.Abs(s.MeanExpense-1100) > 0.01 {
		t.Errorf("MeanExpense = %.2f, expected 1100", s.MeanExpense)
	}
	if s.FirstNegativeYear != 3 {
		t.Errorf("FirstNegativeYear = %d, expected 3", s.FirstNegativeYear)
	}
	if s.MinAssets != -1000 || s.MinAssetsYear != 3 {
		t.Errorf("MinAssets = %.2f in year %d, expected -1000 in year 3", s.MinAssets, s.MinAssetsYear)
	}
}

func TestFromRecordsNeverNegative(t *testing.T) {
	records := []sim.YearlyRecord{
		{Year: 1, YearEndAssets: 100},
		{Year: 2, YearEndAssets: 50},
		{Year: 3, YearEndAssets: 200},
	}

	s := summary.FromRecords(records)

	if s.FirstNegativeYear != 0 {
		t.Errorf("FirstNegativeYear = %d, expected 0 for a solvent run", s.FirstNegativeYear)
	}
	if s.MinAssets != 50 || s.MinAssetsYear != 2 {
		t.Errorf("MinAssets = %.2f in year %d, expected 50 in year 2", s.MinAssets, s.MinAssetsYear)
	}
}

func TestFromRecordsEmpty(t *testing.T) {
	if s := summary.FromRecords(nil); s != (summary.Summary{}) {
		t.Errorf("FromRecords(nil) = %+v, expected the zero summary", s)
	}
}
