package planfile_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifeplan-tools/lifeplan-forecast/internal/config"
	"github.com/lifeplan-tools/lifeplan-forecast/pkg/loans"
	"github.com/lifeplan-tools/lifeplan-forecast/pkg/planfile"
)

func samplePlan() config.Simulation {
	return config.Simulation{
		HorizonYears:          25,
		InitialAssets:         3500000,
		InvestmentReturnRate:  0.03,
		InflationRate:         0.01,
		IncomeGrowthRate:      0.02,
		IncomeGrowthStepYears: 3,
		Household: []config.Member{
			{Name: "primary", InitialAge: 40},
			{Name: "child", InitialAge: 8},
		},
		Income: config.Income{
			MonthlySalaryMain: 320000,
			MonthlySalarySub:  80000,
			AnnualBonus:       900000,
			Age60:             config.IncomeOverride{MonthlySalaryMain: 200000},
		},
		Expenses: config.Expenses{
			Monthly: map[string]float64{"housing": 110000, "food": 65000},
			Age65:   map[string]float64{"food": 45000},
		},
		School: map[string]config.SchoolStage{
			"university": {LumpSum: 800000, StartAge: 18, DurationYears: 4, AnnualCost: 1200000},
		},
		Insurance: []config.Policy{
			{Name: "endowment", MonthlyPremium: 12000, MaturityYear: 20, PayoutAmount: 3000000, StartYear: 1},
		},
		OneOff: []config.OneOffExpense{
			{Name: "car", Amount: 2500000, Year: 6},
		},
		Loan: loans.Loan{Principal: 28000000, AnnualRate: 0.013, TermYears: 35, StartYear: 2},
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	original := samplePlan()

	var buf bytes.Buffer
	require.NoError(t, planfile.Write(&buf, original))

	restored, err := planfile.Read(&buf)
	require.NoError(t, err)

	assert.Equal(t, original, restored)
}

func TestWriteFormat(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, planfile.Write(&buf, samplePlan()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, "key,value", lines[0])
	assert.Contains(t, lines, "horizonYears,25")
	assert.Contains(t, lines, "household.1.name,child")
	assert.Contains(t, lines, "income.age60.monthlySalaryMain,200000")
	assert.Contains(t, lines, "expenses.food,65000")
	assert.Contains(t, lines, "expenses.age65.food,45000")
	assert.Contains(t, lines, "school.university.startAge,18")
	assert.Contains(t, lines, "insurance.0.payoutAmount,3000000")
	assert.Contains(t, lines, "oneOff.0.year,6")
	assert.Contains(t, lines, "loan.annualRate,0.013")
}

func TestWriteDeterministic(t *testing.T) {
	var first, second bytes.Buffer
	require.NoError(t, planfile.Write(&first, samplePlan()))
	require.NoError(t, planfile.Write(&second, samplePlan()))
	assert.Equal(t, first.String(), second.String())
}

func TestReadPartialPlan(t *testing.T) {
	data := "key,value\nhorizonYears,10\nexpenses.food,50000\nhousehold.0.name,primary\n"
	plan, err := planfile.Read(strings.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, 10, plan.HorizonYears)
	assert.Equal(t, 50000.0, plan.Expenses.Monthly["food"])
	require.Len(t, plan.Household, 1)
	assert.Equal(t, "primary", plan.Household[0].Name)
	// Untouched parameters stay at their zero values for the caller to overlay.
	assert.Zero(t, plan.InitialAssets)
}

func TestReadSparseListIndexes(t *testing.T) {
	data := "key,value\ninsurance.2.monthlyPremium,5000\n"
	plan, err := planfile.Read(strings.NewReader(data))
	require.NoError(t, err)

	require.Len(t, plan.Insurance, 3)
	assert.Equal(t, 5000.0, plan.Insurance[2].MonthlyPremium)
	assert.Zero(t, plan.Insurance[0])
}

func TestReadWithoutHeader(t *testing.T) {
	plan, err := planfile.Read(strings.NewReader("horizonYears,7\n"))
	require.NoError(t, err)
	assert.Equal(t, 7, plan.HorizonYears)
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name          string
		data          string
		expectedField string
	}{
		{
			name:          "Unknown parameter",
			data:          "key,value\nnoSuchThing,1\n",
			expectedField: "noSuchThing",
		},
		{
			name:          "Unknown nested parameter",
			data:          "key,value\nincome.age60.pension,1\n",
			expectedField: "income.age60.pension",
		},
		{
			name:          "Non-numeric amount",
			data:          "key,value\ninitialAssets,plenty\n",
			expectedField: "initialAssets",
		},
		{
			name:          "Non-integer year",
			data:          "key,value\noneOff.0.year,sometime\n",
			expectedField: "oneOff.0.year",
		},
		{
			name:          "Bad list index",
			data:          "key,value\nhousehold.first.name,primary\n",
			expectedField: "household.first.name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := planfile.Read(strings.NewReader(tt.data))
			require.Error(t, err)

			var invalidErr *config.InvalidConfigurationError
			require.True(t, errors.As(err, &invalidErr), "error = %v", err)
			assert.Equal(t, tt.expectedField, invalidErr.Field)
		})
	}
}

func TestReadMalformedCsv(t *testing.T) {
	_, err := planfile.Read(strings.NewReader("key,value\nonly-one-column\n"))
	require.Error(t, err)
}
