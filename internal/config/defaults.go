package config

import "github.com/lifeplan-tools/lifeplan-forecast/pkg/constants"

// DefaultSimulation returns the standard starter plan: a 30-year horizon
// with typical household income and expense levels in yen. Callers use it
// as the baseline when building a plan from partial input.
func DefaultSimulation() Simulation {
	return Simulation{
		HorizonYears:          30,
		InitialAssets:         5000000,
		InvestmentReturnRate:  0.03,
		InflationRate:         0.01,
		IncomeGrowthRate:      0,
		IncomeGrowthStepYears: 1,
		Household: []Member{
			{Name: "primary", InitialAge: 30},
		},
		Income: Income{
			MonthlySalaryMain: 300000,
			MonthlySalarySub:  0,
			AnnualBonus:       600000,
		},
		Expenses: Expenses{
			Monthly: map[string]float64{
				constants.HousingCategory: 100000,
				"food":                    60000,
				"transportation":          20000,
				"education":               0,
				"utilities":               25000,
				"communication":           10000,
				"leisure":                 30000,
				"medical":                 10000,
				"other":                   20000,
			},
		},
	}
}
