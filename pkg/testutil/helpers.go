// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/lifeplan-tools/lifeplan-forecast/internal/config"
	"github.com/lifeplan-tools/lifeplan-forecast/internal/sim"
)

// BaselinePlan returns a minimal valid simulation used as the starting
// point across tests: a 5-year horizon with flat income and expenses and
// every rate and event feature disabled.
func BaselinePlan() config.Simulation {
	return config.Simulation{
		HorizonYears:          5,
		InitialAssets:         1000000,
		InvestmentReturnRate:  0,
		InflationRate:         0,
		IncomeGrowthRate:      0,
		IncomeGrowthStepYears: 1,
		Household: []config.Member{
			{Name: "primary", InitialAge: 30},
		},
		Income: config.Income{
			MonthlySalaryMain: 50000,
		},
		Expenses: config.Expenses{
			Monthly: map[string]float64{
				"living": 400000.0 / 12,
			},
		},
	}
}

// RecordForYear finds a record by year in the results slice.
// Returns a pointer to the record if found, nil otherwise.
func RecordForYear(records []sim.YearlyRecord, year int) *sim.YearlyRecord {
	for i := range records {
		if records[i].Year == year {
			return &records[i]
		}
	}
	return nil
}
