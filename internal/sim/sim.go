// Package sim implements the annual life-plan projection engine. It walks
// years 1..N over a validated simulation configuration and produces one
// YearlyRecord per year.
package sim

import (
	"fmt"
	"math"

	"github.com/lifeplan-tools/lifeplan-forecast/internal/config"
	"github.com/lifeplan-tools/lifeplan-forecast/pkg/constants"
	"go.uber.org/zap"
)

// state is the carried per-year fold state. The crossed60/crossed65 flags
// are one-shot: once set they never revert.
type state struct {
	assets     float64
	salaryMain float64
	salarySub  float64
	bonus      float64
	expenses   map[string]float64
	ages       []int
	crossed60  bool
	crossed65  bool
}

func newState(plan config.Simulation) *state {
	st := &state{
		assets:     plan.InitialAssets,
		salaryMain: plan.Income.MonthlySalaryMain,
		salarySub:  plan.Income.MonthlySalarySub,
		bonus:      plan.Income.AnnualBonus,
		expenses:   make(map[string]float64, len(plan.Expenses.Monthly)),
		ages:       make([]int, len(plan.Household)),
	}
	for category, amount := range plan.Expenses.Monthly {
		st.expenses[category] = amount
	}
	for i, member := range plan.Household {
		st.ages[i] = member.InitialAge
	}
	return st
}

// Project computes the year-by-year projection for the given configuration.
// It validates the plan first and returns a *config.InvalidConfigurationError
// on any precondition violation; otherwise it always returns a complete
// sequence of exactly HorizonYears records.
func Project(logger *zap.Logger, conf config.Configuration) ([]YearlyRecord, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	plan := conf.Plan
	if err := plan.Validate(); err != nil {
		return nil, err
	}

	st := newState(plan)
	records := make([]YearlyRecord, 0, plan.HorizonYears)

	for year := 1; year <= plan.HorizonYears; year++ {
		st.applyIncomeGrowth(plan, year)
		st.applyAgeOverrides(logger, plan, year)

		payouts := maturityPayouts(plan.Insurance, year)
		income := (st.salaryMain+st.salarySub)*constants.MonthsPerYear + st.bonus + payouts

		recurring := st.recurringExpenses(plan, year)
		premiums := insurancePremiums(plan.Insurance, year)
		loanPayment := plan.Loan.AnnualPayment(year)
		lumpSums, annualCosts := st.schoolCosts(plan)
		oneOffs := oneOffExpenses(plan.OneOff, year)

		expense := recurring + premiums + loanPayment + lumpSums + annualCosts + oneOffs
		balance := income - expense
		st.assets = st.assets*(1+plan.InvestmentReturnRate) + balance

		records = append(records, YearlyRecord{
			Year:              year,
			Ages:              st.ageSnapshot(plan.Household),
			Income:            income,
			Expense:           expense,
			Balance:           balance,
			YearEndAssets:     st.assets,
			RecurringExpenses: recurring,
			InsurancePremiums: premiums,
			LoanPayment:       loanPayment,
			SchoolLumpSums:    lumpSums,
			SchoolAnnualCosts: annualCosts,
			OneOffExpenses:    oneOffs,
			InsurancePayouts:  payouts,
		})

		for i := range st.ages {
			st.ages[i]++
		}
	}

	logger.Debug(fmt.Sprintf("projected %d years, final assets %.2f", plan.HorizonYears, st.assets),
		zap.String("op", "sim.Project"),
	)

	return records, nil
}

// applyIncomeGrowth escalates the income components every
// IncomeGrowthStepYears years. Growth stops permanently once either age
// override has fired, so the discrete overrides are never escalated on top.
func (st *state) applyIncomeGrowth(plan config.Simulation, year int) {
	if st.crossed60 || st.crossed65 {
		return
	}
	if year <= 1 || (year-1)%plan.IncomeGrowthStepYears != 0 {
		return
	}
	growth := 1 + plan.IncomeGrowthRate
	st.salaryMain *= growth
	st.salarySub *= growth
	st.bonus *= growth
}

// applyAgeOverrides replaces income and expense components once the
// reference member crosses each age threshold. Each threshold fires at most
// once; the 65 overrides are applied after the 60 overrides and win on any
// field both configure. A zero override value leaves the current component
// untouched.
func (st *state) applyAgeOverrides(logger *zap.Logger, plan config.Simulation, year int) {
	if len(st.ages) == 0 {
		return
	}

	refAge := st.ages[0]
	if refAge >= constants.Age60Threshold && !st.crossed60 {
		st.applyOverride(plan.Income.Age60, plan.Expenses.Age60)
		st.crossed60 = true
		logger.Debug(fmt.Sprintf("year %d: reference member reached age %d, applied age-60 overrides", year, refAge),
			zap.String("op", "sim.applyAgeOverrides"),
		)
	}
	if refAge >= constants.Age65Threshold && !st.crossed65 {
		st.applyOverride(plan.Income.Age65, plan.Expenses.Age65)
		st.crossed65 = true
		logger.Debug(fmt.Sprintf("year %d: reference member reached age %d, applied age-65 overrides", year, refAge),
			zap.String("op", "sim.applyAgeOverrides"),
		)
	}
}

func (st *state) applyOverride(income config.IncomeOverride, expenses map[string]float64) {
	if income.MonthlySalaryMain != 0 {
		st.salaryMain = income.MonthlySalaryMain
	}
	if income.MonthlySalarySub != 0 {
		st.salarySub = income.MonthlySalarySub
	}
	if income.AnnualBonus != 0 {
		st.bonus = income.AnnualBonus
	}
	for category, amount := range expenses {
		if amount != 0 {
			st.expenses[category] = amount
		}
	}
}

// recurringExpenses sums the current nominal monthly expense components,
// excluding the housing line while the mortgage covers it, annualizes the
// total and applies the accumulated inflation factor. The inflation exponent
// counts from the year-1 baseline and is unaffected by override
// replacements of the nominal amounts.
func (st *state) recurringExpenses(plan config.Simulation, year int) float64 {
	monthly := 0.0
	for category, amount := range st.expenses {
		if category == constants.HousingCategory && plan.Loan.CoversHousing(year) {
			continue
		}
		monthly += amount
	}
	return monthly * constants.MonthsPerYear * math.Pow(1+plan.InflationRate, float64(year-1))
}

// schoolCosts accrues lump sums and enrollment costs for every household
// member at their start-of-year age. Overlapping stages all contribute.
func (st *state) schoolCosts(plan config.Simulation) (lumpSums, annualCosts float64) {
	for _, age := range st.ages {
		for _, stage := range plan.School {
			if stage.StartAge <= 0 {
				continue
			}
			if age == stage.StartAge {
				lumpSums += stage.LumpSum
			}
			if age >= stage.StartAge && age <= stage.StartAge+stage.DurationYears-1 {
				annualCosts += stage.AnnualCost
			}
		}
	}
	return lumpSums, annualCosts
}

func (st *state) ageSnapshot(household []config.Member) map[string]int {
	ages := make(map[string]int, len(household))
	for i, member := range household {
		ages[member.Name] = st.ages[i]
	}
	return ages
}

// insurancePremiums sums twelve monthly premiums for every policy that has
// started by the given year. A StartYear of 0 means the policy never starts.
// Premiums run through the horizon once started.
func insurancePremiums(policies []config.Policy, year int) float64 {
	total := 0.0
	for _, policy := range policies {
		if policy.StartYear > 0 && policy.StartYear <= year {
			total += policy.MonthlyPremium * constants.MonthsPerYear
		}
	}
	return total
}

// maturityPayouts sums the payout of every policy maturing in the given
// year. A MaturityYear of 0 means the policy never matures.
func maturityPayouts(policies []config.Policy, year int) float64 {
	total := 0.0
	for _, policy := range policies {
		if policy.MaturityYear > 0 && policy.MaturityYear == year {
			total += policy.PayoutAmount
		}
	}
	return total
}

func oneOffExpenses(expenses []config.OneOffExpense, year int) float64 {
	total := 0.0
	for _, expense := range expenses {
		if expense.Year == year {
			total += expense.Amount
		}
	}
	return total
}
