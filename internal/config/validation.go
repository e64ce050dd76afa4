package config

import (
	"fmt"
)

// InvalidConfigurationError reports a precondition violation in the
// simulation parameters, carrying the dotted path of the offending field.
type InvalidConfigurationError struct {
	Field  string
	Reason string
}

func (e *InvalidConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

func invalid(field, reason string) error {
	return &InvalidConfigurationError{Field: field, Reason: reason}
}

// Validate checks the simulation parameters against the engine's
// preconditions. It fails fast on the first violation; it never clamps.
func (s *Simulation) Validate() error {
	if s.HorizonYears <= 0 {
		return invalid("horizonYears", "must be a positive integer")
	}
	if s.InvestmentReturnRate < 0 {
		return invalid("investmentReturnRate", "must be non-negative")
	}
	if s.InflationRate < 0 {
		return invalid("inflationRate", "must be non-negative")
	}
	if s.IncomeGrowthRate < 0 {
		return invalid("incomeGrowthRate", "must be non-negative")
	}
	if s.IncomeGrowthStepYears < 1 {
		return invalid("incomeGrowthStepYears", "must be at least 1")
	}

	for i, member := range s.Household {
		if member.Name == "" {
			return invalid(fmt.Sprintf("household.%d.name", i), "must not be empty")
		}
		if member.InitialAge < 0 {
			return invalid(fmt.Sprintf("household.%d.initialAge", i), "must be non-negative")
		}
	}

	if err := validateIncome(s.Income); err != nil {
		return err
	}
	if err := validateExpenses(s.Expenses); err != nil {
		return err
	}

	for stage, school := range s.School {
		if school.LumpSum < 0 {
			return invalid(fmt.Sprintf("school.%s.lumpSum", stage), "must be non-negative")
		}
		if school.StartAge < 0 {
			return invalid(fmt.Sprintf("school.%s.startAge", stage), "must be non-negative")
		}
		if school.DurationYears < 0 {
			return invalid(fmt.Sprintf("school.%s.durationYears", stage), "must be non-negative")
		}
		if school.AnnualCost < 0 {
			return invalid(fmt.Sprintf("school.%s.annualCost", stage), "must be non-negative")
		}
	}

	for i, policy := range s.Insurance {
		if policy.MonthlyPremium < 0 {
			return invalid(fmt.Sprintf("insurance.%d.monthlyPremium", i), "must be non-negative")
		}
		if policy.PayoutAmount < 0 {
			return invalid(fmt.Sprintf("insurance.%d.payoutAmount", i), "must be non-negative")
		}
		if policy.MaturityYear < 0 {
			return invalid(fmt.Sprintf("insurance.%d.maturityYear", i), "must be non-negative")
		}
		if policy.StartYear < 0 {
			return invalid(fmt.Sprintf("insurance.%d.startYear", i), "must be non-negative")
		}
	}

	for i, expense := range s.OneOff {
		if expense.Amount < 0 {
			return invalid(fmt.Sprintf("oneOff.%d.amount", i), "must be non-negative")
		}
		if expense.Year < 0 {
			return invalid(fmt.Sprintf("oneOff.%d.year", i), "must be non-negative")
		}
	}

	if s.Loan.Principal < 0 {
		return invalid("loan.principal", "must be non-negative")
	}
	if s.Loan.AnnualRate < 0 {
		return invalid("loan.annualRate", "must be non-negative")
	}
	if s.Loan.TermYears < 0 {
		return invalid("loan.termYears", "must be non-negative")
	}
	if s.Loan.StartYear < 0 {
		return invalid("loan.startYear", "must be non-negative")
	}

	return nil
}

func validateIncome(income Income) error {
	if income.MonthlySalaryMain < 0 {
		return invalid("income.monthlySalaryMain", "must be non-negative")
	}
	if income.MonthlySalarySub < 0 {
		return invalid("income.monthlySalarySub", "must be non-negative")
	}
	if income.AnnualBonus < 0 {
		return invalid("income.annualBonus", "must be non-negative")
	}
	for label, override := range map[string]IncomeOverride{
		"income.age60": income.Age60,
		"income.age65": income.Age65,
	} {
		if override.MonthlySalaryMain < 0 {
			return invalid(label+".monthlySalaryMain", "must be non-negative")
		}
		if override.MonthlySalarySub < 0 {
			return invalid(label+".monthlySalarySub", "must be non-negative")
		}
		if override.AnnualBonus < 0 {
			return invalid(label+".annualBonus", "must be non-negative")
		}
	}
	return nil
}

func validateExpenses(expenses Expenses) error {
	for label, categories := range map[string]map[string]float64{
		"expenses":       expenses.Monthly,
		"expenses.age60": expenses.Age60,
		"expenses.age65": expenses.Age65,
	} {
		for category, amount := range categories {
			if amount < 0 {
				return invalid(fmt.Sprintf("%s.%s", label, category), "must be non-negative")
			}
		}
	}
	return nil
}

// ValidateWarnings performs general validation of the configuration and
// returns non-fatal warnings about parameters that will have no effect.
func (c *Configuration) ValidateWarnings() []string {
	var warnings []string
	plan := c.Plan

	if len(plan.Household) == 0 {
		warnings = append(warnings, "household is empty; age-indexed events and overrides will never apply")
	} else {
		refAge := plan.Household[0].InitialAge
		finalAge := refAge + plan.HorizonYears - 1
		for stage, school := range plan.School {
			if school.StartAge == 0 {
				continue
			}
			withinAnyMember := false
			for _, member := range plan.Household {
				if school.StartAge >= member.InitialAge && school.StartAge <= member.InitialAge+plan.HorizonYears-1 {
					withinAnyMember = true
					break
				}
			}
			if !withinAnyMember {
				warnings = append(warnings, fmt.Sprintf("school stage '%s' starts at age %d which no member reaches within the horizon", stage, school.StartAge))
			}
		}
		if finalAge < 60 && (plan.Income.Age60 != (IncomeOverride{}) || len(plan.Expenses.Age60) > 0) {
			warnings = append(warnings, fmt.Sprintf("age-60 overrides configured but the reference member only reaches age %d within the horizon", finalAge))
		}
		if finalAge < 65 && (plan.Income.Age65 != (IncomeOverride{}) || len(plan.Expenses.Age65) > 0) {
			warnings = append(warnings, fmt.Sprintf("age-65 overrides configured but the reference member only reaches age %d within the horizon", finalAge))
		}
	}

	for i, policy := range plan.Insurance {
		if policy.MaturityYear > plan.HorizonYears {
			warnings = append(warnings, fmt.Sprintf("insurance policy %d matures in year %d, after the %d-year horizon", i, policy.MaturityYear, plan.HorizonYears))
		}
	}

	for i, expense := range plan.OneOff {
		if expense.Year > plan.HorizonYears {
			warnings = append(warnings, fmt.Sprintf("one-off expense %d falls in year %d, after the %d-year horizon", i, expense.Year, plan.HorizonYears))
		}
	}

	if plan.Loan.Principal > 0 && plan.Loan.StartYear+plan.Loan.TermYears-1 > plan.HorizonYears {
		warnings = append(warnings, fmt.Sprintf("loan repayment extends to year %d, beyond the %d-year horizon", plan.Loan.StartYear+plan.Loan.TermYears-1, plan.HorizonYears))
	}

	return warnings
}
