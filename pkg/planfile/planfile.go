// Package planfile reads and writes the simulation parameters as a
// two-column CSV of dotted paths and scalar values. List entries are
// addressed by numeric index segments (e.g. household.0.name). This is the
// exchange format for saving and restoring a plan; the engine never touches
// it.
package planfile

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/lifeplan-tools/lifeplan-forecast/internal/config"
)

const (
	headerKey   = "key"
	headerValue = "value"
)

// Write serializes the plan to CSV in a deterministic order: scalar
// parameters first, then household, income, expenses, school, insurance,
// one-off, and loan sections.
func Write(w io.Writer, plan config.Simulation) error {
	cw := csv.NewWriter(w)
	rows := flatten(plan)

	if err := cw.Write([]string{headerKey, headerValue}); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func flatten(plan config.Simulation) [][]string {
	var rows [][]string
	add := func(key string, value interface{}) {
		rows = append(rows, []string{key, formatValue(value)})
	}

	add("horizonYears", plan.HorizonYears)
	add("initialAssets", plan.InitialAssets)
	add("investmentReturnRate", plan.InvestmentReturnRate)
	add("inflationRate", plan.InflationRate)
	add("incomeGrowthRate", plan.IncomeGrowthRate)
	add("incomeGrowthStepYears", plan.IncomeGrowthStepYears)

	for i, member := range plan.Household {
		add(fmt.Sprintf("household.%d.name", i), member.Name)
		add(fmt.Sprintf("household.%d.initialAge", i), member.InitialAge)
	}

	add("income.monthlySalaryMain", plan.Income.MonthlySalaryMain)
	add("income.monthlySalarySub", plan.Income.MonthlySalarySub)
	add("income.annualBonus", plan.Income.AnnualBonus)
	for _, override := range []struct {
		label  string
		values config.IncomeOverride
	}{
		{"income.age60", plan.Income.Age60},
		{"income.age65", plan.Income.Age65},
	} {
		if override.values == (config.IncomeOverride{}) {
			continue
		}
		add(override.label+".monthlySalaryMain", override.values.MonthlySalaryMain)
		add(override.label+".monthlySalarySub", override.values.MonthlySalarySub)
		add(override.label+".annualBonus", override.values.AnnualBonus)
	}

	for _, section := range []struct {
		label      string
		categories map[string]float64
	}{
		{"expenses", plan.Expenses.Monthly},
		{"expenses.age60", plan.Expenses.Age60},
		{"expenses.age65", plan.Expenses.Age65},
	} {
		for _, category := range sortedKeys(section.categories) {
			add(section.label+"."+category, section.categories[category])
		}
	}

	for _, stage := range sortedStageKeys(plan.School) {
		school := plan.School[stage]
		add(fmt.Sprintf("school.%s.lumpSum", stage), school.LumpSum)
		add(fmt.Sprintf("school.%s.startAge", stage), school.StartAge)
		add(fmt.Sprintf("school.%s.durationYears", stage), school.DurationYears)
		add(fmt.Sprintf("school.%s.annualCost", stage), school.AnnualCost)
	}

	for i, policy := range plan.Insurance {
		add(fmt.Sprintf("insurance.%d.name", i), policy.Name)
		add(fmt.Sprintf("insurance.%d.monthlyPremium", i), policy.MonthlyPremium)
		add(fmt.Sprintf("insurance.%d.maturityYear", i), policy.MaturityYear)
		add(fmt.Sprintf("insurance.%d.payoutAmount", i), policy.PayoutAmount)
		add(fmt.Sprintf("insurance.%d.startYear", i), policy.StartYear)
	}

	for i, expense := range plan.OneOff {
		add(fmt.Sprintf("oneOff.%d.name", i), expense.Name)
		add(fmt.Sprintf("oneOff.%d.amount", i), expense.Amount)
		add(fmt.Sprintf("oneOff.%d.year", i), expense.Year)
	}

	add("loan.principal", plan.Loan.Principal)
	add("loan.annualRate", plan.Loan.AnnualRate)
	add("loan.termYears", plan.Loan.TermYears)
	add("loan.startYear", plan.Loan.StartYear)

	return rows
}

// Read parses a plan CSV. Only paths present in the file are populated;
// the caller decides whether to overlay them on defaults. Unknown paths and
// malformed values are reported as *config.InvalidConfigurationError.
func Read(r io.Reader) (config.Simulation, error) {
	var plan config.Simulation
	plan.Expenses.Monthly = make(map[string]float64)

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2

	first := true
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return plan, fmt.Errorf("reading plan csv: %w", err)
		}
		if first {
			first = false
			if strings.EqualFold(row[0], headerKey) {
				continue
			}
		}
		if err := apply(&plan, row[0], row[1]); err != nil {
			return plan, err
		}
	}
	return plan, nil
}

func apply(plan *config.Simulation, path, value string) error {
	segments := strings.Split(path, ".")
	switch segments[0] {
	case "horizonYears":
		return setInt(&plan.HorizonYears, path, value)
	case "initialAssets":
		return setFloat(&plan.InitialAssets, path, value)
	case "investmentReturnRate":
		return setFloat(&plan.InvestmentReturnRate, path, value)
	case "inflationRate":
		return setFloat(&plan.InflationRate, path, value)
	case "incomeGrowthRate":
		return setFloat(&plan.IncomeGrowthRate, path, value)
	case "incomeGrowthStepYears":
		return setInt(&plan.IncomeGrowthStepYears, path, value)
	case "household":
		return applyHousehold(plan, segments, path, value)
	case "income":
		return applyIncome(plan, segments, path, value)
	case "expenses":
		return applyExpenses(plan, segments, path, value)
	case "school":
		return applySchool(plan, segments, path, value)
	case "insurance":
		return applyInsurance(plan, segments, path, value)
	case "oneOff":
		return applyOneOff(plan, segments, path, value)
	case "loan":
		return applyLoan(plan, segments, path, value)
	}
	return badPath(path, "unknown parameter")
}

func applyHousehold(plan *config.Simulation, segments []string, path, value string) error {
	if len(segments) != 3 {
		return badPath(path, "expected household.<index>.<field>")
	}
	index, err := listIndex(segments[1], path)
	if err != nil {
		return err
	}
	for len(plan.Household) <= index {
		plan.Household = append(plan.Household, config.Member{})
	}
	member := &plan.Household[index]
	switch segments[2] {
	case "name":
		member.Name = value
		return nil
	case "initialAge":
		return setInt(&member.InitialAge, path, value)
	}
	return badPath(path, "unknown parameter")
}

func applyIncome(plan *config.Simulation, segments []string, path, value string) error {
	if len(segments) == 2 {
		switch segments[1] {
		case "monthlySalaryMain":
			return setFloat(&plan.Income.MonthlySalaryMain, path, value)
		case "monthlySalarySub":
			return setFloat(&plan.Income.MonthlySalarySub, path, value)
		case "annualBonus":
			return setFloat(&plan.Income.AnnualBonus, path, value)
		}
		return badPath(path, "unknown parameter")
	}

	if len(segments) == 3 {
		var override *config.IncomeOverride
		switch segments[1] {
		case "age60":
			override = &plan.Income.Age60
		case "age65":
			override = &plan.Income.Age65
		default:
			return badPath(path, "unknown parameter")
		}
		switch segments[2] {
		case "monthlySalaryMain":
			return setFloat(&override.MonthlySalaryMain, path, value)
		case "monthlySalarySub":
			return setFloat(&override.MonthlySalarySub, path, value)
		case "annualBonus":
			return setFloat(&override.AnnualBonus, path, value)
		}
		return badPath(path, "unknown parameter")
	}

	return badPath(path, "unknown parameter")
}

func applyExpenses(plan *config.Simulation, segments []string, path, value string) error {
	var categories *map[string]float64
	var category string
	switch {
	case len(segments) == 2:
		categories = &plan.Expenses.Monthly
		category = segments[1]
	case len(segments) == 3 && segments[1] == "age60":
		categories = &plan.Expenses.Age60
		category = segments[2]
	case len(segments) == 3 && segments[1] == "age65":
		categories = &plan.Expenses.Age65
		category = segments[2]
	default:
		return badPath(path, "expected expenses.<category>")
	}
	if *categories == nil {
		*categories = make(map[string]float64)
	}
	amount, err := parseFloat(path, value)
	if err != nil {
		return err
	}
	(*categories)[category] = amount
	return nil
}

func applySchool(plan *config.Simulation, segments []string, path, value string) error {
	if len(segments) != 3 {
		return badPath(path, "expected school.<stage>.<field>")
	}
	if plan.School == nil {
		plan.School = make(map[string]config.SchoolStage)
	}
	stage := plan.School[segments[1]]
	var err error
	switch segments[2] {
	case "lumpSum":
		err = setFloat(&stage.LumpSum, path, value)
	case "startAge":
		err = setInt(&stage.StartAge, path, value)
	case "durationYears":
		err = setInt(&stage.DurationYears, path, value)
	case "annualCost":
		err = setFloat(&stage.AnnualCost, path, value)
	default:
		return badPath(path, "unknown parameter")
	}
	if err != nil {
		return err
	}
	plan.School[segments[1]] = stage
	return nil
}

func applyInsurance(plan *config.Simulation, segments []string, path, value string) error {
	if len(segments) != 3 {
		return badPath(path, "expected insurance.<index>.<field>")
	}
	index, err := listIndex(segments[1], path)
	if err != nil {
		return err
	}
	for len(plan.Insurance) <= index {
		plan.Insurance = append(plan.Insurance, config.Policy{})
	}
	policy := &plan.Insurance[index]
	switch segments[2] {
	case "name":
		policy.Name = value
		return nil
	case "monthlyPremium":
		return setFloat(&policy.MonthlyPremium, path, value)
	case "maturityYear":
		return setInt(&policy.MaturityYear, path, value)
	case "payoutAmount":
		return setFloat(&policy.PayoutAmount, path, value)
	case "startYear":
		return setInt(&policy.StartYear, path, value)
	}
	return badPath(path, "unknown parameter")
}

func applyOneOff(plan *config.Simulation, segments []string, path, value string) error {
	if len(segments) != 3 {
		return badPath(path, "expected oneOff.<index>.<field>")
	}
	index, err := listIndex(segments[1], path)
	if err != nil {
		return err
	}
	for len(plan.OneOff) <= index {
		plan.OneOff = append(plan.OneOff, config.OneOffExpense{})
	}
	expense := &plan.OneOff[index]
	switch segments[2] {
	case "name":
		expense.Name = value
		return nil
	case "amount":
		return setFloat(&expense.Amount, path, value)
	case "year":
		return setInt(&expense.Year, path, value)
	}
	return badPath(path, "unknown parameter")
}

func applyLoan(plan *config.Simulation, segments []string, path, value string) error {
	if len(segments) != 2 {
		return badPath(path, "expected loan.<field>")
	}
	switch segments[1] {
	case "principal":
		return setFloat(&plan.Loan.Principal, path, value)
	case "annualRate":
		return setFloat(&plan.Loan.AnnualRate, path, value)
	case "termYears":
		return setInt(&plan.Loan.TermYears, path, value)
	case "startYear":
		return setInt(&plan.Loan.StartYear, path, value)
	}
	return badPath(path, "unknown parameter")
}

func listIndex(segment, path string) (int, error) {
	index, err := strconv.Atoi(segment)
	if err != nil || index < 0 {
		return 0, badPath(path, "list index must be a non-negative integer")
	}
	return index, nil
}

func setFloat(target *float64, path, value string) error {
	parsed, err := parseFloat(path, value)
	if err != nil {
		return err
	}
	*target = parsed
	return nil
}

func parseFloat(path, value string) (float64, error) {
	parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, badPath(path, fmt.Sprintf("not a number: %q", value))
	}
	return parsed, nil
}

func setInt(target *int, path, value string) error {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return badPath(path, fmt.Sprintf("not an integer: %q", value))
	}
	*target = parsed
	return nil
}

func badPath(path, reason string) error {
	return &config.InvalidConfigurationError{Field: path, Reason: reason}
}

func formatValue(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return fmt.Sprint(value)
}

func sortedKeys(categories map[string]float64) []string {
	keys := make([]string, 0, len(categories))
	for key := range categories {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func sortedStageKeys(stages map[string]config.SchoolStage) []string {
	keys := make([]string, 0, len(stages))
	for key := range stages {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
