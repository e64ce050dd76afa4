// Package config defines the data structures related to configuration and
// includes functions for loading and parsing the config.
package config

import (
	"fmt"
	"io"

	"github.com/lifeplan-tools/lifeplan-forecast/pkg/loans"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for lifeplan-forecast.
type Configuration struct {
	Plan    Simulation    `json:"plan"`
	Goal    string        `json:"goal,omitempty" yaml:"goal,omitempty"`
	Logging LoggingConfig `json:"-" yaml:"logging,omitempty"`
	Output  OutputConfig  `json:"-" yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// Simulation holds the full parameter set for one projection run. It is
// treated as read-only input by the engine.
type Simulation struct {
	HorizonYears          int     `json:"horizonYears" yaml:"horizonYears"`
	InitialAssets         float64 `json:"initialAssets" yaml:"initialAssets"`
	InvestmentReturnRate  float64 `json:"investmentReturnRate" yaml:"investmentReturnRate"`
	InflationRate         float64 `json:"inflationRate" yaml:"inflationRate"`
	IncomeGrowthRate      float64 `json:"incomeGrowthRate" yaml:"incomeGrowthRate"`
	IncomeGrowthStepYears int     `json:"incomeGrowthStepYears" yaml:"incomeGrowthStepYears"`

	Household []Member               `json:"household" yaml:"household"`
	Income    Income                 `json:"income" yaml:"income"`
	Expenses  Expenses               `json:"expenses" yaml:"expenses"`
	School    map[string]SchoolStage `json:"school,omitempty" yaml:"school,omitempty"`
	Insurance []Policy               `json:"insurance,omitempty" yaml:"insurance,omitempty"`
	OneOff    []OneOffExpense        `json:"oneOff,omitempty" yaml:"oneOff,omitempty"`
	Loan      loans.Loan             `json:"loan" yaml:"loan"`
}

// Member is one person in the household. The first member is the reference
// member whose age drives all age-indexed events.
type Member struct {
	Name       string `json:"name" yaml:"name"`
	InitialAge int    `json:"initialAge" yaml:"initialAge"`
}

// Income holds the base income components plus the one-shot overrides
// applied when the reference member reaches ages 60 and 65. A zero override
// field means "no override".
type Income struct {
	MonthlySalaryMain float64        `json:"monthlySalaryMain" yaml:"monthlySalaryMain"`
	MonthlySalarySub  float64        `json:"monthlySalarySub" yaml:"monthlySalarySub"`
	AnnualBonus       float64        `json:"annualBonus" yaml:"annualBonus"`
	Age60             IncomeOverride `json:"age60,omitempty" yaml:"age60,omitempty"`
	Age65             IncomeOverride `json:"age65,omitempty" yaml:"age65,omitempty"`
}

// IncomeOverride replaces individual income components once an age
// threshold is crossed.
type IncomeOverride struct {
	MonthlySalaryMain float64 `json:"monthlySalaryMain,omitempty" yaml:"monthlySalaryMain,omitempty"`
	MonthlySalarySub  float64 `json:"monthlySalarySub,omitempty" yaml:"monthlySalarySub,omitempty"`
	AnnualBonus       float64 `json:"annualBonus,omitempty" yaml:"annualBonus,omitempty"`
}

// Expenses maps recurring-expense category names to non-negative monthly
// amounts. Age60/Age65 carry per-category replacement amounts with the same
// zero-means-no-override semantics as income.
type Expenses struct {
	Monthly map[string]float64 `json:"monthly" yaml:"monthly"`
	Age60   map[string]float64 `json:"age60,omitempty" yaml:"age60,omitempty"`
	Age65   map[string]float64 `json:"age65,omitempty" yaml:"age65,omitempty"`
}

// SchoolStage describes one school stage for household members. A StartAge
// of 0 disables the stage.
type SchoolStage struct {
	LumpSum       float64 `json:"lumpSum" yaml:"lumpSum"`
	StartAge      int     `json:"startAge" yaml:"startAge"`
	DurationYears int     `json:"durationYears" yaml:"durationYears"`
	AnnualCost    float64 `json:"annualCost" yaml:"annualCost"`
}

// Policy is an insurance policy. A MaturityYear or StartYear of 0 disables
// the corresponding behavior.
type Policy struct {
	Name           string  `json:"name,omitempty" yaml:"name,omitempty"`
	MonthlyPremium float64 `json:"monthlyPremium" yaml:"monthlyPremium"`
	MaturityYear   int     `json:"maturityYear" yaml:"maturityYear"`
	PayoutAmount   float64 `json:"payoutAmount" yaml:"payoutAmount"`
	StartYear      int     `json:"startYear" yaml:"startYear"`
}

// OneOffExpense is an arbitrary named lump cost settled in a single year.
type OneOffExpense struct {
	Name   string  `json:"name,omitempty" yaml:"name,omitempty"`
	Amount float64 `json:"amount" yaml:"amount"`
	Year   int     `json:"year" yaml:"year"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yml")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	return unmarshalConfiguration(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from an
// arbitrary reader, e.g. an HTTP upload.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yml")

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	return unmarshalConfiguration(v)
}

func unmarshalConfiguration(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	if configuration.Plan.Expenses.Monthly == nil {
		configuration.Plan.Expenses.Monthly = make(map[string]float64)
	}
	return &configuration, nil
}
