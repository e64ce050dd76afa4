// Package constants provides shared constants for the lifeplan-forecast application.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// CurrencyTolerance is the tolerance for currency comparisons
	CurrencyTolerance = 0.01
)

// Age thresholds for the one-shot income/expense overrides.
const (
	// Age60Threshold is the reference-member age at which the first
	// override set applies.
	Age60Threshold = 60

	// Age65Threshold is the reference-member age at which the second
	// override set applies.
	Age65Threshold = 65
)

// HousingCategory is the recurring-expense category suppressed while an
// active mortgage covers housing costs.
const HousingCategory = "housing"

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for
	// plan CSV imports (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024
)
