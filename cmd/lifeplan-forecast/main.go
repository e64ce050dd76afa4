package main

import (
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/charmbracelet/glamour"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lifeplan-tools/lifeplan-forecast/internal/config"
	"github.com/lifeplan-tools/lifeplan-forecast/internal/server"
	"github.com/lifeplan-tools/lifeplan-forecast/internal/sim"
	"github.com/lifeplan-tools/lifeplan-forecast/pkg/advice"
	"github.com/lifeplan-tools/lifeplan-forecast/pkg/constants"
	"github.com/lifeplan-tools/lifeplan-forecast/pkg/faq"
	"github.com/lifeplan-tools/lifeplan-forecast/pkg/output"
	"github.com/lifeplan-tools/lifeplan-forecast/pkg/summary"
)

// version is set at build time via -ldflags.
var version = "dev"

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	// Determine log level (CLI override takes precedence)
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info"
	}

	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	format := loggingConfig.Format
	if format == "" {
		format = "json"
	}

	var zapConfig zap.Config
	switch format {
	case "console":
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	case "json":
		zapConfig = zap.NewProductionConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}

	if loggingConfig.OutputFile != "" {
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}
		if file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %v", loggingConfig.OutputFile, err)
		} else {
			_ = file.Close()
		}
		zapConfig.OutputPaths = []string{loggingConfig.OutputFile}
		zapConfig.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return zapConfig.Build()
}

func printFAQ() {
	for i, entry := range faq.Entries() {
		fmt.Printf("Q%d. %s\n%s\n\n", i+1, entry.Question, entry.Answer)
	}
}

func main() {
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	showAdvice := flag.Bool("advice", false, "print plan-improvement advice after the projection")
	showFAQ := flag.Bool("faq", false, "print the FAQ and exit")
	serve := flag.Bool("serve", false, "run the HTTP server instead of a one-shot projection")
	listen := flag.String("listen", constants.DefaultServerAddress, "HTTP listen address for -serve")
	flag.Parse()

	if *showFAQ {
		printFAQ()
		return
	}

	// Optional .env for deployment environments.
	_ = godotenv.Load()

	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	logger, err := initializeLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	if *serve {
		handler := server.NewHandler(logger, constants.DefaultMaxUploadSizeBytes, version)
		logger.Info("listening",
			zap.String("op", "main"),
			zap.String("address", *listen),
			zap.String("version", version),
		)
		if err := http.ListenAndServe(*listen, handler); err != nil {
			logger.Fatal("server exited",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		return
	}

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	if err := output.ValidateFormat(outputFormat); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	if err := conf.Plan.Validate(); err != nil {
		var invalidErr *config.InvalidConfigurationError
		if errors.As(err, &invalidErr) {
			logger.Fatal("invalid configuration",
				zap.String("op", "main"),
				zap.String("field", invalidErr.Field),
				zap.String("reason", invalidErr.Reason),
			)
		}
		logger.Fatal("invalid configuration",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	for _, warning := range conf.ValidateWarnings() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	records, err := sim.Project(logger, *conf)
	if err != nil {
		logger.Fatal("failed to compute projection",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(records)
	case constants.OutputFormatCSV:
		output.CsvFormat(records)
	}

	if *showAdvice {
		text := advice.Generate(advice.Input{
			Goal:    conf.Goal,
			Summary: summary.FromRecords(records),
		})
		rendered, renderErr := glamour.Render(text, "auto")
		if renderErr != nil {
			rendered = text
		}
		fmt.Print(rendered)
	}
}
