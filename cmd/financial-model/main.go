package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/lucaspazio/Financial-Model/internal/baseline"
	"github.com/lucaspazio/Financial-Model/internal/config"
	"github.com/lucaspazio/Financial-Model/internal/forecast"
	"github.com/lucaspazio/Financial-Model/internal/logging"
	"github.com/lucaspazio/Financial-Model/internal/optimizer"
	"github.com/lucaspazio/Financial-Model/internal/store"
	"github.com/lucaspazio/Financial-Model/pkg/constants"
	"github.com/lucaspazio/Financial-Model/pkg/output"
	"github.com/lucaspazio/Financial-Model/pkg/validation"
	"go.uber.org/zap"
)

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, json")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	scenarioName := flag.String("scenario", "", "also compute the named scenario from the store")
	save := flag.Bool("save", false, "persist every computed scenario to the configured store")
	flag.Parse()

	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	logger, err := logging.New(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// CLI override takes precedence over config
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}

	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	plan := baseline.Default()
	ctx := context.Background()

	var scenarios store.Store
	if *scenarioName != "" || *save {
		scenarios, err = store.Open(ctx, conf.Store, logger)
		if err != nil {
			logger.Fatal("failed to open scenario store",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		defer func() {
			_ = scenarios.Close()
		}()
	}

	var results []forecast.Forecast
	if len(conf.ActiveScenarios()) > 0 || *scenarioName == "" {
		results, err = forecast.GetForecast(logger, plan, *conf)
		if err != nil {
			logger.Fatal("failed to compute forecast",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	}

	optimized, err := optimizer.NewRunner(logger, plan).Run(*conf)
	if err != nil {
		logger.Fatal("failed to run optimizer",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	optimized.Apply(results)

	if *scenarioName != "" {
		doc, err := scenarios.Load(ctx, *scenarioName)
		if err != nil {
			logger.Fatal("failed to load stored scenario",
				zap.String("op", "main"),
				zap.String("scenario", *scenarioName),
				zap.Error(err),
			)
		}
		results = append(results, forecast.Run(doc.Name, plan, doc.Scales))
	}

	if *save {
		if err := saveResults(ctx, logger, scenarios, results); err != nil {
			logger.Fatal("failed to save scenarios",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	}

	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(results)
	case constants.OutputFormatCSV:
		output.CsvFormat(results)
	case constants.OutputFormatJSON:
		if err := output.JSONFormat(results); err != nil {
			logger.Fatal("failed to write JSON output",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	}
}

func saveResults(ctx context.Context, logger *zap.Logger, scenarios store.Store, results []forecast.Forecast) error {
	for _, result := range results {
		doc := store.NewDocument(result.Name, result.Parameters, result.Results)
		if err := scenarios.Save(ctx, doc); err != nil {
			return fmt.Errorf("saving %s: %w", result.Name, err)
		}
		logger.Info("saved scenario",
			zap.String("op", "main.saveResults"),
			zap.String("scenario", result.Name),
			zap.String("id", doc.ID),
		)
	}
	return nil
}
