package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"littercli/internal/config"
	"littercli/internal/dataprocessing"
	"littercli/internal/exporter"
	"littercli/internal/infrastructure"
	"littercli/internal/pipeline"
	"littercli/pkg/contracts"
	"littercli/pkg/contracts/domain"
)

func main() {
	inPath := flag.String("in", "", "input field sheet (.csv or .xlsx)")
	outDir := flag.String("out", "", "output directory for report CSVs (defaults to data/reports)")
	configFile := flag.String("config", "", "optional YAML config file")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(contracts.GetFullVersionString())
		return
	}

	// Load .env before env-based config; a missing file is fine.
	_ = godotenv.Load()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if *outDir != "" {
		cfg.Output.Dir = *outDir
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer infrastructure.CloseLogFile()

	if *inPath == "" {
		logger.Error("missing required -in flag")
		flag.Usage()
		os.Exit(2)
	}

	ctx := infrastructure.ContextWithTraceID(context.Background())
	logger.InfoContext(ctx, "starting litterfall processing",
		slog.String("app", config.AppName),
		slog.String("version", contracts.Version),
		slog.String("input", *inPath),
		slog.String("output_dir", cfg.Output.Dir))

	if err := run(ctx, logger, cfg, *inPath); err != nil {
		logger.ErrorContext(ctx, "run failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, cfg *config.Config, inPath string) error {
	loader := dataprocessing.NewLoader(
		infrastructure.WithComponent(logger, "loader"),
		rune(cfg.Input.Delimiter[0]),
		cfg.Input.Sheet)
	cleaner := dataprocessing.NewCleaner(infrastructure.WithComponent(logger, "cleaner"))
	normalizer := dataprocessing.NewNormalizer(
		infrastructure.WithComponent(logger, "normalizer"),
		cfg.Processing.Workers)
	converter := dataprocessing.NewConverter(infrastructure.WithComponent(logger, "converter"))
	aggregator := dataprocessing.NewAggregator(infrastructure.WithComponent(logger, "aggregator"))
	writer := exporter.NewCSVWriter(cfg.Output.Dir)

	var (
		observations []domain.Observation
		result       dataprocessing.NormalizeResult
		flux         []domain.FluxRecord
		trapRows     []domain.TrapMonthly
		plotRows     []domain.PlotMonthly
	)

	runner := pipeline.NewRunner(logger,
		pipeline.Stage{Name: "load", Run: func(ctx context.Context) error {
			var err error
			observations, err = loader.Load(inPath)
			return err
		}},
		pipeline.Stage{Name: "clean", Run: func(ctx context.Context) error {
			observations, _ = cleaner.Clean(ctx, observations)
			return nil
		}},
		pipeline.Stage{Name: "normalize", Run: func(ctx context.Context) error {
			var err error
			result, err = normalizer.Normalize(ctx, observations)
			return err
		}},
		pipeline.Stage{Name: "convert", Run: func(ctx context.Context) error {
			flux = converter.Convert(ctx, result.Intervals)
			return nil
		}},
		pipeline.Stage{Name: "aggregate", Run: func(ctx context.Context) error {
			trapRows = aggregator.TrapMonthly(ctx, flux)
			plotRows = aggregator.PlotMonthly(ctx, trapRows)
			return nil
		}},
		pipeline.Stage{Name: "export", Run: func(ctx context.Context) error {
			if err := writer.WriteTrapMonthly(trapRows); err != nil {
				return err
			}
			if err := writer.WritePlotMonthly(plotRows); err != nil {
				return err
			}
			if cfg.Output.WriteDailyRates {
				if err := writer.WriteDailyRates(result.Intervals); err != nil {
					return err
				}
			}
			return writer.WriteDiagnostics(result.Diagnostics)
		}},
	)

	if err := runner.Run(ctx); err != nil {
		return err
	}

	logger.InfoContext(ctx, "processing finished",
		slog.Int("observations", len(observations)),
		slog.Int("intervals", len(result.Intervals)),
		slog.Int("trap_monthly_rows", len(trapRows)),
		slog.Int("plot_monthly_rows", len(plotRows)),
		slog.Int("diagnostics", len(result.Diagnostics)))

	return nil
}
