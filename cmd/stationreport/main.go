package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"stationdocs/internal/config"
	"stationdocs/internal/dataprocessing"
	"stationdocs/internal/errors"
	"stationdocs/internal/exporter"
	"stationdocs/internal/infrastructure"
	"stationdocs/internal/operations"
	"stationdocs/internal/validation"
)

const createdBy = "stationreport"

// options holds the command line overrides. Zero values keep the configured setting.
type options struct {
	configFile string
	in         string
	out        string
	sheet      string
	headerRow  int
	csvDir     string
	manifest   string
	metrics    string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := run(ctx, os.Args[1:], os.Stdout)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "stationreport: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	fs := flag.NewFlagSet(createdBy, flag.ContinueOnError)
	fs.SetOutput(stderr)

	var opts options
	fs.StringVar(&opts.configFile, "config", "", "YAML config file (defaults to stationreport.yaml or configs/stationreport.yaml)")
	fs.StringVar(&opts.in, "in", "", "input station workbook (defaults to data/input/"+config.DefaultInputFileName+" relative to executable)")
	fs.StringVar(&opts.out, "out", "", "output report workbook (defaults to data/reports/"+config.DefaultReportFileName+" relative to executable)")
	fs.StringVar(&opts.sheet, "sheet", "", "source sheet name (defaults to the first sheet)")
	fs.IntVar(&opts.headerRow, "header-row", -1, fmt.Sprintf("zero-based header row (default %d)", config.DefaultHeaderRow))
	fs.StringVar(&opts.csvDir, "csv-dir", "", "also write each sheet as <sheet>.csv into this directory")
	fs.StringVar(&opts.manifest, "manifest", "", "write a JSON run manifest to this file")
	fs.StringVar(&opts.metrics, "metrics", "", "write run metrics in Prometheus text format to this file")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() > 0 {
		return opts, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	return opts, nil
}

// loadConfig loads the configuration and applies the command line overrides
func loadConfig(opts options) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.configFile != "" {
		cfg, err = config.LoadFrom(opts.configFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, errors.NewConfigError("failed to load configuration", err)
	}

	if opts.in != "" {
		cfg.Report.InputFile = opts.in
	}
	if opts.out != "" {
		cfg.Report.OutputFile = opts.out
	}
	if opts.sheet != "" {
		cfg.Report.SheetName = opts.sheet
	}
	if opts.headerRow >= 0 {
		cfg.Report.HeaderRow = opts.headerRow
	}
	if opts.csvDir != "" {
		cfg.Report.CSVDir = opts.csvDir
	}
	if opts.manifest != "" {
		cfg.Report.ManifestFile = opts.manifest
	}
	if opts.metrics != "" {
		cfg.Telemetry.MetricsTextfile = opts.metrics
		cfg.Telemetry.EnableMetrics = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.NewConfigError("invalid configuration", err)
	}
	return cfg, nil
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	opts, err := parseFlags(args, os.Stderr)
	if err != nil {
		return errors.NewConfigError("invalid command line", err)
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return errors.NewConfigError("failed to initialize logger", err)
	}
	defer infrastructure.CloseLogFile()

	ctx = infrastructure.EnsureTraceID(ctx)
	runID := infrastructure.GetTraceID(ctx)

	providers, err := infrastructure.InitializeOTel(infrastructure.NewOTelConfig(cfg.Telemetry), logger)
	if err != nil {
		return errors.NewConfigError("failed to initialize telemetry", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Telemetry shutdown failed", slog.String("error", err.Error()))
		}
	}()

	manifest := operations.NewRunManifest(runID, cfg.Report.InputFile)
	manifest.SetConfig(map[string]interface{}{
		"output_file":       cfg.Report.OutputFile,
		"sheet_name":        cfg.Report.SheetName,
		"header_row":        cfg.Report.HeaderRow,
		"percent_precision": cfg.Report.PercentPrecision,
		"csv_dir":           cfg.Report.CSVDir,
	})

	logger.InfoContext(ctx, "Starting station report",
		slog.String("input", cfg.Report.InputFile),
		slog.String("output", cfg.Report.OutputFile),
		slog.String("version", config.AppVersion))

	res, runErr := generate(ctx, logger, cfg, providers, manifest)
	providers.Metrics.RecordRun(ctx, runErr)

	if runErr != nil {
		manifest.Fail(runErr)
		logger.ErrorContext(ctx, "Station report failed",
			slog.String("error", runErr.Error()),
			slog.String("error_type", string(errors.TypeOf(runErr))))
	} else {
		manifest.Complete()
	}

	if path := cfg.Telemetry.MetricsTextfile; path != "" && providers.Registry != nil {
		if err := providers.WriteMetricsTextfile(path); err != nil {
			logger.WarnContext(ctx, "Failed to write metrics textfile",
				slog.String("path", path),
				slog.String("error", err.Error()))
		} else if err := manifest.AddOutput("metrics", "metrics", path, createdBy); err != nil {
			logger.WarnContext(ctx, "Failed to record metrics output", slog.String("error", err.Error()))
		}
	}

	if path := cfg.Report.ManifestFile; path != "" {
		if err := manifest.SaveToFile(path); err != nil {
			logger.ErrorContext(ctx, "Failed to save run manifest",
				slog.String("path", path),
				slog.String("error", err.Error()))
			if runErr == nil {
				return errors.NewWriteError("failed to save run manifest", err).WithContext("path", path)
			}
		}
	}

	if runErr != nil {
		return runErr
	}

	logSummary(ctx, logger, res)
	printSummary(stdout, cfg.Report.OutputFile, res)
	return nil
}

// generate reads the input workbook, builds the report and writes every output
func generate(ctx context.Context, logger *slog.Logger, cfg *config.Config, providers *infrastructure.OTelProviders, manifest *operations.RunManifest) (*dataprocessing.Result, error) {
	rc := cfg.Report

	validator := validation.NewFileValidator(logger)
	if err := validator.ValidateReportPaths(rc.InputFile, rc.OutputFile); err != nil {
		return nil, err
	}

	reader := dataprocessing.NewReader(logger, dataprocessing.ReaderOptions{
		SheetName: rc.SheetName,
		HeaderRow: rc.HeaderRow,
	})
	raws, err := reader.ReadFile(ctx, rc.InputFile)
	if err != nil {
		return nil, err
	}
	manifest.SetRecords(len(raws))

	pipeline := dataprocessing.NewPipeline(logger, rc,
		dataprocessing.WithTracer(providers.Tracer),
		dataprocessing.WithMetrics(providers.Metrics),
		dataprocessing.WithRecorder(manifest))
	res, err := pipeline.Execute(ctx, raws)
	if err != nil {
		return nil, err
	}

	writer := exporter.NewWorkbookWriter(logger, exporter.WorkbookOptions{PercentPrecision: rc.PercentPrecision})
	if err := writer.Write(ctx, res.Report, rc.OutputFile); err != nil {
		return nil, err
	}
	providers.Metrics.SheetsWritten.Add(ctx, int64(len(res.Report.Sheets)))
	if err := manifest.AddOutput("workbook", "workbook", rc.OutputFile, createdBy); err != nil {
		return nil, errors.NewWriteError("failed to checksum report workbook", err)
	}

	if rc.CSVDir != "" {
		paths, err := config.GetPaths()
		if err != nil {
			return nil, errors.NewConfigError("failed to resolve report directory", err)
		}
		files, err := exporter.NewCSVWriter(paths, logger).WriteReport(ctx, rc.CSVDir, res.Report, rc.PercentPrecision)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			key := "csv:" + strings.TrimSuffix(filepath.Base(f), ".csv")
			if err := manifest.AddOutput(key, "csv", f, createdBy); err != nil {
				return nil, errors.NewWriteError("failed to checksum csv output", err)
			}
		}
	}

	return res, nil
}

// logSummary emits the per-sheet row counts and the landowner breakdown
func logSummary(ctx context.Context, logger *slog.Logger, res *dataprocessing.Result) {
	for _, sheet := range res.Report.Sheets {
		logger.InfoContext(ctx, "Sheet written",
			slog.String("sheet", sheet.Name),
			slog.Int("rows", len(sheet.Rows)))
	}
	for _, share := range res.Coverage.Shares {
		logger.InfoContext(ctx, "Landowner share",
			slog.String("landowner", share.Landowner),
			slog.Int("centers", share.Count),
			slog.Float64("percentage", share.Percentage))
	}
	for _, c := range res.Coverage.Coverage {
		logger.InfoContext(ctx, "Landowner districts",
			slog.String("landowner", c.Landowner),
			slog.Int("total_districts", c.TotalDistricts()),
			slog.Any("districts", c.Districts))
	}
}

// printSummary writes the human readable run summary
func printSummary(w io.Writer, output string, res *dataprocessing.Result) {
	fmt.Fprintf(w, "Report written to %s\n", output)
	fmt.Fprintf(w, "Stations processed: %d\n", res.Report.Metadata.RecordCount)
	if issues := res.Stats.Issues(); issues > 0 {
		fmt.Fprintf(w, "Non-numeric flag cells treated as 0: %d\n", issues)
	}

	fmt.Fprintln(w, "\nSheets:")
	for _, sheet := range res.Report.Sheets {
		fmt.Fprintf(w, "  %-30s %d rows\n", sheet.Name, len(sheet.Rows))
	}

	fmt.Fprintln(w, "\nLandowner percentages:")
	for _, share := range res.Coverage.Shares {
		fmt.Fprintf(w, "  %s: %.2f%% (%d)\n", share.Landowner, share.Percentage, share.Count)
	}

	fmt.Fprintln(w, "\nDistricts per landowner:")
	for _, c := range res.Coverage.Coverage {
		fmt.Fprintf(w, "  %s (%d): %s\n", c.Landowner, c.TotalDistricts(), strings.Join(c.Districts, config.DistrictJoinSeparator))
	}
}
