package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"stationdocs/internal/config"
	"stationdocs/internal/infrastructure"
	"stationdocs/pkg/contracts/domain"
)

// Stage identifiers, as recorded in spans, metrics and the run manifest.
const (
	StageNormalize     = "normalize"
	StageEnrich        = "enrich"
	StageSummarizeDocs = "summarize_docs"
	StageCrossTab      = "crosstab_progress"
	StageSort          = "sort"
	StageCoverage      = "coverage"
	StageAssemble      = "assemble"
)

// StageRecorder receives stage lifecycle events. operations.RunManifest
// implements it.
type StageRecorder interface {
	RecordStageStart(stageID, stageName string)
	RecordStageCompletion(stageID string, outputData []string, metadata map[string]interface{})
	RecordStageFailure(stageID string, err error)
}

// PipelineOption configures optional pipeline collaborators.
type PipelineOption func(*Pipeline)

// WithTracer sets the tracer used for stage spans.
func WithTracer(tracer trace.Tracer) PipelineOption {
	return func(p *Pipeline) {
		if tracer != nil {
			p.tracer = tracer
		}
	}
}

// WithMetrics sets the instruments stage timings are recorded on.
func WithMetrics(m *infrastructure.PipelineMetrics) PipelineOption {
	return func(p *Pipeline) { p.metrics = m }
}

// WithRecorder attaches a stage recorder such as a run manifest.
func WithRecorder(r StageRecorder) PipelineOption {
	return func(p *Pipeline) { p.recorder = r }
}

// Pipeline turns raw station rows into the report sheets. It is synchronous
// and keeps no state between runs.
type Pipeline struct {
	logger   *slog.Logger
	cfg      config.ReportConfig
	tracer   trace.Tracer
	metrics  *infrastructure.PipelineMetrics
	recorder StageRecorder
}

// Result is everything a run produced, for callers that report on it.
type Result struct {
	Report   *domain.Report
	Stats    NormalizeStats
	Coverage CoverageSummary
}

// NewPipeline creates a pipeline. A nil logger falls back to slog.Default().
func NewPipeline(logger *slog.Logger, cfg config.ReportConfig, opts ...PipelineOption) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Pipeline{
		logger: logger.With("component", "pipeline"),
		cfg:    cfg,
		tracer: noop.NewTracerProvider().Tracer(infrastructure.MeterName),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run builds the report for the given rows.
func (p *Pipeline) Run(ctx context.Context, raws []domain.RawStation) (*domain.Report, error) {
	res, err := p.Execute(ctx, raws)
	if err != nil {
		return nil, err
	}
	return res.Report, nil
}

// Execute builds the report and also returns the intermediate results.
// Cancellation is checked between stages.
func (p *Pipeline) Execute(ctx context.Context, raws []domain.RawStation) (*Result, error) {
	started := time.Now()
	ctx, span := p.tracer.Start(ctx, "pipeline.run",
		trace.WithAttributes(attribute.Int("stations", len(raws))))
	defer span.End()

	var (
		stations   []domain.Station
		enriched   []domain.EnrichedStation
		byDistrict []DocSummary
		byOwner    []DocSummary
		tabDist    ProgressCrossTab
		tabOwner   ProgressCrossTab
		listing    []ListingRow
		res        = &Result{}
	)

	if p.metrics != nil {
		p.metrics.StationsRead.Add(ctx, int64(len(raws)))
	}

	steps := []struct {
		id, name string
		fn       func(ctx context.Context) (map[string]interface{}, error)
	}{
		{StageNormalize, "Normalize flag and progress cells", func(ctx context.Context) (map[string]interface{}, error) {
			stations, res.Stats = Normalize(raws)
			p.logNormalizeStats(ctx, res.Stats)
			return map[string]interface{}{
				"records":    res.Stats.Records,
				"issues":     res.Stats.Issues(),
				"repaired":   res.Stats.Repaired(),
				"blank_keys": res.Stats.BlankKeys,
			}, nil
		}},
		{StageEnrich, "Derive labels", func(ctx context.Context) (map[string]interface{}, error) {
			enriched = Enrich(stations)
			return map[string]interface{}{"records": len(enriched)}, nil
		}},
		{StageSummarizeDocs, "Summarize documents", func(ctx context.Context) (map[string]interface{}, error) {
			byDistrict = SummarizeDocs(enriched, ByDistrict)
			byOwner = SummarizeDocs(enriched, ByLandowner)
			return map[string]interface{}{"districts": len(byDistrict), "landowners": len(byOwner)}, nil
		}},
		{StageCrossTab, "Cross-tabulate progress codes", func(ctx context.Context) (map[string]interface{}, error) {
			tabDist = CrossTabulateProgress(enriched, ByDistrict)
			tabOwner = CrossTabulateProgress(enriched, ByLandowner)
			return map[string]interface{}{"unknown_codes": tabDist.HasUnknown()}, nil
		}},
		{StageSort, "Sort station listing", func(ctx context.Context) (map[string]interface{}, error) {
			listing = SortStations(enriched)
			return map[string]interface{}{"rows": len(listing)}, nil
		}},
		{StageCoverage, "Summarize landowner coverage", func(ctx context.Context) (map[string]interface{}, error) {
			res.Coverage = SummarizeCoverage(enriched)
			return map[string]interface{}{"landowners": len(res.Coverage.Coverage)}, nil
		}},
		{StageAssemble, "Assemble report sheets", func(ctx context.Context) (map[string]interface{}, error) {
			report := &domain.Report{
				ID:     uuid.New().String(),
				Title:  config.AppName,
				Format: domain.ReportFormatExcel,
				Sheets: []domain.Sheet{
					DocSummarySheet(config.SheetDocStatementAnalysis, config.ColumnDistrict, byDistrict),
					CrossTabSheet(config.SheetProgressCodeAnalysis, config.ColumnDistrict, tabDist),
					CrossTabSheet(config.SheetLandownerProgressAnalysis, config.ColumnLandownerType, tabOwner),
					DocSummarySheet(config.SheetLandownerDocAnalysis, config.ColumnLandownerType, byOwner),
					ListingSheet(listing),
					PercentageSheet(res.Coverage.Shares),
					DistrictsSheet(res.Coverage.Coverage),
					CoverageSheet(res.Coverage.Coverage),
				},
			}
			if err := report.Validate(); err != nil {
				return nil, err
			}
			report.Metadata = domain.ReportMetadata{
				RecordCount:    int64(len(stations)),
				GeneratedAt:    time.Now(),
				ProcessingTime: time.Since(started),
				Version:        config.AppVersion,
			}
			if p.cfg.InputFile != "" {
				report.Metadata.DataSources = []string{p.cfg.InputFile}
			}
			res.Report = report
			return map[string]interface{}{"sheets": len(report.Sheets)}, nil
		}},
	}

	for _, step := range steps {
		if err := p.stage(ctx, step.id, step.name, step.fn); err != nil {
			infrastructure.RecordError(ctx, err)
			return nil, err
		}
	}

	p.logger.InfoContext(ctx, "Report assembled",
		slog.String("report_id", res.Report.ID),
		slog.Int("records", len(stations)),
		slog.Int("sheets", len(res.Report.Sheets)),
		slog.Duration("elapsed", time.Since(started)))

	return res, nil
}

// stage runs fn inside a span and reports it to metrics and the recorder.
func (p *Pipeline) stage(ctx context.Context, id, name string, fn func(ctx context.Context) (map[string]interface{}, error)) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", id, err)
	}

	ctx, span := p.tracer.Start(ctx, "pipeline."+id, trace.WithAttributes(attribute.String("stage.name", name)))
	defer span.End()

	if p.recorder != nil {
		p.recorder.RecordStageStart(id, name)
	}

	start := time.Now()
	meta, err := fn(ctx)
	elapsed := time.Since(start)
	p.metrics.RecordStage(ctx, id, elapsed, err)

	if err != nil {
		infrastructure.RecordError(ctx, err)
		if p.recorder != nil {
			p.recorder.RecordStageFailure(id, err)
		}
		p.logger.ErrorContext(ctx, "Stage failed",
			slog.String("stage", id),
			slog.String("error", err.Error()))
		return fmt.Errorf("%s: %w", id, err)
	}

	infrastructure.AddSpanEvent(ctx, "stage.completed", meta)
	if p.recorder != nil {
		p.recorder.RecordStageCompletion(id, nil, meta)
	}
	p.logger.DebugContext(ctx, "Stage completed",
		slog.String("stage", id),
		slog.Duration("elapsed", elapsed))
	return nil
}

func (p *Pipeline) logNormalizeStats(ctx context.Context, stats NormalizeStats) {
	if p.metrics != nil && stats.Issues() > 0 {
		p.metrics.CoercionIssues.Add(ctx, int64(stats.Issues()))
	}
	if stats.Issues() > 0 {
		p.logger.WarnContext(ctx, "Non-numeric flag cells treated as 0",
			slog.Int("cells", stats.Issues()),
			slog.Any("columns", stats.Columns))
	}
	if stats.BlankKeys > 0 {
		p.logger.WarnContext(ctx, "Records with blank district or landowner kept as empty group",
			slog.Int("records", stats.BlankKeys))
	}
}
