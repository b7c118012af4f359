// Package dataprocessing turns the station survey workbook into the tables of
// the document and progress report.
//
// # Data Flow
//
//	xlsx → Reader → RawStation → Normalize → Station → Enrich → EnrichedStation
//	     → SummarizeDocs / CrossTabulateProgress / SortStations / SummarizeCoverage
//	     → domain.Report (eight sheets)
//
// # Usage
//
//	raws, err := dataprocessing.NewReader(logger, dataprocessing.DefaultReaderOptions()).
//	    ReadFile(ctx, "data/input/KidStationsDocs.xlsx")
//	if err != nil {
//	    return err
//	}
//	report, err := dataprocessing.NewPipeline(logger, cfg.Report).Run(ctx, raws)
//
// # Coercion
//
// Flag and progress cells are coerced by CoerceFlag, which never fails:
// blanks become 0, fractional values are truncated toward zero, TRUE/FALSE
// become 1/0 and anything else becomes 0 and is counted as an issue in
// NormalizeStats.
//
// # Ordering
//
// Grouped tables are ordered ascending by key using byte-wise string order.
// District lists keep first-occurrence order. Landowner percentages are
// ordered by station count, largest first.
//
// # Errors
//
// The reader returns AppErrors from internal/errors: MISSING_COLUMN when the
// header lacks a required column and SOURCE when the workbook cannot be read.
// The aggregation stages are total functions; the pipeline fails only on
// context cancellation or an inconsistent report.
package dataprocessing
