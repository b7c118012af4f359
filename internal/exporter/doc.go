// Package exporter writes station reports to disk.
//
// WorkbookWriter: Writes every sheet of a domain.Report into one xlsx
// workbook with a bold header row, frozen index columns, sized columns and
// percentages rounded to a fixed number of decimals. The file is written
// to a temporary name and renamed into place.
//
// CSVWriter: Core CSV writing with UTF-8 BOM for Excel compatibility, plus
// a per-sheet export of a report.
//
// Example usage:
//
//	writer := exporter.NewWorkbookWriter(logger, exporter.WorkbookOptions{PercentPrecision: 2})
//	if err := writer.Write(ctx, report, "data/reports/Doc_Statement_And_Progress_Code_Analysis.xlsx"); err != nil {
//		return err
//	}
//
//	csvWriter := exporter.NewCSVWriter(paths, logger)
//	files, err := csvWriter.WriteReport(ctx, "csv", report, 2)
package exporter
