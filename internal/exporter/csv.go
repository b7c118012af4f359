package exporter

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"stationdocs/internal/config"
	"stationdocs/internal/errors"
	"stationdocs/pkg/contracts/domain"
)

// utf8BOM helps Excel recognize UTF-8, which the Thai labels need
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVWriter provides CSV export functionality
type CSVWriter struct {
	paths  *config.Paths
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance. Relative paths resolve
// against the reports directory of paths.
func NewCSVWriter(paths *config.Paths, logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{paths: paths, logger: logger}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteCSV writes data to a CSV file with the given options
func (w *CSVWriter) WriteCSV(filePath string, options WriteOptions) error {
	fullPath := w.resolvePath(filePath)

	w.logger.Debug("Writing CSV file",
		slog.String("file_path", filePath),
		slog.String("full_path", fullPath),
		slog.Int("record_count", len(options.Records)))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.OpenFile(fullPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	if options.BOMPrefix {
		if _, err := file.Write(utf8BOM); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(file)

	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}

	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return file.Close()
}

// WriteSimpleCSV writes a BOM-prefixed CSV file with headers and records
func (w *CSVWriter) WriteSimpleCSV(filePath string, headers []string, records [][]string) error {
	return w.WriteCSV(filePath, WriteOptions{
		Headers:   headers,
		Records:   records,
		BOMPrefix: true,
	})
}

// WriteSheet writes one report sheet to dir/<sheet name>.csv and returns the path
func (w *CSVWriter) WriteSheet(dir string, sheet domain.Sheet, places int32) (string, error) {
	records := make([][]string, len(sheet.Rows))
	for i, row := range sheet.Rows {
		rec := make([]string, len(row))
		for j, v := range row {
			rec[j] = formatCell(v, places)
		}
		records[i] = rec
	}

	rel := filepath.Join(dir, sheet.Name+".csv")
	path := w.resolvePath(rel)
	if err := w.WriteSimpleCSV(rel, sheet.Columns, records); err != nil {
		return "", errors.NewWriteError(fmt.Sprintf("failed to write sheet %q as csv", sheet.Name), err).
			WithContext("path", path)
	}
	return path, nil
}

// WriteReport writes every sheet of report as its own CSV file in dir
func (w *CSVWriter) WriteReport(ctx context.Context, dir string, report *domain.Report, places int32) ([]string, error) {
	paths := make([]string, 0, len(report.Sheets))
	for _, sheet := range report.Sheets {
		if err := ctx.Err(); err != nil {
			return paths, err
		}
		path, err := w.WriteSheet(dir, sheet, places)
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}

	w.logger.InfoContext(ctx, "Report CSV files written",
		slog.String("dir", w.resolvePath(dir)),
		slog.Int("files", len(paths)))
	return paths, nil
}

// resolvePath resolves a relative path against the reports directory
func (w *CSVWriter) resolvePath(filePath string) string {
	if filepath.IsAbs(filePath) || w.paths == nil {
		return filePath
	}
	return w.paths.GetReportPath(filePath)
}
