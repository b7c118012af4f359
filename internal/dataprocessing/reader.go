package dataprocessing

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"stationdocs/internal/config"
	"stationdocs/internal/errors"
	"stationdocs/pkg/contracts/domain"
)

// ReaderOptions selects where the station table lives in the workbook.
type ReaderOptions struct {
	// SheetName is the worksheet to read; empty means the first sheet.
	SheetName string
	// HeaderRow is the zero-based row holding the column names.
	HeaderRow int
}

// DefaultReaderOptions matches the survey workbook layout: first sheet,
// one banner row above the header.
func DefaultReaderOptions() ReaderOptions {
	return ReaderOptions{HeaderRow: config.DefaultHeaderRow}
}

// Reader loads station rows from an xlsx workbook.
type Reader struct {
	logger *slog.Logger
	opts   ReaderOptions
}

// NewReader creates a Reader. A nil logger falls back to slog.Default().
func NewReader(logger *slog.Logger, opts ReaderOptions) *Reader {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.HeaderRow < 0 {
		opts.HeaderRow = 0
	}
	return &Reader{logger: logger, opts: opts}
}

// ParseFile reads station rows from filePath with the default options.
func ParseFile(filePath string) ([]domain.RawStation, error) {
	return NewReader(nil, DefaultReaderOptions()).ReadFile(context.Background(), filePath)
}

// ReadFile opens the workbook at filePath and returns its station rows.
func (r *Reader) ReadFile(ctx context.Context, filePath string) ([]domain.RawStation, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, errors.NewSourceError("failed to open workbook", err).WithContext("path", filePath)
	}
	defer f.Close()

	return r.readWorkbook(ctx, f, filePath)
}

// Read parses a workbook from an arbitrary stream.
func (r *Reader) Read(ctx context.Context, src io.Reader) ([]domain.RawStation, error) {
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, errors.NewSourceError("failed to open workbook", err)
	}
	defer f.Close()

	return r.readWorkbook(ctx, f, "<stream>")
}

func (r *Reader) readWorkbook(ctx context.Context, f *excelize.File, source string) ([]domain.RawStation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sheet := r.opts.SheetName
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.NewSourceError("workbook has no sheets", nil).WithContext("path", source)
		}
		sheet = sheets[0]
	}

	// Raw values keep numeric cells free of display formats like "1,000.00".
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errors.NewSourceError(fmt.Sprintf("failed to read sheet %q", sheet), err).
			WithContext("path", source)
	}

	r.logger.DebugContext(ctx, "Read worksheet",
		slog.String("path", source),
		slog.String("sheet", sheet),
		slog.Int("total_rows", len(rows)),
		slog.Int("header_row", r.opts.HeaderRow))

	if len(rows) <= r.opts.HeaderRow {
		return nil, errors.NewMissingColumnError(config.RequiredColumns).
			WithContext("sheet", sheet).
			WithContext("header_row", r.opts.HeaderRow)
	}

	columns, missing := mapColumns(rows[r.opts.HeaderRow])
	if len(missing) > 0 {
		return nil, errors.NewMissingColumnError(missing).
			WithContext("sheet", sheet).
			WithContext("header_row", r.opts.HeaderRow)
	}

	stations := make([]domain.RawStation, 0, len(rows)-r.opts.HeaderRow-1)
	skipped := 0
	for i := r.opts.HeaderRow + 1; i < len(rows); i++ {
		row := rows[i]
		if isBlankRow(row) {
			skipped++
			continue
		}

		cell := func(name string) string {
			idx := columns[name]
			if idx >= len(row) {
				return ""
			}
			return row[idx]
		}

		stations = append(stations, domain.RawStation{
			Row:          i + 1,
			District:     normalizeText(cell(config.ColumnDistrict)),
			Landowner:    normalizeText(cell(config.ColumnLandowner)),
			StationName:  normalizeText(cell(config.ColumnStationName)),
			DocA:         strings.TrimSpace(cell(config.ColumnDocA)),
			DocB:         strings.TrimSpace(cell(config.ColumnDocB)),
			DocC:         strings.TrimSpace(cell(config.ColumnDocC)),
			ProgressCode: strings.TrimSpace(cell(config.ColumnProgressCode)),
		})
	}

	r.logger.InfoContext(ctx, "Loaded station records",
		slog.String("sheet", sheet),
		slog.Int("records", len(stations)),
		slog.Int("blank_rows_skipped", skipped))

	return stations, nil
}

// mapColumns finds each required column in the header row. The first
// occurrence of a duplicated header wins.
func mapColumns(header []string) (map[string]int, []string) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		name := normalizeText(h)
		if _, seen := index[name]; !seen {
			index[name] = i
		}
	}

	columns := make(map[string]int, len(config.RequiredColumns))
	var missing []string
	for _, name := range config.RequiredColumns {
		idx, ok := index[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		columns[name] = idx
	}
	return columns, missing
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
