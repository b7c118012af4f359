package exporter

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"stationdocs/internal/config"
	"stationdocs/internal/errors"
	"stationdocs/pkg/contracts/domain"
)

// WorkbookOptions controls report workbook formatting
type WorkbookOptions struct {
	// PercentPrecision is the number of decimals percentages are rounded to.
	PercentPrecision int32
}

// WorkbookWriter writes a report as a multi-sheet xlsx workbook
type WorkbookWriter struct {
	logger *slog.Logger
	opts   WorkbookOptions
}

// NewWorkbookWriter creates a workbook writer. A nil logger falls back to slog.Default().
func NewWorkbookWriter(logger *slog.Logger, opts WorkbookOptions) *WorkbookWriter {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.PercentPrecision < 0 {
		opts.PercentPrecision = 0
	}
	return &WorkbookWriter{logger: logger, opts: opts}
}

// Write saves report to path. The workbook is built in a temporary file in
// the destination directory and renamed into place, so path either holds
// the complete report or is left untouched.
func (w *WorkbookWriter) Write(ctx context.Context, report *domain.Report, path string) error {
	if err := report.Validate(); err != nil {
		return errors.NewWriteError("report is inconsistent", err)
	}
	if len(report.Sheets) == 0 {
		return errors.NewWriteError("report has no sheets", nil)
	}

	f := excelize.NewFile()
	defer f.Close()

	styles, err := w.newStyles(f)
	if err != nil {
		return errors.NewWriteError("failed to create cell styles", err)
	}

	for i := range report.Sheets {
		if err := ctx.Err(); err != nil {
			return err
		}
		sheet := &report.Sheets[i]
		if i == 0 {
			err = f.SetSheetName("Sheet1", sheet.Name)
		} else {
			_, err = f.NewSheet(sheet.Name)
		}
		if err != nil {
			return errors.NewWriteError(fmt.Sprintf("failed to create sheet %q", sheet.Name), err)
		}
		if err := w.writeSheet(f, sheet, styles); err != nil {
			return errors.NewWriteError(fmt.Sprintf("failed to write sheet %q", sheet.Name), err)
		}
	}

	if err := f.SetDocProps(&excelize.DocProperties{
		Title:      report.Title,
		Creator:    config.AppName,
		Identifier: report.ID,
		Created:    time.Now().UTC().Format(time.RFC3339),
		Version:    config.AppVersion,
	}); err != nil {
		return errors.NewWriteError("failed to set document properties", err)
	}

	if err := saveAtomic(f, path); err != nil {
		return errors.NewWriteError("failed to save workbook", err).WithContext("path", path)
	}

	w.logger.InfoContext(ctx, "Report workbook written",
		slog.String("path", path),
		slog.Int("sheets", len(report.Sheets)))
	return nil
}

type cellStyles struct {
	header  int
	index   int
	percent int
}

func (w *WorkbookWriter) newStyles(f *excelize.File) (cellStyles, error) {
	var s cellStyles
	var err error

	s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border:    []excelize.Border{{Type: "bottom", Color: "000000", Style: 1}},
	})
	if err != nil {
		return s, err
	}

	s.index, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return s, err
	}

	numFmt := percentNumFmt(w.opts.PercentPrecision)
	s.percent, err = f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	return s, err
}

func (w *WorkbookWriter) writeSheet(f *excelize.File, sheet *domain.Sheet, styles cellStyles) error {
	name := sheet.Name
	places := w.opts.PercentPrecision

	header := make([]interface{}, len(sheet.Columns))
	for i, c := range sheet.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		return err
	}

	for r, row := range sheet.Rows {
		cells := make([]interface{}, len(row))
		for c, v := range row {
			if fv, ok := v.(float64); ok {
				v = roundPercent(fv, places)
			}
			cells[c] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(name, cell, &cells); err != nil {
			return err
		}
	}

	lastCol, err := excelize.ColumnNumberToName(len(sheet.Columns))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(name, "A1", lastCol+"1", styles.header); err != nil {
		return err
	}

	lastRow := len(sheet.Rows) + 1
	for i, col := range sheet.Columns {
		colName, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if len(sheet.Rows) > 0 {
			switch {
			case i < sheet.IndexColumns:
				err = f.SetCellStyle(name, colName+"2", fmt.Sprintf("%s%d", colName, lastRow), styles.index)
			case isPercentColumn(col):
				err = f.SetCellStyle(name, colName+"2", fmt.Sprintf("%s%d", colName, lastRow), styles.percent)
			}
			if err != nil {
				return err
			}
		}
	}

	for i, width := range columnWidths(sheet.Columns, sheet.Rows, places) {
		colName, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(name, colName, colName, width); err != nil {
			return err
		}
	}

	return f.SetPanes(name, freezePanes(sheet.IndexColumns))
}

// freezePanes keeps the header row and the index columns in view
func freezePanes(indexColumns int) *excelize.Panes {
	topLeft, _ := excelize.CoordinatesToCellName(indexColumns+1, 2)
	panes := &excelize.Panes{
		Freeze:      true,
		XSplit:      indexColumns,
		YSplit:      1,
		TopLeftCell: topLeft,
		ActivePane:  "bottomLeft",
	}
	if indexColumns > 0 {
		panes.ActivePane = "bottomRight"
	}
	return panes
}

// saveAtomic writes f next to path and renames it into place
func saveAtomic(f *excelize.File, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".report-*.xlsx")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			os.Remove(tmpName)
		}
	}()

	if _, err := f.WriteTo(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close workbook: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to move workbook into place: %w", err)
	}
	committed = true
	return nil
}
