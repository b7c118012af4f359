package domain

import (
	"fmt"
	"time"
)

// Report represents a generated multi-sheet report
type Report struct {
	ID       string         `json:"id" validate:"required,uuid"`
	Title    string         `json:"title" validate:"required,min=3,max=200"`
	Format   ReportFormat   `json:"format" validate:"required"`
	Sheets   []Sheet        `json:"sheets"`
	Metadata ReportMetadata `json:"metadata"`
}

// ReportFormat defines the format of a report
type ReportFormat string

const (
	ReportFormatExcel ReportFormat = "excel"
	ReportFormatCSV   ReportFormat = "csv"
)

// ReportMetadata contains metadata about a report
type ReportMetadata struct {
	RecordCount    int64         `json:"record_count"`
	GeneratedAt    time.Time     `json:"generated_at"`
	ProcessingTime time.Duration `json:"processing_time"`
	DataSources    []string      `json:"data_sources"`
	Version        string        `json:"version"`
}

// Sheet is one named table of a report. Cells hold string, int or float64.
type Sheet struct {
	Name    string   `json:"name" validate:"required,max=31"`
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
	// IndexColumns is the number of leading columns that form the row key.
	IndexColumns int `json:"index_columns"`
}

// AddRow appends a row. The row must have one cell per column.
func (s *Sheet) AddRow(cells ...any) {
	s.Rows = append(s.Rows, cells)
}

// Sheet returns the sheet with the given name.
func (r *Report) Sheet(name string) (*Sheet, bool) {
	for i := range r.Sheets {
		if r.Sheets[i].Name == name {
			return &r.Sheets[i], true
		}
	}
	return nil, false
}

// SheetNames returns the sheet names in report order.
func (r *Report) SheetNames() []string {
	names := make([]string, len(r.Sheets))
	for i, s := range r.Sheets {
		names[i] = s.Name
	}
	return names
}

// Validate checks that sheet names are unique and every row matches its header.
func (r *Report) Validate() error {
	seen := make(map[string]struct{}, len(r.Sheets))
	for _, s := range r.Sheets {
		if _, dup := seen[s.Name]; dup {
			return fmt.Errorf("duplicate sheet name %q", s.Name)
		}
		seen[s.Name] = struct{}{}
		for i, row := range s.Rows {
			if len(row) != len(s.Columns) {
				return fmt.Errorf("sheet %q row %d has %d cells, want %d", s.Name, i, len(row), len(s.Columns))
			}
		}
	}
	return nil
}
