// Package export serializes the filtered, sorted (pre-pagination) row
// sequence to delimited text. It consumes the session's full sequence, not
// the current page, so an export always covers everything the filters kept.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/oakwood-commons/gridx/internal/formatter"
	"github.com/oakwood-commons/gridx/pkg/grid"
)

// CSV writes the rows over the visible columns: one header record of column
// labels, then one record per row with formatted cells.
func CSV(w io.Writer, rows []grid.Record, columns []grid.Column) error {
	visible := make([]grid.Column, 0, len(columns))
	for _, col := range columns {
		if col.Visible {
			visible = append(visible, col)
		}
	}
	if len(visible) == 0 {
		return fmt.Errorf("no visible columns to export")
	}

	cw := csv.NewWriter(w)
	header := make([]string, len(visible))
	for i, col := range visible {
		header[i] = col.Header
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	cells := make([]string, len(visible))
	for _, row := range rows {
		for i, col := range visible {
			cells[i] = formatter.Cell(row.FieldString(col.Key), col.Format)
		}
		if err := cw.Write(cells); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// SessionCSV exports a session's current filtered, sorted sequence.
func SessionCSV(w io.Writer, s *grid.Session) error {
	return CSV(w, s.FilteredRows(), s.Columns())
}
