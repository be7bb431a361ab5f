// Package report accumulates the per-file result table and the optional
// narrative journal for a copy run. The two sinks are independent: the
// table is always produced, the journal may be disabled.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// Header is the fixed column order of the result table.
var Header = []string{"file", "timestamp", "timestamp_str", "copy_successful", "xattr_successful"}

// Row is one processed file. Timestamp and TimestampStr are empty when the
// creation-time attribute was absent or undecodable.
type Row struct {
	File            string // path relative to the source root
	Timestamp       string // canonical hex string
	TimestampStr    string // long-format string
	CopySuccessful  bool
	XattrSuccessful bool
}

// Table accumulates rows in enumeration order. Append-only, single-writer.
type Table struct {
	rows []Row
}

// NewTable creates an empty result table.
func NewTable() *Table {
	return &Table{}
}

// Append adds one row. Insertion order is preserved through Finalize.
func (t *Table) Append(r Row) {
	t.rows = append(t.rows, r)
}

// Len returns the number of accumulated rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Rows returns the accumulated rows in insertion order.
func (t *Table) Rows() []Row {
	return t.rows
}

// Finalize writes the table as CSV to path: the fixed header plus one
// record per row.
func (t *Table) Finalize(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create result table: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(Header); err != nil {
		f.Close()
		return fmt.Errorf("write table header: %w", err)
	}
	for _, r := range t.rows {
		record := []string{
			r.File,
			r.Timestamp,
			r.TimestampStr,
			strconv.FormatBool(r.CopySuccessful),
			strconv.FormatBool(r.XattrSuccessful),
		}
		if err := w.Write(record); err != nil {
			f.Close()
			return fmt.Errorf("write table row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flush result table: %w", err)
	}
	return f.Close()
}
