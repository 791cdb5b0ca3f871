// Package sheetstore abstracts the spreadsheet-style datastore behind a small
// tabular contract: named tables with a fixed header row, read-all, positional
// append, A1-range updates and physical row deletion. The production backend
// is Google Sheets; Postgres and in-memory backends implement the same
// contract for environments without a live spreadsheet.
package sheetstore

import (
	"context"
	"errors"
)

// Row is one data row keyed by header column name. Cells are kept as strings,
// exactly as the sheet stores them.
type Row map[string]string

// TableStore is the four-operation tabular contract. Calls are synchronous;
// failures surface to the caller and abort the enclosing operation, there is
// no retry policy.
type TableStore interface {
	// GetOrCreateTable ensures the named table exists, writing header as its
	// first row when creating it. A pre-existing table is left untouched even
	// if its header differs.
	GetOrCreateTable(ctx context.Context, name string, header []string) error

	// ReadAll returns every data row (header excluded) in the store's native
	// order. No implicit sort.
	ReadAll(ctx context.Context, name string) ([]Row, error)

	// Append adds one row, values matching the header positionally. The
	// adapter performs no uniqueness checks.
	Append(ctx context.Context, name string, values []string) error

	// UpdateRange overwrites a contiguous block of cells addressed in A1
	// notation, e.g. "B3:H3" or a single cell "G5".
	UpdateRange(ctx context.Context, name string, a1Range string, values [][]string) error

	// DeleteRow removes one physical row. Indexes are 1-based with the header
	// as row 1, so the data row at position n-1 of ReadAll is at index n+1.
	DeleteRow(ctx context.Context, name string, rowIndex int) error
}

var (
	// ErrTableNotFound is returned for operations against a table that was
	// never created.
	ErrTableNotFound = errors.New("table not found")

	// ErrRowOutOfRange is returned when a row index does not address a data
	// row (index 1 is the header and is never deletable).
	ErrRowOutOfRange = errors.New("row index out of range")
)
