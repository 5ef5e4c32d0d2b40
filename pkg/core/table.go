package core

import (
	"context"
	"fmt"
)

// Table is a named 2-D structure: ordered column headers with optional
// per-column typing, and ordered rows of string cells. Structural
// operations (AddColumn, AddRow) act on the local object; persistence
// happens only on Save.
type Table struct {
	api  *API
	name string

	Title       string
	Description string

	cols []TableColumn
	rows [][]string
}

func newTable(api *API, rec TableRecord) *Table {
	return &Table{
		api:         api,
		name:        rec.Name,
		Title:       rec.Title,
		Description: rec.Description,
		cols:        rec.Columns,
		rows:        rec.Rows,
	}
}

// Name returns the table identity.
func (t *Table) Name() string { return t.name }

func (t *Table) String() string { return fmt.Sprintf("table %s", t.name) }

// Columns returns the ordered column headers.
func (t *Table) Columns() []TableColumn { return t.cols }

// Rows returns the ordered rows.
func (t *Table) Rows() [][]string { return t.rows }

// AddColumn appends a column header. Columns can only be added while the
// table has no rows, so existing rows never silently miss cells.
func (t *Table) AddColumn(name string, dtype MDType) error {
	if name == "" {
		return Validationf("column name shall not be empty")
	}
	if len(t.rows) > 0 {
		return Validationf("cannot add column %q: table already has rows", name)
	}
	for _, c := range t.cols {
		if c.Name == name {
			return Validationf("duplicate column %q", name)
		}
	}
	if dtype == "" {
		dtype = MDString
	}
	t.cols = append(t.cols, TableColumn{Name: name, DType: dtype})
	return nil
}

// AddRow appends a row. The row length must match the header count.
func (t *Table) AddRow(cells ...string) error {
	if len(cells) != len(t.cols) {
		return Validationf("row has %d cells, table has %d columns", len(cells), len(t.cols))
	}
	row := make([]string, len(cells))
	copy(row, cells)
	t.rows = append(t.rows, row)
	return nil
}

// Row returns the i-th row.
func (t *Table) Row(i int) ([]string, error) {
	if i < 0 || i >= len(t.rows) {
		return nil, NotFoundf("table %s has no row %d", t.name, i)
	}
	return t.rows[i], nil
}

// Column returns the cell values of the named column, in row order.
func (t *Table) Column(name string) ([]string, error) {
	idx := -1
	for i, c := range t.cols {
		if c.Name == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, NotFoundf("table %s has no column %q", t.name, name)
	}
	out := make([]string, len(t.rows))
	for i, row := range t.rows {
		out[i] = row[idx]
	}
	return out, nil
}

// Extract pivots the table into a map keyed by the values of keyColumn,
// each entry mapping the requested item columns to their cell value.
// Key values must be unique.
func (t *Table) Extract(keyColumn string, items []string) (map[string]map[string]string, error) {
	keyIdx := -1
	itemIdx := make(map[string]int, len(items))
	for i, c := range t.cols {
		if c.Name == keyColumn {
			keyIdx = i
		}
		for _, item := range items {
			if c.Name == item {
				itemIdx[item] = i
			}
		}
	}
	if keyIdx < 0 {
		return nil, NotFoundf("table %s has no column %q", t.name, keyColumn)
	}
	for _, item := range items {
		if _, ok := itemIdx[item]; !ok {
			return nil, NotFoundf("table %s has no column %q", t.name, item)
		}
	}

	results := make(map[string]map[string]string, len(t.rows))
	for _, row := range t.rows {
		key := row[keyIdx]
		if _, dup := results[key]; dup {
			return nil, Validationf("key %q is not unique in column %q", key, keyColumn)
		}
		entry := make(map[string]string, len(items))
		for _, item := range items {
			entry[item] = row[itemIdx[item]]
		}
		results[key] = entry
	}
	return results, nil
}

func (t *Table) record() TableRecord {
	return TableRecord{
		Name:        t.name,
		Title:       t.Title,
		Description: t.Description,
		Columns:     t.cols,
		Rows:        t.rows,
	}
}

// Save persists the table, delegating to the Table manager. Creation
// only: saving over an existing name is a conflict.
func (t *Table) Save(ctx context.Context) error { return t.api.Table.Save(ctx, t) }

// TrySave is Save in status-only mode.
func (t *Table) TrySave(ctx context.Context) bool { return t.api.Table.TrySave(ctx, t) }

// Delete removes the table from the backend, keeping the local object.
func (t *Table) Delete(ctx context.Context) error { return t.api.Table.Delete(ctx, t.name) }

// TryDelete is Delete in status-only mode.
func (t *Table) TryDelete(ctx context.Context) bool { return t.api.Table.TryDelete(ctx, t.name) }
