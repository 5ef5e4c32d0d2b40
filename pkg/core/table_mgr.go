package core

import (
	"context"

	"github.com/bmatcuk/doublestar/v4"
)

// TableManager owns every backend-facing action of the Table family.
type TableManager struct {
	api *API
	dm  DatamodelClient
}

// New builds a local, unpersisted table with the given headers.
func (m *TableManager) New(name, title, description string) *Table {
	return newTable(m.api, TableRecord{
		Name:        name,
		Title:       title,
		Description: description,
	})
}

// Get fetches a table by name, content included.
func (m *TableManager) Get(ctx context.Context, name string) (*Table, error) {
	if name == "" {
		return nil, Validationf("table name shall not be empty")
	}
	rec, err := m.dm.TableRead(ctx, name)
	if err != nil {
		return nil, err
	}
	return newTable(m.api, rec), nil
}

// List returns tables whose name matches the pattern, content not
// loaded. The pattern accepts `*` wildcards; empty matches everything.
// Matching is done client-side so backends without pattern support
// behave identically.
func (m *TableManager) List(ctx context.Context, pattern string) ([]*Table, error) {
	summaries, err := m.dm.TableList(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*Table, 0, len(summaries))
	for _, s := range summaries {
		if pattern != "" {
			ok, err := doublestar.Match(pattern, s.Name)
			if err != nil {
				return nil, Validationf("bad table name pattern %q", pattern)
			}
			if !ok {
				continue
			}
		}
		out = append(out, newTable(m.api, TableRecord{
			Name:        s.Name,
			Title:       s.Title,
			Description: s.Description,
		}))
	}
	return out, nil
}

// Save persists a local table. Creation only: an existing name is a
// conflict.
func (m *TableManager) Save(ctx context.Context, t *Table) error {
	if t.Name() == "" {
		return Validationf("table name shall not be empty")
	}
	if len(t.Columns()) == 0 {
		return Validationf("table %q has no columns", t.Name())
	}
	m.api.log.Debug("saving table", "name", t.Name(), "rows", len(t.Rows()))
	return m.dm.TableCreate(ctx, t.record())
}

// TrySave is Save in status-only mode.
func (m *TableManager) TrySave(ctx context.Context, t *Table) bool {
	return m.api.status("table.save", m.Save(ctx, t))
}

// Delete removes a table by name.
func (m *TableManager) Delete(ctx context.Context, name string) error {
	if name == "" {
		return Validationf("table name shall not be empty")
	}
	m.api.log.Debug("deleting table", "name", name)
	return m.dm.TableDelete(ctx, name)
}

// TryDelete is Delete in status-only mode.
func (m *TableManager) TryDelete(ctx context.Context, name string) bool {
	return m.api.status("table.delete", m.Delete(ctx, name))
}
