package core

import (
	"context"
	"regexp"
)

// Dataset names accepted by the datamodel service.
var dsNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

func checkDatasetName(name string) error {
	if !dsNamePattern.MatchString(name) {
		return Validationf("invalid dataset name %q", name)
	}
	return nil
}

// DatasetManager owns every backend-facing action of the Dataset family.
type DatasetManager struct {
	api *API
	dm  DatamodelClient
}

// New builds a local, unpersisted Dataset after checking the name is not
// already taken. Use Get for an existing dataset.
func (m *DatasetManager) New(ctx context.Context, name, description string, ts []*Timeseries) (*Dataset, error) {
	if err := checkDatasetName(name); err != nil {
		return nil, err
	}
	_, err := m.dm.DatasetRead(ctx, name)
	if err == nil {
		return nil, Conflictf("dataset %q already exists, use Get", name)
	}
	if !IsNotFound(err) {
		return nil, err
	}
	return newDataset(m.api, name, description, ts), nil
}

// Get fetches a dataset by name, members included.
func (m *DatasetManager) Get(ctx context.Context, name string) (*Dataset, error) {
	if err := checkDatasetName(name); err != nil {
		return nil, err
	}
	rec, err := m.dm.DatasetRead(ctx, name)
	if err != nil {
		return nil, err
	}
	return newDataset(m.api, name, rec.Description, m.refsToTS(rec.TS)), nil
}

// Fetch re-reads the member list of a dataset without rebuilding the
// object.
func (m *DatasetManager) Fetch(ctx context.Context, ds *Dataset) ([]*Timeseries, error) {
	rec, err := m.dm.DatasetRead(ctx, ds.Name())
	if err != nil {
		return nil, err
	}
	return m.refsToTS(rec.TS), nil
}

// Save persists a local dataset. Creation only: an existing name is a
// conflict. Every member must already carry a TSUID; datasets reference
// persisted timeseries, they do not create them.
func (m *DatasetManager) Save(ctx context.Context, ds *Dataset) error {
	if err := checkDatasetName(ds.Name()); err != nil {
		return err
	}
	if len(ds.ts) == 0 {
		return Validationf("dataset %q has no timeseries to save", ds.Name())
	}
	tsuids := make([]string, len(ds.ts))
	for i, ts := range ds.ts {
		if ts.TSUID() == "" {
			return Validationf("timeseries %q has no TSUID, save it first", ts.FID())
		}
		tsuids[i] = ts.TSUID()
	}
	m.api.log.Debug("saving dataset", "name", ds.Name(), "members", len(tsuids))
	return m.dm.DatasetCreate(ctx, ds.Name(), ds.Description, tsuids)
}

// TrySave is Save in status-only mode.
func (m *DatasetManager) TrySave(ctx context.Context, ds *Dataset) bool {
	return m.api.status("ds.save", m.Save(ctx, ds))
}

// Delete removes a dataset. With deep set, member timeseries and their
// metadata are erased as well; without it, members are left untouched.
func (m *DatasetManager) Delete(ctx context.Context, name string, deep bool) error {
	if err := checkDatasetName(name); err != nil {
		return err
	}
	m.api.log.Debug("deleting dataset", "name", name, "deep", deep)
	return m.dm.DatasetDelete(ctx, name, deep)
}

// TryDelete is Delete in status-only mode.
func (m *DatasetManager) TryDelete(ctx context.Context, name string, deep bool) bool {
	return m.api.status("ds.delete", m.Delete(ctx, name, deep))
}

// List returns all datasets, members not loaded. Each call re-queries
// the backend.
func (m *DatasetManager) List(ctx context.Context) ([]*Dataset, error) {
	summaries, err := m.dm.DatasetList(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*Dataset, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, newDataset(m.api, s.Name, s.Description, nil))
	}
	return out, nil
}

func (m *DatasetManager) refsToTS(refs []TSRef) []*Timeseries {
	ts := make([]*Timeseries, 0, len(refs))
	for _, ref := range refs {
		ts = append(ts, newTimeseries(m.api, ref.TSUID, ref.FID))
	}
	return ts
}
