package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/chronos-analytics/chronos-go/pkg/core"
)

type datasetRow struct {
	description string
	tsuids      []string
}

// Datamodel is an in-memory datamodel service.
type Datamodel struct {
	mu         sync.Mutex
	datasets   map[string]datasetRow
	fidByTSUID map[string]string
	tsuidByFID map[string]string
	meta       map[string]map[string]core.MetaEntry
	tables     map[string]core.TableRecord
	results    map[string][]core.ProcessResult
	blobs      map[string][]byte
}

// NewDatamodel returns an empty datamodel backend.
func NewDatamodel() *Datamodel {
	return &Datamodel{
		datasets:   make(map[string]datasetRow),
		fidByTSUID: make(map[string]string),
		tsuidByFID: make(map[string]string),
		meta:       make(map[string]map[string]core.MetaEntry),
		tables:     make(map[string]core.TableRecord),
		results:    make(map[string][]core.ProcessResult),
		blobs:      make(map[string][]byte),
	}
}

var _ core.DatamodelClient = (*Datamodel)(nil)

// tsKnown reports whether a TSUID exists structurally: it has a bound
// fid or at least one metadata entry.
func (d *Datamodel) tsKnown(tsuid string) bool {
	if _, ok := d.fidByTSUID[tsuid]; ok {
		return true
	}
	_, ok := d.meta[tsuid]
	return ok
}

func (d *Datamodel) DatasetCreate(ctx context.Context, name, description string, tsuids []string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.datasets[name]; ok {
		return core.Conflictf("dataset %q already exists", name)
	}
	members := make([]string, len(tsuids))
	copy(members, tsuids)
	d.datasets[name] = datasetRow{description: description, tsuids: members}
	return nil
}

func (d *Datamodel) DatasetRead(ctx context.Context, name string) (core.DatasetRecord, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	row, ok := d.datasets[name]
	if !ok {
		return core.DatasetRecord{}, core.NotFoundf("dataset %q not found", name)
	}
	rec := core.DatasetRecord{Name: name, Description: row.description}
	for _, tsuid := range row.tsuids {
		rec.TS = append(rec.TS, core.TSRef{TSUID: tsuid, FID: d.fidByTSUID[tsuid]})
	}
	return rec, nil
}

func (d *Datamodel) DatasetDelete(ctx context.Context, name string, deep bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	row, ok := d.datasets[name]
	if !ok {
		return core.NotFoundf("dataset %q not found", name)
	}
	if deep {
		for _, tsuid := range row.tsuids {
			d.removeTS(tsuid)
		}
	}
	delete(d.datasets, name)
	return nil
}

func (d *Datamodel) DatasetList(ctx context.Context) ([]core.DatasetSummary, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]core.DatasetSummary, 0, len(d.datasets))
	for name, row := range d.datasets {
		out = append(out, core.DatasetSummary{Name: name, Description: row.description})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (d *Datamodel) TSList(ctx context.Context) ([]core.TSRef, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]core.TSRef, 0, len(d.fidByTSUID))
	for tsuid, fid := range d.fidByTSUID {
		out = append(out, core.TSRef{TSUID: tsuid, FID: fid})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TSUID < out[j].TSUID })
	return out, nil
}

// removeTS erases a timeseries record, its metadata and its fid binding.
// Dataset memberships are deliberately left untouched.
func (d *Datamodel) removeTS(tsuid string) {
	if fid, ok := d.fidByTSUID[tsuid]; ok {
		delete(d.tsuidByFID, fid)
		delete(d.fidByTSUID, tsuid)
	}
	delete(d.meta, tsuid)
}

func (d *Datamodel) TSDelete(ctx context.Context, tsuid string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.tsKnown(tsuid) {
		return core.NotFoundf("timeseries %s not found", tsuid)
	}
	d.removeTS(tsuid)
	return nil
}

func (d *Datamodel) TSFromMetadata(ctx context.Context, constraint map[string][]string) ([]string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []string
	for tsuid, bag := range d.meta {
		if matchesConstraint(bag, constraint) {
			out = append(out, tsuid)
		}
	}
	sort.Strings(out)
	return out, nil
}

// matchesConstraint: values of one key are OR-ed, keys are AND-ed.
func matchesConstraint(bag map[string]core.MetaEntry, constraint map[string][]string) bool {
	for name, values := range constraint {
		entry, ok := bag[name]
		if !ok {
			return false
		}
		found := false
		for _, v := range values {
			if entry.Value == v {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (d *Datamodel) FIDCreate(ctx context.Context, tsuid, fid string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if existing, ok := d.tsuidByFID[fid]; ok {
		return core.Conflictf("fid %q already bound to %s", fid, existing)
	}
	if existing, ok := d.fidByTSUID[tsuid]; ok {
		return core.Conflictf("tsuid %s already bound to fid %q", tsuid, existing)
	}
	d.tsuidByFID[fid] = tsuid
	d.fidByTSUID[tsuid] = fid
	return nil
}

func (d *Datamodel) FIDFromTSUID(ctx context.Context, tsuid string) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fid, ok := d.fidByTSUID[tsuid]
	if !ok {
		return "", core.NotFoundf("no fid for tsuid %s", tsuid)
	}
	return fid, nil
}

func (d *Datamodel) TSUIDFromFID(ctx context.Context, fid string) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	tsuid, ok := d.tsuidByFID[fid]
	if !ok {
		return "", core.NotFoundf("no tsuid for fid %q", fid)
	}
	return tsuid, nil
}

func (d *Datamodel) MetadataUpsert(ctx context.Context, tsuid, name, value string, dtype core.MDType) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	bag, ok := d.meta[tsuid]
	if !ok {
		bag = make(map[string]core.MetaEntry)
		d.meta[tsuid] = bag
	}
	bag[name] = core.MetaEntry{Value: value, DType: dtype}
	return nil
}

func (d *Datamodel) MetadataDelete(ctx context.Context, tsuid, name string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	bag, ok := d.meta[tsuid]
	if !ok {
		return core.NotFoundf("no metadata for tsuid %s", tsuid)
	}
	if _, ok := bag[name]; !ok {
		return core.NotFoundf("metadata %q not found for tsuid %s", name, tsuid)
	}
	delete(bag, name)
	if len(bag) == 0 {
		delete(d.meta, tsuid)
	}
	return nil
}

func (d *Datamodel) MetadataFetch(ctx context.Context, tsuids []string) (map[string]map[string]core.MetaEntry, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make(map[string]map[string]core.MetaEntry, len(tsuids))
	for _, tsuid := range tsuids {
		if !d.tsKnown(tsuid) {
			return nil, core.NotFoundf("timeseries %s not found", tsuid)
		}
		bag := make(map[string]core.MetaEntry, len(d.meta[tsuid]))
		for name, entry := range d.meta[tsuid] {
			bag[name] = entry
		}
		out[tsuid] = bag
	}
	return out, nil
}

func (d *Datamodel) TableCreate(ctx context.Context, t core.TableRecord) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.tables[t.Name]; ok {
		return core.Conflictf("table %q already exists", t.Name)
	}
	d.tables[t.Name] = t
	return nil
}

func (d *Datamodel) TableRead(ctx context.Context, name string) (core.TableRecord, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	t, ok := d.tables[name]
	if !ok {
		return core.TableRecord{}, core.NotFoundf("table %q not found", name)
	}
	return t, nil
}

func (d *Datamodel) TableDelete(ctx context.Context, name string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.tables[name]; !ok {
		return core.NotFoundf("table %q not found", name)
	}
	delete(d.tables, name)
	return nil
}

func (d *Datamodel) TableList(ctx context.Context) ([]core.TableSummary, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]core.TableSummary, 0, len(d.tables))
	for name, t := range d.tables {
		out = append(out, core.TableSummary{Name: name, Title: t.Title, Description: t.Description})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// SeedResult stores a run output so Result/Results have something to
// serve in emulation mode.
func (d *Datamodel) SeedResult(pid string, res core.ProcessResult, blob []byte) {
	d.mu.Lock()
	defer d.mu.Unlock()
	res.ProcessID = pid
	d.results[pid] = append(d.results[pid], res)
	d.blobs[res.ID] = blob
}

func (d *Datamodel) ResultList(ctx context.Context, pid string) ([]core.ProcessResult, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	res, ok := d.results[pid]
	if !ok {
		return nil, core.NotFoundf("no results for process %s", pid)
	}
	out := make([]core.ProcessResult, len(res))
	copy(out, res)
	return out, nil
}

func (d *Datamodel) ResultRead(ctx context.Context, rid string) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	blob, ok := d.blobs[rid]
	if !ok {
		return nil, core.NotFoundf("result %s not found", rid)
	}
	out := make([]byte, len(blob))
	copy(out, blob)
	return out, nil
}
