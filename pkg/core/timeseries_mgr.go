package core

import (
	"context"
	"regexp"
	"strconv"
)

// Intrinsic metadata maintained by Save.
const (
	MetaStartDate = "chronos_start_date"
	MetaEndDate   = "chronos_end_date"
	MetaNbPoints  = "qual_nb_points"
)

// Metadata never copied from a parent: intrinsics and quality figures
// belong to each timeseries alone.
var nonInheritable = regexp.MustCompile(`^qual(.)*|chronos(.)*|funcId`)

var fidPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

func checkFID(fid string) error {
	if !fidPattern.MatchString(fid) {
		return Validationf("invalid functional identifier %q", fid)
	}
	return nil
}

// SaveOption configures TimeseriesManager.Save.
type SaveOption func(*saveOptions)

type saveOptions struct {
	parent         *Timeseries
	skipIntrinsics bool
}

// WithParent makes the saved timeseries inherit the parent's metadata,
// except non-inheritable entries (intrinsics, quality, funcId).
func WithParent(parent *Timeseries) SaveOption {
	return func(o *saveOptions) { o.parent = parent }
}

// WithoutIntrinsics skips the generation of the intrinsic date-range and
// point-count metadata. Useful for partial imports; ignored on first
// save, where intrinsics are always computed.
func WithoutIntrinsics() SaveOption {
	return func(o *saveOptions) { o.skipIntrinsics = true }
}

// TimeseriesManager owns every backend-facing action of the Timeseries
// family. It is the only manager coordinating two backends: the
// datamodel service for structure and the time-series database for
// points.
type TimeseriesManager struct {
	api  *API
	dm   DatamodelClient
	tsdb TSDBClient
}

// New builds a Timeseries. With an empty fid the object is local-only;
// otherwise a backend reference (TSUID) is assigned immediately and
// bound to the fid, which fails with a conflict when the fid is taken.
func (m *TimeseriesManager) New(ctx context.Context, fid string) (*Timeseries, error) {
	if fid == "" {
		return newTimeseries(m.api, "", ""), nil
	}
	return m.createRef(ctx, fid)
}

// Get fetches a timeseries by TSUID and hydrates it: the functional
// identifier and the full metadata bag are loaded synchronously. If any
// step fails the whole Get fails; no partially hydrated object is ever
// returned.
func (m *TimeseriesManager) Get(ctx context.Context, tsuid string) (*Timeseries, error) {
	if tsuid == "" {
		return nil, Validationf("tsuid shall not be empty")
	}
	fid, err := m.dm.FIDFromTSUID(ctx, tsuid)
	if err != nil && !IsNotFound(err) {
		return nil, err
	}
	ts := newTimeseries(m.api, tsuid, fid)
	if err := m.api.MD.Fetch(ctx, ts.Metadata()); err != nil {
		// Discard the partially built object: hydration is atomic.
		return nil, err
	}
	return ts, nil
}

// GetByFID fetches a timeseries by functional identifier. Same
// hydration contract as Get.
func (m *TimeseriesManager) GetByFID(ctx context.Context, fid string) (*Timeseries, error) {
	tsuid, err := m.FIDToTSUID(ctx, fid)
	if err != nil {
		return nil, err
	}
	ts := newTimeseries(m.api, tsuid, fid)
	if err := m.api.MD.Fetch(ctx, ts.Metadata()); err != nil {
		return nil, err
	}
	return ts, nil
}

// Save imports the buffered points, assigning a backend reference first
// when the object is still local. On a fresh timeseries the intrinsic
// metadata (start date, end date, point count) is always generated;
// afterwards WithoutIntrinsics can skip it for partial imports.
func (m *TimeseriesManager) Save(ctx context.Context, ts *Timeseries, opts ...SaveOption) error {
	var o saveOptions
	for _, opt := range opts {
		opt(&o)
	}
	if err := checkFID(ts.FID()); err != nil {
		return err
	}

	if ts.TSUID() == "" {
		ref, err := m.createRef(ctx, ts.FID())
		if err != nil {
			return err
		}
		if err := ts.bind(ref.TSUID()); err != nil {
			return err
		}
		// Fresh identity: intrinsics are non-negotiable.
		o.skipIntrinsics = false
	}

	start, end, count, err := m.tsdb.AddPoints(ctx, ts.TSUID(), ts.Points)
	if err != nil {
		return err
	}
	m.api.log.Debug("points imported", "tsuid", ts.TSUID(), "count", count)

	if !o.skipIntrinsics {
		intrinsics := []struct {
			name  string
			value string
			dtype MDType
		}{
			{MetaStartDate, strconv.FormatInt(start, 10), MDDate},
			{MetaEndDate, strconv.FormatInt(end, 10), MDDate},
			{MetaNbPoints, strconv.Itoa(count), MDNumber},
		}
		for _, md := range intrinsics {
			if err := m.dm.MetadataUpsert(ctx, ts.TSUID(), md.name, md.value, md.dtype); err != nil {
				return err
			}
			if err := ts.Metadata().Set(md.name, md.value, md.dtype); err != nil {
				return err
			}
		}
	}

	if o.parent != nil {
		if err := m.inherit(ctx, ts, o.parent); err != nil {
			return err
		}
	}
	return nil
}

// TrySave is Save in status-only mode.
func (m *TimeseriesManager) TrySave(ctx context.Context, ts *Timeseries, opts ...SaveOption) bool {
	return m.api.status("ts.save", m.Save(ctx, ts, opts...))
}

// Delete removes the timeseries record together with its metadata and
// functional identifier, as one logical operation: no orphaned metadata
// is ever left behind. Dataset memberships are not rewritten.
func (m *TimeseriesManager) Delete(ctx context.Context, ts *Timeseries) error {
	tsuid := ts.TSUID()
	if tsuid == "" {
		if ts.FID() == "" {
			return Validationf("timeseries has neither tsuid nor fid")
		}
		var err error
		tsuid, err = m.FIDToTSUID(ctx, ts.FID())
		if err != nil {
			return err
		}
	}
	m.api.log.Debug("deleting timeseries", "tsuid", tsuid)
	return m.dm.TSDelete(ctx, tsuid)
}

// TryDelete is Delete in status-only mode.
func (m *TimeseriesManager) TryDelete(ctx context.Context, ts *Timeseries) bool {
	return m.api.status("ts.delete", m.Delete(ctx, ts))
}

// List returns references to all timeseries. Metadata bags are attached
// but not populated; use Get for a hydrated object. Each call re-queries
// the backend.
func (m *TimeseriesManager) List(ctx context.Context) ([]*Timeseries, error) {
	refs, err := m.dm.TSList(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*Timeseries, 0, len(refs))
	for _, ref := range refs {
		out = append(out, newTimeseries(m.api, ref.TSUID, ref.FID))
	}
	return out, nil
}

// FindFromMeta returns the TSUIDs whose metadata satisfy the constraint:
// values of one key are OR-ed, keys are AND-ed.
func (m *TimeseriesManager) FindFromMeta(ctx context.Context, constraint map[string][]string) ([]string, error) {
	return m.dm.TSFromMetadata(ctx, constraint)
}

// Fetch reads the point data of a timeseries. A zero sd or ed is
// resolved from the intrinsic date-range metadata, fetching the bag
// first when it is still empty.
func (m *TimeseriesManager) Fetch(ctx context.Context, ts *Timeseries, sd, ed int64) ([]Point, error) {
	if ts.TSUID() == "" {
		return nil, Validationf("timeseries has no tsuid")
	}
	if sd == 0 || ed == 0 {
		if ts.Metadata().Len() == 0 {
			if err := m.api.MD.Fetch(ctx, ts.Metadata()); err != nil {
				return nil, err
			}
		}
		if sd == 0 {
			v, ok := ts.Metadata().epochValue(MetaStartDate)
			if !ok {
				return nil, NotFoundf("no %s metadata for %s, provide sd", MetaStartDate, ts.TSUID())
			}
			sd = v
		}
		if ed == 0 {
			v, ok := ts.Metadata().epochValue(MetaEndDate)
			if !ok {
				return nil, NotFoundf("no %s metadata for %s, provide ed", MetaEndDate, ts.TSUID())
			}
			ed = v
		}
	}
	if ed < sd {
		return nil, Validationf("end date %d before start date %d", ed, sd)
	}
	return m.tsdb.Points(ctx, ts.TSUID(), sd, ed)
}

// FIDToTSUID resolves a functional identifier to its TSUID.
func (m *TimeseriesManager) FIDToTSUID(ctx context.Context, fid string) (string, error) {
	if err := checkFID(fid); err != nil {
		return "", err
	}
	return m.dm.TSUIDFromFID(ctx, fid)
}

// TSUIDToFID resolves a TSUID to its functional identifier.
func (m *TimeseriesManager) TSUIDToFID(ctx context.Context, tsuid string) (string, error) {
	if tsuid == "" {
		return "", Validationf("tsuid shall not be empty")
	}
	return m.dm.FIDFromTSUID(ctx, tsuid)
}

// inherit copies the parent's metadata onto ts, skipping non-inheritable
// entries.
func (m *TimeseriesManager) inherit(ctx context.Context, ts, parent *Timeseries) error {
	bags, err := m.dm.MetadataFetch(ctx, []string{parent.TSUID()})
	if err != nil {
		return err
	}
	for name, entry := range bags[parent.TSUID()] {
		if nonInheritable.MatchString(name) {
			continue
		}
		if err := m.dm.MetadataUpsert(ctx, ts.TSUID(), name, entry.Value, entry.DType); err != nil {
			return err
		}
		if err := ts.Metadata().Set(name, entry.Value, entry.DType); err != nil {
			return err
		}
	}
	return nil
}

// createRef reserves a TSUID in the time-series database and binds it to
// the fid in the datamodel. A fid already bound is a conflict.
func (m *TimeseriesManager) createRef(ctx context.Context, fid string) (*Timeseries, error) {
	if err := checkFID(fid); err != nil {
		return nil, err
	}
	existing, err := m.dm.TSUIDFromFID(ctx, fid)
	if err == nil {
		return nil, Conflictf("fid %q already bound to tsuid %s", fid, existing)
	}
	if !IsNotFound(err) {
		return nil, err
	}

	tsuid, err := m.tsdb.AssignRef(ctx)
	if err != nil {
		return nil, err
	}
	if err := m.dm.FIDCreate(ctx, tsuid, fid); err != nil {
		return nil, err
	}
	return newTimeseries(m.api, tsuid, fid), nil
}
