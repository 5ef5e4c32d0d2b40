package core

import (
	"context"
	"fmt"
)

// Timeseries represents one timeseries of the platform. Its identity is
// the backend-assigned TSUID, optionally paired with a human-readable
// functional identifier (FID). A Timeseries always carries exactly one
// Metadata bag scoped to its TSUID; the bag handle is never nil.
//
// Points is a local buffer only: it is persisted by Save and filled by
// Fetch, never implicitly.
type Timeseries struct {
	api   *API
	tsuid string
	fid   string
	md    *Metadata

	Points []Point
}

func newTimeseries(api *API, tsuid, fid string) *Timeseries {
	return &Timeseries{
		api:   api,
		tsuid: tsuid,
		fid:   fid,
		md:    newMetadata(api, tsuid),
	}
}

// TSUID returns the backend identifier, empty for a local-only object.
func (t *Timeseries) TSUID() string { return t.tsuid }

// FID returns the functional identifier, empty when none is bound.
func (t *Timeseries) FID() string { return t.fid }

// Metadata returns the metadata bag owned by this timeseries.
func (t *Timeseries) Metadata() *Metadata { return t.md }

func (t *Timeseries) String() string {
	if t.tsuid == "" {
		return "<local timeseries>"
	}
	return fmt.Sprintf("%s (%s)", t.fid, t.tsuid)
}

// bind assigns the backend identity. Identity is immutable once
// assigned: rebinding to a different TSUID is a conflict.
func (t *Timeseries) bind(tsuid string) error {
	if t.tsuid != "" && t.tsuid != tsuid {
		return Conflictf("timeseries already bound to %s", t.tsuid)
	}
	t.tsuid = tsuid
	t.md.tsuid = tsuid
	return nil
}

// Save persists the buffered points, delegating to the Timeseries
// manager. See TimeseriesManager.Save for the intrinsic-metadata and
// inheritance options.
func (t *Timeseries) Save(ctx context.Context, opts ...SaveOption) error {
	return t.api.TS.Save(ctx, t, opts...)
}

// TrySave is Save in status-only mode.
func (t *Timeseries) TrySave(ctx context.Context, opts ...SaveOption) bool {
	return t.api.TS.TrySave(ctx, t, opts...)
}

// Delete removes the timeseries and its metadata from the backend.
func (t *Timeseries) Delete(ctx context.Context) error {
	return t.api.TS.Delete(ctx, t)
}

// TryDelete is Delete in status-only mode.
func (t *Timeseries) TryDelete(ctx context.Context) bool {
	return t.api.TS.TryDelete(ctx, t)
}

// Fetch loads the point data into the local buffer. A zero sd or ed is
// resolved from the intrinsic date-range metadata.
func (t *Timeseries) Fetch(ctx context.Context, sd, ed int64) error {
	points, err := t.api.TS.Fetch(ctx, t, sd, ed)
	if err != nil {
		return err
	}
	t.Points = points
	return nil
}
