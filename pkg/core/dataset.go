package core

import (
	"context"
	"fmt"
)

// Dataset is a named, ordered collection of Timeseries references plus a
// free-form description. A Dataset references point data, it never owns
// it: members are carried by TSUID and deleting a member timeseries does
// not rewrite the membership (stale references are cleaned up only by an
// explicit deep delete).
type Dataset struct {
	api  *API
	name string

	Description string

	ts []*Timeseries
}

func newDataset(api *API, name, description string, ts []*Timeseries) *Dataset {
	return &Dataset{api: api, name: name, Description: description, ts: ts}
}

// Name returns the dataset identity.
func (d *Dataset) Name() string { return d.name }

// Timeseries returns the member references in order.
func (d *Dataset) Timeseries() []*Timeseries { return d.ts }

// TSUIDs returns the member identifiers in order. Local-only members
// without a TSUID contribute an empty string; Save rejects those.
func (d *Dataset) TSUIDs() []string {
	out := make([]string, len(d.ts))
	for i, ts := range d.ts {
		out[i] = ts.TSUID()
	}
	return out
}

// Len returns the number of member references.
func (d *Dataset) Len() int { return len(d.ts) }

func (d *Dataset) String() string { return fmt.Sprintf("dataset %s", d.name) }

// Append adds a member reference locally. No save is performed.
func (d *Dataset) Append(ts ...*Timeseries) {
	d.ts = append(d.ts, ts...)
}

// Save persists the dataset, delegating to the Dataset manager.
// Creation only: the datamodel service offers no dataset update.
func (d *Dataset) Save(ctx context.Context) error { return d.api.DS.Save(ctx, d) }

// TrySave is Save in status-only mode.
func (d *Dataset) TrySave(ctx context.Context) bool { return d.api.DS.TrySave(ctx, d) }

// Delete removes the dataset from the backend, keeping the local object.
// With deep set, member timeseries and their metadata are erased too.
func (d *Dataset) Delete(ctx context.Context, deep bool) error {
	return d.api.DS.Delete(ctx, d.name, deep)
}

// TryDelete is Delete in status-only mode.
func (d *Dataset) TryDelete(ctx context.Context, deep bool) bool {
	return d.api.DS.TryDelete(ctx, d.name, deep)
}

// Fetch refreshes the member list from the backend.
func (d *Dataset) Fetch(ctx context.Context) error {
	ts, err := d.api.DS.Fetch(ctx, d)
	if err != nil {
		return err
	}
	d.ts = ts
	return nil
}
