package core

import (
	"context"
	"sort"
	"strconv"
)

type metaItem struct {
	value   string
	dtype   MDType
	deleted bool
}

// Metadata is the typed key/value bag owned by exactly one Timeseries.
// It back-references its TSUID and never outlives or is shared across
// Timeseries instances. Mutations are local until Save is called:
// entries marked deleted are removed remotely on Save, everything else
// is upserted.
type Metadata struct {
	api   *API
	tsuid string
	items map[string]metaItem
}

func newMetadata(api *API, tsuid string) *Metadata {
	return &Metadata{
		api:   api,
		tsuid: tsuid,
		items: make(map[string]metaItem),
	}
}

// TSUID returns the timeseries identifier this bag is scoped to.
func (m *Metadata) TSUID() string { return m.tsuid }

// Len returns the number of live (non-deleted) entries.
func (m *Metadata) Len() int {
	n := 0
	for _, it := range m.items {
		if !it.deleted {
			n++
		}
	}
	return n
}

// Keys returns the live entry names in sorted order.
func (m *Metadata) Keys() []string {
	keys := make([]string, 0, len(m.items))
	for name, it := range m.items {
		if !it.deleted {
			keys = append(keys, name)
		}
	}
	sort.Strings(keys)
	return keys
}

// Set creates or updates an entry locally. The dtype of an existing
// entry is kept when dtype is empty.
func (m *Metadata) Set(name, value string, dtype MDType) error {
	if name == "" {
		return Validationf("metadata name shall not be empty")
	}
	it := m.items[name]
	it.value = value
	it.deleted = false
	if dtype != "" {
		it.dtype = dtype
	} else if it.dtype == "" {
		it.dtype = MDString
	}
	m.items[name] = it
	return nil
}

// Get returns the raw value of an entry.
func (m *Metadata) Get(name string) (string, error) {
	it, ok := m.items[name]
	if !ok || it.deleted {
		return "", NotFoundf("metadata %q not defined for %s", name, m.tsuid)
	}
	return it.value, nil
}

// Value returns the entry converted according to its declared type:
// string for MDString, float64 for MDNumber, int64 (epoch ms) for MDDate.
func (m *Metadata) Value(name string) (any, error) {
	it, ok := m.items[name]
	if !ok || it.deleted {
		return nil, NotFoundf("metadata %q not defined for %s", name, m.tsuid)
	}
	switch it.dtype {
	case MDNumber:
		v, err := strconv.ParseFloat(it.value, 64)
		if err != nil {
			return nil, Validationf("metadata %q is not a number: %q", name, it.value)
		}
		return v, nil
	case MDDate:
		v, err := strconv.ParseInt(it.value, 10, 64)
		if err != nil {
			return nil, Validationf("metadata %q is not a date: %q", name, it.value)
		}
		return v, nil
	default:
		return it.value, nil
	}
}

// Type returns the declared type of an entry.
func (m *Metadata) Type(name string) (MDType, error) {
	it, ok := m.items[name]
	if !ok || it.deleted {
		return "", NotFoundf("metadata %q not defined for %s", name, m.tsuid)
	}
	return it.dtype, nil
}

// Delete marks an entry as deleted locally. The remote deletion happens
// on the next Save. Deleting an unknown name is not an error: the mark
// simply has nothing to remove remotely.
func (m *Metadata) Delete(name string) {
	it := m.items[name]
	it.deleted = true
	m.items[name] = it
}

// epochValue reads an entry as an epoch-ms integer, used for the
// intrinsic date range entries.
func (m *Metadata) epochValue(name string) (int64, bool) {
	it, ok := m.items[name]
	if !ok || it.deleted {
		return 0, false
	}
	v, err := strconv.ParseInt(it.value, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Save pushes the local bag to the datamodel service: live entries are
// upserted, deleted marks are removed. Delegates to the Metadata
// manager.
func (m *Metadata) Save(ctx context.Context) error { return m.api.MD.Save(ctx, m) }

// TrySave is Save in status-only mode.
func (m *Metadata) TrySave(ctx context.Context) bool { return m.api.MD.TrySave(ctx, m) }

// Fetch replaces the local bag with the remote one.
func (m *Metadata) Fetch(ctx context.Context) error { return m.api.MD.Fetch(ctx, m) }
