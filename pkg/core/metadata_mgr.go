package core

import "context"

// MetadataMgr note: a bag belongs to exactly one timeseries, so every
// action here is scoped to a TSUID. Key-level actions talk to the
// backend directly; bag-level Save replays the local state (upserts plus
// deletions) through the same key-level path.

// MetadataManager owns every backend-facing action of the Metadata
// family.
type MetadataManager struct {
	api *API
	dm  DatamodelClient
}

// Get fetches the metadata bag of a TSUID. Fails with ErrNotFound when
// the timeseries is unknown.
func (m *MetadataManager) Get(ctx context.Context, tsuid string) (*Metadata, error) {
	if tsuid == "" {
		return nil, Validationf("tsuid shall not be empty")
	}
	md := newMetadata(m.api, tsuid)
	if err := m.Fetch(ctx, md); err != nil {
		return nil, err
	}
	return md, nil
}

// Fetch replaces the local bag with the remote state.
func (m *MetadataManager) Fetch(ctx context.Context, md *Metadata) error {
	if md.tsuid == "" {
		return Validationf("metadata bag has no tsuid")
	}
	bags, err := m.dm.MetadataFetch(ctx, []string{md.tsuid})
	if err != nil {
		return err
	}
	items := make(map[string]metaItem)
	for name, entry := range bags[md.tsuid] {
		items[name] = metaItem{value: entry.Value, dtype: entry.DType}
	}
	md.items = items
	return nil
}

// Save pushes a whole bag: live entries are upserted, deletion marks are
// applied remotely then dropped locally.
func (m *MetadataManager) Save(ctx context.Context, md *Metadata) error {
	if md.tsuid == "" {
		return Validationf("metadata bag has no tsuid")
	}
	for name, it := range md.items {
		if it.deleted {
			if err := m.Delete(ctx, md.tsuid, name); err != nil && !IsNotFound(err) {
				return err
			}
			delete(md.items, name)
			continue
		}
		if err := m.SaveKey(ctx, md.tsuid, name, it.value, it.dtype); err != nil {
			return err
		}
	}
	return nil
}

// TrySave is Save in status-only mode.
func (m *MetadataManager) TrySave(ctx context.Context, md *Metadata) bool {
	return m.api.status("md.save", m.Save(ctx, md))
}

// SaveKey upserts one metadata entry of a TSUID.
func (m *MetadataManager) SaveKey(ctx context.Context, tsuid, name, value string, dtype MDType) error {
	if tsuid == "" {
		return Validationf("tsuid shall not be empty")
	}
	if name == "" {
		return Validationf("metadata name shall not be empty")
	}
	if dtype == "" {
		dtype = MDString
	}
	return m.dm.MetadataUpsert(ctx, tsuid, name, value, dtype)
}

// TrySaveKey is SaveKey in status-only mode.
func (m *MetadataManager) TrySaveKey(ctx context.Context, tsuid, name, value string, dtype MDType) bool {
	return m.api.status("md.savekey", m.SaveKey(ctx, tsuid, name, value, dtype))
}

// Delete removes one metadata entry of a TSUID.
func (m *MetadataManager) Delete(ctx context.Context, tsuid, name string) error {
	if tsuid == "" {
		return Validationf("tsuid shall not be empty")
	}
	if name == "" {
		return Validationf("metadata name shall not be empty")
	}
	return m.dm.MetadataDelete(ctx, tsuid, name)
}

// TryDelete is Delete in status-only mode.
func (m *MetadataManager) TryDelete(ctx context.Context, tsuid, name string) bool {
	return m.api.status("md.delete", m.Delete(ctx, tsuid, name))
}
