// Package core implements the chronos object model: five object families
// (Dataset, Timeseries, Metadata, Operator, Table), one manager per
// family, and the API registry exposing them. Managers are the only
// components that talk to backend clients; domain objects delegate every
// persistent action to their owning manager.
package core

import (
	"log/slog"
)

// API is the single entry point of the library. It is a registry and
// nothing more: each object family is reached through its manager under
// a short name. Any behavior belongs in a manager, not here.
type API struct {
	DS    *DatasetManager
	TS    *TimeseriesManager
	MD    *MetadataManager
	Op    *OperatorManager
	Table *TableManager

	log *slog.Logger
}

// NewAPI wires the five managers onto the given backend clients.
// All three clients are required.
func NewAPI(clients Clients, logger *slog.Logger) (*API, error) {
	if clients.Datamodel == nil {
		return nil, Validationf("datamodel client is required")
	}
	if clients.TSDB == nil {
		return nil, Validationf("tsdb client is required")
	}
	if clients.Catalog == nil {
		return nil, Validationf("catalog client is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	api := &API{log: logger}
	api.DS = &DatasetManager{api: api, dm: clients.Datamodel}
	api.TS = &TimeseriesManager{api: api, dm: clients.Datamodel, tsdb: clients.TSDB}
	api.MD = &MetadataManager{api: api, dm: clients.Datamodel}
	api.Op = &OperatorManager{api: api, dm: clients.Datamodel, cat: clients.Catalog}
	api.Table = &TableManager{api: api, dm: clients.Datamodel}
	return api, nil
}

// Logger returns the logger the API was built with.
func (a *API) Logger() *slog.Logger { return a.log }

// status implements status-only mode: it converts a mutating-action
// failure into a boolean and logs it, so Try* wrappers share one code
// path with their error-returning counterparts.
func (a *API) status(op string, err error) bool {
	if err == nil {
		return true
	}
	a.log.Warn("action failed", "op", op, "error", err)
	return false
}
