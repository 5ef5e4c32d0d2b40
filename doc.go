// Package chronos is the Composition Root for the Chronos client library.
//
// It connects the object model (Domain Layer) with the backend adapters
// (Transport Layer) using the Hexagonal Architecture pattern.
//
// Philosophy:
//
// Chronos is a façade over the three services of an analytics platform:
// the datamodel (relational store for datasets, metadata, tables and
// process results), the time-series database, and the operator catalog.
// Callers manipulate plain domain objects; each object family has one
// manager that owns every backend interaction, so no object ever talks
// to a service directly.
//
// Features:
//
//   - **One manager per family**: Dataset, Timeseries, Metadata, Operator
//     and Table each get a dedicated manager under api.DS, api.TS, api.MD,
//     api.Op and api.Table.
//   - **Status-only mode**: every mutating action has a Try* twin that
//     returns a bool instead of an error, for scripting-style callers.
//   - **Error family**: all functional errors match Err and one of the
//     kind sentinels (ErrNotFound, ErrValidation, ErrConflict,
//     ErrUnavailable).
//   - **Emulation**: WithEmulation(true) swaps every backend for an
//     in-memory one, so the full API works offline and in tests.
//   - **Extensible**: custom backends plug in via core.DatamodelClient,
//     core.TSDBClient and core.CatalogClient.
//
// Usage:
//
//	// Connect with functional options
//	api, err := chronos.New(
//		chronos.WithHost("http://chronos.example.com"),
//		chronos.WithLogger(logger),
//	)
//
//	// Create and save a time series
//	ts, err := api.TS.New(ctx, "sensor_42")
//	ts.Points = append(ts.Points, chronos.Point{Timestamp: 1000, Value: 3.14})
//	err = ts.Save(ctx)
package chronos
