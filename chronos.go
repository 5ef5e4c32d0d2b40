package chronos

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/chronos-analytics/chronos-go/internal/platform"
	"github.com/chronos-analytics/chronos-go/pkg/core"
)

// --- Types ---

// API is a public alias for the manager registry.
type API = core.API

// Dataset is a public alias for the dataset object.
type Dataset = core.Dataset

// Timeseries is a public alias for the time-series object.
type Timeseries = core.Timeseries

// Metadata is a public alias for the per-series metadata bag.
type Metadata = core.Metadata

// Operator is a public alias for the catalog operator object.
type Operator = core.Operator

// Table is a public alias for the table object.
type Table = core.Table

// Point is a single time-series sample.
type Point = core.Point

// MDType enumerates metadata value types.
type MDType = core.MDType

// Metadata value types.
const (
	MDString = core.MDString
	MDNumber = core.MDNumber
	MDDate   = core.MDDate
)

// SaveOption configures a time-series save.
type SaveOption = core.SaveOption

// WithParent inherits the parent's user metadata on first save.
func WithParent(parent *core.Timeseries) SaveOption {
	return core.WithParent(parent)
}

// WithoutIntrinsics skips refreshing the computed date and count metadata.
func WithoutIntrinsics() SaveOption {
	return core.WithoutIntrinsics()
}

// --- Errors ---

// Err is the root of the error family; every functional error matches it.
var Err = core.Err

// Error kinds.
var (
	ErrNotFound    = core.ErrNotFound
	ErrValidation  = core.ErrValidation
	ErrConflict    = core.ErrConflict
	ErrUnavailable = core.ErrUnavailable
)

// IsNotFound reports whether err is an ErrNotFound.
func IsNotFound(err error) bool { return core.IsNotFound(err) }

// IsValidation reports whether err is an ErrValidation.
func IsValidation(err error) bool { return core.IsValidation(err) }

// IsConflict reports whether err is an ErrConflict.
func IsConflict(err error) bool { return core.IsConflict(err) }

// IsUnavailable reports whether err is an ErrUnavailable.
func IsUnavailable(err error) bool { return core.IsUnavailable(err) }

// --- Configuration ---

// Option defines a functional option for configuring the API.
type Option = platform.Option

// Config is the YAML session configuration.
type Config = platform.Config

// WithLogger sets the logger for the managers and REST clients.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithHost sets the platform entry URL (e.g. http://chronos.example.com).
func WithHost(host string) Option {
	return platform.WithHost(host)
}

// WithDatamodelURL overrides the datamodel service URL.
func WithDatamodelURL(u string) Option {
	return platform.WithDatamodelURL(u)
}

// WithTSDBURL overrides the time-series database URL.
func WithTSDBURL(u string) Option {
	return platform.WithTSDBURL(u)
}

// WithCatalogURL overrides the operator catalog URL.
func WithCatalogURL(u string) Option {
	return platform.WithCatalogURL(u)
}

// WithEmulation swaps every backend for an in-memory one (useful for
// tests and offline work).
func WithEmulation(enabled bool) Option {
	return platform.WithEmulation(enabled)
}

// WithHTTPClient overrides the HTTP transport of the REST clients.
func WithHTTPClient(c *http.Client) Option {
	return platform.WithHTTPClient(c)
}

// WithRetryMax sets the number of transport-level retries.
func WithRetryMax(n int) Option {
	return platform.WithRetryMax(n)
}

// WithTimeout bounds each backend round trip.
func WithTimeout(d time.Duration) Option {
	return platform.WithTimeout(d)
}

// WithDatamodelClient injects a custom datamodel client.
func WithDatamodelClient(c core.DatamodelClient) Option {
	return platform.WithDatamodelClient(c)
}

// WithTSDBClient injects a custom time-series database client.
func WithTSDBClient(c core.TSDBClient) Option {
	return platform.WithTSDBClient(c)
}

// WithCatalogClient injects a custom catalog client.
func WithCatalogClient(c core.CatalogClient) Option {
	return platform.WithCatalogClient(c)
}

// --- Factory ---

// New creates a wired API. Without options it targets the REST services
// derived from CHRONOS_HOST (or http://localhost).
func New(opts ...Option) (*core.API, error) {
	return platform.New(opts...)
}

// Open loads the YAML config at path (or CHRONOS_CONFIG when path is
// empty) and creates an API from it. Explicit options win over the file.
func Open(path string, opts ...Option) (*core.API, error) {
	cfg, err := platform.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	return platform.New(append(cfg.Options(), opts...)...)
}

// LoadConfig reads a YAML config file.
func LoadConfig(path string) (Config, error) {
	return platform.LoadConfig(path)
}

// WatchConfig watches a config file and invokes onChange on every valid
// reload until ctx is cancelled.
func WatchConfig(ctx context.Context, path string, logger *slog.Logger, onChange func(Config)) error {
	return platform.WatchConfig(ctx, path, logger, onChange)
}
