package platform

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/chronos-analytics/chronos-go/pkg/core"
)

// options holds the internal configuration for the chronos API.
type options struct {
	logger *slog.Logger

	host         string
	datamodelURL string
	tsdbURL      string
	catalogURL   string

	emulate    bool
	httpClient *http.Client
	retryMax   int
	timeout    time.Duration

	clients core.Clients
}

// Option defines a functional option for configuring the API.
type Option func(*options)

func defaultOptions() *options {
	return &options{}
}

// WithLogger sets the logger used by the managers and the REST clients.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithHost sets the platform entry URL; per-service URLs are derived
// from it unless set explicitly.
func WithHost(host string) Option {
	return func(o *options) { o.host = host }
}

// WithDatamodelURL overrides the datamodel service URL.
func WithDatamodelURL(u string) Option {
	return func(o *options) { o.datamodelURL = u }
}

// WithTSDBURL overrides the time-series database URL.
func WithTSDBURL(u string) Option {
	return func(o *options) { o.tsdbURL = u }
}

// WithCatalogURL overrides the operator catalog URL.
func WithCatalogURL(u string) Option {
	return func(o *options) { o.catalogURL = u }
}

// WithEmulation swaps every backend for an in-memory one. Useful for
// tests and offline work.
func WithEmulation(enabled bool) Option {
	return func(o *options) { o.emulate = enabled }
}

// WithHTTPClient overrides the HTTP transport of the REST clients.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// WithRetryMax sets the number of transport-level retries.
func WithRetryMax(n int) Option {
	return func(o *options) { o.retryMax = n }
}

// WithTimeout bounds each backend round trip.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithDatamodelClient injects a custom datamodel client, skipping the
// REST one.
func WithDatamodelClient(c core.DatamodelClient) Option {
	return func(o *options) { o.clients.Datamodel = c }
}

// WithTSDBClient injects a custom time-series database client.
func WithTSDBClient(c core.TSDBClient) Option {
	return func(o *options) { o.clients.TSDB = c }
}

// WithCatalogClient injects a custom catalog client.
func WithCatalogClient(c core.CatalogClient) Option {
	return func(o *options) { o.clients.Catalog = c }
}
