package platform

import (
	"log/slog"
	"os"
	"strings"

	"github.com/chronos-analytics/chronos-go/pkg/adapters/memory"
	"github.com/chronos-analytics/chronos-go/pkg/adapters/rest"
	"github.com/chronos-analytics/chronos-go/pkg/core"
)

const defaultHost = "http://localhost"

// Service URL suffixes derived from the platform host.
const (
	datamodelPath = "/datamodel/api"
	tsdbPath      = "/tsdb/api"
	catalogPath   = "/catalog/api"
)

// New builds a wired API. Backends default to REST clients derived from
// the host URL; WithEmulation swaps them for in-memory ones and
// With*Client injects custom implementations.
func New(opts ...Option) (*core.API, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	logger := o.logger
	if logger == nil {
		logger = slog.Default()
	}

	clients := o.clients
	if o.emulate {
		fill(&clients, memory.NewClients())
	} else {
		host := o.host
		if host == "" {
			host = os.Getenv(EnvHost)
		}
		if host == "" {
			host = defaultHost
		}
		if !strings.Contains(host, "://") {
			host = "http://" + host
		}
		host = strings.TrimRight(host, "/")

		cfg := rest.Config{
			HTTPClient: o.httpClient,
			RetryMax:   o.retryMax,
			Timeout:    o.timeout,
			Logger:     logger,
		}
		fill(&clients, core.Clients{
			Datamodel: rest.NewDatamodel(orDefault(o.datamodelURL, host+datamodelPath), cfg),
			TSDB:      rest.NewTSDB(orDefault(o.tsdbURL, host+tsdbPath), cfg),
			Catalog:   rest.NewCatalog(orDefault(o.catalogURL, host+catalogPath), cfg),
		})
	}

	return core.NewAPI(clients, logger)
}

// fill completes unset client slots with defaults, keeping injected
// clients in place.
func fill(dst *core.Clients, defaults core.Clients) {
	if dst.Datamodel == nil {
		dst.Datamodel = defaults.Datamodel
	}
	if dst.TSDB == nil {
		dst.TSDB = defaults.TSDB
	}
	if dst.Catalog == nil {
		dst.Catalog = defaults.Catalog
	}
}

func orDefault(v, def string) string {
	if v != "" {
		return v
	}
	return def
}
