// Package memory provides in-memory implementations of the three
// backend client contracts. They back the test suites, the runnable
// examples and the CLI emulation mode, and behave like the real
// services: same error kinds, same cascade rules, deterministic list
// ordering.
package memory

import (
	"github.com/chronos-analytics/chronos-go/pkg/core"
)

// NewClients bundles a fresh set of emulation backends.
func NewClients() core.Clients {
	return core.Clients{
		Datamodel: NewDatamodel(),
		TSDB:      NewTSDB(),
		Catalog:   NewCatalog(),
	}
}
