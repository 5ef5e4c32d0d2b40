package core_test

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chronos-analytics/chronos-go/pkg/adapters/memory"
	"github.com/chronos-analytics/chronos-go/pkg/core"
)

// testEnv wires an API onto fresh in-memory backends, keeping the
// concrete adapters reachable for seeding and inspection.
type testEnv struct {
	api  *core.API
	dm   *memory.Datamodel
	tsdb *memory.TSDB
	cat  *memory.Catalog
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		dm:   memory.NewDatamodel(),
		tsdb: memory.NewTSDB(),
		cat:  memory.NewCatalog(),
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	api, err := core.NewAPI(core.Clients{
		Datamodel: env.dm,
		TSDB:      env.tsdb,
		Catalog:   env.cat,
	}, logger)
	require.NoError(t, err)
	env.api = api
	return env
}

func TestNewAPI_RequiresAllClients(t *testing.T) {
	full := memory.NewClients()

	cases := []struct {
		name string
		mod  func(c *core.Clients)
	}{
		{"missing datamodel", func(c *core.Clients) { c.Datamodel = nil }},
		{"missing tsdb", func(c *core.Clients) { c.TSDB = nil }},
		{"missing catalog", func(c *core.Clients) { c.Catalog = nil }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clients := full
			tc.mod(&clients)
			_, err := core.NewAPI(clients, nil)
			require.Error(t, err)
			require.True(t, core.IsValidation(err))
		})
	}
}

func TestNewAPI_WiresManagers(t *testing.T) {
	api, err := core.NewAPI(memory.NewClients(), nil)
	require.NoError(t, err)
	require.NotNil(t, api.DS)
	require.NotNil(t, api.TS)
	require.NotNil(t, api.MD)
	require.NotNil(t, api.Op)
	require.NotNil(t, api.Table)
	require.NotNil(t, api.Logger())
}
