package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chronos-analytics/chronos-go/pkg/core"
)

// testConfig disables retries so failure-path tests stay fast.
func testConfig() Config {
	return Config{RetryMax: -1}
}

func TestClient_StatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		is     func(error) bool
	}{
		{"404 to not found", http.StatusNotFound, `{"message":"dataset missing"}`, core.IsNotFound},
		{"409 to conflict", http.StatusConflict, `{"message":"already exists"}`, core.IsConflict},
		{"400 to validation", http.StatusBadRequest, `{"message":"bad name"}`, core.IsValidation},
		{"500 to unavailable", http.StatusInternalServerError, `boom`, core.IsUnavailable},
		{"418 to unavailable", http.StatusTeapot, ``, core.IsUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			c := newClient(srv.URL, testConfig())
			err := c.do(context.Background(), http.MethodGet, "/whatever", nil, nil, nil)
			require.Error(t, err)
			assert.True(t, tc.is(err))
			assert.True(t, core.IsFunctional(err))
		})
	}
}

func TestClient_ErrorCarriesDetailMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"dataset \"x\" not found"}`))
	}))
	defer srv.Close()

	c := newClient(srv.URL, testConfig())
	err := c.do(context.Background(), http.MethodGet, "/dataset/x", nil, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `dataset "x" not found`)
}

func TestClient_JSONRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/echo", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "1", r.URL.Query().Get("deep"))

		var in map[string]string
		require.NoError(t, readJSON(r, &in))
		assert.Equal(t, "world", in["hello"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := newClient(srv.URL, testConfig())
	var out struct {
		OK bool `json:"ok"`
	}
	err := c.do(context.Background(), http.MethodPost, "/echo",
		map[string][]string{"deep": {"1"}},
		map[string]string{"hello": "world"}, &out)
	require.NoError(t, err)
	assert.True(t, out.OK)
}

func TestClient_TransportErrorIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	c := newClient(srv.URL, testConfig())
	err := c.do(context.Background(), http.MethodGet, "/x", nil, nil, nil)
	require.Error(t, err)
	assert.True(t, core.IsUnavailable(err))
}

func TestClient_TrimsBaseSlash(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := newClient(srv.URL+"/", testConfig())
	require.NoError(t, c.do(context.Background(), http.MethodGet, "/ping", nil, nil, nil))
	assert.Equal(t, "/ping", gotPath)
}

func readJSON(r *http.Request, out any) error {
	return json.NewDecoder(r.Body).Decode(out)
}
