package rest

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/chronos-analytics/chronos-go/pkg/core"
)

// TSDB talks to the time-series database REST gateway.
type TSDB struct {
	c *client
}

// NewTSDB builds a tsdb client rooted at baseURL (e.g. http://host/tsdb/api).
func NewTSDB(baseURL string, cfg Config) *TSDB {
	return &TSDB{c: newClient(baseURL, cfg)}
}

var _ core.TSDBClient = (*TSDB)(nil)

type wirePoint struct {
	Timestamp int64   `json:"timestamp"`
	Value     float64 `json:"value"`
}

func (t *TSDB) AssignRef(ctx context.Context) (string, error) {
	var wire struct {
		TSUID string `json:"tsuid"`
	}
	if err := t.c.do(ctx, http.MethodPost, "/ref", nil, nil, &wire); err != nil {
		return "", err
	}
	if wire.TSUID == "" {
		return "", core.Unavailablef("tsdb returned an empty tsuid")
	}
	return wire.TSUID, nil
}

func (t *TSDB) AddPoints(ctx context.Context, tsuid string, points []core.Point) (int64, int64, int, error) {
	if len(points) == 0 {
		return 0, 0, 0, core.Validationf("no points to import for %s", tsuid)
	}
	body := make([]wirePoint, len(points))
	for i, p := range points {
		body[i] = wirePoint{Timestamp: p.Timestamp, Value: p.Value}
	}
	var wire struct {
		Start int64 `json:"start"`
		End   int64 `json:"end"`
		Count int   `json:"count"`
	}
	if err := t.c.do(ctx, http.MethodPost, "/put/"+url.PathEscape(tsuid), nil, body, &wire); err != nil {
		return 0, 0, 0, err
	}
	return wire.Start, wire.End, wire.Count, nil
}

func (t *TSDB) Points(ctx context.Context, tsuid string, sd, ed int64) ([]core.Point, error) {
	query := url.Values{
		"sd": {strconv.FormatInt(sd, 10)},
		"ed": {strconv.FormatInt(ed, 10)},
	}
	var wire []wirePoint
	if err := t.c.do(ctx, http.MethodGet, "/query/"+url.PathEscape(tsuid), query, nil, &wire); err != nil {
		return nil, err
	}
	out := make([]core.Point, len(wire))
	for i, p := range wire {
		out[i] = core.Point{Timestamp: p.Timestamp, Value: p.Value}
	}
	return out, nil
}

func (t *TSDB) PointCount(ctx context.Context, tsuid string, ed int64) (int, error) {
	var query url.Values
	if ed > 0 {
		query = url.Values{"ed": {strconv.FormatInt(ed, 10)}}
	}
	var wire struct {
		Count int `json:"count"`
	}
	if err := t.c.do(ctx, http.MethodGet, "/count/"+url.PathEscape(tsuid), query, nil, &wire); err != nil {
		return 0, err
	}
	return wire.Count, nil
}
