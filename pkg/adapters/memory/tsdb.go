package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/chronos-analytics/chronos-go/pkg/core"
)

// TSDB is an in-memory time-series database.
type TSDB struct {
	mu     sync.Mutex
	points map[string][]core.Point
}

// NewTSDB returns an empty time-series backend.
func NewTSDB() *TSDB {
	return &TSDB{points: make(map[string][]core.Point)}
}

var _ core.TSDBClient = (*TSDB)(nil)

// AssignRef reserves a fresh TSUID. Real backends derive it from a
// generated metric/tags pair; here a random hex identifier is enough.
func (t *TSDB) AssignRef(ctx context.Context) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	tsuid := strings.ReplaceAll(uuid.NewString(), "-", "")
	t.points[tsuid] = nil
	return tsuid, nil
}

func (t *TSDB) AddPoints(ctx context.Context, tsuid string, points []core.Point) (int64, int64, int, error) {
	if len(points) == 0 {
		return 0, 0, 0, core.Validationf("no points to import for %s", tsuid)
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	stored := append(t.points[tsuid], points...)
	sort.Slice(stored, func(i, j int) bool { return stored[i].Timestamp < stored[j].Timestamp })
	t.points[tsuid] = stored

	start := points[0].Timestamp
	end := points[0].Timestamp
	for _, p := range points[1:] {
		if p.Timestamp < start {
			start = p.Timestamp
		}
		if p.Timestamp > end {
			end = p.Timestamp
		}
	}
	return start, end, len(points), nil
}

func (t *TSDB) Points(ctx context.Context, tsuid string, sd, ed int64) ([]core.Point, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	stored, ok := t.points[tsuid]
	if !ok {
		return nil, core.NotFoundf("timeseries %s not found", tsuid)
	}
	var out []core.Point
	for _, p := range stored {
		if p.Timestamp >= sd && p.Timestamp <= ed {
			out = append(out, p)
		}
	}
	return out, nil
}

func (t *TSDB) PointCount(ctx context.Context, tsuid string, ed int64) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	stored, ok := t.points[tsuid]
	if !ok {
		return 0, core.NotFoundf("timeseries %s not found", tsuid)
	}
	if ed == 0 {
		return len(stored), nil
	}
	n := 0
	for _, p := range stored {
		if p.Timestamp <= ed {
			n++
		}
	}
	return n, nil
}
