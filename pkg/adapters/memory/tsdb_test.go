package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chronos-analytics/chronos-go/pkg/core"
)

func TestTSDB_AssignRef(t *testing.T) {
	tsdb := NewTSDB()
	ctx := context.Background()

	a, err := tsdb.AssignRef(ctx)
	require.NoError(t, err)
	b, err := tsdb.AssignRef(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)

	// A fresh reference is known and empty.
	n, err := tsdb.PointCount(ctx, a, 0)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestTSDB_AddPoints(t *testing.T) {
	tsdb := NewTSDB()
	ctx := context.Background()

	tsuid, err := tsdb.AssignRef(ctx)
	require.NoError(t, err)

	_, _, _, err = tsdb.AddPoints(ctx, tsuid, nil)
	require.True(t, core.IsValidation(err))

	start, end, count, err := tsdb.AddPoints(ctx, tsuid, []core.Point{
		{Timestamp: 3000, Value: 3},
		{Timestamp: 1000, Value: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1000), start)
	assert.Equal(t, int64(3000), end)
	assert.Equal(t, 2, count)

	// The returned range covers the imported batch only.
	start, end, count, err = tsdb.AddPoints(ctx, tsuid, []core.Point{{Timestamp: 2000, Value: 2}})
	require.NoError(t, err)
	assert.Equal(t, int64(2000), start)
	assert.Equal(t, int64(2000), end)
	assert.Equal(t, 1, count)

	// Storage is merged and kept sorted.
	points, err := tsdb.Points(ctx, tsuid, 0, 9999)
	require.NoError(t, err)
	require.Len(t, points, 3)
	assert.Equal(t, int64(1000), points[0].Timestamp)
	assert.Equal(t, int64(2000), points[1].Timestamp)
	assert.Equal(t, int64(3000), points[2].Timestamp)
}

func TestTSDB_PointsRange(t *testing.T) {
	tsdb := NewTSDB()
	ctx := context.Background()

	tsuid, err := tsdb.AssignRef(ctx)
	require.NoError(t, err)
	_, _, _, err = tsdb.AddPoints(ctx, tsuid, []core.Point{
		{Timestamp: 1000, Value: 1},
		{Timestamp: 2000, Value: 2},
		{Timestamp: 3000, Value: 3},
	})
	require.NoError(t, err)

	// Bounds are inclusive.
	points, err := tsdb.Points(ctx, tsuid, 1000, 2000)
	require.NoError(t, err)
	require.Len(t, points, 2)

	points, err = tsdb.Points(ctx, tsuid, 4000, 9000)
	require.NoError(t, err)
	assert.Empty(t, points)

	_, err = tsdb.Points(ctx, "unknown", 0, 1)
	require.True(t, core.IsNotFound(err))
}

func TestTSDB_PointCount(t *testing.T) {
	tsdb := NewTSDB()
	ctx := context.Background()

	tsuid, err := tsdb.AssignRef(ctx)
	require.NoError(t, err)
	_, _, _, err = tsdb.AddPoints(ctx, tsuid, []core.Point{
		{Timestamp: 1000, Value: 1},
		{Timestamp: 2000, Value: 2},
	})
	require.NoError(t, err)

	n, err := tsdb.PointCount(ctx, tsuid, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = tsdb.PointCount(ctx, tsuid, 1500)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = tsdb.PointCount(ctx, "unknown", 0)
	require.True(t, core.IsNotFound(err))
}
