package core_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chronos-analytics/chronos-go/pkg/core"
)

// saveSeries creates and persists a timeseries with the given points.
func saveSeries(t *testing.T, env *testEnv, fid string, points []core.Point) *core.Timeseries {
	t.Helper()
	ctx := context.Background()
	ts, err := env.api.TS.New(ctx, fid)
	require.NoError(t, err)
	ts.Points = points
	require.NoError(t, ts.Save(ctx))
	return ts
}

func TestTimeseries_SaveAndGetRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ts := saveSeries(t, env, "sensor_1", []core.Point{
		{Timestamp: 3000, Value: 3},
		{Timestamp: 1000, Value: 1},
		{Timestamp: 2000, Value: 2},
	})
	require.NotEmpty(t, ts.TSUID())

	back, err := env.api.TS.Get(ctx, ts.TSUID())
	require.NoError(t, err)
	assert.Equal(t, "sensor_1", back.FID())
	assert.Equal(t, ts.TSUID(), back.TSUID())

	// Intrinsics are generated on first save.
	start, err := back.Metadata().Value(core.MetaStartDate)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), start)
	end, err := back.Metadata().Value(core.MetaEndDate)
	require.NoError(t, err)
	assert.Equal(t, int64(3000), end)
	count, err := back.Metadata().Value(core.MetaNbPoints)
	require.NoError(t, err)
	assert.Equal(t, float64(3), count)

	// Fetch with a zero range resolves the intrinsic date range, and the
	// points come back in timestamp order.
	require.NoError(t, back.Fetch(ctx, 0, 0))
	require.Len(t, back.Points, 3)
	assert.Equal(t, int64(1000), back.Points[0].Timestamp)
	assert.Equal(t, int64(3000), back.Points[2].Timestamp)
}

func TestTimeseries_GetByFID(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ts := saveSeries(t, env, "sensor_2", []core.Point{{Timestamp: 1, Value: 1}})

	back, err := env.api.TS.GetByFID(ctx, "sensor_2")
	require.NoError(t, err)
	assert.Equal(t, ts.TSUID(), back.TSUID())

	_, err = env.api.TS.GetByFID(ctx, "no_such_fid")
	require.True(t, core.IsNotFound(err))
}

func TestTimeseries_GetUnknownTSUID(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.api.TS.Get(context.Background(), "deadbeef")
	require.True(t, core.IsNotFound(err))
}

func TestTimeseries_NewConflictOnBoundFID(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.api.TS.New(ctx, "taken")
	require.NoError(t, err)

	_, err = env.api.TS.New(ctx, "taken")
	require.Error(t, err)
	assert.True(t, core.IsConflict(err))
	assert.True(t, core.IsFunctional(err))
}

func TestTimeseries_SaveRequiresFID(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ts, err := env.api.TS.New(ctx, "")
	require.NoError(t, err)
	ts.Points = []core.Point{{Timestamp: 1, Value: 1}}

	err = ts.Save(ctx)
	require.True(t, core.IsValidation(err))
	assert.False(t, ts.TrySave(ctx))
}

func TestTimeseries_MetadataBagNeverNil(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	local, err := env.api.TS.New(ctx, "")
	require.NoError(t, err)
	require.NotNil(t, local.Metadata())

	saveSeries(t, env, "sensor_3", []core.Point{{Timestamp: 1, Value: 1}})
	listed, err := env.api.TS.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	// List does not hydrate, but the bag handle is still usable.
	require.NotNil(t, listed[0].Metadata())
	assert.Equal(t, 0, listed[0].Metadata().Len())
	assert.Equal(t, listed[0].TSUID(), listed[0].Metadata().TSUID())
}

func TestTimeseries_EmptyListIsNotAnError(t *testing.T) {
	env := newTestEnv(t)
	listed, err := env.api.TS.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestTimeseries_DeleteCascadesMetadata(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ts := saveSeries(t, env, "doomed", []core.Point{{Timestamp: 1, Value: 1}})
	require.NoError(t, env.api.MD.SaveKey(ctx, ts.TSUID(), "site", "plant_1", core.MDString))

	require.NoError(t, ts.Delete(ctx))

	// The metadata went with the record: nothing is orphaned.
	_, err := env.api.MD.Get(ctx, ts.TSUID())
	require.True(t, core.IsNotFound(err))

	// The fid is free again.
	_, err = env.api.TS.FIDToTSUID(ctx, "doomed")
	require.True(t, core.IsNotFound(err))
	_, err = env.api.TS.New(ctx, "doomed")
	require.NoError(t, err)
}

func TestTimeseries_DeleteNeedsAnIdentity(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	handle, err := env.api.TS.New(ctx, "")
	require.NoError(t, err)

	err = env.api.TS.Delete(ctx, handle)
	require.True(t, core.IsValidation(err))
	assert.False(t, env.api.TS.TryDelete(ctx, handle))
}

func TestTimeseries_InheritanceSkipsIntrinsics(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	parent := saveSeries(t, env, "parent", []core.Point{{Timestamp: 1000, Value: 1}})
	require.NoError(t, env.api.MD.SaveKey(ctx, parent.TSUID(), "site", "plant_7", core.MDString))
	require.NoError(t, env.api.MD.SaveKey(ctx, parent.TSUID(), "qual_ref_period", "60", core.MDNumber))

	child, err := env.api.TS.New(ctx, "child")
	require.NoError(t, err)
	child.Points = []core.Point{{Timestamp: 5000, Value: 5}}
	require.NoError(t, child.Save(ctx, core.WithParent(parent)))

	back, err := env.api.TS.Get(ctx, child.TSUID())
	require.NoError(t, err)

	// User metadata is inherited.
	site, err := back.Metadata().Get("site")
	require.NoError(t, err)
	assert.Equal(t, "plant_7", site)

	// Quality figures and intrinsics are not: the child keeps its own.
	_, err = back.Metadata().Get("qual_ref_period")
	require.True(t, core.IsNotFound(err))
	start, err := back.Metadata().Value(core.MetaStartDate)
	require.NoError(t, err)
	assert.Equal(t, int64(5000), start)
}

func TestTimeseries_FindFromMeta(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a := saveSeries(t, env, "find_a", []core.Point{{Timestamp: 1, Value: 1}})
	b := saveSeries(t, env, "find_b", []core.Point{{Timestamp: 1, Value: 1}})
	saveSeries(t, env, "find_c", []core.Point{{Timestamp: 1, Value: 1}})

	require.NoError(t, env.api.MD.SaveKey(ctx, a.TSUID(), "site", "p1", core.MDString))
	require.NoError(t, env.api.MD.SaveKey(ctx, a.TSUID(), "unit", "bar", core.MDString))
	require.NoError(t, env.api.MD.SaveKey(ctx, b.TSUID(), "site", "p2", core.MDString))

	// Values of one key are OR-ed.
	got, err := env.api.TS.FindFromMeta(ctx, map[string][]string{"site": {"p1", "p2"}})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{a.TSUID(), b.TSUID()}, got)

	// Keys are AND-ed.
	got, err = env.api.TS.FindFromMeta(ctx, map[string][]string{
		"site": {"p1", "p2"},
		"unit": {"bar"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{a.TSUID()}, got)
}

func TestTimeseries_FetchValidatesRange(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ts := saveSeries(t, env, "ranged", []core.Point{
		{Timestamp: 1000, Value: 1},
		{Timestamp: 2000, Value: 2},
		{Timestamp: 3000, Value: 3},
	})

	err := ts.Fetch(ctx, 3000, 1000)
	require.True(t, core.IsValidation(err))

	require.NoError(t, ts.Fetch(ctx, 1500, 3000))
	require.Len(t, ts.Points, 2)
}

func TestTimeseries_FIDResolution(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ts := saveSeries(t, env, "resolve_me", []core.Point{{Timestamp: 1, Value: 1}})

	tsuid, err := env.api.TS.FIDToTSUID(ctx, "resolve_me")
	require.NoError(t, err)
	assert.Equal(t, ts.TSUID(), tsuid)

	fid, err := env.api.TS.TSUIDToFID(ctx, tsuid)
	require.NoError(t, err)
	assert.Equal(t, "resolve_me", fid)

	_, err = env.api.TS.FIDToTSUID(ctx, "bad fid!")
	require.True(t, core.IsValidation(err))
	_, err = env.api.TS.TSUIDToFID(ctx, "")
	require.True(t, core.IsValidation(err))
}
