package core_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chronos-analytics/chronos-go/pkg/core"
)

func TestMetadata_LocalBag(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ts := saveSeries(t, env, "bag_owner", []core.Point{{Timestamp: 1, Value: 1}})
	md, err := env.api.MD.Get(ctx, ts.TSUID())
	require.NoError(t, err)
	assert.Equal(t, ts.TSUID(), md.TSUID())

	require.NoError(t, md.Set("site", "plant_1", core.MDString))
	v, err := md.Get("site")
	require.NoError(t, err)
	assert.Equal(t, "plant_1", v)

	dtype, err := md.Type("site")
	require.NoError(t, err)
	assert.Equal(t, core.MDString, dtype)

	// A deleted entry disappears from the local view immediately.
	md.Delete("site")
	_, err = md.Get("site")
	require.True(t, core.IsNotFound(err))
	assert.NotContains(t, md.Keys(), "site")

	err = md.Set("", "x", core.MDString)
	require.True(t, core.IsValidation(err))
}

func TestMetadata_ValueTyping(t *testing.T) {
	env := newTestEnv(t)

	ts := saveSeries(t, env, "typed_owner", []core.Point{{Timestamp: 1, Value: 1}})
	md := ts.Metadata()
	require.NoError(t, md.Set("threshold", "42.5", core.MDNumber))
	require.NoError(t, md.Set("since", "1609459200000", core.MDDate))
	require.NoError(t, md.Set("label", "vibration", core.MDString))
	require.NoError(t, md.Set("broken", "not-a-number", core.MDNumber))

	v, err := md.Value("threshold")
	require.NoError(t, err)
	assert.Equal(t, 42.5, v)

	v, err = md.Value("since")
	require.NoError(t, err)
	assert.Equal(t, int64(1609459200000), v)

	v, err = md.Value("label")
	require.NoError(t, err)
	assert.Equal(t, "vibration", v)

	_, err = md.Value("broken")
	require.True(t, core.IsValidation(err))
}

func TestMetadata_SaveReplaysLocalState(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ts := saveSeries(t, env, "replay_owner", []core.Point{{Timestamp: 1, Value: 1}})
	md := ts.Metadata()
	require.NoError(t, md.Set("keep", "yes", core.MDString))
	require.NoError(t, md.Set("drop", "no", core.MDString))
	require.NoError(t, md.Save(ctx))

	// Mark one entry deleted and replay.
	md.Delete("drop")
	require.NoError(t, md.Save(ctx))

	back, err := env.api.MD.Get(ctx, ts.TSUID())
	require.NoError(t, err)
	_, err = back.Get("keep")
	require.NoError(t, err)
	_, err = back.Get("drop")
	require.True(t, core.IsNotFound(err))
}

func TestMetadata_DeleteMarkToleratesUnknownName(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ts := saveSeries(t, env, "tolerant_owner", []core.Point{{Timestamp: 1, Value: 1}})
	md := ts.Metadata()

	// Never saved remotely: the mark has nothing to remove, Save still
	// succeeds.
	md.Delete("never_existed")
	require.NoError(t, md.Save(ctx))
	assert.True(t, md.TrySave(ctx))
}

func TestMetadata_GetUnknownTimeseries(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.api.MD.Get(context.Background(), "unknown")
	require.True(t, core.IsNotFound(err))

	_, err = env.api.MD.Get(context.Background(), "")
	require.True(t, core.IsValidation(err))
}

func TestMetadata_FetchReplacesLocalBag(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ts := saveSeries(t, env, "fetch_owner", []core.Point{{Timestamp: 1, Value: 1}})
	md := ts.Metadata()
	require.NoError(t, md.Set("local_only", "x", core.MDString))

	require.NoError(t, md.Fetch(ctx))
	// The unsaved local entry is gone, the intrinsics are there.
	_, err := md.Get("local_only")
	require.True(t, core.IsNotFound(err))
	_, err = md.Get(core.MetaNbPoints)
	require.NoError(t, err)
}

func TestMetadata_SaveKeyDefaultsToString(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ts := saveSeries(t, env, "default_owner", []core.Point{{Timestamp: 1, Value: 1}})
	require.NoError(t, env.api.MD.SaveKey(ctx, ts.TSUID(), "note", "hello", ""))

	md, err := env.api.MD.Get(ctx, ts.TSUID())
	require.NoError(t, err)
	dtype, err := md.Type("note")
	require.NoError(t, err)
	assert.Equal(t, core.MDString, dtype)

	err = env.api.MD.SaveKey(ctx, "", "note", "x", "")
	require.True(t, core.IsValidation(err))
	assert.False(t, env.api.MD.TrySaveKey(ctx, "", "note", "x", ""))
}

func TestMetadata_KeyDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ts := saveSeries(t, env, "keydel_owner", []core.Point{{Timestamp: 1, Value: 1}})
	require.NoError(t, env.api.MD.SaveKey(ctx, ts.TSUID(), "ephemeral", "x", core.MDString))
	require.NoError(t, env.api.MD.Delete(ctx, ts.TSUID(), "ephemeral"))

	err := env.api.MD.Delete(ctx, ts.TSUID(), "ephemeral")
	require.True(t, core.IsNotFound(err))
	assert.False(t, env.api.MD.TryDelete(ctx, ts.TSUID(), "ephemeral"))
}
