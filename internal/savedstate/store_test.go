package savedstate

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T, driver, path string) *SQLStore {
	t.Helper()
	store, err := Open(context.Background(), driver, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStore_RoundTrip(t *testing.T) {
	for _, driver := range []string{DriverSQLite, DriverDuckDB} {
		t.Run(driver, func(t *testing.T) {
			ctx := context.Background()
			store := openTestStore(t, driver, ":memory:")
			assert.Equal(t, driver, store.Driver())

			empty, err := store.Load(ctx)
			require.NoError(t, err)
			assert.Empty(t, empty)

			in := Bundle{
				"onboarding.showing":    false,
				"greetings.3.expanded":  true,
				"greetings.42.expanded": true,
			}
			require.NoError(t, store.Save(ctx, in))

			out, err := store.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, in, out)
		})
	}
}

func TestStore_SaveReplacesPreviousBundle(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t, DriverSQLite, "")

	require.NoError(t, store.Save(ctx, Bundle{"a": true, "b": true}))
	require.NoError(t, store.Save(ctx, Bundle{"b": false}))

	out, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, Bundle{"b": false}, out)
}

func TestStore_Clear(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t, DriverSQLite, ":memory:")

	require.NoError(t, store.Save(ctx, Bundle{"onboarding.showing": false}))
	require.NoError(t, store.Clear(ctx))

	out, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "state.db")

	first, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	require.NoError(t, first.Save(ctx, Bundle{"greetings.3.expanded": true}))
	require.NoError(t, first.Close())

	second := openTestStore(t, DriverSQLite, path)
	out, err := second.Load(ctx)
	require.NoError(t, err)
	assert.True(t, out.Get("greetings.3.expanded", false))
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), "postgres", ":memory:")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown state driver")
}

func TestBundle_GetDefaultsAndClone(t *testing.T) {
	b := Bundle{"x": true}
	assert.True(t, b.Get("x", false))
	assert.True(t, b.Get("missing", true))
	assert.False(t, b.Get("missing", false))

	c := b.Clone()
	c.Put("x", false)
	assert.True(t, b["x"], "clone must not alias the original")

	var nilBundle Bundle
	assert.NotNil(t, nilBundle.Clone())
	assert.Equal(t, []string{"a", "b"}, Bundle{"b": true, "a": false}.Keys())
}
