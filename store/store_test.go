package store

import (
	"context"
	"testing"
	"time"

	"food-delivery-dashboard/config"
	"food-delivery-dashboard/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func backends(t *testing.T) map[string]KV {
	t.Helper()
	db, err := config.InitDB(":memory:")
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return map[string]KV{
		"memory": NewMemory(),
		"gorm":   NewGorm(db),
		"redis":  NewRedis(rdb, time.Hour),
	}
}

func TestKV_RoundTripAndDelete(t *testing.T) {
	ctx := context.Background()
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			var got sample
			assert.ErrorIs(t, kv.Get(ctx, "missing", &got), ErrNotFound)

			require.NoError(t, kv.Set(ctx, "k", sample{Name: "a", Count: 1}))
			require.NoError(t, kv.Set(ctx, "k", sample{Name: "b", Count: 2}))
			require.NoError(t, kv.Get(ctx, "k", &got))
			assert.Equal(t, sample{Name: "b", Count: 2}, got)

			require.NoError(t, kv.Delete(ctx, "k", "never-set"))
			assert.ErrorIs(t, kv.Get(ctx, "k", &got), ErrNotFound)
		})
	}
}

func TestForSession_IsolatesSessions(t *testing.T) {
	ctx := context.Background()
	base := NewMemory()
	a := ForSession(base, "a")
	b := ForSession(base, "b")

	require.NoError(t, a.Set(ctx, KeyUserRole, "admin"))

	var role string
	assert.ErrorIs(t, b.Get(ctx, KeyUserRole, &role), ErrNotFound)
	require.NoError(t, a.Get(ctx, KeyUserRole, &role))
	assert.Equal(t, "admin", role)

	require.NoError(t, a.Delete(ctx, SessionKeys...))
	assert.Equal(t, 0, base.Len())
}

func TestRedis_EntriesExpire(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	kv := ForSession(NewRedis(rdb, time.Hour), "s1")

	require.NoError(t, kv.Set(ctx, KeyUserRole, "admin"))
	assert.Equal(t, time.Hour, mr.TTL("session:s1:"+KeyUserRole))

	mr.FastForward(59 * time.Minute)
	var role string
	require.NoError(t, kv.Get(ctx, KeyUserRole, &role))

	mr.FastForward(2 * time.Minute)
	assert.ErrorIs(t, kv.Get(ctx, KeyUserRole, &role), ErrNotFound)
}

func TestGorm_PurgeExpired(t *testing.T) {
	ctx := context.Background()
	db, err := config.InitDB(":memory:")
	require.NoError(t, err)
	kv := NewGorm(db)

	require.NoError(t, kv.Set(ctx, "stale", sample{Name: "old"}))
	require.NoError(t, kv.Set(ctx, "fresh", sample{Name: "new"}))
	require.NoError(t, db.Model(&models.KVEntry{}).Where("kv_key = ?", "stale").
		UpdateColumn("updated_at", time.Now().Add(-2*time.Hour)).Error)

	n, err := kv.PurgeExpired(ctx, time.Hour)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	var got sample
	assert.ErrorIs(t, kv.Get(ctx, "stale", &got), ErrNotFound)
	require.NoError(t, kv.Get(ctx, "fresh", &got))
	assert.Equal(t, "new", got.Name)
}
