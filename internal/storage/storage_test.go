package storage

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/lshigami/edugress/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestSQLite(t *testing.T) *GormKV {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	kv, err := OpenSQLite(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })
	return kv
}

func openTestRedis(t *testing.T) (*RedisKV, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	kv, err := OpenRedis(context.Background(), srv.Addr(), 15)
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })
	return kv, srv
}

func stores(t *testing.T) map[string]KV {
	rkv, _ := openTestRedis(t)
	return map[string]KV{
		"memory": NewMemoryKV(),
		"sqlite": openTestSQLite(t),
		"redis":  rkv,
	}
}

func TestKV_Contract(t *testing.T) {
	ctx := context.Background()
	for name, kv := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := kv.Get(ctx, "missing")
			require.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, kv.Set(ctx, "k", "v1"))
			require.NoError(t, kv.Set(ctx, "k", "v2"))
			v, err := kv.Get(ctx, "k")
			require.NoError(t, err)
			assert.Equal(t, "v2", v)

			require.NoError(t, kv.Delete(ctx, "k"))
			_, err = kv.Get(ctx, "k")
			require.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, kv.Delete(ctx, "never-set"))
		})
	}
}

func TestRedisKV_Prefix(t *testing.T) {
	ctx := context.Background()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr(), DB: 15})
	defer client.Close()

	kv := NewRedisKV(client)
	require.NoError(t, kv.Set(ctx, "session", "x"))
	v, err := srv.DB(15).Get("edugress:session")
	require.NoError(t, err)
	assert.Equal(t, "x", v)
	assert.False(t, srv.Exists("edugress:session"), "db 0 stays empty")
	assert.Zero(t, srv.DB(15).TTL("edugress:session"))

	require.NoError(t, kv.Delete(ctx, "session"))
	assert.False(t, srv.DB(15).Exists("edugress:session"))
}

func TestOpenRedis_Unreachable(t *testing.T) {
	srv := miniredis.RunT(t)
	addr := srv.Addr()
	srv.Close()

	_, err := OpenRedis(context.Background(), addr, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), addr)
}

func TestRedisKV_ServerErrorsAreWrapped(t *testing.T) {
	kv, srv := openTestRedis(t)
	ctx := context.Background()
	srv.SetError("ERR backend offline")

	_, err := kv.Get(ctx, "k")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), `get "k"`)
	require.Error(t, kv.Set(ctx, "k", "v"))

	srv.SetError("")
	require.NoError(t, kv.Set(ctx, "k", "v"))
}

func TestSessionRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository(NewMemoryKV())

	_, err := repo.Load(ctx)
	require.ErrorIs(t, err, ErrSessionMissing)
	require.ErrorIs(t, repo.UpdateCoins(ctx, decimal.NewFromInt(1)), ErrSessionMissing)

	sess := domain.Session{Token: "tok", User: domain.User{ID: 3, FirstName: "Aru", Role: domain.RoleStudent, Coins: decimal.NewFromInt(50)}}
	require.NoError(t, repo.Save(ctx, sess))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok", got.Token)
	assert.Equal(t, 3, got.User.ID)

	require.NoError(t, repo.UpdateCoins(ctx, decimal.NewFromInt(20)))
	got, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(20).Equal(got.User.Coins))

	require.NoError(t, repo.Clear(ctx))
	_, err = repo.Load(ctx)
	require.ErrorIs(t, err, ErrSessionMissing)
}

func TestSessionRepository_StoredShape(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	require.NoError(t, NewSessionRepository(kv).Save(ctx, domain.Session{Token: "tok", User: domain.User{ID: 1}}))

	raw, err := kv.Get(ctx, "session")
	require.NoError(t, err)
	assert.Contains(t, raw, `"key":"tok"`)
}

func TestResumptionStore(t *testing.T) {
	ctx := context.Background()
	kv := openTestSQLite(t)
	rs := NewResumptionStore(kv)

	_, ok, err := rs.FindResumableAttempt(ctx, 7)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, rs.Remember(ctx, 7, 42))
	raw, err := kv.Get(ctx, "userTestId_7")
	require.NoError(t, err)
	assert.Equal(t, "42", raw)

	id, ok, err := rs.FindResumableAttempt(ctx, 7)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 42, id)

	require.NoError(t, rs.Forget(ctx, 7))
	_, ok, err = rs.FindResumableAttempt(ctx, 7)
	require.NoError(t, err)
	assert.False(t, ok)

	require.Error(t, rs.Remember(ctx, 7, 0))
}

func TestResumptionStore_CorruptEntryIsIgnored(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	require.NoError(t, kv.Set(ctx, "userTestId_1", "not-a-number"))

	_, ok, err := NewResumptionStore(kv).FindResumableAttempt(ctx, 1)
	require.NoError(t, err)
	assert.False(t, ok)
	_, err = kv.Get(ctx, "userTestId_1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCartStore(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	cs := NewCartStore(kv)

	c, err := cs.Load(ctx)
	require.NoError(t, err)
	assert.True(t, c.Empty())

	cart := domain.Cart{Items: []domain.CartItem{{ProductID: 1, Name: "Pen", Price: decimal.NewFromInt(3), Amount: 2}}}
	require.NoError(t, cs.Save(ctx, cart))
	c, err = cs.Load(ctx)
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.True(t, decimal.NewFromInt(6).Equal(c.Total()))

	require.NoError(t, cs.Save(ctx, domain.Cart{}))
	_, err = kv.Get(ctx, "cart")
	assert.ErrorIs(t, err, ErrNotFound)
}
