package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidbrief/vidbrief-server/internal/model"
)

func newRepo(t *testing.T) (*QuotaRepository, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return NewQuotaRepository(rdb), mr
}

func TestQuotaRepository_GetOrInit_FreshIdentifier(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepo(t)

	quota, err := repo.GetOrInit(ctx, "203.0.113.9", 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, "203.0.113.9", quota.Identifier)
	assert.Equal(t, 0, quota.Count)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), quota.ResetAt, time.Minute)
}

func TestQuotaRepository_IncrementAndRead(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepo(t)

	_, err := repo.GetOrInit(ctx, "203.0.113.9", 24*time.Hour)
	require.NoError(t, err)

	count, err := repo.Increment(ctx, "203.0.113.9")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = repo.Increment(ctx, "203.0.113.9")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	quota, err := repo.GetOrInit(ctx, "203.0.113.9", 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 2, quota.Count)
}

func TestQuotaRepository_WindowExpiryResets(t *testing.T) {
	ctx := context.Background()
	repo, mr := newRepo(t)

	_, err := repo.GetOrInit(ctx, "203.0.113.9", 24*time.Hour)
	require.NoError(t, err)

	_, err = repo.Increment(ctx, "203.0.113.9")
	require.NoError(t, err)

	mr.FastForward(25 * time.Hour)

	quota, err := repo.GetOrInit(ctx, "203.0.113.9", 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 0, quota.Count)
}

func TestQuotaRepository_Reset(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepo(t)

	_, err := repo.GetOrInit(ctx, "203.0.113.9", 24*time.Hour)
	require.NoError(t, err)
	_, err = repo.Increment(ctx, "203.0.113.9")
	require.NoError(t, err)

	require.NoError(t, repo.Reset(ctx, "203.0.113.9", time.Now().Add(time.Hour)))

	quota, err := repo.GetOrInit(ctx, "203.0.113.9", 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 0, quota.Count)
}

func TestQuotaRepository_IdentifiersAreIndependent(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepo(t)

	_, err := repo.GetOrInit(ctx, "first", 24*time.Hour)
	require.NoError(t, err)
	_, err = repo.Increment(ctx, "first")
	require.NoError(t, err)

	quota, err := repo.GetOrInit(ctx, "second", 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 0, quota.Count)
}

func TestQuotaRepository_StoreDown(t *testing.T) {
	ctx := context.Background()
	repo, mr := newRepo(t)

	mr.Close()

	_, err := repo.GetOrInit(ctx, "203.0.113.9", 24*time.Hour)
	require.ErrorIs(t, err, model.ErrStoreUnavailable)

	_, err = repo.Increment(ctx, "203.0.113.9")
	require.ErrorIs(t, err, model.ErrStoreUnavailable)
}
