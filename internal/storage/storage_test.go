package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sentinel_engine/internal/config"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

// exercise runs the behavior every backend must share.
func exercise(t *testing.T, s Storage) {
	t.Helper()
	ctx := context.Background()

	_, found, err := s.Get(ctx, "sentinel:transactions")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Set(ctx, "sentinel:transactions", `[{"id":"TX1"}]`))
	v, found, err := s.Get(ctx, "sentinel:transactions")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[{"id":"TX1"}]`, v)

	require.NoError(t, s.Set(ctx, "sentinel:transactions", ""))
	v, found, err = s.Get(ctx, "sentinel:transactions")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Empty(t, v)
}

func TestMemory(t *testing.T) {
	exercise(t, NewMemory())
}

func TestFile(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFile(dir)
	require.NoError(t, err)
	exercise(t, s)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files must not be left behind")
}

func TestFile_KeyCannotEscapeDir(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFile(filepath.Join(dir, "state"))
	require.NoError(t, err)

	require.NoError(t, s.Set(context.Background(), "../outside", "x"))
	_, err = os.Stat(filepath.Join(dir, "outside.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestRedis(t *testing.T) {
	mr, rdb := newTestRedis(t)
	exercise(t, NewRedis(rdb))

	assert.Zero(t, mr.TTL("sentinel:transactions"))
}

func TestRedis_ReadErrorIsReturned(t *testing.T) {
	mr, rdb := newTestRedis(t)
	mr.Close()

	_, _, err := NewRedis(rdb).Get(context.Background(), "k")
	assert.Error(t, err)
}

func TestOpen(t *testing.T) {
	_, rdb := newTestRedis(t)

	s, err := Open(&config.Config{StorageDriver: "redis"}, rdb)
	require.NoError(t, err)
	assert.IsType(t, &Redis{}, s)

	_, err = Open(&config.Config{StorageDriver: "redis"}, nil)
	assert.Error(t, err)

	s, err = Open(&config.Config{StorageDriver: "file", StateDir: t.TempDir()}, nil)
	require.NoError(t, err)
	assert.IsType(t, &File{}, s)

	s, err = Open(&config.Config{StorageDriver: "memory"}, nil)
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, s)

	_, err = Open(&config.Config{StorageDriver: "etcd"}, nil)
	assert.Error(t, err)
}
