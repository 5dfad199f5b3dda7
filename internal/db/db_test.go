package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sentinel_engine/internal/config"
	"sentinel_engine/internal/domain"
)

func TestDialector(t *testing.T) {
	for _, driver := range []string{"postgres", "mysql", "sqlite"} {
		d, err := Dialector(&config.Config{DBDriver: driver, SQLitePath: ":memory:"})
		require.NoError(t, err, driver)
		assert.Equal(t, driver, d.Name())
	}

	_, err := Dialector(&config.Config{DBDriver: "oracle"})
	assert.Error(t, err)
}

func TestOpenAndMigrate_SQLite(t *testing.T) {
	cfg := &config.Config{DBDriver: "sqlite", SQLitePath: filepath.Join(t.TempDir(), "sentinel.db")}
	gdb, err := Open(cfg)
	require.NoError(t, err)
	require.NoError(t, Migrate(gdb))

	assert.True(t, gdb.Migrator().HasTable("transactions"))
	assert.True(t, gdb.Migrator().HasTable(&domain.Analyst{}))

	entry := domain.LedgerEntry{TxRef: "TX1002", UserName: "Alice Smith", Amount: decimal.RequireFromString("12400.00")}
	require.NoError(t, gdb.Create(&entry).Error)

	var got domain.LedgerEntry
	require.NoError(t, gdb.First(&got, "tx_ref = ?", "TX1002").Error)
	assert.True(t, entry.Amount.Equal(got.Amount))
	assert.Equal(t, "Pending", got.Status)
}

func TestNewRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()

	rdb, err := NewRedis(context.Background(), &config.Config{RedisAddr: addr})
	require.NoError(t, err)
	defer rdb.Close()

	mr.Close()
	_, err = NewRedis(context.Background(), &config.Config{RedisAddr: addr})
	assert.Error(t, err)
}
