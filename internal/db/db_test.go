package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/store-scheduler/internal/config"
	"github.com/BruksfildServices01/store-scheduler/internal/models"
)

func TestOpenSQLite_ErrorOnMissingDir(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "does-not-exist", "app.db")

	db, err := OpenSQLite(bad)
	assert.Error(t, err)
	assert.Nil(t, db)
}

func TestNewDB_SQLiteMigratesAndBackfillsTimezone(t *testing.T) {
	cfg := &config.Config{
		DBDriver:        "sqlite",
		SQLitePath:      filepath.Join(t.TempDir(), "app.db"),
		DefaultTimezone: "Europe/Lisbon",
	}

	db, err := NewDB(cfg)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	for _, m := range models.All() {
		assert.True(t, db.Migrator().HasTable(m), "table for %T", m)
	}

	owner := models.User{Email: "o@x.test", PasswordHash: "h", FullName: "Owner", IsStoreOwner: true}
	require.NoError(t, db.Create(&owner).Error)
	store := models.Store{UserID: owner.ID, Name: "S", Location: "L", ContactEmail: "s@x.test", PhoneNumber: "1"}
	require.NoError(t, db.Create(&store).Error)

	// a second open runs the backfill again
	db2, err := NewDB(cfg)
	require.NoError(t, err)
	sqlDB2, _ := db2.DB()
	t.Cleanup(func() { _ = sqlDB2.Close() })

	var got models.Store
	require.NoError(t, db2.First(&got, store.ID).Error)
	assert.Equal(t, "Europe/Lisbon", got.Timezone)
}
