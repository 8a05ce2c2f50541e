// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/store-scheduler/internal/db"
	"github.com/BruksfildServices01/store-scheduler/internal/models"
)

const Password = "secret123"

// NewDB returns a migrated SQLite database in the test's temp dir.
// The pool is capped at one connection so concurrent transactions queue.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := db.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(gdb))

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return gdb
}

// Fixture is a store owned by Owner plus a separate Customer.
type Fixture struct {
	Owner    models.User
	Customer models.User
	Store    models.Store
}

func Seed(t *testing.T, gdb *gorm.DB) Fixture {
	t.Helper()

	f := Fixture{
		Owner:    NewUser(t, gdb, "owner@shop.test", "Olivia Owner", true),
		Customer: NewUser(t, gdb, "carl@mail.test", "Carl Customer", false),
	}
	f.Store = NewStore(t, gdb, f.Owner.ID, "Corner Studio")
	return f
}

func NewUser(t *testing.T, gdb *gorm.DB, email, name string, owner bool) models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
	require.NoError(t, err)

	u := models.User{
		Email:        email,
		PasswordHash: string(hash),
		FullName:     name,
		IsStoreOwner: owner,
	}
	require.NoError(t, gdb.Create(&u).Error)
	return u
}

func NewStore(t *testing.T, gdb *gorm.DB, ownerID uint, name string) models.Store {
	t.Helper()

	s := models.Store{
		UserID:       ownerID,
		Name:         name,
		Description:  "Appointments by request",
		Location:     "Main Street 1",
		ContactEmail: "hello@shop.test",
		PhoneNumber:  "555-0100",
		Timezone:     "UTC",
	}
	require.NoError(t, gdb.Create(&s).Error)
	return s
}

func AddWindow(t *testing.T, gdb *gorm.DB, storeID uint, weekday, start, end string) {
	t.Helper()

	require.NoError(t, gdb.Create(&models.StoreAvailability{
		StoreID:   storeID,
		Weekday:   weekday,
		StartTime: start,
		EndTime:   end,
	}).Error)
}
