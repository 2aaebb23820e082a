// Package testdb membuka database sqlite in-memory yang sudah di-migrate untuk unit test.
package testdb

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	database "questku_backend/internals/databases"
	userModel "questku_backend/internals/features/users/user/model"
)

// New: satu database terpisah per test. Koneksi dibatasi 1 supaya transaksi serial
// dan shared-cache tidak bentrok lock.
func New(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

// CreateUser membuat user minimal untuk fixture.
func CreateUser(t *testing.T, db *gorm.DB, name string) *userModel.UserModel {
	t.Helper()
	u := &userModel.UserModel{
		UserName: name,
		Email:    name + "@example.com",
		Password: "x",
		Role:     userModel.RoleUser,
		Level:    1,
		IsActive: true,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}
