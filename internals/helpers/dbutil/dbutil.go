// Package dbutil berisi helper kecil untuk query gorm lintas dialect.
package dbutil

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ForUpdate menambahkan SELECT ... FOR UPDATE kalau dialect mendukung row lock (postgres).
// Di sqlite (test) transaksi sudah serial, jadi query dikembalikan apa adanya.
func ForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector != nil && tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// IsPostgres dipakai untuk cabang kecil yang spesifik postgres.
func IsPostgres(db *gorm.DB) bool {
	return db != nil && db.Dialector != nil && db.Dialector.Name() == "postgres"
}
