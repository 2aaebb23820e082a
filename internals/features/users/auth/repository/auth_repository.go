package repository

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	authModel "questku_backend/internals/features/users/auth/model"
	userModel "questku_backend/internals/features/users/user/model"
)

/* ====================== USER ====================== */

func FindUserByEmailOrUsername(db *gorm.DB, identifier string) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.Where("email = ? OR user_name = ?", identifier, identifier).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func FindUserByID(db *gorm.DB, userID uuid.UUID) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func CreateUser(db *gorm.DB, user *userModel.UserModel) error {
	return db.Create(user).Error
}

func UpdateUserPassword(db *gorm.DB, userID uuid.UUID, hash string) error {
	return db.Model(&userModel.UserModel{}).Where("id = ?", userID).Update("password", hash).Error
}

// IsUsernameTaken / IsEmailTaken: pre-check ramah pesan; unique index tetap penentu akhir.
func IsUsernameTaken(db *gorm.DB, username string) (bool, error) {
	if username == "" {
		return false, errors.New("username cannot be empty")
	}
	var n int64
	err := db.Model(&userModel.UserModel{}).Where("user_name = ?", username).Count(&n).Error
	return n > 0, err
}

func IsEmailTaken(db *gorm.DB, email string, exceptID *uuid.UUID) (bool, error) {
	q := db.Model(&userModel.UserModel{}).Where("email = ?", email)
	if exceptID != nil {
		q = q.Where("id <> ?", *exceptID)
	}
	var n int64
	err := q.Count(&n).Error
	return n > 0, err
}

/* ====================== BLACKLIST TOKEN ====================== */

// BlacklistToken idempotent: token yang sama (hash) cukup satu baris.
func BlacklistToken(db *gorm.DB, tokenHash string, expiredAt time.Time) error {
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&authModel.TokenBlacklist{
		Token:     tokenHash,
		ExpiredAt: expiredAt.UTC(),
	}).Error
}

func IsBlacklisted(db *gorm.DB, tokenHash string) (bool, error) {
	var n int64
	err := db.Model(&authModel.TokenBlacklist{}).Where("token = ?", tokenHash).Count(&n).Error
	return n > 0, err
}

func CleanupExpiredBlacklist(db *gorm.DB, now time.Time) (int64, error) {
	res := db.Where("expired_at <= ?", now.UTC()).Delete(&authModel.TokenBlacklist{})
	return res.RowsAffected, res.Error
}
