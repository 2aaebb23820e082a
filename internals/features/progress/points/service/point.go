package service

import (
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"questku_backend/internals/features/progress/leveling"
	pointModel "questku_backend/internals/features/progress/points/model"
	userModel "questku_backend/internals/features/users/user/model"
	"questku_backend/internals/helpers/apperror"
	"questku_backend/internals/helpers/dbutil"
)

type AwardResult struct {
	UserID      uuid.UUID `json:"user_id"`
	Amount      int64     `json:"amount"`
	TotalXP     int64     `json:"total_xp"`
	LevelBefore int       `json:"level_before"`
	LevelAfter  int       `json:"level_after"`
	LeveledUp   bool      `json:"leveled_up"`
}

// AddExperience menambah XP user, menaikkan level kalau perlu, dan mencatat log.
// Harus dipanggil dengan tx (bagian dari transaksi pemanggil). XP & level tidak pernah turun.
func AddExperience(tx *gorm.DB, userID uuid.UUID, amount int64, sourceType string, sourceID *uuid.UUID) (*AwardResult, error) {
	if amount <= 0 {
		return nil, apperror.InvalidArgument("experience amount must be positive, got %d", amount)
	}

	// 1. Lock row user
	var user userModel.UserModel
	if err := dbutil.ForUpdate(tx).
		Select("id", "user_level", "user_experience_points").
		Where("id = ?", userID).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("user %s not found", userID)
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	levelBefore := user.Level

	// 2. Tambah XP secara atomik
	if err := tx.Model(&userModel.UserModel{}).
		Where("id = ?", userID).
		Update("user_experience_points", gorm.Expr("user_experience_points + ?", amount)).Error; err != nil {
		log.Println("[ERROR] Failed to add experience:", err)
		return nil, fmt.Errorf("add experience: %w", err)
	}

	var total int64
	if err := tx.Model(&userModel.UserModel{}).
		Where("id = ?", userID).
		Pluck("user_experience_points", &total).Error; err != nil {
		return nil, fmt.Errorf("reload experience: %w", err)
	}

	// 3. Naikkan level hanya kalau lebih tinggi
	levelAfter := levelBefore
	if lvl := leveling.LevelFor(total); lvl > levelBefore {
		if err := tx.Model(&userModel.UserModel{}).
			Where("id = ? AND user_level < ?", userID, lvl).
			Update("user_level", lvl).Error; err != nil {
			log.Println("[ERROR] Failed to update level:", err)
			return nil, fmt.Errorf("update level: %w", err)
		}
		levelAfter = lvl
		log.Printf("[LEVEL-UP] User %s reached level %d", userID, lvl)
	}

	// 4. Simpan log
	entry := pointModel.ExperienceLog{
		ExperienceLogUserID:      userID,
		ExperienceLogAmount:      amount,
		ExperienceLogSourceType:  sourceType,
		ExperienceLogSourceID:    sourceID,
		ExperienceLogTotalAfter:  total,
		ExperienceLogLevelBefore: levelBefore,
		ExperienceLogLevelAfter:  levelAfter,
	}
	if err := tx.Create(&entry).Error; err != nil {
		log.Println("[ERROR] Failed to insert experience_log:", err)
		return nil, fmt.Errorf("insert experience log: %w", err)
	}

	return &AwardResult{
		UserID:      userID,
		Amount:      amount,
		TotalXP:     total,
		LevelBefore: levelBefore,
		LevelAfter:  levelAfter,
		LeveledUp:   levelAfter > levelBefore,
	}, nil
}

// ListLogs: riwayat XP user, terbaru dulu.
func ListLogs(db *gorm.DB, userID uuid.UUID, limit, offset int) ([]pointModel.ExperienceLog, int64, error) {
	q := db.Model(&pointModel.ExperienceLog{}).
		Where("experience_log_user_id = ?", userID).
		Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var logs []pointModel.ExperienceLog
	if err := q.Order("created_at DESC, experience_log_id DESC").
		Limit(limit).Offset(offset).
		Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

// DeleteForUser dipanggil di transaksi hapus user.
func DeleteForUser(tx *gorm.DB, userID uuid.UUID) error {
	return tx.Where("experience_log_user_id = ?", userID).Delete(&pointModel.ExperienceLog{}).Error
}
