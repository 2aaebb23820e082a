package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AchievementType string

const (
	TypeQuestsCompleted AchievementType = "QUESTS_COMPLETED"
	TypeTotalXPEarned   AchievementType = "TOTAL_XP_EARNED"
	TypeLevelReached    AchievementType = "LEVEL_REACHED"
	// Belum punya predikat; definisi tetap di-seed tapi tidak pernah ter-unlock.
	TypeStreakDays AchievementType = "STREAK_DAYS"
)

// AchievementModel: definisi achievement (reference data, di-seed saat startup).
type AchievementModel struct {
	AchievementID               uuid.UUID       `gorm:"column:achievement_id;type:uuid;primaryKey" json:"achievement_id"`
	AchievementName             string          `gorm:"column:achievement_name;type:varchar(100);not null;uniqueIndex:uq_achievements_name" json:"achievement_name"`
	AchievementDescription      string          `gorm:"column:achievement_description;type:varchar(500)" json:"achievement_description"`
	AchievementType             AchievementType `gorm:"column:achievement_type;type:varchar(30);not null" json:"achievement_type"`
	AchievementRequirementValue int64           `gorm:"column:achievement_requirement_value;not null" json:"achievement_requirement_value"`
	AchievementIcon             string          `gorm:"column:achievement_icon;type:varchar(50)" json:"achievement_icon"`
	CreatedAt                   time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (AchievementModel) TableName() string {
	return "achievements"
}

func (a *AchievementModel) BeforeCreate(tx *gorm.DB) error {
	if a.AchievementID == uuid.Nil {
		a.AchievementID = uuid.New()
	}
	return nil
}

// UserAchievementModel: achievement yang sudah di-unlock user (join table, unik per pasangan).
type UserAchievementModel struct {
	UserAchievementID            uuid.UUID `gorm:"column:user_achievement_id;type:uuid;primaryKey" json:"user_achievement_id"`
	UserAchievementUserID        uuid.UUID `gorm:"column:user_achievement_user_id;type:uuid;not null;uniqueIndex:uq_user_achievement,priority:1" json:"user_achievement_user_id"`
	UserAchievementAchievementID uuid.UUID `gorm:"column:user_achievement_achievement_id;type:uuid;not null;uniqueIndex:uq_user_achievement,priority:2" json:"user_achievement_achievement_id"`
	UserAchievementUnlockedAt    time.Time `gorm:"column:user_achievement_unlocked_at;not null" json:"user_achievement_unlocked_at"`
}

func (UserAchievementModel) TableName() string {
	return "user_achievements"
}

func (u *UserAchievementModel) BeforeCreate(tx *gorm.DB) error {
	if u.UserAchievementID == uuid.Nil {
		u.UserAchievementID = uuid.New()
	}
	if u.UserAchievementUnlockedAt.IsZero() {
		u.UserAchievementUnlockedAt = time.Now()
	}
	return nil
}
