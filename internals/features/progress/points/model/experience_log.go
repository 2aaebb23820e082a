package model

import (
	"time"

	"github.com/google/uuid"
)

// Sumber XP
const (
	SourceQuestCheckIn = "QUEST_CHECK_IN"
	SourceAdmin        = "ADMIN"
)

// ExperienceLog mencatat setiap penambahan XP beserta level sebelum/sesudah.
type ExperienceLog struct {
	ExperienceLogID          uint       `gorm:"column:experience_log_id;primaryKey;autoIncrement" json:"experience_log_id"`
	ExperienceLogUserID      uuid.UUID  `gorm:"column:experience_log_user_id;type:uuid;not null;index" json:"experience_log_user_id"`
	ExperienceLogAmount      int64      `gorm:"column:experience_log_amount;not null" json:"experience_log_amount"`
	ExperienceLogSourceType  string     `gorm:"column:experience_log_source_type;type:varchar(30);not null" json:"experience_log_source_type"`
	ExperienceLogSourceID    *uuid.UUID `gorm:"column:experience_log_source_id;type:uuid" json:"experience_log_source_id,omitempty"`
	ExperienceLogTotalAfter  int64      `gorm:"column:experience_log_total_after;not null" json:"experience_log_total_after"`
	ExperienceLogLevelBefore int        `gorm:"column:experience_log_level_before;not null" json:"experience_log_level_before"`
	ExperienceLogLevelAfter  int        `gorm:"column:experience_log_level_after;not null" json:"experience_log_level_after"`
	CreatedAt                time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (ExperienceLog) TableName() string {
	return "experience_logs"
}
