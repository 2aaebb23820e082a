package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// QuestProgressModel: satu baris per (quest, user).
type QuestProgressModel struct {
	QuestProgressID           uuid.UUID `gorm:"column:quest_progress_id;type:uuid;primaryKey" json:"quest_progress_id"`
	QuestProgressQuestID      uuid.UUID `gorm:"column:quest_progress_quest_id;type:uuid;not null;uniqueIndex:uq_quest_progress,priority:1" json:"quest_progress_quest_id"`
	QuestProgressUserID       uuid.UUID `gorm:"column:quest_progress_user_id;type:uuid;not null;uniqueIndex:uq_quest_progress,priority:2" json:"quest_progress_user_id"`
	QuestProgressPercentage   int       `gorm:"column:quest_progress_percentage;not null;default:0" json:"quest_progress_percentage"`
	QuestProgressCheckInCount int       `gorm:"column:quest_progress_check_in_count;not null;default:0" json:"quest_progress_check_in_count"`
	QuestProgressLastUpdated  time.Time `gorm:"column:quest_progress_last_updated;not null" json:"quest_progress_last_updated"`
}

func (QuestProgressModel) TableName() string {
	return "quest_progress"
}

func (p *QuestProgressModel) BeforeCreate(tx *gorm.DB) error {
	if p.QuestProgressID == uuid.Nil {
		p.QuestProgressID = uuid.New()
	}
	if p.QuestProgressLastUpdated.IsZero() {
		p.QuestProgressLastUpdated = time.Now()
	}
	return nil
}

// ProgressPercentage = min(100, 100*count/goal), pembagian bulat.
func ProgressPercentage(count, goal int) int {
	if goal <= 0 || count <= 0 {
		return 0
	}
	pct := 100 * count / goal
	if pct > 100 {
		return 100
	}
	return pct
}
