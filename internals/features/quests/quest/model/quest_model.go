package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type QuestType string

const (
	QuestTypeDaily  QuestType = "DAILY"
	QuestTypeWeekly QuestType = "WEEKLY"
)

func (t QuestType) Valid() bool {
	return t == QuestTypeDaily || t == QuestTypeWeekly
}

type QuestStatus string

const (
	QuestStatusActive    QuestStatus = "ACTIVE"
	QuestStatusCompleted QuestStatus = "COMPLETED"
	QuestStatusExpired   QuestStatus = "EXPIRED"
)

// Terminal: COMPLETED & EXPIRED tidak bisa berpindah lagi.
func (s QuestStatus) Terminal() bool {
	return s == QuestStatusCompleted || s == QuestStatusExpired
}

// QuestModel: quest milik satu user. Tanggal disimpan sebagai DATE (tengah malam UTC).
type QuestModel struct {
	QuestID               uuid.UUID      `gorm:"column:quest_id;type:uuid;primaryKey" json:"quest_id"`
	QuestUserID           uuid.UUID      `gorm:"column:quest_user_id;type:uuid;not null;index:idx_quests_user_status,priority:1" json:"quest_user_id"`
	QuestTitle            string         `gorm:"column:quest_title;type:varchar(200);not null" json:"quest_title"`
	QuestDescription      string         `gorm:"column:quest_description;type:varchar(1000)" json:"quest_description"`
	QuestType             QuestType      `gorm:"column:quest_type;type:varchar(10);not null" json:"quest_type"`
	QuestStatus           QuestStatus    `gorm:"column:quest_status;type:varchar(12);not null;default:'ACTIVE';index:idx_quests_user_status,priority:2;index:idx_quests_status_end,priority:1" json:"quest_status"`
	QuestStartDate        datatypes.Date `gorm:"column:quest_start_date;not null" json:"quest_start_date"`
	QuestEndDate          datatypes.Date `gorm:"column:quest_end_date;not null;index:idx_quests_status_end,priority:2" json:"quest_end_date"`
	QuestExperienceReward int64          `gorm:"column:quest_experience_reward;not null" json:"quest_experience_reward"`
	QuestCheckInGoal      int            `gorm:"column:quest_check_in_goal;not null" json:"quest_check_in_goal"`
	QuestCompletedAt      *time.Time     `gorm:"column:quest_completed_at" json:"quest_completed_at,omitempty"`
	QuestExpiredAt        *time.Time     `gorm:"column:quest_expired_at" json:"quest_expired_at,omitempty"`
	CreatedAt             time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (QuestModel) TableName() string {
	return "quests"
}

func (q *QuestModel) BeforeCreate(tx *gorm.DB) error {
	if q.QuestID == uuid.Nil {
		q.QuestID = uuid.New()
	}
	if q.QuestStatus == "" {
		q.QuestStatus = QuestStatusActive
	}
	return nil
}

// XPPerCheckIn = reward / goal (pembagian bulat, sisa tidak dibayarkan).
func (q *QuestModel) XPPerCheckIn() int64 {
	if q.QuestCheckInGoal <= 0 {
		return 0
	}
	return q.QuestExperienceReward / int64(q.QuestCheckInGoal)
}

func (q *QuestModel) StartDate() time.Time { return dateOnly(time.Time(q.QuestStartDate)) }
func (q *QuestModel) EndDate() time.Time   { return dateOnly(time.Time(q.QuestEndDate)) }

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
