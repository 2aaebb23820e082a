package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CheckInModel: fakta immutable (quest, user, tanggal).
// Dua unique index menjadi arbiter terakhir saat check-in bersamaan:
//   - uq_check_in_day    (quest, user, date)
//   - uq_check_in_period (quest, user, period_key), period_key = tanggal (DAILY) atau minggu ISO (WEEKLY)
type CheckInModel struct {
	CheckInID                uuid.UUID      `gorm:"column:check_in_id;type:uuid;primaryKey" json:"check_in_id"`
	CheckInQuestID           uuid.UUID      `gorm:"column:check_in_quest_id;type:uuid;not null;uniqueIndex:uq_check_in_day,priority:1;uniqueIndex:uq_check_in_period,priority:1" json:"check_in_quest_id"`
	CheckInUserID            uuid.UUID      `gorm:"column:check_in_user_id;type:uuid;not null;uniqueIndex:uq_check_in_day,priority:2;uniqueIndex:uq_check_in_period,priority:2" json:"check_in_user_id"`
	CheckInDate              datatypes.Date `gorm:"column:check_in_date;not null;uniqueIndex:uq_check_in_day,priority:3" json:"check_in_date"`
	CheckInPeriodKey         string         `gorm:"column:check_in_period_key;type:varchar(10);not null;uniqueIndex:uq_check_in_period,priority:3" json:"check_in_period_key"`
	CheckInExperienceAwarded int64          `gorm:"column:check_in_experience_awarded;not null;default:0" json:"check_in_experience_awarded"`
	CreatedAt                time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (CheckInModel) TableName() string {
	return "quest_check_ins"
}

func (c *CheckInModel) BeforeCreate(tx *gorm.DB) error {
	if c.CheckInID == uuid.Nil {
		c.CheckInID = uuid.New()
	}
	return nil
}

func (c *CheckInModel) Date() time.Time { return dateOnly(time.Time(c.CheckInDate)) }
