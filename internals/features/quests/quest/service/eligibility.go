package service

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"questku_backend/internals/features/quests/quest/model"
	"questku_backend/internals/helpers/dbtime"
)

// PeriodKey: tanggal untuk DAILY, minggu ISO untuk WEEKLY. Disimpan di check-in
// dan dijaga unique index (quest, user, period_key).
func PeriodKey(t model.QuestType, date time.Time) string {
	switch t {
	case model.QuestTypeDaily:
		return dbtime.FormatDate(date)
	case model.QuestTypeWeekly:
		return dbtime.ISOWeekKey(date)
	}
	return ""
}

// CanCheckIn: quest ACTIVE, milik user, dan belum ada check-in di periode yang sama
// (hari kalender untuk DAILY, minggu ISO-8601 untuk WEEKLY). Tipe tak dikenal => false.
// Ini hanya pre-filter; unique index tetap penentu akhir saat bersamaan.
func CanCheckIn(db *gorm.DB, q *model.QuestModel, userID uuid.UUID, date time.Time) (bool, error) {
	if q.QuestStatus != model.QuestStatusActive {
		return false, nil
	}
	if q.QuestUserID != userID {
		return false, nil
	}

	date = dbtime.Normalize(date)
	query := db.Model(&model.CheckInModel{}).
		Where("check_in_quest_id = ? AND check_in_user_id = ?", q.QuestID, userID)

	switch q.QuestType {
	case model.QuestTypeDaily:
		query = query.Where("check_in_date = ?", dbtime.ToDate(date))
	case model.QuestTypeWeekly:
		monday, sunday := dbtime.WeekBounds(date)
		query = query.Where("check_in_date BETWEEN ? AND ?", dbtime.ToDate(monday), dbtime.ToDate(sunday))
	default:
		return false, nil
	}

	var n int64
	if err := query.Count(&n).Error; err != nil {
		return false, err
	}
	return n == 0, nil
}
