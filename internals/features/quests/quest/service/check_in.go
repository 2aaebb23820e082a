package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pointModel "questku_backend/internals/features/progress/points/model"
	pointService "questku_backend/internals/features/progress/points/service"
	"questku_backend/internals/features/quests/quest/model"
	"questku_backend/internals/helpers/apperror"
	"questku_backend/internals/helpers/dbtime"
)

type CheckInResult struct {
	CheckIn   model.CheckInModel
	Quest     model.QuestModel
	Progress  model.QuestProgressModel
	Award     *pointService.AwardResult // nil kalau XP per check-in = 0
	Completed bool
}

// CheckIn mencatat check-in untuk tanggal date. Seluruh langkah (validasi, XP,
// insert check-in, progress, transisi COMPLETED) satu transaksi; achievement,
// analytics, dan notifikasi dijalankan setelah commit.
func (s *QuestService) CheckIn(ctx context.Context, questID, userID uuid.UUID, date time.Time) (*CheckInResult, error) {
	date = dbtime.Normalize(date)
	var res CheckInResult

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Quest + precondition
		quest, err := lockQuest(tx, questID)
		if err != nil {
			return err
		}
		if quest.QuestUserID != userID {
			return apperror.Unauthorized("user does not own this quest")
		}
		if quest.QuestStatus != model.QuestStatusActive {
			return apperror.InvalidState("quest is not active (status %s)", quest.QuestStatus)
		}
		if date.After(s.Today()) {
			return apperror.InvalidArgument("check-in date %s is in the future", dbtime.FormatDate(date))
		}
		if date.Before(quest.StartDate()) || date.After(quest.EndDate()) {
			return apperror.InvalidArgument("check-in date %s is outside the quest period %s..%s",
				dbtime.FormatDate(date), dbtime.FormatDate(quest.StartDate()), dbtime.FormatDate(quest.EndDate()))
		}

		// 2. Eligibility
		ok, err := CanCheckIn(tx, quest, userID, date)
		if err != nil {
			return fmt.Errorf("check eligibility: %w", err)
		}
		if !ok {
			if quest.QuestType == model.QuestTypeWeekly {
				return apperror.DuplicateCheckIn("already checked in this week for this weekly quest")
			}
			return apperror.DuplicateCheckIn("already checked in on %s for this daily quest", dbtime.FormatDate(date))
		}

		// 3-4. XP per check-in (pembagian bulat)
		xp := quest.XPPerCheckIn()
		if xp > 0 {
			award, err := pointService.AddExperience(tx, userID, xp, pointModel.SourceQuestCheckIn, &quest.QuestID)
			if err != nil {
				return err
			}
			res.Award = award
		}

		// 5. Insert; unique violation = check-in bersamaan di periode yang sama
		ci := model.CheckInModel{
			CheckInQuestID:           quest.QuestID,
			CheckInUserID:            userID,
			CheckInDate:              dbtime.ToDate(date),
			CheckInPeriodKey:         PeriodKey(quest.QuestType, date),
			CheckInExperienceAwarded: xp,
		}
		if err := tx.Create(&ci).Error; err != nil {
			if apperror.IsUniqueViolation(err) {
				return apperror.DuplicateCheckIn("already checked in for this period")
			}
			return fmt.Errorf("insert check-in: %w", err)
		}

		// 6. Progress
		var count int64
		if err := tx.Model(&model.CheckInModel{}).
			Where("check_in_quest_id = ? AND check_in_user_id = ?", quest.QuestID, userID).
			Count(&count).Error; err != nil {
			return fmt.Errorf("count check-ins: %w", err)
		}
		progress, err := s.saveProgress(tx, quest, userID, int(count))
		if err != nil {
			return err
		}

		// 7. Selesai?
		if int(count) >= quest.QuestCheckInGoal {
			if err := s.completeTx(tx, quest); err != nil {
				return err
			}
			res.Completed = true
		}

		res.CheckIn = ci
		res.Quest = *quest
		res.Progress = *progress
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[QUEST] Check-in quest=%s user=%s date=%s xp=%d", questID, userID, dbtime.FormatDate(date), res.CheckIn.CheckInExperienceAwarded)
	s.invalidateUser(userID)

	if res.Completed {
		s.afterCompletion(ctx, &res.Quest)
	} else {
		s.evaluateAchievements(ctx, userID)
	}
	return &res, nil
}

// QuickCheckIn = CheckIn untuk hari ini.
func (s *QuestService) QuickCheckIn(ctx context.Context, questID, userID uuid.UUID) (*CheckInResult, error) {
	return s.CheckIn(ctx, questID, userID, s.Today())
}

// saveProgress membuat (kalau belum ada) atau memperbarui baris progress.
func (s *QuestService) saveProgress(tx *gorm.DB, q *model.QuestModel, userID uuid.UUID, count int) (*model.QuestProgressModel, error) {
	now := s.now()
	pct := model.ProgressPercentage(count, q.QuestCheckInGoal)

	var p model.QuestProgressModel
	err := tx.Where("quest_progress_quest_id = ? AND quest_progress_user_id = ?", q.QuestID, userID).First(&p).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		p = model.QuestProgressModel{
			QuestProgressQuestID:      q.QuestID,
			QuestProgressUserID:       userID,
			QuestProgressPercentage:   pct,
			QuestProgressCheckInCount: count,
			QuestProgressLastUpdated:  now,
		}
		if err := tx.Create(&p).Error; err != nil {
			return nil, fmt.Errorf("create progress: %w", err)
		}
		return &p, nil
	case err != nil:
		return nil, fmt.Errorf("load progress: %w", err)
	}

	if err := tx.Model(&model.QuestProgressModel{}).
		Where("quest_progress_id = ?", p.QuestProgressID).
		Updates(map[string]any{
			"quest_progress_percentage":     pct,
			"quest_progress_check_in_count": count,
			"quest_progress_last_updated":   now,
		}).Error; err != nil {
		return nil, fmt.Errorf("update progress: %w", err)
	}
	p.QuestProgressPercentage = pct
	p.QuestProgressCheckInCount = count
	p.QuestProgressLastUpdated = now
	return &p, nil
}

// GetCheckIns: riwayat check-in quest (hanya pemilik), terbaru dulu.
func (s *QuestService) GetCheckIns(ctx context.Context, questID, userID uuid.UUID) ([]model.CheckInModel, error) {
	if _, err := s.ownedQuest(ctx, questID, userID); err != nil {
		return nil, err
	}
	var rows []model.CheckInModel
	err := s.DB.WithContext(ctx).
		Where("check_in_quest_id = ? AND check_in_user_id = ?", questID, userID).
		Order("check_in_date DESC, created_at DESC").
		Find(&rows).Error
	return rows, err
}

// GetQuestsReadyForCheckIn: quest ACTIVE milik user yang masih bisa di-check-in pada date.
func (s *QuestService) GetQuestsReadyForCheckIn(ctx context.Context, userID uuid.UUID, date time.Time) ([]model.QuestModel, error) {
	db := s.DB.WithContext(ctx)
	date = dbtime.Normalize(date)

	var active []model.QuestModel
	if err := db.
		Where("quest_user_id = ? AND quest_status = ?", userID, model.QuestStatusActive).
		Where("quest_start_date <= ? AND quest_end_date >= ?", dbtime.ToDate(date), dbtime.ToDate(date)).
		Order("quest_end_date ASC, created_at ASC").
		Find(&active).Error; err != nil {
		return nil, err
	}

	ready := make([]model.QuestModel, 0, len(active))
	for i := range active {
		ok, err := CanCheckIn(db, &active[i], userID, date)
		if err != nil {
			return nil, err
		}
		if ok {
			ready = append(ready, active[i])
		}
	}
	return ready, nil
}
