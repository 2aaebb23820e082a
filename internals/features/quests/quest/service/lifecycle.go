package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"

	notificationService "questku_backend/internals/features/home/notifications/service"
	"questku_backend/internals/features/quests/quest/model"
	userModel "questku_backend/internals/features/users/user/model"
	"questku_backend/internals/helpers/apperror"
	"questku_backend/internals/helpers/dbtime"
	"questku_backend/internals/helpers/dbutil"
)

type CreateQuestInput struct {
	Title            string
	Description      string
	Type             model.QuestType
	StartDate        time.Time
	EndDate          time.Time
	ExperienceReward int64
	CheckInGoal      int
}

func (in *CreateQuestInput) validate() error {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)

	if n := utf8.RuneCountInString(in.Title); n < 3 || n > 200 {
		return apperror.InvalidArgument("title must be between 3 and 200 characters")
	}
	if utf8.RuneCountInString(in.Description) > 1000 {
		return apperror.InvalidArgument("description must be at most 1000 characters")
	}
	if !in.Type.Valid() {
		return apperror.InvalidArgument("quest type must be DAILY or WEEKLY")
	}
	if in.ExperienceReward <= 0 {
		return apperror.InvalidArgument("experience reward must be positive")
	}
	if in.CheckInGoal <= 0 {
		return apperror.InvalidArgument("check-in goal must be positive")
	}
	if in.StartDate.IsZero() || in.EndDate.IsZero() {
		return apperror.InvalidArgument("start date and end date are required")
	}
	in.StartDate = dbtime.Normalize(in.StartDate)
	in.EndDate = dbtime.Normalize(in.EndDate)
	if in.EndDate.Before(in.StartDate) {
		return apperror.InvalidArgument("end date must not be before start date")
	}
	return nil
}

// CreateQuest menyimpan quest ACTIVE beserta progress 0% untuk pemiliknya.
func (s *QuestService) CreateQuest(ctx context.Context, userID uuid.UUID, in CreateQuestInput) (*model.QuestModel, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	quest := model.QuestModel{
		QuestUserID:           userID,
		QuestTitle:            in.Title,
		QuestDescription:      in.Description,
		QuestType:             in.Type,
		QuestStatus:           model.QuestStatusActive,
		QuestStartDate:        dbtime.ToDate(in.StartDate),
		QuestEndDate:          dbtime.ToDate(in.EndDate),
		QuestExperienceReward: in.ExperienceReward,
		QuestCheckInGoal:      in.CheckInGoal,
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var exists int64
		if err := tx.Model(&userModel.UserModel{}).Where("id = ?", userID).Count(&exists).Error; err != nil {
			return err
		}
		if exists == 0 {
			return apperror.NotFound("user %s not found", userID)
		}

		if err := tx.Create(&quest).Error; err != nil {
			return fmt.Errorf("create quest: %w", err)
		}
		progress := model.QuestProgressModel{
			QuestProgressQuestID:     quest.QuestID,
			QuestProgressUserID:      userID,
			QuestProgressLastUpdated: s.now(),
		}
		if err := tx.Create(&progress).Error; err != nil {
			return fmt.Errorf("create quest progress: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[QUEST] Quest '%s' (%s) created for user %s", quest.QuestTitle, quest.QuestID, userID)
	s.invalidateUser(userID)
	return &quest, nil
}

// completeTx: ACTIVE -> COMPLETED lewat update bersyarat, sehingga transisi terjadi tepat sekali.
func (s *QuestService) completeTx(tx *gorm.DB, q *model.QuestModel) error {
	now := s.now()
	res := tx.Model(&model.QuestModel{}).
		Where("quest_id = ? AND quest_status = ?", q.QuestID, model.QuestStatusActive).
		Updates(map[string]any{
			"quest_status":       model.QuestStatusCompleted,
			"quest_completed_at": now,
		})
	if res.Error != nil {
		return fmt.Errorf("complete quest: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.InvalidState("quest is not active")
	}
	q.QuestStatus = model.QuestStatusCompleted
	q.QuestCompletedAt = &now
	return nil
}

// Complete menyelesaikan quest secara manual (pemilik saja).
func (s *QuestService) Complete(ctx context.Context, questID, userID uuid.UUID) (*model.QuestModel, error) {
	var quest *model.QuestModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q, err := lockQuest(tx, questID)
		if err != nil {
			return err
		}
		if q.QuestUserID != userID {
			return apperror.Unauthorized("user does not own this quest")
		}
		if q.QuestStatus != model.QuestStatusActive {
			return apperror.InvalidState("quest is not active (status %s)", q.QuestStatus)
		}
		if err := s.completeTx(tx, q); err != nil {
			return err
		}
		quest = q
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateUser(userID)
	s.afterCompletion(ctx, quest)
	return quest, nil
}

// Expire: kandidat dibaca ulang di dalam transaksi; hanya yang masih ACTIVE dan
// end date < hari ini yang diubah ke EXPIRED. Mengembalikan quest yang benar-benar expired.
func (s *QuestService) Expire(ctx context.Context, quests []model.QuestModel) ([]model.QuestModel, error) {
	if len(quests) == 0 {
		return nil, nil
	}
	ids := make([]uuid.UUID, 0, len(quests))
	for _, q := range quests {
		ids = append(ids, q.QuestID)
	}
	today := s.Today()

	var expired []model.QuestModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rows []model.QuestModel
		if err := dbutil.ForUpdate(tx).
			Where("quest_id IN ?", ids).
			Where("quest_status = ? AND quest_end_date < ?", model.QuestStatusActive, dbtime.ToDate(today)).
			Find(&rows).Error; err != nil {
			return fmt.Errorf("reload expiring quests: %w", err)
		}
		if len(rows) == 0 {
			return nil
		}

		keep := make([]uuid.UUID, 0, len(rows))
		for _, r := range rows {
			keep = append(keep, r.QuestID)
		}
		now := s.now()
		if err := tx.Model(&model.QuestModel{}).
			Where("quest_id IN ? AND quest_status = ?", keep, model.QuestStatusActive).
			Updates(map[string]any{
				"quest_status":     model.QuestStatusExpired,
				"quest_expired_at": now,
			}).Error; err != nil {
			return fmt.Errorf("expire quests: %w", err)
		}
		for i := range rows {
			rows[i].QuestStatus = model.QuestStatusExpired
			rows[i].QuestExpiredAt = &now
		}
		expired = rows
		return nil
	})
	if err != nil {
		return nil, err
	}

	for i := range expired {
		s.invalidateUser(expired[i].QuestUserID)
		s.afterExpiration(ctx, &expired[i])
	}
	if len(expired) > 0 {
		log.Printf("[QUEST] Expired %d quest(s)", len(expired))
	}
	return expired, nil
}

// DeleteQuest menghapus quest beserta check-in dan progress-nya. Notifikasi yang
// merujuk quest tetap ada, referensinya dikosongkan. Admin boleh menghapus quest siapa pun.
func (s *QuestService) DeleteQuest(ctx context.Context, questID, actorID uuid.UUID, isAdmin bool) error {
	var ownerID uuid.UUID
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q, err := lockQuest(tx, questID)
		if err != nil {
			return err
		}
		if !isAdmin && q.QuestUserID != actorID {
			return apperror.Unauthorized("user does not own this quest")
		}
		ownerID = q.QuestUserID

		if err := tx.Where("check_in_quest_id = ?", questID).Delete(&model.CheckInModel{}).Error; err != nil {
			return fmt.Errorf("delete check-ins: %w", err)
		}
		if err := tx.Where("quest_progress_quest_id = ?", questID).Delete(&model.QuestProgressModel{}).Error; err != nil {
			return fmt.Errorf("delete progress: %w", err)
		}
		if err := notificationService.DetachQuest(tx, questID); err != nil {
			return fmt.Errorf("detach notifications: %w", err)
		}
		if err := tx.Where("quest_id = ?", questID).Delete(&model.QuestModel{}).Error; err != nil {
			return fmt.Errorf("delete quest: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Printf("[QUEST] Quest %s deleted by %s", questID, actorID)
	s.invalidateUser(ownerID)
	return nil
}

// DeleteForUser dipanggil di transaksi hapus user.
func DeleteForUser(tx *gorm.DB, userID uuid.UUID) error {
	if err := tx.Where("check_in_user_id = ?", userID).Delete(&model.CheckInModel{}).Error; err != nil {
		return err
	}
	if err := tx.Where("quest_progress_user_id = ?", userID).Delete(&model.QuestProgressModel{}).Error; err != nil {
		return err
	}
	return tx.Where("quest_user_id = ?", userID).Delete(&model.QuestModel{}).Error
}
