package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"questku_backend/internals/features/quests/quest/model"
	"questku_backend/internals/helpers/apperror"
	"questku_backend/internals/helpers/dbtime"
)

type QuestFilter struct {
	UserID *uuid.UUID
	Status model.QuestStatus
	Type   model.QuestType
	Limit  int
	Offset int
}

func (s *QuestService) findQuest(ctx context.Context, questID uuid.UUID) (*model.QuestModel, error) {
	var q model.QuestModel
	if err := s.DB.WithContext(ctx).Where("quest_id = ?", questID).First(&q).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("quest %s not found", questID)
		}
		return nil, err
	}
	return &q, nil
}

func (s *QuestService) ownedQuest(ctx context.Context, questID, userID uuid.UUID) (*model.QuestModel, error) {
	q, err := s.findQuest(ctx, questID)
	if err != nil {
		return nil, err
	}
	if q.QuestUserID != userID {
		return nil, apperror.Unauthorized("user does not own this quest")
	}
	return q, nil
}

// GetQuest: detail quest + progress. Selain admin hanya pemilik yang boleh melihat.
func (s *QuestService) GetQuest(ctx context.Context, questID, userID uuid.UUID, isAdmin bool) (*model.QuestModel, *model.QuestProgressModel, error) {
	q, err := s.findQuest(ctx, questID)
	if err != nil {
		return nil, nil, err
	}
	if !isAdmin && q.QuestUserID != userID {
		return nil, nil, apperror.Unauthorized("user does not own this quest")
	}

	var p model.QuestProgressModel
	err = s.DB.WithContext(ctx).
		Where("quest_progress_quest_id = ? AND quest_progress_user_id = ?", q.QuestID, q.QuestUserID).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return q, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return q, &p, nil
}

func (s *QuestService) list(ctx context.Context, f QuestFilter) ([]model.QuestModel, int64, error) {
	q := s.DB.WithContext(ctx).Model(&model.QuestModel{})
	if f.UserID != nil {
		q = q.Where("quest_user_id = ?", *f.UserID)
	}
	if f.Status != "" {
		q = q.Where("quest_status = ?", f.Status)
	}
	if f.Type != "" {
		q = q.Where("quest_type = ?", f.Type)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}
	var rows []model.QuestModel
	if err := q.Order("created_at DESC, quest_id DESC").
		Limit(limit).Offset(f.Offset).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (s *QuestService) GetUserQuests(ctx context.Context, userID uuid.UUID, f QuestFilter) ([]model.QuestModel, int64, error) {
	f.UserID = &userID
	return s.list(ctx, f)
}

// GetAllQuests (admin): f.UserID opsional.
func (s *QuestService) GetAllQuests(ctx context.Context, f QuestFilter) ([]model.QuestModel, int64, error) {
	return s.list(ctx, f)
}

// FindExpiredQuests: semua quest ACTIVE dengan end date sebelum today.
func (s *QuestService) FindExpiredQuests(ctx context.Context, today time.Time) ([]model.QuestModel, error) {
	var rows []model.QuestModel
	err := s.DB.WithContext(ctx).
		Where("quest_status = ? AND quest_end_date < ?", model.QuestStatusActive, dbtime.ToDate(today)).
		Order("quest_end_date ASC").
		Find(&rows).Error
	return rows, err
}

// ActiveQuests: semua quest ACTIVE yang periodenya mencakup date (dipakai job reminder).
func (s *QuestService) ActiveQuests(ctx context.Context, date time.Time) ([]model.QuestModel, error) {
	d := dbtime.ToDate(date)
	var rows []model.QuestModel
	err := s.DB.WithContext(ctx).
		Where("quest_status = ? AND quest_start_date <= ? AND quest_end_date >= ?", model.QuestStatusActive, d, d).
		Order("quest_user_id ASC, quest_end_date ASC").
		Find(&rows).Error
	return rows, err
}

// CheckInsInRange menghitung check-in quest di antara from..to (inklusif).
func (s *QuestService) CheckInsInRange(ctx context.Context, q *model.QuestModel, from, to time.Time) (int64, error) {
	var n int64
	err := s.DB.WithContext(ctx).Model(&model.CheckInModel{}).
		Where("check_in_quest_id = ? AND check_in_user_id = ?", q.QuestID, q.QuestUserID).
		Where("check_in_date BETWEEN ? AND ?", dbtime.ToDate(from), dbtime.ToDate(to)).
		Count(&n).Error
	return n, err
}

// CanCheckIn versi service (pakai koneksi non-transaksi).
func (s *QuestService) CanCheckIn(ctx context.Context, q *model.QuestModel, userID uuid.UUID, date time.Time) (bool, error) {
	return CanCheckIn(s.DB.WithContext(ctx), q, userID, date)
}

// StatusCounts: jumlah quest user per status.
func (s *QuestService) StatusCounts(ctx context.Context, userID uuid.UUID) (map[model.QuestStatus]int64, error) {
	type row struct {
		Status model.QuestStatus
		Total  int64
	}
	var rows []row
	if err := s.DB.WithContext(ctx).Model(&model.QuestModel{}).
		Select("quest_status AS status, COUNT(*) AS total").
		Where("quest_user_id = ?", userID).
		Group("quest_status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := map[model.QuestStatus]int64{}
	for _, r := range rows {
		out[r.Status] = r.Total
	}
	return out, nil
}
