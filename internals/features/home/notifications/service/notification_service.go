package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"questku_backend/internals/features/home/notifications/model"
	"questku_backend/internals/helpers/apperror"
	"questku_backend/internals/helpers/dbtime"
)

const defaultAchievementBlurb = "Keep up the great work!"

type NotificationService struct {
	DB *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{DB: db}
}

/* ===============================
   Sink
=================================*/

// Create mencatat notifikasi baru. questID boleh nil.
func (s *NotificationService) Create(ctx context.Context, userID uuid.UUID, questID *uuid.UUID, typ model.NotificationType, message string) (*model.NotificationModel, error) {
	if !typ.Valid() {
		return nil, apperror.InvalidArgument("unknown notification type %q", typ)
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, apperror.InvalidArgument("notification message is required")
	}

	n := &model.NotificationModel{
		NotificationUserID:  userID,
		NotificationQuestID: questID,
		NotificationType:    typ,
		NotificationMessage: message,
	}
	if err := s.DB.WithContext(ctx).Create(n).Error; err != nil {
		return nil, fmt.Errorf("create notification: %w", err)
	}
	return n, nil
}

func (s *NotificationService) QuestCompleted(ctx context.Context, userID, questID uuid.UUID, title string, totalXP int64) error {
	_, err := s.Create(ctx, userID, &questID, model.TypeQuestCompleted, QuestCompletedMessage(title, totalXP))
	return err
}

func (s *NotificationService) QuestExpired(ctx context.Context, userID, questID uuid.UUID, title string, endDate time.Time) error {
	_, err := s.Create(ctx, userID, &questID, model.TypeQuestExpired, QuestExpiredMessage(title, endDate))
	return err
}

func (s *NotificationService) QuestExpiringSoon(ctx context.Context, userID, questID uuid.UUID, title string, endDate time.Time) error {
	_, err := s.Create(ctx, userID, &questID, model.TypeQuestExpiringSoon, QuestExpiringSoonMessage(title, endDate))
	return err
}

func (s *NotificationService) QuestReminder(ctx context.Context, userID, questID uuid.UUID, title string, daysLeft int, endDate time.Time) error {
	_, err := s.Create(ctx, userID, &questID, model.TypeQuestReminder, QuestReminderMessage(title, daysLeft, endDate))
	return err
}

// CheckInReminder: pengingat sore untuk quest yang belum di-check-in hari/minggu ini.
func (s *NotificationService) CheckInReminder(ctx context.Context, userID, questID uuid.UUID, title string, weekly bool, endDate time.Time) error {
	_, err := s.Create(ctx, userID, &questID, model.TypeQuestReminder, CheckInReminderMessage(title, weekly, endDate))
	return err
}

func (s *NotificationService) WeeklySummary(ctx context.Context, userID, questID uuid.UUID, title string, done, goal, pct int, endDate time.Time) error {
	_, err := s.Create(ctx, userID, &questID, model.TypeSystem, WeeklySummaryMessage(title, done, goal, pct, endDate))
	return err
}

func (s *NotificationService) AchievementUnlocked(ctx context.Context, userID uuid.UUID, name, description string) error {
	_, err := s.Create(ctx, userID, nil, model.TypeAchievementUnlocked, AchievementUnlockedMessage(name, description))
	return err
}

/* ===============================
   Messages
=================================*/

func QuestCompletedMessage(title string, totalXP int64) string {
	return fmt.Sprintf("Congratulations! You completed the quest '%s'! You earned a total of %d XP (given per check-in).", title, totalXP)
}

func QuestExpiredMessage(title string, endDate time.Time) string {
	return fmt.Sprintf("Quest '%s' has expired on %s", title, dbtime.FormatDisplay(endDate))
}

func QuestExpiringSoonMessage(title string, endDate time.Time) string {
	return fmt.Sprintf("Quest '%s' is expiring soon! Deadline: %s", title, dbtime.FormatDisplay(endDate))
}

func QuestReminderMessage(title string, daysLeft int, endDate time.Time) string {
	return fmt.Sprintf("Reminder: Quest '%s' deadline is in %d day(s)! (Deadline: %s)", title, daysLeft, dbtime.FormatDisplay(endDate))
}

func CheckInReminderMessage(title string, weekly bool, endDate time.Time) string {
	if weekly {
		return fmt.Sprintf("Don't forget to check in for your weekly quest '%s' this week! Deadline: %s", title, dbtime.FormatDisplay(endDate))
	}
	return fmt.Sprintf("Don't forget to check in for your daily quest '%s' today! Deadline: %s", title, dbtime.FormatDisplay(endDate))
}

func WeeklySummaryMessage(title string, done, goal, pct int, endDate time.Time) string {
	return fmt.Sprintf("Weekly Progress Update for '%s': %d/%d check-ins completed (%d%%). Deadline: %s",
		title, done, goal, pct, dbtime.FormatDisplay(endDate))
}

func AchievementUnlockedMessage(name, description string) string {
	blurb := strings.TrimSpace(description)
	if blurb == "" {
		blurb = defaultAchievementBlurb
	}
	return fmt.Sprintf("Achievement unlocked: '%s'! %s", name, blurb)
}

/* ===============================
   User operations
=================================*/

type ListFilter struct {
	UnreadOnly bool
	Type       model.NotificationType
	Limit      int
	Offset     int
}

func (s *NotificationService) List(ctx context.Context, userID uuid.UUID, f ListFilter) ([]model.NotificationModel, int64, error) {
	q := s.DB.WithContext(ctx).Model(&model.NotificationModel{}).
		Where("notification_user_id = ?", userID)
	if f.UnreadOnly {
		q = q.Where("notification_is_read = ?", false)
	}
	if f.Type != "" {
		q = q.Where("notification_type = ?", f.Type)
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
	var rows []model.NotificationModel
	if err := q.Order("notification_created_at DESC, notification_id DESC").
		Limit(limit).Offset(f.Offset).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	err := s.DB.WithContext(ctx).Model(&model.NotificationModel{}).
		Where("notification_user_id = ? AND notification_is_read = ?", userID, false).
		Count(&n).Error
	return n, err
}

// findOwned: NotFound kalau tidak ada, Unauthorized kalau milik user lain.
func (s *NotificationService) findOwned(ctx context.Context, id, userID uuid.UUID) (*model.NotificationModel, error) {
	var n model.NotificationModel
	if err := s.DB.WithContext(ctx).Where("notification_id = ?", id).First(&n).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("notification not found")
		}
		return nil, err
	}
	if n.NotificationUserID != userID {
		return nil, apperror.Unauthorized("notification belongs to another user")
	}
	return &n, nil
}

func (s *NotificationService) MarkAsRead(ctx context.Context, id, userID uuid.UUID) (*model.NotificationModel, error) {
	n, err := s.findOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if n.NotificationIsRead {
		return n, nil
	}
	now := time.Now()
	if err := s.DB.WithContext(ctx).Model(&model.NotificationModel{}).
		Where("notification_id = ?", id).
		Updates(map[string]any{
			"notification_is_read": true,
			"notification_read_at": now,
		}).Error; err != nil {
		return nil, err
	}
	n.NotificationIsRead = true
	n.NotificationReadAt = &now
	return n, nil
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	res := s.DB.WithContext(ctx).Model(&model.NotificationModel{}).
		Where("notification_user_id = ? AND notification_is_read = ?", userID, false).
		Updates(map[string]any{
			"notification_is_read": true,
			"notification_read_at": time.Now(),
		})
	return res.RowsAffected, res.Error
}

func (s *NotificationService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if _, err := s.findOwned(ctx, id, userID); err != nil {
		return err
	}
	return s.DB.WithContext(ctx).Where("notification_id = ?", id).Delete(&model.NotificationModel{}).Error
}

// DetachQuest dipanggil di dalam transaksi hapus quest: teks notifikasi tetap, referensi quest dikosongkan.
func DetachQuest(tx *gorm.DB, questID uuid.UUID) error {
	return tx.Model(&model.NotificationModel{}).
		Where("notification_quest_id = ?", questID).
		Update("notification_quest_id", nil).Error
}

// DeleteForUser dipanggil saat user dihapus.
func DeleteForUser(tx *gorm.DB, userID uuid.UUID) error {
	return tx.Where("notification_user_id = ?", userID).Delete(&model.NotificationModel{}).Error
}
