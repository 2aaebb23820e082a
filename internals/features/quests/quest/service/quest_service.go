package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"questku_backend/internals/features/analytics"
	achModel "questku_backend/internals/features/gamification/achievements/model"
	"questku_backend/internals/features/quests/quest/model"
	"questku_backend/internals/helpers/apperror"
	"questku_backend/internals/helpers/cache"
	"questku_backend/internals/helpers/dbtime"
	"questku_backend/internals/helpers/dbutil"
)

// Notifier: bagian notification sink yang dipakai lifecycle quest.
type Notifier interface {
	QuestCompleted(ctx context.Context, userID, questID uuid.UUID, title string, totalXP int64) error
	QuestExpired(ctx context.Context, userID, questID uuid.UUID, title string, endDate time.Time) error
}

type AchievementChecker interface {
	CheckAndAward(ctx context.Context, userID uuid.UUID) ([]achModel.AchievementModel, error)
}

type QuestService struct {
	DB           *gorm.DB
	Notifier     Notifier
	Achievements AchievementChecker
	Analytics    analytics.Recorder
	Cache        *cache.Store
	Now          func() time.Time
}

func NewQuestService(db *gorm.DB, notifier Notifier, achievements AchievementChecker, recorder analytics.Recorder, c *cache.Store) *QuestService {
	if recorder == nil {
		recorder = analytics.Noop{}
	}
	return &QuestService{
		DB:           db,
		Notifier:     notifier,
		Achievements: achievements,
		Analytics:    recorder,
		Cache:        c,
		Now:          time.Now,
	}
}

func (s *QuestService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Today = tanggal hari ini di zona aplikasi.
func (s *QuestService) Today() time.Time {
	return dbtime.Today(s.now())
}

// lockQuest membaca quest di dalam transaksi (FOR UPDATE di postgres).
func lockQuest(tx *gorm.DB, questID uuid.UUID) (*model.QuestModel, error) {
	var q model.QuestModel
	if err := dbutil.ForUpdate(tx).Where("quest_id = ?", questID).First(&q).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("quest %s not found", questID)
		}
		return nil, fmt.Errorf("load quest: %w", err)
	}
	return &q, nil
}

/* ===============================
   Post-commit side effects
=================================*/

// runSafely: satu side effect gagal (error atau panic) tidak menggagalkan operasi utama
// maupun side effect lain. Tidak ada retry.
func runSafely(name string, fn func() error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[WARN] %s panicked: %v\n%s", name, r, debug.Stack())
		}
	}()
	if err := fn(); err != nil {
		log.Printf("[WARN] %s failed: %v", name, err)
	}
}

func (s *QuestService) evaluateAchievements(ctx context.Context, userID uuid.UUID) {
	if s.Achievements == nil {
		return
	}
	runSafely("achievement evaluation", func() error {
		_, err := s.Achievements.CheckAndAward(ctx, userID)
		return err
	})
}

// afterCompletion: (a) achievement, (b) analytics, (c) notifikasi. Masing-masing terisolasi.
func (s *QuestService) afterCompletion(ctx context.Context, q *model.QuestModel) {
	s.evaluateAchievements(ctx, q.QuestUserID)

	runSafely("analytics quest completion", func() error {
		return s.Analytics.RecordQuestCompletion(ctx, q.QuestUserID, q.QuestID, q.QuestExperienceReward)
	})

	if s.Notifier != nil {
		runSafely("quest completed notification", func() error {
			return s.Notifier.QuestCompleted(ctx, q.QuestUserID, q.QuestID, q.QuestTitle, q.QuestExperienceReward)
		})
	}
	log.Printf("[QUEST] Quest %s completed by user %s", q.QuestID, q.QuestUserID)
}

func (s *QuestService) afterExpiration(ctx context.Context, q *model.QuestModel) {
	if s.Notifier == nil {
		return
	}
	runSafely("quest expired notification", func() error {
		return s.Notifier.QuestExpired(ctx, q.QuestUserID, q.QuestID, q.QuestTitle, q.EndDate())
	})
}

func (s *QuestService) invalidateUser(userID uuid.UUID) {
	s.Cache.InvalidateUser(userID)
}
