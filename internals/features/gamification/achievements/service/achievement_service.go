package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"questku_backend/internals/features/gamification/achievements/model"
	questModel "questku_backend/internals/features/quests/quest/model"
	userModel "questku_backend/internals/features/users/user/model"
	"questku_backend/internals/helpers/apperror"
	"questku_backend/internals/helpers/cache"
)

const definitionsCacheKey = "achievements:all"

// Notifier: cukup method yang dipakai di sini (dipenuhi NotificationService).
type Notifier interface {
	AchievementUnlocked(ctx context.Context, userID uuid.UUID, name, description string) error
}

type AchievementService struct {
	DB       *gorm.DB
	Notifier Notifier
	Cache    *cache.Store
}

func NewAchievementService(db *gorm.DB, notifier Notifier, c *cache.Store) *AchievementService {
	return &AchievementService{DB: db, Notifier: notifier, Cache: c}
}

// Snapshot agregat user yang dibutuhkan predikat.
type userAggregates struct {
	CompletedQuests  int64
	ExperiencePoints int64
	Level            int
}

func (s *AchievementService) loadAggregates(ctx context.Context, userID uuid.UUID) (*userAggregates, error) {
	var u userModel.UserModel
	if err := s.DB.WithContext(ctx).
		Select("id", "user_level", "user_experience_points").
		Where("id = ?", userID).
		First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("user %s not found", userID)
		}
		return nil, err
	}

	var completed int64
	if err := s.DB.WithContext(ctx).Model(&questModel.QuestModel{}).
		Where("quest_user_id = ? AND quest_status = ?", userID, questModel.QuestStatusCompleted).
		Count(&completed).Error; err != nil {
		return nil, err
	}
	return &userAggregates{CompletedQuests: completed, ExperiencePoints: u.ExperiencePoints, Level: u.Level}, nil
}

// Satisfied: predikat per tipe. STREAK_DAYS dan tipe tak dikenal tidak pernah terpenuhi.
func Satisfied(a *model.AchievementModel, agg userAggregates) bool {
	switch a.AchievementType {
	case model.TypeQuestsCompleted:
		return agg.CompletedQuests >= a.AchievementRequirementValue
	case model.TypeTotalXPEarned:
		return agg.ExperiencePoints >= a.AchievementRequirementValue
	case model.TypeLevelReached:
		return int64(agg.Level) >= a.AchievementRequirementValue
	default:
		return false
	}
}

// CheckAndAward mengevaluasi semua definisi yang belum di-unlock user dan
// meng-unlock yang terpenuhi. Insert memakai ON CONFLICT DO NOTHING sehingga
// evaluasi paralel untuk user yang sama tidak menghasilkan unlock/notifikasi ganda.
func (s *AchievementService) CheckAndAward(ctx context.Context, userID uuid.UUID) ([]model.AchievementModel, error) {
	agg, err := s.loadAggregates(ctx, userID)
	if err != nil {
		return nil, err
	}

	defs, err := s.Definitions(ctx)
	if err != nil {
		return nil, err
	}
	unlocked, err := s.unlockedIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	var awarded []model.AchievementModel
	// unlock baru mengubah achievements_count di stats user
	defer func() {
		if len(awarded) > 0 {
			s.Cache.InvalidateUser(userID)
		}
	}()
	for i := range defs {
		def := defs[i]
		if _, ok := unlocked[def.AchievementID]; ok {
			continue
		}
		if !Satisfied(&def, *agg) {
			continue
		}

		row := model.UserAchievementModel{
			UserAchievementUserID:        userID,
			UserAchievementAchievementID: def.AchievementID,
			UserAchievementUnlockedAt:    time.Now(),
		}
		res := s.DB.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&row)
		if res.Error != nil {
			return awarded, fmt.Errorf("unlock achievement %s: %w", def.AchievementName, res.Error)
		}
		if res.RowsAffected == 0 {
			continue // sudah di-unlock oleh evaluasi lain
		}

		log.Printf("[ACH] User %s unlocked '%s'", userID, def.AchievementName)
		awarded = append(awarded, def)
		s.notify(ctx, userID, &def)
	}
	return awarded, nil
}

func (s *AchievementService) notify(ctx context.Context, userID uuid.UUID, def *model.AchievementModel) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.AchievementUnlocked(ctx, userID, def.AchievementName, def.AchievementDescription); err != nil {
		log.Printf("[WARN] achievement notification failed user=%s achievement=%s: %v", userID, def.AchievementName, err)
	}
}

func (s *AchievementService) unlockedIDs(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]struct{}, error) {
	var ids []uuid.UUID
	if err := s.DB.WithContext(ctx).Model(&model.UserAchievementModel{}).
		Where("user_achievement_user_id = ?", userID).
		Pluck("user_achievement_achievement_id", &ids).Error; err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out, nil
}

/* ===============================
   Queries
=================================*/

// Definitions: semua definisi, di-cache (reference data, jarang berubah).
func (s *AchievementService) Definitions(ctx context.Context) ([]model.AchievementModel, error) {
	return cache.GetOrLoad(s.Cache, definitionsCacheKey, func() ([]model.AchievementModel, error) {
		var defs []model.AchievementModel
		err := s.DB.WithContext(ctx).
			Order("achievement_type ASC, achievement_requirement_value ASC, achievement_name ASC").
			Find(&defs).Error
		return defs, err
	})
}

// InvalidateDefinitions dipanggil setelah seed / perubahan definisi.
func (s *AchievementService) InvalidateDefinitions() {
	s.Cache.Invalidate(definitionsCacheKey)
}

type UnlockedAchievement struct {
	model.AchievementModel
	UnlockedAt time.Time `json:"unlocked_at"`
}

func (s *AchievementService) UserAchievements(ctx context.Context, userID uuid.UUID) ([]UnlockedAchievement, error) {
	var rows []UnlockedAchievement
	err := s.DB.WithContext(ctx).
		Table("user_achievements ua").
		Select("a.*, ua.user_achievement_unlocked_at AS unlocked_at").
		Joins("JOIN achievements a ON a.achievement_id = ua.user_achievement_achievement_id").
		Where("ua.user_achievement_user_id = ?", userID).
		Order("ua.user_achievement_unlocked_at DESC").
		Scan(&rows).Error
	return rows, err
}

// Split: definisi dibagi jadi sudah & belum di-unlock.
func (s *AchievementService) Split(ctx context.Context, userID uuid.UUID) (unlocked []UnlockedAchievement, locked []model.AchievementModel, err error) {
	unlocked, err = s.UserAchievements(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	have := make(map[uuid.UUID]struct{}, len(unlocked))
	for _, u := range unlocked {
		have[u.AchievementID] = struct{}{}
	}

	defs, err := s.Definitions(ctx)
	if err != nil {
		return nil, nil, err
	}
	locked = make([]model.AchievementModel, 0, len(defs))
	for _, d := range defs {
		if _, ok := have[d.AchievementID]; !ok {
			locked = append(locked, d)
		}
	}
	return unlocked, locked, nil
}

func (s *AchievementService) CountForUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	err := s.DB.WithContext(ctx).Model(&model.UserAchievementModel{}).
		Where("user_achievement_user_id = ?", userID).
		Count(&n).Error
	return n, err
}

// DeleteForUser dipanggil di transaksi hapus user.
func DeleteForUser(tx *gorm.DB, userID uuid.UUID) error {
	return tx.Where("user_achievement_user_id = ?", userID).Delete(&model.UserAchievementModel{}).Error
}
