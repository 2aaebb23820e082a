// Package service menghitung statistik user dan dashboard (user & admin).
package service

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"questku_backend/internals/features/analytics"
	achievementModel "questku_backend/internals/features/gamification/achievements/model"
	achievementService "questku_backend/internals/features/gamification/achievements/service"
	rewardModel "questku_backend/internals/features/gamification/rewards/model"
	rewardService "questku_backend/internals/features/gamification/rewards/service"
	notificationModel "questku_backend/internals/features/home/notifications/model"
	notificationService "questku_backend/internals/features/home/notifications/service"
	"questku_backend/internals/features/progress/leveling"
	questModel "questku_backend/internals/features/quests/quest/model"
	questService "questku_backend/internals/features/quests/quest/service"
	userModel "questku_backend/internals/features/users/user/model"
	"questku_backend/internals/helpers/apperror"
	"questku_backend/internals/helpers/cache"
)

const recentNotificationLimit = 5

type UserStats struct {
	UserID            uuid.UUID         `json:"user_id"`
	Level             int               `json:"level"`
	ExperiencePoints  int64             `json:"experience_points"`
	LevelProgress     leveling.Progress `json:"level_progress"`
	TotalQuests       int64             `json:"total_quests"`
	ActiveQuests      int64             `json:"active_quests"`
	CompletedQuests   int64             `json:"completed_quests"`
	ExpiredQuests     int64             `json:"expired_quests"`
	AchievementsCount int64             `json:"achievements_count"`
	RewardsClaimed    int64             `json:"rewards_claimed"`
	Analytics         *analytics.Data   `json:"analytics"`
}

type Dashboard struct {
	Stats               *UserStats                            `json:"stats"`
	ActiveQuests        []questModel.QuestModel               `json:"active_quests"`
	ReadyForCheckIn     []questModel.QuestModel               `json:"ready_for_check_in"`
	RecentNotifications []notificationModel.NotificationModel `json:"recent_notifications"`
	UnreadCount         int64                                 `json:"unread_count"`
}

type AdminDashboard struct {
	TotalUsers        int64 `json:"total_users"`
	TotalQuests       int64 `json:"total_quests"`
	ActiveQuests      int64 `json:"active_quests"`
	CompletedQuests   int64 `json:"completed_quests"`
	ExpiredQuests     int64 `json:"expired_quests"`
	TotalCheckIns     int64 `json:"total_check_ins"`
	TotalRewards      int64 `json:"total_rewards"`
	RewardsClaimed    int64 `json:"rewards_claimed"`
	TotalAchievements int64 `json:"total_achievements"`
	UnlockedBadges    int64 `json:"unlocked_achievements"`
}

type StatsService struct {
	DB            *gorm.DB
	Quests        *questService.QuestService
	Achievements  *achievementService.AchievementService
	Rewards       *rewardService.RewardService
	Notifications *notificationService.NotificationService
	Analytics     analytics.Recorder
	Cache         *cache.Store
}

func NewStatsService(
	db *gorm.DB,
	quests *questService.QuestService,
	achievements *achievementService.AchievementService,
	rewards *rewardService.RewardService,
	notifications *notificationService.NotificationService,
	recorder analytics.Recorder,
	c *cache.Store,
) *StatsService {
	if recorder == nil {
		recorder = analytics.Noop{}
	}
	return &StatsService{
		DB:            db,
		Quests:        quests,
		Achievements:  achievements,
		Rewards:       rewards,
		Notifications: notifications,
		Analytics:     recorder,
		Cache:         c,
	}
}

/* ===============================
   User stats
=================================*/

// GetUserStats di-cache per user; invalidasi dilakukan oleh setiap mutasi (cache.InvalidateUser).
func (s *StatsService) GetUserStats(ctx context.Context, userID uuid.UUID) (*UserStats, error) {
	return cache.GetOrLoad(s.Cache, cache.UserKey(userID, "stats"), func() (*UserStats, error) {
		return s.computeUserStats(ctx, userID)
	})
}

func (s *StatsService) computeUserStats(ctx context.Context, userID uuid.UUID) (*UserStats, error) {
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

	counts, err := s.Quests.StatusCounts(ctx, userID)
	if err != nil {
		return nil, err
	}
	achievements, err := s.Achievements.CountForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	claimed, err := s.Rewards.CountClaimed(ctx, userID)
	if err != nil {
		return nil, err
	}

	st := &UserStats{
		UserID:            userID,
		Level:             u.Level,
		ExperiencePoints:  u.ExperiencePoints,
		LevelProgress:     leveling.NextLevelProgress(u.ExperiencePoints),
		ActiveQuests:      counts[questModel.QuestStatusActive],
		CompletedQuests:   counts[questModel.QuestStatusCompleted],
		ExpiredQuests:     counts[questModel.QuestStatusExpired],
		AchievementsCount: achievements,
		RewardsClaimed:    claimed,
		Analytics:         s.analyticsData(ctx, userID),
	}
	st.TotalQuests = st.ActiveQuests + st.CompletedQuests + st.ExpiredQuests
	return st, nil
}

// analyticsData tidak pernah gagal: error collaborator => data kosong.
func (s *StatsService) analyticsData(ctx context.Context, userID uuid.UUID) *analytics.Data {
	d, err := s.Analytics.GetAnalyticsData(ctx, userID)
	if err != nil || d == nil {
		if err != nil {
			log.Printf("[WARN] analytics data for user %s unavailable: %v", userID, err)
		}
		return analytics.EmptyData()
	}
	return d
}

// SyncAnalytics mengirim snapshot statistik user ke layanan analytics (best-effort).
func (s *StatsService) SyncAnalytics(ctx context.Context, userID uuid.UUID) error {
	st, err := s.GetUserStats(ctx, userID)
	if err != nil {
		return err
	}
	return s.Analytics.UpdateUserStatistics(ctx, userID, analytics.UserStatistics{
		TotalQuests:       st.TotalQuests,
		CompletedQuests:   st.CompletedQuests,
		ActiveQuests:      st.ActiveQuests,
		ExpiredQuests:     st.ExpiredQuests,
		ExperiencePoints:  st.ExperiencePoints,
		Level:             st.Level,
		AchievementsCount: st.AchievementsCount,
	})
}

/* ===============================
   Dashboard
=================================*/

func (s *StatsService) GetDashboard(ctx context.Context, userID uuid.UUID) (*Dashboard, error) {
	var out Dashboard
	today := s.Quests.Today()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		st, err := s.GetUserStats(gctx, userID)
		out.Stats = st
		return err
	})
	g.Go(func() error {
		rows, _, err := s.Quests.GetUserQuests(gctx, userID, questService.QuestFilter{
			Status: questModel.QuestStatusActive,
			Limit:  50,
		})
		out.ActiveQuests = rows
		return err
	})
	g.Go(func() error {
		rows, err := s.Quests.GetQuestsReadyForCheckIn(gctx, userID, today)
		out.ReadyForCheckIn = rows
		return err
	})
	g.Go(func() error {
		rows, _, err := s.Notifications.List(gctx, userID, notificationService.ListFilter{Limit: recentNotificationLimit})
		out.RecentNotifications = rows
		return err
	})
	g.Go(func() error {
		n, err := s.Notifications.UnreadCount(gctx, userID)
		out.UnreadCount = n
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetAdminDashboard: agregat global, setiap hitungan jalan paralel.
func (s *StatsService) GetAdminDashboard(ctx context.Context) (*AdminDashboard, error) {
	var out AdminDashboard
	g, gctx := errgroup.WithContext(ctx)

	count := func(dst *int64, m any, where string, args ...any) {
		g.Go(func() error {
			q := s.DB.WithContext(gctx).Model(m)
			if where != "" {
				q = q.Where(where, args...)
			}
			return q.Count(dst).Error
		})
	}

	count(&out.TotalUsers, &userModel.UserModel{}, "")
	count(&out.TotalQuests, &questModel.QuestModel{}, "")
	count(&out.ActiveQuests, &questModel.QuestModel{}, "quest_status = ?", questModel.QuestStatusActive)
	count(&out.CompletedQuests, &questModel.QuestModel{}, "quest_status = ?", questModel.QuestStatusCompleted)
	count(&out.ExpiredQuests, &questModel.QuestModel{}, "quest_status = ?", questModel.QuestStatusExpired)
	count(&out.TotalCheckIns, &questModel.CheckInModel{}, "")
	count(&out.TotalRewards, &rewardModel.RewardModel{}, "")
	count(&out.RewardsClaimed, &rewardModel.UserRewardModel{}, "")
	count(&out.TotalAchievements, &achievementModel.AchievementModel{}, "")
	count(&out.UnlockedBadges, &achievementModel.UserAchievementModel{}, "")

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}
