package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"questku_backend/internals/databases/testdb"
	"questku_backend/internals/features/analytics"
	achievementModel "questku_backend/internals/features/gamification/achievements/model"
	achievementService "questku_backend/internals/features/gamification/achievements/service"
	rewardService "questku_backend/internals/features/gamification/rewards/service"
	notificationModel "questku_backend/internals/features/home/notifications/model"
	notificationService "questku_backend/internals/features/home/notifications/service"
	pointModel "questku_backend/internals/features/progress/points/model"
	questModel "questku_backend/internals/features/quests/quest/model"
	questService "questku_backend/internals/features/quests/quest/service"
	"questku_backend/internals/features/users/user/model"
	"questku_backend/internals/helpers/apperror"
	"questku_backend/internals/helpers/cache"
	achievementSeed "questku_backend/internals/seeds/gamification/achievements"
)

type deleteRecorder struct {
	analytics.Noop
	deleted []uuid.UUID
	fail    bool
}

func (r *deleteRecorder) DeleteAnalyticsData(_ context.Context, id uuid.UUID) error {
	r.deleted = append(r.deleted, id)
	if r.fail {
		return errors.New("analytics down")
	}
	return nil
}

func newUserService(t *testing.T) (*UserService, *gorm.DB, *deleteRecorder) {
	t.Helper()
	db := testdb.New(t)
	rec := &deleteRecorder{}
	return NewUserService(db, rec, cache.New(16, time.Minute)), db, rec
}

func TestProfileIncludesNextLevel(t *testing.T) {
	s, db, _ := newUserService(t)
	u := testdb.CreateUser(t, db, "alice")
	require.NoError(t, db.Model(u).Updates(map[string]any{"user_experience_points": 150, "user_level": 2}).Error)

	p, err := s.Profile(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, p.Progress.Level)
	assert.Equal(t, int64(100), p.Progress.LevelFloorXP)
	assert.Equal(t, int64(400), p.Progress.NextLevelXP)

	_, err = s.Profile(context.Background(), uuid.New())
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestUpdateEmail(t *testing.T) {
	s, db, _ := newUserService(t)
	ctx := context.Background()
	alice := testdb.CreateUser(t, db, "alice")
	testdb.CreateUser(t, db, "bob")

	u, err := s.UpdateEmail(ctx, alice.ID, "  Alice.New@Example.com ")
	require.NoError(t, err)
	assert.Equal(t, "alice.new@example.com", u.Email)

	_, err = s.UpdateEmail(ctx, alice.ID, "bob@example.com")
	assert.True(t, errors.Is(err, apperror.ErrConflict))

	_, err = s.UpdateEmail(ctx, alice.ID, "not-an-email")
	assert.True(t, errors.Is(err, apperror.ErrInvalidArgument))

	// email sendiri bukan konflik
	_, err = s.UpdateEmail(ctx, alice.ID, "alice.new@example.com")
	assert.NoError(t, err)
}

func TestListAndRoleChanges(t *testing.T) {
	s, db, _ := newUserService(t)
	ctx := context.Background()
	admin := testdb.CreateUser(t, db, "root")
	carol := testdb.CreateUser(t, db, "carol")
	testdb.CreateUser(t, db, "carl")

	rows, total, err := s.List(ctx, ListFilter{Query: "CAR", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, rows, 2)

	u, err := s.UpdateRole(ctx, admin.ID, carol.ID, "ADMIN")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, u.Role)

	_, total, err = s.List(ctx, ListFilter{Role: model.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	_, err = s.UpdateRole(ctx, admin.ID, carol.ID, "superuser")
	assert.True(t, errors.Is(err, apperror.ErrInvalidArgument))
	_, err = s.UpdateRole(ctx, carol.ID, carol.ID, "user")
	assert.True(t, errors.Is(err, apperror.ErrInvalidState))

	u, err = s.SetActive(ctx, admin.ID, carol.ID, false)
	require.NoError(t, err)
	assert.False(t, u.IsActive)
	_, err = s.SetActive(ctx, admin.ID, admin.ID, false)
	assert.True(t, errors.Is(err, apperror.ErrInvalidState))
}

func count(t *testing.T, db *gorm.DB, m any, where string, args ...any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(m).Where(where, args...).Count(&n).Error)
	return n
}

func TestDeleteCascades(t *testing.T) {
	s, db, rec := newUserService(t)
	ctx := context.Background()
	_, err := achievementSeed.SeedDefaultAchievements(db)
	require.NoError(t, err)

	admin := testdb.CreateUser(t, db, "root")
	dave := testdb.CreateUser(t, db, "dave")
	other := testdb.CreateUser(t, db, "erin")

	notes := notificationService.NewNotificationService(db)
	ach := achievementService.NewAchievementService(db, notes, s.Cache)
	quests := questService.NewQuestService(db, notes, ach, nil, s.Cache)
	monday := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	quests.Now = func() time.Time { return monday.Add(9 * time.Hour) }

	for _, u := range []*model.UserModel{dave, other} {
		q, err := quests.CreateQuest(ctx, u.ID, questService.CreateQuestInput{
			Title:            "Walk",
			Type:             questModel.QuestTypeDaily,
			StartDate:        monday,
			EndDate:          monday.AddDate(0, 0, 6),
			ExperienceReward: 100,
			CheckInGoal:      1,
		})
		require.NoError(t, err)
		_, err = quests.CheckIn(ctx, q.QuestID, u.ID, monday)
		require.NoError(t, err)
	}
	rewards := rewardService.NewRewardService(db, s.Cache)
	r, err := rewards.Create(ctx, rewardService.RewardInput{Name: "Sticker", RequiredLevel: 1})
	require.NoError(t, err)
	_, err = rewards.Claim(ctx, r.RewardID, dave.ID)
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, admin.ID, dave.ID))

	assert.Zero(t, count(t, db, &model.UserModel{}, "id = ?", dave.ID))
	assert.Zero(t, count(t, db, &questModel.QuestModel{}, "quest_user_id = ?", dave.ID))
	assert.Zero(t, count(t, db, &questModel.CheckInModel{}, "check_in_user_id = ?", dave.ID))
	assert.Zero(t, count(t, db, &notificationModel.NotificationModel{}, "notification_user_id = ?", dave.ID))
	assert.Zero(t, count(t, db, &achievementModel.UserAchievementModel{}, "user_achievement_user_id = ?", dave.ID))
	assert.Zero(t, count(t, db, &pointModel.ExperienceLog{}, "experience_log_user_id = ?", dave.ID))
	n, err := rewards.CountClaimed(ctx, dave.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, []uuid.UUID{dave.ID}, rec.deleted)

	// data user lain utuh
	assert.Equal(t, int64(1), count(t, db, &questModel.QuestModel{}, "quest_user_id = ?", other.ID))
	assert.Positive(t, count(t, db, &notificationModel.NotificationModel{}, "notification_user_id = ?", other.ID))

	assert.True(t, errors.Is(s.Delete(ctx, admin.ID, dave.ID), apperror.ErrNotFound))
	assert.True(t, errors.Is(s.Delete(ctx, admin.ID, admin.ID), apperror.ErrInvalidState))
}

func TestDeleteIgnoresAnalyticsFailure(t *testing.T) {
	s, db, rec := newUserService(t)
	rec.fail = true
	admin := testdb.CreateUser(t, db, "root")
	u := testdb.CreateUser(t, db, "frank")

	require.NoError(t, s.Delete(context.Background(), admin.ID, u.ID))
	assert.Len(t, rec.deleted, 1)
}
