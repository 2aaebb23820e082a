package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"questku_backend/internals/databases/testdb"
	"questku_backend/internals/features/analytics"
	achModel "questku_backend/internals/features/gamification/achievements/model"
	notificationModel "questku_backend/internals/features/home/notifications/model"
	notificationService "questku_backend/internals/features/home/notifications/service"
	"questku_backend/internals/features/progress/leveling"
	"questku_backend/internals/features/quests/quest/model"
	userModel "questku_backend/internals/features/users/user/model"
	"questku_backend/internals/helpers/apperror"
	"questku_backend/internals/helpers/cache"
	"questku_backend/internals/helpers/dbtime"
)

/* ===============================
   Fakes
=================================*/

type fakeNotifier struct {
	mu        sync.Mutex
	completed []uuid.UUID
	expired   []uuid.UUID
	fail      bool
}

func (f *fakeNotifier) QuestCompleted(_ context.Context, _, questID uuid.UUID, _ string, _ int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.completed = append(f.completed, questID)
	if f.fail {
		return errors.New("notification sink down")
	}
	return nil
}

func (f *fakeNotifier) QuestExpired(_ context.Context, _, questID uuid.UUID, _ string, _ time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.expired = append(f.expired, questID)
	if f.fail {
		return errors.New("notification sink down")
	}
	return nil
}

type fakeAchievements struct {
	calls int
	panic bool
}

func (f *fakeAchievements) CheckAndAward(context.Context, uuid.UUID) ([]achModel.AchievementModel, error) {
	f.calls++
	if f.panic {
		panic("achievement evaluator exploded")
	}
	return nil, nil
}

type fakeRecorder struct {
	analytics.Noop
	completions []int64
	fail        bool
}

func (f *fakeRecorder) RecordQuestCompletion(_ context.Context, _, _ uuid.UUID, xp int64) error {
	f.completions = append(f.completions, xp)
	if f.fail {
		return errors.New("analytics unreachable")
	}
	return nil
}

type fixture struct {
	db       *gorm.DB
	svc      *QuestService
	notifier *fakeNotifier
	achieve  *fakeAchievements
	recorder *fakeRecorder
	user     *userModel.UserModel
}

// Senin, 4 Maret 2024.
var monday = time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

func day(offset int) time.Time { return monday.AddDate(0, 0, offset) }

// at memindahkan jam service ke pukul 10:00 pada day(offset).
func (f *fixture) at(offset int) {
	f.svc.Now = func() time.Time { return day(offset).Add(10 * time.Hour) }
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testdb.New(t)
	f := &fixture{
		db:       db,
		notifier: &fakeNotifier{},
		achieve:  &fakeAchievements{},
		recorder: &fakeRecorder{},
		user:     testdb.CreateUser(t, db, "alice"),
	}
	f.svc = NewQuestService(db, f.notifier, f.achieve, f.recorder, cache.New(32, time.Minute))
	f.svc.Now = func() time.Time { return monday.Add(10 * time.Hour) }
	return f
}

func (f *fixture) quest(t *testing.T, typ model.QuestType, reward int64, goal int, start, end time.Time) *model.QuestModel {
	t.Helper()
	q, err := f.svc.CreateQuest(context.Background(), f.user.ID, CreateQuestInput{
		Title:            "Read a chapter",
		Type:             typ,
		StartDate:        start,
		EndDate:          end,
		ExperienceReward: reward,
		CheckInGoal:      goal,
	})
	require.NoError(t, err)
	return q
}

func (f *fixture) reloadUser(t *testing.T) userModel.UserModel {
	t.Helper()
	var u userModel.UserModel
	require.NoError(t, f.db.Where("id = ?", f.user.ID).First(&u).Error)
	return u
}

func (f *fixture) reloadQuest(t *testing.T, id uuid.UUID) model.QuestModel {
	t.Helper()
	var q model.QuestModel
	require.NoError(t, f.db.Where("quest_id = ?", id).First(&q).Error)
	return q
}

/* ===============================
   Create
=================================*/

func TestCreateQuestValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	base := CreateQuestInput{
		Title: "Morning run", Type: model.QuestTypeDaily,
		StartDate: day(0), EndDate: day(6), ExperienceReward: 70, CheckInGoal: 7,
	}

	cases := map[string]func(in *CreateQuestInput){
		"short title":   func(in *CreateQuestInput) { in.Title = "ab" },
		"unknown type":  func(in *CreateQuestInput) { in.Type = "MONTHLY" },
		"zero reward":   func(in *CreateQuestInput) { in.ExperienceReward = 0 },
		"zero goal":     func(in *CreateQuestInput) { in.CheckInGoal = 0 },
		"end before":    func(in *CreateQuestInput) { in.EndDate = day(-1) },
		"missing dates": func(in *CreateQuestInput) { in.StartDate = time.Time{} },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := base
			mutate(&in)
			_, err := f.svc.CreateQuest(ctx, f.user.ID, in)
			assert.True(t, errors.Is(err, apperror.ErrInvalidArgument), "got %v", err)
		})
	}

	_, err := f.svc.CreateQuest(ctx, uuid.New(), base)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))

	q, err := f.svc.CreateQuest(ctx, f.user.ID, base)
	require.NoError(t, err)
	assert.Equal(t, model.QuestStatusActive, q.QuestStatus)

	_, p, err := f.svc.GetQuest(ctx, q.QuestID, f.user.ID, false)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Zero(t, p.QuestProgressPercentage)
}

/* ===============================
   Eligibility
=================================*/

func TestPeriodKey(t *testing.T) {
	assert.Equal(t, "2024-03-04", PeriodKey(model.QuestTypeDaily, monday))
	assert.Equal(t, "2024-W10", PeriodKey(model.QuestTypeWeekly, monday))
	assert.Equal(t, "2024-W10", PeriodKey(model.QuestTypeWeekly, day(6)))
	assert.Equal(t, "2024-W11", PeriodKey(model.QuestTypeWeekly, day(7)))
	// 29 Des 2025 masuk minggu ISO 1 tahun 2026
	assert.Equal(t, "2026-W01", PeriodKey(model.QuestTypeWeekly, time.Date(2025, 12, 29, 0, 0, 0, 0, time.UTC)))
	assert.Empty(t, PeriodKey("MONTHLY", monday))
}

func TestCanCheckInRules(t *testing.T) {
	f := newFixture(t)
	q := f.quest(t, model.QuestTypeDaily, 100, 4, day(0), day(10))

	ok, err := CanCheckIn(f.db, q, f.user.ID, day(0))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = CanCheckIn(f.db, q, uuid.New(), day(0))
	require.NoError(t, err)
	assert.False(t, ok, "not the owner")

	unknown := *q
	unknown.QuestType = "MONTHLY"
	ok, err = CanCheckIn(f.db, &unknown, f.user.ID, day(0))
	require.NoError(t, err)
	assert.False(t, ok, "unknown type")

	done := *q
	done.QuestStatus = model.QuestStatusCompleted
	ok, err = CanCheckIn(f.db, &done, f.user.ID, day(0))
	require.NoError(t, err)
	assert.False(t, ok, "not active")
}

/* ===============================
   Check-in
=================================*/

func TestDailyQuestScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	q := f.quest(t, model.QuestTypeDaily, 100, 4, day(0), day(10))

	for i := 0; i < 4; i++ {
		f.at(i)
		res, err := f.svc.CheckIn(ctx, q.QuestID, f.user.ID, day(i))
		require.NoError(t, err, "check-in %d", i)
		assert.Equal(t, int64(25), res.CheckIn.CheckInExperienceAwarded)
		assert.Equal(t, (i+1)*25, res.Progress.QuestProgressPercentage)
		assert.Equal(t, i == 3, res.Completed)
	}

	got := f.reloadQuest(t, q.QuestID)
	assert.Equal(t, model.QuestStatusCompleted, got.QuestStatus)
	assert.NotNil(t, got.QuestCompletedAt)

	_, p, err := f.svc.GetQuest(ctx, q.QuestID, f.user.ID, false)
	require.NoError(t, err)
	assert.Equal(t, 100, p.QuestProgressPercentage)
	assert.Equal(t, 4, p.QuestProgressCheckInCount)

	u := f.reloadUser(t)
	assert.Equal(t, int64(100), u.ExperiencePoints)
	assert.Equal(t, leveling.LevelFor(100), u.Level)

	// side effects: completion sekali, achievement dievaluasi setiap check-in
	assert.Equal(t, []uuid.UUID{q.QuestID}, f.notifier.completed)
	assert.Equal(t, []int64{100}, f.recorder.completions)
	assert.Equal(t, 4, f.achieve.calls)

	// quest COMPLETED menolak check-in berikutnya
	f.at(5)
	_, err = f.svc.CheckIn(ctx, q.QuestID, f.user.ID, day(5))
	assert.True(t, errors.Is(err, apperror.ErrInvalidState), "got %v", err)
}

func TestDailyDuplicateSameDate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	q := f.quest(t, model.QuestTypeDaily, 100, 4, day(0), day(10))
	f.at(1)

	_, err := f.svc.CheckIn(ctx, q.QuestID, f.user.ID, day(1))
	require.NoError(t, err)

	_, err = f.svc.CheckIn(ctx, q.QuestID, f.user.ID, day(1).Add(15*time.Hour))
	assert.True(t, errors.Is(err, apperror.ErrDuplicateCheckIn), "got %v", err)
	assert.Equal(t, int64(25), f.reloadUser(t).ExperiencePoints)
}

func TestWeeklyQuestScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	q := f.quest(t, model.QuestTypeWeekly, 90, 3, day(0), day(27))

	_, err := f.svc.CheckIn(ctx, q.QuestID, f.user.ID, monday)
	require.NoError(t, err)

	// Sabtu di minggu ISO yang sama
	f.at(5)
	_, err = f.svc.CheckIn(ctx, q.QuestID, f.user.ID, day(5))
	assert.True(t, errors.Is(err, apperror.ErrDuplicateCheckIn), "got %v", err)

	// Senin berikutnya: minggu ISO baru
	f.at(7)
	res, err := f.svc.CheckIn(ctx, q.QuestID, f.user.ID, day(7))
	require.NoError(t, err)
	assert.Equal(t, "2024-W11", res.CheckIn.CheckInPeriodKey)
	assert.Equal(t, 66, res.Progress.QuestProgressPercentage)
	assert.Equal(t, int64(60), f.reloadUser(t).ExperiencePoints)
}

func TestCheckInPreconditions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	q := f.quest(t, model.QuestTypeDaily, 100, 4, day(0), day(3))
	bob := testdb.CreateUser(t, f.db, "bob")

	_, err := f.svc.CheckIn(ctx, uuid.New(), f.user.ID, day(0))
	assert.True(t, errors.Is(err, apperror.ErrNotFound))

	_, err = f.svc.CheckIn(ctx, q.QuestID, bob.ID, day(0))
	assert.True(t, errors.Is(err, apperror.ErrUnauthorized))

	_, err = f.svc.CheckIn(ctx, q.QuestID, f.user.ID, day(-1))
	assert.True(t, errors.Is(err, apperror.ErrInvalidArgument))
	f.at(4)
	_, err = f.svc.CheckIn(ctx, q.QuestID, f.user.ID, day(4))
	assert.True(t, errors.Is(err, apperror.ErrInvalidArgument))

	assert.Zero(t, f.reloadUser(t).ExperiencePoints)
	assert.Zero(t, f.achieve.calls)
}

func TestCheckInRejectsFutureDates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	q := f.quest(t, model.QuestTypeDaily, 100, 4, day(0), day(10))

	// satu request per hari berikutnya tidak boleh menyelesaikan quest lebih awal
	for i := 1; i <= 4; i++ {
		_, err := f.svc.CheckIn(ctx, q.QuestID, f.user.ID, day(i))
		assert.True(t, errors.Is(err, apperror.ErrInvalidArgument), "day %d: got %v", i, err)
	}
	assert.Equal(t, model.QuestStatusActive, f.reloadQuest(t, q.QuestID).QuestStatus)
	assert.Zero(t, f.reloadUser(t).ExperiencePoints)
	assert.Zero(t, f.achieve.calls)

	// hari ini dan hari yang sudah lewat tetap boleh
	f.at(2)
	_, err := f.svc.CheckIn(ctx, q.QuestID, f.user.ID, day(2))
	require.NoError(t, err)
	_, err = f.svc.CheckIn(ctx, q.QuestID, f.user.ID, day(1))
	require.NoError(t, err)
	assert.Equal(t, int64(50), f.reloadUser(t).ExperiencePoints)
}

func TestConcurrentCheckInsSucceedOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	q := f.quest(t, model.QuestTypeDaily, 100, 4, day(0), day(10))

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		dupes     int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.CheckIn(ctx, q.QuestID, f.user.ID, day(0))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, apperror.ErrDuplicateCheckIn):
				dupes++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, workers-1, dupes)
	assert.Equal(t, int64(25), f.reloadUser(t).ExperiencePoints)

	var rows, logs int64
	require.NoError(t, f.db.Model(&model.CheckInModel{}).Where("check_in_quest_id = ?", q.QuestID).Count(&rows).Error)
	require.NoError(t, f.db.Table("experience_logs").Count(&logs).Error)
	assert.Equal(t, int64(1), rows)
	assert.Equal(t, int64(1), logs)
}

func TestRemainderXPIsNotPaid(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	q := f.quest(t, model.QuestTypeDaily, 10, 3, day(0), day(5))

	var sum int64
	for i := 0; i < 3; i++ {
		f.at(i)
		res, err := f.svc.CheckIn(ctx, q.QuestID, f.user.ID, day(i))
		require.NoError(t, err)
		sum += res.CheckIn.CheckInExperienceAwarded
	}
	assert.Equal(t, int64(9), sum)
	assert.LessOrEqual(t, sum, q.QuestExperienceReward)
	assert.Equal(t, int64(9), f.reloadUser(t).ExperiencePoints)
}

func TestUniqueViolationRollsBackExperience(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	q := f.quest(t, model.QuestTypeDaily, 100, 4, day(0), day(10))

	// baris "bocor" dengan period key yang bentrok tapi tanggal lain: pre-filter lolos,
	// unique index (quest, user, period_key) yang menolak.
	stale := model.CheckInModel{
		CheckInQuestID:   q.QuestID,
		CheckInUserID:    f.user.ID,
		CheckInDate:      dbtime.ToDate(day(9)),
		CheckInPeriodKey: PeriodKey(model.QuestTypeDaily, day(2)),
	}
	require.NoError(t, f.db.Create(&stale).Error)

	f.at(2)
	_, err := f.svc.CheckIn(ctx, q.QuestID, f.user.ID, day(2))
	assert.True(t, errors.Is(err, apperror.ErrDuplicateCheckIn), "got %v", err)

	u := f.reloadUser(t)
	assert.Zero(t, u.ExperiencePoints, "XP award must roll back with the failed insert")

	var logs int64
	require.NoError(t, f.db.Table("experience_logs").Count(&logs).Error)
	assert.Zero(t, logs)
}

func TestSideEffectFailuresDoNotFailCheckIn(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.notifier.fail = true
	f.recorder.fail = true
	f.achieve.panic = true
	q := f.quest(t, model.QuestTypeDaily, 20, 1, day(0), day(3))

	res, err := f.svc.CheckIn(ctx, q.QuestID, f.user.ID, day(0))
	require.NoError(t, err)
	assert.True(t, res.Completed)
	assert.Equal(t, model.QuestStatusCompleted, f.reloadQuest(t, q.QuestID).QuestStatus)

	// semua side effect tetap dicoba walau yang lain gagal
	assert.Len(t, f.notifier.completed, 1)
	assert.Len(t, f.recorder.completions, 1)
}

func TestQuickCheckInUsesToday(t *testing.T) {
	f := newFixture(t)
	q := f.quest(t, model.QuestTypeDaily, 100, 4, day(-3), day(3))

	res, err := f.svc.QuickCheckIn(context.Background(), q.QuestID, f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, monday, res.CheckIn.Date())
}

func TestGetCheckInsAndReadyList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	daily := f.quest(t, model.QuestTypeDaily, 100, 4, day(0), day(10))
	weekly := f.quest(t, model.QuestTypeWeekly, 100, 4, day(0), day(27))
	future := f.quest(t, model.QuestTypeDaily, 100, 4, day(20), day(25))

	_, err := f.svc.CheckIn(ctx, daily.QuestID, f.user.ID, day(0))
	require.NoError(t, err)
	f.at(1)
	_, err = f.svc.CheckIn(ctx, daily.QuestID, f.user.ID, day(1))
	require.NoError(t, err)
	_, err = f.svc.CheckIn(ctx, weekly.QuestID, f.user.ID, day(0))
	require.NoError(t, err)

	rows, err := f.svc.GetCheckIns(ctx, daily.QuestID, f.user.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, day(1), rows[0].Date())

	_, err = f.svc.GetCheckIns(ctx, daily.QuestID, uuid.New())
	assert.True(t, errors.Is(err, apperror.ErrUnauthorized))

	// hari Rabu: daily masih bisa, weekly sudah di minggu ini, future belum mulai
	ready, err := f.svc.GetQuestsReadyForCheckIn(ctx, f.user.ID, day(2))
	require.NoError(t, err)
	require.Len(t, ready, 1)
	assert.Equal(t, daily.QuestID, ready[0].QuestID)
	assert.NotEqual(t, future.QuestID, ready[0].QuestID)
}

/* ===============================
   Complete / Expire / Delete
=================================*/

func TestCompleteExactlyOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	q := f.quest(t, model.QuestTypeDaily, 100, 4, day(0), day(10))
	bob := testdb.CreateUser(t, f.db, "bob")

	_, err := f.svc.Complete(ctx, q.QuestID, bob.ID)
	assert.True(t, errors.Is(err, apperror.ErrUnauthorized))

	done, err := f.svc.Complete(ctx, q.QuestID, f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, model.QuestStatusCompleted, done.QuestStatus)

	_, err = f.svc.Complete(ctx, q.QuestID, f.user.ID)
	assert.True(t, errors.Is(err, apperror.ErrInvalidState))

	assert.Len(t, f.notifier.completed, 1)
	assert.Equal(t, []int64{100}, f.recorder.completions)
}

func TestExpireOnlyTouchesEligibleQuests(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	overdue := f.quest(t, model.QuestTypeDaily, 100, 4, day(-10), day(-1))
	endsToday := f.quest(t, model.QuestTypeDaily, 100, 4, day(-10), day(0))
	completed := f.quest(t, model.QuestTypeDaily, 100, 4, day(-10), day(-1))
	_, err := f.svc.Complete(ctx, completed.QuestID, f.user.ID)
	require.NoError(t, err)

	candidates, err := f.svc.FindExpiredQuests(ctx, f.svc.Today())
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, overdue.QuestID, candidates[0].QuestID)

	// semua quest diberikan, Expire tetap menyaring sendiri
	expired, err := f.svc.Expire(ctx, []model.QuestModel{*overdue, *endsToday, *completed})
	require.NoError(t, err)
	require.Len(t, expired, 1)
	assert.Equal(t, overdue.QuestID, expired[0].QuestID)

	assert.Equal(t, model.QuestStatusExpired, f.reloadQuest(t, overdue.QuestID).QuestStatus)
	assert.Equal(t, model.QuestStatusActive, f.reloadQuest(t, endsToday.QuestID).QuestStatus)
	assert.Equal(t, model.QuestStatusCompleted, f.reloadQuest(t, completed.QuestID).QuestStatus)
	assert.Equal(t, []uuid.UUID{overdue.QuestID}, f.notifier.expired)

	// idempotent
	again, err := f.svc.Expire(ctx, []model.QuestModel{*overdue})
	require.NoError(t, err)
	assert.Empty(t, again)
	assert.Len(t, f.notifier.expired, 1)
}

func TestDeleteQuestKeepsNotificationText(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	q := f.quest(t, model.QuestTypeDaily, 100, 4, day(0), day(10))
	_, err := f.svc.CheckIn(ctx, q.QuestID, f.user.ID, day(0))
	require.NoError(t, err)

	notifs := notificationService.NewNotificationService(f.db)
	require.NoError(t, notifs.QuestReminder(ctx, f.user.ID, q.QuestID, q.QuestTitle, 3, q.EndDate()))

	bob := testdb.CreateUser(t, f.db, "bob")
	err = f.svc.DeleteQuest(ctx, q.QuestID, bob.ID, false)
	assert.True(t, errors.Is(err, apperror.ErrUnauthorized))

	require.NoError(t, f.svc.DeleteQuest(ctx, q.QuestID, f.user.ID, false))

	var checkIns, progress int64
	require.NoError(t, f.db.Model(&model.CheckInModel{}).Where("check_in_quest_id = ?", q.QuestID).Count(&checkIns).Error)
	require.NoError(t, f.db.Model(&model.QuestProgressModel{}).Where("quest_progress_quest_id = ?", q.QuestID).Count(&progress).Error)
	assert.Zero(t, checkIns)
	assert.Zero(t, progress)

	var n notificationModel.NotificationModel
	require.NoError(t, f.db.Where("notification_user_id = ?", f.user.ID).First(&n).Error)
	assert.Nil(t, n.NotificationQuestID)
	assert.Contains(t, n.NotificationMessage, q.QuestTitle)

	_, _, err = f.svc.GetQuest(ctx, q.QuestID, f.user.ID, false)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))

	// XP yang sudah diberikan tidak ditarik
	assert.Equal(t, int64(25), f.reloadUser(t).ExperiencePoints)
}

func TestAdminCanDeleteAnyQuest(t *testing.T) {
	f := newFixture(t)
	q := f.quest(t, model.QuestTypeDaily, 100, 4, day(0), day(10))
	admin := testdb.CreateUser(t, f.db, "root")
	require.NoError(t, f.svc.DeleteQuest(context.Background(), q.QuestID, admin.ID, true))
}

func TestListAndStatusCounts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.quest(t, model.QuestTypeDaily, 100, 4, day(0), day(10))
	w := f.quest(t, model.QuestTypeWeekly, 100, 4, day(0), day(10))
	_, err := f.svc.Complete(ctx, w.QuestID, f.user.ID)
	require.NoError(t, err)

	rows, total, err := f.svc.GetUserQuests(ctx, f.user.ID, QuestFilter{Type: model.QuestTypeWeekly})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, w.QuestID, rows[0].QuestID)

	_, total, err = f.svc.GetAllQuests(ctx, QuestFilter{Status: model.QuestStatusActive})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	counts, err := f.svc.StatusCounts(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts[model.QuestStatusActive])
	assert.Equal(t, int64(1), counts[model.QuestStatusCompleted])
	assert.Zero(t, counts[model.QuestStatusExpired])
}
