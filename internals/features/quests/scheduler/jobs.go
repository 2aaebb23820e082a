package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"questku_backend/internals/features/quests/quest/model"
	"questku_backend/internals/helpers/dbtime"
)

// RunExpirationSweep: quest ACTIVE yang end date-nya sudah lewat jadi EXPIRED.
// Notifikasi expired dikirim oleh QuestService.Expire. Idempotent.
func (s *Scheduler) RunExpirationSweep(ctx context.Context) (int, error) {
	candidates, err := s.Quests.FindExpiredQuests(ctx, s.Quests.Today())
	if err != nil {
		return 0, fmt.Errorf("find expired quests: %w", err)
	}
	if len(candidates) == 0 {
		return 0, nil
	}
	expired, err := s.Quests.Expire(ctx, candidates)
	if err != nil {
		return 0, err
	}
	return len(expired), nil
}

// forEachActive menjalankan fn untuk tiap quest aktif hari ini. Gagal di satu quest
// hanya di-log; jumlah notifikasi terkirim dikembalikan.
func (s *Scheduler) forEachActive(ctx context.Context, job string, fn func(q *model.QuestModel, today time.Time, daysLeft int) (int, error)) (int, error) {
	today := s.Quests.Today()
	quests, err := s.Quests.ActiveQuests(ctx, today)
	if err != nil {
		return 0, fmt.Errorf("load active quests: %w", err)
	}

	sent := 0
	for i := range quests {
		if ctx.Err() != nil {
			return sent, ctx.Err()
		}
		q := &quests[i]
		daysLeft := dbtime.DaysBetween(today, q.EndDate())
		if daysLeft < 0 {
			continue
		}
		n, err := fn(q, today, daysLeft)
		if err != nil {
			log.Printf("[SCHEDULER] %s: quest %s: %v", job, q.QuestID, err)
		}
		sent += n
	}
	return sent, nil
}

// RunMorningReminders: reminder DAILY (WEEKLY hanya Senin) untuk quest yang masih bisa
// di-check-in, plus expiring-soon untuk quest yang berakhir besok.
func (s *Scheduler) RunMorningReminders(ctx context.Context) (int, error) {
	return s.forEachActive(ctx, "morning-reminder", func(q *model.QuestModel, today time.Time, daysLeft int) (int, error) {
		sent := 0
		remind := q.QuestType == model.QuestTypeDaily ||
			(q.QuestType == model.QuestTypeWeekly && today.Weekday() == time.Monday)
		if remind {
			ok, err := s.Quests.CanCheckIn(ctx, q, q.QuestUserID, today)
			if err != nil {
				return sent, err
			}
			if ok {
				if err := s.Notifier.QuestReminder(ctx, q.QuestUserID, q.QuestID, q.QuestTitle, daysLeft, q.EndDate()); err != nil {
					return sent, err
				}
				sent++
			}
		}
		if daysLeft == 1 {
			if err := s.Notifier.QuestExpiringSoon(ctx, q.QuestUserID, q.QuestID, q.QuestTitle, q.EndDate()); err != nil {
				return sent, err
			}
			sent++
		}
		return sent, nil
	})
}

// RunMiddayReminders: expiring-soon untuk quest yang berakhir 2-3 hari lagi.
func (s *Scheduler) RunMiddayReminders(ctx context.Context) (int, error) {
	return s.forEachActive(ctx, "midday-reminder", func(q *model.QuestModel, _ time.Time, daysLeft int) (int, error) {
		if daysLeft < 2 || daysLeft > 3 {
			return 0, nil
		}
		if err := s.Notifier.QuestExpiringSoon(ctx, q.QuestUserID, q.QuestID, q.QuestTitle, q.EndDate()); err != nil {
			return 0, err
		}
		return 1, nil
	})
}

// RunEveningReminders: DAILY yang belum check-in hari ini; WEEKLY di hari Minggu
// kalau belum check-in minggu ISO ini.
func (s *Scheduler) RunEveningReminders(ctx context.Context) (int, error) {
	return s.forEachActive(ctx, "evening-reminder", func(q *model.QuestModel, today time.Time, _ int) (int, error) {
		weekly := q.QuestType == model.QuestTypeWeekly
		if weekly && today.Weekday() != time.Sunday {
			return 0, nil
		}
		ok, err := s.Quests.CanCheckIn(ctx, q, q.QuestUserID, today)
		if err != nil || !ok {
			return 0, err
		}
		if err := s.Notifier.CheckInReminder(ctx, q.QuestUserID, q.QuestID, q.QuestTitle, weekly, q.EndDate()); err != nil {
			return 0, err
		}
		return 1, nil
	})
}

// RunWeeklySummary: ringkasan progres per quest aktif, lalu sinkron statistik ke analytics
// sekali per user.
func (s *Scheduler) RunWeeklySummary(ctx context.Context) (int, error) {
	users := map[uuid.UUID]struct{}{}
	sent, err := s.forEachActive(ctx, "weekly-summary", func(q *model.QuestModel, _ time.Time, _ int) (int, error) {
		users[q.QuestUserID] = struct{}{}

		done, err := s.Quests.CheckInsInRange(ctx, q, q.StartDate(), q.EndDate())
		if err != nil {
			return 0, err
		}
		goal := q.QuestCheckInGoal
		pct := 0
		if goal > 0 {
			pct = int(done * 100 / int64(goal))
		}
		if pct > 100 {
			pct = 100
		}
		if err := s.Notifier.WeeklySummary(ctx, q.QuestUserID, q.QuestID, q.QuestTitle, int(done), goal, pct, q.EndDate()); err != nil {
			return 0, err
		}
		return 1, nil
	})
	if err != nil {
		return sent, err
	}

	if s.Stats != nil {
		for id := range users {
			if err := s.Stats.SyncAnalytics(ctx, id); err != nil {
				log.Printf("[SCHEDULER] weekly-summary: analytics sync for %s: %v", id, err)
			}
		}
	}
	return sent, nil
}
