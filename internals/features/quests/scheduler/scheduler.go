// Package scheduler menjalankan job terjadwal quest: expiration sweep, reminder, weekly summary.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"questku_backend/internals/configs"
	questService "questku_backend/internals/features/quests/quest/service"
)

const defaultJobTimeout = 4 * time.Minute

// Notifier: subset NotificationService yang dipakai job reminder.
type Notifier interface {
	QuestReminder(ctx context.Context, userID, questID uuid.UUID, title string, daysLeft int, endDate time.Time) error
	QuestExpiringSoon(ctx context.Context, userID, questID uuid.UUID, title string, endDate time.Time) error
	CheckInReminder(ctx context.Context, userID, questID uuid.UUID, title string, weekly bool, endDate time.Time) error
	WeeklySummary(ctx context.Context, userID, questID uuid.UUID, title string, done, goal, pct int, endDate time.Time) error
}

// StatsSyncer mendorong snapshot statistik user ke analytics.
type StatsSyncer interface {
	SyncAnalytics(ctx context.Context, userID uuid.UUID) error
}

type extraJob struct {
	name string
	spec string
	fn   func()
}

type Scheduler struct {
	Quests     *questService.QuestService
	Notifier   Notifier
	Stats      StatsSyncer
	JobTimeout time.Duration

	specs configs.SchedulerSpecs
	cron  *cron.Cron
	extra []extraJob
}

func New(quests *questService.QuestService, notifier Notifier, stats StatsSyncer, specs configs.SchedulerSpecs, loc *time.Location) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	c := cron.New(
		cron.WithLocation(loc),
		cron.WithChain(cron.Recover(cron.DefaultLogger), cron.SkipIfStillRunning(cron.DefaultLogger)),
	)
	return &Scheduler{
		Quests:     quests,
		Notifier:   notifier,
		Stats:      stats,
		JobTimeout: defaultJobTimeout,
		specs:      specs,
		cron:       c,
	}
}

// AddJob mendaftarkan job tambahan (misal cleanup token blacklist) sebelum Start.
func (s *Scheduler) AddJob(name, spec string, fn func()) {
	s.extra = append(s.extra, extraJob{name: name, spec: spec, fn: fn})
}

// wrap memberi timeout per eksekusi dan logging hasil.
func (s *Scheduler) wrap(name string, run func(ctx context.Context) (int, error)) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.JobTimeout)
		defer cancel()

		start := time.Now()
		n, err := run(ctx)
		if err != nil {
			log.Printf("[SCHEDULER] %s failed after %s: %v", name, time.Since(start), err)
			return
		}
		log.Printf("[SCHEDULER] %s done in %s (%d item)", name, time.Since(start), n)
	}
}

func (s *Scheduler) register() error {
	jobs := []struct {
		name string
		spec string
		fn   func()
	}{
		{"expiration-daily", s.specs.ExpirationDaily, s.wrap("expiration-daily", s.RunExpirationSweep)},
		{"expiration-hourly", s.specs.ExpirationHourly, s.wrap("expiration-hourly", s.RunExpirationSweep)},
		{"morning-reminder", s.specs.MorningReminder, s.wrap("morning-reminder", s.RunMorningReminders)},
		{"midday-reminder", s.specs.MiddayReminder, s.wrap("midday-reminder", s.RunMiddayReminders)},
		{"evening-reminder", s.specs.EveningReminder, s.wrap("evening-reminder", s.RunEveningReminders)},
		{"weekly-summary", s.specs.WeeklySummary, s.wrap("weekly-summary", s.RunWeeklySummary)},
	}
	for _, j := range jobs {
		if _, err := s.cron.AddFunc(j.spec, j.fn); err != nil {
			return fmt.Errorf("schedule %s (%q): %w", j.name, j.spec, err)
		}
	}
	for _, j := range s.extra {
		if _, err := s.cron.AddFunc(j.spec, j.fn); err != nil {
			return fmt.Errorf("schedule %s (%q): %w", j.name, j.spec, err)
		}
	}
	return nil
}

// Start mendaftarkan semua job lalu menjalankan cron di goroutine sendiri.
func (s *Scheduler) Start() error {
	if err := s.register(); err != nil {
		return err
	}
	s.cron.Start()
	log.Printf("[SCHEDULER] started with %d job(s)", len(s.cron.Entries()))
	return nil
}

// Stop menghentikan cron; context selesai saat job yang sedang jalan rampung.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}
