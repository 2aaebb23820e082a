package configs

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// SchedulerSpecs berisi cron expression untuk semua job terjadwal.
type SchedulerSpecs struct {
	ExpirationDaily  string `toml:"expiration_daily"`
	ExpirationHourly string `toml:"expiration_hourly"`
	MorningReminder  string `toml:"morning_reminder"`
	MiddayReminder   string `toml:"midday_reminder"`
	EveningReminder  string `toml:"evening_reminder"`
	WeeklySummary    string `toml:"weekly_summary"`
	TokenCleanup     string `toml:"token_cleanup"`
}

type schedulerFile struct {
	Scheduler SchedulerSpecs `toml:"scheduler"`
}

func DefaultSchedulerSpecs() SchedulerSpecs {
	return SchedulerSpecs{
		ExpirationDaily:  "0 0 * * *",
		ExpirationHourly: "0 * * * *",
		MorningReminder:  "0 9 * * *",
		MiddayReminder:   "0 14 * * *",
		EveningReminder:  "0 19 * * *",
		WeeklySummary:    "0 18 * * 0",
		TokenCleanup:     "30 * * * *",
	}
}

// LoadSchedulerSpecs membaca file TOML opsional. Field kosong tetap pakai default.
func LoadSchedulerSpecs(path string) (SchedulerSpecs, error) {
	specs := DefaultSchedulerSpecs()
	if path == "" {
		return specs, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Printf("[SCHEDULER] config %s not found, using defaults", path)
			return specs, nil
		}
		return specs, fmt.Errorf("read scheduler config: %w", err)
	}

	var f schedulerFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return specs, fmt.Errorf("parse scheduler config: %w", err)
	}

	merge := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	merge(&specs.ExpirationDaily, f.Scheduler.ExpirationDaily)
	merge(&specs.ExpirationHourly, f.Scheduler.ExpirationHourly)
	merge(&specs.MorningReminder, f.Scheduler.MorningReminder)
	merge(&specs.MiddayReminder, f.Scheduler.MiddayReminder)
	merge(&specs.EveningReminder, f.Scheduler.EveningReminder)
	merge(&specs.WeeklySummary, f.Scheduler.WeeklySummary)
	merge(&specs.TokenCleanup, f.Scheduler.TokenCleanup)
	return specs, nil
}
