package seeds

import (
	"log"

	"gorm.io/gorm"

	achievements "questku_backend/internals/seeds/gamification/achievements"
	users "questku_backend/internals/seeds/users/auth"
)

// RunAllSeeds: definisi achievement bawaan + user dari file seed (opsional).
func RunAllSeeds(db *gorm.DB, usersFile string) {
	if n, err := achievements.SeedDefaultAchievements(db); err != nil {
		log.Printf("❌ Seed achievements gagal: %v", err)
	} else {
		log.Printf("✅ Seed achievements: %d baru", n)
	}

	if usersFile == "" {
		return
	}
	if n, err := users.SeedUsersFromJSON(db, usersFile); err != nil {
		log.Printf("❌ Seed users gagal: %v", err)
	} else {
		log.Printf("✅ Seed users: %d baru", n)
	}
}
