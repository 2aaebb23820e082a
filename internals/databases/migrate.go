package database

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	achievementModel "questku_backend/internals/features/gamification/achievements/model"
	rewardModel "questku_backend/internals/features/gamification/rewards/model"
	notificationModel "questku_backend/internals/features/home/notifications/model"
	pointModel "questku_backend/internals/features/progress/points/model"
	questModel "questku_backend/internals/features/quests/quest/model"
	authModel "questku_backend/internals/features/users/auth/model"
	userModel "questku_backend/internals/features/users/user/model"
)

// Models = semua tabel yang dikelola AutoMigrate, urut dari tabel induk.
func Models() []any {
	return []any{
		&userModel.UserModel{},
		&authModel.TokenBlacklist{},
		&pointModel.ExperienceLog{},
		&questModel.QuestModel{},
		&questModel.CheckInModel{},
		&questModel.QuestProgressModel{},
		&achievementModel.AchievementModel{},
		&achievementModel.UserAchievementModel{},
		&rewardModel.RewardModel{},
		&rewardModel.UserRewardModel{},
		&notificationModel.NotificationModel{},
	}
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	log.Println("[DB] schema migrated")
	return nil
}
