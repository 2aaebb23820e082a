package achievements

import (
	_ "embed"
	"fmt"
	"log"

	"github.com/bytedance/sonic"
	"gorm.io/gorm"

	"questku_backend/internals/features/gamification/achievements/model"
)

//go:embed data_achievements.json
var defaultData []byte

type AchievementSeed struct {
	AchievementName             string                `json:"achievement_name"`
	AchievementDescription      string                `json:"achievement_description"`
	AchievementType             model.AchievementType `json:"achievement_type"`
	AchievementRequirementValue int64                 `json:"achievement_requirement_value"`
	AchievementIcon             string                `json:"achievement_icon"`
}

// SeedDefaultAchievements memasukkan definisi bawaan. Idempotent by nama.
func SeedDefaultAchievements(db *gorm.DB) (int, error) {
	return SeedAchievements(db, defaultData)
}

func SeedAchievements(db *gorm.DB, content []byte) (int, error) {
	var data []AchievementSeed
	if err := sonic.Unmarshal(content, &data); err != nil {
		return 0, fmt.Errorf("decode achievements seed: %w", err)
	}

	created := 0
	for _, item := range data {
		var count int64
		if err := db.Model(&model.AchievementModel{}).
			Where("achievement_name = ?", item.AchievementName).
			Count(&count).Error; err != nil {
			return created, err
		}
		if count > 0 {
			continue
		}

		record := model.AchievementModel{
			AchievementName:             item.AchievementName,
			AchievementDescription:      item.AchievementDescription,
			AchievementType:             item.AchievementType,
			AchievementRequirementValue: item.AchievementRequirementValue,
			AchievementIcon:             item.AchievementIcon,
		}
		if err := db.Create(&record).Error; err != nil {
			log.Printf("❌ Gagal insert achievement %s: %v", item.AchievementName, err)
			return created, err
		}
		created++
		log.Printf("✅ Achievement dibuat: %s", item.AchievementName)
	}
	return created, nil
}
