package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"questku_backend/internals/features/progress/points/controller"
)

func ExperienceLogRoutes(user fiber.Router, db *gorm.DB) {
	ctrl := controller.NewExperienceLogController(db)

	logs := user.Group("/xp-logs")
	logs.Get("/", ctrl.GetMine)
	logs.Get("/levels", ctrl.LevelPreview)
}
