package route

import (
	"github.com/gofiber/fiber/v2"

	"questku_backend/internals/features/gamification/achievements/controller"
	"questku_backend/internals/features/gamification/achievements/service"
)

func AchievementUserRoutes(user fiber.Router, s *service.AchievementService) {
	ctrl := controller.NewAchievementController(s)

	a := user.Group("/achievements")
	a.Get("/", ctrl.All)    // 🟢 semua definisi
	a.Get("/me", ctrl.Mine) // 🟢 unlocked + locked milik user
}
