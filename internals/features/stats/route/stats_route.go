package route

import (
	"github.com/gofiber/fiber/v2"

	"questku_backend/internals/features/stats/controller"
	"questku_backend/internals/features/stats/service"
)

func StatsUserRoutes(user fiber.Router, s *service.StatsService) {
	ctrl := controller.NewStatsController(s)
	user.Get("/stats", ctrl.Mine)
	user.Get("/dashboard", ctrl.Dashboard)
}

func StatsAdminRoutes(admin fiber.Router, s *service.StatsService) {
	ctrl := controller.NewStatsController(s)
	admin.Get("/dashboard", ctrl.AdminDashboard)
}
