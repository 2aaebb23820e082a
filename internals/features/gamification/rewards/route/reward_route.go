package route

import (
	"github.com/gofiber/fiber/v2"

	"questku_backend/internals/features/gamification/rewards/controller"
	"questku_backend/internals/features/gamification/rewards/service"
)

func RewardUserRoutes(user fiber.Router, s *service.RewardService) {
	ctrl := controller.NewRewardController(s)

	r := user.Group("/rewards")
	r.Get("/", ctrl.Available)       // 🟢 reward sesuai level + status klaim
	r.Get("/claimed", ctrl.Claimed)  // 🟢 riwayat klaim
	r.Post("/:id/claim", ctrl.Claim) // 🟡 klaim
}

func RewardAdminRoutes(admin fiber.Router, s *service.RewardService) {
	ctrl := controller.NewRewardController(s)

	r := admin.Group("/rewards")
	r.Get("/", ctrl.List)
	r.Get("/:id", ctrl.Get)
	r.Post("/", ctrl.Create)
	r.Put("/:id", ctrl.Update)
	r.Delete("/:id", ctrl.Delete)
}
