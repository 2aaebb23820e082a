package route

import (
	"github.com/gofiber/fiber/v2"

	"questku_backend/internals/features/quests/quest/controller"
	"questku_backend/internals/features/quests/quest/service"
)

func QuestUserRoutes(user fiber.Router, s *service.QuestService) {
	ctrl := controller.NewQuestController(s)

	q := user.Group("/quests")
	q.Post("/", ctrl.Create)                         // 🟡 buat quest
	q.Get("/", ctrl.ListMine)                        // 🟢 quest saya
	q.Get("/ready", ctrl.Ready)                      // 🟢 siap check-in
	q.Get("/:id", ctrl.Detail)                       // 🟢 detail + progress
	q.Get("/:id/check-ins", ctrl.CheckIns)           // 🟢 riwayat check-in
	q.Post("/:id/check-in", ctrl.CheckIn)            // 🟡 check-in (tanggal opsional)
	q.Post("/:id/quick-check-in", ctrl.QuickCheckIn) // 🟡 check-in hari ini
	q.Post("/:id/complete", ctrl.Complete)           // 🟡 selesaikan manual
	q.Delete("/:id", ctrl.Delete)                    // 🔴 hapus
}

func QuestAdminRoutes(admin fiber.Router, s *service.QuestService) {
	ctrl := controller.NewQuestController(s)

	q := admin.Group("/quests")
	q.Get("/", ctrl.ListAll)
	q.Delete("/:id", ctrl.Delete)
}
