package route

import (
	"questku_backend/internals/features/home/notifications/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func NotificationUserRoutes(user fiber.Router, db *gorm.DB) {
	ctrl := controller.NewNotificationController(db)

	notification := user.Group("/notifications")
	notification.Get("/", ctrl.List)                    // 🟢 list (filter unread/type)
	notification.Get("/count", ctrl.UnreadCount)        // 🟢 jumlah belum dibaca
	notification.Patch("/read-all", ctrl.MarkAllAsRead) // 🟡 tandai semua dibaca
	notification.Patch("/:id/read", ctrl.MarkAsRead)    // 🟡 tandai satu dibaca
	notification.Delete("/:id", ctrl.Delete)            // 🔴 hapus
}
