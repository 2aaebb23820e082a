package routes

import (
	"github.com/gofiber/fiber/v2"

	userController "questku_backend/internals/features/users/user/controller"
	"questku_backend/internals/features/users/user/service"
)

// UserAdminRoutes dipasang di group /api/a yang sudah dibatasi role admin.
func UserAdminRoutes(app fiber.Router, s *service.UserService) {
	adminCtrl := userController.NewUserController(s)

	users := app.Group("/users")
	users.Get("/", adminCtrl.List)
	users.Get("/:id", adminCtrl.Get)
	users.Patch("/:id/role", adminCtrl.UpdateRole)
	users.Patch("/:id/active", adminCtrl.UpdateActive)
	users.Delete("/:id", adminCtrl.Delete)
}
