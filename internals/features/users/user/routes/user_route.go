package routes

import (
	"github.com/gofiber/fiber/v2"

	userController "questku_backend/internals/features/users/user/controller"
	"questku_backend/internals/features/users/user/service"
)

func UserUserRoutes(app fiber.Router, s *service.UserService) {
	selfCtrl := userController.NewUserController(s)

	// Profil diri (JWT)
	app.Get("/users/me", selfCtrl.GetMe)
	app.Patch("/users/me/email", selfCtrl.UpdateEmail)
}
