package route

import (
	"github.com/gofiber/fiber/v2"

	controller "questku_backend/internals/features/users/auth/controller"
	"questku_backend/internals/features/users/auth/service"
	rateLimiter "questku_backend/internals/middlewares"
)

// AuthRoutes: endpoint publik di /api/auth.
func AuthRoutes(app fiber.Router, s *service.AuthService) {
	authController := controller.NewAuthController(s)

	baseAuth := app.Group("/api/auth")
	baseAuth.Post("/login", rateLimiter.LoginRateLimiter(), authController.Login)
	baseAuth.Post("/register", rateLimiter.RegisterRateLimiter(), authController.Register)
}

// AuthUserRoutes: butuh token, dipasang di group /api/u.
func AuthUserRoutes(user fiber.Router, s *service.AuthService) {
	authController := controller.NewAuthController(s)

	user.Post("/auth/logout", authController.Logout)
	user.Post("/auth/change-password", authController.ChangePassword)
	user.Get("/auth/me", authController.Me)
}
