package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"questku_backend/internals/configs"
	"questku_backend/internals/middlewares/logger"
)

// SetupMiddlewares: urutan recover → request id → logger → CORS → global limiter.
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(logger.RequestID())
	app.Use(logger.LoggerMiddleware(configs.AppTimezone))
	app.Use(CorsMiddleware(configs.CORSOrigins))
	app.Use(GlobalRateLimiter())
}
