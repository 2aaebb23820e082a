package middlewares

import (
	"log"
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	helper "questku_backend/internals/helpers"
	"questku_backend/internals/middlewares/logger"
)

const locPanicked = "panicked"

// RecoveryMiddleware menangkap panic: stack trace di-log bersama request id,
// client menerima envelope JSON 500 yang sama dengan error lain.
func RecoveryMiddleware() fiber.Handler {
	rec := recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
			c.Locals(locPanicked, true)
			log.Printf("[PANIC] id=%v %s %s: %v\n%s", c.Locals(logger.LocRequestID), c.Method(), c.OriginalURL(), e, debug.Stack())
		},
	})
	return func(c *fiber.Ctx) error {
		err := rec(c)
		if panicked, _ := c.Locals(locPanicked).(bool); panicked {
			return helper.JsonError(c, fiber.StatusInternalServerError, "internal server error")
		}
		return err
	}
}
