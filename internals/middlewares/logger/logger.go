package logger

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/utils"
)

const (
	HeaderRequestID = "X-Request-ID"
	LocRequestID    = "requestid"
)

// RequestID memakai X-Request-ID dari client kalau ada, kalau tidak generate UUIDv4.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(HeaderRequestID)
		if rid == "" {
			rid = utils.UUIDv4()
		}
		c.Set(HeaderRequestID, rid)
		c.Locals(LocRequestID, rid)
		return c.Next()
	}
}

// LoggerMiddleware untuk mencatat semua request
func LoggerMiddleware(timezone string) fiber.Handler {
	if timezone == "" {
		timezone = "Local"
	}
	return logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   timezone,
		Format:     "[${time}] ${locals:requestid} ${ip} - ${method} ${path} - ${status} - ${latency}\n",
	})
}
