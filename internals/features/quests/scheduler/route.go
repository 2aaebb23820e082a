package scheduler

import (
	"github.com/gofiber/fiber/v2"

	helper "questku_backend/internals/helpers"
)

// SchedulerAdminRoutes: trigger manual dari panel admin.
func SchedulerAdminRoutes(admin fiber.Router, s *Scheduler) {
	g := admin.Group("/scheduler")
	g.Post("/expire", func(c *fiber.Ctx) error {
		n, err := s.RunExpirationSweep(c.UserContext())
		if err != nil {
			return helper.FromError(c, err)
		}
		return helper.JsonOK(c, "Expiration sweep finished", fiber.Map{"expired": n})
	})
}
