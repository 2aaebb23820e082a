package controller

import (
	"github.com/gofiber/fiber/v2"

	notificationDto "questku_backend/internals/features/home/notifications/dto"
	questDto "questku_backend/internals/features/quests/quest/dto"
	"questku_backend/internals/features/stats/service"
	helper "questku_backend/internals/helpers"
)

type StatsController struct {
	Service *service.StatsService
}

func NewStatsController(s *service.StatsService) *StatsController {
	return &StatsController{Service: s}
}

// 🟢 GET /api/u/stats
func (ctrl *StatsController) Mine(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	st, err := ctrl.Service.GetUserStats(c.UserContext(), userID)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "Stats fetched", st)
}

// 🟢 GET /api/u/dashboard
func (ctrl *StatsController) Dashboard(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	d, err := ctrl.Service.GetDashboard(c.UserContext(), userID)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "Dashboard fetched", fiber.Map{
		"stats":                d.Stats,
		"active_quests":        questDto.ToQuestResponseList(d.ActiveQuests),
		"ready_for_check_in":   questDto.ToQuestResponseList(d.ReadyForCheckIn),
		"recent_notifications": notificationDto.ToNotificationResponseList(d.RecentNotifications),
		"unread_count":         d.UnreadCount,
	})
}

// 🟢 GET /api/a/dashboard
func (ctrl *StatsController) AdminDashboard(c *fiber.Ctx) error {
	d, err := ctrl.Service.GetAdminDashboard(c.UserContext())
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "Admin dashboard fetched", d)
}
