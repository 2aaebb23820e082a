package controller

import (
	"github.com/gofiber/fiber/v2"

	"questku_backend/internals/features/gamification/achievements/dto"
	"questku_backend/internals/features/gamification/achievements/service"
	helper "questku_backend/internals/helpers"
)

type AchievementController struct {
	Service *service.AchievementService
}

func NewAchievementController(s *service.AchievementService) *AchievementController {
	return &AchievementController{Service: s}
}

// 🟢 GET /api/u/achievements
func (ctrl *AchievementController) All(c *fiber.Ctx) error {
	defs, err := ctrl.Service.Definitions(c.UserContext())
	if err != nil {
		return helper.FromError(c, err)
	}
	out := make([]dto.AchievementResponse, 0, len(defs))
	for _, d := range defs {
		out = append(out, dto.ToAchievementResponse(d))
	}
	return helper.JsonOK(c, "Achievements fetched", out)
}

// 🟢 GET /api/u/achievements/me
func (ctrl *AchievementController) Mine(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	unlocked, locked, err := ctrl.Service.Split(c.UserContext(), userID)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "User achievements fetched", dto.ToMyAchievements(unlocked, locked))
}
