package controller

import (
	"github.com/gofiber/fiber/v2"

	"questku_backend/internals/features/gamification/rewards/dto"
	"questku_backend/internals/features/gamification/rewards/service"
	helper "questku_backend/internals/helpers"
)

type RewardController struct {
	Service *service.RewardService
}

func NewRewardController(s *service.RewardService) *RewardController {
	return &RewardController{Service: s}
}

/* ===============================
   User
=================================*/

// 🟢 GET /api/u/rewards
func (ctrl *RewardController) Available(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	rows, err := ctrl.Service.ListAvailable(c.UserContext(), userID)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "Available rewards fetched", dto.FromAvailable(rows))
}

// 🟢 GET /api/u/rewards/claimed
func (ctrl *RewardController) Claimed(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	rows, err := ctrl.Service.ListClaimed(c.UserContext(), userID)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "Claimed rewards fetched", dto.FromClaimed(rows))
}

// 🟡 POST /api/u/rewards/:id/claim
func (ctrl *RewardController) Claim(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	claim, err := ctrl.Service.Claim(c.UserContext(), id, userID)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonCreated(c, "Reward claimed", fiber.Map{
		"reward_id":  claim.UserRewardRewardID,
		"claimed_at": claim.UserRewardClaimedAt,
	})
}

/* ===============================
   Admin
=================================*/

// 🟢 GET /api/a/rewards
func (ctrl *RewardController) List(c *fiber.Ctx) error {
	rows, err := ctrl.Service.List(c.UserContext())
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "Rewards fetched", dto.ToRewardResponseList(rows))
}

// 🟢 GET /api/a/rewards/:id
func (ctrl *RewardController) Get(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	r, err := ctrl.Service.Get(c.UserContext(), id)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "Reward fetched", dto.ToRewardResponse(*r))
}

func parseRewardBody(c *fiber.Ctx) (*dto.RewardRequest, error) {
	var req dto.RewardRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := helper.Validate.Struct(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

// 🟡 POST /api/a/rewards
func (ctrl *RewardController) Create(c *fiber.Ctx) error {
	req, err := parseRewardBody(c)
	if err != nil {
		return helper.BodyError(c, err)
	}
	r, err := ctrl.Service.Create(c.UserContext(), req.ToInput())
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonCreated(c, "Reward created", dto.ToRewardResponse(*r))
}

// 🟡 PUT /api/a/rewards/:id
func (ctrl *RewardController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	req, err := parseRewardBody(c)
	if err != nil {
		return helper.BodyError(c, err)
	}
	r, err := ctrl.Service.Update(c.UserContext(), id, req.ToInput())
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "Reward updated", dto.ToRewardResponse(*r))
}

// 🔴 DELETE /api/a/rewards/:id
func (ctrl *RewardController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	if err := ctrl.Service.Delete(c.UserContext(), id); err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonDeleted(c, "Reward deleted", fiber.Map{"reward_id": id})
}
