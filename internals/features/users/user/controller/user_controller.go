package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"questku_backend/internals/features/users/user/dto"
	"questku_backend/internals/features/users/user/service"
	helper "questku_backend/internals/helpers"
)

type UserController struct {
	Service *service.UserService
}

func NewUserController(s *service.UserService) *UserController {
	return &UserController{Service: s}
}

// GET /api/u/users/me
func (uc *UserController) GetMe(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	p, err := uc.Service.Profile(c.UserContext(), userID)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "OK", dto.ToProfileResponse(p.User, p.Progress))
}

// PATCH /api/u/users/me/email
func (uc *UserController) UpdateEmail(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	var req dto.UpdateEmailRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := helper.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	u, err := uc.Service.UpdateEmail(c.UserContext(), userID, req.Email)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "Email updated", dto.ToUserResponse(u))
}

/* ===============================
   Admin
=================================*/

// GET /api/a/users?q=&role=&page=&per_page=
func (uc *UserController) List(c *fiber.Ctx) error {
	pg := helper.ResolvePaging(c, 20, 100)
	f := service.ListFilter{
		Query:  c.Query("q"),
		Limit:  pg.Limit,
		Offset: pg.Offset,
	}
	if raw := strings.TrimSpace(c.Query("role")); raw != "" {
		role, err := service.ParseRole(raw)
		if err != nil {
			return helper.FromError(c, err)
		}
		f.Role = role
	}

	rows, total, err := uc.Service.List(c.UserContext(), f)
	if err != nil {
		return helper.FromError(c, err)
	}
	meta := helper.BuildPagination(total, pg, len(rows))
	return helper.JsonList(c, "OK", dto.ToUserResponseList(rows), &meta)
}

// GET /api/a/users/:id
func (uc *UserController) Get(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	p, err := uc.Service.Profile(c.UserContext(), id)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "OK", dto.ToProfileResponse(p.User, p.Progress))
}

// PATCH /api/a/users/:id/role
func (uc *UserController) UpdateRole(c *fiber.Ctx) error {
	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	u, err := uc.Service.UpdateRole(c.UserContext(), actorID, id, req.Role)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "Role updated", dto.ToUserResponse(u))
}

// PATCH /api/a/users/:id/active
func (uc *UserController) UpdateActive(c *fiber.Ctx) error {
	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateActiveRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	u, err := uc.Service.SetActive(c.UserContext(), actorID, id, *req.IsActive)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "User updated", dto.ToUserResponse(u))
}

// DELETE /api/a/users/:id
func (uc *UserController) Delete(c *fiber.Ctx) error {
	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := uc.Service.Delete(c.UserContext(), actorID, id); err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonDeleted(c, "User deleted", fiber.Map{"id": id})
}
