package controller

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"questku_backend/internals/features/quests/quest/dto"
	"questku_backend/internals/features/quests/quest/model"
	"questku_backend/internals/features/quests/quest/service"
	userModel "questku_backend/internals/features/users/user/model"
	helper "questku_backend/internals/helpers"
	"questku_backend/internals/helpers/dbtime"
)

type QuestController struct {
	Service *service.QuestService
}

func NewQuestController(s *service.QuestService) *QuestController {
	return &QuestController{Service: s}
}

func isAdmin(c *fiber.Ctx) bool {
	return helper.GetRoleFromToken(c) == userModel.RoleAdmin
}

// parseFilter membaca ?status=&type=&page=&per_page= (nilai tidak dikenal = 400).
func parseFilter(c *fiber.Ctx) (service.QuestFilter, helper.Paging, error) {
	p := helper.ResolvePaging(c, 20, 100)
	f := service.QuestFilter{
		Status: model.QuestStatus(strings.ToUpper(strings.TrimSpace(c.Query("status")))),
		Type:   model.QuestType(strings.ToUpper(strings.TrimSpace(c.Query("type")))),
		Limit:  p.Limit,
		Offset: p.Offset,
	}
	switch f.Status {
	case "", model.QuestStatusActive, model.QuestStatusCompleted, model.QuestStatusExpired:
	default:
		return f, p, fiber.NewError(fiber.StatusBadRequest, "Invalid quest status")
	}
	if f.Type != "" && !f.Type.Valid() {
		return f, p, fiber.NewError(fiber.StatusBadRequest, "Invalid quest type")
	}
	return f, p, nil
}

/* ===============================
   User
=================================*/

// 🟡 POST /api/u/quests
func (ctrl *QuestController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromError(c, err)
	}

	var req dto.CreateQuestRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := helper.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	start, end, err := req.Dates()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
	}

	q, err := ctrl.Service.CreateQuest(c.UserContext(), userID, service.CreateQuestInput{
		Title:            req.Title,
		Description:      req.Description,
		Type:             model.QuestType(req.Type),
		StartDate:        start,
		EndDate:          end,
		ExperienceReward: req.ExperienceReward,
		CheckInGoal:      req.CheckInGoal,
	})
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonCreated(c, "Quest created", dto.ToQuestResponse(q, nil))
}

// 🟢 GET /api/u/quests?status=ACTIVE&type=DAILY
func (ctrl *QuestController) ListMine(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	f, p, err := parseFilter(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	rows, total, err := ctrl.Service.GetUserQuests(c.UserContext(), userID, f)
	if err != nil {
		return helper.FromError(c, err)
	}
	pg := helper.BuildPagination(total, p, len(rows))
	return helper.JsonList(c, "Quests fetched", dto.ToQuestResponseList(rows), &pg)
}

// 🟢 GET /api/u/quests/ready?date=YYYY-MM-DD
func (ctrl *QuestController) Ready(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	date, err := ctrl.dateOrToday(c.Query("date"))
	if err != nil {
		return helper.FromError(c, err)
	}
	rows, err := ctrl.Service.GetQuestsReadyForCheckIn(c.UserContext(), userID, date)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "Quests ready for check-in", dto.ToQuestResponseList(rows))
}

// 🟢 GET /api/u/quests/:id
func (ctrl *QuestController) Detail(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	q, p, err := ctrl.Service.GetQuest(c.UserContext(), id, userID, isAdmin(c))
	if err != nil {
		return helper.FromError(c, err)
	}

	resp := dto.ToQuestResponse(q, p)
	var canCheckIn bool
	if q.QuestStatus == model.QuestStatusActive {
		if canCheckIn, err = ctrl.Service.CanCheckIn(c.UserContext(), q, q.QuestUserID, ctrl.Service.Today()); err != nil {
			return helper.FromError(c, err)
		}
	}
	return helper.JsonOK(c, "Quest fetched", fiber.Map{
		"quest":        resp,
		"can_check_in": canCheckIn,
	})
}

// 🟢 GET /api/u/quests/:id/check-ins
func (ctrl *QuestController) CheckIns(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	rows, err := ctrl.Service.GetCheckIns(c.UserContext(), id, userID)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "Check-ins fetched", dto.ToCheckInResponseList(rows))
}

func (ctrl *QuestController) dateOrToday(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ctrl.Service.Today(), nil
	}
	d, err := dbtime.ParseDate(raw)
	if err != nil {
		return time.Time{}, fiber.NewError(fiber.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
	}
	return d, nil
}

// 🟡 POST /api/u/quests/:id/check-in  body: {"date":"YYYY-MM-DD"} (opsional)
func (ctrl *QuestController) CheckIn(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}

	var req dto.CheckInRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
		}
	}
	date, err := ctrl.dateOrToday(req.Date)
	if err != nil {
		return helper.FromError(c, err)
	}

	res, err := ctrl.Service.CheckIn(c.UserContext(), id, userID, date)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonCreated(c, "Checked in", checkInBody(res))
}

// 🟡 POST /api/u/quests/:id/quick-check-in
func (ctrl *QuestController) QuickCheckIn(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	res, err := ctrl.Service.QuickCheckIn(c.UserContext(), id, userID)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonCreated(c, "Checked in", checkInBody(res))
}

func checkInBody(res *service.CheckInResult) fiber.Map {
	return fiber.Map{
		"check_in":  dto.ToCheckInResponse(&res.CheckIn),
		"quest":     dto.ToQuestResponse(&res.Quest, &res.Progress),
		"award":     res.Award, // null kalau XP per check-in 0
		"completed": res.Completed,
	}
}

// 🟡 POST /api/u/quests/:id/complete
func (ctrl *QuestController) Complete(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	q, err := ctrl.Service.Complete(c.UserContext(), id, userID)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "Quest completed", dto.ToQuestResponse(q, nil))
}

// 🔴 DELETE /api/u/quests/:id (admin boleh hapus quest siapa pun)
func (ctrl *QuestController) Delete(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	if err := ctrl.Service.DeleteQuest(c.UserContext(), id, userID, isAdmin(c)); err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonDeleted(c, "Quest deleted", fiber.Map{"quest_id": id})
}

/* ===============================
   Admin
=================================*/

// 🟢 GET /api/a/quests?user_id=&status=&type=
func (ctrl *QuestController) ListAll(c *fiber.Ctx) error {
	f, p, err := parseFilter(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	if raw := strings.TrimSpace(c.Query("user_id")); raw != "" {
		uid, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid user_id")
		}
		f.UserID = &uid
	}
	rows, total, err := ctrl.Service.GetAllQuests(c.UserContext(), f)
	if err != nil {
		return helper.FromError(c, err)
	}
	pg := helper.BuildPagination(total, p, len(rows))
	return helper.JsonList(c, "Quests fetched", dto.ToQuestResponseList(rows), &pg)
}
