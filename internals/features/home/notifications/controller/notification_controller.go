package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"questku_backend/internals/features/home/notifications/dto"
	"questku_backend/internals/features/home/notifications/model"
	"questku_backend/internals/features/home/notifications/service"
	helper "questku_backend/internals/helpers"
)

type NotificationController struct {
	DB      *gorm.DB
	Service *service.NotificationService
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{DB: db, Service: service.NewNotificationService(db)}
}

// 🟢 GET /api/u/notifications?unread=true&type=QUEST_REMINDER&page=1&per_page=20
func (ctrl *NotificationController) List(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromError(c, err)
	}

	p := helper.ResolvePaging(c, 20, 100)
	f := service.ListFilter{
		UnreadOnly: c.QueryBool("unread", false),
		Type:       model.NotificationType(strings.ToUpper(strings.TrimSpace(c.Query("type")))),
		Limit:      p.Limit,
		Offset:     p.Offset,
	}
	if f.Type != "" && !f.Type.Valid() {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid notification type")
	}

	rows, total, err := ctrl.Service.List(c.UserContext(), userID, f)
	if err != nil {
		return helper.FromError(c, err)
	}
	pg := helper.BuildPagination(total, p, len(rows))
	return helper.JsonList(c, "Notifications fetched", dto.ToNotificationResponseList(rows), &pg)
}

// 🟢 GET /api/u/notifications/count
func (ctrl *NotificationController) UnreadCount(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	n, err := ctrl.Service.UnreadCount(c.UserContext(), userID)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "ok", fiber.Map{"unread": n})
}

// 🟡 PATCH /api/u/notifications/:id/read
func (ctrl *NotificationController) MarkAsRead(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	n, err := ctrl.Service.MarkAsRead(c.UserContext(), id, userID)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "Notification marked as read", dto.ToNotificationResponse(n))
}

// 🟡 PATCH /api/u/notifications/read-all
func (ctrl *NotificationController) MarkAllAsRead(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	n, err := ctrl.Service.MarkAllAsRead(c.UserContext(), userID)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "All notifications marked as read", fiber.Map{"updated": n})
}

// 🔴 DELETE /api/u/notifications/:id
func (ctrl *NotificationController) Delete(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	if err := ctrl.Service.Delete(c.UserContext(), id, userID); err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonDeleted(c, "Notification deleted", fiber.Map{"notification_id": id})
}
