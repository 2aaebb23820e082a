package dto

import (
	"time"

	"github.com/google/uuid"

	"questku_backend/internals/features/home/notifications/model"
)

// 🔵 Response DTO untuk frontend
type NotificationResponse struct {
	ID        uuid.UUID  `json:"notification_id"`
	QuestID   *uuid.UUID `json:"notification_quest_id,omitempty"`
	Type      string     `json:"notification_type"`
	Message   string     `json:"notification_message"`
	IsRead    bool       `json:"notification_is_read"`
	ReadAt    *time.Time `json:"notification_read_at,omitempty"`
	CreatedAt time.Time  `json:"notification_created_at"`
}

func ToNotificationResponse(m *model.NotificationModel) NotificationResponse {
	return NotificationResponse{
		ID:        m.NotificationID,
		QuestID:   m.NotificationQuestID,
		Type:      string(m.NotificationType),
		Message:   m.NotificationMessage,
		IsRead:    m.NotificationIsRead,
		ReadAt:    m.NotificationReadAt,
		CreatedAt: m.NotificationCreatedAt,
	}
}

func ToNotificationResponseList(rows []model.NotificationModel) []NotificationResponse {
	out := make([]NotificationResponse, 0, len(rows))
	for i := range rows {
		out = append(out, ToNotificationResponse(&rows[i]))
	}
	return out
}
