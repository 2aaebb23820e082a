package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationType string

const (
	TypeQuestExpired        NotificationType = "QUEST_EXPIRED"
	TypeQuestExpiringSoon   NotificationType = "QUEST_EXPIRING_SOON"
	TypeQuestCompleted      NotificationType = "QUEST_COMPLETED"
	TypeQuestReminder       NotificationType = "QUEST_REMINDER"
	TypeAchievementUnlocked NotificationType = "ACHIEVEMENT_UNLOCKED"
	TypeSystem              NotificationType = "SYSTEM"
)

func (t NotificationType) Valid() bool {
	switch t {
	case TypeQuestExpired, TypeQuestExpiringSoon, TypeQuestCompleted,
		TypeQuestReminder, TypeAchievementUnlocked, TypeSystem:
		return true
	}
	return false
}

type NotificationModel struct {
	NotificationID        uuid.UUID        `gorm:"column:notification_id;type:uuid;primaryKey" json:"notification_id"`
	NotificationUserID    uuid.UUID        `gorm:"column:notification_user_id;type:uuid;not null;index:idx_notifications_user_read,priority:1" json:"notification_user_id"`
	NotificationQuestID   *uuid.UUID       `gorm:"column:notification_quest_id;type:uuid;index" json:"notification_quest_id,omitempty"`
	NotificationType      NotificationType `gorm:"column:notification_type;type:varchar(30);not null" json:"notification_type"`
	NotificationMessage   string           `gorm:"column:notification_message;type:text;not null" json:"notification_message"`
	NotificationIsRead    bool             `gorm:"column:notification_is_read;not null;default:false;index:idx_notifications_user_read,priority:2" json:"notification_is_read"`
	NotificationReadAt    *time.Time       `gorm:"column:notification_read_at" json:"notification_read_at,omitempty"`
	NotificationCreatedAt time.Time        `gorm:"column:notification_created_at;autoCreateTime" json:"notification_created_at"`
}

func (NotificationModel) TableName() string {
	return "notifications"
}

func (n *NotificationModel) BeforeCreate(tx *gorm.DB) error {
	if n.NotificationID == uuid.Nil {
		n.NotificationID = uuid.New()
	}
	return nil
}
