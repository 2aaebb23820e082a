package dto

import (
	"time"

	"github.com/google/uuid"

	"questku_backend/internals/features/gamification/achievements/model"
	"questku_backend/internals/features/gamification/achievements/service"
)

type AchievementResponse struct {
	ID               uuid.UUID  `json:"achievement_id"`
	Name             string     `json:"achievement_name"`
	Description      string     `json:"achievement_description"`
	Type             string     `json:"achievement_type"`
	RequirementValue int64      `json:"achievement_requirement_value"`
	Icon             string     `json:"achievement_icon,omitempty"`
	Unlocked         bool       `json:"unlocked"`
	UnlockedAt       *time.Time `json:"unlocked_at,omitempty"`
}

func ToAchievementResponse(a model.AchievementModel) AchievementResponse {
	return AchievementResponse{
		ID:               a.AchievementID,
		Name:             a.AchievementName,
		Description:      a.AchievementDescription,
		Type:             string(a.AchievementType),
		RequirementValue: a.AchievementRequirementValue,
		Icon:             a.AchievementIcon,
	}
}

func FromUnlocked(u service.UnlockedAchievement) AchievementResponse {
	resp := ToAchievementResponse(u.AchievementModel)
	at := u.UnlockedAt
	resp.Unlocked = true
	resp.UnlockedAt = &at
	return resp
}

// MyAchievementsResponse: halaman "achievement saya" (unlocked di atas, locked di bawah).
type MyAchievementsResponse struct {
	Unlocked []AchievementResponse `json:"unlocked"`
	Locked   []AchievementResponse `json:"locked"`
	Total    int                   `json:"total"`
}

func ToMyAchievements(unlocked []service.UnlockedAchievement, locked []model.AchievementModel) MyAchievementsResponse {
	out := MyAchievementsResponse{
		Unlocked: make([]AchievementResponse, 0, len(unlocked)),
		Locked:   make([]AchievementResponse, 0, len(locked)),
		Total:    len(unlocked) + len(locked),
	}
	for _, u := range unlocked {
		out.Unlocked = append(out.Unlocked, FromUnlocked(u))
	}
	for _, l := range locked {
		out.Locked = append(out.Locked, ToAchievementResponse(l))
	}
	return out
}
