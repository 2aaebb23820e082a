package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"questku_backend/internals/features/gamification/rewards/model"
	"questku_backend/internals/features/gamification/rewards/service"
)

type RewardRequest struct {
	Name               string  `json:"reward_name" validate:"required,min=3,max=200"`
	Description        string  `json:"reward_description" validate:"max=500"`
	RequiredLevel      int     `json:"reward_required_level" validate:"required,min=1"`
	RequiredExperience int64   `json:"reward_required_experience" validate:"min=0"`
	ImageURL           *string `json:"reward_image_url" validate:"omitempty,max=2048"`
}

func (r *RewardRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
}

func (r RewardRequest) ToInput() service.RewardInput {
	return service.RewardInput{
		Name:               r.Name,
		Description:        r.Description,
		RequiredLevel:      r.RequiredLevel,
		RequiredExperience: r.RequiredExperience,
		ImageURL:           r.ImageURL,
	}
}

type RewardResponse struct {
	ID                 uuid.UUID  `json:"reward_id"`
	Name               string     `json:"reward_name"`
	Description        string     `json:"reward_description"`
	RequiredLevel      int        `json:"reward_required_level"`
	RequiredExperience int64      `json:"reward_required_experience"`
	ImageURL           *string    `json:"reward_image_url,omitempty"`
	IsClaimed          *bool      `json:"is_claimed,omitempty"`
	ClaimedAt          *time.Time `json:"claimed_at,omitempty"`
}

func ToRewardResponse(r model.RewardModel) RewardResponse {
	return RewardResponse{
		ID:                 r.RewardID,
		Name:               r.RewardName,
		Description:        r.RewardDescription,
		RequiredLevel:      r.RewardRequiredLevel,
		RequiredExperience: r.RewardRequiredExperience,
		ImageURL:           r.RewardImageURL,
	}
}

func ToRewardResponseList(rows []model.RewardModel) []RewardResponse {
	out := make([]RewardResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, ToRewardResponse(r))
	}
	return out
}

func FromAvailable(rows []service.AvailableReward) []RewardResponse {
	out := make([]RewardResponse, 0, len(rows))
	for _, r := range rows {
		resp := ToRewardResponse(r.RewardModel)
		claimed := r.IsClaimed
		resp.IsClaimed = &claimed
		out = append(out, resp)
	}
	return out
}

func FromClaimed(rows []service.ClaimedReward) []RewardResponse {
	out := make([]RewardResponse, 0, len(rows))
	for _, r := range rows {
		resp := ToRewardResponse(r.RewardModel)
		at := r.ClaimedAt
		resp.ClaimedAt = &at
		out = append(out, resp)
	}
	return out
}
