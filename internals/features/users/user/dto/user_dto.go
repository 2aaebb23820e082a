package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"questku_backend/internals/features/progress/leveling"
	"questku_backend/internals/features/users/user/model"
)

/* =======================================================
   REQUEST DTOs
   ======================================================= */

type UpdateEmailRequest struct {
	Email string `json:"email" validate:"required,email,max=255"`
}

func (r *UpdateEmailRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

// UpdateRoleRequest: "USER" atau "ADMIN".
type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

type UpdateActiveRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

/* =======================================================
   RESPONSE DTOs
   ======================================================= */

type UserResponse struct {
	ID               uuid.UUID `json:"id"`
	UserName         string    `json:"user_name"`
	Email            string    `json:"email"`
	Role             string    `json:"role"`
	Level            int       `json:"level"`
	ExperiencePoints int64     `json:"experience_points"`
	IsActive         bool      `json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// role ditampilkan upper-case (USER/ADMIN)
func ToUserResponse(u *model.UserModel) UserResponse {
	return UserResponse{
		ID:               u.ID,
		UserName:         u.UserName,
		Email:            u.Email,
		Role:             strings.ToUpper(u.Role),
		Level:            u.Level,
		ExperiencePoints: u.ExperiencePoints,
		IsActive:         u.IsActive,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
}

func ToUserResponseList(rows []model.UserModel) []UserResponse {
	out := make([]UserResponse, 0, len(rows))
	for i := range rows {
		out = append(out, ToUserResponse(&rows[i]))
	}
	return out
}

type ProfileResponse struct {
	UserResponse
	NextLevel leveling.Progress `json:"next_level"`
}

func ToProfileResponse(u *model.UserModel, p leveling.Progress) ProfileResponse {
	return ProfileResponse{UserResponse: ToUserResponse(u), NextLevel: p}
}
