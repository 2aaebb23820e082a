package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// UserModel merepresentasikan tabel users di database.
// user_level disimpan redundan dan selalu = leveling.LevelFor(user_experience_points).
type UserModel struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;column:id" json:"id"`
	UserName         string    `gorm:"column:user_name;size:50;not null;uniqueIndex:uq_users_user_name" json:"user_name"`
	Email            string    `gorm:"column:email;size:255;not null;uniqueIndex:uq_users_email" json:"email"`
	Password         string    `gorm:"column:password;not null" json:"-"`
	Role             string    `gorm:"column:role;type:varchar(20);not null;default:'user'" json:"role"`
	Level            int       `gorm:"column:user_level;not null;default:1" json:"level"`
	ExperiencePoints int64     `gorm:"column:user_experience_points;not null;default:0" json:"experience_points"`
	IsActive         bool      `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName memastikan nama tabel sesuai dengan skema database
func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
	if u.Level < 1 {
		u.Level = 1
	}
	return nil
}
