package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RewardModel struct {
	RewardID                 uuid.UUID `gorm:"column:reward_id;type:uuid;primaryKey" json:"reward_id"`
	RewardName               string    `gorm:"column:reward_name;type:varchar(200);not null" json:"reward_name"`
	RewardDescription        string    `gorm:"column:reward_description;type:varchar(500)" json:"reward_description"`
	RewardRequiredLevel      int       `gorm:"column:reward_required_level;not null;default:1;index" json:"reward_required_level"`
	RewardRequiredExperience int64     `gorm:"column:reward_required_experience;not null;default:0" json:"reward_required_experience"`
	RewardImageURL           *string   `gorm:"column:reward_image_url;type:text" json:"reward_image_url,omitempty"`
	CreatedAt                time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt                time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (RewardModel) TableName() string {
	return "rewards"
}

func (r *RewardModel) BeforeCreate(tx *gorm.DB) error {
	if r.RewardID == uuid.Nil {
		r.RewardID = uuid.New()
	}
	return nil
}

// UserRewardModel: klaim reward per user; unique (user, reward) mencegah klaim ganda.
type UserRewardModel struct {
	UserRewardID        uuid.UUID `gorm:"column:user_reward_id;type:uuid;primaryKey" json:"user_reward_id"`
	UserRewardUserID    uuid.UUID `gorm:"column:user_reward_user_id;type:uuid;not null;uniqueIndex:uq_user_reward,priority:1" json:"user_reward_user_id"`
	UserRewardRewardID  uuid.UUID `gorm:"column:user_reward_reward_id;type:uuid;not null;uniqueIndex:uq_user_reward,priority:2" json:"user_reward_reward_id"`
	UserRewardClaimedAt time.Time `gorm:"column:user_reward_claimed_at;not null" json:"user_reward_claimed_at"`
}

func (UserRewardModel) TableName() string {
	return "user_rewards"
}

func (u *UserRewardModel) BeforeCreate(tx *gorm.DB) error {
	if u.UserRewardID == uuid.Nil {
		u.UserRewardID = uuid.New()
	}
	if u.UserRewardClaimedAt.IsZero() {
		u.UserRewardClaimedAt = time.Now()
	}
	return nil
}
