package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"questku_backend/internals/features/gamification/rewards/model"
	userModel "questku_backend/internals/features/users/user/model"
	"questku_backend/internals/helpers/apperror"
	"questku_backend/internals/helpers/cache"
)

type RewardService struct {
	DB    *gorm.DB
	Cache *cache.Store
	Now   func() time.Time
}

func NewRewardService(db *gorm.DB, c *cache.Store) *RewardService {
	return &RewardService{DB: db, Cache: c, Now: time.Now}
}

type RewardInput struct {
	Name               string
	Description        string
	RequiredLevel      int
	RequiredExperience int64
	ImageURL           *string
}

func (in *RewardInput) validate() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	if in.ImageURL != nil {
		v := strings.TrimSpace(*in.ImageURL)
		if v == "" {
			in.ImageURL = nil
		} else {
			in.ImageURL = &v
		}
	}

	if n := utf8.RuneCountInString(in.Name); n < 3 || n > 200 {
		return apperror.InvalidArgument("reward name must be between 3 and 200 characters")
	}
	if utf8.RuneCountInString(in.Description) > 500 {
		return apperror.InvalidArgument("reward description must be at most 500 characters")
	}
	if in.RequiredLevel < 1 {
		return apperror.InvalidArgument("required level must be at least 1")
	}
	if in.RequiredExperience < 0 {
		return apperror.InvalidArgument("required experience must not be negative")
	}
	return nil
}

// AvailableReward = reward yang levelnya sudah terjangkau user, plus status klaim.
type AvailableReward struct {
	model.RewardModel
	IsClaimed bool `json:"is_claimed"`
}

type ClaimedReward struct {
	model.RewardModel
	ClaimedAt time.Time `json:"claimed_at"`
}

/* ===============================
   Admin CRUD
=================================*/

func (s *RewardService) Create(ctx context.Context, in RewardInput) (*model.RewardModel, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	r := &model.RewardModel{
		RewardName:               in.Name,
		RewardDescription:        in.Description,
		RewardRequiredLevel:      in.RequiredLevel,
		RewardRequiredExperience: in.RequiredExperience,
		RewardImageURL:           in.ImageURL,
	}
	if err := s.DB.WithContext(ctx).Create(r).Error; err != nil {
		return nil, fmt.Errorf("create reward: %w", err)
	}
	log.Printf("[REWARD] Reward '%s' created (level %d, xp %d)", r.RewardName, r.RewardRequiredLevel, r.RewardRequiredExperience)
	return r, nil
}

func (s *RewardService) Update(ctx context.Context, rewardID uuid.UUID, in RewardInput) (*model.RewardModel, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	r, err := s.Get(ctx, rewardID)
	if err != nil {
		return nil, err
	}
	r.RewardName = in.Name
	r.RewardDescription = in.Description
	r.RewardRequiredLevel = in.RequiredLevel
	r.RewardRequiredExperience = in.RequiredExperience
	r.RewardImageURL = in.ImageURL
	if err := s.DB.WithContext(ctx).Save(r).Error; err != nil {
		return nil, fmt.Errorf("update reward: %w", err)
	}
	return r, nil
}

// Delete ikut menghapus semua klaim atas reward tersebut.
func (s *RewardService) Delete(ctx context.Context, rewardID uuid.UUID) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("reward_id = ?", rewardID).Delete(&model.RewardModel{})
		if res.Error != nil {
			return fmt.Errorf("delete reward: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperror.NotFound("reward %s not found", rewardID)
		}
		return tx.Where("user_reward_reward_id = ?", rewardID).Delete(&model.UserRewardModel{}).Error
	})
	if err != nil {
		return err
	}
	// klaim lintas user ikut hilang, jadi stats semua user basi
	s.Cache.Purge()
	return nil
}

func (s *RewardService) Get(ctx context.Context, rewardID uuid.UUID) (*model.RewardModel, error) {
	var r model.RewardModel
	if err := s.DB.WithContext(ctx).Where("reward_id = ?", rewardID).First(&r).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("reward %s not found", rewardID)
		}
		return nil, err
	}
	return &r, nil
}

// List (admin): semua reward urut level lalu nama.
func (s *RewardService) List(ctx context.Context) ([]model.RewardModel, error) {
	var rows []model.RewardModel
	err := s.DB.WithContext(ctx).
		Order("reward_required_level ASC, reward_name ASC").
		Find(&rows).Error
	return rows, err
}

func (s *RewardService) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.DB.WithContext(ctx).Model(&model.RewardModel{}).Count(&n).Error
	return n, err
}

/* ===============================
   User
=================================*/

func (s *RewardService) loadUser(db *gorm.DB, userID uuid.UUID) (*userModel.UserModel, error) {
	var u userModel.UserModel
	if err := db.Select("id", "user_level", "user_experience_points").
		Where("id = ?", userID).
		First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("user %s not found", userID)
		}
		return nil, err
	}
	return &u, nil
}

// ListAvailable: reward dengan required level <= level user, urut required level.
func (s *RewardService) ListAvailable(ctx context.Context, userID uuid.UUID) ([]AvailableReward, error) {
	db := s.DB.WithContext(ctx)
	u, err := s.loadUser(db, userID)
	if err != nil {
		return nil, err
	}

	var rewards []model.RewardModel
	if err := db.Where("reward_required_level <= ?", u.Level).
		Order("reward_required_level ASC, reward_name ASC").
		Find(&rewards).Error; err != nil {
		return nil, err
	}

	var claimedIDs []uuid.UUID
	if err := db.Model(&model.UserRewardModel{}).
		Where("user_reward_user_id = ?", userID).
		Pluck("user_reward_reward_id", &claimedIDs).Error; err != nil {
		return nil, err
	}
	claimed := make(map[uuid.UUID]struct{}, len(claimedIDs))
	for _, id := range claimedIDs {
		claimed[id] = struct{}{}
	}

	out := make([]AvailableReward, 0, len(rewards))
	for _, r := range rewards {
		_, ok := claimed[r.RewardID]
		out = append(out, AvailableReward{RewardModel: r, IsClaimed: ok})
	}
	return out, nil
}

// Claim: cek level, lalu XP, lalu klaim ganda. XP tidak dikurangi.
// Unique (user, reward) menjadi penentu kalau dua klaim datang bersamaan.
func (s *RewardService) Claim(ctx context.Context, rewardID, userID uuid.UUID) (*model.UserRewardModel, error) {
	var claim *model.UserRewardModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var r model.RewardModel
		if err := tx.Where("reward_id = ?", rewardID).First(&r).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NotFound("reward %s not found", rewardID)
			}
			return err
		}
		u, err := s.loadUser(tx, userID)
		if err != nil {
			return err
		}

		if u.Level < r.RewardRequiredLevel {
			return apperror.InvalidArgument("level %d required to claim this reward (current %d)", r.RewardRequiredLevel, u.Level)
		}
		if u.ExperiencePoints < r.RewardRequiredExperience {
			return apperror.InvalidArgument("%d experience points required to claim this reward (current %d)", r.RewardRequiredExperience, u.ExperiencePoints)
		}

		var exists int64
		if err := tx.Model(&model.UserRewardModel{}).
			Where("user_reward_user_id = ? AND user_reward_reward_id = ?", userID, rewardID).
			Count(&exists).Error; err != nil {
			return err
		}
		if exists > 0 {
			return apperror.InvalidState("reward already claimed")
		}

		row := &model.UserRewardModel{
			UserRewardUserID:    userID,
			UserRewardRewardID:  rewardID,
			UserRewardClaimedAt: s.Now(),
		}
		if err := tx.Create(row).Error; err != nil {
			if apperror.IsUniqueViolation(err) {
				return apperror.InvalidState("reward already claimed")
			}
			return fmt.Errorf("insert user reward: %w", err)
		}
		claim = row
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[REWARD] User %s claimed reward %s", userID, rewardID)
	s.Cache.InvalidateUser(userID)
	return claim, nil
}

// ListClaimed: reward yang sudah diklaim user, terbaru dulu.
func (s *RewardService) ListClaimed(ctx context.Context, userID uuid.UUID) ([]ClaimedReward, error) {
	var rows []ClaimedReward
	err := s.DB.WithContext(ctx).
		Table("user_rewards ur").
		Select("r.*, ur.user_reward_claimed_at AS claimed_at").
		Joins("JOIN rewards r ON r.reward_id = ur.user_reward_reward_id").
		Where("ur.user_reward_user_id = ?", userID).
		Order("ur.user_reward_claimed_at DESC").
		Scan(&rows).Error
	return rows, err
}

func (s *RewardService) CountClaimed(ctx context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	err := s.DB.WithContext(ctx).Model(&model.UserRewardModel{}).
		Where("user_reward_user_id = ?", userID).
		Count(&n).Error
	return n, err
}

// DeleteForUser dipanggil di transaksi hapus user.
func DeleteForUser(tx *gorm.DB, userID uuid.UUID) error {
	return tx.Where("user_reward_user_id = ?", userID).Delete(&model.UserRewardModel{}).Error
}
