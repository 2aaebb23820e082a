package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"questku_backend/internals/features/analytics"
	achievementService "questku_backend/internals/features/gamification/achievements/service"
	rewardService "questku_backend/internals/features/gamification/rewards/service"
	notificationService "questku_backend/internals/features/home/notifications/service"
	"questku_backend/internals/features/progress/leveling"
	pointService "questku_backend/internals/features/progress/points/service"
	questService "questku_backend/internals/features/quests/quest/service"
	authHelper "questku_backend/internals/features/users/auth/helper"
	"questku_backend/internals/features/users/user/model"
	"questku_backend/internals/helpers/apperror"
	"questku_backend/internals/helpers/cache"
)

type UserService struct {
	DB        *gorm.DB
	Analytics analytics.Recorder
	Cache     *cache.Store
}

func NewUserService(db *gorm.DB, recorder analytics.Recorder, c *cache.Store) *UserService {
	if recorder == nil {
		recorder = analytics.Noop{}
	}
	return &UserService{DB: db, Analytics: recorder, Cache: c}
}

type Profile struct {
	User     *model.UserModel
	Progress leveling.Progress
}

func (s *UserService) Get(ctx context.Context, userID uuid.UUID) (*model.UserModel, error) {
	var u model.UserModel
	if err := s.DB.WithContext(ctx).Where("id = ?", userID).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("user %s not found", userID)
		}
		return nil, err
	}
	return &u, nil
}

func (s *UserService) Profile(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	u, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &Profile{User: u, Progress: leveling.NextLevelProgress(u.ExperiencePoints)}, nil
}

// UpdateEmail: email harus unik di antara user lain.
func (s *UserService) UpdateEmail(ctx context.Context, userID uuid.UUID, email string) (*model.UserModel, error) {
	email = authHelper.NormalizeEmail(email)
	if !authHelper.IsValidEmail(email) {
		return nil, apperror.InvalidArgument("email is not valid")
	}
	u, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u.Email == email {
		return u, nil
	}

	var n int64
	if err := s.DB.WithContext(ctx).Model(&model.UserModel{}).
		Where("email = ? AND id <> ?", email, userID).
		Count(&n).Error; err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, apperror.Conflict("email already registered")
	}

	if err := s.DB.WithContext(ctx).Model(u).Update("email", email).Error; err != nil {
		if apperror.IsUniqueViolation(err) {
			return nil, apperror.Wrap(apperror.KindConflict, err, "email already registered")
		}
		return nil, fmt.Errorf("update email: %w", err)
	}
	u.Email = email
	return u, nil
}

/* ===============================
   Admin
=================================*/

type ListFilter struct {
	Query  string
	Role   string
	Limit  int
	Offset int
}

// List: urut created_at terbaru, pencarian di username/email.
func (s *UserService) List(ctx context.Context, f ListFilter) ([]model.UserModel, int64, error) {
	q := s.DB.WithContext(ctx).Model(&model.UserModel{})
	if term := strings.ToLower(strings.TrimSpace(f.Query)); term != "" {
		like := "%" + term + "%"
		q = q.Where("LOWER(user_name) LIKE ? OR LOWER(email) LIKE ?", like, like)
	}
	if f.Role != "" {
		q = q.Where("role = ?", f.Role)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []model.UserModel
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}
	if err := q.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (s *UserService) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.DB.WithContext(ctx).Model(&model.UserModel{}).Count(&n).Error
	return n, err
}

// ParseRole menerima "USER"/"ADMIN" (case-insensitive).
func ParseRole(raw string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case model.RoleUser:
		return model.RoleUser, nil
	case model.RoleAdmin:
		return model.RoleAdmin, nil
	}
	return "", apperror.InvalidArgument("unknown role %q", raw)
}

func (s *UserService) UpdateRole(ctx context.Context, actorID, userID uuid.UUID, role string) (*model.UserModel, error) {
	role, err := ParseRole(role)
	if err != nil {
		return nil, err
	}
	if actorID == userID && role != model.RoleAdmin {
		return nil, apperror.InvalidState("admins cannot demote themselves")
	}
	u, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Model(u).Update("role", role).Error; err != nil {
		return nil, fmt.Errorf("update role: %w", err)
	}
	u.Role = role
	log.Printf("[USER] Role of %s set to %s by %s", userID, role, actorID)
	return u, nil
}

// SetActive: user nonaktif ditolak saat login dan oleh middleware.
func (s *UserService) SetActive(ctx context.Context, actorID, userID uuid.UUID, active bool) (*model.UserModel, error) {
	if actorID == userID && !active {
		return nil, apperror.InvalidState("admins cannot deactivate themselves")
	}
	u, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Model(u).Update("is_active", active).Error; err != nil {
		return nil, fmt.Errorf("update is_active: %w", err)
	}
	u.IsActive = active
	return u, nil
}

// Delete menghapus user beserta quest, check-in, badge, klaim reward, notifikasi dan xp log dalam satu transaksi.
func (s *UserService) Delete(ctx context.Context, actorID, userID uuid.UUID) error {
	if actorID == userID {
		return apperror.InvalidState("admins cannot delete themselves")
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var u model.UserModel
		if err := tx.Select("id").Where("id = ?", userID).First(&u).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NotFound("user %s not found", userID)
			}
			return err
		}
		steps := []func(*gorm.DB, uuid.UUID) error{
			notificationService.DeleteForUser,
			questService.DeleteForUser,
			achievementService.DeleteForUser,
			rewardService.DeleteForUser,
			pointService.DeleteForUser,
		}
		for _, step := range steps {
			if err := step(tx, userID); err != nil {
				return err
			}
		}
		return tx.Where("id = ?", userID).Delete(&model.UserModel{}).Error
	})
	if err != nil {
		return err
	}

	log.Printf("[USER] User %s deleted by %s", userID, actorID)
	s.Cache.InvalidateUser(userID)
	if err := s.Analytics.DeleteAnalyticsData(ctx, userID); err != nil {
		log.Printf("[WARN] analytics delete for %s failed: %v", userID, err)
	}
	return nil
}
