package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	authHelper "questku_backend/internals/features/users/auth/helper"
	authRepo "questku_backend/internals/features/users/auth/repository"
	"questku_backend/internals/helpers/apperror"
)

// ========================== CHANGE PASSWORD ==========================
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, current, next string) error {
	if len(next) < 6 {
		return apperror.InvalidArgument("password must be at least 6 characters")
	}
	db := s.DB.WithContext(ctx)

	u, err := authRepo.FindUserByID(db, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("user %s not found", userID)
		}
		return err
	}
	if err := authHelper.CheckPasswordHash(u.Password, current); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := authHelper.HashPassword(next)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return authRepo.UpdateUserPassword(db, userID, hash)
}
