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

	authHelper "questku_backend/internals/features/users/auth/helper"
	authRepo "questku_backend/internals/features/users/auth/repository"
	userModel "questku_backend/internals/features/users/user/model"
	"questku_backend/internals/helpers/apperror"
)

// ErrInvalidCredentials: identifier/password salah. Dipetakan ke 401 oleh controller.
var ErrInvalidCredentials = errors.New("invalid identifier or password")

// ErrInactive: akun dinonaktifkan admin.
var ErrInactive = errors.New("account is deactivated")

type AuthService struct {
	DB     *gorm.DB
	Tokens *TokenService
}

func NewAuthService(db *gorm.DB, tokens *TokenService) *AuthService {
	return &AuthService{DB: db, Tokens: tokens}
}

type RegisterInput struct {
	UserName        string
	Email           string
	Password        string
	ConfirmPassword string
}

func (in *RegisterInput) validate() error {
	in.UserName = authHelper.NormalizeUsername(in.UserName)
	in.Email = authHelper.NormalizeEmail(in.Email)

	if n := utf8.RuneCountInString(in.UserName); n < 3 || n > 50 {
		return apperror.InvalidArgument("username must be between 3 and 50 characters")
	}
	if !authHelper.IsValidUsername(in.UserName) {
		return apperror.InvalidArgument("username may only contain letters, digits, '.', '_' and '-'")
	}
	if !authHelper.IsValidEmail(in.Email) {
		return apperror.InvalidArgument("email is not valid")
	}
	if len(in.Password) < 6 {
		return apperror.InvalidArgument("password must be at least 6 characters")
	}
	if in.Password != in.ConfirmPassword {
		return apperror.InvalidArgument("passwords do not match")
	}
	return nil
}

// Register: user baru level 1, XP 0, role user.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*userModel.UserModel, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	db := s.DB.WithContext(ctx)

	if taken, err := authRepo.IsUsernameTaken(db, in.UserName); err != nil {
		return nil, err
	} else if taken {
		return nil, apperror.Conflict("username already taken")
	}
	if taken, err := authRepo.IsEmailTaken(db, in.Email, nil); err != nil {
		return nil, err
	} else if taken {
		return nil, apperror.Conflict("email already registered")
	}

	hash, err := authHelper.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &userModel.UserModel{
		UserName: in.UserName,
		Email:    in.Email,
		Password: hash,
		Role:     userModel.RoleUser,
		Level:    1,
		IsActive: true,
	}
	if err := authRepo.CreateUser(db, u); err != nil {
		if apperror.IsUniqueViolation(err) {
			return nil, apperror.Wrap(apperror.KindConflict, err, "username or email already registered")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	log.Printf("[AUTH] User %s registered (%s)", u.UserName, u.ID)
	return u, nil
}

type LoginResult struct {
	AccessToken string
	ExpiresAt   time.Time
	User        *userModel.UserModel
}

// Login dengan username atau email.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*LoginResult, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return nil, apperror.InvalidArgument("identifier and password are required")
	}
	// username disimpan ter-normalisasi; email lower-case.
	lookup := authHelper.NormalizeUsername(identifier)

	u, err := authRepo.FindUserByEmailOrUsername(s.DB.WithContext(ctx), lookup)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := authHelper.CheckPasswordHash(u.Password, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !u.IsActive {
		return nil, ErrInactive
	}

	tok, exp, err := s.Tokens.Issue(u)
	if err != nil {
		return nil, err
	}
	return &LoginResult{AccessToken: tok, ExpiresAt: exp, User: u}, nil
}

// Logout mem-blacklist token sampai exp-nya lewat. Token rusak diabaikan (idempotent).
func (s *AuthService) Logout(ctx context.Context, raw string) error {
	claims, err := s.Tokens.Parse(raw, true)
	if err != nil {
		log.Printf("[AUTH] logout with unparseable token ignored: %v", err)
		return nil
	}
	if !claims.ExpiresAt.After(s.Tokens.Now()) {
		return nil
	}
	if err := authRepo.BlacklistToken(s.DB.WithContext(ctx), s.Tokens.Hash(raw), claims.ExpiresAt); err != nil {
		return fmt.Errorf("blacklist token: %w", err)
	}
	return nil
}

// Authenticate dipakai middleware: token valid, tidak di-blacklist, user masih aktif.
func (s *AuthService) Authenticate(ctx context.Context, raw string) (*Claims, error) {
	claims, err := s.Tokens.Parse(raw, false)
	if err != nil {
		return nil, err
	}
	db := s.DB.WithContext(ctx)

	black, err := authRepo.IsBlacklisted(db, s.Tokens.Hash(raw))
	if err != nil {
		return nil, fmt.Errorf("check blacklist: %w", err)
	}
	if black {
		return nil, fmt.Errorf("%w: token is blacklisted", ErrInvalidToken)
	}

	u, err := authRepo.FindUserByID(db, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user not found", ErrInvalidToken)
		}
		return nil, err
	}
	if !u.IsActive {
		return nil, ErrInactive
	}
	// role diambil dari DB supaya perubahan role admin langsung berlaku
	claims.Role = u.Role
	return claims, nil
}

// PurgeBlacklist menghapus entry yang token-nya sudah kadaluarsa.
func (s *AuthService) PurgeBlacklist(ctx context.Context) (int64, error) {
	return authRepo.CleanupExpiredBlacklist(s.DB.WithContext(ctx), s.Tokens.Now())
}

// Me: profil user login (tanpa password).
func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*userModel.UserModel, error) {
	u, err := authRepo.FindUserByID(s.DB.WithContext(ctx), userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("user %s not found", userID)
		}
		return nil, err
	}
	return u, nil
}
