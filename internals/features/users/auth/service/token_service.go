package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	userModel "questku_backend/internals/features/users/user/model"
)

const accessTTLDefault = 24 * time.Hour

var ErrInvalidToken = errors.New("invalid token")

// Claims: isi access token (id, role, exp).
type Claims struct {
	UserID    uuid.UUID
	Role      string
	ExpiresAt time.Time
}

type TokenService struct {
	secret []byte
	ttl    time.Duration
	Now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = accessTTLDefault
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, Now: time.Now}
}

// Issue membuat JWT HS256 untuk user.
func (s *TokenService) Issue(u *userModel.UserModel) (string, time.Time, error) {
	if len(s.secret) == 0 {
		return "", time.Time{}, errors.New("JWT secret is not configured")
	}
	now := s.Now().UTC()
	exp := now.Add(s.ttl)
	claims := jwt.MapClaims{
		"id":        u.ID.String(),
		"role":      u.Role,
		"user_name": u.UserName,
		"iat":       now.Unix(),
		"exp":       exp.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp, nil
}

// Parse memverifikasi signature dan exp. skipExpiry dipakai logout (token kadaluarsa tetap boleh logout).
func (s *TokenService) Parse(raw string, skipExpiry bool) (*Claims, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || len(s.secret) == 0 {
		return nil, ErrInvalidToken
	}

	mc := jwt.MapClaims{}
	parser := jwt.Parser{SkipClaimsValidation: true, ValidMethods: []string{jwt.SigningMethodHS256.Alg()}}
	if _, err := parser.ParseWithClaims(raw, mc, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	idRaw, _ := mc["id"].(string)
	id, err := uuid.Parse(strings.TrimSpace(idRaw))
	if err != nil {
		return nil, fmt.Errorf("%w: missing user id", ErrInvalidToken)
	}
	expF, ok := mc["exp"].(float64)
	if !ok {
		return nil, fmt.Errorf("%w: missing exp", ErrInvalidToken)
	}
	exp := time.Unix(int64(expF), 0).UTC()
	if !skipExpiry && !s.Now().UTC().Before(exp) {
		return nil, fmt.Errorf("%w: expired at %s", ErrInvalidToken, exp.Format(time.RFC3339))
	}
	role, _ := mc["role"].(string)

	return &Claims{UserID: id, Role: role, ExpiresAt: exp}, nil
}

// Hash: HMAC-SHA256(secret, token) hex. Yang disimpan di blacklist hanya hash ini.
func (s *TokenService) Hash(raw string) string {
	m := hmac.New(sha256.New, s.secret)
	m.Write([]byte(strings.TrimSpace(raw)))
	return hex.EncodeToString(m.Sum(nil))
}
