package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsMatchesByKind(t *testing.T) {
	err := NotFound("quest %s not found", "abc")

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrInvalidState))
	assert.Equal(t, "quest abc not found", err.Error())
}

func TestKindOfWrapped(t *testing.T) {
	base := DuplicateCheckIn("already checked in today")
	wrapped := fmt.Errorf("check-in: %w", base)

	assert.Equal(t, KindDuplicateCheckIn, KindOf(wrapped))
	assert.True(t, errors.Is(wrapped, ErrDuplicateCheckIn))
	assert.Equal(t, Kind(""), KindOf(errors.New("plain")))
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("unique violation")
	err := Wrap(KindConflict, cause, "username already taken")

	assert.True(t, errors.Is(err, cause))
	assert.True(t, errors.Is(err, ErrConflict))
	assert.Contains(t, err.Error(), "unique violation")
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(gorm.ErrDuplicatedKey))
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.True(t, IsUniqueViolation(errors.New("UNIQUE constraint failed: check_ins.quest_id")))
	assert.False(t, IsUniqueViolation(nil))
	assert.False(t, IsUniqueViolation(errors.New("connection reset")))
}
