package service

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"questku_backend/internals/databases/testdb"
	userModel "questku_backend/internals/features/users/user/model"
	"questku_backend/internals/helpers/apperror"
)

func TestAddExperienceLevelsUp(t *testing.T) {
	db := testdb.New(t)
	u := testdb.CreateUser(t, db, "alice")

	res, err := AddExperience(db, u.ID, 400, "QUEST_CHECK_IN", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(400), res.TotalXP)
	assert.Equal(t, 1, res.LevelBefore)
	assert.Equal(t, 3, res.LevelAfter)
	assert.True(t, res.LeveledUp)

	res, err = AddExperience(db, u.ID, 10, "QUEST_CHECK_IN", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(410), res.TotalXP)
	assert.False(t, res.LeveledUp)

	var after userModel.UserModel
	require.NoError(t, db.First(&after, "id = ?", u.ID).Error)
	assert.Equal(t, int64(410), after.ExperiencePoints)
	assert.Equal(t, 3, after.Level)

	logs, total, err := ListLogs(db, u.ID, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, logs, 2)
}

func TestAddExperienceNeverLowersLevel(t *testing.T) {
	db := testdb.New(t)
	u := testdb.CreateUser(t, db, "bob")
	// level yang lebih tinggi dari rumus (mis. diset admin) tetap dipertahankan
	require.NoError(t, db.Model(&userModel.UserModel{}).Where("id = ?", u.ID).Update("user_level", 7).Error)

	res, err := AddExperience(db, u.ID, 100, "QUEST_CHECK_IN", nil)
	require.NoError(t, err)
	assert.Equal(t, 7, res.LevelAfter)
	assert.False(t, res.LeveledUp)
}

func TestAddExperienceRejectsBadInput(t *testing.T) {
	db := testdb.New(t)
	u := testdb.CreateUser(t, db, "carol")

	for _, amount := range []int64{0, -5} {
		_, err := AddExperience(db, u.ID, amount, "QUEST_CHECK_IN", nil)
		assert.True(t, errors.Is(err, apperror.ErrInvalidArgument), "amount %d", amount)
	}

	_, err := AddExperience(db, uuid.New(), 10, "QUEST_CHECK_IN", nil)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))

	_, total, err := ListLogs(db, u.ID, 10, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestDeleteForUserRemovesLogs(t *testing.T) {
	db := testdb.New(t)
	u := testdb.CreateUser(t, db, "dave")
	other := testdb.CreateUser(t, db, "erin")
	_, err := AddExperience(db, u.ID, 50, "QUEST_CHECK_IN", nil)
	require.NoError(t, err)
	_, err = AddExperience(db, other.ID, 50, "QUEST_CHECK_IN", nil)
	require.NoError(t, err)

	require.NoError(t, DeleteForUser(db, u.ID))
	_, n, err := ListLogs(db, u.ID, 10, 0)
	require.NoError(t, err)
	assert.Zero(t, n)
	_, n, err = ListLogs(db, other.ID, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
