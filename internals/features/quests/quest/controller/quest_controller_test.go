package controller

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"questku_backend/internals/databases/testdb"
	"questku_backend/internals/features/quests/quest/model"
	"questku_backend/internals/features/quests/quest/service"
	userModel "questku_backend/internals/features/users/user/model"
	helper "questku_backend/internals/helpers"
	"questku_backend/internals/helpers/cache"
)

var monday = time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

func newApp(t *testing.T) (*fiber.App, *service.QuestService, *userModel.UserModel) {
	t.Helper()
	db := testdb.New(t)
	user := testdb.CreateUser(t, db, "alice")

	svc := service.NewQuestService(db, nil, nil, nil, cache.New(16, time.Minute))
	svc.Now = func() time.Time { return monday.Add(8 * time.Hour) }
	ctrl := NewQuestController(svc)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if raw := c.Get("X-Test-User"); raw != "" {
			c.Locals(helper.LocUserID, raw)
			c.Locals(helper.LocUserRole, c.Get("X-Test-Role", userModel.RoleUser))
		}
		return c.Next()
	})
	app.Post("/quests", ctrl.Create)
	app.Get("/quests", ctrl.ListMine)
	app.Get("/quests/:id", ctrl.Detail)
	app.Post("/quests/:id/check-in", ctrl.CheckIn)
	app.Delete("/quests/:id", ctrl.Delete)
	return app, svc, user
}

func call(t *testing.T, app *fiber.App, method, path, body string, userID uuid.UUID) (int, map[string]any) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != uuid.Nil {
		req.Header.Set("X-Test-User", userID.String())
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestCreateQuestEndpoint(t *testing.T) {
	app, _, user := newApp(t)

	body := `{"quest_title":"Read daily","quest_type":"daily","quest_start_date":"2024-03-04",
		"quest_end_date":"2024-03-10","quest_experience_reward":100,"quest_check_in_goal":4}`
	status, out := call(t, app, http.MethodPost, "/quests", body, user.ID)
	require.Equal(t, fiber.StatusCreated, status, out)
	data := out["data"].(map[string]any)
	assert.Equal(t, "DAILY", data["quest_type"])
	assert.Equal(t, "ACTIVE", data["quest_status"])
	assert.EqualValues(t, 25, data["quest_experience_per_check_in"])

	status, out = call(t, app, http.MethodPost, "/quests", `{"quest_title":"ab"}`, user.ID)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Equal(t, "VALIDATION_ERROR", out["error_code"])

	status, _ = call(t, app, http.MethodPost, "/quests", body, uuid.Nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestCheckInEndpointMapsErrors(t *testing.T) {
	app, svc, user := newApp(t)
	q, err := svc.CreateQuest(context.Background(), user.ID, service.CreateQuestInput{
		Title:            "Stretching",
		Type:             model.QuestTypeDaily,
		StartDate:        monday,
		EndDate:          monday.AddDate(0, 0, 6),
		ExperienceReward: 30,
		CheckInGoal:      3,
	})
	require.NoError(t, err)
	path := "/quests/" + q.QuestID.String() + "/check-in"

	status, out := call(t, app, http.MethodPost, path, "", user.ID)
	require.Equal(t, fiber.StatusCreated, status, out)
	data := out["data"].(map[string]any)
	assert.Equal(t, false, data["completed"])

	status, out = call(t, app, http.MethodPost, path, `{"date":"2024-03-04"}`, user.ID)
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "DUPLICATE_CHECK_IN", out["error_code"])

	status, out = call(t, app, http.MethodPost, path, `{"date":"2024-04-01"}`, user.ID)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "INVALID_ARGUMENT", out["error_code"])

	status, out = call(t, app, http.MethodPost, path, `{"date":"2024-03-05"}`, user.ID)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "INVALID_ARGUMENT", out["error_code"])

	status, _ = call(t, app, http.MethodPost, path, `{"date":"04/03/2024"}`, user.ID)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, out = call(t, app, http.MethodPost, path, "", uuid.New())
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, "UNAUTHORIZED", out["error_code"])

	status, out = call(t, app, http.MethodPost, "/quests/"+uuid.NewString()+"/check-in", "", user.ID)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", out["error_code"])
}

func TestListAndDetailEndpoints(t *testing.T) {
	app, svc, user := newApp(t)
	q, err := svc.CreateQuest(context.Background(), user.ID, service.CreateQuestInput{
		Title:            "Weekly review",
		Type:             model.QuestTypeWeekly,
		StartDate:        monday,
		EndDate:          monday.AddDate(0, 0, 20),
		ExperienceReward: 90,
		CheckInGoal:      3,
	})
	require.NoError(t, err)

	status, out := call(t, app, http.MethodGet, "/quests?status=active", "", user.ID)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, out["data"], 1)

	status, _ = call(t, app, http.MethodGet, "/quests?status=bogus", "", user.ID)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, out = call(t, app, http.MethodGet, "/quests/"+q.QuestID.String(), "", user.ID)
	require.Equal(t, fiber.StatusOK, status)
	data := out["data"].(map[string]any)
	assert.Equal(t, true, data["can_check_in"])

	status, _ = call(t, app, http.MethodDelete, "/quests/"+q.QuestID.String(), "", user.ID)
	assert.Equal(t, fiber.StatusOK, status)
	status, _ = call(t, app, http.MethodGet, "/quests/"+q.QuestID.String(), "", user.ID)
	assert.Equal(t, fiber.StatusNotFound, status)
}
