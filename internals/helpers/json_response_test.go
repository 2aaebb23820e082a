package helper

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"questku_backend/internals/helpers/apperror"
)

func decode(t *testing.T, body io.Reader) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&out))
	return out
}

func TestFromErrorMapsKinds(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{apperror.InvalidArgument("bad"), fiber.StatusBadRequest, "INVALID_ARGUMENT"},
		{apperror.NotFound("missing"), fiber.StatusNotFound, "NOT_FOUND"},
		{apperror.Unauthorized("nope"), fiber.StatusForbidden, "UNAUTHORIZED"},
		{apperror.InvalidState("done"), fiber.StatusConflict, "INVALID_STATE"},
		{apperror.DuplicateCheckIn("again"), fiber.StatusConflict, "DUPLICATE_CHECK_IN"},
		{fiber.NewError(fiber.StatusUnauthorized, "token"), fiber.StatusUnauthorized, "UNAUTHORIZED"},
		{io.ErrUnexpectedEOF, fiber.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tc := range cases {
		app := fiber.New()
		err := tc.err
		app.Get("/", func(c *fiber.Ctx) error { return FromError(c, err) })

		resp, e := app.Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, e)
		assert.Equal(t, tc.status, resp.StatusCode, tc.err.Error())
		body := decode(t, resp.Body)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, tc.code, body["error_code"])
	}
}

func TestResolvePagingClamps(t *testing.T) {
	app := fiber.New()
	var got Paging
	app.Get("/", func(c *fiber.Ctx) error {
		got = ResolvePaging(c, 20, 50)
		return nil
	})

	_, err := app.Test(httptest.NewRequest("GET", "/?page=3&per_page=500", nil))
	require.NoError(t, err)
	assert.Equal(t, Paging{Page: 3, PerPage: 50, Offset: 100, Limit: 50}, got)

	_, err = app.Test(httptest.NewRequest("GET", "/?page=-1&limit=x", nil))
	require.NoError(t, err)
	assert.Equal(t, Paging{Page: 1, PerPage: 20, Offset: 0, Limit: 20}, got)
}

func TestBuildPagination(t *testing.T) {
	p := BuildPagination(45, Paging{Page: 2, PerPage: 20}, 20)
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasNext)
	assert.True(t, p.HasPrev)

	empty := BuildPagination(0, Paging{Page: 1, PerPage: 20}, 0)
	assert.Equal(t, 1, empty.TotalPages)
	assert.False(t, empty.HasNext)
}

func TestValidationErrorRendersFieldMap(t *testing.T) {
	type payload struct {
		Title           string `validate:"required,min=3"`
		ConfirmPassword string `validate:"required"`
	}
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return ValidationError(c, Validate.Struct(payload{Title: "ab"}))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	body := decode(t, resp.Body)
	errs := body["errors"].(map[string]any)
	assert.Contains(t, errs, "title")
	assert.Contains(t, errs, "confirm_password")
}
