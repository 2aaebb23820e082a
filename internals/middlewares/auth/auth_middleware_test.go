package auth

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"questku_backend/internals/databases/testdb"
	authService "questku_backend/internals/features/users/auth/service"
	userModel "questku_backend/internals/features/users/user/model"
	helper "questku_backend/internals/helpers"
)

func newProtectedApp(t *testing.T) (*fiber.App, *authService.AuthService) {
	t.Helper()
	db := testdb.New(t)
	svc := authService.NewAuthService(db, authService.NewTokenService("mw-secret", time.Hour))

	app := fiber.New()
	api := app.Group("/api/u", AuthMiddleware(svc))
	api.Get("/whoami", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"id": c.Locals(helper.LocUserID), "role": c.Locals(helper.LocUserRole)})
	})
	admin := app.Group("/api/a", AuthMiddleware(svc), OnlyRolesSlice("admin only", []string{userModel.RoleAdmin}))
	admin.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })
	return app, svc
}

func get(t *testing.T, app *fiber.App, path, token string) int {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp.StatusCode
}

func login(t *testing.T, svc *authService.AuthService, name string) string {
	t.Helper()
	ctx := context.Background()
	_, err := svc.Register(ctx, authService.RegisterInput{
		UserName: name, Email: name + "@example.com", Password: "secret1", ConfirmPassword: "secret1",
	})
	require.NoError(t, err)
	res, err := svc.Login(ctx, name, "secret1")
	require.NoError(t, err)
	return res.AccessToken
}

func TestAuthMiddleware(t *testing.T) {
	app, svc := newProtectedApp(t)
	token := login(t, svc, "alice")

	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, "/api/u/whoami", ""))
	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, "/api/u/whoami", "not-a-jwt"))
	assert.Equal(t, fiber.StatusOK, get(t, app, "/api/u/whoami", token))

	// role user ditolak di group admin
	assert.Equal(t, fiber.StatusForbidden, get(t, app, "/api/a/ping", token))

	require.NoError(t, svc.Logout(context.Background(), token))
	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, "/api/u/whoami", token))
}

func TestAdminGroupAllowsAdmins(t *testing.T) {
	app, svc := newProtectedApp(t)
	token := login(t, svc, "root")
	require.NoError(t, svc.DB.Model(&userModel.UserModel{}).
		Where("user_name = ?", "root").
		Update("role", userModel.RoleAdmin).Error)

	assert.Equal(t, fiber.StatusOK, get(t, app, "/api/a/ping", token))
}

func TestInactiveUserRejected(t *testing.T) {
	app, svc := newProtectedApp(t)
	token := login(t, svc, "bob")
	require.NoError(t, svc.DB.Model(&userModel.UserModel{}).
		Where("user_name = ?", "bob").
		Update("is_active", false).Error)

	assert.Equal(t, fiber.StatusForbidden, get(t, app, "/api/u/whoami", token))
}
