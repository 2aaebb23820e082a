// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"context"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	authService "questku_backend/internals/features/users/auth/service"
	helper "questku_backend/internals/helpers"
)

// Authenticator memverifikasi raw JWT (signature, exp, blacklist, user aktif).
type Authenticator interface {
	Authenticate(ctx context.Context, raw string) (*authService.Claims, error)
}

func AuthMiddleware(auth Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 1) Authorization header (atau cookie)
		tokenString := helper.GetRawAccessToken(c)
		if tokenString == "" {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - No token provided")
		}

		// 2) Verifikasi lengkap
		claims, err := auth.Authenticate(c.UserContext(), tokenString)
		switch {
		case errors.Is(err, authService.ErrInvalidToken):
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - Invalid or expired token")
		case errors.Is(err, authService.ErrInactive):
			return helper.JsonError(c, fiber.StatusForbidden, "Akun Anda telah dinonaktifkan")
		case err != nil:
			log.Println("[ERROR] AuthMiddleware:", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
		}

		// 3) Simpan ke context
		c.Locals(helper.LocUserID, claims.UserID.String())
		c.Locals(helper.LocUserRole, claims.Role)
		helper.SetRawAccessToken(c, tokenString)
		return c.Next()
	}
}
