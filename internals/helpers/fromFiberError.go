package helper

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"questku_backend/internals/helpers/apperror"
)

// StatusForKind memetakan kind error domain ke HTTP status.
func StatusForKind(kind apperror.Kind) int {
	switch kind {
	case apperror.KindInvalidArgument:
		return fiber.StatusBadRequest
	case apperror.KindNotFound:
		return fiber.StatusNotFound
	case apperror.KindUnauthorized:
		return fiber.StatusForbidden
	case apperror.KindInvalidState, apperror.KindDuplicateCheckIn, apperror.KindConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// FromError mengubah error dari service / Transaction menjadi response JSON konsisten.
// *apperror.Error → status sesuai kind, *fiber.Error → code-nya, sisanya 500.
func FromError(c *fiber.Ctx, err error) error {
	var ae *apperror.Error
	if errors.As(err, &ae) {
		return JsonErrorCode(c, StatusForKind(ae.Kind), string(ae.Kind), ae.Message)
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}
	log.Printf("[ERROR] %s %s: %v", c.Method(), c.OriginalURL(), err)
	return JsonError(c, fiber.StatusInternalServerError, "internal server error")
}
