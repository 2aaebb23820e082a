package constants

import (
	"fmt"

	userModel "questku_backend/internals/features/users/user/model"
)

// Template pesan error role
const ErrOnlyAdminsCanAccess = "Hanya admin yang boleh mengakses fitur %s."

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

var (
	AllRoles  = []string{userModel.RoleUser, userModel.RoleAdmin}
	AdminOnly = []string{userModel.RoleAdmin}
)
