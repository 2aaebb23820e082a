package user

import (
	"fmt"
	"log"
	"os"

	"github.com/bytedance/sonic"
	"gorm.io/gorm"

	authHelper "questku_backend/internals/features/users/auth/helper"
	"questku_backend/internals/features/users/user/model"
)

type UserSeed struct {
	UserName string `json:"user_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// SeedUsersFromJSON membaca file seed user; file yang tidak ada dilewati.
func SeedUsersFromJSON(db *gorm.DB, filePath string) (int, error) {
	log.Println("📥 Membaca file user:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("read users seed: %w", err)
	}

	var inputs []UserSeed
	if err := sonic.Unmarshal(file, &inputs); err != nil {
		return 0, fmt.Errorf("decode users seed: %w", err)
	}
	return SeedUsers(db, inputs)
}

// SeedUsers idempotent by email/username. Password di-hash bcrypt.
func SeedUsers(db *gorm.DB, inputs []UserSeed) (int, error) {
	created := 0
	for _, data := range inputs {
		name := authHelper.NormalizeUsername(data.UserName)
		email := authHelper.NormalizeEmail(data.Email)
		if name == "" || email == "" || data.Password == "" {
			log.Printf("⚠️ Seed user tanpa username/email/password dilewati")
			continue
		}

		var n int64
		if err := db.Model(&model.UserModel{}).
			Where("email = ? OR user_name = ?", email, name).
			Count(&n).Error; err != nil {
			return created, err
		}
		if n > 0 {
			log.Printf("ℹ️ User '%s' sudah ada, dilewati.", name)
			continue
		}

		hashedPassword, err := authHelper.HashPassword(data.Password)
		if err != nil {
			return created, fmt.Errorf("hash password for %s: %w", name, err)
		}
		role := model.RoleUser
		if data.Role == model.RoleAdmin || data.Role == "ADMIN" {
			role = model.RoleAdmin
		}

		newUser := model.UserModel{
			UserName: name,
			Email:    email,
			Password: hashedPassword,
			Role:     role,
			Level:    1,
			IsActive: true,
		}
		if err := db.Create(&newUser).Error; err != nil {
			return created, fmt.Errorf("insert user %s: %w", name, err)
		}
		log.Printf("✅ Berhasil insert user '%s' (%s)", name, role)
		created++
	}
	return created, nil
}
