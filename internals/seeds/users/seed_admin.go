package user

import (
	"log"
	"os"

	"tilawahku_backend/internals/constants"
	authRepo "tilawahku_backend/internals/features/users/auth/repository"
	authService "tilawahku_backend/internals/features/users/auth/service"
	"tilawahku_backend/internals/features/users/user/model"

	"gorm.io/gorm"
)

// SeedAdminUser membuat akun admin dari env ADMIN_NAME / ADMIN_PASSWORD.
// Dipanggil setiap start; kalau akunnya sudah ada, dilewati.
func SeedAdminUser(db *gorm.DB) {
	name := os.Getenv("ADMIN_NAME")
	if name == "" {
		name = "admin"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		log.Println("ℹ️ ADMIN_PASSWORD belum diset, seeding admin dilewati.")
		return
	}

	if _, err := authRepo.FindUserByUserName(db, name); err == nil {
		log.Printf("ℹ️ Admin '%s' sudah ada, dilewati.", name)
		return
	}

	// 🔐 Hash password sebelum disimpan
	hashedPassword, err := authService.HashPassword(password)
	if err != nil {
		log.Printf("❌ Gagal hash password admin: %v", err)
		return
	}

	gender := os.Getenv("ADMIN_GENDER")
	if gender != "male" && gender != "female" {
		gender = "male"
	}

	admin := model.UserModel{
		UserName:     name,
		UserPassword: hashedPassword,
		UserGender:   gender,
		UserRole:     constants.RoleAdmin,
		UserIsActive: true,
	}

	if err := db.Create(&admin).Error; err != nil {
		log.Printf("❌ Gagal insert admin '%s': %v", name, err)
		return
	}

	log.Printf("✅ Admin '%s' berhasil dibuat.", name)
}
