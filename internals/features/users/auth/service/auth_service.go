package service

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"tilawahku_backend/internals/constants"
	"tilawahku_backend/internals/features/users/auth/dto"
	authRepo "tilawahku_backend/internals/features/users/auth/repository"
	userModel "tilawahku_backend/internals/features/users/user/model"
	helpers "tilawahku_backend/internals/helpers"
)

/* ==========================
   REGISTER
========================== */

func Register(db *gorm.DB, c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.UserName = strings.TrimSpace(req.UserName)

	user := userModel.UserModel{
		UserName:     req.UserName,
		UserPassword: req.Password,
		UserGender:   req.Gender,
	}
	if err := user.Validate(); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	// Hash password
	passwordHash, err := HashPassword(req.Password)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Password hashing failed")
	}
	user.UserPassword = passwordHash

	// Create user. Duplikat nama ditangkap dari unique constraint,
	// bukan dicek dulu, supaya tidak ada race saat dua register bersamaan.
	if err := authRepo.CreateUser(db, &user); err != nil {
		low := strings.ToLower(err.Error())
		if strings.Contains(low, "duplicate key") || strings.Contains(low, "unique") {
			return helpers.JsonError(c, fiber.StatusConflict, "Nama pengguna sudah terdaftar")
		}
		log.Println("[ERROR] Gagal membuat user:", err)
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to create user")
	}

	return helpers.JsonCreated(c, "Registrasi berhasil", dto.NewUserResponse(&user))
}

/* ==========================
   LOGIN (kontributor)
========================== */

func Login(db *gorm.DB, c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid input format")
	}
	req.UserName = strings.TrimSpace(req.UserName)
	if req.UserName == "" || req.Password == "" {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Nama pengguna dan password wajib diisi")
	}

	// Minimal user untuk verifikasi
	userLight, err := authRepo.FindUserByUserNameLight(db, req.UserName)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Nama pengguna atau password salah")
	}
	if !userLight.UserIsActive {
		return helpers.JsonError(c, fiber.StatusForbidden, "Akun Anda telah dinonaktifkan. Hubungi admin.")
	}
	if err := CheckPasswordHash(userLight.UserPassword, req.Password); err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Nama pengguna atau password salah")
	}

	// Full user untuk claims & response
	userFull, err := authRepo.FindUserByID(db, userLight.UserID)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data user")
	}

	token, expiresIn, err := IssueUserToken(*userFull)
	if err != nil {
		log.Println("[ERROR] Gagal membuat token:", err)
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat token")
	}

	return helpers.JsonOK(c, "Login berhasil", dto.AuthResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
		User:        dto.NewUserResponse(userFull),
	})
}

/* ==========================
   LOGIN (admin)
========================== */

func AdminLogin(db *gorm.DB, c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid input format")
	}
	req.UserName = strings.TrimSpace(req.UserName)
	if req.UserName == "" || req.Password == "" {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Nama pengguna dan password wajib diisi")
	}

	userLight, err := authRepo.FindUserByUserNameLight(db, req.UserName)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Nama pengguna atau password salah")
	}
	if !userLight.UserIsActive {
		return helpers.JsonError(c, fiber.StatusForbidden, "Akun Anda telah dinonaktifkan. Hubungi admin.")
	}
	if err := CheckPasswordHash(userLight.UserPassword, req.Password); err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Nama pengguna atau password salah")
	}
	if userLight.UserRole != constants.RoleAdmin {
		log.Println("[WARN] Login admin ditolak, bukan admin:", req.UserName)
		return helpers.JsonError(c, fiber.StatusForbidden, constants.RoleErrorAdmin("login admin"))
	}

	userFull, err := authRepo.FindUserByID(db, userLight.UserID)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data user")
	}

	token, expiresIn, err := IssueAdminToken(*userFull)
	if err != nil {
		log.Println("[ERROR] Gagal membuat token admin:", err)
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat token")
	}

	return helpers.JsonOK(c, "Login admin berhasil", dto.AuthResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
		User:        dto.NewUserResponse(userFull),
	})
}
