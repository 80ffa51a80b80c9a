package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"tilawahku_backend/internals/features/users/auth/dto"
	"tilawahku_backend/internals/features/users/auth/service"
	models "tilawahku_backend/internals/features/users/user/model"
	helpers "tilawahku_backend/internals/helpers"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

// Me mengembalikan profil user yang sedang login (dari Locals auth).
func (ac *AuthController) Me(c *fiber.Ctx) error {
	userUUID, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var user models.UserModel
	if err := ac.DB.First(&user, "user_id = ?", userUUID).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "User tidak ditemukan")
	}

	return helpers.JsonOK(c, "ok", dto.NewUserResponse(&user))
}

func (ac *AuthController) Register(c *fiber.Ctx) error {
	return service.Register(ac.DB, c)
}

func (ac *AuthController) Login(c *fiber.Ctx) error {
	return service.Login(ac.DB, c)
}

func (ac *AuthController) AdminLogin(c *fiber.Ctx) error {
	return service.AdminLogin(ac.DB, c)
}
