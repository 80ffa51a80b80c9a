// internals/helpers/token_locals.go
package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"tilawahku_backend/internals/constants"
)

/* =======================================================================
   Akses klaim token dari c.Locals (diisi middleware auth).
   Key yang dipakai: user_id, user_name, user_gender, userRole, is_admin.
======================================================================= */

// GetUserIDFromToken ambil user_id dari c.Locals("user_id").
// Return 401 kalau belum login, 400 kalau formatnya tidak valid.
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	v := c.Locals("user_id")
	if v == nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "User belum login")
	}

	switch t := v.(type) {
	case uuid.UUID:
		if t == uuid.Nil {
			return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "User belum login")
		}
		return t, nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "User belum login")
		}
		id, err := uuid.Parse(s)
		if err != nil {
			return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "User ID pada token tidak valid")
		}
		return id, nil
	default:
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "User ID pada token tidak valid")
	}
}

// GetUserNameFromToken: nama user dari token, "" bila request anonim.
func GetUserNameFromToken(c *fiber.Ctx) string {
	if v, ok := c.Locals("user_name").(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

// GetUserGenderFromToken: gender dari token, "" bila tidak ada.
func GetUserGenderFromToken(c *fiber.Ctx) string {
	if v, ok := c.Locals("user_gender").(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

// IsAdminFromToken: true hanya pada request yang lolos AdminAuthMiddleware
// atau token user dengan role admin.
func IsAdminFromToken(c *fiber.Ctx) bool {
	if v, ok := c.Locals("is_admin").(bool); ok && v {
		return true
	}
	if v, ok := c.Locals("userRole").(string); ok {
		return v == constants.RoleAdmin
	}
	return false
}
