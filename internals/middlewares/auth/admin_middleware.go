// internals/middlewares/auth/admin_middleware.go
package auth

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"

	"tilawahku_backend/internals/configs"
	"tilawahku_backend/internals/constants"
)

// AdminAuthMiddleware memvalidasi token admin. Token admin ditandatangani
// dengan ADMIN_JWT_SECRET (bukan JWT_SECRET), jadi token kontributor biasa
// otomatis ditolak di verifikasi signature.
func AdminAuthMiddleware(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		log.Printf("🔥 AdminAuthMiddleware: %s %s", c.Method(), c.OriginalURL())

		tokenString, err := extractBearerToken(c)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}

		secretKey := configs.AdminJWTSecret
		if secretKey == "" {
			log.Println("[ERROR] ADMIN_JWT_SECRET kosong")
			return fiber.NewError(fiber.StatusInternalServerError, "Missing Admin JWT Secret")
		}

		// Parse + verifikasi algoritma (HMAC only)
		claims := jwt.MapClaims{}
		tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("invalid signing method")
			}
			return []byte(secretKey), nil
		}, jwt.WithoutClaimsValidation())
		if err != nil || !tok.Valid {
			log.Println("[ERROR] Gagal parse token admin:", err)
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token parse error")
		}

		if err := validateTokenExpiry(claims, 30*time.Second); err != nil {
			log.Println("[ERROR] Exp validation:", err)
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token expired")
		}

		// Klaim is_admin wajib true
		if isAdmin, ok := claims["is_admin"].(bool); !ok || !isAdmin {
			log.Println("[WARN] Token tanpa klaim is_admin mencoba akses admin")
			return fiber.NewError(fiber.StatusForbidden, constants.RoleErrorAdmin("fitur admin"))
		}

		userID, err := extractUserID(claims)
		if err != nil {
			log.Println("[ERROR] user_id:", err)
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Invalid or missing user ID")
		}
		c.Locals("user_id", userID.String())

		if err := ensureUserActive(db, userID); err != nil {
			log.Println("[ERROR] ensureUserActive:", err)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - User not found")
			}
			return fiber.NewError(fiber.StatusForbidden, "Akun Anda telah dinonaktifkan")
		}

		c.Locals("is_admin", true)
		storeBasicClaimsToLocals(c, claims)

		log.Println("[SUCCESS] Token admin valid, lanjutkan request")
		return c.Next()
	}
}
