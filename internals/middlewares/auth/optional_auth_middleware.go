// internals/middlewares/auth/optional_auth_middleware.go
package auth

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"

	"tilawahku_backend/internals/configs"
)

// OptionalAuthMiddleware dipakai di endpoint publik yang tetap ingin tahu
// siapa pengirimnya kalau token dikirim (mis. setoran rekaman pada scope
// global). Token invalid TIDAK menolak request; lanjut sebagai anonymous.
func OptionalAuthMiddleware(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := extractBearerToken(c)
		if err != nil {
			// tidak ada token sama sekali, lanjut sebagai anonymous
			return c.Next()
		}

		secretKey := configs.JWTSecret
		if secretKey == "" {
			log.Println("[ERROR] JWT_SECRET kosong, lanjut sebagai anonymous")
			return c.Next()
		}

		claims := jwt.MapClaims{}
		parser := jwt.Parser{SkipClaimsValidation: true}
		if _, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(secretKey), nil
		}); err != nil {
			log.Println("[WARN] Gagal parse token, lanjut sebagai anonymous:", err)
			return c.Next()
		}

		if err := validateTokenExpiry(claims, 30*time.Second); err != nil {
			log.Println("[WARN] Token expired, lanjut sebagai anonymous")
			return c.Next()
		}

		userID, err := extractUserID(claims)
		if err != nil {
			log.Println("[WARN] Token tanpa user ID valid, lanjut sebagai anonymous")
			return c.Next()
		}

		if err := ensureUserActive(db, userID); err != nil {
			log.Println("[WARN] User tidak ditemukan atau nonaktif, lanjut sebagai anonymous")
			return c.Next()
		}

		c.Locals("user_id", userID.String())
		storeBasicClaimsToLocals(c, claims)

		log.Println("[SUCCESS] Token valid, lanjut sebagai user:", userID)
		return c.Next()
	}
}
