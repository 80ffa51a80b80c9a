// internals/features/users/auth/service/token_service.go
package service

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"tilawahku_backend/internals/configs"
	userModel "tilawahku_backend/internals/features/users/user/model"
)

const accessTTLDefault = 24 * time.Hour

func nowUTC() time.Time { return time.Now().UTC() }

/* ==========================
   JWT claims builders
========================== */

func buildUserClaims(user userModel.UserModel, now time.Time) jwt.MapClaims {
	return jwt.MapClaims{
		"typ":         "access",
		"sub":         user.UserID.String(),
		"id":          user.UserID.String(),
		"user_name":   user.UserName,
		"user_gender": user.UserGender,
		"role":        user.UserRole,
		"iat":         now.Unix(),
		"exp":         now.Add(accessTTLDefault).Unix(),
	}
}

func buildAdminClaims(user userModel.UserModel, now time.Time) jwt.MapClaims {
	claims := buildUserClaims(user, now)
	claims["is_admin"] = true
	return claims
}

func signClaims(claims jwt.MapClaims, secret string) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

/* ==========================
   ISSUE TOKENS
========================== */

// IssueUserToken menandatangani token kontributor dengan JWT_SECRET.
func IssueUserToken(user userModel.UserModel) (string, int64, error) {
	secret := strings.TrimSpace(configs.JWTSecret)
	if secret == "" {
		return "", 0, fiber.NewError(fiber.StatusInternalServerError, "JWT_SECRET belum diset")
	}
	token, err := signClaims(buildUserClaims(user, nowUTC()), secret)
	if err != nil {
		return "", 0, err
	}
	return token, int64(accessTTLDefault.Seconds()), nil
}

// IssueAdminToken menandatangani token admin dengan ADMIN_JWT_SECRET.
// Secret terpisah membuat token kontributor tidak pernah lolos gate admin.
func IssueAdminToken(user userModel.UserModel) (string, int64, error) {
	secret := strings.TrimSpace(configs.AdminJWTSecret)
	if secret == "" {
		return "", 0, fiber.NewError(fiber.StatusInternalServerError, "ADMIN_JWT_SECRET belum diset")
	}
	token, err := signClaims(buildAdminClaims(user, nowUTC()), secret)
	if err != nil {
		return "", 0, err
	}
	return token, int64(accessTTLDefault.Seconds()), nil
}
