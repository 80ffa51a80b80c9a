// file: internals/features/users/auth/route/user_route.go
package route

import (
	controller "tilawahku_backend/internals/features/users/auth/controller"
	rateLimiter "tilawahku_backend/internals/middlewares"
	authMw "tilawahku_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AuthRoutes mendaftarkan endpoint auth.
// Base: /api/auth
func AuthRoutes(app *fiber.App, db *gorm.DB) {
	authController := controller.NewAuthController(db)

	baseAuth := app.Group("/api/auth")

	// 🔓 Public
	baseAuth.Post("/register", rateLimiter.RegisterRateLimiter(), authController.Register)
	baseAuth.Post("/login", rateLimiter.LoginRateLimiter(), authController.Login)
	baseAuth.Post("/admin/login", rateLimiter.LoginRateLimiter(), authController.AdminLogin)

	// 🔒 Protected (token kontributor)
	baseAuth.Get("/me", authMw.AuthMiddleware(db), authController.Me)
}

// MeRoutes mendaftarkan endpoint profil di group yang sudah lewat
// middleware auth (/api/u maupun /api/a).
func MeRoutes(router fiber.Router, db *gorm.DB) {
	authController := controller.NewAuthController(db)
	router.Get("/me", authController.Me)
}
