// internals/middlewares/setup_middlewares.go
package middlewares

import (
	"github.com/gofiber/fiber/v2"

	loggermw "tilawahku_backend/internals/middlewares/logger"
)

// SetupMiddlewares memasang middleware global dengan urutan tetap:
// logger → recovery → CORS → rate limiter global.
func SetupMiddlewares(app *fiber.App) {
	app.Use(loggermw.LoggerMiddleware())
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(GlobalRateLimiter())
}
