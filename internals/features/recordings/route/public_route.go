// file: internals/features/recordings/route/public_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"tilawahku_backend/internals/configs"
	controller "tilawahku_backend/internals/features/recordings/controller"
	helperOSS "tilawahku_backend/internals/helpers/oss"
	rateLimiter "tilawahku_backend/internals/middlewares"
	authMw "tilawahku_backend/internals/middlewares/auth"
)

// RecordingPublicRoutes mendaftarkan endpoint rekaman yang terbuka.
// Base: /api
func RecordingPublicRoutes(app *fiber.App, db *gorm.DB, store helperOSS.AudioStore) {
	recordingCtrl := controller.NewRecordingController(db, store)
	verseCtrl := controller.NewVerseController(db)

	api := app.Group("/api")

	// 🔓 Korpus & status — terbuka untuk siapa saja
	api.Get("/verses/next", verseCtrl.NextVerse)
	api.Get("/verses/status", verseCtrl.VerseStatus)
	api.Get("/recordings/:index/audio", recordingCtrl.AudioURL)

	// 🔓 Setoran anonim hanya pada scope global.
	// Scope per_user wajib setor lewat /api/u/recordings (dengan token).
	if !configs.PerUserScope() {
		api.Post("/recordings",
			rateLimiter.UploadRateLimiter(),
			authMw.OptionalAuthMiddleware(db),
			recordingCtrl.Create,
		)
	}
}
