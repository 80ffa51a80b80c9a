// file: internals/features/recordings/route/user_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "tilawahku_backend/internals/features/recordings/controller"
	helperOSS "tilawahku_backend/internals/helpers/oss"
	rateLimiter "tilawahku_backend/internals/middlewares"
)

// RecordingUserRoutes mendaftarkan endpoint kontributor login.
// Dipasang di group /api/u (sudah lewat AuthMiddleware).
func RecordingUserRoutes(router fiber.Router, db *gorm.DB, store helperOSS.AudioStore) {
	recordingCtrl := controller.NewRecordingController(db, store)
	verseCtrl := controller.NewVerseController(db)

	router.Post("/recordings", rateLimiter.UploadRateLimiter(), recordingCtrl.Create)
	router.Delete("/recordings/:index", recordingCtrl.Delete)
	router.Get("/bulk-batch", verseCtrl.BulkBatch)
	router.Get("/progress", verseCtrl.Progress)
}
