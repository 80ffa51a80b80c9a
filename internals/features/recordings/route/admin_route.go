// file: internals/features/recordings/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "tilawahku_backend/internals/features/recordings/controller"
	helperOSS "tilawahku_backend/internals/helpers/oss"
)

// RecordingAdminRoutes mendaftarkan endpoint kurasi admin.
// Dipasang di group /api/a (sudah lewat AdminAuthMiddleware + role gate).
func RecordingAdminRoutes(router fiber.Router, db *gorm.DB, store helperOSS.AudioStore) {
	recordingCtrl := controller.NewRecordingController(db, store)

	router.Get("/recordings", recordingCtrl.List)
	router.Patch("/recordings/:index/verify", recordingCtrl.ToggleVerify)
	router.Delete("/recordings/:index", recordingCtrl.Delete)
}
