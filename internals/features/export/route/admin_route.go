// file: internals/features/export/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "tilawahku_backend/internals/features/export/controller"
	helperOSS "tilawahku_backend/internals/helpers/oss"
)

// ExportAdminRoutes mendaftarkan endpoint export dataset.
// Dipasang di group /api/a (sudah lewat AdminAuthMiddleware + role gate).
func ExportAdminRoutes(router fiber.Router, db *gorm.DB, store helperOSS.AudioStore) {
	exportCtrl := controller.NewExportController(db, store)

	router.Get("/export/archive", exportCtrl.Archive)
	router.Get("/export/manifest", exportCtrl.Manifest)
}
