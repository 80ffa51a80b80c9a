// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"tilawahku_backend/internals/constants"
	exportRoute "tilawahku_backend/internals/features/export/route"
	recordingRoute "tilawahku_backend/internals/features/recordings/route"
	authRoute "tilawahku_backend/internals/features/users/auth/route"
	helperOSS "tilawahku_backend/internals/helpers/oss"
	authMw "tilawahku_backend/internals/middlewares/auth"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB, store helperOSS.AudioStore) {
	startTime = time.Now()

	// ===================== AUTH / PUBLIC BASE =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	authRoute.AuthRoutes(app, db)

	log.Println("[INFO] Setting up public recording routes...")
	recordingRoute.RecordingPublicRoutes(app, db, store)

	// ===================== PRIVATE (KONTRIBUTOR) =====================
	log.Println("[INFO] Setting up group /api/u (kontributor)...")
	private := app.Group("/api/u", authMw.AuthMiddleware(db))

	authRoute.MeRoutes(private, db)
	recordingRoute.RecordingUserRoutes(private, db, store)

	// ===================== ADMIN =====================
	log.Println("[INFO] Setting up group /api/a (admin)...")
	admin := app.Group("/api/a",
		authMw.AdminAuthMiddleware(db),
		authMw.OnlyRolesSlice(constants.RoleErrorAdmin("panel admin"), constants.AdminOnly),
	)

	authRoute.MeRoutes(admin, db)
	recordingRoute.RecordingAdminRoutes(admin, db, store)
	exportRoute.ExportAdminRoutes(admin, db, store)
}
