package seeds

import (
	"log"

	user "tilawahku_backend/internals/seeds/users"

	"gorm.io/gorm"
)

// RunAllSeeds menjalankan semua seeder yang dibutuhkan saat start.
func RunAllSeeds(db *gorm.DB) {
	log.Println("🌱 Menjalankan seeder...")

	user.SeedAdminUser(db)

	log.Println("🌱 Seeder selesai.")
}
