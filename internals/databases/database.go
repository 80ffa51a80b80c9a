package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"tilawahku_backend/internals/configs"
	RecordingModel "tilawahku_backend/internals/features/recordings/model"
	UserModel "tilawahku_backend/internals/features/users/user/model"
)

var DB *gorm.DB

func ConnectDB() {
	log.Println("🔌 Koneksi ke PostgreSQL...")

	// ✅ Gunakan URL/DSN lengkap + statement_timeout
	// Catatan: kalau pakai PgBouncer, ganti host/port ke port PgBouncer (mis. 6543) dan biarkan PreferSimpleProtocol=true
	sslmode := getenv("DB_SSLMODE", "require")
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=tilawahku&options=-c statement_timeout=3000",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
		sslmode,
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // 👍 cocok untuk PgBouncer (transaction pooling)
	}), &gorm.Config{
		Logger: configs.NewGormLogger(),
	})
	if err != nil {
		log.Fatalf("❌ Gagal konek DB: %v", err)
	}
	DB = db
	log.Println("✅ DB connected.")
}

// Migrate menjalankan AutoMigrate + index unik sesuai RECORDING_SCOPE.
// Dipanggil dari main setelah ConnectDB, sebelum routes.
func Migrate() {
	if err := DB.AutoMigrate(
		&UserModel.UserModel{},
		&RecordingModel.RecordingModel{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate gagal: %v", err)
	}

	if err := EnsureRecordingScopeIndex(DB, configs.PerUserScope()); err != nil {
		// gagal biasanya karena data lama melanggar kebijakan scope baru —
		// operator harus membereskan duplikat dulu sebelum ganti scope
		log.Fatalf("❌ Index unik scope rekaman gagal: %v", err)
	}
	log.Println("✅ Migrasi selesai.")
}

// EnsureRecordingScopeIndex memasang index unik penentu kebijakan duplikat
// (atomic check-and-insert ada di DB, bukan di aplikasi). Scope lawannya
// di-drop supaya pergantian RECORDING_SCOPE antar deployment tetap konsisten.
func EnsureRecordingScopeIndex(db *gorm.DB, perUser bool) error {
	const (
		idxGlobal  = "uq_recordings_verse_index"
		idxPerUser = "uq_recordings_verse_index_recorder"
	)

	if perUser {
		if err := db.Exec("DROP INDEX IF EXISTS " + idxGlobal).Error; err != nil {
			return err
		}
		return db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS " + idxPerUser +
			" ON recordings (recording_verse_index, recording_recorder_name)").Error
	}

	if err := db.Exec("DROP INDEX IF EXISTS " + idxPerUser).Error; err != nil {
		return err
	}
	return db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS " + idxGlobal +
		" ON recordings (recording_verse_index)").Error
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	// ⚖️ Sesuaikan dengan limit PgBouncer
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

func WarmUpQueries() {
	// jalankan ringan supaya koneksi/pool “keisi” & siap
	go func() {
		time.Sleep(500 * time.Millisecond) // beri waktu server naik
		if err := ping(); err != nil {
			log.Printf("warm-up ping err: %v", err)
		}
	}()
}

func ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
