package configs

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

// Nilai RECORDING_SCOPE yang dikenal
const (
	ScopeGlobal  = "global"   // satu rekaman per ayat untuk seluruh kontributor
	ScopePerUser = "per_user" // tiap kontributor merekam tiap ayat maksimal sekali
)

var (
	JWTSecret      string
	AdminJWTSecret string
	RecordingScope string
	DatasetPath    string
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ Tidak menemukan .env file, menggunakan ENV dari sistem")
		} else {
			log.Println("✅ .env file berhasil dimuat!")
		}
	} else {
		log.Println("🚀 Running in Railway, menggunakan ENV dari sistem")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	AdminJWTSecret = GetEnv("ADMIN_JWT_SECRET")
	RecordingScope = GetEnv("RECORDING_SCOPE", ScopeGlobal)
	DatasetPath = GetEnv("QURAN_DATASET_PATH", "./data/quran_dataset.csv")

	if JWTSecret == "" {
		log.Println("❌ JWT_SECRET belum diset!")
	} else {
		log.Println("✅ JWT_SECRET berhasil dimuat.")
	}

	if AdminJWTSecret == "" {
		log.Println("❌ ADMIN_JWT_SECRET belum diset!")
	} else {
		log.Println("✅ ADMIN_JWT_SECRET berhasil dimuat.")
	}

	// scope tak dikenal → fallback global supaya server tetap jalan
	if RecordingScope != ScopeGlobal && RecordingScope != ScopePerUser {
		log.Printf("⚠️ RECORDING_SCOPE %q tidak dikenal, pakai %q", RecordingScope, ScopeGlobal)
		RecordingScope = ScopeGlobal
	}
	log.Printf("✅ RECORDING_SCOPE: %s", RecordingScope)
}

// PerUserScope: true bila deployment memakai kebijakan rekaman per-user.
func PerUserScope() bool {
	return RecordingScope == ScopePerUser
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

// =======================
// GORM LOGGER CUSTOM
// =======================
type GormLogger struct {
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
}

// NewGormLogger: logger GORM untuk pool utama. Default Warn — error dan
// slow query saja; set GORM_LOG_LEVEL=info untuk melihat semua query.
func NewGormLogger() gormLogger.Interface {
	level := gormLogger.Warn
	if GetEnv("GORM_LOG_LEVEL") == "info" {
		level = gormLogger.Info
	}
	return &GormLogger{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      level,
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	l.LogLevel = level
	return l
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	log.Printf("[INFO] "+msg, data...)
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	log.Printf("[WARN] "+msg, data...)
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	log.Printf("[ERROR] "+msg, data...)
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= gormLogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	switch {
	case err != nil && l.LogLevel >= gormLogger.Error:
		sql, rows := fc()
		log.Printf("[ERROR] %s | %v | %s | %d rows | %s", utils.FileWithLineNum(), err, elapsed, rows, sql)
	case l.SlowThreshold > 0 && elapsed > l.SlowThreshold && l.LogLevel >= gormLogger.Warn:
		sql, rows := fc()
		log.Printf("[SLOW SQL] %s | %s | %d rows | %s", utils.FileWithLineNum(), elapsed, rows, sql)
	case l.LogLevel >= gormLogger.Info:
		sql, rows := fc()
		log.Printf("[QUERY] %s | %s | %d rows | %s", utils.FileWithLineNum(), elapsed, rows, sql)
	}
}
