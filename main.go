package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/fiber/v2/utils"

	"tilawahku_backend/internals/configs"
	database "tilawahku_backend/internals/databases"
	"tilawahku_backend/internals/features/quran/corpus"
	helperOSS "tilawahku_backend/internals/helpers/oss"
	middlewares "tilawahku_backend/internals/middlewares"
	routes "tilawahku_backend/internals/route"
	seeds "tilawahku_backend/internals/seeds"
)

func main() {
	configs.LoadEnv()

	app := fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"}, // sesuaikan dengan CIDR Cloudflare jika perlu
		// default fiber 4MB terlalu kecil untuk setoran audio multipart
		BodyLimit: maxUploadBodyBytes(),
	})

	// ⚙️ middleware dasar + performa
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault})) // gzip
	app.Use(etag.New())                                                  // 304 caching

	// 🔎 Request-ID + timing (observability ringan)
	app.Use(func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = utils.UUID()
		}
		c.Set("X-Request-ID", id)
		c.Locals("reqid", id)
		start := time.Now()
		// HTTP timeout guard (selaras dengan statement_timeout di DB)
		ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
		defer cancel()
		c.SetUserContext(ctx)
		err := c.Next()
		dur := time.Since(start)
		log.Printf("[REQ] id=%s %s %s status=%d dur=%s", id, c.Method(), c.OriginalURL(), c.Response().StatusCode(), dur)
		return err
	})

	middlewares.SetupMiddlewares(app)

	// 🔌 DB connect + pool + warm-up
	database.ConnectDB()
	database.TunePool()
	database.WarmUpQueries()
	database.Migrate()

	// 📖 korpus ayat wajib ada sebelum route naik, semua seleksi ayat baca dari sini
	if err := corpus.Load(configs.DatasetPath); err != nil {
		log.Fatalf("❌ Gagal memuat dataset ayat %s: %v", configs.DatasetPath, err)
	}
	log.Printf("✅ Korpus dimuat: %d ayat.", corpus.Len())

	// ☁️ OSS untuk artefak audio
	store, err := helperOSS.NewOSSServiceFromEnv("audio")
	if err != nil {
		log.Fatalf("❌ Gagal inisialisasi OSS: %v", err)
	}

	// ⏱ reaper artefak yatim setelah DB siap
	helperOSS.StartOrphanAudioReaper(database.DB)

	// 🌱 akun admin awal
	seeds.RunAllSeeds(database.DB)

	// ✅ Routes
	routes.BaseRoutes(app, database.DB)
	routes.SetupRoutes(app, database.DB, store)

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	// Start server non-blocking
	go func() {
		log.Printf("✅ Listening on :%s", port)
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown + tutup pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	if sqlDB, err := database.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// maxUploadBodyBytes: AUDIO_MAX_UPLOAD_MB + 2MB kelonggaran untuk
// boundary & field multipart lain.
func maxUploadBodyBytes() int {
	mb := 20
	if v := os.Getenv("AUDIO_MAX_UPLOAD_MB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			mb = n
		}
	}
	return (mb + 2) * 1024 * 1024
}
