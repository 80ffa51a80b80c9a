// internals/helpers/oss/oss_orphan_reaper.go
package helper

import (
	"context"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

/* =======================================================================
   Orphan audio reaper
   Upload OSS dan insert record adalah dua langkah non-transaksional:
   kalau insert gagal dan cleanup best-effort ikut gagal, tersisa objek
   audio tanpa baris recordings. Reaper ini menyapu objek yatim tersebut
   secara periodik. Objek muda (< retention) TIDAK disentuh — bisa jadi
   upload yang insert-nya masih berjalan.
======================================================================= */

type OrphanReaperConfig struct {
	Endpoint        string
	AccessKeyID     string
	AccessKeySecret string
	Bucket          string
	Prefix          string
	RetentionHours  int
	CronSchedule    string
	DryRun          bool
}

func getEnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	switch v {
	case "1", "true", "TRUE", "True", "yes", "on":
		return true
	default:
		return false
	}
}
func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func normalizeEndpoint(ep string) string {
	ep = strings.TrimSpace(ep)
	if ep == "" {
		return ep
	}
	if strings.HasPrefix(ep, "http://") || strings.HasPrefix(ep, "https://") {
		return ep
	}
	return "https://" + ep
}

// ── ENTRYPOINT: panggil dari main.go
func StartOrphanAudioReaper(db *gorm.DB) {
	cfg := OrphanReaperConfig{
		Endpoint:        normalizeEndpoint(os.Getenv("ALI_OSS_ENDPOINT")),
		AccessKeyID:     os.Getenv("ALI_OSS_ACCESS_KEY"),
		AccessKeySecret: os.Getenv("ALI_OSS_SECRET_KEY"),
		Bucket:          os.Getenv("ALI_OSS_BUCKET"),
		Prefix:          getEnvOrDefault("REAPER_PREFIX", "audio/"),
		RetentionHours:  getEnvInt("ORPHAN_RETENTION_HOURS", 24),
		CronSchedule:    getEnvOrDefault("CRON_SCHEDULE", "45 3 * * *"),
		DryRun:          getEnvBool("DRY_RUN", false),
	}

	if cfg.Endpoint == "" || cfg.AccessKeyID == "" || cfg.AccessKeySecret == "" || cfg.Bucket == "" {
		log.Printf("[ORPHAN-REAPER] ENV ALI_OSS_* tidak lengkap — reaper tidak dijalankan")
		return
	}

	cli, err := oss.New(cfg.Endpoint, cfg.AccessKeyID, cfg.AccessKeySecret)
	if err != nil {
		log.Printf("[ORPHAN-REAPER] OSS init gagal: %v", err)
		return
	}
	bucket, err := cli.Bucket(cfg.Bucket)
	if err != nil {
		log.Printf("[ORPHAN-REAPER] get bucket gagal: %v", err)
		return
	}

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))

	_, err = c.AddFunc(cfg.CronSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 4*time.Minute)
		defer cancel()
		retention := time.Duration(cfg.RetentionHours) * time.Hour

		if err := runOrphanReaper(ctx, bucket, db, cfg.Prefix, retention, cfg.DryRun); err != nil {
			log.Printf("[ORPHAN-REAPER] error: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("[ORPHAN-REAPER] add cron gagal: %v", err)
	}
	log.Printf("[ORPHAN-REAPER] started schedule=%q prefix=%q retention=%dh dryRun=%v",
		cfg.CronSchedule, cfg.Prefix, cfg.RetentionHours, cfg.DryRun)
	c.Start()
}

// runOrphanReaper: scan objek lama di bawah prefix, buang yang tidak punya
// baris recordings (match di recording_object_key).
func runOrphanReaper(ctx context.Context, bucket *oss.Bucket, db *gorm.DB, prefix string, retention time.Duration, dryRun bool) error {
	threshold := time.Now().Add(-retention)
	log.Printf("[ORPHAN-REAPER] scanning prefix=%q threshold=%s dry=%v", prefix, threshold.Format(time.RFC3339), dryRun)

	marker := oss.Marker("")
	var candidates []string
	total := 0

	for {
		lor, err := bucket.ListObjects(oss.Prefix(prefix), marker, oss.MaxKeys(1000))
		if err != nil {
			return err
		}
		for _, obj := range lor.Objects {
			total++
			if obj.Key == "" {
				continue
			}
			if obj.LastModified.Before(threshold) {
				candidates = append(candidates, obj.Key)
			}
		}
		if lor.IsTruncated {
			marker = oss.Marker(lor.NextMarker)
		} else {
			break
		}
	}

	if len(candidates) == 0 {
		log.Printf("[ORPHAN-REAPER] nothing old enough; scanned=%d under %q", total, prefix)
		return nil
	}

	// cek DB per batch: key yang masih dirujuk record TIDAK boleh dihapus
	var orphans []string
	for i := 0; i < len(candidates); i += 500 {
		end := i + 500
		if end > len(candidates) {
			end = len(candidates)
		}
		batch := candidates[i:end]

		var known []string
		if err := db.WithContext(ctx).
			Table("recordings").
			Where("recording_object_key IN ?", batch).
			Pluck("recording_object_key", &known).Error; err != nil {
			return err
		}
		knownSet := make(map[string]struct{}, len(known))
		for _, k := range known {
			knownSet[k] = struct{}{}
		}
		for _, k := range batch {
			if _, ok := knownSet[k]; !ok {
				orphans = append(orphans, k)
			}
		}
	}

	if len(orphans) == 0 {
		log.Printf("[ORPHAN-REAPER] no orphans (candidates=%d scanned=%d) under %q", len(candidates), total, prefix)
		return nil
	}
	if dryRun {
		log.Printf("[ORPHAN-REAPER] DRY-RUN would delete %d orphans (scanned=%d) under %q", len(orphans), total, prefix)
		return nil
	}

	deleted := 0
	for i := 0; i < len(orphans); i += 1000 {
		end := i + 1000
		if end > len(orphans) {
			end = len(orphans)
		}
		batch := orphans[i:end]
		if _, err := bucket.DeleteObjects(batch, oss.DeleteObjectsQuiet(true)); err != nil {
			log.Printf("[ORPHAN-REAPER] delete batch %d-%d gagal: %v", i, end, err)
			continue
		}
		deleted += len(batch)
	}
	log.Printf("[ORPHAN-REAPER] deleted %d orphans (scanned=%d) under %q", deleted, total, prefix)
	return nil
}
