// internals/features/export/controller/export_controller.go
package controller

import (
	"archive/zip"
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	corpus "tilawahku_backend/internals/features/quran/corpus"
	"tilawahku_backend/internals/features/recordings/model"
	helpers "tilawahku_backend/internals/helpers"
	helperOSS "tilawahku_backend/internals/helpers/oss"
)

// ExportController menyiapkan bundel dataset untuk pipeline audio offline:
// arsip zip berisi file rekaman + manifest CSV yang memetakan nama file
// ke metadata ayatnya.
type ExportController struct {
	DB    *gorm.DB
	Store helperOSS.AudioStore
}

func NewExportController(db *gorm.DB, store helperOSS.AudioStore) *ExportController {
	return &ExportController{DB: db, Store: store}
}

/* ===============================
   Internal helpers
=================================*/

// exportRange membaca ?from= & ?to= sebagai range verse index [from, to).
func exportRange(c *fiber.Ctx) (int, int, error) {
	from := 0
	to := corpus.Len()

	if s := strings.TrimSpace(c.Query("from")); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return 0, 0, fiber.NewError(fiber.StatusBadRequest, "from tidak valid")
		}
		from = n
	}
	if s := strings.TrimSpace(c.Query("to")); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return 0, 0, fiber.NewError(fiber.StatusBadRequest, "to tidak valid")
		}
		to = n
	}
	if from > to {
		return 0, 0, fiber.NewError(fiber.StatusBadRequest, "from harus <= to")
	}
	return from, to, nil
}

func (ctl *ExportController) fetchRows(c *fiber.Ctx, from, to int) ([]model.RecordingModel, error) {
	var rows []model.RecordingModel
	err := ctl.DB.WithContext(c.Context()).
		Where("recording_verse_index >= ? AND recording_verse_index < ?", from, to).
		Order("recording_verse_index ASC, recording_recorder_name ASC").
		Find(&rows).Error
	return rows, err
}

/* ===============================
   Handlers
=================================*/

// 📦 Arsip zip seluruh audio, streaming (tanpa buffer penuh di memori).
// Gagal fetch satu objek → di-skip dengan [WARN], arsip jalan terus.
// ✅ GET /api/a/export/archive?from=&to=
func (ctl *ExportController) Archive(c *fiber.Ctx) error {
	from, to, err := exportRange(c)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}

	// Metadata di-load dulu: di dalam stream writer, fiber ctx sudah
	// tidak boleh dipakai lagi.
	rows, err := ctl.fetchRows(c, from, to)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil daftar rekaman")
	}
	if len(rows) == 0 {
		return helpers.JsonError(c, fiber.StatusNotFound, "Tidak ada rekaman pada range ini")
	}

	filename := fmt.Sprintf("tilawah_recordings_%s.zip", time.Now().Format("20060102"))
	c.Set(fiber.HeaderContentType, "application/zip")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)

	store := ctl.Store
	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		zw := zip.NewWriter(w)
		written := 0

		for _, row := range rows {
			if row.RecordingObjectKey == "" {
				continue
			}

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			rc, err := store.FetchObject(ctx, row.RecordingObjectKey)
			if err != nil {
				cancel()
				log.Printf("[WARN] Export: gagal ambil %s: %v (skip)", row.RecordingObjectKey, err)
				continue
			}

			entry, err := zw.Create(path.Base(row.RecordingObjectKey))
			if err != nil {
				rc.Close()
				cancel()
				log.Printf("[ERROR] Export: gagal buat entry zip: %v", err)
				break
			}
			if _, err := io.Copy(entry, rc); err != nil {
				rc.Close()
				cancel()
				log.Printf("[ERROR] Export: gagal tulis %s: %v", row.RecordingObjectKey, err)
				break
			}
			rc.Close()
			cancel()
			written++
		}

		if err := zw.Close(); err != nil {
			log.Printf("[ERROR] Export: gagal menutup zip: %v", err)
			return
		}
		log.Printf("[SUCCESS] Export arsip selesai: %d/%d file", written, len(rows))
	})

	return nil
}

// 📄 Manifest CSV (recorded_ayats.csv). Kolom pertama "Recording Name"
// = nama file di arsip, supaya pipeline offline bisa join keduanya.
// ✅ GET /api/a/export/manifest
func (ctl *ExportController) Manifest(c *fiber.Ctx) error {
	from, to, err := exportRange(c)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}

	rows, err := ctl.fetchRows(c, from, to)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil daftar rekaman")
	}

	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	header := []string{
		"Recording Name",
		"Verse Index",
		"Surah Number",
		"Surah Name",
		"Verse Number",
		"Para Number",
		"Verse Text",
		"Recorder Name",
		"Recorder Gender",
		"Verified",
		"Created At",
	}
	if err := cw.Write(header); err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal menulis manifest")
	}

	for _, row := range rows {
		verseText := row.RecordingVerseText
		surahNumber, surahName, verseNumber, paraNumber := "", "", "", ""
		if v, ok := corpus.ByIndex(row.RecordingVerseIndex); ok {
			surahNumber = strconv.Itoa(v.SurahNumber)
			surahName = v.SurahName
			verseNumber = strconv.Itoa(v.VerseNumber)
			paraNumber = strconv.Itoa(v.ParaNumber)
			if verseText == "" {
				verseText = v.Text
			}
		}

		record := []string{
			path.Base(row.RecordingObjectKey),
			strconv.Itoa(row.RecordingVerseIndex),
			surahNumber,
			surahName,
			verseNumber,
			paraNumber,
			verseText,
			row.RecordingRecorderName,
			row.RecordingRecorderGender,
			strconv.FormatBool(row.RecordingIsVerified),
			row.RecordingCreatedAt.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(record); err != nil {
			return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal menulis manifest")
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal menulis manifest")
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="recorded_ayats.csv"`)
	return c.Send(buf.Bytes())
}
