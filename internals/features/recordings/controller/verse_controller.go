// internals/features/recordings/controller/verse_controller.go
package controller

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"tilawahku_backend/internals/configs"
	corpus "tilawahku_backend/internals/features/quran/corpus"
	"tilawahku_backend/internals/features/recordings/dto"
	"tilawahku_backend/internals/features/recordings/model"
	helpers "tilawahku_backend/internals/helpers"
)

// VerseController melayani pertanyaan "ayat mana berikutnya" dan progres.
// Semua perhitungan di atas korpus in-memory; DB hanya dibaca untuk daftar
// index yang sudah terekam.
type VerseController struct {
	DB *gorm.DB
}

func NewVerseController(db *gorm.DB) *VerseController {
	return &VerseController{DB: db}
}

/* ===============================
   Internal helpers
=================================*/

// recordedIndexes: seluruh verse index yang sudah terekam (distinct).
func (ctl *VerseController) recordedIndexes(c *fiber.Ctx) ([]int, error) {
	var idxs []int
	err := ctl.DB.WithContext(c.Context()).
		Model(&model.RecordingModel{}).
		Distinct().
		Pluck("recording_verse_index", &idxs).Error
	return idxs, err
}

// scopeRecordedIndexes: basis hitung progres per scope.
// per_user → hanya rekaman milik user login; global → semua rekaman.
func (ctl *VerseController) scopeRecordedIndexes(c *fiber.Ctx) ([]int, error) {
	if !configs.PerUserScope() {
		return ctl.recordedIndexes(c)
	}
	name := strings.TrimSpace(helpers.GetUserNameFromToken(c))
	if name == "" {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "User belum login")
	}
	var idxs []int
	err := ctl.DB.WithContext(c.Context()).
		Model(&model.RecordingModel{}).
		Where("recording_recorder_name = ?", name).
		Distinct().
		Pluck("recording_verse_index", &idxs).Error
	return idxs, err
}

/* ===============================
   Handlers
=================================*/

// ⏭️ Ayat belum terekam pertama pada/atau setelah posisi.
// after=-1 (default) artinya cari dari awal korpus, inklusif.
// ✅ GET /api/verses/next?after=
func (ctl *VerseController) NextVerse(c *fiber.Ctx) error {
	after, err := strconv.Atoi(strings.TrimSpace(c.Query("after", "-1")))
	if err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "after harus angka")
	}

	recorded, err := ctl.recordedIndexes(c)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data rekaman")
	}

	verse, err := corpus.NextUnrecorded(corpus.All(), after, recorded)
	if err != nil {
		if errors.Is(err, corpus.ErrIndexOutOfRange) {
			return helpers.JsonError(c, fiber.StatusBadRequest, err.Error())
		}
		return helpers.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helpers.JsonOK(c, "ok", dto.NextVerseResponse{
		Verse:         verse, // null bila semua sudah terekam
		RecordedCount: corpus.CountRecorded(corpus.All(), recorded, corpus.Filter{}),
		TotalCount:    corpus.Len(),
	})
}

// 📋 Status rekam seluruh ayat, opsional difilter satu para.
// ✅ GET /api/verses/status?para=
func (ctl *VerseController) VerseStatus(c *fiber.Ctx) error {
	f := corpus.Filter{}
	if s := strings.TrimSpace(c.Query("para")); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > 30 {
			return helpers.JsonError(c, fiber.StatusBadRequest, "para di luar 1..30")
		}
		f.Para = &n
	}

	recorded, err := ctl.recordedIndexes(c)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data rekaman")
	}

	set := corpus.RecordedSet(recorded, corpus.Len())
	verses := corpus.Filtered(corpus.All(), f)

	return helpers.JsonOK(c, "ok", dto.VerseStatusListResponse{
		Verses:        dto.NewVerseStatusList(verses, set),
		RecordedCount: corpus.CountRecorded(corpus.All(), recorded, f),
		TotalCount:    corpus.CountTotal(corpus.All(), f),
	})
}

// 📦 Batch surah pendek (juz 30 ekor) untuk direkam sekaligus.
// ✅ GET /api/u/bulk-batch
func (ctl *VerseController) BulkBatch(c *fiber.Ctx) error {
	recorded, err := ctl.scopeRecordedIndexes(c)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}

	batch := corpus.NextBulkBatch(corpus.All(), recorded)
	return helpers.JsonOK(c, "ok", dto.NewBulkBatchResponse(batch))
}

// 📈 Progres perekaman (basis per scope, sama dengan bulk-batch).
// ✅ GET /api/u/progress
func (ctl *VerseController) Progress(c *fiber.Ctx) error {
	recorded, err := ctl.scopeRecordedIndexes(c)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}

	recordedCount := corpus.CountRecorded(corpus.All(), recorded, corpus.Filter{})
	total := corpus.Len()

	return helpers.JsonOK(c, "ok", dto.ProgressResponse{
		RecordedCount:  recordedCount,
		TotalCount:     total,
		RemainingCount: total - recordedCount,
	})
}
