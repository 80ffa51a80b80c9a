// internals/features/recordings/controller/recording_controller.go
package controller

import (
	"context"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"tilawahku_backend/internals/configs"
	corpus "tilawahku_backend/internals/features/quran/corpus"
	"tilawahku_backend/internals/features/recordings/dto"
	"tilawahku_backend/internals/features/recordings/model"
	helpers "tilawahku_backend/internals/helpers"
	helperOSS "tilawahku_backend/internals/helpers/oss"
)

type RecordingController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Store     helperOSS.AudioStore
}

func NewRecordingController(db *gorm.DB, store helperOSS.AudioStore) *RecordingController {
	return &RecordingController{
		DB:        db,
		Validator: validator.New(),
		Store:     store,
	}
}

/* ===============================
   Internal helpers
=================================*/

func isDuplicateErr(err error) bool {
	if err == nil {
		return false
	}
	low := strings.ToLower(err.Error())
	return strings.Contains(low, "duplicate key") || strings.Contains(low, "unique")
}

// resolveRecorder menentukan identitas perekam: token dulu, field form
// sebagai fallback untuk kontributor anonim (hanya scope global).
func resolveRecorder(c *fiber.Ctx, req dto.CreateRecordingRequest) (string, string, error) {
	name := strings.TrimSpace(helpers.GetUserNameFromToken(c))
	gender := helpers.GetUserGenderFromToken(c)
	if name == "" {
		if configs.PerUserScope() {
			return "", "", fiber.NewError(fiber.StatusUnauthorized, "Scope per_user mewajibkan login untuk menyetor rekaman")
		}
		name = strings.TrimSpace(req.RecorderName)
		gender = req.RecorderGender
	}
	return name, gender, nil
}

// findByVerseIndex mengambil tepat satu row berdasar verse index.
// recorder != "" membatasi ke perekam tertentu — perlu di scope per_user
// kalau satu index direkam lebih dari satu orang.
func (ctl *RecordingController) findByVerseIndex(c *fiber.Ctx, verseIndex int, recorder string) (*model.RecordingModel, error) {
	tx := ctl.DB.WithContext(c.Context()).
		Where("recording_verse_index = ?", verseIndex)
	if recorder != "" {
		tx = tx.Where("recording_recorder_name = ?", recorder)
	}

	var rows []model.RecordingModel
	if err := tx.Order("recording_created_at ASC").Limit(2).Find(&rows).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	switch len(rows) {
	case 0:
		return nil, fiber.NewError(fiber.StatusNotFound, "Rekaman tidak ditemukan")
	case 1:
		return &rows[0], nil
	default:
		return nil, fiber.NewError(fiber.StatusBadRequest, "Lebih dari satu rekaman untuk ayat ini, sertakan ?recorder=")
	}
}

/* ===============================
   Handlers
=================================*/

// ➕ Setor rekaman ayat (multipart).
// ✅ POST /api/recordings (scope global, boleh anonim) & POST /api/u/recordings
func (ctl *RecordingController) Create(c *fiber.Ctx) error {
	// 1) Parse field form
	var req dto.CreateRecordingRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	// 2) Ayat harus ada di korpus
	verse, ok := corpus.ByIndex(*req.VerseIndex)
	if !ok {
		return helpers.JsonError(c, fiber.StatusBadRequest, "verse_index di luar korpus")
	}

	// 3) Ambil file audio
	form, err := c.MultipartForm()
	if err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Form multipart tidak valid")
	}
	fh, _ := helperOSS.PickAudioFile(form)
	if fh == nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "File audio wajib diunggah")
	}

	// 4) Identitas perekam
	recorderName, recorderGender, err := resolveRecorder(c, req)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}

	// 5) Pre-check duplikasi sebelum upload, biar tidak buang bandwidth OSS.
	//    Penentu akhir tetap unique index saat insert.
	dup := ctl.DB.WithContext(c.Context()).
		Model(&model.RecordingModel{}).
		Where("recording_verse_index = ?", *req.VerseIndex)
	if configs.PerUserScope() {
		dup = dup.Where("recording_recorder_name = ?", recorderName)
	}
	var count int64
	if err := dup.Count(&count).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal cek duplikasi")
	}
	if count > 0 {
		return helpers.JsonError(c, fiber.StatusConflict, "Ayat ini sudah direkam")
	}

	// 6) Upload dulu ke OSS, baru insert row
	objectKey, err := ctl.Store.UploadAudio(c.Context(), fh, *req.VerseIndex)
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helpers.JsonError(c, fe.Code, fe.Message)
		}
		log.Println("[ERROR] Upload audio ke OSS gagal:", err)
		return helpers.JsonError(c, fiber.StatusBadGateway, "Gagal mengunggah audio ke OSS")
	}

	verseText := strings.TrimSpace(req.VerseText)
	if verseText == "" {
		verseText = verse.Text
	}

	row := req.ToModel(objectKey, verseText, recorderName, recorderGender)
	if err := ctl.DB.WithContext(c.Context()).Create(row).Error; err != nil {
		// Insert gagal → hapus artifact best-effort supaya tidak jadi orphan.
		// Pakai context baru: request context bisa saja sudah dekat deadline.
		cleanupCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if delErr := ctl.Store.DeleteObject(cleanupCtx, objectKey); delErr != nil {
			log.Printf("[WARN] Cleanup artifact %s gagal: %v (orphan reaper akan memungut)", objectKey, delErr)
		}

		if isDuplicateErr(err) {
			return helpers.JsonError(c, fiber.StatusConflict, "Ayat ini sudah direkam")
		}
		log.Println("[ERROR] Gagal menyimpan rekaman:", err)
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan rekaman")
	}

	log.Printf("[SUCCESS] Rekaman ayat %d tersimpan (%s)", *req.VerseIndex, objectKey)
	return helpers.JsonCreated(c, "Rekaman berhasil disimpan", dto.NewRecordingResponse(row))
}

// 🔄 Toggle status verifikasi.
// ✅ PATCH /api/a/recordings/:index/verify
func (ctl *RecordingController) ToggleVerify(c *fiber.Ctx) error {
	verseIndex, err := strconv.Atoi(strings.TrimSpace(c.Params("index")))
	if err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Index harus angka")
	}

	row, err := ctl.findByVerseIndex(c, verseIndex, strings.TrimSpace(c.Query("recorder")))
	if err != nil {
		return helpers.FromFiberError(c, err)
	}

	newVal := !row.RecordingIsVerified
	if err := ctl.DB.WithContext(c.Context()).
		Model(row).
		Update("recording_is_verified", newVal).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui status verifikasi")
	}
	row.RecordingIsVerified = newVal

	return helpers.JsonUpdated(c, "Status verifikasi diperbarui", dto.NewRecordingResponse(row))
}

// 🗑️ Hapus rekaman: artifact OSS DULU, row belakangan.
// Kalau OSS gagal, row dibiarkan supaya penghapusan bisa diulang.
// ✅ DELETE /api/u/recordings/:index (pemilik) & DELETE /api/a/recordings/:index (admin)
func (ctl *RecordingController) Delete(c *fiber.Ctx) error {
	verseIndex, err := strconv.Atoi(strings.TrimSpace(c.Params("index")))
	if err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Index harus angka")
	}

	recorder := strings.TrimSpace(c.Query("recorder"))
	if !helpers.IsAdminFromToken(c) {
		// Non-admin hanya boleh menghapus rekaman miliknya sendiri
		name := strings.TrimSpace(helpers.GetUserNameFromToken(c))
		if name == "" {
			return helpers.JsonError(c, fiber.StatusUnauthorized, "User belum login")
		}
		recorder = name
	}

	row, err := ctl.findByVerseIndex(c, verseIndex, recorder)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}

	if row.RecordingObjectKey != "" {
		if err := ctl.Store.DeleteObject(c.Context(), row.RecordingObjectKey); err != nil && !helperOSS.IsNotFound(err) {
			log.Printf("[ERROR] Hapus artifact %s gagal: %v", row.RecordingObjectKey, err)
			return helpers.JsonError(c, fiber.StatusBadGateway, "Gagal menghapus audio di OSS, rekaman tidak dihapus")
		}
	}

	if err := ctl.DB.WithContext(c.Context()).Delete(row).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus rekaman")
	}

	log.Printf("[SUCCESS] Rekaman ayat %d dihapus", verseIndex)
	return helpers.JsonDeleted(c, "Rekaman berhasil dihapus", dto.NewRecordingResponse(row))
}

// 📃 Daftar rekaman untuk panel admin.
// ✅ GET /api/a/recordings
func (ctl *RecordingController) List(c *fiber.Ctx) error {
	var q dto.ListRecordingQuery
	if err := c.QueryParser(&q); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Query tidak valid")
	}

	tx := ctl.DB.WithContext(c.Context()).Model(&model.RecordingModel{})

	// Filters
	if q.Verified != nil {
		tx = tx.Where("recording_is_verified = ?", *q.Verified)
	}
	if q.Recorder != nil && strings.TrimSpace(*q.Recorder) != "" {
		tx = tx.Where("recording_recorder_name = ?", strings.TrimSpace(*q.Recorder))
	}
	if q.Surah != nil {
		idxs := make([]int, 0, 300)
		for _, v := range corpus.All() {
			if v.SurahNumber == *q.Surah {
				idxs = append(idxs, v.Index)
			}
		}
		if len(idxs) == 0 {
			return helpers.JsonError(c, fiber.StatusBadRequest, "Surah tidak dikenal")
		}
		tx = tx.Where("recording_verse_index IN ?", idxs)
	}

	// Sorting
	order := "recording_verse_index ASC"
	if q.Sort != nil {
		switch strings.ToLower(strings.TrimSpace(*q.Sort)) {
		case "created_at_asc":
			order = "recording_created_at ASC"
		case "created_at_desc":
			order = "recording_created_at DESC"
		case "verse_index_asc":
			order = "recording_verse_index ASC"
		}
	}
	tx = tx.Order(order)

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung rekaman")
	}

	paging := helpers.ResolvePaging(c, 20, 200)
	var rows []model.RecordingModel
	if err := tx.Limit(paging.Limit).Offset(paging.Offset).Find(&rows).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil rekaman")
	}

	return helpers.JsonList(c, "ok", dto.FromRecordingModels(rows),
		helpers.BuildPaginationFromOffset(total, paging.Offset, paging.Limit))
}

// 🔗 Presigned URL audio (berlaku 15 menit).
// ✅ GET /api/recordings/:index/audio
func (ctl *RecordingController) AudioURL(c *fiber.Ctx) error {
	verseIndex, err := strconv.Atoi(strings.TrimSpace(c.Params("index")))
	if err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Index harus angka")
	}

	row, err := ctl.findByVerseIndex(c, verseIndex, strings.TrimSpace(c.Query("recorder")))
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	if row.RecordingObjectKey == "" {
		return helpers.JsonError(c, fiber.StatusNotFound, "Rekaman tidak memiliki audio")
	}

	url, err := ctl.Store.PresignGet(row.RecordingObjectKey, helperOSS.PresignExpiry)
	if err != nil {
		log.Println("[ERROR] Presign gagal:", err)
		return helpers.JsonError(c, fiber.StatusBadGateway, "Gagal membuat presigned URL")
	}

	return helpers.JsonOK(c, "ok", dto.AudioURLResponse{
		RecordingVerseIndex: verseIndex,
		URL:                 url,
		ExpiresAt:           time.Now().Add(helperOSS.PresignExpiry),
	})
}
