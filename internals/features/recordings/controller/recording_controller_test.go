// internals/features/recordings/controller/recording_controller_test.go
package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"tilawahku_backend/internals/configs"
	"tilawahku_backend/internals/constants"
	database "tilawahku_backend/internals/databases"
	corpus "tilawahku_backend/internals/features/quran/corpus"
	"tilawahku_backend/internals/features/recordings/model"
	userModel "tilawahku_backend/internals/features/users/user/model"
	helperOSS "tilawahku_backend/internals/helpers/oss"
)

/* =======================================================================
   Test fixtures: sqlite in-memory + store palsu + korpus mini
======================================================================= */

// fakeStore meniru AudioStore tanpa OSS beneran. Objek disimpan di map
// supaya test bisa memeriksa isi & urutan operasinya.
type fakeStore struct {
	mu        sync.Mutex
	objects   map[string][]byte
	uploads   []string // object key per upload sukses, urut
	deleted   []string // object key per delete sukses, urut
	uploadErr error
	deleteErr error
	fetchErr  map[string]error
}

var _ helperOSS.AudioStore = (*fakeStore)(nil)

func newFakeStore() *fakeStore {
	return &fakeStore{
		objects:  map[string][]byte{},
		fetchErr: map[string]error{},
	}
}

func (f *fakeStore) UploadAudio(_ context.Context, fh *multipart.FileHeader, verseIndex int) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()
	b, err := io.ReadAll(src)
	if err != nil {
		return "", err
	}
	key := fmt.Sprintf("recordings/ayat_%04d_%s", verseIndex, fh.Filename)
	f.objects[key] = b
	f.uploads = append(f.uploads, key)
	return key, nil
}

func (f *fakeStore) DeleteObject(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.objects, key)
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeStore) FetchObject(_ context.Context, key string) (io.ReadCloser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.fetchErr[key]; ok {
		return nil, err
	}
	b, ok := f.objects[key]
	if !ok {
		return nil, fmt.Errorf("objek %s tidak ada", key)
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

func (f *fakeStore) PresignGet(key string, _ time.Duration) (string, error) {
	return "https://bucket.test/" + key + "?sig=dummy", nil
}

// setupTestDB: sqlite :memory: + migrasi + index unik sesuai scope.
// Satu koneksi saja: tiap koneksi :memory: adalah DB berbeda.
func setupTestDB(t *testing.T, perUser bool) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&userModel.UserModel{}, &model.RecordingModel{}))
	require.NoError(t, database.EnsureRecordingScopeIndex(db, perUser))
	return db
}

// setScope mengatur RECORDING_SCOPE untuk satu test.
func setScope(t *testing.T, scope string) {
	t.Helper()
	prev := configs.RecordingScope
	configs.RecordingScope = scope
	t.Cleanup(func() { configs.RecordingScope = prev })
}

// seedMiniCorpus memasang korpus kecil: surah 1 (para 1) + ekor juz 30.
// Index 0..2 = Al-Fatihah, 3..5 = Al-'Asr, 6..7 = Al-Ikhlas,
// 8..9 = Al-Falaq, 10..11 = An-Nas.
func seedMiniCorpus(t *testing.T) {
	t.Helper()
	var verses []corpus.Verse
	add := func(surah int, name string, para, count int) {
		for i := 1; i <= count; i++ {
			verses = append(verses, corpus.Verse{
				Index:             len(verses),
				Text:              fmt.Sprintf("ayat %d:%d", surah, i),
				SurahNumber:       surah,
				SurahName:         name,
				SurahNameLatin:    name,
				VerseNumber:       i,
				GlobalVerseNumber: len(verses) + 1,
				ParaNumber:        para,
				SectionNumber:     1,
			})
		}
	}
	add(1, "Al-Fatihah", 1, 3)
	add(103, "Al-'Asr", 30, 3)
	add(112, "Al-Ikhlas", 30, 2)
	add(113, "Al-Falaq", 30, 2)
	add(114, "An-Nas", 30, 2)

	corpus.SetSnapshot(verses)
	t.Cleanup(func() { corpus.SetSnapshot(nil) })
}

// stubLogin meniru AuthMiddleware sukses: isi locals identitas token.
func stubLogin(name, gender string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("user_name", name)
		c.Locals("user_gender", gender)
		c.Locals("userRole", constants.RoleUser)
		return c.Next()
	}
}

// stubAdmin meniru AdminAuthMiddleware sukses.
func stubAdmin(name string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("user_name", name)
		c.Locals("user_gender", "male")
		c.Locals("userRole", constants.RoleAdmin)
		c.Locals("is_admin", true)
		return c.Next()
	}
}

// newRecordingApp merakit app minimal dengan route rekaman.
// auth nil = anonim (route publik scope global).
func newRecordingApp(db *gorm.DB, store helperOSS.AudioStore, auth fiber.Handler) *fiber.App {
	app := fiber.New()
	ctl := NewRecordingController(db, store)

	api := app.Group("/api")
	if auth != nil {
		api.Use(auth)
	}
	api.Post("/recordings", ctl.Create)
	api.Delete("/recordings/:index", ctl.Delete)
	api.Patch("/recordings/:index/verify", ctl.ToggleVerify)
	api.Get("/recordings", ctl.List)
	api.Get("/recordings/:index/audio", ctl.AudioURL)
	return app
}

// multipartRecording menyusun body multipart: field form + satu part audio.
func multipartRecording(t *testing.T, fields map[string]string, filename string, audio []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if filename != "" {
		part, err := w.CreateFormFile("audio", filename)
		require.NoError(t, err)
		_, err = part.Write(audio)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func postRecording(t *testing.T, app *fiber.App, fields map[string]string, filename string, audio []byte) *http.Response {
	t.Helper()
	body, contentType := multipartRecording(t, fields, filename, audio)
	req := httptest.NewRequest(fiber.MethodPost, "/api/recordings", body)
	req.Header.Set(fiber.HeaderContentType, contentType)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func countRows(t *testing.T, db *gorm.DB, verseIndex int) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&model.RecordingModel{}).
		Where("recording_verse_index = ?", verseIndex).Count(&n).Error)
	return n
}

/* =======================================================================
   Create
======================================================================= */

func TestCreateRecordingAnonimScopeGlobal(t *testing.T) {
	setScope(t, configs.ScopeGlobal)
	seedMiniCorpus(t)
	db := setupTestDB(t, false)
	store := newFakeStore()
	app := newRecordingApp(db, store, nil)

	resp := postRecording(t, app, map[string]string{
		"verse_index":     "3",
		"recorder_name":   "Hamba Allah",
		"recorder_gender": "male",
	}, "setoran.webm", []byte("webm-bytes"))

	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])

	data := body["data"].(map[string]any)
	assert.EqualValues(t, 3, data["recording_verse_index"])
	assert.Equal(t, "Hamba Allah", data["recording_recorder_name"])
	// teks ayat kosong di request → diisi dari korpus
	assert.Equal(t, "ayat 103:1", data["recording_verse_text"])
	assert.Equal(t, false, data["recording_is_verified"])

	require.Len(t, store.uploads, 1)
	assert.EqualValues(t, 1, countRows(t, db, 3))
}

func TestCreateRecordingIdentitasTokenMenangDariForm(t *testing.T) {
	setScope(t, configs.ScopeGlobal)
	seedMiniCorpus(t)
	db := setupTestDB(t, false)
	store := newFakeStore()
	app := newRecordingApp(db, store, stubLogin("Fulan bin Fulan", "male"))

	// field form sengaja diisi nama lain — harus kalah dari token
	resp := postRecording(t, app, map[string]string{
		"verse_index":     "0",
		"recorder_name":   "Nama Tipuan",
		"recorder_gender": "female",
	}, "setoran.ogg", []byte("ogg"))

	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	data := decodeBody(t, resp)["data"].(map[string]any)
	assert.Equal(t, "Fulan bin Fulan", data["recording_recorder_name"])
	assert.Equal(t, "male", data["recording_recorder_gender"])
}

func TestCreateRecordingVerseIndexDiLuarKorpus(t *testing.T) {
	setScope(t, configs.ScopeGlobal)
	seedMiniCorpus(t)
	db := setupTestDB(t, false)
	store := newFakeStore()
	app := newRecordingApp(db, store, nil)

	resp := postRecording(t, app, map[string]string{
		"verse_index":   "9999",
		"recorder_name": "Hamba Allah",
	}, "setoran.webm", []byte("x"))

	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, store.uploads) // tidak boleh ada upload sia-sia
}

func TestCreateRecordingTanpaFileAudio(t *testing.T) {
	setScope(t, configs.ScopeGlobal)
	seedMiniCorpus(t)
	db := setupTestDB(t, false)
	store := newFakeStore()
	app := newRecordingApp(db, store, nil)

	resp := postRecording(t, app, map[string]string{
		"verse_index":   "3",
		"recorder_name": "Hamba Allah",
	}, "", nil)

	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "File audio wajib diunggah", body["message"])
}

func TestCreateRecordingDuplikatPreCheck(t *testing.T) {
	setScope(t, configs.ScopeGlobal)
	seedMiniCorpus(t)
	db := setupTestDB(t, false)
	store := newFakeStore()
	app := newRecordingApp(db, store, nil)

	first := postRecording(t, app, map[string]string{
		"verse_index":   "4",
		"recorder_name": "Perekam Satu",
	}, "a.webm", []byte("a"))
	require.Equal(t, fiber.StatusCreated, first.StatusCode)

	second := postRecording(t, app, map[string]string{
		"verse_index":   "4",
		"recorder_name": "Perekam Dua",
	}, "b.webm", []byte("b"))
	require.Equal(t, fiber.StatusConflict, second.StatusCode)
	body := decodeBody(t, second)
	assert.Equal(t, "CONFLICT", body["error_code"])

	// pre-check menolak sebelum upload → bandwidth OSS tidak terbuang
	assert.Len(t, store.uploads, 1)
	assert.EqualValues(t, 1, countRows(t, db, 4))
}

// Simulasi balapan: row saingan masuk SETELAH pre-check, SEBELUM insert.
// Index unik tetap jadi penentu akhir; artifact yang kadung terupload
// harus dibersihkan best-effort.
func TestCreateRecordingKalahBalapanInsert(t *testing.T) {
	setScope(t, configs.ScopeGlobal)
	seedMiniCorpus(t)
	db := setupTestDB(t, false)
	store := newFakeStore()
	app := newRecordingApp(db, store, nil)

	var once sync.Once
	require.NoError(t, db.Callback().Create().Before("gorm:create").
		Register("test_sisip_row_saingan", func(tx *gorm.DB) {
			if tx.Statement.Table != "recordings" {
				return
			}
			once.Do(func() {
				now := time.Now()
				err := db.Exec(`INSERT INTO recordings
					(recording_id, recording_verse_index, recording_verse_text,
					 recording_object_key, recording_recorder_name, recording_recorder_gender,
					 recording_is_verified, recording_created_at, recording_updated_at)
					 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
					uuid.NewString(), 5, "ayat 103:3",
					"recordings/ayat_0005_saingan.webm", "Perekam Saingan", "female",
					false, now, now).Error
				require.NoError(t, err)
			})
		}))

	resp := postRecording(t, app, map[string]string{
		"verse_index":   "5",
		"recorder_name": "Perekam Kalah",
	}, "kalah.webm", []byte("k"))

	require.Equal(t, fiber.StatusConflict, resp.StatusCode)

	// upload terjadi (pre-check lolos), lalu artifact dibersihkan
	require.Len(t, store.uploads, 1)
	require.Len(t, store.deleted, 1)
	assert.Equal(t, store.uploads[0], store.deleted[0])

	// yang tersisa hanya row pemenang balapan
	var rows []model.RecordingModel
	require.NoError(t, db.Where("recording_verse_index = ?", 5).Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, "Perekam Saingan", rows[0].RecordingRecorderName)
}

func TestCreateRecordingUploadOSSGagal(t *testing.T) {
	setScope(t, configs.ScopeGlobal)
	seedMiniCorpus(t)
	db := setupTestDB(t, false)
	store := newFakeStore()
	store.uploadErr = errors.New("oss tumbang")
	app := newRecordingApp(db, store, nil)

	resp := postRecording(t, app, map[string]string{
		"verse_index":   "3",
		"recorder_name": "Hamba Allah",
	}, "setoran.webm", []byte("x"))

	require.Equal(t, fiber.StatusBadGateway, resp.StatusCode)
	assert.EqualValues(t, 0, countRows(t, db, 3)) // tidak boleh ada row tanpa artifact
}

func TestCreateRecordingScopePerUser(t *testing.T) {
	setScope(t, configs.ScopePerUser)
	seedMiniCorpus(t)
	db := setupTestDB(t, true)
	store := newFakeStore()

	// tanpa login → ditolak
	anon := newRecordingApp(db, store, nil)
	resp := postRecording(t, anon, map[string]string{
		"verse_index":   "3",
		"recorder_name": "Anonim",
	}, "a.webm", []byte("a"))
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	// dua kontributor berbeda boleh merekam ayat yang sama
	fulan := newRecordingApp(db, store, stubLogin("Fulan", "male"))
	resp = postRecording(t, fulan, map[string]string{"verse_index": "3"}, "f1.webm", []byte("f1"))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	fulanah := newRecordingApp(db, store, stubLogin("Fulanah", "female"))
	resp = postRecording(t, fulanah, map[string]string{"verse_index": "3"}, "f2.webm", []byte("f2"))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	// kontributor yang sama dua kali → konflik
	resp = postRecording(t, fulan, map[string]string{"verse_index": "3"}, "f3.webm", []byte("f3"))
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)

	assert.EqualValues(t, 2, countRows(t, db, 3))
}

/* =======================================================================
   Delete
======================================================================= */

func TestDeleteRecordingArtifactDuluBaruRow(t *testing.T) {
	setScope(t, configs.ScopeGlobal)
	seedMiniCorpus(t)
	db := setupTestDB(t, false)
	store := newFakeStore()
	app := newRecordingApp(db, store, stubLogin("Hamba Allah", "male"))

	resp := postRecording(t, app, map[string]string{"verse_index": "6"}, "a.webm", []byte("a"))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	key := store.uploads[0]

	req := httptest.NewRequest(fiber.MethodDelete, "/api/recordings/6", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	assert.Equal(t, []string{key}, store.deleted)
	assert.EqualValues(t, 0, countRows(t, db, 6))

	// setelah hapus, ayat yang sama boleh direkam ulang
	resp = postRecording(t, app, map[string]string{"verse_index": "6"}, "b.webm", []byte("b"))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.EqualValues(t, 1, countRows(t, db, 6))
}

func TestDeleteRecordingOSSGagalRowBertahan(t *testing.T) {
	setScope(t, configs.ScopeGlobal)
	seedMiniCorpus(t)
	db := setupTestDB(t, false)
	store := newFakeStore()
	app := newRecordingApp(db, store, stubLogin("Hamba Allah", "male"))

	resp := postRecording(t, app, map[string]string{"verse_index": "7"}, "a.webm", []byte("a"))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	store.deleteErr = errors.New("oss tumbang")
	req := httptest.NewRequest(fiber.MethodDelete, "/api/recordings/7", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	// OSS gagal → row TIDAK dihapus supaya penghapusan bisa diulang
	require.Equal(t, fiber.StatusBadGateway, resp.StatusCode)
	assert.EqualValues(t, 1, countRows(t, db, 7))

	// OSS pulih → ulangi, sukses
	store.deleteErr = nil
	req = httptest.NewRequest(fiber.MethodDelete, "/api/recordings/7", nil)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 0, countRows(t, db, 7))
}

func TestDeleteRecordingBukanMilikSendiri(t *testing.T) {
	setScope(t, configs.ScopePerUser)
	seedMiniCorpus(t)
	db := setupTestDB(t, true)
	store := newFakeStore()

	fulan := newRecordingApp(db, store, stubLogin("Fulan", "male"))
	resp := postRecording(t, fulan, map[string]string{"verse_index": "8"}, "a.webm", []byte("a"))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	// kontributor lain tidak melihat rekaman Fulan → 404
	fulanah := newRecordingApp(db, store, stubLogin("Fulanah", "female"))
	req := httptest.NewRequest(fiber.MethodDelete, "/api/recordings/8", nil)
	resp, err := fulanah.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.EqualValues(t, 1, countRows(t, db, 8))

	// admin boleh menghapus milik siapa pun lewat ?recorder=
	admin := newRecordingApp(db, store, stubAdmin("Panitia"))
	req = httptest.NewRequest(fiber.MethodDelete, "/api/recordings/8?recorder=Fulan", nil)
	resp, err = admin.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 0, countRows(t, db, 8))
}

func TestDeleteRecordingAmbigu(t *testing.T) {
	setScope(t, configs.ScopePerUser)
	seedMiniCorpus(t)
	db := setupTestDB(t, true)
	store := newFakeStore()

	for _, name := range []string{"Fulan", "Fulanah"} {
		app := newRecordingApp(db, store, stubLogin(name, "male"))
		resp := postRecording(t, app, map[string]string{"verse_index": "9"}, name+".webm", []byte("x"))
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	}

	// admin tanpa ?recorder= pada index yang direkam 2 orang → ambigu
	admin := newRecordingApp(db, store, stubAdmin("Panitia"))
	req := httptest.NewRequest(fiber.MethodDelete, "/api/recordings/9", nil)
	resp, err := admin.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.EqualValues(t, 2, countRows(t, db, 9))
}

/* =======================================================================
   Toggle verify, list, audio URL
======================================================================= */

func TestToggleVerifyBolakBalik(t *testing.T) {
	setScope(t, configs.ScopeGlobal)
	seedMiniCorpus(t)
	db := setupTestDB(t, false)
	store := newFakeStore()
	app := newRecordingApp(db, store, stubAdmin("Panitia"))

	row := model.RecordingModel{
		RecordingVerseIndex:     10,
		RecordingVerseText:      "ayat 114:1",
		RecordingObjectKey:      "recordings/ayat_0010_x.webm",
		RecordingRecorderName:   "Hamba Allah",
		RecordingRecorderGender: "male",
	}
	require.NoError(t, db.Create(&row).Error)

	toggle := func() map[string]any {
		req := httptest.NewRequest(fiber.MethodPatch, "/api/recordings/10/verify", nil)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		return decodeBody(t, resp)["data"].(map[string]any)
	}

	assert.Equal(t, true, toggle()["recording_is_verified"])
	assert.Equal(t, false, toggle()["recording_is_verified"])

	var reloaded model.RecordingModel
	require.NoError(t, db.Where("recording_verse_index = ?", 10).First(&reloaded).Error)
	assert.False(t, reloaded.RecordingIsVerified)
}

func TestToggleVerifyTidakDitemukan(t *testing.T) {
	setScope(t, configs.ScopeGlobal)
	seedMiniCorpus(t)
	db := setupTestDB(t, false)
	app := newRecordingApp(db, newFakeStore(), stubAdmin("Panitia"))

	req := httptest.NewRequest(fiber.MethodPatch, "/api/recordings/11/verify", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestListRecordingsFilterDanPaging(t *testing.T) {
	setScope(t, configs.ScopeGlobal)
	seedMiniCorpus(t)
	db := setupTestDB(t, false)
	app := newRecordingApp(db, newFakeStore(), stubAdmin("Panitia"))

	for i, verified := range []bool{true, false, true} {
		row := model.RecordingModel{
			RecordingVerseIndex:     3 + i, // surah 103
			RecordingVerseText:      "x",
			RecordingObjectKey:      fmt.Sprintf("recordings/a%d.webm", i),
			RecordingRecorderName:   "Hamba Allah",
			RecordingRecorderGender: "male",
			RecordingIsVerified:     verified,
		}
		require.NoError(t, db.Create(&row).Error)
	}

	// filter verified
	req := httptest.NewRequest(fiber.MethodGet, "/api/recordings?verified=true", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Len(t, body["data"].([]any), 2)

	// filter surah + paging per halaman 2
	req = httptest.NewRequest(fiber.MethodGet, "/api/recordings?surah=103&per_page=2", nil)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	assert.Len(t, body["data"].([]any), 2)
	pg := body["pagination"].(map[string]any)
	assert.EqualValues(t, 3, pg["total"])
	assert.EqualValues(t, 2, pg["total_pages"])

	// surah di luar korpus mini
	req = httptest.NewRequest(fiber.MethodGet, "/api/recordings?surah=55", nil)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAudioURLPresign(t *testing.T) {
	setScope(t, configs.ScopeGlobal)
	seedMiniCorpus(t)
	db := setupTestDB(t, false)
	store := newFakeStore()
	app := newRecordingApp(db, store, nil)

	resp := postRecording(t, app, map[string]string{
		"verse_index":   "0",
		"recorder_name": "Hamba Allah",
	}, "a.webm", []byte("a"))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	req := httptest.NewRequest(fiber.MethodGet, "/api/recordings/0/audio", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	data := decodeBody(t, resp)["data"].(map[string]any)
	assert.EqualValues(t, 0, data["recording_verse_index"])
	assert.Contains(t, data["url"], store.uploads[0])
	assert.NotEmpty(t, data["expires_at"])

	// ayat yang belum direkam → 404
	req = httptest.NewRequest(fiber.MethodGet, "/api/recordings/1/audio", nil)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
