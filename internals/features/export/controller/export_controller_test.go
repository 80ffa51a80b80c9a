// internals/features/export/controller/export_controller_test.go
package controller

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	corpus "tilawahku_backend/internals/features/quran/corpus"
	"tilawahku_backend/internals/features/recordings/model"
	helperOSS "tilawahku_backend/internals/helpers/oss"
)

/* =======================================================================
   Fixtures
======================================================================= */

// fakeExportStore: AudioStore in-memory untuk jalur export (fetch only).
type fakeExportStore struct {
	objects  map[string][]byte
	fetchErr map[string]error
}

var _ helperOSS.AudioStore = (*fakeExportStore)(nil)

func newFakeExportStore() *fakeExportStore {
	return &fakeExportStore{
		objects:  map[string][]byte{},
		fetchErr: map[string]error{},
	}
}

func (f *fakeExportStore) UploadAudio(_ context.Context, _ *multipart.FileHeader, _ int) (string, error) {
	return "", fmt.Errorf("tidak dipakai di test export")
}

func (f *fakeExportStore) DeleteObject(_ context.Context, _ string) error { return nil }

func (f *fakeExportStore) FetchObject(_ context.Context, key string) (io.ReadCloser, error) {
	if err, ok := f.fetchErr[key]; ok {
		return nil, err
	}
	b, ok := f.objects[key]
	if !ok {
		return nil, fmt.Errorf("objek %s tidak ada", key)
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

func (f *fakeExportStore) PresignGet(key string, _ time.Duration) (string, error) {
	return "https://bucket.test/" + key, nil
}

func setupExportDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&model.RecordingModel{}))
	return db
}

func seedExportCorpus(t *testing.T) {
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
	add(114, "An-Nas", 30, 3)

	corpus.SetSnapshot(verses)
	t.Cleanup(func() { corpus.SetSnapshot(nil) })
}

// seedRecording menanam satu row + isi objeknya di store.
func seedRecording(t *testing.T, db *gorm.DB, store *fakeExportStore, verseIndex int, recorder string, verified bool) string {
	t.Helper()
	key := fmt.Sprintf("recordings/ayat_%04d_%s.webm", verseIndex, recorder)
	row := model.RecordingModel{
		RecordingVerseIndex:     verseIndex,
		RecordingVerseText:      "",
		RecordingObjectKey:      key,
		RecordingRecorderName:   recorder,
		RecordingRecorderGender: "male",
		RecordingIsVerified:     verified,
	}
	require.NoError(t, db.Create(&row).Error)
	store.objects[key] = []byte("audio-" + recorder)
	return key
}

func newExportApp(db *gorm.DB, store helperOSS.AudioStore) *fiber.App {
	app := fiber.New()
	ctl := NewExportController(db, store)
	app.Get("/api/a/export/archive", ctl.Archive)
	app.Get("/api/a/export/manifest", ctl.Manifest)
	return app
}

func doGet(t *testing.T, app *fiber.App, url string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodGet, url, nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

/* =======================================================================
   Manifest CSV
======================================================================= */

func TestManifestCSV(t *testing.T) {
	seedExportCorpus(t)
	db := setupExportDB(t)
	store := newFakeExportStore()
	app := newExportApp(db, store)

	keyA := seedRecording(t, db, store, 0, "Fulan", false)
	keyB := seedRecording(t, db, store, 3, "Fulanah", true)

	resp := doGet(t, app, "/api/a/export/manifest")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "text/csv")
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "recorded_ayats.csv")

	defer resp.Body.Close()
	records, err := csv.NewReader(resp.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3) // header + 2 row

	assert.Equal(t, []string{
		"Recording Name", "Verse Index", "Surah Number", "Surah Name",
		"Verse Number", "Para Number", "Verse Text", "Recorder Name",
		"Recorder Gender", "Verified", "Created At",
	}, records[0])

	// kolom pertama = nama file di arsip (basename object key)
	rowA := records[1]
	assert.Equal(t, path.Base(keyA), rowA[0])
	assert.Equal(t, "0", rowA[1])
	assert.Equal(t, "1", rowA[2])
	assert.Equal(t, "Al-Fatihah", rowA[3])
	assert.Equal(t, "1", rowA[4])
	assert.Equal(t, "1", rowA[5])
	// teks row kosong → diisi dari korpus
	assert.Equal(t, "ayat 1:1", rowA[6])
	assert.Equal(t, "Fulan", rowA[7])
	assert.Equal(t, "false", rowA[9])
	_, err = time.Parse(time.RFC3339, rowA[10])
	assert.NoError(t, err)

	rowB := records[2]
	assert.Equal(t, path.Base(keyB), rowB[0])
	assert.Equal(t, "114", rowB[2])
	assert.Equal(t, "An-Nas", rowB[3])
	assert.Equal(t, "30", rowB[5])
	assert.Equal(t, "true", rowB[9])
}

func TestManifestRangeSetengahTerbuka(t *testing.T) {
	seedExportCorpus(t)
	db := setupExportDB(t)
	store := newFakeExportStore()
	app := newExportApp(db, store)

	seedRecording(t, db, store, 2, "Fulan", false)
	seedRecording(t, db, store, 3, "Fulanah", false)
	seedRecording(t, db, store, 4, "Fulan", false)

	// [from, to): batas atas eksklusif
	resp := doGet(t, app, "/api/a/export/manifest?from=2&to=4")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	defer resp.Body.Close()
	records, err := csv.NewReader(resp.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3) // header + index 2 & 3
	assert.Equal(t, "2", records[1][1])
	assert.Equal(t, "3", records[2][1])
}

func TestExportRangeTidakValid(t *testing.T) {
	seedExportCorpus(t)
	db := setupExportDB(t)
	app := newExportApp(db, newFakeExportStore())

	for _, q := range []string{"?from=5&to=2", "?from=-1", "?to=-3", "?from=abc"} {
		resp := doGet(t, app, "/api/a/export/manifest"+q)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, "query %s", q)
		resp.Body.Close()

		resp = doGet(t, app, "/api/a/export/archive"+q)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, "query %s", q)
		resp.Body.Close()
	}
}

/* =======================================================================
   Arsip zip
======================================================================= */

func TestArchiveZip(t *testing.T) {
	seedExportCorpus(t)
	db := setupExportDB(t)
	store := newFakeExportStore()
	app := newExportApp(db, store)

	keyA := seedRecording(t, db, store, 0, "Fulan", false)
	keyB := seedRecording(t, db, store, 1, "Fulanah", true)

	resp := doGet(t, app, "/api/a/export/archive")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/zip", resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), ".zip")

	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(body), int64(len(body)))
	require.NoError(t, err)
	require.Len(t, zr.File, 2)

	// nama entry = basename object key, sama dengan kolom pertama manifest
	byName := map[string][]byte{}
	for _, zf := range zr.File {
		rc, err := zf.Open()
		require.NoError(t, err)
		b, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		byName[zf.Name] = b
	}
	assert.Equal(t, []byte("audio-Fulan"), byName[path.Base(keyA)])
	assert.Equal(t, []byte("audio-Fulanah"), byName[path.Base(keyB)])
}

func TestArchiveSkipObjekHilang(t *testing.T) {
	seedExportCorpus(t)
	db := setupExportDB(t)
	store := newFakeExportStore()
	app := newExportApp(db, store)

	keyA := seedRecording(t, db, store, 0, "Fulan", false)
	keyHilang := seedRecording(t, db, store, 1, "Fulanah", false)
	store.fetchErr[keyHilang] = fmt.Errorf("NoSuchKey")

	resp := doGet(t, app, "/api/a/export/archive")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	// objek hilang di-skip, sisanya tetap masuk arsip
	zr, err := zip.NewReader(bytes.NewReader(body), int64(len(body)))
	require.NoError(t, err)
	require.Len(t, zr.File, 1)
	assert.Equal(t, path.Base(keyA), zr.File[0].Name)
}

func TestArchiveTanpaRekaman(t *testing.T) {
	seedExportCorpus(t)
	db := setupExportDB(t)
	app := newExportApp(db, newFakeExportStore())

	resp := doGet(t, app, "/api/a/export/archive")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}
