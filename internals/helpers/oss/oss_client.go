// internals/helpers/oss/oss_client.go
package helper

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/gofiber/fiber/v2"

	"tilawahku_backend/internals/constants"
)

func getEnv(k string) string { return strings.TrimSpace(os.Getenv(k)) }

func envInt(key string, def int) int {
	if v := getEnv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return def
}

// batas ukuran audio upload (MediaRecorder webm satu ayat biasanya < 2MB;
// default longgar untuk wav mentah)
func maxAudioUploadSize() int64 {
	return int64(envInt("AUDIO_MAX_UPLOAD_MB", 20)) * 1024 * 1024
}

// PresignExpiry: umur URL presigned GET audio.
const PresignExpiry = 15 * time.Minute

/* =======================================================================
   AudioStore
   Interface penyimpanan artefak audio — controller pegang interface ini,
   bukan OSSService langsung, supaya handler bisa dites dengan store palsu.
======================================================================= */

type AudioStore interface {
	// UploadAudio menyimpan satu file audio untuk satu ayat, return object key.
	UploadAudio(ctx context.Context, fh *multipart.FileHeader, verseIndex int) (string, error)
	// DeleteObject menghapus artefak. Error TIDAK boleh ditelan pemanggil
	// pada jalur delete rekaman (kebijakan retryable cleanup).
	DeleteObject(ctx context.Context, key string) error
	// FetchObject membaca artefak (dipakai export zip).
	FetchObject(ctx context.Context, key string) (io.ReadCloser, error)
	// PresignGet menghasilkan URL GET bertanda tangan berumur terbatas.
	PresignGet(key string, expires time.Duration) (string, error)
}

/* =======================================================================
   OSS Service
======================================================================= */

type OSSService struct {
	Client     *oss.Client
	Bucket     *oss.Bucket
	Endpoint   string
	BucketName string
	Prefix     string // optional: "audio"
}

// compile-time guard
var _ AudioStore = (*OSSService)(nil)

func NewOSSServiceFromEnv(prefix string) (*OSSService, error) {
	endpoint := getEnv("ALI_OSS_ENDPOINT")
	ak := getEnv("ALI_OSS_ACCESS_KEY")
	sk := getEnv("ALI_OSS_SECRET_KEY")
	sts := getEnv("ALI_OSS_SECURITY_TOKEN")
	bucketName := getEnv("ALI_OSS_BUCKET")
	if endpoint == "" || ak == "" || sk == "" || bucketName == "" {
		return nil, fmt.Errorf("missing env: ALI_OSS_ENDPOINT/ACCESS_KEY/SECRET_KEY/BUCKET")
	}

	var (
		client *oss.Client
		err    error
	)
	if sts != "" {
		client, err = oss.New(endpoint, ak, sk, oss.SecurityToken(sts))
	} else {
		client, err = oss.New(endpoint, ak, sk)
	}
	if err != nil {
		return nil, fmt.Errorf("oss.New: %w", err)
	}

	bkt, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("client.Bucket: %w", err)
	}

	// Verifikasi ringan lokasi bucket
	if loc, err := client.GetBucketLocation(bucketName); err != nil {
		if se, ok := err.(oss.ServiceError); ok && se.StatusCode == 403 && se.Code == "AccessDenied" {
			log.Printf("[OSS] warn: skip location check due to AccessDenied (bucket=%s). Continuing.", bucketName)
		} else {
			return nil, fmt.Errorf("verify bucket: %w", err)
		}
	} else {
		log.Printf("[OSS] bucket %s location: %s", bucketName, loc)
	}

	return &OSSService{
		Client:     client,
		Bucket:     bkt,
		Endpoint:   endpoint,
		BucketName: bucketName,
		Prefix:     strings.Trim(prefix, "/"),
	}, nil
}

/* =======================================================================
   Upload audio
======================================================================= */

// UploadAudio: validasi ekstensi + ukuran, sniff content type, upload apa
// adanya (TANPA transcoding — konversi wav/augmentasi urusan pipeline offline).
func (s *OSSService) UploadAudio(ctx context.Context, fh *multipart.FileHeader, verseIndex int) (string, error) {
	if fh == nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "File audio tidak ditemukan")
	}
	if !constants.IsAllowedAudioExt(fh.Filename) && strings.Contains(fh.Filename, ".") {
		return "", fiber.NewError(fiber.StatusUnsupportedMediaType, "Format audio tidak didukung (pakai webm/ogg/mp3/wav/m4a)")
	}
	if max := maxAudioUploadSize(); fh.Size > max {
		return "", fiber.NewError(fiber.StatusRequestEntityTooLarge,
			fmt.Sprintf("Ukuran audio maksimal %dMB", max/(1024*1024)))
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open file: %w", err)
	}
	defer src.Close()

	ct, reader, err := detectAudioContentType(src, fh.Filename)
	if err != nil {
		return "", err
	}

	key := s.buildAudioKey(verseIndex, fh.Filename)
	if err := s.UploadStream(ctx, key, reader, ct); err != nil {
		return "", err
	}
	return key, nil
}

// UploadStream: PutObject mentah dengan content type eksplisit.
// Disposition inline supaya browser memutar objek, bukan mengunduh.
func (s *OSSService) UploadStream(ctx context.Context, key string, r io.Reader, contentType string) error {
	if key == "" {
		return fmt.Errorf("empty key")
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	opts := []oss.Option{
		oss.WithContext(ctx),
		oss.ContentType(contentType),
		oss.ContentDisposition("inline"),
	}
	return s.Bucket.PutObject(key, r, opts...)
}

/* =======================================================================
   Delete / Fetch / Presign
======================================================================= */

func (s *OSSService) DeleteObject(ctx context.Context, key string) error {
	return s.Bucket.DeleteObject(key, oss.WithContext(ctx))
}

func (s *OSSService) FetchObject(ctx context.Context, key string) (io.ReadCloser, error) {
	return s.Bucket.GetObject(key, oss.WithContext(ctx))
}

// PresignGet: URL GET bertanda tangan — bucket tetap private, client memutar
// audio lewat URL berumur pendek ini.
func (s *OSSService) PresignGet(key string, expires time.Duration) (string, error) {
	if key == "" {
		return "", fmt.Errorf("empty key")
	}
	if expires <= 0 {
		expires = PresignExpiry
	}
	return s.Bucket.SignURL(key, oss.HTTPGet, int64(expires.Seconds()))
}

/* =======================================================================
   Key & misc utils
======================================================================= */

// buildAudioKey: recordings/ayat_0042_20060102_150405_a1b2c3.webm
// Nomor ayat di depan supaya listing bucket terurut per ayat.
func (s *OSSService) buildAudioKey(verseIndex int, filename string) string {
	ext := constants.AudioExt(filename)
	ts := time.Now().Format("20060102_150405")
	rand6 := randHex(3)

	prefix := s.Prefix
	if prefix != "" {
		prefix += "/"
	}
	return fmt.Sprintf("%sayat_%04d_%s_%s%s", prefix, verseIndex, ts, rand6, ext)
}

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// detectAudioContentType: tentukan contentType dari ekstensi + sniff 512B.
// Sniffer net/http tidak kenal semua container audio → ekstensi menang.
func detectAudioContentType(src multipart.File, filename string) (string, io.Reader, error) {
	ct := constants.AudioContentType(filename)

	head := make([]byte, 512)
	n, _ := io.ReadFull(io.LimitReader(src, 512), head)
	if ct == "application/octet-stream" && n > 0 {
		ct = http.DetectContentType(head[:n])
	}

	if seeker, ok := src.(io.Seeker); ok {
		if _, err := seeker.Seek(0, io.SeekStart); err == nil {
			return ct, src, nil
		}
	}
	combined := append([]byte{}, head[:n]...)
	body, _ := io.ReadAll(src)
	combined = append(combined, body...)
	return ct, bytes.NewReader(combined), nil
}

// IsNotFound: objek sudah tidak ada di bucket (export memakai ini untuk
// membedakan "skip karena hilang" dari error OSS beneran).
func IsNotFound(err error) bool {
	if e, ok := err.(oss.ServiceError); ok {
		return e.StatusCode == 404
	}
	return false
}
