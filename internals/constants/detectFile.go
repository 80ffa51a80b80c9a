package constants

import (
	"path/filepath"
	"strings"
)

// Ekstensi audio yang diterima untuk upload rekaman.
// MediaRecorder browser menghasilkan .webm/.ogg; .mp3/.wav/.m4a untuk
// kontributor yang upload file hasil rekam di luar browser.
var audioContentTypes = map[string]string{
	".webm": "audio/webm",
	".ogg":  "audio/ogg",
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".m4a":  "audio/mp4",
}

// DefaultAudioExt dipakai saat nama file upload tidak berekstensi.
const DefaultAudioExt = ".webm"

// IsAllowedAudioExt mengecek apakah nama file punya ekstensi audio yang didukung.
func IsAllowedAudioExt(filename string) bool {
	_, ok := audioContentTypes[normalizeExt(filename)]
	return ok
}

// AudioContentType mengembalikan MIME type berdasarkan ekstensi file.
// Ekstensi tak dikenal → application/octet-stream.
func AudioContentType(filename string) string {
	if ct, ok := audioContentTypes[normalizeExt(filename)]; ok {
		return ct
	}
	return "application/octet-stream"
}

// AudioExt mengembalikan ekstensi file yang sudah dinormalisasi,
// fallback ke DefaultAudioExt bila kosong.
func AudioExt(filename string) string {
	ext := normalizeExt(filename)
	if ext == "" {
		return DefaultAudioExt
	}
	return ext
}

func normalizeExt(filename string) string {
	return strings.ToLower(filepath.Ext(filename))
}
