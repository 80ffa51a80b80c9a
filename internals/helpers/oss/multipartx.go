// internals/helpers/oss/multipartx.go
package helper

import (
	"mime/multipart"
)

// ==============================
// Audio file picker
// ==============================

// Urutan kandidat nama field yg umum dipakai FE/Postman untuk part audio
var audioFieldCandidates = []string{
	"audio", "file", "recording", "upload",
}

// PickAudioFile mengambil SATU *FileHeader audio dari form multipart,
// dengan urutan preferensi kandidat field di atas. Satu rekaman = satu
// file; part kedua dan seterusnya diabaikan.
// Mengembalikan: file header dan nama field yang dipakai (kosong bila tidak ada).
func PickAudioFile(form *multipart.Form) (*multipart.FileHeader, string) {
	if form == nil || form.File == nil {
		return nil, ""
	}
	for _, key := range audioFieldCandidates {
		if fhs, ok := form.File[key]; ok {
			for _, fh := range fhs {
				if fh != nil && fh.Filename != "" {
					return fh, key
				}
			}
		}
	}
	// sweep semua key lain
	for key, fhs := range form.File {
		for _, fh := range fhs {
			if fh != nil && fh.Filename != "" {
				return fh, key
			}
		}
	}
	return nil, ""
}
