// internals/features/quran/corpus/verse.go
package corpus

/* =======================================================================
   Korpus ayat (in-memory, read-only)
   - Dimuat SEKALI saat startup dari dataset CSV (lihat loader.go).
   - Setelah load tidak pernah berubah → aman dibaca concurrent tanpa lock.
   - Sebelum load selesai: semua accessor mengembalikan hasil kosong,
     BUKAN error (konsumen menganggap korpus kosong).
======================================================================= */

// Verse merepresentasikan satu ayat pada korpus tetap.
// Index = posisi 0-based, stabil antar request (identitas ayat di seluruh sistem).
type Verse struct {
	Index             int    `json:"index"`
	Text              string `json:"text"`                 // teks Arab
	TextLatin         string `json:"text_latin,omitempty"` // transliterasi (opsional di dataset)
	SurahNumber       int    `json:"surah_number"`
	SurahName         string `json:"surah_name"`
	SurahNameLatin    string `json:"surah_name_latin"`
	VerseNumber       int    `json:"verse_number"`        // nomor ayat di dalam surah (1-based)
	GlobalVerseNumber int    `json:"global_verse_number"` // nomor ayat global (1-based)
	ParaNumber        int    `json:"para_number"`         // para/juz 1..30
	SectionNumber     int    `json:"section_number"`
}

// snapshot korpus: diisi sekali oleh Load()/SetSnapshot(), lalu read-only.
var snapshot []Verse

// SetSnapshot memasang snapshot korpus secara langsung.
// Dipakai loader setelah parsing dan oleh test untuk korpus kecil buatan.
func SetSnapshot(verses []Verse) {
	snapshot = verses
}

// All mengembalikan seluruh ayat dalam urutan korpus.
// Slice yang dikembalikan TIDAK boleh dimodifikasi pemanggil.
func All() []Verse {
	return snapshot
}

// Len mengembalikan jumlah ayat pada korpus (0 bila belum dimuat).
func Len() int {
	return len(snapshot)
}

// ByIndex mengambil satu ayat berdasarkan index 0-based.
func ByIndex(i int) (Verse, bool) {
	if i < 0 || i >= len(snapshot) {
		return Verse{}, false
	}
	return snapshot[i], true
}
