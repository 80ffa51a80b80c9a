// internals/features/quran/corpus/loader.go
package corpus

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
)

/* =======================================================================
   Loader dataset CSV
   Header wajib: surah_number, surah_name, surah_name_latin, verse_number,
                 para_number, section_number, text
   Header opsional: global_verse_number (default: posisi+1), text_latin
   Index ayat TIDAK diambil dari file — selalu posisi baris (0-based),
   supaya identitas stabil walaupun kolom dataset berubah urutan.
======================================================================= */

// Load membaca dataset ayat dari path CSV lalu memasang snapshot korpus.
// Dipanggil sekali dari main sebelum server menerima request.
// Error di sini fatal untuk startup (dataset rusak = server tidak boleh jalan).
func Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("buka dataset: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	rows, err := r.ReadAll()
	if err != nil {
		return fmt.Errorf("baca dataset: %w", err)
	}
	if len(rows) < 2 {
		return fmt.Errorf("dataset kosong: %s", path)
	}

	col, err := mapHeader(rows[0])
	if err != nil {
		return err
	}

	verses := make([]Verse, 0, len(rows)-1)
	for i, row := range rows[1:] {
		v, err := parseRow(row, col, len(verses))
		if err != nil {
			return fmt.Errorf("dataset baris %d: %w", i+2, err)
		}
		verses = append(verses, v)
	}

	SetSnapshot(verses)
	log.Printf("✅ Korpus dimuat: %d ayat (%s)", len(verses), path)
	return nil
}

// kolom wajib/opsional pada header
var requiredColumns = []string{
	"surah_number", "surah_name", "surah_name_latin",
	"verse_number", "para_number", "section_number", "text",
}

func mapHeader(header []string) (map[string]int, error) {
	col := make(map[string]int, len(header))
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(name))
		if key != "" {
			col[key] = i
		}
	}
	for _, name := range requiredColumns {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("dataset tanpa kolom wajib %q", name)
		}
	}
	return col, nil
}

func parseRow(row []string, col map[string]int, position int) (Verse, error) {
	get := func(name string) string {
		idx, ok := col[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}
	getInt := func(name string) (int, error) {
		s := get(name)
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, fmt.Errorf("kolom %s bukan angka: %q", name, s)
		}
		return n, nil
	}

	surahNo, err := getInt("surah_number")
	if err != nil {
		return Verse{}, err
	}
	if surahNo < 1 || surahNo > 114 {
		return Verse{}, fmt.Errorf("surah_number di luar 1..114: %d", surahNo)
	}

	verseNo, err := getInt("verse_number")
	if err != nil {
		return Verse{}, err
	}
	if verseNo < 1 {
		return Verse{}, fmt.Errorf("verse_number harus >= 1: %d", verseNo)
	}

	paraNo, err := getInt("para_number")
	if err != nil {
		return Verse{}, err
	}
	if paraNo < 1 || paraNo > 30 {
		return Verse{}, fmt.Errorf("para_number di luar 1..30: %d", paraNo)
	}

	sectionNo, err := getInt("section_number")
	if err != nil {
		return Verse{}, err
	}

	text := get("text")
	if text == "" {
		return Verse{}, fmt.Errorf("kolom text kosong")
	}

	// global_verse_number opsional → fallback posisi+1
	globalNo := position + 1
	if s := get("global_verse_number"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return Verse{}, fmt.Errorf("kolom global_verse_number bukan angka: %q", s)
		}
		globalNo = n
	}

	return Verse{
		Index:             position,
		Text:              text,
		TextLatin:         get("text_latin"),
		SurahNumber:       surahNo,
		SurahName:         get("surah_name"),
		SurahNameLatin:    get("surah_name_latin"),
		VerseNumber:       verseNo,
		GlobalVerseNumber: globalNo,
		ParaNumber:        paraNo,
		SectionNumber:     sectionNo,
	}, nil
}
