// internals/features/quran/corpus/bulk.go
package corpus

import "sort"

/* =======================================================================
   Bulk-group selector (sesi rekam borongan juz 'amma)
   Aturan tier berdasarkan nomor surah pertama yang belum selesai:
     - s <= 93          → batch surah itu saja
     - 94 <= s <= 104   → surah itu + surah berikutnya bila belum selesai
                          dan masih <= 104 (ukuran 1–2)
     - s >= 105         → surah itu + maksimal 4 surah berurutan berikutnya,
                          masing-masing hanya bila belum selesai dan <= 114
                          (ukuran 1–5)
   Keanggotaan batch harus KONSEKUTIF ketat mulai dari s — surah yang sudah
   selesai memutus perpanjangan.
   Aturan ini hanya terdefinisi untuk bagian ekor korpus (para 30, surah
   pendek); selector menolak bekerja di luar para itu dengan membatasi
   dirinya ke ayat ber-para ShortSurahPara.
======================================================================= */

// ShortSurahPara: para tempat aturan bulk berlaku (juz 'amma).
const ShortSurahPara = 30

// Jenis group berdasarkan ukuran batch surah.
const (
	GroupSingle   = "single"   // 1 surah
	GroupPair     = "pair"     // 2 surah
	GroupFive     = "five"     // 5 surah
	GroupMultiple = "multiple" // 3–4 surah (tier lima terpotong)
)

// BulkBatch adalah hasil pemilihan satu sesi rekam borongan.
type BulkBatch struct {
	Verses       []Verse `json:"verses"`         // seluruh ayat surah terpilih, index naik
	Surahs       []int   `json:"current_surahs"` // nomor surah pada batch, urut naik
	GroupType    string  `json:"group_type"`
	UserRecorded int     `json:"user_recorded"` // ayat para-30 yang sudah terekam
	TotalVerses  int     `json:"total_verses"`  // total ayat para-30
}

// NextBulkBatch menentukan batch surah berikutnya untuk satu sesi.
// recorded = index ayat yang sudah terekam dalam scope pemanggil
// (global atau per-user — selector tidak peduli asalnya).
// Batch kosong (Verses nil, counts tetap terisi) bila seluruh ekor selesai.
func NextBulkBatch(verses []Verse, recorded []int) BulkBatch {
	set := RecordedSet(recorded, len(verses))

	// Kelompokkan ayat para-30 per surah.
	bySurah := make(map[int][]Verse)
	surahDone := make(map[int]bool)
	total, done := 0, 0
	for _, v := range verses {
		if v.ParaNumber != ShortSurahPara {
			continue
		}
		total++
		bySurah[v.SurahNumber] = append(bySurah[v.SurahNumber], v)
		if _, ok := set[v.Index]; ok {
			done++
		} else {
			surahDone[v.SurahNumber] = false
		}
		if _, seen := surahDone[v.SurahNumber]; !seen {
			surahDone[v.SurahNumber] = true
		}
	}

	batch := BulkBatch{UserRecorded: done, TotalVerses: total}
	if total == 0 {
		return batch
	}

	surahs := make([]int, 0, len(bySurah))
	for s := range bySurah {
		surahs = append(surahs, s)
	}
	sort.Ints(surahs)

	// Surah "selesai" = SEMUA ayatnya ada di set; sebagian terekam tetap
	// dianggap belum (sesi berikut mengulang surah itu utuh).
	first := 0
	for _, s := range surahs {
		if !surahDone[s] {
			first = s
			break
		}
	}
	if first == 0 {
		return batch // seluruh ekor sudah terekam
	}

	selected := []int{first}
	switch {
	case first <= 93:
		// satu surah saja
	case first <= 104:
		next := first + 1
		if next <= 104 && hasSurah(bySurah, next) && !surahDone[next] {
			selected = append(selected, next)
		}
	default:
		for next := first + 1; next <= first+4 && next <= 114; next++ {
			if !hasSurah(bySurah, next) || surahDone[next] {
				break // gap memutus perpanjangan
			}
			selected = append(selected, next)
		}
	}

	switch len(selected) {
	case 1:
		batch.GroupType = GroupSingle
	case 2:
		batch.GroupType = GroupPair
	case 5:
		batch.GroupType = GroupFive
	default:
		batch.GroupType = GroupMultiple
	}

	batch.Surahs = selected
	for _, s := range selected {
		batch.Verses = append(batch.Verses, bySurah[s]...)
	}
	sort.Slice(batch.Verses, func(i, j int) bool {
		return batch.Verses[i].Index < batch.Verses[j].Index
	})
	return batch
}

func hasSurah(bySurah map[int][]Verse, s int) bool {
	_, ok := bySurah[s]
	return ok
}
