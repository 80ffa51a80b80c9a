// internals/features/quran/corpus/bulk_test.go
package corpus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// index seluruh ayat milik satu surah (untuk menandai surah "selesai")
func surahIndexes(verses []Verse, surah int) []int {
	var out []int
	for _, v := range verses {
		if v.SurahNumber == surah {
			out = append(out, v.Index)
		}
	}
	return out
}

func TestNextBulkBatchTierTunggal(t *testing.T) {
	verses := buildCorpus([]int{50, 95, 96}, 2, ShortSurahPara)

	batch := NextBulkBatch(verses, nil)

	assert.Equal(t, []int{50}, batch.Surahs)
	assert.Equal(t, GroupSingle, batch.GroupType)
	require.Len(t, batch.Verses, 2)
	for _, v := range batch.Verses {
		assert.Equal(t, 50, v.SurahNumber)
	}
	assert.Equal(t, 0, batch.UserRecorded)
	assert.Equal(t, 6, batch.TotalVerses)
}

func TestNextBulkBatchTierPasangan(t *testing.T) {
	verses := buildCorpus([]int{50, 95, 96}, 2, ShortSurahPara)
	recorded := surahIndexes(verses, 50)

	batch := NextBulkBatch(verses, recorded)

	assert.Equal(t, []int{95, 96}, batch.Surahs)
	assert.Equal(t, GroupPair, batch.GroupType)
	assert.Len(t, batch.Verses, 4)
	assert.Equal(t, 2, batch.UserRecorded)
	assert.Equal(t, 6, batch.TotalVerses)
}

func TestNextBulkBatchPasanganTerpotongBatas(t *testing.T) {
	// 104 tidak boleh menggandeng 105 (lewat batas tier pasangan)
	verses := buildCorpus([]int{104, 105}, 2, ShortSurahPara)

	batch := NextBulkBatch(verses, nil)

	assert.Equal(t, []int{104}, batch.Surahs)
	assert.Equal(t, GroupSingle, batch.GroupType)
}

func TestNextBulkBatchTierLima(t *testing.T) {
	verses := buildCorpus([]int{105, 106, 107, 108, 109, 110}, 2, ShortSurahPara)

	batch := NextBulkBatch(verses, nil)

	assert.Equal(t, []int{105, 106, 107, 108, 109}, batch.Surahs)
	assert.Equal(t, GroupFive, batch.GroupType)
	assert.Len(t, batch.Verses, 10)
}

func TestNextBulkBatchGapMemutus(t *testing.T) {
	verses := buildCorpus([]int{105, 106, 107}, 2, ShortSurahPara)
	recorded := surahIndexes(verses, 106)

	batch := NextBulkBatch(verses, recorded)

	// 106 sudah selesai → perpanjangan berhenti, BUKAN loncat ke 107
	assert.Equal(t, []int{105}, batch.Surahs)
	assert.Equal(t, GroupSingle, batch.GroupType)
}

func TestNextBulkBatchUkuranMultiple(t *testing.T) {
	verses := buildCorpus([]int{105, 106, 107, 108}, 2, ShortSurahPara)
	recorded := surahIndexes(verses, 108)

	batch := NextBulkBatch(verses, recorded)

	assert.Equal(t, []int{105, 106, 107}, batch.Surahs)
	assert.Equal(t, GroupMultiple, batch.GroupType)
}

func TestNextBulkBatchSurahParsialIkutUtuh(t *testing.T) {
	verses := buildCorpus([]int{95, 96}, 3, ShortSurahPara)
	// surah 95 baru terekam sebagian → tetap dianggap belum selesai
	recorded := []int{0}

	batch := NextBulkBatch(verses, recorded)

	assert.Equal(t, []int{95, 96}, batch.Surahs)
	// output memuat SEMUA ayat surah terpilih, termasuk yang sudah terekam
	assert.Len(t, batch.Verses, 6)
	assert.Equal(t, 1, batch.UserRecorded)
	assert.Equal(t, 6, batch.TotalVerses)

	// urut index naik
	for i := 1; i < len(batch.Verses); i++ {
		assert.Less(t, batch.Verses[i-1].Index, batch.Verses[i].Index)
	}
}

func TestNextBulkBatchEkorSelesai(t *testing.T) {
	verses := buildCorpus([]int{113, 114}, 2, ShortSurahPara)
	recorded := []int{0, 1, 2, 3}

	batch := NextBulkBatch(verses, recorded)

	assert.Empty(t, batch.Verses)
	assert.Empty(t, batch.Surahs)
	assert.Empty(t, batch.GroupType)
	assert.Equal(t, 4, batch.UserRecorded)
	assert.Equal(t, 4, batch.TotalVerses)
}

func TestNextBulkBatchHanyaParaEkor(t *testing.T) {
	awal := buildCorpus([]int{2}, 3, 1) // para 1, di luar cakupan bulk
	ekor := buildCorpus([]int{114}, 2, ShortSurahPara)
	for i := range ekor {
		ekor[i].Index = len(awal) + i
	}
	verses := append(awal, ekor...)

	batch := NextBulkBatch(verses, nil)

	assert.Equal(t, []int{114}, batch.Surahs)
	assert.Len(t, batch.Verses, 2)
	for _, v := range batch.Verses {
		assert.Equal(t, ShortSurahPara, v.ParaNumber)
	}
	// hitungan hanya ayat para ekor
	assert.Equal(t, 2, batch.TotalVerses)
	assert.Equal(t, 0, batch.UserRecorded)
}

func TestNextBulkBatchKorpusKosong(t *testing.T) {
	batch := NextBulkBatch(nil, nil)

	assert.Empty(t, batch.Verses)
	assert.Empty(t, batch.Surahs)
	assert.Zero(t, batch.TotalVerses)
	assert.Zero(t, batch.UserRecorded)
}
