// internals/features/quran/corpus/next.go
package corpus

import "errors"

// ErrIndexOutOfRange: posisi awal pencarian di luar [-1, len(korpus)).
// Boundary layer memetakan error ini ke HTTP 400.
var ErrIndexOutOfRange = errors.New("posisi awal di luar range korpus")

// NextUnrecorded mencari ayat pertama yang belum terekam setelah posisi after.
//   - after == -1 → scan dari awal korpus (index 0 ikut diperiksa)
//   - after >= 0  → scan mulai after+1 (after sendiri TIDAK diperiksa)
//
// Mengembalikan (nil, nil) bila semua ayat pada range sudah terekam.
// Fungsi murni terhadap inputnya: pemanggilan berulang dengan (after,
// recorded) sama selalu memberi hasil sama.
func NextUnrecorded(verses []Verse, after int, recorded []int) (*Verse, error) {
	if after < -1 || after >= len(verses) {
		return nil, ErrIndexOutOfRange
	}

	for _, v := range Remaining(verses, recorded, Filter{}) {
		if v.Index > after {
			return &v, nil
		}
	}
	return nil, nil
}
