// internals/features/quran/corpus/progress.go
package corpus

/* =======================================================================
   Progress tracker
   Input daftar index yang sudah terekam boleh mengandung duplikat dan
   nilai di luar range (keduanya dari data persisten lama) — duplikat
   di-dedup, nilai liar diabaikan. Tanpa side effect.
======================================================================= */

// Filter membatasi ayat yang dihitung ke satu para dan/atau satu section.
// Nil berarti tanpa batasan.
type Filter struct {
	Para    *int
	Section *int
}

func (f Filter) matches(v Verse) bool {
	if f.Para != nil && v.ParaNumber != *f.Para {
		return false
	}
	if f.Section != nil && v.SectionNumber != *f.Section {
		return false
	}
	return true
}

// RecordedSet membangun set index terekam: duplikat dibuang, nilai di luar
// [0, corpusLen) diabaikan.
func RecordedSet(recorded []int, corpusLen int) map[int]struct{} {
	set := make(map[int]struct{}, len(recorded))
	for _, idx := range recorded {
		if idx < 0 || idx >= corpusLen {
			continue
		}
		set[idx] = struct{}{}
	}
	return set
}

// Filtered mengembalikan ayat dalam cakupan filter, urut sesuai korpus.
func Filtered(verses []Verse, f Filter) []Verse {
	if f.Para == nil && f.Section == nil {
		return verses
	}
	out := make([]Verse, 0, len(verses))
	for _, v := range verses {
		if f.matches(v) {
			out = append(out, v)
		}
	}
	return out
}

// Remaining mengembalikan ayat yang BELUM terekam, urut sesuai korpus.
// Korpus kosong (belum dimuat) → hasil kosong, bukan error.
func Remaining(verses []Verse, recorded []int, f Filter) []Verse {
	set := RecordedSet(recorded, len(verses))
	out := make([]Verse, 0, len(verses)-len(set))
	for _, v := range verses {
		if !f.matches(v) {
			continue
		}
		if _, done := set[v.Index]; done {
			continue
		}
		out = append(out, v)
	}
	return out
}

// CountRecorded menghitung ayat terekam dalam cakupan filter.
func CountRecorded(verses []Verse, recorded []int, f Filter) int {
	set := RecordedSet(recorded, len(verses))
	n := 0
	for _, v := range verses {
		if !f.matches(v) {
			continue
		}
		if _, done := set[v.Index]; done {
			n++
		}
	}
	return n
}

// CountTotal menghitung seluruh ayat dalam cakupan filter.
func CountTotal(verses []Verse, f Filter) int {
	if f.Para == nil && f.Section == nil {
		return len(verses)
	}
	n := 0
	for _, v := range verses {
		if f.matches(v) {
			n++
		}
	}
	return n
}
