// internals/features/quran/corpus/next_test.go
package corpus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextUnrecorded(t *testing.T) {
	verses := buildCorpus([]int{103, 104}, 3, 30) // index 0..5

	cases := []struct {
		name     string
		after    int
		recorded []int
		want     int // -1 = nil (semua terekam)
	}{
		{name: "dari awal tanpa rekaman", after: -1, recorded: nil, want: 0},
		{name: "dari awal index 0 terekam", after: -1, recorded: []int{0}, want: 1},
		{name: "after eksklusif", after: 2, recorded: nil, want: 3},
		{name: "after eksklusif walau belum terekam", after: 0, recorded: nil, want: 1},
		{name: "lompati deretan terekam", after: 0, recorded: []int{1, 2, 3}, want: 4},
		{name: "duplikat pada recorded", after: -1, recorded: []int{0, 0, 1, 1}, want: 2},
		{name: "ekor semua terekam", after: 3, recorded: []int{4, 5}, want: -1},
		{name: "semua terekam", after: -1, recorded: []int{0, 1, 2, 3, 4, 5}, want: -1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NextUnrecorded(verses, tc.after, tc.recorded)
			require.NoError(t, err)
			if tc.want < 0 {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tc.want, got.Index)
		})
	}
}

func TestNextUnrecordedDiLuarRange(t *testing.T) {
	verses := buildCorpus([]int{114}, 6, 30)

	for _, after := range []int{-2, len(verses), len(verses) + 10} {
		_, err := NextUnrecorded(verses, after, nil)
		assert.ErrorIs(t, err, ErrIndexOutOfRange, "after=%d", after)
	}

	// korpus kosong: hanya -1 yang valid
	got, err := NextUnrecorded(nil, -1, nil)
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = NextUnrecorded(nil, 0, nil)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestNextUnrecordedIdempoten(t *testing.T) {
	verses := buildCorpus([]int{105, 106}, 2, 30)
	recorded := []int{0, 2}

	a, err := NextUnrecorded(verses, -1, recorded)
	require.NoError(t, err)
	b, err := NextUnrecorded(verses, -1, recorded)
	require.NoError(t, err)

	require.NotNil(t, a)
	require.NotNil(t, b)
	assert.Equal(t, a.Index, b.Index)
	assert.Equal(t, 1, a.Index)
}
