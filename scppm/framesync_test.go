package scppm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCorrelateFindsExactCSM(t *testing.T) {
	csm := []int{0, 4, 2, 6, 1, 5, 3, 7}
	stream := append([]int{9, 9, 9}, csm...)
	stream = append(stream, 9, 9)

	scores := correlate(stream, csm)
	require.Len(t, scores, len(stream)-len(csm)+1)
	assert.Equal(t, len(csm), scores[3])
}

func TestCorrelateTreatsErasureAsNonMatch(t *testing.T) {
	csm := []int{0, 1, 2, 3}
	stream := []int{0, 1, ErasureSymbol, 3}
	scores := correlate(stream, csm)
	assert.Equal(t, 3, scores[0])
}

func TestFindCSMMarksLocatesInsertedMarker(t *testing.T) {
	cfg, err := NewConfig(8, Rate1_2)
	require.NoError(t, err)
	csm := cfg.CSM()

	noise := make([]int, 200)
	for i := range noise {
		noise[i] = i % cfg.M
	}
	stream := append(append([]int{}, noise...), csm...)
	stream = append(stream, noise...)

	marks := FindCSMMarks(cfg, stream)
	require.NotEmpty(t, marks)

	found := false
	for _, mark := range marks {
		if mark.Position == len(noise) {
			found = true
		}
	}
	assert.True(t, found, "expected a mark at the inserted CSM's position")
}

func TestSyncCodewordsRecoversEachCodeword(t *testing.T) {
	cfg, err := NewConfig(8, Rate1_2)
	require.NoError(t, err)
	csm := cfg.CSM()

	cwLen := cfg.InterleavedSymbolsPerCodeword()
	codeword1 := make([]int, cwLen)
	codeword2 := make([]int, cwLen)
	for i := range codeword1 {
		codeword1[i] = i % cfg.M
		codeword2[i] = (i + 1) % cfg.M
	}

	var stream []int
	stream = append(stream, csm...)
	stream = append(stream, codeword1...)
	stream = append(stream, csm...)
	stream = append(stream, codeword2...)

	codewords, marks := SyncCodewords(cfg, stream)
	require.Len(t, codewords, 2)
	assert.Equal(t, codeword1, codewords[0])
	assert.Equal(t, codeword2, codewords[1])
	assert.Len(t, marks, 2)
	assert.Equal(t, 0, marks[0].Position)
	assert.Equal(t, len(csm)+cwLen, marks[1].Position)
}

func TestSyncCodewordsResamplesDriftBetweenConfirmedCSMs(t *testing.T) {
	cfg, err := NewConfig(8, Rate1_2)
	require.NoError(t, err)
	csm := cfg.CSM()

	cwLen := cfg.InterleavedSymbolsPerCodeword()
	// Simulate a receiver clock running fast: 3 extra symbols crept in
	// between the two CSMs relative to the nominal stride.
	stretched := make([]int, cwLen+3)
	for i := range stretched {
		stretched[i] = i % cfg.M
	}

	var stream []int
	stream = append(stream, csm...)
	stream = append(stream, stretched...)
	stream = append(stream, csm...)
	// Trailing nominal-length codeword so the stretched one has a
	// following CSM to resample against.
	tail := make([]int, cwLen)
	stream = append(stream, tail...)

	codewords, marks := SyncCodewords(cfg, stream)
	require.Len(t, codewords, 2)
	require.Len(t, marks, 2)
	assert.Len(t, codewords[0], cwLen, "drift-resampled codeword must be exactly the nominal length")
	assert.NotEqual(t, stretched, codewords[0], "resampling must actually reindex the stretched span")
}

func TestResampleDriftPreservesEndpointsAndLength(t *testing.T) {
	src := []int{0, 1, 2, 3, 4, 5, 6}
	out := resampleDrift(src, 4)
	require.Len(t, out, 4)
	assert.Equal(t, src[0], out[0])
	assert.Equal(t, src[len(src)-1], out[len(out)-1])
}

func TestMedian(t *testing.T) {
	assert.Equal(t, 0.0, median(nil))
	assert.Equal(t, 2.0, median([]int{1, 2, 3}))
	assert.Equal(t, 2.5, median([]int{1, 2, 3, 4}))
}
