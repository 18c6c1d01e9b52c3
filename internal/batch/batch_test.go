package batch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPenalties() Penalties {
	return Penalties{Match: -10, Mismatch: 40, GapOpenExtend: 60, GapExtend: 20}
}

func qualityBytes(q, n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(q + 33)
	}
	return b
}

func TestAlignReadsConcurrentlyPreservesOrder(t *testing.T) {
	ref := []byte("ACGTACGT")
	reads := []Read{
		{Sequence: []byte("ACGT"), Quality: qualityBytes(40, 4)},
		{Sequence: []byte("AGGT"), Quality: qualityBytes(40, 4)},
		{Sequence: []byte("ACGT"), Quality: qualityBytes(40, 4)},
	}

	results := AlignReadsConcurrently(ref, reads, testPenalties(), true)

	require.Len(t, results, 3)
	for i, r := range results {
		assert.Equal(t, i, r.Index)
		require.NoError(t, r.Err)
		assert.NotEmpty(t, r.CIGAR)
	}
}

func TestAlignReadsConcurrentlyReportsPerReadErrors(t *testing.T) {
	ref := []byte("ACGTACGT")
	reads := []Read{
		{Sequence: []byte("ACGT"), Quality: qualityBytes(40, 4)},
		{Sequence: []byte("ACGT"), Quality: qualityBytes(40, 3)}, // mismatched length
	}

	results := AlignReadsConcurrently(ref, reads, testPenalties(), false)

	require.Len(t, results, 2)
	require.NoError(t, results[0].Err)
	require.Error(t, results[1].Err)
}

func TestAlignReadsConcurrentlyEmptyBatch(t *testing.T) {
	results := AlignReadsConcurrently([]byte("ACGT"), nil, testPenalties(), false)
	assert.Empty(t, results)
}
