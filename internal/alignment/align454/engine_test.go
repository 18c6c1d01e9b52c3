package align454

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine() *Engine {
	return NewEngine(-10, 40, 60, 20)
}

func qualityBytes(q, n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(q + 33)
	}
	return b
}

func runGlobal(t *testing.T, e *Engine, ref, query string, qual []byte) {
	t.Helper()
	require.NoError(t, e.PrepareDB([]byte(ref), 0, 0))
	require.NoError(t, e.PrepareQuery([]byte(query), qual, 0, 0))
	_, err := e.Align(false)
	require.NoError(t, err)
	require.NoError(t, e.Trace())
}

func runSemi(t *testing.T, e *Engine, ref, query string, qual []byte) {
	t.Helper()
	require.NoError(t, e.PrepareDB([]byte(ref), 0, 0))
	require.NoError(t, e.PrepareQuery([]byte(query), qual, 0, 0))
	_, err := e.Align(true)
	require.NoError(t, err)
	require.NoError(t, e.Trace())
}

func TestExactMatchGlobal(t *testing.T) {
	e := newTestEngine()
	runGlobal(t, e, "ACGT", "ACGT", qualityBytes(40, 4))

	assert.Equal(t, "4=", e.CIGAR().String())
	assert.Equal(t, 0, e.Offset())
}

func TestSingleSubstitutionGlobal(t *testing.T) {
	e := newTestEngine()
	runGlobal(t, e, "ACGT", "AGGT", qualityBytes(40, 4))

	assert.Equal(t, "1= 1X 2=", e.CIGAR().String())
	assert.Equal(t, 0, e.Offset())
}

func TestEmbeddedQuerySemiglobal(t *testing.T) {
	e := newTestEngine()
	runSemi(t, e, "AAAACGTAA", "CGT", qualityBytes(40, 3))

	assert.Equal(t, "3=", e.CIGAR().String())
	assert.Equal(t, 4, e.Offset())
}

func TestLeadingInsertionGlobal(t *testing.T) {
	e := newTestEngine()
	runGlobal(t, e, "AAAACGT", "TGCA", qualityBytes(0, 4))

	// The trailing "1=" can only match query's final 'A' against one of
	// the reference's leading 'A' bases (indices 0-3); the offset is
	// whichever of those the DP settles on under the chosen scalars.
	assert.Equal(t, "3I 1=", e.CIGAR().String())
	assert.GreaterOrEqual(t, e.Offset(), 0)
	assert.LessOrEqual(t, e.Offset(), 3)
}

func TestDeletionGlobal(t *testing.T) {
	e := newTestEngine()
	runGlobal(t, e, "ACGTACGT", "ACGACGT", qualityBytes(40, 7))

	assert.Equal(t, "3= 1D 4=", e.CIGAR().String())
	assert.Equal(t, 0, e.Offset())
}

func TestSoftclipTraceOnSubstitution(t *testing.T) {
	e := newTestEngine()
	runGlobal(t, e, "ACGT", "AGGT", qualityBytes(40, 4))
	before := e.Offset()

	e.SoftclipTrace()

	assert.Equal(t, "1S 3=", e.CIGAR().String())
	assert.Equal(t, before+1, e.Offset())
}

func TestSoftclipTraceIdempotent(t *testing.T) {
	e := newTestEngine()
	runGlobal(t, e, "ACGT", "AGGT", qualityBytes(40, 4))

	e.SoftclipTrace()
	first := e.CIGAR().String()
	firstOffset := e.Offset()

	e.SoftclipTrace()
	assert.Equal(t, first, e.CIGAR().String())
	assert.Equal(t, firstOffset, e.Offset())
}

func TestCompactTraceMergesEqualAndMismatch(t *testing.T) {
	e := newTestEngine()
	runGlobal(t, e, "ACGT", "AGGT", qualityBytes(40, 4))

	e.CompactTrace()
	assert.Equal(t, "4M", e.CIGAR().String())
}

func TestCompactTraceIdempotent(t *testing.T) {
	e := newTestEngine()
	runGlobal(t, e, "ACGT", "AGGT", qualityBytes(40, 4))

	e.CompactTrace()
	first := e.CIGAR().String()
	e.CompactTrace()
	assert.Equal(t, first, e.CIGAR().String())
}

func TestAppendHardclipSymmetry(t *testing.T) {
	e1 := newTestEngine()
	runGlobal(t, e1, "ACGT", "ACGT", qualityBytes(40, 4))
	e1.AppendHardclip(2, 0)
	e1.AppendHardclip(0, 3)

	e2 := newTestEngine()
	runGlobal(t, e2, "ACGT", "ACGT", qualityBytes(40, 4))
	e2.AppendHardclip(2, 3)

	assert.Equal(t, e2.CIGAR().String(), e1.CIGAR().String())
}

func TestGlobalScoreNeverBetterThanSemiglobal(t *testing.T) {
	ref, query := "AAAACGTAA", "CGT"

	g := newTestEngine()
	require.NoError(t, g.PrepareDB([]byte(ref), 0, 0))
	require.NoError(t, g.PrepareQuery([]byte(query), qualityBytes(40, 3), 0, 0))
	globalScore, err := g.Align(false)
	require.NoError(t, err)

	s := newTestEngine()
	require.NoError(t, s.PrepareDB([]byte(ref), 0, 0))
	require.NoError(t, s.PrepareQuery([]byte(query), qualityBytes(40, 3), 0, 0))
	semiScore, err := s.Align(true)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, globalScore, semiScore)
}

func TestQualityModulationIncreasesMismatchCost(t *testing.T) {
	ref, query := "ACGT", "AGGT"

	low := newTestEngine()
	require.NoError(t, low.PrepareDB([]byte(ref), 0, 0))
	require.NoError(t, low.PrepareQuery([]byte(query), qualityBytes(2, 4), 0, 0))
	lowScore, err := low.Align(false)
	require.NoError(t, err)

	high := newTestEngine()
	require.NoError(t, high.PrepareDB([]byte(ref), 0, 0))
	require.NoError(t, high.PrepareQuery([]byte(query), qualityBytes(40, 4), 0, 0))
	highScore, err := high.Align(false)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, highScore, lowScore)
}

func TestAmbiguityReferenceWildcard(t *testing.T) {
	plain := newTestEngine()
	require.NoError(t, plain.PrepareDB([]byte("ACGT"), 0, 0))
	require.NoError(t, plain.PrepareQuery([]byte("AGGT"), qualityBytes(40, 4), 0, 0))
	plainScore, err := plain.Align(false)
	require.NoError(t, err)

	wildcard := newTestEngine()
	require.NoError(t, wildcard.PrepareDB([]byte("ANGT"), 0, 0))
	require.NoError(t, wildcard.PrepareQuery([]byte("AGGT"), qualityBytes(40, 4), 0, 0))
	wildcardScore, err := wildcard.Align(false)
	require.NoError(t, err)

	assert.LessOrEqual(t, wildcardScore, plainScore)
}

func TestAmbiguityQueryNIsNotWildcard(t *testing.T) {
	plain := newTestEngine()
	require.NoError(t, plain.PrepareDB([]byte("ACGT"), 0, 0))
	require.NoError(t, plain.PrepareQuery([]byte("AGGT"), qualityBytes(40, 4), 0, 0))
	plainScore, err := plain.Align(false)
	require.NoError(t, err)

	queryN := newTestEngine()
	require.NoError(t, queryN.PrepareDB([]byte("ACGT"), 0, 0))
	require.NoError(t, queryN.PrepareQuery([]byte("ANGT"), qualityBytes(40, 4), 0, 0))
	queryNScore, err := queryN.Align(false)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, queryNScore, plainScore)
}

func TestAlignRejectsEmptyQuery(t *testing.T) {
	e := newTestEngine()
	require.NoError(t, e.PrepareDB([]byte("ACGT"), 0, 0))
	require.NoError(t, e.PrepareQuery([]byte(""), []byte(""), 0, 0))

	_, err := e.Align(false)
	var invalid *InvalidStateError
	assert.ErrorAs(t, err, &invalid)
}

func TestPrepareRejectsOverlongClip(t *testing.T) {
	e := newTestEngine()
	err := e.PrepareDB([]byte("ACGT"), 3, 3)
	var invalid *InvalidStateError
	assert.ErrorAs(t, err, &invalid)
}

func TestBuildPenaltyTablesMonotonic(t *testing.T) {
	tables := BuildPenaltyTables(-10, 40, 60, 20)
	for q := 1; q < QualityRange; q++ {
		assert.GreaterOrEqual(t, tables.Mismatch[q], tables.Mismatch[q-1])
	}
}

func TestCigarElemPacking(t *testing.T) {
	e := NewCigarElem(12, OpDeletion)
	assert.Equal(t, 12, e.Len())
	assert.Equal(t, OpDeletion, e.Op())
	assert.Equal(t, "12D", e.String())
}

func TestBasicAlignPairRendersGapsSymmetrically(t *testing.T) {
	e := newTestEngine()
	runGlobal(t, e, "ACGTACGT", "ACGACGT", qualityBytes(40, 7))

	pair, err := e.BasicAlignPair()
	require.NoError(t, err)
	assert.Equal(t, len(pair.RefAligned), len(pair.QueryAligned))
	assert.True(t, strings.Contains(pair.QueryAligned, "-"))
}

func TestReusedEngineAcrossDifferentSizedReads(t *testing.T) {
	e := newTestEngine()
	runGlobal(t, e, "ACGT", "ACGT", qualityBytes(40, 4))
	first := e.CIGAR().String()

	runGlobal(t, e, "ACGTACGT", "ACGACGT", qualityBytes(40, 7))
	second := e.CIGAR().String()

	assert.Equal(t, "4=", first)
	assert.Equal(t, "3= 1D 4=", second)
}
