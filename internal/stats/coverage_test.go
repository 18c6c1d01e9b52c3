package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoverageSetSingleAlignment(t *testing.T) {
	c := NewCoverageSet(10)
	c.AddAlignment(RefSpan{Start: 2, End: 5})

	assert.Equal(t, 3, c.CoveredCount())
	assert.InDelta(t, 0.3, c.CoverageRatio(), 0.0001)
	assert.True(t, c.IsCovered(2))
	assert.True(t, c.IsCovered(4))
	assert.False(t, c.IsCovered(5))
	assert.False(t, c.IsCovered(0))
}

func TestCoverageSetOverlappingAlignments(t *testing.T) {
	c := NewCoverageSet(10)
	c.AddAlignments([]RefSpan{
		{Start: 0, End: 4},
		{Start: 2, End: 6},
	})

	assert.Equal(t, 6, c.CoveredCount())
}

func TestCoverageSetClampsOutOfRangeSpans(t *testing.T) {
	c := NewCoverageSet(5)
	c.AddAlignment(RefSpan{Start: -3, End: 20})

	assert.Equal(t, 5, c.CoveredCount())
	assert.Equal(t, 1.0, c.CoverageRatio())
}

func TestCoverageSetGaps(t *testing.T) {
	c := NewCoverageSet(10)
	c.AddAlignment(RefSpan{Start: 2, End: 5})
	c.AddAlignment(RefSpan{Start: 7, End: 9})

	gaps := c.Gaps()
	assert.Equal(t, []RefSpan{{Start: 0, End: 2}, {Start: 5, End: 7}, {Start: 9, End: 10}}, gaps)
}

func TestCoverageSetEmptyReferenceHasZeroRatio(t *testing.T) {
	c := NewCoverageSet(0)
	assert.Equal(t, 0.0, c.CoverageRatio())
	assert.Empty(t, c.Gaps())
}
