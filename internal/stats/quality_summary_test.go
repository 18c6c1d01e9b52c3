package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeQualityUniformScores(t *testing.T) {
	reads := [][]byte{
		{30, 30, 30},
		{30, 30, 30},
	}

	s, err := SummarizeQuality(reads)
	require.NoError(t, err)

	assert.Equal(t, 6, s.Count)
	assert.InDelta(t, 30.0, s.Mean, 0.0001)
	assert.InDelta(t, 0.0, s.StdDev, 0.0001)
	assert.InDelta(t, 30.0, s.Median, 0.0001)
}

func TestSummarizeQualityMixedScores(t *testing.T) {
	reads := [][]byte{
		{10, 20, 30, 40},
	}

	s, err := SummarizeQuality(reads)
	require.NoError(t, err)

	assert.Equal(t, 4, s.Count)
	assert.InDelta(t, 25.0, s.Mean, 0.0001)
	assert.True(t, s.StdDev > 0)
	assert.True(t, s.P25 <= s.Median)
	assert.True(t, s.Median <= s.P75)
}

func TestSummarizeQualityRejectsEmptyInput(t *testing.T) {
	_, err := SummarizeQuality(nil)
	require.Error(t, err)

	_, err = SummarizeQuality([][]byte{{}})
	require.Error(t, err)
}
