package stats

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// CoverageSet tracks which positions of a reference have been touched by at
// least one alignment. Positions are derived from an alignment's offset and
// the reference-consuming run lengths of its CIGAR, not from the read
// length, so insertions and soft clips contribute nothing to coverage.
type CoverageSet struct {
	refLen int
	mask   *bitset.BitSet
}

// NewCoverageSet allocates a coverage mask sized to a reference of refLen
// bases, all initially uncovered.
func NewCoverageSet(refLen int) *CoverageSet {
	return &CoverageSet{refLen: refLen, mask: bitset.New(uint(refLen))}
}

// RefSpan is the reference-consuming extent of one alignment: [Start, End).
type RefSpan struct {
	Start, End int
}

// AddAlignment marks every reference position spanned by one alignment as
// covered.
func (c *CoverageSet) AddAlignment(span RefSpan) {
	start, end := span.Start, span.End
	if start < 0 {
		start = 0
	}
	if end > c.refLen {
		end = c.refLen
	}
	for i := start; i < end; i++ {
		c.mask.Set(uint(i))
	}
}

// AddAlignments marks every reference position spanned by a batch of
// alignments.
func (c *CoverageSet) AddAlignments(spans []RefSpan) {
	for _, s := range spans {
		c.AddAlignment(s)
	}
}

// CoveredCount returns the number of reference positions touched by at
// least one alignment.
func (c *CoverageSet) CoveredCount() int {
	return int(c.mask.Count())
}

// CoverageRatio returns the fraction of the reference touched by at least
// one alignment, in [0, 1]. Zero-length references report zero.
func (c *CoverageSet) CoverageRatio() float64 {
	if c.refLen == 0 {
		return 0
	}
	return float64(c.CoveredCount()) / float64(c.refLen)
}

// IsCovered reports whether a single reference position has been touched.
func (c *CoverageSet) IsCovered(pos int) bool {
	if pos < 0 || pos >= c.refLen {
		return false
	}
	return c.mask.Test(uint(pos))
}

// Gaps returns the maximal runs of uncovered reference positions, in
// ascending order.
func (c *CoverageSet) Gaps() []RefSpan {
	var gaps []RefSpan
	inGap := false
	start := 0

	for i := 0; i < c.refLen; i++ {
		covered := c.mask.Test(uint(i))
		switch {
		case !covered && !inGap:
			inGap, start = true, i
		case covered && inGap:
			gaps = append(gaps, RefSpan{Start: start, End: i})
			inGap = false
		}
	}
	if inGap {
		gaps = append(gaps, RefSpan{Start: start, End: c.refLen})
	}
	return gaps
}

func (c *CoverageSet) String() string {
	return fmt.Sprintf("CoverageSet { covered: %d/%d (%.1f%%) }",
		c.CoveredCount(), c.refLen, c.CoverageRatio()*100)
}

// AlignmentOutcome is the minimal shape FromAlignments needs from one
// completed alignment: where it landed on the reference and how well it
// scored. Kept independent of batch.Result so stats never has to import
// the worker-pool package just to summarize its output.
type AlignmentOutcome struct {
	Offset          int
	ReferenceLength int
	Score           int32
}

// AlignmentSetStats bundles the population-level view of one batch run: how
// much of the reference was touched, how the scores were distributed, and
// (when quality pools are supplied) a summary of the input base qualities.
type AlignmentSetStats struct {
	Coverage  *CoverageSet
	Quality   *QualitySummary
	Count     int
	MeanScore float64
}

// FromAlignments reduces a batch of alignment outcomes and their source
// quality pools into an AlignmentSetStats: a CoverageSet built from each
// outcome's reference-consuming span, the mean optimal score, and (when
// qualityPools is non-empty) a QualitySummary pooled across all reads.
// Outcomes with a non-positive ReferenceLength contribute to the score
// average but not to coverage, since they never touched the reference.
func FromAlignments(refLen int, outcomes []AlignmentOutcome, qualityPools [][]byte) (*AlignmentSetStats, error) {
	if len(outcomes) == 0 {
		return nil, fmt.Errorf("alignment set stats: no outcomes to summarize")
	}

	coverage := NewCoverageSet(refLen)
	var scoreSum int64
	for _, o := range outcomes {
		scoreSum += int64(o.Score)
		if o.ReferenceLength > 0 {
			coverage.AddAlignment(RefSpan{Start: o.Offset, End: o.Offset + o.ReferenceLength})
		}
	}

	result := &AlignmentSetStats{
		Coverage:  coverage,
		Count:     len(outcomes),
		MeanScore: float64(scoreSum) / float64(len(outcomes)),
	}

	if len(qualityPools) > 0 {
		summary, err := SummarizeQuality(qualityPools)
		if err != nil {
			return nil, fmt.Errorf("alignment set stats: %w", err)
		}
		result.Quality = summary
	}

	return result, nil
}

func (s *AlignmentSetStats) String() string {
	qual := "none"
	if s.Quality != nil {
		qual = s.Quality.String()
	}
	return fmt.Sprintf("AlignmentSetStats { n: %d, mean_score: %.2f, coverage: %s, quality: %s }",
		s.Count, s.MeanScore, s.Coverage, qual)
}
