// Package align454 implements a quality-aware pairwise aligner for short
// reads against a reference window, following the affine-gap Gotoh
// recurrence in its inverse-score (minimize-cost) form.
package align454

import "math"

// QualityRange is the number of distinct PHRED qualities the penalty
// tables are indexed by, covering the full Sanger range (0..93).
const QualityRange = 94

// floor is added to every table entry so that a quality-0 base never costs
// exactly zero to edit.
const floor = 10

// PenaltyTables holds the four quality-indexed cost vectors derived from
// the engine's four scalar penalties.
type PenaltyTables struct {
	Match         [QualityRange]int32
	Mismatch      [QualityRange]int32
	GapOpenExtend [QualityRange]int32
	GapExtend     [QualityRange]int32
}

// BuildPenaltyTables constructs the four quality-indexed cost tables from
// the four scalar base penalties. It is a pure function of its inputs:
// recompute it whenever the scalars change.
func BuildPenaltyTables(match, mismatch, gapOpenExtend, gapExtend int32) *PenaltyTables {
	qN := -10 * math.Log10(0.75)
	t := &PenaltyTables{}
	for q := 0; q < QualityRange; q++ {
		w := 1 - math.Pow(10, -(float64(q)+qN)/10)
		t.Match[q] = floor + int32(math.Round(w*float64(match)))
		t.Mismatch[q] = floor + int32(math.Round(w*float64(mismatch)))
		t.GapOpenExtend[q] = floor + int32(math.Round(w*float64(gapOpenExtend)))
		t.GapExtend[q] = floor + int32(math.Round(w*float64(gapExtend)))
	}
	return t
}
