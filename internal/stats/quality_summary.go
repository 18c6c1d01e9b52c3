package stats

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// QualitySummary aggregates per-base Phred scores across a batch of reads
// (one byte per base holding the raw score, Phred+33 offset already
// removed).
type QualitySummary struct {
	Count  int
	Mean   float64
	StdDev float64
	P25    float64
	Median float64
	P75    float64
}

// SummarizeQuality flattens every read's quality scores into one population
// and computes its moments and quartiles with gonum/stat rather than
// hand-rolled accumulators.
func SummarizeQuality(reads [][]byte) (*QualitySummary, error) {
	var pooled []float64
	for _, q := range reads {
		for _, b := range q {
			pooled = append(pooled, float64(b))
		}
	}
	if len(pooled) == 0 {
		return nil, fmt.Errorf("quality summary: no scores to summarize")
	}

	mean, stddev := stat.MeanStdDev(pooled, nil)

	sorted := make([]float64, len(pooled))
	copy(sorted, pooled)
	sort.Float64s(sorted)

	return &QualitySummary{
		Count:  len(pooled),
		Mean:   mean,
		StdDev: stddev,
		P25:    stat.Quantile(0.25, stat.Empirical, sorted, nil),
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		P75:    stat.Quantile(0.75, stat.Empirical, sorted, nil),
	}, nil
}

func (s *QualitySummary) String() string {
	return fmt.Sprintf("QualitySummary { n: %d, mean: %.2f, stddev: %.2f, p25: %.1f, median: %.1f, p75: %.1f }",
		s.Count, s.Mean, s.StdDev, s.P25, s.Median, s.P75)
}
