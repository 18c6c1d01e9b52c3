package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/aria-lang/bioflow-go/pkg/bioflow"
	"github.com/google/uuid"
)

// QualityAlignRequest represents a quality-weighted alignment request.
type QualityAlignRequest struct {
	Reference  string `json:"reference"`
	Read       string `json:"read"`
	Quality    string `json:"quality"`
	Semiglobal bool   `json:"semiglobal"`
}

// QualityAlignResponse represents the response for a quality-weighted
// alignment.
type QualityAlignResponse struct {
	CIGAR           string `json:"cigar"`
	Score           int32  `json:"score"`
	Offset          int    `json:"offset"`
	ReferenceLength int    `json:"reference_length"`
	RefAligned      string `json:"ref_aligned"`
	QueryAligned    string `json:"query_aligned"`
}

func buildRead(bases, qualPhred33 string) (*bioflow.Read, error) {
	seq, err := bioflow.NewSequence(bases)
	if err != nil {
		return nil, err
	}
	qual, err := bioflow.ParseQualityPhred33(qualPhred33)
	if err != nil {
		return nil, err
	}
	if seq.Len() != qual.Len() {
		return nil, fmt.Errorf("sequence and quality must have the same length")
	}
	return &bioflow.Read{Sequence: seq, Quality: qual}, nil
}

// QualityAlignHandler handles quality-weighted affine-gap alignment
// requests against a single reference window.
func QualityAlignHandler(w http.ResponseWriter, r *http.Request) {
	var req QualityAlignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error": "invalid request body"}`, http.StatusBadRequest)
		return
	}

	ref, err := bioflow.NewSequence(req.Reference)
	if err != nil {
		http.Error(w, `{"error": "reference: `+err.Error()+`"}`, http.StatusBadRequest)
		return
	}

	read, err := buildRead(req.Read, req.Quality)
	if err != nil {
		http.Error(w, `{"error": "read: `+err.Error()+`"}`, http.StatusBadRequest)
		return
	}

	var result *bioflow.QualityAlignment
	if req.Semiglobal {
		result, err = bioflow.AlignReadToReferenceSemiglobal(ref, read)
	} else {
		result, err = bioflow.AlignReadToReference(ref, read)
	}
	if err != nil {
		http.Error(w, `{"error": "`+err.Error()+`"}`, http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(QualityAlignResponse{
		CIGAR:           result.CIGAR,
		Score:           result.Score,
		Offset:          result.Offset,
		ReferenceLength: result.ReferenceLength,
		RefAligned:      result.RefAligned,
		QueryAligned:    result.QueryAligned,
	})
}

// BatchReadInput is a single read within a batch alignment request.
type BatchReadInput struct {
	Sequence string `json:"sequence"`
	Quality  string `json:"quality"`
}

// BatchQualityAlignRequest represents a batch quality-weighted alignment
// request of many reads against one reference.
type BatchQualityAlignRequest struct {
	Reference  string           `json:"reference"`
	Reads      []BatchReadInput `json:"reads"`
	Semiglobal bool             `json:"semiglobal"`
}

// BatchQualityAlignResult is one read's outcome within a batch response.
type BatchQualityAlignResult struct {
	Index  int    `json:"index"`
	CIGAR  string `json:"cigar,omitempty"`
	Score  int32  `json:"score,omitempty"`
	Offset int    `json:"offset,omitempty"`
	Error  string `json:"error,omitempty"`
}

// BatchAlignmentSummary is a population-level view of a completed batch:
// how much of the reference the successful alignments covered, their mean
// score, and a pooled summary of the input base qualities. Omitted when
// every read in the batch failed to align.
type BatchAlignmentSummary struct {
	AlignedCount  int     `json:"aligned_count"`
	MeanScore     float64 `json:"mean_score"`
	CoveredBases  int     `json:"covered_bases"`
	CoverageRatio float64 `json:"coverage_ratio"`
	QualityMean   float64 `json:"quality_mean,omitempty"`
	QualityStdDev float64 `json:"quality_stddev,omitempty"`
	QualityMedian float64 `json:"quality_median,omitempty"`
}

// BatchQualityAlignResponse represents the response for a batch
// quality-weighted alignment request, tagged with a job ID so a client can
// correlate it against out-of-band logs.
type BatchQualityAlignResponse struct {
	JobID   string                    `json:"job_id"`
	Results []BatchQualityAlignResult `json:"results"`
	Summary *BatchAlignmentSummary    `json:"summary,omitempty"`
}

// BatchQualityAlignHandler handles quality-weighted alignment of many reads
// against one shared reference, processed concurrently.
func BatchQualityAlignHandler(w http.ResponseWriter, r *http.Request) {
	var req BatchQualityAlignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error": "invalid request body"}`, http.StatusBadRequest)
		return
	}

	ref, err := bioflow.NewSequence(req.Reference)
	if err != nil {
		http.Error(w, `{"error": "reference: `+err.Error()+`"}`, http.StatusBadRequest)
		return
	}

	reads := make([]*bioflow.Read, len(req.Reads))
	for i, in := range req.Reads {
		read, err := buildRead(in.Sequence, in.Quality)
		if err != nil {
			http.Error(w, `{"error": "read `+strconv.Itoa(i)+`: `+err.Error()+`"}`, http.StatusBadRequest)
			return
		}
		reads[i] = read
	}

	alignments, errs := bioflow.AlignReadsBatch(ref, reads, req.Semiglobal)

	results := make([]BatchQualityAlignResult, len(reads))
	for i := range reads {
		res := BatchQualityAlignResult{Index: i}
		if errs[i] != nil {
			res.Error = errs[i].Error()
		} else {
			res.CIGAR = alignments[i].CIGAR
			res.Score = alignments[i].Score
			res.Offset = alignments[i].Offset
		}
		results[i] = res
	}

	var summary *BatchAlignmentSummary
	if stat, err := bioflow.SummarizeBatch(ref, reads, alignments); err == nil {
		summary = &BatchAlignmentSummary{
			AlignedCount:  stat.Count,
			MeanScore:     stat.MeanScore,
			CoveredBases:  stat.Coverage.CoveredCount(),
			CoverageRatio: stat.Coverage.CoverageRatio(),
		}
		if stat.Quality != nil {
			summary.QualityMean = stat.Quality.Mean
			summary.QualityStdDev = stat.Quality.StdDev
			summary.QualityMedian = stat.Quality.Median
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(BatchQualityAlignResponse{
		JobID:   uuid.NewString(),
		Results: results,
		Summary: summary,
	})
}
