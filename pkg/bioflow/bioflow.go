// Package bioflow provides a high-level API for genomic sequence analysis.
//
// This package exposes the core BioFlow functionality through a simple,
// easy-to-use API for common bioinformatics operations.
//
// Example usage:
//
//	seq, err := bioflow.NewSequence("ATGCATGC")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	gc := seq.GCContent()
//	fmt.Printf("GC Content: %.2f%%\n", gc*100)
//
//	read, err := bioflow.NewRead("ATGCATGC", []int{30, 30, 35, 35, 40, 40, 38, 38})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	aln, err := bioflow.AlignReadToReference(ref, read)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(aln.CIGAR)
package bioflow

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aria-lang/bioflow-go/internal/alignment/align454"
	"github.com/aria-lang/bioflow-go/internal/batch"
	"github.com/aria-lang/bioflow-go/internal/kmer"
	"github.com/aria-lang/bioflow-go/internal/quality"
	"github.com/aria-lang/bioflow-go/internal/sequence"
	"github.com/aria-lang/bioflow-go/internal/stats"
)

// Re-export types for convenience
type (
	Sequence      = sequence.Sequence
	SequenceType  = sequence.SequenceType
	KMerCounter   = kmer.Counter
	KMerCount     = kmer.KMerCount
	QualityScores = quality.Scores
	QualityStats  = quality.Stats
	Filter        = quality.Filter
)

// Constants
const (
	DNA     = sequence.DNA
	RNA     = sequence.RNA
	Unknown = sequence.Unknown
)

// NewSequence creates a new DNA sequence.
func NewSequence(bases string) (*Sequence, error) {
	return sequence.New(bases)
}

// NewSequenceWithID creates a new sequence with an identifier.
func NewSequenceWithID(bases, id string) (*Sequence, error) {
	return sequence.WithID(bases, id)
}

// NewRNASequence creates a new RNA sequence.
func NewRNASequence(bases string) (*Sequence, error) {
	return sequence.WithMetadata(bases, "", "", sequence.RNA)
}

// Default quality-aware alignment penalties, the scalars used throughout
// the worked examples: a small reward for matches and increasing costs for
// mismatches, gap opening, and gap extension.
const (
	DefaultMatchPenalty         int32 = -10
	DefaultMismatchPenalty      int32 = 40
	DefaultGapOpenExtendPenalty int32 = 60
	DefaultGapExtendPenalty     int32 = 20
)

// QualityAlignment is the result of aligning one read against a reference
// window with align454's quality-weighted affine-gap engine.
type QualityAlignment struct {
	CIGAR           string
	Score           int32
	Offset          int
	ReferenceLength int
	RefAligned      string
	QueryAligned    string
}

func newQualityAlignment(e *align454.Engine) (*QualityAlignment, error) {
	pair, err := e.BasicAlignPair()
	if err != nil {
		return nil, err
	}
	return &QualityAlignment{
		CIGAR:           e.ShowCigar(),
		Score:           e.OptimalScore(),
		Offset:          e.AlignmentStart(0),
		ReferenceLength: e.CIGAR().ReferenceLength(),
		RefAligned:      pair.RefAligned,
		QueryAligned:    pair.QueryAligned,
	}, nil
}

// AlignReadToReference performs a quality-weighted global affine-gap
// alignment of read against ref using the default penalty scalars.
func AlignReadToReference(ref *Sequence, read *Read) (*QualityAlignment, error) {
	return alignReadToReference(ref, read, false)
}

// AlignReadToReferenceSemiglobal performs the same alignment but with free
// end-gaps on the reference axis, for a read expected to sit entirely
// within a longer reference window.
func AlignReadToReferenceSemiglobal(ref *Sequence, read *Read) (*QualityAlignment, error) {
	return alignReadToReference(ref, read, true)
}

// seedKmerLen and seedMinMargin drive the k-mer seed-and-extend windowing
// in seedWindow: long enough to (almost always) be unique in a reference of
// realistic size, short enough to survive a couple of sequencing errors
// near the read's start.
const (
	seedKmerLen   = 12
	seedMinMargin = 20
)

// seedWindow looks for read's leading k-mer in ref and, if it finds exactly
// one hit, narrows align454's reference window to a margin around it. Only
// engages when ref is substantially longer than read plus slack on both
// sides — short worked-example references never trigger it, so a caller
// relying on exact documented output sees no behavior change. A missing or
// ambiguous seed falls back to the full reference rather than guessing.
func seedWindow(ref *Sequence, read *Read) (headClip, tailClip int, windowed bool) {
	margin := read.Sequence.Len() / 4
	if margin < seedMinMargin {
		margin = seedMinMargin
	}
	if ref.Len() <= read.Sequence.Len()+2*margin {
		return 0, 0, false
	}

	offset, ok := kmer.SeedOffset(ref, read.Sequence, seedKmerLen)
	if !ok {
		return 0, 0, false
	}

	head := offset - margin
	if head < 0 {
		head = 0
	}
	tail := ref.Len() - (offset + read.Sequence.Len() + margin)
	if tail < 0 {
		tail = 0
	}
	return head, tail, true
}

func alignReadToReference(ref *Sequence, read *Read, semiglobal bool) (*QualityAlignment, error) {
	e := align454.NewEngine(DefaultMatchPenalty, DefaultMismatchPenalty, DefaultGapOpenExtendPenalty, DefaultGapExtendPenalty)

	dbHeadClip, dbTailClip := 0, 0
	if semiglobal {
		if h, t, ok := seedWindow(ref, read); ok && sequence.ValidateWindow(ref.Len(), h, t) == nil {
			dbHeadClip, dbTailClip = h, t
		}
	}

	qual := []byte(read.Quality.ToPhred33())
	if err := e.Prepare([]byte(ref.Bases), []byte(read.Sequence.Bases), qual, dbHeadClip, dbTailClip, 0, 0); err != nil {
		return nil, err
	}
	if _, err := e.Align(semiglobal); err != nil {
		return nil, err
	}
	if err := e.Trace(); err != nil {
		return nil, err
	}
	e.SoftclipTrace()
	e.CompactTrace()

	return newQualityAlignment(e)
}

// AlignReadsBatch aligns many reads against one shared reference
// concurrently, returning one QualityAlignment (or error) per read in
// input order.
func AlignReadsBatch(ref *Sequence, reads []*Read, semiglobal bool) ([]*QualityAlignment, []error) {
	batchReads := make([]batch.Read, len(reads))
	for i, r := range reads {
		batchReads[i] = batch.Read{
			Sequence: []byte(r.Sequence.Bases),
			Quality:  []byte(r.Quality.ToPhred33()),
		}
	}

	results := batch.AlignReadsConcurrently([]byte(ref.Bases), batchReads, batch.Penalties{
		Match:         DefaultMatchPenalty,
		Mismatch:      DefaultMismatchPenalty,
		GapOpenExtend: DefaultGapOpenExtendPenalty,
		GapExtend:     DefaultGapExtendPenalty,
	}, semiglobal)

	alignments := make([]*QualityAlignment, len(reads))
	errs := make([]error, len(reads))
	for _, r := range results {
		if r.Err != nil {
			errs[r.Index] = r.Err
			continue
		}
		alignments[r.Index] = &QualityAlignment{
			CIGAR:           r.CIGAR,
			Score:           r.Score,
			Offset:          r.Offset,
			ReferenceLength: r.ReferenceLength,
		}
	}
	return alignments, errs
}

// SummarizeBatch reduces the successful alignments from an AlignReadsBatch
// call into population-level statistics: reference coverage and a quality
// summary pooled across the reads that were actually aligned. Reads whose
// alignment failed (a nil entry in alignments) are skipped.
func SummarizeBatch(ref *Sequence, reads []*Read, alignments []*QualityAlignment) (*stats.AlignmentSetStats, error) {
	var outcomes []stats.AlignmentOutcome
	var qualityPools [][]byte

	for i, a := range alignments {
		if a == nil {
			continue
		}
		outcomes = append(outcomes, stats.AlignmentOutcome{
			Offset:          a.Offset,
			ReferenceLength: a.ReferenceLength,
			Score:           a.Score,
		})
		raw := make([]byte, len(reads[i].Quality.Values))
		for j, v := range reads[i].Quality.Values {
			raw[j] = byte(v)
		}
		qualityPools = append(qualityPools, raw)
	}

	return stats.FromAlignments(ref.Len(), outcomes, qualityPools)
}

// SummarizeQualityPool pools a set of Phred+33-encoded quality strings into
// a single population-level QualitySummary, independent of any alignment.
func SummarizeQualityPool(encoded []string) (*stats.QualitySummary, error) {
	pools := make([][]byte, len(encoded))
	for i, e := range encoded {
		scores, err := quality.FromPhred33(e)
		if err != nil {
			return nil, err
		}
		raw := make([]byte, len(scores.Values))
		for j, v := range scores.Values {
			raw[j] = byte(v)
		}
		pools[i] = raw
	}
	return stats.SummarizeQuality(pools)
}

// FilterAndAlignBatch trims and quality-filters reads before handing the
// survivors to AlignReadsBatch, so a read whose average quality or ambiguous
// base count would already fail filter never spends a DP pass in
// align454. Returns the filter's own accounting alongside the per-read
// alignment results, which are reported against the filtered (trimmed)
// read positions, not the caller's original indices.
func FilterAndAlignBatch(ref *Sequence, reads []*Read, filter *Filter, semiglobal bool) ([]*QualityAlignment, []error, *quality.BatchFilterResult) {
	if filter == nil {
		filter = quality.DefaultFilter()
	}

	sequences := make([]*Sequence, len(reads))
	qualities := make([]*QualityScores, len(reads))
	for i, r := range reads {
		sequences[i] = r.Sequence
		qualities[i] = r.Quality
	}

	filterResult, err := filter.BatchFilter(sequences, qualities)
	if err != nil {
		return nil, []error{err}, nil
	}

	survivors := make([]*Read, len(filterResult.PassedSequences))
	for i := range survivors {
		survivors[i] = &Read{Sequence: filterResult.PassedSequences[i], Quality: filterResult.PassedQualities[i]}
	}

	alignments, errs := AlignReadsBatch(ref, survivors, semiglobal)
	return alignments, errs, filterResult
}

// CountKMers counts k-mers in a sequence.
func CountKMers(seq *Sequence, k int) (*KMerCounter, error) {
	return kmer.CountKMers(seq, k)
}

// MostFrequentKMers returns the n most frequent k-mers.
func MostFrequentKMers(seq *Sequence, k, n int) ([]KMerCount, error) {
	return kmer.MostFrequentKMers(seq, k, n)
}

// KMerDistance calculates the Jaccard distance between two sequences.
func KMerDistance(seq1, seq2 *Sequence, k int) (float64, error) {
	return kmer.JaccardDistance(seq1, seq2, k)
}

// SharedKMers finds k-mers shared between two sequences.
func SharedKMers(seq1, seq2 *Sequence, k int) ([]string, error) {
	return kmer.SharedKMers(seq1, seq2, k)
}

// SeedOffset looks up read's leading k bases in ref, the same seed lookup
// AlignReadToReferenceSemiglobal uses to narrow its alignment window.
func SeedOffset(ref, read *Sequence, k int) (int, bool) {
	return kmer.SeedOffset(ref, read, k)
}

// ValidateWindow checks that a head/tail clip pair describes a well-formed
// sub-window of a reference of length refLen.
func ValidateWindow(refLen, headClip, tailClip int) error {
	return sequence.ValidateWindow(refLen, headClip, tailClip)
}

// NewQualityScores creates quality scores from an array.
func NewQualityScores(scores []int) (*QualityScores, error) {
	return quality.New(scores)
}

// ParseQualityPhred33 parses Phred+33 encoded quality string.
func ParseQualityPhred33(encoded string) (*QualityScores, error) {
	return quality.FromPhred33(encoded)
}

// ParseQualityPhred64 parses Phred+64 encoded quality string.
func ParseQualityPhred64(encoded string) (*QualityScores, error) {
	return quality.FromPhred64(encoded)
}

// DefaultFilter creates a quality filter with default settings.
func DefaultFilter() *Filter {
	return quality.DefaultFilter()
}

// StrictFilter creates a quality filter with strict settings.
func StrictFilter() *Filter {
	return quality.StrictFilter()
}

// SequenceStats calculates statistics for a sequence.
func SequenceStats(seq *Sequence) *stats.SequenceStats {
	return stats.FromSequence(seq)
}

// SequenceSetStats calculates statistics for multiple sequences.
func SequenceSetStats(sequences []*Sequence) (*stats.SequenceSetStats, error) {
	return stats.FromSequences(sequences)
}

// ReadSetStats calculates aggregate statistics for a collection of reads:
// length and quality distributions across the whole set.
func ReadSetStats(reads []*Read) (*stats.ReadSetStats, error) {
	sequences := make([]*Sequence, len(reads))
	qualities := make([]*QualityScores, len(reads))
	for i, r := range reads {
		sequences[i] = r.Sequence
		qualities[i] = r.Quality
	}
	return stats.FromReads(sequences, qualities)
}

// ReadFASTA reads sequences from a FASTA file.
func ReadFASTA(filename string) ([]*Sequence, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	return ParseFASTA(file)
}

// ParseFASTA parses FASTA format from a reader.
func ParseFASTA(r io.Reader) ([]*Sequence, error) {
	sequences := make([]*Sequence, 0)
	scanner := bufio.NewScanner(r)

	var currentID, currentDesc string
	var currentBases strings.Builder

	flushSequence := func() error {
		if currentBases.Len() > 0 {
			seq, err := sequence.WithMetadata(
				currentBases.String(),
				currentID,
				currentDesc,
				sequence.DNA,
			)
			if err != nil {
				return err
			}
			sequences = append(sequences, seq)
			currentBases.Reset()
		}
		return nil
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if len(line) == 0 {
			continue
		}

		if line[0] == '>' {
			// Flush previous sequence
			if err := flushSequence(); err != nil {
				return nil, err
			}

			// Parse header
			header := line[1:]
			parts := strings.SplitN(header, " ", 2)
			currentID = parts[0]
			if len(parts) > 1 {
				currentDesc = parts[1]
			} else {
				currentDesc = ""
			}
		} else {
			currentBases.WriteString(line)
		}
	}

	// Flush last sequence
	if err := flushSequence(); err != nil {
		return nil, err
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	return sequences, nil
}

// WriteFASTA writes sequences to a FASTA file.
func WriteFASTA(filename string, sequences []*Sequence) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	for _, seq := range sequences {
		_, err := file.WriteString(seq.ToFASTA())
		if err != nil {
			return fmt.Errorf("writing sequence: %w", err)
		}
	}

	return nil
}

// Read represents a sequencing read with sequence and quality.
type Read struct {
	Sequence *Sequence
	Quality  *QualityScores
}

// NewRead creates a new read from sequence and quality.
func NewRead(bases string, qualityScores []int) (*Read, error) {
	seq, err := sequence.New(bases)
	if err != nil {
		return nil, err
	}

	qual, err := quality.New(qualityScores)
	if err != nil {
		return nil, err
	}

	if seq.Len() != qual.Len() {
		return nil, fmt.Errorf("sequence and quality must have same length")
	}

	return &Read{
		Sequence: seq,
		Quality:  qual,
	}, nil
}

// ParseFASTQ parses FASTQ format from a reader.
func ParseFASTQ(r io.Reader) ([]*Read, error) {
	reads := make([]*Read, 0)
	scanner := bufio.NewScanner(r)

	lineNum := 0
	var id, bases, qualStr string

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		lineNum++

		switch (lineNum - 1) % 4 {
		case 0: // Header
			if len(line) == 0 || line[0] != '@' {
				return nil, fmt.Errorf("line %d: expected header starting with @", lineNum)
			}
			id = line[1:]
		case 1: // Sequence
			bases = line
		case 2: // Quality header
			if len(line) == 0 || line[0] != '+' {
				return nil, fmt.Errorf("line %d: expected '+' line", lineNum)
			}
		case 3: // Quality
			qualStr = line

			// Create read
			seq, err := sequence.WithID(bases, id)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNum, err)
			}

			qual, err := quality.FromPhred33(qualStr)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNum, err)
			}

			reads = append(reads, &Read{
				Sequence: seq,
				Quality:  qual,
			})
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	return reads, nil
}

// ReadFASTQ reads reads from a FASTQ file.
func ReadFASTQ(filename string) ([]*Read, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	return ParseFASTQ(file)
}

// Pipeline represents a processing pipeline for reads.
type Pipeline struct {
	filter *Filter
}

// NewPipeline creates a new processing pipeline.
func NewPipeline(filter *Filter) *Pipeline {
	if filter == nil {
		filter = quality.DefaultFilter()
	}
	return &Pipeline{filter: filter}
}

// ProcessReads processes reads through the pipeline.
func (p *Pipeline) ProcessReads(reads []*Read) (*quality.BatchFilterResult, error) {
	sequences := make([]*Sequence, len(reads))
	qualities := make([]*QualityScores, len(reads))

	for i, read := range reads {
		sequences[i] = read.Sequence
		qualities[i] = read.Quality
	}

	return p.filter.BatchFilter(sequences, qualities)
}

// Version returns the BioFlow version.
func Version() string {
	return "1.0.0"
}

// Info returns information about BioFlow.
func Info() string {
	return fmt.Sprintf(`BioFlow v%s - Genomic Sequence Analysis Library

A production-quality Go implementation of the BioFlow genomic pipeline.

Features:
  - DNA/RNA sequence handling with validation
  - GC/AT content calculation
  - Sequence complement and reverse complement
  - K-mer counting and analysis
  - Phred quality score handling
  - Quality-based read filtering
  - Quality-weighted affine-gap alignment with CIGAR output
  - FASTA/FASTQ file parsing

For more information, see: https://github.com/aria-lang/bioflow-go
`, Version())
}
