// Command bioflow provides a CLI for genomic sequence analysis.
//
// Usage:
//
//	bioflow [command] [options]
//
// Commands:
//
//	info        Show sequence information
//	gc          Calculate GC content
//	kmer        Count k-mers
//	qalign      Quality-weighted affine-gap alignment of a read against a reference
//	qalignbatch Filter and align a FASTQ file's reads against a reference
//	stats       Calculate sequence statistics
//	filter      Filter reads by quality
//	version     Show version information
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/aria-lang/bioflow-go/pkg/bioflow"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "info":
		infoCmd(os.Args[2:])
	case "gc":
		gcCmd(os.Args[2:])
	case "kmer":
		kmerCmd(os.Args[2:])
	case "qalign":
		qalignCmd(os.Args[2:])
	case "qalignbatch":
		qalignBatchCmd(os.Args[2:])
	case "stats":
		statsCmd(os.Args[2:])
	case "filter":
		filterCmd(os.Args[2:])
	case "version":
		fmt.Println(bioflow.Info())
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`BioFlow - Genomic Sequence Analysis Tool

Usage:
  bioflow <command> [options]

Commands:
  info         Show sequence information
  gc           Calculate GC content
  kmer         Count k-mers
  qalign       Quality-weighted affine-gap alignment of a read against a reference
  qalignbatch  Filter and align a FASTQ file's reads against a reference
  stats        Calculate sequence statistics
  filter       Filter reads by quality
  version      Show version information
  help         Show this help message

Use "bioflow <command> -h" for more information about a command.`)
}

func infoCmd(args []string) {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	file := fs.String("file", "", "FASTA file to analyze")
	seq := fs.String("seq", "", "Sequence string to analyze")
	fs.Parse(args)

	if *file == "" && *seq == "" {
		fmt.Fprintln(os.Stderr, "Error: Either -file or -seq is required")
		fs.Usage()
		os.Exit(1)
	}

	var sequences []*bioflow.Sequence
	var err error

	if *file != "" {
		sequences, err = bioflow.ReadFASTA(*file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
			os.Exit(1)
		}
	} else {
		s, err := bioflow.NewSequence(*seq)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating sequence: %v\n", err)
			os.Exit(1)
		}
		sequences = []*bioflow.Sequence{s}
	}

	for i, s := range sequences {
		stats := bioflow.SequenceStats(s)
		fmt.Printf("Sequence %d:\n", i+1)
		if s.ID != "" {
			fmt.Printf("  ID: %s\n", s.ID)
		}
		fmt.Printf("  Length: %d bp\n", stats.Length)
		fmt.Printf("  GC Content: %.2f%%\n", stats.GCContent*100)
		fmt.Printf("  AT Content: %.2f%%\n", stats.ATContent*100)
		fmt.Printf("  Base Counts: A=%d, C=%d, G=%d, T=%d, N=%d\n",
			stats.ACount, stats.CCount, stats.GCount, stats.TCount, stats.NCount)
		fmt.Println()
	}
}

func gcCmd(args []string) {
	fs := flag.NewFlagSet("gc", flag.ExitOnError)
	file := fs.String("file", "", "FASTA file to analyze")
	seq := fs.String("seq", "", "Sequence string to analyze")
	fs.Parse(args)

	if *file == "" && *seq == "" {
		fmt.Fprintln(os.Stderr, "Error: Either -file or -seq is required")
		fs.Usage()
		os.Exit(1)
	}

	var sequences []*bioflow.Sequence
	var err error

	if *file != "" {
		sequences, err = bioflow.ReadFASTA(*file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
			os.Exit(1)
		}
	} else {
		s, err := bioflow.NewSequence(*seq)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating sequence: %v\n", err)
			os.Exit(1)
		}
		sequences = []*bioflow.Sequence{s}
	}

	for _, s := range sequences {
		id := s.ID
		if id == "" {
			id = "sequence"
		}
		fmt.Printf("%s: %.4f (%.2f%%)\n", id, s.GCContent(), s.GCContent()*100)
	}
}

func kmerCmd(args []string) {
	fs := flag.NewFlagSet("kmer", flag.ExitOnError)
	file := fs.String("file", "", "FASTA file to analyze")
	seq := fs.String("seq", "", "Sequence string to analyze")
	k := fs.Int("k", 21, "K-mer size")
	top := fs.Int("top", 10, "Number of top k-mers to show")
	fs.Parse(args)

	if *file == "" && *seq == "" {
		fmt.Fprintln(os.Stderr, "Error: Either -file or -seq is required")
		fs.Usage()
		os.Exit(1)
	}

	var s *bioflow.Sequence
	var err error

	if *file != "" {
		sequences, err := bioflow.ReadFASTA(*file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
			os.Exit(1)
		}
		if len(sequences) == 0 {
			fmt.Fprintln(os.Stderr, "No sequences found in file")
			os.Exit(1)
		}
		s = sequences[0]
	} else {
		s, err = bioflow.NewSequence(*seq)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating sequence: %v\n", err)
			os.Exit(1)
		}
	}

	counter, err := bioflow.CountKMers(s, *k)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error counting k-mers: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("K-mer Analysis (k=%d)\n", *k)
	fmt.Printf("Unique k-mers: %d\n", counter.UniqueCount())
	fmt.Printf("Total k-mers: %d\n", counter.Total)
	fmt.Println()

	topKMers, err := counter.MostFrequent(*top)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting top k-mers: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Top %d k-mers:\n", len(topKMers))
	for i, kc := range topKMers {
		fmt.Printf("%2d. %s: %d\n", i+1, kc.KMer, kc.Count)
	}
}

func qalignCmd(args []string) {
	fs := flag.NewFlagSet("qalign", flag.ExitOnError)
	ref := fs.String("ref", "", "Reference sequence")
	read := fs.String("read", "", "Read sequence")
	qual := fs.String("qual", "", "Phred+33 quality string, same length as -read")
	semiglobal := fs.Bool("semiglobal", false, "Free end-gaps on the reference axis")
	fs.Parse(args)

	if *ref == "" || *read == "" || *qual == "" {
		fmt.Fprintln(os.Stderr, "Error: -ref, -read, and -qual are all required")
		fs.Usage()
		os.Exit(1)
	}

	refSeq, err := bioflow.NewSequence(*ref)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating reference: %v\n", err)
		os.Exit(1)
	}

	readSeq, err := bioflow.NewSequence(*read)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating read: %v\n", err)
		os.Exit(1)
	}

	qualScores, err := bioflow.ParseQualityPhred33(*qual)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing quality: %v\n", err)
		os.Exit(1)
	}

	if readSeq.Len() != qualScores.Len() {
		fmt.Fprintln(os.Stderr, "Error: -read and -qual must have the same length")
		os.Exit(1)
	}

	r := &bioflow.Read{Sequence: readSeq, Quality: qualScores}

	var result *bioflow.QualityAlignment
	if *semiglobal {
		result, err = bioflow.AlignReadToReferenceSemiglobal(refSeq, r)
	} else {
		result, err = bioflow.AlignReadToReference(refSeq, r)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error aligning: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("CIGAR:  %s\n", result.CIGAR)
	fmt.Printf("Score:  %d\n", result.Score)
	fmt.Printf("Offset: %d\n", result.Offset)
	fmt.Printf("RefLen: %d\n", result.ReferenceLength)
	fmt.Printf("ref:   %s\n", result.RefAligned)
	fmt.Printf("query: %s\n", result.QueryAligned)
}

func qalignBatchCmd(args []string) {
	fs := flag.NewFlagSet("qalignbatch", flag.ExitOnError)
	ref := fs.String("ref", "", "Reference sequence")
	file := fs.String("file", "", "FASTQ file of reads to filter and align")
	semiglobal := fs.Bool("semiglobal", true, "Free end-gaps on the reference axis")
	strict := fs.Bool("strict", false, "Use strict quality filtering")
	fs.Parse(args)

	if *ref == "" || *file == "" {
		fmt.Fprintln(os.Stderr, "Error: -ref and -file are both required")
		fs.Usage()
		os.Exit(1)
	}

	refSeq, err := bioflow.NewSequence(*ref)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating reference: %v\n", err)
		os.Exit(1)
	}

	reads, err := bioflow.ReadFASTQ(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
		os.Exit(1)
	}

	var filter *bioflow.Filter
	if *strict {
		filter = bioflow.StrictFilter()
	} else {
		filter = bioflow.DefaultFilter()
	}

	alignments, errs, filterResult := bioflow.FilterAndAlignBatch(refSeq, reads, filter, *semiglobal)
	if filterResult == nil {
		fmt.Fprintf(os.Stderr, "Error filtering reads: %v\n", errs[0])
		os.Exit(1)
	}

	fmt.Printf("Filtered %d/%d reads (%.1f%% pass rate)\n",
		filterResult.PassedCount, filterResult.TotalProcessed, filterResult.PassRate()*100)
	for i, a := range alignments {
		if errs[i] != nil {
			fmt.Printf("%2d. error: %v\n", i, errs[i])
			continue
		}
		fmt.Printf("%2d. CIGAR=%s score=%d offset=%d\n", i, a.CIGAR, a.Score, a.Offset)
	}

	if readStats, err := bioflow.ReadSetStats(reads); err == nil {
		fmt.Println()
		fmt.Printf("Read set: n=%d mean_len=%.1f mean_quality=%.1f median_quality=%.1f high_quality_ratio=%.1f%%\n",
			readStats.Count, readStats.MeanLength, readStats.MeanQuality, readStats.MedianQuality, readStats.HighQualityRatio()*100)
	}
}

func statsCmd(args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	file := fs.String("file", "", "FASTA file to analyze")
	fs.Parse(args)

	if *file == "" {
		fmt.Fprintln(os.Stderr, "Error: -file is required")
		fs.Usage()
		os.Exit(1)
	}

	sequences, err := bioflow.ReadFASTA(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
		os.Exit(1)
	}

	if len(sequences) == 0 {
		fmt.Fprintln(os.Stderr, "No sequences found in file")
		os.Exit(1)
	}

	stats, err := bioflow.SequenceSetStats(sequences)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error calculating statistics: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Sequence Set Statistics")
	fmt.Println(strings.Repeat("-", 40))
	fmt.Printf("Number of sequences: %d\n", stats.Count)
	fmt.Printf("Total bases: %d\n", stats.TotalBases)
	fmt.Printf("Length range: %d - %d bp\n", stats.MinLength, stats.MaxLength)
	fmt.Printf("Mean length: %.1f bp\n", stats.MeanLength)
	fmt.Printf("Median length: %d bp\n", stats.MedianLength)
	fmt.Printf("N50: %d bp\n", stats.N50)
	fmt.Printf("Mean GC content: %.2f%%\n", stats.MeanGCContent*100)
	fmt.Printf("Total ambiguous bases: %d\n", stats.TotalAmbiguous)
}

func filterCmd(args []string) {
	fs := flag.NewFlagSet("filter", flag.ExitOnError)
	file := fs.String("file", "", "FASTQ file to filter")
	minQuality := fs.Int("min-quality", 20, "Minimum average quality")
	minLength := fs.Int("min-length", 50, "Minimum sequence length")
	strict := fs.Bool("strict", false, "Use strict filtering")
	fs.Parse(args)

	if *file == "" {
		fmt.Fprintln(os.Stderr, "Error: -file is required")
		fs.Usage()
		os.Exit(1)
	}

	reads, err := bioflow.ReadFASTQ(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
		os.Exit(1)
	}

	var filter *bioflow.Filter
	if *strict {
		filter = bioflow.StrictFilter()
	} else {
		filter = bioflow.DefaultFilter()
		filter.MinQuality = *minQuality
		filter.MinLength = *minLength
	}

	pipeline := bioflow.NewPipeline(filter)
	result, err := pipeline.ProcessReads(reads)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error filtering reads: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Filter Results")
	fmt.Println(strings.Repeat("-", 40))
	fmt.Printf("Total reads: %d\n", result.TotalProcessed)
	fmt.Printf("Passed: %d (%.1f%%)\n", result.PassedCount, result.PassRate()*100)
	fmt.Printf("Failed: %d (%.1f%%)\n", result.FailedCount, (1-result.PassRate())*100)
}
