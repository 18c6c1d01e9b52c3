package align454

import "bytes"

// CIGAR returns the current CIGAR slice, valid after Trace (and any C7
// post-processing calls) have run.
func (e *Engine) CIGAR() Cigar {
	return Cigar(e.cigarBuf[e.cigarBegin:e.cigarEnd])
}

// ShowCigar renders the current CIGAR in the dense SAM convention
// ("4=1X2="  ->  "4=1X2=" with no separators).
func (e *Engine) ShowCigar() string {
	return e.CIGAR().Compact()
}

// Offset returns the column in subdb where the alignment begins, as
// recorded by the most recent Trace call.
func (e *Engine) Offset() int { return e.offset }

// OptimalScore returns the minimum score found by the most recent Align
// call.
func (e *Engine) OptimalScore() int32 { return e.optScore }

// OptimalScoreColumn returns the column in the last DP row that produced
// OptimalScore.
func (e *Engine) OptimalScoreColumn() int { return e.optScoreCol }

// AlignmentStart computes the absolute reference start for a caller's
// larger coordinate system, given the absolute start of db itself.
func (e *Engine) AlignmentStart(base int) int {
	if base < 0 {
		base = 0
	}
	return base + e.offset + e.dbHeadClip
}

// BasicAlignPair materializes the two gapped strings implied by the
// current CIGAR: the reference and query sequences with '-' inserted at
// gap positions, aligned base-for-base. Soft and hard clips are excluded
// from the rendered pair, matching the portion of the read the engine
// actually aligned. Must be called after Trace.
type BasicAlignPair struct {
	RefAligned, QueryAligned string
	RefStart, RefEnd         int
	QueryStart, QueryEnd     int
	Score                    int32
	Length                   int
}

func (e *Engine) BasicAlignPair() (*BasicAlignPair, error) {
	elems := e.cigarBuf[e.cigarBegin:e.cigarEnd]
	if len(elems) == 0 {
		return nil, &InvalidStateError{Op: "BasicAlignPair", Reason: "no CIGAR available; call Trace first"}
	}

	var refBuf, queryBuf []byte
	refPos, queryPos := e.offset, 0
	refStart, queryStart := -1, -1

	for _, el := range elems {
		op, n := el.Op(), el.Len()
		switch op {
		case OpSeqMatch, OpSeqMismatch, OpMatch:
			if refStart < 0 {
				refStart, queryStart = refPos, queryPos
			}
			refBuf = append(refBuf, e.subdb[refPos:refPos+n]...)
			queryBuf = append(queryBuf, e.subquery[queryPos:queryPos+n]...)
			refPos += n
			queryPos += n
		case OpInsertion:
			if refStart < 0 {
				refStart, queryStart = refPos, queryPos
			}
			refBuf = append(refBuf, bytes.Repeat([]byte{'-'}, n)...)
			queryBuf = append(queryBuf, e.subquery[queryPos:queryPos+n]...)
			queryPos += n
		case OpDeletion:
			if refStart < 0 {
				refStart, queryStart = refPos, queryPos
			}
			refBuf = append(refBuf, e.subdb[refPos:refPos+n]...)
			queryBuf = append(queryBuf, bytes.Repeat([]byte{'-'}, n)...)
			refPos += n
		case OpSoftClip:
			queryPos += n
		}
	}

	return &BasicAlignPair{
		RefAligned:   string(refBuf),
		QueryAligned: string(queryBuf),
		RefStart:     refStart,
		RefEnd:       refPos,
		QueryStart:   queryStart,
		QueryEnd:     queryPos,
		Score:        e.optScore,
		Length:       len(refBuf),
	}, nil
}
