package align454

// ambiguousBase is the wildcard reference code: a reference N matches any
// query base, but a query N is compared literally (it is never a wildcard
// itself — an N call in the read is a low-information base, not evidence
// of a match).
const ambiguousBase = 'N'

// Engine is a single long-lived aligner, constructed once and reused across
// many (reference, query) pairs. It is not safe to share across goroutines;
// each goroutine that needs one should own its own instance.
type Engine struct {
	match, mismatch, gapOpenExtend, gapExtend int32
	penalties                                 *PenaltyTables
	phredOffset                               int

	db   []byte
	subdb []byte
	dbHeadClip, dbTailClip int

	query, qual             []byte
	subquery, subqual       []byte
	queryHeadClip, queryTailClip int

	vecPenPrev, vecPenCur []int32
	vecInsPrev, vecInsCur []int32
	iExtPrev, iExtCur     []int32

	trace [][]CigarElem

	optScore    int32
	optScoreCol int

	cigarBuf           []CigarElem
	cigarBegin, cigarEnd int

	offset int
}

// NewEngine constructs an engine with the four scalar penalties and a
// default PHRED ASCII offset of 33 (the conventional Sanger/Illumina 1.8+
// encoding). All four penalties are costs to minimize.
func NewEngine(match, mismatch, gapOpenExtend, gapExtend int32) *Engine {
	e := &Engine{phredOffset: 33}
	e.SetPenalties(match, mismatch, gapOpenExtend, gapExtend)
	return e
}

// SetPenalties reinitializes the quality-indexed cost tables from four new
// scalar penalties.
func (e *Engine) SetPenalties(match, mismatch, gapOpenExtend, gapExtend int32) {
	e.match, e.mismatch, e.gapOpenExtend, e.gapExtend = match, mismatch, gapOpenExtend, gapExtend
	e.penalties = BuildPenaltyTables(match, mismatch, gapOpenExtend, gapExtend)
}

// SetPhredOffset changes the ASCII offset subtracted from quality bytes.
// It takes effect on the next call to Align, not retroactively.
func (e *Engine) SetPhredOffset(offset int) {
	e.phredOffset = offset
}

// PrepareDB installs the reference window and its head/tail hard-clip
// lengths. The engine aligns against subdb = db[headClip : len(db)-tailClip].
func (e *Engine) PrepareDB(ref []byte, headClip, tailClip int) error {
	if headClip+tailClip > len(ref) {
		return &InvalidStateError{Op: "PrepareDB", Reason: "head+tail clip exceeds reference length"}
	}
	e.db = ref
	e.dbHeadClip, e.dbTailClip = headClip, tailClip
	e.subdb = ref[headClip : len(ref)-tailClip]
	return nil
}

// PrepareQuery installs the query, its per-base qualities, and its
// head/tail hard-clip lengths. qual must be the same length as query.
func (e *Engine) PrepareQuery(query, qual []byte, headClip, tailClip int) error {
	if len(qual) != len(query) {
		return &InvalidStateError{Op: "PrepareQuery", Reason: "quality length does not match query length"}
	}
	if headClip+tailClip > len(query) {
		return &InvalidStateError{Op: "PrepareQuery", Reason: "head+tail clip exceeds query length"}
	}
	e.query, e.qual = query, qual
	e.queryHeadClip, e.queryTailClip = headClip, tailClip
	e.subquery = query[headClip : len(query)-tailClip]
	e.subqual = qual[headClip : len(qual)-tailClip]
	return nil
}

// Prepare installs both the reference and query/quality views in one call,
// with independent head/tail clip lengths for each — the combined
// convenience form of PrepareDB and PrepareQuery, not a shared-clip
// shortcut. Every clip length is a required argument; pass 0 for no clip.
func (e *Engine) Prepare(ref, query, qual []byte, dbHeadClip, dbTailClip, queryHeadClip, queryTailClip int) error {
	if err := e.PrepareDB(ref, dbHeadClip, dbTailClip); err != nil {
		return err
	}
	return e.PrepareQuery(query, qual, queryHeadClip, queryTailClip)
}

// growBuffers resizes the rolling score/insertion rows and the trace
// matrix to m+1 rows by n+1 columns, preserving overlapping content where
// possible and growing buffers monotonically so repeated alignment of
// similarly sized reads amortises allocation to near zero.
func (e *Engine) growBuffers(m, n int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &AllocationError{Requested: (m + 1) * (n + 1), Reason: "panic during buffer resize"}
		}
	}()

	cols := n + 1
	e.vecPenPrev = resizeRow(e.vecPenPrev, cols)
	e.vecPenCur = resizeRow(e.vecPenCur, cols)
	e.vecInsPrev = resizeRow(e.vecInsPrev, cols)
	e.vecInsCur = resizeRow(e.vecInsCur, cols)
	e.iExtPrev = resizeRow(e.iExtPrev, cols)
	e.iExtCur = resizeRow(e.iExtCur, cols)

	rows := m + 1
	if len(e.trace) > rows {
		e.trace = e.trace[:rows]
	}
	for len(e.trace) < rows {
		e.trace = append(e.trace, nil)
	}
	for r := 0; r < rows; r++ {
		e.trace[r] = resizeTraceRow(e.trace[r], cols)
	}

	bufSize := m + 4
	if cap(e.cigarBuf) < bufSize {
		e.cigarBuf = make([]CigarElem, bufSize)
	} else {
		e.cigarBuf = e.cigarBuf[:bufSize]
	}
	return nil
}

func resizeRow(row []int32, n int) []int32 {
	if cap(row) >= n {
		return row[:n]
	}
	return make([]int32, n)
}

func resizeTraceRow(row []CigarElem, n int) []CigarElem {
	if cap(row) >= n {
		return row[:n]
	}
	return make([]CigarElem, n)
}

// isMatch implements the base-equality convention: a query base equals a
// reference base when they are literally equal, or when the reference
// base is the ambiguous code N. A query N is never treated as a wildcard.
func isMatch(refBase, queryBase byte) bool {
	return refBase == queryBase || refBase == ambiguousBase
}
