// Package batch fans quality-aware alignment out across a worker pool, one
// read against one shared reference per unit of work.
//
// Aria equivalent:
//
//	fn align_batch(ref: Sequence, reads: [Read]) -> [AlignResult]
//	  ensures result.len() == reads.len()
package batch

import (
	"sync"

	"github.com/aria-lang/bioflow-go/internal/alignment/align454"
	"github.com/exascience/pargo/parallel"
)

// Read is one sequence/quality pair to align against a shared reference.
type Read struct {
	Sequence []byte
	Quality  []byte
}

// Result is the outcome of aligning a single Read.
type Result struct {
	Index           int
	CIGAR           string
	Score           int32
	Offset          int
	ReferenceLength int
	Err             error
}

// Penalties bundles the four scalar costs every worker's Engine is built
// from, matching align454.NewEngine's parameter order.
type Penalties struct {
	Match, Mismatch, GapOpenExtend, GapExtend int32
}

// enginePool lends out align454.Engine instances so a batch run reuses DP
// buffers across reads instead of growing a fresh matrix per alignment.
// Grounded on ExaScience-elprep's smithWatermanMatricesPool: one scratch
// object per concurrent worker, returned after use.
type enginePool struct {
	pool sync.Pool
}

func newEnginePool(p Penalties) *enginePool {
	return &enginePool{
		pool: sync.Pool{
			New: func() interface{} {
				return align454.NewEngine(p.Match, p.Mismatch, p.GapOpenExtend, p.GapExtend)
			},
		},
	}
}

func (ep *enginePool) get() *align454.Engine  { return ep.pool.Get().(*align454.Engine) }
func (ep *enginePool) put(e *align454.Engine) { ep.pool.Put(e) }

// AlignReadsConcurrently aligns every read against ref in parallel and
// returns one Result per read, in input order. semiglobal selects
// free-end-gap alignment on the reference axis; each worker owns a
// private Engine borrowed from an internal pool, never shared across
// goroutines, per align454's single-engine-per-goroutine contract.
func AlignReadsConcurrently(ref []byte, reads []Read, penalties Penalties, semiglobal bool) []Result {
	results := make([]Result, len(reads))
	pool := newEnginePool(penalties)

	parallel.Range(0, len(reads), 0, func(low, high int) {
		e := pool.get()
		defer pool.put(e)

		for i := low; i < high; i++ {
			read := reads[i]
			res := Result{Index: i}

			if err := e.Prepare(ref, read.Sequence, read.Quality, 0, 0, 0, 0); err != nil {
				res.Err = err
				results[i] = res
				continue
			}
			score, err := e.Align(semiglobal)
			if err != nil {
				res.Err = err
				results[i] = res
				continue
			}
			if err := e.Trace(); err != nil {
				res.Err = err
				results[i] = res
				continue
			}
			e.SoftclipTrace()
			e.CompactTrace()

			res.CIGAR = e.ShowCigar()
			res.Score = score
			res.Offset = e.AlignmentStart(0)
			res.ReferenceLength = e.CIGAR().ReferenceLength()
			results[i] = res
		}
	})

	return results
}
