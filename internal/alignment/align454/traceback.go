package align454

// Trace walks the trace matrix from the optimum cell found by Align back
// to row 0, emitting a reverse CIGAR into the scratch buffer (C6). It must
// be called after Align. The column reached at row 0 is recorded as
// offset: the position in subdb where the alignment begins.
func (e *Engine) Trace() error {
	m := len(e.subquery)
	n := e.optScoreCol

	bufLen := len(e.cigarBuf)
	idx := m + 1

	for m > 0 {
		cell := e.trace[m][n]
		op := cell.Op()
		switch op {
		case OpSeqMatch, OpSeqMismatch:
			length := 0
			for m > 0 && n > 0 && e.trace[m][n].Op() == op {
				length++
				m--
				n--
			}
			e.cigarBuf[idx] = NewCigarElem(length, op)
			idx--
		case OpInsertion:
			l := cell.Len()
			e.cigarBuf[idx] = cell
			idx--
			m -= l
		case OpDeletion:
			l := cell.Len()
			e.cigarBuf[idx] = cell
			idx--
			n -= l
		default:
			return &CorruptTraceError{Row: m, Col: n, Opcode: op}
		}
	}

	e.offset = n
	e.cigarBegin = idx + 1
	e.cigarEnd = len(e.subquery) + 2
	if e.cigarEnd > bufLen {
		e.cigarEnd = bufLen
	}
	return nil
}
