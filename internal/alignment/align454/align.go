package align454

// Align runs the quality-weighted affine-gap dynamic program against the
// currently prepared subdb/subquery and returns the minimum score found in
// the last row (C3 initializer, C4 core, C5 optimum locator). semi selects
// semiglobal-on-the-reference mode: the alignment may begin and end at any
// reference column without penalty, but must still consume the whole
// query.
func (e *Engine) Align(semi bool) (int32, error) {
	if len(e.subdb) == 0 || len(e.subquery) == 0 {
		return 0, &InvalidStateError{Op: "Align", Reason: "subdb and subquery must both be non-empty"}
	}

	m, n := len(e.subquery), len(e.subdb)
	if err := e.growBuffers(m, n); err != nil {
		return 0, err
	}

	e.initRow0(semi)

	for row := 1; row <= m; row++ {
		e.computeRow(row)
		e.vecPenPrev, e.vecPenCur = e.vecPenCur, e.vecPenPrev
		e.vecInsPrev, e.vecInsCur = e.vecInsCur, e.vecInsPrev
		e.iExtPrev, e.iExtCur = e.iExtCur, e.iExtPrev
	}

	e.locateOptimum()
	return e.optScore, nil
}

// initRow0 seeds the virtual row m=0 of the score, insertion, and trace
// buffers (C3). In global mode, row 0 behaves as if n deletions had
// already accumulated from the top-left, forcing the alignment to consume
// the reference from its start. In semiglobal mode every column of row 0
// costs nothing, so the alignment may begin at any reference column.
func (e *Engine) initRow0(semi bool) {
	n := len(e.subdb)

	e.vecPenPrev[0] = 0
	e.trace[0][0] = NewCigarElem(0, OpSeqMatch)
	for col := 1; col <= n; col++ {
		if semi {
			e.vecPenPrev[col] = 0
		} else {
			e.vecPenPrev[col] = e.vecPenPrev[col-1] + e.gapExtend
		}
		e.trace[0][col] = NewCigarElem(col, OpDeletion)
	}

	if len(e.subqual) > 0 {
		q0 := clampQuality(int(e.subqual[0]) - e.phredOffset)
		delta := e.penalties.GapOpenExtend[q0] - e.penalties.GapExtend[q0]
		for col := 0; col <= n; col++ {
			e.vecInsPrev[col] = e.vecPenPrev[col] + delta
		}
	}
	for col := 0; col <= n; col++ {
		e.iExtPrev[col] = 0
	}
}

// computeRow fills score row `row` (1-indexed query position `row`) of the
// rolling buffers and the corresponding trace matrix row (C4). Deletions
// extend along the reference axis within the current row and are tracked
// with a scalar (storedDel, delRun) swept left to right, matching the data
// model's statement that the deletion score depends only on the cell
// immediately to the left in the same row.
func (e *Engine) computeRow(row int) {
	n := len(e.subdb)
	cq := e.subquery[row-1]
	q := clampQuality(int(e.subqual[row-1]) - e.phredOffset)

	gext := e.penalties.GapExtend[q]
	gopen := e.penalties.GapOpenExtend[q]

	left := e.vecInsPrev[0] + gext
	e.vecPenCur[0] = left
	e.vecInsCur[0] = left
	cIns := e.iExtPrev[0] + 1
	e.iExtCur[0] = cIns
	e.trace[row][0] = NewCigarElem(int(cIns), OpInsertion)

	storedDel := left + (e.gapOpenExtend - e.gapExtend)
	delRun := int32(0)

	for col := 1; col <= n; col++ {
		cr := e.subdb[col-1]

		wDOpen := e.vecPenCur[col-1] + e.gapOpenExtend
		wDExtend := storedDel + e.gapExtend
		var wD int32
		var cD int32
		if wDExtend <= wDOpen {
			wD, cD = wDExtend, delRun+1
		} else {
			wD, cD = wDOpen, 1
		}

		wIOpen := e.vecPenPrev[col] + gopen
		wIExtend := e.vecInsPrev[col] + gext
		var wI int32
		var cI int32
		if wIExtend <= wIOpen {
			wI, cI = wIExtend, e.iExtPrev[col]+1
		} else {
			wI, cI = wIOpen, 1
		}

		var matchPenalty int32
		if isMatch(cr, cq) {
			matchPenalty = e.penalties.Match[q]
		} else {
			matchPenalty = e.penalties.Mismatch[q]
		}
		wM := e.vecPenPrev[col-1] + matchPenalty

		var score int32
		var cell CigarElem
		if wM <= wI && wM <= wD {
			score = wM
			op := OpSeqMismatch
			if isMatch(cr, cq) {
				op = OpSeqMatch
			}
			cell = NewCigarElem(1, op)
		} else if wI <= wD {
			score = wI
			cell = NewCigarElem(int(cI), OpInsertion)
		} else {
			score = wD
			cell = NewCigarElem(int(cD), OpDeletion)
		}

		e.vecPenCur[col] = score
		e.vecInsCur[col] = wI
		e.iExtCur[col] = cI
		e.trace[row][col] = cell

		storedDel = wD
		delRun = cD
	}
}

// locateOptimum scans the final score row left to right for the minimum
// value, the first occurrence winning ties (C5).
func (e *Engine) locateOptimum() {
	best := e.vecPenPrev[0]
	bestCol := 0
	for col := 1; col < len(e.vecPenPrev); col++ {
		if e.vecPenPrev[col] < best {
			best = e.vecPenPrev[col]
			bestCol = col
		}
	}
	e.optScore = best
	e.optScoreCol = bestCol
}

func clampQuality(q int) int {
	if q < 0 {
		return 0
	}
	if q >= QualityRange {
		return QualityRange - 1
	}
	return q
}
