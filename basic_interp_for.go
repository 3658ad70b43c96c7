// basic_interp_for.go - FOR/NEXT frame stack
package main

func (it *Interpreter) execFor(st *ForStmt, curLine int) error {
	startV, err := it.evalExpr(st.Start, curLine)
	if err != nil {
		return err
	}
	start, err := startV.AsNumber()
	if err != nil {
		return (err.(*BasicError)).WithLine(curLine)
	}
	endV, err := it.evalExpr(st.End, curLine)
	if err != nil {
		return err
	}
	end, err := endV.AsNumber()
	if err != nil {
		return (err.(*BasicError)).WithLine(curLine)
	}
	step := 1.0
	if st.Step != nil {
		stepV, err := it.evalExpr(st.Step, curLine)
		if err != nil {
			return err
		}
		step, err = stepV.AsNumber()
		if err != nil {
			return (err.(*BasicError)).WithLine(curLine)
		}
	}

	key := variableKey(st.Var)
	it.vars[key] = NumberValue(start)

	if len(it.forStk) >= maxFrameDepth {
		return &BasicError{Code: ErrOutOfMemory, Line: curLine}
	}
	frame := forFrame{Var: key, End: end, Step: step, LineIndex: it.lineIdx, StmtIndex: it.stmtIdx + 1}
	it.forStk = append(it.forStk, frame)
	return nil
}

func loopDone(v, end, step float64) bool {
	if step >= 0 {
		return v > end
	}
	return v < end
}

func (it *Interpreter) execNext(st *NextStmt, curLine int) (*jumpTarget, error) {
	names := st.Vars
	if len(names) == 0 {
		names = []string{""}
	}
	for _, name := range names {
		if len(it.forStk) == 0 {
			return nil, &BasicError{Code: ErrNextWithoutFor, Line: curLine}
		}
		key := ""
		if name != "" {
			key = variableKey(name)
		}
		// pop frames until the matching name is found; bare NEXT always
		// matches the innermost frame.
		idx := len(it.forStk) - 1
		if key != "" {
			found := -1
			for i := len(it.forStk) - 1; i >= 0; i-- {
				if it.forStk[i].Var == key {
					found = i
					break
				}
			}
			if found < 0 {
				return nil, &BasicError{Code: ErrNextWithoutFor, Line: curLine}
			}
			idx = found
		}
		frame := it.forStk[idx]
		it.forStk = it.forStk[:idx+1]

		cur, _ := it.vars[frame.Var].AsNumber()
		cur += frame.Step
		it.vars[frame.Var] = NumberValue(cur)

		if loopDone(cur, frame.End, frame.Step) {
			it.forStk = it.forStk[:idx]
			continue
		}
		return &jumpTarget{lineIdx: frame.LineIndex, stmtIdx: frame.StmtIndex}, nil
	}
	return nil, nil
}
