// basic_interp_expr.go - expression evaluation
package main

import "math"

func (it *Interpreter) evalExpr(e Expr, curLine int) (Value, error) {
	switch ex := e.(type) {
	case *NumberLit:
		return NumberValue(ex.Value), nil

	case *StringLit:
		return StringValue(ex.Value), nil

	case *VarRef:
		key := variableKey(ex.Name)
		if v, ok := it.fnParam[key]; ok {
			return v, nil
		}
		if v, ok := it.vars[key]; ok {
			return v, nil
		}
		if isStringSuffixed(ex.Name) {
			return StringValue(""), nil
		}
		return NumberValue(0), nil

	case *ArrayRef:
		arr, idx, err := it.resolveArrayIndex(ex.Name, ex.Indices, curLine, true)
		if err != nil {
			return Value{}, err
		}
		return arr.Data[idx], nil

	case *CallExpr:
		return it.evalCall(ex, curLine)

	case *UnaryExpr:
		return it.evalUnary(ex, curLine)

	case *BinaryExpr:
		return it.evalBinary(ex, curLine)

	default:
		return Value{}, &BasicError{Code: ErrSyntax, Line: curLine}
	}
}

func (it *Interpreter) evalCall(ex *CallExpr, curLine int) (Value, error) {
	if ex.Func == TokFN {
		def, ok := it.defFns[ex.Name]
		if !ok {
			return Value{}, &BasicError{Code: ErrUndefinedFunction, Line: curLine}
		}
		argv, err := it.evalExpr(ex.Args[0], curLine)
		if err != nil {
			return Value{}, err
		}
		paramKey := variableKey(def.Param)
		saved, had := it.fnParam[paramKey]
		it.fnParam[paramKey] = argv
		result, err := it.evalExpr(def.Body, curLine)
		if had {
			it.fnParam[paramKey] = saved
		} else {
			delete(it.fnParam, paramKey)
		}
		return result, err
	}

	args := make([]Value, len(ex.Args))
	for i, a := range ex.Args {
		v, err := it.evalExpr(a, curLine)
		if err != nil {
			return Value{}, err
		}
		args[i] = v
	}
	return it.evalBuiltin(ex.Func, args, curLine)
}

func (it *Interpreter) evalUnary(ex *UnaryExpr, curLine int) (Value, error) {
	v, err := it.evalExpr(ex.Expr, curLine)
	if err != nil {
		return Value{}, err
	}
	switch ex.Op {
	case TokMinus:
		n, err := v.AsNumber()
		if err != nil {
			return Value{}, (err.(*BasicError)).WithLine(curLine)
		}
		return NumberValue(-n), nil
	case TokPlus:
		n, err := v.AsNumber()
		if err != nil {
			return Value{}, (err.(*BasicError)).WithLine(curLine)
		}
		return NumberValue(n), nil
	case TokNOT:
		return BoolValue(!v.Truthy()), nil
	default:
		return Value{}, &BasicError{Code: ErrSyntax, Line: curLine}
	}
}

func (it *Interpreter) evalBinary(ex *BinaryExpr, curLine int) (Value, error) {
	left, err := it.evalExpr(ex.Left, curLine)
	if err != nil {
		return Value{}, err
	}

	if ex.Op == TokOR {
		if left.Truthy() {
			return BoolValue(true), nil
		}
		right, err := it.evalExpr(ex.Right, curLine)
		if err != nil {
			return Value{}, err
		}
		return BoolValue(right.Truthy()), nil
	}
	if ex.Op == TokAND {
		if !left.Truthy() {
			return BoolValue(false), nil
		}
		right, err := it.evalExpr(ex.Right, curLine)
		if err != nil {
			return Value{}, err
		}
		return BoolValue(right.Truthy()), nil
	}

	right, err := it.evalExpr(ex.Right, curLine)
	if err != nil {
		return Value{}, err
	}

	if left.IsString() || right.IsString() {
		return it.evalBinaryString(ex.Op, left, right, curLine)
	}
	return it.evalBinaryNumber(ex.Op, left, right, curLine)
}

func (it *Interpreter) evalBinaryString(op TokenType, left, right Value, curLine int) (Value, error) {
	ls, err := left.AsString()
	if err != nil {
		return Value{}, (err.(*BasicError)).WithLine(curLine)
	}
	rs, err := right.AsString()
	if err != nil {
		return Value{}, (err.(*BasicError)).WithLine(curLine)
	}
	switch op {
	case TokPlus:
		return StringValue(ls + rs), nil
	case TokEqual:
		return BoolValue(ls == rs), nil
	case TokNotEqual:
		return BoolValue(ls != rs), nil
	case TokLess:
		return BoolValue(ls < rs), nil
	case TokLessEqual:
		return BoolValue(ls <= rs), nil
	case TokGreater:
		return BoolValue(ls > rs), nil
	case TokGreaterEqual:
		return BoolValue(ls >= rs), nil
	default:
		return Value{}, &BasicError{Code: ErrTypeMismatch, Line: curLine}
	}
}

func (it *Interpreter) evalBinaryNumber(op TokenType, left, right Value, curLine int) (Value, error) {
	ln, _ := left.AsNumber()
	rn, _ := right.AsNumber()
	switch op {
	case TokPlus:
		return checkedNumber(ln+rn, curLine)
	case TokMinus:
		return checkedNumber(ln-rn, curLine)
	case TokStar:
		return checkedNumber(ln*rn, curLine)
	case TokSlash:
		if rn == 0 {
			return Value{}, &BasicError{Code: ErrDivisionByZero, Line: curLine}
		}
		return checkedNumber(ln/rn, curLine)
	case TokCaret:
		return checkedNumber(math.Pow(ln, rn), curLine)
	case TokEqual:
		return BoolValue(ln == rn), nil
	case TokNotEqual:
		return BoolValue(ln != rn), nil
	case TokLess:
		return BoolValue(ln < rn), nil
	case TokLessEqual:
		return BoolValue(ln <= rn), nil
	case TokGreater:
		return BoolValue(ln > rn), nil
	case TokGreaterEqual:
		return BoolValue(ln >= rn), nil
	default:
		return Value{}, &BasicError{Code: ErrSyntax, Line: curLine}
	}
}

func checkedNumber(n float64, curLine int) (Value, error) {
	if math.IsInf(n, 0) || math.IsNaN(n) {
		return Value{}, &BasicError{Code: ErrOverflow, Line: curLine}
	}
	return NumberValue(n), nil
}
