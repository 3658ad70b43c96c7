// basic_builtins.go - ABS/SGN/INT/SQR/trig/string built-in functions
package main

import (
	"math"
	"strconv"
	"strings"
)

// evalBuiltin evaluates a built-in function call given its already-evaluated
// arguments. TAB/SPC/POS are handled separately inside PRINT execution since
// they need live cursor column state; they still route through here when
// called outside a PRINT list (POS does, returning the current column).
func (it *Interpreter) evalBuiltin(tok TokenType, args []Value, line int) (Value, error) {
	num := func(i int) (float64, error) { return args[i].AsNumber() }
	str := func(i int) (string, error) { return args[i].AsString() }

	switch tok {
	case TokABS:
		n, err := num(0)
		if err != nil {
			return Value{}, err
		}
		return NumberValue(math.Abs(n)), nil
	case TokSGN:
		n, err := num(0)
		if err != nil {
			return Value{}, err
		}
		switch {
		case n > 0:
			return NumberValue(1), nil
		case n < 0:
			return NumberValue(-1), nil
		default:
			return NumberValue(0), nil
		}
	case TokINT:
		n, err := num(0)
		if err != nil {
			return Value{}, err
		}
		return NumberValue(math.Floor(n)), nil
	case TokSQR:
		n, err := num(0)
		if err != nil {
			return Value{}, err
		}
		if n < 0 {
			return Value{}, &BasicError{Code: ErrIllegalQuantity, Line: line}
		}
		return NumberValue(math.Sqrt(n)), nil
	case TokSIN:
		n, err := num(0)
		if err != nil {
			return Value{}, err
		}
		return NumberValue(math.Sin(n)), nil
	case TokCOS:
		n, err := num(0)
		if err != nil {
			return Value{}, err
		}
		return NumberValue(math.Cos(n)), nil
	case TokTAN:
		n, err := num(0)
		if err != nil {
			return Value{}, err
		}
		return NumberValue(math.Tan(n)), nil
	case TokATN:
		n, err := num(0)
		if err != nil {
			return Value{}, err
		}
		return NumberValue(math.Atan(n)), nil
	case TokLOG:
		n, err := num(0)
		if err != nil {
			return Value{}, err
		}
		if n <= 0 {
			return Value{}, &BasicError{Code: ErrIllegalQuantity, Line: line}
		}
		return NumberValue(math.Log(n)), nil
	case TokEXP:
		n, err := num(0)
		if err != nil {
			return Value{}, err
		}
		return NumberValue(math.Exp(n)), nil
	case TokRND:
		n, err := num(0)
		if err != nil {
			return Value{}, err
		}
		if n < 0 {
			it.rng.Seed(int64(n))
		}
		return NumberValue(it.rng.Float64()), nil
	case TokLEN:
		s, err := str(0)
		if err != nil {
			return Value{}, err
		}
		return NumberValue(float64(len(s))), nil
	case TokVAL:
		s, err := str(0)
		if err != nil {
			return Value{}, err
		}
		s = strings.TrimSpace(s)
		end := 0
		for end < len(s) && (isDigit(rune(s[end])) || s[end] == '.' || s[end] == '-' || s[end] == '+' || s[end] == 'E' || s[end] == 'e') {
			end++
		}
		if end == 0 {
			return NumberValue(0), nil
		}
		n, err := strconv.ParseFloat(s[:end], 64)
		if err != nil {
			return NumberValue(0), nil
		}
		return NumberValue(n), nil
	case TokSTRS:
		n, err := num(0)
		if err != nil {
			return Value{}, err
		}
		return StringValue(strings.TrimSpace(FormatNumber(n))), nil
	case TokCHRS:
		n, err := num(0)
		if err != nil {
			return Value{}, err
		}
		return StringValue(string([]byte{byte(int(n))})), nil
	case TokASC:
		s, err := str(0)
		if err != nil {
			return Value{}, err
		}
		if len(s) == 0 {
			return Value{}, &BasicError{Code: ErrIllegalQuantity, Line: line}
		}
		return NumberValue(float64(s[0])), nil
	case TokLEFTS:
		s, err := str(0)
		if err != nil {
			return Value{}, err
		}
		n, err := num(1)
		if err != nil {
			return Value{}, err
		}
		k := clampIndex(int(n), len(s))
		return StringValue(s[:k]), nil
	case TokRIGHTS:
		s, err := str(0)
		if err != nil {
			return Value{}, err
		}
		n, err := num(1)
		if err != nil {
			return Value{}, err
		}
		k := clampIndex(int(n), len(s))
		return StringValue(s[len(s)-k:]), nil
	case TokMIDS:
		s, err := str(0)
		if err != nil {
			return Value{}, err
		}
		start, err := num(1)
		if err != nil {
			return Value{}, err
		}
		startIdx := int(start) - 1
		if startIdx < 0 {
			return Value{}, &BasicError{Code: ErrIllegalQuantity, Line: line}
		}
		if startIdx >= len(s) {
			return StringValue(""), nil
		}
		length := len(s) - startIdx
		if len(args) > 2 {
			n, err := num(2)
			if err != nil {
				return Value{}, err
			}
			length = clampIndex(int(n), len(s)-startIdx)
		}
		return StringValue(s[startIdx : startIdx+length]), nil
	case TokPEEK:
		addr, err := num(0)
		if err != nil {
			return Value{}, err
		}
		if it.Bridge == nil {
			return Value{}, &BasicError{Code: ErrIllegalQuantity, Line: line}
		}
		return NumberValue(float64(it.Bridge.Peek(uint16(addr)))), nil
	case TokFRE:
		return NumberValue(float64(it.freeBytes())), nil
	case TokPOS:
		return NumberValue(float64(it.IO.Column())), nil
	default:
		return Value{}, &BasicError{Code: ErrUndefinedFunction, Line: line}
	}
}

func clampIndex(n, max int) int {
	if n < 0 {
		n = 0
	}
	if n > max {
		n = max
	}
	return n
}

// freeBytes is a nominal FRE() figure; this implementation has no fixed
// arena, so it reports headroom relative to the conventional 38911-byte
// Applesoft program area, narrowed by any HIMEM:/LOMEM: settings.
func (it *Interpreter) freeBytes() int {
	used := len(it.vars) * 8
	for _, a := range it.arrays {
		used += len(a.Data) * 8
	}
	arena := 38911
	if it.himem > 0 || it.lomem > 0 {
		hi := it.himem
		if hi == 0 {
			hi = 0x9600
		}
		arena = hi - it.lomem
		if arena < 0 {
			arena = 0
		}
	}
	if used > arena {
		return 0
	}
	return arena - used
}
