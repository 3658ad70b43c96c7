package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func parseOneLine(t *testing.T, src string) []Stmt {
	t.Helper()
	toks := NewLexer(src, 10).Tokenize()
	stmts, err := ParseLine(toks)
	require.NoError(t, err)
	return stmts
}

func TestParserArithmeticPrecedence(t *testing.T) {
	stmts := parseOneLine(t, "A=2+3*4")
	let := stmts[0].(*LetStmt)
	bin := let.Value.(*BinaryExpr)
	require.Equal(t, TokPlus, bin.Op)
	require.IsType(t, &NumberLit{}, bin.Left)
	mul := bin.Right.(*BinaryExpr)
	require.Equal(t, TokStar, mul.Op)
}

func TestParserPowerIsRightAssociative(t *testing.T) {
	stmts := parseOneLine(t, "A=2^3^2")
	let := stmts[0].(*LetStmt)
	top := let.Value.(*BinaryExpr)
	require.Equal(t, TokCaret, top.Op)
	require.IsType(t, &NumberLit{}, top.Left)
	inner := top.Right.(*BinaryExpr)
	require.Equal(t, TokCaret, inner.Op)
}

func TestParserComparisonIsNonAssociative(t *testing.T) {
	// A single comparison binds tighter than AND/OR but doesn't chain.
	stmts := parseOneLine(t, "A=1<2 AND 3>2")
	let := stmts[0].(*LetStmt)
	top := let.Value.(*BinaryExpr)
	require.Equal(t, TokAND, top.Op)
	left := top.Left.(*BinaryExpr)
	require.Equal(t, TokLess, left.Op)
	right := top.Right.(*BinaryExpr)
	require.Equal(t, TokGreater, right.Op)
}

func TestParserColonSeparatedStatements(t *testing.T) {
	stmts := parseOneLine(t, `A=1:B=2:PRINT A`)
	require.Len(t, stmts, 3)
	require.IsType(t, &LetStmt{}, stmts[0])
	require.IsType(t, &LetStmt{}, stmts[1])
	require.IsType(t, &PrintStmt{}, stmts[2])
}

func TestParserIfThenLineNumber(t *testing.T) {
	stmts := parseOneLine(t, "IF X=1 THEN 100")
	ifs := stmts[0].(*IfStmt)
	require.Equal(t, 100, ifs.ThenLine)
	require.Nil(t, ifs.Then)
}

func TestParserIfThenInlineStatements(t *testing.T) {
	stmts := parseOneLine(t, `IF X=1 THEN PRINT "A": PRINT "B"`)
	ifs := stmts[0].(*IfStmt)
	require.Len(t, ifs.Then, 2)
}

func TestParserForWithStep(t *testing.T) {
	stmts := parseOneLine(t, "FOR I=1 TO 10 STEP 2")
	f := stmts[0].(*ForStmt)
	require.Equal(t, "I", f.Var)
	require.NotNil(t, f.Step)
}

func TestParserForWithoutStep(t *testing.T) {
	stmts := parseOneLine(t, "FOR I=1 TO 10")
	f := stmts[0].(*ForStmt)
	require.Nil(t, f.Step)
}

func TestParserArrayReferenceWithIndices(t *testing.T) {
	stmts := parseOneLine(t, "A(1,2)=5")
	let := stmts[0].(*LetStmt)
	require.Equal(t, "A", let.Target.Name)
	require.Len(t, let.Target.Indices, 2)
}

func TestParserDimMultipleArrays(t *testing.T) {
	stmts := parseOneLine(t, "DIM A(10), B$(5,5)")
	dim := stmts[0].(*DimStmt)
	require.Len(t, dim.Vars, 2)
	require.Equal(t, "A", dim.Vars[0].Name)
	require.Len(t, dim.Vars[0].Dims, 1)
	require.Equal(t, "B$", dim.Vars[1].Name)
	require.Len(t, dim.Vars[1].Dims, 2)
}

func TestParserOnGotoList(t *testing.T) {
	stmts := parseOneLine(t, "ON X GOTO 100,200,300")
	og := stmts[0].(*OnGotoStmt)
	require.False(t, og.IsGosub)
	require.Equal(t, []int{100, 200, 300}, og.Lines)
}

func TestParserOnGosubList(t *testing.T) {
	stmts := parseOneLine(t, "ON X GOSUB 100,200")
	og := stmts[0].(*OnGotoStmt)
	require.True(t, og.IsGosub)
}

func TestParserBuiltinCallWithArgs(t *testing.T) {
	stmts := parseOneLine(t, "A=MID$(B$,1,2)")
	let := stmts[0].(*LetStmt)
	call := let.Value.(*CallExpr)
	require.Equal(t, TokMIDS, call.Func)
	require.Len(t, call.Args, 3)
}

func TestParserDefFn(t *testing.T) {
	stmts := parseOneLine(t, "DEF FN SQ(X)=X*X")
	def := stmts[0].(*DefFnStmt)
	require.Equal(t, "SQ", def.Name)
	require.Equal(t, "X", def.Param)
}

func TestParserRestoreWithLineNumber(t *testing.T) {
	stmts := parseOneLine(t, "RESTORE 500")
	r := stmts[0].(*RestoreStmt)
	require.Equal(t, 500, r.Line)
}

func TestParserRestoreBare(t *testing.T) {
	stmts := parseOneLine(t, "RESTORE")
	r := stmts[0].(*RestoreStmt)
	require.Equal(t, 0, r.Line)
}

func TestParserSyntaxErrorOnMismatchedParen(t *testing.T) {
	toks := NewLexer("A=(1+2", 10).Tokenize()
	_, err := ParseLine(toks)
	require.Error(t, err)
	be, ok := err.(*BasicError)
	require.True(t, ok)
	require.Equal(t, ErrSyntax, be.Code)
}

func TestParserHplotToChain(t *testing.T) {
	stmts := parseOneLine(t, "HPLOT 0,0 TO 100,50 TO 279,191")
	hp := stmts[0].(*HplotStmt)
	require.False(t, hp.FromLast)
	require.Len(t, hp.Points, 3)
}

func TestParserHplotFromLast(t *testing.T) {
	stmts := parseOneLine(t, "HPLOT TO 10,10")
	hp := stmts[0].(*HplotStmt)
	require.True(t, hp.FromLast)
	require.Len(t, hp.Points, 1)
}

func TestParserColorAssignments(t *testing.T) {
	stmts := parseOneLine(t, "COLOR= 5 : HCOLOR= 3")
	c := stmts[0].(*ColorStmt)
	require.False(t, c.Hi)
	h := stmts[1].(*ColorStmt)
	require.True(t, h.Hi)
}

func TestParserDrawWithAt(t *testing.T) {
	stmts := parseOneLine(t, "XDRAW 4 AT 10,20")
	d := stmts[0].(*DrawStmt)
	require.True(t, d.Erase)
	require.True(t, d.HasAt)
}

func TestParserHgrVariants(t *testing.T) {
	stmts := parseOneLine(t, "HGR : HGR2 : GR : TEXT")
	require.False(t, stmts[0].(*HgrStmt).Page2)
	require.True(t, stmts[1].(*HgrStmt).Page2)
	require.IsType(t, &GrStmt{}, stmts[2])
	require.IsType(t, &TextStmt{}, stmts[3])
}

func TestParserHimemLomemCarryTheirColon(t *testing.T) {
	stmts := parseOneLine(t, "HIMEM: 32767 : LOMEM: 2048")
	require.Len(t, stmts, 2)
	require.IsType(t, &HimemStmt{}, stmts[0])
	require.IsType(t, &LomemStmt{}, stmts[1])
}

func TestParserAmpersandWithArgs(t *testing.T) {
	stmts := parseOneLine(t, `& 1, "GO", X`)
	amp := stmts[0].(*AmpersandStmt)
	require.Len(t, amp.Args, 3)
}

func TestParserAmpersandBare(t *testing.T) {
	stmts := parseOneLine(t, "& : PRINT 1")
	require.Empty(t, stmts[0].(*AmpersandStmt).Args)
	require.IsType(t, &PrintStmt{}, stmts[1])
}

func TestParserSleep(t *testing.T) {
	stmts := parseOneLine(t, "SLEEP 250")
	require.IsType(t, &SleepStmt{}, stmts[0])
}
