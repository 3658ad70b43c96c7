package main

import (
	"bufio"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// captureIO is a BasicIO that writes to an in-memory buffer and feeds input
// from a preset string, used so interpreter tests don't touch stdio.
type captureIO struct {
	out    strings.Builder
	in     *bufio.Reader
	column int
}

func newCaptureIO(input string) *captureIO {
	return &captureIO{in: bufio.NewReader(strings.NewReader(input))}
}

func (c *captureIO) Write(s string) {
	c.out.WriteString(s)
	for _, r := range s {
		if r == '\n' {
			c.column = 0
		} else {
			c.column++
		}
	}
}

func (c *captureIO) ReadLine() (string, error) {
	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (c *captureIO) ReadChar() (byte, error) { return c.in.ReadByte() }
func (c *captureIO) Column() int             { return c.column }
func (c *captureIO) SetColumn(n int)         { c.column = n }

func runBasic(t *testing.T, src string) string {
	t.Helper()
	program, err := LoadProgramSource(src)
	require.NoError(t, err)
	io := newCaptureIO("")
	interp := NewInterpreter(program, io, nil)
	require.NoError(t, interp.Run())
	return io.out.String()
}

func TestBasicForLoop(t *testing.T) {
	out := runBasic(t, `
10 S=0
20 FOR I=1 TO 5
30 S=S+I
40 NEXT I
50 PRINT S
`)
	require.Equal(t, " 15 \n", out)
}

func TestBasicGosubReturn(t *testing.T) {
	out := runBasic(t, `
10 GOSUB 100
20 PRINT "B"
30 END
100 PRINT "A"
110 RETURN
`)
	require.Equal(t, "A\nB\n", out)
}

func TestBasicDataRead(t *testing.T) {
	out := runBasic(t, `
10 DATA 3, HELLO, 2.5
20 READ A, B$, C
30 PRINT A; B$; C
`)
	require.Equal(t, " 3 HELLO 2.5 \n", out)
}

func TestBasicNextWithoutFor(t *testing.T) {
	program, err := LoadProgramSource("10 NEXT I\n")
	require.NoError(t, err)
	interp := NewInterpreter(program, newCaptureIO(""), nil)
	err = interp.Run()
	require.Error(t, err)
	be, ok := err.(*BasicError)
	require.True(t, ok)
	require.Equal(t, ErrNextWithoutFor, be.Code)
}

func TestBasicReturnWithoutGosub(t *testing.T) {
	program, err := LoadProgramSource("10 RETURN\n")
	require.NoError(t, err)
	interp := NewInterpreter(program, newCaptureIO(""), nil)
	err = interp.Run()
	require.Error(t, err)
	be, ok := err.(*BasicError)
	require.True(t, ok)
	require.Equal(t, ErrReturnWithoutGosub, be.Code)
}

func TestBasicDivisionByZero(t *testing.T) {
	program, err := LoadProgramSource("10 PRINT 1/0\n")
	require.NoError(t, err)
	interp := NewInterpreter(program, newCaptureIO(""), nil)
	err = interp.Run()
	require.Error(t, err)
	be, ok := err.(*BasicError)
	require.True(t, ok)
	require.Equal(t, ErrDivisionByZero, be.Code)
}

func TestBasicGotoUndefinedStatement(t *testing.T) {
	program, err := LoadProgramSource("10 GOTO 999\n")
	require.NoError(t, err)
	interp := NewInterpreter(program, newCaptureIO(""), nil)
	err = interp.Run()
	require.Error(t, err)
	be, ok := err.(*BasicError)
	require.True(t, ok)
	require.Equal(t, ErrUndefinedStatement, be.Code)
}

func TestBasicOutOfData(t *testing.T) {
	program, err := LoadProgramSource("10 READ A\n")
	require.NoError(t, err)
	interp := NewInterpreter(program, newCaptureIO(""), nil)
	err = interp.Run()
	require.Error(t, err)
	be, ok := err.(*BasicError)
	require.True(t, ok)
	require.Equal(t, ErrOutOfData, be.Code)
}

func TestBasicIfThenInline(t *testing.T) {
	out := runBasic(t, `
10 X=5
20 IF X=5 THEN PRINT "YES": PRINT "TWO"
30 END
`)
	require.Equal(t, "YES\nTWO\n", out)
}

func TestBasicStringConcatAndCompare(t *testing.T) {
	out := runBasic(t, `
10 A$="FOO"
20 B$="BAR"
30 PRINT A$+B$
40 IF A$<>B$ THEN PRINT "DIFFERENT"
`)
	require.Equal(t, "FOOBAR\nDIFFERENT\n", out)
}

func TestBasicArrayDefaultDimension(t *testing.T) {
	out := runBasic(t, `
10 A(10)=99
20 PRINT A(10)
`)
	require.Equal(t, " 99 \n", out)
}

func TestBasicDefFn(t *testing.T) {
	out := runBasic(t, `
10 DEF FN SQ(X) = X*X
20 PRINT FN SQ(4)
`)
	require.Equal(t, " 16 \n", out)
}

func TestBasicOnGoto(t *testing.T) {
	out := runBasic(t, `
10 X=2
20 ON X GOTO 100,200,300
30 END
100 PRINT "ONE"
110 END
200 PRINT "TWO"
210 END
300 PRINT "THREE"
`)
	require.Equal(t, "TWO\n", out)
}

func TestBasicNotEqualAlias(t *testing.T) {
	out := runBasic(t, `
10 IF 1 >< 2 THEN PRINT "NE"
`)
	require.Equal(t, "NE\n", out)
}

func TestBasicPrintQuestionAlias(t *testing.T) {
	out := runBasic(t, "10 ?\"HI\"\n")
	require.Equal(t, "HI\n", out)
}

func TestBasicVariableTruncation(t *testing.T) {
	out := runBasic(t, `
10 ABCDEF=1
20 ABXYZ=2
30 PRINT ABCDEF
`)
	// ABCDEF and ABXYZ both truncate to the key "AB"; the second assignment
	// overwrites the first.
	require.Equal(t, " 2 \n", out)
}

// pokeRecorder is a Bridge backed by a plain byte map, recording CALL
// targets, for exercising PEEK/POKE/CALL and the graphics statements
// without a full Machine.
type pokeRecorder struct {
	mem   map[uint16]byte
	calls []uint16
}

func newPokeRecorder() *pokeRecorder { return &pokeRecorder{mem: make(map[uint16]byte)} }

func (b *pokeRecorder) Peek(addr uint16) byte         { return b.mem[addr] }
func (b *pokeRecorder) Poke(addr uint16, value byte)  { b.mem[addr] = value }
func (b *pokeRecorder) Call(addr uint16)              { b.calls = append(b.calls, addr) }

func runBasicWithBridge(t *testing.T, src string, bridge Bridge) string {
	t.Helper()
	program, err := LoadProgramSource(src)
	require.NoError(t, err)
	io := newCaptureIO("")
	interp := NewInterpreter(program, io, bridge)
	require.NoError(t, interp.Run())
	return io.out.String()
}

func TestBasicColorOutOfRangeFails(t *testing.T) {
	program, err := LoadProgramSource("10 COLOR= 16\n")
	require.NoError(t, err)
	err = NewInterpreter(program, newCaptureIO(""), nil).Run()
	be, ok := err.(*BasicError)
	require.True(t, ok)
	require.Equal(t, ErrIllegalQuantity, be.Code)
}

func TestBasicGrDrivesSoftSwitchesAndClearsScreen(t *testing.T) {
	bridge := newPokeRecorder()
	bridge.mem[0x0400] = 0xEE
	runBasicWithBridge(t, "10 GR\n", bridge)

	// Mode switches were touched and the lores screen cleared.
	_, grTouched := bridge.mem[uint16(AddrTXTCLR)]
	require.True(t, grTouched)
	require.Equal(t, byte(0), bridge.mem[0x0400])
}

func TestBasicPlotWritesLoresNibbles(t *testing.T) {
	bridge := newPokeRecorder()
	runBasicWithBridge(t, `
10 COLOR= 5
20 PLOT 3,0
30 PLOT 3,1
`, bridge)
	// Rows 0 and 1 share the byte at $0400+3: low nibble is the even row,
	// high nibble the odd one.
	require.Equal(t, byte(0x55), bridge.mem[0x0403])
}

func TestBasicPlotOutOfRangeFails(t *testing.T) {
	program, err := LoadProgramSource("10 PLOT 40,0\n")
	require.NoError(t, err)
	err = NewInterpreter(program, newCaptureIO(""), newPokeRecorder()).Run()
	be, ok := err.(*BasicError)
	require.True(t, ok)
	require.Equal(t, ErrIllegalQuantity, be.Code)
}

func TestBasicHplotSetsHiresPixelBit(t *testing.T) {
	bridge := newPokeRecorder()
	runBasicWithBridge(t, `
10 HCOLOR= 3
20 HPLOT 0,0
30 HPLOT TO 7,0
`, bridge)
	require.Equal(t, byte(0x7F), bridge.mem[0x2000], "pixels 0-6 all set by the line")
	require.Equal(t, byte(0x01), bridge.mem[0x2001], "pixel 7 lands in the next byte")
}

func TestBasicSleepUsesInjectedClock(t *testing.T) {
	program, err := LoadProgramSource("10 SLEEP 250\n")
	require.NoError(t, err)
	interp := NewInterpreter(program, newCaptureIO(""), nil)
	var slept []int
	interp.Sleep = func(ms int) { slept = append(slept, ms) }
	require.NoError(t, interp.Run())
	require.Equal(t, []int{250}, slept)
}

func TestBasicAmpersandInvokesHostHook(t *testing.T) {
	program, err := LoadProgramSource(`10 & 7, "GO"` + "\n")
	require.NoError(t, err)
	interp := NewInterpreter(program, newCaptureIO(""), nil)
	var got []Value
	interp.AmpersandHandler = func(args []Value) error {
		got = args
		return nil
	}
	require.NoError(t, interp.Run())
	require.Len(t, got, 2)
	require.Equal(t, 7.0, got[0].Num)
	require.Equal(t, "GO", got[1].Str)
}

func TestBasicAmpersandWithoutHookIsNoop(t *testing.T) {
	out := runBasic(t, "10 & 1\n20 PRINT \"OK\"\n")
	require.Equal(t, "OK\n", out)
}

func TestBasicHimemNarrowsFre(t *testing.T) {
	out := runBasic(t, `
10 HIMEM: 16384
20 PRINT FRE(0)
`)
	require.Equal(t, " 16384 \n", out)
}

func TestBasicPokeAndPeekRoundTripThroughBridge(t *testing.T) {
	bridge := newPokeRecorder()
	out := runBasicWithBridge(t, `
10 POKE 768, 123
20 PRINT PEEK(768)
`, bridge)
	require.Equal(t, " 123 \n", out)
}

func TestBasicCallReachesBridge(t *testing.T) {
	bridge := newPokeRecorder()
	runBasicWithBridge(t, "10 CALL 768\n", bridge)
	require.Equal(t, []uint16{768}, bridge.calls)
}

func TestBasicInputReentersOnBadNumericField(t *testing.T) {
	program, err := LoadProgramSource("10 INPUT A\n20 PRINT A\n")
	require.NoError(t, err)
	io := newCaptureIO("oops\n42\n")
	interp := NewInterpreter(program, io, nil)
	require.NoError(t, interp.Run())
	require.Contains(t, io.out.String(), "?REENTER")
	require.Contains(t, io.out.String(), " 42 \n")
}

func TestBasicGetReadsOneUnbufferedChar(t *testing.T) {
	program, err := LoadProgramSource("10 GET K$\n20 PRINT K$\n")
	require.NoError(t, err)
	io := newCaptureIO("x")
	interp := NewInterpreter(program, io, nil)
	require.NoError(t, interp.Run())
	require.Equal(t, "x\n", io.out.String())
}

func TestBasicRestoreWithLineNumber(t *testing.T) {
	out := runBasic(t, `
10 DATA 1
20 DATA 2
30 READ A: READ B
40 RESTORE 20
50 READ C
60 PRINT A;B;C
`)
	require.Equal(t, " 1  2  2 \n", out)
}

func TestBasicRndIsDeterministicPerSeed(t *testing.T) {
	src := `
10 X = RND(-3)
20 PRINT RND(1) = RND(0) + 0
`
	// Two runs with the same reseed produce identical streams.
	first := runBasic(t, src)
	second := runBasic(t, src)
	require.Equal(t, first, second)
}

func TestBasicForStepNegative(t *testing.T) {
	out := runBasic(t, `
10 S=0
20 FOR I=5 TO 1 STEP -2
30 S=S+I
40 NEXT
50 PRINT S
`)
	require.Equal(t, " 9 \n", out)
}

func TestBasicNestedForNextNamedPop(t *testing.T) {
	out := runBasic(t, `
10 C=0
20 FOR I=1 TO 2
30 FOR J=1 TO 3
40 C=C+1
50 NEXT J,I
60 PRINT C
`)
	require.Equal(t, " 6 \n", out)
}

func TestBasicPrintCommaZones(t *testing.T) {
	out := runBasic(t, `10 PRINT "A","B"` + "\n")
	require.Equal(t, "A               B\n", out)
}
