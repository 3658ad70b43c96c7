// main.go - command-line entry point: boots a machine, loads a binary image
// or BASIC program, and runs it to completion or a monitor breakpoint.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"time"
)

const (
	exitSuccess            = 0
	exitBasicRuntimeError  = 1
	exitLexParseError      = 2
	exitMachineConfigError = 3
	exitInternalError      = 64
)

func usage() {
	fmt.Fprintf(os.Stderr, "apple2basic - a 6502-family Apple II-class emulator and BASIC interpreter\n\n")
	fmt.Fprintf(os.Stderr, "Usage:\n  apple2basic [flags]\n\n")
	fmt.Fprintf(os.Stderr, "Flags:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nExamples:\n")
	fmt.Fprintf(os.Stderr, "  apple2basic -basic games/hello.bas\n")
	fmt.Fprintf(os.Stderr, "  apple2basic -profile ii+ -load demo.bin -trace\n")
	fmt.Fprintf(os.Stderr, "  apple2basic -monitor -basic games/hello.bas\n")
	fmt.Fprintf(os.Stderr, "  apple2basic -load demo.bin -interactive\n")
}

func main() {
	os.Exit(run())
}

func run() int {
	flag.Usage = usage

	profileFlag := flag.String("profile", "iie", "machine profile: iie or ii+")
	loadFlag := flag.String("load", "", "path to a raw binary image to load into RAM")
	loadAddrFlag := flag.Uint("load-addr", 0x0800, "load address for -load (ignored for -basic)")
	basicFlag := flag.String("basic", "", "path to a BASIC program to run")
	romFlag := flag.String("rom", "", "path to a system ROM image (omit to run with monitor trap shims)")
	charROMFlag := flag.String("charrom", "", "path to a character ROM PNG glyph sheet")
	traceFlag := flag.Bool("trace", false, "record an instruction trace and print it on exit")
	traceDepthFlag := flag.Int("trace-depth", 256, "number of trace entries to retain")
	monitorFlag := flag.Bool("monitor", false, "launch the interactive debug monitor instead of running to completion")
	quantumFlag := flag.Uint64("quantum", 200000, "total cycles to run a loaded binary image (wall-clock paced at ~1 MHz with -interactive)")
	interactiveFlag := flag.Bool("interactive", false, "read raw keystrokes from stdin into the emulated keyboard while -load runs")

	flag.Parse()

	profile, ok := ParseMachineProfile(*profileFlag)
	if !ok {
		fmt.Fprintf(os.Stderr, "error: unknown -profile %q (want iie or ii+)\n", *profileFlag)
		return exitMachineConfigError
	}

	if *loadFlag == "" && *basicFlag == "" && !*monitorFlag {
		usage()
		return exitMachineConfigError
	}

	var romImage []byte
	if *romFlag != "" {
		data, err := os.ReadFile(*romFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return exitMachineConfigError
		}
		romImage = data
	}

	m := NewMachine(profile, romImage)

	if *charROMFlag != "" {
		png, err := os.ReadFile(*charROMFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return exitMachineConfigError
		}
		decoded, err := DecodeCharacterROMSheet(png)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: decoding character ROM: %v\n", err)
			return exitMachineConfigError
		}
		if err := m.LoadCharacterROM(decoded); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return exitMachineConfigError
		}
	}

	var recorder *TraceRecorder
	if *traceFlag {
		recorder = NewTraceRecorder(*traceDepthFlag)
		m.CPU.TraceListener = recorder.Listener
	}

	console := NewConsoleIO(os.Stdout, bufio.NewReader(os.Stdin))
	bridge := NewMachineBridge(m, console)

	if *monitorFlag {
		if err := RunMonitor(m, bridge, console, *basicFlag); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return exitInternalError
		}
		return exitSuccess
	}

	if *basicFlag != "" {
		code := runBasicFile(*basicFlag, bridge, console)
		if recorder != nil {
			printTrace(recorder)
		}
		return code
	}

	data, err := os.ReadFile(*loadFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return exitMachineConfigError
	}
	loader := NewProgramLoader(uint16(*loadAddrFlag), 0)
	if err := loader.Load(m, data); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return exitMachineConfigError
	}

	if *interactiveFlag {
		queue := NewInjectionQueue()
		host := NewKeyboardHost(m.Keyboard, queue)
		host.Start()
		defer host.Stop()

		// The core pump owns the machine while it runs; pace the session
		// in wall-clock terms (one cycle ≈ 1µs at ~1.02 MHz) and stop the
		// pump before touching machine state again.
		pump := NewCorePump(m, queue, Cycle(10000))
		pump.Start()
		time.Sleep(time.Duration(*quantumFlag) * time.Microsecond)
		pump.Stop()
	} else {
		m.RunQuantum(Cycle(*quantumFlag))
	}
	if recorder != nil {
		printTrace(recorder)
	}
	return exitSuccess
}

// runBasicFile loads, parses, and runs a BASIC program, translating
// lexer/parser and interpreter failures into the exit codes a caller
// scripting this tool would check for.
func runBasicFile(path string, bridge *MachineBridge, console BasicIO) int {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return exitMachineConfigError
	}

	program, err := LoadProgramSource(string(src))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return exitLexParseError
	}

	interp := NewInterpreter(program, console, bridge)
	if err := interp.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return exitBasicRuntimeError
	}
	return exitSuccess
}

func printTrace(r *TraceRecorder) {
	fmt.Fprintf(os.Stderr, "\n-- trace (most recent %d instructions) --\n", len(r.Recent()))
	for _, e := range r.Recent() {
		fmt.Fprintln(os.Stderr, FormatEntry(e))
	}
}
