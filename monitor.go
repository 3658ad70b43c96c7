// monitor.go - interactive debug monitor: a bubbletea TUI over a live Machine
package main

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// MonitorState tracks whether the monitor is driving the machine or paused
// waiting on a keypress.
type MonitorState int

const (
	MonitorRunning MonitorState = iota
	MonitorPaused
)

var (
	monitorHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	monitorCursorStyle = lipgloss.NewStyle().Background(lipgloss.Color("237"))
	monitorErrStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

const monitorMemoryRows = 8
const monitorBytesPerRow = 16

type monitorModel struct {
	machine *Machine
	bridge  *MachineBridge
	console BasicIO
	basic   *Interpreter

	state    MonitorState
	memBase  uint16
	lastErr  error
	quantum  Cycle
	output   []string
}

func newMonitorModel(m *Machine, bridge *MachineBridge, console BasicIO, basicPath string) (monitorModel, error) {
	mm := monitorModel{
		machine: m,
		bridge:  bridge,
		console: console,
		state:   MonitorPaused,
		quantum: 1000,
	}
	if basicPath != "" {
		data, err := os.ReadFile(basicPath)
		if err != nil {
			return mm, err
		}
		program, err := LoadProgramSource(string(data))
		if err != nil {
			return mm, err
		}
		mm.basic = NewInterpreter(program, console, bridge)
	}
	return mm, nil
}

func (m monitorModel) Init() tea.Cmd { return nil }

func (m monitorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ", "s":
		m.step()
	case "r":
		m.runToQuantum()
	case "b":
		if m.basic != nil {
			if err := m.basic.Run(); err != nil {
				m.lastErr = err
			}
		}
	case "d":
		m.output = strings.Split(strings.TrimRight(Dump(m.machine), "\n"), "\n")
	case "down":
		m.memBase += monitorBytesPerRow
	case "up":
		if m.memBase >= monitorBytesPerRow {
			m.memBase -= monitorBytesPerRow
		}
	}
	return m, nil
}

func (m *monitorModel) step() {
	ctx := &EventContext{Scheduler: m.machine.Scheduler, Bus: m.machine.Bus, Signals: m.machine.Signals, Now: m.machine.Scheduler.Now()}
	m.machine.CPU.Step(ctx)
}

func (m *monitorModel) runToQuantum() {
	m.machine.RunQuantum(m.quantum)
}

func (m monitorModel) View() string {
	cpu := m.machine.CPU
	regs := fmt.Sprintf("PC:%04X A:%02X X:%02X Y:%02X SP:%02X P:%02X  cy:%d  halt:%d",
		cpu.PC, cpu.A, cpu.X, cpu.Y, cpu.SP, cpu.P, m.machine.Scheduler.Now(), cpu.Halt)

	disasm, _ := DisassembleOne(m.machine.Bus, cpu.PC)

	var mem strings.Builder
	for row := 0; row < monitorMemoryRows; row++ {
		addr := m.memBase + uint16(row*monitorBytesPerRow)
		fmt.Fprintf(&mem, "%04X: ", addr)
		for col := 0; col < monitorBytesPerRow; col++ {
			v, _ := m.machine.Bus.TryRead8(BusAccess{
				Address: Address(addr) + Address(col), Width: Width8,
				Intent: DebugRead, Flags: FlagNoSideEffects,
			})
			cell := fmt.Sprintf("%02X ", v)
			if addr+uint16(col) == cpu.PC {
				cell = monitorCursorStyle.Render(cell)
			}
			mem.WriteString(cell)
		}
		mem.WriteString("\n")
	}

	errLine := ""
	if m.lastErr != nil {
		errLine = monitorErrStyle.Render(m.lastErr.Error())
	}

	extra := ""
	if len(m.output) > 0 {
		tail := m.output
		if len(tail) > monitorMemoryRows {
			tail = tail[:monitorMemoryRows]
		}
		extra = strings.Join(tail, "\n")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		monitorHeaderStyle.Render("apple2basic monitor"),
		regs,
		disasm,
		"",
		mem.String(),
		extra,
		errLine,
		"space/s: step  r: run quantum  b: run BASIC program  d: dump state  up/down: scroll memory  q: quit",
	)
}

// RunMonitor launches the interactive TUI over m. If basicPath is non-empty
// the BASIC program is loaded (but not auto-run; press 'b' to execute it).
func RunMonitor(m *Machine, bridge *MachineBridge, console BasicIO, basicPath string) error {
	mm, err := newMonitorModel(m, bridge, console, basicPath)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(mm).Run()
	return err
}
