// debug_dump.go - structured state dumps for the monitor and bug reports
package main

import (
	"github.com/davecgh/go-spew/spew"
)

// MachineSnapshot is a flattened, dump-friendly view of a Machine's state;
// it deliberately omits the RAM/ROM byte arrays themselves, which dwarf
// everything else and are better inspected with the monitor's memory view.
type MachineSnapshot struct {
	Profile string
	CPU     CPUSnapshot
	Devices map[string][]SoftSwitchState
	Now     Cycle
}

// CPUSnapshot mirrors CPU's register file for dumping without exposing the
// live pointer fields.
type CPUSnapshot struct {
	A, X, Y, SP byte
	PC          uint16
	P           byte
	Halt        HaltState
}

// Snapshot captures m's current state.
func Snapshot(m *Machine) MachineSnapshot {
	devices := make(map[string][]SoftSwitchState, len(m.devices))
	for _, d := range m.devices {
		devices[d.Name()] = d.SoftSwitchStates()
	}
	return MachineSnapshot{
		Profile: m.Profile.String(),
		CPU: CPUSnapshot{
			A: m.CPU.A, X: m.CPU.X, Y: m.CPU.Y, SP: m.CPU.SP,
			PC: m.CPU.PC, P: m.CPU.P, Halt: m.CPU.Halt,
		},
		Devices: devices,
		Now:     m.Scheduler.Now(),
	}
}

var dumpConfig = spew.ConfigState{Indent: "  ", DisableMethods: true, SortKeys: true}

// Dump renders a machine snapshot the way a bug report or monitor "dump"
// command would.
func Dump(m *Machine) string {
	return dumpConfig.Sdump(Snapshot(m))
}
