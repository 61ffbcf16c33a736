// Package machine implements the step loop: component H, the single
// orchestration procedure that ties the register file, ALU/control-flow
// dispatcher, interrupt controller, and timer together into one
// cycle-accurate step.
package machine

import (
	"github.com/sm83/gbcore/pkg/cpu"
	"github.com/sm83/gbcore/pkg/interrupt"
	"github.com/sm83/gbcore/pkg/mem"
	"github.com/sm83/gbcore/pkg/timer"
)

// Machine is the embedding surface a host (test harness, fuzzer, or CLI)
// drives one Step() at a time.
type Machine struct {
	Bus   *mem.Bus
	CPU   *cpu.CPU
	Timer *timer.Timer
}

// New returns a zero-initialized machine.
func New() *Machine {
	bus := mem.New()
	return &Machine{
		Bus:   bus,
		CPU:   cpu.New(bus),
		Timer: timer.New(),
	}
}

// LoadROM copies bytes into memory starting at address 0.
func (m *Machine) LoadROM(rom []byte) { m.Bus.LoadROM(rom) }

// ResetRegistersPostBoot applies the skip-boot-ROM register snapshot.
func (m *Machine) ResetRegistersPostBoot() { m.CPU.Reg.ResetPostBoot() }

// ReadByte and WriteByte expose the bus to host peripherals.
func (m *Machine) ReadByte(addr uint16) byte      { return m.Bus.ReadByte(addr) }
func (m *Machine) WriteByte(addr uint16, v byte)  { m.Bus.WriteByte(addr, v) }

// RequestInterrupt sets the given bit (0..4) in IF.
func (m *Machine) RequestInterrupt(bit uint) { m.Bus.RequestInterrupt(bit) }

// SetSerialSink installs the debug-serial-sink receiver (default: none,
// bytes are simply dropped).
func (m *Machine) SetSerialSink(sink mem.SerialSink) { m.Bus.Serial = sink }

// Step performs exactly one of interrupt dispatch, HALT wake/stay, STOP
// wake/stay, or instruction execution, in that precedence, and returns the
// T-cycles consumed.
func (m *Machine) Step() (int, error) {
	// A halted CPU is first woken by the HALT branch below; the dispatch
	// then happens on the following call.
	if m.CPU.IME && !m.CPU.Halted {
		if bit, ok := interrupt.Pending(m.Bus); ok {
			interrupt.Dispatch(m.CPU, m.Bus, bit)
			m.Timer.Tick(interrupt.DispatchCost, m.Bus)
			m.CPU.Reg.Cycles += interrupt.DispatchCost
			return interrupt.DispatchCost, nil
		}
	}

	if m.CPU.Halted {
		if _, ok := interrupt.Pending(m.Bus); ok {
			m.CPU.Halted = false
			if m.CPU.IME {
				// Dispatch happens on the next Step() call (precedence
				// branch 1); this call just clears the halt latch.
				return 0, nil
			}
			// IME is false: the HALT bug window. Per the core's open-
			// question ruling, the "fetch byte twice" quirk is not
			// modeled; fall through to normal execution below.
		} else {
			m.Timer.Tick(4, m.Bus)
			m.CPU.Reg.Cycles += 4
			return 4, nil
		}
	}

	if m.CPU.Stopped {
		p1 := m.Bus.ReadByte(mem.P1)
		if p1&0x0F != 0x0F {
			m.CPU.Stopped = false
		} else {
			return 0, nil
		}
	}

	pendingEI := m.CPU.ImeEnablePending
	cycles, err := m.CPU.Step()
	if err != nil {
		return 0, err
	}
	m.Timer.Tick(uint16(cycles), m.Bus)
	m.CPU.Reg.Cycles += uint64(cycles)
	if pendingEI {
		m.CPU.IME = true
		m.CPU.ImeEnablePending = false
	}
	return cycles, nil
}
