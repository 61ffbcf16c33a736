// Package timer implements the DIV/TIMA dual-prescaler peripheral:
// component G of the core.
package timer

import "github.com/sm83/gbcore/pkg/mem"

var thresholds = [4]uint16{1024, 16, 64, 256}

// Timer holds the two prescaler counters; DIV and TIMA themselves live in
// the bus's hardware registers, mutated through it exactly the way the
// register file mutates A/B/C/etc.
type Timer struct {
	divCounter  uint16
	timaCounter uint16
}

// New returns a zeroed Timer. DIV/TIMA/TMA/TAC are left at whatever the
// bus already holds; callers that want the documented post-reset state
// should zero those bytes themselves via bus.WriteByte.
func New() *Timer {
	return &Timer{}
}

// Tick advances DIV unconditionally and TIMA when TAC bit 2 is set, by
// cycles T-states, raising the Timer bit in IF on TIMA overflow.
func (t *Timer) Tick(cycles uint16, bus *mem.Bus) {
	t.divCounter += cycles
	for t.divCounter >= 256 {
		t.divCounter -= 256
		bus.WriteDivRaw(bus.ReadDivRaw() + 1)
	}

	tac := bus.ReadByte(mem.TAC)
	if tac&0x04 == 0 {
		return
	}
	threshold := thresholds[tac&0x03]

	t.timaCounter += cycles
	for t.timaCounter >= threshold {
		t.timaCounter -= threshold
		tima := bus.ReadByte(mem.TIMA) + 1
		if tima == 0 {
			bus.WriteByte(mem.TIMA, bus.ReadByte(mem.TMA))
			bus.RequestInterrupt(2)
		} else {
			bus.WriteByte(mem.TIMA, tima)
		}
	}
}
