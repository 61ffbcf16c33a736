// Package interrupt implements the SM83 interrupt controller: priority
// selection among IE&IF and vector dispatch. IME and the delayed-enable
// latch live on cpu.CPU.
package interrupt

import (
	"github.com/sm83/gbcore/pkg/cpu"
	"github.com/sm83/gbcore/pkg/mem"
)

// Vectors, indexed by bit position, in priority order (lowest bit wins).
var Vectors = [5]uint16{0x0040, 0x0048, 0x0050, 0x0058, 0x0060}

const (
	BitVBlank  = 0
	BitLCDStat = 1
	BitTimer   = 2
	BitSerial  = 3
	BitJoypad  = 4
)

// DispatchCost is the fixed T-cycle cost of vector dispatch.
const DispatchCost = 20

// Pending reports the lowest-numbered set bit of IE&IF, ignoring IME —
// the step loop consults IME itself before deciding whether to dispatch,
// since that same pending check also drives HALT wake.
func Pending(bus *mem.Bus) (bit uint, ok bool) {
	active := bus.ReadByte(mem.IE) & bus.ReadByte(mem.IF)
	if active == 0 {
		return 0, false
	}
	for b := uint(0); b < 5; b++ {
		if active&(1<<b) != 0 {
			return b, true
		}
	}
	return 0, false
}

// Dispatch clears the selected bit in IF, clears IME, pushes PC, and jumps
// to the bit's vector. The caller (pkg/machine) is responsible for having
// already verified IME was true and a bit is pending.
func Dispatch(c *cpu.CPU, bus *mem.Bus, bit uint) {
	bus.WriteByte(mem.IF, bus.ReadByte(mem.IF)&^(1<<bit))
	c.IME = false
	c.PushWord(c.Reg.PC)
	c.Reg.PC = Vectors[bit]
}
