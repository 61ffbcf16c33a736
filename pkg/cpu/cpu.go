// Package cpu implements the Sharp SM83 register file, ALU, bit
// operations, control-flow operations, and the opcode decoder/dispatcher
// (components B through E of the core).
package cpu

import "github.com/sm83/gbcore/pkg/mem"

// CPU is one SM83 core: the register file plus the handful of latches
// (IME, the delayed-enable latch, HALT/STOP) that the decoder and the
// step loop both need to see.
type CPU struct {
	Reg Registers
	Bus *mem.Bus

	IME              bool
	ImeEnablePending bool
	Halted           bool
	Stopped          bool
}

// New returns a zero-initialized CPU over the given bus.
func New(bus *mem.Bus) *CPU {
	return &CPU{Bus: bus}
}

// opFunc is one dispatch-table entry: it has already been selected by
// opcode, fetches any further operands itself, performs the operation, and
// returns the T-cycle cost (or an error for the illegal-opcode and
// STOP-operand cases).
type opFunc func(c *CPU) (int, error)

func (c *CPU) fetch8() uint8 {
	v := c.Bus.ReadByte(c.Reg.PC)
	c.Reg.PC++
	return v
}

func (c *CPU) fetch16() uint16 {
	v := c.Bus.ReadWord(c.Reg.PC)
	c.Reg.PC += 2
	return v
}

func (c *CPU) push16(v uint16) {
	c.Reg.SP--
	c.Bus.WriteByte(c.Reg.SP, uint8(v>>8))
	c.Reg.SP--
	c.Bus.WriteByte(c.Reg.SP, uint8(v))
}

func (c *CPU) pop16() uint16 {
	lo := c.Bus.ReadByte(c.Reg.SP)
	c.Reg.SP++
	hi := c.Bus.ReadByte(c.Reg.SP)
	c.Reg.SP++
	return uint16(hi)<<8 | uint16(lo)
}

// readOperand8/writeOperand8 fetch or store one of the eight CB-style
// operand slots {B,C,D,E,H,L,(HL),A}, the ordering both the base LD/ALU
// blocks and the CB table share.
func (c *CPU) readOperand8(idx uint) uint8 {
	switch idx {
	case 0:
		return c.Reg.B
	case 1:
		return c.Reg.C
	case 2:
		return c.Reg.D
	case 3:
		return c.Reg.E
	case 4:
		return c.Reg.H
	case 5:
		return c.Reg.L
	case 6:
		return c.Bus.ReadByte(c.Reg.HL())
	default:
		return c.Reg.A
	}
}

func (c *CPU) writeOperand8(idx uint, v uint8) {
	switch idx {
	case 0:
		c.Reg.B = v
	case 1:
		c.Reg.C = v
	case 2:
		c.Reg.D = v
	case 3:
		c.Reg.E = v
	case 4:
		c.Reg.H = v
	case 5:
		c.Reg.L = v
	case 6:
		c.Bus.WriteByte(c.Reg.HL(), v)
	default:
		c.Reg.A = v
	}
}

// readPair16/writePair16 select one of the four 16-bit groups in
// register-pair-block order {BC,DE,HL,SP}.
func (c *CPU) readPair16(idx uint) uint16 {
	switch idx {
	case 0:
		return c.Reg.BC()
	case 1:
		return c.Reg.DE()
	case 2:
		return c.Reg.HL()
	default:
		return c.Reg.SP
	}
}

func (c *CPU) writePair16(idx uint, v uint16) {
	switch idx {
	case 0:
		c.Reg.SetBC(v)
	case 1:
		c.Reg.SetDE(v)
	case 2:
		c.Reg.SetHL(v)
	default:
		c.Reg.SP = v
	}
}

// readPushPop16/writePushPop16 select one of PUSH/POP's four pairs in
// their own order {BC,DE,HL,AF}.
func (c *CPU) readPushPop16(idx uint) uint16 {
	if idx == 3 {
		return c.Reg.AF()
	}
	return c.readPair16(idx)
}

func (c *CPU) writePushPop16(idx uint, v uint16) {
	if idx == 3 {
		c.Reg.SetAF(v)
		return
	}
	c.writePair16(idx, v)
}

// checkCond evaluates one of the four branch conditions {NZ,Z,NC,C} used
// by the JR/JP/CALL/RET conditional blocks.
func (c *CPU) checkCond(idx uint) bool {
	switch idx {
	case 0:
		return !c.Reg.GetFlag(FlagZ)
	case 1:
		return c.Reg.GetFlag(FlagZ)
	case 2:
		return !c.Reg.GetFlag(FlagC)
	default:
		return c.Reg.GetFlag(FlagC)
	}
}

// PushWord and PopWord expose the stack push/pop primitives to the
// interrupt controller, which must push PC itself as part of vector
// dispatch.
func (c *CPU) PushWord(v uint16) { c.push16(v) }
func (c *CPU) PopWord() uint16   { return c.pop16() }

// Step fetches and executes exactly one instruction (the E component's
// contract): advance PC, perform the operation, and return the T-cycle
// cost. HALT/STOP wake logic and interrupt dispatch are the step loop's
// job (pkg/machine), not this function's.
func (c *CPU) Step() (int, error) {
	pc := c.Reg.PC
	op := c.fetch8()
	fn := baseOps[op]
	if fn == nil {
		return 0, &IllegalInstructionError{Opcode: op, PC: pc}
	}
	return fn(c)
}
