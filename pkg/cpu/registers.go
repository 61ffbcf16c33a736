package cpu

// Flag bit positions within F. Only the upper nibble is meaningful; the
// lower nibble is permanently zero and is masked on every write that could
// set it.
const (
	FlagZ uint8 = 0x80 // Zero
	FlagN uint8 = 0x40 // Subtract
	FlagH uint8 = 0x20 // Half-carry
	FlagC uint8 = 0x10 // Carry

	flagMask uint8 = 0xF0
)

// Registers holds the eight 8-bit SM83 registers, the stack pointer, the
// program counter, and the running T-cycle accumulator.
//
// Expanded across the core's own history the way a register file grows in
// any hand-written interpreter:
//
//	base: A, F, B, C, D, E, H, L
//	+ SP, PC
//	+ Cycles, the free-running T-cycle counter since reset
type Registers struct {
	A, F, B, C, D, E, H, L uint8
	SP, PC                 uint16
	Cycles                 uint64
}

// ResetPostBoot applies the skip-boot-ROM register snapshot documented in the
// hardware boot sequence.
func (r *Registers) ResetPostBoot() {
	r.A, r.F = 0x01, 0xB0
	r.B, r.C = 0x00, 0x13
	r.D, r.E = 0x00, 0xD8
	r.H, r.L = 0x01, 0x4D
	r.SP = 0xFFFE
	r.PC = 0x0100
}

// AF, BC, DE, HL are the four named pair accessors; the first-listed
// register is always the high byte. SetF masks the low nibble so it stays
// permanently zero.
func (r *Registers) AF() uint16 { return uint16(r.A)<<8 | uint16(r.F) }
func (r *Registers) BC() uint16 { return uint16(r.B)<<8 | uint16(r.C) }
func (r *Registers) DE() uint16 { return uint16(r.D)<<8 | uint16(r.E) }
func (r *Registers) HL() uint16 { return uint16(r.H)<<8 | uint16(r.L) }

func (r *Registers) SetAF(v uint16) {
	r.A = uint8(v >> 8)
	r.F = uint8(v) & flagMask
}
func (r *Registers) SetBC(v uint16) { r.B = uint8(v >> 8); r.C = uint8(v) }
func (r *Registers) SetDE(v uint16) { r.D = uint8(v >> 8); r.E = uint8(v) }
func (r *Registers) SetHL(v uint16) { r.H = uint8(v >> 8); r.L = uint8(v) }

// SetF stores f, masking off the permanently-zero low nibble.
func (r *Registers) SetF(f uint8) { r.F = f & flagMask }

// GetFlag and SetFlag are the only supported way to read or write a single
// flag bit.
func (r *Registers) GetFlag(flag uint8) bool { return r.F&flag != 0 }

func (r *Registers) SetFlag(flag uint8, set bool) {
	if set {
		r.F |= flag
	} else {
		r.F &^= flag
	}
}
