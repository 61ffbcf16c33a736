package cpu

import (
	"testing"

	"github.com/sm83/gbcore/pkg/mem"
)

func newTestCPU() *CPU {
	bus := mem.New()
	return New(bus)
}

func TestStepNOP(t *testing.T) {
	c := newTestCPU()
	c.Bus.WriteByte(0x0100, 0x00)
	c.Reg.PC = 0x0100
	cycles, err := c.Step()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cycles != 4 {
		t.Fatalf("cycles = %d, want 4", cycles)
	}
	if c.Reg.PC != 0x0101 {
		t.Fatalf("PC = %#04x, want 0x0101", c.Reg.PC)
	}
}

func TestStepIllegalOpcode(t *testing.T) {
	c := newTestCPU()
	c.Bus.WriteByte(0x0100, 0xD3)
	c.Reg.PC = 0x0100
	_, err := c.Step()
	if err == nil {
		t.Fatal("expected IllegalInstructionError")
	}
	if _, ok := err.(*IllegalInstructionError); !ok {
		t.Fatalf("err = %T, want *IllegalInstructionError", err)
	}
}

func TestLdRR(t *testing.T) {
	c := newTestCPU()
	c.Reg.PC = 0x0100
	c.Bus.WriteByte(0x0100, 0x41) // LD B,C
	c.Reg.C = 0x5A
	if _, err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if c.Reg.B != 0x5A {
		t.Fatalf("B = %#02x, want 0x5A", c.Reg.B)
	}
}

func TestLdImmAndIncDec(t *testing.T) {
	c := newTestCPU()
	c.Reg.PC = 0x0100
	c.Bus.WriteByte(0x0100, 0x06) // LD B,n
	c.Bus.WriteByte(0x0101, 0x0F)
	c.Bus.WriteByte(0x0102, 0x04) // INC B
	c.Bus.WriteByte(0x0103, 0x05) // DEC B
	if _, err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if c.Reg.B != 0x0F {
		t.Fatalf("B after LD = %#02x, want 0x0F", c.Reg.B)
	}
	if _, err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if c.Reg.B != 0x10 || !c.Reg.GetFlag(FlagH) {
		t.Fatalf("B after INC = %#02x flagH=%v, want 0x10 true", c.Reg.B, c.Reg.GetFlag(FlagH))
	}
	if _, err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if c.Reg.B != 0x0F {
		t.Fatalf("B after DEC = %#02x, want 0x0F", c.Reg.B)
	}
}

func TestPushPopOrdering(t *testing.T) {
	c := newTestCPU()
	c.Reg.PC = 0x0100
	c.Reg.SP = 0xFFFE
	c.Reg.SetBC(0x1234)
	c.Bus.WriteByte(0x0100, 0xC5) // PUSH BC
	c.Bus.WriteByte(0x0101, 0xD1) // POP DE
	if _, err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if c.Reg.SP != 0xFFFC {
		t.Fatalf("SP after PUSH = %#04x, want 0xFFFC", c.Reg.SP)
	}
	if _, err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if c.Reg.DE() != 0x1234 {
		t.Fatalf("DE after POP = %#04x, want 0x1234", c.Reg.DE())
	}
	if c.Reg.SP != 0xFFFE {
		t.Fatalf("SP after POP = %#04x, want 0xFFFE", c.Reg.SP)
	}
}

func TestCallAndRet(t *testing.T) {
	c := newTestCPU()
	c.Reg.PC = 0x0100
	c.Reg.SP = 0xFFFE
	c.Bus.WriteByte(0x0100, 0xCD) // CALL 0x0200
	c.Bus.WriteWord(0x0101, 0x0200)
	c.Bus.WriteByte(0x0200, 0xC9) // RET
	if _, err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if c.Reg.PC != 0x0200 {
		t.Fatalf("PC after CALL = %#04x, want 0x0200", c.Reg.PC)
	}
	if _, err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if c.Reg.PC != 0x0103 {
		t.Fatalf("PC after RET = %#04x, want 0x0103", c.Reg.PC)
	}
}

func TestJrConditional(t *testing.T) {
	c := newTestCPU()
	c.Reg.PC = 0x0100
	c.Reg.SetFlag(FlagZ, false)
	c.Bus.WriteByte(0x0100, 0x28) // JR Z,e8
	c.Bus.WriteByte(0x0101, 0x05)
	cycles, err := c.Step()
	if err != nil {
		t.Fatal(err)
	}
	if cycles != 8 {
		t.Fatalf("not-taken cost = %d, want 8", cycles)
	}
	if c.Reg.PC != 0x0102 {
		t.Fatalf("PC after not-taken JR = %#04x, want 0x0102", c.Reg.PC)
	}
}

func TestCBSetResBit(t *testing.T) {
	c := newTestCPU()
	c.Reg.PC = 0x0100
	c.Bus.WriteByte(0x0100, 0xCB)
	c.Bus.WriteByte(0x0101, 0xC0) // SET 0,B
	if _, err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if c.Reg.B != 0x01 {
		t.Fatalf("B after SET 0,B = %#02x, want 0x01", c.Reg.B)
	}

	c.Reg.PC = 0x0200
	c.Bus.WriteByte(0x0200, 0xCB)
	c.Bus.WriteByte(0x0201, 0x40) // BIT 0,B (B is 0x01, bit set)
	if _, err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if c.Reg.GetFlag(FlagZ) {
		t.Fatal("BIT 0,B should clear Z when bit 0 is set")
	}
}

func TestStopRejectsNonZeroOperand(t *testing.T) {
	c := newTestCPU()
	c.Reg.PC = 0x0100
	c.Bus.WriteByte(0x0100, 0x10)
	c.Bus.WriteByte(0x0101, 0x01)
	_, err := c.Step()
	if err == nil {
		t.Fatal("expected UnexpectedStopOperandError")
	}
	if _, ok := err.(*UnexpectedStopOperandError); !ok {
		t.Fatalf("err = %T, want *UnexpectedStopOperandError", err)
	}
}

func TestEIDelaysIMEByOneInstruction(t *testing.T) {
	c := newTestCPU()
	c.Reg.PC = 0x0100
	c.Bus.WriteByte(0x0100, 0xFB) // EI
	c.Bus.WriteByte(0x0101, 0x00) // NOP
	if _, err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if c.IME {
		t.Fatal("IME should not be set immediately after EI")
	}
	if !c.ImeEnablePending {
		t.Fatal("ImeEnablePending should be set after EI")
	}
}

func TestAddHLRRPreservesZ(t *testing.T) {
	c := newTestCPU()
	c.Reg.PC = 0x0100
	c.Reg.SetFlag(FlagZ, true)
	c.Reg.SetHL(0x0001)
	c.Reg.SetBC(0x0001)
	c.Bus.WriteByte(0x0100, 0x09) // ADD HL,BC
	if _, err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if !c.Reg.GetFlag(FlagZ) {
		t.Fatal("ADD HL,rr must not touch Z")
	}
	if c.Reg.HL() != 0x0002 {
		t.Fatalf("HL = %#04x, want 0x0002", c.Reg.HL())
	}
}
