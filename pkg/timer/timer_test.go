package timer

import (
	"testing"

	"github.com/sm83/gbcore/pkg/mem"
)

func TestDivIncrementsEvery256Cycles(t *testing.T) {
	bus := mem.New()
	tm := New()
	tm.Tick(255, bus)
	if got := bus.ReadByte(mem.DIV); got != 0 {
		t.Fatalf("DIV = %#02x, want 0x00 before 256 cycles", got)
	}
	tm.Tick(1, bus)
	if got := bus.ReadByte(mem.DIV); got != 1 {
		t.Fatalf("DIV = %#02x, want 0x01 after 256 cycles", got)
	}
}

func TestTimaDisabledWhenTACBit2Clear(t *testing.T) {
	bus := mem.New()
	bus.WriteByte(mem.TAC, 0x00)
	tm := New()
	tm.Tick(2000, bus)
	if got := bus.ReadByte(mem.TIMA); got != 0 {
		t.Fatalf("TIMA = %#02x, want 0x00 (timer disabled)", got)
	}
}

func TestTimaIncrementsAtSelectedThreshold(t *testing.T) {
	bus := mem.New()
	bus.WriteByte(mem.TAC, 0x05) // enabled, threshold 16
	tm := New()
	tm.Tick(16, bus)
	if got := bus.ReadByte(mem.TIMA); got != 1 {
		t.Fatalf("TIMA = %#02x, want 0x01", got)
	}
}

func TestTimaOverflowReloadsFromTMAAndRequestsInterrupt(t *testing.T) {
	bus := mem.New()
	bus.WriteByte(mem.TAC, 0x05) // enabled, threshold 16
	bus.WriteByte(mem.TMA, 0xAB)
	bus.WriteByte(mem.TIMA, 0xFF)
	tm := New()
	tm.Tick(16, bus)
	if got := bus.ReadByte(mem.TIMA); got != 0xAB {
		t.Fatalf("TIMA after overflow = %#02x, want 0xAB (reloaded from TMA)", got)
	}
	if got := bus.ReadByte(mem.IF); got&0x04 == 0 {
		t.Fatalf("IF = %#02x, want Timer bit set", got)
	}
}

func TestDivAndTimaAreIndependent(t *testing.T) {
	bus := mem.New()
	bus.WriteByte(mem.TAC, 0x04) // enabled, threshold 1024
	tm := New()
	tm.Tick(256, bus)
	if got := bus.ReadByte(mem.DIV); got != 1 {
		t.Fatalf("DIV = %#02x, want 0x01", got)
	}
	if got := bus.ReadByte(mem.TIMA); got != 0 {
		t.Fatalf("TIMA = %#02x, want 0x00 (threshold not reached)", got)
	}
}
