package cpu

import "testing"

func TestAdd8Basic(t *testing.T) {
	result, f := add8(0x3A, 0xC6, false)
	if result != 0x00 {
		t.Fatalf("result = %#02x, want 0x00", result)
	}
	if !f.z || f.n || !f.h || !f.c {
		t.Fatalf("flags = %+v, want z=1 n=0 h=1 c=1", f)
	}
}

func TestAdd8WithCarryIn(t *testing.T) {
	result, f := add8(0x0F, 0x00, true)
	if result != 0x10 {
		t.Fatalf("result = %#02x, want 0x10", result)
	}
	if !f.h {
		t.Fatal("expected half-carry from the incoming carry alone")
	}
}

func TestSub8Borrow(t *testing.T) {
	result, f := sub8(0x00, 0x01, false)
	if result != 0xFF {
		t.Fatalf("result = %#02x, want 0xFF", result)
	}
	if !f.n || !f.h || !f.c {
		t.Fatalf("flags = %+v, want n=1 h=1 c=1", f)
	}
}

func TestIncDecHalfCarry(t *testing.T) {
	if _, f := inc8(0x0F); !f.h {
		t.Fatal("INC from 0x0F should set half-carry")
	}
	if _, f := inc8(0x01); f.h {
		t.Fatal("INC from 0x01 should not set half-carry")
	}
	if _, f := dec8(0x00); !f.h {
		t.Fatal("DEC from 0x00 should set half-carry (low nibble already zero)")
	}
	if _, f := dec8(0x10); !f.h {
		t.Fatal("DEC from 0x10 should set half-carry")
	}
	if _, f := dec8(0x02); f.h {
		t.Fatal("DEC from 0x02 should not set half-carry")
	}
}

func TestAddHL16CarryFromBit11AndBit15(t *testing.T) {
	result, f := addHL16(0x0FFF, 0x0001)
	if result != 0x1000 || !f.h || f.c {
		t.Fatalf("result=%#04x flags=%+v, want 0x1000 h=1 c=0", result, f)
	}
	result, f = addHL16(0xFFFF, 0x0001)
	if result != 0x0000 || !f.c {
		t.Fatalf("result=%#04x flags=%+v, want 0x0000 c=1", result, f)
	}
}

func TestDaaAfterAdd(t *testing.T) {
	// 0x45 + 0x38 = 0x7D in binary, should adjust to BCD 0x83.
	sum, f := add8(0x45, 0x38, false)
	result, df := daa(sum, f.n, f.h, f.c)
	if result != 0x83 {
		t.Fatalf("daa result = %#02x, want 0x83", result)
	}
	if df.c {
		t.Fatal("expected no carry out")
	}
}

func TestDaaAfterSub(t *testing.T) {
	diff, f := sub8(0x50, 0x29, false)
	result, _ := daa(diff, f.n, f.h, f.c)
	if result != 0x21 {
		t.Fatalf("daa result = %#02x, want 0x21", result)
	}
}

func TestRotates(t *testing.T) {
	if r, f := rlc(0x80); r != 0x01 || !f.c {
		t.Fatalf("rlc(0x80) = %#02x carry=%v, want 0x01 carry=true", r, f.c)
	}
	if r, f := rrc(0x01); r != 0x80 || !f.c {
		t.Fatalf("rrc(0x01) = %#02x carry=%v, want 0x80 carry=true", r, f.c)
	}
	if r, f := rl(0x80, false); r != 0x00 || !f.c {
		t.Fatalf("rl(0x80, false) = %#02x carry=%v, want 0x00 carry=true", r, f.c)
	}
	if r, _ := rl(0x00, true); r != 0x01 {
		t.Fatalf("rl(0x00, true) = %#02x, want 0x01", r)
	}
}

func TestShifts(t *testing.T) {
	if r, f := sla(0x80); r != 0x00 || !f.c {
		t.Fatalf("sla(0x80) = %#02x carry=%v, want 0x00 carry=true", r, f.c)
	}
	if r, _ := sra(0x81); r != 0xC0 {
		t.Fatalf("sra(0x81) = %#02x, want 0xC0 (sign-extended)", r)
	}
	if r, f := srl(0x01); r != 0x00 || !f.c {
		t.Fatalf("srl(0x01) = %#02x carry=%v, want 0x00 carry=true", r, f.c)
	}
	if r, _ := swap(0xAB); r != 0xBA {
		t.Fatalf("swap(0xAB) = %#02x, want 0xBA", r)
	}
}

func TestBitResSet(t *testing.T) {
	if z, h := bitTest(3, 0x08); z || !h {
		t.Fatalf("bitTest(3, 0x08) = z=%v h=%v, want z=false h=true", z, h)
	}
	if z, _ := bitTest(3, 0x00); !z {
		t.Fatal("bitTest(3, 0x00) should report zero")
	}
	if r := resBit(3, 0xFF); r != 0xF7 {
		t.Fatalf("resBit(3, 0xFF) = %#02x, want 0xF7", r)
	}
	if r := setBit(3, 0x00); r != 0x08 {
		t.Fatalf("setBit(3, 0x00) = %#02x, want 0x08", r)
	}
}
