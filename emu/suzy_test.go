package emu

import "testing"

func TestSuzy_Multiply(t *testing.T) {
	s := newSuzy()
	s.write(0xFC52, 0x03) // D
	s.write(0xFC53, 0x00) // C
	s.write(0xFC54, 0x02) // B
	s.write(0xFC55, 0x01) // A, starts the multiply

	got := uint32(s.read(0xFC63))<<24 | uint32(s.read(0xFC62))<<16 |
		uint32(s.read(0xFC61))<<8 | uint32(s.read(0xFC60))
	if got != 0x0102*0x0003 {
		t.Errorf("EFGH = %08X, want %08X", got, 0x0102*0x0003)
	}
}

func TestSuzy_LowByteWriteClearsHigh(t *testing.T) {
	s := newSuzy()
	s.write(0xFC53, 0x55)
	s.write(0xFC52, 0x01)
	if s.read(0xFC53) != 0 {
		t.Error("writing MATHD should clear MATHC")
	}
}

func TestSuzy_SignedMultiply(t *testing.T) {
	s := newSuzy()
	s.write(0xFC92, sprSysSigned)
	s.write(0xFC52, 0x02)
	s.write(0xFC54, 0xFF)
	s.write(0xFC55, 0xFF)
	if be32(s.efgh) != 0xFFFFFFFE {
		t.Errorf("EFGH = %08X, want FFFFFFFE", be32(s.efgh))
	}
}

func TestSuzy_Accumulate(t *testing.T) {
	s := newSuzy()
	s.write(0xFC92, sprSysAccumulate)
	s.write(0xFC52, 0x10)
	s.write(0xFC54, 0x10)
	s.write(0xFC55, 0x00)
	s.write(0xFC55, 0x00)
	if be32(s.jklm) != 0x200 {
		t.Errorf("JKLM = %08X, want 00000200", be32(s.jklm))
	}
}

func TestSuzy_Divide(t *testing.T) {
	s := newSuzy()
	s.write(0xFC60, 100) // H
	s.write(0xFC61, 0)   // G
	s.write(0xFC62, 0)   // F
	s.write(0xFC56, 7)   // P
	s.write(0xFC57, 0)   // N
	s.write(0xFC63, 0)   // E, starts the divide

	if v := s.read(0xFC52); v != 14 {
		t.Errorf("quotient D = %d, want 14", v)
	}
	if v := s.read(0xFC6C); v != 2 {
		t.Errorf("remainder M = %d, want 2", v)
	}
}

func TestSuzy_DivideByZero(t *testing.T) {
	s := newSuzy()
	s.write(0xFC60, 5)
	s.write(0xFC63, 0)
	if be32(s.abcd) != 0xFFFFFFFF {
		t.Errorf("ABCD = %08X, want FFFFFFFF", be32(s.abcd))
	}
	if s.read(0xFC92)&sprSysMathWarn == 0 {
		t.Error("math warning should be set")
	}
}

func TestSuzy_NoCart(t *testing.T) {
	s := newSuzy()
	if v := s.read(0xFCB2); v != 0xFF {
		t.Errorf("RCART0 = %02X, want FF", v)
	}
}
