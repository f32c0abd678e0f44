package emu

// Joystick bits as read from JOYSTICK ($FCB0).
const (
	JoyUp       uint8 = 0x80
	JoyDown     uint8 = 0x40
	JoyLeft     uint8 = 0x20
	JoyRight    uint8 = 0x10
	JoyOption1  uint8 = 0x08
	JoyOption2  uint8 = 0x04
	JoyInside   uint8 = 0x02 // B
	JoyOutside  uint8 = 0x01 // A
	SwitchPause uint8 = 0x01
)

// Suzy register offsets from $FC00.
const (
	regMathD    = 0x52
	regMathC    = 0x53
	regMathB    = 0x54
	regMathA    = 0x55
	regMathP    = 0x56
	regMathN    = 0x57
	regMathH    = 0x60
	regMathG    = 0x61
	regMathF    = 0x62
	regMathE    = 0x63
	regMathM    = 0x6C
	regMathL    = 0x6D
	regMathK    = 0x6E
	regMathJ    = 0x6F
	regSprGo    = 0x91
	regSprSys   = 0x92
	regSuzyHRev = 0x88
	regJoystick = 0xB0
	regSwitches = 0xB1
	regRCart0   = 0xB2
	regRCart1   = 0xB3
)

const (
	sprSysSigned     = 0x80
	sprSysAccumulate = 0x40
	sprSysMathWarn   = 0x40 // read side: accumulator overflowed
)

// Suzy models the parts of the Lynx sprite and math chip that games
// poll: the input ports, the cartridge data ports and the hardware
// multiplier/divider. The sprite engine is not drawn; a sprite start
// completes immediately.
type Suzy struct {
	cart *Cart

	joystick uint8
	switches uint8

	// Math registers, named after their hardware letters.
	abcd     [4]uint8 // A, B, C, D
	efgh     [4]uint8 // E, F, G, H
	jklm     [4]uint8 // J, K, L, M
	np       [2]uint8 // N, P
	sprSys   uint8
	mathWarn bool

	// spriteDone is set when a sprite start completes and consumed by the
	// next CPU sleep request.
	spriteDone bool
	regs       [256]uint8
}

func newSuzy() *Suzy {
	return &Suzy{}
}

func (s *Suzy) reset() {
	cart := s.cart
	*s = Suzy{cart: cart}
}

func be32(b [4]uint8) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

func putBE32(b *[4]uint8, v uint32) {
	b[0] = uint8(v >> 24)
	b[1] = uint8(v >> 16)
	b[2] = uint8(v >> 8)
	b[3] = uint8(v)
}

// multiply computes AB * CD into EFGH, optionally accumulating into JKLM.
func (s *Suzy) multiply() {
	ab := uint32(s.abcd[0])<<8 | uint32(s.abcd[1])
	cd := uint32(s.abcd[2])<<8 | uint32(s.abcd[3])

	var result uint32
	if s.sprSys&sprSysSigned != 0 {
		result = uint32(int32(int16(ab)) * int32(int16(cd)))
	} else {
		result = ab * cd
	}
	putBE32(&s.efgh, result)

	if s.sprSys&sprSysAccumulate != 0 {
		acc := be32(s.jklm)
		sum := acc + result
		s.mathWarn = sum < acc
		putBE32(&s.jklm, sum)
	}
}

// divide computes EFGH / NP into ABCD with the remainder in JKLM.
// Division by zero yields an all-ones quotient.
func (s *Suzy) divide() {
	dividend := be32(s.efgh)
	divisor := uint32(s.np[0])<<8 | uint32(s.np[1])
	if divisor == 0 {
		putBE32(&s.abcd, 0xFFFFFFFF)
		putBE32(&s.jklm, 0)
		s.mathWarn = true
		return
	}
	putBE32(&s.abcd, dividend/divisor)
	putBE32(&s.jklm, dividend%divisor)
	s.mathWarn = false
}

func (s *Suzy) read(addr uint16) uint8 {
	off := uint8(addr)
	switch off {
	case regJoystick:
		return s.joystick
	case regSwitches:
		return s.switches
	case regRCart0:
		if s.cart == nil {
			return 0xFF
		}
		return s.cart.read0()
	case regRCart1:
		if s.cart == nil {
			return 0xFF
		}
		return s.cart.read1()
	case regSuzyHRev:
		return 0x01
	case regSprSys:
		var v uint8
		if s.mathWarn {
			v |= sprSysMathWarn
		}
		return v
	case regMathA, regMathB, regMathC, regMathD:
		return s.abcd[regMathA-off]
	case regMathE, regMathF, regMathG, regMathH:
		return s.efgh[regMathE-off]
	case regMathJ, regMathK, regMathL, regMathM:
		return s.jklm[regMathJ-off]
	case regMathN:
		return s.np[0]
	case regMathP:
		return s.np[1]
	}
	return s.regs[off]
}

func (s *Suzy) write(addr uint16, v uint8) {
	off := uint8(addr)
	switch off {
	case regMathD:
		s.abcd[3] = v
		s.abcd[2] = 0
	case regMathC:
		s.abcd[2] = v
	case regMathB:
		s.abcd[1] = v
		s.abcd[0] = 0
	case regMathA:
		s.abcd[0] = v
		s.multiply()
	case regMathP:
		s.np[1] = v
		s.np[0] = 0
	case regMathN:
		s.np[0] = v
	case regMathH:
		s.efgh[3] = v
		s.efgh[2] = 0
	case regMathG:
		s.efgh[2] = v
	case regMathF:
		s.efgh[1] = v
		s.efgh[0] = 0
	case regMathE:
		s.efgh[0] = v
		s.divide()
	case regMathM:
		s.jklm[3] = v
		s.jklm[2] = 0
		s.mathWarn = false
	case regMathL:
		s.jklm[2] = v
	case regMathK:
		s.jklm[1] = v
	case regMathJ:
		s.jklm[0] = v
	case regSprSys:
		s.sprSys = v
	case regSprGo:
		s.spriteDone = v&0x01 != 0
	default:
		s.regs[off] = v
	}
}
