package emu

// Bus is the memory interface the CPU executes against.
type Bus interface {
	Read(addr uint16) uint8
	Write(addr uint16, value uint8)
}

// Status register flags.
const (
	flagC uint8 = 1 << 0
	flagZ uint8 = 1 << 1
	flagI uint8 = 1 << 2
	flagD uint8 = 1 << 3
	flagB uint8 = 1 << 4
	flagU uint8 = 1 << 5
	flagV uint8 = 1 << 6
	flagN uint8 = 1 << 7
)

// Interrupt vectors.
const (
	vectorNMI   = 0xFFFA
	vectorReset = 0xFFFC
	vectorIRQ   = 0xFFFE
)

// CPU is a 65SC02 core: the NMOS 6502 instruction set plus the CMOS
// additions the Lynx uses (BRA, PHX/PHY/PLX/PLY, STZ, TRB/TSB, (zp)
// addressing, INC/DEC A). The Rockwell bit instructions are not present
// on the Lynx part and decode as NOPs.
type CPU struct {
	A, X, Y uint8
	SP      uint8
	P       uint8
	PC      uint16

	bus    Bus
	irq    bool
	cycles uint64

	// extra holds penalty cycles (page crossing, decimal mode) accrued by
	// the instruction being executed.
	extra int
}

// NewCPU creates a CPU attached to bus. Call Reset before stepping.
func NewCPU(bus Bus) *CPU {
	return &CPU{bus: bus, SP: 0xFD, P: flagU | flagI}
}

// Reset loads PC from the reset vector and puts the CPU in its power-on
// register state.
func (c *CPU) Reset() {
	c.A, c.X, c.Y = 0, 0, 0
	c.SP = 0xFD
	c.P = flagU | flagI
	c.PC = c.read16(vectorReset)
	c.irq = false
	c.extra = 0
}

// SetIRQ drives the level-sensitive IRQ line.
func (c *CPU) SetIRQ(asserted bool) {
	c.irq = asserted
}

// Cycles returns the total number of CPU cycles executed.
func (c *CPU) Cycles() uint64 {
	return c.cycles
}

// Step executes one instruction, or services a pending IRQ, and returns
// the number of CPU cycles consumed.
func (c *CPU) Step() int {
	if c.irq && c.P&flagI == 0 {
		c.interrupt(vectorIRQ, false)
		c.cycles += 7
		return 7
	}

	c.extra = 0
	op := c.fetch()
	n := c.execute(op) + c.extra
	c.cycles += uint64(n)
	return n
}

func (c *CPU) fetch() uint8 {
	v := c.bus.Read(c.PC)
	c.PC++
	return v
}

func (c *CPU) fetch16() uint16 {
	lo := uint16(c.fetch())
	hi := uint16(c.fetch())
	return hi<<8 | lo
}

func (c *CPU) read16(addr uint16) uint16 {
	lo := uint16(c.bus.Read(addr))
	hi := uint16(c.bus.Read(addr + 1))
	return hi<<8 | lo
}

// read16zp reads a pointer from zero page, wrapping within page zero.
func (c *CPU) read16zp(zp uint8) uint16 {
	lo := uint16(c.bus.Read(uint16(zp)))
	hi := uint16(c.bus.Read(uint16(zp + 1)))
	return hi<<8 | lo
}

func (c *CPU) push(v uint8) {
	c.bus.Write(0x0100|uint16(c.SP), v)
	c.SP--
}

func (c *CPU) pull() uint8 {
	c.SP++
	return c.bus.Read(0x0100 | uint16(c.SP))
}

func (c *CPU) push16(v uint16) {
	c.push(uint8(v >> 8))
	c.push(uint8(v))
}

func (c *CPU) pull16() uint16 {
	lo := uint16(c.pull())
	hi := uint16(c.pull())
	return hi<<8 | lo
}

func (c *CPU) setFlag(f uint8, on bool) {
	if on {
		c.P |= f
	} else {
		c.P &^= f
	}
}

func (c *CPU) setNZ(v uint8) {
	c.setFlag(flagZ, v == 0)
	c.setFlag(flagN, v&0x80 != 0)
}

// interrupt pushes PC and status and jumps through vector. The 65C02
// clears decimal mode on interrupt entry.
func (c *CPU) interrupt(vector uint16, brk bool) {
	c.push16(c.PC)
	p := c.P | flagU
	if brk {
		p |= flagB
	} else {
		p &^= flagB
	}
	c.push(p)
	c.P |= flagI
	c.P &^= flagD
	c.PC = c.read16(vector)
}

// Addressing modes. Each returns the effective address.

func (c *CPU) zp() uint16 { return uint16(c.fetch()) }

func (c *CPU) zpx() uint16 { return uint16(c.fetch() + c.X) }

func (c *CPU) zpy() uint16 { return uint16(c.fetch() + c.Y) }

func (c *CPU) abs() uint16 { return c.fetch16() }

// absIdx adds idx to an absolute address. When penalty is set, a page
// crossing costs one extra cycle.
func (c *CPU) absIdx(idx uint8, penalty bool) uint16 {
	base := c.fetch16()
	addr := base + uint16(idx)
	if penalty && base&0xFF00 != addr&0xFF00 {
		c.extra++
	}
	return addr
}

func (c *CPU) izx() uint16 { return c.read16zp(c.fetch() + c.X) }

func (c *CPU) izy(penalty bool) uint16 {
	base := c.read16zp(c.fetch())
	addr := base + uint16(c.Y)
	if penalty && base&0xFF00 != addr&0xFF00 {
		c.extra++
	}
	return addr
}

func (c *CPU) izp() uint16 { return c.read16zp(c.fetch()) }

// ALU operations.

func (c *CPU) adc(v uint8) {
	carry := uint16(c.P & flagC)
	if c.P&flagD != 0 {
		a := uint16(c.A)
		lo := (a & 0x0F) + uint16(v&0x0F) + carry
		hi := (a & 0xF0) + uint16(v&0xF0)
		if lo > 0x09 {
			lo += 0x06
		}
		if lo > 0x0F {
			hi += 0x10
		}
		c.setFlag(flagV, ^(a^uint16(v))&(a^hi)&0x80 != 0)
		if hi > 0x90 {
			hi += 0x60
		}
		c.setFlag(flagC, hi > 0xFF)
		c.A = uint8(lo&0x0F | hi&0xF0)
		c.setNZ(c.A)
		c.extra++
		return
	}
	sum := uint16(c.A) + uint16(v) + carry
	c.setFlag(flagV, ^(c.A^v)&(c.A^uint8(sum))&0x80 != 0)
	c.setFlag(flagC, sum > 0xFF)
	c.A = uint8(sum)
	c.setNZ(c.A)
}

func (c *CPU) sbc(v uint8) {
	borrow := 1 - int(c.P&flagC)
	a := int(c.A)
	b := int(v)
	bin := a - b - borrow
	c.setFlag(flagV, (a^b)&(a^bin)&0x80 != 0)
	c.setFlag(flagC, bin >= 0)
	if c.P&flagD != 0 {
		lo := (a & 0x0F) - (b & 0x0F) - borrow
		hi := (a >> 4) - (b >> 4)
		if lo < 0 {
			lo += 10
			hi--
		}
		if hi < 0 {
			hi += 10
		}
		c.A = uint8(hi<<4 | lo&0x0F)
		c.setNZ(c.A)
		c.extra++
		return
	}
	c.A = uint8(bin)
	c.setNZ(c.A)
}

func (c *CPU) compare(r, v uint8) {
	c.setFlag(flagC, r >= v)
	c.setNZ(r - v)
}

func (c *CPU) bit(v uint8) {
	c.setFlag(flagZ, c.A&v == 0)
	c.setFlag(flagN, v&0x80 != 0)
	c.setFlag(flagV, v&0x40 != 0)
}

func (c *CPU) asl(v uint8) uint8 {
	c.setFlag(flagC, v&0x80 != 0)
	v <<= 1
	c.setNZ(v)
	return v
}

func (c *CPU) lsr(v uint8) uint8 {
	c.setFlag(flagC, v&0x01 != 0)
	v >>= 1
	c.setNZ(v)
	return v
}

func (c *CPU) rol(v uint8) uint8 {
	in := c.P & flagC
	c.setFlag(flagC, v&0x80 != 0)
	v = v<<1 | in
	c.setNZ(v)
	return v
}

func (c *CPU) ror(v uint8) uint8 {
	in := (c.P & flagC) << 7
	c.setFlag(flagC, v&0x01 != 0)
	v = v>>1 | in
	c.setNZ(v)
	return v
}

// modify applies a read-modify-write operation at addr.
func (c *CPU) modify(addr uint16, fn func(uint8) uint8) {
	c.bus.Write(addr, fn(c.bus.Read(addr)))
}

func (c *CPU) inc(v uint8) uint8 {
	v++
	c.setNZ(v)
	return v
}

func (c *CPU) dec(v uint8) uint8 {
	v--
	c.setNZ(v)
	return v
}

func (c *CPU) tsb(addr uint16) {
	v := c.bus.Read(addr)
	c.setFlag(flagZ, c.A&v == 0)
	c.bus.Write(addr, v|c.A)
}

func (c *CPU) trb(addr uint16) {
	v := c.bus.Read(addr)
	c.setFlag(flagZ, c.A&v == 0)
	c.bus.Write(addr, v&^c.A)
}

// branch reads the relative offset and takes the branch when cond holds.
// Returns the cycle count: 2, +1 when taken, +1 more on a page crossing.
func (c *CPU) branch(cond bool) int {
	off := int8(c.fetch())
	if !cond {
		return 2
	}
	target := uint16(int32(c.PC) + int32(off))
	n := 3
	if target&0xFF00 != c.PC&0xFF00 {
		n++
	}
	c.PC = target
	return n
}

func (c *CPU) load(addr uint16) uint8 {
	return c.bus.Read(addr)
}

// execute decodes and runs op, returning its base cycle count.
func (c *CPU) execute(op uint8) int {
	switch op {
	// ORA
	case 0x09:
		c.A |= c.fetch()
		c.setNZ(c.A)
		return 2
	case 0x05:
		c.A |= c.load(c.zp())
		c.setNZ(c.A)
		return 3
	case 0x15:
		c.A |= c.load(c.zpx())
		c.setNZ(c.A)
		return 4
	case 0x0D:
		c.A |= c.load(c.abs())
		c.setNZ(c.A)
		return 4
	case 0x1D:
		c.A |= c.load(c.absIdx(c.X, true))
		c.setNZ(c.A)
		return 4
	case 0x19:
		c.A |= c.load(c.absIdx(c.Y, true))
		c.setNZ(c.A)
		return 4
	case 0x01:
		c.A |= c.load(c.izx())
		c.setNZ(c.A)
		return 6
	case 0x11:
		c.A |= c.load(c.izy(true))
		c.setNZ(c.A)
		return 5
	case 0x12:
		c.A |= c.load(c.izp())
		c.setNZ(c.A)
		return 5

	// AND
	case 0x29:
		c.A &= c.fetch()
		c.setNZ(c.A)
		return 2
	case 0x25:
		c.A &= c.load(c.zp())
		c.setNZ(c.A)
		return 3
	case 0x35:
		c.A &= c.load(c.zpx())
		c.setNZ(c.A)
		return 4
	case 0x2D:
		c.A &= c.load(c.abs())
		c.setNZ(c.A)
		return 4
	case 0x3D:
		c.A &= c.load(c.absIdx(c.X, true))
		c.setNZ(c.A)
		return 4
	case 0x39:
		c.A &= c.load(c.absIdx(c.Y, true))
		c.setNZ(c.A)
		return 4
	case 0x21:
		c.A &= c.load(c.izx())
		c.setNZ(c.A)
		return 6
	case 0x31:
		c.A &= c.load(c.izy(true))
		c.setNZ(c.A)
		return 5
	case 0x32:
		c.A &= c.load(c.izp())
		c.setNZ(c.A)
		return 5

	// EOR
	case 0x49:
		c.A ^= c.fetch()
		c.setNZ(c.A)
		return 2
	case 0x45:
		c.A ^= c.load(c.zp())
		c.setNZ(c.A)
		return 3
	case 0x55:
		c.A ^= c.load(c.zpx())
		c.setNZ(c.A)
		return 4
	case 0x4D:
		c.A ^= c.load(c.abs())
		c.setNZ(c.A)
		return 4
	case 0x5D:
		c.A ^= c.load(c.absIdx(c.X, true))
		c.setNZ(c.A)
		return 4
	case 0x59:
		c.A ^= c.load(c.absIdx(c.Y, true))
		c.setNZ(c.A)
		return 4
	case 0x41:
		c.A ^= c.load(c.izx())
		c.setNZ(c.A)
		return 6
	case 0x51:
		c.A ^= c.load(c.izy(true))
		c.setNZ(c.A)
		return 5
	case 0x52:
		c.A ^= c.load(c.izp())
		c.setNZ(c.A)
		return 5

	// ADC
	case 0x69:
		c.adc(c.fetch())
		return 2
	case 0x65:
		c.adc(c.load(c.zp()))
		return 3
	case 0x75:
		c.adc(c.load(c.zpx()))
		return 4
	case 0x6D:
		c.adc(c.load(c.abs()))
		return 4
	case 0x7D:
		c.adc(c.load(c.absIdx(c.X, true)))
		return 4
	case 0x79:
		c.adc(c.load(c.absIdx(c.Y, true)))
		return 4
	case 0x61:
		c.adc(c.load(c.izx()))
		return 6
	case 0x71:
		c.adc(c.load(c.izy(true)))
		return 5
	case 0x72:
		c.adc(c.load(c.izp()))
		return 5

	// SBC
	case 0xE9:
		c.sbc(c.fetch())
		return 2
	case 0xE5:
		c.sbc(c.load(c.zp()))
		return 3
	case 0xF5:
		c.sbc(c.load(c.zpx()))
		return 4
	case 0xED:
		c.sbc(c.load(c.abs()))
		return 4
	case 0xFD:
		c.sbc(c.load(c.absIdx(c.X, true)))
		return 4
	case 0xF9:
		c.sbc(c.load(c.absIdx(c.Y, true)))
		return 4
	case 0xE1:
		c.sbc(c.load(c.izx()))
		return 6
	case 0xF1:
		c.sbc(c.load(c.izy(true)))
		return 5
	case 0xF2:
		c.sbc(c.load(c.izp()))
		return 5

	// CMP
	case 0xC9:
		c.compare(c.A, c.fetch())
		return 2
	case 0xC5:
		c.compare(c.A, c.load(c.zp()))
		return 3
	case 0xD5:
		c.compare(c.A, c.load(c.zpx()))
		return 4
	case 0xCD:
		c.compare(c.A, c.load(c.abs()))
		return 4
	case 0xDD:
		c.compare(c.A, c.load(c.absIdx(c.X, true)))
		return 4
	case 0xD9:
		c.compare(c.A, c.load(c.absIdx(c.Y, true)))
		return 4
	case 0xC1:
		c.compare(c.A, c.load(c.izx()))
		return 6
	case 0xD1:
		c.compare(c.A, c.load(c.izy(true)))
		return 5
	case 0xD2:
		c.compare(c.A, c.load(c.izp()))
		return 5

	// CPX / CPY
	case 0xE0:
		c.compare(c.X, c.fetch())
		return 2
	case 0xE4:
		c.compare(c.X, c.load(c.zp()))
		return 3
	case 0xEC:
		c.compare(c.X, c.load(c.abs()))
		return 4
	case 0xC0:
		c.compare(c.Y, c.fetch())
		return 2
	case 0xC4:
		c.compare(c.Y, c.load(c.zp()))
		return 3
	case 0xCC:
		c.compare(c.Y, c.load(c.abs()))
		return 4

	// BIT
	case 0x89:
		c.setFlag(flagZ, c.A&c.fetch() == 0)
		return 2
	case 0x24:
		c.bit(c.load(c.zp()))
		return 3
	case 0x34:
		c.bit(c.load(c.zpx()))
		return 4
	case 0x2C:
		c.bit(c.load(c.abs()))
		return 4
	case 0x3C:
		c.bit(c.load(c.absIdx(c.X, true)))
		return 4

	// LDA
	case 0xA9:
		c.A = c.fetch()
		c.setNZ(c.A)
		return 2
	case 0xA5:
		c.A = c.load(c.zp())
		c.setNZ(c.A)
		return 3
	case 0xB5:
		c.A = c.load(c.zpx())
		c.setNZ(c.A)
		return 4
	case 0xAD:
		c.A = c.load(c.abs())
		c.setNZ(c.A)
		return 4
	case 0xBD:
		c.A = c.load(c.absIdx(c.X, true))
		c.setNZ(c.A)
		return 4
	case 0xB9:
		c.A = c.load(c.absIdx(c.Y, true))
		c.setNZ(c.A)
		return 4
	case 0xA1:
		c.A = c.load(c.izx())
		c.setNZ(c.A)
		return 6
	case 0xB1:
		c.A = c.load(c.izy(true))
		c.setNZ(c.A)
		return 5
	case 0xB2:
		c.A = c.load(c.izp())
		c.setNZ(c.A)
		return 5

	// LDX
	case 0xA2:
		c.X = c.fetch()
		c.setNZ(c.X)
		return 2
	case 0xA6:
		c.X = c.load(c.zp())
		c.setNZ(c.X)
		return 3
	case 0xB6:
		c.X = c.load(c.zpy())
		c.setNZ(c.X)
		return 4
	case 0xAE:
		c.X = c.load(c.abs())
		c.setNZ(c.X)
		return 4
	case 0xBE:
		c.X = c.load(c.absIdx(c.Y, true))
		c.setNZ(c.X)
		return 4

	// LDY
	case 0xA0:
		c.Y = c.fetch()
		c.setNZ(c.Y)
		return 2
	case 0xA4:
		c.Y = c.load(c.zp())
		c.setNZ(c.Y)
		return 3
	case 0xB4:
		c.Y = c.load(c.zpx())
		c.setNZ(c.Y)
		return 4
	case 0xAC:
		c.Y = c.load(c.abs())
		c.setNZ(c.Y)
		return 4
	case 0xBC:
		c.Y = c.load(c.absIdx(c.X, true))
		c.setNZ(c.Y)
		return 4

	// STA
	case 0x85:
		c.bus.Write(c.zp(), c.A)
		return 3
	case 0x95:
		c.bus.Write(c.zpx(), c.A)
		return 4
	case 0x8D:
		c.bus.Write(c.abs(), c.A)
		return 4
	case 0x9D:
		c.bus.Write(c.absIdx(c.X, false), c.A)
		return 5
	case 0x99:
		c.bus.Write(c.absIdx(c.Y, false), c.A)
		return 5
	case 0x81:
		c.bus.Write(c.izx(), c.A)
		return 6
	case 0x91:
		c.bus.Write(c.izy(false), c.A)
		return 6
	case 0x92:
		c.bus.Write(c.izp(), c.A)
		return 5

	// STX / STY / STZ
	case 0x86:
		c.bus.Write(c.zp(), c.X)
		return 3
	case 0x96:
		c.bus.Write(c.zpy(), c.X)
		return 4
	case 0x8E:
		c.bus.Write(c.abs(), c.X)
		return 4
	case 0x84:
		c.bus.Write(c.zp(), c.Y)
		return 3
	case 0x94:
		c.bus.Write(c.zpx(), c.Y)
		return 4
	case 0x8C:
		c.bus.Write(c.abs(), c.Y)
		return 4
	case 0x64:
		c.bus.Write(c.zp(), 0)
		return 3
	case 0x74:
		c.bus.Write(c.zpx(), 0)
		return 4
	case 0x9C:
		c.bus.Write(c.abs(), 0)
		return 4
	case 0x9E:
		c.bus.Write(c.absIdx(c.X, false), 0)
		return 5

	// Shifts and rotates
	case 0x0A:
		c.A = c.asl(c.A)
		return 2
	case 0x06:
		c.modify(c.zp(), c.asl)
		return 5
	case 0x16:
		c.modify(c.zpx(), c.asl)
		return 6
	case 0x0E:
		c.modify(c.abs(), c.asl)
		return 6
	case 0x1E:
		c.modify(c.absIdx(c.X, true), c.asl)
		return 6
	case 0x4A:
		c.A = c.lsr(c.A)
		return 2
	case 0x46:
		c.modify(c.zp(), c.lsr)
		return 5
	case 0x56:
		c.modify(c.zpx(), c.lsr)
		return 6
	case 0x4E:
		c.modify(c.abs(), c.lsr)
		return 6
	case 0x5E:
		c.modify(c.absIdx(c.X, true), c.lsr)
		return 6
	case 0x2A:
		c.A = c.rol(c.A)
		return 2
	case 0x26:
		c.modify(c.zp(), c.rol)
		return 5
	case 0x36:
		c.modify(c.zpx(), c.rol)
		return 6
	case 0x2E:
		c.modify(c.abs(), c.rol)
		return 6
	case 0x3E:
		c.modify(c.absIdx(c.X, true), c.rol)
		return 6
	case 0x6A:
		c.A = c.ror(c.A)
		return 2
	case 0x66:
		c.modify(c.zp(), c.ror)
		return 5
	case 0x76:
		c.modify(c.zpx(), c.ror)
		return 6
	case 0x6E:
		c.modify(c.abs(), c.ror)
		return 6
	case 0x7E:
		c.modify(c.absIdx(c.X, true), c.ror)
		return 6

	// INC / DEC
	case 0x1A:
		c.A = c.inc(c.A)
		return 2
	case 0xE6:
		c.modify(c.zp(), c.inc)
		return 5
	case 0xF6:
		c.modify(c.zpx(), c.inc)
		return 6
	case 0xEE:
		c.modify(c.abs(), c.inc)
		return 6
	case 0xFE:
		c.modify(c.absIdx(c.X, false), c.inc)
		return 7
	case 0x3A:
		c.A = c.dec(c.A)
		return 2
	case 0xC6:
		c.modify(c.zp(), c.dec)
		return 5
	case 0xD6:
		c.modify(c.zpx(), c.dec)
		return 6
	case 0xCE:
		c.modify(c.abs(), c.dec)
		return 6
	case 0xDE:
		c.modify(c.absIdx(c.X, false), c.dec)
		return 7
	case 0xE8:
		c.X = c.inc(c.X)
		return 2
	case 0xC8:
		c.Y = c.inc(c.Y)
		return 2
	case 0xCA:
		c.X = c.dec(c.X)
		return 2
	case 0x88:
		c.Y = c.dec(c.Y)
		return 2

	// TSB / TRB
	case 0x04:
		c.tsb(c.zp())
		return 5
	case 0x0C:
		c.tsb(c.abs())
		return 6
	case 0x14:
		c.trb(c.zp())
		return 5
	case 0x1C:
		c.trb(c.abs())
		return 6

	// Transfers
	case 0xAA:
		c.X = c.A
		c.setNZ(c.X)
		return 2
	case 0x8A:
		c.A = c.X
		c.setNZ(c.A)
		return 2
	case 0xA8:
		c.Y = c.A
		c.setNZ(c.Y)
		return 2
	case 0x98:
		c.A = c.Y
		c.setNZ(c.A)
		return 2
	case 0xBA:
		c.X = c.SP
		c.setNZ(c.X)
		return 2
	case 0x9A:
		c.SP = c.X
		return 2

	// Stack
	case 0x48:
		c.push(c.A)
		return 3
	case 0xDA:
		c.push(c.X)
		return 3
	case 0x5A:
		c.push(c.Y)
		return 3
	case 0x08:
		c.push(c.P | flagB | flagU)
		return 3
	case 0x68:
		c.A = c.pull()
		c.setNZ(c.A)
		return 4
	case 0xFA:
		c.X = c.pull()
		c.setNZ(c.X)
		return 4
	case 0x7A:
		c.Y = c.pull()
		c.setNZ(c.Y)
		return 4
	case 0x28:
		c.P = c.pull()&^flagB | flagU
		return 4

	// Flags
	case 0x18:
		c.P &^= flagC
		return 2
	case 0x38:
		c.P |= flagC
		return 2
	case 0x58:
		c.P &^= flagI
		return 2
	case 0x78:
		c.P |= flagI
		return 2
	case 0xD8:
		c.P &^= flagD
		return 2
	case 0xF8:
		c.P |= flagD
		return 2
	case 0xB8:
		c.P &^= flagV
		return 2

	// Branches
	case 0x10:
		return c.branch(c.P&flagN == 0)
	case 0x30:
		return c.branch(c.P&flagN != 0)
	case 0x50:
		return c.branch(c.P&flagV == 0)
	case 0x70:
		return c.branch(c.P&flagV != 0)
	case 0x90:
		return c.branch(c.P&flagC == 0)
	case 0xB0:
		return c.branch(c.P&flagC != 0)
	case 0xD0:
		return c.branch(c.P&flagZ == 0)
	case 0xF0:
		return c.branch(c.P&flagZ != 0)
	case 0x80:
		return c.branch(true)

	// Jumps and subroutines
	case 0x4C:
		c.PC = c.fetch16()
		return 3
	case 0x6C:
		c.PC = c.read16(c.fetch16())
		return 6
	case 0x7C:
		c.PC = c.read16(c.fetch16() + uint16(c.X))
		return 6
	case 0x20:
		target := c.fetch16()
		c.push16(c.PC - 1)
		c.PC = target
		return 6
	case 0x60:
		c.PC = c.pull16() + 1
		return 6
	case 0x40:
		c.P = c.pull()&^flagB | flagU
		c.PC = c.pull16()
		return 6
	case 0x00:
		c.PC++
		c.interrupt(vectorIRQ, true)
		return 7

	case 0xEA:
		return 2
	}

	return c.undefined(op)
}

// undefined handles the opcodes the 65SC02 leaves unassigned. They all
// execute as NOPs of varying length and duration.
func (c *CPU) undefined(op uint8) int {
	switch {
	case op&0x0F == 0x02:
		c.PC++
		return 2
	case op == 0x44:
		c.PC++
		return 3
	case op == 0x54 || op == 0xD4 || op == 0xF4:
		c.PC++
		return 4
	case op == 0x5C:
		c.PC += 2
		return 8
	case op == 0xDC || op == 0xFC:
		c.PC += 2
		return 4
	}
	return 1
}
