package emu

import (
	"encoding/binary"
	"errors"
	"hash/crc32"
	"math"
)

// Save state format constants
const (
	stateVersion    = 1
	stateMagic      = "eLYNXState\x00\x00"
	stateHeaderSize = 22 // magic(12) + version(2) + cartCRC(4) + dataCRC(4)
)

// Fixed serialization sizes per component
const (
	cpuSerializeSize   = 5 + 2 + 1 + 8 // A X Y SP P, PC, irq, cycles
	lynxSerializeSize  = 1 + 1 + 4 + 8 + ramSize
	mikeySerializeSize = timerCount*4 +
		audioChannels*5 + audioChannels + 2 + // channels, atten, mpan, mstereo
		1 + 4 + 1 + // subTicks, micros, irqPending
		1 + 1 + 2 + 2 + 2 + 16 + 16 + // display
		3 + 256 + // sysctl1, iodir, iodat, regs
		ScreenWidth*ScreenHeight*3 + 1 + 8 + 4 // screen, redraw, refreshRate, sinceFrame
	suzySerializeSize = 2 + 4 + 4 + 4 + 2 + 1 + 1 + 1 + 256
	cartSerializeSize = 1 + 2 + 1 + 1

	// SerializeSize is the exact size of every save state.
	SerializeSize = stateHeaderSize + cpuSerializeSize + lynxSerializeSize +
		mikeySerializeSize + suzySerializeSize + cartSerializeSize
)

var (
	ErrStateSize     = errors.New("save state buffer has the wrong size")
	ErrStateMagic    = errors.New("invalid save state magic")
	ErrStateVersion  = errors.New("unsupported save state version")
	ErrStateCart     = errors.New("save state is for a different cartridge")
	ErrStateCorrupt  = errors.New("save state data is corrupted")
	ErrStateNoParent = errors.New("save state restore needs a loaded machine")
)

// boolByte converts a bool to a uint8 (0 or 1).
func boolByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

// stateWriter appends fixed-size little-endian fields to a buffer.
type stateWriter struct {
	buf []byte
	off int
}

func (w *stateWriter) u8(v uint8) {
	w.buf[w.off] = v
	w.off++
}

func (w *stateWriter) bool(v bool) { w.u8(boolByte(v)) }

func (w *stateWriter) u16(v uint16) {
	binary.LittleEndian.PutUint16(w.buf[w.off:], v)
	w.off += 2
}

func (w *stateWriter) u32(v uint32) {
	binary.LittleEndian.PutUint32(w.buf[w.off:], v)
	w.off += 4
}

func (w *stateWriter) u64(v uint64) {
	binary.LittleEndian.PutUint64(w.buf[w.off:], v)
	w.off += 8
}

func (w *stateWriter) bytes(b []byte) {
	w.off += copy(w.buf[w.off:], b)
}

// stateReader mirrors stateWriter.
type stateReader struct {
	buf []byte
	off int
}

func (r *stateReader) u8() uint8 {
	v := r.buf[r.off]
	r.off++
	return v
}

func (r *stateReader) bool() bool { return r.u8() != 0 }

func (r *stateReader) u16() uint16 {
	v := binary.LittleEndian.Uint16(r.buf[r.off:])
	r.off += 2
	return v
}

func (r *stateReader) u32() uint32 {
	v := binary.LittleEndian.Uint32(r.buf[r.off:])
	r.off += 4
	return v
}

func (r *stateReader) u64() uint64 {
	v := binary.LittleEndian.Uint64(r.buf[r.off:])
	r.off += 8
	return v
}

func (r *stateReader) bytes(b []byte) {
	r.off += copy(b, r.buf[r.off:r.off+len(b)])
}

func (l *Lynx) cartCRC() uint32 {
	if l.cart == nil {
		return 0
	}
	return l.cart.crc
}

// SerializeSize returns the size of a save state. It is the same for
// every machine.
func (l *Lynx) SerializeSize() int {
	return SerializeSize
}

// Serialize writes a save state into buf, which must be at least
// SerializeSize bytes.
func (l *Lynx) Serialize(buf []byte) error {
	if len(buf) < SerializeSize {
		return ErrStateSize
	}
	data := buf[:SerializeSize]

	copy(data[0:12], stateMagic)
	binary.LittleEndian.PutUint16(data[12:14], stateVersion)
	binary.LittleEndian.PutUint32(data[14:18], l.cartCRC())

	w := &stateWriter{buf: data, off: stateHeaderSize}
	l.serializeCPU(w)
	l.serializeSystem(w)
	l.mikey.serialize(w)
	l.suzy.serialize(w)
	l.serializeCart(w)

	// Calculate and write data CRC32 (over everything after header)
	binary.LittleEndian.PutUint32(data[18:22], crc32.ChecksumIEEE(data[stateHeaderSize:]))
	return nil
}

// VerifyState checks if a save state is valid for a machine running the
// cartridge with the given CRC.
func VerifyState(data []byte, cartCRC uint32) error {
	if len(data) < SerializeSize {
		return ErrStateSize
	}
	if string(data[0:12]) != stateMagic {
		return ErrStateMagic
	}
	if binary.LittleEndian.Uint16(data[12:14]) > stateVersion {
		return ErrStateVersion
	}
	if binary.LittleEndian.Uint32(data[14:18]) != cartCRC {
		return ErrStateCart
	}
	expected := binary.LittleEndian.Uint32(data[18:22])
	if crc32.ChecksumIEEE(data[stateHeaderSize:SerializeSize]) != expected {
		return ErrStateCorrupt
	}
	return nil
}

// Deserialize builds a new machine from a save state. The boot ROM and
// cartridge image are taken from prev, which is left untouched so the
// caller can keep it when restoring fails.
func Deserialize(data []byte, prev *Lynx) (*Lynx, error) {
	if prev == nil {
		return nil, ErrStateNoParent
	}
	if err := VerifyState(data, prev.cartCRC()); err != nil {
		return nil, err
	}

	l := &Lynx{rom: prev.rom}
	l.mikey = newMikey(&l.ram)
	l.suzy = newSuzy()
	l.cpu = NewCPU(l)
	if prev.cart != nil {
		cart := *prev.cart
		l.cart = &cart
		l.suzy.cart = &cart
	}

	r := &stateReader{buf: data[:SerializeSize], off: stateHeaderSize}
	l.deserializeCPU(r)
	l.deserializeSystem(r)
	l.mikey.deserialize(r)
	l.suzy.deserialize(r)
	l.deserializeCart(r)
	return l, nil
}

func (l *Lynx) serializeCPU(w *stateWriter) {
	c := l.cpu
	w.u8(c.A)
	w.u8(c.X)
	w.u8(c.Y)
	w.u8(c.SP)
	w.u8(c.P)
	w.u16(c.PC)
	w.bool(c.irq)
	w.u64(c.cycles)
}

func (l *Lynx) deserializeCPU(r *stateReader) {
	c := l.cpu
	c.A = r.u8()
	c.X = r.u8()
	c.Y = r.u8()
	c.SP = r.u8()
	c.P = r.u8()
	c.PC = r.u16()
	c.irq = r.bool()
	c.cycles = r.u64()
}

func (l *Lynx) serializeSystem(w *stateWriter) {
	w.u8(l.mapctl)
	w.bool(l.sleeping)
	w.u32(uint32(l.cpuWait))
	w.u64(l.ticks)
	w.bytes(l.ram[:])
}

func (l *Lynx) deserializeSystem(r *stateReader) {
	l.mapctl = r.u8()
	l.sleeping = r.bool()
	l.cpuWait = int(r.u32())
	l.ticks = r.u64()
	r.bytes(l.ram[:])
}

func (m *Mikey) serialize(w *stateWriter) {
	for _, t := range m.timers {
		w.u8(t.backup)
		w.u8(t.ctl)
		w.u8(t.count)
		w.u8(t.status)
	}
	for _, ch := range m.audio.ch {
		w.u8(uint8(ch.volume))
		w.u8(ch.feedback)
		w.u8(uint8(ch.output))
		w.u16(ch.shift)
	}
	w.bytes(m.audio.atten[:])
	w.u8(m.audio.mpan)
	w.u8(m.audio.mstereo)

	w.u8(m.subTicks)
	w.u32(m.micros)
	w.u8(m.irqPending)

	w.u8(m.dispCtl)
	w.u8(m.pbkup)
	w.u16(m.dispAddr)
	w.u16(m.frameAddr)
	w.u16(m.line)
	w.bytes(m.green[:])
	w.bytes(m.blueRed[:])

	w.u8(m.sysCtl1)
	w.u8(m.ioDir)
	w.u8(m.ioDat)
	w.bytes(m.regs[:])

	w.bytes(m.screen[:])
	w.bool(m.redraw)
	w.u64(math.Float64bits(m.refreshRate))
	w.u32(m.sinceFrame)
}

func (m *Mikey) deserialize(r *stateReader) {
	for i := range m.timers {
		t := &m.timers[i]
		t.backup = r.u8()
		t.ctl = r.u8()
		t.count = r.u8()
		t.status = r.u8()
	}
	for i := range m.audio.ch {
		ch := &m.audio.ch[i]
		ch.volume = int8(r.u8())
		ch.feedback = r.u8()
		ch.output = int8(r.u8())
		ch.shift = r.u16()
	}
	r.bytes(m.audio.atten[:])
	m.audio.mpan = r.u8()
	m.audio.mstereo = r.u8()

	m.subTicks = r.u8()
	m.micros = r.u32()
	m.irqPending = r.u8()

	m.dispCtl = r.u8()
	m.pbkup = r.u8()
	m.dispAddr = r.u16()
	m.frameAddr = r.u16()
	m.line = r.u16()
	r.bytes(m.green[:])
	r.bytes(m.blueRed[:])

	m.sysCtl1 = r.u8()
	m.ioDir = r.u8()
	m.ioDat = r.u8()
	r.bytes(m.regs[:])

	r.bytes(m.screen[:])
	m.redraw = r.bool()
	m.refreshRate = math.Float64frombits(r.u64())
	m.sinceFrame = r.u32()
}

func (s *Suzy) serialize(w *stateWriter) {
	w.u8(s.joystick)
	w.u8(s.switches)
	w.bytes(s.abcd[:])
	w.bytes(s.efgh[:])
	w.bytes(s.jklm[:])
	w.bytes(s.np[:])
	w.u8(s.sprSys)
	w.bool(s.mathWarn)
	w.bool(s.spriteDone)
	w.bytes(s.regs[:])
}

func (s *Suzy) deserialize(r *stateReader) {
	s.joystick = r.u8()
	s.switches = r.u8()
	r.bytes(s.abcd[:])
	r.bytes(s.efgh[:])
	r.bytes(s.jklm[:])
	r.bytes(s.np[:])
	s.sprSys = r.u8()
	s.mathWarn = r.bool()
	s.spriteDone = r.bool()
	r.bytes(s.regs[:])
}

func (l *Lynx) serializeCart(w *stateWriter) {
	if l.cart == nil {
		w.bytes(make([]byte, cartSerializeSize))
		return
	}
	w.u8(l.cart.shifter)
	w.u16(l.cart.counter)
	w.bool(l.cart.strobe)
	w.bool(l.cart.addrData)
}

func (l *Lynx) deserializeCart(r *stateReader) {
	if l.cart == nil {
		r.off += cartSerializeSize
		return
	}
	l.cart.shifter = r.u8()
	l.cart.counter = r.u16()
	l.cart.strobe = r.bool()
	l.cart.addrData = r.bool()
}
