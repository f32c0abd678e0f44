package emu

const (
	// CrystalFrequency is the Lynx master clock in Hz.
	CrystalFrequency = 16_000_000

	ScreenWidth  = 160
	ScreenHeight = 102

	ticksPerMicro = 16
	bytesPerLine  = ScreenWidth / 2
	timerCount    = 12
	clockLinked   = 7

	lineTimer  = 0
	frameTimer = 2

	// watchdogTicks forces a redraw when the display timers have not
	// produced a frame for two 75Hz frame periods.
	watchdogTicks = 2 * CrystalFrequency / 75
)

// Timer control bits. AUDnCTL shares the layout except bits 7 and 5.
const (
	timerIntEnable  = 0x80
	timerResetDone  = 0x40
	timerReload     = 0x10
	timerCountOn    = 0x08
	timerClockMask  = 0x07
	timerDone       = 0x08
	timerBorrowOut  = 0x01
	timerStatusMask = 0x0F
)

// Mikey register offsets from $FD00.
const (
	regAudioBase = 0x20
	regAudioEnd  = 0x40
	regAtten     = 0x40
	regMPan      = 0x44
	regMStereo   = 0x50
	regIntRst    = 0x80
	regIntSet    = 0x81
	regSysCtl1   = 0x87
	regHRev      = 0x88
	regIODir     = 0x8A
	regIODat     = 0x8B
	regSDoneAck  = 0x90
	regCPUSleep  = 0x91
	regDispCtl   = 0x92
	regPBkup     = 0x93
	regDispAdrL  = 0x94
	regDispAdrH  = 0x95
	regGreen     = 0xA0
	regBlueRed   = 0xB0
)

const (
	dispDMAEnable = 0x01
	dispFlip      = 0x02

	sysCtl1CartStrobe = 0x01
	ioDatCartAddr     = 0x02
)

// timerLink maps each timer to the timer its borrow-out clocks when that
// timer is in linked mode. Audio channel 3 does not feed back to timer 1.
var timerLink = [timerCount]int{2, 3, 4, 5, -1, 7, -1, 8, 9, 10, 11, -1}

// timer is the counter half shared by the eight system timers and the
// four audio channels.
type timer struct {
	backup uint8
	ctl    uint8
	count  uint8
	status uint8
}

func (t *timer) clockSelect() uint8 { return t.ctl & timerClockMask }

// Mikey models the Lynx timer, interrupt, display and audio chip.
//
// Register map ($FD00 base):
//
//	$FD00-$FD1F  timers 0-7 (BKUP, CTLA, CNT, CTLB)
//	$FD20-$FD3F  audio channels 0-3 (VOL, SHFTFB, OUTVAL, L8SHFT, TBACK, CTL, COUNT, MISC)
//	$FD40-$FD44  ATTEN_A-D, MPAN
//	$FD50        MSTEREO
//	$FD80-$FD81  INTRST, INTSET
//	$FD87        SYSCTL1
//	$FD8A-$FD8B  IODIR, IODAT
//	$FD91        CPUSLEEP
//	$FD92-$FD95  DISPCTL, PBKUP, DISPADR
//	$FDA0-$FDBF  palette (GREEN, BLUERED)
type Mikey struct {
	ram *[ramSize]byte

	timers   [timerCount]timer
	audio    audioMixer
	subTicks uint8  // crystal ticks since the last microsecond
	micros   uint32 // free running microsecond counter for prescalers

	irqPending uint8

	dispCtl   uint8
	pbkup     uint8
	dispAddr  uint16
	frameAddr uint16 // DISPADR latched at the start of the frame
	line      uint16
	green     [16]uint8
	blueRed   [16]uint8

	sysCtl1 uint8
	ioDir   uint8
	ioDat   uint8
	regs    [256]uint8 // read-back for registers without side effects

	screen      [ScreenWidth * ScreenHeight * 3]byte
	redraw      bool
	refreshRate float64
	sinceFrame  uint32 // crystal ticks since the last redraw request
}

func newMikey(ram *[ramSize]byte) *Mikey {
	m := &Mikey{ram: ram}
	m.reset()
	return m
}

// reset puts Mikey in the state the boot ROM leaves it in: a 75Hz display
// with DMA enabled and the frame buffer at $C000.
func (m *Mikey) reset() {
	ram := m.ram
	*m = Mikey{ram: ram}

	m.timers[lineTimer] = timer{backup: 0x7E, count: 0x7E, ctl: timerReload | timerCountOn}
	m.timers[frameTimer] = timer{backup: 0x68, count: 0x68, ctl: timerReload | timerCountOn | clockLinked}
	m.dispCtl = dispDMAEnable
	m.pbkup = 0x29
	m.dispAddr = 0xC000
	m.frameAddr = m.dispAddr
	m.refreshRate = m.computeRefreshRate(0)
}

// tick advances Mikey by one crystal tick.
func (m *Mikey) tick() {
	m.sinceFrame++
	if m.sinceFrame >= watchdogTicks {
		m.redraw = true
		m.sinceFrame = 0
	}

	m.subTicks++
	if m.subTicks < ticksPerMicro {
		return
	}
	m.subTicks = 0
	m.micros++

	for i := range m.timers {
		sel := m.timers[i].clockSelect()
		if sel == clockLinked {
			continue
		}
		if m.micros&(1<<sel-1) == 0 {
			m.clockTimer(i)
		}
	}
}

// clockTimer delivers one clock to timer i. On borrow-out the timer
// reloads, raises its interrupt, runs its hardware side effect and
// clocks the next timer in the chain.
func (m *Mikey) clockTimer(i int) {
	t := &m.timers[i]
	if t.ctl&timerCountOn == 0 {
		return
	}
	if t.status&timerDone != 0 && t.ctl&timerReload == 0 {
		return
	}
	if t.count > 0 {
		t.count--
		t.status &^= timerBorrowOut
		return
	}

	t.status |= timerDone | timerBorrowOut
	if t.ctl&timerReload != 0 {
		t.count = t.backup
	}
	if i < 8 && t.ctl&timerIntEnable != 0 {
		m.irqPending |= 1 << i
	}
	m.underflow(i)

	if next := timerLink[i]; next >= 0 && m.timers[next].clockSelect() == clockLinked {
		m.clockTimer(next)
	}
}

func (m *Mikey) underflow(i int) {
	switch {
	case i == lineTimer:
		if m.line < ScreenHeight {
			m.renderLine(int(m.line))
		}
		m.line++
	case i == frameTimer:
		m.line = 0
		m.frameAddr = m.dispAddr
		m.redraw = true
		m.sinceFrame = 0
		m.refreshRate = m.computeRefreshRate(m.refreshRate)
	case i >= audioTimerBase:
		n := i - audioTimerBase
		m.audio.ch[n].clock(m.timers[i].ctl)
	}
}

// computeRefreshRate derives the frame rate from the line and frame
// timers. When the configuration cannot produce frames, last is kept.
func (m *Mikey) computeRefreshRate(last float64) float64 {
	lt := m.timers[lineTimer]
	ft := m.timers[frameTimer]
	if lt.clockSelect() == clockLinked || lt.ctl&timerCountOn == 0 || ft.ctl&timerCountOn == 0 {
		return last
	}

	lineTicks := float64(int(lt.backup)+1) * float64(prescaleTicks(lt))
	var frameTicks float64
	if ft.clockSelect() == clockLinked {
		frameTicks = lineTicks * float64(int(ft.backup)+1)
	} else {
		frameTicks = float64(int(ft.backup)+1) * float64(prescaleTicks(ft))
	}
	return CrystalFrequency / frameTicks
}

// renderLine converts one line of 4bpp display memory to RGB.
func (m *Mikey) renderLine(line int) {
	if m.dispCtl&dispDMAEnable == 0 {
		return
	}
	flip := m.dispCtl&dispFlip != 0
	src := m.frameAddr + uint16(line*bytesPerLine)
	y := line
	if flip {
		y = ScreenHeight - 1 - line
	}
	row := m.screen[y*ScreenWidth*3 : (y+1)*ScreenWidth*3]

	for i := 0; i < bytesPerLine; i++ {
		b := m.ram[src+uint16(i)]
		x := i * 2
		if flip {
			m.putPixel(row, ScreenWidth-1-x, b>>4)
			m.putPixel(row, ScreenWidth-2-x, b&0x0F)
		} else {
			m.putPixel(row, x, b>>4)
			m.putPixel(row, x+1, b&0x0F)
		}
	}
}

func (m *Mikey) putPixel(row []byte, x int, pen uint8) {
	g := m.green[pen] & 0x0F
	b := m.blueRed[pen] >> 4
	r := m.blueRed[pen] & 0x0F
	row[x*3] = r * 17
	row[x*3+1] = g * 17
	row[x*3+2] = b * 17
}

func (m *Mikey) read(addr uint16) uint8 {
	off := uint8(addr)
	switch {
	case off < regAudioBase:
		t := &m.timers[off>>2]
		switch off & 3 {
		case 0:
			return t.backup
		case 1:
			return t.ctl
		case 2:
			return t.count
		}
		return t.status
	case off < regAudioEnd:
		return m.readAudio(off)
	case off >= regAtten && off < regAtten+audioChannels:
		return m.audio.atten[off-regAtten]
	case off >= regGreen && off < regGreen+16:
		return m.green[off-regGreen]
	case off >= regBlueRed && off < regBlueRed+16:
		return m.blueRed[off-regBlueRed]
	}

	switch off {
	case regMPan:
		return m.audio.mpan
	case regMStereo:
		return m.audio.mstereo
	case regIntRst, regIntSet:
		return m.irqPending
	case regHRev:
		return 0x01
	case regSysCtl1:
		return m.sysCtl1
	case regIODir:
		return m.ioDir
	case regIODat:
		return m.ioDat
	case regDispCtl:
		return m.dispCtl
	case regPBkup:
		return m.pbkup
	case regDispAdrL:
		return uint8(m.dispAddr)
	case regDispAdrH:
		return uint8(m.dispAddr >> 8)
	}
	return m.regs[off]
}

func (m *Mikey) readAudio(off uint8) uint8 {
	n := int(off-regAudioBase) / 8
	ch := &m.audio.ch[n]
	t := &m.timers[audioTimerBase+n]
	switch (off - regAudioBase) % 8 {
	case 0:
		return uint8(ch.volume)
	case 1:
		return ch.feedback
	case 2:
		return uint8(ch.output)
	case 3:
		return uint8(ch.shift)
	case 4:
		return t.backup
	case 5:
		return t.ctl
	case 6:
		return t.count
	}
	return uint8(ch.shift>>8)<<4 | t.status&timerStatusMask
}

func (m *Mikey) write(addr uint16, v uint8) {
	off := uint8(addr)
	switch {
	case off < regAudioBase:
		t := &m.timers[off>>2]
		switch off & 3 {
		case 0:
			t.backup = v
		case 1:
			m.writeControl(t, v)
		case 2:
			t.count = v
		case 3:
			t.status = v & timerStatusMask
		}
		return
	case off < regAudioEnd:
		m.writeAudio(off, v)
		return
	case off >= regAtten && off < regAtten+audioChannels:
		m.audio.atten[off-regAtten] = v
		return
	case off >= regGreen && off < regGreen+16:
		m.green[off-regGreen] = v & 0x0F
		return
	case off >= regBlueRed && off < regBlueRed+16:
		m.blueRed[off-regBlueRed] = v
		return
	}

	switch off {
	case regMPan:
		m.audio.mpan = v
	case regMStereo:
		m.audio.mstereo = v
	case regIntRst:
		m.irqPending &^= v
	case regIntSet:
		m.irqPending |= v
	case regSysCtl1:
		m.sysCtl1 = v
	case regIODir:
		m.ioDir = v
	case regIODat:
		m.ioDat = v
	case regDispCtl:
		m.dispCtl = v
	case regPBkup:
		m.pbkup = v
	case regDispAdrL:
		m.dispAddr = m.dispAddr&0xFF00 | uint16(v&0xFC)
	case regDispAdrH:
		m.dispAddr = m.dispAddr&0x00FF | uint16(v)<<8
	default:
		m.regs[off] = v
	}
}

// writeControl stores a timer control value. Bit 6 is a strobe that
// clears the done flag and is not retained.
func (m *Mikey) writeControl(t *timer, v uint8) {
	if v&timerResetDone != 0 {
		t.status &^= timerDone
	}
	t.ctl = v &^ timerResetDone
}

func (m *Mikey) writeAudio(off uint8, v uint8) {
	n := int(off-regAudioBase) / 8
	ch := &m.audio.ch[n]
	t := &m.timers[audioTimerBase+n]
	switch (off - regAudioBase) % 8 {
	case 0:
		ch.volume = int8(v)
	case 1:
		ch.feedback = v
	case 2:
		ch.output = int8(v)
	case 3:
		ch.shift = ch.shift&0x0F00 | uint16(v)
	case 4:
		t.backup = v
	case 5:
		m.writeControl(t, v)
	case 6:
		t.count = v
	case 7:
		ch.shift = ch.shift&0x00FF | uint16(v>>4)<<8
		t.status = v & timerStatusMask
	}
}

// prescaleTicks returns the crystal ticks per clock of an unlinked timer.
func prescaleTicks(t timer) int {
	return ticksPerMicro << t.clockSelect()
}
