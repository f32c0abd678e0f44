package emu

import "testing"

func newTestMikey() *Mikey {
	var ram [ramSize]byte
	return newMikey(&ram)
}

func tickMicros(m *Mikey, us int) {
	for i := 0; i < us*ticksPerMicro; i++ {
		m.tick()
	}
}

func TestMikey_TimerInterrupt(t *testing.T) {
	m := newTestMikey()
	m.write(0xFD04, 3)
	m.write(0xFD05, timerIntEnable|timerReload|timerCountOn)
	m.write(0xFD06, 3)

	tickMicros(m, 3)
	if m.irqPending&0x02 != 0 {
		t.Fatal("interrupt raised too early")
	}
	tickMicros(m, 1)
	if m.irqPending&0x02 == 0 {
		t.Fatal("timer 1 interrupt not raised")
	}
	if m.read(0xFD06) != 3 {
		t.Errorf("count = %d, want reload to 3", m.read(0xFD06))
	}
	if m.read(0xFD07)&timerDone == 0 {
		t.Error("timer done flag not set")
	}

	m.write(0xFD80, 0x02)
	if m.irqPending != 0 {
		t.Errorf("INTRST left %02X pending", m.irqPending)
	}
}

func TestMikey_OneShotStops(t *testing.T) {
	m := newTestMikey()
	m.write(0xFD0C, 1)
	m.write(0xFD0D, timerIntEnable|timerCountOn)
	m.write(0xFD0E, 0)

	tickMicros(m, 1)
	if m.irqPending&0x08 == 0 {
		t.Fatal("timer 3 interrupt not raised")
	}
	m.write(0xFD80, 0x08)
	tickMicros(m, 10)
	if m.irqPending&0x08 != 0 {
		t.Error("one-shot timer should stay done")
	}

	// Resetting the done flag restarts it
	m.write(0xFD0D, timerIntEnable|timerCountOn|timerResetDone)
	if m.read(0xFD0D)&timerResetDone != 0 {
		t.Error("reset-done strobe should not be stored")
	}
	tickMicros(m, 1)
	if m.irqPending&0x08 == 0 {
		t.Error("timer 3 should fire again after done reset")
	}
}

func TestMikey_Prescaler(t *testing.T) {
	m := newTestMikey()
	// 4us clock
	m.write(0xFD14, 0)
	m.write(0xFD15, timerIntEnable|timerReload|timerCountOn|2)
	m.write(0xFD16, 0)

	tickMicros(m, 3)
	if m.irqPending&0x20 != 0 {
		t.Fatal("4us timer fired early")
	}
	tickMicros(m, 1)
	if m.irqPending&0x20 == 0 {
		t.Error("4us timer should fire at 4us")
	}
}

func TestMikey_LinkedTimer(t *testing.T) {
	m := newTestMikey()
	m.write(0xFD04, 0)
	m.write(0xFD05, timerReload|timerCountOn)
	m.write(0xFD06, 0)
	m.write(0xFD0C, 1)
	m.write(0xFD0D, timerIntEnable|timerReload|timerCountOn|clockLinked)
	m.write(0xFD0E, 2)

	tickMicros(m, 2)
	if m.irqPending&0x08 != 0 {
		t.Fatal("linked timer fired early")
	}
	tickMicros(m, 1)
	if m.irqPending&0x08 == 0 {
		t.Error("timer 3 should fire on the third borrow of timer 1")
	}
}

func TestMikey_IntSet(t *testing.T) {
	m := newTestMikey()
	m.write(0xFD81, 0x84)
	if v := m.read(0xFD81); v != 0x84 {
		t.Errorf("INTSET read = %02X", v)
	}
	if v := m.read(0xFD80); v != 0x84 {
		t.Errorf("INTRST read = %02X", v)
	}
}

func TestMikey_DefaultRefreshRate(t *testing.T) {
	m := newTestMikey()
	want := float64(CrystalFrequency) / float64(127*16*105)
	if m.refreshRate != want {
		t.Errorf("rate = %f, want %f", m.refreshRate, want)
	}
}

func TestMikey_RefreshRateKeptWhenStopped(t *testing.T) {
	m := newTestMikey()
	m.write(0xFD01, 0)
	if got := m.computeRefreshRate(60); got != 60 {
		t.Errorf("rate = %f, want previous 60", got)
	}
}

func TestMikey_DisplayAddress(t *testing.T) {
	m := newTestMikey()
	m.write(0xFD94, 0x13)
	m.write(0xFD95, 0x80)
	if m.dispAddr != 0x8010 {
		t.Errorf("DISPADR = %04X, want 8010 (low bits masked)", m.dispAddr)
	}
	if m.frameAddr != 0xC000 {
		t.Error("frame address should latch only at vertical blank")
	}
}

func TestMikey_FlippedLine(t *testing.T) {
	m := newTestMikey()
	m.ram[0xC000] = 0x10
	m.green[1] = 0x0F
	m.write(0xFD92, dispDMAEnable|dispFlip)

	m.renderLine(0)
	last := ((ScreenHeight-1)*ScreenWidth + ScreenWidth - 1) * 3
	if m.screen[last+1] != 255 {
		t.Error("flipped pixel 0 should land bottom right")
	}
}

func TestMikey_DMADisabled(t *testing.T) {
	m := newTestMikey()
	m.ram[0xC000] = 0x11
	m.green[1] = 0x0F
	m.write(0xFD92, 0)
	m.renderLine(0)
	if m.screen[1] != 0 {
		t.Error("nothing should render with DMA disabled")
	}
}

func TestMikey_Palette(t *testing.T) {
	m := newTestMikey()
	m.write(0xFDA5, 0xF3)
	m.write(0xFDB5, 0x9A)
	if m.read(0xFDA5) != 0x03 {
		t.Errorf("GREEN5 = %02X, want 03", m.read(0xFDA5))
	}
	row := make([]byte, ScreenWidth*3)
	m.putPixel(row, 0, 5)
	if row[0] != 0x0A*17 || row[1] != 0x03*17 || row[2] != 0x09*17 {
		t.Errorf("pixel = %v", row[0:3])
	}
}

func TestAudio_ChannelWaveform(t *testing.T) {
	m := newTestMikey()
	m.write(0xFD20, 64)   // volume
	m.write(0xFD21, 0x01) // tap bit 0
	m.write(0xFD24, 0)    // backup
	m.write(0xFD25, timerReload|timerCountOn)

	tickMicros(m, 1)
	if m.audio.ch[0].output != 64 {
		t.Fatalf("output = %d, want 64", m.audio.ch[0].output)
	}
	tickMicros(m, 1)
	if m.audio.ch[0].output != -64 {
		t.Fatalf("output = %d, want -64", m.audio.ch[0].output)
	}
	if m.read(0xFD23) != 0x02 {
		t.Errorf("shift low = %02X, want 02", m.read(0xFD23))
	}
}

func TestAudio_Integrate(t *testing.T) {
	var c audioChannel
	c.volume = 100
	c.output = 100
	c.clock(audCtlIntegrate)
	if c.output != 127 {
		t.Errorf("integrated output = %d, want clamp at 127", c.output)
	}
}

func TestAudio_Mix(t *testing.T) {
	var a audioMixer
	a.ch[0].output = 64

	l, r := a.sample()
	if l != 64<<audioGain || r != 64<<audioGain {
		t.Errorf("sample = %d,%d", l, r)
	}

	a.mstereo = mstereoLeftBase
	l, r = a.sample()
	if l != 0 || r != 64<<audioGain {
		t.Errorf("left muted: sample = %d,%d", l, r)
	}

	a.mstereo = 0
	a.mpan = mstereoLeftBase | mstereoRightBase
	a.atten[0] = 0xF0
	l, r = a.sample()
	if l != 64<<audioGain || r != 0 {
		t.Errorf("attenuated: sample = %d,%d", l, r)
	}
}

func TestAudio_MixClamps(t *testing.T) {
	var a audioMixer
	for i := range a.ch {
		a.ch[i].output = -128
	}
	l, _ := a.sample()
	if l != -32768 {
		t.Errorf("sample = %d, want -32768", l)
	}
}
