package core

import "testing"

func TestTiming_RepublishesOnceOnChange(t *testing.T) {
	e := newFakeEngine(100)
	c, h, _ := loadFake(e, Options{})

	c.Run(h, h)
	if len(h.avInfos) != 0 {
		t.Fatalf("republished without a rate change: %v", h.avInfos)
	}

	e.rate = 59.9
	c.Run(h, h)
	if len(h.avInfos) != 1 {
		t.Fatalf("republishes = %d, want 1", len(h.avInfos))
	}
	info := h.avInfos[0]
	if info.FPS != 59.9 {
		t.Errorf("FPS = %f, want 59.9", info.FPS)
	}
	if info.BaseWidth != ScreenWidth || info.BaseHeight != ScreenHeight ||
		info.MaxWidth != ScreenWidth || info.MaxHeight != ScreenHeight {
		t.Errorf("geometry changed: %+v", info)
	}
	if info.SampleRate != SampleRate {
		t.Errorf("sample rate = %f", info.SampleRate)
	}

	c.Run(h, h)
	if len(h.avInfos) != 1 {
		t.Errorf("republished again without a change: %d", len(h.avInfos))
	}
	if c.AVInfo().FPS != 59.9 {
		t.Errorf("AVInfo FPS = %f, want 59.9", c.AVInfo().FPS)
	}
}

func TestTiming_DefaultAVInfo(t *testing.T) {
	c, _, _ := loadFake(newFakeEngine(1), Options{})
	info := c.AVInfo()
	if info.FPS != DefaultFPS || info.SampleRate != 22_050 {
		t.Errorf("default timing = %+v", info)
	}
	if info.BaseWidth != 160 || info.BaseHeight != 102 {
		t.Errorf("geometry = %dx%d", info.BaseWidth, info.BaseHeight)
	}
}

func TestTiming_Check(t *testing.T) {
	n := NewTimingNegotiator(75, ScreenWidth, ScreenHeight)
	e := newFakeEngine(1)
	h := newFakeHost()

	e.rate = 75
	if n.Check(e, h) {
		t.Error("no change should not republish")
	}
	e.rate = 74.99
	if !n.Check(e, h) || n.Rate() != 74.99 {
		t.Errorf("change not published, rate = %f", n.Rate())
	}
}

func TestTiming_RealEngineFirstFrame(t *testing.T) {
	h := newFakeHost()
	c, err := Load(makeHomebrew([]byte{0x80, 0xFE}), h, Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	c.Run(h, h)
	// The engine's default timers give 74.99Hz, not exactly 75.
	if len(h.avInfos) != 1 {
		t.Fatalf("republishes = %d, want 1", len(h.avInfos))
	}
	c.Run(h, h)
	if len(h.avInfos) != 1 {
		t.Errorf("republishes = %d after a stable frame, want 1", len(h.avInfos))
	}
}
