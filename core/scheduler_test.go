package core

import "testing"

func TestTicksPerAudioSample(t *testing.T) {
	if TicksPerAudioSample != 725 {
		t.Errorf("TicksPerAudioSample = %d, want 725", TicksPerAudioSample)
	}
}

func TestRun_FrameOf14500CyclesEmits20Samples(t *testing.T) {
	e := newFakeEngine(14_500)
	c, h, err := loadFake(e, Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	c.Run(h, h)
	if len(h.samples) != 20 {
		t.Errorf("samples = %d, want 20", len(h.samples))
	}
	if c.audioTicks != 0 {
		t.Errorf("audio counter = %d, want 0", c.audioTicks)
	}
	if e.ticks != 14_500 {
		t.Errorf("ticks = %d, want 14500", e.ticks)
	}
}

func TestRun_SampleCountFollowsCycles(t *testing.T) {
	tests := []struct {
		name       string
		frameTicks int
		frames     int
	}{
		{"short frames", 100, 50},
		{"one sample short", 724, 3},
		{"exact interval", 725, 4},
		{"uneven", 1000, 7},
		{"lynx 75Hz frame", 213_360, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newFakeEngine(tt.frameTicks)
			c, h, err := loadFake(e, Options{})
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			for i := 0; i < tt.frames; i++ {
				c.Run(h, h)
				total := e.ticks
				if want := total / TicksPerAudioSample; len(h.samples) != want {
					t.Fatalf("frame %d: samples = %d, want %d", i, len(h.samples), want)
				}
				if c.audioTicks >= TicksPerAudioSample {
					t.Fatalf("frame %d: counter %d out of range", i, c.audioTicks)
				}
				if c.audioTicks != uint64(total%TicksPerAudioSample) {
					t.Fatalf("frame %d: counter = %d, want %d", i, c.audioTicks, total%TicksPerAudioSample)
				}
			}
			if h.frames != tt.frames {
				t.Errorf("frames uploaded = %d, want %d", h.frames, tt.frames)
			}
		})
	}
}

func TestRun_SamplesComeFromEngine(t *testing.T) {
	e := newFakeEngine(TicksPerAudioSample * 2)
	c, h, _ := loadFake(e, Options{})
	c.Run(h, h)
	if len(h.samples) != 2 || h.samples[0] != [2]int16{1, -1} || h.samples[1] != [2]int16{2, -2} {
		t.Errorf("samples = %v", h.samples)
	}
}

func TestRun_ZeroCycleFrame(t *testing.T) {
	e := newFakeEngine(0)
	c, h, _ := loadFake(e, Options{})
	h.pressed[JoypadUp] = true

	if !c.Run(h, h) {
		t.Error("Run should report the input poll")
	}
	if h.polls != 1 {
		t.Errorf("polls = %d, want 1", h.polls)
	}
	if e.ticks != 0 || len(h.samples) != 0 {
		t.Errorf("ticks = %d, samples = %d, want none", e.ticks, len(h.samples))
	}
	if h.frames != 1 {
		t.Errorf("frames = %d, want 1", h.frames)
	}
	if e.joystick == 0 {
		t.Error("input should still reach the engine")
	}
}

func TestRun_PollsOncePerFrame(t *testing.T) {
	e := newFakeEngine(5000)
	c, h, _ := loadFake(e, Options{})
	for i := 0; i < 3; i++ {
		c.Run(h, h)
	}
	if h.polls != 3 {
		t.Errorf("polls = %d, want 3", h.polls)
	}
}

func TestRun_RealEngineFrame(t *testing.T) {
	h := newFakeHost()
	c, err := Load(makeHomebrew([]byte{0x80, 0xFE}), h, Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	c.Run(h, h)
	// 127us lines * 105 lines * 16 ticks
	const frameTicks = 127 * 105 * 16
	if want := frameTicks / TicksPerAudioSample; len(h.samples) != want {
		t.Errorf("samples = %d, want %d", len(h.samples), want)
	}
	if c.audioTicks != frameTicks%TicksPerAudioSample {
		t.Errorf("counter = %d, want %d", c.audioTicks, frameTicks%TicksPerAudioSample)
	}
}
