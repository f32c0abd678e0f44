package core

// AVInfo is the audio/video timing and geometry published to the host.
type AVInfo struct {
	BaseWidth   int
	BaseHeight  int
	MaxWidth    int
	MaxHeight   int
	AspectRatio float64
	FPS         float64
	SampleRate  float64
}

// TimingNegotiator tracks the last published refresh rate.
type TimingNegotiator struct {
	rate   float64
	width  int
	height int
}

// NewTimingNegotiator starts at rate for a fixed width x height screen.
func NewTimingNegotiator(rate float64, width, height int) *TimingNegotiator {
	return &TimingNegotiator{rate: rate, width: width, height: height}
}

// Rate returns the last published refresh rate.
func (t *TimingNegotiator) Rate() float64 {
	return t.rate
}

// AVInfo returns the timing for the current rate.
func (t *TimingNegotiator) AVInfo() AVInfo {
	return AVInfo{
		BaseWidth:   t.width,
		BaseHeight:  t.height,
		MaxWidth:    t.width,
		MaxHeight:   t.height,
		AspectRatio: float64(t.width) / float64(t.height),
		FPS:         t.rate,
		SampleRate:  SampleRate,
	}
}

// Check republishes timing when the engine's refresh rate differs from
// the last published one. It reports whether it republished.
func (t *TimingNegotiator) Check(e Engine, out TimingSetter) bool {
	rate := e.DisplayRefreshRate()
	if rate == t.rate {
		return false
	}
	t.rate = rate
	out.SetSystemAVInfo(t.AVInfo())
	return true
}
