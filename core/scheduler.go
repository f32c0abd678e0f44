package core

// Run advances the engine by one video frame. Input is polled once, the
// engine is ticked until it requests a redraw with one audio sample
// emitted every TicksPerAudioSample ticks, and then the frame is uploaded
// and timing republished if the refresh rate moved. The audio tick
// counter carries over between frames. Run reports whether the host was
// polled for input.
func (c *Core) Run(cb RunCallbacks, timing TimingSetter) bool {
	polled := c.input.Poll(c.engine, cb)

	for !c.engine.RedrawRequested() {
		c.engine.Tick()
		c.audioTicks++
		if c.audioTicks == TicksPerAudioSample {
			left, right := c.engine.AudioSample()
			cb.UploadAudioSample(left, right)
			c.audioTicks = 0
		}
	}

	c.blitter.Blit(c.engine, cb)
	c.timing.Check(c.engine, timing)
	return polled
}
