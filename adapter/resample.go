package adapter

// Resampler converts interleaved stereo int16 audio between sample rates
// using linear interpolation. It keeps the last input frame between calls
// so consecutive buffers join without a seam.
type Resampler struct {
	step  float64 // input frames per output frame
	pos   float64 // read position; 0 is prev, 1 is the first new frame
	prevL int16
	prevR int16
}

// NewResampler creates a resampler from inRate to outRate.
func NewResampler(inRate, outRate int) *Resampler {
	return &Resampler{step: float64(inRate) / float64(outRate)}
}

// Process resamples in and appends the result to out.
func (r *Resampler) Process(in []int16, out []int16) []int16 {
	frames := len(in) / 2
	if frames == 0 {
		return out
	}

	at := func(i int) (int16, int16) {
		if i == 0 {
			return r.prevL, r.prevR
		}
		return in[(i-1)*2], in[(i-1)*2+1]
	}

	for r.pos < float64(frames) {
		i := int(r.pos)
		frac := r.pos - float64(i)
		l0, r0 := at(i)
		l1, r1 := at(i + 1)
		out = append(out, lerp(l0, l1, frac), lerp(r0, r1, frac))
		r.pos += r.step
	}

	r.pos -= float64(frames)
	r.prevL = in[(frames-1)*2]
	r.prevR = in[(frames-1)*2+1]
	return out
}

// Reset drops the carried frame and position.
func (r *Resampler) Reset() {
	r.pos = 0
	r.prevL = 0
	r.prevR = 0
}

func lerp(a, b int16, frac float64) int16 {
	return int16(float64(a) + (float64(b)-float64(a))*frac)
}
