package emu

import "math/bits"

const (
	audioChannels  = 4
	audioTimerBase = 8 // timers 8-11 clock the audio channels
	audioGain      = 6 // left shift applied to the mixed channel sum

	audCtlFeedback7 = 0x80
	audCtlIntegrate = 0x20

	mstereoLeftBase  = 0x10
	mstereoRightBase = 0x01
)

// audioChannel is one of Mikey's four LFSR sound generators. The timer
// half of each channel lives in Mikey's timer array; this holds the
// waveform state.
type audioChannel struct {
	volume   int8   // AUDnVOL, signed output magnitude
	feedback uint8  // AUDnSHFTFB, taps 11,10,5,4,3,2,1,0
	output   int8   // AUDnOUTVAL, current output level
	shift    uint16 // 12 bit shift register
}

// tapMask returns the shift register taps selected by the feedback
// register and the control register's bit 7.
func (c *audioChannel) tapMask(ctl uint8) uint16 {
	m := uint16(c.feedback & 0x3F)
	m |= uint16(c.feedback&0xC0) << 4
	if ctl&audCtlFeedback7 != 0 {
		m |= 1 << 7
	}
	return m
}

// clock shifts the LFSR once. The new bit is the inverted parity of the
// tapped bits. In normal mode the output swings between +volume and
// -volume; in integrate mode the volume is added or subtracted and
// clamped to the signed 8 bit range.
func (c *audioChannel) clock(ctl uint8) {
	parity := bits.OnesCount16(c.shift&c.tapMask(ctl)) & 1
	in := uint16(parity ^ 1)
	c.shift = (c.shift<<1 | in) & 0x0FFF

	if ctl&audCtlIntegrate != 0 {
		v := int32(c.output)
		if in != 0 {
			v += int32(c.volume)
		} else {
			v -= int32(c.volume)
		}
		c.output = int8(clampInt32(v, -128, 127))
		return
	}
	if in != 0 {
		c.output = c.volume
	} else {
		c.output = -c.volume
	}
}

// audioMixer holds the stereo controls shared by all channels.
type audioMixer struct {
	ch      [audioChannels]audioChannel
	atten   [audioChannels]uint8 // ATTEN_n, high nibble left, low nibble right
	mpan    uint8                // per-channel attenuation enable
	mstereo uint8                // per-channel output disable, 1 = muted
}

// sample mixes the channels into one stereo frame.
func (a *audioMixer) sample() (int16, int16) {
	var left, right int32
	for i := range a.ch {
		v := int32(a.ch[i].output)
		if a.mstereo&(mstereoLeftBase<<i) == 0 {
			l := v
			if a.mpan&(mstereoLeftBase<<i) != 0 {
				l = l * int32(a.atten[i]>>4) / 15
			}
			left += l
		}
		if a.mstereo&(mstereoRightBase<<i) == 0 {
			r := v
			if a.mpan&(mstereoRightBase<<i) != 0 {
				r = r * int32(a.atten[i]&0x0F) / 15
			}
			right += r
		}
	}
	left = clampInt32(left<<audioGain, -32768, 32767)
	right = clampInt32(right<<audioGain, -32768, 32767)
	return int16(left), int16(right)
}

// AudioSample returns the current mixed stereo output.
func (l *Lynx) AudioSample() (int16, int16) {
	return l.mikey.audio.sample()
}

// clampInt32 clamps v to [min, max].
func clampInt32(v, min, max int32) int32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
