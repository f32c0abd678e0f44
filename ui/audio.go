package ui

import (
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/user-none/elynx/adapter"
)

const (
	// ringBufferCapacity holds about 170ms of 48kHz stereo audio.
	ringBufferCapacity = 32768
	playerBufferSize   = 19200
)

var (
	otoCtx     *oto.Context
	otoCtxOnce sync.Once
	otoCtxErr  error
)

// audioContext returns the process-wide oto context. oto allows only one.
func audioContext() (*oto.Context, error) {
	otoCtxOnce.Do(func() {
		var ready chan struct{}
		otoCtx, ready, otoCtxErr = oto.NewContext(&oto.NewContextOptions{
			SampleRate:   adapter.OutputSampleRate,
			ChannelCount: 2,
			Format:       oto.FormatSignedInt16LE,
			BufferSize:   50 * time.Millisecond,
		})
		if otoCtxErr == nil {
			<-ready
		}
	})
	return otoCtx, otoCtxErr
}

// AudioPlayer plays interleaved stereo int16 samples through oto.
type AudioPlayer struct {
	player  *oto.Player
	ring    *AudioRingBuffer
	scratch []byte
}

// NewAudioPlayer starts playback at the given volume (0 to 1).
func NewAudioPlayer(volume float64) (*AudioPlayer, error) {
	ctx, err := audioContext()
	if err != nil {
		return nil, fmt.Errorf("oto audio not available: %w", err)
	}

	ring := NewAudioRingBuffer(ringBufferCapacity)
	p := ctx.NewPlayer(ring)
	p.SetBufferSize(playerBufferSize)
	p.SetVolume(volume)
	p.Play()

	return &AudioPlayer{player: p, ring: ring}, nil
}

// QueueSamples queues samples for playback.
func (a *AudioPlayer) QueueSamples(samples []int16) {
	if len(samples) == 0 {
		return
	}
	a.scratch = appendLE16(a.scratch[:0], samples)
	a.ring.Write(a.scratch)
}

// GetBufferLevel returns the bytes queued in the ring and inside oto.
func (a *AudioPlayer) GetBufferLevel() int {
	return a.ring.Buffered() + a.player.BufferedSize()
}

// SetVolume sets the playback volume (0 to 1).
func (a *AudioPlayer) SetVolume(vol float64) {
	a.player.SetVolume(vol)
}

// Close stops playback.
func (a *AudioPlayer) Close() {
	a.ring.Close()
	a.player.Close()
}

func appendLE16(dst []byte, samples []int16) []byte {
	for _, s := range samples {
		dst = append(dst, byte(s), byte(s>>8))
	}
	return dst
}
