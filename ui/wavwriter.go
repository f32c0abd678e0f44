package ui

import (
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WavWriter records interleaved stereo int16 audio to a 16 bit PCM WAV
// file. Samples are streamed to disk; the header is finalized on Close.
type WavWriter struct {
	f   *os.File
	enc *wav.Encoder
	buf *audio.IntBuffer
}

// NewWavWriter creates path and prepares it for sampleRate stereo audio.
func NewWavWriter(path string, sampleRate int) (*WavWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("wavwriter: %w", err)
	}
	return &WavWriter{
		f:   f,
		enc: wav.NewEncoder(f, sampleRate, 16, 2, 1),
		buf: &audio.IntBuffer{
			Format:         &audio.Format{NumChannels: 2, SampleRate: sampleRate},
			SourceBitDepth: 16,
		},
	}, nil
}

// Write appends samples.
func (w *WavWriter) Write(samples []int16) error {
	if len(samples) == 0 {
		return nil
	}
	w.buf.Data = w.buf.Data[:0]
	for _, s := range samples {
		w.buf.Data = append(w.buf.Data, int(s))
	}
	if err := w.enc.Write(w.buf); err != nil {
		return fmt.Errorf("wavwriter: %w", err)
	}
	return nil
}

// Close writes the header and closes the file.
func (w *WavWriter) Close() error {
	encErr := w.enc.Close()
	fileErr := w.f.Close()
	if encErr != nil {
		return fmt.Errorf("wavwriter: %w", encErr)
	}
	if fileErr != nil {
		return fmt.Errorf("wavwriter: %w", fileErr)
	}
	return nil
}
