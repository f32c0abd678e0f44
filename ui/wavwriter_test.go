package ui

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
)

func TestWavWriter_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.wav")
	w, err := NewWavWriter(path, 48000)
	if err != nil {
		t.Fatalf("NewWavWriter: %v", err)
	}
	if err := w.Write([]int16{100, -100, 200, -200}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Write([]int16{300, -300}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if dec.SampleRate != 48000 || dec.NumChans != 2 || dec.BitDepth != 16 {
		t.Errorf("format = %d Hz, %d ch, %d bit", dec.SampleRate, dec.NumChans, dec.BitDepth)
	}
	want := []int{100, -100, 200, -200, 300, -300}
	if len(buf.Data) != len(want) {
		t.Fatalf("samples = %v, want %v", buf.Data, want)
	}
	for i := range want {
		if buf.Data[i] != want[i] {
			t.Fatalf("samples = %v, want %v", buf.Data, want)
		}
	}
}

func TestWavWriter_BadPath(t *testing.T) {
	if _, err := NewWavWriter(filepath.Join(t.TempDir(), "missing", "out.wav"), 48000); err == nil {
		t.Error("expected an error for a missing directory")
	}
}
