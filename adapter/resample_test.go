package adapter

import "testing"

func TestResampler_OutputCount(t *testing.T) {
	r := NewResampler(22050, 48000)
	in := make([]int16, 22050*2)

	var out []int16
	// Feed one second in uneven chunks.
	for off := 0; off < len(in); {
		n := 294 * 2
		if off+n > len(in) {
			n = len(in) - off
		}
		out = r.Process(in[off:off+n], out)
		off += n
	}

	frames := len(out) / 2
	if frames < 47999 || frames > 48001 {
		t.Errorf("frames = %d, want ~48000", frames)
	}
}

func TestResampler_ConstantSignal(t *testing.T) {
	r := NewResampler(22050, 48000)
	in := make([]int16, 200)
	for i := 0; i < len(in); i += 2 {
		in[i] = 1000
		in[i+1] = -1000
	}

	r.Process(in, nil)
	out := r.Process(in, nil)
	for i := 0; i < len(out); i += 2 {
		if out[i] != 1000 || out[i+1] != -1000 {
			t.Fatalf("frame %d = (%d, %d), want (1000, -1000)", i/2, out[i], out[i+1])
		}
	}
}

func TestResampler_Interpolates(t *testing.T) {
	// Doubling the rate puts one new frame halfway between each input pair.
	r := NewResampler(1, 2)
	out := r.Process([]int16{100, 200, 300, 400}, nil)
	want := []int16{0, 0, 50, 100, 100, 200, 200, 300}
	if len(out) != len(want) {
		t.Fatalf("out = %v, want %v", out, want)
	}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("out = %v, want %v", out, want)
		}
	}
}

func TestResampler_EmptyInput(t *testing.T) {
	r := NewResampler(22050, 48000)
	if out := r.Process(nil, nil); len(out) != 0 {
		t.Errorf("out = %v, want empty", out)
	}
}
