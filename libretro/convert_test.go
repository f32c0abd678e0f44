package libretro

import (
	"testing"

	"github.com/user-none/elynx/core"
	"github.com/user-none/elynx/emu"
)

func TestRetroPixelFormat(t *testing.T) {
	if retroPixelFormat(core.PixelFormatXRGB8888) != 1 {
		t.Error("XRGB8888 should be 1")
	}
	if retroPixelFormat(core.PixelFormatRGB565) != 2 {
		t.Error("RGB565 should be 2")
	}
}

func TestRetroRotation(t *testing.T) {
	tests := []struct {
		rotation emu.Rotation
		want     uint
	}{
		{emu.RotateNone, 0},
		{emu.RotateRight, 1},
		{emu.RotateLeft, 3},
	}
	for _, tt := range tests {
		if got := retroRotation(tt.rotation); got != tt.want {
			t.Errorf("%v: got %d, want %d", tt.rotation, got, tt.want)
		}
	}
}

func TestParseToggle(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"enabled", true},
		{"disabled", false},
		{"true", true},
		{"", false},
		{"garbage", false},
	}
	for _, tt := range tests {
		if got := parseToggle(tt.value); got != tt.want {
			t.Errorf("parseToggle(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}
