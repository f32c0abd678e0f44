package libretro

import (
	"github.com/user-none/elynx/core"
	"github.com/user-none/elynx/emu"
)

// libretro pixel format ids.
const (
	retroPixelXRGB8888 = 1
	retroPixelRGB565   = 2
)

func retroPixelFormat(f core.PixelFormat) int {
	if f == core.PixelFormatRGB565 {
		return retroPixelRGB565
	}
	return retroPixelXRGB8888
}

// retroRotation converts a cartridge rotation to the frontend's rotation
// index, counted in 90 degree steps counter-clockwise.
func retroRotation(r emu.Rotation) uint {
	switch r {
	case emu.RotateRight:
		return 1
	case emu.RotateLeft:
		return 3
	}
	return 0
}

// parseToggle reads an enabled/disabled core variable. Anything else is
// treated as disabled.
func parseToggle(value string) bool {
	switch value {
	case "enabled", "true", "on":
		return true
	}
	return false
}
