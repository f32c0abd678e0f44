// Package ebiten draws the emulator with Ebiten.
package ebiten

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/user-none/elynx/adapter"
	"github.com/user-none/elynx/core"
	"github.com/user-none/elynx/emu"
)

// Emulator wraps adapter.Emulator with Ebiten rendering. Rotated
// cartridges are drawn turned so the game appears upright.
type Emulator struct {
	*adapter.Emulator

	offscreen *ebiten.Image
	drawOpts  ebiten.DrawImageOptions
}

// NewEmulator loads a game image.
func NewEmulator(rom []byte, cfg adapter.Config) (*Emulator, error) {
	e, err := adapter.NewEmulator(rom, cfg)
	if err != nil {
		return nil, err
	}
	return &Emulator{Emulator: e}, nil
}

// Layout implements ebiten.Game.
func (e *Emulator) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

// DisplaySize returns the on-screen size of the native frame after
// rotation.
func DisplaySize(r emu.Rotation) (int, int) {
	if r == emu.RotateNone {
		return core.ScreenWidth, core.ScreenHeight
	}
	return core.ScreenHeight, core.ScreenWidth
}

// rotationAngle returns the rotation applied to the frame in radians.
// RotateLeft carts are turned clockwise and RotateRight carts counter
// clockwise.
func rotationAngle(r emu.Rotation) float64 {
	switch r {
	case emu.RotateLeft:
		return math.Pi / 2
	case emu.RotateRight:
		return -math.Pi / 2
	}
	return 0
}

// DrawCachedFramebuffer scales a frame copied out of the emulation
// goroutine to fit screen, keeping the aspect ratio.
func (e *Emulator) DrawCachedFramebuffer(screen *ebiten.Image, pixels []byte, stride, height int) {
	if height == 0 || stride == 0 || len(pixels) < stride*height {
		return
	}

	if e.offscreen == nil {
		e.offscreen = ebiten.NewImage(core.ScreenWidth, core.ScreenHeight)
	}
	e.offscreen.WritePixels(pixels[:stride*height])

	rotation := e.Rotation()
	dispW, dispH := DisplaySize(rotation)
	screenW, screenH := screen.Bounds().Dx(), screen.Bounds().Dy()
	scale := math.Min(float64(screenW)/float64(dispW), float64(screenH)/float64(dispH))

	e.drawOpts = ebiten.DrawImageOptions{}
	// Rotate about the frame's centre, then scale and centre on screen.
	e.drawOpts.GeoM.Translate(-float64(core.ScreenWidth)/2, -float64(core.ScreenHeight)/2)
	e.drawOpts.GeoM.Rotate(rotationAngle(rotation))
	e.drawOpts.GeoM.Scale(scale, scale)
	e.drawOpts.GeoM.Translate(float64(screenW)/2, float64(screenH)/2)
	e.drawOpts.Filter = ebiten.FilterNearest
	screen.DrawImage(e.offscreen, &e.drawOpts)
}
