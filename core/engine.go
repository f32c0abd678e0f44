package core

import (
	"fmt"

	"github.com/user-none/elynx/emu"
)

// Compile-time interface check.
var _ Engine = (*emu.Lynx)(nil)

// Engine is the emulated machine as the core drives it.
type Engine interface {
	// Tick advances the machine by one hardware cycle.
	Tick()
	// RedrawRequested reports, and acknowledges, a completed frame.
	RedrawRequested() bool
	AudioSample() (left, right int16)
	// Screen returns the frame as packed RGB, three bytes per pixel.
	Screen() []byte
	DisplayRefreshRate() float64

	Joystick() uint8
	SetJoystick(v uint8)
	Switches() uint8
	SetSwitches(v uint8)

	LoadBootROM(data []byte) error
	LoadCart(data []byte) error
	Rotation() emu.Rotation
	Reset()

	SerializeSize() int
	Serialize(buf []byte) error
	RAM() []byte
}

// EngineFactory creates engines and rebuilds them from save states.
type EngineFactory interface {
	New() Engine
	// Restore builds a new engine from a save state. prev supplies the
	// boot ROM and cartridge and must not be modified.
	Restore(data []byte, prev Engine) (Engine, error)
}

// LynxFactory builds emu.Lynx engines.
type LynxFactory struct{}

// New returns a powered-on Lynx with nothing loaded.
func (LynxFactory) New() Engine {
	return emu.New()
}

// Restore rebuilds a Lynx from a save state taken on prev.
func (LynxFactory) Restore(data []byte, prev Engine) (Engine, error) {
	l, ok := prev.(*emu.Lynx)
	if !ok {
		return nil, fmt.Errorf("cannot restore a Lynx state into %T", prev)
	}
	restored, err := emu.Deserialize(data, l)
	if err != nil {
		return nil, err
	}
	return restored, nil
}
