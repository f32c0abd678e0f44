// Package core runs an emulated Lynx against a frame-driven host. It owns
// the engine, schedules it cycle by cycle, and marshals input, audio,
// video, timing, save states and memory across narrow host interfaces.
package core

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/user-none/elynx/emu"
)

const (
	Name       = emu.Name
	Version    = emu.Version
	Extensions = "lnx|o"

	// BootImageName is looked up in the host's system directory.
	BootImageName = "lynxboot.img"

	CrystalFrequency = emu.CrystalFrequency
	SampleRate       = 22_050
	DefaultFPS       = 75.0

	// TicksPerAudioSample is the engine cycles between audio samples,
	// truncated.
	TicksPerAudioSample = CrystalFrequency / SampleRate

	ScreenWidth  = emu.ScreenWidth
	ScreenHeight = emu.ScreenHeight
)

var (
	ErrLoadFailed  = errors.New("core: load failed")
	ErrNoGame      = errors.New("core: no game data")
	ErrPixelFormat = errors.New("core: no supported pixel format")
	ErrState       = errors.New("core: save state failed")
	ErrBufferSize  = errors.New("core: buffer too small")
)

// SystemInfo describes the core to the host.
type SystemInfo struct {
	Name         string
	Version      string
	Extensions   string
	NeedFullPath bool
	BlockExtract bool
}

// GetSystemInfo returns the static core description.
func GetSystemInfo() SystemInfo {
	return SystemInfo{
		Name:       Name,
		Version:    Version,
		Extensions: Extensions,
	}
}

// Options configures a session.
type Options struct {
	// RotateControls turns the d-pad with the screen on rotated carts.
	RotateControls bool
	// Factory creates the engine. Defaults to LynxFactory.
	Factory EngineFactory
	// Tables overrides the input tables. Defaults to DefaultInputTables.
	Tables InputTables
}

// Init declares the core's capabilities. A game is always required.
func Init(caps CapabilityNegotiator) {
	caps.SetSupportNoGame(false)
}

// Core is one loaded session. It is not safe for concurrent use.
type Core struct {
	engine   Engine
	factory  EngineFactory
	input    *InputMapper
	tables   InputTables
	blitter  *Blitter
	timing   *TimingNegotiator
	frame    *FrameBuffer
	rotation emu.Rotation

	audioTicks uint64
}

// Load creates a session for a game image. Any failure returns an error
// wrapping ErrLoadFailed and no Core. A missing system directory is
// logged and the game is started without a boot image.
func Load(game []byte, env LoadEnvironment, opts Options) (*Core, error) {
	format, err := negotiatePixelFormat(env)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	if len(game) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, ErrNoGame)
	}

	factory := opts.Factory
	if factory == nil {
		factory = LynxFactory{}
	}
	e := factory.New()

	if err := loadBootImage(e, env); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	if err := e.LoadCart(game); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}

	rotation := e.Rotation()
	env.SetRotation(rotation)

	tables := opts.Tables
	if tables == nil {
		tables = DefaultInputTables()
	}
	frame := NewFrameBuffer(format, ScreenWidth, ScreenHeight)

	return &Core{
		engine:   e,
		factory:  factory,
		input:    NewInputMapper(tables, rotation, opts.RotateControls),
		tables:   tables,
		blitter:  NewBlitter(frame),
		timing:   NewTimingNegotiator(DefaultFPS, ScreenWidth, ScreenHeight),
		frame:    frame,
		rotation: rotation,
	}, nil
}

// negotiatePixelFormat prefers XRGB8888 and falls back to RGB565.
func negotiatePixelFormat(env PixelFormatSetter) (PixelFormat, error) {
	for _, f := range []PixelFormat{PixelFormatXRGB8888, PixelFormatRGB565} {
		if env.SetPixelFormat(f) {
			return f, nil
		}
	}
	return 0, ErrPixelFormat
}

// loadBootImage loads BootImageName from the system directory when it
// exists. Only reading or loading an existing image is an error.
func loadBootImage(e Engine, env LoadEnvironment) error {
	dir, ok := env.SystemDirectory()
	if !ok {
		env.Printf("Warning: couldn't get system directory")
		return nil
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		env.Printf("Warning: %q is not a valid directory", dir)
		return nil
	}

	path := filepath.Join(dir, BootImageName)
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading boot image: %w", err)
	}
	if err := e.LoadBootROM(data); err != nil {
		return fmt.Errorf("loading boot image: %w", err)
	}
	return nil
}

// Reset resets the engine. The audio counter and published timing are
// kept.
func (c *Core) Reset() {
	c.engine.Reset()
}

// SetRotateControls switches between the rotated and unrotated input
// tables. It takes effect on the next Run.
func (c *Core) SetRotateControls(on bool) {
	c.input = NewInputMapper(c.tables, c.rotation, on)
}

// Unload releases the engine. The Core must not be used afterwards.
func (c *Core) Unload() {
	c.engine = nil
}

// AVInfo returns the current timing and geometry.
func (c *Core) AVInfo() AVInfo {
	return c.timing.AVInfo()
}

// Rotation returns the rotation read from the cartridge at load.
func (c *Core) Rotation() emu.Rotation {
	return c.rotation
}

// PixelFormat returns the negotiated pixel format.
func (c *Core) PixelFormat() PixelFormat {
	return c.frame.Format
}
