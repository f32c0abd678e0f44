package adapter

import (
	"math"
	"strconv"

	emucore "github.com/user-none/eblitui/api"
	"github.com/user-none/elynx/core"
	"github.com/user-none/elynx/emu"
)

// Compile-time interface checks.
var (
	_ emucore.Emulator        = (*Emulator)(nil)
	_ emucore.SaveStater      = (*Emulator)(nil)
	_ emucore.MemoryMapper    = (*Emulator)(nil)
	_ emucore.MemoryInspector = (*Emulator)(nil)
)

// scanlines is the line count of the default display timing.
const scanlines = 105

// Config holds the settings an Emulator is created with.
type Config struct {
	BIOSDir        string
	RotateControls bool
}

// Emulator runs a core.Core for the eblitui frontends. Frames are
// delivered as RGBA and audio is resampled to OutputSampleRate.
type Emulator struct {
	core      *core.Core
	host      *host
	resampler *Resampler
	audio     []int16
}

// NewEmulator loads a game image and returns a ready emulator.
func NewEmulator(rom []byte, cfg Config) (*Emulator, error) {
	h := newHost(cfg.BIOSDir)
	c, err := core.Load(rom, h, core.Options{RotateControls: cfg.RotateControls})
	if err != nil {
		return nil, err
	}
	return &Emulator{
		core:      c,
		host:      h,
		resampler: NewResampler(core.SampleRate, OutputSampleRate),
	}, nil
}

// RunFrame runs one video frame and resamples its audio.
func (e *Emulator) RunFrame() {
	e.host.raw = e.host.raw[:0]
	e.core.Run(e.host, e.host)
	e.audio = e.resampler.Process(e.host.raw, e.audio[:0])
}

// GetFramebuffer returns the last frame as RGBA.
func (e *Emulator) GetFramebuffer() []byte {
	return e.host.rgba
}

// GetFramebufferStride returns the bytes per framebuffer row.
func (e *Emulator) GetFramebufferStride() int {
	return e.host.stride
}

// GetActiveHeight returns the visible line count. The Lynx screen never
// changes size.
func (e *Emulator) GetActiveHeight() int {
	return core.ScreenHeight
}

// GetAudioSamples returns the last frame's audio as interleaved stereo at
// OutputSampleRate.
func (e *Emulator) GetAudioSamples() []int16 {
	return e.audio
}

// SetInput sets the button mask for player 0. Other players are ignored.
func (e *Emulator) SetInput(player int, buttons uint32) {
	if player != 0 {
		return
	}
	e.host.buttons = buttons
}

// GetRegion always returns NTSC; the Lynx has no regional variants.
func (e *Emulator) GetRegion() emucore.Region {
	return emucore.RegionNTSC
}

// SetRegion is a no-op.
func (e *Emulator) SetRegion(region emucore.Region) {}

// GetTiming returns the display rate the game programmed, rounded.
func (e *Emulator) GetTiming() emucore.Timing {
	return emucore.Timing{
		FPS:       int(math.Round(e.core.AVInfo().FPS)),
		Scanlines: scanlines,
	}
}

// SetOption applies a core option.
func (e *Emulator) SetOption(key, value string) {
	switch key {
	case OptionRotateControls:
		on, err := strconv.ParseBool(value)
		if err != nil {
			e.host.Printf("Warning: invalid %s value %q", key, value)
			return
		}
		e.core.SetRotateControls(on)
	}
}

// Close releases the core.
func (e *Emulator) Close() {
	e.core.Unload()
}

// Reset power cycles the machine.
func (e *Emulator) Reset() {
	e.core.Reset()
	e.resampler.Reset()
}

// Rotation returns the screen rotation the cartridge asked for.
func (e *Emulator) Rotation() emu.Rotation {
	return e.core.Rotation()
}

// Serialize returns a save state.
func (e *Emulator) Serialize() ([]byte, error) {
	buf := make([]byte, e.core.SerializeSize())
	if err := e.core.Serialize(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// Deserialize restores a save state. On error the running machine is
// unchanged.
func (e *Emulator) Deserialize(data []byte) error {
	return e.core.Deserialize(data)
}

// MemoryMap lists the exported memory regions.
func (e *Emulator) MemoryMap() []emucore.MemoryRegion {
	return []emucore.MemoryRegion{
		{Type: emucore.MemorySystemRAM, Size: e.core.MemorySize(core.MemorySystemRAM)},
	}
}

// memoryKind maps emucore region types onto core memory kinds.
func memoryKind(regionType int) (core.MemoryKind, bool) {
	switch regionType {
	case emucore.MemorySystemRAM:
		return core.MemorySystemRAM, true
	case emucore.MemorySaveRAM:
		return core.MemorySaveRAM, true
	}
	return 0, false
}

// ReadRegion returns a copy of a memory region, or nil.
func (e *Emulator) ReadRegion(regionType int) []byte {
	kind, ok := memoryKind(regionType)
	if !ok {
		return nil
	}
	var out []byte
	e.core.WithMemory(kind, func(mem []byte) {
		out = append([]byte(nil), mem...)
	})
	return out
}

// WriteRegion copies data into a memory region.
func (e *Emulator) WriteRegion(regionType int, data []byte) {
	kind, ok := memoryKind(regionType)
	if !ok {
		return
	}
	e.core.WithMemory(kind, func(mem []byte) {
		copy(mem, data)
	})
}

// ReadMemory reads system RAM starting at addr into buf and returns the
// number of bytes read. Reads stop at the end of RAM.
func (e *Emulator) ReadMemory(addr uint32, buf []byte) uint32 {
	var n int
	e.core.WithMemory(core.MemorySystemRAM, func(mem []byte) {
		if int(addr) < len(mem) {
			n = copy(buf, mem[addr:])
		}
	})
	return uint32(n)
}
