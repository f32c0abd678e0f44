package core

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/user-none/elynx/emu"
)

// fakeEngine is a scripted engine: each frame lasts frameTicks ticks.
type fakeEngine struct {
	frameTicks int
	sinceFrame int
	ticks      int
	samples    int

	joystick  uint8
	switches  uint8
	joyWrites int
	swWrites  int

	screen   []byte
	rate     float64
	ram      []byte
	rotation emu.Rotation
	resets   int

	cartErr error
	bootErr error
	boot    []byte
	cart    []byte

	stateErr error
}

func newFakeEngine(frameTicks int) *fakeEngine {
	return &fakeEngine{
		frameTicks: frameTicks,
		screen:     make([]byte, ScreenWidth*ScreenHeight*3),
		rate:       DefaultFPS,
		ram:        make([]byte, emu.RAMSize),
	}
}

func (f *fakeEngine) Tick() {
	f.ticks++
	f.sinceFrame++
}

func (f *fakeEngine) RedrawRequested() bool {
	if f.sinceFrame >= f.frameTicks {
		f.sinceFrame = 0
		return true
	}
	return false
}

func (f *fakeEngine) AudioSample() (int16, int16) {
	f.samples++
	return int16(f.samples), -int16(f.samples)
}

func (f *fakeEngine) Screen() []byte              { return f.screen }
func (f *fakeEngine) DisplayRefreshRate() float64 { return f.rate }
func (f *fakeEngine) Joystick() uint8             { return f.joystick }
func (f *fakeEngine) Switches() uint8             { return f.switches }
func (f *fakeEngine) Rotation() emu.Rotation      { return f.rotation }
func (f *fakeEngine) Reset()                      { f.resets++ }
func (f *fakeEngine) RAM() []byte                 { return f.ram }

func (f *fakeEngine) SetJoystick(v uint8) {
	f.joystick = v
	f.joyWrites++
}

func (f *fakeEngine) SetSwitches(v uint8) {
	f.switches = v
	f.swWrites++
}

func (f *fakeEngine) LoadBootROM(data []byte) error {
	if f.bootErr != nil {
		return f.bootErr
	}
	f.boot = data
	return nil
}

func (f *fakeEngine) LoadCart(data []byte) error {
	if f.cartErr != nil {
		return f.cartErr
	}
	f.cart = data
	return nil
}

// Fake states are the tick count as 8 bytes.
func (f *fakeEngine) SerializeSize() int { return 8 }

func (f *fakeEngine) Serialize(buf []byte) error {
	if f.stateErr != nil {
		return f.stateErr
	}
	binary.LittleEndian.PutUint64(buf, uint64(f.ticks))
	return nil
}

// fakeFactory hands out a prepared engine and restores fake states.
type fakeFactory struct {
	engine *fakeEngine
}

var errFakeState = errors.New("fake state rejected")

func (ff *fakeFactory) New() Engine { return ff.engine }

func (ff *fakeFactory) Restore(data []byte, prev Engine) (Engine, error) {
	p, ok := prev.(*fakeEngine)
	if !ok {
		return nil, fmt.Errorf("unexpected engine %T", prev)
	}
	if len(data) != 8 {
		return nil, errFakeState
	}
	n := *p
	n.ticks = int(binary.LittleEndian.Uint64(data))
	return &n, nil
}

// fakeHost records everything the core sends to the host.
type fakeHost struct {
	pressed map[JoypadButton]bool
	polls   int

	samples [][2]int16
	frames  int
	last    *FrameBuffer
	mode    RenderMode

	avInfos []AVInfo

	formats      map[PixelFormat]bool
	sysDir       string
	hasSysDir    bool
	rotation     emu.Rotation
	rotationSets int
	logs         []string

	noGame *bool
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		pressed: map[JoypadButton]bool{},
		formats: map[PixelFormat]bool{PixelFormatXRGB8888: true, PixelFormatRGB565: true},
	}
}

func (h *fakeHost) PollInputs() bool {
	h.polls++
	return true
}

func (h *fakeHost) JoypadPressed(b JoypadButton) bool { return h.pressed[b] }

func (h *fakeHost) UploadAudioSample(l, r int16) {
	h.samples = append(h.samples, [2]int16{l, r})
}

func (h *fakeHost) UploadVideoFrame(mode RenderMode, f *FrameBuffer) {
	h.frames++
	h.last = f
	h.mode = mode
}

func (h *fakeHost) SetSystemAVInfo(info AVInfo) bool {
	h.avInfos = append(h.avInfos, info)
	return true
}

func (h *fakeHost) SetPixelFormat(f PixelFormat) bool { return h.formats[f] }

func (h *fakeHost) SystemDirectory() (string, bool) { return h.sysDir, h.hasSysDir }

func (h *fakeHost) SetRotation(r emu.Rotation) bool {
	h.rotation = r
	h.rotationSets++
	return true
}

func (h *fakeHost) Printf(format string, args ...any) {
	h.logs = append(h.logs, fmt.Sprintf(format, args...))
}

func (h *fakeHost) SetSupportNoGame(supported bool) bool {
	h.noGame = &supported
	return true
}

// loadFake loads a Core around a fake engine.
func loadFake(e *fakeEngine, opts Options) (*Core, *fakeHost, error) {
	h := newFakeHost()
	opts.Factory = &fakeFactory{engine: e}
	c, err := Load([]byte{1}, h, opts)
	return c, h, err
}

// makeHomebrew builds a BLL executable that runs program from $0400.
func makeHomebrew(program []byte) []byte {
	img := make([]byte, 10+len(program))
	img[0] = 0x80
	img[1] = 0x08
	binary.BigEndian.PutUint16(img[2:4], 0x0400)
	binary.BigEndian.PutUint16(img[4:6], uint16(len(img)))
	copy(img[6:10], "BS93")
	copy(img[10:], program)
	return img
}
