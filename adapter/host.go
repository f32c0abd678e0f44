package adapter

import (
	"log"
	"os"

	"github.com/user-none/elynx/core"
	"github.com/user-none/elynx/emu"
)

// OutputSampleRate is the rate the eblitui frontends play audio at.
const OutputSampleRate = 48000

// buttonBits maps host buttons to emucore input mask bits.
var buttonBits = map[core.JoypadButton]uint{
	core.JoypadUp:    0,
	core.JoypadDown:  1,
	core.JoypadLeft:  2,
	core.JoypadRight: 3,
	core.JoypadA:     ButtonA,
	core.JoypadB:     ButtonB,
	core.JoypadL:     ButtonOption1,
	core.JoypadR:     ButtonOption2,
	core.JoypadStart: ButtonPause,
}

// host buffers one frame of core output for frontends that pull frames,
// samples and timing after each RunFrame instead of taking callbacks.
type host struct {
	biosDir string
	logger  *log.Logger

	buttons uint32

	rotation emu.Rotation
	fps      float64

	// Native rate samples from the current frame.
	raw []int16

	// RGBA frame, converted from XRGB8888 on upload.
	rgba   []byte
	stride int
}

func newHost(biosDir string) *host {
	return &host{
		biosDir: biosDir,
		logger:  log.New(os.Stderr, "", log.LstdFlags),
		fps:     core.DefaultFPS,
		rgba:    make([]byte, core.ScreenWidth*core.ScreenHeight*4),
		stride:  core.ScreenWidth * 4,
	}
}

// Only XRGB8888 is accepted so frames convert to RGBA with a byte swap.
func (h *host) SetPixelFormat(f core.PixelFormat) bool {
	return f == core.PixelFormatXRGB8888
}

func (h *host) SystemDirectory() (string, bool) {
	return h.biosDir, h.biosDir != ""
}

func (h *host) SetRotation(r emu.Rotation) bool {
	h.rotation = r
	return true
}

func (h *host) Printf(format string, args ...any) {
	h.logger.Printf(format, args...)
}

func (h *host) PollInputs() bool { return true }

func (h *host) JoypadPressed(b core.JoypadButton) bool {
	bit, ok := buttonBits[b]
	return ok && h.buttons&(1<<bit) != 0
}

func (h *host) UploadAudioSample(left, right int16) {
	h.raw = append(h.raw, left, right)
}

func (h *host) UploadVideoFrame(mode core.RenderMode, f *core.FrameBuffer) {
	for y := 0; y < f.Height; y++ {
		src := f.Pixels[y*f.Pitch:]
		dst := h.rgba[y*h.stride:]
		for x := 0; x < f.Width; x++ {
			dst[x*4+0] = src[x*4+2] // R
			dst[x*4+1] = src[x*4+1] // G
			dst[x*4+2] = src[x*4+0] // B
			dst[x*4+3] = 0xFF
		}
	}
}

func (h *host) SetSystemAVInfo(info core.AVInfo) bool {
	h.fps = info.FPS
	return true
}
