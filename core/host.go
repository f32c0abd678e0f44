package core

import "github.com/user-none/elynx/emu"

// PixelFormat is a frame buffer layout the host can accept.
type PixelFormat int

const (
	// PixelFormatXRGB8888 is 32 bit little-endian 0x00RRGGBB.
	PixelFormatXRGB8888 PixelFormat = iota
	// PixelFormatRGB565 is 16 bit little-endian RRRRRGGGGGGBBBBB.
	PixelFormatRGB565
)

// BytesPerPixel returns the pixel size of the format.
func (f PixelFormat) BytesPerPixel() int {
	if f == PixelFormatRGB565 {
		return 2
	}
	return 4
}

func (f PixelFormat) String() string {
	if f == PixelFormatRGB565 {
		return "RGB565"
	}
	return "XRGB8888"
}

// RenderMode describes how a frame was produced.
type RenderMode int

const (
	RenderSoftware RenderMode = iota
)

// JoypadButton identifies a button on the host's logical controller. The
// values match the libretro joypad ids.
type JoypadButton uint

const (
	JoypadB JoypadButton = iota
	JoypadY
	JoypadSelect
	JoypadStart
	JoypadUp
	JoypadDown
	JoypadLeft
	JoypadRight
	JoypadA
	JoypadX
	JoypadL
	JoypadR
)

// CapabilityNegotiator receives the capabilities declared at init.
type CapabilityNegotiator interface {
	SetSupportNoGame(supported bool) bool
}

// PixelFormatSetter asks the host to accept a pixel format.
type PixelFormatSetter interface {
	SetPixelFormat(format PixelFormat) bool
}

// SystemDirectoryProvider locates the host's system (BIOS) directory.
type SystemDirectoryProvider interface {
	SystemDirectory() (string, bool)
}

// RotationSetter passes the cartridge's rotation hint to the host.
type RotationSetter interface {
	SetRotation(rotation emu.Rotation) bool
}

// TimingSetter republishes audio/video timing to the host.
type TimingSetter interface {
	SetSystemAVInfo(info AVInfo) bool
}

// InputSource is the host's controller state for port 0.
type InputSource interface {
	// PollInputs refreshes input state and reports whether the host
	// actually polled.
	PollInputs() bool
	JoypadPressed(button JoypadButton) bool
}

// AudioSink receives one stereo sample per call.
type AudioSink interface {
	UploadAudioSample(left, right int16)
}

// VideoSink receives complete frames. The buffer is only valid during
// the call.
type VideoSink interface {
	UploadVideoFrame(mode RenderMode, frame *FrameBuffer)
}

// Logger is the printf-style sink for warnings.
type Logger interface {
	Printf(format string, args ...any)
}

// LoadEnvironment is everything Load needs from the host.
type LoadEnvironment interface {
	PixelFormatSetter
	SystemDirectoryProvider
	RotationSetter
	Logger
}

// RunCallbacks is everything Run needs from the host each frame.
type RunCallbacks interface {
	InputSource
	AudioSink
	VideoSink
}
