package libretro

/*
#include <stdlib.h>
#include "libretro.h"
#include "cfuncs.h"
*/
import "C"
import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/user-none/elynx/core"
	"github.com/user-none/elynx/emu"
)

// Compile-time interface checks.
var (
	_ core.LoadEnvironment      = cHost{}
	_ core.RunCallbacks         = cHost{}
	_ core.TimingSetter         = cHost{}
	_ core.CapabilityNegotiator = cHost{}
)

// cHost implements the core's host interfaces over the frontend's C
// callbacks.
type cHost struct{}

func (cHost) SetSupportNoGame(supported bool) bool {
	v := C.bool(supported)
	return bool(C.call_environ_cb(C.RETRO_ENVIRONMENT_SET_SUPPORT_NO_GAME, unsafe.Pointer(&v)))
}

func (cHost) SetPixelFormat(f core.PixelFormat) bool {
	v := C.enum_retro_pixel_format(retroPixelFormat(f))
	return bool(C.call_environ_cb(C.RETRO_ENVIRONMENT_SET_PIXEL_FORMAT, unsafe.Pointer(&v)))
}

func (cHost) SystemDirectory() (string, bool) {
	var dir *C.char
	if !C.call_environ_cb(C.RETRO_ENVIRONMENT_GET_SYSTEM_DIRECTORY, unsafe.Pointer(&dir)) || dir == nil {
		return "", false
	}
	return C.GoString(dir), true
}

func (cHost) SetRotation(r emu.Rotation) bool {
	v := C.uint(retroRotation(r))
	return bool(C.call_environ_cb(C.RETRO_ENVIRONMENT_SET_ROTATION, unsafe.Pointer(&v)))
}

func (cHost) SetSystemAVInfo(info core.AVInfo) bool {
	var av C.struct_retro_system_av_info
	fillAVInfo(&av, info)
	return bool(C.call_environ_cb(C.RETRO_ENVIRONMENT_SET_SYSTEM_AV_INFO, unsafe.Pointer(&av)))
}

func (cHost) PollInputs() bool {
	C.call_input_poll_cb()
	return true
}

func (cHost) JoypadPressed(b core.JoypadButton) bool {
	return C.call_input_state_cb(0, C.RETRO_DEVICE_JOYPAD, 0, C.uint(b)) != 0
}

func (cHost) UploadAudioSample(left, right int16) {
	C.call_audio_cb(C.int16_t(left), C.int16_t(right))
}

func (cHost) UploadVideoFrame(mode core.RenderMode, f *core.FrameBuffer) {
	C.call_video_cb(unsafe.Pointer(&f.Pixels[0]), C.uint(f.Width), C.uint(f.Height), C.size_t(f.Pitch))
}

// Printf sends a message to the frontend's log, or stderr when the
// frontend has none. Messages starting with "Warning:" log as warnings.
func (cHost) Printf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	level := C.enum_retro_log_level(C.RETRO_LOG_INFO)
	if strings.HasPrefix(msg, "Warning:") {
		level = C.RETRO_LOG_WARN
	}
	cmsg := C.CString(msg)
	defer C.free(unsafe.Pointer(cmsg))
	C.call_log(level, cmsg)
}

func fillAVInfo(av *C.struct_retro_system_av_info, info core.AVInfo) {
	av.geometry.base_width = C.uint(info.BaseWidth)
	av.geometry.base_height = C.uint(info.BaseHeight)
	av.geometry.max_width = C.uint(info.MaxWidth)
	av.geometry.max_height = C.uint(info.MaxHeight)
	av.geometry.aspect_ratio = C.float(info.AspectRatio)
	av.timing.fps = C.double(info.FPS)
	av.timing.sample_rate = C.double(info.SampleRate)
}
