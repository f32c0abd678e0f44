// Package libretro exposes the core as a libretro plugin. Build it into a
// c-shared library through cmd/libretro.
package libretro

/*
#include <stdlib.h>
#include <string.h>
#include "libretro.h"
#include "cfuncs.h"
*/
import "C"
import (
	"unsafe"

	"github.com/user-none/elynx/core"
)

const optionRotateControls = "elynx_rotate_controls"

// memoryBuffer is a C-allocated mirror of an engine memory region. The
// frontend keeps the pointer across frames, so it cannot point at Go
// memory.
type memoryBuffer struct {
	buf  *C.uint8_t
	size C.size_t
}

var (
	host    cHost
	session *core.Core

	systemRAM *memoryBuffer

	rotateControls bool

	// Allocated once and never freed; the frontend may hold them.
	libNameStr   *C.char
	libVerStr    *C.char
	validExtStr  *C.char
	optKeyRotate *C.char
	optValRotate *C.char
)

func ensureStrings() {
	if libNameStr != nil {
		return
	}
	info := core.GetSystemInfo()
	libNameStr = C.CString(info.Name)
	libVerStr = C.CString(info.Version)
	validExtStr = C.CString(info.Extensions)
	optKeyRotate = C.CString(optionRotateControls)
	optValRotate = C.CString("Rotate controls with screen; disabled|enabled")
}

//export retro_set_environment
func retro_set_environment(cb C.retro_environment_t) {
	C._retro_set_environment(cb)
	ensureStrings()

	core.Init(host)

	vars := [2]C.struct_retro_variable{
		{key: optKeyRotate, value: optValRotate},
		{key: nil, value: nil},
	}
	C.call_environ_cb(C.RETRO_ENVIRONMENT_SET_VARIABLES, unsafe.Pointer(&vars[0]))
}

//export retro_set_video_refresh
func retro_set_video_refresh(cb C.retro_video_refresh_t) {
	C._retro_set_video_refresh(cb)
}

//export retro_set_audio_sample
func retro_set_audio_sample(cb C.retro_audio_sample_t) {
	C._retro_set_audio_sample(cb)
}

//export retro_set_audio_sample_batch
func retro_set_audio_sample_batch(cb C.retro_audio_sample_batch_t) {
	C._retro_set_audio_sample_batch(cb)
}

//export retro_set_input_poll
func retro_set_input_poll(cb C.retro_input_poll_t) {
	C._retro_set_input_poll(cb)
}

//export retro_set_input_state
func retro_set_input_state(cb C.retro_input_state_t) {
	C._retro_set_input_state(cb)
}

//export retro_init
func retro_init() {
	ensureStrings()
	C.init_log_interface()
}

//export retro_deinit
func retro_deinit() {
	unloadSession()
}

//export retro_api_version
func retro_api_version() C.uint {
	return C.RETRO_API_VERSION
}

//export retro_get_system_info
func retro_get_system_info(info *C.struct_retro_system_info) {
	ensureStrings()
	si := core.GetSystemInfo()
	info.library_name = libNameStr
	info.library_version = libVerStr
	info.valid_extensions = validExtStr
	info.need_fullpath = C.bool(si.NeedFullPath)
	info.block_extract = C.bool(si.BlockExtract)
}

//export retro_get_system_av_info
func retro_get_system_av_info(info *C.struct_retro_system_av_info) {
	var av core.AVInfo
	if session != nil {
		av = session.AVInfo()
	} else {
		av = core.NewTimingNegotiator(core.DefaultFPS, core.ScreenWidth, core.ScreenHeight).AVInfo()
	}
	fillAVInfo(info, av)
}

//export retro_set_controller_port_device
func retro_set_controller_port_device(port C.uint, device C.uint) {
}

//export retro_reset
func retro_reset() {
	if session == nil {
		return
	}
	session.Reset()
	syncToC()
}

//export retro_run
func retro_run() {
	if session == nil {
		return
	}

	var updated C.bool
	if C.call_environ_cb(C.RETRO_ENVIRONMENT_GET_VARIABLE_UPDATE, unsafe.Pointer(&updated)) && updated {
		readVariables()
		session.SetRotateControls(rotateControls)
	}

	syncFromC()
	session.Run(host, host)
	syncToC()
}

//export retro_serialize_size
func retro_serialize_size() C.size_t {
	if session == nil {
		return 0
	}
	return C.size_t(session.SerializeSize())
}

//export retro_serialize
func retro_serialize(data unsafe.Pointer, size C.size_t) C.bool {
	if session == nil || data == nil {
		return false
	}
	buf := unsafe.Slice((*byte)(data), int(size))
	if err := session.Serialize(buf); err != nil {
		host.Printf("Warning: %v", err)
		return false
	}
	return true
}

//export retro_unserialize
func retro_unserialize(data unsafe.Pointer, size C.size_t) C.bool {
	if session == nil || data == nil {
		return false
	}
	state := C.GoBytes(data, C.int(size))
	if err := session.Deserialize(state); err != nil {
		host.Printf("Warning: %v", err)
		return false
	}
	syncToC()
	return true
}

//export retro_cheat_reset
func retro_cheat_reset() {
}

//export retro_cheat_set
func retro_cheat_set(index C.uint, enabled C.bool, code *C.char) {
}

//export retro_load_game
func retro_load_game(game *C.struct_retro_game_info) C.bool {
	unloadSession()

	var data []byte
	if game != nil && game.data != nil && game.size > 0 {
		data = C.GoBytes(game.data, C.int(game.size))
	}

	readVariables()
	c, err := core.Load(data, host, core.Options{RotateControls: rotateControls})
	if err != nil {
		host.Printf("Warning: %v", err)
		return false
	}
	session = c

	if n := session.MemorySize(core.MemorySystemRAM); n > 0 {
		buf := (*C.uint8_t)(C.malloc(C.size_t(n)))
		C.memset(unsafe.Pointer(buf), 0, C.size_t(n))
		systemRAM = &memoryBuffer{buf: buf, size: C.size_t(n)}
	}
	syncToC()
	return true
}

//export retro_load_game_special
func retro_load_game_special(gameType C.uint, info *C.struct_retro_game_info, numInfo C.size_t) C.bool {
	return false
}

//export retro_unload_game
func retro_unload_game() {
	unloadSession()
}

//export retro_get_region
func retro_get_region() C.uint {
	return C.RETRO_REGION_NTSC
}

//export retro_get_memory_data
func retro_get_memory_data(id C.uint) unsafe.Pointer {
	if session == nil || core.MemoryKind(id) != core.MemorySystemRAM || systemRAM == nil {
		return nil
	}
	return unsafe.Pointer(systemRAM.buf)
}

//export retro_get_memory_size
func retro_get_memory_size(id C.uint) C.size_t {
	if session == nil {
		return 0
	}
	return C.size_t(session.MemorySize(core.MemoryKind(id)))
}

// readVariables reads the core variables from the frontend.
func readVariables() {
	v := C.struct_retro_variable{key: optKeyRotate}
	if C.call_environ_cb(C.RETRO_ENVIRONMENT_GET_VARIABLE, unsafe.Pointer(&v)) && v.value != nil {
		rotateControls = parseToggle(C.GoString(v.value))
	}
}

// syncFromC copies frontend writes to the RAM mirror into the engine.
func syncFromC() {
	if systemRAM == nil {
		return
	}
	mirror := unsafe.Slice((*byte)(unsafe.Pointer(systemRAM.buf)), int(systemRAM.size))
	session.WithMemory(core.MemorySystemRAM, func(mem []byte) {
		copy(mem, mirror)
	})
}

// syncToC refreshes the RAM mirror from the engine.
func syncToC() {
	if systemRAM == nil {
		return
	}
	mirror := unsafe.Slice((*byte)(unsafe.Pointer(systemRAM.buf)), int(systemRAM.size))
	session.WithMemory(core.MemorySystemRAM, func(mem []byte) {
		copy(mirror, mem)
	})
}

func unloadSession() {
	if session != nil {
		session.Unload()
		session = nil
	}
	if systemRAM != nil {
		C.free(unsafe.Pointer(systemRAM.buf))
		systemRAM = nil
	}
}
