package ui

import (
	"sync"
	"time"

	"github.com/user-none/elynx/core"
)

// SharedInput holds the emucore button mask written by the Ebiten thread
// and read by the emulation goroutine.
type SharedInput struct {
	mu      sync.Mutex
	buttons uint32
}

// Set replaces the button mask.
func (si *SharedInput) Set(buttons uint32) {
	si.mu.Lock()
	si.buttons = buttons
	si.mu.Unlock()
}

// Read returns the button mask.
func (si *SharedInput) Read() uint32 {
	si.mu.Lock()
	defer si.mu.Unlock()
	return si.buttons
}

// SharedFramebuffer hands RGBA frames from the emulation goroutine to
// Ebiten's Draw. Update copies into a write buffer and Read copies that
// into a separate read buffer, so neither side holds the lock while
// using the pixels.
type SharedFramebuffer struct {
	mu     sync.Mutex
	write  []byte
	read   []byte
	stride int
	height int
}

// NewSharedFramebuffer allocates buffers for a full Lynx screen.
func NewSharedFramebuffer() *SharedFramebuffer {
	size := core.ScreenWidth * core.ScreenHeight * 4
	return &SharedFramebuffer{
		write: make([]byte, size),
		read:  make([]byte, size),
	}
}

// Update stores a frame.
func (sf *SharedFramebuffer) Update(pixels []byte, stride, height int) {
	sf.mu.Lock()
	n := min(stride*height, len(sf.write), len(pixels))
	copy(sf.write[:n], pixels[:n])
	sf.stride = stride
	sf.height = height
	sf.mu.Unlock()
}

// Read returns a snapshot of the latest frame. The returned slice is
// reused by the next Read.
func (sf *SharedFramebuffer) Read() (pixels []byte, stride, height int) {
	sf.mu.Lock()
	stride, height = sf.stride, sf.height
	n := min(stride*height, len(sf.write))
	copy(sf.read[:n], sf.write[:n])
	sf.mu.Unlock()
	return sf.read, stride, height
}

// EmuControl coordinates pausing and stopping the emulation goroutine
// from the Ebiten thread.
type EmuControl struct {
	mu       sync.Mutex
	pauseReq bool
	paused   bool
	stopped  bool
	ackCh    chan struct{}
}

// NewEmuControl creates a control in the running state.
func NewEmuControl() *EmuControl {
	return &EmuControl{ackCh: make(chan struct{}, 1)}
}

// RequestPause blocks until the emulation goroutine is parked between
// frames. The caller may then touch the emulator until RequestResume.
func (ec *EmuControl) RequestPause() {
	ec.mu.Lock()
	if ec.paused || ec.pauseReq || ec.stopped {
		ec.mu.Unlock()
		return
	}
	ec.pauseReq = true
	ec.mu.Unlock()
	<-ec.ackCh
}

// RequestResume lets a paused emulation goroutine continue.
func (ec *EmuControl) RequestResume() {
	ec.mu.Lock()
	ec.pauseReq = false
	ec.paused = false
	ec.mu.Unlock()
}

// CheckPause is called by the emulation goroutine between frames. It
// parks while a pause is requested and returns false once stopped.
func (ec *EmuControl) CheckPause() bool {
	ec.mu.Lock()
	if ec.stopped {
		ec.mu.Unlock()
		return false
	}
	if !ec.pauseReq {
		ec.mu.Unlock()
		return true
	}
	ec.paused = true
	ec.mu.Unlock()

	select {
	case ec.ackCh <- struct{}{}:
	default:
	}

	for {
		time.Sleep(10 * time.Millisecond)
		ec.mu.Lock()
		switch {
		case ec.stopped:
			ec.mu.Unlock()
			return false
		case !ec.pauseReq:
			ec.paused = false
			ec.mu.Unlock()
			return true
		}
		ec.mu.Unlock()
	}
}

// Stop makes CheckPause return false, releasing a parked goroutine.
func (ec *EmuControl) Stop() {
	ec.mu.Lock()
	ec.stopped = true
	ec.pauseReq = false
	ec.mu.Unlock()
}

// IsPaused reports whether the emulation goroutine is parked.
func (ec *EmuControl) IsPaused() bool {
	ec.mu.Lock()
	defer ec.mu.Unlock()
	return ec.paused
}
