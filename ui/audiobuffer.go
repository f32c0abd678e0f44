package ui

import (
	"io"
	"sync"
)

// AudioRingBuffer is a byte FIFO between the emulation goroutine and
// oto's pull-model player. Reads block until data arrives; writes never
// block and overwrite the oldest audio when full, so a stalled player
// costs a glitch instead of a stalled emulator.
type AudioRingBuffer struct {
	mu     sync.Mutex
	cond   *sync.Cond
	buf    []byte
	head   int // next read
	count  int
	closed bool
}

// NewAudioRingBuffer creates a ring buffer holding capacity bytes.
func NewAudioRingBuffer(capacity int) *AudioRingBuffer {
	rb := &AudioRingBuffer{buf: make([]byte, capacity)}
	rb.cond = sync.NewCond(&rb.mu)
	return rb
}

// Write appends p, dropping the oldest bytes on overflow.
func (rb *AudioRingBuffer) Write(p []byte) {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	if rb.closed || len(p) == 0 {
		return
	}

	size := len(rb.buf)
	if len(p) > size {
		p = p[len(p)-size:]
	}
	if drop := rb.count + len(p) - size; drop > 0 {
		rb.head = (rb.head + drop) % size
		rb.count -= drop
	}

	tail := (rb.head + rb.count) % size
	n := copy(rb.buf[tail:], p)
	copy(rb.buf, p[n:])
	rb.count += len(p)
	rb.cond.Signal()
}

// Read implements io.Reader. It returns io.EOF once closed and drained.
func (rb *AudioRingBuffer) Read(p []byte) (int, error) {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	for rb.count == 0 {
		if rb.closed {
			return 0, io.EOF
		}
		rb.cond.Wait()
	}

	want := min(len(p), rb.count)
	n := copy(p[:want], rb.buf[rb.head:])
	if n < want {
		n += copy(p[n:want], rb.buf)
	}
	rb.head = (rb.head + n) % len(rb.buf)
	rb.count -= n
	return n, nil
}

// Buffered returns the number of unread bytes.
func (rb *AudioRingBuffer) Buffered() int {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	return rb.count
}

// Clear discards all buffered audio.
func (rb *AudioRingBuffer) Clear() {
	rb.mu.Lock()
	rb.head = 0
	rb.count = 0
	rb.mu.Unlock()
}

// Close wakes blocked readers; later reads drain what is left.
func (rb *AudioRingBuffer) Close() {
	rb.mu.Lock()
	rb.closed = true
	rb.cond.Broadcast()
	rb.mu.Unlock()
}
