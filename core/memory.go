package core

// MemoryKind selects a memory region. The values match the libretro
// RETRO_MEMORY_* ids.
type MemoryKind uint

const (
	MemorySaveRAM   MemoryKind = 0
	MemoryRTC       MemoryKind = 1
	MemorySystemRAM MemoryKind = 2
	MemoryVideoRAM  MemoryKind = 3
)

// normalizeKind maps selectors the core does not know to an unsupported
// kind instead of failing.
func normalizeKind(kind MemoryKind) MemoryKind {
	switch kind {
	case MemorySaveRAM, MemoryRTC, MemorySystemRAM, MemoryVideoRAM:
		return kind
	}
	return MemoryRTC
}

// MemorySize returns the size of a memory region, or 0 if it is not
// available. Only system RAM is backed.
func (c *Core) MemorySize(kind MemoryKind) int {
	if normalizeKind(kind) != MemorySystemRAM {
		return 0
	}
	return len(c.engine.RAM())
}

// WithMemory calls fn with a mutable view of a memory region and reports
// whether the region exists. The view must not be retained after fn
// returns.
func (c *Core) WithMemory(kind MemoryKind, fn func(mem []byte)) bool {
	if normalizeKind(kind) != MemorySystemRAM {
		return false
	}
	fn(c.engine.RAM())
	return true
}
