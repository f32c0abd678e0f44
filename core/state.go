package core

import "fmt"

// SerializeSize returns the fixed save state size reported by the engine.
func (c *Core) SerializeSize() int {
	return c.engine.SerializeSize()
}

// Serialize writes exactly SerializeSize bytes of state into buf.
func (c *Core) Serialize(buf []byte) error {
	n := c.engine.SerializeSize()
	if len(buf) < n {
		return fmt.Errorf("%w: %w: need %d bytes, got %d", ErrState, ErrBufferSize, n, len(buf))
	}
	if err := c.engine.Serialize(buf[:n]); err != nil {
		return fmt.Errorf("%w: %w", ErrState, err)
	}
	return nil
}

// Deserialize replaces the engine with one rebuilt from buf. On failure
// the current engine is kept as it was.
func (c *Core) Deserialize(buf []byte) error {
	e, err := c.factory.Restore(buf, c.engine)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrState, err)
	}
	c.engine = e
	return nil
}
