package emu

import "testing"

// flatBus is 64KB of plain RAM.
type flatBus struct {
	mem [0x10000]uint8
}

func (b *flatBus) Read(addr uint16) uint8 { return b.mem[addr] }

func (b *flatBus) Write(addr uint16, v uint8) { b.mem[addr] = v }

// newTestCPU loads program at $0200 and resets the CPU into it.
func newTestCPU(program ...uint8) (*CPU, *flatBus) {
	bus := &flatBus{}
	copy(bus.mem[0x0200:], program)
	bus.mem[vectorReset] = 0x00
	bus.mem[vectorReset+1] = 0x02
	c := NewCPU(bus)
	c.Reset()
	return c, bus
}

func TestCPU_ResetVector(t *testing.T) {
	c, _ := newTestCPU()
	if c.PC != 0x0200 {
		t.Errorf("PC = %04X, want 0200", c.PC)
	}
	if c.P&flagI == 0 {
		t.Error("I flag should be set after reset")
	}
}

func TestCPU_LoadStore(t *testing.T) {
	c, bus := newTestCPU(0xA9, 0x42, 0x8D, 0x00, 0x30)

	if n := c.Step(); n != 2 {
		t.Errorf("LDA #imm cycles = %d, want 2", n)
	}
	if n := c.Step(); n != 4 {
		t.Errorf("STA abs cycles = %d, want 4", n)
	}
	if bus.mem[0x3000] != 0x42 {
		t.Errorf("mem[$3000] = %02X, want 42", bus.mem[0x3000])
	}
}

func TestCPU_ADCOverflow(t *testing.T) {
	// CLC; LDA #$50; ADC #$50
	c, _ := newTestCPU(0x18, 0xA9, 0x50, 0x69, 0x50)
	c.Step()
	c.Step()
	c.Step()

	if c.A != 0xA0 {
		t.Errorf("A = %02X, want A0", c.A)
	}
	if c.P&flagV == 0 {
		t.Error("V should be set")
	}
	if c.P&flagN == 0 {
		t.Error("N should be set")
	}
	if c.P&flagC != 0 {
		t.Error("C should be clear")
	}
}

func TestCPU_ADCDecimal(t *testing.T) {
	// SED; CLC; LDA #$19; ADC #$28
	c, _ := newTestCPU(0xF8, 0x18, 0xA9, 0x19, 0x69, 0x28)
	c.Step()
	c.Step()
	c.Step()
	n := c.Step()

	if c.A != 0x47 {
		t.Errorf("A = %02X, want 47", c.A)
	}
	if n != 3 {
		t.Errorf("decimal ADC cycles = %d, want 3", n)
	}
}

func TestCPU_ADCDecimalCarry(t *testing.T) {
	// SED; CLC; LDA #$99; ADC #$01
	c, _ := newTestCPU(0xF8, 0x18, 0xA9, 0x99, 0x69, 0x01)
	for i := 0; i < 4; i++ {
		c.Step()
	}
	if c.A != 0x00 {
		t.Errorf("A = %02X, want 00", c.A)
	}
	if c.P&flagC == 0 {
		t.Error("C should be set")
	}
	if c.P&flagZ == 0 {
		t.Error("Z should be set")
	}
}

func TestCPU_SBCDecimal(t *testing.T) {
	// SED; SEC; LDA #$42; SBC #$13
	c, _ := newTestCPU(0xF8, 0x38, 0xA9, 0x42, 0xE9, 0x13)
	for i := 0; i < 4; i++ {
		c.Step()
	}
	if c.A != 0x29 {
		t.Errorf("A = %02X, want 29", c.A)
	}
	if c.P&flagC == 0 {
		t.Error("C should be set (no borrow)")
	}
}

func TestCPU_SBCBorrow(t *testing.T) {
	// SEC; LDA #$10; SBC #$20
	c, _ := newTestCPU(0x38, 0xA9, 0x10, 0xE9, 0x20)
	for i := 0; i < 3; i++ {
		c.Step()
	}
	if c.A != 0xF0 {
		t.Errorf("A = %02X, want F0", c.A)
	}
	if c.P&flagC != 0 {
		t.Error("C should be clear (borrow)")
	}
}

func TestCPU_JSRRTS(t *testing.T) {
	c, bus := newTestCPU(0x20, 0x00, 0x03)
	bus.mem[0x0300] = 0x60

	if n := c.Step(); n != 6 {
		t.Errorf("JSR cycles = %d, want 6", n)
	}
	if c.PC != 0x0300 {
		t.Errorf("PC after JSR = %04X, want 0300", c.PC)
	}
	c.Step()
	if c.PC != 0x0203 {
		t.Errorf("PC after RTS = %04X, want 0203", c.PC)
	}
	if c.SP != 0xFD {
		t.Errorf("SP = %02X, want FD", c.SP)
	}
}

func TestCPU_BranchTiming(t *testing.T) {
	// BRA +2
	c, _ := newTestCPU(0x80, 0x02)
	if n := c.Step(); n != 3 {
		t.Errorf("BRA cycles = %d, want 3", n)
	}
	if c.PC != 0x0204 {
		t.Errorf("PC = %04X, want 0204", c.PC)
	}

	// LDA #0; BNE (not taken)
	c, _ = newTestCPU(0xA9, 0x00, 0xD0, 0x10)
	c.Step()
	if n := c.Step(); n != 2 {
		t.Errorf("untaken BNE cycles = %d, want 2", n)
	}
}

func TestCPU_IRQ(t *testing.T) {
	// CLI
	c, bus := newTestCPU(0x58)
	bus.mem[vectorIRQ] = 0x00
	bus.mem[vectorIRQ+1] = 0x04
	c.Step()

	c.SetIRQ(true)
	if n := c.Step(); n != 7 {
		t.Errorf("IRQ cycles = %d, want 7", n)
	}
	if c.PC != 0x0400 {
		t.Errorf("PC = %04X, want 0400", c.PC)
	}
	if c.P&flagI == 0 {
		t.Error("I should be set inside the handler")
	}
	if bus.mem[0x01FD] != 0x02 || bus.mem[0x01FC] != 0x01 {
		t.Errorf("return address = %02X%02X, want 0201", bus.mem[0x01FD], bus.mem[0x01FC])
	}
	if bus.mem[0x01FB]&flagB != 0 {
		t.Error("B should be clear in the pushed status for IRQ")
	}
}

func TestCPU_IRQMasked(t *testing.T) {
	// NOP with I set
	c, _ := newTestCPU(0xEA)
	c.SetIRQ(true)
	if n := c.Step(); n != 2 {
		t.Errorf("cycles = %d, want 2 (IRQ masked)", n)
	}
	if c.PC != 0x0201 {
		t.Errorf("PC = %04X, want 0201", c.PC)
	}
}

func TestCPU_TSBTRB(t *testing.T) {
	// LDA #$0F; TSB $10; TRB $11
	c, bus := newTestCPU(0xA9, 0x0F, 0x04, 0x10, 0x14, 0x11)
	bus.mem[0x10] = 0xF0
	bus.mem[0x11] = 0xFF

	c.Step()
	c.Step()
	if bus.mem[0x10] != 0xFF {
		t.Errorf("TSB result = %02X, want FF", bus.mem[0x10])
	}
	if c.P&flagZ == 0 {
		t.Error("TSB: Z should be set when A&M == 0")
	}

	c.Step()
	if bus.mem[0x11] != 0xF0 {
		t.Errorf("TRB result = %02X, want F0", bus.mem[0x11])
	}
	if c.P&flagZ != 0 {
		t.Error("TRB: Z should be clear when A&M != 0")
	}
}

func TestCPU_STZAndIndirect(t *testing.T) {
	// LDA #$77; STA ($20); STZ $30
	c, bus := newTestCPU(0xA9, 0x77, 0x92, 0x20, 0x64, 0x30)
	bus.mem[0x20] = 0x00
	bus.mem[0x21] = 0x40
	bus.mem[0x30] = 0xAA

	c.Step()
	c.Step()
	c.Step()
	if bus.mem[0x4000] != 0x77 {
		t.Errorf("STA (zp) wrote %02X, want 77", bus.mem[0x4000])
	}
	if bus.mem[0x30] != 0 {
		t.Errorf("STZ left %02X", bus.mem[0x30])
	}
}

func TestCPU_PageCrossPenalty(t *testing.T) {
	// LDX #$01; LDA $20FF,X
	c, _ := newTestCPU(0xA2, 0x01, 0xBD, 0xFF, 0x20)
	c.Step()
	if n := c.Step(); n != 5 {
		t.Errorf("LDA abs,X crossing page cycles = %d, want 5", n)
	}
}

func TestCPU_UndefinedOpcodes(t *testing.T) {
	c, _ := newTestCPU(0x03, 0x5C, 0x00, 0x00, 0x02, 0x00)
	if n := c.Step(); n != 1 || c.PC != 0x0201 {
		t.Errorf("$03: cycles=%d PC=%04X, want 1, 0201", n, c.PC)
	}
	if n := c.Step(); n != 8 || c.PC != 0x0204 {
		t.Errorf("$5C: cycles=%d PC=%04X, want 8, 0204", n, c.PC)
	}
	if n := c.Step(); n != 2 || c.PC != 0x0206 {
		t.Errorf("$02: cycles=%d PC=%04X, want 2, 0206", n, c.PC)
	}
}

func TestCPU_BRK(t *testing.T) {
	c, bus := newTestCPU(0x00, 0xEA)
	bus.mem[vectorIRQ] = 0x00
	bus.mem[vectorIRQ+1] = 0x05

	c.Step()
	if c.PC != 0x0500 {
		t.Errorf("PC = %04X, want 0500", c.PC)
	}
	if bus.mem[0x01FB]&flagB == 0 {
		t.Error("B should be set in the pushed status for BRK")
	}
	ret := uint16(bus.mem[0x01FD])<<8 | uint16(bus.mem[0x01FC])
	if ret != 0x0202 {
		t.Errorf("return address = %04X, want 0202", ret)
	}
}
