package emu

import "fmt"

const (
	Name    = "elynx"
	Version = "0.1.0"

	// RAMSize is the size of the system RAM exposed to frontends.
	RAMSize = ramSize

	ticksPerCPUCycle = 4
)

// Lynx is a cycle-stepped Atari Lynx. Each Tick advances the machine by
// one 16MHz crystal tick; the CPU executes an instruction on the first
// tick of its slot and idles for the rest of its cycles.
type Lynx struct {
	cpu   *CPU
	mikey *Mikey
	suzy  *Suzy
	cart  *Cart
	rom   []byte
	ram   [ramSize]byte

	mapctl   uint8
	sleeping bool   // CPU halted until an interrupt is pending
	cpuWait  int    // ticks left in the current instruction
	ticks    uint64 // crystal ticks since power on
}

// New creates a powered-on Lynx with no boot ROM or cartridge.
func New() *Lynx {
	l := &Lynx{}
	l.mikey = newMikey(&l.ram)
	l.suzy = newSuzy()
	l.cpu = NewCPU(l)
	l.powerOn()
	return l
}

// LoadBootROM installs the 512 byte boot ROM. It must be loaded before a
// .lnx cartridge.
func (l *Lynx) LoadBootROM(data []byte) error {
	if len(data) != bootROMSize {
		return fmt.Errorf("boot ROM must be %d bytes, got %d", bootROMSize, len(data))
	}
	l.rom = append([]byte(nil), data...)
	l.powerOn()
	return nil
}

// LoadCart parses and inserts a game image and power cycles the machine.
// Homebrew executables are copied straight to RAM and started without
// the boot ROM.
func (l *Lynx) LoadCart(data []byte) error {
	cart, err := ParseCart(data)
	if err != nil {
		return err
	}
	if cart.format == FormatLNX && l.rom == nil {
		return ErrBootROMRequired
	}
	l.cart = cart
	l.suzy.cart = cart
	l.powerOn()
	return nil
}

// Reset power cycles the machine, keeping the boot ROM and cartridge.
func (l *Lynx) Reset() {
	l.powerOn()
}

func (l *Lynx) powerOn() {
	l.ram = [ramSize]byte{}
	l.mapctl = 0
	l.sleeping = false
	l.cpuWait = 0
	l.ticks = 0
	l.mikey.reset()
	l.suzy.reset()

	if l.cart != nil {
		l.cart.resetPort()
		if l.cart.format == FormatHomebrew {
			copy(l.ram[l.cart.loadAddr:], l.cart.program)
			l.mapctl = mapROMDisable | mapVectorDisable
			l.cpu.Reset()
			l.cpu.PC = l.cart.loadAddr
			return
		}
	}
	l.cpu.Reset()
}

// Tick advances the machine by one crystal tick.
func (l *Lynx) Tick() {
	l.ticks++
	l.mikey.tick()

	if l.cpuWait > 0 {
		l.cpuWait--
		return
	}
	if l.sleeping {
		if l.mikey.irqPending == 0 {
			return
		}
		l.sleeping = false
	}
	l.cpu.SetIRQ(l.mikey.irqPending != 0)
	l.cpuWait = l.cpu.Step()*ticksPerCPUCycle - 1
}

// RedrawRequested reports whether a frame completed since the last call.
// Reading the flag acknowledges it.
func (l *Lynx) RedrawRequested() bool {
	if l.mikey.redraw {
		l.mikey.redraw = false
		return true
	}
	return false
}

// Screen returns the current frame as packed RGB, three bytes per pixel,
// ScreenWidth by ScreenHeight.
func (l *Lynx) Screen() []byte {
	return l.mikey.screen[:]
}

// DisplayRefreshRate returns the frame rate programmed into the display
// timers, in Hz.
func (l *Lynx) DisplayRefreshRate() float64 {
	return l.mikey.refreshRate
}

// Joystick returns the JOYSTICK register value.
func (l *Lynx) Joystick() uint8 { return l.suzy.joystick }

// SetJoystick sets the JOYSTICK register value.
func (l *Lynx) SetJoystick(v uint8) { l.suzy.joystick = v }

// Switches returns the SWITCHES register value.
func (l *Lynx) Switches() uint8 { return l.suzy.switches }

// SetSwitches sets the SWITCHES register value.
func (l *Lynx) SetSwitches(v uint8) { l.suzy.switches = v }

// RAM returns the live system RAM.
func (l *Lynx) RAM() []byte {
	return l.ram[:]
}

// Cart returns the inserted cartridge, or nil.
func (l *Lynx) Cart() *Cart {
	return l.cart
}

// Rotation returns the screen rotation requested by the cartridge.
func (l *Lynx) Rotation() Rotation {
	if l.cart == nil {
		return RotateNone
	}
	return l.cart.rotation
}

// Ticks returns the number of crystal ticks since power on.
func (l *Lynx) Ticks() uint64 {
	return l.ticks
}

// CPU returns the processor, for debugging and tests.
func (l *Lynx) CPU() *CPU {
	return l.cpu
}
