package emu

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"strings"
)

// Rotation is the screen orientation a cartridge asks for.
type Rotation uint8

const (
	RotateNone Rotation = iota
	RotateLeft
	RotateRight
)

func (r Rotation) String() string {
	switch r {
	case RotateLeft:
		return "left"
	case RotateRight:
		return "right"
	}
	return "none"
}

// CartFormat identifies the container a game image was loaded from.
type CartFormat uint8

const (
	FormatLNX CartFormat = iota
	FormatHomebrew
)

const (
	lnxHeaderSize  = 64
	lnxMagic       = "LYNX"
	homebrewHeader = 10
	homebrewMagic  = "BS93"
	bankPages      = 256
	maxBankSize    = 0x80000 // 512KB per bank
)

var (
	// ErrInvalidCart is returned for images that are neither a .lnx
	// cartridge nor a BLL homebrew executable.
	ErrInvalidCart = errors.New("unrecognized cartridge image")

	// ErrBootROMRequired is returned when a .lnx cartridge is loaded
	// before a boot ROM has been supplied.
	ErrBootROMRequired = errors.New("boot ROM required for .lnx cartridges")
)

// Cart holds a parsed game image and models the cartridge port.
//
// The .lnx layout is a 64 byte header followed by bank 0 and then bank 1:
//
//	0x00  "LYNX"
//	0x04  bank 0 page size (LE u16)
//	0x06  bank 1 page size (LE u16)
//	0x08  version (LE u16)
//	0x0A  cart name (32 bytes, NUL padded)
//	0x2A  manufacturer (16 bytes, NUL padded)
//	0x3A  rotation (0 none, 1 left, 2 right)
//
// Each bank holds 256 pages. The page is selected by an 8 bit shift
// register clocked from Mikey and the byte within the page by a counter
// that advances on every read.
type Cart struct {
	format       CartFormat
	name         string
	manufacturer string
	rotation     Rotation
	crc          uint32

	bank0     []byte
	bank1     []byte
	pageSize0 int
	pageSize1 int

	// Homebrew executables are copied to RAM at loadAddr.
	loadAddr uint16
	program  []byte

	shifter  uint8
	counter  uint16
	strobe   bool
	addrData bool
}

// ParseCart detects the image format and parses it.
func ParseCart(data []byte) (*Cart, error) {
	switch {
	case len(data) >= lnxHeaderSize && string(data[0:4]) == lnxMagic:
		return parseLNX(data)
	case len(data) >= homebrewHeader && data[0] == 0x80 && data[1] == 0x08 &&
		string(data[6:10]) == homebrewMagic:
		return parseHomebrew(data)
	}
	return nil, ErrInvalidCart
}

func parseLNX(data []byte) (*Cart, error) {
	c := &Cart{
		format:       FormatLNX,
		crc:          crc32.ChecksumIEEE(data),
		pageSize0:    int(binary.LittleEndian.Uint16(data[4:6])),
		pageSize1:    int(binary.LittleEndian.Uint16(data[6:8])),
		name:         headerString(data[0x0A:0x2A]),
		manufacturer: headerString(data[0x2A:0x3A]),
	}

	switch data[0x3A] {
	case 1:
		c.rotation = RotateLeft
	case 2:
		c.rotation = RotateRight
	}

	if c.pageSize0 == 0 {
		return nil, fmt.Errorf("%w: bank 0 page size is zero", ErrInvalidCart)
	}

	payload := data[lnxHeaderSize:]
	size0 := c.pageSize0 * bankPages
	size1 := c.pageSize1 * bankPages
	if size0 > maxBankSize || size1 > maxBankSize {
		return nil, fmt.Errorf("%w: bank size too large (%d, %d)", ErrInvalidCart, size0, size1)
	}

	// Short dumps are padded with 0xFF, the value of an unprogrammed ROM.
	c.bank0 = padded(payload, size0)
	if len(payload) > size0 {
		payload = payload[size0:]
	} else {
		payload = nil
	}
	if size1 > 0 {
		c.bank1 = padded(payload, size1)
	}

	return c, nil
}

func parseHomebrew(data []byte) (*Cart, error) {
	load := binary.BigEndian.Uint16(data[2:4])
	length := int(binary.BigEndian.Uint16(data[4:6]))
	if length < homebrewHeader || length > len(data) {
		length = len(data)
	}
	program := data[homebrewHeader:length]
	if int(load)+len(program) > ramSize {
		return nil, fmt.Errorf("%w: program at $%04X overflows RAM (%d bytes)", ErrInvalidCart, load, len(program))
	}

	return &Cart{
		format:   FormatHomebrew,
		crc:      crc32.ChecksumIEEE(data),
		loadAddr: load,
		program:  append([]byte(nil), program...),
	}, nil
}

func headerString(b []byte) string {
	if i := strings.IndexByte(string(b), 0); i >= 0 {
		b = b[:i]
	}
	return strings.TrimSpace(string(b))
}

func padded(src []byte, size int) []byte {
	out := make([]byte, size)
	n := copy(out, src)
	for i := n; i < size; i++ {
		out[i] = 0xFF
	}
	return out
}

// Format returns the container format.
func (c *Cart) Format() CartFormat { return c.format }

// Name returns the cartridge name from the header.
func (c *Cart) Name() string { return c.name }

// Manufacturer returns the manufacturer from the header.
func (c *Cart) Manufacturer() string { return c.manufacturer }

// Rotation returns the requested screen rotation.
func (c *Cart) Rotation() Rotation { return c.rotation }

// CRC returns the CRC32 of the full image, used to bind save states.
func (c *Cart) CRC() uint32 { return c.crc }

// setStrobe drives the cart address strobe. A rising edge shifts the
// address data bit into the page register; a high strobe holds the
// counter at zero.
func (c *Cart) setStrobe(on bool) {
	if on {
		c.counter = 0
		if !c.strobe {
			var bit uint8
			if c.addrData {
				bit = 1
			}
			c.shifter = c.shifter<<1 | bit
		}
	}
	c.strobe = on
}

func (c *Cart) resetPort() {
	c.shifter = 0
	c.counter = 0
	c.strobe = false
	c.addrData = false
}

func (c *Cart) setAddrData(on bool) {
	c.addrData = on
}

func (c *Cart) readBank(bank []byte, pageSize int) uint8 {
	if len(bank) == 0 {
		return 0xFF
	}
	addr := int(c.shifter)*pageSize + int(c.counter)
	if !c.strobe {
		c.counter = uint16((int(c.counter) + 1) % pageSize)
	}
	return bank[addr%len(bank)]
}

func (c *Cart) read0() uint8 {
	if c.pageSize0 == 0 {
		return 0xFF
	}
	return c.readBank(c.bank0, c.pageSize0)
}

func (c *Cart) read1() uint8 {
	if c.pageSize1 == 0 {
		return 0xFF
	}
	return c.readBank(c.bank1, c.pageSize1)
}
