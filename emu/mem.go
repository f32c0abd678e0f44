package emu

const (
	ramSize     = 0x10000 // 64KB RAM
	bootROMSize = 0x200   // 512 byte boot ROM

	suzyBase   = 0xFC00
	mikeyBase  = 0xFD00
	romBase    = 0xFE00
	mapctlAddr = 0xFFF9
	vectorBase = 0xFFFA
)

// MAPCTL bits. A set bit replaces the overlay with RAM.
const (
	mapSuzyDisable   = 0x01
	mapMikeyDisable  = 0x02
	mapROMDisable    = 0x04
	mapVectorDisable = 0x08
)

// Read implements Bus with the Lynx memory map.
//
// Address map:
//
//	$0000-$FBFF  RAM
//	$FC00-$FCFF  Suzy (RAM when MAPCTL bit 0 is set)
//	$FD00-$FDFF  Mikey (RAM when MAPCTL bit 1 is set)
//	$FE00-$FFF7  boot ROM (RAM when MAPCTL bit 2 is set)
//	$FFF8        RAM
//	$FFF9        MAPCTL
//	$FFFA-$FFFF  vectors from ROM (RAM when MAPCTL bit 3 is set)
//
// Without a boot ROM the ROM overlays read through to RAM.
func (l *Lynx) Read(addr uint16) uint8 {
	switch {
	case addr < suzyBase:
		return l.ram[addr]
	case addr < mikeyBase:
		if l.mapctl&mapSuzyDisable == 0 {
			return l.suzy.read(addr)
		}
	case addr < romBase:
		if l.mapctl&mapMikeyDisable == 0 {
			return l.mikey.read(addr)
		}
	case addr == mapctlAddr:
		return l.mapctl
	case addr >= vectorBase:
		if l.mapctl&mapVectorDisable == 0 && l.rom != nil {
			return l.rom[addr-romBase]
		}
	case addr < mapctlAddr-1:
		if l.mapctl&mapROMDisable == 0 && l.rom != nil {
			return l.rom[addr-romBase]
		}
	}
	return l.ram[addr]
}

// Write implements Bus. Writes to ROM-mapped addresses land in the RAM
// underneath.
func (l *Lynx) Write(addr uint16, v uint8) {
	switch {
	case addr >= suzyBase && addr < mikeyBase && l.mapctl&mapSuzyDisable == 0:
		l.suzy.write(addr, v)
		return
	case addr >= mikeyBase && addr < romBase && l.mapctl&mapMikeyDisable == 0:
		l.writeMikey(addr, v)
		return
	case addr == mapctlAddr:
		l.mapctl = v
		return
	}
	l.ram[addr] = v
}

// writeMikey forwards to Mikey and applies the register side effects
// that reach outside the chip.
func (l *Lynx) writeMikey(addr uint16, v uint8) {
	l.mikey.write(addr, v)
	switch uint8(addr) {
	case regCPUSleep:
		if l.suzy.spriteDone {
			l.suzy.spriteDone = false
			return
		}
		l.sleeping = true
	case regSysCtl1:
		if l.cart != nil {
			l.cart.setStrobe(v&sysCtl1CartStrobe != 0)
		}
	case regIODat:
		if l.cart != nil {
			l.cart.setAddrData(v&ioDatCartAddr != 0)
		}
	}
}
