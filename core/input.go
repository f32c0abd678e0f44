package core

import "github.com/user-none/elynx/emu"

// Binding maps one host button to one JOYSTICK bit.
type Binding struct {
	Button JoypadButton
	Bit    uint8
}

// InputTable is the full host-to-engine mapping for one screen rotation.
type InputTable struct {
	Joystick []Binding
	Pause    JoypadButton
}

// InputTables holds one table per rotation.
type InputTables map[emu.Rotation]InputTable

// DefaultInputTables returns the standard layout. Face and option buttons
// are the same for every rotation; the d-pad is turned so that "up" on
// the host pad points up on the rotated screen.
//
// RotateRight carts are shown turned 90 degrees counter-clockwise and
// RotateLeft carts 90 degrees clockwise.
func DefaultInputTables() InputTables {
	buttons := []Binding{
		{JoypadL, emu.JoyOption1},
		{JoypadR, emu.JoyOption2},
		{JoypadA, emu.JoyInside},
		{JoypadB, emu.JoyOutside},
	}
	table := func(up, down, left, right uint8) InputTable {
		b := []Binding{
			{JoypadUp, up},
			{JoypadDown, down},
			{JoypadLeft, left},
			{JoypadRight, right},
		}
		return InputTable{Joystick: append(b, buttons...), Pause: JoypadStart}
	}

	return InputTables{
		emu.RotateNone:  table(emu.JoyUp, emu.JoyDown, emu.JoyLeft, emu.JoyRight),
		emu.RotateRight: table(emu.JoyRight, emu.JoyLeft, emu.JoyUp, emu.JoyDown),
		emu.RotateLeft:  table(emu.JoyLeft, emu.JoyRight, emu.JoyDown, emu.JoyUp),
	}
}

// InputMapper translates host buttons into the engine's JOYSTICK and
// SWITCHES registers.
type InputMapper struct {
	table InputTable
}

// NewInputMapper selects the table for rotation. Unless rotateControls is
// set the unrotated table is used for every rotation. A missing table
// falls back to the unrotated one.
func NewInputMapper(tables InputTables, rotation emu.Rotation, rotateControls bool) *InputMapper {
	t := tables[emu.RotateNone]
	if rotateControls {
		if rt, ok := tables[rotation]; ok {
			t = rt
		}
	}
	t.Joystick = append([]Binding(nil), t.Joystick...)
	return &InputMapper{table: t}
}

// Poll polls the host once and writes the rebuilt registers back to the
// engine, each only if it changed. Switch bits other than pause are left
// as the engine has them.
func (m *InputMapper) Poll(e Engine, in InputSource) bool {
	oldJoy := e.Joystick()
	oldSw := e.Switches()

	polled := in.PollInputs()

	var joy uint8
	for _, b := range m.table.Joystick {
		if in.JoypadPressed(b.Button) {
			joy |= b.Bit
		}
	}
	sw := oldSw &^ emu.SwitchPause
	if in.JoypadPressed(m.table.Pause) {
		sw |= emu.SwitchPause
	}

	if joy != oldJoy {
		e.SetJoystick(joy)
	}
	if sw != oldSw {
		e.SetSwitches(sw)
	}
	return polled
}
