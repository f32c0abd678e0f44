package adapter

import (
	emucore "github.com/user-none/eblitui/api"
	"github.com/user-none/elynx/core"
	"github.com/user-none/elynx/emu"
)

// Compile-time interface check.
var _ emucore.CoreFactory = (*Factory)(nil)

// Button bit positions in the emucore input mask. Bits 0-3 are the d-pad.
const (
	ButtonA       = 4
	ButtonB       = 5
	ButtonOption1 = 6
	ButtonOption2 = 7
	ButtonPause   = 8
)

// OptionRotateControls turns the d-pad with the screen on rotated carts.
const OptionRotateControls = "rotate_controls"

// Factory implements emucore.CoreFactory for the Lynx emulator.
type Factory struct {
	// BIOSDir is searched for core.BootImageName. Homebrew .o files run
	// without it; .lnx cartridges need it.
	BIOSDir string
}

// SystemInfo returns system metadata for UI configuration.
func (f *Factory) SystemInfo() emucore.SystemInfo {
	return emucore.SystemInfo{
		Name:            core.Name,
		ConsoleName:     "Atari Lynx",
		Extensions:      []string{".lnx", ".o"},
		ScreenWidth:     core.ScreenWidth,
		MaxScreenHeight: core.ScreenHeight,
		AspectRatio:     float64(core.ScreenWidth) / float64(core.ScreenHeight),
		SampleRate:      OutputSampleRate,
		Buttons: []emucore.Button{
			{Name: "A", ID: ButtonA, DefaultKey: "J", DefaultPad: "A"},
			{Name: "B", ID: ButtonB, DefaultKey: "K", DefaultPad: "B"},
			{Name: "Option 1", ID: ButtonOption1, DefaultKey: "U", DefaultPad: "L1"},
			{Name: "Option 2", ID: ButtonOption2, DefaultKey: "I", DefaultPad: "R1"},
			{Name: "Pause", ID: ButtonPause, DefaultKey: "Enter", DefaultPad: "Start"},
		},
		Players: 1,
		CoreOptions: []emucore.CoreOption{
			{
				Key:         OptionRotateControls,
				Label:       "Rotate Controls",
				Description: "Rotate the d-pad with the screen on rotated games",
				Type:        emucore.CoreOptionBool,
				Default:     "false",
				Category:    emucore.CoreOptionCategoryInput,
				PerGame:     true,
			},
		},
		RDBName:       "Atari - Lynx",
		ThumbnailRepo: "Atari_-_Lynx",
		DataDirName:   "elynx",
		ConsoleID:     13,
		CoreName:      core.Name,
		CoreVersion:   core.Version,
		SerializeSize: emu.SerializeSize,
	}
}

// CreateEmulator creates a new emulator instance for the given game image.
// The Lynx has no regions; region is ignored.
func (f *Factory) CreateEmulator(rom []byte, region emucore.Region) (emucore.Emulator, error) {
	return NewEmulator(rom, Config{BIOSDir: f.BIOSDir})
}

// DetectRegion always reports NTSC timing. The bool return is false since
// no database lookup is involved.
func (f *Factory) DetectRegion(rom []byte) (emucore.Region, bool) {
	return emucore.RegionNTSC, false
}
