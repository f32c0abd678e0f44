package main

import (
	"flag"
	"log"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/user-none/eblitui/romloader"
	"github.com/user-none/elynx/adapter"
	emubridge "github.com/user-none/elynx/bridge/ebiten"
	"github.com/user-none/elynx/cli"
	"github.com/user-none/elynx/core"
)

func main() {
	romPath := flag.String("rom", "", "path to .lnx or .o file, optionally archived (required)")
	biosDir := flag.String("bios", "", "directory containing "+core.BootImageName+" (needed for .lnx)")
	rotateControls := flag.Bool("rotate-controls", false, "rotate the d-pad with the screen on rotated games")
	wavPath := flag.String("wav", "", "record audio to a WAV file")
	flag.Parse()

	if *romPath == "" {
		log.Fatal("ROM path is required. Usage: elynx -rom <path> [-bios <dir>]")
	}

	romData, name, err := romloader.Load(*romPath, []string{".lnx", ".o"})
	if err != nil {
		log.Fatalf("Failed to load ROM: %v", err)
	}

	e, err := emubridge.NewEmulator(romData, adapter.Config{
		BIOSDir:        *biosDir,
		RotateControls: *rotateControls,
	})
	if err != nil {
		log.Fatalf("Failed to initialize emulator: %v", err)
	}
	defer e.Close()

	w, h := emubridge.DisplaySize(e.Rotation())
	ebiten.SetWindowSize(w*3, h*3)
	ebiten.SetWindowTitle(core.Name + " - " + name)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSizeLimits(w*2, h*2, -1, -1)
	ebiten.SetTPS(60)

	runner := cli.NewRunner(e, cli.Options{
		WavPath:   *wavPath,
		StatePath: strings.TrimSuffix(*romPath, filepath.Ext(*romPath)) + ".state",
	})
	defer runner.Close()

	if err := ebiten.RunGame(runner); err != nil {
		log.Fatal(err)
	}
}
