//go:build !libretro && !ios

package main

import (
	"flag"
	"log"
	"strconv"

	"github.com/user-none/eblitui/standalone"
	"github.com/user-none/elynx/adapter"
	"github.com/user-none/elynx/core"
)

func main() {
	romPath := flag.String("rom", "", "path to ROM file (opens UI if not provided)")
	biosDir := flag.String("bios", "", "directory containing "+core.BootImageName)
	rotateControls := flag.Bool("rotate-controls", false, "rotate the d-pad with the screen on rotated games")
	flag.Parse()

	factory := &adapter.Factory{BIOSDir: *biosDir}

	if *romPath != "" {
		options := map[string]string{
			adapter.OptionRotateControls: strconv.FormatBool(*rotateControls),
		}
		if err := standalone.RunDirect(factory, *romPath, "auto", options); err != nil {
			log.Fatal(err)
		}
		return
	}

	if err := standalone.Run(factory); err != nil {
		log.Fatal(err)
	}
}
