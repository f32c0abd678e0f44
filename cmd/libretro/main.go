// Command libretro builds the elynx libretro core:
//
//	go build -buildmode=c-shared -o elynx_libretro.so ./cmd/libretro
package main

import _ "github.com/user-none/elynx/libretro"

func main() {}
