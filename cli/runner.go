// Package cli provides a command-line runner for the emulator.
// It handles input polling and runs the emulator in a window without the full UI.
package cli

import (
	"log"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/user-none/elynx/adapter"
	emubridge "github.com/user-none/elynx/bridge/ebiten"
	"github.com/user-none/elynx/ui"
)

// ADT buffer thresholds in bytes.
const (
	adtMinBuffer = 9600
	adtMaxBuffer = 19200
)

// Options configures a Runner.
type Options struct {
	// WavPath records all emitted audio when set.
	WavPath string
	// StatePath is where F5 saves and F9 loads a save state.
	StatePath string
}

// Runner wraps an emulator for command-line mode.
// The emulator runs on a dedicated goroutine with audio-driven timing.
// The Ebiten thread handles input polling and rendering from the shared framebuffer.
type Runner struct {
	emulator    *emubridge.Emulator
	audioPlayer *ui.AudioPlayer
	wav         *ui.WavWriter
	statePath   string

	emuControl        *ui.EmuControl
	sharedInput       *ui.SharedInput
	sharedFramebuffer *ui.SharedFramebuffer
	emuDone           chan struct{}
}

// NewRunner creates a new Runner wrapping the given emulator.
// Audio and recording failures are non-fatal.
func NewRunner(e *emubridge.Emulator, opts Options) *Runner {
	player, err := ui.NewAudioPlayer(1.0)
	if err != nil {
		log.Printf("Warning: audio initialization failed: %v", err)
	}

	var wav *ui.WavWriter
	if opts.WavPath != "" {
		wav, err = ui.NewWavWriter(opts.WavPath, adapter.OutputSampleRate)
		if err != nil {
			log.Printf("Warning: audio recording disabled: %v", err)
		}
	}

	r := &Runner{
		emulator:          e,
		audioPlayer:       player,
		wav:               wav,
		statePath:         opts.StatePath,
		emuControl:        ui.NewEmuControl(),
		sharedInput:       &ui.SharedInput{},
		sharedFramebuffer: ui.NewSharedFramebuffer(),
		emuDone:           make(chan struct{}),
	}

	go r.emulationLoop()

	return r
}

// Close stops emulation and releases audio resources.
func (r *Runner) Close() {
	r.emuControl.Stop()
	<-r.emuDone

	if r.audioPlayer != nil {
		r.audioPlayer.Close()
		r.audioPlayer = nil
	}
	if r.wav != nil {
		if err := r.wav.Close(); err != nil {
			log.Printf("Warning: %v", err)
		}
		r.wav = nil
	}
}

// emulationLoop runs on a dedicated goroutine with ADT.
func (r *Runner) emulationLoop() {
	defer close(r.emuDone)

	lastFrameTime := time.Now()

	for r.emuControl.CheckPause() {
		// The game may reprogram the display rate at any time.
		frameTime := time.Duration(float64(time.Second) / float64(max(r.emulator.GetTiming().FPS, 1)))

		r.emulator.SetInput(0, r.sharedInput.Read())
		r.emulator.RunFrame()

		samples := r.emulator.GetAudioSamples()
		if r.audioPlayer != nil {
			r.audioPlayer.QueueSamples(samples)
		}
		if r.wav != nil {
			if err := r.wav.Write(samples); err != nil {
				log.Printf("Warning: %v", err)
				r.wav = nil
			}
		}

		r.sharedFramebuffer.Update(
			r.emulator.GetFramebuffer(),
			r.emulator.GetFramebufferStride(),
			r.emulator.GetActiveHeight(),
		)

		sleepTime := frameTime - time.Since(lastFrameTime)
		if r.audioPlayer != nil {
			bufferLevel := r.audioPlayer.GetBufferLevel()
			if bufferLevel < adtMinBuffer {
				sleepTime = time.Duration(float64(sleepTime) * 0.9)
			} else if bufferLevel > adtMaxBuffer {
				sleepTime = time.Duration(float64(sleepTime) * 1.1)
			}
		}
		if sleepTime > time.Millisecond {
			time.Sleep(sleepTime)
		}

		lastFrameTime = time.Now()
	}
}

// Update implements ebiten.Game.
func (r *Runner) Update() error {
	if !ebiten.IsFocused() {
		return nil
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyF5):
		r.withPaused(r.saveState)
	case inpututil.IsKeyJustPressed(ebiten.KeyF9):
		r.withPaused(r.loadState)
	case inpututil.IsKeyJustPressed(ebiten.KeyF1):
		r.withPaused(r.emulator.Reset)
	}

	r.sharedInput.Set(pollButtons())
	return nil
}

// withPaused runs fn while the emulation goroutine is parked.
func (r *Runner) withPaused(fn func()) {
	r.emuControl.RequestPause()
	defer r.emuControl.RequestResume()
	fn()
}

func (r *Runner) saveState() {
	if r.statePath == "" {
		return
	}
	data, err := r.emulator.Serialize()
	if err != nil {
		log.Printf("Warning: save state failed: %v", err)
		return
	}
	if err := os.WriteFile(r.statePath, data, 0644); err != nil {
		log.Printf("Warning: save state failed: %v", err)
		return
	}
	log.Printf("Saved state to %s", r.statePath)
}

func (r *Runner) loadState() {
	if r.statePath == "" {
		return
	}
	data, err := os.ReadFile(r.statePath)
	if err != nil {
		log.Printf("Warning: load state failed: %v", err)
		return
	}
	if err := r.emulator.Deserialize(data); err != nil {
		log.Printf("Warning: load state failed: %v", err)
		return
	}
	log.Printf("Loaded state from %s", r.statePath)
}

// Draw implements ebiten.Game.
func (r *Runner) Draw(screen *ebiten.Image) {
	pixels, stride, height := r.sharedFramebuffer.Read()
	if height == 0 {
		return
	}
	r.emulator.DrawCachedFramebuffer(screen, pixels, stride, height)
}

// Layout implements ebiten.Game.
func (r *Runner) Layout(outsideWidth, outsideHeight int) (int, int) {
	return r.emulator.Layout(outsideWidth, outsideHeight)
}

// keyBindings maps keyboard keys to emucore button bits. WASD and the
// arrows move, J and K are A and B, U and I are the option buttons and
// Enter is pause.
var keyBindings = []struct {
	keys []ebiten.Key
	bit  uint
}{
	{[]ebiten.Key{ebiten.KeyW, ebiten.KeyArrowUp}, 0},
	{[]ebiten.Key{ebiten.KeyS, ebiten.KeyArrowDown}, 1},
	{[]ebiten.Key{ebiten.KeyA, ebiten.KeyArrowLeft}, 2},
	{[]ebiten.Key{ebiten.KeyD, ebiten.KeyArrowRight}, 3},
	{[]ebiten.Key{ebiten.KeyJ}, adapter.ButtonA},
	{[]ebiten.Key{ebiten.KeyK}, adapter.ButtonB},
	{[]ebiten.Key{ebiten.KeyU}, adapter.ButtonOption1},
	{[]ebiten.Key{ebiten.KeyI}, adapter.ButtonOption2},
	{[]ebiten.Key{ebiten.KeyEnter}, adapter.ButtonPause},
}

// padBindings maps standard gamepad buttons to emucore button bits.
var padBindings = []struct {
	button ebiten.StandardGamepadButton
	bit    uint
}{
	{ebiten.StandardGamepadButtonLeftTop, 0},
	{ebiten.StandardGamepadButtonLeftBottom, 1},
	{ebiten.StandardGamepadButtonLeftLeft, 2},
	{ebiten.StandardGamepadButtonLeftRight, 3},
	{ebiten.StandardGamepadButtonRightBottom, adapter.ButtonA},
	{ebiten.StandardGamepadButtonRightRight, adapter.ButtonB},
	{ebiten.StandardGamepadButtonFrontTopLeft, adapter.ButtonOption1},
	{ebiten.StandardGamepadButtonFrontTopRight, adapter.ButtonOption2},
	{ebiten.StandardGamepadButtonCenterRight, adapter.ButtonPause},
}

// pollButtons reads the keyboard and all standard gamepads into an
// emucore button mask.
func pollButtons() uint32 {
	var buttons uint32
	for _, b := range keyBindings {
		for _, k := range b.keys {
			if ebiten.IsKeyPressed(k) {
				buttons |= 1 << b.bit
			}
		}
	}

	for _, id := range ebiten.AppendGamepadIDs(nil) {
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			continue
		}
		for _, b := range padBindings {
			if ebiten.IsStandardGamepadButtonPressed(id, b.button) {
				buttons |= 1 << b.bit
			}
		}

		// Left analog stick (with deadzone)
		const deadzone = 0.5
		axisX := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		axisY := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if axisY < -deadzone {
			buttons |= 1 << 0
		}
		if axisY > deadzone {
			buttons |= 1 << 1
		}
		if axisX < -deadzone {
			buttons |= 1 << 2
		}
		if axisX > deadzone {
			buttons |= 1 << 3
		}
	}
	return buttons
}
