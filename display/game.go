// Package display shows the emulated GPU output in an Ebitengine window.
package display

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/zeozeozeo/psxbus/emulator"
)

const (
	screenWidth  = 640
	screenHeight = 480
)

// Game runs the CPU for a fixed number of instructions every frame and
// draws what the GPU received
type Game struct {
	Cpu                  *emulator.CPU
	InstructionsPerFrame int

	renderer *Renderer
}

func NewGame(cpu *emulator.CPU, gpu *emulator.GPU, instructionsPerFrame int) *Game {
	return &Game{
		Cpu:                  cpu,
		InstructionsPerFrame: instructionsPerFrame,
		renderer:             NewRenderer(gpu),
	}
}

// Update is called by Ebitengine every tick. A bus error stops the game,
// debugger hits are only logged
func (g *Game) Update() error {
	for i := 0; i < g.InstructionsPerFrame; i++ {
		err := g.Cpu.RunNextInstruction()
		if err != nil && !errors.Is(err, emulator.ErrBreakpoint) {
			return err
		}
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

// Opens the window and runs the game until it is closed or fails
func Run(g *Game) error {
	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("psxbus")
	return ebiten.RunGame(g)
}
