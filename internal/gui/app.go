package gui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/san-kum/stickpoint/internal/verlet"
)

const TPS = 60

// App steps the world once per ebiten tick and draws the latest frame.
// Escape closes the window.
type App struct {
	world *verlet.World
	name  string
	frame verlet.Frame
}

func NewApp(w *verlet.World, name string) *App {
	return &App{world: w, name: name, frame: w.Frame()}
}

func (a *App) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	a.world.Step()
	a.frame = a.world.Frame()
	return nil
}

func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(color.White)
	drawFrame(screen, a.frame)
	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s  tick %d  energy %.3f", a.name, a.frame.Tick, a.world.KineticEnergy()))
}

func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return int(a.frame.Width), int(a.frame.Height)
}

// Run opens a window sized to the world and blocks until it is closed.
func Run(w *verlet.World, name string) error {
	app := NewApp(w, name)
	ebiten.SetWindowSize(int(app.frame.Width), int(app.frame.Height))
	ebiten.SetWindowTitle("stickpoint - " + name)
	ebiten.SetTPS(TPS)
	return ebiten.RunGame(app)
}
