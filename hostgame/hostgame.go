// Package hostgame runs a simulation in an Ebiten window. It owns the frame
// loop and drawing; the simulation is plain ECS systems on a scheduler.
package hostgame

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/heep/ecs"
	"github.com/plus3/heep/ecs/debugui"
	debugui_ebiten "github.com/plus3/heep/ecs/debugui/ebiten"
	"github.com/plus3/heep/render"
	"github.com/plus3/heep/spatial"
)

// DefaultBackground clears the screen when the world has no Background.
var DefaultBackground = color.RGBA{A: 255}

// KeyFunc reports whether a key is held.
type KeyFunc func(ebiten.Key) bool

// Label is one line of HUD text in screen pixels.
type Label struct {
	Text string
	X, Y int
}

// Game implements ebiten.Game around a storage and scheduler.
type Game struct {
	Storage   *ecs.Storage
	Scheduler *ecs.Scheduler

	// TickSeconds is passed to Scheduler.Once each update. Zero uses
	// Ebiten's TPS.
	TickSeconds float64

	// Input copies held keys into the world before each tick. While the
	// debug UI has keyboard focus it sees no keys.
	Input func(storage *ecs.Storage, pressed KeyFunc)

	// Resize is called with the window size whenever it changes.
	Resize func(storage *ecs.Storage, width, height int)

	// HUD returns text drawn over the world. F3 hides and shows it.
	HUD func(storage *ecs.Storage, width, height int) []Label

	// Imgui, when set, wraps every tick in an ImGui frame.
	Imgui *debugui_ebiten.ImguiBackend

	collector     *render.Collector
	input         *ecs.Singleton[debugui.ImguiInputState]
	width, height int
	hideHUD       bool
}

func (g *Game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyQ) || ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.hideHUD = !g.hideHUD
	}

	if g.Imgui != nil {
		g.Imgui.BeginFrame()
	}

	if g.Input != nil {
		pressed := KeyFunc(ebiten.IsKeyPressed)
		if g.keyboardCaptured() {
			pressed = func(ebiten.Key) bool { return false }
		}
		g.Input(g.Storage, pressed)
	}

	g.Scheduler.Once(g.tickSeconds())

	if g.Imgui != nil {
		g.Imgui.EndFrame()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	width, height := screen.Bounds().Dx(), screen.Bounds().Dy()

	bg := DefaultBackground
	var background *render.Background
	if g.Storage.ReadSingleton(&background) {
		bg = background.Color
	}
	screen.Fill(bg)

	var field *spatial.Playfield
	if g.Storage.ReadSingleton(&field) {
		if g.collector == nil {
			g.collector = render.NewCollector(g.Storage)
		}
		proj := render.Projection{Field: *field, ScreenW: float32(width), ScreenH: float32(height)}
		for _, item := range g.collector.Collect(proj) {
			switch item.Kind {
			case render.KindCircle:
				vector.DrawFilledCircle(screen, item.X, item.Y, item.W, item.Color, true)
			default:
				vector.DrawFilledRect(screen, item.X, item.Y, item.W, item.H, item.Color, false)
			}
		}
	}

	if g.HUD != nil && !g.hideHUD {
		for _, label := range g.HUD(g.Storage, width, height) {
			ebitenutil.DebugPrintAt(screen, label.Text, label.X, label.Y)
		}
	}

	if g.Imgui != nil {
		g.Imgui.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		if g.Resize != nil {
			g.Resize(g.Storage, outsideWidth, outsideHeight)
		}
	}

	if g.Imgui != nil {
		g.Imgui.Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

func (g *Game) tickSeconds() float64 {
	if g.TickSeconds > 0 {
		return g.TickSeconds
	}
	return 1 / float64(ebiten.TPS())
}

func (g *Game) keyboardCaptured() bool {
	if g.Imgui == nil {
		return false
	}
	if g.input == nil {
		g.input = ecs.NewSingleton[debugui.ImguiInputState](g.Storage)
	}
	return g.input.Get().WantCaptureKeyboard
}

// Run opens a window and blocks until it closes.
func Run(game *Game, title string, width, height int) error {
	if game.Imgui == nil {
		ebiten.SetWindowSize(width, height)
		ebiten.SetWindowTitle(title)
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil {
		return fmt.Errorf("run %s: %w", title, err)
	}
	return nil
}
