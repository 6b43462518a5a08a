// Command pong plays pong against the computer. Up/Down or W/S move the
// right paddle; Escape quits.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/heep/config"
	"github.com/plus3/heep/ecs"
	"github.com/plus3/heep/hostgame"
	"github.com/plus3/heep/pong"
	"github.com/plus3/heep/spatial"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := cfg.Logger(os.Stderr)

	storage := pong.NewStorage()
	scheduler := ecs.NewScheduler(storage)
	pong.Register(scheduler, logger)

	game := &hostgame.Game{
		Storage:   storage,
		Scheduler: scheduler,
		Input:     readInput,
		Resize:    resize,
		HUD:       scoreLabels,
	}

	if err := hostgame.Launch(context.Background(), cfg, "pong", game, logger); err != nil {
		logger.Error("pong exited", "err", err)
		os.Exit(1)
	}
}

func readInput(storage *ecs.Storage, pressed hostgame.KeyFunc) {
	storage.AddSingleton(pong.Input{
		Up:   pressed(ebiten.KeyArrowUp) || pressed(ebiten.KeyW),
		Down: pressed(ebiten.KeyArrowDown) || pressed(ebiten.KeyS),
	})
}

// resize sets the playfield to the window in pixels. The world is laid out
// once, from the first size seen.
func resize(storage *ecs.Storage, width, height int) {
	storage.AddSingleton(spatial.Playfield{Width: float32(width), Height: float32(height)})
}

// scoreLabels puts the player's score top right, over the player's paddle,
// and the AI's top left.
func scoreLabels(storage *ecs.Storage, width, _ int) []hostgame.Label {
	var score *pong.Score
	if !storage.ReadSingleton(&score) {
		return nil
	}

	player := fmt.Sprintf("%d", score.Player)
	return []hostgame.Label{
		{Text: fmt.Sprintf("%d", score.Ai), X: 24, Y: 24},
		{Text: player, X: width - 24 - 6*len(player), Y: 24},
	}
}
