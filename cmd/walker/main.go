// Command walker draws a random walk that grows every 50ms.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/plus3/heep/config"
	"github.com/plus3/heep/ecs"
	"github.com/plus3/heep/hostgame"
	"github.com/plus3/heep/walker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := cfg.Logger(os.Stderr)

	registry := ecs.NewComponentRegistry()
	walker.RegisterComponents(registry)
	storage := ecs.NewStorage(registry)
	scheduler := ecs.NewScheduler(storage)
	walker.Register(scheduler, nil)
	dots := ecs.NewQuery[struct{ *walker.Walker }](storage)

	game := &hostgame.Game{
		Storage:   storage,
		Scheduler: scheduler,
		Resize: func(storage *ecs.Storage, width, height int) {
			storage.AddSingleton(walker.Playfield(width, height))
		},
		HUD: func(storage *ecs.Storage, _, _ int) []hostgame.Label {
			return []hostgame.Label{{Text: fmt.Sprintf("dots: %d", dots.Count()), X: 8, Y: 8}}
		},
	}

	if err := hostgame.Launch(context.Background(), cfg, "walker", game, logger); err != nil {
		logger.Error("walker exited", "err", err)
		os.Exit(1)
	}
}
