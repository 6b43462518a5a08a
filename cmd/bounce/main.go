// Command bounce shows a ball bouncing off the window edges.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/plus3/heep/bounce"
	"github.com/plus3/heep/config"
	"github.com/plus3/heep/ecs"
	"github.com/plus3/heep/hostgame"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := cfg.Logger(os.Stderr)

	registry := ecs.NewComponentRegistry()
	bounce.RegisterComponents(registry)
	storage := ecs.NewStorage(registry)
	scheduler := ecs.NewScheduler(storage)
	bounce.Register(scheduler)

	game := &hostgame.Game{
		Storage:   storage,
		Scheduler: scheduler,
		Resize: func(storage *ecs.Storage, width, height int) {
			storage.AddSingleton(bounce.Playfield(width, height))
		},
	}

	if err := hostgame.Launch(context.Background(), cfg, "bounce", game, logger); err != nil {
		logger.Error("bounce exited", "err", err)
		os.Exit(1)
	}
}
