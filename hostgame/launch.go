package hostgame

import (
	"context"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/heep/config"
	"github.com/plus3/heep/ecs/debugui"
	debugui_ebiten "github.com/plus3/heep/ecs/debugui/ebiten"
	"github.com/plus3/heep/telemetry"
)

// Launch attaches the optional debug UI and metrics endpoint that cfg asks
// for, then runs game in a window until it closes. sim names the window and
// labels the metrics. Register the simulation's
// systems on game.Scheduler first; the debug and metrics systems run after
// them.
func Launch(ctx context.Context, cfg config.Config, sim string, game *Game, logger *slog.Logger) error {
	title := "heep: " + sim
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if cfg.TPS > 0 {
		ebiten.SetTPS(cfg.TPS)
	}
	if game.TickSeconds == 0 {
		game.TickSeconds = cfg.TickSeconds()
	}

	if cfg.DebugUI {
		debugui.RegisterDebugUIComponents(game.Storage.Registry())
		game.Imgui = debugui_ebiten.NewImguiBackend(title, cfg.Width, cfg.Height)
		debugui.SpawnDebugUI(game.Storage, game.Scheduler)
		game.Scheduler.Register(&debugui.ImguiSystem{})
		logger.Debug("debug ui enabled")
	}

	if cfg.MetricsAddr != "" {
		metrics := telemetry.NewMetrics(sim)
		game.Scheduler.Register(&telemetry.MetricsSystem{Metrics: metrics, Scheduler: game.Scheduler})

		go func() {
			if err := telemetry.Serve(ctx, cfg.MetricsAddr, telemetry.NewRouter(metrics.Registry), logger); err != nil {
				logger.Error("metrics server stopped", "err", err)
			}
		}()
	}

	return Run(game, title, cfg.Width, cfg.Height)
}
