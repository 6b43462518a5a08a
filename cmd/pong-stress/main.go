// Command pong-stress plays headless pong matches flat out for a fixed time
// and prints a Markdown report. The player paddle is driven by an autopilot
// that tracks the ball with some noise.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/plus3/heep/config"
	"github.com/plus3/heep/ecs"
	"github.com/plus3/heep/pong"
	"github.com/plus3/heep/snapshot"
	"github.com/plus3/heep/spatial"
	"golang.org/x/time/rate"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	matches := flag.Int("matches", runtime.NumCPU(), "The number of matches to play concurrently.")
	width := flag.Int("width", 800, "Playfield width.")
	height := flag.Int("height", 600, "Playfield height.")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "Seed for the autopilots.")
	goalLogs := flag.Float64("goal-logs", 2, "Maximum goal log lines per second across all matches.")
	snapshotPath := flag.String("snapshot", "", "Write a PNG of the first match's final frame to this path.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	logger := cfg.Logger(os.Stderr)
	if err := run(logger, os.Stdout, options{
		Duration:       *duration,
		Matches:        max(*matches, 1),
		Field:          spatial.Playfield{Width: float32(*width), Height: float32(*height)},
		Seed:           *seed,
		GoalLogs:       rate.NewLimiter(rate.Limit(*goalLogs), 1),
		SnapshotPath:   *snapshotPath,
		GCPauseMetrics: *gcPauseMetrics,
	}); err != nil {
		logger.Error("stress test failed", "err", err)
		os.Exit(1)
	}
}

type options struct {
	Duration       time.Duration
	Matches        int
	Field          spatial.Playfield
	Seed           uint64
	GoalLogs       *rate.Limiter
	SnapshotPath   string
	GCPauseMetrics bool
}

func run(logger *slog.Logger, out io.Writer, opts options) error {
	logger.Info("starting pong stress test", "matches", opts.Matches, "duration", opts.Duration)

	report := &Report{
		Duration:       opts.Duration,
		Field:          opts.Field,
		Seed:           opts.Seed,
		GCPauseMetrics: opts.GCPauseMetrics,
	}

	games := make([]*match, opts.Matches)
	for i := range games {
		games[i] = newMatch(opts.Field, opts.Seed+uint64(i), logger, opts.GoalLogs)
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	ctx, cancel := context.WithTimeout(context.Background(), opts.Duration)
	defer cancel()

	startTime := time.Now()
	var wg sync.WaitGroup
	for _, m := range games {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.play(ctx)
		}()
	}
	wg.Wait()

	report.TotalTime = time.Since(startTime)
	runtime.ReadMemStats(&report.MemStatsEnd)

	for _, m := range games {
		report.Matches = append(report.Matches, m.result())
	}
	report.Finalize()

	logger.Info("stress test finished", "ticks", report.TotalTicks, "goals", report.TotalGoals)

	if err := report.Generate(out); err != nil {
		return fmt.Errorf("generate report: %w", err)
	}

	if opts.SnapshotPath != "" {
		w, h := int(opts.Field.Width), int(opts.Field.Height)
		if err := snapshot.SavePNG(games[0].storage, w, h, opts.SnapshotPath); err != nil {
			return err
		}
		logger.Info("wrote snapshot", "path", opts.SnapshotPath)
	}
	return nil
}

// match is one independent game with its own storage.
type match struct {
	id        string
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	score     *ecs.Singleton[pong.Score]
	update    Stats
}

func newMatch(field spatial.Playfield, seed uint64, logger *slog.Logger, goalLogs *rate.Limiter) *match {
	id := uuid.New().String()
	log := logger.With("match", id)

	storage := pong.NewStorage()
	storage.AddSingleton(field)

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(newAutopilot(seed))
	pong.Register(scheduler, log)
	scheduler.Register(&goalLogSystem{Log: log, Limiter: goalLogs})

	return &match{
		id:        id,
		storage:   storage,
		scheduler: scheduler,
		score:     ecs.NewSingleton[pong.Score](storage),
	}
}

func (m *match) play(ctx context.Context) {
	for ctx.Err() == nil {
		start := time.Now()
		m.scheduler.Once(1)
		m.update.Add(time.Since(start))
	}
}

func (m *match) result() MatchResult {
	r := MatchResult{ID: m.id, Ticks: m.scheduler.Ticks(), Update: m.update}
	if score := m.score.Get(); score != nil {
		r.Score = *score
	}
	return r
}
