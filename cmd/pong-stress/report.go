package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/heep/pong"
	"github.com/plus3/heep/spatial"
)

type Report struct {
	// Configuration
	Duration time.Duration
	Field    spatial.Playfield
	Seed     uint64

	// Results
	Matches        []MatchResult
	TotalTicks     uint64
	TotalGoals     uint64
	TotalTime      time.Duration
	UpdateTime     Stats
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

type MatchResult struct {
	ID     string
	Ticks  uint64
	Score  pong.Score
	Update Stats
}

// TicksPerSecond is the match's simulation rate over the whole run.
func (m MatchResult) TicksPerSecond(total time.Duration) float64 {
	if total <= 0 {
		return 0
	}
	return float64(m.Ticks) / total.Seconds()
}

// Stats summarises tick durations without keeping every sample.
type Stats struct {
	Count int64
	Min   time.Duration
	Max   time.Duration
	Avg   time.Duration
	Total time.Duration
}

func (s *Stats) Add(sample time.Duration) {
	if s.Count == 0 || sample < s.Min {
		s.Min = sample
	}
	if sample > s.Max {
		s.Max = sample
	}
	s.Count++
	s.Total += sample
	s.Avg = s.Total / time.Duration(s.Count)
}

// Merge folds o into s.
func (s *Stats) Merge(o Stats) {
	if o.Count == 0 {
		return
	}
	if s.Count == 0 || o.Min < s.Min {
		s.Min = o.Min
	}
	s.Max = max(s.Max, o.Max)
	s.Count += o.Count
	s.Total += o.Total
	s.Avg = s.Total / time.Duration(s.Count)
}

// Finalize computes the totals from Matches.
func (r *Report) Finalize() {
	r.TotalTicks, r.TotalGoals = 0, 0
	r.UpdateTime = Stats{}
	for _, m := range r.Matches {
		r.TotalTicks += m.Ticks
		r.TotalGoals += uint64(m.Score.Player) + uint64(m.Score.Ai)
		r.UpdateTime.Merge(m.Update)
	}
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Pong Stress Test Report

## Test Configuration
- **Run Duration:** {{.Duration}}
- **Matches:** {{len .Matches}}
- **Playfield:** {{.Field.Width}} x {{.Field.Height}}
- **Seed:** {{.Seed}}

## Performance Results
- **Total Ticks:** {{.TotalTicks}}
- **Total Goals:** {{.TotalGoals}}
- **Total Test Time:** {{.TotalTime}}
- **Tick Time:**
  - **Avg:** {{.UpdateTime.Avg}}
  - **Min:** {{.UpdateTime.Min}}
  - **Max:** {{.UpdateTime.Max}}

## Matches
| Match | Ticks | Ticks/s | Player | AI | Avg Tick |
|---|---|---|---|---|---|
{{- range .Matches}}
| {{.ID}} | {{.Ticks}} | {{tps . $.TotalTime}} | {{.Score.Player}} | {{.Score.Ai}} | {{.Update.Avg}} |
{{- end}}

## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Sys Memory:     {{.MemStatsStart.Sys}} (start) -> {{.MemStatsEnd.Sys}} (end) -> delta: {{bsub .MemStatsEnd.Sys .MemStatsStart.Sys}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}

{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
- **Num GC Cycles:** {{ usub .MemStatsEnd.NumGC .MemStatsStart.NumGC }}
{{end}}
`

	fm := template.FuncMap{
		"tps": func(m MatchResult, total time.Duration) string {
			return fmt.Sprintf("%.0f", m.TicksPerSecond(total))
		},
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
