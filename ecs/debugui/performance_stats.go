package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/AllenDang/cimgui-go/implot"
	"github.com/plus3/heep/ecs"
)

// FrameHistory is a fixed ring of frame times in milliseconds.
type FrameHistory struct {
	samples []float32
	next    int
	filled  int
}

func NewFrameHistory(size int) *FrameHistory {
	return &FrameHistory{samples: make([]float32, max(size, 1))}
}

// Push records one frame of dt seconds.
func (h *FrameHistory) Push(dt float32) {
	h.samples[h.next] = dt * 1000
	h.next = (h.next + 1) % len(h.samples)
	h.filled = min(h.filled+1, len(h.samples))
}

// Ordered returns the samples oldest first. Slots not yet written are zero
// and come first.
func (h *FrameHistory) Ordered() []float32 {
	out := make([]float32, len(h.samples))
	n := copy(out, h.samples[h.next:])
	copy(out[n:], h.samples[:h.next])
	return out
}

// Average is the mean of the recorded frames, in milliseconds.
func (h *FrameHistory) Average() float32 {
	if h.filled == 0 {
		return 0
	}
	var sum float32
	for _, ms := range h.samples[:h.filled] {
		sum += ms
	}
	return sum / float32(h.filled)
}

func NewPerformanceStatsComponent(historyFrames int) PerformanceStatsComponent {
	return PerformanceStatsComponent{
		historyFrames: historyFrames,
		history:       NewFrameHistory(historyFrames),
		systems:       make(map[string]*FrameHistory),
	}
}

// recordSystems appends each system's last duration to its history and
// returns the system names in scheduler order.
func (ps *PerformanceStatsComponent) recordSystems(stats *ecs.SchedulerStats) []string {
	names := make([]string, 0, len(stats.Systems))
	for _, system := range stats.Systems {
		h, ok := ps.systems[system.Name]
		if !ok {
			h = NewFrameHistory(ps.historyFrames)
			ps.systems[system.Name] = h
		}
		h.Push(float32(system.LastDuration.Seconds()))
		names = append(names, system.Name)
	}
	return names
}

func (ps *PerformanceStatsComponent) Render(storage *ecs.Storage, scheduler *ecs.Scheduler, deltaTime float32) {
	ps.history.Push(deltaTime)

	var sched *ecs.SchedulerStats
	var systemNames []string
	if scheduler != nil {
		sched = scheduler.GetStats()
		systemNames = ps.recordSystems(sched)
	}

	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	stats := storage.CollectStats()

	imgui.Text(fmt.Sprintf("Total Entities: %d", stats.TotalEntityCount))
	imgui.Text(fmt.Sprintf("Archetypes: %d", stats.ArchetypeCount))
	imgui.Text(fmt.Sprintf("Singletons: %d", stats.SingletonCount))

	avg := ps.history.Average()
	if avg > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, 1000/avg))
	}

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	frames := ps.history.Ordered()
	imgui.PlotLinesFloatPtr("##frametime", &frames[0], int32(len(frames)))

	if sched != nil && imgui.TreeNodeStr("Systems") {
		imgui.Text(fmt.Sprintf("Ticks: %d", sched.Ticks))

		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("SystemStatsTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("System")
			imgui.TableSetupColumn("Last")
			imgui.TableSetupColumn("Avg")
			imgui.TableSetupColumn("Max")
			imgui.TableHeadersRow()

			for _, system := range sched.Systems {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(system.Name)
				imgui.TableNextColumn()
				imgui.Text(formatDuration(system.LastDuration))
				imgui.TableNextColumn()
				imgui.Text(formatDuration(system.AvgDuration))
				imgui.TableNextColumn()
				imgui.Text(formatDuration(system.MaxDuration))
			}

			imgui.EndTable()
		}

		if implot.BeginPlotV("System Latency", imgui.NewVec2(-1, 240), 0) {
			implot.SetupAxesV("Frame", "Time (ms)", 0, implot.AxisFlagsAutoFit)
			for _, name := range systemNames {
				samples := ps.systems[name].Ordered()
				implot.PlotLineFloatPtrInt(name, &samples[0], int32(len(samples)))
			}
			implot.EndPlot()
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Singleton Details") {
		for _, singletonType := range stats.SingletonTypes {
			imgui.BulletText(singletonType)
		}
		imgui.TreePop()
	}

	imgui.End()
}

// formatDuration prints d in microseconds with one decimal.
func formatDuration(d time.Duration) string {
	return fmt.Sprintf("%.1f us", float64(d)/float64(time.Microsecond))
}

type FrameTimer struct {
	lastFrameTime time.Time
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{
		lastFrameTime: time.Now(),
	}
}

func (ft *FrameTimer) GetDeltaTime() float32 {
	now := time.Now()
	delta := float32(now.Sub(ft.lastFrameTime).Seconds())
	ft.lastFrameTime = now
	return delta
}
