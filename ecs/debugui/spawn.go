package debugui

import "github.com/plus3/heep/ecs"

// SpawnDebugUI adds the entity browser, inspector, archetype viewer and
// performance windows to storage. scheduler may be nil, in which case the
// per-system timings are not shown.
func SpawnDebugUI(storage *ecs.Storage, scheduler *ecs.Scheduler) {
	browser := NewEntityBrowserComponent(100)
	archetypes := NewArchetypeViewerComponent()
	perf := NewPerformanceStatsComponent(120)
	timer := NewFrameTimer()

	ecs.NewSingleton[ImguiInputState](storage)

	storage.Spawn(ImguiItem{Render: func() { browser.Render(storage) }})
	storage.Spawn(ImguiItem{Render: func() { RenderInspector(storage, browser.SelectedEntity()) }})
	storage.Spawn(ImguiItem{Render: func() { archetypes.Render(storage) }})
	storage.Spawn(ImguiItem{Render: func() { perf.Render(storage, scheduler, timer.GetDeltaTime()) }})
}

func RegisterDebugUIComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiItem](registry)
}
