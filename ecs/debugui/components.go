package debugui

import (
	"github.com/plus3/heep/ecs"
)

type EntityBrowserComponent struct {
	entities           []EntityInfo
	lastArchetypeCount int
	lastEntityCount    int
	sortColumn         int
	sortAscending      bool

	selectedEntityId   ecs.EntityId
	filterText         string
	maxEntitiesPerPage int
	currentPage        int
}

type ArchetypeViewerComponent struct {
	archetypes    []ecs.ArchetypeStats
	sortColumn    int
	sortAscending bool
}

type PerformanceStatsComponent struct {
	historyFrames int
	history       *FrameHistory
	systems       map[string]*FrameHistory
}
