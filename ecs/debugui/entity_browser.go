package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/heep/ecs"
)

type EntityInfo struct {
	ID             ecs.EntityId
	ArchetypeID    uint32
	ComponentTypes []string
}

const (
	entityColumnId = iota
	entityColumnArchetype
	entityColumnComponents
	entityColumnCount
)

func NewEntityBrowserComponent(maxEntitiesPerPage int) EntityBrowserComponent {
	return EntityBrowserComponent{
		lastArchetypeCount: -1,
		sortColumn:         entityColumnId,
		sortAscending:      true,
		maxEntitiesPerPage: max(maxEntitiesPerPage, 1),
	}
}

func (eb *EntityBrowserComponent) Render(storage *ecs.Storage) {
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	eb.refresh(storage)

	imgui.InputTextWithHint("##search", "Search...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.filterText = ""
		eb.currentPage = 0
	}

	filtered := FilterEntities(eb.entities, eb.filterText)
	start, end, pages := PageBounds(len(filtered), eb.maxEntitiesPerPage, eb.currentPage)
	eb.currentPage = min(eb.currentPage, pages-1)

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Entity ID")
		imgui.TableSetupColumn("Archetype ID")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Count")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			eb.sortColumn = int(spec.ColumnIndex())
			eb.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			SortEntities(eb.entities, eb.sortColumn, eb.sortAscending)
			sortSpecs.SetSpecsDirty(false)
		}

		for _, entity := range filtered[start:end] {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := eb.selectedEntityId == entity.ID
			if imgui.SelectableBoolV(entity.ID.String(), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.selectedEntityId = entity.ID
			}

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("0x%X", entity.ArchetypeID))

			imgui.TableNextColumn()
			imgui.Text(strings.Join(entity.ComponentTypes, ", "))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", len(entity.ComponentTypes)))
		}

		imgui.EndTable()
	}

	if pages > 1 {
		imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.currentPage+1, pages, len(filtered)))
		imgui.SameLine()
		if imgui.Button("Prev") && eb.currentPage > 0 {
			eb.currentPage--
		}
		imgui.SameLine()
		if imgui.Button("Next") && eb.currentPage < pages-1 {
			eb.currentPage++
		}
	} else {
		imgui.Text(fmt.Sprintf("Total: %d entities", len(filtered)))
	}

	imgui.End()
}

// SelectedEntity is the row last clicked, or zero.
func (eb *EntityBrowserComponent) SelectedEntity() ecs.EntityId {
	return eb.selectedEntityId
}

// refresh rebuilds the entity list when the archetype or entity count moved.
// Entities that change archetype without changing either count keep their
// stale row until the next rebuild.
func (eb *EntityBrowserComponent) refresh(storage *ecs.Storage) {
	archetypes := storage.GetArchetypes()
	entityCount := 0
	for _, archetype := range archetypes {
		entityCount += archetype.Len()
	}

	if len(archetypes) == eb.lastArchetypeCount && entityCount == eb.lastEntityCount {
		return
	}
	eb.lastArchetypeCount = len(archetypes)
	eb.lastEntityCount = entityCount

	eb.entities = CollectEntities(storage)
	SortEntities(eb.entities, eb.sortColumn, eb.sortAscending)
}

// CollectEntities lists every live entity in archetype order.
func CollectEntities(storage *ecs.Storage) []EntityInfo {
	var entities []EntityInfo

	for _, archetype := range storage.GetArchetypes() {
		componentTypes := make([]string, len(archetype.Types()))
		for i, t := range archetype.Types() {
			componentTypes[i] = t.String()
		}

		for entityId := range archetype.Iter() {
			entities = append(entities, EntityInfo{
				ID:             entityId,
				ArchetypeID:    archetype.ID(),
				ComponentTypes: componentTypes,
			})
		}
	}

	return entities
}

func SortEntities(entities []EntityInfo, column int, ascending bool) {
	sort.SliceStable(entities, func(i, j int) bool {
		a, b := entities[i], entities[j]
		if !ascending {
			a, b = b, a
		}

		switch column {
		case entityColumnArchetype:
			return a.ArchetypeID < b.ArchetypeID
		case entityColumnComponents:
			return strings.Join(a.ComponentTypes, ",") < strings.Join(b.ComponentTypes, ",")
		case entityColumnCount:
			return len(a.ComponentTypes) < len(b.ComponentTypes)
		default:
			return a.ID < b.ID
		}
	})
}

// FilterEntities keeps entities whose id, archetype id or component type
// names contain text, ignoring case. An empty filter keeps everything.
func FilterEntities(entities []EntityInfo, text string) []EntityInfo {
	if text == "" {
		return entities
	}

	needle := strings.ToLower(text)
	filtered := make([]EntityInfo, 0, len(entities))
	for _, entity := range entities {
		idStr := entity.ID.String()
		archStr := fmt.Sprintf("0x%x", entity.ArchetypeID)
		componentsStr := strings.ToLower(strings.Join(entity.ComponentTypes, " "))

		if strings.Contains(idStr, needle) ||
			strings.Contains(archStr, needle) ||
			strings.Contains(componentsStr, needle) {
			filtered = append(filtered, entity)
		}
	}
	return filtered
}

// PageBounds returns the slice bounds of page within total rows, clamping
// page into range. pages is at least 1.
func PageBounds(total, perPage, page int) (start, end, pages int) {
	perPage = max(perPage, 1)
	pages = max((total+perPage-1)/perPage, 1)
	page = min(max(page, 0), pages-1)

	start = page * perPage
	end = min(start+perPage, total)
	return start, end, pages
}
