package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/heep/ecs"
)

const (
	archColumnId = iota
	archColumnComponents
	archColumnCompCount
	archColumnEntityCount
)

func NewArchetypeViewerComponent() ArchetypeViewerComponent {
	return ArchetypeViewerComponent{sortColumn: archColumnEntityCount}
}

func (av *ArchetypeViewerComponent) Render(storage *ecs.Storage) {
	if !imgui.BeginV("Archetype Viewer", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	av.archetypes = storage.CollectStats().ArchetypeBreakdown
	sortArchetypes(av.archetypes, av.sortColumn, av.sortAscending)

	maxEntityCount := 0
	for _, arch := range av.archetypes {
		maxEntityCount = max(maxEntityCount, arch.EntityCount)
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("ArchetypeTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Archetype ID")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Comp Count")
		imgui.TableSetupColumn("Entity Count")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			av.sortColumn = int(spec.ColumnIndex())
			av.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			sortArchetypes(av.archetypes, av.sortColumn, av.sortAscending)
			sortSpecs.SetSpecsDirty(false)
		}

		for _, arch := range av.archetypes {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("0x%X", arch.ID))

			imgui.TableNextColumn()
			imgui.Text(strings.Join(arch.ComponentTypes, ", "))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", len(arch.ComponentTypes)))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", arch.EntityCount))

			if maxEntityCount > 0 {
				barWidth := float32(arch.EntityCount) / float32(maxEntityCount) * 80.0
				imgui.SameLine()
				drawList := imgui.WindowDrawList()
				pos := imgui.CursorScreenPos()
				color := imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 0.6))
				drawList.AddRectFilled(pos, imgui.NewVec2(pos.X+barWidth, pos.Y+10), color)
			}
		}

		imgui.EndTable()
	}

	imgui.End()
}

// sortArchetypes orders rows by one of the table's columns. Ties keep id
// order so the table does not flicker between frames.
func sortArchetypes(rows []ecs.ArchetypeStats, column int, ascending bool) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if !ascending {
			a, b = b, a
		}

		switch column {
		case archColumnId:
			return a.ID < b.ID
		case archColumnComponents:
			return strings.Join(a.ComponentTypes, ",") < strings.Join(b.ComponentTypes, ",")
		case archColumnCompCount:
			return len(a.ComponentTypes) < len(b.ComponentTypes)
		default:
			return a.EntityCount < b.EntityCount
		}
	})
}
