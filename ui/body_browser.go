package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/orbiter/ecs"
	"github.com/plus3/orbiter/orbit"
	"github.com/plus3/orbiter/universe"
)

// BodyRow is one line of the body table. Distances are km, speeds km/s.
type BodyRow struct {
	ID           ecs.EntityId
	Name         string
	Parent       string
	Distance     float64
	Speed        float64
	Eccentricity float64
	Vessel       bool
}

const (
	columnName = iota
	columnParent
	columnDistance
	columnSpeed
	columnEccentricity
	columnCount
)

// BodyBrowser is a sortable, filterable table of every body. Clicking a row
// picks it for the inspector.
type BodyBrowser struct {
	universe *universe.Universe

	rows          []BodyRow
	selected      ecs.EntityId
	filterText    string
	sortColumn    int
	sortAscending bool
}

func NewBodyBrowser(u *universe.Universe) *BodyBrowser {
	return &BodyBrowser{
		universe:      u,
		sortAscending: true,
	}
}

// Selected returns the body picked in the table, or zero.
func (b *BodyBrowser) Selected() ecs.EntityId {
	return b.selected
}

func (b *BodyBrowser) Render() {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 380), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(520, 220), imgui.CondOnce)
	if !imgui.BeginV("Bodies", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.InputTextWithHint("##search", "Search...", &b.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		b.filterText = ""
	}

	b.rows = buildRows(b.universe.Bodies())

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("BodyTable", columnCount, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Name")
		imgui.TableSetupColumn("Parent")
		imgui.TableSetupColumn("Distance (km)")
		imgui.TableSetupColumn("Speed (km/s)")
		imgui.TableSetupColumn("e")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			b.sortColumn = int(spec.ColumnIndex())
			b.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			sortSpecs.SetSpecsDirty(false)
		}

		rows := filterRows(b.rows, b.filterText)
		sortRows(rows, b.sortColumn, b.sortAscending)

		for _, row := range rows {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			label := row.Name
			if row.Vessel {
				label += " *"
			}
			if imgui.SelectableBoolV(fmt.Sprintf("%s##%d", label, row.ID), b.selected == row.ID, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				b.selected = row.ID
			}

			imgui.TableNextColumn()
			imgui.Text(row.Parent)
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%.0f", row.Distance))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%.3f", row.Speed))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%.4f", row.Eccentricity))
		}

		imgui.EndTable()
	}

	imgui.Text(fmt.Sprintf("Total: %d bodies", len(b.rows)))
	imgui.End()
}

func buildRows(bodies []*universe.CelestialBody) []BodyRow {
	rows := make([]BodyRow, 0, len(bodies))
	for _, body := range bodies {
		rows = append(rows, BodyRow{
			ID:           body.EntityId,
			Name:         body.Body.Name,
			Parent:       body.Parent.Name,
			Distance:     orbit.AUToKm(body.Position.Len()),
			Speed:        orbit.AUToKm(body.Velocity.Len()),
			Eccentricity: body.Eccentricity,
			Vessel:       body.IsVessel(),
		})
	}
	return rows
}

// filterRows keeps rows whose name or parent contains text, case-insensitively.
func filterRows(rows []BodyRow, text string) []BodyRow {
	filtered := make([]BodyRow, 0, len(rows))
	text = strings.ToLower(strings.TrimSpace(text))
	for _, row := range rows {
		if text == "" ||
			strings.Contains(strings.ToLower(row.Name), text) ||
			strings.Contains(strings.ToLower(row.Parent), text) {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

func sortRows(rows []BodyRow, column int, ascending bool) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if !ascending {
			a, b = b, a
		}

		switch column {
		case columnParent:
			return a.Parent < b.Parent
		case columnDistance:
			return a.Distance < b.Distance
		case columnSpeed:
			return a.Speed < b.Speed
		case columnEccentricity:
			return a.Eccentricity < b.Eccentricity
		default:
			return a.Name < b.Name
		}
	})
}
