package ui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/orbiter/universe"
)

// BodyInspector shows every component of the body picked in a BodyBrowser.
// Numeric and boolean fields are editable in place.
type BodyInspector struct {
	universe *universe.Universe
	browser  *BodyBrowser
}

func NewBodyInspector(u *universe.Universe, browser *BodyBrowser) *BodyInspector {
	return &BodyInspector{universe: u, browser: browser}
}

func (bi *BodyInspector) Render() {
	imgui.SetNextWindowPosV(imgui.NewVec2(540, 380), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(350, 300), imgui.CondOnce)
	if !imgui.BeginV("Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	id := bi.browser.Selected()
	body := bi.universe.Body(id)
	if body == nil {
		imgui.Text("No body selected")
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("%s (entity %d)", body.Body.Name, id))
	if body.IsVessel() {
		imgui.SameLine()
		if imgui.Button("Fly") {
			bi.universe.Select(id)
		}
	}
	imgui.Separator()

	storage := bi.universe.Storage()
	for _, compType := range storage.ComponentTypes(id) {
		component := storage.GetComponent(id, compType)
		if component == nil {
			continue
		}
		if imgui.TreeNodeStr(compType.String()) {
			renderComponent(component, compType)
			imgui.TreePop()
		}
	}

	imgui.End()
}

func renderComponent(component any, compType reflect.Type) {
	val := reflect.ValueOf(component)
	if val.Kind() == reflect.Pointer {
		val = val.Elem()
	}
	renderFields(val, compType)
}

func renderFields(val reflect.Value, t reflect.Type) {
	for _, view := range inspectorLayouts.Of(t) {
		renderField(view, val.Field(view.Index))
	}
}

// renderField draws one value. val is addressable, so edits write straight
// into the component after converting back from the display unit.
func renderField(view fieldView, val reflect.Value) {
	label := view.Label()
	if view.Pointer {
		if val.IsNil() {
			imgui.Text(label + ": nil")
			return
		}
		val = val.Elem()
	}

	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if view.ReadOnly {
			imgui.Text(fmt.Sprintf("%s: %d", label, val.Int()))
			return
		}
		v := int32(val.Int())
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(label, &v) && val.CanSet() {
			val.SetInt(int64(v))
		}

	case reflect.Float32, reflect.Float64:
		shown := view.Unit.Display(val.Float())
		if view.ReadOnly {
			imgui.Text(fmt.Sprintf("%s: %.6g", label, shown))
			return
		}
		v := float32(shown)
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat(label, &v) && val.CanSet() {
			val.SetFloat(view.Unit.Store(float64(v)))
		}

	case reflect.Bool:
		v := val.Bool()
		if view.ReadOnly {
			imgui.Text(fmt.Sprintf("%s: %t", label, v))
			return
		}
		if imgui.Checkbox(label, &v) && val.CanSet() {
			val.SetBool(v)
		}

	case reflect.Array:
		imgui.Text(label + ": " + formatArray(val, view.Unit))

	case reflect.Struct:
		if imgui.TreeNodeStr(label) {
			renderFields(val, val.Type())
			imgui.TreePop()
		}

	case reflect.Slice:
		imgui.Text(fmt.Sprintf("%s: [%d items]", label, val.Len()))

	default:
		imgui.Text(fmt.Sprintf("%s: %v", label, val.Interface()))
	}
}

// formatArray prints numeric arrays such as positions in the display unit.
func formatArray(val reflect.Value, u unit) string {
	if val.Len() == 0 || !val.Index(0).CanFloat() {
		return fmt.Sprintf("%v", val.Interface())
	}
	shown := make([]float64, val.Len())
	for i := range shown {
		shown[i] = u.Display(val.Index(i).Float())
	}
	return fmt.Sprintf("%.6g", shown)
}
