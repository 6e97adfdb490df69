package ui

import (
	"fmt"
	"math"
	"reflect"
	"sync"

	"github.com/plus3/orbiter/orbit"
	"github.com/plus3/orbiter/universe"
)

// unit converts a stored simulation quantity to the value shown in the
// inspector and back.
type unit struct {
	Label string
	Scale float64
}

var (
	unitNone     = unit{Scale: 1}
	unitDistance = unit{Label: "km", Scale: orbit.AU}
	unitSpeed    = unit{Label: "km/s", Scale: orbit.AU}
	unitGM       = unit{Label: "km³/s²", Scale: orbit.AU * orbit.AU * orbit.AU}
	unitAngle    = unit{Label: "deg", Scale: 180 / math.Pi}
	unitSpin     = unit{Label: "deg/s", Scale: 180 / math.Pi}
)

func (u unit) Display(stored float64) float64 { return stored * u.Scale }
func (u unit) Store(shown float64) float64    { return shown / u.Scale }

// fieldView is how the inspector draws one exported component field.
type fieldView struct {
	Name     string
	Index    int
	Type     reflect.Type // pointer fields are dereferenced
	Pointer  bool
	Unit     unit
	ReadOnly bool
}

// Label is the field name with its display unit appended.
func (f fieldView) Label() string {
	if f.Unit.Label == "" {
		return f.Name
	}
	return fmt.Sprintf("%s (%s)", f.Name, f.Unit.Label)
}

type fieldKey struct {
	component reflect.Type
	field     string
}

// fieldUnits lists body fields stored in AU, seconds and radians.
var fieldUnits = map[fieldKey]unit{
	{reflect.TypeFor[universe.Body](), "GM"}:                   unitGM,
	{reflect.TypeFor[universe.Body](), "Radius"}:               unitDistance,
	{reflect.TypeFor[universe.Body](), "SOI"}:                  unitDistance,
	{reflect.TypeFor[universe.Kinematics](), "Position"}:       unitDistance,
	{reflect.TypeFor[universe.Kinematics](), "Velocity"}:       unitSpeed,
	{reflect.TypeFor[universe.Attitude](), "AngularVelocity"}:  unitSpin,
	{reflect.TypeFor[universe.Parent](), "GM"}:                 unitGM,
	{reflect.TypeFor[universe.Propulsion](), "TotalDeltaV"}:    unitSpeed,
	{reflect.TypeFor[orbit.Elements](), "SemimajorAxis"}:       unitDistance,
	{reflect.TypeFor[orbit.Elements](), "Inclination"}:         unitAngle,
	{reflect.TypeFor[orbit.Elements](), "AscendingNode"}:       unitAngle,
	{reflect.TypeFor[orbit.Elements](), "ArgumentOfPeriapsis"}: unitAngle,
}

// readOnlyComponents are derived each tick or link bodies together.
var readOnlyComponents = map[reflect.Type]bool{
	reflect.TypeFor[universe.Parent](): true,
	reflect.TypeFor[orbit.Elements]():  true,
}

var readOnlyFields = map[fieldKey]bool{
	{reflect.TypeFor[universe.Propulsion](), "IgnitionCount"}: true,
	{reflect.TypeFor[universe.Propulsion](), "Firing"}:        true,
}

// fieldLayouts memoizes the fieldViews of each component type.
type fieldLayouts struct {
	mu      sync.Mutex
	layouts map[reflect.Type][]fieldView
}

func newFieldLayouts() *fieldLayouts {
	return &fieldLayouts{layouts: make(map[reflect.Type][]fieldView)}
}

// Of returns the exported fields of t with their units, or nil if t is not a
// struct.
func (fl *fieldLayouts) Of(t reflect.Type) []fieldView {
	fl.mu.Lock()
	defer fl.mu.Unlock()
	if views, ok := fl.layouts[t]; ok {
		return views
	}

	var views []fieldView
	if t.Kind() == reflect.Struct {
		for i := range t.NumField() {
			field := t.Field(i)
			if !field.IsExported() {
				continue
			}
			key := fieldKey{t, field.Name}
			view := fieldView{
				Name:     field.Name,
				Index:    i,
				Type:     field.Type,
				Unit:     unitNone,
				ReadOnly: readOnlyComponents[t] || readOnlyFields[key],
			}
			if u, ok := fieldUnits[key]; ok {
				view.Unit = u
			}
			if view.Type.Kind() == reflect.Pointer {
				view.Type = view.Type.Elem()
				view.Pointer = true
			}
			views = append(views, view)
		}
	}
	fl.layouts[t] = views
	return views
}

var inspectorLayouts = newFieldLayouts()
