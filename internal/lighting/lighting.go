// Package lighting derives the exported point lights from a table: the two
// overhead table lights and the general illumination lights placed on the
// playfield.
package lighting

import (
	"strings"

	"github.com/chewxy/math32"

	"github.com/Faultbox/vpxglb/pkg/math"
	"github.com/Faultbox/vpxglb/pkg/table"
	"github.com/Faultbox/vpxglb/pkg/transform"
)

const (
	// MaxRange caps the table light range, in meters. Tables often carry
	// light ranges in the millions of units.
	MaxRange = 100

	// Table emission scales are HDR multipliers around one million; this
	// maps the editor default to roughly 1000 candela.
	emissionToCandela = 0.001

	giPrefix       = "gi"
	giIntensityMul = 0.1
	giMinIntensity = 0.01
	giMaxIntensity = 10
	// A GI light authored at z = 0 sits at the base of its bulb.
	giDefaultLiftMM = 10
)

// PointLight is one exported point light. Position is in table space;
// Range is already in meters.
type PointLight struct {
	Name      string
	Position  math.Vec3
	Color     [3]float32 // RGB, 0-1
	Intensity float32    // candela
	Range     float32
	// Layer is the export group of the originating object, "" for the
	// table lights.
	Layer string
}

// TableLights returns the two table-level lights, hung over the playfield
// centre line at one and two thirds of its length.
func TableLights(t *table.Table, exp transform.Exporter) []PointLight {
	l := t.Lighting
	color := clampColor(l.Light0Emission.Floats())
	brightness := (color[0] + color[1] + color[2]) / 3
	intensity := l.EmissionScale * l.GlobalEmissionScale * emissionToCandela * brightness
	rng := min(exp.Length(l.LightRange), MaxRange)

	cx := t.Dimensions.Center().X
	return []PointLight{
		{
			Name:      "TableLight0",
			Position:  math.V3(cx, t.Dimensions.Bottom/3, l.LightHeight),
			Color:     color,
			Intensity: intensity,
			Range:     rng,
		},
		{
			Name:      "TableLight1",
			Position:  math.V3(cx, t.Dimensions.Bottom*2/3, l.LightHeight),
			Color:     color,
			Intensity: intensity,
			Range:     rng,
		},
	}
}

// IsGI reports whether a light object is exported as a general illumination
// light: any playfield light whose name starts with "gi", ignoring case.
func IsGI(obj *table.Object) bool {
	l, ok := obj.Shape.(*table.Light)
	if !ok || l.Backglass {
		return false
	}
	return len(obj.Name) >= len(giPrefix) && strings.EqualFold(obj.Name[:len(giPrefix)], giPrefix)
}

// GILights returns a point light for every general illumination light in
// table order. Visibility is ignored; GI lights are exported even when the
// bulb mesh is hidden.
func GILights(t *table.Table, exp transform.Exporter) []PointLight {
	var lights []PointLight
	for i := range t.Objects {
		obj := &t.Objects[i]
		if !IsGI(obj) {
			continue
		}
		l := obj.Shape.(*table.Light)

		pos := obj.Position
		if math32.Abs(pos.Z) < 0.001 {
			pos.Z = transform.MMToUnits(giDefaultLiftMM)
		}

		lights = append(lights, PointLight{
			Name:      obj.Name,
			Position:  pos,
			Color:     clampColor(l.Color.Floats()),
			Intensity: math.Clamp(l.Intensity*giIntensityMul, giMinIntensity, giMaxIntensity),
			Range:     exp.Length(reach(obj.Position.XY(), l)),
			Layer:     obj.Layer.GroupName(),
		})
	}
	return lights
}

// reach is the distance from the centre to the furthest drag point of the
// light's polygon, or its falloff radius when it has none.
func reach(center math.Vec2, l *table.Light) float32 {
	if len(l.DragPoints) == 0 {
		return l.FalloffRadius
	}
	var r float32
	for _, dp := range l.DragPoints {
		r = max(r, center.Distance(dp.Vec2()))
	}
	return r
}

func clampColor(c [3]float32) [3]float32 {
	for i := range c {
		c[i] = math.Clamp(c[i], 0, 1)
	}
	return c
}
