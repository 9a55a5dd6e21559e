package transform

import "github.com/Faultbox/vpxglb/pkg/math"

// Exporter converts table-space values to export space.
//
// The mapping (x, y, z) -> (x, z, y) swaps the up axis. It has determinant
// -1, so triangles that are counter-clockwise before the conversion must have
// their index order reversed when written out.
type Exporter struct {
	// Scale is the number of meters per table unit.
	Scale float32
}

// NewExporter returns an exporter with the given unit scale, or the default
// scale when s is not positive.
func NewExporter(s float32) Exporter {
	if s <= 0 {
		s = UnitsToMeters
	}
	return Exporter{Scale: s}
}

// Position converts a point.
func (e Exporter) Position(p math.Vec3) math.Vec3 {
	return math.Vec3{X: p.X * e.Scale, Y: p.Z * e.Scale, Z: p.Y * e.Scale}
}

// Up is the export-space up axis, used for normals that have no direction.
var Up = math.Vec3{X: 0, Y: 1, Z: 0}

// Normal converts a direction and renormalizes it. Zero and NaN directions
// become Up.
func (e Exporter) Normal(n math.Vec3) math.Vec3 {
	if l := n.Length(); !(l > 0) {
		return Up
	}
	return math.Vec3{X: n.X, Y: n.Z, Z: n.Y}.Normalize()
}

// Length converts a size.
func (e Exporter) Length(v float32) float32 {
	return v * e.Scale
}

// FlipsWinding reports whether converted triangles need reversed index order.
// Always true for the axis swap; kept as a method so callers do not hardcode
// it.
func (e Exporter) FlipsWinding() bool {
	return true
}
