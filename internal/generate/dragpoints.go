package generate

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/vpxglb/pkg/geometry"
	"github.com/Faultbox/vpxglb/pkg/math"
	"github.com/Faultbox/vpxglb/pkg/table"
)

// Spline accuracies for the drag point kinds. Smaller is finer.
const (
	wallAccuracy   = 4.0
	rubberAccuracy = 4.0
	flasherDetail  = 10
	maxDetailLevel = 10
	rubberSegments = 12
)

func controlPoints(dps []table.DragPoint) []geometry.ControlPoint {
	ctrl := make([]geometry.ControlPoint, len(dps))
	for i, dp := range dps {
		ctrl[i] = geometry.ControlPoint{
			Position: math.V3(dp.X, dp.Y, dp.Z),
			Smooth:   dp.Smooth,
		}
	}
	return ctrl
}

// detailAccuracy maps an editor detail level in [0, 10] to a spline
// accuracy; level 10 is the finest.
func detailAccuracy(level int) float32 {
	level = math.Clamp(level, 0, maxDetailLevel)
	return 4 * math32.Pow(10, float32(maxDetailLevel-level)/1.5)
}

// outline subdivides a closed drag point outline and reports which of the
// resulting points are smooth.
func outline(dps []table.DragPoint, accuracy float32) ([]math.Vec2, []bool) {
	pts := geometry.Subdivide(controlPoints(dps), true, accuracy)
	smooth := make([]bool, len(pts))
	for i, p := range pts {
		smooth[i] = p.Smooth
	}
	return geometry.Positions2D(pts), smooth
}

// tableUV maps a table position to playfield texture coordinates.
func (c *Context) tableUV(p math.Vec2) math.Vec2 {
	d := c.Table.Dimensions
	w, h := d.Width(), d.Height()
	if w == 0 || h == 0 {
		return math.Vec2{}
	}
	return math.V2((p.X-d.Left)/w, (p.Y-d.Top)/h)
}

// boundsUV maps a position inside lo..hi to [0, 1].
func boundsUV(lo, hi math.Vec2) func(math.Vec2) math.Vec2 {
	size := hi.Sub(lo)
	return func(p math.Vec2) math.Vec2 {
		var uv math.Vec2
		if size.X != 0 {
			uv.X = (p.X - lo.X) / size.X
		}
		if size.Y != 0 {
			uv.Y = (p.Y - lo.Y) / size.Y
		}
		return uv
	}
}
