// Package camera builds the three player view cameras of a table: desktop,
// fullscreen and full single screen.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/vpxglb/pkg/math"
	"github.com/Faultbox/vpxglb/pkg/table"
	"github.com/Faultbox/vpxglb/pkg/transform"
)

const (
	// Aspect is the screen aspect ratio assumed when framing the table.
	Aspect = float32(16) / 9

	// fitDistanceScale pulls the fitted camera in towards the table; the
	// raw fit frames the glass box with a wide margin.
	fitDistanceScale = 0.47

	ZNear = 0.01
	ZFar  = 100
)

// View identifies one of the player views.
type View int

const (
	Desktop View = iota
	Fullscreen
	FSS
)

// Name returns the exported camera name.
func (v View) Name() string {
	switch v {
	case Desktop:
		return "DesktopCamera"
	case Fullscreen:
		return "FullscreenCamera"
	case FSS:
		return "FssCamera"
	}
	return "Camera"
}

// Camera is a perspective camera in export space.
type Camera struct {
	Name     string
	View     View
	Position math.Vec3
	Rotation math.Quat
	// YFov is the vertical field of view in radians.
	YFov        float32
	AspectRatio float32
	ZNear       float32
	ZFar        float32
}

// Bounds is the box the fit frames: the playfield rectangle from the
// playfield up to the glass.
type Bounds struct {
	Left, Top, Right, Bottom float32
	GlassHeight              float32
}

// TableBounds returns the fit box of a table.
func TableBounds(t *table.Table) Bounds {
	d := t.Dimensions
	return Bounds{Left: d.Left, Top: d.Top, Right: d.Right, Bottom: d.Bottom, GlassHeight: t.GlassHeight}
}

// Center returns the middle of the playfield rectangle.
func (b Bounds) Center() math.Vec2 {
	return math.V2((b.Left+b.Right)/2, (b.Top+b.Bottom)/2)
}

func (b Bounds) corners() [8]math.Vec3 {
	return [8]math.Vec3{
		{X: b.Left, Y: b.Top},
		{X: b.Right, Y: b.Top},
		{X: b.Left, Y: b.Bottom},
		{X: b.Right, Y: b.Bottom},
		{X: b.Left, Y: b.Top, Z: b.GlassHeight},
		{X: b.Right, Y: b.Top, Z: b.GlassHeight},
		{X: b.Left, Y: b.Bottom, Z: b.GlassHeight},
		{X: b.Right, Y: b.Bottom, Z: b.GlassHeight},
	}
}

// FitParams are the view parameters the fit depends on. Angles are in
// radians except FOV and Layback, which are in degrees as authored.
type FitParams struct {
	Aspect      float32
	Rotation    float32
	Inclination float32
	FOV         float32
	Layback     float32
	ZOffset     float32
}

// Fit projects the bounds corners through the view frustum and returns the
// camera offset that frames all of them. Z is the viewing distance.
//
// The fit works on the table-level box only; objects poking out of it are
// not considered.
func Fit(b Bounds, p FitParams) math.Vec3 {
	rotSin, rotCos := math32.Sincos(p.Rotation)
	incSin, incCos := math32.Sincos(p.Inclination)
	slopeY := math32.Tan(math.Radians(p.FOV) / 2)
	slopeX := slopeY * p.Aspect
	laybackTan := -math32.Tan(math.Radians(p.Layback) / 2)

	maxY, minY := math32.Inf(-1), math32.Inf(1)
	maxX, minX := math32.Inf(-1), math32.Inf(1)
	for _, c := range b.corners() {
		y := c.Y + laybackTan*c.Z
		y, z := incCos*y-incSin*c.Z, incSin*y+incCos*c.Z
		x, y := rotCos*c.X-rotSin*y, rotSin*c.X+rotCos*y

		maxY = max(maxY, y+slopeY*z)
		minY = min(minY, y-slopeY*z)
		maxX = max(maxX, x+slopeX*z)
		minX = min(minX, x-slopeX*z)
	}

	yDist := (maxY - minY) / (2 * slopeY)
	xDist := (maxX - minX) / (2 * slopeX)
	return math.Vec3{
		X: (maxX + minX) / 2,
		Y: (maxY + minY) / 2,
		Z: max(yDist, xDist) + p.ZOffset,
	}
}

// Pitch returns the camera pitch in radians for a view inclination. Both
// layout modes read the inclination as a percentage of the way from looking
// straight down (0) to looking straight ahead (100).
func Pitch(inclination float32) float32 {
	return math.Radians(90 * (1 - inclination/100))
}

// New builds the camera for one view.
func New(view View, v table.View, b Bounds, exp transform.Exporter) Camera {
	fov := max(v.FOV, 1)
	pitch := Pitch(v.Inclination)
	sinP, cosP := math32.Sincos(pitch)

	fit := Fit(b, FitParams{Aspect: Aspect, Inclination: pitch, FOV: fov})
	distance := fit.Z * fitDistanceScale

	center := b.Center()
	pos := math.V3(center.X, center.Y, 0)
	off := v.Offset

	switch v.Mode {
	case table.ViewCamera, table.ViewWindow:
		pos = pos.Add(math.V3(0, cosP, sinP).Scale(distance))
		pos = pos.Add(math.V3(off.X, cosP*off.Y, sinP*off.Y+off.Z))
	default:
		// Legacy views scale the distance with the scene and move along the
		// screen's up axis and the viewing direction.
		distance *= (v.Scale.X + v.Scale.Y) / 2
		pos = pos.Add(math.V3(0, cosP, sinP).Scale(distance))
		pos = pos.Add(math.V3(off.X, 0, 0))
		pos = pos.Add(math.V3(0, sinP, cosP).Scale(off.Y))
		pos = pos.Add(math.V3(0, cosP, sinP).Scale(off.Z))
	}

	return Camera{
		Name:        view.Name(),
		View:        view,
		Position:    exp.Position(pos),
		Rotation:    math.QuatFromAxisAngle(math.V3(1, 0, 0), -pitch),
		YFov:        math.Radians(fov),
		AspectRatio: Aspect,
		ZNear:       ZNear,
		ZFar:        ZFar,
	}
}

// Build returns the desktop, fullscreen and full single screen cameras. A
// table without a full single screen view gets the editor default.
func Build(t *table.Table, exp transform.Exporter) []Camera {
	b := TableBounds(t)
	fss := table.DefaultFSSView()
	if t.Views.FSS != nil {
		fss = *t.Views.FSS
	}
	return []Camera{
		New(Desktop, t.Views.Desktop, b, exp),
		New(Fullscreen, t.Views.Fullscreen, b, exp),
		New(FSS, fss, b, exp),
	}
}
