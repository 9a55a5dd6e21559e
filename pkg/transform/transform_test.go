package transform

import (
	stdmath "math"
	"testing"

	"github.com/Faultbox/vpxglb/pkg/math"
)

func TestUnitConversion(t *testing.T) {
	if got := MMToUnits(10); stdmath.Abs(float64(got)-18.527) > 0.001 {
		t.Errorf("MMToUnits(10) = %v, want ~18.527", got)
	}
	if got := UnitsToMM(50); stdmath.Abs(float64(got)-26.9875) > 1e-4 {
		t.Errorf("UnitsToMM(50) = %v, want 26.9875", got)
	}
	if stdmath.Abs(UnitsToMeters-0.00053975) > 1e-9 {
		t.Errorf("UnitsToMeters = %v", UnitsToMeters)
	}
}

func TestExporterSwapsUpAxis(t *testing.T) {
	e := NewExporter(2)
	got := e.Position(math.Vec3{X: 1, Y: 2, Z: 3})
	if want := (math.Vec3{X: 2, Y: 6, Z: 4}); got != want {
		t.Errorf("Position = %v, want %v", got, want)
	}

	n := e.Normal(math.Vec3{X: 0, Y: 0, Z: 5})
	if want := (math.Vec3{X: 0, Y: 1, Z: 0}); n != want {
		t.Errorf("Normal = %v, want %v", n, want)
	}
}

func TestExporterNormalWithoutDirection(t *testing.T) {
	e := NewExporter(1)
	nan := float32(stdmath.NaN())
	tests := []struct {
		name string
		in   math.Vec3
	}{
		{"zero", math.Vec3{}},
		{"nan", math.Vec3{X: nan, Y: 0, Z: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.Normal(tt.in); got != Up {
				t.Errorf("Normal(%v) = %v, want %v", tt.in, got, Up)
			}
		})
	}
}

func TestNewExporterDefaultScale(t *testing.T) {
	if e := NewExporter(0); e.Scale != UnitsToMeters {
		t.Errorf("Scale = %v, want %v", e.Scale, float32(UnitsToMeters))
	}
}

func TestExporterReversesSignedArea(t *testing.T) {
	// Counter-clockwise triangle seen from +Z in table space.
	a := math.Vec3{X: 0, Y: 0, Z: 0}
	b := math.Vec3{X: 1, Y: 0, Z: 0}
	c := math.Vec3{X: 0, Y: 1, Z: 0}
	e := NewExporter(1)

	ea, eb, ec := e.Position(a), e.Position(b), e.Position(c)
	up := math.Vec3{X: 0, Y: 1, Z: 0}

	if n := eb.Sub(ea).Cross(ec.Sub(ea)); n.Dot(up) >= 0 {
		t.Errorf("axis swap should flip the winding, got normal %v", n)
	}
	if n := ec.Sub(ea).Cross(eb.Sub(ea)); n.Dot(up) <= 0 {
		t.Errorf("reversed order should face up, got normal %v", n)
	}
}

func TestPlacementOrder(t *testing.T) {
	p := Placement{
		Position: math.Vec3{X: 100, Y: 200, Z: 0},
		Scale:    math.Vec3{X: 2, Y: 1, Z: 1},
		Rotation: math.Vec3{Z: 90},
	}
	// Scale first: (1,0,0) -> (2,0,0), rotate 90 about Z -> (0,2,0), then move.
	got := p.Matrix().TransformPoint(math.Vec3{X: 1})
	if want := (math.Vec3{X: 100, Y: 202, Z: 0}); !got.ApproxEqual(want, 1e-4) {
		t.Errorf("Matrix() point = %v, want %v", got, want)
	}

	lin := p.Linear().TransformPoint(math.Vec3{X: 1})
	if want := (math.Vec3{X: 0, Y: 2, Z: 0}); !lin.ApproxEqual(want, 1e-4) {
		t.Errorf("Linear() point = %v, want %v", lin, want)
	}
}

func TestPlacementZeroScaleMeansUnit(t *testing.T) {
	got := Placement{}.Matrix().TransformPoint(math.Vec3{X: 1, Y: 2, Z: 3})
	if want := (math.Vec3{X: 1, Y: 2, Z: 3}); got != want {
		t.Errorf("zero placement moved point to %v", got)
	}
}

func TestRotationZYXTurnsZFirst(t *testing.T) {
	deg := math.Vec3{X: 90, Z: 90}
	// Z first: x -> y, then X: y -> z.
	got := RotationZYX(deg).TransformPoint(math.Vec3{X: 1})
	if want := (math.Vec3{Z: 1}); !got.ApproxEqual(want, 1e-5) {
		t.Errorf("RotationZYX = %v, want %v", got, want)
	}
}
