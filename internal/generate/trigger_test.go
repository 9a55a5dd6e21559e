package generate

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/Faultbox/vpxglb/pkg/geometry"
	"github.com/Faultbox/vpxglb/pkg/math"
	"github.com/Faultbox/vpxglb/pkg/table"
)

func nearVec(a, b math.Vec3, tol float32) bool {
	return math32.Abs(a.X-b.X) <= tol && math32.Abs(a.Y-b.Y) <= tol && math32.Abs(a.Z-b.Z) <= tol
}

func triggerObject(shape table.TriggerShape, scale math.Vec3, rotation, radius, thickness float32) table.Object {
	obj := newObject("T", &table.Trigger{Shape: shape, Radius: radius, WireThickness: thickness})
	obj.Scale = scale
	obj.Rotation = math.V3(0, 0, rotation)
	return obj
}

func trigTemplate(t *testing.T, tpl triggerTemplate) *geometry.Mesh {
	t.Helper()
	templates, err := triggerTemplates()
	if err != nil {
		t.Fatalf("trigger templates: %v", err)
	}
	return templates[tpl]
}

func TestTriggerScaleAfterRotation(t *testing.T) {
	res := generateOne(t, triggerObject(table.TriggerWireA, math.V3(2, 1, 1), 90, 25, 0))
	got := findMesh(t, res, "T").Mesh.Bounds().Size()

	tpl := trigTemplate(t, triggerTemplateWire).Bounds().Size()
	// The quarter turn puts the template's long Y extent on X, where the
	// doubled scale applies.
	want := math.V3(2*tpl.Y, tpl.X, tpl.Z)
	if !nearVec(got, want, 1e-2) {
		t.Errorf("size = %v, want %v", got, want)
	}
}

func TestTriggerShapes(t *testing.T) {
	tests := []struct {
		shape    table.TriggerShape
		template triggerTemplate
		tilt     float32
		zOffset  float32
		// byRadius shapes ignore scale X/Y and grow with the radius.
		byRadius bool
		wire     bool
	}{
		{table.TriggerWireA, triggerTemplateWire, 0, 0, false, true},
		{table.TriggerWireB, triggerTemplateWire, -23, 0, false, true},
		{table.TriggerWireC, triggerTemplateWire, 140, -19, false, true},
		{table.TriggerWireD, triggerTemplateWireD, 0, 0, false, true},
		{table.TriggerInder, triggerTemplateInder, 0, 0, false, true},
		{table.TriggerStar, triggerTemplateStar, 0, 0, true, false},
		{table.TriggerButton, triggerTemplateButton, 0, 5, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.shape.String(), func(t *testing.T) {
			const radius = 25
			scale := math.V3(1.5, 0.5, 1)
			res := generateOne(t, triggerObject(tt.shape, scale, 0, radius, 0))
			m := findMesh(t, res, "T")

			if m.Translation.Z != tt.zOffset {
				t.Errorf("height = %v, want %v", m.Translation.Z, tt.zOffset)
			}

			want := trigTemplate(t, tt.template).Transformed(math.RotateX(math.Radians(tt.tilt)))
			if tt.byRadius {
				want = want.Transformed(math.Scale(radius, radius, radius))
			} else {
				want = want.Transformed(math.Scale(scale.X, scale.Y, 1))
			}
			gb, wb := m.Mesh.Bounds(), want.Bounds()
			if !nearVec(gb.Min, wb.Min, 1e-2) || !nearVec(gb.Max, wb.Max, 1e-2) {
				t.Errorf("bounds = %v, want %v", gb, wb)
			}

			style := triggerStyles[tt.shape]
			if style.wire != tt.wire || style.uniform != tt.byRadius {
				t.Errorf("style = %+v", style)
			}
		})
	}
}

func TestTriggerWireThickness(t *testing.T) {
	tests := []struct {
		shape table.TriggerShape
		want  float32
	}{
		{table.TriggerWireA, 2},
		{table.TriggerInder, 2},
		{table.TriggerStar, 0},
	}
	for _, tt := range tests {
		t.Run(tt.shape.String(), func(t *testing.T) {
			scale := math.V3(2, 0.5, 1)
			bare := findMesh(t, generateOne(t, triggerObject(tt.shape, scale, 30, 25, 0)), "T").Mesh
			thick := findMesh(t, generateOne(t, triggerObject(tt.shape, scale, 30, 25, 2)), "T").Mesh

			// Thickness is added after scaling, so every vertex moves by
			// exactly the thickness whatever the scale.
			for i := range bare.Vertices {
				d := thick.Vertices[i].Position.Sub(bare.Vertices[i].Position).Length()
				if math32.Abs(d-tt.want) > 1e-3 {
					t.Fatalf("vertex %d moved %v, want %v", i, d, tt.want)
				}
			}
		})
	}
}
