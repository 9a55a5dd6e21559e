package table

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleTable = `
name: Sample
dimensions: {left: 0, top: 0, right: 1000, bottom: 2000}
playfield_image: pf
images:
  - name: PF
    path: pf.png
materials:
  - name: Plastic
    base_color: [200, 10, 10]
    roughness: 0.8
objects:
  - kind: wall
    name: LeftWall
    height_top: 60
    layer: {name: Walls}
    drag_points:
      - {x: 0, y: 0}
      - {x: 100, y: 0}
      - {x: 100, y: 100, smooth: true}
  - kind: Trigger
    name: T1
    shape: star
  - kind: trigger
    name: T2
    shape: 42
  - kind: kicker
    name: K1
    type: Cup2
    layer: {index: 2}
  - kind: primitive
    name: PlayField_Mesh
  - kind: teleporter
    name: Mystery
`

func decodeSample(t *testing.T, dir string) *Table {
	t.Helper()
	tbl, err := Decode(strings.NewReader(sampleTable), dir)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	return tbl
}

func TestDecodeObjects(t *testing.T) {
	tbl := decodeSample(t, "")

	if len(tbl.Objects) != 6 {
		t.Fatalf("got %d objects, want 6", len(tbl.Objects))
	}

	wall, ok := tbl.Objects[0].Shape.(*Wall)
	if !ok {
		t.Fatalf("object 0 is %T, want *Wall", tbl.Objects[0].Shape)
	}
	if wall.HeightTop != 60 {
		t.Errorf("HeightTop = %v, want 60", wall.HeightTop)
	}
	if !wall.TopVisible || !wall.SideVisible {
		t.Error("wall visibility defaults not applied")
	}
	if !tbl.Objects[0].Visible {
		t.Error("objects should default to visible")
	}
	if s := tbl.Objects[0].Scale; s.X != 1 || s.Y != 1 || s.Z != 1 {
		t.Errorf("Scale default = %v", s)
	}
	if len(wall.DragPoints) != 3 || !wall.DragPoints[2].Smooth {
		t.Errorf("drag points = %+v", wall.DragPoints)
	}
}

func TestDecodeEnums(t *testing.T) {
	tbl := decodeSample(t, "")

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"named trigger shape", tbl.Objects[1].Shape.(*Trigger).Shape.String(), "Star"},
		{"unknown numeric shape", tbl.Objects[2].Shape.(*Trigger).Shape.String(), "Unknown(-1)"},
		{"kicker type", tbl.Objects[3].Shape.(*Kicker).Type.String(), "Cup2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
	if tbl.Objects[2].Shape.(*Trigger).Shape.Valid() {
		t.Error("shape 42 should not be valid")
	}
}

func TestDecodeUnknownKind(t *testing.T) {
	tbl := decodeSample(t, "")
	obj := tbl.Objects[5]
	if obj.Kind() != KindUnknown || obj.Shape != nil {
		t.Errorf("unknown kind decoded as %v", obj.Kind())
	}
	if obj.KindName != "teleporter" {
		t.Errorf("KindName = %q", obj.KindName)
	}
}

func TestLayerGroupName(t *testing.T) {
	tbl := decodeSample(t, "")
	tests := []struct {
		obj  int
		want string
	}{
		{0, "Layer_Walls"},
		{3, "Layer_3"},
		{1, ""},
	}
	for _, tt := range tests {
		if got := tbl.Objects[tt.obj].Layer.GroupName(); got != tt.want {
			t.Errorf("object %d GroupName() = %q, want %q", tt.obj, got, tt.want)
		}
	}
}

func TestIsPlayfield(t *testing.T) {
	tbl := decodeSample(t, "")
	for i, obj := range tbl.Objects {
		want := i == 4
		if got := obj.IsPlayfield(); got != want {
			t.Errorf("object %d (%s) IsPlayfield() = %v, want %v", i, obj.Name, got, want)
		}
	}
}

func TestLookupsIgnoreCase(t *testing.T) {
	tbl := decodeSample(t, "")
	if m, ok := tbl.FindMaterial("plastic"); !ok || m.BaseColor[0] != 200 {
		t.Errorf("FindMaterial(plastic) = %v, %v", m, ok)
	}
	if _, ok := tbl.FindImage(tbl.PlayfieldImage); !ok {
		t.Error("FindImage(pf) should match PF")
	}
	if _, ok := tbl.FindMaterial(""); ok {
		t.Error("empty name should not match")
	}
}

func TestLoadReadsImages(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "table.yaml")
	if err := os.WriteFile(path, []byte(sampleTable), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "pf.png"), []byte("png-bytes"), 0o644); err != nil {
		t.Fatal(err)
	}

	tbl, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if string(tbl.Images[0].Data) != "png-bytes" {
		t.Errorf("image data = %q", tbl.Images[0].Data)
	}
}

func TestLoadMissingImageIsNotFatal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "table.yaml")
	if err := os.WriteFile(path, []byte(sampleTable), 0o644); err != nil {
		t.Fatal(err)
	}
	tbl, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if tbl.Images[0].Data != nil {
		t.Error("missing image should have no data")
	}
}

func TestDecodeEmpty(t *testing.T) {
	if _, err := Decode(strings.NewReader(""), ""); !errors.Is(err, ErrEmpty) {
		t.Errorf("Decode(empty) error = %v, want ErrEmpty", err)
	}
}

func TestDefaults(t *testing.T) {
	tbl := decodeSample(t, "")
	if tbl.GlassHeight != 210 {
		t.Errorf("GlassHeight = %v, want 210", tbl.GlassHeight)
	}
	if tbl.Lighting.EmissionScale != 1_000_000 {
		t.Errorf("EmissionScale = %v", tbl.Lighting.EmissionScale)
	}
	if tbl.Dimensions.Width() != 1000 || tbl.Dimensions.Height() != 2000 {
		t.Errorf("Dimensions = %+v", tbl.Dimensions)
	}
	if fss := DefaultFSSView(); fss.FOV != 45 || fss.Inclination != 52 {
		t.Errorf("DefaultFSSView() = %+v", fss)
	}
}
