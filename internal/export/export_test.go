package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Faultbox/vpxglb/internal/config"
	"github.com/Faultbox/vpxglb/pkg/glb"
	"github.com/Faultbox/vpxglb/pkg/table"
)

const sampleTable = `
name: Export Sample
dimensions: {left: 0, top: 0, right: 952, bottom: 2162}
materials:
  - name: Plastic
    base_color: [200, 10, 10]
objects:
  - kind: wall
    name: LeftWall
    height_top: 50
    material: Plastic
    layer: {name: Walls}
    drag_points:
      - {x: 100, y: 100}
      - {x: 200, y: 100}
      - {x: 200, y: 300}
      - {x: 100, y: 300}
  - kind: wall
    name: Sliver
    drag_points:
      - {x: 0, y: 0}
      - {x: 10, y: 0}
  - kind: flipper
    name: LeftFlipper
    position: {x: 300, y: 1800}
    base_radius: 21.5
    end_radius: 13
    flipper_radius_max: 130
    height: 50
    start_angle: 121
    rubber_thickness: 7
    rubber_height: 19
    rubber_width: 24
  - kind: bumper
    name: Bumper1
    position: {x: 500, y: 600}
    radius: 45
    height_scale: 90
    layer: {name: Bumpers}
  - kind: light
    name: GI_1
    position: {x: 400, y: 1200}
    intensity: 10
    falloff_radius: 50
    layer: {name: GI}
  - kind: gate
    name: Gate1
    position: {x: 800, y: 400}
    length: 100
    height: 50
`

func loadSample(t *testing.T, extra string) *table.Table {
	t.Helper()
	tbl, err := table.Decode(strings.NewReader(sampleTable+extra), "")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return tbl
}

func parse(t *testing.T, res *Result) *glb.File {
	t.Helper()
	f, err := glb.Parse(res.Data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if err := f.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	return f
}

func countNodes(doc *glb.Document, name string) int {
	n := 0
	for _, node := range doc.Nodes {
		if node.Name == name {
			n++
		}
	}
	return n
}

func TestExportEmptyTable(t *testing.T) {
	res, err := Export(table.Default(), config.Default().Export)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	doc := &parse(t, res).Document
	if res.Meshes != 1 || countNodes(doc, "Playfield") != 1 {
		t.Errorf("meshes = %d, want only the implicit playfield", res.Meshes)
	}
	if res.Cameras != 3 || res.Lights != 2 {
		t.Errorf("cameras = %d, lights = %d", res.Cameras, res.Lights)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("warnings = %v", res.Warnings)
	}
}

func TestExportSample(t *testing.T) {
	res, err := Export(loadSample(t, ""), config.Default().Export)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	doc := &parse(t, res).Document

	for _, name := range []string{"LeftWallTop", "LeftWallSide", "LeftFlipperBase", "LeftFlipperRubber", "Layer_Walls", "Layer_GI", "GI_1"} {
		if countNodes(doc, name) != 1 {
			t.Errorf("node %q missing", name)
		}
	}
	if countNodes(doc, "Sliver") != 0 || countNodes(doc, "SliverTop") != 0 {
		t.Error("two-point wall produced a mesh")
	}

	var sliver int
	for _, w := range res.Warnings {
		if w.Object == "Sliver" {
			sliver++
		}
	}
	if sliver != 1 {
		t.Errorf("%d warnings for the two-point wall, want 1: %v", sliver, res.Warnings)
	}
	if res.Lights != 3 {
		t.Errorf("lights = %d, want two table lights and one GI light", res.Lights)
	}
}

func TestExportDeterministic(t *testing.T) {
	tbl := loadSample(t, "")

	sequential := config.Default().Export
	sequential.Parallel = false
	want, err := Export(tbl, sequential)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	for _, workers := range []int{1, 2, 8} {
		cfg := config.Default().Export
		cfg.Workers = workers
		got, err := Export(tbl, cfg)
		if err != nil {
			t.Fatalf("Export: %v", err)
		}
		if !bytes.Equal(got.Data, want.Data) {
			t.Errorf("%d workers: output differs from sequential export", workers)
		}
	}
}

func TestExportExplicitPlayfield(t *testing.T) {
	tbl := loadSample(t, `
  - kind: primitive
    name: playfield_mesh
    material: Plastic
`)
	res, err := Export(tbl, config.Default().Export)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	doc := &parse(t, res).Document
	if countNodes(doc, "Playfield") != 0 {
		t.Error("implicit playfield generated next to an explicit one")
	}
	if countNodes(doc, "playfield_mesh") != 1 {
		t.Error("explicit playfield missing")
	}
}

func TestExportOptions(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*config.ExportConfig)
		check  func(*testing.T, *Result, *glb.Document)
	}{
		{
			name:   "accurate camera fit warns",
			modify: func(c *config.ExportConfig) { c.CameraFit = config.CameraFitAccurate },
			check: func(t *testing.T, res *Result, _ *glb.Document) {
				if !hasWarning(res, "camera fit") {
					t.Errorf("warnings = %v", res.Warnings)
				}
			},
		},
		{
			name:   "part group falls back to layers",
			modify: func(c *config.ExportConfig) { c.GroupBy = config.GroupByPartGroup },
			check: func(t *testing.T, res *Result, doc *glb.Document) {
				if !hasWarning(res, "part group") || countNodes(doc, "Layer_Walls") != 1 {
					t.Errorf("warnings = %v", res.Warnings)
				}
			},
		},
		{
			name:   "no grouping",
			modify: func(c *config.ExportConfig) { c.GroupBy = config.GroupByNone },
			check: func(t *testing.T, _ *Result, doc *glb.Document) {
				if countNodes(doc, "Layer_Walls") != 0 {
					t.Error("layer group written with grouping off")
				}
			},
		},
		{
			name:   "game lights off",
			modify: func(c *config.ExportConfig) { c.GameLights = false },
			check: func(t *testing.T, res *Result, doc *glb.Document) {
				if res.Lights != 2 || countNodes(doc, "GI_1") != 0 {
					t.Errorf("lights = %d", res.Lights)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default().Export
			tt.modify(&cfg)
			res, err := Export(loadSample(t, ""), cfg)
			if err != nil {
				t.Fatalf("Export: %v", err)
			}
			tt.check(t, res, &parse(t, res).Document)
		})
	}
}

func hasWarning(res *Result, substr string) bool {
	for _, w := range res.Warnings {
		if strings.Contains(w.Message, substr) {
			return true
		}
	}
	return false
}

func TestToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "table.glb")
	res, err := ToFile(loadSample(t, ""), config.Default().Export, path)
	if err != nil {
		t.Fatalf("ToFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if !bytes.Equal(data, res.Data) {
		t.Error("file content differs from result data")
	}
}
