// Package export runs the table to GLB pipeline: parallel mesh generation,
// material mapping, cameras and lights, and single-threaded assembly.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/vpxglb/internal/camera"
	"github.com/Faultbox/vpxglb/internal/config"
	"github.com/Faultbox/vpxglb/internal/generate"
	"github.com/Faultbox/vpxglb/internal/lighting"
	"github.com/Faultbox/vpxglb/internal/logger"
	"github.com/Faultbox/vpxglb/internal/material"
	"github.com/Faultbox/vpxglb/internal/scene"
	"github.com/Faultbox/vpxglb/pkg/glb"
	"github.com/Faultbox/vpxglb/pkg/table"
	"github.com/Faultbox/vpxglb/pkg/transform"
)

// Result summarizes one export.
type Result struct {
	// Data is the complete GLB container.
	Data      []byte
	Meshes    int
	Materials int
	Textures  int
	Cameras   int
	Lights    int
	// Warnings lists every recovered problem in table order, followed by
	// the material and texture problems.
	Warnings []generate.Warning
}

// Export converts t into a GLB container. Input and asset defects become
// warnings; only an internally inconsistent scene is an error.
func Export(t *table.Table, cfg config.ExportConfig) (*Result, error) {
	exp := transform.NewExporter(cfg.UnitScale)
	res := &Result{}

	if cfg.CameraFit == config.CameraFitAccurate {
		res.Warnings = append(res.Warnings, generate.Warning{
			Message: "accurate camera fit is not supported, framing the table bounds",
		})
	}
	grouping := scene.GroupLayer
	switch cfg.GroupBy {
	case config.GroupByNone:
		grouping = scene.GroupNone
	case config.GroupByPartGroup:
		res.Warnings = append(res.Warnings, generate.Warning{
			Message: "grouping by part group is not supported, grouping by layer",
		})
	}

	meshes, warnings := generateAll(t, cfg)
	res.Warnings = append(res.Warnings, warnings...)

	mapper := material.NewMapper(t)
	items := make([]scene.Item, len(meshes))
	for i := range meshes {
		items[i] = scene.Item{NamedMesh: meshes[i], Material: mapper.Resolve(&meshes[i])}
	}
	res.Warnings = append(res.Warnings, mapper.Warnings()...)

	lights := lighting.TableLights(t, exp)
	if cfg.GameLights {
		lights = append(lights, lighting.GILights(t, exp)...)
	}
	in := &scene.Input{
		Name:      t.Name,
		Items:     items,
		Materials: mapper.Materials(),
		Textures:  mapper.Textures(),
		Cameras:   camera.Build(t, exp),
		Lights:    lights,
	}

	doc, bin, err := scene.Assemble(in, scene.Options{Grouping: grouping, Exporter: exp})
	if err != nil {
		return nil, fmt.Errorf("assembling scene: %w", err)
	}
	res.Data, err = glb.Encode(doc, bin)
	if err != nil {
		return nil, fmt.Errorf("encoding container: %w", err)
	}

	res.Meshes = len(doc.Meshes)
	res.Materials = len(doc.Materials)
	res.Textures = len(doc.Textures)
	res.Cameras = len(doc.Cameras)
	res.Lights = len(lights)

	for _, w := range res.Warnings {
		logger.Warn(w.Message, zap.String("object", w.Object), zap.Stringer("kind", w.Kind))
	}
	logger.Info("exported table",
		zap.String("table", t.Name),
		zap.Int("meshes", res.Meshes),
		zap.Int("materials", res.Materials),
		zap.Int("warnings", len(res.Warnings)),
		zap.Int("bytes", len(res.Data)),
	)
	return res, nil
}

// ToFile exports t and writes the container to path.
func ToFile(t *table.Table, cfg config.ExportConfig, path string) (*Result, error) {
	res, err := Export(t, cfg)
	if err != nil {
		return nil, err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}
	if err := os.WriteFile(path, res.Data, 0644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", path, err)
	}
	return res, nil
}

// generateAll runs every generator and merges the results in table order,
// so the output does not depend on scheduling. A table without an explicit
// playfield gets the implicit one first.
func generateAll(t *table.Table, cfg config.ExportConfig) ([]generate.NamedMesh, []generate.Warning) {
	gctx := generate.NewContext(t, cfg.IncludeInvisible)
	results := make([]generate.Result, len(t.Objects))

	if cfg.Parallel && len(t.Objects) > 1 {
		workers := cfg.Workers
		if workers <= 0 {
			workers = runtime.GOMAXPROCS(0)
		}
		var g errgroup.Group
		g.SetLimit(workers)
		for i := range t.Objects {
			i := i
			g.Go(func() error {
				results[i] = gctx.Generate(&t.Objects[i])
				return nil
			})
		}
		_ = g.Wait() // generators report problems as warnings
	} else {
		for i := range t.Objects {
			results[i] = gctx.Generate(&t.Objects[i])
		}
	}

	var (
		meshes    []generate.NamedMesh
		warnings  []generate.Warning
		playfield bool
	)
	for _, r := range results {
		for _, m := range r.Meshes {
			playfield = playfield || m.Playfield
		}
		meshes = append(meshes, r.Meshes...)
		warnings = append(warnings, r.Warnings...)
	}
	if !playfield {
		meshes = append([]generate.NamedMesh{gctx.ImplicitPlayfield()}, meshes...)
	}
	logger.Debug("generated meshes",
		zap.Int("objects", len(t.Objects)),
		zap.Int("meshes", len(meshes)),
		zap.Bool("implicit_playfield", !playfield),
	)
	return meshes, warnings
}
