// Package scene assembles generated meshes, materials, cameras and lights
// into a glTF document and its binary payload.
//
// Assembly runs on one goroutine after generation has finished: buffer
// offsets depend on the final mesh order.
package scene

import (
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/Faultbox/vpxglb/internal/camera"
	"github.com/Faultbox/vpxglb/internal/generate"
	"github.com/Faultbox/vpxglb/internal/lighting"
	"github.com/Faultbox/vpxglb/internal/material"
	"github.com/Faultbox/vpxglb/pkg/geometry"
	"github.com/Faultbox/vpxglb/pkg/glb"
	"github.com/Faultbox/vpxglb/pkg/math"
	"github.com/Faultbox/vpxglb/pkg/transform"
)

// Generator is written into the asset metadata.
const Generator = "vpxglb"

var (
	// ErrInvariant marks an internally inconsistent scene. It means a bug in
	// the converter, never bad input.
	ErrInvariant = errors.New("scene invariant violated")
	// ErrIndexOutOfRange is a triangle index past the vertex list.
	ErrIndexOutOfRange = geometry.ErrIndexOutOfRange
)

// idSpace is the namespace of the node ids written into extras.
var idSpace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/Faultbox/vpxglb/node"))

// Grouping selects how mesh nodes are arranged under the scene root.
type Grouping string

const (
	// GroupLayer puts meshes under one node per authoring layer.
	GroupLayer Grouping = "layer"
	// GroupNone puts every mesh at the root.
	GroupNone Grouping = "none"
)

// Item is a generated mesh with its resolved material index.
type Item struct {
	generate.NamedMesh
	Material int
}

// Input is everything the assembler consumes.
type Input struct {
	Items     []Item
	Materials []material.Material
	Textures  []material.Texture
	Cameras   []camera.Camera
	Lights    []lighting.PointLight
	// Name becomes the scene name.
	Name string
}

// Options controls the layout of the scene graph.
type Options struct {
	Grouping Grouping
	Exporter transform.Exporter
}

// Assembler builds one document. Use Assemble for the common case.
type Assembler struct {
	opts Options
	doc  glb.Document
	buf  buffer

	roots      []int
	groups     map[string]int // layer name -> group index
	groupOrder []string
	groupKids  [][]int
}

// NewAssembler returns an empty assembler.
func NewAssembler(opts Options) *Assembler {
	if opts.Grouping == "" {
		opts.Grouping = GroupLayer
	}
	if opts.Exporter.Scale == 0 {
		opts.Exporter = transform.NewExporter(0)
	}
	return &Assembler{
		opts:   opts,
		groups: make(map[string]int),
	}
}

// Assemble builds the document and binary payload for in. The result is
// validated; any structural problem is returned wrapped in ErrInvariant.
func Assemble(in *Input, opts Options) (*glb.Document, []byte, error) {
	return NewAssembler(opts).Build(in)
}

// Build assembles in. An Assembler builds one document only.
func (a *Assembler) Build(in *Input) (*glb.Document, []byte, error) {
	a.doc.Asset = glb.Asset{Version: "2.0", Generator: Generator}

	if err := a.addTextures(in.Textures); err != nil {
		return nil, nil, err
	}
	if err := a.addMaterials(in.Materials, len(in.Textures)); err != nil {
		return nil, nil, err
	}
	for i := range in.Items {
		if err := a.addMesh(&in.Items[i], len(in.Materials)); err != nil {
			return nil, nil, err
		}
	}
	a.addCameras(in.Cameras)
	a.addLights(in.Lights)
	a.finishGroups()

	a.doc.Scenes = []glb.Scene{{Name: in.Name, Nodes: a.roots}}
	a.doc.Scene = glb.Ptr(0)
	a.doc.Accessors = a.buf.accessors
	a.doc.BufferViews = a.buf.views
	if len(a.buf.data) > 0 {
		a.doc.Buffers = []glb.Buffer{{ByteLength: len(a.buf.data)}}
	}

	if err := glb.Validate(&a.doc, a.buf.data); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrInvariant, err)
	}
	return &a.doc, a.buf.data, nil
}

func (a *Assembler) useExtension(name string) {
	if !slices.Contains(a.doc.ExtensionsUsed, name) {
		a.doc.ExtensionsUsed = append(a.doc.ExtensionsUsed, name)
	}
}

func (a *Assembler) addTextures(textures []material.Texture) error {
	if len(textures) == 0 {
		return nil
	}
	a.doc.Samplers = []glb.Sampler{{
		MagFilter: glb.FilterLinear,
		MinFilter: glb.FilterLinearMipmapLinear,
		WrapS:     glb.WrapRepeat,
		WrapT:     glb.WrapRepeat,
	}}
	for i, t := range textures {
		if len(t.Data) == 0 {
			return fmt.Errorf("%w: texture %d %q has no data", ErrInvariant, i, t.Name)
		}
		view := a.buf.view(t.Data, 0)
		a.doc.Images = append(a.doc.Images, glb.Image{
			Name:       t.Name,
			MimeType:   t.MimeType,
			BufferView: glb.Ptr(view),
		})
		a.doc.Textures = append(a.doc.Textures, glb.Texture{
			Name:    t.Name,
			Sampler: glb.Ptr(0),
			Source:  glb.Ptr(i),
		})
	}
	return nil
}

func (a *Assembler) addMaterials(materials []material.Material, textures int) error {
	for _, m := range materials {
		pbr := &glb.PBRMetallicRoughness{
			BaseColorFactor: glb.Ptr(m.BaseColor),
			MetallicFactor:  glb.Ptr(m.Metallic),
			RoughnessFactor: glb.Ptr(m.Roughness),
		}
		if m.Texture != material.NoTexture {
			if m.Texture < 0 || m.Texture >= textures {
				return fmt.Errorf("%w: material %q texture %d of %d", ErrInvariant, m.Name, m.Texture, textures)
			}
			pbr.BaseColorTexture = &glb.TextureInfo{Index: m.Texture}
		}
		out := glb.Material{
			Name:                 m.Name,
			PBRMetallicRoughness: pbr,
			DoubleSided:          m.DoubleSided,
		}
		if m.AlphaBlend {
			out.AlphaMode = glb.AlphaBlend
		}
		if m.Transmission > 0 {
			out.Extensions = &glb.MaterialExts{Transmission: &glb.Transmission{Factor: m.Transmission}}
			a.useExtension(glb.ExtMaterialTransmission)
		}
		a.doc.Materials = append(a.doc.Materials, out)
	}
	return nil
}

func (a *Assembler) addMesh(it *Item, materials int) error {
	m := it.Mesh
	if m.IsEmpty() {
		return nil
	}
	if err := m.Validate(); err != nil {
		return fmt.Errorf("%w: mesh %q: %w", ErrInvariant, it.Name, err)
	}
	if it.Material < 0 || it.Material >= materials {
		return fmt.Errorf("%w: mesh %q material %d of %d", ErrInvariant, it.Name, it.Material, materials)
	}

	exp := a.opts.Exporter
	positions := make([]math.Vec3, len(m.Vertices))
	normals := make([]math.Vec3, len(m.Vertices))
	uvs := make([]math.Vec2, len(m.Vertices))
	for i, v := range m.Vertices {
		positions[i] = exp.Position(v.Position)
		normals[i] = exp.Normal(v.Normal)
		uvs[i] = v.UV
	}
	indices := m.Indices
	if exp.FlipsWinding() {
		indices = slices.Clone(indices)
		for t := 0; t+2 < len(indices); t += 3 {
			indices[t+1], indices[t+2] = indices[t+2], indices[t+1]
		}
	}

	prim := glb.Primitive{
		Attributes: map[string]int{
			glb.AttrPosition: a.buf.vec3s(positions, true),
			glb.AttrNormal:   a.buf.vec3s(normals, false),
			glb.AttrTexCoord: a.buf.vec2s(uvs),
		},
		Indices:  glb.Ptr(a.buf.indices(indices, len(m.Vertices))),
		Material: glb.Ptr(it.Material),
		Mode:     glb.Ptr(glb.ModeTriangles),
	}
	a.doc.Meshes = append(a.doc.Meshes, glb.Mesh{Name: it.Name, Primitives: []glb.Primitive{prim}})

	node := glb.Node{
		Name:   it.Name,
		Mesh:   glb.Ptr(len(a.doc.Meshes) - 1),
		Extras: nodeExtras(it),
	}
	if it.Translation != (math.Vec3{}) {
		node.Translation = glb.Ptr(exp.Position(it.Translation).Array())
	}
	a.place(a.addNode(node), it.Layer)
	return nil
}

// NodeID returns the deterministic id written into a mesh node's extras.
func NodeID(kind, name string) string {
	return uuid.NewSHA1(idSpace, []byte(kind+"/"+name)).String()
}

func nodeExtras(it *Item) map[string]string {
	extras := make(map[string]string, len(it.Extras)+2)
	for k, v := range it.Extras {
		extras[k] = v
	}
	kind := it.Kind.String()
	extras["kind"] = kind
	extras["id"] = NodeID(kind, it.Name)
	return extras
}

func (a *Assembler) addNode(n glb.Node) int {
	a.doc.Nodes = append(a.doc.Nodes, n)
	return len(a.doc.Nodes) - 1
}

// place attaches a node to its layer group, or to the root when grouping is
// off or the node has no layer.
func (a *Assembler) place(node int, layer string) {
	if a.opts.Grouping == GroupNone || layer == "" {
		a.roots = append(a.roots, node)
		return
	}
	g, ok := a.groups[layer]
	if !ok {
		g = len(a.groupOrder)
		a.groups[layer] = g
		a.groupOrder = append(a.groupOrder, layer)
		a.groupKids = append(a.groupKids, nil)
	}
	a.groupKids[g] = append(a.groupKids[g], node)
}

// finishGroups appends one node per layer group, in order of first use.
func (a *Assembler) finishGroups() {
	for g, name := range a.groupOrder {
		a.roots = append(a.roots, a.addNode(glb.Node{Name: name, Children: a.groupKids[g]}))
	}
}

func (a *Assembler) addCameras(cams []camera.Camera) {
	for _, c := range cams {
		a.doc.Cameras = append(a.doc.Cameras, glb.Camera{
			Name: c.Name,
			Type: glb.CameraPerspective,
			Perspective: &glb.Perspective{
				AspectRatio: c.AspectRatio,
				YFov:        c.YFov,
				Zfar:        c.ZFar,
				Znear:       c.ZNear,
			},
		})
		q := c.Rotation
		a.roots = append(a.roots, a.addNode(glb.Node{
			Name:        c.Name,
			Camera:      glb.Ptr(len(a.doc.Cameras) - 1),
			Translation: glb.Ptr(c.Position.Array()),
			Rotation:    &[4]float32{q.X, q.Y, q.Z, q.W},
		}))
	}
}

func (a *Assembler) addLights(lights []lighting.PointLight) {
	if len(lights) == 0 {
		return
	}
	ext := &glb.LightsPunctual{}
	for _, l := range lights {
		ext.Lights = append(ext.Lights, glb.Light{
			Name:      l.Name,
			Type:      glb.LightPoint,
			Color:     glb.Ptr(l.Color),
			Intensity: glb.Ptr(l.Intensity),
			Range:     l.Range,
		})
		node := a.addNode(glb.Node{
			Name:        l.Name,
			Translation: glb.Ptr(a.opts.Exporter.Position(l.Position).Array()),
			Extensions: &glb.NodeExts{
				LightsPunctual: &glb.NodeLight{Light: len(ext.Lights) - 1},
			},
		})
		a.place(node, l.Layer)
	}
	a.doc.Extensions = &glb.DocumentExts{LightsPunctual: ext}
	a.useExtension(glb.ExtLightsPunctual)
}
