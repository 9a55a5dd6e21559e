package glb

import (
	"encoding/binary"
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

var (
	ErrInvalidReference = errors.New("invalid reference")
	ErrOutOfBounds      = errors.New("byte range out of bounds")
	ErrIndexOutOfRange  = errors.New("vertex index out of range")
)

// Validate checks the structural invariants of a document against its
// binary chunk: every index reference resolves, every accessor lies inside
// its buffer view, every view inside the buffer, and every triangle index is
// below the vertex count of its primitive. All problems are reported; use
// multierr.Errors to list them.
func Validate(doc *Document, bin []byte) error {
	v := validator{doc: doc, bin: bin}
	v.asset()
	v.buffers()
	v.bufferViews()
	v.accessors()
	v.meshes()
	v.nodes()
	v.scenes()
	v.materials()
	v.textures()
	return v.err
}

type validator struct {
	doc *Document
	bin []byte
	err error
}

func (v *validator) fail(format string, args ...any) {
	v.err = multierr.Append(v.err, fmt.Errorf(format, args...))
}

func (v *validator) ref(what string, i int, field string, idx *int, n int) {
	if idx != nil && (*idx < 0 || *idx >= n) {
		v.fail("%s %d: %s %d of %d: %w", what, i, field, *idx, n, ErrInvalidReference)
	}
}

func (v *validator) asset() {
	if v.doc.Asset.Version != "2.0" {
		v.fail("asset version %q: %w", v.doc.Asset.Version, ErrUnsupportedVersion)
	}
}

func (v *validator) buffers() {
	for i, b := range v.doc.Buffers {
		if i > 0 || b.URI != "" {
			v.fail("buffer %d: only the embedded buffer is supported: %w", i, ErrInvalidReference)
			continue
		}
		if b.ByteLength > len(v.bin) || len(v.bin)-b.ByteLength > 3 {
			v.fail("buffer 0: %d bytes, BIN chunk %d: %w", b.ByteLength, len(v.bin), ErrChunkLength)
		}
	}
}

func (v *validator) bufferLength(i int) int {
	if i < 0 || i >= len(v.doc.Buffers) {
		return -1
	}
	return v.doc.Buffers[i].ByteLength
}

func (v *validator) bufferViews() {
	for i, bv := range v.doc.BufferViews {
		n := v.bufferLength(bv.Buffer)
		if n < 0 {
			v.fail("buffer view %d: buffer %d: %w", i, bv.Buffer, ErrInvalidReference)
			continue
		}
		if bv.ByteOffset < 0 || bv.ByteLength <= 0 || bv.ByteOffset+bv.ByteLength > n {
			v.fail("buffer view %d: bytes %d+%d of %d: %w", i, bv.ByteOffset, bv.ByteLength, n, ErrOutOfBounds)
		}
	}
}

func (v *validator) accessors() {
	for i, a := range v.doc.Accessors {
		size, comps := ComponentSize(a.ComponentType), ComponentCount(a.Type)
		if size == 0 || comps == 0 {
			v.fail("accessor %d: component type %d, type %q: %w", i, a.ComponentType, a.Type, ErrInvalidReference)
			continue
		}
		if a.Count <= 0 {
			v.fail("accessor %d: count %d: %w", i, a.Count, ErrOutOfBounds)
		}
		if (a.Min != nil && len(a.Min) != comps) || (a.Max != nil && len(a.Max) != comps) {
			v.fail("accessor %d: min/max need %d components: %w", i, comps, ErrInvalidReference)
		}
		if a.BufferView == nil {
			continue
		}
		v.ref("accessor", i, "buffer view", a.BufferView, len(v.doc.BufferViews))
		if *a.BufferView < 0 || *a.BufferView >= len(v.doc.BufferViews) {
			continue
		}
		bv := v.doc.BufferViews[*a.BufferView]
		stride := bv.ByteStride
		if stride == 0 {
			stride = size * comps
		}
		end := a.ByteOffset + stride*(a.Count-1) + size*comps
		if a.ByteOffset%size != 0 || end > bv.ByteLength {
			v.fail("accessor %d: ends at %d, view %d has %d bytes: %w", i, end, *a.BufferView, bv.ByteLength, ErrOutOfBounds)
		}
	}
}

func (v *validator) meshes() {
	nAcc := len(v.doc.Accessors)
	for i, m := range v.doc.Meshes {
		if len(m.Primitives) == 0 {
			v.fail("mesh %d: no primitives: %w", i, ErrInvalidReference)
		}
		for _, p := range m.Primitives {
			pos, ok := p.Attributes[AttrPosition]
			if !ok {
				v.fail("mesh %d: no %s attribute: %w", i, AttrPosition, ErrInvalidReference)
			}
			for sem, idx := range p.Attributes {
				v.ref("mesh", i, sem, &idx, nAcc)
			}
			v.ref("mesh", i, "indices", p.Indices, nAcc)
			v.ref("mesh", i, "material", p.Material, len(v.doc.Materials))
			if p.Mode != nil && *p.Mode != ModeTriangles {
				v.fail("mesh %d: mode %d, want triangles: %w", i, *p.Mode, ErrInvalidReference)
			}
			if ok && pos >= 0 && pos < nAcc && p.Indices != nil && *p.Indices >= 0 && *p.Indices < nAcc {
				v.indices(i, v.doc.Accessors[*p.Indices], v.doc.Accessors[pos].Count)
			}
		}
	}
}

// indices scans an index accessor and checks every index against the
// vertex count.
func (v *validator) indices(mesh int, a Accessor, vertices int) {
	if a.Count%3 != 0 {
		v.fail("mesh %d: %d indices is not a triangle list: %w", mesh, a.Count, ErrInvalidReference)
	}
	data, ok := v.accessorBytes(a)
	if !ok {
		return
	}
	size := ComponentSize(a.ComponentType)
	for k := 0; k < a.Count; k++ {
		var idx uint32
		switch a.ComponentType {
		case ComponentUnsignedShort:
			idx = uint32(binary.LittleEndian.Uint16(data[k*size:]))
		case ComponentUnsignedInt:
			idx = binary.LittleEndian.Uint32(data[k*size:])
		case ComponentUnsignedByte:
			idx = uint32(data[k])
		default:
			v.fail("mesh %d: index component type %d: %w", mesh, a.ComponentType, ErrInvalidReference)
			return
		}
		if int(idx) >= vertices {
			v.fail("mesh %d: index %d at %d, %d vertices: %w", mesh, idx, k, vertices, ErrIndexOutOfRange)
			return
		}
	}
}

// accessorBytes returns the tightly packed bytes of a scalar accessor, or
// false when they cannot be located.
func (v *validator) accessorBytes(a Accessor) ([]byte, bool) {
	if a.BufferView == nil || *a.BufferView < 0 || *a.BufferView >= len(v.doc.BufferViews) {
		return nil, false
	}
	bv := v.doc.BufferViews[*a.BufferView]
	start := bv.ByteOffset + a.ByteOffset
	end := start + a.Count*ComponentSize(a.ComponentType)
	if bv.ByteStride != 0 || start < 0 || end > bv.ByteOffset+bv.ByteLength || end > len(v.bin) {
		return nil, false
	}
	return v.bin[start:end], true
}

func (v *validator) nodes() {
	var lights int
	if ext := v.doc.Extensions; ext != nil && ext.LightsPunctual != nil {
		lights = len(ext.LightsPunctual.Lights)
	}
	parents := make(map[int]int)
	for i, n := range v.doc.Nodes {
		v.ref("node", i, "mesh", n.Mesh, len(v.doc.Meshes))
		v.ref("node", i, "camera", n.Camera, len(v.doc.Cameras))
		if n.Extensions != nil && n.Extensions.LightsPunctual != nil {
			v.ref("node", i, "light", &n.Extensions.LightsPunctual.Light, lights)
		}
		for _, c := range n.Children {
			v.ref("node", i, "child", &c, len(v.doc.Nodes))
			if c == i {
				v.fail("node %d: is its own child: %w", i, ErrInvalidReference)
			}
			if p, ok := parents[c]; ok {
				v.fail("node %d: already a child of node %d: %w", c, p, ErrInvalidReference)
			}
			parents[c] = i
		}
	}
}

func (v *validator) scenes() {
	v.ref("document", 0, "scene", v.doc.Scene, len(v.doc.Scenes))
	for i, s := range v.doc.Scenes {
		for _, n := range s.Nodes {
			v.ref("scene", i, "node", &n, len(v.doc.Nodes))
		}
	}
}

func (v *validator) materials() {
	for i, m := range v.doc.Materials {
		if pbr := m.PBRMetallicRoughness; pbr != nil && pbr.BaseColorTexture != nil {
			v.ref("material", i, "texture", &pbr.BaseColorTexture.Index, len(v.doc.Textures))
		}
	}
}

func (v *validator) textures() {
	for i, t := range v.doc.Textures {
		v.ref("texture", i, "source", t.Source, len(v.doc.Images))
		v.ref("texture", i, "sampler", t.Sampler, len(v.doc.Samplers))
	}
	for i, img := range v.doc.Images {
		if img.BufferView == nil && img.URI == "" {
			v.fail("image %d: no data: %w", i, ErrInvalidReference)
		}
		v.ref("image", i, "buffer view", img.BufferView, len(v.doc.BufferViews))
	}
}
