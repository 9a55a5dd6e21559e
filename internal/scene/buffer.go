package scene

import (
	"encoding/binary"
	"math"

	"github.com/Faultbox/vpxglb/pkg/glb"
	gmath "github.com/Faultbox/vpxglb/pkg/math"
)

// buffer accumulates the BIN chunk and the views and accessors that
// describe it. Every view starts on a 4-byte boundary.
type buffer struct {
	data      []byte
	views     []glb.BufferView
	accessors []glb.Accessor
}

func (b *buffer) align() {
	for len(b.data)%4 != 0 {
		b.data = append(b.data, 0)
	}
}

// view appends raw bytes as a new buffer view and returns its index.
func (b *buffer) view(data []byte, target int) int {
	b.align()
	b.views = append(b.views, glb.BufferView{
		Buffer:     0,
		ByteOffset: len(b.data),
		ByteLength: len(data),
		Target:     target,
	})
	b.data = append(b.data, data...)
	return len(b.views) - 1
}

func (b *buffer) accessor(a glb.Accessor) int {
	b.accessors = append(b.accessors, a)
	return len(b.accessors) - 1
}

// vec3s writes float vectors and returns the accessor index. Positions get
// min and max bounds, which glTF requires.
func (b *buffer) vec3s(vs []gmath.Vec3, bounds bool) int {
	data := make([]byte, 0, len(vs)*12)
	lo, hi := vs[0], vs[0]
	for _, v := range vs {
		data = appendFloats(data, v.X, v.Y, v.Z)
		lo = gmath.Vec3{X: min(lo.X, v.X), Y: min(lo.Y, v.Y), Z: min(lo.Z, v.Z)}
		hi = gmath.Vec3{X: max(hi.X, v.X), Y: max(hi.Y, v.Y), Z: max(hi.Z, v.Z)}
	}
	a := glb.Accessor{
		BufferView:    glb.Ptr(b.view(data, glb.TargetArrayBuffer)),
		ComponentType: glb.ComponentFloat,
		Count:         len(vs),
		Type:          glb.TypeVec3,
	}
	if bounds {
		a.Min = []float32{lo.X, lo.Y, lo.Z}
		a.Max = []float32{hi.X, hi.Y, hi.Z}
	}
	return b.accessor(a)
}

func (b *buffer) vec2s(vs []gmath.Vec2) int {
	data := make([]byte, 0, len(vs)*8)
	for _, v := range vs {
		data = appendFloats(data, v.X, v.Y)
	}
	return b.accessor(glb.Accessor{
		BufferView:    glb.Ptr(b.view(data, glb.TargetArrayBuffer)),
		ComponentType: glb.ComponentFloat,
		Count:         len(vs),
		Type:          glb.TypeVec2,
	})
}

// indices writes a triangle list as unsigned shorts when every vertex is
// addressable with 16 bits, as unsigned ints otherwise.
func (b *buffer) indices(idx []uint32, vertices int) int {
	var (
		data  []byte
		ctype int
	)
	if vertices <= math.MaxUint16 {
		ctype = glb.ComponentUnsignedShort
		data = make([]byte, 0, len(idx)*2)
		for _, i := range idx {
			data = binary.LittleEndian.AppendUint16(data, uint16(i))
		}
	} else {
		ctype = glb.ComponentUnsignedInt
		data = make([]byte, 0, len(idx)*4)
		for _, i := range idx {
			data = binary.LittleEndian.AppendUint32(data, i)
		}
	}
	return b.accessor(glb.Accessor{
		BufferView:    glb.Ptr(b.view(data, glb.TargetElementArrayBuffer)),
		ComponentType: ctype,
		Count:         len(idx),
		Type:          glb.TypeScalar,
	})
}

func appendFloats(dst []byte, fs ...float32) []byte {
	for _, f := range fs {
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(f))
	}
	return dst
}
