package generate

import (
	"errors"
	"fmt"

	"github.com/Faultbox/vpxglb/pkg/encoding"
	"github.com/Faultbox/vpxglb/pkg/table"
)

// Surface lookup errors.
var (
	ErrSurfaceNotFound = errors.New("surface not found")
	// ErrSurfaceApproximate accompanies a usable height that only
	// approximates the surface, such as a ramp's average height.
	ErrSurfaceApproximate = errors.New("surface height approximated")
)

type surface struct {
	name   string
	kind   table.Kind
	height float32
}

// SurfaceIndex answers "how high is the surface called X" for objects that
// sit on walls or ramps. Names are matched case-insensitively.
type SurfaceIndex struct {
	byName map[string]surface
}

// NewSurfaceIndex indexes every wall and ramp of t. The first object with a
// given name wins.
func NewSurfaceIndex(t *table.Table) *SurfaceIndex {
	idx := &SurfaceIndex{byName: make(map[string]surface)}
	for i := range t.Objects {
		obj := &t.Objects[i]
		var s surface
		switch shape := obj.Shape.(type) {
		case *table.Wall:
			s = surface{name: obj.Name, kind: table.KindWall, height: shape.HeightTop}
		case *table.Ramp:
			s = surface{name: obj.Name, kind: table.KindRamp, height: (shape.HeightBottom + shape.HeightTop) / 2}
		default:
			continue
		}
		key := encoding.NormalizeName(obj.Name)
		if _, dup := idx.byName[key]; !dup {
			idx.byName[key] = s
		}
	}
	return idx
}

// Height returns the height of the named surface. An empty name is the
// playfield at height 0. For ramps the average of bottom and top height is
// returned together with an error wrapping ErrSurfaceApproximate.
func (s *SurfaceIndex) Height(name string) (float32, error) {
	if name == "" {
		return 0, nil
	}
	sf, ok := s.byName[encoding.NormalizeName(name)]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrSurfaceNotFound, name)
	}
	if sf.kind == table.KindRamp {
		return sf.height, fmt.Errorf("%w: ramp %q used as surface, using its average height %.2f",
			ErrSurfaceApproximate, sf.name, sf.height)
	}
	return sf.height, nil
}

func isApproximate(err error) bool {
	return errors.Is(err, ErrSurfaceApproximate)
}
