package transform

import "github.com/Faultbox/vpxglb/pkg/math"

// Placement describes how an object is positioned on the table. Angles are
// in degrees.
type Placement struct {
	Position       math.Vec3
	Scale          math.Vec3
	Rotation       math.Vec3 // x, y, z
	ObjectRotation math.Vec3 // secondary x, y, z
	Translation    math.Vec3 // offset applied after scaling, before rotating
}

// Linear returns the transform from object-local space to table space with
// the position left out: scale, translation offset, rotation Z, Y, X, then
// object rotation Z, Y, X. Generators bake this into vertices and carry the
// position on the node.
func (p Placement) Linear() math.Mat4 {
	s := p.Scale
	if s == (math.Vec3{}) {
		s = math.Vec3{X: 1, Y: 1, Z: 1}
	}
	return math.Scale(s.X, s.Y, s.Z).
		Then(math.TranslateVec(p.Translation)).
		Then(RotationZYX(p.Rotation)).
		Then(RotationZYX(p.ObjectRotation))
}

// Matrix returns the full object-to-table transform including position.
func (p Placement) Matrix() math.Mat4 {
	return p.Linear().Then(math.TranslateVec(p.Position))
}

// RotationZYX returns the rotation that turns around Z first, then Y, then X.
// Angles are in degrees.
func RotationZYX(deg math.Vec3) math.Mat4 {
	return math.RotateZ(math.Radians(deg.Z)).
		Then(math.RotateY(math.Radians(deg.Y))).
		Then(math.RotateX(math.Radians(deg.X)))
}
