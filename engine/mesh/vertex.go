package mesh

import (
	"fmt"

	"github.com/MagisterBYTE/Lotus.Basis-sub002/engine/math"
)

// Vertex is a single mesh vertex.
type Vertex struct {
	// Index is the position of the vertex in its VertexBuffer, or -1 for a
	// detached copy.
	Index    int
	Position math.Vec3
	Normal   math.Vec3
	Tangent  math.Vec3
	UV0      math.Vec2
	UV1      math.Vec2
	UV2      math.Vec2
	// IsUnique reports that no other vertex of the mesh shares this position.
	// It is informational only: transforms never move coincident vertices
	// together.
	IsUnique bool
}

// NewVertex returns a detached vertex at position.
func NewVertex(position math.Vec3) Vertex {
	return Vertex{Index: -1, Position: position}
}

// NewVertexWithNormal returns a detached vertex with a normal and a first
// texture coordinate.
func NewVertexWithNormal(position, normal math.Vec3, uv math.Vec2) Vertex {
	return Vertex{Index: -1, Position: position, Normal: normal, UV0: uv}
}

// Equal compares positions only, within Epsilon. Indices and attributes are
// ignored.
func (v Vertex) Equal(other Vertex) bool {
	return v.Position.Compare(other.Position, Epsilon)
}

// Duplicate returns a copy of v that does not belong to any buffer.
func (v Vertex) Duplicate() Vertex {
	v.Index = -1
	return v
}

// UV returns the texture coordinate of the given channel.
func (v Vertex) UV(channel int) (math.Vec2, bool) {
	switch channel {
	case 0:
		return v.UV0, true
	case 1:
		return v.UV1, true
	case 2:
		return v.UV2, true
	}
	return math.Vec2{}, false
}

// SetUV sets the texture coordinate of the given channel. It reports false
// for an unknown channel.
func (v *Vertex) SetUV(channel int, uv math.Vec2) bool {
	ref := v.uv(channel)
	if ref == nil {
		return false
	}
	*ref = uv
	return true
}

func (v *Vertex) uv(channel int) *math.Vec2 {
	switch channel {
	case 0:
		return &v.UV0
	case 1:
		return &v.UV1
	case 2:
		return &v.UV2
	}
	return nil
}

func (v *Vertex) Move(offset math.Vec3) {
	v.Position = v.Position.Add(offset)
}

func (v *Vertex) Rotate(rotation math.Quaternion) {
	v.Position = v.Position.Rotate(rotation)
	v.Normal = v.Normal.Rotate(rotation)
	v.Tangent = v.Tangent.Rotate(rotation)
}

// Transform applies m to the position, and only the 3x3 part of m to the
// normal and tangent.
func (v *Vertex) Transform(m math.Mat4) {
	v.Position = v.Position.Transform(m)
	v.Normal = v.Normal.TransformDirection(m)
	v.Tangent = v.Tangent.TransformDirection(m)
}

// Scale scales the position uniformly. A uniform scale does not change the
// direction of the normal, so the normal is left as is.
func (v *Vertex) Scale(factor float32) {
	v.Position = v.Position.MulScalar(factor)
}

// ScaleAxes scales the position per axis. The normal and tangent get the
// same scale and are renormalized; zero-length vectors stay zero.
func (v *Vertex) ScaleAxes(factor math.Vec3) {
	v.Position = v.Position.Mul(factor)
	v.Normal = v.Normal.Mul(factor).Normalized()
	v.Tangent = v.Tangent.Mul(factor).Normalized()
}

func (v *Vertex) FlipNormals() {
	v.Normal = v.Normal.Negate()
}

// FlipUV mirrors one component of a texture channel. An unknown channel is
// a no-op.
func (v *Vertex) FlipUV(channel int, axis UVAxis) {
	ref := v.uv(channel)
	if ref == nil {
		return
	}
	switch axis {
	case UVAxisU:
		ref.X = 1 - ref.X
	case UVAxisV:
		ref.Y = 1 - ref.Y
	}
}

func (v Vertex) String() string {
	return fmt.Sprintf("Vertex{%d pos=%v n=%v uv=%v}", v.Index, v.Position, v.Normal, v.UV0)
}
