package mesh

import "github.com/MagisterBYTE/Lotus.Basis-sub002/engine/math"

// Epsilon is the tolerance used when vertices are compared by position.
const Epsilon float32 = 1e-4

// UVChannelCount is the number of texture coordinate channels a Vertex carries.
const UVChannelCount = 3

// UVAxis selects the u or v component of a texture coordinate.
type UVAxis uint8

const (
	UVAxisU UVAxis = iota
	UVAxisV
)

// Operation is the set of geometric edits shared by vertices, buffers and
// meshes. Containers dispatch once per bulk call and then iterate over their
// vertices directly.
type Operation interface {
	// Move adds offset to every affected position.
	Move(offset math.Vec3)
	// Rotate rotates positions, normals and tangents around the origin.
	Rotate(rotation math.Quaternion)
	// Scale multiplies positions by a uniform factor. Normals are untouched.
	Scale(factor float32)
	// ScaleAxes multiplies positions component-wise. Normals and tangents are
	// scaled the same way and renormalized.
	ScaleAxes(factor math.Vec3)
	// FlipNormals negates normals.
	FlipNormals()
	// FlipUV replaces a texture coordinate component c with 1-c.
	FlipUV(channel int, axis UVAxis)
}

var (
	_ Operation = (*Vertex)(nil)
	_ Operation = (*VertexBuffer)(nil)
	_ Operation = (*TriangleBuffer)(nil)
	_ Operation = (*EdgeBuffer)(nil)
	_ Operation = (*Mesh)(nil)
)
