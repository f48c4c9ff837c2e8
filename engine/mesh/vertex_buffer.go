package mesh

import (
	"fmt"

	"github.com/MagisterBYTE/Lotus.Basis-sub002/engine/core"
	"github.com/MagisterBYTE/Lotus.Basis-sub002/engine/math"
	"golang.org/x/exp/slices"
)

// extremaSentinel is the starting bound for MinPosition and MaxPosition.
// Coordinates beyond it are not reported correctly.
const extremaSentinel float32 = 20000

// VertexBuffer owns the vertices of a mesh. Triangle and edge buffers refer
// to it by pointer and never own it.
type VertexBuffer struct {
	vertices []Vertex
}

func NewVertexBuffer(capacity int) *VertexBuffer {
	if capacity < 0 {
		capacity = 0
	}
	return &VertexBuffer{vertices: make([]Vertex, 0, capacity)}
}

func (vb *VertexBuffer) Len() int {
	return len(vb.vertices)
}

// Vertices returns the backing slice. Edits through it are edits to the buffer.
func (vb *VertexBuffer) Vertices() []Vertex {
	return vb.vertices
}

// At returns a pointer to the vertex at index, or nil when index is out of range.
func (vb *VertexBuffer) At(index int) *Vertex {
	if index < 0 || index >= len(vb.vertices) {
		return nil
	}
	return &vb.vertices[index]
}

func (vb *VertexBuffer) Get(index int) (Vertex, error) {
	if index < 0 || index >= len(vb.vertices) {
		return Vertex{}, fmt.Errorf("vertex %d of %d: %w", index, len(vb.vertices), core.ErrIndexOutOfRange)
	}
	return vb.vertices[index], nil
}

// Position returns the position of the vertex at index.
func (vb *VertexBuffer) Position(index int) (math.Vec3, bool) {
	if index < 0 || index >= len(vb.vertices) {
		return math.Vec3{}, false
	}
	return vb.vertices[index].Position, true
}

// Add appends v and returns its index. The stored copy gets that index.
func (vb *VertexBuffer) Add(v Vertex) int {
	v.Index = len(vb.vertices)
	vb.vertices = append(vb.vertices, v)
	return v.Index
}

func (vb *VertexBuffer) AddPosition(position math.Vec3) int {
	return vb.Add(NewVertex(position))
}

func (vb *VertexBuffer) AddVertex(position, normal math.Vec3, uv math.Vec2) int {
	return vb.Add(NewVertexWithNormal(position, normal, uv))
}

// AddRange appends every vertex of vertices, reindexing them.
func (vb *VertexBuffer) AddRange(vertices []Vertex) {
	vb.vertices = slices.Grow(vb.vertices, len(vertices))
	for _, v := range vertices {
		vb.Add(v)
	}
}

// Resize grows the buffer with default vertices or truncates it.
func (vb *VertexBuffer) Resize(count int) {
	if count < 0 {
		count = 0
	}
	if count <= len(vb.vertices) {
		vb.vertices = vb.vertices[:count]
		return
	}
	for len(vb.vertices) < count {
		vb.Add(Vertex{})
	}
}

func (vb *VertexBuffer) Clear() {
	vb.vertices = vb.vertices[:0]
}

// Duplicate returns a deep copy of the buffer.
func (vb *VertexBuffer) Duplicate() *VertexBuffer {
	return &VertexBuffer{vertices: slices.Clone(vb.vertices)}
}

func (vb *VertexBuffer) Move(offset math.Vec3) {
	for i := range vb.vertices {
		vb.vertices[i].Move(offset)
	}
}

func (vb *VertexBuffer) Rotate(rotation math.Quaternion) {
	for i := range vb.vertices {
		vb.vertices[i].Rotate(rotation)
	}
}

// RotateAroundAxis rotates the buffer by angle degrees around axis. With
// aroundCenter the rotation pivots on CentroidFromExtrema instead of the
// origin.
func (vb *VertexBuffer) RotateAroundAxis(angle float32, axis math.Vec3, aroundCenter bool) {
	if axis.LengthSquared() == 0 {
		core.LogError("RotateAroundAxis: zero-length axis, nothing was done")
		return
	}
	m := rotationAroundAxis(angle, axis)
	if aroundCenter {
		center := vb.CentroidFromExtrema()
		m = math.NewMat4Translation(center.Negate()).Mul(m).Mul(math.NewMat4Translation(center))
	}
	vb.Transform(m)
}

func rotationAroundAxis(angle float32, axis math.Vec3) math.Mat4 {
	q := math.NewQuatFromAxisAngle(axis.Normalized(), math.DegToRad(angle), true)
	return q.ToMat4()
}

// Transform applies m to every vertex: the full matrix to positions, the
// 3x3 part to normals and tangents.
func (vb *VertexBuffer) Transform(m math.Mat4) {
	for i := range vb.vertices {
		vb.vertices[i].Transform(m)
	}
}

func (vb *VertexBuffer) Scale(factor float32) {
	for i := range vb.vertices {
		vb.vertices[i].Scale(factor)
	}
}

func (vb *VertexBuffer) ScaleAxes(factor math.Vec3) {
	for i := range vb.vertices {
		vb.vertices[i].ScaleAxes(factor)
	}
}

func (vb *VertexBuffer) FlipNormals() {
	for i := range vb.vertices {
		vb.vertices[i].FlipNormals()
	}
}

func (vb *VertexBuffer) FlipUV(channel int, axis UVAxis) {
	if channel < 0 || channel >= UVChannelCount {
		return
	}
	for i := range vb.vertices {
		vb.vertices[i].FlipUV(channel, axis)
	}
}

// MinPosition scans for the smallest coordinates, starting from
// +extremaSentinel on every axis.
func (vb *VertexBuffer) MinPosition() math.Vec3 {
	min := math.NewVec3Scalar(extremaSentinel)
	for i := range vb.vertices {
		min = min.Min(vb.vertices[i].Position)
	}
	return min
}

// MaxPosition scans for the largest coordinates, starting from
// -extremaSentinel on every axis.
func (vb *VertexBuffer) MaxPosition() math.Vec3 {
	max := math.NewVec3Scalar(-extremaSentinel)
	for i := range vb.vertices {
		max = max.Max(vb.vertices[i].Position)
	}
	return max
}

// CentroidFromExtrema returns the center of the bounding box, which is not
// the vertex-weighted centroid.
func (vb *VertexBuffer) CentroidFromExtrema() math.Vec3 {
	return vb.MinPosition().Add(vb.MaxPosition()).MulScalar(0.5)
}

// apply runs fn once for every distinct valid index of indices. Invalid
// indices are logged and skipped.
func (vb *VertexBuffer) apply(indices []int, fn func(v *Vertex)) {
	unique := slices.Clone(indices)
	slices.Sort(unique)
	unique = slices.Compact(unique)
	for _, index := range unique {
		v := vb.At(index)
		if v == nil {
			core.LogError("vertex index %d out of range (count=%d), skipped", index, len(vb.vertices))
			continue
		}
		fn(v)
	}
}
