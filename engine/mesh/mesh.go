package mesh

import (
	"fmt"

	"github.com/MagisterBYTE/Lotus.Basis-sub002/engine/core"
	"github.com/MagisterBYTE/Lotus.Basis-sub002/engine/math"
	"github.com/google/uuid"
	"golang.org/x/exp/slices"
)

// boundsSentinel is the starting bound of ComputeLocalBoundingBox.
const boundsSentinel float32 = 1e10

// Mesh owns one VertexBuffer and the triangle and edge buffers built on it.
// The buffers are only reachable through the mesh, so they always refer to
// the mesh's own vertices.
type Mesh struct {
	ID    uuid.UUID
	Name  string
	Index int
	// Order is the render/sort order.
	Order    int
	HasUVMap bool

	// Bounds are valid only after ComputeLocalBoundingBox and are not
	// refreshed by later edits.
	MinPosition math.Vec3
	MaxPosition math.Vec3
	Location    math.Vec3

	vertices  *VertexBuffer
	triangles *TriangleBuffer
	edges     *EdgeBuffer
}

// New returns an empty mesh.
func New(name string) *Mesh {
	vb := NewVertexBuffer(0)
	return &Mesh{
		ID:        uuid.New(),
		Name:      name,
		vertices:  vb,
		triangles: NewTriangleBuffer(vb),
		edges:     NewEdgeBuffer(vb),
	}
}

func (m *Mesh) Vertices() *VertexBuffer {
	return m.vertices
}

func (m *Mesh) Triangles() *TriangleBuffer {
	return m.triangles
}

// Edges returns the edge buffer. It is empty until ComputeEdges runs.
func (m *Mesh) Edges() *EdgeBuffer {
	return m.edges
}

func (m *Mesh) VertexCount() int {
	return m.vertices.Len()
}

func (m *Mesh) TriangleCount() int {
	return m.triangles.Len()
}

// ComputeLocalBoundingBox scans every position into MinPosition and
// MaxPosition and sets Location to their midpoint.
func (m *Mesh) ComputeLocalBoundingBox() {
	min := math.NewVec3Scalar(boundsSentinel)
	max := math.NewVec3Scalar(-boundsSentinel)
	for _, v := range m.vertices.Vertices() {
		min = min.Min(v.Position)
		max = max.Max(v.Position)
	}
	m.MinPosition = min
	m.MaxPosition = max
	m.Location = min.Add(max).MulScalar(0.5)
}

// Extents returns the bounds last computed by ComputeLocalBoundingBox.
func (m *Mesh) Extents() math.Extents3D {
	return math.Extents3D{Min: m.MinPosition, Max: m.MaxPosition}
}

// SmoothNormal averages the corner normals of every triangle touching
// vertexIndex and normalizes the result.
func (m *Mesh) SmoothNormal(vertexIndex int) (math.Vec3, error) {
	if _, ok := m.vertices.Position(vertexIndex); !ok {
		return math.Vec3{}, fmt.Errorf("smooth normal of vertex %d (count=%d): %w", vertexIndex, m.vertices.Len(), core.ErrIndexOutOfRange)
	}
	touching := m.triangles.TrianglesContainingVertex(vertexIndex)
	if len(touching) == 0 {
		return math.Vec3{}, fmt.Errorf("vertex %d belongs to no triangle: %w", vertexIndex, core.ErrDegenerateGeometry)
	}
	sum := math.NewVec3Zero()
	for _, t := range touching {
		n, err := t.NormalAt(m.vertices, vertexIndex)
		if err != nil {
			return math.Vec3{}, err
		}
		sum = sum.Add(n)
	}
	return sum.DivScalar(float32(len(touching))).Normalized(), nil
}

// SmoothNormals overwrites every normal with its smoothed value. Vertices
// that belong to no triangle keep their normal.
func (m *Mesh) SmoothNormals() {
	normals := make([]math.Vec3, m.vertices.Len())
	valid := make([]bool, len(normals))
	for i := range normals {
		n, err := m.SmoothNormal(i)
		if err != nil {
			core.LogWarn("SmoothNormals(%s): %s", m.Name, err)
			continue
		}
		normals[i], valid[i] = n, true
	}
	vertices := m.vertices.Vertices()
	for i := range vertices {
		if valid[i] {
			vertices[i].Normal = normals[i]
		}
	}
}

// Append adds other's triangles, offset by the current vertex count, then
// other's vertices. other may be m itself.
func (m *Mesh) Append(other *Mesh) {
	offset := m.vertices.Len()
	triangles := slices.Clone(other.triangles.Triangles())
	vertices := slices.Clone(other.vertices.Vertices())
	for _, t := range triangles {
		m.triangles.Add(t.Offset(offset))
	}
	m.vertices.AddRange(vertices)
	m.HasUVMap = m.HasUVMap || other.HasUVMap
}

// Duplicate deep-copies the vertices and triangles under a new ID. Edges are
// derived data and are not copied.
func (m *Mesh) Duplicate() *Mesh {
	vb := m.vertices.Duplicate()
	tb := NewTriangleBuffer(vb)
	tb.triangles = slices.Clone(m.triangles.triangles)
	return &Mesh{
		ID:          uuid.New(),
		Name:        m.Name,
		Index:       m.Index,
		Order:       m.Order,
		HasUVMap:    m.HasUVMap,
		MinPosition: m.MinPosition,
		MaxPosition: m.MaxPosition,
		Location:    m.Location,
		vertices:    vb,
		triangles:   tb,
		edges:       NewEdgeBuffer(vb),
	}
}

// Centering moves the mesh so that its bounding box center is the origin.
func (m *Mesh) Centering() {
	m.vertices.Move(m.vertices.CentroidFromExtrema().Negate())
}

// FlipFaces reverses every triangle and negates every normal.
func (m *Mesh) FlipFaces() {
	m.triangles.Flip()
	m.vertices.FlipNormals()
}

// ComputeEdges rebuilds the edge buffer from the triangles.
func (m *Mesh) ComputeEdges() {
	m.edges.ComputeFromTriangles(m.triangles)
}

// checkTriangles reports the first triangle indexing outside the vertices.
func (m *Mesh) checkTriangles() error {
	count := m.vertices.Len()
	for i, t := range m.triangles.Triangles() {
		for _, index := range t.Indices() {
			if index < 0 || index >= count {
				return fmt.Errorf("mesh %q: triangle %d %v with %d vertices: %w", m.Name, i, t.Indices(), count, core.ErrIndexOutOfRange)
			}
		}
	}
	return nil
}

// ComputeFaceNormals gives the three vertices of each triangle its unit face
// normal. A vertex shared by several triangles keeps the last one written.
// Nothing is written when a triangle index is out of range.
func (m *Mesh) ComputeFaceNormals() error {
	if err := m.checkTriangles(); err != nil {
		return err
	}
	vertices := m.vertices.Vertices()
	for _, t := range m.triangles.Triangles() {
		n, err := t.NormalAt(m.vertices, t.V0)
		if err != nil {
			return err
		}
		n = n.Normalized()
		vertices[t.V0].Normal = n
		vertices[t.V1].Normal = n
		vertices[t.V2].Normal = n
	}
	return nil
}

// ComputeTangents derives per-triangle tangents from the positions and the
// first UV channel: the tangent follows increasing u whatever the winding of
// the UV mapping. Triangles with a degenerate UV mapping are skipped. Nothing
// is written when a triangle index is out of range.
func (m *Mesh) ComputeTangents() error {
	if err := m.checkTriangles(); err != nil {
		return err
	}
	vertices := m.vertices.Vertices()
	for _, t := range m.triangles.Triangles() {
		p0, p1, p2, err := t.positions(m.vertices)
		if err != nil {
			return err
		}
		uv0, uv1, uv2 := vertices[t.V0].UV0, vertices[t.V1].UV0, vertices[t.V2].UV0

		edge1 := p1.Sub(p0)
		edge2 := p2.Sub(p0)
		du1, dv1 := uv1.X-uv0.X, uv1.Y-uv0.Y
		du2, dv2 := uv2.X-uv0.X, uv2.Y-uv0.Y

		det := du1*dv2 - du2*dv1
		if det == 0 {
			core.LogDebug("ComputeTangents(%s): triangle %v has a degenerate UV mapping, skipped", m.Name, t.Indices())
			continue
		}
		tangent := edge1.MulScalar(dv2).Sub(edge2.MulScalar(dv1)).MulScalar(1 / det).Normalized()

		vertices[t.V0].Tangent = tangent
		vertices[t.V1].Tangent = tangent
		vertices[t.V2].Tangent = tangent
	}
	return nil
}

// MarkUniqueVertices sets IsUnique on every vertex whose position no other
// vertex shares, within Epsilon. It returns the number of unique vertices.
func (m *Mesh) MarkUniqueVertices() int {
	vertices := m.vertices.Vertices()
	unique := 0
	for i := range vertices {
		vertices[i].IsUnique = true
		for j := range vertices {
			if i != j && vertices[i].Equal(vertices[j]) {
				vertices[i].IsUnique = false
				break
			}
		}
		if vertices[i].IsUnique {
			unique++
		}
	}
	return unique
}

// Validate checks that the buffers share the mesh's vertices, that every
// triangle and edge index is in range, and that every vertex knows its index.
func (m *Mesh) Validate() error {
	if m.triangles.VertexBuffer() != m.vertices || m.edges.VertexBuffer() != m.vertices {
		return fmt.Errorf("mesh %q: %w", m.Name, core.ErrBufferMismatch)
	}
	count := m.vertices.Len()
	for i, v := range m.vertices.Vertices() {
		if v.Index != i {
			return fmt.Errorf("mesh %q: vertex %d records index %d: %w", m.Name, i, v.Index, core.ErrInvalidArgument)
		}
	}
	if err := m.checkTriangles(); err != nil {
		return err
	}
	for i, e := range m.edges.Edges() {
		for _, index := range e.vertexIndices() {
			if index < 0 || index >= count {
				return fmt.Errorf("mesh %q: edge %d %v with %d vertices: %w", m.Name, i, e, count, core.ErrIndexOutOfRange)
			}
		}
	}
	return nil
}

func (m *Mesh) Move(offset math.Vec3) {
	m.vertices.Move(offset)
}

func (m *Mesh) Rotate(rotation math.Quaternion) {
	m.vertices.Rotate(rotation)
}

// RotateAroundAxis rotates the mesh by angle degrees, see
// VertexBuffer.RotateAroundAxis.
func (m *Mesh) RotateAroundAxis(angle float32, axis math.Vec3, aroundCenter bool) {
	m.vertices.RotateAroundAxis(angle, axis, aroundCenter)
}

func (m *Mesh) Scale(factor float32) {
	m.vertices.Scale(factor)
}

func (m *Mesh) ScaleAxes(factor math.Vec3) {
	m.vertices.ScaleAxes(factor)
}

func (m *Mesh) FlipNormals() {
	m.vertices.FlipNormals()
}

func (m *Mesh) FlipUV(channel int, axis UVAxis) {
	m.vertices.FlipUV(channel, axis)
}

func (m *Mesh) String() string {
	return fmt.Sprintf("Mesh{%s %q vertices=%d triangles=%d edges=%d}", m.ID, m.Name, m.vertices.Len(), m.triangles.Len(), m.edges.Len())
}
