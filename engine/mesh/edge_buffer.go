package mesh

import (
	"github.com/MagisterBYTE/Lotus.Basis-sub002/engine/core"
	"github.com/MagisterBYTE/Lotus.Basis-sub002/engine/math"
)

// EdgeBuffer owns edges and refers to the VertexBuffer used to resolve
// vertex positions.
type EdgeBuffer struct {
	edges    []Edge
	vertices *VertexBuffer
}

func NewEdgeBuffer(vertices *VertexBuffer) *EdgeBuffer {
	return &EdgeBuffer{vertices: vertices}
}

func (eb *EdgeBuffer) Len() int {
	return len(eb.edges)
}

// Edges returns the backing slice.
func (eb *EdgeBuffer) Edges() []Edge {
	return eb.edges
}

// VertexBuffer returns the referenced (not owned) vertices.
func (eb *EdgeBuffer) VertexBuffer() *VertexBuffer {
	return eb.vertices
}

// At returns a pointer to the edge at index, or nil when out of range.
func (eb *EdgeBuffer) At(index int) *Edge {
	if index < 0 || index >= len(eb.edges) {
		return nil
	}
	return &eb.edges[index]
}

func (eb *EdgeBuffer) Add(e Edge) int {
	eb.edges = append(eb.edges, e)
	return len(eb.edges) - 1
}

func (eb *EdgeBuffer) Clear() {
	eb.edges = eb.edges[:0]
}

// FindEdge returns the index of the edge whose endpoints sit at the positions
// of vertices iv1 and iv2, in either order and through either endpoint pair,
// or -1. Matching is by position so that coincident but distinct vertices of
// a non-welded mesh still find their edge.
func (eb *EdgeBuffer) FindEdge(iv1, iv2 int) int {
	return eb.findEdge(iv1, iv2, false)
}

func (eb *EdgeBuffer) findEdge(iv1, iv2 int, openOnly bool) int {
	p1, ok1 := eb.vertices.Position(iv1)
	p2, ok2 := eb.vertices.Position(iv2)
	if !ok1 || !ok2 {
		core.LogError("FindEdge(%d, %d): vertex index out of range (count=%d)", iv1, iv2, eb.vertices.Len())
		return -1
	}
	for i := range eb.edges {
		e := &eb.edges[i]
		if openOnly && e.Triangle2 != -1 {
			continue
		}
		if eb.pairMatches(e.V10, e.V11, p1, p2) {
			return i
		}
		if e.Triangle2 != -1 && eb.pairMatches(e.V20, e.V21, p1, p2) {
			return i
		}
	}
	return -1
}

func (eb *EdgeBuffer) pairMatches(a, b int, p1, p2 math.Vec3) bool {
	pa, okA := eb.vertices.Position(a)
	pb, okB := eb.vertices.Position(b)
	if !okA || !okB {
		return false
	}
	return (pa.Compare(p1, Epsilon) && pb.Compare(p2, Epsilon)) ||
		(pa.Compare(p2, Epsilon) && pb.Compare(p1, Epsilon))
}

// OuterEdges returns the edges owned by a single triangle, in buffer order.
// They form the open boundary of the mesh but are not sorted into loops.
func (eb *EdgeBuffer) OuterEdges() []Edge {
	var out []Edge
	for _, e := range eb.edges {
		if e.Triangle2 == -1 {
			out = append(out, e)
		}
	}
	return out
}

// ComputeFromTriangles rebuilds the buffer from tb. Each triangle side either
// completes an open edge at the same positions or starts a new outer edge.
// A side met by a third triangle starts a new edge of its own.
func (eb *EdgeBuffer) ComputeFromTriangles(tb *TriangleBuffer) {
	eb.Clear()
	for ti, t := range tb.Triangles() {
		for _, side := range t.Edges() {
			if i := eb.findEdge(side[0], side[1], true); i >= 0 && eb.edges[i].Triangle1 != ti {
				eb.edges[i].Attach(side[0], side[1], ti)
				continue
			}
			eb.Add(NewEdge(side[0], side[1], ti))
		}
	}
}

func (eb *EdgeBuffer) referencedVertices() []int {
	indices := make([]int, 0, len(eb.edges)*2)
	for _, e := range eb.edges {
		indices = append(indices, e.vertexIndices()...)
	}
	return indices
}

func (eb *EdgeBuffer) Move(offset math.Vec3) {
	eb.vertices.apply(eb.referencedVertices(), func(v *Vertex) { v.Move(offset) })
}

func (eb *EdgeBuffer) Rotate(rotation math.Quaternion) {
	eb.vertices.apply(eb.referencedVertices(), func(v *Vertex) { v.Rotate(rotation) })
}

func (eb *EdgeBuffer) Scale(factor float32) {
	eb.vertices.apply(eb.referencedVertices(), func(v *Vertex) { v.Scale(factor) })
}

func (eb *EdgeBuffer) ScaleAxes(factor math.Vec3) {
	eb.vertices.apply(eb.referencedVertices(), func(v *Vertex) { v.ScaleAxes(factor) })
}

func (eb *EdgeBuffer) FlipNormals() {
	eb.vertices.apply(eb.referencedVertices(), func(v *Vertex) { v.FlipNormals() })
}

func (eb *EdgeBuffer) FlipUV(channel int, axis UVAxis) {
	if channel < 0 || channel >= UVChannelCount {
		return
	}
	eb.vertices.apply(eb.referencedVertices(), func(v *Vertex) { v.FlipUV(channel, axis) })
}
