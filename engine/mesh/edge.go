package mesh

import (
	"fmt"

	"github.com/MagisterBYTE/Lotus.Basis-sub002/engine/math"
)

// EdgeKind classifies an edge by the triangles that share it.
type EdgeKind uint8

const (
	// EdgeOuter belongs to a single triangle: a boundary edge.
	EdgeOuter EdgeKind = iota
	// EdgeSimple is shared by two triangles through the same vertex indices.
	EdgeSimple
	// EdgeCommon is shared by two triangles through different vertex indices
	// that sit at the same positions.
	EdgeCommon
)

func (k EdgeKind) String() string {
	switch k {
	case EdgeOuter:
		return "outer"
	case EdgeSimple:
		return "simple"
	case EdgeCommon:
		return "common"
	}
	return fmt.Sprintf("EdgeKind(%d)", uint8(k))
}

// Edge connects two vertices and records up to two owning triangles. The
// second pair and Triangle2 are -1 while only one triangle owns the edge.
type Edge struct {
	V10, V11  int
	V20, V21  int
	Triangle1 int
	Triangle2 int
}

// NewEdge returns an outer edge owned by triangle.
func NewEdge(v0, v1, triangle int) Edge {
	return Edge{
		V10: v0, V11: v1,
		V20: -1, V21: -1,
		Triangle1: triangle,
		Triangle2: -1,
	}
}

// Attach records the second owning triangle and its endpoints.
func (e *Edge) Attach(v0, v1, triangle int) {
	e.V20, e.V21 = v0, v1
	e.Triangle2 = triangle
}

func (e Edge) Kind() EdgeKind {
	if e.Triangle2 == -1 {
		return EdgeOuter
	}
	if (e.V10 == e.V20 && e.V11 == e.V21) || (e.V10 == e.V21 && e.V11 == e.V20) {
		return EdgeSimple
	}
	return EdgeCommon
}

func (e Edge) IsOuter() bool  { return e.Kind() == EdgeOuter }
func (e Edge) IsSimple() bool { return e.Kind() == EdgeSimple }
func (e Edge) IsCommon() bool { return e.Kind() == EdgeCommon }

// Equal compares the first endpoint pair, in either order. The second pair
// is ignored.
func (e Edge) Equal(other Edge) bool {
	return (e.V10 == other.V10 && e.V11 == other.V11) ||
		(e.V10 == other.V11 && e.V11 == other.V10)
}

// Compare orders edges by V10 only, like Triangle.Compare.
func (e Edge) Compare(other Edge) int {
	switch {
	case e.V10 < other.V10:
		return -1
	case e.V10 > other.V10:
		return 1
	}
	return 0
}

// vertexIndices returns the vertices an edit of this edge must touch. A
// simple edge names its vertices twice and an outer edge has no second pair,
// so only a common edge contributes both pairs.
func (e Edge) vertexIndices() []int {
	if e.Kind() != EdgeCommon {
		return []int{e.V10, e.V11}
	}
	return []int{e.V10, e.V11, e.V20, e.V21}
}

// Move moves the edge's vertices in vb by offset.
func (e Edge) Move(vb *VertexBuffer, offset math.Vec3) {
	vb.apply(e.vertexIndices(), func(v *Vertex) { v.Move(offset) })
}

func (e Edge) String() string {
	return fmt.Sprintf("Edge{(%d, %d) (%d, %d) t=%d/%d %s}", e.V10, e.V11, e.V20, e.V21, e.Triangle1, e.Triangle2, e.Kind())
}
