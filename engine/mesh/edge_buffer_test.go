package mesh

import (
	"testing"

	"github.com/MagisterBYTE/Lotus.Basis-sub002/engine/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// quadMesh is one unit quad made of two triangles sharing vertices 0 and 3.
func quadMesh() *Mesh {
	m := New("quad")
	m.Vertices().AddRange(unitQuad().Vertices())
	m.Triangles().AddTriangleQuad(0, 1, 2, 3)
	return m
}

// splitQuadMesh is the same quad without shared vertices: the diagonal
// appears twice at the same positions under different indices.
func splitQuadMesh() *Mesh {
	m := New("split")
	vb := m.Vertices()
	vb.AddPosition(math.NewVec3(0, 0, 0))
	vb.AddPosition(math.NewVec3(1, 0, 0))
	vb.AddPosition(math.NewVec3(0, 1, 0))
	vb.AddPosition(math.NewVec3(1, 0, 0))
	vb.AddPosition(math.NewVec3(0, 1, 0))
	vb.AddPosition(math.NewVec3(1, 1, 0))
	m.Triangles().AddTriangle(0, 1, 2)
	m.Triangles().AddTriangle(3, 5, 4)
	return m
}

func tetrahedron() *Mesh {
	m := New("tetrahedron")
	vb := m.Vertices()
	vb.AddPosition(math.NewVec3(0, 0, 0))
	vb.AddPosition(math.NewVec3(1, 0, 0))
	vb.AddPosition(math.NewVec3(0, 1, 0))
	vb.AddPosition(math.NewVec3(0, 0, 1))
	tb := m.Triangles()
	tb.AddTriangle(0, 2, 1)
	tb.AddTriangle(0, 1, 3)
	tb.AddTriangle(1, 2, 3)
	tb.AddTriangle(0, 3, 2)
	return m
}

func countKinds(edges []Edge) map[EdgeKind]int {
	counts := map[EdgeKind]int{}
	for _, e := range edges {
		counts[e.Kind()]++
	}
	return counts
}

func TestEdgeKind(t *testing.T) {
	tests := []struct {
		name string
		edge Edge
		want EdgeKind
	}{
		{"one triangle", NewEdge(1, 2, 0), EdgeOuter},
		{"same indices", Edge{V10: 1, V11: 2, V20: 2, V21: 1, Triangle1: 0, Triangle2: 1}, EdgeSimple},
		{"same indices same order", Edge{V10: 1, V11: 2, V20: 1, V21: 2, Triangle1: 0, Triangle2: 1}, EdgeSimple},
		{"different indices", Edge{V10: 1, V11: 2, V20: 4, V21: 3, Triangle1: 0, Triangle2: 1}, EdgeCommon},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.edge.Kind())
		})
	}
}

func TestEdgeEqualAndCompare(t *testing.T) {
	e := NewEdge(1, 2, 0)
	assert.True(t, e.Equal(NewEdge(2, 1, 5)))
	assert.False(t, e.Equal(NewEdge(1, 3, 0)))
	assert.Equal(t, 0, e.Compare(NewEdge(1, 7, 0)))
	assert.Equal(t, -1, e.Compare(NewEdge(3, 0, 0)))
}

func TestComputeEdgesQuad(t *testing.T) {
	m := quadMesh()
	m.ComputeEdges()

	require.Equal(t, 5, m.Edges().Len())
	counts := countKinds(m.Edges().Edges())
	assert.Equal(t, 4, counts[EdgeOuter])
	assert.Equal(t, 1, counts[EdgeSimple])
	assert.Len(t, m.Edges().OuterEdges(), 4)

	diagonal := m.Edges().FindEdge(3, 0)
	require.GreaterOrEqual(t, diagonal, 0)
	e := m.Edges().At(diagonal)
	assert.True(t, e.IsSimple())
	assert.Equal(t, 0, e.Triangle1)
	assert.Equal(t, 1, e.Triangle2)
}

func TestComputeEdgesClosedMeshHasNoOuterEdges(t *testing.T) {
	m := tetrahedron()
	m.ComputeEdges()

	assert.Equal(t, 6, m.Edges().Len())
	assert.Empty(t, m.Edges().OuterEdges())
	assert.Equal(t, 6, countKinds(m.Edges().Edges())[EdgeSimple])
}

func TestComputeEdgesCommon(t *testing.T) {
	m := splitQuadMesh()
	m.ComputeEdges()

	require.Equal(t, 5, m.Edges().Len())
	counts := countKinds(m.Edges().Edges())
	assert.Equal(t, 4, counts[EdgeOuter])
	assert.Equal(t, 1, counts[EdgeCommon])

	// Either copy of the diagonal finds the same edge.
	i := m.Edges().FindEdge(1, 2)
	require.GreaterOrEqual(t, i, 0)
	assert.Equal(t, i, m.Edges().FindEdge(3, 4))
	assert.Equal(t, i, m.Edges().FindEdge(2, 3))
	assert.True(t, m.Edges().At(i).IsCommon())
}

func TestFindEdge(t *testing.T) {
	m := quadMesh()
	m.ComputeEdges()

	assert.GreaterOrEqual(t, m.Edges().FindEdge(0, 2), 0)
	assert.GreaterOrEqual(t, m.Edges().FindEdge(2, 0), 0)
	assert.Equal(t, -1, m.Edges().FindEdge(1, 2), "the other diagonal is not an edge")
	assert.Equal(t, -1, m.Edges().FindEdge(0, 42))
}

func TestEdgeMove(t *testing.T) {
	offset := math.NewVec3(0, 0, 1)

	common := splitQuadMesh()
	common.ComputeEdges()
	e := common.Edges().At(common.Edges().FindEdge(1, 2))
	e.Move(common.Vertices(), offset)
	for _, i := range []int{1, 2, 3, 4} {
		assert.Equal(t, float32(1), common.Vertices().At(i).Position.Z, "vertex %d", i)
	}
	assert.Equal(t, float32(0), common.Vertices().At(0).Position.Z)
	assert.Equal(t, float32(0), common.Vertices().At(5).Position.Z)

	simple := quadMesh()
	simple.ComputeEdges()
	d := simple.Edges().At(simple.Edges().FindEdge(0, 3))
	d.Move(simple.Vertices(), offset)
	assert.Equal(t, float32(1), simple.Vertices().At(0).Position.Z)
	assert.Equal(t, float32(1), simple.Vertices().At(3).Position.Z)
	assert.Equal(t, float32(0), simple.Vertices().At(1).Position.Z)
}

func TestEdgeBufferMoveTouchesEachVertexOnce(t *testing.T) {
	m := quadMesh()
	m.ComputeEdges()
	m.Edges().Move(math.NewVec3(0, 0, 1))

	for i := 0; i < m.VertexCount(); i++ {
		assert.Equal(t, float32(1), m.Vertices().At(i).Position.Z, "vertex %d", i)
	}

	m.Edges().FlipNormals()
	m.Edges().FlipNormals()
	assert.Equal(t, math.NewVec3(0, 0, 1), m.Vertices().At(0).Normal)
}
