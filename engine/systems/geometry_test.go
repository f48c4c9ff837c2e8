package systems

import (
	"testing"

	"github.com/MagisterBYTE/Lotus.Basis-sub002/engine/math"
	"github.com/MagisterBYTE/Lotus.Basis-sub002/engine/mesh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTolerance float32 = 1e-4

func edgeKinds(m *mesh.Mesh) map[mesh.EdgeKind]int {
	counts := map[mesh.EdgeKind]int{}
	for _, e := range m.Edges().Edges() {
		counts[e.Kind()]++
	}
	return counts
}

// assertOutwardFaces checks that every face normal points away from the
// origin, which holds for the convex primitives centered on it.
func assertOutwardFaces(t *testing.T, m *mesh.Mesh) {
	t.Helper()
	for i, tri := range m.Triangles().Triangles() {
		n, err := tri.Normal(m.Vertices())
		require.NoError(t, err, "triangle %d", i)
		c, err := tri.Center(m.Vertices())
		require.NoError(t, err)
		assert.Greater(t, n.Dot(c), float32(0), "triangle %d %v faces inwards", i, tri)
	}
}

func TestGeneratePlane(t *testing.T) {
	m, err := GeneratePlane(2, 1, 2, 1, 1, 1, "plane")
	require.NoError(t, err)

	assert.Equal(t, "plane", m.Name)
	assert.Equal(t, 6, m.VertexCount())
	assert.Equal(t, 4, m.TriangleCount())
	assert.True(t, m.HasUVMap)
	assert.Equal(t, math.NewVec3(-1, -0.5, 0), m.MinPosition)
	assert.Equal(t, math.NewVec3(1, 0.5, 0), m.MaxPosition)
	require.NoError(t, m.Validate())

	for _, tri := range m.Triangles().Triangles() {
		n, err := tri.Normal(m.Vertices())
		require.NoError(t, err)
		assert.True(t, n.Compare(math.NewVec3(0, 0, 1), testTolerance), "normal %v", n)
	}

	m.ComputeEdges()
	assert.Len(t, m.Edges().OuterEdges(), 6)
	assert.Equal(t, 0, edgeKinds(m)[mesh.EdgeCommon])
}

func TestGeneratePlaneDefaultsInvalidParameters(t *testing.T) {
	m, err := GeneratePlane(0, -3, 0, 0, 0, 0, "")
	require.NoError(t, err)

	assert.Equal(t, DefaultMeshName, m.Name)
	assert.Equal(t, 4, m.VertexCount())
	assert.Equal(t, 2, m.TriangleCount())
	assert.Equal(t, math.NewVec3(0.5, 0.5, 0), m.MaxPosition)
	uv, _ := m.Vertices().At(3).UV(0)
	assert.Equal(t, math.NewVec2(1, 1), uv)
}

func TestGenerateCube(t *testing.T) {
	m, err := GenerateCube(2, 4, 6, 1, 1, "box")
	require.NoError(t, err)

	assert.Equal(t, 24, m.VertexCount())
	assert.Equal(t, 12, m.TriangleCount())
	assert.Equal(t, math.NewVec3(-1, -2, -3), m.MinPosition)
	assert.Equal(t, math.NewVec3(1, 2, 3), m.MaxPosition)
	assertOutwardFaces(t, m)

	m.ComputeEdges()
	counts := edgeKinds(m)
	assert.Empty(t, m.Edges().OuterEdges(), "the box is closed")
	assert.Equal(t, 12, counts[mesh.EdgeCommon], "box edges join different vertices")
	assert.Equal(t, 6, counts[mesh.EdgeSimple], "one diagonal per side")

	for _, v := range m.Vertices().Vertices() {
		assert.InDelta(t, 1, v.Tangent.Length(), 1e-4)
		assert.InDelta(t, 0, v.Tangent.Dot(v.Normal), 1e-4)
	}
}

func TestGenerateDisc(t *testing.T) {
	m, err := GenerateDisc(2, 8, "disc")
	require.NoError(t, err)

	assert.Equal(t, 9, m.VertexCount())
	assert.Equal(t, 8, m.TriangleCount())
	for _, tri := range m.Triangles().Triangles() {
		assert.Equal(t, 0, tri.V0)
		n, err := tri.Normal(m.Vertices())
		require.NoError(t, err)
		assert.True(t, n.Compare(math.NewVec3(0, 0, 1), testTolerance), "normal %v", n)
	}
	assert.InDelta(t, 2, m.MaxPosition.X, 1e-5)

	m.ComputeEdges()
	assert.Len(t, m.Edges().OuterEdges(), 8)

	fallback, err := GenerateDisc(1, 2, "fallback")
	require.NoError(t, err)
	assert.Equal(t, int(DefaultSegments), fallback.TriangleCount())
}

func TestGenerateCylinder(t *testing.T) {
	const segments = 12
	m, err := GenerateCylinder(1, 2, segments, "cylinder")
	require.NoError(t, err)

	assert.Equal(t, 4*segments+2, m.VertexCount())
	assert.Equal(t, 4*segments, m.TriangleCount())
	assert.True(t, m.MinPosition.Compare(math.NewVec3(-1, -1, -1), testTolerance), "min %v", m.MinPosition)
	assert.True(t, m.MaxPosition.Compare(math.NewVec3(1, 1, 1), testTolerance), "max %v", m.MaxPosition)
	assertOutwardFaces(t, m)
	require.NoError(t, m.Validate())

	m.ComputeEdges()
	counts := edgeKinds(m)
	assert.Empty(t, m.Edges().OuterEdges(), "side and caps close the cylinder")
	assert.Equal(t, 2*segments, counts[mesh.EdgeCommon], "rims join side and cap vertices")
}
