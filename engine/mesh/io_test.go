package mesh

import (
	"errors"
	"testing"

	"github.com/MagisterBYTE/Lotus.Basis-sub002/engine/core"
	"github.com/MagisterBYTE/Lotus.Basis-sub002/engine/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/math/f32"
)

var (
	quadPositions = []float32{0, 0, 0, 1, 0, 0, 0, 1, 0, 1, 1, 0}
	quadNormals   = []float32{0, 0, 1, 0, 0, 1, 0, 0, 1, 0, 0, 1}
	quadUVs       = []float32{0, 0, 1, 0, 0, 1, 1, 1}
	quadIndices   = []uint32{0, 2, 3, 0, 3, 1}
)

func TestNewVertexBufferFromArrays(t *testing.T) {
	vb, err := NewVertexBufferFromArrays(quadPositions, quadNormals, quadUVs, nil, quadUVs)
	require.NoError(t, err)
	require.Equal(t, 4, vb.Len())

	v := vb.At(3)
	assert.Equal(t, 3, v.Index)
	assert.Equal(t, math.NewVec3(1, 1, 0), v.Position)
	assert.Equal(t, math.NewVec3(0, 0, 1), v.Normal)
	assert.Equal(t, math.NewVec2(1, 1), v.UV0)
	assert.Equal(t, math.NewVec2Zero(), v.UV1)
	assert.Equal(t, math.NewVec2(1, 1), v.UV2)

	noNormals, err := NewVertexBufferFromArrays(quadPositions, nil)
	require.NoError(t, err)
	assert.Equal(t, math.NewVec3Zero(), noNormals.At(0).Normal)
}

func TestNewVertexBufferFromArraysErrors(t *testing.T) {
	tests := []struct {
		name      string
		positions []float32
		normals   []float32
		uvs       [][]float32
		want      error
	}{
		{"positions not triples", []float32{0, 0}, nil, nil, core.ErrLengthMismatch},
		{"short normals", quadPositions, quadNormals[:9], nil, core.ErrLengthMismatch},
		{"short uvs", quadPositions, quadNormals, [][]float32{quadUVs[:6]}, core.ErrLengthMismatch},
		{"too many channels", quadPositions, nil, [][]float32{quadUVs, quadUVs, quadUVs, quadUVs}, core.ErrInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vb, err := NewVertexBufferFromArrays(tt.positions, tt.normals, tt.uvs...)
			assert.Nil(t, vb)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestNewFromArrays(t *testing.T) {
	m, err := NewFromArrays("quad", quadPositions, quadNormals, [][]float32{quadUVs}, quadIndices[:3], quadIndices[3:])
	require.NoError(t, err)

	assert.Equal(t, 4, m.VertexCount())
	assert.Equal(t, 2, m.TriangleCount())
	assert.True(t, m.HasUVMap)
	assert.Equal(t, math.NewVec3(1, 1, 0), m.MaxPosition)
	assert.Equal(t, math.NewVec3(0.5, 0.5, 0), m.Location)
	assert.NoError(t, m.Validate())

	assert.Equal(t, quadPositions, m.Positions())
	assert.Equal(t, quadNormals, m.Normals())
	assert.Equal(t, quadUVs, m.UVs(0))
	assert.Nil(t, m.UVs(3))
	indices, err := m.Indices()
	require.NoError(t, err)
	assert.Equal(t, quadIndices, indices)

	_, err = NewFromArrays("bad", quadPositions, nil, nil, []uint32{0, 1, 4})
	assert.True(t, errors.Is(err, core.ErrIndexOutOfRange))
}

func TestAddSubmeshIsAllOrNothing(t *testing.T) {
	m := quadMesh()

	err := m.AddSubmesh([]uint32{0, 1, 2, 3})
	assert.True(t, errors.Is(err, core.ErrLengthMismatch))
	err = m.AddSubmesh([]uint32{0, 1, 2, 0, 1, 9})
	assert.True(t, errors.Is(err, core.ErrIndexOutOfRange))
	assert.Equal(t, 2, m.TriangleCount())

	require.NoError(t, m.AddSubmesh([]uint32{1, 2, 3}))
	assert.Equal(t, NewTriangle(1, 2, 3), *m.Triangles().At(2))
}

func TestExport(t *testing.T) {
	m, err := NewFromArrays("quad", quadPositions, quadNormals, [][]float32{quadUVs}, quadIndices)
	require.NoError(t, err)
	m.ComputeEdges()

	data, err := m.Export()
	require.NoError(t, err)

	assert.Equal(t, "quad", data.Name)
	require.Len(t, data.Vertices, 4)
	assert.Equal(t, f32.Vec3{1, 1, 0}, data.Vertices[3].Position)
	assert.Equal(t, f32.Vec3{0, 0, 1}, data.Vertices[3].Normal)
	assert.Equal(t, f32.Vec2{1, 1}, data.Vertices[3].UV[0])
	assert.Equal(t, [][3]uint32{{0, 2, 3}, {0, 3, 1}}, data.Triangles)
	assert.Len(t, data.OuterEdges, 4)
	assert.Equal(t, f32.Vec3{0, 0, 0}, data.Min)
	assert.Equal(t, f32.Vec3{1, 1, 0}, data.Max)
	assert.Equal(t, f32.Vec3{0.5, 0.5, 0}, data.Location)

	assert.Equal(t, 5, m.Edges().Len(), "export leaves the mesh alone")
}

func TestIndicesAndExportRejectBadIndices(t *testing.T) {
	tests := []struct {
		name  string
		index int
	}{
		{"past the end", 4},
		{"negative", -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := quadMesh()
			m.Triangles().AddTriangle(0, 1, tt.index)

			indices, err := m.Indices()
			assert.True(t, errors.Is(err, core.ErrIndexOutOfRange))
			assert.Nil(t, indices)

			data, err := m.Export()
			assert.True(t, errors.Is(err, core.ErrIndexOutOfRange))
			assert.Empty(t, data.Triangles)
		})
	}
}
