package mesh

import (
	"fmt"

	"github.com/MagisterBYTE/Lotus.Basis-sub002/engine/core"
	"github.com/MagisterBYTE/Lotus.Basis-sub002/engine/math"
	"golang.org/x/image/math/f32"
)

// NewVertexBufferFromArrays builds vertices from flat arrays: xyz triples for
// positions and normals, uv pairs for each texture channel. normals may be
// nil. Every non-nil array must describe the same vertex count.
func NewVertexBufferFromArrays(positions, normals []float32, uvs ...[]float32) (*VertexBuffer, error) {
	if len(positions)%3 != 0 {
		err := fmt.Errorf("positions length %d is not a multiple of 3: %w", len(positions), core.ErrLengthMismatch)
		core.LogError("%s", err)
		return nil, err
	}
	count := len(positions) / 3
	if normals != nil && len(normals) != len(positions) {
		err := fmt.Errorf("normals length %d, positions length %d: %w", len(normals), len(positions), core.ErrLengthMismatch)
		core.LogError("%s", err)
		return nil, err
	}
	if len(uvs) > UVChannelCount {
		err := fmt.Errorf("%d uv channels, at most %d: %w", len(uvs), UVChannelCount, core.ErrInvalidArgument)
		core.LogError("%s", err)
		return nil, err
	}
	for ch, uv := range uvs {
		if uv != nil && len(uv) != count*2 {
			err := fmt.Errorf("uv channel %d length %d, want %d: %w", ch, len(uv), count*2, core.ErrLengthMismatch)
			core.LogError("%s", err)
			return nil, err
		}
	}

	vb := NewVertexBuffer(count)
	for i := 0; i < count; i++ {
		v := NewVertex(math.NewVec3(positions[i*3], positions[i*3+1], positions[i*3+2]))
		if normals != nil {
			v.Normal = math.NewVec3(normals[i*3], normals[i*3+1], normals[i*3+2])
		}
		for ch, uv := range uvs {
			if uv != nil {
				v.SetUV(ch, math.NewVec2(uv[i*2], uv[i*2+1]))
			}
		}
		vb.Add(v)
	}
	return vb, nil
}

// AddSubmesh appends the triangles of a flat index array. Nothing is added
// when the array is not made of triples or an index is out of range.
func (m *Mesh) AddSubmesh(indices []uint32) error {
	if len(indices)%3 != 0 {
		err := fmt.Errorf("submesh of %q: %d indices is not a multiple of 3: %w", m.Name, len(indices), core.ErrLengthMismatch)
		core.LogError("%s", err)
		return err
	}
	count := uint32(m.vertices.Len())
	for _, index := range indices {
		if index >= count {
			err := fmt.Errorf("submesh of %q: index %d with %d vertices: %w", m.Name, index, count, core.ErrIndexOutOfRange)
			core.LogError("%s", err)
			return err
		}
	}
	for i := 0; i < len(indices); i += 3 {
		m.triangles.AddTriangle(int(indices[i]), int(indices[i+1]), int(indices[i+2]))
	}
	return nil
}

// NewFromArrays builds a mesh from flat vertex arrays and one flat index
// array per submesh, then computes its bounding box.
func NewFromArrays(name string, positions, normals []float32, uvs [][]float32, submeshes ...[]uint32) (*Mesh, error) {
	vb, err := NewVertexBufferFromArrays(positions, normals, uvs...)
	if err != nil {
		return nil, err
	}
	m := New(name)
	m.vertices.AddRange(vb.Vertices())
	for _, uv := range uvs {
		if uv != nil {
			m.HasUVMap = true
		}
	}
	for _, indices := range submeshes {
		if err := m.AddSubmesh(indices); err != nil {
			return nil, err
		}
	}
	m.ComputeLocalBoundingBox()
	return m, nil
}

// Positions returns the positions as flat xyz triples.
func (m *Mesh) Positions() []float32 {
	out := make([]float32, 0, m.vertices.Len()*3)
	for _, v := range m.vertices.Vertices() {
		out = append(out, v.Position.X, v.Position.Y, v.Position.Z)
	}
	return out
}

func (m *Mesh) Normals() []float32 {
	out := make([]float32, 0, m.vertices.Len()*3)
	for _, v := range m.vertices.Vertices() {
		out = append(out, v.Normal.X, v.Normal.Y, v.Normal.Z)
	}
	return out
}

// UVs returns one texture channel as flat uv pairs, or nil for an unknown
// channel.
func (m *Mesh) UVs(channel int) []float32 {
	if channel < 0 || channel >= UVChannelCount {
		return nil
	}
	out := make([]float32, 0, m.vertices.Len()*2)
	for _, v := range m.vertices.Vertices() {
		uv, _ := v.UV(channel)
		out = append(out, uv.X, uv.Y)
	}
	return out
}

// Indices returns the triangles as flat index triples. It fails with
// core.ErrIndexOutOfRange when a triangle indexes outside the vertices.
func (m *Mesh) Indices() ([]uint32, error) {
	if err := m.checkTriangles(); err != nil {
		return nil, err
	}
	out := make([]uint32, 0, m.triangles.Len()*3)
	for _, t := range m.triangles.Triangles() {
		out = append(out, uint32(t.V0), uint32(t.V1), uint32(t.V2))
	}
	return out, nil
}

// ExportVertex is the renderer-facing copy of a Vertex.
type ExportVertex struct {
	Position f32.Vec3
	Normal   f32.Vec3
	Tangent  f32.Vec3
	UV       [UVChannelCount]f32.Vec2
}

// ExportData is everything a renderer-side adapter needs to rebuild a mesh.
type ExportData struct {
	Name       string
	Vertices   []ExportVertex
	Triangles  [][3]uint32
	OuterEdges [][2]uint32
	Min        f32.Vec3
	Max        f32.Vec3
	Location   f32.Vec3
}

func toF32(v math.Vec3) f32.Vec3 {
	return f32.Vec3{v.X, v.Y, v.Z}
}

// Export copies the mesh into ExportData. Bounds and outer edges reflect the
// last ComputeLocalBoundingBox and ComputeEdges calls; the mesh is not
// modified. A mesh that fails Validate is not exported.
func (m *Mesh) Export() (ExportData, error) {
	if err := m.Validate(); err != nil {
		return ExportData{}, err
	}
	data := ExportData{
		Name:      m.Name,
		Vertices:  make([]ExportVertex, 0, m.vertices.Len()),
		Triangles: make([][3]uint32, 0, m.triangles.Len()),
		Min:       toF32(m.MinPosition),
		Max:       toF32(m.MaxPosition),
		Location:  toF32(m.Location),
	}
	for _, v := range m.vertices.Vertices() {
		data.Vertices = append(data.Vertices, ExportVertex{
			Position: toF32(v.Position),
			Normal:   toF32(v.Normal),
			Tangent:  toF32(v.Tangent),
			UV: [UVChannelCount]f32.Vec2{
				{v.UV0.X, v.UV0.Y},
				{v.UV1.X, v.UV1.Y},
				{v.UV2.X, v.UV2.Y},
			},
		})
	}
	for _, t := range m.triangles.Triangles() {
		data.Triangles = append(data.Triangles, [3]uint32{uint32(t.V0), uint32(t.V1), uint32(t.V2)})
	}
	for _, e := range m.edges.OuterEdges() {
		data.OuterEdges = append(data.OuterEdges, [2]uint32{uint32(e.V10), uint32(e.V11)})
	}
	return data, nil
}
