package mesh

import (
	"fmt"

	"github.com/MagisterBYTE/Lotus.Basis-sub002/engine/core"
	"github.com/MagisterBYTE/Lotus.Basis-sub002/engine/math"
	"golang.org/x/exp/slices"
)

// TriangleBuffer owns triangles and refers to the VertexBuffer they index.
// Geometric edits made through it change the referenced vertices, so a given
// edit must go through exactly one buffer sharing those vertices.
type TriangleBuffer struct {
	triangles []Triangle
	vertices  *VertexBuffer
}

func NewTriangleBuffer(vertices *VertexBuffer) *TriangleBuffer {
	return &TriangleBuffer{vertices: vertices}
}

func (tb *TriangleBuffer) Len() int {
	return len(tb.triangles)
}

// Triangles returns the backing slice.
func (tb *TriangleBuffer) Triangles() []Triangle {
	return tb.triangles
}

// VertexBuffer returns the referenced (not owned) vertices.
func (tb *TriangleBuffer) VertexBuffer() *VertexBuffer {
	return tb.vertices
}

// At returns a pointer to the triangle at index, or nil when out of range.
func (tb *TriangleBuffer) At(index int) *Triangle {
	if index < 0 || index >= len(tb.triangles) {
		return nil
	}
	return &tb.triangles[index]
}

// Add appends t and returns its index.
func (tb *TriangleBuffer) Add(t Triangle) int {
	tb.triangles = append(tb.triangles, t)
	return len(tb.triangles) - 1
}

func (tb *TriangleBuffer) AddTriangle(v0, v1, v2 int) int {
	return tb.Add(NewTriangle(v0, v1, v2))
}

// AddTriangleFromLast builds a triangle from the last three vertices of the
// referenced buffer.
func (tb *TriangleBuffer) AddTriangleFromLast() error {
	n := tb.vertices.Len()
	if n < 3 {
		err := fmt.Errorf("AddTriangleFromLast needs 3 vertices, have %d: %w", n, core.ErrInsufficientVertices)
		core.LogError("%s", err)
		return err
	}
	tb.AddTriangle(n-3, n-2, n-1)
	return nil
}

// AddTriangleQuad splits the quad a (bottom-left), b (bottom-right),
// c (top-left), d (top-right) into (a, c, d) and (a, d, b).
func (tb *TriangleBuffer) AddTriangleQuad(a, b, c, d int) {
	tb.AddTriangle(a, c, d)
	tb.AddTriangle(a, d, b)
}

// AddTriangleQuadFromLast splits the quad made of the last four vertices,
// taken in the order bottom-left, bottom-right, top-left, top-right.
func (tb *TriangleBuffer) AddTriangleQuadFromLast() error {
	n := tb.vertices.Len()
	if n < 4 {
		err := fmt.Errorf("AddTriangleQuadFromLast needs 4 vertices, have %d: %w", n, core.ErrInsufficientVertices)
		core.LogError("%s", err)
		return err
	}
	tb.AddTriangleQuad(n-4, n-3, n-2, n-1)
	return nil
}

// AddRegularGrid triangulates a (columns+1) x (rows+1) vertex grid stored
// row-major from startIndex, two triangles per cell. With closeColumns each
// row also gets a cell joining its last column to its first one, which
// closes the grid into a tube. Nothing is added on error.
func (tb *TriangleBuffer) AddRegularGrid(startIndex, columns, rows int, closeColumns bool) error {
	if startIndex < 0 || columns < 1 || rows < 1 {
		err := fmt.Errorf("AddRegularGrid(start=%d, columns=%d, rows=%d): %w", startIndex, columns, rows, core.ErrInvalidArgument)
		core.LogError("%s", err)
		return err
	}
	stride := columns + 1
	required := startIndex + stride*(rows+1)
	if required > tb.vertices.Len() {
		err := fmt.Errorf("AddRegularGrid needs %d vertices, have %d: %w", required, tb.vertices.Len(), core.ErrInsufficientVertices)
		core.LogError("%s", err)
		return err
	}

	count := 2 * columns * rows
	if closeColumns {
		count += 2 * rows
	}
	tb.triangles = slices.Grow(tb.triangles, count)

	for r := 0; r < rows; r++ {
		row := startIndex + r*stride
		for c := 0; c < columns; c++ {
			a := row + c
			tb.AddTriangleQuad(a, a+1, a+stride, a+stride+1)
		}
		if closeColumns {
			last := row + columns
			tb.AddTriangleQuad(last, row, last+stride, row+stride)
		}
	}
	return nil
}

// AddTriangleFan adds triangleCount triangles around centerIndex. The rim is
// the triangleCount+1 vertices that follow the center, so triangleCount+2
// vertices are used in total. With closeFan one more triangle joins the last
// rim vertex to the first. Nothing is added on error.
func (tb *TriangleBuffer) AddTriangleFan(centerIndex, triangleCount int, closeFan bool) error {
	if centerIndex < 0 || triangleCount < 1 {
		err := fmt.Errorf("AddTriangleFan(center=%d, count=%d): %w", centerIndex, triangleCount, core.ErrInvalidArgument)
		core.LogError("%s", err)
		return err
	}
	required := centerIndex + triangleCount + 2
	if required > tb.vertices.Len() {
		err := fmt.Errorf("AddTriangleFan needs %d vertices, have %d: %w", required, tb.vertices.Len(), core.ErrInsufficientVertices)
		core.LogError("%s", err)
		return err
	}

	for i := 1; i <= triangleCount; i++ {
		tb.AddTriangle(centerIndex, centerIndex+i, centerIndex+i+1)
	}
	if closeFan {
		tb.AddTriangle(centerIndex, centerIndex+triangleCount+1, centerIndex+1)
	}
	return nil
}

// TrianglesContainingVertex returns every triangle that references index.
func (tb *TriangleBuffer) TrianglesContainingVertex(index int) []Triangle {
	var out []Triangle
	for _, t := range tb.triangles {
		if t.Contains(index) {
			out = append(out, t)
		}
	}
	return out
}

// Flip reverses the winding of every triangle. Vertex normals are not touched.
func (tb *TriangleBuffer) Flip() {
	for i := range tb.triangles {
		tb.triangles[i].Flip()
	}
}

func (tb *TriangleBuffer) Clear() {
	tb.triangles = tb.triangles[:0]
}

// referencedVertices lists the vertex indices used by the triangles. The
// vertex buffer deduplicates them when applying an edit.
func (tb *TriangleBuffer) referencedVertices() []int {
	indices := make([]int, 0, len(tb.triangles)*3)
	for _, t := range tb.triangles {
		indices = append(indices, t.V0, t.V1, t.V2)
	}
	return indices
}

func (tb *TriangleBuffer) Move(offset math.Vec3) {
	tb.vertices.apply(tb.referencedVertices(), func(v *Vertex) { v.Move(offset) })
}

func (tb *TriangleBuffer) Rotate(rotation math.Quaternion) {
	tb.vertices.apply(tb.referencedVertices(), func(v *Vertex) { v.Rotate(rotation) })
}

func (tb *TriangleBuffer) Scale(factor float32) {
	tb.vertices.apply(tb.referencedVertices(), func(v *Vertex) { v.Scale(factor) })
}

func (tb *TriangleBuffer) ScaleAxes(factor math.Vec3) {
	tb.vertices.apply(tb.referencedVertices(), func(v *Vertex) { v.ScaleAxes(factor) })
}

func (tb *TriangleBuffer) FlipNormals() {
	tb.vertices.apply(tb.referencedVertices(), func(v *Vertex) { v.FlipNormals() })
}

func (tb *TriangleBuffer) FlipUV(channel int, axis UVAxis) {
	if channel < 0 || channel >= UVChannelCount {
		return
	}
	tb.vertices.apply(tb.referencedVertices(), func(v *Vertex) { v.FlipUV(channel, axis) })
}
