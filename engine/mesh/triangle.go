package mesh

import (
	"fmt"

	"github.com/MagisterBYTE/Lotus.Basis-sub002/engine/core"
	"github.com/MagisterBYTE/Lotus.Basis-sub002/engine/math"
)

// Triangle holds three indices into a VertexBuffer, counter-clockwise when
// seen from outside.
type Triangle struct {
	V0, V1, V2 int
}

func NewTriangle(v0, v1, v2 int) Triangle {
	return Triangle{V0: v0, V1: v1, V2: v2}
}

// Equal requires the same indices in the same order.
func (t Triangle) Equal(other Triangle) bool {
	return t.V0 == other.V0 && t.V1 == other.V1 && t.V2 == other.V2
}

// Compare orders triangles by V0 only. Triangles with the same V0 compare
// as equal whatever their other indices are, so this is not a total order.
func (t Triangle) Compare(other Triangle) int {
	switch {
	case t.V0 < other.V0:
		return -1
	case t.V0 > other.V0:
		return 1
	}
	return 0
}

func (t Triangle) Indices() [3]int {
	return [3]int{t.V0, t.V1, t.V2}
}

func (t Triangle) Contains(index int) bool {
	return t.V0 == index || t.V1 == index || t.V2 == index
}

// Offset returns t with every index shifted by delta.
func (t Triangle) Offset(delta int) Triangle {
	return Triangle{V0: t.V0 + delta, V1: t.V1 + delta, V2: t.V2 + delta}
}

// Edges returns the three index pairs in winding order.
func (t Triangle) Edges() [3][2]int {
	return [3][2]int{{t.V0, t.V1}, {t.V1, t.V2}, {t.V2, t.V0}}
}

// IsDegenerate reports a repeated index.
func (t Triangle) IsDegenerate() bool {
	return t.V0 == t.V1 || t.V1 == t.V2 || t.V2 == t.V0
}

// Flip swaps V0 and V1, reversing the winding.
func (t *Triangle) Flip() {
	t.V0, t.V1 = t.V1, t.V0
}

func (t Triangle) positions(vb *VertexBuffer) (a, b, c math.Vec3, err error) {
	var ok0, ok1, ok2 bool
	a, ok0 = vb.Position(t.V0)
	b, ok1 = vb.Position(t.V1)
	c, ok2 = vb.Position(t.V2)
	if !ok0 || !ok1 || !ok2 {
		err = fmt.Errorf("triangle %v with %d vertices: %w", t.Indices(), vb.Len(), core.ErrIndexOutOfRange)
	}
	return
}

// NormalAt returns the unnormalized normal at the corner holding
// vertexIndex: the cross product of the two edges leaving that corner in
// winding order. Its length is twice the triangle area.
func (t Triangle) NormalAt(vb *VertexBuffer, vertexIndex int) (math.Vec3, error) {
	a, b, c, err := t.positions(vb)
	if err != nil {
		return math.Vec3{}, err
	}
	switch vertexIndex {
	case t.V0:
		return b.Sub(a).Cross(c.Sub(a)), nil
	case t.V1:
		return c.Sub(b).Cross(a.Sub(b)), nil
	case t.V2:
		return a.Sub(c).Cross(b.Sub(c)), nil
	}
	return math.Vec3{}, fmt.Errorf("vertex %d is not part of triangle %v: %w", vertexIndex, t.Indices(), core.ErrInvalidArgument)
}

// Normal returns the unit face normal.
func (t Triangle) Normal(vb *VertexBuffer) (math.Vec3, error) {
	n, err := t.NormalAt(vb, t.V0)
	if err != nil {
		return n, err
	}
	if n.LengthSquared() == 0 {
		return n, fmt.Errorf("triangle %v has no area: %w", t.Indices(), core.ErrDegenerateGeometry)
	}
	return n.Normalized(), nil
}

func (t Triangle) Area(vb *VertexBuffer) (float32, error) {
	n, err := t.NormalAt(vb, t.V0)
	if err != nil {
		return 0, err
	}
	return n.Length() * 0.5, nil
}

// Center returns the average of the three corner positions.
func (t Triangle) Center(vb *VertexBuffer) (math.Vec3, error) {
	a, b, c, err := t.positions(vb)
	if err != nil {
		return math.Vec3{}, err
	}
	return a.Add(b).Add(c).DivScalar(3), nil
}

func (t Triangle) String() string {
	return fmt.Sprintf("Triangle{%d, %d, %d}", t.V0, t.V1, t.V2)
}
