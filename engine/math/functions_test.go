package math

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const testTolerance float32 = 1e-5

func TestVec3Rotate(t *testing.T) {
	tests := []struct {
		name  string
		v     Vec3
		axis  Vec3
		angle float32
		want  Vec3
	}{
		{"x to y around z", NewVec3(1, 0, 0), NewVec3(0, 0, 1), K_HALF_PI, NewVec3(0, 1, 0)},
		{"y to z around x", NewVec3(0, 1, 0), NewVec3(1, 0, 0), K_HALF_PI, NewVec3(0, 0, 1)},
		{"z to x around y", NewVec3(0, 0, 1), NewVec3(0, 1, 0), K_HALF_PI, NewVec3(1, 0, 0)},
		{"half turn", NewVec3(1, 2, 3), NewVec3(0, 0, 1), K_PI, NewVec3(-1, -2, 3)},
		{"identity", NewVec3(4, 5, 6), NewVec3(0, 1, 0), 0, NewVec3(4, 5, 6)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := NewQuatFromAxisAngle(tt.axis, tt.angle, true)
			got := tt.v.Rotate(q)
			assert.True(t, got.Compare(tt.want, testTolerance), "got %v, want %v", got, tt.want)
		})
	}
}

func TestQuaternionToMat4MatchesRotate(t *testing.T) {
	q := NewQuatFromAxisAngle(NewVec3(1, 1, 0).Normalized(), DegToRad(37), true)
	m := q.ToMat4()
	for _, v := range []Vec3{NewVec3(1, 0, 0), NewVec3(0, 1, 0), NewVec3(0, 0, 1), NewVec3(3, -2, 5)} {
		want := v.Rotate(q)
		assert.True(t, v.Transform(m).Compare(want, testTolerance), "point %v", v)
		assert.True(t, v.TransformDirection(m).Compare(want, testTolerance), "direction %v", v)
	}
}

func TestEulerMatchesQuaternion(t *testing.T) {
	angle := DegToRad(30)
	v := NewVec3(1, 2, 3)
	assert.True(t, v.Transform(NewMat4EulerZ(angle)).Compare(v.Rotate(NewQuatFromAxisAngle(NewVec3(0, 0, 1), angle, true)), testTolerance))
	assert.True(t, v.Transform(NewMat4EulerX(angle)).Compare(v.Rotate(NewQuatFromAxisAngle(NewVec3(1, 0, 0), angle, true)), testTolerance))
	assert.True(t, v.Transform(NewMat4EulerY(angle)).Compare(v.Rotate(NewQuatFromAxisAngle(NewVec3(0, 1, 0), angle, true)), testTolerance))
}

func TestMat4TranslationOrder(t *testing.T) {
	// translate, then rotate a quarter turn around z
	m := NewMat4Translation(NewVec3(1, 0, 0)).Mul(NewMat4EulerZ(K_HALF_PI))
	got := NewVec3Zero().Transform(m)
	assert.True(t, got.Compare(NewVec3(0, 1, 0), testTolerance), "got %v", got)

	dir := NewVec3(1, 0, 0).TransformDirection(NewMat4Translation(NewVec3(5, 5, 5)))
	assert.Equal(t, NewVec3(1, 0, 0), dir)
}

func TestMat4Basis(t *testing.T) {
	m := NewMat4Scale(NewVec3(2, 2, 2)).Mul(NewMat4Translation(NewVec3(1, 2, 3)))
	b := m.Basis()
	assert.Equal(t, NewVec3(2, 2, 2), NewVec3(1, 1, 1).Transform(b))
}

func TestVec3Normalized(t *testing.T) {
	assert.InDelta(t, 1.0, NewVec3(3, 4, 12).Normalized().Length(), 1e-6)
	assert.Equal(t, NewVec3Zero(), NewVec3Zero().Normalized())
}

func TestVec3MinMax(t *testing.T) {
	a := NewVec3(1, -2, 3)
	b := NewVec3(-1, 2, 0)
	assert.Equal(t, NewVec3(-1, -2, 0), a.Min(b))
	assert.Equal(t, NewVec3(1, 2, 3), a.Max(b))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 2, Clamp(5, 0, 2))
	assert.Equal(t, float32(-1), Clamp(float32(-3), -1, 1))
	assert.Equal(t, 0.5, Clamp(0.5, 0.0, 1.0))
}
