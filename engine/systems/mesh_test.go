package systems

import (
	"errors"
	"testing"

	"github.com/MagisterBYTE/Lotus.Basis-sub002/engine/core"
	"github.com/MagisterBYTE/Lotus.Basis-sub002/engine/mesh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMeshSystem(t *testing.T) {
	_, err := NewMeshSystem(&MeshSystemConfig{})
	assert.True(t, errors.Is(err, core.ErrInvalidArgument))
	_, err = NewMeshSystem(nil)
	assert.True(t, errors.Is(err, core.ErrInvalidArgument))

	ms, err := NewMeshSystem(&MeshSystemConfig{MaxMeshCount: 4})
	require.NoError(t, err)
	require.NotNil(t, ms.Default())
	assert.Equal(t, DefaultMeshName, ms.Default().Name)
	assert.Equal(t, 12, ms.Default().TriangleCount())
	assert.Equal(t, 0, ms.Count())
}

func TestMeshSystemRegisterAndAcquire(t *testing.T) {
	ms, err := NewMeshSystem(&MeshSystemConfig{MaxMeshCount: 2})
	require.NoError(t, err)

	a, b := mesh.New("a"), mesh.New("b")
	idA, err := ms.Register(a, false)
	require.NoError(t, err)
	idB, err := ms.Register(b, true)
	require.NoError(t, err)
	assert.NotEqual(t, idA, idB)
	assert.Equal(t, int(idB), b.Index)
	assert.Equal(t, 2, ms.Count())

	_, err = ms.Register(mesh.New("c"), false)
	assert.True(t, errors.Is(err, core.ErrRegistryFull))
	_, err = ms.Register(nil, false)
	assert.True(t, errors.Is(err, core.ErrInvalidArgument))

	got, err := ms.AcquireByID(idA)
	require.NoError(t, err)
	assert.Same(t, a, got)
	assert.Equal(t, uint32(2), ms.ReferenceCount(idA))

	_, err = ms.AcquireByID(7)
	assert.True(t, errors.Is(err, core.ErrIndexOutOfRange))

	id, ok := ms.FindByName("b")
	assert.True(t, ok)
	assert.Equal(t, idB, id)
	_, ok = ms.FindByName("missing")
	assert.False(t, ok)
	assert.Equal(t, []*mesh.Mesh{a, b}, ms.Meshes())
}

func TestMeshSystemRelease(t *testing.T) {
	ms, err := NewMeshSystem(&MeshSystemConfig{MaxMeshCount: 2})
	require.NoError(t, err)

	kept, released := mesh.New("kept"), mesh.New("released")
	idKept, err := ms.Register(kept, false)
	require.NoError(t, err)
	idReleased, err := ms.Register(released, true)
	require.NoError(t, err)

	require.NoError(t, ms.Release(idKept))
	assert.Equal(t, 2, ms.Count(), "meshes without auto release stay registered")
	assert.Equal(t, uint32(0), ms.ReferenceCount(idKept))

	_, err = ms.AcquireByID(idReleased)
	require.NoError(t, err)
	require.NoError(t, ms.Release(idReleased))
	assert.Equal(t, 2, ms.Count())
	require.NoError(t, ms.Release(idReleased))
	assert.Equal(t, 1, ms.Count())
	assert.Equal(t, -1, released.Index)

	err = ms.Release(idReleased)
	assert.True(t, errors.Is(err, core.ErrNotFound))

	// The freed slot is reused.
	id, err := ms.Register(mesh.New("next"), false)
	require.NoError(t, err)
	assert.Equal(t, idReleased, id)
}

func TestMeshSystemReplace(t *testing.T) {
	ms, err := NewMeshSystem(&MeshSystemConfig{MaxMeshCount: 1})
	require.NoError(t, err)

	old := mesh.New("model")
	id, err := ms.Register(old, false)
	require.NoError(t, err)

	fresh := mesh.New("model")
	require.NoError(t, ms.Replace(id, fresh))
	got, err := ms.AcquireByID(id)
	require.NoError(t, err)
	assert.Same(t, fresh, got)
	assert.Equal(t, int(id), fresh.Index)
	assert.Equal(t, -1, old.Index)
	assert.Equal(t, uint32(2), ms.ReferenceCount(id))

	assert.Error(t, ms.Replace(id, nil))
	assert.True(t, errors.Is(ms.Replace(3, fresh), core.ErrIndexOutOfRange))

	ms.Shutdown()
	assert.Equal(t, 0, ms.Count())
}

func TestMeshSystemRegisterOrReplace(t *testing.T) {
	ms, err := NewMeshSystem(&MeshSystemConfig{MaxMeshCount: 2})
	require.NoError(t, err)

	first := mesh.New("crate")
	id, err := ms.RegisterOrReplace(first, false)
	require.NoError(t, err)
	_, err = ms.AcquireByID(id)
	require.NoError(t, err)

	second := mesh.New("crate")
	again, err := ms.RegisterOrReplace(second, true)
	require.NoError(t, err)
	assert.Equal(t, id, again)
	assert.Equal(t, 1, ms.Count())
	assert.Equal(t, uint32(2), ms.ReferenceCount(id), "the slot keeps its references")
	assert.Equal(t, -1, first.Index)
	assert.Equal(t, int(id), second.Index)

	other, err := ms.RegisterOrReplace(mesh.New("barrel"), false)
	require.NoError(t, err)
	assert.NotEqual(t, id, other)

	_, err = ms.RegisterOrReplace(nil, false)
	assert.True(t, errors.Is(err, core.ErrInvalidArgument))
}
