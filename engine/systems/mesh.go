package systems

import (
	"fmt"
	"sync"

	"github.com/MagisterBYTE/Lotus.Basis-sub002/engine/core"
	"github.com/MagisterBYTE/Lotus.Basis-sub002/engine/mesh"
)

type MeshSystemConfig struct {
	// MaxMeshCount is the number of meshes that can be registered at once.
	MaxMeshCount uint32
}

type meshReference struct {
	mesh           *mesh.Mesh
	referenceCount uint32
	autoRelease    bool
}

// MeshSystem is a slot registry of meshes with reference counting. Slot ids
// come from an identifier pool and are reused once released.
type MeshSystem struct {
	mu          sync.Mutex
	config      *MeshSystemConfig
	ids         *core.IdentifierPool
	registered  []*meshReference
	defaultMesh *mesh.Mesh
}

/**
 * @brief Creates the mesh system and its default mesh, a unit cube.
 *
 * @param config The configuration for this system.
 * @return The mesh system, or an error if the configuration is invalid.
 */
func NewMeshSystem(config *MeshSystemConfig) (*MeshSystem, error) {
	if config == nil || config.MaxMeshCount == 0 {
		err := fmt.Errorf("func NewMeshSystem - config.MaxMeshCount must be > 0: %w", core.ErrInvalidArgument)
		core.LogWarn("%s", err)
		return nil, err
	}

	defaultMesh, err := GenerateCube(1, 1, 1, 1, 1, DefaultMeshName)
	if err != nil {
		err = fmt.Errorf("failed to create default mesh. Application cannot continue: %w", err)
		core.LogError("%s", err)
		return nil, err
	}
	defaultMesh.Index = -1

	return &MeshSystem{
		config:      config,
		ids:         core.NewIdentifierPool(int(config.MaxMeshCount)),
		registered:  make([]*meshReference, config.MaxMeshCount),
		defaultMesh: defaultMesh,
	}, nil
}

/**
 * @brief Releases every registered mesh.
 */
func (ms *MeshSystem) Shutdown() {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	for id, ref := range ms.registered {
		if ref == nil {
			continue
		}
		ms.destroyMesh(uint32(id))
	}
}

/**
 * @brief Registers m in a free slot and acquires it once.
 *
 * @param m The mesh to register. Its Index is set to the slot id.
 * @param autoRelease Indicates if the mesh should be unregistered when its reference count reaches 0.
 * @return The slot id, or an error if m is nil or no slot is free.
 */
func (ms *MeshSystem) Register(m *mesh.Mesh, autoRelease bool) (uint32, error) {
	if m == nil {
		err := fmt.Errorf("func Register - mesh cannot be nil: %w", core.ErrInvalidArgument)
		core.LogError("%s", err)
		return 0, err
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()
	return ms.register(m, autoRelease)
}

/**
 * @brief Registers m, or swaps it into the slot of the registered mesh with
 * the same name, keeping that slot's reference count.
 *
 * @param m The mesh to register.
 * @param autoRelease Used only when m takes a new slot.
 * @return The slot id holding m.
 */
func (ms *MeshSystem) RegisterOrReplace(m *mesh.Mesh, autoRelease bool) (uint32, error) {
	if m == nil {
		err := fmt.Errorf("func RegisterOrReplace - mesh cannot be nil: %w", core.ErrInvalidArgument)
		core.LogError("%s", err)
		return 0, err
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()

	if id, ok := ms.findByName(m.Name); ok {
		ref := ms.registered[id]
		m.Index = int(id)
		ref.mesh.Index = -1
		ref.mesh = m
		core.LogDebug("Replaced mesh '%s' in slot %d.", m.Name, id)
		return id, nil
	}
	return ms.register(m, autoRelease)
}

func (ms *MeshSystem) register(m *mesh.Mesh, autoRelease bool) (uint32, error) {
	id := ms.ids.AcquireNewID(m)
	if id >= ms.config.MaxMeshCount {
		if err := ms.ids.ReleaseID(id); err != nil {
			core.LogError("%s", err)
		}
		err := fmt.Errorf("unable to obtain free slot for mesh '%s'. Adjust configuration to allow more space: %w", m.Name, core.ErrRegistryFull)
		core.LogError("%s", err)
		return 0, err
	}

	m.Index = int(id)
	ms.registered[id] = &meshReference{
		mesh:           m,
		referenceCount: 1,
		autoRelease:    autoRelease,
	}
	core.LogDebug("Registered mesh '%s' (%s) in slot %d.", m.Name, m.ID, id)
	return id, nil
}

/**
 * @brief Acquires an existing mesh by id.
 *
 * @param id The mesh identifier to acquire by.
 * @return The acquired mesh or an error if the id is not registered.
 */
func (ms *MeshSystem) AcquireByID(id uint32) (*mesh.Mesh, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ref, err := ms.lookup(id)
	if err != nil {
		core.LogError("%s", err)
		return nil, err
	}
	ref.referenceCount++
	return ref.mesh, nil
}

// FindByName returns the slot id of the first registered mesh called name.
func (ms *MeshSystem) FindByName(name string) (uint32, bool) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return ms.findByName(name)
}

func (ms *MeshSystem) findByName(name string) (uint32, bool) {
	for id, ref := range ms.registered {
		if ref != nil && ref.mesh.Name == name {
			return uint32(id), true
		}
	}
	return 0, false
}

/**
 * @brief Swaps the mesh held in a slot, keeping its reference count. Used
 * when an asset is reloaded.
 */
func (ms *MeshSystem) Replace(id uint32, m *mesh.Mesh) error {
	if m == nil {
		err := fmt.Errorf("func Replace - mesh cannot be nil: %w", core.ErrInvalidArgument)
		core.LogError("%s", err)
		return err
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()

	ref, err := ms.lookup(id)
	if err != nil {
		core.LogError("%s", err)
		return err
	}
	m.Index = int(id)
	ref.mesh.Index = -1
	ref.mesh = m
	return nil
}

/**
 * @brief Releases a reference to the mesh in slot id. An auto-release mesh is
 * unregistered when its last reference goes away.
 */
func (ms *MeshSystem) Release(id uint32) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ref, err := ms.lookup(id)
	if err != nil {
		core.LogWarn("mesh release cannot release invalid mesh id %d. Nothing was done.", id)
		return err
	}

	if ref.referenceCount > 0 {
		ref.referenceCount--
	}
	if ref.referenceCount < 1 && ref.autoRelease {
		ms.destroyMesh(id)
	}
	return nil
}

// ReferenceCount returns the number of references held on slot id.
func (ms *MeshSystem) ReferenceCount(id uint32) uint32 {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if ref, err := ms.lookup(id); err == nil {
		return ref.referenceCount
	}
	return 0
}

/**
 * @brief Obtains a pointer to the default mesh.
 *
 * @return A pointer to the default mesh.
 */
func (ms *MeshSystem) Default() *mesh.Mesh {
	return ms.defaultMesh
}

// Count returns the number of registered meshes.
func (ms *MeshSystem) Count() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	count := 0
	for _, ref := range ms.registered {
		if ref != nil {
			count++
		}
	}
	return count
}

// Meshes returns the registered meshes in slot order.
func (ms *MeshSystem) Meshes() []*mesh.Mesh {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	var out []*mesh.Mesh
	for _, ref := range ms.registered {
		if ref != nil {
			out = append(out, ref.mesh)
		}
	}
	return out
}

func (ms *MeshSystem) lookup(id uint32) (*meshReference, error) {
	if id >= uint32(len(ms.registered)) {
		return nil, fmt.Errorf("mesh id %d (max=%d): %w", id, len(ms.registered), core.ErrIndexOutOfRange)
	}
	ref := ms.registered[id]
	if ref == nil {
		return nil, fmt.Errorf("mesh id %d is not registered: %w", id, core.ErrNotFound)
	}
	return ref, nil
}

func (ms *MeshSystem) destroyMesh(id uint32) {
	ref := ms.registered[id]
	ref.mesh.Index = -1
	ms.registered[id] = nil
	if err := ms.ids.ReleaseID(id); err != nil {
		core.LogError("%s", err)
	}
	core.LogDebug("Released mesh '%s' from slot %d.", ref.mesh.Name, id)
}
