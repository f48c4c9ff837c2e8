package core

import (
	"fmt"
	"sync"
)

// IdentifierPool hands out small integer ids and reuses released ones.
// Each id is bound to an owner until it is released.
type IdentifierPool struct {
	mu     sync.Mutex
	owners []interface{}
}

func NewIdentifierPool(capacity int) *IdentifierPool {
	if capacity < 0 {
		capacity = 0
	}
	return &IdentifierPool{owners: make([]interface{}, 0, capacity)}
}

func (p *IdentifierPool) AcquireNewID(owner interface{}) uint32 {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i := range p.owners {
		// Existing free spot. Take it.
		if p.owners[i] == nil {
			p.owners[i] = owner
			return uint32(i)
		}
	}

	// If here, no existing free slots. Need a new id, so push one.
	p.owners = append(p.owners, owner)
	return uint32(len(p.owners) - 1)
}

func (p *IdentifierPool) ReleaseID(id uint32) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if int(id) >= len(p.owners) {
		return fmt.Errorf("identifier: id '%d' out of range (max=%d): %w", id, len(p.owners), ErrIndexOutOfRange)
	}
	if p.owners[id] == nil {
		return fmt.Errorf("identifier: id '%d' is not in use: %w", id, ErrNotFound)
	}

	// Just zero out the entry, making it available for use.
	p.owners[id] = nil
	return nil
}

// Owner returns the owner bound to id, or nil when the id is free.
func (p *IdentifierPool) Owner(id uint32) interface{} {
	p.mu.Lock()
	defer p.mu.Unlock()

	if int(id) >= len(p.owners) {
		return nil
	}
	return p.owners[id]
}
