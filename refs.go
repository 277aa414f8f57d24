package emuconfig

import (
	"fmt"
	"sync"
)

// Ref is an opaque handle to an object living on the host side of the boundary.
// The zero Ref is the null handle.
type Ref uint64

// MethodID identifies a resolved provider method. Method IDs are not owned and need no release.
type MethodID uint64

// refTable is the handle space shared by the in-process Env implementations.
type refTable struct {
	mu      sync.Mutex
	next    Ref
	objects map[Ref]any
}

func newRefTable() *refTable {
	return &refTable{objects: make(map[Ref]any)}
}

// put stores obj and returns a fresh non-null handle for it.
func (t *refTable) put(obj any) Ref {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.next++
	t.objects[t.next] = obj
	return t.next
}

// get resolves a handle.
func (t *refTable) get(r Ref) (any, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	obj, ok := t.objects[r]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRef, r)
	}
	return obj, nil
}

// release drops a handle. Releasing the null or an unknown handle is a no-op.
func (t *refTable) release(r Ref) {
	t.mu.Lock()
	delete(t.objects, r)
	t.mu.Unlock()
}

// live reports the number of handles not yet released.
func (t *refTable) live() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.objects)
}
