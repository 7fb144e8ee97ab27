package fade

import "github.com/llehouerou/reelbg/internal/surface"

// Registry records which operation owns each surface. It is the single
// source of truth for surface ownership: an operation may only mutate its
// surface while it is registered.
type Registry struct {
	ops map[surface.ID]*Operation
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{ops: make(map[surface.ID]*Operation)}
}

// Begin makes op the owner of its surface and aborts the previous owner.
// The registry is updated before the abort runs, so anything reacting to
// the abort sees op as the owner. It returns the evicted operation.
func (r *Registry) Begin(op *Operation) *Operation {
	prev := r.ops[op.surface]
	r.ops[op.surface] = op
	if prev != nil && prev != op {
		prev.abort()
	}
	return prev
}

// Get returns the live operation on a surface, or nil.
func (r *Registry) Get(id surface.ID) *Operation {
	return r.ops[id]
}

// Evict aborts and removes the live operation on a surface.
func (r *Registry) Evict(id surface.ID) *Operation {
	op := r.ops[id]
	if op == nil {
		return nil
	}
	delete(r.ops, id)
	op.abort()
	return op
}

// End removes op if it still owns its surface.
func (r *Registry) End(op *Operation) bool {
	if r.ops[op.surface] != op {
		return false
	}
	delete(r.ops, op.surface)
	return true
}

// Len returns the number of live operations.
func (r *Registry) Len() int {
	return len(r.ops)
}
