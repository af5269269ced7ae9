package fsl

import "sync/atomic"

// allocatorSeq hands out unique allocator identities so Allocator.Same can
// compare allocation domains by id rather than by pointer.
var allocatorSeq int64

// Allocator is the arena every node and string in a SchemaTree is obtained
// from. The design favors a single bump arena per tree (Design Notes §9):
// allocation is just bookkeeping since Go is garbage collected, but the
// discipline of "every tree owns an Allocator and cross-tree moves must
// duplicate or assert allocator equality" is preserved so that Dispose,
// Clone and Merge behave the way the spec's ownership invariants require.
//
// A single process-wide Allocator is used at the FFI boundary (§6.2), where
// trees crossing the C ABI can't carry per-tree allocator state.
type Allocator struct {
	id       int64
	live     int // count of nodes currently attributed to this allocator
	disposed bool
}

// NewAllocator returns a fresh, empty allocator.
func NewAllocator() *Allocator {
	return &Allocator{id: atomic.AddInt64(&allocatorSeq, 1)}
}

// track records that a node or string was obtained from this allocator.
// Every constructor that places text into a tree calls this so LiveCount
// can report how many nodes are attributed to the allocator.
func (a *Allocator) track() {
	if a == nil {
		return
	}
	a.live++
}

// untrack reverses track, called when a node is explicitly freed (e.g. the
// linker replacing a TextNode's text during reference rewriting).
func (a *Allocator) untrack() {
	if a == nil || a.live == 0 {
		return
	}
	a.live--
}

// Dispose releases all bookkeeping for this allocator. It is idempotent:
// disposing twice is a no-op rather than a double-free, since nothing here
// actually owns unmanaged memory.
func (a *Allocator) Dispose() {
	if a == nil || a.disposed {
		return
	}
	a.disposed = true
	a.live = 0
}

// Disposed reports whether Dispose has already run.
func (a *Allocator) Disposed() bool {
	return a == nil || a.disposed
}

// Same reports whether two allocators are the same allocation domain.
func (a *Allocator) Same(other *Allocator) bool {
	if a == nil || other == nil {
		return a == other
	}
	return a.id == other.id
}

// LiveCount returns the number of nodes currently attributed to this
// allocator; it is 0 after Dispose.
func (a *Allocator) LiveCount() int {
	if a == nil {
		return 0
	}
	return a.live
}
