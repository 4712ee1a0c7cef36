// Package mempool supplies pooled memory management for long lived
// servers, with a limited scope:
//
//   - Types and Functions exported by this package are not thread
//     safe.
//   - Each pool hands out fixed size slots for exactly one object
//     size.
//   - Slots are carved out of chunks, large slabs allocated from the
//     OS, so that a busy pool does not fragment the process heap.
//   - Freed slots ride a pool level cache until the next Clean, free
//     is O(1) and never touches the owning chunk.
//   - Totally idle chunks are given back to the OS during Clean,
//     subject to the registry's idle limit and the chunk's age.
//   - There is no pointer re-write, live slots never move.
//
// The process wide Registry tracks every pool, accumulates their
// meters into a global meter and drives the periodic cleanup. Pools
// are created through the registry, either chunk backed or falling
// through to the OS allocator per object, both variants answer the
// same api.Allocator contract.
//
// A free slot stores the address of the next free slot in its first
// word. Object sizes are therefore rounded up to pointer alignment
// and are never smaller than a pointer, and callers must treat a
// freshly allocated slot as uninitialized memory unless the pool is
// configured to zero on alloc.
package mempool
