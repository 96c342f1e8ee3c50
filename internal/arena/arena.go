// Package arena implements a bump allocator with scoped lifetime: a session
// allocates every interned string and transient validator structure from one
// Arena, then tears the whole thing down in one O(#blocks) step instead of
// freeing elements individually.
package arena

import (
	"fmt"

	"fortio.org/safecast"
)

// defaultBlockSize is the capacity of a freshly allocated block when no
// larger request forces a bigger one.
const defaultBlockSize = 4096

// Arena is an ordered sequence of fixed-size byte blocks. Allocations are
// served from the current block by simple slicing; a request that does not
// fit starts a new block sized to the request (or the arena's block size,
// whichever is larger). There is no per-allocation free; Reset releases
// every block at once.
type Arena struct {
	blocks    [][]byte
	used      []int // bytes consumed in blocks[i]
	blockSize int
}

// New creates an Arena whose blocks default to 4096 bytes. blockSize, if
// positive, overrides the default (useful for tests that want to force
// block rollover).
func New(blockSize int) *Arena {
	if blockSize <= 0 {
		blockSize = defaultBlockSize
	}
	return &Arena{blockSize: blockSize}
}

// Alloc returns n fresh, zeroed bytes backed by the arena. The returned
// slice is valid for the arena's lifetime and is never reused for another
// allocation.
func (a *Arena) Alloc(n int) []byte {
	if n < 0 {
		panic(fmt.Errorf("arena: negative allocation size %d", n))
	}
	if n == 0 {
		return nil
	}
	if len(a.blocks) > 0 {
		i := len(a.blocks) - 1
		block := a.blocks[i]
		if a.used[i]+n <= len(block) {
			start := a.used[i]
			a.used[i] += n
			return block[start : start+n : start+n]
		}
	}
	size := a.blockSize
	if n > size {
		size = n
	}
	block := make([]byte, size)
	a.blocks = append(a.blocks, block)
	a.used = append(a.used, n)
	return block[:n:n]
}

// AllocZeroed allocates count*elemSize bytes; it behaves identically to
// Alloc (every arena allocation is already zeroed via make) but documents
// call sites that want a typed array's worth of storage.
func (a *Arena) AllocZeroed(count, elemSize uint32) []byte {
	total, err := safecast.Conv[int](uint64(count) * uint64(elemSize))
	if err != nil {
		panic(fmt.Errorf("arena: alloc_zeroed overflow: %w", err))
	}
	return a.Alloc(total)
}

// AllocString copies s into arena-owned storage and returns it as a string
// header pointing at that storage, so the caller's original backing array
// can be discarded.
func (a *Arena) AllocString(s string) string {
	if len(s) == 0 {
		return ""
	}
	buf := a.Alloc(len(s))
	copy(buf, s)
	return string(buf)
}

// Grow returns storage for a vector that needs to hold newLen elements of
// elemSize bytes, given it currently occupies oldCap*elemSize bytes at
// cur. If newLen fits within oldCap, cur is returned unchanged; otherwise
// fresh storage is allocated at double oldCap (or newLen, whichever is
// larger) and cur's live bytes are copied over.
func (a *Arena) Grow(cur []byte, oldCap, newLen, elemSize uint32) []byte {
	if newLen <= oldCap {
		return cur
	}
	newCap := oldCap * 2
	if newCap < newLen {
		newCap = newLen
	}
	next := a.AllocZeroed(newCap, elemSize)
	copy(next, cur)
	return next
}

// BlockCount reports how many blocks have been allocated so far. Tear-down
// cost is O(BlockCount), independent of how many values were allocated.
func (a *Arena) BlockCount() int {
	return len(a.blocks)
}

// Reset releases every block. Any slice previously returned by Alloc must
// not be used afterward.
func (a *Arena) Reset() {
	a.blocks = nil
	a.used = nil
}
