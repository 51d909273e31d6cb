package index

import (
	"encoding/binary"

	"github.com/nyxlang/corert/alloc"
	"github.com/nyxlang/corert/internal/fnvhash"
)

// hashEmpty and hashDeleted are the two slot sentinels. A slot's i field
// holds an element index everywhere else; these two reserved values above
// any real index mark "never occupied" and "occupied, then removed."
const (
	hashEmpty   uint32 = 0xffffffff
	hashDeleted uint32 = 0xfffffffe
)

// hashSlotSize is the on-the-wire width of one {i, h uint32} slot.
const hashSlotSize = 8

// Hash is an open-addressed table of {i, h uint32} slots with tombstones.
// It is the strategy container.Array switches to once an array grows past
// the linear-scan threshold.
//
// The slot table is raw bytes grown through an alloc.Allocator and encoded
// with encoding/binary, the same technique alloc.Trace uses for its event
// log: container.Array already needs index.Indexer as a field type, so
// index cannot import container back to reuse container.Array for its own
// slot storage without a cycle. Every slot field is a plain uint32, so
// nothing GC-managed ever lives in the allocator-owned buffer.
type Hash struct {
	a        alloc.Allocator
	buf      []byte
	cap      int // slot count, power of two
	occupied int // occupied + deleted slot count, tracks the rehash trigger
}

// NewHash returns a Hash with its slot table allocated through a. A nil a
// uses alloc.Default.
func NewHash(a alloc.Allocator) *Hash {
	if a == nil {
		a = alloc.Default
	}
	h := &Hash{a: a}
	h.allocTable(16)
	return h
}

func (h *Hash) allocTable(cap int) {
	buf := alloc.Alloc(h.a, cap*hashSlotSize, 8)
	for i := 0; i < cap; i++ {
		binary.LittleEndian.PutUint32(buf[i*hashSlotSize:], hashEmpty)
	}
	h.buf = buf
	h.cap = cap
	h.occupied = 0
}

func (h *Hash) slotAt(i int) (idx, hash uint32) {
	off := i * hashSlotSize
	return binary.LittleEndian.Uint32(h.buf[off:]), binary.LittleEndian.Uint32(h.buf[off+4:])
}

func (h *Hash) setSlot(i int, idx, hash uint32) {
	off := i * hashSlotSize
	binary.LittleEndian.PutUint32(h.buf[off:], idx)
	binary.LittleEndian.PutUint32(h.buf[off+4:], hash)
}

// hashKey truncates the shared fnvhash digest to the slot table's uint32
// hash field.
func hashKey(key []byte) uint32 {
	return uint32(fnvhash.Hash64(key))
}

// probe returns the slot index for key, and whether an occupied match was
// found. When no match exists, it returns the first empty-or-deleted slot
// suitable for insertion, preferring the first tombstone seen over a later
// empty slot so repeated insert/delete cycles reuse freed slots instead of
// spreading out toward the end of the probe sequence.
func (h *Hash) probe(src Source, key []byte) (slot int, hash uint32, found bool) {
	hash = hashKey(key)
	mask := h.cap - 1
	start := int(hash) & mask
	insertAt := -1
	for i := 0; i < h.cap; i++ {
		s := (start + i) & mask
		idx, sh := h.slotAt(s)
		switch idx {
		case hashEmpty:
			if insertAt < 0 {
				insertAt = s
			}
			return insertAt, hash, false
		case hashDeleted:
			if insertAt < 0 {
				insertAt = s
			}
		default:
			if sh == hash && int(idx) < src.Len() && equalKey(src.KeyAt(int(idx)), key) {
				return s, hash, true
			}
		}
	}
	if insertAt < 0 {
		insertAt = start
	}
	return insertAt, hash, false
}

func equalKey(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Get implements Indexer.Get.
func (h *Hash) Get(src Source, key []byte) int {
	slot, _, found := h.probe(src, key)
	if !found {
		return src.Len()
	}
	idx, _ := h.slotAt(slot)
	return int(idx)
}

// Put implements Indexer.Put: on a miss it inserts {i: src.Len(), h},
// rehashing first if the load-factor threshold is crossed, then returns
// src.Len() so the caller knows to append a new element.
func (h *Hash) Put(src Source, key []byte) int {
	slot, hash, found := h.probe(src, key)
	if found {
		idx, _ := h.slotAt(slot)
		return int(idx)
	}
	newLen := src.Len()
	h.setSlot(slot, uint32(newLen), hash)
	h.occupied++
	h.growIfNeeded(src)
	return newLen
}

// Del implements Indexer.Del: on a match it replaces the slot with the
// deleted sentinel and returns the old index.
func (h *Hash) Del(src Source, key []byte) int {
	slot, _, found := h.probe(src, key)
	if !found {
		return src.Len()
	}
	idx, _ := h.slotAt(slot)
	h.setSlot(slot, hashDeleted, 0)
	return int(idx)
}

// Set implements Indexer.Set: it finds key's current slot and overwrites
// its stored index with at. If no slot currently maps to key, Set inserts
// one directly, without consulting src for a miss return, since the caller
// has already placed the element at at (used both for ordinary swap-delete
// notification and for rebuilding an index from scratch via
// container.Array.SetIndex). The occupied-slot branch content-verifies the
// match against src the same way probe does, so a bare hash collision with
// an unrelated key can never overwrite that key's slot.
func (h *Hash) Set(src Source, key []byte, at int) {
	assertf(at >= 0 && at < src.Len(), "index: hash set out-of-range at %d (len %d)", at, src.Len())
	hash := hashKey(key)
	mask := h.cap - 1
	start := int(hash) & mask
	insertAt := -1
	for i := 0; i < h.cap; i++ {
		s := (start + i) & mask
		idx, sh := h.slotAt(s)
		switch idx {
		case hashEmpty:
			if insertAt < 0 {
				insertAt = s
			}
			h.setSlot(insertAt, uint32(at), hash)
			h.occupied++
			h.growIfNeeded(src)
			return
		case hashDeleted:
			if insertAt < 0 {
				insertAt = s
			}
		default:
			if sh == hash && int(idx) < src.Len() && equalKey(src.KeyAt(int(idx)), key) {
				h.setSlot(s, uint32(at), hash)
				return
			}
		}
	}
	if insertAt >= 0 {
		h.setSlot(insertAt, uint32(at), hash)
		h.occupied++
		h.growIfNeeded(src)
	}
}

// growIfNeeded rehashes once occupied (including tombstones) reaches a 3/4
// load threshold. The fresh table is sized off src.Len()+1 rather than off
// the current capacity: the power of two at or above that count (minimum
// 16), doubled until the count sits below the new table's 3/4 threshold.
// A workload that inserts and deletes repeatedly therefore compacts back
// down to fit the live element count instead of growing monotonically:
// rehash drops tombstones, so an insert-heavy table that has since had most
// of its keys deleted shrinks the next time it rehashes.
func (h *Hash) growIfNeeded(src Source) {
	if h.occupied >= h.cap/2+h.cap/4 {
		target := src.Len() + 1
		newCap := nextPow2(target)
		if newCap < 16 {
			newCap = 16
		}
		for target >= newCap/2+newCap/4 {
			newCap <<= 1
		}
		h.rehash(newCap)
	}
}

// nextPow2 returns the smallest power of two >= n, or 1 if n < 1.
func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// rehash allocates a fresh table of newCap slots, walks the old table, and
// reinserts every occupied slot, skipping both empty slots and tombstones.
// The stored hash is reused as-is; no key is recomputed.
func (h *Hash) rehash(newCap int) {
	old := h.buf
	oldCap := h.cap
	h.allocTable(newCap)
	for i := 0; i < oldCap; i++ {
		off := i * hashSlotSize
		idx := binary.LittleEndian.Uint32(old[off:])
		if idx == hashEmpty || idx == hashDeleted {
			continue
		}
		hashv := binary.LittleEndian.Uint32(old[off+4:])
		h.putSlot(idx, hashv)
	}
	alloc.Free(h.a, old)
}

// putSlot inserts a known {idx, hash} pair into the current table without
// re-hashing the key, used only while rebuilding during rehash.
func (h *Hash) putSlot(idx, hashv uint32) {
	mask := h.cap - 1
	start := int(hashv) & mask
	for i := 0; i < h.cap; i++ {
		s := (start + i) & mask
		cur, _ := h.slotAt(s)
		if cur == hashEmpty {
			h.setSlot(s, idx, hashv)
			h.occupied++
			return
		}
	}
}

// Free releases the slot table through the allocator it was built with.
func (h *Hash) Free() {
	alloc.Free(h.a, h.buf)
	h.buf = nil
	h.cap = 0
	h.occupied = 0
}

var _ Indexer = (*Hash)(nil)
