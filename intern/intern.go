package intern

import (
	"bytes"
	"encoding/binary"

	"github.com/nyxlang/corert/alloc"
	"github.com/nyxlang/corert/container"
	"github.com/nyxlang/corert/internal/fnvhash"
)

// slotSize is the on-the-wire width of one primary/collision entry:
// an 8-byte hash key followed by a 4-byte node index.
const slotSize = 12

// node holds one interned, NUL-terminated byte string carved from the
// map's arena. nodes is an ordinary Go slice so the runtime's normal
// pointer tracking keeps these arena-backed slices alive for the map's
// lifetime — primary and collision only ever store the hash and this
// slice's index, never the slice itself, to avoid putting a GC-live
// reference inside a raw allocator-owned buffer.
type node struct {
	bytes []byte // length len(name); one more byte of capacity holds the NUL
}

// Map is a hash-of-bytes keyed table of arena-allocated immutable byte
// strings, with a linear collision chain for keys that hash alike.
type Map struct {
	arena     *alloc.Arena
	nodes     []node
	primary   *container.Array // key: 8-byte hash, value: 4-byte node index
	collision *container.Array // flat sequence of (hash uint64, nodeIndex uint32)
}

// NewMap returns an empty Map drawing its arena and both bookkeeping
// arrays from parent. A nil parent uses alloc.Default.
func NewMap(parent alloc.Allocator) *Map {
	if parent == nil {
		parent = alloc.Default
	}
	return &Map{
		arena:     alloc.NewArena(parent, 4096),
		primary:   container.New(parent, slotSize, 8, 8),
		collision: container.New(parent, slotSize, 8, 8),
	}
}

// Intern returns the canonical, arena-owned copy of b, allocating and
// registering one if this is the first time b has been seen. The returned
// slice remains valid until Free.
func (m *Map) Intern(b []byte) []byte {
	h := fnvhash.Hash64(b)
	key := make([]byte, 8)
	binary.LittleEndian.PutUint64(key, h)

	primaryAt := m.primary.GetI(key)
	if primaryAt == m.primary.Len() {
		// Primary slot was empty: install the new node directly.
		idx := m.newNode(b)
		m.primary.Put(encodeSlot(h, idx))
		return m.nodes[idx].bytes
	}

	if candidate := m.decodeSlot(m.primary.At(primaryAt)); bytes.Equal(m.nodes[candidate].bytes, b) {
		return m.nodes[candidate].bytes
	}

	for i := 0; i < m.collision.Len(); i++ {
		eh, eIdx := decodeSlotFields(m.collision.At(i))
		if eh == h && bytes.Equal(m.nodes[eIdx].bytes, b) {
			return m.nodes[eIdx].bytes
		}
	}

	// Total miss, but the primary slot for this hash is already taken by a
	// different string: append the new node to the collision chain.
	idx := m.newNode(b)
	m.collision.Push(encodeSlot(h, idx))
	return m.nodes[idx].bytes
}

// newNode carves len(b)+1 bytes from the arena, copies b, NUL-terminates,
// appends a node, and returns its index.
func (m *Map) newNode(b []byte) uint32 {
	buf := m.arena.Alloc(len(b)+1, 1)
	copy(buf, b)
	buf[len(b)] = 0
	m.nodes = append(m.nodes, node{bytes: buf[:len(b):len(b)+1]})
	return uint32(len(m.nodes) - 1)
}

// Free releases every node byte (one arena sweep) plus the two
// bookkeeping arrays.
func (m *Map) Free() {
	m.arena.FreeAll()
	m.primary.Free()
	m.collision.Free()
	m.nodes = nil
}

func encodeSlot(h uint64, idx uint32) []byte {
	slot := make([]byte, slotSize)
	binary.LittleEndian.PutUint64(slot[:8], h)
	binary.LittleEndian.PutUint32(slot[8:12], idx)
	return slot
}

func (m *Map) decodeSlot(slot []byte) uint32 {
	return binary.LittleEndian.Uint32(slot[8:12])
}

func decodeSlotFields(slot []byte) (h uint64, idx uint32) {
	return binary.LittleEndian.Uint64(slot[:8]), binary.LittleEndian.Uint32(slot[8:12])
}

