package container

import (
	"fmt"
	"unsafe"

	"github.com/nyxlang/corert/alloc"
	"github.com/nyxlang/corert/index"
)

// hashUpgradeThreshold is the element count at which Put auto-upgrades a
// still-Linear index to a Hash, once linear scans start costing more than
// a hash probe is worth.
const hashUpgradeThreshold = 32

// Array is the header-external growable byte buffer every keyed and
// sequence operation in this module ultimately runs on. The header
// (length, capacity, allocator, index) is an ordinary Go struct field set
// rather than bytes adjacent to buf — the fat-handle rendition of the
// layout, since the literal C in-band header is explicitly non-portable.
//
// buf holds a zeroed default slot followed by the elements themselves:
// buf[0:elemSize] is the default slot, buf[elemSize+i*elemSize :
// elemSize+(i+1)*elemSize] is element i.
type Array struct {
	allocator           alloc.Allocator
	elemSize, elemAlign int
	keySize             int
	idx                 index.Indexer
	buf                 []byte
	length, capacity    int
}

// New returns an empty Array with cap 0, len 0, and a Linear index. keySize
// may equal elemSize for value-indexed use — the substrate treats the
// whole element as the key with no special-cased code path.
func New(allocator alloc.Allocator, elemSize, elemAlign, keySize int) *Array {
	if allocator == nil {
		allocator = alloc.Default
	}
	if elemAlign <= 0 {
		elemAlign = 1
	}
	buf := alloc.Alloc(allocator, elemSize, elemAlign)
	return &Array{
		allocator: allocator,
		elemSize:  elemSize,
		elemAlign: elemAlign,
		keySize:   keySize,
		idx:       index.Linear{},
		buf:       buf,
	}
}

// Len reports the current element count.
func (a *Array) Len() int { return a.length }

// Cap reports the current element capacity.
func (a *Array) Cap() int { return a.capacity }

// KeyAt implements index.Source: the key-sized prefix of element i.
func (a *Array) KeyAt(i int) []byte { return a.elemAt(i)[:a.keySize] }

func (a *Array) elemAt(i int) []byte {
	off := a.elemSize + i*a.elemSize
	return a.buf[off : off+a.elemSize]
}

func (a *Array) defaultSlot() []byte { return a.buf[:a.elemSize] }

// SetCap resizes the backing allocation. Growing applies a 1.5x floor so
// repeated growth amortises; an allocation failure leaves the array
// completely untouched. Shrinking below the current length clamps length
// to the new capacity.
func (a *Array) SetCap(newCap int) {
	if newCap < 0 {
		newCap = 0
	}
	if newCap > a.capacity {
		floor := a.capacity + a.capacity/2
		if newCap < floor {
			newCap = floor
		}
		if newCap < 4 {
			newCap = 4
		}
	}
	next := alloc.Alloc(a.allocator, a.elemSize+newCap*a.elemSize, a.elemAlign)
	if next == nil {
		return
	}
	copy(next[:a.elemSize], a.defaultSlot())
	keep := a.length
	if keep > newCap {
		keep = newCap
	}
	copy(next[a.elemSize:a.elemSize+keep*a.elemSize], a.buf[a.elemSize:a.elemSize+keep*a.elemSize])
	old := a.buf
	a.buf = next
	a.capacity = newCap
	if a.length > newCap {
		a.length = newCap
	}
	alloc.Free(a.allocator, old)
}

// Fit grows to at least minCap, leaving capacity untouched when it is
// already sufficient.
func (a *Array) Fit(minCap int) {
	if minCap > a.capacity {
		a.SetCap(minCap)
	}
}

// SetLen clamps newLen to capacity and writes it.
func (a *Array) SetLen(newLen int) {
	if newLen > a.capacity {
		newLen = a.capacity
	}
	if newLen < 0 {
		newLen = 0
	}
	a.length = newLen
}

// Fill grows if needed, then copies value n times starting at the current
// tail, advancing length by n. value must be elemSize bytes.
func (a *Array) Fill(value []byte, n int) {
	a.Fit(a.length + n)
	for i := 0; i < n; i++ {
		copy(a.elemAt(a.length+i), value)
	}
	a.length += n
}

// Push grows geometrically if needed, appends value, and returns its new
// index.
func (a *Array) Push(value []byte) int {
	a.Fit(a.length + 1)
	i := a.length
	copy(a.elemAt(i), value)
	a.length++
	return i
}

// At returns the raw elemSize bytes of element i, key prefix included.
// Callers that need direct positional access (e.g. the name interner's
// collision list, which is scanned by hand rather than through the
// attached index) use this instead of the keyed accessors.
func (a *Array) At(i int) []byte { return a.elemAt(i) }

// Pop decrements length if the array is non-empty.
func (a *Array) Pop() {
	if a.length > 0 {
		a.length--
	}
}

// CatN appends the first srclen elements of src, handling the case where
// growth relocates buf and src pointed inside the old buffer: the source
// offset is captured before Fit runs (while the old buffer is still live)
// and, if growth actually happened, remapped onto the new buffer. This
// uses unsafe.Pointer purely for address comparison and an offset
// computed within the array's own allocation, never arithmetic on
// unrelated memory.
func (a *Array) CatN(src []byte, srclen int) {
	aliased, offset := a.locateInBuf(src)
	oldAddr := bufAddr(a.buf)
	a.Fit(a.length + srclen)
	s := src
	if aliased && bufAddr(a.buf) != oldAddr {
		s = a.buf[offset : offset+srclen*a.elemSize]
	}
	dst := a.buf[a.elemSize+a.length*a.elemSize : a.elemSize+(a.length+srclen)*a.elemSize]
	copy(dst, s)
	a.length += srclen
}

// DelN clamps n to len-i, moves the tail down over the gap, and decrements
// length by the clamped n.
func (a *Array) DelN(i, n int) {
	if n > a.length-i {
		n = a.length - i
	}
	if n <= 0 {
		return
	}
	tailStart := a.elemSize + (i+n)*a.elemSize
	tailEnd := a.elemSize + a.length*a.elemSize
	dst := a.elemSize + i*a.elemSize
	copy(a.buf[dst:], a.buf[tailStart:tailEnd])
	a.length -= n
}

// AppendFormat formats args into the array as elemSize==1 byte elements,
// growing to fit. Unlike a C aprintf's two-pass vsnprintf-then-retry dance,
// fmt.Appendf already reports exactly how many bytes it wrote in one pass,
// so this grows via a heuristic estimate, formats once, and grows again to
// the exact size only if the estimate undershot. It returns the number of
// bytes appended.
func (a *Array) AppendFormat(format string, args ...any) int {
	a.Fit(a.length + len(format) + 16)
	formatted := fmt.Appendf(nil, format, args...)
	a.Fit(a.length + len(formatted))
	dst := a.buf[a.elemSize+a.length*a.elemSize : a.elemSize+(a.length+len(formatted))*a.elemSize]
	copy(dst, formatted)
	a.length += len(formatted)
	return len(formatted)
}

// Free releases the attached index, then the backing allocation.
func (a *Array) Free() {
	a.idx.Free()
	alloc.Free(a.allocator, a.buf)
	a.buf = nil
	a.length, a.capacity = 0, 0
}

// GetI delegates to the attached index, returning the found element index
// or Len() on a miss.
func (a *Array) GetI(key []byte) int {
	return a.idx.Get(a, key)
}

// GetP returns a pointer to the value tail of key's element (the bytes
// after the key-sized prefix), or nil on a miss.
func (a *Array) GetP(key []byte) []byte {
	i := a.GetI(key)
	if i == a.length {
		return nil
	}
	return a.elemAt(i)[a.keySize:]
}

// Get is the infallible read: on a miss it returns the value tail of the
// zeroed default slot instead of nil.
func (a *Array) Get(key []byte) []byte {
	i := a.GetI(key)
	if i == a.length {
		return a.defaultSlot()[a.keySize:]
	}
	return a.elemAt(i)[a.keySize:]
}

// Put inserts or updates kv (a key-sized prefix followed by the value
// bytes), auto-upgrading the index from Linear to a fresh Hash once
// length reaches hashUpgradeThreshold, and returns the element's index.
func (a *Array) Put(kv []byte) int {
	a.maybeUpgradeIndex()
	key := kv[:a.keySize]
	oldLen := a.length
	i := a.idx.Put(a, key)
	if i == oldLen {
		a.Fit(oldLen + 1)
		a.length = oldLen + 1
	}
	copy(a.elemAt(i), kv)
	return i
}

func (a *Array) maybeUpgradeIndex() {
	// length is checked against threshold-1: a Put about to become the
	// 32nd element must already see the upgraded index by the time it
	// returns, not on the call after.
	if a.length < hashUpgradeThreshold-1 {
		return
	}
	if _, isLinear := a.idx.(index.Linear); !isLinear {
		return
	}
	fresh := index.NewHash(a.allocator)
	for i := 0; i < a.length; i++ {
		fresh.Set(a, a.KeyAt(i), i)
	}
	a.idx.Free()
	a.idx = fresh
}

// Del removes key's element, swapping the last element into its place and
// notifying the index of the move, then decrements length. It returns the
// removed element's original index, or Len() on a miss.
func (a *Array) Del(key []byte) int {
	i := a.idx.Del(a, key)
	if i == a.length {
		return i
	}
	last := a.length - 1
	if i != last {
		lastKey := append([]byte(nil), a.KeyAt(last)...)
		copy(a.elemAt(i), a.elemAt(last))
		a.idx.Set(a, lastKey, i)
	}
	a.length--
	return i
}

// SetIndex frees the current index, attaches newIdx, and rebuilds it by
// calling Set for every existing element.
func (a *Array) SetIndex(newIdx index.Indexer) {
	a.idx.Free()
	a.idx = newIdx
	for i := 0; i < a.length; i++ {
		a.idx.Set(a, a.KeyAt(i), i)
	}
}

// locateInBuf reports whether src's backing array lies within a's current
// buf, and if so its byte offset — used only by CatN to detect aliasing
// before a relocating Fit call.
func (a *Array) locateInBuf(src []byte) (aliased bool, offset int) {
	if len(src) == 0 || len(a.buf) == 0 {
		return false, 0
	}
	bufStart := uintptr(unsafe.Pointer(&a.buf[0]))
	bufEnd := bufStart + uintptr(len(a.buf))
	srcStart := uintptr(unsafe.Pointer(&src[0]))
	if srcStart >= bufStart && srcStart < bufEnd {
		return true, int(srcStart - bufStart)
	}
	return false, 0
}

// bufAddr returns a stable identity value for buf's backing array, used
// only for equality comparison across a relocating SetCap — never
// dereferenced or offset outside buf's own bounds.
func bufAddr(buf []byte) uintptr {
	if len(buf) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(&buf[0]))
}

var _ index.Source = (*Array)(nil)
