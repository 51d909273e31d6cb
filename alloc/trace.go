package alloc

import (
	"encoding/binary"
	"time"
	"unsafe"
)

// EventKind distinguishes the two events Trace records.
type EventKind uint8

const (
	EventAlloc EventKind = iota
	EventFree
)

// TraceEvent is one recorded alloc or free.
type TraceEvent struct {
	Kind      EventKind
	Timestamp int64 // wall-clock seconds
	Addr      uintptr
	Size      int // meaningful only for EventAlloc
	Align     int // meaningful only for EventAlloc
}

// traceEventSize is the fixed on-the-wire width of one TraceEvent record:
// kind(1, padded to 8) + timestamp(8) + addr(8) + size(8) + align(8).
const traceEventSize = 40

// Trace wraps a parent Allocator and records a timestamped event for every
// delegated Alloc/Free. The event log is a raw byte buffer grown through a
// separate allocator passed to NewTrace, distinct from the one being
// traced, to avoid the log's own growth allocations feeding back into the
// trace.
type Trace struct {
	parent Allocator
	events Allocator
	buf    []byte
	length int // number of recorded events
}

// NewTrace wraps parent, recording events into a log grown via events. A nil
// events allocator uses Default.
func NewTrace(parent, events Allocator) *Trace {
	if parent == nil {
		parent = Default
	}
	if events == nil {
		events = Default
	}
	return &Trace{parent: parent, events: events}
}

func (t *Trace) Alloc(size, align int) []byte {
	buf := t.parent.Alloc(size, align)
	if buf == nil {
		return nil
	}
	t.record(TraceEvent{
		Kind:      EventAlloc,
		Timestamp: time.Now().Unix(),
		Addr:      addrOf(buf),
		Size:      size,
		Align:     align,
	})
	return buf
}

func (t *Trace) Free(buf []byte) {
	if buf == nil {
		return
	}
	t.record(TraceEvent{
		Kind:      EventFree,
		Timestamp: time.Now().Unix(),
		Addr:      addrOf(buf),
	})
	t.parent.Free(buf)
}

// record appends ev to the byte log, growing geometrically through
// t.events when the current buffer is full.
func (t *Trace) record(ev TraceEvent) {
	capacity := len(t.buf) / traceEventSize
	if t.length == capacity {
		newCap := capacity * 2
		if newCap < 8 {
			newCap = 8
		}
		next := Alloc(t.events, newCap*traceEventSize, 8)
		copy(next, t.buf[:t.length*traceEventSize])
		Free(t.events, t.buf)
		t.buf = next
	}
	off := t.length * traceEventSize
	rec := t.buf[off : off+traceEventSize]
	rec[0] = byte(ev.Kind)
	binary.LittleEndian.PutUint64(rec[8:16], uint64(ev.Timestamp))
	binary.LittleEndian.PutUint64(rec[16:24], uint64(ev.Addr))
	binary.LittleEndian.PutUint64(rec[24:32], uint64(ev.Size))
	binary.LittleEndian.PutUint64(rec[32:40], uint64(ev.Align))
	t.length++
}

// Events decodes and returns the recorded event log.
func (t *Trace) Events() []TraceEvent {
	out := make([]TraceEvent, t.length)
	for i := range out {
		off := i * traceEventSize
		rec := t.buf[off : off+traceEventSize]
		out[i] = TraceEvent{
			Kind:      EventKind(rec[0]),
			Timestamp: int64(binary.LittleEndian.Uint64(rec[8:16])),
			Addr:      uintptr(binary.LittleEndian.Uint64(rec[16:24])),
			Size:      int(binary.LittleEndian.Uint64(rec[24:32])),
			Align:     int(binary.LittleEndian.Uint64(rec[32:40])),
		}
	}
	return out
}

// Len reports how many events have been recorded.
func (t *Trace) Len() int {
	return t.length
}

// addrOf returns a stable identity value for buf's backing array, used only
// for comparison/printing in the trace log — never dereferenced.
func addrOf(buf []byte) uintptr {
	if len(buf) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(&buf[0]))
}

var _ Allocator = (*Trace)(nil)
