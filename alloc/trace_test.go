package alloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceRecordsAllocAndFree(t *testing.T) {
	trace := NewTrace(Default, Default)

	buf := trace.Alloc(16, 8)
	require.NotNil(t, buf)
	trace.Free(buf)

	require.Equal(t, 2, trace.Len())
	events := trace.Events()
	assert.Equal(t, EventAlloc, events[0].Kind)
	assert.Equal(t, 16, events[0].Size)
	assert.Equal(t, 8, events[0].Align)
	assert.Equal(t, EventFree, events[1].Kind)
	assert.Equal(t, events[0].Addr, events[1].Addr)
}

func TestTraceLogGrowsPastInitialCapacity(t *testing.T) {
	trace := NewTrace(Default, Default)

	for i := 0; i < 50; i++ {
		trace.Alloc(8, 8)
	}
	assert.Equal(t, 50, trace.Len())

	events := trace.Events()
	assert.Len(t, events, 50)
	for _, ev := range events {
		assert.Equal(t, EventAlloc, ev.Kind)
	}
}

func TestTraceFreeOfNilIsNoop(t *testing.T) {
	trace := NewTrace(Default, Default)
	trace.Free(nil)
	assert.Equal(t, 0, trace.Len())
}
