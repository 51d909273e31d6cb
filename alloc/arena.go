package alloc

const (
	// arenaMinBlockSize is the smallest block size an Arena will ever use.
	arenaMinBlockSize = 8

	// arenaMinBlockAlign is the minimum alignment requested for every block
	// taken from the parent; an allocation asking for a larger alignment
	// raises it for the block it triggers.
	arenaMinBlockAlign = 8
)

// Arena is a growing-block allocator that hands out from the current block
// and frees every block at once via FreeAll. Individual allocations cannot
// be freed.
type Arena struct {
	parent    Allocator
	blockSize int
	blocks    [][]byte
	next, end int // cursor within the current (last) block
}

// NewArena creates an Arena drawing blocks from parent, with an initial
// block size of minBlockSize (raised to arenaMinBlockSize if smaller). A nil
// parent uses Default.
func NewArena(parent Allocator, minBlockSize int) *Arena {
	if parent == nil {
		parent = Default
	}
	if minBlockSize < arenaMinBlockSize {
		minBlockSize = arenaMinBlockSize
	}
	return &Arena{parent: parent, blockSize: minBlockSize}
}

// Alloc satisfies size bytes aligned to align, growing the arena if the
// current block cannot fit the request. Returns nil, leaving the arena
// state unchanged, if the parent allocator cannot supply a new block.
func (a *Arena) Alloc(size, align int) []byte {
	if size <= 0 {
		return nil
	}
	if len(a.blocks) > 0 {
		block := a.blocks[len(a.blocks)-1]
		start := AlignUp(a.next, align)
		if end := start + size; end <= a.end {
			a.next = end
			return block[start:end:end]
		}
	}
	return a.growAndAlloc(size, align)
}

// growAndAlloc requests a new block large enough for size and carves the
// allocation from its start. On parent failure it returns nil without
// mutating arena state.
func (a *Arena) growAndAlloc(size, align int) []byte {
	newBlockSize := a.blockSize
	if len(a.blocks) > 0 {
		// blockSize doubles on every growth after the first block.
		newBlockSize *= 2
	}
	if size > newBlockSize {
		newBlockSize = size
	}
	blockAlign := align
	if blockAlign < arenaMinBlockAlign {
		blockAlign = arenaMinBlockAlign
	}

	block := a.parent.Alloc(newBlockSize, blockAlign)
	if block == nil {
		return nil
	}

	a.blockSize = newBlockSize
	a.blocks = append(a.blocks, block)
	a.next = size
	a.end = len(block)
	return block[0:size:size]
}

// Free is a no-op: Arena frees only in bulk via FreeAll.
func (a *Arena) Free([]byte) {}

// FreeAll returns every block to the parent allocator and clears the
// arena's state, making it usable again from a fresh block on next Alloc.
func (a *Arena) FreeAll() {
	for _, block := range a.blocks {
		a.parent.Free(block)
	}
	a.blocks = nil
	a.next, a.end = 0, 0
	a.blockSize = arenaMinBlockSize
}

// Blocks reports the number of blocks currently held, for tests and
// diagnostics.
func (a *Arena) Blocks() int {
	return len(a.blocks)
}

var _ Allocator = (*Arena)(nil)
