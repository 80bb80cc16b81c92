package ad

import "math/bits"

// Ref identifies a node by its append position on the tape.
// Refs stay valid until the episode that recorded them is rewound or reset.
type Ref int32

const (
	minBlockBits = 10
	minBlock     = 1 << minBlockBits // nodes in the first block
)

// arena is a bump allocator for nodes. Nodes live in a chain of blocks
// whose capacities double (1024, 2048, 4096, ...), so allocation cost is
// amortized and reset touches blocks, never individual nodes. Blocks are
// retained across resets and recycled by the next episode.
type arena struct {
	blocks [][]Node
	cur    int // block receiving the next allocation
	len    int // nodes currently allocated
	limit  int // hard node ceiling; 0 means unlimited
}

// alloc returns a zeroed node and its ref.
// Exceeding the node ceiling is fatal: a half-built tape cannot be
// reverse-traversed, so there is nothing to recover to.
func (a *arena) alloc() (*Node, Ref) {
	if a.limit > 0 && a.len >= a.limit {
		panic("ad: tape node limit exceeded")
	}
	for a.cur < len(a.blocks) && len(a.blocks[a.cur]) == cap(a.blocks[a.cur]) {
		a.cur++
	}
	if a.cur == len(a.blocks) {
		a.blocks = append(a.blocks, make([]Node, 0, minBlock<<len(a.blocks)))
	}
	blk := append(a.blocks[a.cur], Node{})
	a.blocks[a.cur] = blk
	r := Ref(a.len)
	a.len++
	return &blk[len(blk)-1], r
}

// node returns the node at r.
//
// Block b starts at global index (2^b - 1) * minBlock, so r + minBlock has
// its top bit at position b + minBlockBits and the block and offset fall
// out of the bit length directly.
func (a *arena) node(r Ref) *Node {
	g := uint64(r) + minBlock
	n := bits.Len64(g)
	return &a.blocks[n-minBlockBits-1][g-1<<(n-1)]
}

// truncate discards every node at index n and above. O(blocks).
func (a *arena) truncate(n int) {
	rem := n
	for b := range a.blocks {
		used := min(rem, cap(a.blocks[b]))
		a.blocks[b] = a.blocks[b][:used]
		rem -= used
	}
	a.cur = 0
	a.len = n
}

// reset discards every node, keeping the blocks for reuse. O(blocks).
func (a *arena) reset() {
	a.truncate(0)
}
