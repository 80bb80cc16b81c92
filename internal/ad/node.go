package ad

// Node is one recorded elementary operation: the forward-computed value
// and the adjoint (∂output/∂this) accumulated during the reverse sweep.
// Leaves carry a nil op. Nodes are owned by the tape's arena; a node is
// valid until the episode that recorded it is rewound or reset.
type Node struct {
	value   float64
	adjoint float64
	op      Op
}

// Op propagates a node's accumulated adjoint to its operands.
//
// Implementations hold refs to their operand nodes (always strictly
// earlier on the tape) plus whatever cached values their partial
// derivative formula needs. Operand values are immutable once recorded,
// so Chain may read them back off the tape.
type Op interface {
	// Chain adds adj * ∂value/∂operand into each operand's adjoint.
	Chain(t *Tape, adj float64)
}
