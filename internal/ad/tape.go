// Package ad implements reverse-mode automatic differentiation over a
// gradient tape.
//
// Arithmetic on Var values does double duty: it computes the forward
// result and, as a side effect, records the operation as a node on the
// tape. The recording is the crux of correctness — Gradient replays the
// tape once in reverse append order to accumulate exact derivatives.
//
// A Tape is one evaluation episode. It is owned by the caller and is not
// safe for concurrent use; parallel evaluators give each worker its own
// tape (see internal/parallel).
package ad

// Tape is an append-only record of the operations performed during one
// differentiable evaluation. Append order is a topological order of the
// computation DAG: a node is recorded only after every node it references,
// so a single backward sweep propagates every adjoint exactly once.
//
// Nodes are bulk-owned by an arena; Reset reclaims the whole episode in
// O(blocks), and Mark/Rewind scope a nested sub-episode without disturbing
// the enclosing one.
type Tape struct {
	arena arena
}

// New creates an empty tape with no node ceiling.
func New() *Tape {
	return &Tape{}
}

// NewWithLimit creates an empty tape that panics once maxNodes nodes are
// live. Running out of tape mid-episode is a fatal resource-exhaustion
// condition, not a recoverable error: a half-built tape must never be
// reverse-traversed.
func NewWithLimit(maxNodes int) *Tape {
	return &Tape{arena: arena{limit: maxNodes}}
}

// Len returns the number of nodes currently recorded.
func (t *Tape) Len() int {
	return t.arena.len
}

// Var records a leaf node with the given value and no provenance.
// Leaves have zero adjoint and no chain step; a leaf becomes an
// independent variable of the gradient by whoever keeps its ref
// (Gradient does this for the inputs it wraps).
func (t *Tape) Var(x float64) Var {
	n, r := t.arena.alloc()
	n.value = x
	return Var{tape: t, ref: r}
}

// Push records a node with the given forward value and chain step,
// returning a Var for it. This is the hook batched operations (matrix
// products, reductions) are built on.
func (t *Tape) Push(value float64, op Op) Var {
	n, r := t.arena.alloc()
	n.value = value
	n.op = op
	return Var{tape: t, ref: r}
}

// ValueOf returns the recorded forward value of the node at r.
func (t *Tape) ValueOf(r Ref) float64 {
	return t.arena.node(r).value
}

// AdjointOf returns the adjoint accumulated so far for the node at r.
func (t *Tape) AdjointOf(r Ref) float64 {
	return t.arena.node(r).adjoint
}

// AddAdjoint accumulates d into the adjoint of the node at r.
// Called from Op.Chain implementations during the reverse sweep.
func (t *Tape) AddAdjoint(r Ref, d float64) {
	t.arena.node(r).adjoint += d
}

// Mark returns the current tape position. Together with Rewind it scopes
// a nested episode: record from the mark, sweep, then rewind back to it,
// leaving the enclosing episode's nodes and adjoints untouched.
func (t *Tape) Mark() int {
	return t.arena.len
}

// Rewind truncates the tape back to a mark obtained from Mark,
// invalidating every Var recorded after it. O(blocks).
func (t *Tape) Rewind(mark int) {
	t.arena.truncate(mark)
}

// Reset discards the whole episode, invalidating every outstanding Var.
// Block memory is retained for the next episode. O(blocks).
func (t *Tape) Reset() {
	t.arena.reset()
}

// sweep seeds the output adjoint to 1 and walks [from, Len) in strict
// reverse append order, invoking each node's chain step exactly once.
// Reverse-of-topological order guarantees a node's adjoint is fully
// accumulated from all its consumers before it propagates to operands.
func (t *Tape) sweep(out Ref, from int) {
	t.arena.node(out).adjoint = 1
	for i := t.arena.len - 1; i >= from; i-- {
		n := t.arena.node(Ref(i))
		if n.op != nil {
			n.op.Chain(t, n.adjoint)
		}
	}
}
