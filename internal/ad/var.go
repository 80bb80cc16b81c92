package ad

// Var is a lightweight, copyable handle pairing a numeric value with the
// tape node that produced it. Many Vars may reference the same node; the
// node is the unique record of provenance. Vars do not own nodes — the
// tape's arena does — so a Var is valid only until the episode that
// recorded it is rewound or reset.
type Var struct {
	tape *Tape
	ref  Ref
}

// Value extracts the plain numeric value, dropping provenance.
func (v Var) Value() float64 {
	return v.tape.ValueOf(v.ref)
}

// Ref returns the tape position of the node backing v.
func (v Var) Ref() Ref {
	return v.ref
}

// Tape returns the tape v was recorded on.
func (v Var) Tape() *Tape {
	return v.tape
}

// join checks that both operands were recorded on the same tape.
// Mixing episodes would break the tape's topological order, so it is an
// invariant violation, not a recoverable error.
func (v Var) join(w Var) *Tape {
	if v.tape != w.tape {
		panic("ad: operands recorded on different tapes")
	}
	return v.tape
}
