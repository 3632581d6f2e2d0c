package qubit

// ControlState classifies how a qubit currently participates in a
// ControlSet. Both is a transient, degenerate state only reachable
// through the builder's raw Control/Decontrol calls; emission paths
// keep ones and zeros disjoint.
type ControlState int

const (
	ControlNone ControlState = iota
	ControlOne
	ControlZero
	ControlBoth
)

// ControlSet pairs two disjoint roles over the same address space: ones
// (trigger on |1>) and zeros (trigger on |0>).
type ControlSet struct {
	ones  Set
	zeros Set
}

// NewControlSet returns an empty control set.
func NewControlSet() ControlSet { return ControlSet{ones: NewSet(), zeros: NewSet()} }

// Ones returns the positive-control set.
func (c ControlSet) Ones() Set { return c.ones }

// Zeros returns the negative-control set.
func (c ControlSet) Zeros() Set { return c.zeros }

// IsEmpty reports whether neither role holds any address.
func (c ControlSet) IsEmpty() bool { return c.ones.Len() == 0 && c.zeros.Len() == 0 }

// State reports how addr currently participates.
func (c ControlSet) State(addr Addr) ControlState {
	one := c.ones.Contains(addr)
	zero := c.zeros.Contains(addr)
	switch {
	case one && zero:
		return ControlBoth
	case one:
		return ControlOne
	case zero:
		return ControlZero
	default:
		return ControlNone
	}
}

// Contains reports whether addr plays any control role.
func (c ControlSet) Contains(addr Addr) bool {
	return c.ones.Contains(addr) || c.zeros.Contains(addr)
}

// With adds addr to the ones role if positive is true, else to zeros.
func (c ControlSet) With(addr Addr, positive bool) ControlSet {
	if positive {
		c.ones = c.ones.Union(NewSet(addr))
	} else {
		c.zeros = c.zeros.Union(NewSet(addr))
	}
	return c
}

// Without removes addr from both roles.
func (c ControlSet) Without(addr Addr) ControlSet {
	gone := NewSet(addr)
	c.ones = c.ones.Difference(gone)
	c.zeros = c.zeros.Difference(gone)
	return c
}

// All returns the union of both roles, the set of every qubit playing
// some control role regardless of polarity.
func (c ControlSet) All() Set { return c.ones.Union(c.zeros) }
