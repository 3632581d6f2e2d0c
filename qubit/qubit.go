// Package qubit provides the address types shared by the rest of the
// lowering pipeline: a single qubit address, ordered accessors over a
// sequence of addresses, and the unordered sets used for control roles.
package qubit

import "fmt"

// Addr identifies a position in the quantum register. Never negative.
type Addr uint32

// Accessor is an ordered, duplicate-free sequence of addresses. Order is
// significant (it determines target/control role by position) and is
// preserved through Append/Slice.
type Accessor struct {
	addrs []Addr
}

// New builds an Accessor from a single address.
func New(a Addr) Accessor { return Accessor{addrs: []Addr{a}} }

// Range builds an Accessor over the inclusive range [lo, hi].
func Range(lo, hi Addr) Accessor {
	if hi < lo {
		panic(fmt.Sprintf("qubit: Range(%d, %d): hi < lo", lo, hi))
	}
	out := make([]Addr, 0, hi-lo+1)
	for a := lo; a <= hi; a++ {
		out = append(out, a)
	}
	return Accessor{addrs: out}
}

// FromSlice builds an Accessor from an explicit, already-ordered list of
// addresses, rejecting duplicates.
func FromSlice(addrs []Addr) Accessor {
	acc := Accessor{}
	for _, a := range addrs {
		acc = acc.Append(a)
	}
	return acc
}

// Len reports the number of addresses held.
func (a Accessor) Len() int { return len(a.addrs) }

// Append returns a new Accessor with addr appended, panicking on a
// duplicate insertion (accessors never carry repeated addresses).
func (a Accessor) Append(addr Addr) Accessor {
	for _, existing := range a.addrs {
		if existing == addr {
			panic(fmt.Sprintf("qubit: duplicate address %d in accessor", addr))
		}
	}
	next := make([]Addr, len(a.addrs)+1)
	copy(next, a.addrs)
	next[len(a.addrs)] = addr
	return Accessor{addrs: next}
}

// Concat returns a new Accessor with b's addresses appended after a's.
func (a Accessor) Concat(b Accessor) Accessor {
	out := a
	for _, addr := range b.addrs {
		out = out.Append(addr)
	}
	return out
}

// At returns the address at index i; negative i indexes from the end
// (-1 is the last element), matching the spec's "negative-from-end"
// indexing rule.
func (a Accessor) At(i int) Addr {
	if i < 0 {
		i += len(a.addrs)
	}
	return a.addrs[i]
}

// Slice returns a strided sub-accessor [lo:hi:step), step defaulting to 1
// when 0 is passed.
func (a Accessor) Slice(lo, hi, step int) Accessor {
	if step == 0 {
		step = 1
	}
	out := Accessor{}
	if step > 0 {
		for i := lo; i < hi; i += step {
			out = out.Append(a.addrs[i])
		}
	} else {
		for i := lo; i > hi; i += step {
			out = out.Append(a.addrs[i])
		}
	}
	return out
}

// Addrs returns the underlying addresses in order. Callers must not
// mutate the returned slice.
func (a Accessor) Addrs() []Addr { return a.addrs }

// Equal compares two accessors element-wise, in order.
func (a Accessor) Equal(b Accessor) bool {
	if len(a.addrs) != len(b.addrs) {
		return false
	}
	for i, v := range a.addrs {
		if b.addrs[i] != v {
			return false
		}
	}
	return true
}

func (a Accessor) String() string { return fmt.Sprintf("%v", a.addrs) }
