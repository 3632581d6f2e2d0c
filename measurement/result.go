// Package measurement defines the histogram result type returned by a
// backend's Exec call and threaded back onto the program context.
package measurement

import "sort"

// Entry is one distinct measured value and how many shots produced it.
type Entry struct {
	Value uint64
	Count uint64
}

// Result is a measurement histogram: total shots plus a deduplicated,
// value-sorted, zero-count-free entry list.
type Result struct {
	Shots   uint64
	Entries []Entry
}

// NewResult builds a Result from raw per-shot counts, deduplicating by
// value, dropping zero-count entries, and sorting by value ascending.
func NewResult(shots uint64, counts map[uint64]uint64) Result {
	entries := make([]Entry, 0, len(counts))
	for v, c := range counts {
		if c == 0 {
			continue
		}
		entries = append(entries, Entry{Value: v, Count: c})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Value < entries[j].Value })
	return Result{Shots: shots, Entries: entries}
}

// CountOf returns the count recorded for value, or 0 if absent.
func (r Result) CountOf(value uint64) uint64 {
	for _, e := range r.Entries {
		if e.Value == value {
			return e.Count
		}
	}
	return 0
}
