package headers

import "sync/atomic"

// Header is a single header occurrence. Occurrences whose names are equal
// under ASCII case folding are linked into a chain: the table entry owns
// the head, and every node exclusively owns its successor. Names along a
// chain may differ in casing but never under namesEqual.
//
// The link is an atomic pointer so a snapshot walk can overlap a tail
// append without tearing; whether the appended node is observed by an
// in-flight walk is unspecified. Header is exported so the raw iteration
// view can hand nodes to the owning header-map layer; callers above that
// layer treat the chain link as opaque.
type Header struct {
	Name  string
	Value string

	next atomic.Pointer[Header]
}

// Next returns the successor occurrence in the chain, or nil at the tail.
func (h *Header) Next() *Header {
	return h.next.Load()
}

// append attaches h at the tail of the chain rooted at head. h must be a
// freshly constructed node with a nil link; attaching strictly at the tail
// and never relinking an existing node keeps chains acyclic and finite, so
// traversal always terminates.
func (head *Header) append(h *Header) {
	tail := head
	for {
		n := tail.next.Load()
		if n == nil {
			break
		}
		tail = n
	}
	tail.next.Store(h)
}

// values collects every value in the chain, in insertion order.
func (head *Header) values() []string {
	if head.Next() == nil {
		return []string{head.Value}
	}
	var out []string
	for h := head; h != nil; h = h.Next() {
		out = append(out, h.Value)
	}
	return out
}

// collectNames appends to acc the names in the chain not already present
// in acc under case folding. The dedup is a linear scan against acc rather
// than a set: chains are almost always length 1, which makes the scan O(1)
// in the common case with no auxiliary allocation.
func (head *Header) collectNames(acc []string) []string {
	for h := head; h != nil; h = h.Next() {
		seen := false
		for _, name := range acc {
			if namesEqual(name, h.Name) {
				seen = true
				break
			}
		}
		if !seen {
			acc = append(acc, h.Name)
		}
	}
	return acc
}
