package headers

import "iter"

const (
	// minBuckets is the initial bucket count; always a power of two so
	// bucket selection is a mask of the hash.
	minBuckets = 16
	// loadNum/loadDen: grow when size exceeds 3/4 of the bucket count.
	loadNum = 3
	loadDen = 4
)

// entry is one bucket slot. The representative casing of the name is
// head.Name as first inserted; hash caches hashName of that name so growth
// never rehashes and collision scans can reject cheaply.
type entry struct {
	hash uint32
	head *Header
	next *entry
}

// HeadersMap is a case-insensitive, order-preserving, multi-valued map
// specialized for HTTP header storage. Lookups by any casing of a name
// resolve to the same entry; multiple values per name are kept on a singly
// linked chain in insertion order. Size is the number of distinct
// case-insensitive names, not the number of stored values.
//
// HeadersMap is not internally synchronized. The owning caller must
// serialize every access that touches table structure: Add, Set,
// RemoveAll, the lookups, and the snapshot step performed when one of the
// iterator factories is called. Walking an already returned iterator needs
// no synchronization. HeaderMap is the synchronized owner intended for
// shared use.
type HeadersMap struct {
	buckets []*entry
	size    int
}

// NewHeadersMap returns an empty map.
func NewHeadersMap() *HeadersMap {
	return &HeadersMap{buckets: make([]*entry, minBuckets)}
}

// Length returns the number of distinct case-insensitive names stored.
func (m *HeadersMap) Length() int {
	return m.size
}

func (m *HeadersMap) findEntry(hash uint32, name string) *entry {
	for e := m.buckets[hash&uint32(len(m.buckets)-1)]; e != nil; e = e.next {
		if e.hash == hash && namesEqual(e.head.Name, name) {
			return e
		}
	}
	return nil
}

// GetFirstOrEmpty returns the first value recorded for name, or the empty
// string when the name is absent. Use GetFirst to distinguish an absent
// name from an empty value.
func (m *HeadersMap) GetFirstOrEmpty(name string) string {
	v, _ := m.GetFirst(name)
	return v
}

// GetFirst returns the first value recorded for name and whether the name
// is present.
func (m *HeadersMap) GetFirst(name string) (string, bool) {
	if e := m.findEntry(hashName(name), name); e != nil {
		return e.head.Value, true
	}
	return "", false
}

// GetAll returns every value recorded for name in insertion order, or nil
// when the name is absent.
func (m *HeadersMap) GetAll(name string) []string {
	if e := m.findEntry(hashName(name), name); e != nil {
		return e.head.values()
	}
	return nil
}

// Add records one more occurrence of name. If the name is already present
// under any casing, the new node is appended at the tail of its chain and
// the entry keeps the casing it was first inserted with; otherwise a new
// entry is created with name as the representative casing.
func (m *HeadersMap) Add(name, value string) {
	h := hashName(name)
	if e := m.findEntry(h, name); e != nil {
		e.head.append(&Header{Name: name, Value: value})
		return
	}
	m.insert(h, &Header{Name: name, Value: value})
}

// Set replaces every occurrence of name with the single pair (name,
// value), discarding any prior chain for that name. The entry takes on
// name's casing.
func (m *HeadersMap) Set(name, value string) {
	h := hashName(name)
	if e := m.findEntry(h, name); e != nil {
		e.head = &Header{Name: name, Value: value}
		return
	}
	m.insert(h, &Header{Name: name, Value: value})
}

// RemoveAll deletes every occurrence of name. Removing an absent name is a
// no-op.
func (m *HeadersMap) RemoveAll(name string) {
	h := hashName(name)
	i := h & uint32(len(m.buckets)-1)
	var prev *entry
	for e := m.buckets[i]; e != nil; prev, e = e, e.next {
		if e.hash == h && namesEqual(e.head.Name, name) {
			if prev == nil {
				m.buckets[i] = e.next
			} else {
				prev.next = e.next
			}
			m.size--
			return
		}
	}
}

func (m *HeadersMap) insert(hash uint32, head *Header) {
	if m.size*loadDen >= len(m.buckets)*loadNum {
		m.grow()
	}
	i := hash & uint32(len(m.buckets)-1)
	m.buckets[i] = &entry{hash: hash, head: head, next: m.buckets[i]}
	m.size++
}

func (m *HeadersMap) grow() {
	old := m.buckets
	m.buckets = make([]*entry, len(old)*2)
	for _, e := range old {
		for e != nil {
			next := e.next
			i := e.hash & uint32(len(m.buckets)-1)
			e.next = m.buckets[i]
			m.buckets[i] = e
			e = next
		}
	}
}

// snapshot copies the chain-head pointers into a private slice, in bucket
// order. The copy must run under the same serialization as the mutating
// operations; once taken it is immune to entries being inserted or removed
// afterwards, so the captured chains can be walked without holding any
// lock. A node appended to a chain after the snapshot may or may not be
// observed by that walk. Built with append so it can never be undersized
// relative to the live entry count.
func (m *HeadersMap) snapshot() []*Header {
	heads := make([]*Header, 0, m.size)
	for _, e := range m.buckets {
		for ; e != nil; e = e.next {
			heads = append(heads, e.head)
		}
	}
	return heads
}

// Entries returns a single-pass sequence yielding each chain head exactly
// once, in bucket order. This is the raw view the other two iteration
// forms are built on. The snapshot is taken when Entries is called, not
// when the sequence is consumed; each call starts from a fresh snapshot.
func (m *HeadersMap) Entries() iter.Seq[*Header] {
	heads := m.snapshot()
	return func(yield func(*Header) bool) {
		for _, h := range heads {
			if !yield(h) {
				return
			}
		}
	}
}

// All returns a single-pass sequence yielding every stored occurrence as a
// *Header node: bucket order across names, insertion order within a name.
func (m *HeadersMap) All() iter.Seq[*Header] {
	heads := m.snapshot()
	return func(yield func(*Header) bool) {
		for _, head := range heads {
			for h := head; h != nil; h = h.Next() {
				if !yield(h) {
					return
				}
			}
		}
	}
}

// Flatten returns a single-pass sequence of (name, value) pairs, one per
// stored occurrence, in the same order as All. Names are yielded with the
// casing they were inserted with.
func (m *HeadersMap) Flatten() iter.Seq2[string, string] {
	heads := m.snapshot()
	return func(yield func(string, string) bool) {
		for _, head := range heads {
			for h := head; h != nil; h = h.Next() {
				if !yield(h.Name, h.Value) {
					return
				}
			}
		}
	}
}

// Names returns a single-pass sequence of distinct case-insensitive names
// in the order first observed during traversal. A name that occurs several
// times, under one casing or several, is yielded once, with the casing of
// its first occurrence.
func (m *HeadersMap) Names() iter.Seq[string] {
	heads := m.snapshot()
	return func(yield func(string) bool) {
		for _, head := range heads {
			if head.Next() == nil {
				// Length-1 chain, the overwhelmingly common case: no
				// accumulator needed.
				if !yield(head.Name) {
					return
				}
				continue
			}
			for _, name := range head.collectNames(nil) {
				if !yield(name) {
					return
				}
			}
		}
	}
}
