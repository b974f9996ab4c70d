package headers

import (
	"io"
	"iter"
	"sync"

	"github.com/valyala/bytebufferpool"
)

// HeaderMap is the synchronized owner of a HeadersMap, safe for concurrent
// use. A mutex serializes every operation that touches table structure;
// for the iteration forms the lock is held only for the snapshot step, and
// the walk of the captured chains runs lock-free. That keeps lock hold
// time at "copy the head-pointer slice", not "copy all header data".
//
// The walk of a returned sequence is best-effort with respect to values
// added concurrently for a name the snapshot already contains: such a
// value may or may not be observed, but the walk never faults, skips out
// of bounds, or loops forever.
type HeaderMap struct {
	mu         sync.Mutex
	underlying *HeadersMap
	log        LogBackend
}

// Option configures a HeaderMap.
type Option func(*HeaderMap)

// WithLogBackend sets the logger used for Debug-level notes on structural
// mutation. The default is a no-op logger.
func WithLogBackend(log LogBackend) Option {
	return func(hm *HeaderMap) {
		hm.log = log
	}
}

// NewHeaderMap returns an empty, synchronized header map.
func NewHeaderMap(opts ...Option) *HeaderMap {
	hm := &HeaderMap{
		underlying: NewHeadersMap(),
		log:        &noopLogger{},
	}
	for _, opt := range opts {
		opt(hm)
	}
	return hm
}

// Get returns the first value recorded for name and whether the name is
// present, under any casing.
func (hm *HeaderMap) Get(name string) (string, bool) {
	hm.mu.Lock()
	defer hm.mu.Unlock()
	return hm.underlying.GetFirst(name)
}

// GetAll returns every value recorded for name in insertion order, or nil
// when the name is absent.
func (hm *HeaderMap) GetAll(name string) []string {
	hm.mu.Lock()
	defer hm.mu.Unlock()
	return hm.underlying.GetAll(name)
}

// Add records one more occurrence of name, preserving any values already
// recorded for it.
func (hm *HeaderMap) Add(name, value string) {
	hm.mu.Lock()
	hm.underlying.Add(name, value)
	hm.mu.Unlock()
	hm.log.Debug("added header", "name", name)
}

// Set replaces every occurrence of name with the single given value.
func (hm *HeaderMap) Set(name, value string) {
	hm.mu.Lock()
	hm.underlying.Set(name, value)
	hm.mu.Unlock()
	hm.log.Debug("set header", "name", name)
}

// Del removes every occurrence of name. Deleting an absent name is a
// no-op.
func (hm *HeaderMap) Del(name string) {
	hm.mu.Lock()
	hm.underlying.RemoveAll(name)
	hm.mu.Unlock()
	hm.log.Debug("removed header", "name", name)
}

// Length returns the number of distinct case-insensitive names stored.
func (hm *HeaderMap) Length() int {
	hm.mu.Lock()
	defer hm.mu.Unlock()
	return hm.underlying.Length()
}

// Names returns a single-pass sequence of distinct names; the snapshot is
// taken under the lock before Names returns.
func (hm *HeaderMap) Names() iter.Seq[string] {
	hm.mu.Lock()
	defer hm.mu.Unlock()
	return hm.underlying.Names()
}

// Flatten returns a single-pass sequence of (name, value) pairs, one per
// stored occurrence; the snapshot is taken under the lock before Flatten
// returns.
func (hm *HeaderMap) Flatten() iter.Seq2[string, string] {
	hm.mu.Lock()
	defer hm.mu.Unlock()
	return hm.underlying.Flatten()
}

// All returns a single-pass sequence of every stored occurrence as a
// *Header node; the snapshot is taken under the lock before All returns.
func (hm *HeaderMap) All() iter.Seq[*Header] {
	hm.mu.Lock()
	defer hm.mu.Unlock()
	return hm.underlying.All()
}

// Write renders the map as "Name: value" lines terminated by CRLF, one per
// stored occurrence, and writes the result to w in a single call. Names
// and values are written as stored, with no validation or folding: this is
// a rendering for tooling and tests, not an HTTP message serializer.
func (hm *HeaderMap) Write(w io.Writer) (int, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	for name, value := range hm.Flatten() {
		buf.WriteString(name)
		buf.WriteString(": ")
		buf.WriteString(value)
		buf.WriteString("\r\n")
	}

	return w.Write(buf.B)
}
