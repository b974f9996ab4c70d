package headers

import (
	"fmt"
	"slices"
	"testing"
)

// Tests for case-insensitive lookups across every mutation path
func TestGetCaseInsensitive(t *testing.T) {
	m := NewHeadersMap()
	m.Add("Content-Type", "text/plain")

	for _, name := range []string{"Content-Type", "content-type", "CONTENT-TYPE", "cOnTeNt-tYpE"} {
		if v, ok := m.GetFirst(name); !ok || v != "text/plain" {
			t.Errorf("GetFirst(%q) = (%q, %v), want (text/plain, true)", name, v, ok)
		}
		if got := m.GetAll(name); !slices.Equal(got, []string{"text/plain"}) {
			t.Errorf("GetAll(%q) = %v, want [text/plain]", name, got)
		}
	}
}

func TestGetFirstAbsent(t *testing.T) {
	m := NewHeadersMap()

	if v, ok := m.GetFirst("Host"); ok || v != "" {
		t.Errorf("GetFirst on empty map = (%q, %v), want (\"\", false)", v, ok)
	}
	if v := m.GetFirstOrEmpty("Host"); v != "" {
		t.Errorf("GetFirstOrEmpty on empty map = %q, want \"\"", v)
	}
	if got := m.GetAll("Host"); got != nil {
		t.Errorf("GetAll on empty map = %v, want nil", got)
	}
}

func TestGetFirstOrEmptyDistinguishesNothing(t *testing.T) {
	m := NewHeadersMap()
	m.Add("X-Empty", "")

	// The empty string is a legal stored value; only GetFirst can tell it
	// apart from absence.
	if v := m.GetFirstOrEmpty("x-empty"); v != "" {
		t.Errorf("GetFirstOrEmpty(x-empty) = %q, want \"\"", v)
	}
	if _, ok := m.GetFirst("x-empty"); !ok {
		t.Error("GetFirst(x-empty) reported the name absent")
	}
}

func TestAddPreservesInsertionOrder(t *testing.T) {
	m := NewHeadersMap()
	m.Add("Accept", "text/html")
	m.Add("accept", "application/json")
	m.Add("ACCEPT", "*/*")

	got := m.GetAll("Accept")
	want := []string{"text/html", "application/json", "*/*"}
	if !slices.Equal(got, want) {
		t.Errorf("GetAll(Accept) = %v, want %v", got, want)
	}

	if v, _ := m.GetFirst("accept"); v != "text/html" {
		t.Errorf("GetFirst(accept) = %q, want text/html", v)
	}

	// Still one distinct name
	if m.Length() != 1 {
		t.Errorf("Length() = %d, want 1", m.Length())
	}
}

func TestSetDiscardsPriorValues(t *testing.T) {
	m := NewHeadersMap()
	m.Add("Cache-Control", "no-cache")
	m.Add("cache-control", "no-store")
	m.Set("CACHE-CONTROL", "max-age=60")

	got := m.GetAll("Cache-Control")
	if !slices.Equal(got, []string{"max-age=60"}) {
		t.Errorf("GetAll after Set = %v, want [max-age=60]", got)
	}
	if m.Length() != 1 {
		t.Errorf("Length() = %d, want 1", m.Length())
	}

	// Set takes on the casing it was called with
	names := slices.Collect(m.Names())
	if !slices.Equal(names, []string{"CACHE-CONTROL"}) {
		t.Errorf("Names after Set = %v, want [CACHE-CONTROL]", names)
	}
}

func TestSetOnAbsentNameInserts(t *testing.T) {
	m := NewHeadersMap()
	m.Set("Host", "example.com")

	if v, ok := m.GetFirst("host"); !ok || v != "example.com" {
		t.Errorf("GetFirst(host) = (%q, %v), want (example.com, true)", v, ok)
	}
}

func TestRemoveAll(t *testing.T) {
	m := NewHeadersMap()
	m.Add("Set-Cookie", "a=1")
	m.Add("set-cookie", "b=2")
	m.Add("Host", "example.com")

	m.RemoveAll("SET-COOKIE")

	if v, ok := m.GetFirst("Set-Cookie"); ok {
		t.Errorf("GetFirst(Set-Cookie) after RemoveAll = %q, want absent", v)
	}
	if got := m.GetAll("Set-Cookie"); len(got) != 0 {
		t.Errorf("GetAll(Set-Cookie) after RemoveAll = %v, want empty", got)
	}
	if m.Length() != 1 {
		t.Errorf("Length() = %d, want 1", m.Length())
	}

	// Removing an absent name is a no-op
	m.RemoveAll("Set-Cookie")
	m.RemoveAll("Never-Added")
	if m.Length() != 1 {
		t.Errorf("Length() after no-op removes = %d, want 1", m.Length())
	}
	if v, ok := m.GetFirst("Host"); !ok || v != "example.com" {
		t.Errorf("GetFirst(Host) = (%q, %v), want (example.com, true)", v, ok)
	}
}

// The concrete scenario from the header semantics: mixed-casing duplicate
// headers resolve to one name with both values in insertion order.
func TestMixedCasingScenario(t *testing.T) {
	m := NewHeadersMap()
	m.Add("Content-Type", "text/plain")
	m.Add("content-type", "text/html")

	if v := m.GetFirstOrEmpty("CONTENT-TYPE"); v != "text/plain" {
		t.Errorf("GetFirstOrEmpty(CONTENT-TYPE) = %q, want text/plain", v)
	}

	got := m.GetAll("content-Type")
	if !slices.Equal(got, []string{"text/plain", "text/html"}) {
		t.Errorf("GetAll(content-Type) = %v, want [text/plain text/html]", got)
	}

	names := slices.Collect(m.Names())
	if !slices.Equal(names, []string{"Content-Type"}) {
		t.Errorf("Names() = %v, want [Content-Type]", names)
	}
}

func TestNamesYieldsDistinctNames(t *testing.T) {
	m := NewHeadersMap()
	m.Add("Via", "1.1 a")
	m.Add("via", "1.1 b")
	m.Add("VIA", "1.1 c")
	m.Add("Host", "example.com")
	m.Add("Accept", "*/*")

	names := slices.Collect(m.Names())
	if len(names) != 3 {
		t.Fatalf("Names() yielded %d names, want 3: %v", len(names), names)
	}

	slices.Sort(names)
	want := []string{"Accept", "Host", "Via"}
	if !slices.Equal(names, want) {
		t.Errorf("Names() = %v, want %v (any order)", names, want)
	}
}

func TestFlattenCountsAndOrder(t *testing.T) {
	m := NewHeadersMap()
	m.Add("X-A", "1")
	m.Add("x-a", "2")
	m.Add("X-B", "3")

	type pair struct{ name, value string }
	var pairs []pair
	for name, value := range m.Flatten() {
		pairs = append(pairs, pair{name, value})
	}

	// One pair per stored value
	if len(pairs) != 3 {
		t.Fatalf("Flatten() yielded %d pairs, want 3: %v", len(pairs), pairs)
	}

	// Chain-internal order is preserved: ("X-A","1") before ("x-a","2"),
	// each with the casing it was inserted with.
	ia, ib := -1, -1
	for i, p := range pairs {
		if p.name == "X-A" && p.value == "1" {
			ia = i
		}
		if p.name == "x-a" && p.value == "2" {
			ib = i
		}
	}
	if ia == -1 || ib == -1 {
		t.Fatalf("Flatten() missing expected pairs: %v", pairs)
	}
	if ia > ib {
		t.Errorf("Flatten() yielded (x-a,2) before (X-A,1): %v", pairs)
	}
}

func TestEntriesYieldsChainHeads(t *testing.T) {
	m := NewHeadersMap()
	m.Add("Accept", "text/html")
	m.Add("accept", "*/*")
	m.Add("Host", "example.com")

	count := 0
	for h := range m.Entries() {
		count++
		if h.Name == "Accept" {
			// The head is the chain for the whole entry
			if !slices.Equal(h.values(), []string{"text/html", "*/*"}) {
				t.Errorf("Accept chain values = %v, want [text/html */*]", h.values())
			}
		}
	}
	if count != 2 {
		t.Errorf("Entries() yielded %d heads, want 2", count)
	}
}

// Round trip: n values in, the same n values out, in order.
func TestManyValuesRoundTrip(t *testing.T) {
	const n = 50

	m := NewHeadersMap()
	var want []string
	for i := 0; i < n; i++ {
		v := fmt.Sprintf("value-%d", i)
		want = append(want, v)
		m.Add("X-Many", v)
	}

	if got := m.GetAll("x-many"); !slices.Equal(got, want) {
		t.Errorf("GetAll returned %d values, want %d in insertion order", len(got), n)
	}
}

// Table growth must not lose or duplicate entries.
func TestGrowthKeepsEntries(t *testing.T) {
	const n = 200

	m := NewHeadersMap()
	for i := 0; i < n; i++ {
		m.Add(fmt.Sprintf("X-Header-%d", i), fmt.Sprintf("%d", i))
	}

	if m.Length() != n {
		t.Fatalf("Length() = %d, want %d", m.Length(), n)
	}
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("x-header-%d", i)
		if v, ok := m.GetFirst(name); !ok || v != fmt.Sprintf("%d", i) {
			t.Errorf("GetFirst(%q) = (%q, %v) after growth", name, v, ok)
		}
	}

	names := slices.Collect(m.Names())
	if len(names) != n {
		t.Errorf("Names() yielded %d names after growth, want %d", len(names), n)
	}
}

// A snapshot taken before structural mutation keeps yielding the captured
// view; entries removed or inserted afterwards do not disturb it.
func TestSnapshotImmuneToStructuralChanges(t *testing.T) {
	m := NewHeadersMap()
	m.Add("Host", "example.com")
	m.Add("Accept", "*/*")

	seq := m.Flatten()

	m.RemoveAll("Host")
	m.Add("X-New", "later")

	var values []string
	for _, value := range seq {
		values = append(values, value)
	}

	slices.Sort(values)
	want := []string{"*/*", "example.com"}
	if !slices.Equal(values, want) {
		t.Errorf("snapshot walk yielded %v, want %v", values, want)
	}
}

// A value appended to a captured chain after the snapshot may be observed;
// what is guaranteed is that the walk terminates and yields at least the
// pre-snapshot content in order.
func TestSnapshotChainAppendTolerated(t *testing.T) {
	m := NewHeadersMap()
	m.Add("Via", "1.1 a")

	seq := m.All()
	m.Add("via", "1.1 b")

	var values []string
	for h := range seq {
		values = append(values, h.Value)
		if len(values) > 2 {
			t.Fatal("chain walk yielded more nodes than were ever added")
		}
	}

	if len(values) == 0 || values[0] != "1.1 a" {
		t.Errorf("walk yielded %v, want [1.1 a] as prefix", values)
	}
}

// Iterators are single-pass; every factory call starts a fresh snapshot.
func TestIteratorFactoriesRestart(t *testing.T) {
	m := NewHeadersMap()
	m.Add("Host", "example.com")
	m.Add("Accept", "*/*")

	// Abandon a walk early
	for range m.Names() {
		break
	}

	// A fresh call sees everything again
	if names := slices.Collect(m.Names()); len(names) != 2 {
		t.Errorf("fresh Names() yielded %d names, want 2", len(names))
	}
}

func TestLengthCountsNamesNotValues(t *testing.T) {
	m := NewHeadersMap()
	m.Add("Accept", "a")
	m.Add("accept", "b")
	m.Add("accept", "c")
	m.Add("Host", "example.com")

	if m.Length() != 2 {
		t.Errorf("Length() = %d, want 2", m.Length())
	}
}
