package memory

// table is a map that remembers insertion order. It does no locking; the
// owning repository holds the store lock.
type table[K comparable, V any] struct {
	order []K
	rows  map[K]V
}

func newTable[K comparable, V any]() *table[K, V] {
	return &table[K, V]{
		rows: make(map[K]V),
	}
}

func (t *table[K, V]) get(k K) (V, bool) {
	v, ok := t.rows[k]
	return v, ok
}

func (t *table[K, V]) put(k K, v V) {
	if _, exists := t.rows[k]; !exists {
		t.order = append(t.order, k)
	}
	t.rows[k] = v
}

func (t *table[K, V]) remove(k K) bool {
	if _, exists := t.rows[k]; !exists {
		return false
	}
	delete(t.rows, k)
	for i, key := range t.order {
		if key == k {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return true
}

// values returns rows in insertion order. A nil match keeps every row.
func (t *table[K, V]) values(match func(V) bool) []V {
	out := make([]V, 0, len(t.order))
	for _, k := range t.order {
		v := t.rows[k]
		if match == nil || match(v) {
			out = append(out, v)
		}
	}
	return out
}

func (t *table[K, V]) removeWhere(match func(V) bool) int {
	var removed int
	kept := t.order[:0]
	for _, k := range t.order {
		if match(t.rows[k]) {
			delete(t.rows, k)
			removed++
			continue
		}
		kept = append(kept, k)
	}
	t.order = kept
	return removed
}

func (t *table[K, V]) reset() {
	t.order = nil
	t.rows = make(map[K]V)
}
