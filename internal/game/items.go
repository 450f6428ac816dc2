package game

import (
	"cmp"
	"fmt"
	"maps"
	"math/rand"
	"slices"
)

// ItemManager is a non-negative counter keyed by an enumerated type. It
// backs player hands, piece supplies and the bank pools. The shortage error
// is returned whenever a removal would go negative.
type ItemManager[K cmp.Ordered] struct {
	items    map[K]int
	shortage *Error
}

// NewItemManager creates an empty manager that reports shortages with the
// given error.
func NewItemManager[K cmp.Ordered](shortage *Error) *ItemManager[K] {
	return &ItemManager[K]{
		items:    make(map[K]int),
		shortage: shortage,
	}
}

// Count returns how many of k are held.
func (m *ItemManager[K]) Count(k K) int {
	return m.items[k]
}

// Has reports whether at least n of k are held.
func (m *ItemManager[K]) Has(k K, n int) bool {
	return m.items[k] >= n
}

// HasAll reports whether every amount in items is held.
func (m *ItemManager[K]) HasAll(items map[K]int) bool {
	for k, n := range items {
		if m.items[k] < n {
			return false
		}
	}
	return true
}

// Total returns the sum of all counts.
func (m *ItemManager[K]) Total() int {
	total := 0
	for _, n := range m.items {
		total += n
	}
	return total
}

// Add adds n of k. Negative amounts are a programming error.
func (m *ItemManager[K]) Add(k K, n int) {
	if n < 0 {
		panic(fmt.Sprintf("ItemManager.Add: negative amount %d", n))
	}
	if n == 0 {
		return
	}
	m.items[k] += n
}

// AddAll adds every amount in items.
func (m *ItemManager[K]) AddAll(items map[K]int) {
	for k, n := range items {
		m.Add(k, n)
	}
}

// Remove removes n of k, failing without change if fewer are held.
func (m *ItemManager[K]) Remove(k K, n int) error {
	if n < 0 {
		panic(fmt.Sprintf("ItemManager.Remove: negative amount %d", n))
	}
	if m.items[k] < n {
		return errorf(m.shortage, "need %d %v, have %d", n, k, m.items[k])
	}
	m.items[k] -= n
	if m.items[k] == 0 {
		delete(m.items, k)
	}
	return nil
}

// RemoveAll removes every amount in items, or nothing at all.
func (m *ItemManager[K]) RemoveAll(items map[K]int) error {
	for _, k := range sortedKeys(items) {
		if m.items[k] < items[k] {
			return errorf(m.shortage, "need %d %v, have %d", items[k], k, m.items[k])
		}
	}
	for k, n := range items {
		if err := m.Remove(k, n); err != nil {
			panic("ItemManager.RemoveAll: " + err.Error())
		}
	}
	return nil
}

// Set overwrites the count of k.
func (m *ItemManager[K]) Set(k K, n int) error {
	if n < 0 {
		return errorf(m.shortage, "cannot set %v to %d", k, n)
	}
	if n == 0 {
		delete(m.items, k)
		return nil
	}
	m.items[k] = n
	return nil
}

// Take removes and returns every k held.
func (m *ItemManager[K]) Take(k K) int {
	n := m.items[k]
	delete(m.items, k)
	return n
}

// RemoveRandom removes one item, choosing uniformly among the keys with a
// positive count. It returns false when the manager is empty.
func (m *ItemManager[K]) RemoveRandom(rng *rand.Rand) (K, bool) {
	keys := sortedKeys(m.items)
	if len(keys) == 0 {
		var zero K
		return zero, false
	}
	k := keys[rng.Intn(len(keys))]
	if err := m.Remove(k, 1); err != nil {
		panic("ItemManager.RemoveRandom: " + err.Error())
	}
	return k, true
}

// Draw removes one item weighted by count, as drawing a card from a
// shuffled pile would. It returns false when the manager is empty.
func (m *ItemManager[K]) Draw(rng *rand.Rand) (K, bool) {
	total := m.Total()
	if total == 0 {
		var zero K
		return zero, false
	}
	i := rng.Intn(total)
	for _, k := range sortedKeys(m.items) {
		if i < m.items[k] {
			if err := m.Remove(k, 1); err != nil {
				panic("ItemManager.Draw: " + err.Error())
			}
			return k, true
		}
		i -= m.items[k]
	}
	panic("ItemManager.Draw: index out of range")
}

// Clear removes everything.
func (m *ItemManager[K]) Clear() {
	clear(m.items)
}

// Snapshot returns a copy of the counts.
func (m *ItemManager[K]) Snapshot() map[K]int {
	return maps.Clone(m.items)
}

// sortedKeys returns the keys with a positive count in ascending order, so
// random choices depend only on the seed.
func sortedKeys[K cmp.Ordered](items map[K]int) []K {
	keys := make([]K, 0, len(items))
	for k, n := range items {
		if n > 0 {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	return keys
}
