// Package orderedmap is a map that remembers insertion order.
package orderedmap

import (
	"errors"
	"iter"
	"slices"
)

var ErrDuplicateEntry = errors.New("duplicate entry")

type Map[K comparable, V any] struct {
	entries []K
	values  map[K]V
}

func New[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{
		values: make(map[K]V),
	}
}

// Set adds a new entry. Existing keys are never overwritten.
func (m *Map[K, V]) Set(key K, value V) error {
	if _, exists := m.values[key]; exists {
		return ErrDuplicateEntry
	}
	m.entries = append(m.entries, key)
	m.values[key] = value
	return nil
}

func (m *Map[K, V]) Get(key K) (V, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *Map[K, V]) Len() int {
	return len(m.entries)
}

// Keys returns the keys in insertion order.
func (m *Map[K, V]) Keys() []K {
	return slices.Clone(m.entries)
}

func (m *Map[K, V]) Range() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, k := range m.entries {
			if !yield(k, m.values[k]) {
				return
			}
		}
	}
}
