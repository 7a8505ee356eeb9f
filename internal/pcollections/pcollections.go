// Package pcollections names the persistent collection types used by xq.
// They come from an existing persistent data structure library and are not
// reimplemented here.
package pcollections

import iradix "github.com/hashicorp/go-immutable-radix/v2"

// PHashMap is an immutable map keyed by string. Every update returns a new
// map sharing structure with the old one.
type PHashMap[V any] = iradix.Tree[V]

func NewPHashMap[V any]() *PHashMap[V] {
	return iradix.New[V]()
}

// Insert returns a copy of m with key bound to v.
func Insert[V any](m *PHashMap[V], key string, v V) *PHashMap[V] {
	m, _, _ = m.Insert([]byte(key), v)
	return m
}

func Get[V any](m *PHashMap[V], key string) (V, bool) {
	return m.Get([]byte(key))
}

// Entries returns the keys and values of m in ascending key order.
func Entries[V any](m *PHashMap[V]) ([]string, []V) {
	keys := make([]string, 0, m.Len())
	values := make([]V, 0, m.Len())
	m.Root().Walk(func(k []byte, v V) bool {
		keys = append(keys, string(k))
		values = append(values, v)
		return false
	})
	return keys, values
}
