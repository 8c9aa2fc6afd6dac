// Package cmpmap provides a generic associative container backed by
// a contiguous slice and linear search. Key equality is delegated to
// a user-provided Comparator which allows case-insensitive string keys,
// float keys or pointer identity without the map knowing the key type.
//
// Lookups are O(n). The map is meant for small data sets or keys
// that can't be hashed or ordered. It's not safe for concurrent use.
package cmpmap

import (
	"math"
)

// DefaultCapacity is used by New when the provided capacity is 0.
const DefaultCapacity = 10

// Invalid is returned by Len and Cap when called on a nil
// or released map.
const Invalid = -1

// Comparator returns 0 if a and b are considered equal.
// Non-zero results don't imply any ordering.
//
// A comparator must be an equivalence relation over the keys
// stored in the map, otherwise the behavior of Set, Get and Delete
// is undefined for inconsistent keys.
type Comparator[K any] func(a, b K) int

// Entry is a key-value pair.
type Entry[K, V any] struct {
	Key   K
	Value V
}

// Options configures a map created with NewWithOptions.
type Options struct {
	// MaxCapacity limits the growth of the backing storage.
	// 0 means no limit.
	MaxCapacity int

	// OnGrow is called after the backing storage was reallocated.
	OnGrow func(oldCapacity, newCapacity int)
}

// Map is a slice-backed map with a custom key comparator.
//
// WARNING: keys and values are stored as is. In case of pointer,
// slice or map typed keys the referenced data must not be mutated
// in a way that changes key equality while the entry is in the map.
type Map[K, V any] struct {
	d        []Entry[K, V]
	compare  Comparator[K]
	opts     Options
	released bool
}

// New creates a new map with room for capacity entries.
// DefaultCapacity is used if capacity is 0.
func New[K, V any](
	capacity int,
	compare Comparator[K],
) (*Map[K, V], error) {
	return NewWithOptions[K, V](capacity, compare, Options{})
}

// NewWithOptions is like New but accepts additional options.
func NewWithOptions[K, V any](
	capacity int,
	compare Comparator[K],
	opts Options,
) (*Map[K, V], error) {
	switch {
	case capacity < 0:
		return nil, &ErrorIllegal{
			Field:   "capacity",
			Message: "must not be negative",
		}
	case compare == nil:
		return nil, &ErrorIllegal{
			Field:   "comparator",
			Message: "must not be nil",
		}
	case opts.MaxCapacity < 0:
		return nil, &ErrorIllegal{
			Field:   "max capacity",
			Message: "must not be negative",
		}
	}
	if capacity == 0 {
		capacity = DefaultCapacity
	}
	if opts.MaxCapacity > 0 && capacity > opts.MaxCapacity {
		return nil, &ErrorCapacityExceeded{
			Capacity: capacity,
			Max:      opts.MaxCapacity,
		}
	}
	d, err := allocate[K, V](capacity)
	if err != nil {
		return nil, err
	}
	return &Map[K, V]{
		d:       d,
		compare: compare,
		opts:    opts,
	}, nil
}

// allocate returns an empty slice with a capacity of exactly n.
// A runtime panic caused by the allocation is returned as *ErrorAllocation.
func allocate[K, V any](n int) (d []Entry[K, V], err error) {
	defer func() {
		if r := recover(); r != nil {
			d, err = nil, &ErrorAllocation{Capacity: n, Cause: r}
		}
	}()
	return make([]Entry[K, V], 0, n), nil
}

func (m *Map[K, V]) valid() bool { return m != nil && !m.released }

// Index returns the index of the entry or -1 if it wasn't found.
func (m *Map[K, V]) Index(key K) int {
	if !m.valid() {
		return -1
	}
	for i := range m.d {
		if m.compare(m.d[i].Key, key) == 0 {
			return i
		}
	}
	return -1
}

// Set associates key with value overwriting any existing association.
// The originally stored key is kept when an existing entry is updated.
//
// When the map is full its capacity is doubled.
// If growing fails the error is returned and the map remains unchanged.
func (m *Map[K, V]) Set(key K, value V) error {
	if !m.valid() {
		return ErrInvalid
	}
	if i := m.Index(key); i > -1 {
		m.d[i].Value = value
		return nil
	}
	if err := m.grow(); err != nil {
		return err
	}
	m.d = append(m.d, Entry[K, V]{Key: key, Value: value})
	return nil
}

// SetFn calls fn(nil) if the key doesn't exist yet and associates
// the value returned by fn with the key. If the key already exists
// then fn is passed a pointer to the value already associated with the key
// and its return value is ignored.
func (m *Map[K, V]) SetFn(key K, fn func(*V) V) error {
	if !m.valid() {
		return ErrInvalid
	}
	if i := m.Index(key); i > -1 {
		_ = fn(&m.d[i].Value)
		return nil
	}
	if err := m.grow(); err != nil {
		return err
	}
	m.d = append(m.d, Entry[K, V]{Key: key, Value: fn(nil)})
	return nil
}

// grow doubles the capacity if there's no room for one more entry.
func (m *Map[K, V]) grow() error {
	c := cap(m.d)
	if len(m.d) < c {
		return nil
	}
	if c > math.MaxInt/2 {
		return &ErrorCapacityExceeded{Capacity: -1, Max: math.MaxInt}
	}
	n := c * 2
	if m.opts.MaxCapacity > 0 && n > m.opts.MaxCapacity {
		return &ErrorCapacityExceeded{Capacity: n, Max: m.opts.MaxCapacity}
	}
	d, err := allocate[K, V](n)
	if err != nil {
		return err
	}
	m.d = append(d, m.d...)
	if m.opts.OnGrow != nil {
		m.opts.OnGrow(c, n)
	}
	return nil
}

// Get returns (value, true, nil) if key exists,
// otherwise returns (zeroValue, false, nil).
// Returns ErrInvalid if the map is nil or released.
func (m *Map[K, V]) Get(key K) (value V, ok bool, err error) {
	if !m.valid() {
		return value, false, ErrInvalid
	}
	if i := m.Index(key); i > -1 {
		return m.d[i].Value, true, nil
	}
	return value, false, nil
}

// Delete removes the entry associated with key shifting all
// subsequent entries one position to the left.
// Noop if the key doesn't exist or the map is invalid.
func (m *Map[K, V]) Delete(key K) {
	if i := m.Index(key); i > -1 {
		m.removeAt(i)
	}
}

// DeleteByIndex removes the entry at the given index.
// Noop if the index is out of bound.
func (m *Map[K, V]) DeleteByIndex(index int) (key K, value V) {
	if !m.valid() || index < 0 || index >= len(m.d) {
		return
	}
	key, value = m.d[index].Key, m.d[index].Value
	m.removeAt(index)
	return
}

func (m *Map[K, V]) removeAt(i int) {
	last := len(m.d) - 1
	copy(m.d[i:], m.d[i+1:])
	// Clear the vacated slot to not retain references.
	m.d[last] = Entry[K, V]{}
	m.d = m.d[:last]
}

// Reset removes all entries keeping the capacity.
func (m *Map[K, V]) Reset() {
	if !m.valid() {
		return
	}
	for i := range m.d {
		m.d[i] = Entry[K, V]{}
	}
	m.d = m.d[:0]
}

// Len returns the number of stored key-value pairs
// or Invalid if the map is nil or released.
func (m *Map[K, V]) Len() int {
	if !m.valid() {
		return Invalid
	}
	return len(m.d)
}

// Cap returns the number of allocated entry slots
// or Invalid if the map is nil or released.
func (m *Map[K, V]) Cap() int {
	if !m.valid() {
		return Invalid
	}
	return cap(m.d)
}

// Visit calls fn for every stored key-value pair in slot order.
// Returns immediately if fn returns true.
func (m *Map[K, V]) Visit(fn func(key K, value V) (stop bool)) {
	if !m.valid() {
		return
	}
	for i := range m.d {
		if fn(m.d[i].Key, m.d[i].Value) {
			break
		}
	}
}

// Entries returns a copy of all stored entries in slot order.
func (m *Map[K, V]) Entries() []Entry[K, V] {
	if !m.valid() || len(m.d) < 1 {
		return nil
	}
	e := make([]Entry[K, V], len(m.d))
	copy(e, m.d)
	return e
}

// Release frees the backing storage. The map is invalid afterwards.
// Keys and values are not touched. Noop on nil or released maps.
func (m *Map[K, V]) Release() {
	if !m.valid() {
		return
	}
	m.d, m.compare, m.released = nil, nil, true
}

// Released returns true if the map was released.
func (m *Map[K, V]) Released() bool {
	return m != nil && m.released
}

// Set is equivalent to m.Set(key, value).
func Set[K, V any](m *Map[K, V], key K, value V) error {
	return m.Set(key, value)
}

// Get is equivalent to m.Get(key).
func Get[K, V any](m *Map[K, V], key K) (value V, ok bool, err error) {
	return m.Get(key)
}

// Delete is equivalent to m.Delete(key).
func Delete[K, V any](m *Map[K, V], key K) { m.Delete(key) }

// Size is equivalent to m.Len().
func Size[K, V any](m *Map[K, V]) int { return m.Len() }

// Capacity is equivalent to m.Cap().
func Capacity[K, V any](m *Map[K, V]) int { return m.Cap() }

// Release is equivalent to m.Release().
func Release[K, V any](m *Map[K, V]) { m.Release() }
