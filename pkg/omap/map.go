// Package omap implements an identity map.
//
// An identity map associates the identity of an object with a value stored outside of the object itself.
// It is a chained hash table with a fixed number of buckets, that does not rehash.
package omap

import (
	"errors"
	"fmt"
)

// cspell:words omap

// DefaultBuckets is the default number of buckets of a map.
//
// Fewer buckets result in longer chains and slower lookups,
// more buckets use more memory, and are more likely to be unused.
const DefaultBuckets = 127

var (
	// ErrInvalidArgument is returned when a nil map, an invalid key or a nil value is passed.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrOutOfMemory is returned when a new entry can not be allocated.
	ErrOutOfMemory = errors.New("out of memory")
)

// Map is a mapping from [ID] to values of type *V.
// It owns the chains and buckets, but never the values stored in it.
//
// A Map is not safe for concurrent use.
// The zero Map is not ready for use; it should be created using [New].
type Map[V any] struct {
	// Limit is the maximum number of entries in this map.
	// Once reached, calls to [Map.Set] inserting new keys fail with [ErrOutOfMemory].
	// A Limit of 0 means that the map is unbounded.
	Limit uint64

	buckets []*node[V]
	count   uint64
}

// node is a single element of a bucket chain
type node[V any] struct {
	key   ID
	value *V
	next  *node[V]
}

// New creates a new map with the given number of buckets.
// If buckets < 1, returns ErrInvalidArgument.
func New[V any](buckets int) (*Map[V], error) {
	if buckets < 1 {
		return nil, fmt.Errorf("%w: bucket count %d", ErrInvalidArgument, buckets)
	}
	return &Map[V]{
		buckets: make([]*node[V], buckets),
	}, nil
}

// NewDefault is like New, but creates a map with [DefaultBuckets] buckets.
func NewDefault[V any]() *Map[V] {
	mp, err := New[V](DefaultBuckets)
	if err != nil {
		panic("never reached")
	}
	return mp
}

// bucket returns the bucket that key belongs into.
// mp must be valid.
func (mp *Map[V]) bucket(key ID) int {
	return int(uint64(key) % uint64(len(mp.buckets)))
}

// find returns the node for key, or nil if it does not exist.
func (mp *Map[V]) find(key ID) *node[V] {
	if mp == nil || mp.buckets == nil || !key.Valid() {
		return nil
	}
	for n := mp.buckets[mp.bucket(key)]; n != nil; n = n.next {
		if n.key == key {
			return n
		}
	}
	return nil
}

// Set associates key with value.
//
// When key already exists, the value is replaced and the old value is discarded without further action.
// Otherwise a new entry is added to the front of the chain of its bucket.
func (mp *Map[V]) Set(key ID, value *V) error {
	if mp == nil || mp.buckets == nil || !key.Valid() || value == nil {
		return ErrInvalidArgument
	}

	// update an existing node
	if n := mp.find(key); n != nil {
		n.value = value
		return nil
	}

	if mp.Limit != 0 && mp.count >= mp.Limit {
		return ErrOutOfMemory
	}

	index := mp.bucket(key)
	mp.buckets[index] = &node[V]{
		key:   key,
		value: value,
		next:  mp.buckets[index],
	}
	mp.count++
	return nil
}

// Get retrieves the value for key.
// The second value indicates if the value was found.
func (mp *Map[V]) Get(key ID) (*V, bool) {
	n := mp.find(key)
	if n == nil {
		return nil, false
	}
	return n.value, true
}

// GetZero is like Get, but returns nil when the value does not exist
func (mp *Map[V]) GetZero(key ID) *V {
	value, _ := mp.Get(key)
	return value
}

// Has is like Get, but returns only the second value.
func (mp *Map[V]) Has(key ID) bool {
	return mp.find(key) != nil
}

// Delete removes key from this map and returns the value it was associated with.
// Ownership of the value is passed back to the caller.
//
// The second value indicates if the key was found.
func (mp *Map[V]) Delete(key ID) (*V, bool) {
	if mp == nil || mp.buckets == nil || !key.Valid() {
		return nil, false
	}

	index := mp.bucket(key)

	// pointer to the link pointing at the current node
	link := &mp.buckets[index]
	for n := *link; n != nil; n = *link {
		if n.key == key {
			*link = n.next
			mp.count--

			value := n.value
			n.next, n.value = nil, nil
			return value, true
		}
		link = &n.next
	}
	return nil, false
}

// Buckets returns the number of buckets in this map.
func (mp *Map[V]) Buckets() (int, error) {
	if mp == nil || mp.buckets == nil {
		return 0, ErrInvalidArgument
	}
	return len(mp.buckets), nil
}

// Count returns the number of entries in this map.
func (mp *Map[V]) Count() (uint64, error) {
	if mp == nil || mp.buckets == nil {
		return 0, ErrInvalidArgument
	}
	return mp.count, nil
}

// Chain returns the number of entries in the given bucket.
// Invalid buckets have no entries.
func (mp *Map[V]) Chain(bucket int) (length int) {
	if mp == nil || bucket < 0 || bucket >= len(mp.buckets) {
		return 0
	}
	for n := mp.buckets[bucket]; n != nil; n = n.next {
		length++
	}
	return
}

// Iterate calls f for all entries in this map.
//
// When any f returns a non-nil error, that error is returned immediately to the caller
// and iteration stops.
// f must not modify the map.
//
// There is no guarantee on order.
func (mp *Map[V]) Iterate(f func(ID, *V) error) error {
	if mp == nil {
		return ErrInvalidArgument
	}
	for _, head := range mp.buckets {
		for n := head; n != nil; n = n.next {
			if err := f(n.key, n.value); err != nil {
				return err
			}
		}
	}
	return nil
}

// Close releases all chains and buckets of this map.
// The values that are still stored are not touched.
//
// Calling close multiple times results in err = nil.
func (mp *Map[V]) Close() error {
	if mp == nil {
		return nil
	}
	for i, head := range mp.buckets {
		for n := head; n != nil; {
			next := n.next
			n.next, n.value = nil, nil
			n = next
		}
		mp.buckets[i] = nil
	}
	mp.buckets = nil
	mp.count = 0
	return nil
}

// Destroy closes the map referenced by ref, and clears the reference.
// It is a no-op when ref or *ref is nil.
func Destroy[V any](ref **Map[V]) {
	if ref == nil || *ref == nil {
		return
	}
	(*ref).Close()
	*ref = nil
}
