// Package ostore implements an object store.
//
// An object store mirrors the state of live objects into a backend, one record per object.
// Records are keyed by the type of the object and its identity.
// The default [FileBackend] writes one text file per object into a directory structure of the form
//
//	ostore/<type>/<id>.txt
package ostore

// cspell:words ostore

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/FAU-CDI/vobox/pkg/omap"
	"github.com/tkw1536/pkglib/iterator"
)

var (
	// ErrInvalidRecord is returned when a record is nil, has no type, no value or an invalid id.
	ErrInvalidRecord = fmt.Errorf("invalid object record: %w", omap.ErrInvalidArgument)

	// ErrDisabled is returned when the store is used without having been enabled.
	ErrDisabled = fmt.Errorf("object store not enabled: %w", fs.ErrNotExist)
)

// Record is the representation of a single object inside the store.
type Record struct {
	Type  string  // type of the object, e.g. "int" or "str"
	ID    omap.ID // identity of the object
	Value []byte  // representation of the object state, nil if absent
}

// addressable checks if this record can be used to address an object.
func (rec *Record) addressable() bool {
	return rec != nil && rec.Type != "" && rec.ID.Valid()
}

// Store mirrors objects into a backend.
// Persistence calls are only honored while the store is enabled.
//
// A Store is not safe for concurrent use.
type Store struct {
	Backend Backend

	enabled bool
}

// New creates a new store, that writes files into the "ostore" directory inside dir.
// The store is initially disabled.
func New(dir string) *Store {
	return NewWithBackend(&FileBackend{Root: Root(dir)})
}

// NewWithBackend creates a new disabled store that uses the given backend.
func NewWithBackend(backend Backend) *Store {
	return &Store{Backend: backend}
}

// Enable enables this store, ensuring that the backend is ready.
// Enable may be called multiple times.
// On failure the store remains disabled.
func (store *Store) Enable() error {
	if store == nil || store.Backend == nil {
		return errNoBackend
	}
	if err := store.Backend.Open(); err != nil {
		store.enabled = false
		return fmt.Errorf("failed to enable object store: %w", err)
	}
	store.enabled = true
	return nil
}

// Enabled reports if this store is currently enabled.
// A nil store is never enabled.
func (store *Store) Enabled() bool {
	return store != nil && store.enabled
}

// Disable disables this store and closes the underlying backend.
// Records that were already written are kept.
func (store *Store) Disable() error {
	if !store.Enabled() {
		return nil
	}
	store.enabled = false
	return store.Backend.Close()
}

// Save stores the given record, replacing any previous record of the same object.
// On failure, no partial record is left behind.
func (store *Store) Save(rec *Record) error {
	if !rec.addressable() || rec.Value == nil {
		return ErrInvalidRecord
	}
	if !store.Enabled() {
		return ErrDisabled
	}
	if err := store.Backend.Write(rec.Type, rec.ID, rec.Value); err != nil {
		return fmt.Errorf("failed to store %s object %s: %w", rec.Type, rec.ID, err)
	}
	return nil
}

// Unlink removes the record for the object referenced by rec, if any.
// Unlink is best effort; it does nothing when the store is disabled, rec does not address an object, or no record exists.
// The Value of rec is ignored.
func (store *Store) Unlink(rec *Record) {
	if !store.Enabled() || !rec.addressable() {
		return
	}
	store.Backend.Remove(rec.Type, rec.ID)
}

// Load loads the value stored for the given object.
// When no record exists, returns an error wrapping [fs.ErrNotExist].
func (store *Store) Load(tp string, id omap.ID) ([]byte, error) {
	if tp == "" || !id.Valid() {
		return nil, ErrInvalidRecord
	}
	if !store.Enabled() {
		return nil, ErrDisabled
	}
	value, err := store.Backend.Read(tp, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s object %s: %w", tp, id, err)
	}
	return value, nil
}

var (
	errNoBackend = errors.New("object store has no backend")
	errStopped   = errors.New("iteration stopped")
)

// Records returns an iterator over all records in this store.
// There is no guarantee on order.
func (store *Store) Records() iterator.Iterator[Record] {
	if !store.Enabled() {
		return iterator.Empty[Record](ErrDisabled)
	}
	return iterator.New(func(generator iterator.Generator[Record]) {
		defer generator.Return()

		err := store.Backend.Iterate(func(rec Record) error {
			if generator.Yield(rec) {
				return errStopped
			}
			return nil
		})
		if err != nil && !errors.Is(err, errStopped) {
			generator.YieldError(err)
		}
	})
}
