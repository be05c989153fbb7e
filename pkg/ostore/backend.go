package ostore

import (
	"github.com/FAU-CDI/vobox/pkg/omap"
)

// Backend holds the records of a [Store].
type Backend interface {
	// Open prepares this backend for use.
	// It may be called multiple times.
	Open() error

	// Close closes this backend.
	Close() error

	// Write creates or replaces the record for the given object.
	// On failure, no partial record may remain.
	Write(tp string, id omap.ID, value []byte) error

	// Read reads the record for the given object.
	// If it does not exist, returns an error wrapping fs.ErrNotExist.
	Read(tp string, id omap.ID) ([]byte, error)

	// Remove removes the record for the given object.
	// Removing a record that does not exist is not an error.
	Remove(tp string, id omap.ID) error

	// Iterate calls f for all records in this backend.
	//
	// When any f returns a non-nil error, that error is returned immediately to the caller
	// and iteration stops.
	//
	// There is no guarantee on order.
	Iterate(f func(Record) error) error
}
