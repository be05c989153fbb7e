package vobj

import "github.com/FAU-CDI/vobox/pkg/omap"

// Kind identifies the kind of a value object.
// It is also used as the type of records in an object store.
type Kind string

const (
	KindInteger Kind = "int"
	KindString  Kind = "str"
)

// Kinds lists all known kinds
var Kinds = []Kind{KindInteger, KindString}

// Valid checks if kind is one of the known kinds.
func (kind Kind) Valid() bool {
	return kind == KindInteger || kind == KindString
}

// Object is implemented by all value objects.
type Object interface {
	// ID returns the identity of this object.
	// The identity of a deleted object is invalid.
	ID() omap.ID

	// Kind returns the kind of this object.
	Kind() Kind

	// Live reports if this object can still be resolved.
	Live() bool
}

var (
	_ Object = (*String)(nil)
	_ Object = (*Integer)(nil)
)
