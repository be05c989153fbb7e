package vobj

import (
	"errors"

	"github.com/FAU-CDI/vobox/pkg/omap"
)

var (
	// ErrInvalidArgument is returned when an object can not be resolved, or an index is out of range.
	ErrInvalidArgument = omap.ErrInvalidArgument

	// ErrOutOfMemory is returned when a new object can not be registered.
	ErrOutOfMemory = omap.ErrOutOfMemory

	// ErrRange is returned when the result of an arithmetic operation can not be represented.
	ErrRange = errors.New("result too large")

	// ErrMalformed is returned when a stored representation can not be decoded.
	ErrMalformed = errors.New("malformed representation")
)
