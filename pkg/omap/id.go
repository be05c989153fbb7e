package omap

import (
	"encoding/binary"
	"errors"
	"math"
	"strconv"
	"strings"
)

// ID is the identity of a single object.
// It plays the role of a pointer-sized handle, and is never dereferenced.
//
// The zero ID is not valid, see [ID.Valid].
// IDs handed out by [ID.Inc] are never reused.
type ID uint64

// IDLen is the length of an encoded ID in bytes
const IDLen = 8

// Valid checks if this ID is valid
func (id ID) Valid() bool {
	return id != 0
}

// Reset resets this id to an invalid value
func (id *ID) Reset() {
	*id = 0
}

// Inc increments this ID, and then returns a copy of the new value.
// It is the equivalent of the "++" operator.
//
// When Inc() exceeds the maximum possible value for an ID, panics.
func (id *ID) Inc() ID {
	if *id == math.MaxUint64 {
		panic("ID.Inc: Overflow (not enough IDs)")
	}
	*id++
	return *id
}

// Less compares this ID to another id.
// An id is less than another id iff Inc() has been called fewer times.
func (id ID) Less(other ID) bool {
	return id < other
}

// String formats this id as a 0x-prefixed lowercase hexadecimal number without padding.
// This is the form used for object store file names.
func (id ID) String() string {
	return "0x" + strconv.FormatUint(uint64(id), 16)
}

var errParseID = errors.New("ParseID: missing 0x prefix")

// ParseID parses an id in the format produced by [ID.String].
func ParseID(s string) (ID, error) {
	hex, ok := strings.CutPrefix(s, "0x")
	if !ok {
		return 0, errParseID
	}
	value, err := strconv.ParseUint(hex, 16, 64)
	if err != nil {
		return 0, err
	}
	return ID(value), nil
}

// Encode encodes id using a big endian encoding into dest.
// dest must be of at least size [IDLen].
func (id ID) Encode(dest []byte) {
	_ = dest[IDLen-1] // boundary hint to compiler
	binary.BigEndian.PutUint64(dest, uint64(id))
}

// Decode sets this id to be the values that has been decoded from src.
// src must be of at least size IDLen, or a runtime panic occurs.
func (id *ID) Decode(src []byte) {
	_ = src[IDLen-1] // boundary hint to compiler
	*id = ID(binary.BigEndian.Uint64(src))
}

// MarshalID encodes a single id into a new slice of bytes.
func MarshalID(value ID) ([]byte, error) {
	dest := make([]byte, IDLen)
	value.Encode(dest)
	return dest, nil
}

var errUnmarshal = errors.New("UnmarshalID: invalid length")

// UnmarshalID behaves like [dest.Decode], but produces an error
// when there are insufficient number of bytes in src.
func UnmarshalID(dest *ID, src []byte) error {
	if len(src) < IDLen {
		return errUnmarshal
	}
	dest.Decode(src)
	return nil
}
