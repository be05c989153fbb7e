package vobj

import (
	"bytes"

	"github.com/FAU-CDI/vobox/pkg/omap"
)

// MaxStringLength is the maximum length of a [String] in bytes.
// Longer input is truncated.
const MaxStringLength = 1023

// String is an immutable string of at most [MaxStringLength] bytes.
//
// A String is a handle; the contents are stored inside the [Runtime] that created it.
// Methods called on a nil or deleted String fail with [ErrInvalidArgument].
type String struct {
	rt *Runtime
	id omap.ID
}

// stringData is the payload of a String
type stringData struct {
	bytes []byte
}

// clip cuts value at the first zero byte, and then truncates it to [MaxStringLength] bytes.
func clip(value []byte) []byte {
	if index := bytes.IndexByte(value, 0); index >= 0 {
		value = value[:index]
	}
	if len(value) > MaxStringLength {
		value = value[:MaxStringLength]
	}
	return value
}

// NewString creates a new string holding value.
func (rt *Runtime) NewString(value string) (*String, error) {
	return rt.newString([]byte(value))
}

// NewStringBytes is like NewString, but takes a byte slice.
// The slice is copied; a nil slice is an invalid argument.
func (rt *Runtime) NewStringBytes(value []byte) (*String, error) {
	if value == nil {
		return nil, ErrInvalidArgument
	}
	return rt.newString(value)
}

func (rt *Runtime) newString(value []byte) (*String, error) {
	if rt == nil {
		return nil, ErrInvalidArgument
	}

	value = clip(value)
	data := &stringData{bytes: make([]byte, len(value))}
	copy(data.bytes, value)

	id, err := create(rt, &rt.strings, data)
	if err != nil {
		return nil, err
	}
	return &String{rt: rt, id: id}, nil
}

// DeleteString deletes the string referenced by ref and clears the reference.
// It is a no-op when ref or *ref is nil.
func DeleteString(ref **String) {
	if ref == nil || *ref == nil {
		return
	}
	(*ref).Delete()
	*ref = nil
}

// Delete deletes this string.
// Any persisted record is removed, and the handle is wiped.
// Other copies of the handle can no longer be resolved.
func (s *String) Delete() {
	if s == nil || s.rt == nil {
		return
	}
	destroy(s.rt, &s.rt.strings, s.id)
	s.rt, s.id = nil, 0
}

// ID returns the identity of this string.
func (s *String) ID() omap.ID {
	if s == nil {
		return 0
	}
	return s.id
}

// Kind returns [KindString].
func (s *String) Kind() Kind {
	return KindString
}

// Live checks if this string can still be resolved.
func (s *String) Live() bool {
	_, ok := s.resolve()
	return ok
}

// resolve returns the contents of this string.
func (s *String) resolve() ([]byte, bool) {
	if s == nil || s.rt == nil {
		return nil, false
	}
	data, ok := s.rt.strings.objects.Get(s.id)
	if !ok {
		return nil, false
	}
	return data.bytes, true
}

// resolveOther resolves other in the runtime of s.
// Strings belonging to a different runtime can not be resolved.
func (s *String) resolveOther(other *String) ([]byte, bool) {
	if other == nil || s == nil || other.rt != s.rt {
		return nil, false
	}
	return other.resolve()
}

// Length returns the length of this string in bytes.
// When s can not be resolved, returns -1.
func (s *String) Length() (int, error) {
	value, ok := s.resolve()
	if !ok {
		return -1, ErrInvalidArgument
	}
	return len(value), nil
}

// CharAt returns the byte at position pos.
//
// pos must be in the range [0, length-1].
// As a special case position 0 of the empty string is the zero byte.
// On failure, returns 0.
func (s *String) CharAt(pos int) (byte, error) {
	value, ok := s.resolve()
	if !ok {
		return 0, ErrInvalidArgument
	}
	if len(value) == 0 && pos == 0 {
		return 0, nil
	}
	if pos < 0 || pos >= len(value) {
		return 0, ErrInvalidArgument
	}
	return value[pos], nil
}

// Concat returns a new string consisting of s followed by other.
// The result is truncated to [MaxStringLength] bytes.
func (s *String) Concat(other *String) (*String, error) {
	left, ok := s.resolve()
	if !ok {
		return nil, ErrInvalidArgument
	}
	right, ok := s.resolveOther(other)
	if !ok {
		return nil, ErrInvalidArgument
	}

	buffer := make([]byte, 0, len(left)+len(right))
	buffer = append(buffer, left...)
	buffer = append(buffer, right...)
	return s.rt.newString(buffer)
}

// Equals checks if s and other have identical contents.
// If either string can not be resolved, returns false.
func (s *String) Equals(other *String) bool {
	left, ok := s.resolve()
	if !ok {
		return false
	}
	right, ok := s.resolveOther(other)
	if !ok {
		return false
	}
	return bytes.Equal(left, right)
}

// Value returns the contents of this string.
//
// If buf is non-nil, the contents followed by a zero byte are copied into buf and buf[:length] is returned.
// buf must then hold at least length+1 bytes.
// If buf is nil, a new copy of the contents is returned.
func (s *String) Value(buf []byte) ([]byte, error) {
	value, ok := s.resolve()
	if !ok {
		return nil, ErrInvalidArgument
	}

	if buf == nil {
		return bytes.Clone(value), nil
	}
	if len(buf) < len(value)+1 {
		return nil, ErrInvalidArgument
	}
	copy(buf, value)
	buf[len(value)] = 0
	return buf[:len(value)], nil
}

// String returns the contents of this string, or the empty string if it can not be resolved.
func (s *String) String() string {
	value, _ := s.resolve()
	return string(value)
}

// IndexOf returns the index of the first occurrence of c at or after position start.
//
// When c does not occur, returns -1.
// start must be in the range [0, length-1]; otherwise returns -2 and [ErrInvalidArgument].
func (s *String) IndexOf(c byte, start int) (int, error) {
	value, ok := s.resolve()
	if !ok || start < 0 || start >= len(value) {
		return -2, ErrInvalidArgument
	}

	index := bytes.IndexByte(value[start:], c)
	if index < 0 {
		return -1, nil
	}
	return start + index, nil
}

// Split splits s around every occurrence of any byte contained in delimiters.
//
// Every gap, including leading, trailing and consecutive delimiters, results in an empty entry.
// Splitting a string not containing a delimiter, or using an empty delimiter string, results in a single entry.
//
// If creating an entry fails, Split returns the entries created so far along with the error.
func (s *String) Split(delimiters *String) ([]*String, error) {
	value, ok := s.resolve()
	if !ok {
		return nil, ErrInvalidArgument
	}
	delims, ok := s.resolveOther(delimiters)
	if !ok {
		return nil, ErrInvalidArgument
	}

	var isDelim [256]bool
	for _, d := range delims {
		isDelim[d] = true
	}

	// copy the value, as creating entries may modify the map
	rest := bytes.Clone(value)

	count := 1
	for _, c := range rest {
		if isDelim[c] {
			count++
		}
	}

	entries := make([]*String, 0, count)
	for {
		index := -1
		for i, c := range rest {
			if isDelim[c] {
				index = i
				break
			}
		}

		token := rest
		if index >= 0 {
			token = rest[:index]
		}

		entry, err := s.rt.newString(token)
		if err != nil {
			return entries, err
		}
		entries = append(entries, entry)

		if index < 0 {
			return entries, nil
		}
		rest = rest[index+1:]
	}
}

// Substring returns a new string holding length bytes of s starting at start.
//
// start must be in the range [0, len-1], or 0 for the empty string.
// length must be in the range [0, len-start].
// A length of 0 results in the empty string.
func (s *String) Substring(start, length int) (*String, error) {
	value, ok := s.resolve()
	if !ok {
		return nil, ErrInvalidArgument
	}

	validStart := (start >= 0 && start < len(value)) || (start == 0 && len(value) == 0)
	if !validStart || length < 0 || length > len(value)-start {
		return nil, ErrInvalidArgument
	}
	return s.rt.newString(value[start : start+length])
}
