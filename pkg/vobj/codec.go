package vobj

import (
	"bytes"
	"fmt"
	"strconv"
)

// FormatInteger returns the stored representation of an integer.
// It is the value in decimal, followed by a newline.
func FormatInteger(value int32) []byte {
	return append(strconv.AppendInt(nil, int64(value), 10), '\n')
}

// FormatString returns the stored representation of a string.
// It is the length in decimal, a colon, the raw bytes, and a newline.
func FormatString(value []byte) []byte {
	buffer := make([]byte, 0, len(value)+8)
	buffer = strconv.AppendInt(buffer, int64(len(value)), 10)
	buffer = append(buffer, ':')
	buffer = append(buffer, value...)
	return append(buffer, '\n')
}

// ParseInteger parses the representation produced by [FormatInteger].
func ParseInteger(raw []byte) (int32, error) {
	digits, ok := bytes.CutSuffix(raw, []byte("\n"))
	if !ok {
		return 0, fmt.Errorf("%w: missing newline", ErrMalformed)
	}
	value, err := strconv.ParseInt(string(digits), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return int32(value), nil
}

// ParseString parses the representation produced by [FormatString].
func ParseString(raw []byte) ([]byte, error) {
	body, ok := bytes.CutSuffix(raw, []byte("\n"))
	if !ok {
		return nil, fmt.Errorf("%w: missing newline", ErrMalformed)
	}

	prefix, value, ok := bytes.Cut(body, []byte(":"))
	if !ok {
		return nil, fmt.Errorf("%w: missing length", ErrMalformed)
	}
	length, err := strconv.Atoi(string(prefix))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if length != len(value) {
		return nil, fmt.Errorf("%w: length %d does not match %d bytes", ErrMalformed, length, len(value))
	}
	return value, nil
}

// Decode decodes the stored representation of an object of the given kind.
// Integers decode into an int32, strings into a string.
func Decode(kind Kind, raw []byte) (any, error) {
	switch kind {
	case KindInteger:
		value, err := ParseInteger(raw)
		if err != nil {
			return nil, err
		}
		return value, nil
	case KindString:
		value, err := ParseString(raw)
		if err != nil {
			return nil, err
		}
		return string(value), nil
	default:
		return nil, fmt.Errorf("%w: unknown kind %q", ErrMalformed, kind)
	}
}
