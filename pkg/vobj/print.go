package vobj

import (
	"fmt"
	"io"
	"os"
)

// FprintString formats the contents of s according to format and writes them to w.
// format receives a single string operand.
//
// Returns the number of bytes written.
// When s can not be resolved, returns -1 and [ErrInvalidArgument].
func FprintString(w io.Writer, format string, s *String) (int, error) {
	value, ok := s.resolve()
	if !ok {
		return -1, ErrInvalidArgument
	}
	return fmt.Fprintf(w, format, value)
}

// PrintString is like [FprintString] but writes to standard output.
func PrintString(format string, s *String) (int, error) {
	return FprintString(os.Stdout, format, s)
}

// FprintInteger formats the value of i according to format and writes it to w.
// format receives a single int32 operand.
//
// Returns the number of bytes written.
// When i can not be resolved, returns -1 and [ErrInvalidArgument].
func FprintInteger(w io.Writer, format string, i *Integer) (int, error) {
	value, ok := i.resolve()
	if !ok {
		return -1, ErrInvalidArgument
	}
	return fmt.Fprintf(w, format, value)
}

// PrintInteger is like [FprintInteger] but writes to standard output.
func PrintInteger(format string, i *Integer) (int, error) {
	return FprintInteger(os.Stdout, format, i)
}
