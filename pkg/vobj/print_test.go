package vobj

import (
	"bytes"
	"errors"
	"testing"
)

func TestFprint(t *testing.T) {
	rt := newRuntime(t, Options{})
	s := mustString(t, rt, "hello")
	i := mustInteger(t, rt, -12)

	var buffer bytes.Buffer

	if n, err := FprintString(&buffer, "s: %s\n", s); n != 9 || err != nil {
		t.Errorf("FprintString() = %d, %v", n, err)
	}
	if n, err := FprintInteger(&buffer, "i: %d\n", i); n != 7 || err != nil {
		t.Errorf("FprintInteger() = %d, %v", n, err)
	}
	if got, want := buffer.String(), "s: hello\ni: -12\n"; got != want {
		t.Errorf("wrote %q, want %q", got, want)
	}

	buffer.Reset()
	DeleteString(&s)
	DeleteInteger(&i)

	if n, err := FprintString(&buffer, "%s", s); n != -1 || !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("FprintString(nil) = %d, %v", n, err)
	}
	if n, err := FprintInteger(&buffer, "%d", i); n != -1 || !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("FprintInteger(nil) = %d, %v", n, err)
	}
	if buffer.Len() != 0 {
		t.Errorf("failed print wrote %q", buffer.String())
	}
}

func ExamplePrintString() {
	rt, _ := New(Options{})
	defer rt.Close()

	s, _ := rt.NewString("hello")
	defer DeleteString(&s)

	PrintString("s: %s\n", s)
	PrintString("empty: %s\n", nil)

	// Output: s: hello
}
