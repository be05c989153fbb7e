package vobj

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFormat(t *testing.T) {
	for _, tt := range []struct {
		got, want string
	}{
		{string(FormatInteger(42)), "42\n"},
		{string(FormatInteger(0)), "0\n"},
		{string(FormatInteger(-5)), "-5\n"},
		{string(FormatInteger(math.MinInt32)), "-2147483648\n"},
		{string(FormatString([]byte("hello"))), "5:hello\n"},
		{string(FormatString([]byte{})), "0:\n"},
		{string(FormatString([]byte("a:b\nc"))), "5:a:b\nc\n"},
	} {
		if tt.got != tt.want {
			t.Errorf("got %q, want %q", tt.got, tt.want)
		}
	}
}

func TestParseInteger(t *testing.T) {
	for _, value := range []int32{0, 1, -1, 42, math.MaxInt32, math.MinInt32} {
		got, err := ParseInteger(FormatInteger(value))
		if err != nil || got != value {
			t.Errorf("ParseInteger(FormatInteger(%d)) = %d, %v", value, got, err)
		}
	}

	for _, raw := range []string{"", "42", "\n", "4 2\n", "x\n", "2147483648\n", "42\n\n"} {
		if _, err := ParseInteger([]byte(raw)); !errors.Is(err, ErrMalformed) {
			t.Errorf("ParseInteger(%q) got err = %v, want = %v", raw, err, ErrMalformed)
		}
	}
}

func TestParseString(t *testing.T) {
	for _, value := range []string{"", "hello", "a:b", "multi\nline"} {
		got, err := ParseString(FormatString([]byte(value)))
		if err != nil || string(got) != value {
			t.Errorf("ParseString(FormatString(%q)) = %q, %v", value, got, err)
		}
	}

	for _, raw := range []string{"", "5:hello", "hello\n", "x:hello\n", "4:hello\n", "6:hello\n", "-1:\n"} {
		if _, err := ParseString([]byte(raw)); !errors.Is(err, ErrMalformed) {
			t.Errorf("ParseString(%q) got err = %v, want = %v", raw, err, ErrMalformed)
		}
	}
}

func TestDecode(t *testing.T) {
	got := make([]any, 0, 2)
	for _, tt := range []struct {
		kind Kind
		raw  string
	}{
		{KindInteger, "42\n"},
		{KindString, "5:hello\n"},
	} {
		value, err := Decode(tt.kind, []byte(tt.raw))
		if err != nil {
			t.Fatalf("Decode(%q, %q) returned error %s", tt.kind, tt.raw, err)
		}
		got = append(got, value)
	}

	if diff := cmp.Diff([]any{int32(42), "hello"}, got); diff != "" {
		t.Errorf("Decode() mismatch (-want +got):\n%s", diff)
	}

	if _, err := Decode("float", []byte("1.0\n")); !errors.Is(err, ErrMalformed) {
		t.Errorf("Decode() with unknown kind got err = %v", err)
	}
	if Kind("float").Valid() || !KindString.Valid() || !KindInteger.Valid() {
		t.Error("Kind.Valid() is wrong")
	}
}
