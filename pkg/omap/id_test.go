package omap

import (
	"bytes"
	"fmt"
	"math"
	"testing"
)

func ExampleID() {

	// create a new id -- which isn't valid
	var id ID
	fmt.Println(id)
	fmt.Println(id.Valid())

	// increment the id -- it is now valid
	fmt.Println(id.Inc())
	fmt.Println(id.Valid())

	// create the value 42
	var big ID
	for i := 0; i < 42; i++ {
		big.Inc()
	}

	// compare it to the other id
	fmt.Println(big)
	fmt.Println(id.Less(big))

	// Output: 0x0
	// false
	// 0x1
	// true
	// 0x2a
	// true
}

func TestID_Inc_Overflow(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Inc() did not panic on overflow")
		}
	}()

	id := ID(math.MaxUint64)
	id.Inc()
}

// maximum number for the ID "torture tests"
const testIDMax = 1 << 16

func TestParseID(t *testing.T) {
	var id ID
	for i := 0; i < testIDMax; i++ {
		id.Inc()

		got, err := ParseID(id.String())
		if err != nil {
			t.Fatalf("ParseID(%q) returned error %s", id.String(), err)
		}
		if got != id {
			t.Errorf("ParseID(%q) = %d, want = %d", id.String(), got, id)
		}
	}

	for _, bad := range []string{"", "12", "0x", "0xzz", "x12"} {
		if _, err := ParseID(bad); err == nil {
			t.Errorf("ParseID(%q) did not return an error", bad)
		}
	}
}

// Test that the order of ids is preserved by their encoding.
func TestID_Order(t *testing.T) {
	bytesI := make([]byte, IDLen)
	bytesJ := make([]byte, IDLen)

	for _, i := range []ID{0, 1, 255, 256, 1 << 32, math.MaxUint64} {
		i.Encode(bytesI)
		for _, j := range []ID{0, 1, 255, 256, 1 << 32, math.MaxUint64} {
			j.Encode(bytesJ)

			got := bytes.Compare(bytesI, bytesJ)
			want := 0
			if i < j {
				want = -1
			} else if i > j {
				want = 1
			}
			if got != want {
				t.Errorf("compare(%s, %s) = %v, want %v", i, j, got, want)
			}
		}
	}
}

func TestMarshalID(t *testing.T) {
	for _, want := range []ID{1, 0xdeadbeef, math.MaxUint64} {
		data, err := MarshalID(want)
		if err != nil {
			t.Fatalf("MarshalID() returned error %s", err)
		}

		var got ID
		if err := UnmarshalID(&got, data); err != nil {
			t.Fatalf("UnmarshalID() returned error %s", err)
		}
		if got != want {
			t.Errorf("UnmarshalID() got = %s, want = %s", got, want)
		}
	}

	var id ID
	if err := UnmarshalID(&id, []byte{1, 2, 3}); err == nil {
		t.Error("UnmarshalID() accepted a short slice")
	}
}

func BenchmarkID_Inc(b *testing.B) {
	var id ID
	for i := 0; i < b.N; i++ {
		id.Reset()
		for j := 0; j < testIDMax; j++ {
			id.Inc()
		}
	}
}
