package vobj

import (
	"fmt"
	"math"

	"github.com/FAU-CDI/vobox/pkg/omap"
)

// Integer is an immutable 32-bit signed integer.
//
// An Integer is a handle; the value is stored inside the [Runtime] that created it.
// Arithmetic never wraps around; results outside the range of an int32 fail with [ErrRange].
type Integer struct {
	rt *Runtime
	id omap.ID
}

// NewInteger creates a new integer holding value.
func (rt *Runtime) NewInteger(value int32) (*Integer, error) {
	if rt == nil {
		return nil, ErrInvalidArgument
	}

	payload := new(int32)
	*payload = value

	id, err := create(rt, &rt.integers, payload)
	if err != nil {
		return nil, err
	}
	return &Integer{rt: rt, id: id}, nil
}

// DeleteInteger deletes the integer referenced by ref and clears the reference.
// It is a no-op when ref or *ref is nil.
func DeleteInteger(ref **Integer) {
	if ref == nil || *ref == nil {
		return
	}
	(*ref).Delete()
	*ref = nil
}

// Delete deletes this integer.
// Any persisted record is removed, and the handle is wiped.
func (i *Integer) Delete() {
	if i == nil || i.rt == nil {
		return
	}
	destroy(i.rt, &i.rt.integers, i.id)
	i.rt, i.id = nil, 0
}

// ID returns the identity of this integer.
func (i *Integer) ID() omap.ID {
	if i == nil {
		return 0
	}
	return i.id
}

// Kind returns [KindInteger].
func (i *Integer) Kind() Kind {
	return KindInteger
}

// Live checks if this integer can still be resolved.
func (i *Integer) Live() bool {
	_, ok := i.resolve()
	return ok
}

func (i *Integer) resolve() (int32, bool) {
	if i == nil || i.rt == nil {
		return 0, false
	}
	value, ok := i.rt.integers.objects.Get(i.id)
	if !ok {
		return 0, false
	}
	return *value, true
}

// Value returns the value of this integer.
// When i can not be resolved, returns 0 and [ErrInvalidArgument].
func (i *Integer) Value() (int32, error) {
	value, ok := i.resolve()
	if !ok {
		return 0, ErrInvalidArgument
	}
	return value, nil
}

// String formats the value of this integer in decimal.
func (i *Integer) String() string {
	value, ok := i.resolve()
	if !ok {
		return "<invalid>"
	}
	return fmt.Sprint(value)
}

// apply resolves i and other, and stores op(i, other) in a new integer.
func (i *Integer) apply(other *Integer, op func(a, b int64) (int64, error)) (*Integer, error) {
	a, ok := i.resolve()
	if !ok {
		return nil, ErrInvalidArgument
	}
	if other == nil || other.rt != i.rt {
		return nil, ErrInvalidArgument
	}
	b, ok := other.resolve()
	if !ok {
		return nil, ErrInvalidArgument
	}

	result, err := op(int64(a), int64(b))
	if err != nil {
		return nil, err
	}
	if result < math.MinInt32 || result > math.MaxInt32 {
		return nil, fmt.Errorf("%w: %d does not fit into 32 bits", ErrRange, result)
	}
	return i.rt.NewInteger(int32(result))
}

// Add returns a new integer holding i + other.
func (i *Integer) Add(other *Integer) (*Integer, error) {
	return i.apply(other, func(a, b int64) (int64, error) {
		return a + b, nil
	})
}

// Subtract returns a new integer holding i - other.
func (i *Integer) Subtract(other *Integer) (*Integer, error) {
	return i.apply(other, func(a, b int64) (int64, error) {
		return a - b, nil
	})
}

// Multiply returns a new integer holding i * other.
func (i *Integer) Multiply(other *Integer) (*Integer, error) {
	return i.apply(other, func(a, b int64) (int64, error) {
		return a * b, nil
	})
}

// checkDivisor checks that a / b can be represented.
func checkDivisor(a, b int64) error {
	if b == 0 {
		return fmt.Errorf("%w: division by zero", ErrRange)
	}
	if a == math.MinInt32 && b == -1 {
		return fmt.Errorf("%w: %d / -1 overflows", ErrRange, a)
	}
	return nil
}

// Divide returns a new integer holding i / other.
// The division truncates towards zero.
func (i *Integer) Divide(other *Integer) (*Integer, error) {
	return i.apply(other, func(a, b int64) (int64, error) {
		if err := checkDivisor(a, b); err != nil {
			return 0, err
		}
		return a / b, nil
	})
}

// Modulo returns a new integer holding the remainder of i / other.
// The result has the sign of i.
func (i *Integer) Modulo(other *Integer) (*Integer, error) {
	return i.apply(other, func(a, b int64) (int64, error) {
		if err := checkDivisor(a, b); err != nil {
			return 0, err
		}
		return a % b, nil
	})
}
