package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/FAU-CDI/vobox/pkg/omap"
	"github.com/FAU-CDI/vobox/pkg/vobj"
)

// demoString walks through the string operations.
// All created strings are deleted before returning.
func demoString(w io.Writer, rt *vobj.Runtime) (err error) {
	var created []*vobj.String
	defer func() {
		for _, s := range created {
			s.Delete()
		}
	}()

	// newString creates a string and remembers it for deletion
	newString := func(s *vobj.String, e error) *vobj.String {
		if e != nil && err == nil {
			err = e
		}
		if s != nil {
			created = append(created, s)
		}
		return s
	}

	s := newString(rt.NewString("hello"))
	t := newString(rt.NewString("again"))
	sp := newString(rt.NewString(" "))
	u := newString(s.Concat(sp))
	v := newString(u.Concat(t))
	if err != nil {
		return err
	}

	for _, e := range []struct {
		name string
		s    *vobj.String
	}{{"s", s}, {"t", t}, {"u", u}, {"v", v}} {
		length, _ := e.s.Length()
		fmt.Fprintf(w, "%s length: %d\n", e.name, length)
	}

	sl, _ := s.Length()
	buf := make([]byte, sl+1)
	sv, err := s.Value(buf)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "sv (%d): %q\n", len(sv), sv)
	vobj.FprintString(w, "v: %q\n", v)

	for i := 0; i < sl; i++ {
		c, _ := s.CharAt(i)
		fmt.Fprintf(w, "%c\n", c)
	}
	if _, err := s.CharAt(sl); err != nil {
		fmt.Fprintf(w, "char_at error: %s\n", err)
	}

	count := 0
	for start := 0; ; {
		index, _ := s.IndexOf('l', start)
		if index < 0 {
			break
		}
		count++
		fmt.Fprintf(w, "index of number %d %c in %s is %d\n", count, 'l', sv, index)
		start = index + 1
	}

	s2 := newString(rt.NewString("hello"))
	fmt.Fprintf(w, "s.equals(s2) is %t\n", s.Equals(s2))

	path := newString(rt.NewString("usr/local:bin"))
	delim := newString(rt.NewString("/:"))
	if err != nil {
		return err
	}
	tokens, err := path.Split(delim)
	created = append(created, tokens...)
	if err != nil {
		return err
	}
	vobj.FprintString(w, "path: %s\n", path)
	for i, token := range tokens {
		fmt.Fprintf(w, "token[%d]: ", i)
		vobj.FprintString(w, "%s\n", token)
	}

	for _, sub := range []struct {
		name          string
		start, length int
	}{
		{"hello", 0, 5},
		{"ello", 1, 4},
		{"hell", 0, 4},
		{"o", 4, 1},
		{"empty", 1, 0},
	} {
		result := newString(s.Substring(sub.start, sub.length))
		if err != nil {
			return err
		}
		vobj.FprintString(w, sub.name+": %q\n", result)
	}
	return nil
}

// demoInteger walks through the integer operations.
// All created integers are deleted before returning.
func demoInteger(w io.Writer, rt *vobj.Runtime) error {
	a, err := rt.NewInteger(-7)
	if err != nil {
		return err
	}
	defer a.Delete()

	b, err := rt.NewInteger(2)
	if err != nil {
		return err
	}
	defer b.Delete()

	for _, op := range []struct {
		name string
		f    func(*vobj.Integer) (*vobj.Integer, error)
	}{
		{"+", a.Add},
		{"-", a.Subtract},
		{"*", a.Multiply},
		{"/", a.Divide},
		{"%", a.Modulo},
	} {
		result, err := op.f(b)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s %s %s = ", a, op.name, b)
		vobj.FprintInteger(w, "%d\n", result)
		result.Delete()
	}

	zero, err := rt.NewInteger(0)
	if err != nil {
		return err
	}
	defer zero.Delete()

	if _, err := a.Divide(zero); errors.Is(err, vobj.ErrRange) {
		fmt.Fprintf(w, "%s / %s: %s\n", a, zero, err)
	}
	return nil
}

// demoMap walks through the object map operations using a map with the given number of buckets.
func demoMap(w io.Writer, buckets int) error {
	m, err := omap.New[int](buckets)
	if err != nil {
		return err
	}
	defer omap.Destroy(&m)

	var last omap.ID
	keys := make([]omap.ID, 10)
	for i := range keys {
		keys[i] = last.Inc()

		value := i
		if err := m.Set(keys[i], &value); err != nil {
			return err
		}
	}

	for _, key := range keys {
		fmt.Fprintf(w, "Entry in map - key: %s, val: %d\n", key, *m.GetZero(key))
	}
	for _, key := range keys {
		value, _ := m.Delete(key)
		fmt.Fprintf(w, "Entry deleted from map - key: %s, val: %d\n", key, *value)
	}
	for _, key := range keys {
		if m.Has(key) {
			fmt.Fprintf(w, "Error, entry for %s should be absent\n", key)
		} else {
			fmt.Fprintf(w, "Entry for %s not in map\n", key)
		}
	}
	return nil
}
