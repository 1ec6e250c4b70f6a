// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package simtest provides utility functions for testing components.
//
package simtest

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/db47h/logicsim"
)

// exhaustive testing is used up to that many inputs.
const maxExhaustive = 12

// newState returns a fresh state for c.
//
func newState(t testing.TB, c *logicsim.Component) *logicsim.State {
	t.Helper()
	n, ok := c.Netlist()
	if !ok {
		n = logicsim.Wrap(c)
	}
	s, err := logicsim.NewState(n)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

// eval returns the outputs of c for the given inputs after ticks ticks from a
// fresh state.
//
func eval(t testing.TB, c *logicsim.Component, ticks int, in uint64) uint64 {
	t.Helper()
	s := newState(t, c)
	s.SetInputsUint64(in)
	for i := 0; i < ticks; i++ {
		s.Tick()
	}
	return s.OutputsUint64()
}

func errString(c *logicsim.Component, in uint64, name string, ex, got bool) string {
	var b strings.Builder
	for i, n := range c.Inputs() {
		if b.Len() > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s=%v", n, in>>uint(i)&1 != 0)
	}
	return fmt.Sprintf("\n%s: expected %s => %s=%v\nGot %v", c, b.String(), name, ex, got)
}

// CompareComponents takes two components and compares their outputs given the
// same inputs. Both components must have the same pins. Outputs are sampled
// after ticks ticks from a fresh state.
//
// All input patterns are tested for components with up to 12 inputs. Above
// that, inputs all false, all true, and 4096 random patterns are tested.
//
func CompareComponents(t testing.TB, a, b *logicsim.Component, ticks int) {
	t.Helper()

	if a.InputCount() != b.InputCount() {
		t.Fatalf("a.InputCount() = %d != b.InputCount() = %d", a.InputCount(), b.InputCount())
	}
	if a.OutputCount() != b.OutputCount() {
		t.Fatalf("a.OutputCount() = %d != b.OutputCount() = %d", a.OutputCount(), b.OutputCount())
	}
	for i, n := range a.Inputs() {
		if n != b.Inputs()[i] {
			t.Fatalf("a.Inputs()[%d] = %q != b.Inputs()[%d] = %q", i, n, i, b.Inputs()[i])
		}
	}
	for i, n := range a.Outputs() {
		if n != b.Outputs()[i] {
			t.Fatalf("a.Outputs()[%d] = %q != b.Outputs()[%d] = %q", i, n, i, b.Outputs()[i])
		}
	}

	ins := a.InputCount()
	if ins > 64 {
		t.Fatalf("%s: too many inputs", a)
	}
	mask := ^uint64(0)
	if ins < 64 {
		mask = 1<<uint(ins) - 1
	}

	var patterns []uint64
	if ins <= maxExhaustive {
		for in := uint64(0); in <= mask; in++ {
			patterns = append(patterns, in)
		}
	} else {
		rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
		patterns = append(patterns, 0, mask)
		for i := 0; i < 1<<maxExhaustive; i++ {
			patterns = append(patterns, rnd.Uint64()&mask)
		}
	}

	start := time.Now()
	for _, in := range patterns {
		oa, ob := eval(t, a, ticks, in), eval(t, b, ticks, in)
		for o, name := range a.Outputs() {
			va, vb := oa>>uint(o)&1 != 0, ob>>uint(o)&1 != 0
			if va != vb {
				t.Fatal(errString(b, in, name, va, vb))
			}
		}
	}
	t.Logf("%s vs %s: %d patterns in %v", a, b, len(patterns), time.Since(start))
}

// Expect checks the outputs of c for every input pattern against rows, sampled
// after ticks ticks from a fresh state. rows[i] holds the expected outputs for
// input pattern i, output j being bit j.
//
func Expect(t testing.TB, c *logicsim.Component, ticks int, rows []uint64) {
	t.Helper()
	if n := 1 << uint(c.InputCount()); len(rows) != n {
		t.Fatalf("%s: got %d rows, expected %d", c, len(rows), n)
	}
	for in, ex := range rows {
		got := eval(t, c, ticks, uint64(in))
		for o, name := range c.Outputs() {
			ve, vg := ex>>uint(o)&1 != 0, got>>uint(o)&1 != 0
			if ve != vg {
				t.Error(errString(c, uint64(in), name, ve, vg))
			}
		}
	}
}
