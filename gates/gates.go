// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package gates provides a library of reusable components for logicsim: truth
// table gates and netlists built from them.
//
package gates

import (
	"math/bits"

	"github.com/db47h/logicsim"
)

// Namespace of the gates in this package.
//
const Namespace = "builtin"

// MaxInputs is the maximum number of inputs of the n-input gates.
//
const MaxInputs = 8

// common pin names
const (
	pIn  = "in"
	pOut = "out"
)

var gatePins = []string{"a", "b", "c", "d", "e", "f", "g", "h"}

func name(n string) logicsim.Name {
	return logicsim.Name{Namespace: Namespace, Name: n}
}

// newGate returns a single output gate with n inputs. fn receives the number
// of inputs set and returns the output.
//
func newGate(gate string, n int, fn func(set, n int) bool) *logicsim.Component {
	if n < 1 || n > MaxInputs {
		panic("gates: invalid input count for " + gate)
	}
	t := logicsim.MustTable(logicsim.NewTableFunc(n, 1, func(in uint64) uint64 {
		if fn(bits.OnesCount64(in), n) {
			return 1
		}
		return 0
	}))
	c, err := logicsim.NewTableComponent(name(gate), gatePins[:n], []string{pOut}, t)
	if err != nil {
		panic(err)
	}
	return c
}

// And returns an n-input AND gate. n must be in the range [1, MaxInputs].
//
//	Inputs: a, b, ...
//	Outputs: out
//	Function: out = a && b && ...
//
func And(n int) *logicsim.Component {
	return newGate("and", n, func(set, n int) bool { return set == n })
}

// Nand returns an n-input NAND gate.
//
//	Inputs: a, b, ...
//	Outputs: out
//	Function: out = !(a && b && ...)
//
func Nand(n int) *logicsim.Component {
	return newGate("nand", n, func(set, n int) bool { return set != n })
}

// Or returns an n-input OR gate.
//
//	Inputs: a, b, ...
//	Outputs: out
//	Function: out = a || b || ...
//
func Or(n int) *logicsim.Component {
	return newGate("or", n, func(set, _ int) bool { return set > 0 })
}

// Nor returns an n-input NOR gate.
//
//	Inputs: a, b, ...
//	Outputs: out
//	Function: out = !(a || b || ...)
//
func Nor(n int) *logicsim.Component {
	return newGate("nor", n, func(set, _ int) bool { return set == 0 })
}

// Xor returns an n-input XOR gate. Its output is true if exactly one input is
// true, which for more than 2 inputs differs from a parity gate.
//
//	Inputs: a, b, ...
//	Outputs: out
//	Function: out = count(inputs set) == 1
//
func Xor(n int) *logicsim.Component {
	return newGate("xor", n, func(set, _ int) bool { return set == 1 })
}

// Xnor returns an n-input XNOR gate, the negation of Xor.
//
//	Inputs: a, b, ...
//	Outputs: out
//	Function: out = count(inputs set) != 1
//
func Xnor(n int) *logicsim.Component {
	return newGate("xnor", n, func(set, _ int) bool { return set != 1 })
}

func unary(gate string, fn func(in uint64) uint64) *logicsim.Component {
	t := logicsim.MustTable(logicsim.NewTableFunc(1, 1, fn))
	c, err := logicsim.NewTableComponent(name(gate), []string{pIn}, []string{pOut}, t)
	if err != nil {
		panic(err)
	}
	return c
}

// Not returns a NOT gate.
//
//	Inputs: in
//	Outputs: out
//	Function: out = !in
//
func Not() *logicsim.Component {
	return unary("not", func(in uint64) uint64 { return in ^ 1 })
}

// Buf returns a buffer.
//
//	Inputs: in
//	Outputs: out
//	Function: out = in
//
func Buf() *logicsim.Component {
	return unary("buf", func(in uint64) uint64 { return in })
}
