// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package gates

import (
	"strconv"

	"github.com/db47h/logicsim"
)

// LibNamespace is the namespace of the composite components in this package.
//
const LibNamespace = "lib"

func chip(n string, inputs, outputs string, parts ...logicsim.Part) *logicsim.Component {
	c, err := logicsim.Chip(logicsim.Name{Namespace: LibNamespace, Name: n},
		logicsim.IO(inputs), logicsim.IO(outputs), parts...)
	if err != nil {
		panic(err)
	}
	return c
}

// HalfAdder returns a half adder.
//
//	Inputs: a, b
//	Outputs: s, c
//	Function: s = lsb(a + b)
//	          c = msb(a + b)
//
func HalfAdder() *logicsim.Component {
	return chip("half_adder", "a, b", "s, c",
		Xor(2).Wire("a=a, b=b, out=s"),
		And(2).Wire("a=a, b=b, out=c"),
	)
}

func fullAdderParts() []logicsim.Part {
	xor, and, or := Xor(2), And(2), Or(2)
	return []logicsim.Part{
		xor.Wire("a=a, b=b, out=x"),
		xor.Wire("a=x, b=cin, out=s"),
		and.Wire("a=x, b=cin, out=c1"),
		and.Wire("a=a, b=b, out=c2"),
		or.Wire("a=c1, b=c2, out=cout"),
	}
}

// FullAdder returns a full adder built from XOR, AND and OR gates. Its nodes
// are in dependency order and it settles in a single tick.
//
//	Inputs: a, b, cin
//	Outputs: s, cout
//	Function: s = lsb(a + b + cin)
//	          cout = msb(a + b + cin)
//
func FullAdder() *logicsim.Component {
	return chip("full_adder", "a, b, cin", "s, cout", fullAdderParts()...)
}

// FullAdderReversed returns the same full adder as FullAdder with its nodes
// in reverse dependency order. It needs up to 3 ticks to settle.
//
func FullAdderReversed() *logicsim.Component {
	parts := fullAdderParts()
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return chip("full_adder_reversed", "a, b, cin", "s, cout", parts...)
}

// Adder returns an n-bits ripple carry adder made of nested adder
// components.
//
//	Inputs: a[bits], b[bits]
//	Outputs: out[bits], c
//	Function: out = lsb(a + b)
//	          c = carry out
//
func Adder(bits int) *logicsim.Component {
	if bits < 1 {
		panic("gates: invalid adder size")
	}
	bs := strconv.Itoa(bits)
	ha, fa := HalfAdder(), FullAdder()
	carry := func(i int) string {
		if i == bits-1 {
			return "c"
		}
		return "c" + strconv.Itoa(i)
	}
	parts := []logicsim.Part{ha.Wire("a=a[0], b=b[0], s=out[0], c=" + carry(0))}
	for i := 1; i < bits; i++ {
		is := strconv.Itoa(i)
		parts = append(parts, fa.Wire("a=a["+is+"], b=b["+is+"], cin="+carry(i-1)+", s=out["+is+"], cout="+carry(i)))
	}
	return chip("adder"+bs, "a["+bs+"], b["+bs+"]", "out["+bs+"], c", parts...)
}

// Mux returns a multiplexer.
//
//	Inputs: a, b, sel
//	Outputs: out
//	Function: if sel == 0 { out = a } else { out = b }
//
func Mux() *logicsim.Component {
	and := And(2)
	return chip("mux", "a, b, sel", "out",
		Not().Wire("in=sel, out=nsel"),
		and.Wire("a=a, b=nsel, out=w0"),
		and.Wire("a=b, b=sel, out=w1"),
		Or(2).Wire("a=w0, b=w1, out=out"),
	)
}

// DMux returns a demultiplexer.
//
//	Inputs: in, sel
//	Outputs: a, b
//	Function: if sel == 0 { a = in; b = 0 } else { a = 0; b = in }
//
func DMux() *logicsim.Component {
	and := And(2)
	return chip("dmux", "in, sel", "a, b",
		Not().Wire("in=sel, out=nsel"),
		and.Wire("a=in, b=nsel, out=a"),
		and.Wire("a=in, b=sel, out=b"),
	)
}

// SRLatch returns a set-reset latch made of two cross-coupled NOR gates. From
// a fresh state with both inputs low, it settles with q set.
//
//	Inputs: s, r
//	Outputs: q, nq
//	Function: s = 1 sets q, r = 1 resets q, q holds its value while s = r = 0
//
func SRLatch() *logicsim.Component {
	nor := Nor(2)
	return chip("sr_latch", "s, r", "q, nq",
		nor.Wire("a=r, b=nq, out=q"),
		nor.Wire("a=s, b=q, out=nq"),
	)
}

// Register adds all the gates of this package to reg: n-input gates for n
// from 2 to MaxInputs, Not and Buf in the builtin namespace, and the
// composite components in the lib namespace.
//
func Register(reg *logicsim.Registry) {
	for n := 2; n <= MaxInputs; n++ {
		reg.Add(And(n))
		reg.Add(Or(n))
		reg.Add(Nand(n))
		reg.Add(Nor(n))
		reg.Add(Xor(n))
		reg.Add(Xnor(n))
	}
	reg.Add(Not())
	reg.Add(Buf())
	reg.Add(HalfAdder())
	reg.Add(FullAdder())
	reg.Add(FullAdderReversed())
	reg.Add(Adder(4))
	reg.Add(Mux())
	reg.Add(DMux())
	reg.Add(SRLatch())
}
