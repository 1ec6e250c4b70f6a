package logicsim_test

import (
	"context"
	"fmt"

	"github.com/db47h/logicsim"
	"github.com/db47h/logicsim/gates"
)

// Chip example with a custom 2 to 1 multiplexer.
func ExampleChip() {
	nand := gates.Nand(2)
	mux, err := logicsim.Chip(logicsim.ParseName("user:mux"), logicsim.IO("a, b, sel"), logicsim.IO("out"),
		gates.Not().Wire("in=sel, out=nsel"),
		nand.Wire("a=a, b=nsel, out=w0"),
		nand.Wire("a=b, b=sel, out=w1"),
		nand.Wire("a=w0, b=w1, out=out"),
	)
	if err != nil {
		panic(err)
	}
	n, _ := mux.Netlist()
	s, err := logicsim.NewState(n)
	if err != nil {
		panic(err)
	}

	s.SetInput(0, true)
	s.SetInput(1, false)
	for _, sel := range []bool{false, true} {
		s.SetInput(2, sel)
		s.Tick()
		fmt.Printf("a=%v, b=%v, sel=%v => out=%v\n", s.Input(0), s.Input(1), sel, s.Output(0))
	}

	// Output:
	// a=true, b=false, sel=false => out=true
	// a=true, b=false, sel=true => out=false
}

// Compile a 4 bits adder into a truth table, then use it as a primitive.
func ExampleNetlist_CompileContext() {
	add := gates.Adder(4)
	n, _ := add.Netlist()
	t, err := n.CompileContext(context.Background(), logicsim.WithWorkers(0))
	if err != nil {
		panic(err)
	}
	fast, err := logicsim.NewTableComponent(logicsim.ParseName("user:adder4"), add.Inputs(), add.Outputs(), t)
	if err != nil {
		panic(err)
	}
	fmt.Println(fast, t.Rows())

	s, _ := logicsim.NewState(logicsim.Wrap(fast))
	s.SetInputsUint64(9 | 8<<4)
	s.Tick()
	fmt.Println(s.OutputsUint64())

	// Output:
	// user:adder4;8 256
	// 17
}
