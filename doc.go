/*
Package logicsim simulates combinational logic circuits built as netlists of
components.

A Component has named input and output pins and its behavior is given either
by a Table (a truth table) or by a Netlist: a graph of nodes, each
instantiating another component, connected to each other and to the
netlist's own inputs and outputs.

	and := gates.And(2)
	xor := gates.Xor(2)

	n := logicsim.NewNetlist(2, 2)   // inputs a, b; outputs s, c
	x := n.NewNode(xor)
	y := n.NewNode(and)
	n.Connect(logicsim.BoundaryPort(0), logicsim.NodePort(x, 0))
	...

A netlist is evaluated by a State, one propagation pass (Tick) at a time.
Nodes are evaluated in the order they were added to the netlist, reading and
writing connection values in place. A netlist whose nodes were added from
inputs to outputs settles in one tick; otherwise, or with feedback loops,
several ticks are needed. This is how latches keep their value between ticks.

Netlists with up to MaxTableInputs inputs can be compiled into a Table, which
can then be used as a primitive in other netlists:

	t, err := n.CompileContext(ctx, logicsim.WithWorkers(0))

Components are catalogued in a Registry, where they can be looked up by name
and minimum input count.
*/
package logicsim
