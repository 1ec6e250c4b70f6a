// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import (
	"fmt"
	"iter"

	"github.com/db47h/logicsim/arena"
	"github.com/pkg/errors"
)

// A ConnID identifies a connection: a set of ports wired together. Connection
// ids of a netlist are dense, from 0 to ConnectionCount()-1.
//
type ConnID uint32

// Unconnected is the connection id of unconnected ports.
//
const Unconnected = ^ConnID(0)

// A Node is an instance of a component within a netlist.
//
type Node struct {
	component *Component
	inputs    []ConnID
	outputs   []ConnID
}

func newNode(c *Component) Node {
	n := Node{
		component: c,
		inputs:    make([]ConnID, c.InputCount()),
		outputs:   make([]ConnID, c.OutputCount()),
	}
	unconnect(n.inputs)
	unconnect(n.outputs)
	return n
}

func unconnect(ids []ConnID) {
	for i := range ids {
		ids[i] = Unconnected
	}
}

// Component returns the component instantiated by the node.
//
func (n *Node) Component() *Component { return n.component }

// InputCount returns the number of input ports.
//
func (n *Node) InputCount() int { return len(n.inputs) }

// OutputCount returns the number of output ports.
//
func (n *Node) OutputCount() int { return len(n.outputs) }

// Input returns the connection of the i-th input port.
//
func (n *Node) Input(i int) ConnID { return n.inputs[i] }

// Output returns the connection of the i-th output port.
//
func (n *Node) Output(i int) ConnID { return n.outputs[i] }

// NodeHandle is a reference to a node in a netlist. The zero value refers to
// the netlist itself.
//
type NodeHandle = arena.Ref[Node]

// A Port addresses a pin of a node, or of the netlist boundary if Node is the
// zero NodeHandle. Indices below the input count address inputs; outputs
// follow, offset by the input count.
//
type Port struct {
	Node  NodeHandle
	Index int
}

// NodePort returns the port at index i of node h.
//
func NodePort(h NodeHandle, i int) Port { return Port{h, i} }

// BoundaryPort returns the port at index i of the netlist boundary.
//
func BoundaryPort(i int) Port { return Port{Index: i} }

func (p Port) String() string {
	if !p.Node.Valid() {
		return fmt.Sprintf("boundary:%d", p.Index)
	}
	return fmt.Sprintf("node%d:%d", p.Node.Index(), p.Index)
}

// A Netlist is a graph of component nodes connected to each other and to the
// netlist's own input and output ports.
//
// A Netlist must not be modified while a State is bound to it.
//
type Netlist struct {
	nodes   *arena.Arena[Node]
	inputs  []ConnID
	outputs []ConnID
	conns   int
}

// NewNetlist returns a new netlist with the given number of boundary inputs
// and outputs, all unconnected.
//
func NewNetlist(inputs, outputs int) *Netlist {
	n := &Netlist{
		nodes:   arena.New[Node](),
		inputs:  make([]ConnID, inputs),
		outputs: make([]ConnID, outputs),
	}
	unconnect(n.inputs)
	unconnect(n.outputs)
	return n
}

func (*Netlist) payload() {}

// InputCount returns the number of boundary inputs.
//
func (n *Netlist) InputCount() int { return len(n.inputs) }

// OutputCount returns the number of boundary outputs.
//
func (n *Netlist) OutputCount() int { return len(n.outputs) }

// ConnectionCount returns the number of distinct connections.
//
func (n *Netlist) ConnectionCount() int { return n.conns }

// NodeCount returns the number of nodes.
//
func (n *Netlist) NodeCount() int { return n.nodes.Len() }

// NewNode adds a node instantiating c, with all its ports unconnected.
//
func (n *Netlist) NewNode(c *Component) NodeHandle {
	return n.nodes.EmplaceBack(newNode(c))
}

// RemoveNode removes a node. Connections that referenced the node's ports are
// left as is. Handles of other netlists are ignored.
//
func (n *Netlist) RemoveNode(h NodeHandle) {
	if h.Arena() != n.nodes.ID() {
		return
	}
	n.nodes.Erase(h.Index())
}

// Node returns the node referenced by h.
//
func (n *Netlist) Node(h NodeHandle) (*Node, bool) {
	return n.nodes.Resolve(h)
}

// Nodes iterates over nodes in ascending handle index order, which is also
// the evaluation order of a State.
//
func (n *Netlist) Nodes() iter.Seq2[NodeHandle, *Node] {
	return func(yield func(NodeHandle, *Node) bool) {
		for i, nd := range n.nodes.All() {
			if !yield(n.nodes.Ref(i), nd) {
				return
			}
		}
	}
}

// port returns a pointer to the connection id of port p.
//
func (n *Netlist) port(p Port) (*ConnID, error) {
	ins, outs := n.inputs, n.outputs
	if p.Node.Valid() {
		nd, ok := n.nodes.Resolve(p.Node)
		if !ok {
			return nil, errors.Wrapf(ErrInvalidPort, "%v: no such node", p)
		}
		ins, outs = nd.inputs, nd.outputs
	}
	switch {
	case p.Index < 0 || p.Index >= len(ins)+len(outs):
		return nil, errors.Wrapf(ErrInvalidPort, "%v: port index out of range", p)
	case p.Index < len(ins):
		return &ins[p.Index], nil
	default:
		return &outs[p.Index-len(ins)], nil
	}
}

// Connection returns the connection id of port p.
//
func (n *Netlist) Connection(p Port) (ConnID, error) {
	c, err := n.port(p)
	if err != nil {
		return Unconnected, err
	}
	return *c, nil
}

// Connect wires ports a and b together. If both are already connected to
// different connections, these are merged into the lowest id and the
// remaining ids are renumbered so that they stay dense.
//
// Connecting a port to itself is a no-op.
//
func (n *Netlist) Connect(a, b Port) error {
	if a == b {
		return nil
	}
	pa, err := n.port(a)
	if err != nil {
		return err
	}
	pb, err := n.port(b)
	if err != nil {
		return err
	}
	ca, cb := *pa, *pb
	switch {
	case ca == Unconnected && cb == Unconnected:
		ca = ConnID(n.conns)
		n.conns++
	case ca == Unconnected:
		ca = cb
	case cb == Unconnected || ca == cb:
	default:
		lo, hi := min(ca, cb), max(ca, cb)
		n.merge(lo, hi)
		ca = lo
	}
	*pa, *pb = ca, ca
	return nil
}

// merge replaces connection hi with lo everywhere and closes the gap left by
// hi.
//
func (n *Netlist) merge(lo, hi ConnID) {
	remap := func(ids []ConnID) {
		for i, id := range ids {
			switch {
			case id == Unconnected:
			case id == hi:
				ids[i] = lo
			case id > hi:
				ids[i] = id - 1
			}
		}
	}
	remap(n.inputs)
	remap(n.outputs)
	for _, nd := range n.nodes.All() {
		remap(nd.inputs)
		remap(nd.outputs)
	}
	n.conns--
}

// Disconnect is not supported. It returns ErrNotSupported if a and b share a
// connection and nil otherwise. The netlist is never modified.
//
func (n *Netlist) Disconnect(a, b Port) error {
	if a == b {
		return nil
	}
	ca, err := n.Connection(a)
	if err != nil {
		return err
	}
	cb, err := n.Connection(b)
	if err != nil {
		return err
	}
	if ca != cb || ca == Unconnected {
		return nil
	}
	return errors.Wrapf(ErrNotSupported, "disconnect %v from %v", a, b)
}

// Compilable returns true if the netlist has few enough inputs to be compiled
// into a Table.
//
func (n *Netlist) Compilable() bool {
	return len(n.inputs) <= MaxTableInputs
}

// CheckCycles returns ErrCycle if the netlist contains itself, either
// directly or through nested components.
//
func (n *Netlist) CheckCycles() error {
	return n.checkCycles(make(map[*Netlist]bool))
}

// checkCycles walks nested netlists depth first. path[x] is true while x is
// being walked and false once done.
//
func (n *Netlist) checkCycles(path map[*Netlist]bool) error {
	if walking, seen := path[n]; seen {
		if walking {
			return ErrCycle
		}
		return nil
	}
	path[n] = true
	for _, nd := range n.nodes.All() {
		sub, ok := nd.component.Netlist()
		if !ok {
			continue
		}
		if err := sub.checkCycles(path); err != nil {
			return errors.Wrapf(err, "in %s", nd.component)
		}
	}
	path[n] = false
	return nil
}
