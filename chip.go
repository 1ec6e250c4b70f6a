// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import (
	"github.com/db47h/logicsim/internal/hdl"
	"github.com/pkg/errors"
)

// A Part wraps a component together with its connections within a chip. See
// Chip.
//
type Part struct {
	Component *Component
	Wires     string
}

// Wire returns a Part wiring c with the given connection string.
//
func (c *Component) Wire(wires string) Part {
	return Part{c, wires}
}

// wire tracks the ports connected to a named wire of a chip.
//
type wire struct {
	ports   []Port
	input   bool // chip input
	output  bool // chip output
	driven  bool
	driver  Port // part output port driving the wire
	readers int
}

// Chip composes parts into a new component backed by a netlist. The pin names
// specified as inputs and outputs will be the inputs and outputs of the chip.
// Part pins are wired with connection strings of the form "pin=wire, ...",
// where wire is either one of the chip's pins or an internal wire name:
//
//	xor, err := Chip(ParseName("user:xor"), IO("a, b"), IO("out"),
//		nand.Wire("a=a, b=b, out=nandAB"),
//		nand.Wire("a=a, b=nandAB, out=w0"),
//		nand.Wire("a=b, b=nandAB, out=w1"),
//		nand.Wire("a=w0, b=w1, out=out"),
//	)
//
// Nodes are added to the netlist in the order of the parts. Part input pins
// that are not wired read false.
//
func Chip(name Name, inputs, outputs []string, parts ...Part) (*Component, error) {
	n := NewNetlist(len(inputs), len(outputs))
	wires := make(map[string]*wire)
	var order []string
	get := func(name string) *wire {
		w := wires[name]
		if w == nil {
			w = new(wire)
			wires[name] = w
			order = append(order, name)
		}
		return w
	}

	for i, in := range inputs {
		w := get(in)
		w.input = true
		w.ports = append(w.ports, BoundaryPort(i))
	}
	for i, out := range outputs {
		w := get(out)
		w.output = true
		w.ports = append(w.ports, BoundaryPort(len(inputs)+i))
	}

	for _, p := range parts {
		c := p.Component
		conns, err := hdl.ParseConnections(p.Wires)
		if err != nil {
			return nil, errors.Wrapf(err, "part %s", c.Name().Name)
		}
		h := n.NewNode(c)
		used := make(map[string]bool, len(conns))
		for _, cn := range conns {
			idx := c.Pin(cn.Pin)
			if idx < 0 {
				return nil, errors.Errorf("invalid pin name %s for part %s", cn.Pin, c.Name().Name)
			}
			pin := c.Name().Name + "." + cn.Pin
			w := get(cn.Wire)
			if idx < c.InputCount() {
				if used[cn.Pin] {
					return nil, errors.Errorf("%s input pin %s connected to more than one wire", c.Name().Name, cn.Pin)
				}
				used[cn.Pin] = true
				w.readers++
			} else {
				switch {
				case w.input:
					return nil, errors.Errorf("%s:%s: chip input pin used as output", pin, cn.Wire)
				case w.driven && w.driver != NodePort(h, idx):
					return nil, errors.Errorf("%s:%s: output pin already used as output", pin, cn.Wire)
				}
				w.driven, w.driver = true, NodePort(h, idx)
			}
			w.ports = append(w.ports, NodePort(h, idx))
		}
	}

	for _, name := range order {
		w := wires[name]
		switch {
		case w.readers > 0 && !w.driven && !w.input:
			return nil, errors.Errorf("pin %s not connected to any output", name)
		case w.driven && w.readers == 0 && !w.output:
			return nil, errors.Errorf("pin %s not connected to any input", name)
		}
		for _, p := range w.ports[1:] {
			if err := n.Connect(w.ports[0], p); err != nil {
				return nil, errors.Wrapf(err, "wire %s", name)
			}
		}
	}

	return NewNetlistComponent(name, inputs, outputs, n)
}

// Wrap returns a netlist with a single node of c, each pin of which is
// connected to the matching boundary port. It is used to evaluate table
// components with a State.
//
func Wrap(c *Component) *Netlist {
	n := NewNetlist(c.InputCount(), c.OutputCount())
	h := n.NewNode(c)
	for i := 0; i < c.InputCount()+c.OutputCount(); i++ {
		// cannot fail: both ports exist.
		_ = n.Connect(BoundaryPort(i), NodePort(h, i))
	}
	return n
}
