// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import (
	"fmt"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// A Payload is the behavior of a component: either a *Table or a *Netlist.
//
type Payload interface {
	InputCount() int
	OutputCount() int
	payload()
}

// A Component is a named part with a fixed set of input and output pins,
// whose behavior is given by a truth table or by a netlist of other
// components.
//
// Components are immutable and are created with a Builder.
//
type Component struct {
	name    Name
	inputs  []string
	outputs []string
	payload Payload
}

// Name returns the component name.
//
func (c *Component) Name() Name { return c.name }

// Inputs returns the input pin names. The returned slice must not be
// modified.
//
func (c *Component) Inputs() []string { return c.inputs }

// Outputs returns the output pin names. The returned slice must not be
// modified.
//
func (c *Component) Outputs() []string { return c.outputs }

// InputCount returns the number of inputs.
//
func (c *Component) InputCount() int { return len(c.inputs) }

// OutputCount returns the number of outputs.
//
func (c *Component) OutputCount() int { return len(c.outputs) }

// Payload returns the component's table or netlist.
//
func (c *Component) Payload() Payload { return c.payload }

// Table returns the component's truth table, if any.
//
func (c *Component) Table() (*Table, bool) {
	t, ok := c.payload.(*Table)
	return t, ok
}

// Netlist returns the component's netlist, if any.
//
func (c *Component) Netlist() (*Netlist, bool) {
	n, ok := c.payload.(*Netlist)
	return n, ok
}

// Pin returns the port index of the named pin: inputs come first, followed by
// outputs. It returns -1 if there is no such pin.
//
func (c *Component) Pin(name string) int {
	for i, n := range c.inputs {
		if n == name {
			return i
		}
	}
	for i, n := range c.outputs {
		if n == name {
			return len(c.inputs) + i
		}
	}
	return -1
}

func (c *Component) String() string {
	return fmt.Sprintf("%s;%d", c.name, len(c.inputs))
}

// A Builder builds a Component. The payload can be set only once.
//
type Builder struct {
	c Component
}

// NewBuilder returns a Builder for a component with the given name and pin
// names. The arity of the component is fixed by the pin names. Use IO to
// expand a pin list:
//
//	b := NewBuilder(ParseName("user:mux"), IO("a, b, sel"), IO("out"))
//
func NewBuilder(name Name, inputs, outputs []string) *Builder {
	return &Builder{Component{
		name:    name,
		inputs:  append([]string(nil), inputs...),
		outputs: append([]string(nil), outputs...),
	}}
}

// SetTable sets the component's truth table.
//
// It returns ErrPayloadSet if a payload has already been set and
// ErrArityMismatch if the table's input or output count differs from the
// component's. In both cases the builder is left unchanged.
//
func (b *Builder) SetTable(t *Table) error {
	if t == nil {
		return errors.New("nil truth table")
	}
	return b.set("truth table", t)
}

// SetNetlist sets the component's netlist. It follows the same rules as
// SetTable.
//
func (b *Builder) SetNetlist(n *Netlist) error {
	if n == nil {
		return errors.New("nil netlist")
	}
	return b.set("netlist", n)
}

func (b *Builder) set(kind string, p Payload) error {
	c := &b.c
	if c.payload != nil {
		Logger().Warn("trying to override "+kind,
			zap.Stringer("component", c.name),
			zap.Int("inputs", c.InputCount()))
		return errors.Wrapf(ErrPayloadSet, "component %s", c)
	}
	if p.InputCount() != c.InputCount() || p.OutputCount() != c.OutputCount() {
		Logger().Warn("trying to set "+kind+" with incorrect input and output count",
			zap.Stringer("component", c.name),
			zap.Int("inputs", p.InputCount()),
			zap.Int("outputs", p.OutputCount()),
			zap.Int("required_inputs", c.InputCount()),
			zap.Int("required_outputs", c.OutputCount()))
		return errors.Wrapf(ErrArityMismatch, "component %s: received %d/%d, requires %d/%d",
			c, p.InputCount(), p.OutputCount(), c.InputCount(), c.OutputCount())
	}
	c.payload = p
	return nil
}

// Build returns the component. It returns ErrNoPayload if neither a table nor
// a netlist has been set.
//
func (b *Builder) Build() (*Component, error) {
	if b.c.payload == nil {
		return nil, errors.Wrapf(ErrNoPayload, "component %s", &b.c)
	}
	c := b.c
	return &c, nil
}

// NewTableComponent is a shorthand for building a component from a truth
// table.
//
func NewTableComponent(name Name, inputs, outputs []string, t *Table) (*Component, error) {
	b := NewBuilder(name, inputs, outputs)
	if err := b.SetTable(t); err != nil {
		return nil, err
	}
	return b.Build()
}

// NewNetlistComponent is a shorthand for building a component from a
// netlist.
//
func NewNetlistComponent(name Name, inputs, outputs []string, n *Netlist) (*Component, error) {
	b := NewBuilder(name, inputs, outputs)
	if err := b.SetNetlist(n); err != nil {
		return nil, err
	}
	return b.Build()
}
