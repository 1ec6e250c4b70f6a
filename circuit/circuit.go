// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package circuit loads component definitions from YAML documents into a
// logicsim.Registry.
//
// A document holds a list of components, each defined either by a truth
// table or by parts wired together:
//
//	components:
//	  - name: user:half_adder
//	    inputs: a, b
//	    outputs: s, c
//	    parts:
//	      - use: builtin:xor
//	        wires: a=a, b=b, out=s
//	      - use: builtin:and
//	        min_inputs: 2
//	        wires: a=a, b=b, out=c
//	    compile: true
//	  - name: user:maj
//	    inputs: a, b, c
//	    outputs: out
//	    table: [0, 0, 0, 1, 0, 1, 1, 1]
//
// Parts are looked up in the registry by name and minimum input count, so
// components can use the ones defined before them. Table rows are indexed by
// input pattern (bit i is input i) and hold the outputs (bit j is output j).
// Components with compile set are flattened into a truth table before being
// registered.
//
package circuit

import (
	"context"
	"io"
	"os"

	"github.com/db47h/logicsim"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// File is the top level structure of a circuit document.
//
type File struct {
	Components []Component `yaml:"components"`
}

// Component defines a component.
//
type Component struct {
	Name    string   `yaml:"name"`
	Inputs  string   `yaml:"inputs"`
	Outputs string   `yaml:"outputs"`
	Parts   []Part   `yaml:"parts,omitempty"`
	Table   []uint64 `yaml:"table,omitempty"`
	Compile bool     `yaml:"compile,omitempty"`
}

// Part is a component instance within a parts based definition.
//
type Part struct {
	Use       string `yaml:"use"`
	MinInputs int    `yaml:"min_inputs,omitempty"`
	Wires     string `yaml:"wires"`
}

// Decode decodes a circuit document. Unknown fields are rejected.
//
func Decode(r io.Reader) (*File, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return &f, nil
		}
		return nil, errors.Wrap(err, "decode circuit")
	}
	return &f, nil
}

// Load decodes a circuit document and registers its components in reg, in
// order. It returns references to the registered components.
//
// Components registered before an error are left in reg. opts are passed to
// Netlist.CompileContext for components with compile set.
//
func Load(ctx context.Context, r io.Reader, reg *logicsim.Registry, opts ...logicsim.Option) ([]logicsim.ComponentRef, error) {
	f, err := Decode(r)
	if err != nil {
		return nil, err
	}
	var refs []logicsim.ComponentRef
	for i := range f.Components {
		d := &f.Components[i]
		c, err := d.build(ctx, reg, opts)
		if err != nil {
			return refs, errors.Wrapf(err, "component %q", d.Name)
		}
		refs = append(refs, reg.Add(c))
		logicsim.Logger().Debug("component registered",
			zap.Stringer("component", c),
			zap.Int("outputs", c.OutputCount()))
	}
	return refs, nil
}

// LoadFile is like Load but reads the document from the named file.
//
func LoadFile(ctx context.Context, name string, reg *logicsim.Registry, opts ...logicsim.Option) ([]logicsim.ComponentRef, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, errors.Wrap(err, "load circuit")
	}
	defer f.Close()
	refs, err := Load(ctx, f, reg, opts...)
	if err != nil {
		return refs, errors.Wrap(err, name)
	}
	return refs, nil
}

func (d *Component) build(ctx context.Context, reg *logicsim.Registry, opts []logicsim.Option) (*logicsim.Component, error) {
	if d.Name == "" {
		return nil, errors.New("missing name")
	}
	name := logicsim.ParseName(d.Name)
	ins, err := logicsim.ParseIO(d.Inputs)
	if err != nil {
		return nil, errors.Wrap(err, "inputs")
	}
	outs, err := logicsim.ParseIO(d.Outputs)
	if err != nil {
		return nil, errors.Wrap(err, "outputs")
	}

	switch {
	case d.Table != nil && d.Parts != nil:
		return nil, errors.New("both table and parts defined")
	case d.Table != nil:
		return d.table(name, ins, outs)
	case d.Parts == nil:
		return nil, errors.New("no table or parts defined")
	}

	parts := make([]logicsim.Part, 0, len(d.Parts))
	for _, p := range d.Parts {
		c, ok := reg.Find(logicsim.ParseName(p.Use), p.MinInputs)
		if !ok {
			return nil, errors.Errorf("unknown component %s with at least %d inputs", p.Use, p.MinInputs)
		}
		parts = append(parts, c.Wire(p.Wires))
	}
	c, err := logicsim.Chip(name, ins, outs, parts...)
	if err != nil {
		return nil, err
	}
	if !d.Compile {
		return c, nil
	}
	n, _ := c.Netlist()
	t, err := n.CompileContext(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "compile")
	}
	return logicsim.NewTableComponent(name, ins, outs, t)
}

func (d *Component) table(name logicsim.Name, ins, outs []string) (*logicsim.Component, error) {
	if len(ins) > logicsim.MaxTableInputs {
		return nil, errors.Wrapf(logicsim.ErrTooManyInputs, "table with %d inputs", len(ins))
	}
	if len(outs) > 64 {
		return nil, errors.Errorf("table with %d outputs: at most 64 allowed", len(outs))
	}
	if rows := 1 << uint(len(ins)); len(d.Table) != rows {
		return nil, errors.Errorf("got %d table rows, expected %d", len(d.Table), rows)
	}
	t, err := logicsim.NewTableFunc(len(ins), len(outs), func(in uint64) uint64 {
		return d.Table[in]
	})
	if err != nil {
		return nil, err
	}
	return logicsim.NewTableComponent(name, ins, outs, t)
}
