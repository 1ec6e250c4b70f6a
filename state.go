// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import (
	"github.com/db47h/logicsim/arena"
	"github.com/db47h/logicsim/bitvec"
	"go.uber.org/zap"
)

// State is an evaluation context for a Netlist. It holds the value of every
// connection, the boundary inputs and outputs and, for each node whose
// component is itself a netlist, a nested State.
//
// Connection values persist across calls to Tick. A State is not safe for
// concurrent use.
//
type State struct {
	netlist *Netlist
	conns   *bitvec.Vector
	inputs  *bitvec.Vector
	outputs *bitvec.Vector
	scratch *bitvec.Vector
	nested  *arena.Arena[*State]
	metrics *Metrics
}

// NewState returns a new State bound to n, with all values false. Nested
// states are created the first time their node is evaluated.
//
// NewState returns ErrCycle if n contains itself. WithMetrics enables tick
// counting; other options are ignored.
//
func NewState(n *Netlist, opts ...Option) (*State, error) {
	if err := n.CheckCycles(); err != nil {
		return nil, err
	}
	return newState(n, newConfig(opts).metrics), nil
}

func newState(n *Netlist, m *Metrics) *State {
	s := &State{
		netlist: n,
		conns:   bitvec.New(n.ConnectionCount()),
		inputs:  bitvec.New(n.InputCount()),
		outputs: bitvec.New(n.OutputCount()),
		nested:  arena.New[*State](),
		metrics: m,
	}
	maxOuts := 0
	for idx, nd := range n.nodes.All() {
		if _, ok := nd.component.Netlist(); ok {
			s.nested.Emplace(idx, nil)
			continue
		}
		maxOuts = max(maxOuts, nd.OutputCount())
	}
	s.scratch = bitvec.New(maxOuts)
	return s
}

// Netlist returns the netlist s is bound to.
//
func (s *State) Netlist() *Netlist { return s.netlist }

// InputCount returns the number of inputs.
//
func (s *State) InputCount() int { return s.netlist.InputCount() }

// OutputCount returns the number of outputs.
//
func (s *State) OutputCount() int { return s.netlist.OutputCount() }

// SetInput sets the value of input i. It is a no-op if i is out of range.
//
func (s *State) SetInput(i int, v bool) {
	if i >= 0 && i < s.InputCount() {
		s.inputs.Set(i, v)
	}
}

// Input returns the value of input i.
//
func (s *State) Input(i int) bool {
	return i >= 0 && i < s.InputCount() && s.inputs.Get(i)
}

// SetInputs copies count bits of src starting at bit srcStart to the inputs
// starting at input offset. count is clamped to the number of inputs.
//
func (s *State) SetInputs(src *bitvec.Vector, srcStart, offset, count int) {
	s.inputs.SetBits(src, srcStart, offset, min(count, s.InputCount()))
}

// SetInputsUint64 sets input i to bit i of x, for the first 64 inputs.
//
func (s *State) SetInputsUint64(x uint64) {
	s.inputs.SetUint64(0, min(s.InputCount(), 64), x)
}

// Output returns the value of output i as of the last tick.
//
func (s *State) Output(i int) bool {
	return i >= 0 && i < s.OutputCount() && s.outputs.Get(i)
}

// Outputs copies count outputs starting at output start into dst starting at
// bit offset. count is clamped to the number of outputs.
//
func (s *State) Outputs(dst *bitvec.Vector, offset, start, count int) {
	s.outputs.GetBits(dst, offset, start, min(count, s.OutputCount()))
}

// OutputsUint64 returns the first 64 outputs as an integer, output i being
// bit i.
//
func (s *State) OutputsUint64() uint64 {
	return s.outputs.Uint64(0, min(s.OutputCount(), 64))
}

// Connection returns the current value of connection id.
//
func (s *State) Connection(id ConnID) bool {
	return id != Unconnected && s.conns.Get(int(id))
}

// Reset sets every value to false and discards nested states.
//
func (s *State) Reset() {
	s.conns.Clear()
	s.inputs.Clear()
	s.outputs.Clear()
	for _, p := range s.nested.All() {
		*p = nil
	}
}

// Tick runs one propagation pass:
//
//  1. boundary inputs are copied to their connections,
//  2. nodes are evaluated once each, in netlist order, reading and writing
//     connection values in place. Nested netlists are ticked once,
//  3. connections are copied to boundary outputs.
//
// Since nodes are not sorted by dependency, a value only propagates through
// nodes that come after its source within a single tick. Netlists whose nodes
// were not added from inputs to outputs, or with feedback loops, need several
// ticks to settle.
//
func (s *State) Tick() {
	s.tick()
	s.metrics.tick()
}

// Settle calls Tick until connection and output values stop changing, at most
// limit times. It returns the number of ticks run and whether a stable state
// was reached. The last tick of a stable run is the one that changed nothing.
//
func (s *State) Settle(limit int) (int, bool) {
	for i := 1; i <= limit; i++ {
		changed := s.tick()
		s.metrics.tick()
		if !changed {
			return i, true
		}
	}
	return limit, false
}

// tick runs a propagation pass and returns true if any connection or output
// changed, including in nested states.
//
func (s *State) tick() bool {
	n := s.netlist
	changed := false
	set := func(v *bitvec.Vector, i int, b bool) {
		if v.Get(i) != b {
			v.Set(i, b)
			changed = true
		}
	}

	for i, c := range n.inputs {
		if c != Unconnected {
			set(s.conns, int(c), s.inputs.Get(i))
		}
	}

nodes:
	for idx, nd := range n.nodes.All() {
		switch p := nd.component.payload.(type) {
		case *Table:
			row := 0
			for i, c := range nd.inputs {
				if c != Unconnected && s.conns.Get(int(c)) {
					row |= 1 << uint(i)
				}
			}
			if s.scratch.Len() < p.OutputCount() {
				s.scratch.Resize(p.OutputCount())
			}
			p.Output(row, s.scratch)
			for i, c := range nd.outputs {
				if c != Unconnected {
					set(s.conns, int(c), s.scratch.Get(i))
				}
			}
		case *Netlist:
			ns := s.nested.Ptr(idx)
			if ns == nil {
				Logger().Debug("no state for nested netlist, tick aborted",
					zap.Stringer("component", nd.component),
					zap.Int("node", idx))
				break nodes
			}
			if *ns == nil {
				*ns = newState(p, nil)
			}
			sub := *ns
			for i, c := range nd.inputs {
				if c != Unconnected {
					sub.inputs.Set(i, s.conns.Get(int(c)))
				}
			}
			if sub.tick() {
				changed = true
			}
			for i, c := range nd.outputs {
				if c != Unconnected {
					set(s.conns, int(c), sub.outputs.Get(i))
				}
			}
		}
	}

	for i, c := range n.outputs {
		set(s.outputs, i, c != Unconnected && s.conns.Get(int(c)))
	}
	return changed
}
