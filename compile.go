// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import (
	"context"
	"time"

	"github.com/db47h/logicsim/bitvec"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Compile flattens the netlist into a truth table by evaluating every input
// pattern with a single tick from a fresh State.
//
// If the netlist is not compilable, or contains itself, Compile logs a
// warning and returns IdentityTable(). Use CompileContext to detect this.
//
func (n *Netlist) Compile() *Table {
	t, err := n.CompileContext(context.Background())
	if err != nil {
		Logger().Warn("netlist compilation failed, using identity table", zap.Error(err))
		if t == nil {
			t = IdentityTable()
		}
	}
	return t
}

// CompileContext is like Compile but reports failures:
//
//   - a netlist with more than MaxTableInputs inputs yields IdentityTable()
//     together with ErrNotCompilable,
//   - a netlist that contains itself yields ErrCycle,
//   - ctx is checked before each row and its error is returned on
//     cancellation.
//
// Only the combinational behavior of the netlist is captured: each row is
// sampled after exactly one tick. Rows are split among goroutines according
// to WithWorkers.
//
func (n *Netlist) CompileContext(ctx context.Context, opts ...Option) (*Table, error) {
	cfg := newConfig(opts)
	start := time.Now()
	t, err := n.compile(ctx, cfg)
	result := ResultOK
	switch {
	case err == nil:
	case errors.Is(err, ErrNotCompilable):
		result = ResultFallback
	case errors.Is(err, ErrCycle):
		result = ResultCycle
	default:
		result = ResultCanceled
	}
	cfg.metrics.compiled(result, time.Since(start))
	return t, err
}

func (n *Netlist) compile(ctx context.Context, cfg *config) (*Table, error) {
	if !n.Compilable() {
		return IdentityTable(), errors.Wrapf(ErrNotCompilable, "netlist with %d inputs", n.InputCount())
	}
	if err := n.CheckCycles(); err != nil {
		return nil, err
	}

	rows, outs := 1<<uint(n.InputCount()), n.OutputCount()
	workers := cfg.workers
	if workers > rows {
		workers = rows
	}
	size := rows / workers
	if size*workers < rows {
		size++
	}

	// each worker fills its own vector: row ranges may share bytes.
	var parts []*bitvec.Vector
	g, ctx := errgroup.WithContext(ctx)
	for first := 0; first < rows; first += size {
		last := min(first+size, rows)
		v := bitvec.New((last - first) * outs)
		parts = append(parts, v)
		g.Go(func() error {
			return n.compileRows(ctx, first, last, v, cfg.metrics)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "compilation aborted")
	}

	data := bitvec.New(rows * outs)
	for i, v := range parts {
		first := i * size
		last := min(first+size, rows)
		data.SetBits(v, 0, first*outs, (last-first)*outs)
	}
	return &Table{ins: n.InputCount(), outs: outs, data: data}, nil
}

// compileRows evaluates rows [first, last) into dst, row first being at bit 0.
//
func (n *Netlist) compileRows(ctx context.Context, first, last int, dst *bitvec.Vector, m *Metrics) error {
	outs := n.OutputCount()
	for row := first; row < last; row++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		s := newState(n, nil)
		s.SetInputsUint64(uint64(row))
		s.tick()
		s.Outputs(dst, (row-first)*outs, 0, outs)
	}
	m.rows(last - first)
	return nil
}
