// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import (
	"github.com/db47h/logicsim/bitvec"
	"github.com/pkg/errors"
)

// MaxTableInputs is the maximum number of inputs of a Table. It bounds the
// number of rows to 65536.
//
const MaxTableInputs = 16

// A Table is an immutable truth table mapping every input pattern of a
// component to its output pattern.
//
// Rows are indexed by input pattern: bit i of the row number is the value of
// input i. Output j of row r is stored at bit r*OutputCount()+j.
//
type Table struct {
	ins  int
	outs int
	data *bitvec.Vector
}

// FillFunc fills a table row. It must set the outputs for input pattern row
// in v, output j being at bit bit+j.
//
type FillFunc func(row uint16, bit int, v *bitvec.Vector)

// NewTable returns a new Table with the given number of inputs and outputs.
// fill is called once for each row.
//
func NewTable(ins, outs int, fill FillFunc) (*Table, error) {
	if ins < 0 || outs < 0 {
		return nil, errors.Errorf("invalid table size %d/%d", ins, outs)
	}
	if ins > MaxTableInputs {
		return nil, errors.Wrapf(ErrTooManyInputs, "table with %d inputs", ins)
	}
	t := &Table{ins: ins, outs: outs, data: bitvec.New(outs << uint(ins))}
	for row := 0; row < t.Rows(); row++ {
		fill(uint16(row), row*outs, t.data)
	}
	return t, nil
}

// NewTableFunc returns a new Table where each row is computed by f. Input i is
// bit i of f's argument and output j is bit j of its result, which limits
// outs to 64.
//
//	and, _ := NewTableFunc(2, 1, func(in uint64) uint64 { return in >> 1 & in & 1 })
//
func NewTableFunc(ins, outs int, f func(in uint64) uint64) (*Table, error) {
	if outs > 64 {
		return nil, errors.Errorf("table with %d outputs: at most 64 allowed", outs)
	}
	return NewTable(ins, outs, func(row uint16, bit int, v *bitvec.Vector) {
		v.SetUint64(bit, outs, f(uint64(row)))
	})
}

// MustTable is a helper that wraps a call to a function returning (*Table,
// error) and panics if the error is non-nil.
//
func MustTable(t *Table, err error) *Table {
	if err != nil {
		panic(err)
	}
	return t
}

// IdentityTable returns a 1 input, 1 output pass-through table.
//
func IdentityTable() *Table {
	return MustTable(NewTableFunc(1, 1, func(in uint64) uint64 { return in }))
}

func (*Table) payload() {}

// InputCount returns the number of inputs.
//
func (t *Table) InputCount() int { return t.ins }

// OutputCount returns the number of outputs.
//
func (t *Table) OutputCount() int { return t.outs }

// Rows returns the number of rows in the table.
//
func (t *Table) Rows() int { return 1 << uint(t.ins) }

// Output copies the outputs for the given input pattern to the first
// OutputCount() bits of dst. dst is left untouched if row is out of range.
//
func (t *Table) Output(row int, dst *bitvec.Vector) {
	if row < 0 || row >= t.Rows() {
		return
	}
	t.data.GetBits(dst, 0, row*t.outs, t.outs)
}

// Row returns the outputs for the given input pattern as an integer, output j
// being bit j. Only the first 64 outputs are returned.
//
func (t *Table) Row(row int) uint64 {
	if row < 0 || row >= t.Rows() {
		return 0
	}
	n := t.outs
	if n > 64 {
		n = 64
	}
	return t.data.Uint64(row*t.outs, n)
}

// Equal returns true if t and o have the same size and the same outputs for
// every row.
//
func (t *Table) Equal(o *Table) bool {
	if t.ins != o.ins || t.outs != o.outs {
		return false
	}
	for i, n := 0, t.Rows()*t.outs; i < n; i++ {
		if t.data.Get(i) != o.data.Get(i) {
			return false
		}
	}
	return true
}
