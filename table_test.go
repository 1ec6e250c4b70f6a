package logicsim_test

import (
	"testing"

	"github.com/db47h/logicsim"
	"github.com/db47h/logicsim/bitvec"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTable(t *testing.T) {
	// 2 bit adder with carry: a[0..1] b[0..1] -> s[0..1] c
	tb, err := logicsim.NewTableFunc(4, 3, func(in uint64) uint64 {
		return in&3 + in>>2&3
	})
	require.NoError(t, err)
	assert.Equal(t, 4, tb.InputCount())
	assert.Equal(t, 3, tb.OutputCount())
	assert.Equal(t, 16, tb.Rows())
	for row := 0; row < tb.Rows(); row++ {
		a, b := row&3, row>>2&3
		assert.Equal(t, uint64(a+b), tb.Row(row), "row %d", row)
	}

	// Output writes the row at the start of dst, preserving other bits.
	dst := bitvec.FromBytes(0xf0)
	tb.Output(0xf, dst) // 3+3 = 6 = 0b110
	assert.Equal(t, []byte{0xf6}, dst.Bytes())
	tb.Output(16, dst)
	assert.Equal(t, []byte{0xf6}, dst.Bytes())
	assert.Equal(t, uint64(0), tb.Row(-1))
}

func TestNewTable_fill(t *testing.T) {
	var rows []uint16
	var bits []int
	tb, err := logicsim.NewTable(2, 3, func(row uint16, bit int, v *bitvec.Vector) {
		rows = append(rows, row)
		bits = append(bits, bit)
		v.Set(bit+2, row == 3)
	})
	require.NoError(t, err)
	assert.Equal(t, []uint16{0, 1, 2, 3}, rows)
	assert.Equal(t, []int{0, 3, 6, 9}, bits)
	assert.Equal(t, uint64(4), tb.Row(3))
	assert.Equal(t, uint64(0), tb.Row(2))
}

func TestNewTable_errors(t *testing.T) {
	_, err := logicsim.NewTableFunc(logicsim.MaxTableInputs+1, 1, func(uint64) uint64 { return 0 })
	assert.True(t, errors.Is(err, logicsim.ErrTooManyInputs), "got %v", err)
	_, err = logicsim.NewTableFunc(2, 65, func(uint64) uint64 { return 0 })
	assert.Error(t, err)
	_, err = logicsim.NewTableFunc(-1, 1, func(uint64) uint64 { return 0 })
	assert.Error(t, err)
	assert.Panics(t, func() {
		logicsim.MustTable(logicsim.NewTableFunc(17, 1, func(uint64) uint64 { return 0 }))
	})

	// largest table
	tb, err := logicsim.NewTableFunc(logicsim.MaxTableInputs, 1, func(in uint64) uint64 { return in >> 15 })
	require.NoError(t, err)
	assert.Equal(t, 65536, tb.Rows())
	assert.Equal(t, uint64(1), tb.Row(65535))
	assert.Equal(t, uint64(0), tb.Row(32767))
}

func TestTable_equal(t *testing.T) {
	id := logicsim.IdentityTable()
	assert.Equal(t, 1, id.InputCount())
	assert.Equal(t, 1, id.OutputCount())
	assert.Equal(t, uint64(0), id.Row(0))
	assert.Equal(t, uint64(1), id.Row(1))

	buf := logicsim.MustTable(logicsim.NewTableFunc(1, 1, func(in uint64) uint64 { return in }))
	not := logicsim.MustTable(logicsim.NewTableFunc(1, 1, func(in uint64) uint64 { return in ^ 1 }))
	wide := logicsim.MustTable(logicsim.NewTableFunc(1, 2, func(in uint64) uint64 { return in }))
	assert.True(t, id.Equal(buf))
	assert.False(t, id.Equal(not))
	assert.False(t, id.Equal(wide))
}
