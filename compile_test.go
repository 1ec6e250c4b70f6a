package logicsim_test

import (
	"context"
	"testing"

	"github.com/db47h/logicsim"
	"github.com/db47h/logicsim/gates"
	"github.com/db47h/logicsim/simtest"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNetlist_Compile(t *testing.T) {
	// and(buf(a), buf(b))
	n := logicsim.NewNetlist(2, 1)
	b0 := n.NewNode(gates.Buf())
	b1 := n.NewNode(gates.Buf())
	and := n.NewNode(gates.And(2))
	for _, c := range [][2]logicsim.Port{
		{logicsim.BoundaryPort(0), logicsim.NodePort(b0, 0)},
		{logicsim.BoundaryPort(1), logicsim.NodePort(b1, 0)},
		{logicsim.NodePort(b0, 1), logicsim.NodePort(and, 0)},
		{logicsim.NodePort(b1, 1), logicsim.NodePort(and, 1)},
		{logicsim.NodePort(and, 2), logicsim.BoundaryPort(2)},
	} {
		require.NoError(t, n.Connect(c[0], c[1]))
	}

	tbl := n.Compile()
	assert.Equal(t, 2, tbl.InputCount())
	assert.Equal(t, 1, tbl.OutputCount())
	for row, ex := range []uint64{0, 0, 0, 1} {
		assert.Equal(t, ex, tbl.Row(row), "row %d", row)
	}
	ex := logicsim.MustTable(logicsim.NewTableFunc(2, 1, func(in uint64) uint64 {
		if in == 3 {
			return 1
		}
		return 0
	}))
	assert.True(t, ex.Equal(tbl))
}

func TestNetlist_CompileAdder(t *testing.T) {
	fa, _ := gates.FullAdder().Netlist()
	tbl, err := fa.CompileContext(context.Background())
	require.NoError(t, err)
	for row := 0; row < 8; row++ {
		assert.Equal(t, uint64(row&1+row>>1&1+row>>2&1), tbl.Row(row), "row %03b", row)
	}

	// a single tick is not enough for the reversed adder: a=1, b=0, cin=1
	// gives s=1, cout=0.
	far, _ := gates.FullAdderReversed().Netlist()
	tbl, err = far.CompileContext(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(1), tbl.Row(5))

	// compiled components behave like the netlist they come from.
	ha := gates.HalfAdder()
	han, _ := ha.Netlist()
	hat, err := logicsim.NewTableComponent(logicsim.ParseName("test:half_adder"), ha.Inputs(), ha.Outputs(), han.Compile())
	require.NoError(t, err)
	simtest.CompareComponents(t, ha, hat, 1)
}

func TestNetlist_CompileWorkers(t *testing.T) {
	add, _ := gates.Adder(4).Netlist()
	serial, err := add.CompileContext(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 256, serial.Rows())
	assert.Equal(t, 5, serial.OutputCount())
	for row := 0; row < serial.Rows(); row++ {
		require.Equal(t, uint64(row&15+row>>4), serial.Row(row), "row %d", row)
	}

	for _, w := range []int{0, 2, 3, 7, 1000} {
		tbl, err := add.CompileContext(context.Background(), logicsim.WithWorkers(w))
		require.NoError(t, err)
		assert.True(t, serial.Equal(tbl), "%d workers", w)
	}

	// more workers than rows
	not, _ := logicsim.Wrap(gates.Not()).CompileContext(context.Background(), logicsim.WithWorkers(16))
	assert.Equal(t, uint64(1), not.Row(0))
	assert.Equal(t, uint64(0), not.Row(1))
}

func TestNetlist_CompileErrors(t *testing.T) {
	t.Run("inputs", func(t *testing.T) {
		n := logicsim.NewNetlist(logicsim.MaxTableInputs+1, 1)
		assert.False(t, n.Compilable())
		tbl, err := n.CompileContext(context.Background())
		assert.True(t, errors.Is(err, logicsim.ErrNotCompilable), "%v", err)
		require.NotNil(t, tbl)
		assert.True(t, logicsim.IdentityTable().Equal(tbl))

		logs := observeLogs(t)
		tbl = n.Compile()
		assert.True(t, logicsim.IdentityTable().Equal(tbl))
		assert.Equal(t, 1, logs.FilterLevelExact(zapcore.WarnLevel).Len())
	})
	t.Run("cycle", func(t *testing.T) {
		n := logicsim.NewNetlist(1, 1)
		c, err := logicsim.NewNetlistComponent(logicsim.ParseName("test:loop"), logicsim.IO("in"), logicsim.IO("out"), n)
		require.NoError(t, err)
		n.NewNode(c)
		tbl, err := n.CompileContext(context.Background())
		assert.True(t, errors.Is(err, logicsim.ErrCycle), "%v", err)
		assert.Nil(t, tbl)
		assert.True(t, logicsim.IdentityTable().Equal(n.Compile()))

		_, err = logicsim.NewState(n)
		assert.True(t, errors.Is(err, logicsim.ErrCycle), "%v", err)
	})
	t.Run("canceled", func(t *testing.T) {
		add, _ := gates.Adder(4).Netlist()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		tbl, err := add.CompileContext(ctx, logicsim.WithWorkers(4))
		assert.True(t, errors.Is(err, context.Canceled), "%v", err)
		assert.Nil(t, tbl)
	})
}

func TestNetlist_CompileMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := logicsim.NewMetrics(reg)

	add, _ := gates.Adder(4).Netlist()
	_, err := add.CompileContext(context.Background(), logicsim.WithWorkers(3), logicsim.WithMetrics(m))
	require.NoError(t, err)
	_, err = logicsim.NewNetlist(20, 1).CompileContext(context.Background(), logicsim.WithMetrics(m))
	require.Error(t, err)

	assert.Equal(t, 256.0, testutil.ToFloat64(m.CompileRows))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Compiles.WithLabelValues(logicsim.ResultOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Compiles.WithLabelValues(logicsim.ResultFallback)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Ticks))

	n, err := testutil.GatherAndCount(reg, "logicsim_compile_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
