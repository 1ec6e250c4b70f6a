package logicsim_test

import (
	"testing"

	"github.com/db47h/logicsim"
	"github.com/db47h/logicsim/bitvec"
	"github.com/db47h/logicsim/gates"
	"github.com/db47h/logicsim/simtest"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

// fullAdder builds a full adder netlist:
//
//	0: a, 1: b, 2: cin, 3: s, 4: cout
//
// Nodes are added in dependency order, or in reverse order if reversed is
// set.
func fullAdder(t *testing.T, reversed bool) *logicsim.Netlist {
	t.Helper()
	xor, and, or := gates.Xor(2), gates.And(2), gates.Or(2)
	n := logicsim.NewNetlist(3, 2)
	comps := []*logicsim.Component{xor, xor, and, and, or}
	h := make([]logicsim.NodeHandle, len(comps))
	if reversed {
		for i := len(comps) - 1; i >= 0; i-- {
			h[i] = n.NewNode(comps[i])
		}
	} else {
		for i, c := range comps {
			h[i] = n.NewNode(c)
		}
	}
	xor1, xor2, and1, and2, or1 := h[0], h[1], h[2], h[3], h[4]
	b := logicsim.BoundaryPort
	p := logicsim.NodePort
	for _, c := range [][2]logicsim.Port{
		{b(0), p(xor1, 0)},       // a -> xor1.a
		{b(1), p(xor1, 1)},       // b -> xor1.b
		{p(xor1, 2), p(xor2, 0)}, // xor1.out -> xor2.a
		{b(2), p(xor2, 1)},       // cin -> xor2.b
		{p(xor2, 2), b(3)},       // xor2.out -> s
		{p(xor1, 2), p(and1, 0)}, // xor1.out -> and1.a
		{b(2), p(and1, 1)},       // cin -> and1.b
		{b(0), p(and2, 0)},       // a -> and2.a
		{b(1), p(and2, 1)},       // b -> and2.b
		{p(and1, 2), p(or1, 0)},  // and1.out -> or1.a
		{p(and2, 2), p(or1, 1)},  // and2.out -> or1.b
		{p(or1, 2), b(4)},        // or1.out -> cout
	} {
		require.NoError(t, n.Connect(c[0], c[1]))
	}
	return n
}

func TestState_fullAdder(t *testing.T) {
	n := fullAdder(t, false)
	assert.Equal(t, 5, n.NodeCount())
	for in := uint64(0); in < 8; in++ {
		s, err := logicsim.NewState(n)
		require.NoError(t, err)
		s.SetInputsUint64(in)
		s.Tick()
		sum := in&1 + in>>1&1 + in>>2&1
		assert.Equal(t, sum, s.OutputsUint64(), "inputs %03b", in)
	}

	data := []struct {
		a, b, cin bool
		s, cout   bool
	}{
		{true, true, true, true, true},
		{true, false, false, true, false},
		{false, false, false, false, false},
	}
	for _, d := range data {
		s, err := logicsim.NewState(n)
		require.NoError(t, err)
		s.SetInput(0, d.a)
		s.SetInput(1, d.b)
		s.SetInput(2, d.cin)
		s.Tick()
		assert.Equal(t, d.s, s.Output(0))
		assert.Equal(t, d.cout, s.Output(1))
	}
}

func TestState_fullAdderReversed(t *testing.T) {
	n := fullAdder(t, true)
	for in := uint64(0); in < 8; in++ {
		s, err := logicsim.NewState(n)
		require.NoError(t, err)
		s.SetInputsUint64(in)
		for i := 0; i < 3; i++ {
			s.Tick()
		}
		sum := in&1 + in>>1&1 + in>>2&1
		assert.Equal(t, sum, s.OutputsUint64(), "inputs %03b", in)

		// keeps stable
		s.Tick()
		assert.Equal(t, sum, s.OutputsUint64(), "inputs %03b", in)
	}

	// a=1, b=0, cin=1 goes through the longest path.
	s, err := logicsim.NewState(n)
	require.NoError(t, err)
	s.SetInputsUint64(0x5)
	s.Tick()
	assert.Equal(t, uint64(1), s.OutputsUint64())
	s.Tick()
	assert.Equal(t, uint64(0), s.OutputsUint64())
	s.Tick()
	assert.Equal(t, uint64(2), s.OutputsUint64())

	s, err = logicsim.NewState(n)
	require.NoError(t, err)
	s.SetInputsUint64(0x5)
	ticks, ok := s.Settle(10)
	assert.True(t, ok)
	assert.Equal(t, 4, ticks)
	assert.Equal(t, uint64(2), s.OutputsUint64())
}

func TestState_nested(t *testing.T) {
	rows := make([]uint64, 256)
	for i := range rows {
		rows[i] = uint64(i&15 + i>>4)
	}
	simtest.Expect(t, gates.Adder(4), 1, rows)
}

func TestState_bulkIO(t *testing.T) {
	add, _ := gates.Adder(4).Netlist()
	s, err := logicsim.NewState(add)
	require.NoError(t, err)
	assert.Equal(t, 8, s.InputCount())
	assert.Equal(t, 5, s.OutputCount())

	// a = 0b0111 from bits 4..7 of src, b = 0b1001 from bits 0..3
	src := bitvec.FromBytes(0x79)
	s.SetInputs(src, 4, 0, 4)
	s.SetInputs(src, 0, 4, 4)
	assert.True(t, s.Input(0))
	assert.False(t, s.Input(3))
	assert.True(t, s.Input(7))
	s.Tick()
	assert.Equal(t, uint64(16), s.OutputsUint64())

	// outputs 3..4 to bits 6..7 of dst
	dst := bitvec.New(8)
	s.Outputs(dst, 6, 3, 2)
	assert.Equal(t, []byte{0x80}, dst.Bytes())

	// out of range
	s.SetInput(8, true)
	assert.False(t, s.Input(8))
	assert.False(t, s.Output(5))
	assert.False(t, s.Connection(logicsim.Unconnected))

	s.Reset()
	assert.Equal(t, uint64(0), s.OutputsUint64())
	assert.False(t, s.Input(0))
}

func TestState_latch(t *testing.T) {
	latch, _ := gates.SRLatch().Netlist()
	s, err := logicsim.NewState(latch)
	require.NoError(t, err)

	settle := func(set, reset, q bool) {
		t.Helper()
		s.SetInput(0, set)
		s.SetInput(1, reset)
		_, ok := s.Settle(10)
		require.True(t, ok)
		assert.Equal(t, q, s.Output(0), "s=%v r=%v", set, reset)
		assert.Equal(t, !q, s.Output(1), "s=%v r=%v", set, reset)
	}
	settle(false, false, true)
	settle(false, true, false)
	settle(false, false, false)
	settle(true, false, true)
	settle(false, false, true)
	settle(false, true, false)
}

func TestState_oscillator(t *testing.T) {
	not := gates.Not()
	n := logicsim.NewNetlist(0, 1)
	h := n.NewNode(not)
	require.NoError(t, n.Connect(logicsim.NodePort(h, 1), logicsim.NodePort(h, 0)))
	require.NoError(t, n.Connect(logicsim.NodePort(h, 1), logicsim.BoundaryPort(0)))

	m := logicsim.NewMetrics(nil)
	s, err := logicsim.NewState(n, logicsim.WithMetrics(m))
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		s.Tick()
		assert.Equal(t, i%2 == 0, s.Output(0), "tick %d", i)
	}
	ticks, ok := s.Settle(5)
	assert.False(t, ok)
	assert.Equal(t, 5, ticks)
	assert.Equal(t, 9.0, testutil.ToFloat64(m.Ticks))
}

func TestState_missingNestedState(t *testing.T) {
	n := logicsim.NewNetlist(1, 2)
	h0 := n.NewNode(gates.Buf())
	h1 := n.NewNode(gates.Buf())
	require.NoError(t, n.Connect(logicsim.BoundaryPort(0), logicsim.NodePort(h0, 0)))
	require.NoError(t, n.Connect(logicsim.NodePort(h0, 1), logicsim.BoundaryPort(1)))
	require.NoError(t, n.Connect(logicsim.BoundaryPort(0), logicsim.NodePort(h1, 0)))
	require.NoError(t, n.Connect(logicsim.NodePort(h1, 1), logicsim.BoundaryPort(2)))

	s, err := logicsim.NewState(n)
	require.NoError(t, err)

	// replace node 0 with a nested netlist the state knows nothing about.
	n.RemoveNode(h0)
	h := n.NewNode(gates.HalfAdder())
	require.Equal(t, h0.Index(), h.Index())

	logs := observeLogs(t)
	s.SetInput(0, true)
	s.Tick()
	assert.False(t, s.Output(1), "node after the nested one must not be evaluated")
	assert.Equal(t, 1, logs.FilterLevelExact(zapcore.DebugLevel).FilterMessage("no state for nested netlist, tick aborted").Len())

	fresh, err := logicsim.NewState(n)
	require.NoError(t, err)
	fresh.SetInput(0, true)
	fresh.Tick()
	assert.True(t, fresh.Output(1))
}
