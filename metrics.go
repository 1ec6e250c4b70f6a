// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "logicsim"

// Compilation results, used as the "result" label of Metrics.Compiles.
//
const (
	ResultOK       = "ok"
	ResultFallback = "fallback"
	ResultCycle    = "cycle"
	ResultCanceled = "canceled"
)

// Metrics collects simulation metrics. A nil *Metrics is valid and collects
// nothing.
//
type Metrics struct {
	// Rows evaluated by netlist compilation.
	CompileRows prometheus.Counter
	// Compilations by result.
	Compiles *prometheus.CounterVec
	// Compilation duration in seconds.
	CompileDuration prometheus.Histogram
	// Ticks run on top level states.
	Ticks prometheus.Counter
}

// NewMetrics creates simulation metrics and registers them with reg. If reg is
// nil, the metrics are not registered.
//
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		CompileRows: f.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "compile_rows_total",
			Help:      "Truth table rows evaluated by netlist compilation",
		}),
		Compiles: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "compiles_total",
			Help:      "Netlist compilations by result",
		}, []string{"result"}),
		CompileDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "compile_duration_seconds",
			Help:      "Time to compile a netlist into a truth table",
			Buckets:   []float64{0.0001, 0.001, 0.01, 0.1, 1, 10},
		}),
		Ticks: f.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "ticks_total",
			Help:      "Propagation passes run on top level states",
		}),
	}
}

func (m *Metrics) tick() {
	if m != nil {
		m.Ticks.Inc()
	}
}

func (m *Metrics) rows(n int) {
	if m != nil {
		m.CompileRows.Add(float64(n))
	}
}

func (m *Metrics) compiled(result string, d time.Duration) {
	if m != nil {
		m.Compiles.WithLabelValues(result).Inc()
		m.CompileDuration.Observe(d.Seconds())
	}
}
