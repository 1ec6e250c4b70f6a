// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/db47h/logicsim"
	"github.com/db47h/logicsim/circuit"
	"github.com/db47h/logicsim/gates"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type options struct {
	verbose bool
	metrics bool
	workers int

	reg *prometheus.Registry
	m   *logicsim.Metrics
}

func newRootCmd() *cobra.Command {
	o := &options{}
	cmd := &cobra.Command{
		Use:          "logicsim",
		Short:        "Evaluate logic circuits described in YAML files",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.setup()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			_ = logicsim.Logger().Sync()
			if o.metrics {
				return dumpMetrics(cmd.ErrOrStderr(), o.reg)
			}
			return nil
		},
	}
	f := cmd.PersistentFlags()
	f.BoolVarP(&o.verbose, "verbose", "v", false, "enable debug logging")
	f.BoolVar(&o.metrics, "metrics", false, "print simulation metrics on exit")
	f.IntVarP(&o.workers, "workers", "w", 1, "compilation goroutines, 0 for GOMAXPROCS")

	cmd.AddCommand(newListCmd(o), newTableCmd(o), newRunCmd(o))
	return cmd
}

func (o *options) setup() error {
	var (
		l   *zap.Logger
		err error
	)
	if o.verbose {
		l, err = zap.NewDevelopment()
	} else {
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
		l, err = cfg.Build()
	}
	if err != nil {
		return errors.Wrap(err, "logger")
	}
	logicsim.SetLogger(l)
	if o.metrics {
		o.reg = prometheus.NewRegistry()
		o.m = logicsim.NewMetrics(o.reg)
	}
	return nil
}

func (o *options) compileOptions() []logicsim.Option {
	return []logicsim.Option{logicsim.WithWorkers(o.workers), logicsim.WithMetrics(o.m)}
}

// load returns a registry with the builtin gates and the components of the
// given circuit file.
//
func (o *options) load(cmd *cobra.Command, file string) (*logicsim.Registry, error) {
	reg := logicsim.NewRegistry()
	gates.Register(reg)
	if _, err := circuit.LoadFile(cmd.Context(), file, reg, o.compileOptions()...); err != nil {
		return nil, err
	}
	return reg, nil
}

// find returns the component with the given name having the fewest inputs.
//
func find(reg *logicsim.Registry, name string) (*logicsim.Component, error) {
	c, ok := reg.Find(logicsim.ParseName(name), 0)
	if !ok {
		return nil, errors.Errorf("unknown component %s", name)
	}
	return c, nil
}

func dumpMetrics(w io.Writer, reg *prometheus.Registry) error {
	mfs, err := reg.Gather()
	if err != nil {
		return errors.Wrap(err, "gather metrics")
	}
	sort.Slice(mfs, func(i, j int) bool { return mfs[i].GetName() < mfs[j].GetName() })
	for _, mf := range mfs {
		for _, m := range mf.GetMetric() {
			fmt.Fprintf(w, "%s%s %v\n", mf.GetName(), labels(m), value(mf.GetType(), m))
		}
	}
	return nil
}

func labels(m *dto.Metric) string {
	if len(m.GetLabel()) == 0 {
		return ""
	}
	s := "{"
	for i, l := range m.GetLabel() {
		if i > 0 {
			s += ","
		}
		s += l.GetName() + "=" + fmt.Sprintf("%q", l.GetValue())
	}
	return s + "}"
}

func value(t dto.MetricType, m *dto.Metric) interface{} {
	switch t {
	case dto.MetricType_COUNTER:
		return m.GetCounter().GetValue()
	case dto.MetricType_GAUGE:
		return m.GetGauge().GetValue()
	case dto.MetricType_HISTOGRAM:
		h := m.GetHistogram()
		return fmt.Sprintf("count=%d sum=%g", h.GetSampleCount(), h.GetSampleSum())
	default:
		return "?"
	}
}
