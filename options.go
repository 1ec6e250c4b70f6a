// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import "runtime"

// An Option configures compilation or state evaluation.
//
type Option func(*config)

type config struct {
	workers int
	metrics *Metrics
}

func newConfig(opts []Option) *config {
	c := &config{workers: 1}
	for _, o := range opts {
		o(c)
	}
	return c
}

// WithWorkers sets the number of goroutines used to compile a netlist. If
// less or equal to 0, the value of GOMAXPROCS will be used. The default is 1.
//
func WithWorkers(n int) Option {
	return func(c *config) {
		if n <= 0 {
			n = runtime.GOMAXPROCS(-1)
		}
		if n <= 0 {
			n = 1
		}
		c.workers = n
	}
}

// WithMetrics enables metrics collection.
//
func WithMetrics(m *Metrics) Option {
	return func(c *config) { c.metrics = m }
}
