// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"fmt"

	"github.com/db47h/logicsim"
	"github.com/db47h/logicsim/bitvec"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type runOptions struct {
	in     string
	ticks  int
	settle int
}

func newRunCmd(o *options) *cobra.Command {
	ro := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run FILE NAME",
		Short: "Evaluate a component for the given inputs",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := o.load(cmd, args[0])
			if err != nil {
				return err
			}
			c, err := find(reg, args[1])
			if err != nil {
				return err
			}
			in, err := parseBits(ro.in, c.InputCount())
			if err != nil {
				return err
			}
			n, ok := c.Netlist()
			if !ok {
				n = logicsim.Wrap(c)
			}
			s, err := logicsim.NewState(n, logicsim.WithMetrics(o.m))
			if err != nil {
				return err
			}
			s.SetInputs(in, 0, 0, c.InputCount())

			ticks := ro.ticks
			if ro.settle > 0 {
				var stable bool
				if ticks, stable = s.Settle(ro.settle); !stable {
					return errors.Errorf("%s not stable after %d ticks", c, ticks)
				}
			} else {
				for i := 0; i < ticks; i++ {
					s.Tick()
				}
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "ticks: %d\n", ticks)
			for i, name := range c.Outputs() {
				fmt.Fprintf(w, "%s=%s\n", name, bit(boolBit(s.Output(i)), 0))
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&ro.in, "in", "", "input bits, input 0 first, e.g. 101")
	f.IntVar(&ro.ticks, "ticks", 1, "number of ticks to run")
	f.IntVar(&ro.settle, "settle", 0, "tick until stable, at most this many times (overrides --ticks)")
	return cmd
}

// parseBits parses a string of 0s and 1s, bit 0 first. Missing bits are 0.
//
func parseBits(s string, n int) (*bitvec.Vector, error) {
	if len(s) > n {
		return nil, errors.Errorf("got %d input bits, component has %d inputs", len(s), n)
	}
	v := bitvec.New(n)
	for i, r := range s {
		switch r {
		case '0':
		case '1':
			v.Set(i, true)
		default:
			return nil, errors.Errorf("invalid input bit %q", r)
		}
	}
	return v, nil
}

func boolBit(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
