// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/db47h/logicsim"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newTableCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "table FILE NAME",
		Short: "Print the truth table of a component, compiling netlists",
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
			t, ok := c.Table()
			if !ok {
				n, _ := c.Netlist()
				if t, err = n.CompileContext(cmd.Context(), o.compileOptions()...); err != nil {
					return errors.Wrapf(err, "compile %s", c)
				}
			}
			printTable(cmd.OutOrStdout(), c, t)
			return nil
		},
	}
}

// printTable prints one line per row, inputs then outputs, pin 0 first.
//
func printTable(w io.Writer, c *logicsim.Component, t *logicsim.Table) {
	fmt.Fprintf(w, "%s | %s\n", strings.Join(c.Inputs(), " "), strings.Join(c.Outputs(), " "))
	out := make([]string, t.OutputCount())
	in := make([]string, t.InputCount())
	for row := 0; row < t.Rows(); row++ {
		r := t.Row(row)
		for i := range in {
			in[i] = bit(uint64(row), i)
		}
		for j := range out {
			out[j] = bit(r, j)
		}
		fmt.Fprintf(w, "%s | %s\n", strings.Join(in, " "), strings.Join(out, " "))
	}
}

func bit(x uint64, i int) string {
	if x>>uint(i)&1 != 0 {
		return "1"
	}
	return "0"
}
