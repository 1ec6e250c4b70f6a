// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newListCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list FILE",
		Short: "List registered components",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := o.load(cmd, args[0])
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "REF\tNAME\tKIND\tINPUTS\tOUTPUTS")
			for ref, c := range reg.All() {
				kind := "table"
				if _, ok := c.Netlist(); ok {
					kind = "netlist"
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", ref.Index(), c.Name(), kind,
					strings.Join(c.Inputs(), ","), strings.Join(c.Outputs(), ","))
			}
			return w.Flush()
		},
	}
}
