// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Command logicsim loads circuit descriptions and evaluates their components.
//
//	logicsim list circuits.yaml
//	logicsim table circuits.yaml user:half_adder --workers 4
//	logicsim run circuits.yaml lib:sr_latch --in 10 --settle 8
//
package main

import (
	"context"
	"os"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
