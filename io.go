// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import "github.com/db47h/logicsim/internal/hdl"

// IO is a helper function that expands a pin list into a slice of pin names.
// Buses are declared with their size and expanded to individual pins:
//
//	IO("a, b, bus[3]") // returns []string{"a", "b", "bus[0]", "bus[1]", "bus[2]"}
//
// IO panics if the pin list cannot be parsed. It is meant to be used with
// literal pin lists; use ParseIO for user input.
//
func IO(list string) []string {
	pins, err := hdl.ParseIO(list)
	if err != nil {
		panic(err)
	}
	return pins
}

// ParseIO is like IO but returns an error instead of panicking.
//
func ParseIO(list string) ([]string, error) {
	return hdl.ParseIO(list)
}
