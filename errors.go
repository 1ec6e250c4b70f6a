// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import "github.com/pkg/errors"

// Errors returned by the simulator. Errors may be wrapped with additional
// context, use errors.Is to test for them.
//
var (
	// ErrPayloadSet is returned when trying to set the table or netlist of a
	// component that already has one.
	ErrPayloadSet = errors.New("component payload already set")
	// ErrArityMismatch is returned when a payload's input or output count does
	// not match the component's.
	ErrArityMismatch = errors.New("input/output count mismatch")
	// ErrNoPayload is returned when building a component without a table or
	// netlist.
	ErrNoPayload = errors.New("component has no payload")
	// ErrNotCompilable is returned along with the fallback identity table when
	// compiling a netlist with more than MaxTableInputs inputs.
	ErrNotCompilable = errors.New("netlist not compilable")
	// ErrCycle is returned when a netlist contains itself, directly or through
	// nested components.
	ErrCycle = errors.New("recursive component composition")
	// ErrNotSupported is returned by Netlist.Disconnect.
	ErrNotSupported = errors.New("operation not supported")
	// ErrInvalidPort is returned when a port refers to a removed node or to an
	// out of range port index.
	ErrInvalidPort = errors.New("invalid port")
	// ErrTooManyInputs is returned when creating a table with more than
	// MaxTableInputs inputs.
	ErrTooManyInputs = errors.New("too many inputs")
)
