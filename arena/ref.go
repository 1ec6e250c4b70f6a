// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package arena

import (
	"strconv"

	"github.com/google/uuid"
)

// A Ref is a weak reference to a value in an Arena: it does not keep the
// value alive and resolving it fails once the value has been erased.
//
// The zero Ref refers to nothing.
//
type Ref[T any] struct {
	arena uuid.UUID
	index int
}

// Valid returns true if r was returned by an Arena. It does not check that the
// referenced value is still live, use Arena.Resolve for that.
//
func (r Ref[T]) Valid() bool { return r.arena != uuid.Nil }

// Index returns the referenced index.
//
func (r Ref[T]) Index() int { return r.index }

// Arena returns the identity of the arena r belongs to.
//
func (r Ref[T]) Arena() uuid.UUID { return r.arena }

func (r Ref[T]) String() string {
	if !r.Valid() {
		return "<nil>"
	}
	return r.arena.String()[:8] + "#" + strconv.Itoa(r.index)
}
