// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import (
	"iter"

	"github.com/db47h/logicsim/arena"
)

// ComponentRef is a reference to a component in a Registry. The zero value
// refers to no component.
//
type ComponentRef = arena.Ref[*Component]

// A Registry is a catalog of components. The same name can be registered
// several times with different input counts, e.g. 2 to 8 input AND gates.
//
// A Registry is not safe for concurrent modification.
//
type Registry struct {
	components *arena.Arena[*Component]
}

// NewRegistry returns an empty registry.
//
func NewRegistry() *Registry {
	return &Registry{components: arena.New[*Component]()}
}

// Add registers c and returns a reference to it.
//
func (r *Registry) Add(c *Component) ComponentRef {
	return r.components.EmplaceBack(c)
}

// Remove unregisters the referenced component. Netlists using it are not
// affected.
//
func (r *Registry) Remove(ref ComponentRef) {
	if ref.Arena() == r.components.ID() {
		r.components.Erase(ref.Index())
	}
}

// Len returns the number of registered components.
//
func (r *Registry) Len() int { return r.components.Len() }

// Get returns the referenced component.
//
func (r *Registry) Get(ref ComponentRef) (*Component, bool) {
	p, ok := r.components.Resolve(ref)
	if !ok {
		return nil, false
	}
	return *p, true
}

// Lookup returns the component with the given name having the smallest input
// count greater or equal to minInputs. It returns the zero ComponentRef if
// there is none.
//
func (r *Registry) Lookup(name Name, minInputs int) ComponentRef {
	var (
		best  ComponentRef
		count = -1
	)
	for i, c := range r.components.All() {
		if (*c).Name() != name {
			continue
		}
		if n := (*c).InputCount(); n >= minInputs && (count < 0 || n < count) {
			best, count = r.components.Ref(i), n
		}
	}
	return best
}

// Find is like Lookup but returns the component itself.
//
func (r *Registry) Find(name Name, minInputs int) (*Component, bool) {
	return r.Get(r.Lookup(name, minInputs))
}

// All iterates over registered components in registration slot order.
//
func (r *Registry) All() iter.Seq2[ComponentRef, *Component] {
	return func(yield func(ComponentRef, *Component) bool) {
		for i, c := range r.components.All() {
			if !yield(r.components.Ref(i), *c) {
				return
			}
		}
	}
}
