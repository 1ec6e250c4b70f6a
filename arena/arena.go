// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package arena provides a handle based slot allocator.
//
// An Arena stores values in a dense slice and hands out Refs (an arena
// identity and an index) that stay valid regardless of unrelated insertions
// or removals. Live indices are tracked as a sorted list of non-adjacent
// Regions, each mapping a run of indices to a run of the dense slice.
//
// Freed indices are reused: new values go into the tightest hole of the index
// space so that the highest live index stays close to the number of live
// values.
//
package arena

import (
	"iter"
	"slices"
	"sort"

	"github.com/google/uuid"
)

// A Region maps the live indices [Start, End] to the dense storage starting at
// Offset.
//
type Region struct {
	Start  int
	End    int
	Offset int
}

// Contains returns true if index is within r.
//
func (r Region) Contains(index int) bool {
	return r.Start <= index && index <= r.End
}

func (r Region) len() int { return r.End - r.Start + 1 }

type slot[T any] struct {
	index int
	value T
}

// Arena is a handle based container of T.
//
// The zero value is not usable, use New.
//
type Arena[T any] struct {
	id      uuid.UUID
	regions []Region
	slots   []slot[T]
	current int
}

// New returns a new empty arena with a fresh identity.
//
func New[T any]() *Arena[T] {
	return &Arena[T]{id: uuid.New()}
}

// ID returns the arena's identity.
//
func (a *Arena[T]) ID() uuid.UUID { return a.id }

// Len returns the number of live values.
//
func (a *Arena[T]) Len() int { return len(a.slots) }

// CurrentIndex returns the index used by the next call to EmplaceBack.
//
func (a *Arena[T]) CurrentIndex() int { return a.current }

// Regions returns a copy of the region list.
//
func (a *Arena[T]) Regions() []Region {
	if len(a.regions) == 0 {
		return nil
	}
	return slices.Clone(a.regions)
}

// EmplaceBack stores v at the arena's current optimal index and returns a
// reference to it.
//
func (a *Arena[T]) EmplaceBack(v T) Ref[T] {
	return a.Emplace(a.current, v)
}

// Emplace stores v at the given index and returns a reference to it. If index
// is already live, its value is replaced.
//
// Emplace panics if index is negative.
//
func (a *Arena[T]) Emplace(index int, v T) Ref[T] {
	if index < 0 {
		panic("arena: negative index")
	}
	if p := a.Ptr(index); p != nil {
		*p = v
		return Ref[T]{a.id, index}
	}
	a.insert(index, v)
	a.nextOptimalIndex()
	return Ref[T]{a.id, index}
}

func (a *Arena[T]) insert(index int, v T) {
	s := slot[T]{index, v}
	if len(a.regions) == 0 {
		a.regions = append(a.regions, Region{index, index, 0})
		a.slots = append(a.slots, s)
		return
	}

	k := a.lowerRegion(index)
	r := &a.regions[k]

	switch {
	case r.End == index-1:
		// extend upward, merge with next region if they touch
		pos := r.Offset + r.len()
		a.slots = slices.Insert(a.slots, pos, s)
		a.shiftOffsets(k+1, 1)
		r.End = index
		if k+1 < len(a.regions) && a.regions[k+1].Start == index+1 {
			r.End = a.regions[k+1].End
			a.regions = slices.Delete(a.regions, k+1, k+2)
		}

	case r.Start == index+1:
		// extend downward, merge with previous region if they touch
		a.slots = slices.Insert(a.slots, r.Offset, s)
		a.shiftOffsets(k+1, 1)
		r.Start = index
		if k > 0 && a.regions[k-1].End == index-1 {
			a.regions[k-1].End = r.End
			a.regions = slices.Delete(a.regions, k, k+1)
		}

	case k+1 < len(a.regions) && a.regions[k+1].Start == index+1:
		next := &a.regions[k+1]
		a.slots = slices.Insert(a.slots, next.Offset, s)
		a.shiftOffsets(k+2, 1)
		next.Start = index
		if r.End == index-1 {
			r.End = next.End
			a.regions = slices.Delete(a.regions, k+1, k+2)
		}

	case r.End < index:
		// new singleton region between r and the next one
		pos := r.Offset + r.len()
		a.slots = slices.Insert(a.slots, pos, s)
		a.shiftOffsets(k+1, 1)
		a.regions = slices.Insert(a.regions, k+1, Region{index, index, pos})

	default:
		// below the first region
		pos := r.Offset
		a.slots = slices.Insert(a.slots, pos, s)
		a.shiftOffsets(k, 1)
		a.regions = slices.Insert(a.regions, k, Region{index, index, pos})
	}
}

// Erase removes the value at the given index. It is a no-op if the index is
// not live.
//
func (a *Arena[T]) Erase(index int) {
	k, ok := a.region(index)
	if !ok {
		return
	}
	r := &a.regions[k]
	switch index {
	case r.Start:
		a.slots = slices.Delete(a.slots, r.Offset, r.Offset+1)
		r.Start++
		if r.Start > r.End {
			a.regions = slices.Delete(a.regions, k, k+1)
		} else {
			k++
		}
		a.shiftOffsets(k, -1)
	case r.End:
		pos := r.Offset + r.len() - 1
		a.slots = slices.Delete(a.slots, pos, pos+1)
		r.End--
		if r.End < r.Start {
			a.regions = slices.Delete(a.regions, k, k+1)
		} else {
			k++
		}
		a.shiftOffsets(k, -1)
	default:
		// split
		pos := r.Offset + index - r.Start
		a.slots = slices.Delete(a.slots, pos, pos+1)
		a.shiftOffsets(k+1, -1)
		end := r.End
		r.End = index - 1
		a.regions = slices.Insert(a.regions, k+1, Region{index + 1, end, pos})
	}
	a.nextOptimalIndex()
}

func (a *Arena[T]) shiftOffsets(from, delta int) {
	for i := from; i < len(a.regions); i++ {
		a.regions[i].Offset += delta
	}
}

// nextOptimalIndex points the current index at the start of the smallest gap
// between two regions.
//
func (a *Arena[T]) nextOptimalIndex() {
	if len(a.regions) == 0 {
		a.current = 0
		return
	}
	best, bestDist := 0, -1
	for i := 0; i < len(a.regions)-1; i++ {
		d := a.regions[i+1].Start - a.regions[i].End
		if bestDist < 0 || d < bestDist {
			best, bestDist = a.regions[i].End+1, d
		}
	}
	if k, ok := a.region(best); ok {
		best = a.regions[k].End + 1
	}
	a.current = best
}

// lowerRegion returns the position of the region containing index or, failing
// that, of the last region ending before index. If every region is above
// index, it returns 0. The region list must not be empty.
//
func (a *Arena[T]) lowerRegion(index int) int {
	start, end := 0, len(a.regions)-1
	for start != end {
		mid := start + (end-start+1)/2
		switch r := a.regions[mid]; {
		case r.End < index:
			start = mid
		case r.Start > index:
			end = mid - 1
		default:
			return mid
		}
	}
	return start
}

// region returns the position of the region containing index.
//
func (a *Arena[T]) region(index int) (int, bool) {
	k := sort.Search(len(a.regions), func(i int) bool { return a.regions[i].End >= index })
	if k < len(a.regions) && a.regions[k].Contains(index) {
		return k, true
	}
	return 0, false
}

// Valid returns true if index is live.
//
func (a *Arena[T]) Valid(index int) bool {
	_, ok := a.region(index)
	return ok
}

// Ptr returns a pointer to the value at index, or nil if index is not live.
// The pointer is invalidated by the next insertion or removal.
//
func (a *Arena[T]) Ptr(index int) *T {
	k, ok := a.region(index)
	if !ok {
		return nil
	}
	r := a.regions[k]
	return &a.slots[r.Offset+index-r.Start].value
}

// Get returns the value at index.
//
func (a *Arena[T]) Get(index int) (T, bool) {
	if p := a.Ptr(index); p != nil {
		return *p, true
	}
	var zero T
	return zero, false
}

// Resolve returns a pointer to the value referenced by r. It fails if r
// belongs to another arena or if its index is no longer live.
//
func (a *Arena[T]) Resolve(r Ref[T]) (*T, bool) {
	if r.arena != a.id {
		return nil, false
	}
	p := a.Ptr(r.index)
	return p, p != nil
}

// Ref returns a reference to index, or the zero Ref if index is not live.
//
func (a *Arena[T]) Ref(index int) Ref[T] {
	if !a.Valid(index) {
		return Ref[T]{}
	}
	return Ref[T]{a.id, index}
}

// All iterates over live values in ascending index order. The arena must not
// be modified during iteration.
//
func (a *Arena[T]) All() iter.Seq2[int, *T] {
	return func(yield func(int, *T) bool) {
		for i := range a.slots {
			if !yield(a.slots[i].index, &a.slots[i].value) {
				return
			}
		}
	}
}
