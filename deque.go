// Package deque implements a double-ended queue stored in fixed-size chunks.
package deque

import (
	"cmp"
	"iter"
	"slices"

	"github.com/juju/errors"
)

// Deque is a double-ended queue with amortized O(1) pushes and pops at both
// ends, O(1) indexing and random-access iterators.
//
// Elements live in blocks of ChunkSize slots, addressed through a slice of
// block pointers that is treated as one circular buffer. Growing the Deque
// only reorders and extends that slice, so an element never changes address
// while it is in the Deque. Blocks are never released by pops; call Release
// to drop them.
//
// The zero value is an empty Deque ready to use. A Deque is not safe for
// concurrent use.
type Deque[T any] struct {
	blocks     []*block[T]
	head, tail uint
	// gen changes whenever outstanding iterators stop being valid.
	gen  uint64
	opts options[T]
}

/*****************************************************************************
 * DEQUE API
 *****************************************************************************/

// Len returns the number of elements in the Deque or 0 if nil.
func (d *Deque[T]) Len() int {
	if d == nil {
		return 0
	}
	return int(d.len())
}

func (d *Deque[T]) len() uint {
	if d.head <= d.tail {
		return d.tail - d.head
	}
	return d.tail + (d.cap() - d.head)
}

// Empty returns whether the Deque is empty.
func (d *Deque[T]) Empty() bool { return d.head == d.tail }

// Cap returns the number of slots across all blocks. Len is always strictly
// less than Cap once anything has been allocated.
func (d *Deque[T]) Cap() int { return int(d.cap()) }

func (d *Deque[T]) cap() uint { return uint(len(d.blocks)) << chunkShift }

// PushBack puts t at the back of the Deque. It only fails if growing the
// Deque fails, in which case the Deque is unchanged.
func (d *Deque[T]) PushBack(t T) error {
	if !fits(d.head, d.len()+1, d.cap()) {
		if err := d.grow(); err != nil {
			return errors.Trace(err)
		}
	}
	*d.slot(d.tail) = t
	d.tail = d.next(d.tail)
	return nil
}

// PushFront puts t at the front of the Deque. It only fails if growing the
// Deque fails, in which case the Deque is unchanged.
func (d *Deque[T]) PushFront(t T) error {
	if c := d.cap(); c == 0 || !fits(d.prev(d.head), d.len()+1, c) {
		if err := d.grow(); err != nil {
			return errors.Trace(err)
		}
	}
	d.head = d.prev(d.head)
	*d.slot(d.head) = t
	return nil
}

// PeekBack returns the last element in the Deque. If the Deque is empty, it
// returns false.
func (d *Deque[T]) PeekBack() (t T, ok bool) {
	if d.Empty() {
		return
	}
	return *d.slot(d.prev(d.tail)), true
}

// PeekFront returns the first element in the Deque. If the Deque is empty, it
// returns false.
func (d *Deque[T]) PeekFront() (t T, ok bool) {
	if d.Empty() {
		return
	}
	return *d.slot(d.head), true
}

// PopBack removes the last element in the Deque and returns it. If it's empty,
// returns false. Ownership passes to the caller, so the destructor is not run,
// but the slot is zeroed. Blocks are never released.
func (d *Deque[T]) PopBack() (t T, ok bool) {
	if d.Empty() {
		return
	}
	d.tail = d.prev(d.tail)
	return d.take(d.tail), true
}

// PopFront removes the first element in the Deque and returns it. If it's
// empty, returns false. Like PopBack, the destructor is not run.
func (d *Deque[T]) PopFront() (t T, ok bool) {
	if d.Empty() {
		return
	}
	t = d.take(d.head)
	d.head = d.next(d.head)
	return t, true
}

func (d *Deque[T]) take(pos uint) T {
	p := d.slot(pos)
	t := *p
	var zero T
	*p = zero
	return t
}

// At returns the i-th element from the front. It returns ErrOutOfRange if i
// is not in [0, Len()).
func (d *Deque[T]) At(i int) (T, error) {
	if err := d.checkBounds("at", i); err != nil {
		var zero T
		return zero, err
	}
	return d.AtUnsafe(i), nil
}

// AtUnsafe returns the i-th element from the front without checking bounds.
// An out of range i returns garbage or panics.
func (d *Deque[T]) AtUnsafe(i int) T {
	return *d.slot(d.logical(uint(i)))
}

// Set writes t to the i-th position in the Deque. It returns ErrOutOfRange if
// i is not in [0, Len()).
func (d *Deque[T]) Set(i int, t T) error {
	if err := d.checkBounds("set", i); err != nil {
		return err
	}
	d.SetUnsafe(i, t)
	return nil
}

// SetUnsafe writes t to the i-th position without checking bounds.
func (d *Deque[T]) SetUnsafe(i int, t T) {
	*d.slot(d.logical(uint(i))) = t
}

// Swap swaps the elements in the i-th and j-th positions.
func (d *Deque[T]) Swap(i, j int) error {
	if err := d.checkBounds("swap", i); err != nil {
		return err
	}
	if err := d.checkBounds("swap", j); err != nil {
		return err
	}
	a, b := d.slot(d.logical(uint(i))), d.slot(d.logical(uint(j)))
	*a, *b = *b, *a
	return nil
}

// InsertAt inserts t before the i-th element, moving every element from i to
// the back one position back. i == Len() appends. It costs O(Len()-i).
//
// If growing fails, the element at i is restored and the error is returned.
// The shift that follows cannot fail. Every iterator is invalidated.
func (d *Deque[T]) InsertAt(i int, t T) error {
	n := d.Len()
	if i < 0 || i > n {
		return outOfRange("insert", i, n)
	}
	if i == n {
		return errors.Trace(d.PushBack(t))
	}

	p := d.slot(d.logical(uint(i)))
	shift := *p
	*p = t
	if err := d.PushBack(d.AtUnsafe(n - 1)); err != nil {
		*p = shift
		return errors.Trace(err)
	}
	// The pushed slot is overwritten by the last step of the chain.
	for j := i + 1; j <= n; j++ {
		q := d.slot(d.logical(uint(j)))
		shift, *q = *q, shift
	}
	d.gen++
	return nil
}

// Insert inserts t before it and returns an iterator to the new element.
func (d *Deque[T]) Insert(it Iterator[T], t T) (Iterator[T], error) {
	if err := d.owns(it.cursor); err != nil {
		return Iterator[T]{}, err
	}
	i := it.Index()
	if err := d.InsertAt(i, t); err != nil {
		return Iterator[T]{}, errors.Trace(err)
	}
	return d.Begin().Add(i), nil
}

// EraseAt removes the i-th element, moving every element after it one
// position towards the front, and runs the destructor on the removed value.
// It costs O(Len()-i) and invalidates every iterator.
func (d *Deque[T]) EraseAt(i int) error {
	n := d.Len()
	if err := d.checkBounds("erase", i); err != nil {
		return err
	}

	last := d.slot(d.logical(uint(n - 1)))
	shift := *last
	for j := n - 2; j >= i; j-- {
		p := d.slot(d.logical(uint(j)))
		shift, *p = *p, shift
	}
	// shift now holds the erased value and the last slot a stale copy.
	d.destroy(&shift)
	d.tail = d.prev(d.tail)
	var zero T
	*last = zero
	d.gen++
	return nil
}

// Erase removes the element at it and returns an iterator to the element that
// followed it.
func (d *Deque[T]) Erase(it Iterator[T]) (Iterator[T], error) {
	if err := d.owns(it.cursor); err != nil {
		return Iterator[T]{}, err
	}
	i := it.Index()
	if err := d.EraseAt(i); err != nil {
		return Iterator[T]{}, errors.Trace(err)
	}
	return d.Begin().Add(i), nil
}

// DropFront removes the n first elements, running the destructor on each. If
// the Deque has fewer than n elements, it drops every element. If n is
// negative, no element is dropped. Iterators to the remaining elements stay
// valid.
func (d *Deque[T]) DropFront(n int) {
	for ; n > 0 && !d.Empty(); n-- {
		d.destroy(d.slot(d.head))
		d.head = d.next(d.head)
	}
}

// DropBack removes the n last elements, running the destructor on each. It
// has the same semantics as DropFront otherwise.
func (d *Deque[T]) DropBack(n int) {
	for ; n > 0 && !d.Empty(); n-- {
		d.tail = d.prev(d.tail)
		d.destroy(d.slot(d.tail))
	}
}

// Clear destroys every element in order but keeps the blocks for reuse.
// Every iterator is invalidated.
func (d *Deque[T]) Clear() {
	for pos := d.head; pos != d.tail; pos = d.next(pos) {
		d.destroy(d.slot(pos))
	}
	d.head, d.tail = 0, 0
	d.gen++
}

/*****************************************************************************
 * SLICE API
 *****************************************************************************/

// Reserve ensures there's enough capacity to push at least n more elements
// at the back without growing. Growing here invalidates iterators like any
// other growth. It returns ErrNegativeSize if n is negative.
func (d *Deque[T]) Reserve(n int) error {
	if n < 0 {
		return errors.Annotatef(ErrNegativeSize, "reserve(%d)", n)
	}
	size := d.len() + uint(n)
	if n == 0 || fits(d.head, size, d.cap()) {
		return nil
	}
	// expand moves head to the same offset within the first block.
	need := d.head&chunkMask + size + 1
	return errors.Trace(d.expand(int((need + chunkMask) >> chunkShift)))
}

// MakeSliceCopy allocates a slice to hold every Deque element and copies them.
// Prefer passing a buffer to CopySlice for memory reuse.
func (d *Deque[T]) MakeSliceCopy() []T {
	s := make([]T, d.Len())
	_ = d.CopySlice(0, s)
	return s
}

// MakeSliceIndexCopy allocates a slice and copies the contents from the start
// index (inclusive) to the end index (non-inclusive). This is regular slice
// semantics, except it's a copy, so it panics with invalid indexes.
func (d *Deque[T]) MakeSliceIndexCopy(start, end int) []T {
	if start < 0 || end < start || end > d.Len() {
		panic(errors.Annotatef(ErrOutOfRange, "slice [%d:%d] with length %d", start, end, d.Len()))
	}
	s := make([]T, end-start)
	_ = d.CopySlice(start, s)
	return s
}

// CopySlice has the same semantics as the copy() built-in function. It copies
// elements in the Deque starting at the start index up until the buffer is
// full or the Deque is over, whichever happens first. It panics if start is
// negative.
func (d *Deque[T]) CopySlice(start int, buf []T) int {
	copied, skip := 0, start
	for seg := range d.segments() {
		if copied == len(buf) {
			break
		}
		if skip >= len(seg) {
			skip -= len(seg)
			continue
		}
		copied += copy(buf[copied:], seg[skip:])
		skip = 0
	}
	return copied
}

// Contains returns whether the element is in the Deque. This must not be a
// method, otherwise Deque would be constrained to comparable elements. It has
// the same semantics as slices.Contains.
func Contains[T comparable](d *Deque[T], t T) bool {
	return Index(d, t) != -1
}

// ContainsFunc returns whether an element satisfying f is in the Deque.
func (d *Deque[T]) ContainsFunc(f func(T) bool) bool {
	return d.IndexFunc(f) != -1
}

// Index returns the index of the first occurrence of t in the Deque or -1 if
// absent. It has the same semantics as slices.Index.
func Index[T comparable](d *Deque[T], t T) int {
	return d.IndexFunc(func(u T) bool { return u == t })
}

// IndexFunc returns the index of the first element that satisfies f in the
// Deque or -1 if none do.
func (d *Deque[T]) IndexFunc(f func(T) bool) int {
	base := 0
	for seg := range d.segments() {
		if i := slices.IndexFunc(seg, f); i != -1 {
			return base + i
		}
		base += len(seg)
	}
	return -1
}

// Equal returns whether both Deques have the same length and the same elements
// in the same order. Two nil Deques are equal, but an empty Deque and nil are
// not.
func Equal[T comparable](d1, d2 *Deque[T]) bool {
	return d1.EqualFunc(d2, func(a, b T) bool { return a == b })
}

// EqualFunc is like Equal but compares elements with f.
func (d1 *Deque[T]) EqualFunc(d2 *Deque[T], f func(T, T) bool) bool {
	if d1 == nil || d2 == nil {
		return d1 == d2
	}
	if d1.len() != d2.len() {
		return false
	}

	next, stop := iter.Pull(d2.Iter())
	defer stop()
	for seg := range d1.segments() {
		for _, a := range seg {
			b, _ := next()
			if !f(a, b) {
				return false
			}
		}
	}
	return true
}

// Max returns the maximum element in the Deque. It must not be a method,
// otherwise Deque would be constrained to ordered elements only. It has the
// same semantics as slices.Max, so it panics on an empty Deque.
func Max[T cmp.Ordered](d *Deque[T]) T {
	return reduce(d, "Max", func(s []T) T { return slices.Max(s) }, func(a, b T) T { return max(a, b) })
}

// MaxFunc is like Max but compares elements with cmp. If there is more than
// one maximal element, it returns the first one.
func MaxFunc[T any](d *Deque[T], cmp func(a, b T) int) T {
	return reduce(d, "MaxFunc", func(s []T) T { return slices.MaxFunc(s, cmp) }, func(a, b T) T {
		if cmp(b, a) > 0 {
			return b
		}
		return a
	})
}

// Min returns the minimum element in the Deque. It has the same semantics as
// slices.Min, so it panics on an empty Deque.
func Min[T cmp.Ordered](d *Deque[T]) T {
	return reduce(d, "Min", func(s []T) T { return slices.Min(s) }, func(a, b T) T { return min(a, b) })
}

// MinFunc is like Min but compares elements with cmp. If there is more than
// one minimal element, it returns the first one.
func MinFunc[T any](d *Deque[T], cmp func(a, b T) int) T {
	return reduce(d, "MinFunc", func(s []T) T { return slices.MinFunc(s, cmp) }, func(a, b T) T {
		if cmp(b, a) < 0 {
			return b
		}
		return a
	})
}

// ForEach calls f in order for every element in the Deque, or until the
// first call that returns false.
func (d *Deque[T]) ForEach(f func(T) bool) {
	for t := range d.Iter() {
		if !f(t) {
			return
		}
	}
}

/*****************************************************************************
 * ITER API
 *****************************************************************************/

// All returns an iterator over index-value pairs in order, like slices.All.
func (d *Deque[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		i := 0
		for seg := range d.segments() {
			for _, t := range seg {
				if !yield(i, t) {
					return
				}
				i++
			}
		}
	}
}

// Iter returns an iterator over values only in order. If you need indexes,
// use All instead.
func (d *Deque[T]) Iter() iter.Seq[T] {
	return func(yield func(T) bool) {
		for seg := range d.segments() {
			for _, t := range seg {
				if !yield(t) {
					return
				}
			}
		}
	}
}

// Backward returns an iterator over index-value pairs from back to front,
// like slices.Backward.
func (d *Deque[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := d.Len() - 1; i >= 0; i-- {
			if !yield(i, d.AtUnsafe(i)) {
				return
			}
		}
	}
}

/*****************************************************************************
 * SENTINEL ERRORS
 *****************************************************************************/

const (
	// ErrOutOfRange is returned when a position is outside the Deque.
	ErrOutOfRange = errors.ConstError("position out of range")

	// ErrNegativeSize is returned when constructing a Deque with a negative
	// number of elements.
	ErrNegativeSize = errors.ConstError("size cannot be negative")

	// ErrInvalidIterator is returned when an iterator from another Deque, or
	// one invalidated by growth, Insert, Erase, Clear, Assign or Release, is
	// passed to Insert or Erase.
	ErrInvalidIterator = errors.ConstError("iterator is not valid for this deque")
)

/*****************************************************************************
 * HELPERS
 *****************************************************************************/

func outOfRange(op string, i, n int) error {
	return errors.Annotatef(ErrOutOfRange, "%s(%d) with length %d", op, i, n)
}

func (d *Deque[T]) checkBounds(op string, i int) error {
	if n := d.Len(); i < 0 || i >= n {
		return outOfRange(op, i, n)
	}
	return nil
}

func (d *Deque[T]) owns(c cursor[T]) error {
	if c.d != d || !c.valid() {
		return errors.Trace(ErrInvalidIterator)
	}
	return nil
}

// reduce folds f over every segment with pick. It panics on an empty Deque,
// like the slices functions it wraps.
func reduce[T any](d *Deque[T], op string, f func([]T) T, pick func(a, b T) T) T {
	var result T
	empty := true
	for seg := range d.segments() {
		if v := f(seg); empty {
			result, empty = v, false
		} else {
			result = pick(result, v)
		}
	}
	if empty {
		panic("deque." + op + ": empty deque")
	}
	return result
}

// destroy runs the destructor on p, then zeroes it.
func (d *Deque[T]) destroy(p *T) { d.opts.destroy(p) }
