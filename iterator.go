package deque

import "cmp"

/*****************************************************************************
 * CURSOR
 *****************************************************************************/

// cursor is the random-access position shared by every iterator type. It
// caches the block it points into so dereferencing and single steps inside a
// block never touch the block slice. Ordering and distances are taken
// relative to the Deque's live head, so a cursor stays meaningful across
// pops and pushes that don't grow the Deque.
type cursor[T any] struct {
	d        *Deque[T]
	gen      uint64
	blocks   []*block[T]
	chunk    *block[T]
	chunkPos uint
	local    uint
	cap      uint
}

func (d *Deque[T]) cursorAt(pos uint) cursor[T] {
	c := cursor[T]{d: d, gen: d.gen, blocks: d.blocks, cap: d.cap()}
	if c.cap != 0 {
		c.moveTo(pos)
	}
	return c
}

func (c *cursor[T]) pos() uint { return c.chunkPos<<chunkShift | c.local }

func (c *cursor[T]) moveTo(pos uint) {
	c.chunkPos, c.local = locate(pos)
	c.chunk = c.blocks[c.chunkPos]
}

func (c *cursor[T]) valid() bool { return c.d != nil && c.gen == c.d.gen }

// offset returns the distance from the front of the Deque, normalized into
// (Len()-Cap(), Len()]. Positions that are not live and not the end map to
// negative offsets, so they order before the front.
func (c *cursor[T]) offset() int {
	if c.cap == 0 {
		return 0
	}
	head, pos := c.d.head, c.pos()
	var id uint
	if pos >= head {
		id = pos - head
	} else {
		id = c.cap - head + pos
	}
	if id > c.d.len() {
		return int(id) - int(c.cap)
	}
	return int(id)
}

func (c *cursor[T]) inc() {
	if c.cap == 0 {
		return
	}
	if c.local+1 < ChunkSize {
		c.local++
		return
	}
	c.chunkPos++
	if c.chunkPos == uint(len(c.blocks)) {
		c.chunkPos = 0
	}
	c.local = 0
	c.chunk = c.blocks[c.chunkPos]
}

func (c *cursor[T]) dec() {
	if c.cap == 0 {
		return
	}
	if c.local > 0 {
		c.local--
		return
	}
	if c.chunkPos == 0 {
		c.chunkPos = uint(len(c.blocks))
	}
	c.chunkPos--
	c.local = ChunkSize - 1
	c.chunk = c.blocks[c.chunkPos]
}

func (c *cursor[T]) seek(n int) {
	if c.cap == 0 || n == 0 {
		return
	}
	if n > 0 {
		diff := uint(n) % c.cap
		if c.local+diff < ChunkSize {
			c.local += diff
		} else {
			c.moveTo((c.pos() + diff) % c.cap)
		}
		return
	}
	diff := uint(-n) % c.cap
	if c.local >= diff {
		c.local -= diff
	} else {
		c.moveTo((c.pos() + c.cap - diff) % c.cap)
	}
}

func (c *cursor[T]) equal(o *cursor[T]) bool {
	return c.chunkPos == o.chunkPos && c.local == o.local
}

func (c *cursor[T]) compare(o *cursor[T]) int {
	return cmp.Compare(c.offset(), o.offset())
}

/*****************************************************************************
 * ITERATOR
 *****************************************************************************/

// Iterator is a random-access position in a Deque, from Begin to End.
//
// Iterators are values; copying one yields an independent position. An
// Iterator stays valid across pushes and pops that do not grow the Deque,
// except that iterators to a popped element are no longer meaningful. Growth,
// Insert, Erase, Clear, Assign and Release invalidate every iterator; Valid
// reports whether that happened. Using an invalid iterator is undefined.
type Iterator[T any] struct {
	cursor[T]
}

// Begin returns an iterator to the first element.
func (d *Deque[T]) Begin() Iterator[T] { return Iterator[T]{d.cursorAt(d.head)} }

// End returns an iterator one past the last element.
func (d *Deque[T]) End() Iterator[T] { return Iterator[T]{d.cursorAt(d.tail)} }

// Get returns the element at it. Calling Get on End is undefined.
func (it Iterator[T]) Get() T { return it.chunk[it.local] }

// Set replaces the element at it.
func (it Iterator[T]) Set(t T) { it.chunk[it.local] = t }

// Ptr returns the address of the element at it. The address stays stable
// until the element leaves the Deque or the Deque is released.
func (it Iterator[T]) Ptr() *T { return &it.chunk[it.local] }

// Next advances it by one position.
func (it *Iterator[T]) Next() { it.inc() }

// Prev moves it back by one position.
func (it *Iterator[T]) Prev() { it.dec() }

// Seek moves it by n positions, backwards if n is negative.
func (it *Iterator[T]) Seek(n int) { it.seek(n) }

// Add returns an iterator n positions after it, or before if n is negative.
func (it Iterator[T]) Add(n int) Iterator[T] {
	it.seek(n)
	return it
}

// Sub returns the signed distance from o to it, so that o.Add(it.Sub(o))
// equals it.
func (it Iterator[T]) Sub(o Iterator[T]) int { return it.offset() - o.offset() }

// Index returns the position of it counted from the front.
func (it Iterator[T]) Index() int { return it.offset() }

// Equal reports whether both iterators point at the same position.
func (it Iterator[T]) Equal(o Iterator[T]) bool { return it.equal(&o.cursor) }

// Compare returns -1, 0 or 1 depending on whether it is before, at or after o.
func (it Iterator[T]) Compare(o Iterator[T]) int { return it.compare(&o.cursor) }

// Less reports whether it is before o.
func (it Iterator[T]) Less(o Iterator[T]) bool { return it.Compare(o) < 0 }

// LessEqual reports whether it is before or at o.
func (it Iterator[T]) LessEqual(o Iterator[T]) bool { return it.Compare(o) <= 0 }

// Greater reports whether it is after o.
func (it Iterator[T]) Greater(o Iterator[T]) bool { return it.Compare(o) > 0 }

// GreaterEqual reports whether it is at or after o.
func (it Iterator[T]) GreaterEqual(o Iterator[T]) bool { return it.Compare(o) >= 0 }

// Valid reports whether it still belongs to the current layout of its Deque.
func (it Iterator[T]) Valid() bool { return it.valid() }

// Const returns a read-only iterator at the same position.
func (it Iterator[T]) Const() ConstIterator[T] { return ConstIterator[T](it) }

/*****************************************************************************
 * CONST ITERATOR
 *****************************************************************************/

// ConstIterator is an Iterator that cannot modify the Deque.
type ConstIterator[T any] struct {
	cursor[T]
}

// CBegin returns a read-only iterator to the first element.
func (d *Deque[T]) CBegin() ConstIterator[T] { return d.Begin().Const() }

// CEnd returns a read-only iterator one past the last element.
func (d *Deque[T]) CEnd() ConstIterator[T] { return d.End().Const() }

// Get returns the element at it. Calling Get on CEnd is undefined.
func (it ConstIterator[T]) Get() T { return it.chunk[it.local] }

// Next advances it by one position.
func (it *ConstIterator[T]) Next() { it.inc() }

// Prev moves it back by one position.
func (it *ConstIterator[T]) Prev() { it.dec() }

// Seek moves it by n positions, backwards if n is negative.
func (it *ConstIterator[T]) Seek(n int) { it.seek(n) }

// Add returns an iterator n positions after it, or before if n is negative.
func (it ConstIterator[T]) Add(n int) ConstIterator[T] {
	it.seek(n)
	return it
}

// Sub returns the signed distance from o to it.
func (it ConstIterator[T]) Sub(o ConstIterator[T]) int { return it.offset() - o.offset() }

// Index returns the position of it counted from the front.
func (it ConstIterator[T]) Index() int { return it.offset() }

// Equal reports whether both iterators point at the same position.
func (it ConstIterator[T]) Equal(o ConstIterator[T]) bool { return it.equal(&o.cursor) }

// Compare returns -1, 0 or 1 depending on whether it is before, at or after o.
func (it ConstIterator[T]) Compare(o ConstIterator[T]) int { return it.compare(&o.cursor) }

// Less reports whether it is before o.
func (it ConstIterator[T]) Less(o ConstIterator[T]) bool { return it.Compare(o) < 0 }

// LessEqual reports whether it is before or at o.
func (it ConstIterator[T]) LessEqual(o ConstIterator[T]) bool { return it.Compare(o) <= 0 }

// Greater reports whether it is after o.
func (it ConstIterator[T]) Greater(o ConstIterator[T]) bool { return it.Compare(o) > 0 }

// GreaterEqual reports whether it is at or after o.
func (it ConstIterator[T]) GreaterEqual(o ConstIterator[T]) bool { return it.Compare(o) >= 0 }

// Valid reports whether it still belongs to the current layout of its Deque.
func (it ConstIterator[T]) Valid() bool { return it.valid() }

/*****************************************************************************
 * REVERSE ITERATORS
 *****************************************************************************/

// ReverseIterator walks a Deque from back to front. Like the reverse
// iterators of other languages it keeps a base Iterator one position after
// the element it refers to, so RBegin wraps End and REnd wraps Begin.
type ReverseIterator[T any] struct {
	base Iterator[T]
}

// RBegin returns a reverse iterator to the last element.
func (d *Deque[T]) RBegin() ReverseIterator[T] { return ReverseIterator[T]{d.End()} }

// REnd returns a reverse iterator one before the first element.
func (d *Deque[T]) REnd() ReverseIterator[T] { return ReverseIterator[T]{d.Begin()} }

// Base returns the underlying forward iterator.
func (r ReverseIterator[T]) Base() Iterator[T] { return r.base }

// Get returns the element at r.
func (r ReverseIterator[T]) Get() T { return r.base.Add(-1).Get() }

// Set replaces the element at r.
func (r ReverseIterator[T]) Set(t T) { r.base.Add(-1).Set(t) }

// Ptr returns the address of the element at r.
func (r ReverseIterator[T]) Ptr() *T { return r.base.Add(-1).Ptr() }

// Next moves r one element towards the front.
func (r *ReverseIterator[T]) Next() { r.base.Prev() }

// Prev moves r one element towards the back.
func (r *ReverseIterator[T]) Prev() { r.base.Next() }

// Seek moves r by n positions in reverse order.
func (r *ReverseIterator[T]) Seek(n int) { r.base.Seek(-n) }

// Add returns a reverse iterator n positions after r in reverse order.
func (r ReverseIterator[T]) Add(n int) ReverseIterator[T] {
	return ReverseIterator[T]{r.base.Add(-n)}
}

// Sub returns the signed distance from o to r in reverse order.
func (r ReverseIterator[T]) Sub(o ReverseIterator[T]) int { return o.base.Sub(r.base) }

// Index returns the position of the element at r counted from the front.
func (r ReverseIterator[T]) Index() int { return r.base.Index() - 1 }

// Equal reports whether both iterators point at the same position.
func (r ReverseIterator[T]) Equal(o ReverseIterator[T]) bool { return r.base.Equal(o.base) }

// Compare orders reverse iterators by their reverse traversal order.
func (r ReverseIterator[T]) Compare(o ReverseIterator[T]) int { return o.base.Compare(r.base) }

// Less reports whether r comes before o in reverse order.
func (r ReverseIterator[T]) Less(o ReverseIterator[T]) bool { return r.Compare(o) < 0 }

// LessEqual reports whether r comes before or at o in reverse order.
func (r ReverseIterator[T]) LessEqual(o ReverseIterator[T]) bool { return r.Compare(o) <= 0 }

// Greater reports whether r comes after o in reverse order.
func (r ReverseIterator[T]) Greater(o ReverseIterator[T]) bool { return r.Compare(o) > 0 }

// GreaterEqual reports whether r comes at or after o in reverse order.
func (r ReverseIterator[T]) GreaterEqual(o ReverseIterator[T]) bool { return r.Compare(o) >= 0 }

// Valid reports whether r still belongs to the current layout of its Deque.
func (r ReverseIterator[T]) Valid() bool { return r.base.Valid() }

// ConstReverseIterator is a ReverseIterator that cannot modify the Deque.
type ConstReverseIterator[T any] struct {
	base ConstIterator[T]
}

// CRBegin returns a read-only reverse iterator to the last element.
func (d *Deque[T]) CRBegin() ConstReverseIterator[T] {
	return ConstReverseIterator[T]{d.CEnd()}
}

// CREnd returns a read-only reverse iterator one before the first element.
func (d *Deque[T]) CREnd() ConstReverseIterator[T] {
	return ConstReverseIterator[T]{d.CBegin()}
}

func (r ConstReverseIterator[T]) Base() ConstIterator[T] { return r.base }

func (r ConstReverseIterator[T]) Get() T { return r.base.Add(-1).Get() }

func (r *ConstReverseIterator[T]) Next() { r.base.Prev() }

func (r *ConstReverseIterator[T]) Prev() { r.base.Next() }

func (r *ConstReverseIterator[T]) Seek(n int) { r.base.Seek(-n) }

func (r ConstReverseIterator[T]) Add(n int) ConstReverseIterator[T] {
	return ConstReverseIterator[T]{r.base.Add(-n)}
}

func (r ConstReverseIterator[T]) Sub(o ConstReverseIterator[T]) int { return o.base.Sub(r.base) }

func (r ConstReverseIterator[T]) Index() int { return r.base.Index() - 1 }

func (r ConstReverseIterator[T]) Equal(o ConstReverseIterator[T]) bool {
	return r.base.Equal(o.base)
}

func (r ConstReverseIterator[T]) Compare(o ConstReverseIterator[T]) int {
	return o.base.Compare(r.base)
}

func (r ConstReverseIterator[T]) Less(o ConstReverseIterator[T]) bool { return r.Compare(o) < 0 }

func (r ConstReverseIterator[T]) LessEqual(o ConstReverseIterator[T]) bool {
	return r.Compare(o) <= 0
}

func (r ConstReverseIterator[T]) Greater(o ConstReverseIterator[T]) bool { return r.Compare(o) > 0 }

func (r ConstReverseIterator[T]) GreaterEqual(o ConstReverseIterator[T]) bool {
	return r.Compare(o) >= 0
}

func (r ConstReverseIterator[T]) Valid() bool { return r.base.Valid() }
