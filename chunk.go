package deque

import (
	"iter"
	"slices"

	"github.com/juju/errors"
)

/*****************************************************************************
 * CHUNK STORE
 *****************************************************************************/

// ChunkSize is the number of elements held by every block of a Deque.
const ChunkSize = 1 << chunkShift

const (
	chunkShift = 10
	chunkMask  = ChunkSize - 1
)

// A block is a fixed-capacity segment of element storage. Blocks never move
// once allocated, so an element keeps its address until it leaves the Deque.
type block[T any] [ChunkSize]T

// allocator hands out zeroed blocks. Go cannot fail a heap allocation
// recoverably, so the only failing allocators are the ones tests install.
type allocator[T any] interface {
	allocate() (*block[T], error)
	release(*block[T])
}

type heapAllocator[T any] struct{}

func (heapAllocator[T]) allocate() (*block[T], error) { return new(block[T]), nil }
func (heapAllocator[T]) release(*block[T])           {}

func (d *Deque[T]) allocator() allocator[T] { return d.opts.allocator() }

// allocateBlocks returns n fresh blocks, or releases whatever it got before
// the failing call and returns the error.
func allocateBlocks[T any](a allocator[T], n int) ([]*block[T], error) {
	fresh := make([]*block[T], 0, n)
	for range n {
		b, err := a.allocate()
		if err != nil {
			releaseBlocks(a, fresh)
			return nil, errors.Annotatef(err, "allocating block %d of %d", len(fresh)+1, n)
		}
		fresh = append(fresh, b)
	}
	return fresh, nil
}

// releaseBlocks hands blocks back in reverse allocation order.
func releaseBlocks[T any](a allocator[T], blocks []*block[T]) {
	for i := len(blocks); i > 0; i-- {
		a.release(blocks[i-1])
		blocks[i-1] = nil
	}
}

/*****************************************************************************
 * CAPACITY MANAGER
 *****************************************************************************/

// fits reports whether a run of size elements starting at head is a valid
// layout for capacity c. One slot always stays free so that head == tail
// only ever means empty, and the run must not wrap back into the block that
// holds head, since expand could not keep it contiguous otherwise.
func fits(head, size, c uint) bool {
	return size < c && head&chunkMask+size <= c
}

// grow extends the Deque geometrically.
func (d *Deque[T]) grow() error {
	return d.expand(2*len(d.blocks) + 1)
}

// expand grows the block slice to target blocks. The block holding head is
// rotated to the front, so the occupied run stays contiguous in the larger
// capacity. Elements never move. On failure the Deque is left untouched.
func (d *Deque[T]) expand(target int) error {
	old := len(d.blocks)
	if target <= old {
		return nil
	}
	fresh, err := allocateBlocks(d.allocator(), target-old)
	if err != nil {
		return errors.Trace(err)
	}

	n := d.len()
	start := int(d.head >> chunkShift)
	d.blocks = slices.Concat(d.blocks[start:], d.blocks[:start], fresh)
	d.head &= chunkMask
	d.tail = (d.head + n) % d.cap()
	d.gen++
	return nil
}

/*****************************************************************************
 * POSITION MAPPER
 *****************************************************************************/

// locate maps an absolute logical position to its block and in-block offset.
func locate(pos uint) (chunk, offset uint) {
	return pos >> chunkShift, pos & chunkMask
}

// slot returns the storage for an absolute logical position.
func (d *Deque[T]) slot(pos uint) *T {
	c, o := locate(pos)
	return &d.blocks[c][o]
}

// logical converts an offset from the front into an absolute position.
func (d *Deque[T]) logical(i uint) uint {
	pos := d.head + i
	if c := d.cap(); c != 0 && pos >= c {
		pos %= c
	}
	return pos
}

func (d *Deque[T]) next(pos uint) uint {
	pos++
	if pos == d.cap() {
		return 0
	}
	return pos
}

func (d *Deque[T]) prev(pos uint) uint {
	if pos == 0 {
		return d.cap() - 1
	}
	return pos - 1
}

// segments yields the live elements as contiguous runs, front to back. The
// runs alias the blocks and must not escape the package.
func (d *Deque[T]) segments() iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		if d == nil {
			return
		}
		n := d.len()
		for done := uint(0); done < n; {
			c, o := locate(d.logical(done))
			run := min(n-done, ChunkSize-o)
			if !yield(d.blocks[c][o : o+run]) {
				return
			}
			done += run
		}
	}
}
