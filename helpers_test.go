package deque

import (
	"testing"

	"github.com/juju/errors"
	"github.com/stretchr/testify/require"
)

const (
	errAllocation = errors.ConstError("out of blocks")
	errClone      = errors.ConstError("clone failed")
)

// countingAllocator tracks live blocks. Once failAt calls have been made,
// every further call fails.
type countingAllocator[T any] struct {
	calls, live, failAt int
}

func (a *countingAllocator[T]) allocate() (*block[T], error) {
	a.calls++
	if a.failAt != 0 && a.calls >= a.failAt {
		return nil, errAllocation
	}
	a.live++
	return new(block[T]), nil
}

func (a *countingAllocator[T]) release(*block[T]) { a.live-- }

// destroyLog records every value handed to a destructor, in order.
type destroyLog[T any] struct {
	values []T
}

func (l *destroyLog[T]) destructor() Option[T] {
	return WithDestructor(func(p *T) { l.values = append(l.values, *p) })
}

func checkInvariants[T any](t *testing.T, d *Deque[T]) {
	t.Helper()
	c := d.cap()
	if c == 0 {
		require.Zero(t, d.head)
		require.Zero(t, d.tail)
		return
	}
	require.Less(t, d.head, c)
	require.Less(t, d.tail, c)
	require.True(t, fits(d.head, d.len(), c), "head %d len %d cap %d", d.head, d.len(), c)
}

// pushAll pushes vs at the back.
func pushAll[T any](t *testing.T, d *Deque[T], vs ...T) {
	t.Helper()
	for _, v := range vs {
		require.NoError(t, d.PushBack(v))
	}
}

func seq(from, to int) []int {
	s := make([]int, 0, to-from)
	for i := from; i < to; i++ {
		s = append(s, i)
	}
	return s
}

// wrapped returns a Deque holding 0..n-1 built by pushing at the front, so
// the front sits near the end of the last block and the live run wraps
// around the circular capacity.
func wrapped(t *testing.T, n int, opts ...Option[int]) *Deque[int] {
	t.Helper()
	d := New(opts...)
	for i := n - 1; i >= 0; i-- {
		require.NoError(t, d.PushFront(i))
	}
	require.Equal(t, seq(0, n), d.MakeSliceCopy())
	return d
}
