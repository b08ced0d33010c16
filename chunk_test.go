package deque

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFits(t *testing.T) {
	tests := []struct {
		name       string
		head, size uint
		cap        uint
		want       bool
	}{
		{"no capacity", 0, 0, 0, false},
		{"empty", 0, 0, ChunkSize, true},
		{"one slot free", 0, ChunkSize - 1, ChunkSize, true},
		{"full", 0, ChunkSize, ChunkSize, false},
		{"wraps into head block", ChunkSize - 1, 2, ChunkSize, false},
		{"ends at capacity", 5, 3*ChunkSize - 5, 3 * ChunkSize, true},
		{"wraps past capacity", 2*ChunkSize + 5, ChunkSize, 3 * ChunkSize, true},
		{"wraps back into head block", 2*ChunkSize + 5, 3*ChunkSize - 4, 3 * ChunkSize, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, fits(tt.head, tt.size, tt.cap))
		})
	}
}

func TestLocate(t *testing.T) {
	c, o := locate(0)
	require.Equal(t, [2]uint{0, 0}, [2]uint{c, o})
	c, o = locate(ChunkSize - 1)
	require.Equal(t, [2]uint{0, ChunkSize - 1}, [2]uint{c, o})
	c, o = locate(2*ChunkSize + 7)
	require.Equal(t, [2]uint{2, 7}, [2]uint{c, o})
}

func TestGrowthIsGeometric(t *testing.T) {
	d := New[int]()
	require.Zero(t, d.Cap())

	var caps []int
	for i := range 10 * ChunkSize {
		require.NoError(t, d.PushBack(i))
		if len(caps) == 0 || caps[len(caps)-1] != d.Cap() {
			caps = append(caps, d.Cap())
		}
	}
	require.Equal(t, []int{ChunkSize, 3 * ChunkSize, 7 * ChunkSize, 15 * ChunkSize}, caps)
}

func TestExpandRotatesHeadBlockFirst(t *testing.T) {
	d := New[int]()
	require.NoError(t, d.PushBack(1))
	first := d.blocks[0]

	// The new front would land in the only block, which already holds the
	// back, so the Deque grows before writing it.
	require.NoError(t, d.PushFront(0))
	require.Len(t, d.blocks, 3)
	require.Same(t, first, d.blocks[0])
	require.Equal(t, uint(3*ChunkSize-1), d.head)
	require.Equal(t, uint(1), d.tail)
	require.Equal(t, []int{0, 1}, d.MakeSliceCopy())
	checkInvariants(t, d)

	// Fill the last block from its end, then grow again: its block moves
	// to the front of the block slice.
	for i := -1; i > -ChunkSize+1; i-- {
		require.NoError(t, d.PushFront(i))
	}
	headBlock := d.blocks[2]
	pushAll(t, d, seq(2, 2*ChunkSize+2)...)
	require.Len(t, d.blocks, 7)
	require.Same(t, headBlock, d.blocks[0])
	require.Equal(t, seq(-ChunkSize+2, 2*ChunkSize+2), d.MakeSliceCopy())
	checkInvariants(t, d)
}

func TestGrowthNeverMovesElements(t *testing.T) {
	d := wrapped(t, 100)
	ptrs := make([]*int, 0, 100)
	for it := d.Begin(); !it.Equal(d.End()); it.Next() {
		ptrs = append(ptrs, it.Ptr())
	}

	for i := range 3 * ChunkSize {
		require.NoError(t, d.PushFront(-1-i))
		require.NoError(t, d.PushBack(100+i))
	}

	base := 3 * ChunkSize
	for i, p := range ptrs {
		require.Equal(t, i, *p)
		require.Same(t, p, d.Begin().Add(base+i).Ptr())
	}
	checkInvariants(t, d)
}

func TestExpandFailureLeavesDequeUnchanged(t *testing.T) {
	alloc := &countingAllocator[int]{failAt: 3}
	d := New(withAllocator[int](alloc))
	pushAll(t, d, seq(0, ChunkSize-1)...)
	require.Equal(t, 1, alloc.live)

	it := d.Begin().Add(10)
	before := d.MakeSliceCopy()

	err := d.PushBack(ChunkSize)
	require.ErrorIs(t, err, errAllocation)
	require.Equal(t, 1, alloc.live, "blocks allocated by the failed growth must be released")
	require.Equal(t, ChunkSize, d.Cap())
	require.Equal(t, before, d.MakeSliceCopy())
	require.True(t, it.Valid())
	require.Equal(t, 10, it.Get())

	err = d.PushFront(-1)
	require.ErrorIs(t, err, errAllocation)
	require.Equal(t, before, d.MakeSliceCopy())
	checkInvariants(t, d)
}

func TestSegments(t *testing.T) {
	d := wrapped(t, ChunkSize+10)
	pushAll(t, d, seq(ChunkSize+10, ChunkSize+15)...)

	var runs [][]int
	for seg := range d.segments() {
		runs = append(runs, slices.Clone(seg))
	}
	require.Len(t, runs, 3)
	require.Equal(t, []int{10, ChunkSize, 5}, []int{len(runs[0]), len(runs[1]), len(runs[2])})
	require.Equal(t, seq(0, ChunkSize+15), slices.Concat(runs...))

	var empty Deque[int]
	for range empty.segments() {
		t.Fatal("empty deque yielded a segment")
	}
}
