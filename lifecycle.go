package deque

import "github.com/juju/errors"

/*****************************************************************************
 * OPTIONS
 *****************************************************************************/

type options[T any] struct {
	destructor func(*T)
	cloner     func(T) (T, error)
	alloc      allocator[T]
}

// Option configures a Deque at construction.
type Option[T any] func(*options[T])

// WithDestructor sets a function run on every element the Deque discards:
// on Erase, Clear, Release, Assign and when a constructor fails part way.
// Popped elements are handed back to the caller instead.
func WithDestructor[T any](f func(*T)) Option[T] {
	return func(o *options[T]) { o.destructor = f }
}

// WithCloner sets how elements are copied by NewFilled, FromSlice, Clone and
// Assign. Without one, elements are copied by assignment. A cloner error
// aborts the construction, which then leaves nothing behind.
func WithCloner[T any](f func(T) (T, error)) Option[T] {
	return func(o *options[T]) { o.cloner = f }
}

func withAllocator[T any](a allocator[T]) Option[T] {
	return func(o *options[T]) { o.alloc = a }
}

func newOptions[T any](opts []Option[T]) options[T] {
	var o options[T]
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o *options[T]) copy(t T) (T, error) {
	if o.cloner == nil {
		return t, nil
	}
	return o.cloner(t)
}

func (o *options[T]) destroy(p *T) {
	if o.destructor != nil {
		o.destructor(p)
	}
	var zero T
	*p = zero
}

func (o *options[T]) allocator() allocator[T] {
	if o.alloc == nil {
		return heapAllocator[T]{}
	}
	return o.alloc
}

/*****************************************************************************
 * CONSTRUCTORS
 *****************************************************************************/

// New returns an empty Deque. It allocates nothing until the first push.
func New[T any](opts ...Option[T]) *Deque[T] {
	return &Deque[T]{opts: newOptions(opts)}
}

// NewFilled returns a Deque holding n copies of value, made with the cloner
// if one is set.
//
// Construction is atomic: if any copy fails, the copies already made are
// destroyed in reverse order, every block is released and the error is
// returned with a nil Deque.
func NewFilled[T any](n int, value T, opts ...Option[T]) (*Deque[T], error) {
	o := newOptions(opts)
	return build(n, &o, -1, func(int) (T, error) { return o.copy(value) })
}

// NewSized returns a Deque holding n zero values.
func NewSized[T any](n int, opts ...Option[T]) (*Deque[T], error) {
	o := newOptions(opts)
	return build(n, &o, -1, func(int) (t T, err error) { return })
}

// NewFunc returns a Deque whose i-th element is fn(i), called in order. It is
// atomic in the same way as NewFilled, including when fn panics.
func NewFunc[T any](n int, fn func(i int) (T, error), opts ...Option[T]) (*Deque[T], error) {
	o := newOptions(opts)
	return build(n, &o, -1, fn)
}

// FromSlice returns a Deque holding copies of the elements of s. Memory is not
// shared with s.
func FromSlice[T any](s []T, opts ...Option[T]) (*Deque[T], error) {
	o := newOptions(opts)
	return build(len(s), &o, -1, func(i int) (T, error) { return o.copy(s[i]) })
}

// Clone returns a deep copy of d, with the same options and block count.
// Clone is atomic in the same way as NewFilled. A nil Deque clones to nil.
func (d *Deque[T]) Clone() (*Deque[T], error) {
	if d == nil {
		return nil, nil
	}
	o := d.opts
	it := d.Begin()
	return build(d.Len(), &o, len(d.blocks), func(int) (T, error) {
		t := it.Get()
		it.Next()
		return o.copy(t)
	})
}

// Assign replaces the contents of d with copies of the elements of src, made
// with d's cloner. d keeps its own options.
//
// The copy is built aside first, so if it fails d is unchanged. On success
// the old elements are destroyed and their blocks released, and every
// iterator into d is invalidated. Assigning a Deque to itself does nothing.
func (d *Deque[T]) Assign(src *Deque[T]) error {
	if d == src || (src != nil && len(d.blocks) != 0 && len(src.blocks) != 0 && &d.blocks[0] == &src.blocks[0]) {
		return nil
	}

	var it Iterator[T]
	blocks := 0
	if src != nil {
		it = src.Begin()
		blocks = len(src.blocks)
	}
	tmp, err := build(src.Len(), &d.opts, blocks, func(int) (T, error) {
		t := it.Get()
		it.Next()
		return d.opts.copy(t)
	})
	if err != nil {
		return errors.Trace(err)
	}
	d.swap(tmp)
	tmp.Release()
	d.gen++
	return nil
}

// Release destroys every element, front to back, then releases every block.
// The Deque is left empty and can be reused. Every iterator is invalidated.
func (d *Deque[T]) Release() {
	d.Clear()
	releaseBlocks(d.allocator(), d.blocks)
	d.blocks = nil
}

func (d *Deque[T]) swap(o *Deque[T]) {
	d.blocks, o.blocks = o.blocks, d.blocks
	d.head, o.head = o.head, d.head
	d.tail, o.tail = o.tail, d.tail
}

/*****************************************************************************
 * BUILDER
 *****************************************************************************/

// blocksFor returns how many blocks a Deque built with n elements starts
// with: enough for n, doubled plus one like any other growth.
func blocksFor(n int) int {
	if n == 0 {
		return 0
	}
	return 2*((n+chunkMask)>>chunkShift) + 1
}

// build makes a Deque of n elements produced by next, with blocks blocks, or
// blocksFor(n) if blocks is negative. Nothing survives a failure: a deferred
// rollback destroys what was constructed and releases what was allocated,
// whether next returned an error or panicked.
func build[T any](n int, opts *options[T], blocks int, next func(i int) (T, error)) (*Deque[T], error) {
	if n < 0 {
		return nil, errors.Annotatef(ErrNegativeSize, "building %d elements", n)
	}
	if blocks < 0 {
		blocks = blocksFor(n)
	}

	b := builder[T]{opts: opts}
	if err := b.allocate(blocks); err != nil {
		return nil, errors.Trace(err)
	}
	done := false
	defer func() {
		if !done {
			b.rollback()
		}
	}()

	for i := range n {
		t, err := next(i)
		if err != nil {
			return nil, errors.Annotatef(err, "constructing element %d of %d", i, n)
		}
		b.push(t)
	}
	done = true
	return &Deque[T]{blocks: b.blocks, tail: b.n, opts: *opts}, nil
}

// builder fills fresh blocks front to back. Its undo log is the constructed
// prefix [0, n), which rollback unwinds in reverse.
type builder[T any] struct {
	opts   *options[T]
	blocks []*block[T]
	n      uint
}

func (b *builder[T]) allocate(blocks int) error {
	fresh, err := allocateBlocks(b.opts.allocator(), blocks)
	if err != nil {
		return errors.Trace(err)
	}
	b.blocks = fresh
	return nil
}

func (b *builder[T]) push(t T) {
	c, o := locate(b.n)
	b.blocks[c][o] = t
	b.n++
}

func (b *builder[T]) rollback() {
	for b.n > 0 {
		b.n--
		c, o := locate(b.n)
		b.opts.destroy(&b.blocks[c][o])
	}
	releaseBlocks(b.opts.allocator(), b.blocks)
	b.blocks = nil
}
