package deque_test

import (
	"errors"
	"fmt"

	deque "github.com/lucasgdosr/chunkdeque"
)

func Example() {
	d := deque.New[int]()
	_ = d.PushBack(1)
	_ = d.PushBack(2)
	_ = d.PushFront(0)
	fmt.Println(d.MakeSliceCopy())

	d.PopFront()
	_, _ = d.Insert(d.Begin().Add(1), 9)
	fmt.Println(d.MakeSliceCopy())

	_, _ = d.Erase(d.Begin())
	fmt.Println(d.MakeSliceCopy(), d.Len())
	// Output:
	// [0 1 2]
	// [1 9 2]
	// [9 2] 2
}

func ExampleDeque_At() {
	d, _ := deque.FromSlice([]string{"a", "b"})
	v, err := d.At(1)
	fmt.Println(v, err)

	_, err = d.At(2)
	fmt.Println(errors.Is(err, deque.ErrOutOfRange))
	// Output:
	// b <nil>
	// true
}

func ExampleDeque_RBegin() {
	d, _ := deque.FromSlice([]int{1, 2, 3})
	for r := d.RBegin(); !r.Equal(d.REnd()); r.Next() {
		fmt.Print(r.Get(), " ")
	}
	fmt.Println()
	// Output: 3 2 1
}

func ExampleNewFilled() {
	copies := 0
	d, err := deque.NewFilled(4, []byte("ab"), deque.WithCloner(func(b []byte) ([]byte, error) {
		copies++
		return append([]byte(nil), b...), nil
	}))
	fmt.Println(d.Len(), copies, err)
	// Output: 4 4 <nil>
}
