package buffer

import (
	"fmt"
	"sync"
	"testing"
)

func TestNew(t *testing.T) {
	r := New(100)

	if r.Capacity() != 100 {
		t.Errorf("Expected capacity 100, got %d", r.Capacity())
	}

	if r.Size() != 0 {
		t.Errorf("Expected size 0, got %d", r.Size())
	}
}

func TestNew_DefaultCapacity(t *testing.T) {
	r := New(0)

	if r.Capacity() != DefaultCapacity {
		t.Errorf("Expected default capacity %d, got %d", DefaultCapacity, r.Capacity())
	}
}

func TestPush_SkipsEmptyAndRepeats(t *testing.T) {
	r := New(10)
	r.Push("hello")
	r.Push("")
	r.Push("hello")
	r.Push("world")

	if r.Size() != 2 {
		t.Errorf("Expected size 2, got %d", r.Size())
	}
}

func TestPush_WrapAround(t *testing.T) {
	r := New(3)

	r.Push("one")
	r.Push("two")
	r.Push("three")
	r.Push("four") // overwrites "one"

	if r.Size() != 3 {
		t.Errorf("Expected size 3, got %d", r.Size())
	}

	all := r.All()
	want := []string{"two", "three", "four"}
	for i := range want {
		if all[i] != want[i] {
			t.Errorf("Entry %d: expected %q, got %q", i, want[i], all[i])
		}
	}
}

func TestPrevNext(t *testing.T) {
	r := New(10)
	r.Push("first")
	r.Push("second")

	if got, ok := r.Prev(); !ok || got != "second" {
		t.Errorf("Expected second, got %q (ok=%v)", got, ok)
	}
	if got, ok := r.Prev(); !ok || got != "first" {
		t.Errorf("Expected first, got %q (ok=%v)", got, ok)
	}
	// stays at the oldest entry
	if got, ok := r.Prev(); !ok || got != "first" {
		t.Errorf("Expected first again, got %q (ok=%v)", got, ok)
	}
	if got, ok := r.Next(); !ok || got != "second" {
		t.Errorf("Expected second, got %q (ok=%v)", got, ok)
	}
	if _, ok := r.Next(); ok {
		t.Error("Expected Next past the newest entry to leave recall mode")
	}
	if r.Recalling() {
		t.Error("Expected Recalling to be false")
	}
}

func TestPrev_Empty(t *testing.T) {
	r := New(5)
	if _, ok := r.Prev(); ok {
		t.Error("Expected Prev on empty ring to report false")
	}
}

func TestPush_ResetsCursor(t *testing.T) {
	r := New(5)
	r.Push("a")
	r.Push("b")
	r.Prev()
	r.Prev()
	r.Push("c")

	if r.Recalling() {
		t.Error("Expected Push to reset the recall cursor")
	}
	if got, _ := r.Prev(); got != "c" {
		t.Errorf("Expected newest entry c, got %q", got)
	}
}

func TestLastN(t *testing.T) {
	r := New(10)
	for i := 1; i <= 5; i++ {
		r.Push(fmt.Sprintf("in%d", i))
	}

	last := r.LastN(2)
	if len(last) != 2 || last[0] != "in4" || last[1] != "in5" {
		t.Errorf("Expected [in4 in5], got %v", last)
	}
	if got := r.LastN(0); len(got) != 0 {
		t.Errorf("Expected no entries, got %v", got)
	}
	if got := r.LastN(50); len(got) != 5 {
		t.Errorf("Expected 5 entries, got %d", len(got))
	}
}

func TestClear(t *testing.T) {
	r := New(5)
	r.Push("a")
	r.Prev()
	r.Clear()

	if r.Size() != 0 {
		t.Errorf("Expected size 0 after clear, got %d", r.Size())
	}
	if r.Recalling() {
		t.Error("Expected recall cursor reset after clear")
	}
}

func TestConcurrentPush(t *testing.T) {
	r := New(1000)
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				r.Push(fmt.Sprintf("g%d-%d", id, j))
			}
		}(i)
	}
	wg.Wait()

	if r.Size() != 500 {
		t.Errorf("Expected size 500, got %d", r.Size())
	}
}
