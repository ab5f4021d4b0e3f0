package sync

import "testing"

func TestCallbackRegistryInsertTake(t *testing.T) {
	reg := NewCallbackRegistry()
	fired := false
	reg.Insert(0, func(ok bool) { fired = ok })

	cb, found := reg.Take(0)
	if !found {
		t.Fatalf("Take(0) not found")
	}
	cb(true)
	if !fired {
		t.Fatalf("callback did not fire")
	}

	if _, found := reg.Take(0); found {
		t.Fatalf("Take(0) should not find an already-taken callback")
	}
}

func TestCallbackRegistryTakeAllOrdersByOffset(t *testing.T) {
	reg := NewCallbackRegistry()
	var order []uint64
	reg.Insert(100, func(bool) { order = append(order, 100) })
	reg.Insert(0, func(bool) { order = append(order, 0) })
	reg.Insert(50, func(bool) { order = append(order, 50) })

	cbs := reg.TakeAll()
	if len(cbs) != 3 {
		t.Fatalf("len(cbs) = %d, want 3", len(cbs))
	}
	for _, cb := range cbs {
		cb(false)
	}

	want := []uint64{0, 50, 100}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}

	if reg.Len() != 0 {
		t.Fatalf("Len() = %d, want 0 after TakeAll", reg.Len())
	}
}
