// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package internal

import "testing"

func checkOrder(t *testing.T, l *LruList[int, int], want []int) {
	t.Helper()
	if l.Length() != len(want) {
		t.Fatalf("bad len: got %d want %d", l.Length(), len(want))
	}
	i := 0
	for e := l.Back(); e != nil; e = e.PrevEntry() {
		if e.Key != want[i] {
			t.Fatalf("bad key at %d: got %d want %d", i, e.Key, want[i])
		}
		i++
	}
	if i != len(want) {
		t.Fatalf("walked %d entries, want %d", i, len(want))
	}
}

func TestList_PushFrontBack(t *testing.T) {
	l := NewList[int, int]()
	if l.Back() != nil {
		t.Fatalf("empty list should have no back")
	}
	for i := 0; i < 3; i++ {
		l.PushFront(i, i*10)
	}
	checkOrder(t, l, []int{0, 1, 2})
	if v := l.Back().Value; v != 0 {
		t.Fatalf("bad back value: %v", v)
	}
}

func TestList_MoveToFront(t *testing.T) {
	l := NewList[int, int]()
	e0 := l.PushFront(0, 0)
	l.PushFront(1, 1)
	e2 := l.PushFront(2, 2)

	l.MoveToFront(e0)
	checkOrder(t, l, []int{1, 2, 0})

	// already at the front
	l.MoveToFront(e0)
	checkOrder(t, l, []int{1, 2, 0})

	l.MoveToFront(e2)
	checkOrder(t, l, []int{1, 0, 2})
}

func TestList_Remove(t *testing.T) {
	l := NewList[int, int]()
	e0 := l.PushFront(0, 7)
	e1 := l.PushFront(1, 8)
	l.PushFront(2, 9)

	if v := l.Remove(e1); v != 8 {
		t.Fatalf("bad removed value: %v", v)
	}
	checkOrder(t, l, []int{0, 2})

	l.Remove(e0)
	checkOrder(t, l, []int{2})

	// a removed entry is detached and must not move
	other := NewList[int, int]()
	other.MoveToFront(e0)
	if e0.PrevEntry() != nil {
		t.Fatalf("detached entry should have no neighbours")
	}
}

func TestList_ZeroValue(t *testing.T) {
	var l LruList[int, int]
	l.PushFront(1, 1)
	checkOrder(t, &l, []int{1})

	l.Init()
	checkOrder(t, &l, nil)
}
