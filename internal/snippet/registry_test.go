package snippet

import (
	"fmt"
	"reflect"
	"testing"
)

func threeSnippets() *Registry {
	descs := make([]Descriptor, 3)
	for i := range descs {
		descs[i] = Descriptor{
			Label:    fmt.Sprintf("week-%d", i),
			Endpoint: fmt.Sprintf("http://example.test/update/%d", i),
			Initial:  Fields{Content: "saved"},
		}
	}
	return NewRegistry(descs)
}

func TestRegistry_KeepsOrder(t *testing.T) {
	r := threeSnippets()
	if r.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", r.Len())
	}
	for i := 0; i < r.Len(); i++ {
		if got, want := r.At(i).Label(), fmt.Sprintf("week-%d", i); got != want {
			t.Fatalf("At(%d).Label() = %q, want %q", i, got, want)
		}
	}
	if r.At(3) != nil || r.At(-1) != nil {
		t.Fatalf("At out of range returned a snippet")
	}
}

func TestRegistry_CountDirtyMatchesEveryCombination(t *testing.T) {
	for mask := 0; mask < 8; mask++ {
		r := threeSnippets()
		want := 0
		var wantIdx []int
		for i := 0; i < 3; i++ {
			if mask&(1<<i) != 0 {
				r.At(i).SetContent("edited")
				want++
				wantIdx = append(wantIdx, i)
			}
		}
		if got := r.CountDirty(); got != want {
			t.Fatalf("mask %03b: CountDirty() = %d, want %d", mask, got, want)
		}
		if got := r.DirtyIndices(); !reflect.DeepEqual(got, wantIdx) {
			t.Fatalf("mask %03b: DirtyIndices() = %v, want %v", mask, got, wantIdx)
		}
	}
}

func TestRegistry_SnippetsReturnsCopy(t *testing.T) {
	r := threeSnippets()
	list := r.Snippets()
	list[0] = nil
	if r.At(0) == nil {
		t.Fatalf("Snippets() exposed internal slice")
	}
}

func TestRegistry_NilIsEmpty(t *testing.T) {
	var r *Registry
	if r.Len() != 0 || r.CountDirty() != 0 || r.InFlight() != 0 {
		t.Fatalf("nil registry not empty")
	}
}
