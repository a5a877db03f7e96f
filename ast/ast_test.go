package ast

import "testing"

func TestSpanEnd(t *testing.T) {
	s := Span{Start: 10, Length: 4}
	if got := s.End(); got != 14 {
		t.Errorf("End() = %d, want 14", got)
	}
}

func TestItemSid(t *testing.T) {
	tests := []struct {
		name string
		item *Item
		want string
		ok   bool
	}{
		{"type", &Item{Data: &ItemType{Sid: "Pair"}}, "Pair", true},
		{"val", &Item{Data: &ItemVal{Sid: "c"}}, "c", true},
		{"fun", &Item{Data: &ItemFun{Sid: "f"}}, "f", true},
		{"ffi_val", &Item{Data: &ItemFfiVal{Sid: "errno"}}, "errno", true},
		{"use", &Item{Data: &ItemUse{Tree: &UseTree{Sid: "a"}}}, "", false},
		{"ffi_include", &Item{Data: &ItemFfiInclude{Raw: "int x;"}}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.item.Sid()
			if got != tt.want || ok != tt.ok {
				t.Errorf("Sid() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestUseTreeBoundName(t *testing.T) {
	leaf := &UseTree{Sid: "X"}
	if !leaf.IsLeaf() {
		t.Errorf("expected leaf")
	}
	if got := leaf.BoundName(); got != "X" {
		t.Errorf("BoundName() = %q, want X", got)
	}

	renamed := &UseTree{Sid: "X", As: "Y"}
	if got := renamed.BoundName(); got != "Y" {
		t.Errorf("BoundName() = %q, want Y", got)
	}

	chained := &UseTree{Sid: "a", Next: &UseTree{Sid: "b"}}
	if chained.IsLeaf() {
		t.Errorf("expected non-leaf")
	}
}
