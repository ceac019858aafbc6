package cocluster

import (
	"reflect"
	"testing"
)

func TestNormalizeLabels(t *testing.T) {
	tests := []struct {
		name string
		in   []int
		want []int
	}{
		{"already compact", []int{1, 2, 1}, []int{1, 2, 1}},
		{"renumbered in first-appearance order", []int{5, 3, 5, -1, 7}, []int{1, 2, 1, -1, 3}},
		{"all unassigned", []int{-1, -1}, []int{-1, -1}},
		{"empty", []int{}, []int{}},
		{"zero is a valid label id", []int{0, 0, 4}, []int{1, 1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeLabels(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NormalizeLabels(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeLabelsPreservesPartition(t *testing.T) {
	in := []int{9, 2, 9, 2, 4, -1, 4, 9}
	got := NormalizeLabels(in)
	if len(got) != len(in) {
		t.Fatalf("length changed: got %d, want %d", len(got), len(in))
	}
	for i := range in {
		for j := range in {
			same := in[i] == in[j] && in[i] != Unassigned
			gotSame := got[i] == got[j] && got[i] != Unassigned
			if same != gotSame {
				t.Errorf("partition changed for pair (%d,%d): in %v out %v", i, j, in, got)
			}
		}
	}
}

func TestNormalizeLabelsDoesNotModifyInput(t *testing.T) {
	in := []int{7, 7, 3}
	want := []int{7, 7, 3}
	NormalizeLabels(in)
	if !reflect.DeepEqual(in, want) {
		t.Errorf("input modified: %v", in)
	}
}

func TestDropSmallGroups(t *testing.T) {
	in := []int{1, 1, 1, 2, 3, 3}
	got := dropSmallGroups(in, 2)
	want := []int{1, 1, 1, -1, 3, 3}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("dropSmallGroups(minSize=2) = %v, want %v", got, want)
	}

	// minSize <= 1 keeps everything.
	got = dropSmallGroups(in, 0)
	if !reflect.DeepEqual(got, in) {
		t.Errorf("dropSmallGroups(minSize=0) = %v, want %v", got, in)
	}
}

func TestCheckLabels(t *testing.T) {
	if err := checkLabels([]int{1, 2}, 2, "test"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	err := checkLabels([]int{1}, 2, "test")
	if err == nil {
		t.Fatal("expected error for wrong-length labels")
	}
	assertIs(t, err, ErrContract)
}
