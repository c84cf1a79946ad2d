package ledger

import (
	"reflect"
	"testing"
)

func TestNormalizeMonths(t *testing.T) {
	tests := []struct {
		name  string
		input []int
		want  []int
		ok    bool
	}{
		{"sorted unique", []int{1, 2, 3}, []int{1, 2, 3}, true},
		{"unsorted with duplicates", []int{3, 1, 3, 2, 1}, []int{1, 2, 3}, true},
		{"single month", []int{12}, []int{12}, true},
		{"empty", []int{}, nil, false},
		{"zero month", []int{0, 1}, nil, false},
		{"month thirteen", []int{5, 13}, nil, false},
		{"negative", []int{-1}, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeMonths(tt.input)
			if ok != tt.ok {
				t.Fatalf("NormalizeMonths(%v) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if tt.ok && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NormalizeMonths(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDiffMonths(t *testing.T) {
	tests := []struct {
		name      string
		requested []int
		blocked   []int
		want      []int
	}{
		{"partial overlap", []int{1, 2, 3}, []int{1}, []int{2, 3}},
		{"no overlap", []int{4, 5}, []int{1, 2}, []int{4, 5}},
		{"full overlap", []int{1, 2}, []int{1, 2}, nil},
		{"nothing blocked", []int{7}, nil, []int{7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DiffMonths(tt.requested, tt.blocked)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DiffMonths(%v, %v) = %v, want %v", tt.requested, tt.blocked, got, tt.want)
			}
		})
	}
}
