package engine

import (
	"errors"
	"testing"
)

// Capacity corrections are deltas so two operators fixing the same
// date do not overwrite each other; each delta lands against the row
// state the lock exposes.
func TestApplyCapacityDelta(t *testing.T) {
	cases := []struct {
		name    string
		current int
		delta   int
		demand  int
		want    int
		wantErr error
	}{
		{"add rooms", 10, 5, 0, 15, nil},
		{"remove idle rooms", 10, -4, 6, 6, nil},
		{"no-op", 10, 0, 2, 10, nil},
		{"drain to zero", 3, -3, 0, 0, nil},
		{"below committed demand", 10, -7, 6, 0, ErrConflict},
		{"below zero", 3, -5, 0, 0, ErrInvalidInput},
	}
	for _, tc := range cases {
		got, err := applyCapacityDelta(tc.current, tc.delta, tc.demand)
		if tc.wantErr != nil {
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("%s: err = %v, want %v", tc.name, err, tc.wantErr)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: unexpected error %v", tc.name, err)
			continue
		}
		if got != tc.want {
			t.Errorf("%s: capacity = %d, want %d", tc.name, got, tc.want)
		}
	}
}
