package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiffMembership(t *testing.T) {
	testCases := []struct {
		name        string
		current     []uint64
		next        []uint64
		wantAdded   []uint64
		wantRemoved []uint64
	}{
		{
			name:        "disjoint sets swap completely",
			current:     []uint64{1, 2},
			next:        []uint64{3, 4},
			wantAdded:   []uint64{3, 4},
			wantRemoved: []uint64{1, 2},
		},
		{
			name:        "overlap keeps shared members untouched",
			current:     []uint64{1, 2, 3},
			next:        []uint64{2, 3, 4},
			wantAdded:   []uint64{4},
			wantRemoved: []uint64{1},
		},
		{
			name:    "identical sets change nothing",
			current: []uint64{5, 6},
			next:    []uint64{6, 5},
		},
		{
			name:        "empty next detaches everything",
			current:     []uint64{7, 8},
			next:        nil,
			wantRemoved: []uint64{7, 8},
		},
		{
			name:      "empty current adds everything",
			current:   nil,
			next:      []uint64{9},
			wantAdded: []uint64{9},
		},
		{
			name:      "duplicates in next are collapsed",
			current:   nil,
			next:      []uint64{1, 1, 2},
			wantAdded: []uint64{1, 2},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			added, removed := DiffMembership(tc.current, tc.next)
			assert.ElementsMatch(t, tc.wantAdded, added)
			assert.ElementsMatch(t, tc.wantRemoved, removed)
		})
	}
}
