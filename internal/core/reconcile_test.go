package core_test

import (
	"reflect"
	"testing"

	"vendor-storage/internal/core"
)

func TestPositionalReconciler_Plan(t *testing.T) {
	tests := []struct {
		name    string
		newIDs  []int64
		oldIDs  []int64
		pairs   []core.ReconcilePair
		deletes []int
		inserts []int
	}{
		{
			name:   "equal length pairs everything",
			newIDs: []int64{0, 0, 0},
			oldIDs: []int64{11, 12, 13},
			pairs: []core.ReconcilePair{
				{New: 0, Old: 0}, {New: 1, Old: 1}, {New: 2, Old: 2},
			},
		},
		{
			name:    "shrinking input deletes the stored tail",
			newIDs:  []int64{0},
			oldIDs:  []int64{11, 12, 13},
			pairs:   []core.ReconcilePair{{New: 0, Old: 0}},
			deletes: []int{1, 2},
		},
		{
			name:    "growing input inserts the extra items",
			newIDs:  []int64{0, 0, 0},
			oldIDs:  []int64{11},
			pairs:   []core.ReconcilePair{{New: 0, Old: 0}},
			inserts: []int{1, 2},
		},
		{
			name:    "empty input deletes everything",
			newIDs:  nil,
			oldIDs:  []int64{11, 12},
			deletes: []int{0, 1},
		},
		{
			name:    "empty stored inserts everything",
			newIDs:  []int64{0, 0},
			oldIDs:  nil,
			inserts: []int{0, 1},
		},
		{
			name: "both empty is a no-op",
		},
		{
			name:   "supplied IDs are ignored",
			newIDs: []int64{13, 11},
			oldIDs: []int64{11, 13},
			pairs: []core.ReconcilePair{
				{New: 0, Old: 0}, {New: 1, Old: 1},
			},
		},
	}

	var r core.PositionalReconciler
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := r.Plan(tt.newIDs, tt.oldIDs)
			if !reflect.DeepEqual(plan.Pairs, tt.pairs) {
				t.Errorf("pairs: got %v, want %v", plan.Pairs, tt.pairs)
			}
			if !reflect.DeepEqual(plan.Deletes, tt.deletes) {
				t.Errorf("deletes: got %v, want %v", plan.Deletes, tt.deletes)
			}
			if !reflect.DeepEqual(plan.Inserts, tt.inserts) {
				t.Errorf("inserts: got %v, want %v", plan.Inserts, tt.inserts)
			}
		})
	}
}

func TestIdentityReconciler_Plan(t *testing.T) {
	tests := []struct {
		name    string
		newIDs  []int64
		oldIDs  []int64
		pairs   []core.ReconcilePair
		deletes []int
		inserts []int
	}{
		{
			name:   "matching IDs pair regardless of order",
			newIDs: []int64{13, 11},
			oldIDs: []int64{11, 13},
			pairs: []core.ReconcilePair{
				{New: 0, Old: 1}, {New: 1, Old: 0},
			},
		},
		{
			name:    "zero ID always inserts",
			newIDs:  []int64{0, 11},
			oldIDs:  []int64{11, 12},
			pairs:   []core.ReconcilePair{{New: 1, Old: 0}},
			deletes: []int{1},
			inserts: []int{0},
		},
		{
			name:    "unknown ID inserts, absent stored row deletes",
			newIDs:  []int64{99},
			oldIDs:  []int64{11},
			deletes: []int{0},
			inserts: []int{0},
		},
		{
			name:    "duplicate input ID pairs once then inserts",
			newIDs:  []int64{11, 11},
			oldIDs:  []int64{11},
			pairs:   []core.ReconcilePair{{New: 0, Old: 0}},
			inserts: []int{1},
		},
		{
			name:    "empty input deletes everything",
			newIDs:  nil,
			oldIDs:  []int64{11, 12},
			deletes: []int{0, 1},
		},
	}

	var r core.IdentityReconciler
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := r.Plan(tt.newIDs, tt.oldIDs)
			if !reflect.DeepEqual(plan.Pairs, tt.pairs) {
				t.Errorf("pairs: got %v, want %v", plan.Pairs, tt.pairs)
			}
			if !reflect.DeepEqual(plan.Deletes, tt.deletes) {
				t.Errorf("deletes: got %v, want %v", plan.Deletes, tt.deletes)
			}
			if !reflect.DeepEqual(plan.Inserts, tt.inserts) {
				t.Errorf("inserts: got %v, want %v", plan.Inserts, tt.inserts)
			}
		})
	}
}
