package core

// ReconcilePlan maps an incoming child collection onto the rows currently
// stored for the vendor. Pairs are in-place overwrites (stored row keeps its
// ID), Deletes are indices of stored rows to remove, Inserts are indices of
// input items to create as new rows.
type ReconcilePlan struct {
	Pairs   []ReconcilePair
	Deletes []int
	Inserts []int
}

type ReconcilePair struct {
	New int // index into the input collection
	Old int // index into the stored rows
}

// Reconciler decides how input items correlate with stored rows. newIDs holds
// the IDs supplied on the input items (0 for items without one); oldIDs holds
// the stored row IDs in stored order.
type Reconciler interface {
	Plan(newIDs, oldIDs []int64) ReconcilePlan
}

// PositionalReconciler correlates by array position: index i updates index i,
// a shorter input deletes the stored tail, a longer input inserts the extra
// items. Reordering the input is indistinguishable from editing in place;
// this is the compatibility behavior and the default strategy.
type PositionalReconciler struct{}

func (PositionalReconciler) Plan(newIDs, oldIDs []int64) ReconcilePlan {
	var plan ReconcilePlan
	n, m := len(newIDs), len(oldIDs)
	for i := 0; i < n && i < m; i++ {
		plan.Pairs = append(plan.Pairs, ReconcilePair{New: i, Old: i})
	}
	for i := n; i < m; i++ {
		plan.Deletes = append(plan.Deletes, i)
	}
	for i := m; i < n; i++ {
		plan.Inserts = append(plan.Inserts, i)
	}
	return plan
}

// IdentityReconciler correlates by supplied child ID: an input item whose ID
// matches a stored row updates that row, unmatched input items insert, and
// stored rows absent from the input delete. Input items without an ID always
// insert.
type IdentityReconciler struct{}

func (IdentityReconciler) Plan(newIDs, oldIDs []int64) ReconcilePlan {
	var plan ReconcilePlan
	oldByID := make(map[int64]int, len(oldIDs))
	for i, id := range oldIDs {
		oldByID[id] = i
	}
	matched := make([]bool, len(oldIDs))
	for i, id := range newIDs {
		if j, ok := oldByID[id]; ok && id != 0 && !matched[j] {
			plan.Pairs = append(plan.Pairs, ReconcilePair{New: i, Old: j})
			matched[j] = true
		} else {
			plan.Inserts = append(plan.Inserts, i)
		}
	}
	for i := range oldIDs {
		if !matched[i] {
			plan.Deletes = append(plan.Deletes, i)
		}
	}
	return plan
}
