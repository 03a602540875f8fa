package treeseq

import (
	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/stat/distuv"
)

// GenerateMutations lays down mutations under the infinite-sites model:
// each record contributes, per child branch, a Poisson(branchLength *
// (right-left) * rate) number of mutations at positions drawn uniformly
// from [left, right). This mirrors tree_sequence_generate_mutations: one
// independent Poisson draw per child edge rather than one draw over the
// whole record, since the two child branches generally have different
// lengths once a record's own children have been coalesced at different
// times elsewhere in the graph.
//
// The resulting table is installed into store via SetMutations, discarding
// whatever mutations it held before.
func GenerateMutations(store *RecordStore, rate float64, seed uint64) error {
	const op = "GenerateMutations"
	if rate < 0 {
		return newErr(op, BadParamValue, nil)
	}
	rng := rand.New(rand.NewSource(seed))
	var muts []Mutation

	n := store.GetNumRecords()
	for i := 0; i < n; i++ {
		r, err := store.GetRecord(i, OrderTime)
		if err != nil {
			return newErr(op, Generic, err)
		}
		span := float64(r.Right - r.Left)
		for _, child := range r.Children {
			branchLength := r.Time - timeOf(store, child)
			lambda := branchLength * span * rate
			if lambda <= 0 {
				continue
			}
			pois := distuv.Poisson{Lambda: lambda, Src: rng}
			k := int(pois.Rand())
			for j := 0; j < k; j++ {
				pos := float64(r.Left) + rng.Float64()*span
				muts = append(muts, Mutation{Position: pos, Node: child})
			}
		}
	}
	return store.SetMutations(muts)
}

// timeOf returns the time of node u: 0 for a sample, or the time recorded
// against it as a parent in some record otherwise. Mutation placement only
// needs a branch's length, not a general node-time index, so this does a
// linear scan rather than building one.
func timeOf(store *RecordStore, u uint32) float64 {
	if u <= store.sampleSize {
		return 0
	}
	for i := range store.node {
		if store.node[i] == u {
			return store.time[i]
		}
	}
	return 0
}
