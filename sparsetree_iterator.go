package treeseq

// SparseTreeIteratorOption configures a [SparseTreeIterator] at construction
// time. The zero-value iterator does the minimum amount of bookkeeping:
// parent/children/time only, no leaf counts.
type SparseTreeIteratorOption func(*SparseTreeIterator)

// WithLeafCounts enables incremental maintenance of NumLeaves on every
// local tree the iterator produces, at the cost of an up-the-tree walk on
// every edge removed or inserted.
func WithLeafCounts() SparseTreeIteratorOption {
	return func(it *SparseTreeIterator) { it.countLeaves = true }
}

// WithTrackedSamples enables incremental maintenance of NumTrackedLeaves
// restricted to the given sample ids, implying WithLeafCounts.
func WithTrackedSamples(samples []uint32) SparseTreeIteratorOption {
	return func(it *SparseTreeIterator) {
		it.countLeaves = true
		it.tracked = append([]uint32(nil), samples...)
	}
}

// SparseTreeIterator sweeps a [RecordStore] left to right, materialising
// each distinct local tree in turn by applying the edge changes a
// [TreeDiffIterator] reports.
type SparseTreeIterator struct {
	store    *RecordStore
	diffIter *TreeDiffIterator
	tree     *SparseTree

	countLeaves bool
	tracked     []uint32

	mutCursor int
}

// NewSparseTreeIterator returns an iterator over store's local trees, and
// the [SparseTree] it will mutate in place on every call to Next.
func NewSparseTreeIterator(store *RecordStore, opts ...SparseTreeIteratorOption) *SparseTreeIterator {
	it := &SparseTreeIterator{store: store}
	for _, opt := range opts {
		opt(it)
	}
	it.diffIter = NewTreeDiffIterator(store)
	it.tree = NewSparseTree(store.GetSampleSize(), store.GetNumNodes(), it.countLeaves)
	if it.countLeaves {
		trackedSet := make(map[uint32]bool, len(it.tracked))
		for _, s := range it.tracked {
			trackedSet[s] = true
		}
		for u := uint32(1); u <= store.GetSampleSize(); u++ {
			it.tree.NumLeaves[u] = 1
			if trackedSet[u] {
				it.tree.NumTrackedLeaves[u] = 1
			}
		}
	}
	return it
}

// Next advances the bound [SparseTree] to the next local tree and returns
// it. It returns (tree, true, nil) while trees remain and (nil, false, nil)
// once the sequence is exhausted; the returned tree is always the same
// pointer, mutated in place.
func (it *SparseTreeIterator) Next() (*SparseTree, bool, error) {
	span, edgesOut, edgesIn, ok, err := it.diffIter.Next()
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}

	t := it.tree

	// Remove stale edges. Leaf counts are decremented by walking up via
	// Parent before that same parent pointer is cleared below — the walk
	// needs the tree exactly as it stood before this edge expired.
	for e := edgesOut; e != nil; e = e.Next {
		if it.countLeaves {
			for _, c := range e.Children {
				dl, dt := t.NumLeaves[c], t.NumTrackedLeaves[c]
				for v := e.Node; v != 0; v = t.Parent[v] {
					t.NumLeaves[v] -= dl
					t.NumTrackedLeaves[v] -= dt
				}
			}
		}
		if e.Node == t.Root {
			t.Root = maxU32(e.Children[0], e.Children[1])
		}
		t.Parent[e.Children[0]] = 0
		t.Parent[e.Children[1]] = 0
		t.Time[e.Node] = 0
		t.Children[e.Node] = [2]uint32{}
	}

	t.Left = t.Right
	t.Right = t.Left + span

	// Insert new edges, then walk up incrementing leaf counts through the
	// ancestors e.Node is linked to so far. Insertions are processed
	// child-before-parent, so a parent edge inserted later in this loop
	// adds e.Node's complete count when its own walk runs.
	for e := edgesIn; e != nil; e = e.Next {
		t.Parent[e.Children[0]] = e.Node
		t.Parent[e.Children[1]] = e.Node
		t.Time[e.Node] = e.Time
		t.Children[e.Node] = e.Children
		if e.Node > t.Root {
			t.Root = e.Node
		}
		if it.countLeaves {
			for _, c := range e.Children {
				dl, dt := t.NumLeaves[c], t.NumTrackedLeaves[c]
				for v := e.Node; v != 0; v = t.Parent[v] {
					t.NumLeaves[v] += dl
					t.NumTrackedLeaves[v] += dt
				}
			}
		}
	}

	for t.Parent[t.Root] != 0 {
		t.Root = t.Parent[t.Root]
	}

	muts := it.store.Mutations()
	t.Mutations = t.Mutations[:0]
	for it.mutCursor < len(muts) && muts[it.mutCursor].Position < float64(t.Right) {
		t.Mutations = append(t.Mutations, muts[it.mutCursor])
		it.mutCursor++
	}

	return t, true, nil
}

func maxU32(a, b uint32) uint32 {
	if a > b {
		return a
	}
	return b
}
