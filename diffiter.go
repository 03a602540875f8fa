package treeseq

// EdgeRecord is one edge change reported by [TreeDiffIterator]: chained
// into singly-linked lists (via Next) out of a pool the iterator owns and
// reuses every step. An arena of reusable, index-addressed slots sidesteps
// the pointer-lifetime questions of msprime's raw node_record_t* lists
// (lib/msprime.h) without copying on every step.
type EdgeRecord struct {
	Node     uint32
	Children [2]uint32
	Time     float64
	Next     *EdgeRecord
}

// TreeDiffIterator emits, for each distinct local tree along the genome,
// the span it covers and the edges that must be removed/inserted to turn
// the previous local tree into this one.
//
// A TreeDiffIterator borrows its RecordStore for its lifetime and owns only
// its cursors and its edge-record pool.
type TreeDiffIterator struct {
	store *RecordStore

	insertionCursor, removalCursor int
	treeLeft                       uint32

	// pool holds up to 2*sampleSize edge records, reused every Next call
	// (the maximum possible work in one step: removing and inserting all
	// n-1 internal nodes at once cannot happen, but the bound from
	// msprime's tree_diff_iterator_alloc is kept as the allocation size).
	pool     []EdgeRecord
	poolNext int
}

// NewTreeDiffIterator returns an iterator over store's local trees, one
// step per distinct tree, starting at genome position 0.
func NewTreeDiffIterator(store *RecordStore) *TreeDiffIterator {
	return &TreeDiffIterator{
		store: store,
		pool:  make([]EdgeRecord, 2*int(store.GetSampleSize())),
	}
}

// Next advances to the next local tree. It returns (span, edgesOut,
// edgesIn, true, nil) while trees remain, and (0, nil, nil, false, nil)
// once the sequence is exhausted. edgesOut and edgesIn point into the
// iterator's own pool and are only valid until the next call to Next.
func (it *TreeDiffIterator) Next() (span uint32, edgesOut, edgesIn *EdgeRecord, ok bool, err error) {
	s := it.store
	numRecords := s.GetNumRecords()
	if it.insertionCursor >= numRecords {
		return 0, nil, nil, false, nil
	}

	lastLeft := it.treeLeft
	it.poolNext = 0

	var outHead, outTail, inHead, inTail *EdgeRecord

	take := func() *EdgeRecord {
		w := &it.pool[it.poolNext]
		it.poolNext++
		return w
	}

	// Removals: every record whose right boundary equals the current
	// left edge of the active tree is expiring.
	for it.removalCursor < numRecords {
		k := int(s.removalOrder[it.removalCursor])
		if s.right[k] != it.treeLeft {
			break
		}
		w := take()
		*w = EdgeRecord{Node: s.node[k], Children: s.children[k], Time: s.time[k]}
		if outHead == nil {
			outHead, outTail = w, w
		} else {
			outTail.Next = w
			outTail = w
		}
		it.removalCursor++
	}

	// Insertions: every record whose left boundary equals the current
	// left edge is newly active.
	for it.insertionCursor < numRecords {
		k := int(s.insertionOrder[it.insertionCursor])
		if s.left[k] != it.treeLeft {
			break
		}
		w := take()
		*w = EdgeRecord{Node: s.node[k], Children: s.children[k], Time: s.time[k]}
		if inHead == nil {
			inHead, inTail = w, w
		} else {
			inTail.Next = w
			inTail = w
		}
		it.insertionCursor++
	}

	it.treeLeft = s.right[s.removalOrder[it.removalCursor]]
	return it.treeLeft - lastLeft, outHead, inHead, true, nil
}
