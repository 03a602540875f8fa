package treeseq

// SparseTree is the materialised local tree for a single genomic interval
// [Left, Right). It is owned by its caller but bound to a [RecordStore] for
// its lifetime: a SparseTreeIterator mutates it in place as it sweeps
// across the genome.
type SparseTree struct {
	Left, Right uint32
	Root        uint32

	// Parent, Time and Children are indexed by node id; index 0 is the
	// sentinel "no such node". Parent[u] == 0 for the root and for any
	// node not currently active.
	Parent   []uint32
	Time     []float64
	Children [][2]uint32

	// NumLeaves and NumTrackedLeaves are populated only when the owning
	// iterator was built WithLeafCounts; nil otherwise.
	NumLeaves        []uint32
	NumTrackedLeaves []uint32

	// Mutations is the ordered window of mutations falling inside
	// [Left, Right).
	Mutations []Mutation

	sampleSize, numNodes uint32
	countLeaves          bool

	// stack1/stack2 are pre-sized scratch space for MRCA/leaf-count
	// traversal, sized sampleSize+1 (the maximum possible tree height),
	// reused across calls so the hot paths never allocate.
	stack1, stack2 []uint32
}

// NewSparseTree allocates an empty sparse tree for a record store with the
// given sample size and node count. Most callers should use
// [NewSparseTreeIterator], which allocates and clears the tree for them.
func NewSparseTree(sampleSize, numNodes uint32, countLeaves bool) *SparseTree {
	n := numNodes + 1
	t := &SparseTree{
		Parent:      make([]uint32, n),
		Time:        make([]float64, n),
		Children:    make([][2]uint32, n),
		sampleSize:  sampleSize,
		numNodes:    numNodes,
		countLeaves: countLeaves,
		stack1:      make([]uint32, sampleSize+1),
		stack2:      make([]uint32, sampleSize+1),
	}
	if countLeaves {
		t.NumLeaves = make([]uint32, n)
		t.NumTrackedLeaves = make([]uint32, n)
	}
	return t
}

// Clear resets the tree to empty: no parent/children/time, no root, no
// mutation window. Leaf-count arrays above the sample range are zeroed too;
// sample entries keep their current values (the owning iterator seeds
// them once, when it allocates the tree).
func (t *SparseTree) Clear() {
	t.Left, t.Right, t.Root = 0, 0, 0
	for i := range t.Parent {
		t.Parent[i] = 0
		t.Time[i] = 0
		t.Children[i] = [2]uint32{}
	}
	t.Mutations = t.Mutations[:0]
	if t.countLeaves {
		n := t.sampleSize
		for i := n + 1; i < uint32(len(t.NumLeaves)); i++ {
			t.NumLeaves[i] = 0
			t.NumTrackedLeaves[i] = 0
		}
	}
}

// MRCA returns the most recent common ancestor of u and v in the current
// local tree, or 0 if they are not both present in it.
//
// Both node ids are walked to the root, populating two stacks, then popped
// in sync from the top until they diverge; the last shared entry is the
// answer. Stacks are pre-sized to sampleSize+1, which bounds tree height,
// so this never allocates.
func (t *SparseTree) MRCA(u, v uint32) (uint32, error) {
	const op = "SparseTree.MRCA"
	if u == 0 || v == 0 || u > t.numNodes || v > t.numNodes {
		return 0, newErr(op, BadParamValue, nil)
	}
	l1 := t.pathToRoot(u, t.stack1)
	l2 := t.pathToRoot(v, t.stack2)

	var w uint32
	for l1 >= 0 && l2 >= 0 && t.stack1[l1] == t.stack2[l2] {
		w = t.stack1[l1]
		l1--
		l2--
	}
	return w, nil
}

// pathToRoot walks j up through Parent, writing the path (including j
// itself) into stack from index 0 upward, and returns the index of the
// last node written.
func (t *SparseTree) pathToRoot(j uint32, stack []uint32) int {
	l := -1
	for j != 0 {
		l++
		stack[l] = j
		j = t.Parent[j]
	}
	return l
}

// NumLeavesOf returns the number of samples in the subtree rooted at u in
// the current local tree. If the owning iterator was built WithLeafCounts
// this is O(1); otherwise it walks the subtree with a pre-allocated stack.
func (t *SparseTree) NumLeavesOf(u uint32) uint32 {
	if t.countLeaves {
		return t.NumLeaves[u]
	}
	return t.countLeavesByTraversal(u)
}

// NumTrackedLeavesOf returns the number of tracked samples in the subtree
// rooted at u. It requires the owning iterator to have been built
// WithLeafCounts; otherwise it fails with UnsupportedOperation, since
// tracked-leaf counts only exist via incremental bookkeeping.
func (t *SparseTree) NumTrackedLeavesOf(u uint32) (uint32, error) {
	if !t.countLeaves {
		return 0, newErr("SparseTree.NumTrackedLeavesOf", UnsupportedOperation, nil)
	}
	return t.NumTrackedLeaves[u], nil
}

// countLeavesByTraversal performs an iterative DFS from u using stack1,
// counting nodes in [1, sampleSize] reached via Children.
func (t *SparseTree) countLeavesByTraversal(u uint32) uint32 {
	stack := t.stack1
	stack[0] = u
	top := 0
	var count uint32
	for top >= 0 {
		v := stack[top]
		top--
		switch {
		case v >= 1 && v <= t.sampleSize:
			count++
		case t.Children[v][0] != 0 || t.Children[v][1] != 0:
			for _, c := range t.Children[v] {
				top++
				if top >= len(stack) {
					stack = append(stack, c)
				} else {
					stack[top] = c
				}
			}
		}
	}
	return count
}
