package treeseq

import "sort"

// Record is a coalescence record: an edge of the ancestral recombination
// graph. Over the half-open interval [Left, Right), Node is the common
// parent of Children[0] and Children[1].
type Record struct {
	Left, Right uint32
	Node        uint32
	Children    [2]uint32
	Time        float64
}

// Order selects which of the three record orderings GetRecord indexes into.
type Order uint8

const (
	// OrderTime is the natural, simulator-emitted storage order: time
	// ascending.
	OrderTime Order = iota
	// OrderLeft walks records through the insertion permutation: sorted
	// by Left ascending, ties broken by Time ascending.
	OrderLeft
	// OrderRight walks records through the removal permutation: sorted
	// by Right ascending, ties broken by Time descending.
	OrderRight
)

// Mutation is a single site: Node means every leaf descendant of Node in
// the local tree covering Position carries the derived allele there.
type Mutation struct {
	Position float64
	Node     uint32
}

// RecordStore holds a tree sequence's coalescence records as parallel
// columns, plus the two index permutations (insertion and removal order)
// that drive left-to-right local-tree reconstruction, and the associated
// mutation table.
//
// A RecordStore is immutable after construction except for SetMutations,
// and may be read concurrently by any number of iterators so long as
// nothing calls SetMutations concurrently with those reads.
type RecordStore struct {
	left, right, node []uint32
	children          [][2]uint32
	time              []float64

	// insertionOrder and removalOrder are permutations of
	// [0, len(left)) — see Order.
	insertionOrder, removalOrder []uint32

	sampleSize uint32
	numLoci    uint32
	numNodes   uint32

	mutations []Mutation
}

// NewRecordStore copies records into a columnar store and builds the two
// index permutations used by [TreeDiffIterator] and [SparseTreeIterator].
//
// records need not already be in any particular order; NewRecordStore only
// sorts the index arrays, so GetRecord(i, OrderTime) returns records in
// exactly the order records was supplied in.
func NewRecordStore(records []Record, sampleSize, numLoci uint32) *RecordStore {
	s := &RecordStore{
		left:       make([]uint32, len(records)),
		right:      make([]uint32, len(records)),
		node:       make([]uint32, len(records)),
		children:   make([][2]uint32, len(records)),
		time:       make([]float64, len(records)),
		sampleSize: sampleSize,
		numLoci:    numLoci,
	}
	for i, r := range records {
		s.left[i] = r.Left
		s.right[i] = r.Right
		s.node[i] = r.Node
		s.children[i] = r.Children
		s.time[i] = r.Time
		if r.Node > s.numNodes {
			s.numNodes = r.Node
		}
	}
	s.buildIndexes()
	return s
}

// buildIndexes sorts two index permutations under composite keys: a stable
// sort on a primary key with an explicit tie-break, the same shape twice
// over different fields. Here the primary key is the breakpoint coordinate
// and the tie-break is simulation time — ascending for insertion, since a
// parent can only join children that already exist, and descending for
// removal, since a parent must be dismantled before its own children's
// final use expires.
func (s *RecordStore) buildIndexes() {
	n := len(s.left)
	s.insertionOrder = make([]uint32, n)
	s.removalOrder = make([]uint32, n)
	for i := range s.insertionOrder {
		s.insertionOrder[i] = uint32(i)
		s.removalOrder[i] = uint32(i)
	}
	sort.SliceStable(s.insertionOrder, func(i, j int) bool {
		a, b := s.insertionOrder[i], s.insertionOrder[j]
		if s.left[a] != s.left[b] {
			return s.left[a] < s.left[b]
		}
		return s.time[a] < s.time[b]
	})
	sort.SliceStable(s.removalOrder, func(i, j int) bool {
		a, b := s.removalOrder[i], s.removalOrder[j]
		if s.right[a] != s.right[b] {
			return s.right[a] < s.right[b]
		}
		return s.time[a] > s.time[b]
	})
}

// GetNumRecords returns the number of coalescence records in the store.
func (s *RecordStore) GetNumRecords() int { return len(s.left) }

// GetSampleSize returns the number of sample nodes (ids 1..SampleSize).
func (s *RecordStore) GetSampleSize() uint32 { return s.sampleSize }

// GetNumLoci returns the number of discrete loci on [0, numLoci).
func (s *RecordStore) GetNumLoci() uint32 { return s.numLoci }

// GetNumNodes returns the largest node id appearing in any record.
func (s *RecordStore) GetNumNodes() uint32 { return s.numNodes }

// Columns exposes the store's raw columnar arrays, in OrderTime, for
// serialisation by treeseq/persist. The returned slices alias the store's
// own and must not be modified.
func (s *RecordStore) Columns() (left, right, node []uint32, children [][2]uint32, time []float64) {
	return s.left, s.right, s.node, s.children, s.time
}

// NewRecordStoreFromColumns rebuilds a store from columns previously
// obtained from Columns, without re-deriving numNodes from the node
// column, the way treeseq/persist reconstructs a store from a persisted
// container that recorded numNodes explicitly in its header.
func NewRecordStoreFromColumns(left, right, node []uint32, children [][2]uint32, time []float64, sampleSize, numLoci, numNodes uint32) *RecordStore {
	s := &RecordStore{
		left:       left,
		right:      right,
		node:       node,
		children:   children,
		time:       time,
		sampleSize: sampleSize,
		numLoci:    numLoci,
		numNodes:   numNodes,
	}
	s.buildIndexes()
	return s
}

// GetRecord copies out record i under the requested ordering.
func (s *RecordStore) GetRecord(i int, order Order) (Record, error) {
	const op = "RecordStore.GetRecord"
	if i < 0 || i >= len(s.left) {
		return Record{}, newErr(op, OutOfBounds, nil)
	}
	var j int
	switch order {
	case OrderTime:
		j = i
	case OrderLeft:
		j = int(s.insertionOrder[i])
	case OrderRight:
		j = int(s.removalOrder[i])
	default:
		return Record{}, newErr(op, BadOrdering, nil)
	}
	return Record{
		Left:     s.left[j],
		Right:    s.right[j],
		Node:     s.node[j],
		Children: s.children[j],
		Time:     s.time[j],
	}, nil
}

// SetMutations validates and replaces the mutation table, sorted by
// Position ascending. Any previously installed mutations are discarded.
func (s *RecordStore) SetMutations(muts []Mutation) error {
	const op = "RecordStore.SetMutations"
	for _, m := range muts {
		if m.Position < 0 || m.Position > float64(s.numLoci) {
			return newErr(op, BadMutation, nil)
		}
		if m.Node < 1 || m.Node > s.numNodes {
			return newErr(op, BadMutation, nil)
		}
	}
	sorted := make([]Mutation, len(muts))
	copy(sorted, muts)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Position < sorted[j].Position })
	s.mutations = sorted
	return nil
}

// Mutations returns the installed mutation table, sorted by Position
// ascending. The returned slice must not be modified.
func (s *RecordStore) Mutations() []Mutation { return s.mutations }

// GetNumMutations returns the number of installed mutations.
func (s *RecordStore) GetNumMutations() int { return len(s.mutations) }

// DebugRecord is the full per-record row printed by String/Fprint,
// including both permutation columns — adapted from msprime's
// tree_sequence_print_state, which dumps insertion_order/removal_order
// alongside each record for debugging.
type DebugRecord struct {
	Record
	InsertionRank, RemovalRank uint32
}

// DebugRecords returns every record in time order, annotated with its rank
// in each permutation. It exists for diagnostics and tests, not for the
// persisted format.
func (s *RecordStore) DebugRecords() []DebugRecord {
	rankIn := make([]uint32, len(s.left))
	rankOut := make([]uint32, len(s.left))
	for rank, idx := range s.insertionOrder {
		rankIn[idx] = uint32(rank)
	}
	for rank, idx := range s.removalOrder {
		rankOut[idx] = uint32(rank)
	}
	out := make([]DebugRecord, len(s.left))
	for i := range s.left {
		out[i] = DebugRecord{
			Record: Record{
				Left:     s.left[i],
				Right:    s.right[i],
				Node:     s.node[i],
				Children: s.children[i],
				Time:     s.time[i],
			},
			InsertionRank: rankIn[i],
			RemovalRank:   rankOut[i],
		}
	}
	return out
}
