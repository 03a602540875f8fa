// Package treeseq holds and streams an ancestral recombination history: a
// compact succession of genealogical trees describing how a set of sampled
// chromosomes relate to one another along a finite linear genome.
//
// The producer of that history — a coalescent simulator — is an external
// collaborator. This package owns everything downstream of the records it
// emits: the columnar [RecordStore] that holds them, the two sort orders
// that let local trees be rebuilt in amortised constant work per edge
// change, the [TreeDiffIterator] and [SparseTreeIterator] built on those
// orders, incremental leaf-count maintenance, mutation placement, and
// haplotype extraction. The treeseq/persist subpackage round-trips all of
// the above to a self-describing binary container.
//
// # Coalescence records
//
// A record is a tuple (left, right, node, children[2], time): over the
// half-open genomic interval [left, right), node is the common parent of
// children[0] and children[1]. Sample nodes carry ids 1..sampleSize and
// time 0; every record's node is strictly greater than both its children
// and than sampleSize. Two permutations of the record indices — ordered by
// left ascending (ties broken by time ascending) and by right ascending
// (ties broken by time descending) — are the whole trick: as a sweep of
// breakpoint coordinates moves left to right, the first order visits
// newly-active edges child-before-parent and the second visits expiring
// edges parent-before-child. That ordering invariant is what makes
// incremental leaf-count maintenance, and the diff/iterator machinery in
// general, correct — see the package tests for a concrete walk-through.
//
//	 ▼ local tree over one genomic interval
//	 ├─ 3 (root)
//	 │  ├─ 1
//	 │  └─ 2
//
// # What this package does not do
//
// There is no simulator here, no Fenwick-tree recombination index, no
// configuration parser, no CLI, and no Newick converter: those are
// external collaborators that hand this package a []Record and a handful
// of scalars. There is also no streaming/partial load (a [RecordStore] is
// built from a complete, in-memory record list), no support for mutating a
// loaded sequence concurrently, and no polytomies — every internal node
// has exactly two children.
package treeseq
