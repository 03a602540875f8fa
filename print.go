package treeseq

import (
	"fmt"
	"io"
	"strings"
)

// String returns a hierarchical diagram of the local tree, just a wrapper
// for [SparseTree.Fprint].
func (t *SparseTree) String() string {
	w := new(strings.Builder)
	_ = t.Fprint(w)
	return w.String()
}

// Fprint writes a hierarchical tree diagram of the local tree to w, in the
// same glyph style as a dumped genealogy:
//
//	▼ [100, 250)
//	└─ 5
//	   ├─ 3
//	   │  ├─ 1
//	   │  └─ 2
//	   └─ 4
func (t *SparseTree) Fprint(w io.Writer) error {
	if t.Root == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(w, "▼ [%d, %d)\n", t.Left, t.Right); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "└─ %d\n", t.Root); err != nil {
		return err
	}
	return fprintNode(w, t, t.Root, "   ")
}

func fprintNode(w io.Writer, t *SparseTree, u uint32, pad string) error {
	children := t.Children[u]
	n := 0
	for _, c := range children {
		if c != 0 {
			n++
		}
	}

	glyphe, spacer := "├─ ", "│  "
	seen := 0
	for _, c := range children {
		if c == 0 {
			continue
		}
		seen++
		if seen == n {
			glyphe, spacer = "└─ ", "   "
		}
		if _, err := fmt.Fprintf(w, "%s%s%d\n", pad, glyphe, c); err != nil {
			return err
		}
		if err := fprintNode(w, t, c, pad+spacer); err != nil {
			return err
		}
	}
	return nil
}

// String returns a per-record diagnostic table, just a wrapper for
// [RecordStore.Fprint].
func (s *RecordStore) String() string {
	w := new(strings.Builder)
	_ = s.Fprint(w)
	return w.String()
}

// Fprint writes one line per record, in time order, annotated with its
// rank in the insertion and removal permutations — the Go equivalent of
// msprime's tree_sequence_print_state dump used while debugging the diff
// iterators.
func (s *RecordStore) Fprint(w io.Writer) error {
	for _, r := range s.DebugRecords() {
		_, err := fmt.Fprintf(w, "[%d, %d) %d -> (%d, %d) t=%g  in=%d out=%d\n",
			r.Left, r.Right, r.Node, r.Children[0], r.Children[1], r.Time,
			r.InsertionRank, r.RemovalRank)
		if err != nil {
			return err
		}
	}
	return nil
}
