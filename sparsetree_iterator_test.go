package treeseq_test

import (
	"testing"

	"github.com/arg-tools/treeseq"
)

func TestSparseTreeIteratorScenario1(t *testing.T) {
	s := scenario1()
	it := treeseq.NewSparseTreeIterator(s, treeseq.WithLeafCounts())

	tree, ok, err := it.Next()
	if err != nil || !ok {
		t.Fatalf("Next: ok=%v err=%v", ok, err)
	}
	if tree.Left != 0 || tree.Right != 10 {
		t.Errorf("interval = [%d, %d), want [0, 10)", tree.Left, tree.Right)
	}
	if tree.Root != 3 {
		t.Errorf("root = %d, want 3", tree.Root)
	}
	if got := tree.NumLeavesOf(3); got != 2 {
		t.Errorf("NumLeavesOf(3) = %d, want 2", got)
	}

	mrca, err := tree.MRCA(1, 2)
	if err != nil {
		t.Fatalf("MRCA: %v", err)
	}
	if mrca != 3 {
		t.Errorf("MRCA(1, 2) = %d, want 3", mrca)
	}

	if _, ok, _ := it.Next(); ok {
		t.Errorf("second Next returned ok=true, want exhausted")
	}
}

func TestSparseTreeIteratorThreeSamplesTwoIntervals(t *testing.T) {
	s := scenario3()
	it := treeseq.NewSparseTreeIterator(s, treeseq.WithLeafCounts())

	tree, ok, err := it.Next()
	if err != nil || !ok {
		t.Fatalf("first Next: ok=%v err=%v", ok, err)
	}
	if tree.Left != 0 || tree.Right != 3 {
		t.Errorf("first interval = [%d, %d), want [0, 3)", tree.Left, tree.Right)
	}
	if tree.Root != 5 {
		t.Errorf("first root = %d, want 5", tree.Root)
	}
	if tree.Parent[4] != 5 || tree.Parent[1] != 4 || tree.Parent[2] != 4 || tree.Parent[3] != 5 {
		t.Errorf("first tree parents = %v, want 1,2->4, 4,3->5", tree.Parent[:6])
	}
	if got := tree.NumLeavesOf(5); got != 3 {
		t.Errorf("first NumLeavesOf(5) = %d, want 3", got)
	}
	if got := tree.NumLeavesOf(4); got != 2 {
		t.Errorf("first NumLeavesOf(4) = %d, want 2", got)
	}

	tree, ok, err = it.Next()
	if err != nil || !ok {
		t.Fatalf("second Next: ok=%v err=%v", ok, err)
	}
	if tree.Left != 3 || tree.Right != 8 {
		t.Errorf("second interval = [%d, %d), want [3, 8)", tree.Left, tree.Right)
	}
	if tree.Root != 7 {
		t.Errorf("second root = %d, want 7", tree.Root)
	}
	if tree.Parent[6] != 7 || tree.Parent[1] != 6 || tree.Parent[3] != 6 || tree.Parent[2] != 7 {
		t.Errorf("second tree parents = %v, want 1,3->6, 6,2->7", tree.Parent[:8])
	}
	if tree.Parent[4] != 0 || tree.Parent[5] != 0 {
		t.Errorf("second tree should have nodes 4, 5 fully retired, parent[4]=%d parent[5]=%d",
			tree.Parent[4], tree.Parent[5])
	}
	if got := tree.NumLeavesOf(7); got != 3 {
		t.Errorf("second NumLeavesOf(7) = %d, want 3", got)
	}
	if got := tree.NumLeavesOf(6); got != 2 {
		t.Errorf("second NumLeavesOf(6) = %d, want 2", got)
	}

	if _, ok, _ := it.Next(); ok {
		t.Errorf("third Next returned ok=true, want exhausted")
	}
}

func TestSparseTreeNumTrackedLeavesRequiresOption(t *testing.T) {
	s := scenario1()
	it := treeseq.NewSparseTreeIterator(s)
	tree, ok, err := it.Next()
	if err != nil || !ok {
		t.Fatalf("Next: ok=%v err=%v", ok, err)
	}
	if _, err := tree.NumTrackedLeavesOf(3); !treeseq.HasKind(err, treeseq.UnsupportedOperation) {
		t.Errorf("NumTrackedLeavesOf without WithLeafCounts: err = %v, want UnsupportedOperation", err)
	}
}

func TestSparseTreeTrackedLeaves(t *testing.T) {
	s := scenario3()
	it := treeseq.NewSparseTreeIterator(s, treeseq.WithTrackedSamples([]uint32{1}))

	tree, ok, err := it.Next()
	if err != nil || !ok {
		t.Fatalf("Next: ok=%v err=%v", ok, err)
	}
	got, err := tree.NumTrackedLeavesOf(5)
	if err != nil {
		t.Fatalf("NumTrackedLeavesOf: %v", err)
	}
	if got != 1 {
		t.Errorf("NumTrackedLeavesOf(5) = %d, want 1", got)
	}
}

func TestSparseTreeMRCARejectsNodeZero(t *testing.T) {
	s := scenario1()
	it := treeseq.NewSparseTreeIterator(s)
	tree, ok, err := it.Next()
	if err != nil || !ok {
		t.Fatalf("Next: ok=%v err=%v", ok, err)
	}
	if _, err := tree.MRCA(0, 1); !treeseq.HasKind(err, treeseq.BadParamValue) {
		t.Errorf("MRCA(0, 1): err = %v, want BadParamValue", err)
	}
}
