package treeseq_test

import (
	"testing"

	"github.com/arg-tools/treeseq"
)

func TestGenerateMutationsZeroRate(t *testing.T) {
	s := scenario1()
	if err := treeseq.GenerateMutations(s, 0, 1); err != nil {
		t.Fatalf("GenerateMutations: %v", err)
	}
	if got := s.GetNumMutations(); got != 0 {
		t.Errorf("GetNumMutations() = %d, want 0 at rate 0", got)
	}
}

func TestGenerateMutationsNegativeRate(t *testing.T) {
	s := scenario1()
	if err := treeseq.GenerateMutations(s, -1, 1); !treeseq.HasKind(err, treeseq.BadParamValue) {
		t.Errorf("GenerateMutations(rate=-1): err = %v, want BadParamValue", err)
	}
}

func TestGenerateMutationsDeterministicWithSeed(t *testing.T) {
	s1 := scenario3()
	s2 := scenario3()
	if err := treeseq.GenerateMutations(s1, 0.05, 42); err != nil {
		t.Fatalf("GenerateMutations(s1): %v", err)
	}
	if err := treeseq.GenerateMutations(s2, 0.05, 42); err != nil {
		t.Fatalf("GenerateMutations(s2): %v", err)
	}
	if got, want := s1.GetNumMutations(), s2.GetNumMutations(); got != want {
		t.Fatalf("same seed produced different mutation counts: %d vs %d", got, want)
	}
	m1, m2 := s1.Mutations(), s2.Mutations()
	for i := range m1 {
		if m1[i] != m2[i] {
			t.Errorf("mutation %d differs: %+v vs %+v", i, m1[i], m2[i])
		}
	}
}

func TestGenerateMutationsWithinBounds(t *testing.T) {
	s := scenario3()
	if err := treeseq.GenerateMutations(s, 0.2, 7); err != nil {
		t.Fatalf("GenerateMutations: %v", err)
	}
	for _, m := range s.Mutations() {
		if m.Position < 0 || m.Position >= float64(s.GetNumLoci()) {
			t.Errorf("mutation position %v out of [0, %d)", m.Position, s.GetNumLoci())
		}
		if m.Node < 1 || m.Node > s.GetNumNodes() {
			t.Errorf("mutation node %d out of [1, %d]", m.Node, s.GetNumNodes())
		}
	}
}
