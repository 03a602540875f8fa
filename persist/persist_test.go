package persist_test

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/arg-tools/treeseq"
	"github.com/arg-tools/treeseq/persist"
	"github.com/arg-tools/treeseq/provenance"
)

// buildStore is spec scenario 3's two-interval genealogy plus two
// mutations, used as the dump/load round-trip fixture (scenario 6).
func buildStore(t *testing.T) *treeseq.RecordStore {
	t.Helper()
	records := []treeseq.Record{
		{Left: 0, Right: 3, Node: 4, Children: [2]uint32{1, 2}, Time: 0.2},
		{Left: 0, Right: 3, Node: 5, Children: [2]uint32{4, 3}, Time: 0.6},
		{Left: 3, Right: 8, Node: 6, Children: [2]uint32{1, 3}, Time: 0.3},
		{Left: 3, Right: 8, Node: 7, Children: [2]uint32{6, 2}, Time: 0.5},
	}
	s := treeseq.NewRecordStore(records, 3, 8)
	if err := s.SetMutations([]treeseq.Mutation{
		{Position: 1.5, Node: 4},
		{Position: 6.0, Node: 6},
	}); err != nil {
		t.Fatalf("SetMutations: %v", err)
	}
	return s
}

func columnsOf(s *treeseq.RecordStore) []any {
	left, right, node, children, tm := s.Columns()
	return []any{left, right, node, children, tm}
}

func testRoundTrip(t *testing.T, comp persist.Compression) {
	t.Helper()
	s := buildStore(t)
	treeProv := provenance.Record{Software: "treeseq-test", Version: "0.0.0", Parameters: map[string]string{"sample_size": "3"}}
	mutProv := provenance.Record{Software: "treeseq-test", Version: "0.0.0", Parameters: map[string]string{"rate": "0.1"}}

	var buf bytes.Buffer
	if err := persist.Dump(&buf, s, persist.Options{Compression: comp}, treeProv, mutProv); err != nil {
		t.Fatalf("Dump: %v", err)
	}

	loaded, gotTreeProv, gotMutProv, err := persist.Load(&buf)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if diff := cmp.Diff(columnsOf(s), columnsOf(loaded)); diff != "" {
		t.Errorf("columns mismatch after round-trip (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(s.Mutations(), loaded.Mutations()); diff != "" {
		t.Errorf("mutations mismatch after round-trip (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(treeProv, gotTreeProv); diff != "" {
		t.Errorf("tree provenance mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(mutProv, gotMutProv); diff != "" {
		t.Errorf("mutation provenance mismatch (-want +got):\n%s", diff)
	}

	if got, want := loaded.GetSampleSize(), s.GetSampleSize(); got != want {
		t.Errorf("GetSampleSize() = %d, want %d", got, want)
	}
	if got, want := loaded.GetNumLoci(), s.GetNumLoci(); got != want {
		t.Errorf("GetNumLoci() = %d, want %d", got, want)
	}
	if got, want := loaded.GetNumNodes(), s.GetNumNodes(); got != want {
		t.Errorf("GetNumNodes() = %d, want %d", got, want)
	}
}

func TestDumpLoadRoundTripUncompressed(t *testing.T) {
	testRoundTrip(t, persist.CompressionNone)
}

func TestDumpLoadRoundTripZstd(t *testing.T) {
	testRoundTrip(t, persist.CompressionZstd)
}

func TestDumpIsDeterministic(t *testing.T) {
	s := buildStore(t)
	prov := provenance.Record{Software: "treeseq-test"}

	var b1, b2 bytes.Buffer
	if err := persist.Dump(&b1, s, persist.Options{}, prov, prov); err != nil {
		t.Fatalf("Dump 1: %v", err)
	}
	if err := persist.Dump(&b2, s, persist.Options{}, prov, prov); err != nil {
		t.Fatalf("Dump 2: %v", err)
	}
	if !bytes.Equal(b1.Bytes(), b2.Bytes()) {
		t.Errorf("two dumps of the same store produced different bytes")
	}
}

func TestLoadNoMutations(t *testing.T) {
	records := []treeseq.Record{
		{Left: 0, Right: 10, Node: 3, Children: [2]uint32{1, 2}, Time: 0.5},
	}
	s := treeseq.NewRecordStore(records, 2, 10)

	var buf bytes.Buffer
	if err := persist.Dump(&buf, s, persist.Options{}, provenance.Record{}, provenance.Record{}); err != nil {
		t.Fatalf("Dump: %v", err)
	}
	loaded, _, _, err := persist.Load(&buf)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := loaded.GetNumMutations(); got != 0 {
		t.Errorf("GetNumMutations() = %d, want 0", got)
	}
}

func TestLoadRejectsBadMagic(t *testing.T) {
	_, _, _, err := persist.Load(bytes.NewReader([]byte("not a treeseq container at all")))
	if !treeseq.HasKind(err, treeseq.FileFormat) {
		t.Errorf("Load garbage: err = %v, want FileFormat", err)
	}
}

func TestLoadRejectsTruncatedInput(t *testing.T) {
	s := buildStore(t)
	var buf bytes.Buffer
	if err := persist.Dump(&buf, s, persist.Options{}, provenance.Record{}, provenance.Record{}); err != nil {
		t.Fatalf("Dump: %v", err)
	}
	truncated := buf.Bytes()[:buf.Len()/2]
	if _, _, _, err := persist.Load(bytes.NewReader(truncated)); err == nil {
		t.Errorf("Load truncated input: err = nil, want a failure")
	}
}
