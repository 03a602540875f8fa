// Package persist round-trips a treeseq.RecordStore to a self-describing
// binary container: a small header, a trees group of five columnar
// arrays, an optional mutations group of two, a per-array xxhash64
// checksum, optional zstd compression, and a JSON provenance string per
// group. It is the Go-idiomatic replacement for msprime's HDF5 container
// (lib/tree_sequence.c's tree_sequence_dump/tree_sequence_load): the same
// shape — header, named groups, per-dataset checksum, group attributes —
// built on a flat binary encoding instead of libhdf5.
package persist

// magic is the fixed byte prefix of every container this package writes.
var magic = [4]byte{'T', 'R', 'S', 'Q'}

// formatVersion is the (major, minor) pair stamped into every container.
// A reader rejects a container whose major version it does not
// recognise; a minor version bump must stay backward compatible.
var formatVersion = [2]uint32{1, 0}

// Compression selects the payload codec applied to each array before its
// checksum is computed.
type Compression uint8

const (
	// CompressionNone stores each array's raw bytes.
	CompressionNone Compression = iota
	// CompressionZstd compresses each array's raw bytes with zstd before
	// checksumming and writing it.
	CompressionZstd
)

// Options configures Dump.
type Options struct {
	Compression Compression
}

// header is the fixed-size preamble of a container, read in its entirety
// before any group is parsed.
type header struct {
	Version      [2]uint32
	SampleSize   uint32
	NumLoci      uint32
	NumNodes     uint32
	NumRecords   uint32
	NumMutations uint32
	Compression  Compression
}
