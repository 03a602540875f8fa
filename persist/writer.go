package persist

import (
	"bufio"
	"encoding/binary"
	"io"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/klauspost/compress/zstd"

	"github.com/arg-tools/treeseq"
	"github.com/arg-tools/treeseq/provenance"
)

// Dump writes store, under opts, to w as a self-describing container,
// with treeProv and mutProv recorded as the trees and mutations groups'
// provenance strings respectively.
func Dump(w io.Writer, store *treeseq.RecordStore, opts Options, treeProv, mutProv provenance.Record) error {
	const op = "persist.Dump"
	bw := bufio.NewWriter(w)

	left, right, node, children, tm := store.Columns()
	muts := store.Mutations()

	h := header{
		Version:      formatVersion,
		SampleSize:   store.GetSampleSize(),
		NumLoci:      store.GetNumLoci(),
		NumNodes:     store.GetNumNodes(),
		NumRecords:   uint32(store.GetNumRecords()),
		NumMutations: uint32(len(muts)),
		Compression:  opts.Compression,
	}
	if err := writeHeader(bw, h); err != nil {
		return treeseq.NewError(op, treeseq.IO, err)
	}

	treeProvStr, err := provenance.Encode(treeProv)
	if err != nil {
		return treeseq.NewError(op, treeseq.Generic, err)
	}
	if err := writeString(bw, treeProvStr); err != nil {
		return treeseq.NewError(op, treeseq.IO, err)
	}

	childrenFlat := make([]uint32, 0, 2*len(children))
	for _, c := range children {
		childrenFlat = append(childrenFlat, c[0], c[1])
	}

	for _, col := range []struct {
		u32 []uint32
		f64 []float64
	}{
		{u32: left}, {u32: right}, {u32: node}, {u32: childrenFlat}, {f64: tm},
	} {
		var raw []byte
		if col.u32 != nil {
			raw = encodeU32(col.u32)
		} else {
			raw = encodeF64(col.f64)
		}
		if err := writeChunk(bw, raw, opts.Compression); err != nil {
			return treeseq.NewError(op, treeseq.IO, err)
		}
	}

	if len(muts) > 0 {
		mutProvStr, err := provenance.Encode(mutProv)
		if err != nil {
			return treeseq.NewError(op, treeseq.Generic, err)
		}
		if err := writeString(bw, mutProvStr); err != nil {
			return treeseq.NewError(op, treeseq.IO, err)
		}
		positions := make([]float64, len(muts))
		nodes := make([]uint32, len(muts))
		for i, m := range muts {
			positions[i] = m.Position
			nodes[i] = m.Node
		}
		if err := writeChunk(bw, encodeF64(positions), opts.Compression); err != nil {
			return treeseq.NewError(op, treeseq.IO, err)
		}
		if err := writeChunk(bw, encodeU32(nodes), opts.Compression); err != nil {
			return treeseq.NewError(op, treeseq.IO, err)
		}
	}

	if err := bw.Flush(); err != nil {
		return treeseq.NewError(op, treeseq.IO, err)
	}
	return nil
}

func writeHeader(w io.Writer, h header) error {
	if _, err := w.Write(magic[:]); err != nil {
		return err
	}
	fields := []uint32{
		h.Version[0], h.Version[1],
		h.SampleSize, h.NumLoci, h.NumNodes,
		h.NumRecords, h.NumMutations,
		uint32(h.Compression),
	}
	for _, f := range fields {
		if err := binary.Write(w, binary.LittleEndian, f); err != nil {
			return err
		}
	}
	return nil
}

func writeString(w io.Writer, s string) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

// writeChunk writes one array: its uncompressed length, its possibly
// compressed payload length, the payload's xxhash64 checksum, and the
// payload itself — the per-dataset checksum msprime attaches to every
// HDF5 dataset it writes, carried over onto a flat encoding.
func writeChunk(w io.Writer, raw []byte, comp Compression) error {
	payload := raw
	if comp == CompressionZstd {
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return err
		}
		payload = enc.EncodeAll(raw, nil)
		_ = enc.Close()
	}
	sum := xxhash.Sum64(payload)
	if err := binary.Write(w, binary.LittleEndian, uint64(len(raw))); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint64(len(payload))); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, sum); err != nil {
		return err
	}
	_, err := w.Write(payload)
	return err
}

func encodeU32(vals []uint32) []byte {
	buf := make([]byte, 4*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint32(buf[4*i:], v)
	}
	return buf
}

func encodeF64(vals []float64) []byte {
	buf := make([]byte, 8*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint64(buf[8*i:], math.Float64bits(v))
	}
	return buf
}
