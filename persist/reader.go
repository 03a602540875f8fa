package persist

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/klauspost/compress/zstd"

	"github.com/arg-tools/treeseq"
	"github.com/arg-tools/treeseq/provenance"
)

// Load reads a container previously written by Dump and reconstructs its
// RecordStore plus the trees and mutations groups' provenance records.
//
// A major format-version mismatch fails with treeseq.UnsupportedFileVersion;
// bad magic, a checksum mismatch, an unexpected array length or an
// undecodable payload fails with treeseq.FileFormat; a short read
// (including a truncated container) or any other read failure fails with
// treeseq.IO.
func Load(r io.Reader) (*treeseq.RecordStore, provenance.Record, provenance.Record, error) {
	const op = "persist.Load"
	var zero provenance.Record
	br := bufio.NewReader(r)

	h, err := readHeader(br)
	if err != nil {
		return nil, zero, zero, err
	}
	if h.Version[0] != formatVersion[0] {
		return nil, zero, zero, treeseq.NewError(op, treeseq.UnsupportedFileVersion, nil)
	}

	treeProvStr, err := readString(br)
	if err != nil {
		return nil, zero, zero, treeseq.NewError(op, treeseq.IO, err)
	}
	treeProv, err := provenance.Decode(treeProvStr)
	if err != nil {
		return nil, zero, zero, treeseq.NewError(op, treeseq.FileFormat, err)
	}

	n := int(h.NumRecords)
	left, err := readU32Chunk(br, h.Compression, n)
	if err != nil {
		return nil, zero, zero, err
	}
	right, err := readU32Chunk(br, h.Compression, n)
	if err != nil {
		return nil, zero, zero, err
	}
	node, err := readU32Chunk(br, h.Compression, n)
	if err != nil {
		return nil, zero, zero, err
	}
	childrenFlat, err := readU32Chunk(br, h.Compression, 2*n)
	if err != nil {
		return nil, zero, zero, err
	}
	tm, err := readF64Chunk(br, h.Compression, n)
	if err != nil {
		return nil, zero, zero, err
	}
	children := make([][2]uint32, n)
	for i := range children {
		children[i] = [2]uint32{childrenFlat[2*i], childrenFlat[2*i+1]}
	}

	store := treeseq.NewRecordStoreFromColumns(left, right, node, children, tm,
		h.SampleSize, h.NumLoci, h.NumNodes)

	var mutProv provenance.Record
	if h.NumMutations > 0 {
		mutProvStr, err := readString(br)
		if err != nil {
			return nil, zero, zero, treeseq.NewError(op, treeseq.IO, err)
		}
		mutProv, err = provenance.Decode(mutProvStr)
		if err != nil {
			return nil, zero, zero, treeseq.NewError(op, treeseq.FileFormat, err)
		}
		nm := int(h.NumMutations)
		positions, err := readF64Chunk(br, h.Compression, nm)
		if err != nil {
			return nil, zero, zero, err
		}
		nodes, err := readU32Chunk(br, h.Compression, nm)
		if err != nil {
			return nil, zero, zero, err
		}
		muts := make([]treeseq.Mutation, nm)
		for i := range muts {
			muts[i] = treeseq.Mutation{Position: positions[i], Node: nodes[i]}
		}
		if err := store.SetMutations(muts); err != nil {
			return nil, zero, zero, err
		}
	}

	return store, treeProv, mutProv, nil
}

func readHeader(r io.Reader) (header, error) {
	const op = "persist.Load"
	var got [4]byte
	if _, err := io.ReadFull(r, got[:]); err != nil {
		return header{}, treeseq.NewError(op, treeseq.IO, err)
	}
	if got != magic {
		return header{}, treeseq.NewError(op, treeseq.FileFormat, fmt.Errorf("bad magic %q", got))
	}
	var fields [8]uint32
	for i := range fields {
		if err := binary.Read(r, binary.LittleEndian, &fields[i]); err != nil {
			return header{}, treeseq.NewError(op, treeseq.IO, err)
		}
	}
	return header{
		Version:      [2]uint32{fields[0], fields[1]},
		SampleSize:   fields[2],
		NumLoci:      fields[3],
		NumNodes:     fields[4],
		NumRecords:   fields[5],
		NumMutations: fields[6],
		Compression:  Compression(fields[7]),
	}, nil
}

func readString(r io.Reader) (string, error) {
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

// readChunk reads one array's length/checksum/payload triple, verifies
// the checksum, decompresses if necessary, and checks the decoded length
// against wantLen bytes.
func readChunk(r io.Reader, comp Compression, wantLen int) ([]byte, error) {
	const op = "persist.Load"
	var rawLen, payloadLen, sum uint64
	if err := binary.Read(r, binary.LittleEndian, &rawLen); err != nil {
		return nil, treeseq.NewError(op, treeseq.IO, err)
	}
	if err := binary.Read(r, binary.LittleEndian, &payloadLen); err != nil {
		return nil, treeseq.NewError(op, treeseq.IO, err)
	}
	if err := binary.Read(r, binary.LittleEndian, &sum); err != nil {
		return nil, treeseq.NewError(op, treeseq.IO, err)
	}
	payload := make([]byte, payloadLen)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, treeseq.NewError(op, treeseq.IO, err)
	}
	if xxhash.Sum64(payload) != sum {
		return nil, treeseq.NewError(op, treeseq.FileFormat, fmt.Errorf("checksum mismatch"))
	}
	raw := payload
	if comp == CompressionZstd {
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, treeseq.NewError(op, treeseq.Generic, err)
		}
		raw, err = dec.DecodeAll(payload, nil)
		dec.Close()
		if err != nil {
			return nil, treeseq.NewError(op, treeseq.FileFormat, err)
		}
	}
	if len(raw) != int(rawLen) || rawLen != uint64(wantLen) {
		return nil, treeseq.NewError(op, treeseq.FileFormat, fmt.Errorf("unexpected array length"))
	}
	return raw, nil
}

func readU32Chunk(r io.Reader, comp Compression, count int) ([]uint32, error) {
	raw, err := readChunk(r, comp, 4*count)
	if err != nil {
		return nil, err
	}
	out := make([]uint32, count)
	for i := range out {
		out[i] = binary.LittleEndian.Uint32(raw[4*i:])
	}
	return out, nil
}

func readF64Chunk(r io.Reader, comp Compression, count int) ([]float64, error) {
	raw, err := readChunk(r, comp, 8*count)
	if err != nil {
		return nil, err
	}
	out := make([]float64, count)
	for i := range out {
		out[i] = math.Float64frombits(binary.LittleEndian.Uint64(raw[8*i:]))
	}
	return out, nil
}
