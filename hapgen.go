package treeseq

const hgWordSize = 64

// HaplotypeGenerator builds, for every sample, a bit-packed row recording
// which of the store's mutations it carries. A bit at (sample-1, site) is
// set iff sample is a descendant, in the local tree spanning that
// mutation's position, of the mutation's node.
//
// Bits are packed into words_per_row = ceil(numMutations/64) uint64 words
// per row, one bit per mutation in table order — msprime's hapgen.c pads
// to num_mutations/64 + 1 words even when numMutations is an exact
// multiple of 64; this generator uses the tight ceiling instead, since
// nothing here needs a guaranteed-spare trailing word.
type HaplotypeGenerator struct {
	sampleSize   uint32
	numMutations int
	wordsPerRow  int
	bits         []uint64 // sampleSize rows of wordsPerRow words each
}

// NewHaplotypeGenerator walks every local tree of store once via a plain
// [SparseTreeIterator], applying each mutation in the tree's window to the
// subtree rooted at its node with an iterative DFS, the way
// hapgen_apply_tree_mutation walks msprime's node stack.
func NewHaplotypeGenerator(store *RecordStore) (*HaplotypeGenerator, error) {
	const op = "NewHaplotypeGenerator"
	numMutations := store.GetNumMutations()
	wordsPerRow := (numMutations + hgWordSize - 1) / hgWordSize
	if wordsPerRow == 0 {
		wordsPerRow = 1
	}
	hg := &HaplotypeGenerator{
		sampleSize:   store.GetSampleSize(),
		numMutations: numMutations,
		wordsPerRow:  wordsPerRow,
		bits:         make([]uint64, int(store.GetSampleSize())*wordsPerRow),
	}

	it := NewSparseTreeIterator(store)
	stack := make([]uint32, 0, store.GetSampleSize())
	site := 0
	for {
		tree, ok, err := it.Next()
		if err != nil {
			return nil, newErr(op, Generic, err)
		}
		if !ok {
			break
		}
		for _, m := range tree.Mutations {
			hg.applyMutation(tree, m.Node, site, stack[:0])
			site++
		}
	}
	return hg, nil
}

// applyMutation sets the bit for site on every sample in the subtree
// rooted at node, via an iterative DFS over tree.Children using stack as
// scratch space (reused across calls by the caller).
func (hg *HaplotypeGenerator) applyMutation(tree *SparseTree, node uint32, site int, stack []uint32) {
	stack = append(stack, node)
	for len(stack) > 0 {
		u := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		c := tree.Children[u]
		if c[0] == 0 && c[1] == 0 {
			if u >= 1 && u <= hg.sampleSize {
				hg.setBit(u, site)
			}
			continue
		}
		stack = append(stack, c[0], c[1])
	}
}

func (hg *HaplotypeGenerator) setBit(sample uint32, site int) {
	row := int(sample-1) * hg.wordsPerRow
	hg.bits[row+site/hgWordSize] |= 1 << uint(site%hgWordSize)
}

func (hg *HaplotypeGenerator) getBit(sample uint32, site int) bool {
	row := int(sample-1) * hg.wordsPerRow
	return hg.bits[row+site/hgWordSize]&(1<<uint(site%hgWordSize)) != 0
}

// Haplotype returns sample's genotype as a string of '0'/'1' characters,
// one per mutation in table order.
func (hg *HaplotypeGenerator) Haplotype(sample uint32) (string, error) {
	const op = "HaplotypeGenerator.Haplotype"
	if sample < 1 || sample > hg.sampleSize {
		return "", newErr(op, OutOfBounds, nil)
	}
	buf := make([]byte, hg.numMutations)
	for site := 0; site < hg.numMutations; site++ {
		if hg.getBit(sample, site) {
			buf[site] = '1'
		} else {
			buf[site] = '0'
		}
	}
	return string(buf), nil
}

// NumSegregatingSites returns the number of sites at which at least one
// sample carries the derived allele.
func (hg *HaplotypeGenerator) NumSegregatingSites() int {
	count := 0
	for site := 0; site < hg.numMutations; site++ {
		var ones int
		for s := uint32(1); s <= hg.sampleSize; s++ {
			if hg.getBit(s, site) {
				ones++
			}
		}
		if ones > 0 {
			count++
		}
	}
	return count
}
