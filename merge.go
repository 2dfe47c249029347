package corebpe

import "math"

// Rank identifies a vocabulary token. Lower rank means earlier merge
// priority.
type Rank = uint32

// noRank marks a pair with no entry in the rank table; it sorts after every
// real rank.
const noRank Rank = math.MaxUint32

// mergePart is one entry of the adjacency list the merge loop operates on:
// the byte offset where a token starts, and the rank of the pair beginning
// at that offset.
type mergePart struct {
	start int
	rank  Rank
}

// MergeBytePairs computes the boundary offsets that greedily, locally
// rank-minimizing BPE merging produces for piece against ranks. It returns
// o0=0 < o1 < ... < ok=len(piece); piece[o_i:o_{i+1}] are the final tokens.
//
// piece must be non-empty; a single-byte piece yields [0, 1]. The
// Tokenizer's encode paths look single-byte pieces up in the vocabulary
// directly instead of calling this.
func MergeBytePairs(piece []byte, ranks map[string]Rank) []int {
	parts := bytePairMerge(piece, ranks, nil)
	offsets := make([]int, len(parts))
	for i, p := range parts {
		offsets[i] = p.start
	}
	return offsets
}

// bytePairMerge runs the merge loop in place over scratch (reused across
// calls by hot paths) and returns the resulting parts, terminated by a
// sentinel entry at len(piece).
//
// Ported from the reference tiktoken core: a single left-to-right scan finds
// the minimum-rank pair each round (ties keep the leftmost index, since the
// comparison below is strict), which trades the O(m log n) of a heap for
// O(mn) with much better cache locality — n is small in practice.
func bytePairMerge(piece []byte, ranks map[string]Rank, scratch []mergePart) []mergePart {
	parts := scratch[:0]
	if cap(parts) < len(piece)+2 {
		parts = make([]mergePart, 0, len(piece)+2)
	}

	minRank := struct {
		rank Rank
		idx  int
	}{rank: noRank, idx: -1}

	for i := 0; i < len(piece)-1; i++ {
		rank, ok := ranks[string(piece[i:i+2])]
		if !ok {
			rank = noRank
		}
		if rank < minRank.rank {
			minRank.rank, minRank.idx = rank, i
		}
		parts = append(parts, mergePart{start: i, rank: rank})
	}
	parts = append(parts, mergePart{start: len(piece) - 1, rank: noRank})
	parts = append(parts, mergePart{start: len(piece), rank: noRank})

	getRank := func(i int) Rank {
		if i+3 < len(parts) {
			if r, ok := ranks[string(piece[parts[i].start:parts[i+3].start])]; ok {
				return r
			}
		}
		return noRank
	}

	for minRank.rank != noRank {
		i := minRank.idx
		if i > 0 {
			parts[i-1].rank = getRank(i - 1)
		}
		parts[i].rank = getRank(i)
		parts = append(parts[:i+1], parts[i+2:]...)

		minRank.rank, minRank.idx = noRank, -1
		for j := 0; j < len(parts)-1; j++ {
			if parts[j].rank < minRank.rank {
				minRank.rank, minRank.idx = parts[j].rank, j
			}
		}
	}
	return parts
}
