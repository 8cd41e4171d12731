package block

import "math/bits"

// StraddlingThresholdDataVersion is the DataVersion at and above which
// Anvil's packed-long palette indices never straddle a 64-bit word
// boundary. Below this threshold, indices may straddle. This is a constant
// fixed by the game, not something derivable from the chunk data itself.
const StraddlingThresholdDataVersion = 2529

// bitsForPaletteSize returns the packed index width for a palette with k
// entries: max(4, ceil(log2(k))).
func bitsForPaletteSize(k int) int {
	if k <= 1 {
		return 4
	}
	n := bits.Len(uint(k - 1))
	if n < 4 {
		n = 4
	}
	return n
}

// unpackIndices decodes count densely-packed bitsPerIndex-wide unsigned
// indices from data (a packed-long array), selecting the straddling or
// non-straddling layout per straddle. Words past the end of a data array
// that is too short for count indices read as zero.
func unpackIndices(data []int64, bitsPerIndex int, count int, straddle bool) []int {
	out := make([]int, count)
	mask := uint64(1)<<uint(bitsPerIndex) - 1

	if straddle {
		for i := 0; i < count; i++ {
			bitStart := int64(i) * int64(bitsPerIndex)
			startWord := int(bitStart >> 6)
			startOffset := uint(bitStart & 63)
			endWord := int((bitStart + int64(bitsPerIndex) - 1) >> 6)

			var value uint64
			if startWord < len(data) {
				value = uint64(data[startWord]) >> startOffset
			}
			if endWord != startWord && endWord < len(data) {
				value |= uint64(data[endWord]) << (64 - startOffset)
			}
			out[i] = int(value & mask)
		}
		return out
	}

	indicesPerLong := 64 / bitsPerIndex
	for i := 0; i < count; i++ {
		word := i / indicesPerLong
		if word >= len(data) {
			break
		}
		offset := uint(i%indicesPerLong) * uint(bitsPerIndex)
		value := uint64(data[word]) >> offset
		out[i] = int(value & mask)
	}
	return out
}
