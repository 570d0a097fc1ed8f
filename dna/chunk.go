package dna

import (
	"fmt"
	"strings"
)

// PadBase is the filler appended to the final block of a split sequence.
// It maps to symbol 0, so padding never disturbs parity more than the data
// it stands in for.
const PadBase = 'A'

// Split partitions seq into consecutive blocks of exactly size bases. The
// final block is right-padded with PadBase when the sequence length is not a
// multiple of size. Split(s, k) followed by Recombine(blocks, len(s))
// returns s unchanged.
func Split(seq string, size int) []string {
	if size <= 0 || len(seq) == 0 {
		return nil
	}
	blocks := make([]string, 0, (len(seq)+size-1)/size)
	for start := 0; start < len(seq); start += size {
		end := start + size
		if end > len(seq) {
			blocks = append(blocks, seq[start:]+strings.Repeat(string(PadBase), end-len(seq)))
			break
		}
		blocks = append(blocks, seq[start:end])
	}
	return blocks
}

// Recombine concatenates blocks in index order and truncates the result to
// originalLen, stripping the padding Split added to the final block.
func Recombine(blocks []string, originalLen int) (string, error) {
	var b strings.Builder
	for _, blk := range blocks {
		b.WriteString(blk)
	}
	joined := b.String()
	if originalLen < 0 || originalLen > len(joined) {
		return "", fmt.Errorf("original length %d out of range for %d recombined bases", originalLen, len(joined))
	}
	return joined[:originalLen], nil
}
