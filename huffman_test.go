package tamp

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pushCode loads a code of the given bit length (MSB-first, right-justified
// in code) into a fresh bit buffer for decodeHuffmanSymbol to consume.
func pushCode(code uint32, bits uint8) (buf uint32, pos uint8) {
	buf = code << (32 - bits)
	pos = bits
	return buf, pos
}

func TestDecodeHuffmanSymbol_AllMatchLengthCodes(t *testing.T) {
	// decodeHuffmanSymbol is only ever called after its caller has already
	// consumed the leading 0 flag bit, so the codes/bits tables' values
	// (which include that bit in their *width* but not in their *value*,
	// since a leading 0 never changes a binary value) must be pushed here
	// with the flag bit already stripped: huffmanBits[k]-1 bits.
	for k := 0; k < len(huffmanCodes); k++ {
		buf, pos := pushCode(huffmanCodes[k], huffmanBits[k]-1)
		symbol, status := decodeHuffmanSymbol(&buf, &pos)
		require.Equal(t, StatusOK, status, "symbol %d", k)
		assert.Equal(t, k, symbol, "symbol %d", k)
	}
}

func TestDecodeHuffmanSymbol_Flush(t *testing.T) {
	buf, pos := pushCode(flushCode, flushBits-1)
	symbol, status := decodeHuffmanSymbol(&buf, &pos)
	require.Equal(t, StatusOK, status)
	assert.Equal(t, flushSymbol, symbol)
}

func TestDecodeHuffmanSymbol_InputExhausted(t *testing.T) {
	// Symbol 10's code is 9 bits wide (including the leading flag bit
	// decodeHuffmanSymbol never sees); feed only the first 3 of its 8
	// post-flag bits, which resolve to no defined symbol on their own.
	postFlagBits := huffmanBits[10] - 1
	prefix := huffmanCodes[10] >> uint32(postFlagBits-3)
	buf, pos := pushCode(prefix, 3)
	symbol, status := decodeHuffmanSymbol(&buf, &pos)
	assert.Equal(t, StatusInputExhausted, status)
	assert.Zero(t, symbol)
}

func TestHuffmanCodes_UniquelyDecodable(t *testing.T) {
	// No two codes of the same bit length may collide, and no code may be a
	// prefix of another of a different length (checked indirectly: decoding
	// every defined code in isolation must round-trip, exercised above).
	seen := map[string]int{}
	for k := range huffmanCodes {
		key := fmt.Sprintf("%d:%d", huffmanBits[k], huffmanCodes[k])
		if prev, ok := seen[key]; ok {
			t.Fatalf("codes for symbols %d and %d collide", prev, k)
		}
		seen[key] = k
	}
}
