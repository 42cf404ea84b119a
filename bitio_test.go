package tamp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompressor_WriteBitsAndPartialFlush(t *testing.T) {
	c := &Compressor{}
	c.writeBits(0b101, 3)
	c.writeBits(0b11110000, 8)
	assert.Equal(t, uint8(11), c.bitBufferPos)

	out := make([]byte, 4)
	n := c.partialFlush(out)
	// Fewer than 8 bits remain buffered after draining whole bytes.
	assert.Less(t, c.bitBufferPos, uint8(8))
	assert.Equal(t, 1, n)
	assert.Equal(t, byte(0b10111110), out[0])
}

func TestCompressor_PartialFlush_StopsOnShortOutput(t *testing.T) {
	c := &Compressor{}
	c.writeBits(0xff, 8)
	c.writeBits(0xab, 8)
	c.writeBits(0xcd, 8)

	out := make([]byte, 1)
	n := c.partialFlush(out)
	assert.Equal(t, 1, n)
	assert.Equal(t, byte(0xff), out[0])
	assert.Equal(t, uint8(16), c.bitBufferPos)
}

func TestDecompressor_RefillAndConsume(t *testing.T) {
	d := &Decompressor{}
	consumed := d.refillBits([]byte{0xff, 0x00, 0xab})
	assert.Equal(t, 3, consumed)
	assert.Equal(t, uint8(24), d.bitBufferPos)

	bit := d.consumeBit()
	assert.Equal(t, uint32(1), bit)
	assert.Equal(t, uint8(23), d.bitBufferPos)

	v := d.consumeBits(7)
	assert.Equal(t, uint32(0x7f), v)
	assert.Equal(t, uint8(16), d.bitBufferPos)
}

func TestDecompressor_RefillStopsAboveThreshold(t *testing.T) {
	d := &Decompressor{}
	d.refillBits([]byte{1, 2, 3, 4, 5})
	// refillBits only tops up while bitBufferPos <= 24, i.e. at most 4 bytes.
	assert.LessOrEqual(t, d.bitBufferPos, uint8(32))
	assert.GreaterOrEqual(t, d.bitBufferPos, uint8(24))
}

func TestDecompressor_AlignToByte(t *testing.T) {
	d := &Decompressor{}
	d.refillBits([]byte{0xff, 0xff, 0xff, 0xff})
	d.consumeBits(5)
	require.Equal(t, uint8(27), d.bitBufferPos)
	d.alignToByte()
	assert.Equal(t, uint8(24), d.bitBufferPos)
}

func TestDecompressor_AlignToByte_AlreadyAligned(t *testing.T) {
	d := &Decompressor{}
	d.refillBits([]byte{0xff, 0xff, 0xff, 0xff})
	require.Equal(t, uint8(32), d.bitBufferPos)
	d.alignToByte()
	assert.Equal(t, uint8(32), d.bitBufferPos)
}
