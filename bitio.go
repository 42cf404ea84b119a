package tamp

// writeBits ORs value (right-justified, n low bits significant) into the
// high end of the compressor's 32-bit shift register, advancing
// bitBufferPos by n. The caller must ensure bitBufferPos+n <= 32 by
// flushing first; partialFlush's discipline (draining whenever 8 or more
// bits are buffered) guarantees this for every token shape the encoder
// emits.
func (c *Compressor) writeBits(value uint32, n uint8) {
	shift := 32 - uint32(c.bitBufferPos) - uint32(n)
	c.bitBuffer |= value << shift
	c.bitBufferPos += n
}

// partialFlush copies whole bytes (MSB-first) out of the bit buffer into
// output, stopping once fewer than 8 valid bits remain or output is full.
// It returns the number of bytes written.
func (c *Compressor) partialFlush(output []byte) int {
	written := 0
	for c.bitBufferPos >= 8 && written < len(output) {
		output[written] = byte(c.bitBuffer >> 24)
		c.bitBuffer <<= 8
		c.bitBufferPos -= 8
		written++
	}
	return written
}

// refillBits shifts bytes from input into the high end of the
// decompressor's bit buffer until it holds more than 24 bits or input is
// exhausted. It returns the number of input bytes consumed.
func (d *Decompressor) refillBits(input []byte) int {
	consumed := 0
	for consumed < len(input) && d.bitBufferPos <= 24 {
		d.bitBuffer |= uint32(input[consumed]) << (24 - uint32(d.bitBufferPos))
		d.bitBufferPos += 8
		consumed++
	}
	return consumed
}

// consumeBit removes and returns the top bit of the decompressor's bit
// buffer. Callers must first check bitBufferPos > 0.
func (d *Decompressor) consumeBit() uint32 {
	bit := d.bitBuffer >> 31
	d.bitBuffer <<= 1
	d.bitBufferPos--
	return bit
}

// consumeBits removes and returns the top n bits of the decompressor's bit
// buffer, MSB-first. Callers must first check bitBufferPos >= n.
func (d *Decompressor) consumeBits(n uint8) uint32 {
	value := d.bitBuffer >> (32 - uint32(n))
	d.bitBuffer <<= n
	d.bitBufferPos -= n
	return value
}

// alignToByte discards up to 7 pad bits so bitBufferPos becomes a multiple
// of 8, implementing the FLUSH marker's byte-alignment effect.
func (d *Decompressor) alignToByte() {
	extra := d.bitBufferPos % 8
	if extra != 0 {
		d.bitBuffer <<= extra
		d.bitBufferPos -= extra
	}
}
