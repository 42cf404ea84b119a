package tamp

// inputRing is the compressor's 16-byte lookahead buffer.
// Bytes occupy positions (pos+k) mod inputRingSize for k in [0, size).
type inputRing struct {
	buf  [inputRingSize]byte
	pos  int
	size int
}

// at returns the byte offset bytes ahead of the ring's current head.
func (r *inputRing) at(offset int) byte {
	return r.buf[(r.pos+offset)%inputRingSize]
}

// push appends as much of data as fits, returning the number of bytes
// consumed.
func (r *inputRing) push(data []byte) int {
	n := 0
	for n < len(data) && r.size < inputRingSize {
		r.buf[(r.pos+r.size)%inputRingSize] = data[n]
		r.size++
		n++
	}
	return n
}

// advance drops the first n bytes from the ring (they have been encoded).
func (r *inputRing) advance(n int) {
	r.pos = (r.pos + n) % inputRingSize
	r.size -= n
}

// Compressor implements the C5 compressor core: it owns a window
// (dictionary), a 16-byte input lookahead ring, and the C1 bit buffer,
// and emits literal/match/FLUSH tokens one Poll() at a time.
type Compressor struct {
	window    []byte
	windowPos int

	input inputRing

	bitBuffer    uint32
	bitBufferPos uint8

	conf           Conf
	minPatternSize int

	// MatchFinder selects the C4 strategy. Defaults to the byte-by-byte
	// reference implementation when left nil.
	MatchFinder MatchFinder

	headerPending bool
}

// NewCompressor constructs a Compressor over the caller-owned window
// buffer. If conf is nil, DefaultConf is used. window's length must equal
// 1<<conf.WindowBits. Unless conf.UseCustomDictionary, window is seeded
// via InitializeDictionary.
func NewCompressor(conf *Conf, window []byte) (*Compressor, Status) {
	c := new(Compressor)
	if st := c.Init(conf, window); st != StatusOK {
		return nil, st
	}
	return c, StatusOK
}

// Init (re)initializes c in place, mirroring a tamp_compressor_init
// entry point.
func (c *Compressor) Init(conf *Conf, window []byte) Status {
	cf := DefaultConf()
	if conf != nil {
		cf = *conf
	}
	if st := cf.validate(); st != StatusOK {
		return st
	}
	if len(window) != 1<<cf.WindowBits {
		return StatusInvalidConfig
	}

	*c = Compressor{
		window:         window,
		conf:           cf,
		minPatternSize: computeMinPatternSize(cf.WindowBits, cf.LiteralBits),
		headerPending:  true,
	}

	if !cf.UseCustomDictionary {
		InitializeDictionary(window)
	}
	return StatusOK
}

func (c *Compressor) matchFinder() MatchFinder {
	if c.MatchFinder != nil {
		return c.MatchFinder
	}
	return referenceMatchFinder{}
}

// emitHeader writes the 8-bit stream header.
func (c *Compressor) emitHeader() {
	var header uint32
	header |= uint32(c.conf.WindowBits-minWindowBits) << 5
	header |= uint32(c.conf.LiteralBits-minLiteralBits) << 3
	if c.conf.UseCustomDictionary {
		header |= 1 << 2
	}
	// bit 1 (reserved) and bit 0 (more-headers) are both 0.
	c.writeBits(header, 8)
	c.headerPending = false
}

// Sink appends as much of input as fits into the 16-byte lookahead ring,
// returning the number of bytes consumed.
func (c *Compressor) Sink(input []byte) int {
	return c.input.push(input)
}

// Poll runs one iteration of the C5 state machine, emitting at most one
// token (literal or match) into output. It returns the number of bytes
// written and a Status: StatusOK if a token was emitted (or the ring was
// empty, a no-op), StatusOutputFull if the buffered bits couldn't be
// flushed enough to make room for the next token, StatusExcessBits if a
// literal's value exceeds conf.LiteralBits.
func (c *Compressor) Poll(output []byte) (written int, status Status) {
	if c.headerPending {
		c.emitHeader()
	}

	// Flush phase: drain whole bytes so bit_buffer_pos < 8 before the next
	// token, guaranteeing room for a worst-case 24-bit write.
	written += c.partialFlush(output[written:])
	if c.bitBufferPos >= 8 {
		return written, StatusOutputFull
	}

	if c.input.size == 0 {
		return written, StatusOK
	}

	matchIndex, matchSize := c.matchFinder().FindBestMatch(c.window, &c.input, c.minPatternSize, c.conf.maxPatternSize())

	if matchSize < c.minPatternSize {
		ch := c.input.at(0)
		if int(ch)>>c.conf.LiteralBits != 0 {
			return written, StatusExcessBits
		}
		value := uint32(1)<<uint32(c.conf.LiteralBits) | uint32(ch)
		c.writeBits(value, uint8(c.conf.LiteralBits+1))
		c.advance(1)
		return written, StatusOK
	}

	k := matchSize - c.minPatternSize
	c.writeBits(huffmanCodes[k], huffmanBits[k])
	c.writeBits(uint32(matchIndex), uint8(c.conf.WindowBits))
	c.advance(matchSize)
	return written, StatusOK
}

// advance copies n bytes from the input ring into the window (the C5
// advance phase) and drops them from the ring.
func (c *Compressor) advance(n int) {
	windowSize := len(c.window)
	for i := 0; i < n; i++ {
		c.window[c.windowPos] = c.input.at(i)
		c.windowPos++
		if c.windowPos == windowSize {
			c.windowPos = 0
		}
	}
	c.input.advance(n)
}

// Compress interleaves Sink and Poll: it sinks as much of input as fits
// into the ring, then polls until the ring is empty and no input remains.
func (c *Compressor) Compress(output, input []byte) (written, consumed int, status Status) {
	for {
		consumed += c.Sink(input[consumed:])
		if c.input.size == 0 {
			return written, consumed, StatusOK
		}
		n, st := c.Poll(output[written:])
		written += n
		if st != StatusOK {
			return written, consumed, st
		}
	}
}

// Flush drains any buffered input via repeated Poll, then byte-aligns the
// bit buffer. If writeToken is true and bits remain, the FLUSH symbol is
// written first so the compressor can be reused afterward; if false, the
// final byte is padded with zero bits (end of stream).
func (c *Compressor) Flush(output []byte, writeToken bool) (written int, status Status) {
	if c.headerPending {
		c.emitHeader()
	}

	for c.input.size > 0 {
		n, st := c.Poll(output[written:])
		written += n
		if st != StatusOK {
			return written, st
		}
	}

	if c.bitBufferPos > 0 && writeToken {
		written += c.partialFlush(output[written:])
		if c.bitBufferPos >= 8 {
			return written, StatusOutputFull
		}
		c.writeBits(flushCode, flushBits)
	}

	written += c.partialFlush(output[written:])
	if c.bitBufferPos >= 8 {
		return written, StatusOutputFull
	}
	if c.bitBufferPos > 0 {
		if written >= len(output) {
			return written, StatusOutputFull
		}
		output[written] = byte(c.bitBuffer >> 24)
		c.bitBuffer = 0
		c.bitBufferPos = 0
		written++
	}
	return written, StatusOK
}

// CompressAndFlush compresses all of input and terminates the stream
// (writeToken=false), a convenience for one-shot whole-buffer use.
func (c *Compressor) CompressAndFlush(output, input []byte) (written, consumed int, status Status) {
	written, consumed, status = c.Compress(output, input)
	if status != StatusOK {
		return written, consumed, status
	}
	n, st := c.Flush(output[written:], false)
	written += n
	return written, consumed, st
}
