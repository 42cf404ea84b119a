package tamp

// Decompressor implements the C6 decompressor core. It mirrors
// Compressor's window/ring discipline in reverse: it maintains its own
// copy of the dictionary window, refilling a 32-bit bit buffer from the
// compressed stream and replaying literal/match/FLUSH tokens into it.
type Decompressor struct {
	window    []byte
	windowPos int

	bitBuffer    uint32
	bitBufferPos uint8

	conf           Conf
	minPatternSize int

	// matchBuf holds a frozen snapshot of a match's source bytes, taken at
	// decode time before any of them can be overwritten by the match's own
	// output. tamp match offsets are absolute window positions rather than
	// relative back-references, so a match's source and destination spans
	// can alias within the circular window; copying from a live, mutating
	// window (as a byte-by-byte forward copy would) could read bytes the
	// same match has already overwritten. matchTotal/matchEmitted track
	// progress so a match interrupted by a full output buffer resumes
	// correctly on the next Poll.
	matchBuf     [inputRingSize]byte // largest possible match size is 16 (minPatternSize 3 + 13 extra)
	matchTotal   int
	matchEmitted int
}

// ReadHeader parses the leading 8-bit stream header, returning the
// configuration it encodes. Callers use this to size a window buffer
// before constructing a Decompressor; on StatusInputExhausted no bytes
// were consumed and 0 is returned for consumed.
func ReadHeader(input []byte) (conf Conf, consumed int, status Status) {
	if len(input) < 1 {
		return Conf{}, 0, StatusInputExhausted
	}
	b := input[0]
	conf.WindowBits = minWindowBits + int((b>>5)&0x7)
	conf.LiteralBits = minLiteralBits + int((b>>3)&0x3)
	conf.UseCustomDictionary = (b>>2)&1 != 0

	// bit 1 is reserved and bit 0 (more-headers) both must be 0; no
	// conforming encoder ever sets either, and an extension header with
	// more-headers=1 isn't something this decoder knows how to continue
	// reading.
	if b&0x3 != 0 {
		return Conf{}, 1, StatusInvalidConfig
	}

	if st := conf.validate(); st != StatusOK {
		return Conf{}, 1, st
	}
	return conf, 1, StatusOK
}

// NewDecompressor constructs a Decompressor over window, which must
// already be sized 1<<conf.WindowBits (typically the conf returned by
// ReadHeader). If conf is nil, DefaultConf is used.
func NewDecompressor(conf *Conf, window []byte) (*Decompressor, Status) {
	d := new(Decompressor)
	if st := d.Init(conf, window); st != StatusOK {
		return nil, st
	}
	return d, StatusOK
}

// Init (re)initializes d in place.
func (d *Decompressor) Init(conf *Conf, window []byte) Status {
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

	*d = Decompressor{
		window:         window,
		conf:           cf,
		minPatternSize: computeMinPatternSize(cf.WindowBits, cf.LiteralBits),
	}

	if !cf.UseCustomDictionary {
		InitializeDictionary(window)
	}
	return StatusOK
}

// emit writes one byte into the decompressor's copy of the window, the
// mirror of Compressor.advance's single-byte step.
func (d *Decompressor) emit(b byte) {
	d.window[d.windowPos] = b
	d.windowPos++
	if d.windowPos == len(d.window) {
		d.windowPos = 0
	}
}

// Poll decodes and emits at most one token into output: a literal byte,
// a resumed or newly-decoded match, or a FLUSH alignment (which emits
// nothing). On StatusInputExhausted the bit buffer is left exactly as it
// was on entry, so the caller can refill and retry. On StatusOutOfBounds
// a match decoded a window offset that does not fit within the window;
// this can only happen on a corrupted or malicious stream.
func (d *Decompressor) Poll(output []byte) (written int, status Status) {
	if d.matchTotal > 0 {
		return d.resumeMatch(output)
	}

	saveBuffer, savePos := d.bitBuffer, d.bitBufferPos

	if d.bitBufferPos == 0 {
		return 0, StatusInputExhausted
	}
	flag := d.consumeBit()

	if flag != 0 {
		if d.bitBufferPos < uint8(d.conf.LiteralBits) {
			d.bitBuffer, d.bitBufferPos = saveBuffer, savePos
			return 0, StatusInputExhausted
		}
		if len(output) == 0 {
			d.bitBuffer, d.bitBufferPos = saveBuffer, savePos
			return 0, StatusOutputFull
		}
		ch := byte(d.consumeBits(uint8(d.conf.LiteralBits)))
		output[0] = ch
		d.emit(ch)
		return 1, StatusOK
	}

	symbol, st := decodeHuffmanSymbol(&d.bitBuffer, &d.bitBufferPos)
	if st != StatusOK {
		d.bitBuffer, d.bitBufferPos = saveBuffer, savePos
		return 0, st
	}

	if symbol == flushSymbol {
		d.alignToByte()
		return 0, StatusOK
	}

	if d.bitBufferPos < uint8(d.conf.WindowBits) {
		d.bitBuffer, d.bitBufferPos = saveBuffer, savePos
		return 0, StatusInputExhausted
	}
	windowOffset := int(d.consumeBits(uint8(d.conf.WindowBits)))
	matchSize := symbol + d.minPatternSize

	if windowOffset < 0 || windowOffset >= len(d.window) || matchSize > len(d.matchBuf) ||
		windowOffset+matchSize > len(d.window) {
		return 0, StatusOutOfBounds
	}

	for i := 0; i < matchSize; i++ {
		d.matchBuf[i] = d.window[windowOffset+i]
	}
	d.matchTotal = matchSize
	d.matchEmitted = 0
	return d.resumeMatch(output)
}

// resumeMatch copies as much of the current match's frozen snapshot as
// fits into output, returning StatusOutputFull if bytes remain.
func (d *Decompressor) resumeMatch(output []byte) (written int, status Status) {
	for written < len(output) && d.matchEmitted < d.matchTotal {
		b := d.matchBuf[d.matchEmitted]
		output[written] = b
		d.emit(b)
		d.matchEmitted++
		written++
	}
	if d.matchEmitted < d.matchTotal {
		return written, StatusOutputFull
	}
	d.matchTotal = 0
	d.matchEmitted = 0
	return written, StatusOK
}

// Decompress decodes tokens from input into output until output is full
// or input is exhausted. It returns the number of bytes written, the
// number of input bytes consumed, and a Status describing why it
// stopped: StatusOutputFull/StatusInputExhausted for the usual backpressure
// cases (both resumable by calling Decompress again with fresh buffers),
// or a negative Status for malformed input. It never returns StatusOK; a
// stream that ends cleanly reports StatusInputExhausted.
func (d *Decompressor) Decompress(output, input []byte) (written, consumed int, status Status) {
	for {
		consumed += d.refillBits(input[consumed:])
		if written >= len(output) {
			return written, consumed, StatusOutputFull
		}
		n, st := d.Poll(output[written:])
		written += n
		if st != StatusOK {
			return written, consumed, st
		}
	}
}
