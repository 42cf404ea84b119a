package tamp

import "fmt"

// Status is the result code returned by every core compressor/decompressor
// operation. Non-negative values are actionable/terminal (not failures);
// negative values are fatal for the call that produced them.
type Status int

const (
	StatusOK             Status = 0
	StatusOutputFull     Status = 1
	StatusInputExhausted Status = 2

	StatusExcessBits    Status = -1
	StatusInvalidConfig Status = -2
	StatusOutOfBounds   Status = -3
	StatusReadError     Status = -4
	StatusWriteError    Status = -5
	StatusGeneric       Status = -6
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusOutputFull:
		return "output full"
	case StatusInputExhausted:
		return "input exhausted"
	case StatusExcessBits:
		return "excess bits"
	case StatusInvalidConfig:
		return "invalid config"
	case StatusOutOfBounds:
		return "out of bounds"
	case StatusReadError:
		return "read error"
	case StatusWriteError:
		return "write error"
	default:
		return "generic error"
	}
}

// Error implements the error interface so Status composes with errors.Is
// and %w at call sites that prefer idiomatic Go errors, without forcing
// the core (which treats OutputFull/InputExhausted as routine backpressure,
// not failures) to return a generic error on every call.
func (s Status) Error() string {
	return fmt.Sprintf("tamp: %s", s.String())
}

// IsError reports whether s represents a failure rather than a
// recoverable/actionable status such as StatusOutputFull or
// StatusInputExhausted.
func (s Status) IsError() bool {
	return s < 0
}

// Conf describes the wire-visible parameters of a Tamp stream. It is
// immutable once passed to NewCompressor/NewDecompressor.
type Conf struct {
	// WindowBits is in [minWindowBits, maxWindowBits]; the window size is
	// 1<<WindowBits bytes.
	WindowBits int
	// LiteralBits is in [minLiteralBits, maxLiteralBits]; literals encode
	// values in [0, 1<<LiteralBits).
	LiteralBits int
	// UseCustomDictionary, if true, leaves window seeding to the caller;
	// if false, NewCompressor/NewDecompressor seed it via InitializeDictionary.
	UseCustomDictionary bool
}

const (
	minWindowBits  = 8
	maxWindowBits  = 15
	minLiteralBits = 5
	maxLiteralBits = 8

	// inputRingSize is the fixed size of the compressor's lookahead ring (C5).
	inputRingSize = 16

	// maxMatchLengthExtra is how far beyond min_pattern_size a single
	// Huffman symbol can encode a match length: 13 extra lengths.
	maxMatchLengthExtra = 13
)

// DefaultConf returns the conventional (window_bits=10, literal_bits=8)
// configuration used as the default across all reference scenarios.
func DefaultConf() Conf {
	return Conf{WindowBits: 10, LiteralBits: 8, UseCustomDictionary: false}
}

func (c Conf) validate() Status {
	if c.WindowBits < minWindowBits || c.WindowBits > maxWindowBits {
		return StatusInvalidConfig
	}
	if c.LiteralBits < minLiteralBits || c.LiteralBits > maxLiteralBits {
		return StatusInvalidConfig
	}
	return StatusOK
}

// computeMinPatternSize implements the min_pattern_size formula: 3 only
// when a 2-byte match would be unprofitable given the token size, else 2.
// literal_bits=8 is always profitable at length 2.
func computeMinPatternSize(windowBits, literalBits int) int {
	switch literalBits {
	case 5:
		if windowBits > 10 {
			return 3
		}
	case 6:
		if windowBits > 12 {
			return 3
		}
	case 7:
		if windowBits > 14 {
			return 3
		}
	}
	return 2
}

// maxPatternSize returns the longest match length representable by a
// single Huffman symbol for this configuration.
func (c Conf) maxPatternSize() int {
	return computeMinPatternSize(c.WindowBits, c.LiteralBits) + maxMatchLengthExtra
}
