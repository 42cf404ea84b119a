package tamp

// defaultDictionarySeed is the fixed xorshift32 seed every v1-compliant
// encoder and decoder must use when use_custom_dictionary is false. It is
// wire-visible: pins this exact value.
const defaultDictionarySeed uint32 = 0xE0000498 // 3758097560

// commonCharacters is the 16-symbol alphabet the dictionary initializer
// indexes into, nibble by nibble. Wire-visible, order matters.
var commonCharacters = [16]byte{
	0x20, 0x00, 0x30, 0x65, 0x69, 0x3e, 0x74, 0x6f,
	0x3c, 0x61, 0x6e, 0x73, 0x0a, 0x72, 0x2f, 0x2e,
}

// xorshift32 advances the PRNG used to seed the dictionary. The recurrence
// itself is wire-visible: a decoder using a different recurrence would
// diverge from any encoder using the default dictionary.
func xorshift32(x uint32) uint32 {
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	return x
}

// InitializeDictionary fills buf deterministically with the fixed seed, as
// required for any stream with use_custom_dictionary=false. Both ends of a
// channel must call this (or otherwise arrive at byte-identical contents)
// for the round-trip to reproduce.
func InitializeDictionary(buf []byte) {
	initializeDictionarySeed(buf, defaultDictionarySeed)
}

// initializeDictionarySeed is the internal, seed-accepting variant. A seed
// parameter belongs only here, never on the public/wire-visible API, so
// this stays unexported; it exists for tests that want to exercise the
// PRNG recurrence independent of the fixed default seed.
func initializeDictionarySeed(buf []byte, seed uint32) {
	x := seed
	for i := 0; i < len(buf); {
		x = xorshift32(x)
		// Eight nibbles per xorshift32 output, low nibble first.
		for shift := 0; shift < 32 && i < len(buf); shift += 4 {
			nibble := (x >> shift) & 0xF
			buf[i] = commonCharacters[nibble]
			i++
		}
	}
}
