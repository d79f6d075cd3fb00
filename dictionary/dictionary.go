// Package dictionary implements the adaptive dictionary coder shared by every
// compressor variant.
//
// The dictionary starts out holding the 256 single-byte sequences under codes
// 0-255. Every time the encoder fails to extend its current match it emits the
// code for the match and allocates the next code for the match plus the byte
// that broke it. The decoder rebuilds the same dictionary one step behind the
// encoder, so at every step both sides hold exactly the same entries.
//
// Entries are stored as (prefix code, appended byte) pairs in an arena indexed
// by code, the way classic table-driven LZW implementations do it. Adding an
// entry is O(1) and a sequence is only materialized when the decoder writes it
// out, by walking the prefix links back to a root code.
//
// Unlike GIF or TIFF LZW there is no clear code, no end-of-stream code and no
// width growth: the whole input is encoded first, and a single code width large
// enough for the final dictionary is used for every code in the stream.
package dictionary

import (
	"math/bits"

	"github.com/dargueta/lzwpack"
)

// RootCodes is the number of codes pre-assigned to single-byte sequences. It's
// also the first code the coder allocates.
const RootCodes = 256

// Result holds the output of a complete encoding pass.
type Result struct {
	// Codes is the emitted code sequence, in order.
	Codes []lzwpack.Code
	// DictionarySize is the number of codes assigned once the pass finished,
	// including the 256 root codes. Every code in Codes is less than this.
	DictionarySize int
}

// CodeWidth gives the fixed number of bits needed to store every code of this
// result.
func (r Result) CodeWidth() uint {
	return CodeWidth(r.DictionarySize)
}

// CodeWidth returns max(1, ceil(log2(dictionarySize))), the number of bits
// needed to represent every code in [0, dictionarySize).
func CodeWidth(dictionarySize int) uint {
	if dictionarySize <= 2 {
		return 1
	}
	return uint(bits.Len(uint(dictionarySize - 1)))
}
