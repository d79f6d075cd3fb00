// Package bitpack serializes dictionary codes as fixed-width, big-endian bit
// fields and back.
//
// A packed buffer is the concatenation of every code, most significant bit
// first, followed by 0-7 zero bits to reach a byte boundary. Callers choose how
// the number of pad bits travels with the buffer:
//
//   - In-band: an extra leading byte holds the pad count, ahead of any code
//     bits. The buffer is self-describing.
//   - Out-of-band: the buffer holds only code bits and padding, and the caller
//     stores the pad count somewhere else (a container header).
//
// Bits are addressed with go-bitmap, which numbers bits least significant first
// within each byte. Stream bit i lives in byte i/8 at big-endian position i%8,
// which is go-bitmap bit 7-i%8 of that byte.
package bitpack

import (
	"fmt"

	"github.com/boljen/go-bitmap"
	"github.com/dargueta/lzwpack"
)

// MaxWidth is the widest code field supported. Codes are 32-bit values.
const MaxWidth = 32

// bitIndex converts a big-endian stream bit position into go-bitmap's bit
// numbering.
func bitIndex(streamBit int) int {
	return streamBit&^7 | (7 - streamBit&7)
}

func checkWidth(width uint) error {
	if width < 1 || width > MaxWidth {
		return lzwpack.ErrInvalidArgument.WithMessage(
			fmt.Sprintf("code width %d not in range [1, %d]", width, MaxWidth),
		)
	}
	return nil
}

// PadBits returns the number of zero bits needed to round `totalBits` up to a
// multiple of 8.
func PadBits(totalBits int) uint8 {
	return uint8((8 - totalBits%8) % 8)
}

// Pack writes every code as a `width`-bit field and pads the result with zero
// bits to the next byte boundary. It returns the packed bytes and the number of
// pad bits added. If `inBand` is true, the pad count is also written as the
// first byte of the output.
//
// Every code must fit in `width` bits.
func Pack(codes []lzwpack.Code, width uint, inBand bool) ([]byte, uint8, error) {
	err := checkWidth(width)
	if err != nil {
		return nil, 0, err
	}

	codeBits := len(codes) * int(width)
	padCount := PadBits(codeBits)

	headerBits := 0
	if inBand {
		headerBits = 8
	}

	buffer := make([]byte, (headerBits+codeBits+int(padCount))/8)
	if inBand {
		buffer[0] = padCount
	}

	bits := bitmap.Bitmap(buffer)
	position := headerBits
	for i, code := range codes {
		if width < MaxWidth && uint64(code) >= uint64(1)<<width {
			return nil, 0, lzwpack.ErrInvalidArgument.WithMessage(
				fmt.Sprintf("code %d at index %d doesn't fit in %d bits", code, i, width),
			)
		}

		for shift := int(width) - 1; shift >= 0; shift-- {
			if (code>>uint(shift))&1 != 0 {
				bits.Set(bitIndex(position), true)
			}
			position++
		}
	}

	return buffer, padCount, nil
}

// Unpack splits a packed buffer back into `width`-bit codes after dropping the
// last `padCount` bits. A trailing chunk shorter than `width` bits is ignored
// rather than treated as an error.
func Unpack(packed []byte, width uint, padCount uint8) ([]lzwpack.Code, error) {
	err := checkWidth(width)
	if err != nil {
		return nil, err
	}

	totalBits := len(packed) * 8
	if padCount > 7 {
		return nil, lzwpack.ErrMalformedHeader.WithMessage(
			fmt.Sprintf("pad count %d not in range [0, 7]", padCount),
		)
	}
	if int(padCount) > totalBits {
		return nil, lzwpack.ErrMalformedHeader.WithMessage(
			fmt.Sprintf("pad count %d exceeds the %d bits available", padCount, totalBits),
		)
	}

	numCodes := (totalBits - int(padCount)) / int(width)
	codes := make([]lzwpack.Code, numCodes)

	bits := bitmap.Bitmap(packed)
	position := 0
	for i := range codes {
		var code lzwpack.Code
		for j := uint(0); j < width; j++ {
			code <<= 1
			if bits.Get(bitIndex(position)) {
				code |= 1
			}
			position++
		}
		codes[i] = code
	}
	return codes, nil
}

// UnpackInBand is the counterpart of [Pack] with `inBand` set: it reads the pad
// count from the first byte and unpacks the rest.
func UnpackInBand(packed []byte, width uint) ([]lzwpack.Code, error) {
	if len(packed) == 0 {
		return nil, lzwpack.ErrMalformedHeader.WithMessage("missing in-band pad count")
	}
	return Unpack(packed[1:], width, packed[0])
}
