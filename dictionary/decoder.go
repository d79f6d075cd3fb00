package dictionary

import (
	"fmt"

	"github.com/dargueta/lzwpack"
)

// decodeTable is the decoder's half of the dictionary. Entry i is the sequence
// of entry prefix[i] followed by suffix[i]. first and length are cached so that
// neither the KwKwK case nor materialization has to walk the chain twice.
type decodeTable struct {
	prefix []lzwpack.Code
	suffix []byte
	first  []byte
	length []int
}

func newDecodeTable(sizeHint int) *decodeTable {
	capacity := RootCodes + sizeHint
	table := &decodeTable{
		prefix: make([]lzwpack.Code, RootCodes, capacity),
		suffix: make([]byte, RootCodes, capacity),
		first:  make([]byte, RootCodes, capacity),
		length: make([]int, RootCodes, capacity),
	}

	for i := 0; i < RootCodes; i++ {
		table.suffix[i] = byte(i)
		table.first[i] = byte(i)
		table.length[i] = 1
	}
	return table
}

// size gives the number of codes assigned so far, which is also the next code
// that will be assigned.
func (table *decodeTable) size() lzwpack.Code {
	return lzwpack.Code(len(table.suffix))
}

func (table *decodeTable) add(prefix lzwpack.Code, symbol byte) {
	table.prefix = append(table.prefix, prefix)
	table.suffix = append(table.suffix, symbol)
	table.first = append(table.first, table.first[prefix])
	table.length = append(table.length, table.length[prefix]+1)
}

// appendSequence writes the sequence for `code` to the end of `output`. The
// chain is walked from the last symbol back to the root, so the bytes are
// filled in from the right.
func (table *decodeTable) appendSequence(output []byte, code lzwpack.Code) []byte {
	start := len(output)
	end := start + table.length[code]
	output = append(output, make([]byte, table.length[code])...)

	for i := end - 1; i >= start; i-- {
		output[i] = table.suffix[code]
		code = table.prefix[code]
	}
	return output
}

// Decode reconstructs the symbol sequence from a code sequence produced by
// [Encode], rebuilding the dictionary in lockstep with the encoder.
//
// It fails with [lzwpack.ErrCorruptStream] if `codes` is empty, if the first
// code isn't a single-byte root code, or if a later code is neither in the
// dictionary nor the next code to be allocated.
//
// The length of the result is not checked here; callers that know how many
// symbols to expect should use [DecodeLimit].
func Decode(codes []lzwpack.Code) ([]byte, error) {
	return DecodeLimit(codes, -1)
}

// DecodeLimit works like [Decode] but stops with [lzwpack.ErrLengthMismatch]
// as soon as the output would grow past `maxSymbols`, before the sequence that
// overflows is materialized. A negative limit disables the check.
//
// A short run of codes can describe a very long output (each KwKwK code is one
// symbol longer than the last), so decoding untrusted input without a limit
// can allocate far more than the input size suggests.
func DecodeLimit(codes []lzwpack.Code, maxSymbols int) ([]byte, error) {
	if len(codes) == 0 {
		return nil, lzwpack.ErrCorruptStream.WithMessage("no codes to decode")
	}
	if codes[0] >= RootCodes {
		return nil, lzwpack.ErrCorruptStream.WithMessage(
			fmt.Sprintf("first code %d is not a single-byte code", codes[0]),
		)
	}
	if maxSymbols == 0 {
		return nil, overLimit(1, maxSymbols)
	}

	capacity := len(codes) * 2
	if maxSymbols >= 0 && maxSymbols < capacity {
		capacity = maxSymbols
	}

	table := newDecodeTable(len(codes))
	output := make([]byte, 0, capacity)
	output = append(output, byte(codes[0]))

	previous := codes[0]
	for i, code := range codes[1:] {
		nextCode := table.size()

		switch {
		case code < nextCode:
			// Known entry. The new entry is the previous sequence plus the
			// first byte of this one.
			table.add(previous, table.first[code])
		case code == nextCode:
			// KwKwK: the encoder used the entry it allocated on the very same
			// step, so it must be the previous sequence plus its own first byte.
			// Adding it first makes it materializable like any other entry.
			table.add(previous, table.first[previous])
		default:
			return nil, lzwpack.ErrCorruptStream.WithMessage(
				fmt.Sprintf(
					"code %d at index %d is past the next allocatable code %d",
					code,
					i+1,
					nextCode,
				),
			)
		}

		needed := len(output) + table.length[code]
		if maxSymbols >= 0 && needed > maxSymbols {
			return nil, overLimit(needed, maxSymbols)
		}
		output = table.appendSequence(output, code)
		previous = code
	}

	return output, nil
}

func overLimit(needed, maxSymbols int) error {
	return lzwpack.ErrLengthMismatch.WithMessage(
		fmt.Sprintf("decoding needs at least %d symbols, limit is %d", needed, maxSymbols),
	)
}
