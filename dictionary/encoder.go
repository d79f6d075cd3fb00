package dictionary

import (
	"github.com/dargueta/lzwpack"
)

// encodeTable maps (prefix, byte) pairs to the code allocated for them. The
// root codes are implicit: byte b is always code b.
type encodeTable struct {
	children map[uint64]lzwpack.Code
	nextCode lzwpack.Code
}

func newEncodeTable(sizeHint int) *encodeTable {
	return &encodeTable{
		children: make(map[uint64]lzwpack.Code, sizeHint),
		nextCode: RootCodes,
	}
}

func childKey(prefix lzwpack.Code, symbol byte) uint64 {
	return uint64(prefix)<<8 | uint64(symbol)
}

func (table *encodeTable) lookup(prefix lzwpack.Code, symbol byte) (lzwpack.Code, bool) {
	code, ok := table.children[childKey(prefix, symbol)]
	return code, ok
}

func (table *encodeTable) add(prefix lzwpack.Code, symbol byte) {
	table.children[childKey(prefix, symbol)] = table.nextCode
	table.nextCode++
}

// Encode converts a sequence of symbols into dictionary codes using greedy
// longest-match extension.
//
// The entire input must be available up front because the code width depends
// on the final dictionary size. Encoding an empty input fails with
// [lzwpack.ErrEmptyInput].
func Encode(symbols []byte) (Result, error) {
	if len(symbols) == 0 {
		return Result{}, lzwpack.ErrEmptyInput
	}

	// Each emitted code covers at least one symbol, and every emitted code
	// except the last allocates a new entry.
	table := newEncodeTable(len(symbols) / 2)
	codes := make([]lzwpack.Code, 0, len(symbols)/2+1)

	// The first symbol always matches a root entry, so the current match starts
	// out as that root code rather than an empty sequence.
	current := lzwpack.Code(symbols[0])
	for _, symbol := range symbols[1:] {
		extended, found := table.lookup(current, symbol)
		if found {
			current = extended
			continue
		}

		codes = append(codes, current)
		table.add(current, symbol)
		current = lzwpack.Code(symbol)
	}
	codes = append(codes, current)

	return Result{Codes: codes, DictionarySize: int(table.nextCode)}, nil
}
