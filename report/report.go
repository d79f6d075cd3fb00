// Package report records compression results as CSV, one row per compressed
// input.
package report

import (
	"fmt"
	"io"

	"github.com/dargueta/lzwpack"
	"github.com/gocarina/gocsv"
)

type Entry struct {
	// Input is the path or name of the compressed input.
	Input   string `csv:"input"`
	Variant string `csv:"variant"`

	// Width and Height are 0 for the text variant.
	Width  uint32 `csv:"width"`
	Height uint32 `csv:"height"`

	// OriginalBytes gives the size of the raw data that was compressed: the
	// input length for text, width*height*channels for images. This is not the
	// size of the image file the pixels were read from.
	OriginalBytes   int64 `csv:"original_bytes"`
	CompressedBytes int64 `csv:"compressed_bytes"`

	// Ratio is CompressedBytes / OriginalBytes, so smaller is better.
	Ratio float64 `csv:"ratio"`
}

// NewEntry creates an entry and computes its ratio. The ratio is 0 if the
// original size is 0.
func NewEntry(
	input string,
	variant lzwpack.Variant,
	width, height uint32,
	originalBytes, compressedBytes int64,
) Entry {
	entry := Entry{
		Input:           input,
		Variant:         variant.String(),
		Width:           width,
		Height:          height,
		OriginalBytes:   originalBytes,
		CompressedBytes: compressedBytes,
	}
	if originalBytes > 0 {
		entry.Ratio = float64(compressedBytes) / float64(originalBytes)
	}
	return entry
}

// Savings gives the fraction of the original size saved by compression. It's
// negative if the output grew.
func (e Entry) Savings() float64 {
	if e.OriginalBytes == 0 {
		return 0
	}
	return 1 - e.Ratio
}

func (e Entry) String() string {
	return fmt.Sprintf(
		"%s (%s): %d -> %d bytes, ratio %.3f",
		e.Input,
		e.Variant,
		e.OriginalBytes,
		e.CompressedBytes,
		e.Ratio,
	)
}

// Write writes the entries with a header row.
func Write(writer io.Writer, entries []Entry) error {
	err := gocsv.Marshal(entries, writer)
	if err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

// Append writes the entries without a header row, for adding to an existing
// report.
func Append(writer io.Writer, entries []Entry) error {
	err := gocsv.MarshalWithoutHeaders(entries, writer)
	if err != nil {
		return fmt.Errorf("appending to report: %w", err)
	}
	return nil
}

// Read parses a report written by [Write], possibly extended by [Append].
func Read(reader io.Reader) ([]Entry, error) {
	var entries []Entry
	err := gocsv.Unmarshal(reader, &entries)
	if err != nil {
		return nil, fmt.Errorf("reading report: %w", err)
	}
	return entries, nil
}
