// Package container implements the binary layouts compressed data is stored in.
//
// All multi-byte integers are big-endian.
//
// Grid layouts (grayscale and color images):
//
//	+0  u32  width
//	+4  u32  height
//	+8  channel records, one per plane (1 for grayscale, 3 for color: R, G, B)
//
// Each channel record:
//
//	u16  code width, in bits
//	u16  residual offset (grayscale row-difference layout only)
//	u8   number of zero pad bits at the end of the payload
//	u32  payload length, in bytes
//	...  payload
//
// The flat stream layout (text) has no dimensions and no record framing:
//
//	+0  u16  code width, in bits
//	+2  u8   number of zero pad bits at the end of the payload
//	+3  ...  payload
//
// The stream payload runs to the end of the data. Its pad count is written by
// the bit packer itself (the in-band convention), so this package treats it as
// part of the payload.
package container

import (
	"fmt"

	"github.com/dargueta/lzwpack"
)

const imageHeaderSize = 8
const streamHeaderSize = 2

// MaxCodeWidth is the largest code width a reader will accept.
const MaxCodeWidth = 32

// Layout describes one of the on-disk formats.
type Layout struct {
	// Name is the variant name the layout belongs to.
	Name string
	// Grid is true for layouts with a width/height header and channel records.
	// False means the flat stream layout.
	Grid bool
	// Channels gives the number of channel records in a grid layout.
	Channels int
	// HasOffset is true if each channel record carries the row-difference
	// offset.
	HasOffset bool
}

var TextLayout = Layout{Name: "text"}
var GrayscaleLayout = Layout{Name: "gray", Grid: true, Channels: 1}
var GrayscaleDiffLayout = Layout{Name: "gray-diff", Grid: true, Channels: 1, HasOffset: true}
var ColorLayout = Layout{Name: "color", Grid: true, Channels: 3}
var Color2DDiffLayout = Layout{Name: "color-2d-diff", Grid: true, Channels: 3}

var layoutsByVariant = map[lzwpack.Variant]Layout{
	lzwpack.VariantText:          TextLayout,
	lzwpack.VariantGrayscale:     GrayscaleLayout,
	lzwpack.VariantGrayscaleDiff: GrayscaleDiffLayout,
	lzwpack.VariantColor:         ColorLayout,
	lzwpack.VariantColor2DDiff:   Color2DDiffLayout,
}

// LayoutFor returns the container layout used by a compressor variant.
func LayoutFor(variant lzwpack.Variant) (Layout, error) {
	layout, ok := layoutsByVariant[variant]
	if ok {
		return layout, nil
	}
	return Layout{}, lzwpack.ErrInvalidArgument.WithMessage(
		fmt.Sprintf("no container layout for variant %s", variant),
	)
}

// InBandPadding returns true if the pad count travels inside the packed payload
// rather than in the container header.
func (layout Layout) InBandPadding() bool {
	return !layout.Grid
}

// recordHeaderSize gives the size of a channel record, not counting the payload.
func (layout Layout) recordHeaderSize() int {
	if layout.HasOffset {
		return 9
	}
	return 7
}

// ChannelRecord is one packed plane of a grid layout.
type ChannelRecord struct {
	CodeWidth uint16
	// Offset is only stored by layouts with HasOffset set. It's ignored (and
	// read back as 0) otherwise.
	Offset   uint16
	PadCount uint8
	Payload  []byte
}

// Image is the decoded form of a grid layout.
type Image struct {
	Width    uint32
	Height   uint32
	Channels []ChannelRecord
}

// Stream is the decoded form of the flat stream layout. Payload includes the
// leading in-band pad count byte.
type Stream struct {
	CodeWidth uint16
	Payload   []byte
}

func checkCodeWidth(width uint16) error {
	if width < 1 || width > MaxCodeWidth {
		return lzwpack.ErrMalformedHeader.WithMessage(
			fmt.Sprintf("code width %d not in range [1, %d]", width, MaxCodeWidth),
		)
	}
	return nil
}

func checkPadCount(padCount uint8) error {
	if padCount > 7 {
		return lzwpack.ErrMalformedHeader.WithMessage(
			fmt.Sprintf("pad count %d not in range [0, 7]", padCount),
		)
	}
	return nil
}
