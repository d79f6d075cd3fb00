package codec

import (
	"fmt"
	"math"

	"github.com/dargueta/lzwpack"
	"github.com/dargueta/lzwpack/container"
	"github.com/dargueta/lzwpack/transform"
	"github.com/samber/lo"
)

// ChannelNames gives the names used for each plane in logs and errors, keyed by
// the number of planes.
var ChannelNames = map[int][]string{
	1: {"gray"},
	3: {"red", "green", "blue"},
}

func (c *Codec) checkPlanes(planes []lzwpack.Grid) error {
	if len(planes) != c.layout.Channels {
		return lzwpack.ErrInvalidArgument.WithMessage(
			fmt.Sprintf(
				"variant %s needs %d planes, got %d",
				c.variant,
				c.layout.Channels,
				len(planes),
			),
		)
	}

	first := planes[0]
	_, index, found := lo.FindIndexOf(planes, func(plane lzwpack.Grid) bool {
		return !plane.SameShape(first) || len(plane.Pix) != plane.Len()
	})
	if found {
		return lzwpack.ErrInvalidArgument.WithMessage(
			fmt.Sprintf(
				"plane %d isn't a %dx%d grid",
				index,
				first.Width,
				first.Height,
			),
		)
	}

	if first.Len() == 0 {
		return lzwpack.ErrEmptyInput
	}
	if uint64(first.Width) > math.MaxUint32 || uint64(first.Height) > math.MaxUint32 {
		return lzwpack.ErrInvalidArgument.WithMessage(
			fmt.Sprintf("image dimensions %dx%d are too large", first.Width, first.Height),
		)
	}
	return nil
}

// CompressPlanes compresses the planes of an image: one grid for grayscale
// variants, three (red, green, blue) for color variants. All planes must have
// the same dimensions.
func (c *Codec) CompressPlanes(planes []lzwpack.Grid) ([]byte, error) {
	err := c.requireVariant(true, "CompressPlanes")
	if err != nil {
		return nil, err
	}
	err = c.checkPlanes(planes)
	if err != nil {
		return nil, err
	}

	tf := c.Transform()
	names := ChannelNames[c.layout.Channels]
	img := container.Image{
		Width:    uint32(planes[0].Width),
		Height:   uint32(planes[0].Height),
		Channels: make([]container.ChannelRecord, len(planes)),
	}

	for i, plane := range planes {
		packed, err := c.encodeChannel(names[i], tf.Forward(plane).Pix)
		if err != nil {
			return nil, err
		}

		record := container.ChannelRecord{
			CodeWidth: uint16(packed.codeWidth),
			PadCount:  packed.padCount,
			Payload:   packed.payload,
		}
		if c.layout.HasOffset {
			record.Offset = c.offset
		}
		img.Channels[i] = record
	}

	return c.layout.WriteImage(img)
}

// DecompressPlanes reverses [Codec.CompressPlanes]. Each plane must decode to
// exactly width*height symbols, or it fails with [lzwpack.ErrLengthMismatch].
func (c *Codec) DecompressPlanes(data []byte) ([]lzwpack.Grid, error) {
	err := c.requireVariant(true, "DecompressPlanes")
	if err != nil {
		return nil, err
	}

	img, err := c.layout.ReadImage(data)
	if err != nil {
		return nil, err
	}

	expected := uint64(img.Width) * uint64(img.Height)
	if expected > math.MaxInt32 {
		return nil, lzwpack.ErrMalformedHeader.WithMessage(
			fmt.Sprintf("image dimensions %dx%d are too large", img.Width, img.Height),
		)
	}

	names := ChannelNames[c.layout.Channels]
	planes := make([]lzwpack.Grid, len(img.Channels))
	for i, record := range img.Channels {
		symbols, err := c.decodeChannel(
			names[i], record.Payload, record.CodeWidth, record.PadCount, int(expected),
		)
		if err != nil {
			return nil, err
		}

		residuals := lzwpack.Grid{Width: int(img.Width), Height: int(img.Height), Pix: symbols}
		planes[i] = transform.ForVariant(c.variant, record.Offset).Inverse(residuals)
	}
	return planes, nil
}
