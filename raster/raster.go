// Package raster converts between image files and the per-channel grids the
// codec works on. Decoding accepts any format registered with [image], which
// by default here is PNG, JPEG and GIF. Encoding always produces PNG.
package raster

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"

	"github.com/dargueta/lzwpack"
	"github.com/samber/lo"
)

// Decode reads an image and splits it into `channels` planes: 1 gives a single
// luminance plane, 3 gives red, green and blue planes. Alpha is dropped.
func Decode(reader io.Reader, channels int) ([]lzwpack.Grid, error) {
	if channels != 1 && channels != 3 {
		return nil, lzwpack.ErrInvalidArgument.WithMessage(
			fmt.Sprintf("images have 1 or 3 channels, not %d", channels),
		)
	}

	img, _, err := image.Decode(reader)
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	bounds := img.Bounds()
	planes := lo.Times(channels, func(int) lzwpack.Grid {
		return lzwpack.NewGrid(bounds.Dx(), bounds.Dy())
	})

	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			pixel := img.At(bounds.Min.X+x, bounds.Min.Y+y)
			if channels == 1 {
				planes[0].Set(y, x, color.GrayModel.Convert(pixel).(color.Gray).Y)
				continue
			}

			c := color.NRGBAModel.Convert(pixel).(color.NRGBA)
			planes[0].Set(y, x, c.R)
			planes[1].Set(y, x, c.G)
			planes[2].Set(y, x, c.B)
		}
	}

	return planes, nil
}

// Encode writes planes as a PNG: one plane gives an 8-bit grayscale image,
// three give an opaque RGB image.
func Encode(writer io.Writer, planes []lzwpack.Grid) error {
	img, err := ToImage(planes)
	if err != nil {
		return err
	}
	return png.Encode(writer, img)
}

// ToImage assembles planes into an in-memory image without encoding it.
func ToImage(planes []lzwpack.Grid) (image.Image, error) {
	if len(planes) != 1 && len(planes) != 3 {
		return nil, lzwpack.ErrInvalidArgument.WithMessage(
			fmt.Sprintf("images have 1 or 3 planes, not %d", len(planes)),
		)
	}

	first := planes[0]
	if lo.SomeBy(planes, func(plane lzwpack.Grid) bool {
		return !plane.SameShape(first) || len(plane.Pix) != plane.Len()
	}) {
		return nil, lzwpack.ErrInvalidArgument.WithMessage("planes must all have the same shape")
	}

	rect := image.Rect(0, 0, first.Width, first.Height)
	if len(planes) == 1 {
		gray := image.NewGray(rect)
		for y := 0; y < first.Height; y++ {
			copy(gray.Pix[y*gray.Stride:], first.Row(y))
		}
		return gray, nil
	}

	rgb := image.NewNRGBA(rect)
	for y := 0; y < first.Height; y++ {
		for x := 0; x < first.Width; x++ {
			rgb.SetNRGBA(
				x,
				y,
				color.NRGBA{
					R: planes[0].At(y, x),
					G: planes[1].At(y, x),
					B: planes[2].At(y, x),
					A: 0xff,
				},
			)
		}
	}
	return rgb, nil
}
