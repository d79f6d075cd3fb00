package lzwpack

import (
	"fmt"

	"github.com/samber/lo"
)

// Code identifies a dictionary sequence. Codes 0-255 stand for the single-byte
// sequences; larger codes are handed out in allocation order.
type Code uint32

// Grid is a rectangular, row-major array of byte symbols. It represents one
// channel of an image: the whole image for grayscale, or one plane for color.
type Grid struct {
	Width  int
	Height int
	// Pix holds Width*Height symbols, row 0 first.
	Pix []byte
}

// NewGrid creates a zero-filled grid with the given dimensions.
func NewGrid(width, height int) Grid {
	if width < 0 || height < 0 {
		panic(fmt.Sprintf("invalid grid dimensions %dx%d", width, height))
	}
	return Grid{Width: width, Height: height, Pix: make([]byte, width*height)}
}

// GridFromRows builds a grid from a slice of rows. All rows must be the same
// length.
func GridFromRows(rows [][]byte) (Grid, error) {
	if len(rows) == 0 {
		return Grid{}, nil
	}

	width := len(rows[0])
	for i, row := range rows {
		if len(row) != width {
			return Grid{}, ErrInvalidArgument.WithMessage(
				fmt.Sprintf(
					"grid is not rectangular: row %d has %d symbols, expected %d",
					i,
					len(row),
					width,
				),
			)
		}
	}

	return Grid{Width: width, Height: len(rows), Pix: lo.Flatten(rows)}, nil
}

// Row returns the symbols of row `r`. The returned slice aliases the grid's
// storage.
func (g Grid) Row(r int) []byte {
	return g.Pix[r*g.Width : (r+1)*g.Width]
}

// Rows returns a copy of the grid's contents split into rows.
func (g Grid) Rows() [][]byte {
	if g.Width == 0 {
		return lo.Times(g.Height, func(int) []byte { return []byte{} })
	}
	return lo.Map(lo.Chunk(g.Pix, g.Width), func(row []byte, _ int) []byte {
		return append(make([]byte, 0, len(row)), row...)
	})
}

func (g Grid) At(r, c int) byte {
	return g.Pix[r*g.Width+c]
}

func (g Grid) Set(r, c int, value byte) {
	g.Pix[r*g.Width+c] = value
}

// Len gives the number of symbols in the grid.
func (g Grid) Len() int {
	return g.Width * g.Height
}

// SameShape returns true if both grids have the same width and height.
func (g Grid) SameShape(other Grid) bool {
	return g.Width == other.Width && g.Height == other.Height
}

// Clone returns a deep copy of the grid.
func (g Grid) Clone() Grid {
	pix := make([]byte, len(g.Pix))
	copy(pix, g.Pix)
	return Grid{Width: g.Width, Height: g.Height, Pix: pix}
}
