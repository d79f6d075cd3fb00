package transform

import (
	"github.com/dargueta/lzwpack"
)

// RowDifference predicts each symbol from its left neighbour, row by row. The
// first symbol of every row is stored as is.
//
//	diff[c] = pixel[c] - pixel[c-1] + Offset   (mod 256), c > 0
//
// Offset is kept as a 16-bit value because that's how it's stored in the
// container, but only its low byte affects the arithmetic.
type RowDifference struct {
	Offset uint16
}

func (t RowDifference) Name() string {
	return "row-difference"
}

func (t RowDifference) Forward(grid lzwpack.Grid) lzwpack.Grid {
	output := lzwpack.NewGrid(grid.Width, grid.Height)
	for r := 0; r < grid.Height; r++ {
		ForwardRow(output.Row(r), grid.Row(r), byte(t.Offset))
	}
	return output
}

func (t RowDifference) Inverse(grid lzwpack.Grid) lzwpack.Grid {
	output := lzwpack.NewGrid(grid.Width, grid.Height)
	for r := 0; r < grid.Height; r++ {
		InverseRow(output.Row(r), grid.Row(r), byte(t.Offset))
	}
	return output
}

// ForwardRow writes the row-difference residuals of `pixels` into `diff`.
// Both slices must be the same length; they must not overlap.
func ForwardRow(diff, pixels []byte, offset byte) {
	if len(pixels) == 0 {
		return
	}

	diff[0] = pixels[0]
	for c := 1; c < len(pixels); c++ {
		diff[c] = pixels[c] - pixels[c-1] + offset
	}
}

// InverseRow reverses [ForwardRow], reconstructing `pixels` from `diff` left to
// right.
func InverseRow(pixels, diff []byte, offset byte) {
	if len(diff) == 0 {
		return
	}

	pixels[0] = diff[0]
	for c := 1; c < len(diff); c++ {
		pixels[c] = diff[c] - offset + pixels[c-1]
	}
}

////////////////////////////////////////////////////////////////////////////////

// Difference2D predicts every symbol from its left neighbour, except for the
// first column, which is predicted from the symbol above. The top-left symbol is
// stored as is.
//
//	diff[0][0] = pixel[0][0]
//	diff[0][c] = pixel[0][c] - pixel[0][c-1]   c > 0
//	diff[r][0] = pixel[r][0] - pixel[r-1][0]   r > 0
//	diff[r][c] = pixel[r][c] - pixel[r][c-1]   r > 0, c > 0
//
// Interior cells don't look at the row above; only column 0 does.
type Difference2D struct{}

func (Difference2D) Name() string {
	return "2d-difference"
}

func (Difference2D) Forward(grid lzwpack.Grid) lzwpack.Grid {
	output := lzwpack.NewGrid(grid.Width, grid.Height)
	if grid.Width == 0 {
		return output
	}

	for r := 0; r < grid.Height; r++ {
		pixels := grid.Row(r)
		diff := output.Row(r)

		if r == 0 {
			diff[0] = pixels[0]
		} else {
			diff[0] = pixels[0] - grid.At(r-1, 0)
		}
		for c := 1; c < grid.Width; c++ {
			diff[c] = pixels[c] - pixels[c-1]
		}
	}
	return output
}

func (Difference2D) Inverse(grid lzwpack.Grid) lzwpack.Grid {
	output := lzwpack.NewGrid(grid.Width, grid.Height)
	if grid.Width == 0 {
		return output
	}

	for r := 0; r < grid.Height; r++ {
		diff := grid.Row(r)
		pixels := output.Row(r)

		if r == 0 {
			pixels[0] = diff[0]
		} else {
			pixels[0] = diff[0] + output.At(r-1, 0)
		}
		for c := 1; c < grid.Width; c++ {
			pixels[c] = diff[c] + pixels[c-1]
		}
	}
	return output
}
