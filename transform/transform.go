// Package transform implements the predictive difference transforms applied to
// image channels before dictionary coding.
//
// A transform replaces each symbol with its residual against a predicted value,
// computed in byte arithmetic (mod 256). Smooth images turn into long runs of
// small residuals, which the dictionary coder compresses much better than raw
// pixel values. Every transform here is a total function on any rectangular
// grid and its inverse reproduces the input exactly.
package transform

import (
	"github.com/dargueta/lzwpack"
)

// Transform is a reversible grid-to-grid mapping. Implementations never modify
// their input; they always return a new grid of the same shape.
type Transform interface {
	Name() string
	Forward(grid lzwpack.Grid) lzwpack.Grid
	Inverse(grid lzwpack.Grid) lzwpack.Grid
}

// DefaultOffset is the bias added to row-difference residuals by default. It
// centres small negative and positive differences around 128.
const DefaultOffset = 128

// ForVariant returns the transform the given compressor variant applies to each
// of its channels. `offset` is only used by [lzwpack.VariantGrayscaleDiff].
func ForVariant(variant lzwpack.Variant, offset uint16) Transform {
	switch variant {
	case lzwpack.VariantGrayscaleDiff:
		return RowDifference{Offset: offset}
	case lzwpack.VariantColor2DDiff:
		return Difference2D{}
	default:
		return Identity{}
	}
}

////////////////////////////////////////////////////////////////////////////////

// Identity passes symbols through unchanged.
type Identity struct{}

func (Identity) Name() string {
	return "identity"
}

func (Identity) Forward(grid lzwpack.Grid) lzwpack.Grid {
	return grid.Clone()
}

func (Identity) Inverse(grid lzwpack.Grid) lzwpack.Grid {
	return grid.Clone()
}
