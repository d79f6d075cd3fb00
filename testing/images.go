package testing

import (
	"crypto/rand"
	mathrand "math/rand"
	"testing"

	"github.com/dargueta/lzwpack"
	"github.com/stretchr/testify/require"
)

// RandomBytes returns `size` bytes of random data. It is guaranteed to either
// return a valid slice or fail the test and abort.
func RandomBytes(t *testing.T, size int) []byte {
	data := make([]byte, size)
	_, err := rand.Read(data)
	require.NoErrorf(t, err, "failed to generate %d random bytes", size)
	return data
}

// RepetitiveBytes returns `size` bytes of highly compressible data: a short
// cycle of runs of different lengths.
func RepetitiveBytes(size int) []byte {
	pattern := []byte("aaaabbbccd\x00\x00\x00\x00\x00\x00\x00\x00")
	data := make([]byte, size)
	for i := range data {
		data[i] = pattern[i%len(pattern)]
	}
	return data
}

// RandomGridFrom creates a grid with the given dimensions filled from `source`,
// for reproducible property tests.
func RandomGridFrom(source *mathrand.Rand, width, height int) lzwpack.Grid {
	grid := lzwpack.NewGrid(width, height)
	source.Read(grid.Pix)
	return grid
}

// RandomGrid creates a grid with the given dimensions and random contents.
func RandomGrid(t *testing.T, width, height int) lzwpack.Grid {
	return lzwpack.Grid{Width: width, Height: height, Pix: RandomBytes(t, width*height)}
}

// GradientGrid creates a smooth grid, the kind of content the difference
// transforms are meant for. `phase` shifts the gradient so several planes of
// the same image can differ.
func GradientGrid(width, height, phase int) lzwpack.Grid {
	grid := lzwpack.NewGrid(width, height)
	for r := 0; r < height; r++ {
		for c := 0; c < width; c++ {
			grid.Set(r, c, byte(r+c/2+phase))
		}
	}
	return grid
}

// RequirePlanesEqual fails the test immediately if the two plane lists differ in
// count, shape or content.
func RequirePlanesEqual(t *testing.T, expected, actual []lzwpack.Grid) {
	t.Helper()
	require.Len(t, actual, len(expected), "wrong number of planes")
	for i := range expected {
		require.Equal(t, expected[i].Width, actual[i].Width, "plane %d: width is wrong", i)
		require.Equal(t, expected[i].Height, actual[i].Height, "plane %d: height is wrong", i)
		require.Equal(t, expected[i].Pix, actual[i].Pix, "plane %d: data is wrong", i)
	}
}
