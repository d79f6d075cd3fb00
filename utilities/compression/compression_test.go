package compression_test

import (
	"bytes"
	"testing"

	"github.com/dargueta/lzwpack"
	"github.com/dargueta/lzwpack/codec"
	lt "github.com/dargueta/lzwpack/testing"
	c "github.com/dargueta/lzwpack/utilities/compression"
	"github.com/noxer/bytewriter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type archiveTestRunner struct {
	Name     string
	Function func(t *testing.T, d []byte)
}

type archiveTestData struct {
	Name string
	Data []byte
}

func gradientContainer(t *testing.T) []byte {
	cdc, err := codec.New(lzwpack.VariantGrayscaleDiff)
	require.NoError(t, err)

	data, err := cdc.CompressPlanes([]lzwpack.Grid{lt.GradientGrid(64, 64, 0)})
	require.NoError(t, err)
	return data
}

func TestRoundTripArchive(t *testing.T) {
	testRunners := []archiveTestRunner{
		{"to_stream", runRoundTripArchiveTest},
		{"to_bytes", runRoundTripArchiveToBytesTest},
	}

	testData := []archiveTestData{
		{"homogenous", bytes.Repeat([]byte{100}, 9174)},
		{"empty", []byte{}},
		{"heterogenous", lt.RandomBytes(t, 119)},
		{"container", gradientContainer(t)},
	}

	for _, runner := range testRunners {
		t.Run(
			runner.Name,
			func(tSub *testing.T) {
				for _, data := range testData {
					tSub.Run(
						data.Name,
						func(tSubSub *testing.T) {
							runner.Function(tSubSub, data.Data)
						},
					)
				}
			},
		)
	}
}

func runRoundTripArchiveTest(t *testing.T, sourceData []byte) {
	compressedBuffer := make([]byte, 20480)
	compressedWriter := bytewriter.New(compressedBuffer)

	compressedSize, err := c.CompressArchive(bytes.NewReader(sourceData), compressedWriter)
	require.NoError(t, err, "unexpected error while compressing")
	t.Logf("container size after archiving: %d -> %d", len(sourceData), compressedSize)

	decompressedBuffer := make([]byte, len(sourceData))
	decompressedWriter := bytewriter.New(decompressedBuffer)
	compressedReader := bytes.NewReader(compressedBuffer[:compressedSize])

	n, err := c.DecompressArchive(compressedReader, decompressedWriter)
	require.NoError(t, err, "unexpected error while decompressing")
	assert.EqualValues(t, len(sourceData), n, "decompressed container has wrong size")
	assert.Equal(t, sourceData, decompressedBuffer, "decompressed data is wrong")
}

func runRoundTripArchiveToBytesTest(t *testing.T, originalData []byte) {
	compressed, err := c.CompressArchiveToBytes(originalData)
	require.NoError(t, err, "error while compressing")
	t.Logf("container archived %d -> %d", len(originalData), len(compressed))

	decompressed, err := c.DecompressArchiveToBytes(bytes.NewReader(compressed))
	require.NoError(t, err, "error while decompressing")

	assert.Equal(
		t, len(originalData), len(decompressed), "decompressed data length is wrong")
	if len(originalData) > 0 {
		assert.Equal(t, originalData, decompressed, "decompressed data is wrong")
	}
}

func TestDecompressArchive__NotZstd(t *testing.T) {
	_, err := c.DecompressArchiveToBytes(bytes.NewReader([]byte("definitely not zstd")))
	assert.Error(t, err)
}
