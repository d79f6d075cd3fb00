package main

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dargueta/lzwpack"
	"github.com/dargueta/lzwpack/raster"
	"github.com/dargueta/lzwpack/report"
	lt "github.com/dargueta/lzwpack/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func newTestContext(t *testing.T, args ...string) *cli.Context {
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	set.String("variant", "", "")
	set.Uint("offset", 128, "")
	require.NoError(t, set.Parse(args))
	return cli.NewContext(nil, set, nil)
}

// runApp runs the CLI without letting exit-code errors terminate the test
// binary.
func runApp(args ...string) error {
	app := newApp()
	app.ExitErrHandler = func(*cli.Context, error) {}
	return app.Run(append([]string{"lzwpack"}, args...))
}

func TestNewCodec__Offset(t *testing.T) {
	cdc, err := newCodec(newTestContext(t, "--variant", "gray-diff", "--offset", "7"))
	require.NoError(t, err)
	assert.Equal(t, lzwpack.VariantGrayscaleDiff, cdc.Variant())
	assert.EqualValues(t, 7, cdc.Offset())

	cdc, err = newCodec(newTestContext(t, "--variant", "3"))
	require.NoError(t, err)
	assert.EqualValues(t, 128, cdc.Offset(), "default offset not used")
}

func TestNewCodec__OffsetTooLarge(t *testing.T) {
	cdc, err := newCodec(newTestContext(t, "--variant", "gray-diff", "--offset", "65536"))
	assert.ErrorIs(t, err, lzwpack.ErrInvalidArgument)
	assert.Nil(t, cdc)
}

func TestNewCodec__UnknownVariant(t *testing.T) {
	_, err := newCodec(newTestContext(t, "--variant", "sepia"))
	assert.ErrorIs(t, err, lzwpack.ErrInvalidArgument)
}

func TestAppendToReport__HeaderOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.csv")
	first := report.NewEntry("a.txt", lzwpack.VariantText, 0, 0, 100, 60)
	second := report.NewEntry("b.png", lzwpack.VariantGrayscale, 4, 4, 16, 20)

	require.NoError(t, appendToReport(path, first))
	require.NoError(t, appendToReport(path, second))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(raw), "input,variant"), "header written more than once")

	entries, err := report.Read(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, []report.Entry{first, second}, entries)
}

func TestApp__TextRoundTrip(t *testing.T) {
	directory := t.TempDir()
	inputPath := filepath.Join(directory, "input.txt")
	packedPath := filepath.Join(directory, "input.lzw")
	outputPath := filepath.Join(directory, "output.txt")
	reportPath := filepath.Join(directory, "report.csv")

	input := lt.RepetitiveBytes(4000)
	require.NoError(t, os.WriteFile(inputPath, input, 0o644))

	err := runApp("compress", "--variant", "text", "--zstd", "--report", reportPath, inputPath, packedPath)
	require.NoError(t, err)

	err = runApp("decompress", "--variant", "text", "--zstd", packedPath, outputPath)
	require.NoError(t, err)

	output, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.Equal(t, input, output)

	reportFile, err := os.Open(reportPath)
	require.NoError(t, err)
	defer reportFile.Close()

	entries, err := report.Read(reportFile)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.EqualValues(t, len(input), entries[0].OriginalBytes)
	assert.Less(t, entries[0].Ratio, 1.0)
}

func TestApp__ImageRoundTrip(t *testing.T) {
	directory := t.TempDir()
	inputPath := filepath.Join(directory, "input.png")
	packedPath := filepath.Join(directory, "input.lzw")
	outputPath := filepath.Join(directory, "output.png")

	planes := []lzwpack.Grid{
		lt.GradientGrid(20, 12, 0),
		lt.GradientGrid(20, 12, 50),
		lt.GradientGrid(20, 12, 100),
	}
	inputFile, err := os.Create(inputPath)
	require.NoError(t, err)
	require.NoError(t, raster.Encode(inputFile, planes))
	require.NoError(t, inputFile.Close())

	require.NoError(t, runApp("compress", "--variant", "color-2d-diff", inputPath, packedPath))
	require.NoError(t, runApp("inspect", "--variant", "color-2d-diff", packedPath))
	require.NoError(t, runApp("decompress", "--variant", "color-2d-diff", packedPath, outputPath))

	outputFile, err := os.Open(outputPath)
	require.NoError(t, err)
	defer outputFile.Close()

	decoded, err := raster.Decode(outputFile, 3)
	require.NoError(t, err)
	lt.RequirePlanesEqual(t, planes, decoded)
}

func TestApp__WrongArgumentCount(t *testing.T) {
	err := runApp("compress", "--variant", "text", "only-one-path")
	assert.Error(t, err)
}
