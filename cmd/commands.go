package main

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"github.com/dargueta/lzwpack"
	"github.com/dargueta/lzwpack/codec"
	"github.com/dargueta/lzwpack/raster"
	"github.com/dargueta/lzwpack/report"
	"github.com/dargueta/lzwpack/utilities/compression"
	"github.com/urfave/cli/v2"
)

func requireArgs(context *cli.Context, count int) error {
	if context.Args().Len() != count {
		return cli.Exit(
			fmt.Sprintf(
				"%s needs %d arguments: %s",
				context.Command.Name,
				count,
				context.Command.ArgsUsage,
			),
			2,
		)
	}
	return nil
}

func newCodec(context *cli.Context) (*codec.Codec, error) {
	variant, err := lzwpack.ParseVariant(context.String("variant"))
	if err != nil {
		return nil, err
	}

	options := []codec.Option{codec.WithLogger(logger)}
	if context.IsSet("offset") {
		offset := context.Uint("offset")
		if offset > math.MaxUint16 {
			return nil, lzwpack.ErrInvalidArgument.WithMessage(
				fmt.Sprintf("offset %d doesn't fit in 16 bits", offset),
			)
		}
		options = append(options, codec.WithOffset(uint16(offset)))
	}
	return codec.New(variant, options...)
}

// readContainer reads a container file, removing the archive stage if there is
// one.
func readContainer(context *cli.Context, path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !context.Bool("zstd") {
		return data, nil
	}
	return compression.DecompressArchiveToBytes(bytes.NewReader(data))
}

func compressFile(context *cli.Context) error {
	err := requireArgs(context, 2)
	if err != nil {
		return err
	}
	inputPath := context.Args().Get(0)
	outputPath := context.Args().Get(1)

	cdc, err := newCodec(context)
	if err != nil {
		return err
	}

	var compressed []byte
	var width, height uint32
	var originalSize int64

	if cdc.Variant().IsRaster() {
		inputFile, err := os.Open(inputPath)
		if err != nil {
			return err
		}
		defer inputFile.Close()

		planes, err := raster.Decode(inputFile, cdc.Variant().Channels())
		if err != nil {
			return err
		}
		compressed, err = cdc.CompressPlanes(planes)
		if err != nil {
			return err
		}

		width = uint32(planes[0].Width)
		height = uint32(planes[0].Height)
		originalSize = int64(planes[0].Len()) * int64(len(planes))
	} else {
		input, err := os.ReadFile(inputPath)
		if err != nil {
			return err
		}
		compressed, err = cdc.CompressBytes(input)
		if err != nil {
			return err
		}
		originalSize = int64(len(input))
	}

	if context.Bool("zstd") {
		compressed, err = compression.CompressArchiveToBytes(compressed)
		if err != nil {
			return err
		}
	}

	err = os.WriteFile(outputPath, compressed, 0o644)
	if err != nil {
		return err
	}

	entry := report.NewEntry(
		inputPath, cdc.Variant(), width, height, originalSize, int64(len(compressed)),
	)
	fmt.Println(entry.String())

	reportPath := context.String("report")
	if reportPath == "" {
		return nil
	}
	return appendToReport(reportPath, entry)
}

func appendToReport(path string, entry report.Entry) error {
	reportFile, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer reportFile.Close()

	stat, err := reportFile.Stat()
	if err != nil {
		return err
	}

	entries := []report.Entry{entry}
	if stat.Size() == 0 {
		return report.Write(reportFile, entries)
	}
	return report.Append(reportFile, entries)
}

func decompressFile(context *cli.Context) error {
	err := requireArgs(context, 2)
	if err != nil {
		return err
	}
	inputPath := context.Args().Get(0)
	outputPath := context.Args().Get(1)

	cdc, err := newCodec(context)
	if err != nil {
		return err
	}

	data, err := readContainer(context, inputPath)
	if err != nil {
		return err
	}

	if !cdc.Variant().IsRaster() {
		output, err := cdc.DecompressBytes(data)
		if err != nil {
			return err
		}
		return os.WriteFile(outputPath, output, 0o644)
	}

	planes, err := cdc.DecompressPlanes(data)
	if err != nil {
		return err
	}

	outputFile, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer outputFile.Close()

	err = raster.Encode(outputFile, planes)
	if err != nil {
		return err
	}
	return outputFile.Close()
}

func inspectFile(context *cli.Context) error {
	err := requireArgs(context, 1)
	if err != nil {
		return err
	}

	cdc, err := newCodec(context)
	if err != nil {
		return err
	}

	data, err := readContainer(context, context.Args().Get(0))
	if err != nil {
		return err
	}

	summary, err := cdc.Inspect(data)
	if err != nil {
		return err
	}

	fmt.Printf("variant:   %s\n", summary.Variant)
	if summary.Variant.IsRaster() {
		fmt.Printf("size:      %dx%d\n", summary.Width, summary.Height)
		fmt.Printf("original:  %d bytes\n", summary.OriginalSize())
	}
	fmt.Printf("container: %d bytes\n", summary.TotalBytes)
	for _, channel := range summary.Channels {
		fmt.Printf(
			"  %-6s code width %2d, pad %d, payload %d bytes",
			channel.Name,
			channel.CodeWidth,
			channel.PadCount,
			channel.PayloadBytes,
		)
		if summary.Variant == lzwpack.VariantGrayscaleDiff {
			fmt.Printf(", offset %d", channel.Offset)
		}
		fmt.Println()
	}
	return nil
}
