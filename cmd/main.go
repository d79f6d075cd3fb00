package main

import (
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, nil))

func main() {
	err := newApp().Run(os.Args)
	if err != nil {
		logger.Error("fatal error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func newApp() *cli.App {
	variantFlag := &cli.StringFlag{
		Name:     "variant",
		Aliases:  []string{"v"},
		Usage:    "compressor variant: text, gray, gray-diff, color, color-2d-diff, or level 1-5",
		EnvVars:  []string{"LZWPACK_VARIANT"},
		Required: true,
	}
	zstdFlag := &cli.BoolFlag{
		Name:  "zstd",
		Usage: "the container is wrapped in a zstd archive stage",
	}

	return &cli.App{
		Name:  "lzwpack",
		Usage: "LZW compression for text and raster images",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Usage:   "log per-channel statistics",
				EnvVars: []string{"LZWPACK_VERBOSE"},
			},
		},
		Before: configureLogging,
		Commands: []*cli.Command{
			{
				Name:      "compress",
				Usage:     "Compress a text file or image",
				Action:    compressFile,
				ArgsUsage: "INPUT_FILE  OUTPUT_FILE",
				Flags: []cli.Flag{
					variantFlag,
					zstdFlag,
					&cli.UintFlag{
						Name:    "offset",
						Usage:   "residual offset for the gray-diff variant",
						EnvVars: []string{"LZWPACK_OFFSET"},
						Value:   128,
					},
					&cli.StringFlag{
						Name:  "report",
						Usage: "append the result to this CSV report",
					},
				},
			},
			{
				Name:      "decompress",
				Usage:     "Decompress a container to text or a PNG image",
				Action:    decompressFile,
				ArgsUsage: "INPUT_FILE  OUTPUT_FILE",
				Flags:     []cli.Flag{variantFlag, zstdFlag},
			},
			{
				Name:      "inspect",
				Usage:     "Show the header fields of a container",
				Action:    inspectFile,
				ArgsUsage: "INPUT_FILE",
				Flags:     []cli.Flag{variantFlag, zstdFlag},
			},
		},
	}
}

func configureLogging(context *cli.Context) error {
	level := slog.LevelInfo
	if context.Bool("verbose") {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	return nil
}
