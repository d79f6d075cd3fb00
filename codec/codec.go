// Package codec ties the dictionary coder, bit packer, difference transforms
// and container layouts together into the five compressor variants.
//
// There's a single code path for all of them. A variant only selects two
// strategies: the [transform.Transform] applied to each channel before coding,
// and the [container.Layout] the packed channels are framed in (which also
// decides whether pad counts travel in-band or in the header).
//
// Every call works on complete in-memory buffers and either returns a complete,
// verified result or an error; no partial output is produced.
package codec

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/dargueta/lzwpack"
	"github.com/dargueta/lzwpack/bitpack"
	"github.com/dargueta/lzwpack/container"
	"github.com/dargueta/lzwpack/dictionary"
	"github.com/dargueta/lzwpack/transform"
)

// Codec compresses and decompresses data for one variant. It holds only
// configuration, so a single Codec can be shared freely.
type Codec struct {
	variant lzwpack.Variant
	layout  container.Layout
	offset  uint16
	logger  *slog.Logger
}

type Option func(*Codec)

// WithOffset sets the residual offset used by the grayscale row-difference
// variant when compressing. Other variants ignore it. Decompression always uses
// the offset stored in the container.
func WithOffset(offset uint16) Option {
	return func(c *Codec) {
		c.offset = offset
	}
}

// WithLogger sets the logger per-channel statistics are written to, at debug
// level. By default nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Codec) {
		c.logger = logger
	}
}

// New creates a Codec for the given variant.
func New(variant lzwpack.Variant, options ...Option) (*Codec, error) {
	layout, err := container.LayoutFor(variant)
	if err != nil {
		return nil, err
	}

	c := &Codec{
		variant: variant,
		layout:  layout,
		offset:  transform.DefaultOffset,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, option := range options {
		option(c)
	}
	return c, nil
}

func (c *Codec) Variant() lzwpack.Variant {
	return c.variant
}

// Offset returns the row-difference offset used when compressing.
func (c *Codec) Offset() uint16 {
	return c.offset
}

// Transform returns the transform applied to each channel before compression.
func (c *Codec) Transform() transform.Transform {
	return transform.ForVariant(c.variant, c.offset)
}

////////////////////////////////////////////////////////////////////////////////
// Channel coding shared by every variant

type packedChannel struct {
	codeWidth uint
	padCount  uint8
	payload   []byte
}

func (c *Codec) encodeChannel(name string, symbols []byte) (packedChannel, error) {
	result, err := dictionary.Encode(symbols)
	if err != nil {
		return packedChannel{}, fmt.Errorf("channel %s: %w", name, err)
	}

	width := result.CodeWidth()
	payload, padCount, err := bitpack.Pack(result.Codes, width, c.layout.InBandPadding())
	if err != nil {
		return packedChannel{}, fmt.Errorf("channel %s: %w", name, err)
	}

	c.logger.Debug(
		"encoded channel",
		slog.String("variant", c.variant.String()),
		slog.String("channel", name),
		slog.Int("symbols", len(symbols)),
		slog.Int("codes", len(result.Codes)),
		slog.Int("dictionary_size", result.DictionarySize),
		slog.Uint64("code_width", uint64(width)),
		slog.Int("payload_bytes", len(payload)),
		slog.Int("pad_bits", int(padCount)),
	)

	return packedChannel{codeWidth: width, padCount: padCount, payload: payload}, nil
}

// decodeChannel unpacks and decodes one channel. Decoding stops as soon as the
// output passes `expectedSymbols`. If it's negative the length of the output
// isn't checked.
func (c *Codec) decodeChannel(
	name string,
	payload []byte,
	codeWidth uint16,
	padCount uint8,
	expectedSymbols int,
) ([]byte, error) {
	var codes []lzwpack.Code
	var err error
	if c.layout.InBandPadding() {
		codes, err = bitpack.UnpackInBand(payload, uint(codeWidth))
	} else {
		codes, err = bitpack.Unpack(payload, uint(codeWidth), padCount)
	}
	if err != nil {
		return nil, fmt.Errorf("channel %s: %w", name, err)
	}

	symbols, err := dictionary.DecodeLimit(codes, expectedSymbols)
	if err != nil {
		return nil, fmt.Errorf("channel %s: %w", name, err)
	}

	if expectedSymbols >= 0 && len(symbols) != expectedSymbols {
		return nil, lzwpack.ErrLengthMismatch.WithMessage(
			fmt.Sprintf(
				"channel %s: decoded %d symbols, header declares %d",
				name,
				len(symbols),
				expectedSymbols,
			),
		)
	}

	c.logger.Debug(
		"decoded channel",
		slog.String("variant", c.variant.String()),
		slog.String("channel", name),
		slog.Int("codes", len(codes)),
		slog.Int("symbols", len(symbols)),
	)
	return symbols, nil
}

func (c *Codec) requireVariant(raster bool, operation string) error {
	if c.variant.IsRaster() != raster {
		return lzwpack.ErrNotSupported.WithMessage(
			fmt.Sprintf("%s can't be used with variant %s", operation, c.variant),
		)
	}
	return nil
}
