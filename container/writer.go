package container

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/dargueta/lzwpack"
	"github.com/noxer/bytewriter"
)

// writeFields writes each value in big-endian order.
func writeFields(writer io.Writer, fields ...any) error {
	for _, field := range fields {
		err := binary.Write(writer, binary.BigEndian, field)
		if err != nil {
			return err
		}
	}
	return nil
}

func (layout Layout) checkRecordForWrite(index int, record ChannelRecord) error {
	err := checkCodeWidth(record.CodeWidth)
	if err == nil {
		err = checkPadCount(record.PadCount)
	}
	if err != nil {
		return lzwpack.ErrInvalidArgument.Wrap(
			fmt.Errorf("channel %d: %w", index, err),
		)
	}

	if uint64(len(record.Payload)) > math.MaxUint32 {
		return lzwpack.ErrInvalidArgument.WithMessage(
			fmt.Sprintf("channel %d: payload of %d bytes is too large", index, len(record.Payload)),
		)
	}
	if !layout.HasOffset && record.Offset != 0 {
		return lzwpack.ErrInvalidArgument.WithMessage(
			fmt.Sprintf("channel %d: layout %q can't store an offset", index, layout.Name),
		)
	}
	return nil
}

// ImageSize returns the exact number of bytes [Layout.WriteImage] produces for
// `img`.
func (layout Layout) ImageSize(img Image) int {
	size := imageHeaderSize
	for _, record := range img.Channels {
		size += layout.recordHeaderSize() + len(record.Payload)
	}
	return size
}

// WriteImage serializes an image into this grid layout.
func (layout Layout) WriteImage(img Image) ([]byte, error) {
	if !layout.Grid {
		return nil, lzwpack.ErrNotSupported.WithMessage(
			fmt.Sprintf("layout %q has no image header", layout.Name),
		)
	}
	if len(img.Channels) != layout.Channels {
		return nil, lzwpack.ErrInvalidArgument.WithMessage(
			fmt.Sprintf(
				"layout %q needs %d channels, got %d",
				layout.Name,
				layout.Channels,
				len(img.Channels),
			),
		)
	}

	for i, record := range img.Channels {
		err := layout.checkRecordForWrite(i, record)
		if err != nil {
			return nil, err
		}
	}

	outputSlice := make([]byte, layout.ImageSize(img))
	writer := bytewriter.New(outputSlice)

	err := writeFields(writer, img.Width, img.Height)
	if err != nil {
		return nil, fmt.Errorf("failed to write image header: %w", err)
	}

	for i, record := range img.Channels {
		fields := []any{record.CodeWidth}
		if layout.HasOffset {
			fields = append(fields, record.Offset)
		}
		fields = append(fields, record.PadCount, uint32(len(record.Payload)))

		err = writeFields(writer, fields...)
		if err == nil {
			_, err = writer.Write(record.Payload)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to write channel %d: %w", i, err)
		}
	}

	return outputSlice, nil
}

// WriteStream serializes a flat stream. The payload must start with the in-band
// pad count written by the bit packer.
func WriteStream(stream Stream) ([]byte, error) {
	err := checkCodeWidth(stream.CodeWidth)
	if err == nil {
		err = checkStreamPayload(stream.Payload)
	}
	if err != nil {
		return nil, lzwpack.ErrInvalidArgument.Wrap(err)
	}

	outputSlice := make([]byte, streamHeaderSize+len(stream.Payload))
	writer := bytewriter.New(outputSlice)

	err = writeFields(writer, stream.CodeWidth)
	if err == nil {
		_, err = writer.Write(stream.Payload)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to write stream: %w", err)
	}
	return outputSlice, nil
}

func checkStreamPayload(payload []byte) error {
	if len(payload) == 0 {
		return lzwpack.ErrMalformedHeader.WithMessage("stream payload has no pad count")
	}
	return checkPadCount(payload[0])
}
