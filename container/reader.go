package container

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/dargueta/lzwpack"
	"github.com/xaionaro-go/bytesextra"
)

// fieldReader walks a container buffer. Every read is bounds-checked up front,
// so running off the end of the data is reported as a malformed header instead
// of a bare EOF.
type fieldReader struct {
	stream io.ReadSeeker
	size   int64
}

func newFieldReader(data []byte) *fieldReader {
	return &fieldReader{
		stream: bytesextra.NewReadWriteSeeker(data),
		size:   int64(len(data)),
	}
}

// remaining gives the number of unread bytes.
func (reader *fieldReader) remaining() (int64, error) {
	position, err := reader.stream.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, err
	}
	return reader.size - position, nil
}

func (reader *fieldReader) require(what string, needed int64) error {
	remaining, err := reader.remaining()
	if err != nil {
		return lzwpack.ErrMalformedHeader.Wrap(err)
	}
	if needed > remaining {
		return lzwpack.ErrMalformedHeader.WithMessage(
			fmt.Sprintf(
				"%s needs %d bytes but only %d remain",
				what,
				needed,
				remaining,
			),
		)
	}
	return nil
}

// readFields reads each field in big-endian order. `size` is the combined size
// of the fields, in bytes.
func (reader *fieldReader) readFields(what string, size int64, fields ...any) error {
	err := reader.require(what, size)
	if err != nil {
		return err
	}

	for _, field := range fields {
		err = binary.Read(reader.stream, binary.BigEndian, field)
		if err != nil {
			return lzwpack.ErrMalformedHeader.Wrap(fmt.Errorf("reading %s: %w", what, err))
		}
	}
	return nil
}

func (reader *fieldReader) readPayload(what string, length int64) ([]byte, error) {
	err := reader.require(what, length)
	if err != nil {
		return nil, err
	}

	payload := make([]byte, length)
	_, err = io.ReadFull(reader.stream, payload)
	if err != nil {
		return nil, lzwpack.ErrMalformedHeader.Wrap(fmt.Errorf("reading %s: %w", what, err))
	}
	return payload, nil
}

func (reader *fieldReader) requireEnd() error {
	remaining, err := reader.remaining()
	if err != nil {
		return lzwpack.ErrMalformedHeader.Wrap(err)
	}
	if remaining != 0 {
		return lzwpack.ErrMalformedHeader.WithMessage(
			fmt.Sprintf("%d unexpected trailing bytes", remaining),
		)
	}
	return nil
}

////////////////////////////////////////////////////////////////////////////////

// ReadImage parses data written by [Layout.WriteImage] for the same layout.
// Payloads are copied out of `data`.
func (layout Layout) ReadImage(data []byte) (Image, error) {
	if !layout.Grid {
		return Image{}, lzwpack.ErrNotSupported.WithMessage(
			fmt.Sprintf("layout %q has no image header", layout.Name),
		)
	}

	reader := newFieldReader(data)
	img := Image{Channels: make([]ChannelRecord, layout.Channels)}

	err := reader.readFields("image header", imageHeaderSize, &img.Width, &img.Height)
	if err != nil {
		return Image{}, err
	}

	for i := range img.Channels {
		record := &img.Channels[i]
		what := fmt.Sprintf("channel %d header", i)

		var payloadLength uint32
		fields := []any{&record.CodeWidth}
		if layout.HasOffset {
			fields = append(fields, &record.Offset)
		}
		fields = append(fields, &record.PadCount, &payloadLength)

		err = reader.readFields(what, int64(layout.recordHeaderSize()), fields...)
		if err != nil {
			return Image{}, err
		}

		err = checkCodeWidth(record.CodeWidth)
		if err == nil {
			err = checkPadCount(record.PadCount)
		}
		if err != nil {
			return Image{}, fmt.Errorf("%s: %w", what, err)
		}

		record.Payload, err = reader.readPayload(
			fmt.Sprintf("channel %d payload", i), int64(payloadLength),
		)
		if err != nil {
			return Image{}, err
		}
	}

	err = reader.requireEnd()
	if err != nil {
		return Image{}, err
	}
	return img, nil
}

// ReadStream parses data written by [WriteStream]. The payload is copied out of
// `data`.
func ReadStream(data []byte) (Stream, error) {
	reader := newFieldReader(data)
	var stream Stream

	err := reader.readFields("stream header", streamHeaderSize, &stream.CodeWidth)
	if err != nil {
		return Stream{}, err
	}

	err = checkCodeWidth(stream.CodeWidth)
	if err != nil {
		return Stream{}, err
	}

	remaining, err := reader.remaining()
	if err != nil {
		return Stream{}, lzwpack.ErrMalformedHeader.Wrap(err)
	}

	stream.Payload, err = reader.readPayload("stream payload", remaining)
	if err != nil {
		return Stream{}, err
	}

	err = checkStreamPayload(stream.Payload)
	if err != nil {
		return Stream{}, err
	}
	return stream, nil
}
