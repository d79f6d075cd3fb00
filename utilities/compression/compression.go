package compression

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/zstd"
)

// countingWriter tracks the number of bytes written through it.
type countingWriter struct {
	writer  io.Writer
	written int64
}

func (w *countingWriter) Write(data []byte) (int, error) {
	n, err := w.writer.Write(data)
	w.written += int64(n)
	return n, err
}

// CompressArchive wraps an LZW container in a zstd frame.
//
// The returned int64 gives the number of bytes written to the output stream. If
// an error occurred, the value is undefined and should not be used.
func CompressArchive(input io.Reader, output io.Writer) (int64, error) {
	counter := &countingWriter{writer: output}

	// Containers are small enough that the slower, stronger level doesn't
	// matter.
	encoder, err := zstd.NewWriter(
		counter,
		zstd.WithEncoderConcurrency(1),
		zstd.WithEncoderLevel(zstd.SpeedBestCompression),
	)
	if err != nil {
		return 0, err
	}

	_, err = encoder.ReadFrom(input)
	if err != nil {
		encoder.Close()
		return 0, err
	}

	err = encoder.Close()
	if err != nil {
		return 0, err
	}
	return counter.written, nil
}

// DecompressArchive takes a container wrapped by [CompressArchive] and writes
// the bare container to `output`.
//
// The returned int64 gives the number of bytes written to the output (i.e. the
// size of the container). If an error occurred, the value is undefined and
// should not be used.
func DecompressArchive(input io.Reader, output io.Writer) (int64, error) {
	decoder, err := zstd.NewReader(input, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return 0, err
	}
	defer decoder.Close()
	return decoder.WriteTo(output)
}

// CompressArchiveToBytes is a convenience function wrapping [CompressArchive]
// for in-memory containers.
func CompressArchiveToBytes(container []byte) ([]byte, error) {
	var buffer bytes.Buffer
	_, err := CompressArchive(bytes.NewReader(container), &buffer)
	if err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// DecompressArchiveToBytes is a convenience function wrapping
// [DecompressArchive]. It returns the container in a new byte slice instead of
// writing to an [io.Writer].
func DecompressArchiveToBytes(input io.Reader) ([]byte, error) {
	var buffer bytes.Buffer
	_, err := DecompressArchive(input, &buffer)
	if err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
