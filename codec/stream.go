package codec

import (
	"github.com/dargueta/lzwpack/container"
)

const streamChannelName = "stream"

// CompressBytes compresses a flat byte stream into the stream layout. Only the
// text variant supports this.
func (c *Codec) CompressBytes(data []byte) ([]byte, error) {
	err := c.requireVariant(false, "CompressBytes")
	if err != nil {
		return nil, err
	}

	packed, err := c.encodeChannel(streamChannelName, data)
	if err != nil {
		return nil, err
	}

	return container.WriteStream(
		container.Stream{CodeWidth: uint16(packed.codeWidth), Payload: packed.payload},
	)
}

// DecompressBytes reverses [Codec.CompressBytes].
func (c *Codec) DecompressBytes(data []byte) ([]byte, error) {
	err := c.requireVariant(false, "DecompressBytes")
	if err != nil {
		return nil, err
	}

	stream, err := container.ReadStream(data)
	if err != nil {
		return nil, err
	}
	return c.decodeChannel(streamChannelName, stream.Payload, stream.CodeWidth, 0, -1)
}
