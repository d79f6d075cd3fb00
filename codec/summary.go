package codec

import (
	"github.com/dargueta/lzwpack"
	"github.com/dargueta/lzwpack/container"
)

// ChannelSummary describes one packed channel without decoding it.
type ChannelSummary struct {
	Name         string
	CodeWidth    uint16
	Offset       uint16
	PadCount     uint8
	PayloadBytes int
}

// Summary describes a compressed container. Width and Height are 0 for the
// stream layout.
type Summary struct {
	Variant    lzwpack.Variant
	Width      uint32
	Height     uint32
	Channels   []ChannelSummary
	TotalBytes int
}

// OriginalSize gives the number of raw symbols the container decompresses to:
// width*height*channels for images. It's unknown for the stream layout, which
// stores no length, and is reported as -1.
func (s Summary) OriginalSize() int64 {
	if !s.Variant.IsRaster() {
		return -1
	}
	return int64(s.Width) * int64(s.Height) * int64(len(s.Channels))
}

// Inspect parses the container headers without decoding any payload.
func (c *Codec) Inspect(data []byte) (Summary, error) {
	summary := Summary{Variant: c.variant, TotalBytes: len(data)}

	if !c.layout.Grid {
		stream, err := container.ReadStream(data)
		if err != nil {
			return Summary{}, err
		}
		summary.Channels = []ChannelSummary{
			{
				Name:         streamChannelName,
				CodeWidth:    stream.CodeWidth,
				PadCount:     stream.Payload[0],
				PayloadBytes: len(stream.Payload),
			},
		}
		return summary, nil
	}

	img, err := c.layout.ReadImage(data)
	if err != nil {
		return Summary{}, err
	}

	names := ChannelNames[c.layout.Channels]
	summary.Width = img.Width
	summary.Height = img.Height
	for i, record := range img.Channels {
		summary.Channels = append(
			summary.Channels,
			ChannelSummary{
				Name:         names[i],
				CodeWidth:    record.CodeWidth,
				Offset:       record.Offset,
				PadCount:     record.PadCount,
				PayloadBytes: len(record.Payload),
			},
		)
	}
	return summary, nil
}
