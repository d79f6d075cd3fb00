// Package compression provides the optional archive stage applied on top of a
// finished LZW container.
//
// The dictionary coder has no entropy stage: every code in a channel takes the
// same number of bits, so frequent codes cost as much as rare ones. Wrapping the
// container in a zstd frame can recover some of that.
//
// The archive stage sits outside the container format. A container read back
// from [DecompressArchive] is byte-for-byte the one that went in, and the codec
// never sees the zstd frame.
package compression
