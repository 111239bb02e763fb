package payload

import (
	"bytes"
	"encoding/binary"

	"github.com/klauspost/compress/zlib"
	"github.com/pkg/errors"
)

// ContainerHeaderSize is the length of the big-endian uncompressed size that
// prefixes every compressed payload.
const ContainerHeaderSize = 4

// Encode returns data unchanged, or its compressed container when compress
// is set.
func Encode(data []byte, compress bool) ([]byte, error) {
	if !compress {
		return data, nil
	}
	return Compress(data)
}

// Compress builds the container
//
//	[uint32 big-endian len(data)][zlib stream, best compression]
//
// which is the layout qUncompress expects. The framing matches qCompress
// exactly, but the deflate bytes inside the stream are not byte-identical to
// what C zlib emits at level 9; they decode to the same data. An empty input
// produces only the four zero length bytes.
func Compress(data []byte) ([]byte, error) {
	if uint64(len(data)) > uint64(^uint32(0)) {
		return nil, errors.Errorf("payload of %d bytes exceeds container limit", len(data))
	}

	var buf bytes.Buffer
	var header [ContainerHeaderSize]byte
	binary.BigEndian.PutUint32(header[:], uint32(len(data)))
	buf.Write(header[:])

	if len(data) == 0 {
		return buf.Bytes(), nil
	}

	zw, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
	if err != nil {
		return nil, errors.Wrap(err, "create zlib writer")
	}
	if _, err := zw.Write(data); err != nil {
		return nil, errors.Wrap(err, "compress payload")
	}
	if err := zw.Close(); err != nil {
		return nil, errors.Wrap(err, "finish zlib stream")
	}
	return buf.Bytes(), nil
}
