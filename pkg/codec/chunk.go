package codec

import (
	"encoding/binary"
	"hash/crc32"
	"unicode/utf8"
)

const (
	// LengthSize is the size of the big-endian length field
	LengthSize = 4
	// TypeSize is the size of the chunk type field
	TypeSize = 4
	// CRCSize is the size of the big-endian CRC field
	CRCSize = 4
	// Overhead is the number of framing bytes around the chunk data
	Overhead = LengthSize + TypeSize + CRCSize

	// NotTextPlaceholder is shown in place of data that is not valid UTF-8
	NotTextPlaceholder = "Data is not a string"
)

// Chunk is an immutable, self-checksumming PNG chunk
type Chunk struct {
	length    uint32
	chunkType ChunkType
	data      []byte
	crc       uint32
}

// NewChunk creates a chunk from a type and data, computing length and CRC
func NewChunk(chunkType ChunkType, data []byte) Chunk {
	if uint64(len(data)) > uint64(^uint32(0)) {
		panic("chunk data too large")
	}
	owned := append([]byte(nil), data...)
	return Chunk{
		length:    uint32(len(owned)),
		chunkType: chunkType,
		data:      owned,
		crc:       checksum(chunkType, owned),
	}
}

// ParseChunk decodes one chunk from the start of b.
// Format: [Length(4)][Type(4)][Data(Length)][CRC(4)], integers big-endian.
// Bytes after the chunk are ignored; Size reports how many were consumed.
func ParseChunk(b []byte) (Chunk, error) {
	if len(b) < LengthSize {
		return Chunk{}, &ChunkError{Kind: KindTruncatedLength, Expected: LengthSize, Actual: uint64(len(b))}
	}
	length := binary.BigEndian.Uint32(b[:LengthSize])

	rest := b[LengthSize:]
	need := uint64(TypeSize) + uint64(length) + CRCSize
	if uint64(len(rest)) < need {
		return Chunk{}, &ChunkError{Kind: KindTruncatedBody, Expected: need, Actual: uint64(len(rest))}
	}

	var raw [4]byte
	copy(raw[:], rest[:TypeSize])
	chunkType, err := ChunkTypeFromBytes(raw)
	if err != nil {
		return Chunk{}, &ChunkError{Kind: KindBadTagBytes, Err: err}
	}

	dataEnd := TypeSize + int(length)
	data := append([]byte(nil), rest[TypeSize:dataEnd]...)
	stored := binary.BigEndian.Uint32(rest[dataEnd : dataEnd+CRCSize])

	if computed := checksum(chunkType, data); computed != stored {
		return Chunk{}, &ChunkError{Kind: KindChecksumMismatch, Expected: uint64(computed), Actual: uint64(stored)}
	}

	return Chunk{
		length:    length,
		chunkType: chunkType,
		data:      data,
		crc:       stored,
	}, nil
}

// Length returns the number of data bytes
func (c Chunk) Length() uint32 {
	return c.length
}

// Type returns the chunk type
func (c Chunk) Type() ChunkType {
	return c.chunkType
}

// Data returns a copy of the chunk data
func (c Chunk) Data() []byte {
	return append([]byte(nil), c.data...)
}

// CRC returns the CRC-32 over type and data
func (c Chunk) CRC() uint32 {
	return c.crc
}

// Size returns the encoded size of the chunk
func (c Chunk) Size() int {
	return Overhead + len(c.data)
}

// DataString returns the data as text
func (c Chunk) DataString() (string, error) {
	if !utf8.Valid(c.data) {
		return "", &ChunkError{Kind: KindNonUTF8Payload}
	}
	return string(c.data), nil
}

// Bytes encodes the chunk; the result parses back to an identical chunk
func (c Chunk) Bytes() []byte {
	buf := make([]byte, c.Size())
	binary.BigEndian.PutUint32(buf[0:], c.length)
	copy(buf[LengthSize:], c.chunkType.name[:])
	copy(buf[LengthSize+TypeSize:], c.data)
	binary.BigEndian.PutUint32(buf[LengthSize+TypeSize+len(c.data):], c.crc)
	return buf
}

// String renders the data for display, falling back to a placeholder for binary data
func (c Chunk) String() string {
	if s, err := c.DataString(); err == nil {
		return s
	}
	return NotTextPlaceholder
}

// checksum computes CRC-32/ISO-HDLC over type || data
func checksum(chunkType ChunkType, data []byte) uint32 {
	crc := crc32.NewIEEE()
	crc.Write(chunkType.name[:])
	crc.Write(data)
	return crc.Sum32()
}
