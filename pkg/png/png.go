// Package png models a PNG file as a signature followed by an ordered list of chunks.
package png

import (
	"bytes"

	"github.com/ssargent/pngstash/pkg/codec"
)

// SignatureSize is the length of the PNG file signature
const SignatureSize = 8

// Signature is the fixed 8-byte header of every PNG file
var Signature = [SignatureSize]byte{137, 80, 78, 71, 13, 10, 26, 10}

// Png is an in-memory PNG container. It is not safe for concurrent use.
type Png struct {
	chunks []codec.Chunk
}

// FromChunks builds a container from chunks in the given order
func FromChunks(chunks []codec.Chunk) *Png {
	return &Png{chunks: append([]codec.Chunk(nil), chunks...)}
}

// Parse decodes a complete PNG file. The first malformed chunk aborts the parse.
func Parse(data []byte) (*Png, error) {
	if len(data) < SignatureSize || !bytes.Equal(data[:SignatureSize], Signature[:]) {
		return nil, ErrBadSignature
	}

	p := &Png{}
	scanner := newChunkScanner(data[SignatureSize:], SignatureSize)
	for scanner.Next() {
		p.chunks = append(p.chunks, scanner.Chunk())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return p, nil
}

// Header returns the file signature
func (p *Png) Header() [SignatureSize]byte {
	return Signature
}

// Chunks returns the chunks in file order
func (p *Png) Chunks() []codec.Chunk {
	return append([]codec.Chunk(nil), p.chunks...)
}

// AppendChunk adds a chunk at the end. Duplicate or reserved types are accepted.
func (p *Png) AppendChunk(chunk codec.Chunk) {
	p.chunks = append(p.chunks, chunk)
}

// ChunkByType returns the first chunk with the given type text.
// An invalid type text is an error; a missing chunk is reported by found == false.
func (p *Png) ChunkByType(typeText string) (chunk codec.Chunk, found bool, err error) {
	i, err := p.indexOf(typeText)
	if err != nil || i < 0 {
		return codec.Chunk{}, false, err
	}
	return p.chunks[i], true, nil
}

// RemoveChunk removes and returns the first chunk with the given type text
func (p *Png) RemoveChunk(typeText string) (codec.Chunk, error) {
	i, err := p.indexOf(typeText)
	if err != nil {
		return codec.Chunk{}, err
	}
	if i < 0 {
		return codec.Chunk{}, &NotFoundError{Type: typeText}
	}

	removed := p.chunks[i]
	p.chunks = append(p.chunks[:i], p.chunks[i+1:]...)
	return removed, nil
}

// Bytes encodes the signature followed by every chunk in order
func (p *Png) Bytes() []byte {
	size := SignatureSize
	for _, c := range p.chunks {
		size += c.Size()
	}

	buf := make([]byte, 0, size)
	buf = append(buf, Signature[:]...)
	for _, c := range p.chunks {
		buf = append(buf, c.Bytes()...)
	}
	return buf
}

// indexOf returns the index of the first chunk with the given type, or -1
func (p *Png) indexOf(typeText string) (int, error) {
	chunkType, err := codec.ParseChunkType(typeText)
	if err != nil {
		return -1, err
	}

	for i, c := range p.chunks {
		if c.Type() == chunkType {
			return i, nil
		}
	}
	return -1, nil
}
