package png

import "github.com/ssargent/pngstash/pkg/codec"

// chunkScanner walks back-to-back chunks in a buffer, tracking the consumed offset
type chunkScanner struct {
	buf    []byte
	base   int64 // offset of buf within the file
	offset int
	index  int
	chunk  codec.Chunk
	err    error
}

func newChunkScanner(buf []byte, base int64) *chunkScanner {
	return &chunkScanner{buf: buf, base: base}
}

// Next parses the next chunk. It returns false at the end of input or on error.
func (s *chunkScanner) Next() bool {
	if s.err != nil || s.offset >= len(s.buf) {
		return false
	}

	chunk, err := codec.ParseChunk(s.buf[s.offset:])
	if err != nil {
		s.err = &ParseError{Index: s.index, Offset: s.Offset(), Err: err}
		return false
	}

	s.chunk = chunk
	s.offset += chunk.Size()
	s.index++
	return true
}

// Chunk returns the chunk parsed by the last successful Next
func (s *chunkScanner) Chunk() codec.Chunk {
	return s.chunk
}

// Offset returns the file offset of the next unread byte
func (s *chunkScanner) Offset() int64 {
	return s.base + int64(s.offset)
}

// Err returns the first parse error, if any
func (s *chunkScanner) Err() error {
	return s.err
}
