// Package codec provides PNG chunk serialization and deserialization for pngstash.
//
// The codec package implements the chunk, the atomic unit of the PNG container:
// a typed, length-prefixed block of bytes with an integrity check. The container
// layer in package png is built on top of it.
//
// # Chunk Format
//
// Chunks are serialized in a binary format with the following structure:
//
//	[Length(4)][Type(4)][Data(Length)][CRC(4)]
//
// Fields:
//   - Length: 32-bit unsigned integer, number of data bytes (big-endian)
//   - Type: 4 ASCII letters identifying the chunk
//   - Data: Length bytes of payload
//   - CRC: CRC-32/ISO-HDLC over Type and Data (big-endian)
//
// The total chunk size is: 12 bytes (framing) + Length
//
// # Chunk Types
//
// Each type byte must be an ASCII letter. Bit 5 (0x20, lowercase) of each byte is a
// property flag:
//   - byte 0 uppercase: critical
//   - byte 1 uppercase: public
//   - byte 2 uppercase: reserved bit valid, the only condition for IsValid
//   - byte 3 lowercase: safe to copy
//
// Construction rejects non-letters. A type with the reserved bit set is still
// constructible and storable; callers decide whether to enforce IsValid.
//
// # Usage
//
//	chunkType, err := codec.ParseChunkType("ruSt")
//	if err != nil {
//	    return err
//	}
//	chunk := codec.NewChunk(chunkType, []byte("hello"))
//
//	decoded, err := codec.ParseChunk(chunk.Bytes())
//	if err != nil {
//	    return err // truncated, bad type or CRC mismatch
//	}
//
// # Error Handling
//
// Failures are *TypeError or *ChunkError values that carry the offending context
// (required vs available bytes, computed vs stored CRC). Compare against the
// exported sentinels with errors.Is:
//
//	if errors.Is(err, codec.ErrChecksumMismatch) {
//	    // data corruption
//	}
//
// # Immutability
//
// Chunk values own their data and expose it only by copy. Edits happen by building a
// new chunk, never by mutating one in place.
package codec
