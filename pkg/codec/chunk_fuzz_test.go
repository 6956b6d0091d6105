//go:build fuzz
// +build fuzz

package codec

import (
	"bytes"
	"errors"
	"testing"
)

// FuzzChunk_RoundTrip tests encode/decode round-trip with random inputs
func FuzzChunk_RoundTrip(f *testing.F) {
	f.Add("ruSt", []byte(""))
	f.Add("RuSt", []byte("This is where your secret message will be!"))
	f.Add("IDAT", []byte{0x00, 0x01, 0x02})

	f.Fuzz(func(t *testing.T, typ string, data []byte) {
		if len(data) > 100000 {
			t.Skip("Input too large for fuzz test")
		}

		chunkType, err := ParseChunkType(typ)
		if err != nil {
			t.Skip("Not a chunk type")
		}

		original := NewChunk(chunkType, data)
		decoded, err := ParseChunk(original.Bytes())
		if err != nil {
			t.Fatalf("ParseChunk failed for type=%q len=%d: %v", typ, len(data), err)
		}

		if decoded.Type() != original.Type() || decoded.CRC() != original.CRC() {
			t.Errorf("Header mismatch: got %v/%d, want %v/%d",
				decoded.Type(), decoded.CRC(), original.Type(), original.CRC())
		}
		if !bytes.Equal(decoded.Data(), data) {
			t.Errorf("Data mismatch: got %q, want %q", decoded.Data(), data)
		}
	})
}

// FuzzChunk_CorruptionDetection tests that corruption of type or data is always detected
func FuzzChunk_CorruptionDetection(f *testing.F) {
	f.Add([]byte("value"), uint(0), uint8(1))
	f.Add([]byte("john@example.com"), uint(5), uint8(0x20))

	f.Fuzz(func(t *testing.T, data []byte, pos uint, mask uint8) {
		if len(data) > 10000 || mask == 0 {
			t.Skip("Uninteresting input")
		}

		chunkType, _ := ParseChunkType("ruSt")
		encoded := NewChunk(chunkType, data).Bytes()

		covered := len(encoded) - LengthSize - CRCSize
		i := LengthSize + int(pos%uint(covered))

		corrupted := append([]byte(nil), encoded...)
		corrupted[i] ^= mask

		_, err := ParseChunk(corrupted)
		if err == nil {
			t.Fatalf("Corruption not detected at %d with mask %#x", i, mask)
		}
		if !errors.Is(err, ErrChecksumMismatch) && !errors.Is(err, ErrBadTagBytes) {
			t.Errorf("Unexpected error kind: %v", err)
		}
	})
}

// FuzzParseChunk_MalformedData tests that arbitrary input never panics
func FuzzParseChunk_MalformedData(f *testing.F) {
	f.Add([]byte{})
	f.Add([]byte{0x01})
	f.Add([]byte{0x00, 0x00, 0x00, 0x00})
	f.Add(make([]byte, 11))
	f.Add(make([]byte, 12))

	f.Fuzz(func(t *testing.T, data []byte) {
		chunk, err := ParseChunk(data)
		if err == nil && chunk.Size() > len(data) {
			t.Errorf("Consumed %d bytes from %d byte input", chunk.Size(), len(data))
		}
	})
}
