package codec

// flagBit is the ASCII case bit; set means lowercase
const flagBit = 0x20

// ChunkType is the 4-byte ASCII identifier carried by every chunk.
// The case of each byte encodes one property flag.
type ChunkType struct {
	name [4]byte
}

// ChunkTypeFromBytes validates raw type bytes and returns the chunk type
func ChunkTypeFromBytes(b [4]byte) (ChunkType, error) {
	for _, c := range b {
		if !isASCIILetter(c) {
			return ChunkType{}, &TypeError{Kind: KindInvalidTagBytes, Bytes: append([]byte(nil), b[:]...)}
		}
	}
	return ChunkType{name: b}, nil
}

// ParseChunkType parses type text such as "IHDR" or "ruSt"
func ParseChunkType(s string) (ChunkType, error) {
	if len(s) != 4 {
		return ChunkType{}, &TypeError{Kind: KindInvalidTagLength, Bytes: []byte(s), Length: len(s)}
	}
	var b [4]byte
	copy(b[:], s)
	return ChunkTypeFromBytes(b)
}

// Bytes returns the raw type bytes
func (t ChunkType) Bytes() [4]byte {
	return t.name
}

func (t ChunkType) String() string {
	return string(t.name[:])
}

// IsValid reports whether the reserved bit is clear. The other flags are informational.
func (t ChunkType) IsValid() bool {
	return t.IsReservedBitValid()
}

// IsCritical reports whether a decoder must understand the chunk
func (t ChunkType) IsCritical() bool {
	return t.name[0]&flagBit == 0
}

// IsPublic reports whether the type is part of the PNG standard
func (t ChunkType) IsPublic() bool {
	return t.name[1]&flagBit == 0
}

// IsReservedBitValid reports whether the reserved (third) byte is uppercase
func (t ChunkType) IsReservedBitValid() bool {
	return t.name[2]&flagBit == 0
}

// IsSafeToCopy reports whether editors may copy the chunk across unrelated edits
func (t ChunkType) IsSafeToCopy() bool {
	return t.name[3]&flagBit != 0
}

func isASCIILetter(c byte) bool {
	return ('A' <= c && c <= 'Z') || ('a' <= c && c <= 'z')
}
