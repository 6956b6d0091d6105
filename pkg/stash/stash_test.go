package stash

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/pngstash/pkg/codec"
	"github.com/ssargent/pngstash/pkg/logging"
	"github.com/ssargent/pngstash/pkg/png"
	"github.com/ssargent/pngstash/pkg/seal"
)

// minimalPng is a signature with zero chunks
func minimalPng() []byte {
	return append([]byte(nil), png.Signature[:]...)
}

func pngWithChunks(t *testing.T, pairs ...string) []byte {
	t.Helper()
	require.Zero(t, len(pairs)%2)

	var chunks []codec.Chunk
	for i := 0; i < len(pairs); i += 2 {
		chunkType, err := codec.ParseChunkType(pairs[i])
		require.NoError(t, err)
		chunks = append(chunks, codec.NewChunk(chunkType, []byte(pairs[i+1])))
	}
	return png.FromChunks(chunks).Bytes()
}

func TestService_EncodeDecode(t *testing.T) {
	svc := NewService()

	encoded, err := svc.Encode(minimalPng(), "ruSt", "hello", "")
	require.NoError(t, err)

	message, err := svc.Decode(encoded, "ruSt", "")
	require.NoError(t, err)
	assert.Equal(t, "hello", message)
}

func TestService_EncodeKeepsExistingChunks(t *testing.T) {
	svc := NewService()
	input := pngWithChunks(t, "IHDR", "header", "IEND", "")

	encoded, err := svc.Encode(input, "ruSt", "hello", "")
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(encoded, input))

	p, err := png.Parse(encoded)
	require.NoError(t, err)
	chunks := p.Chunks()
	require.Len(t, chunks, 3)
	assert.Equal(t, "ruSt", chunks[2].Type().String())
}

func TestService_EncodeErrors(t *testing.T) {
	svc := NewService()

	t.Run("invalid type", func(t *testing.T) {
		_, err := svc.Encode(minimalPng(), "ru1t", "hello", "")
		assert.ErrorIs(t, err, codec.ErrInvalidTagBytes)
	})

	t.Run("not a png", func(t *testing.T) {
		_, err := svc.Encode([]byte("definitely not a png"), "ruSt", "hello", "")
		assert.ErrorIs(t, err, png.ErrBadSignature)
	})

	t.Run("reserved type accepted by default", func(t *testing.T) {
		_, err := svc.Encode(minimalPng(), "Rust", "hello", "")
		assert.NoError(t, err)
	})
}

func TestService_StrictTypes(t *testing.T) {
	svc := NewService(WithStrictTypes(true))

	_, err := svc.Encode(minimalPng(), "Rust", "hello", "")
	assert.ErrorIs(t, err, ErrReservedType)

	_, err = svc.Encode(minimalPng(), "RuSt", "hello", "")
	assert.NoError(t, err)
}

func TestService_DecodeErrors(t *testing.T) {
	svc := NewService()
	input := pngWithChunks(t, "ruSt", "hello")

	t.Run("absent type", func(t *testing.T) {
		_, err := svc.Decode(input, "TEST", "")
		assert.ErrorIs(t, err, png.ErrTagNotFound)
	})

	t.Run("invalid type", func(t *testing.T) {
		_, err := svc.Decode(input, "TEST1", "")
		assert.ErrorIs(t, err, codec.ErrInvalidTagLength)
	})

	t.Run("binary data", func(t *testing.T) {
		chunkType, err := codec.ParseChunkType("biNa")
		require.NoError(t, err)
		data := png.FromChunks([]codec.Chunk{codec.NewChunk(chunkType, []byte{0xFF, 0x00})}).Bytes()

		_, err = svc.Decode(data, "biNa", "")
		assert.ErrorIs(t, err, codec.ErrNonUTF8Payload)
	})
}

func TestService_Remove(t *testing.T) {
	svc := NewService()

	encoded, err := svc.Encode(minimalPng(), "TEST", "to be removed", "")
	require.NoError(t, err)

	removed, err := svc.Remove(encoded, "TEST")
	require.NoError(t, err)
	assert.Equal(t, minimalPng(), removed)

	_, err = svc.Decode(removed, "TEST", "")
	assert.ErrorIs(t, err, png.ErrTagNotFound)

	_, err = svc.Remove(removed, "TEST")
	assert.ErrorIs(t, err, png.ErrTagNotFound)
}

func TestService_Print(t *testing.T) {
	svc := NewService()
	chunkType, err := codec.ParseChunkType("IDAT")
	require.NoError(t, err)

	p, err := png.Parse(pngWithChunks(t, "tEXt", "first", "ruSt", "second"))
	require.NoError(t, err)
	p.AppendChunk(codec.NewChunk(chunkType, []byte{0xFF, 0xFE}))

	lines, err := svc.Print(p.Bytes())
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second", codec.NotTextPlaceholder}, lines)
}

func TestService_PrintCorrupt(t *testing.T) {
	svc := NewService()
	data := pngWithChunks(t, "tEXt", "first")
	data[len(data)-1] ^= 0x01

	lines, err := svc.Print(data)
	assert.Nil(t, lines)
	assert.ErrorIs(t, err, codec.ErrChecksumMismatch)
}

func TestService_Inspect(t *testing.T) {
	svc := NewService()

	infos, err := svc.Inspect(pngWithChunks(t, "IHDR", "h", "ruSt", "hello"))
	require.NoError(t, err)
	require.Len(t, infos, 2)

	assert.Equal(t, ChunkInfo{
		Index:      0,
		Type:       "IHDR",
		Length:     1,
		CRC:        infos[0].CRC,
		Critical:   true,
		Public:     true,
		Valid:      true,
		SafeToCopy: false,
		Text:       "h",
	}, infos[0])

	assert.Equal(t, "ruSt", infos[1].Type)
	assert.False(t, infos[1].Critical)
	assert.True(t, infos[1].SafeToCopy)
	assert.Equal(t, "hello", infos[1].Text)
	assert.NotZero(t, infos[1].CRC)
}

func TestService_SealedMessages(t *testing.T) {
	svc := NewService()

	encoded, err := svc.Encode(minimalPng(), "ruSt", "hello", "s3cret")
	require.NoError(t, err)

	// without the passphrase the sealed text comes back
	raw, err := svc.Decode(encoded, "ruSt", "")
	require.NoError(t, err)
	assert.True(t, seal.IsSealed(raw))
	assert.NotContains(t, raw, "hello")

	message, err := svc.Decode(encoded, "ruSt", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "hello", message)

	_, err = svc.Decode(encoded, "ruSt", "guess")
	assert.ErrorIs(t, err, seal.ErrWrongPassphrase)

	infos, err := svc.Inspect(encoded)
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.True(t, infos[0].Sealed)
}

func TestService_LogsOperations(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.WithOutput(&buf), logging.WithLevel(logging.LevelDebug))
	svc := NewService(WithLogger(logger))

	_, err := svc.Encode(minimalPng(), "ruSt", "hello", "")
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "op=encode")
	assert.Contains(t, buf.String(), "appended ruSt chunk")
}
