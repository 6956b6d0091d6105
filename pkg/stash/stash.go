// Package stash implements the message operations on whole PNG buffers:
// encode, decode, remove and print. Each call parses the input, performs at most
// one mutation and serializes the result; nothing is cached between calls.
package stash

import (
	"errors"
	"fmt"

	"github.com/ssargent/pngstash/pkg/codec"
	"github.com/ssargent/pngstash/pkg/logging"
	"github.com/ssargent/pngstash/pkg/png"
	"github.com/ssargent/pngstash/pkg/seal"
)

// ErrReservedType is returned by Encode in strict mode for types with the reserved bit set
var ErrReservedType = errors.New("chunk type has the reserved bit set")

// ChunkInfo describes one chunk for listings
type ChunkInfo struct {
	Index      int    `json:"index"`
	Type       string `json:"type"`
	Length     uint32 `json:"length"`
	CRC        uint32 `json:"crc"`
	Critical   bool   `json:"critical"`
	Public     bool   `json:"public"`
	Valid      bool   `json:"valid"`
	SafeToCopy bool   `json:"safe_to_copy"`
	Text       string `json:"text"`
	Sealed     bool   `json:"sealed,omitempty"`
}

// Service runs stash operations
type Service struct {
	strictTypes bool
	logger      logging.Logger
}

// Option configures a Service
type Option func(*Service)

// WithStrictTypes makes Encode reject chunk types whose reserved bit is set
func WithStrictTypes(strict bool) Option {
	return func(s *Service) {
		s.strictTypes = strict
	}
}

// WithLogger sets the logger used for operation tracing
func WithLogger(logger logging.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService creates a stash service
func NewService(options ...Option) *Service {
	s := &Service{logger: logging.Discard()}
	for _, option := range options {
		option(s)
	}
	return s
}

// Encode appends a chunk holding message to the PNG in data and returns the new file.
// A non-empty passphrase seals the message first.
func (s *Service) Encode(data []byte, typeText, message, passphrase string) ([]byte, error) {
	chunkType, err := codec.ParseChunkType(typeText)
	if err != nil {
		return nil, err
	}
	if s.strictTypes && !chunkType.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrReservedType, chunkType)
	}

	p, err := png.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse png: %w", err)
	}

	payload := message
	if passphrase != "" {
		payload, err = seal.Seal(passphrase, typeText, message)
		if err != nil {
			return nil, fmt.Errorf("failed to seal message: %w", err)
		}
	}

	p.AppendChunk(codec.NewChunk(chunkType, []byte(payload)))
	out := p.Bytes()

	s.logger.WithField("op", "encode").Debug("appended %s chunk (%d bytes), file %d -> %d bytes",
		chunkType, len(payload), len(data), len(out))
	return out, nil
}

// Decode returns the message stored in the first chunk of the given type.
// A non-empty passphrase opens a sealed message.
func (s *Service) Decode(data []byte, typeText, passphrase string) (string, error) {
	p, err := png.Parse(data)
	if err != nil {
		return "", fmt.Errorf("failed to parse png: %w", err)
	}

	chunk, found, err := p.ChunkByType(typeText)
	if err != nil {
		return "", err
	}
	if !found {
		return "", &png.NotFoundError{Type: typeText}
	}

	message, err := chunk.DataString()
	if err != nil {
		return "", err
	}

	if passphrase != "" {
		message, err = seal.Open(passphrase, typeText, message)
		if err != nil {
			return "", err
		}
	}

	s.logger.WithField("op", "decode").Debug("read %s chunk (%d bytes)", typeText, chunk.Length())
	return message, nil
}

// Remove deletes the first chunk of the given type and returns the new file
func (s *Service) Remove(data []byte, typeText string) ([]byte, error) {
	p, err := png.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse png: %w", err)
	}

	removed, err := p.RemoveChunk(typeText)
	if err != nil {
		return nil, err
	}
	out := p.Bytes()

	s.logger.WithField("op", "remove").Debug("removed %s chunk (%d bytes), file %d -> %d bytes",
		removed.Type(), removed.Length(), len(data), len(out))
	return out, nil
}

// Print renders every chunk's data as text, with a placeholder for binary data
func (s *Service) Print(data []byte) ([]string, error) {
	p, err := png.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse png: %w", err)
	}

	chunks := p.Chunks()
	lines := make([]string, 0, len(chunks))
	for _, c := range chunks {
		lines = append(lines, c.String())
	}
	return lines, nil
}

// Inspect lists every chunk with its header fields and flags
func (s *Service) Inspect(data []byte) ([]ChunkInfo, error) {
	p, err := png.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse png: %w", err)
	}

	chunks := p.Chunks()
	infos := make([]ChunkInfo, 0, len(chunks))
	for i, c := range chunks {
		t := c.Type()
		text := c.String()
		infos = append(infos, ChunkInfo{
			Index:      i,
			Type:       t.String(),
			Length:     c.Length(),
			CRC:        c.CRC(),
			Critical:   t.IsCritical(),
			Public:     t.IsPublic(),
			Valid:      t.IsValid(),
			SafeToCopy: t.IsSafeToCopy(),
			Text:       text,
			Sealed:     seal.IsSealed(text),
		})
	}
	return infos, nil
}
