package codec

import "fmt"

// TypeErrorKind identifies which chunk type check failed
type TypeErrorKind int

const (
	// KindInvalidTagBytes means a type byte is not an ASCII letter
	KindInvalidTagBytes TypeErrorKind = iota + 1
	// KindInvalidTagLength means the type text is not exactly 4 bytes
	KindInvalidTagLength
)

// TypeError is returned when a chunk type cannot be constructed
type TypeError struct {
	Kind   TypeErrorKind
	Bytes  []byte // offending input
	Length int    // input length, set for KindInvalidTagLength
}

func (e *TypeError) Error() string {
	switch e.Kind {
	case KindInvalidTagBytes:
		return fmt.Sprintf("invalid chunk type bytes %q: every byte must be an ASCII letter", e.Bytes)
	case KindInvalidTagLength:
		return fmt.Sprintf("invalid chunk type length: got %d bytes, want 4", e.Length)
	default:
		return "invalid chunk type"
	}
}

// Is matches any TypeError of the same kind, so sentinels work with errors.Is
func (e *TypeError) Is(target error) bool {
	t, ok := target.(*TypeError)
	return ok && t.Kind == e.Kind
}

// ChunkErrorKind identifies which chunk check failed
type ChunkErrorKind int

const (
	// KindTruncatedLength means the length field itself is incomplete
	KindTruncatedLength ChunkErrorKind = iota + 1
	// KindTruncatedBody means type, data and CRC do not fit in the input
	KindTruncatedBody
	// KindBadTagBytes means the type field failed validation
	KindBadTagBytes
	// KindChecksumMismatch means the stored CRC differs from the recomputed one
	KindChecksumMismatch
	// KindNonUTF8Payload means the data was requested as text but is not UTF-8
	KindNonUTF8Payload
)

// ChunkError is returned when chunk bytes are malformed or corrupted
type ChunkError struct {
	Kind     ChunkErrorKind
	Expected uint64 // required byte count or recomputed CRC
	Actual   uint64 // available byte count or stored CRC
	Err      error  // underlying cause, set for KindBadTagBytes
}

func (e *ChunkError) Error() string {
	switch e.Kind {
	case KindTruncatedLength:
		return fmt.Sprintf("truncated chunk length: need %d bytes, have %d", e.Expected, e.Actual)
	case KindTruncatedBody:
		return fmt.Sprintf("truncated chunk body: need %d bytes, have %d", e.Expected, e.Actual)
	case KindBadTagBytes:
		return fmt.Sprintf("bad chunk type: %v", e.Err)
	case KindChecksumMismatch:
		return fmt.Sprintf("CRC mismatch: computed 0x%08x, stored 0x%08x", e.Expected, e.Actual)
	case KindNonUTF8Payload:
		return "chunk data is not valid UTF-8"
	default:
		return "malformed chunk"
	}
}

// Is matches any ChunkError of the same kind
func (e *ChunkError) Is(target error) bool {
	t, ok := target.(*ChunkError)
	return ok && t.Kind == e.Kind
}

func (e *ChunkError) Unwrap() error {
	return e.Err
}

// Errors
var (
	ErrInvalidTagBytes  = &TypeError{Kind: KindInvalidTagBytes}
	ErrInvalidTagLength = &TypeError{Kind: KindInvalidTagLength}

	ErrTruncatedLength  = &ChunkError{Kind: KindTruncatedLength}
	ErrTruncatedBody    = &ChunkError{Kind: KindTruncatedBody}
	ErrBadTagBytes      = &ChunkError{Kind: KindBadTagBytes}
	ErrChecksumMismatch = &ChunkError{Kind: KindChecksumMismatch}
	ErrNonUTF8Payload   = &ChunkError{Kind: KindNonUTF8Payload}
)
