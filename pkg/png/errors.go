package png

import (
	"errors"
	"fmt"
)

// Errors
var (
	ErrBadSignature = errors.New("not a PNG file: bad signature")
	ErrTagNotFound  = errors.New("chunk type not found")
)

// ParseError reports which chunk of a container failed to parse
type ParseError struct {
	Index  int   // zero-based chunk index
	Offset int64 // byte offset of the chunk from the start of the file
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("chunk %d at offset %d: %v", e.Index, e.Offset, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NotFoundError carries the chunk type that was looked up
type NotFoundError struct {
	Type string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("chunk type %q not found", e.Type)
}

func (e *NotFoundError) Unwrap() error {
	return ErrTagNotFound
}
