package store

import (
	"errors"
	"os"
)

// FileStoreConfig holds configuration for the file store
type FileStoreConfig struct {
	BufferSize int         // Write buffer size (0 = default)
	Fsync      bool        // Fsync the temp file before renaming it into place
	FileMode   os.FileMode // Mode for newly created files (0 = 0644)
	MaxSize    int64       // Largest file Read accepts (0 = unlimited)
}

// Errors
var (
	ErrEmptyPath    = errors.New("file path is empty")
	ErrFileTooLarge = errors.New("file exceeds maximum size")
)
