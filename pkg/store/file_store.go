// Package store reads whole PNG files and writes re-serialized files back to disk.
package store

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/segmentio/ksuid"
)

const defaultBufferSize = 64 * 1024

// FileStore is the byte source and sink for container files
type FileStore struct {
	config FileStoreConfig
}

// NewFileStore creates a file store with the given configuration
func NewFileStore(config FileStoreConfig) *FileStore {
	if config.BufferSize <= 0 {
		config.BufferSize = defaultBufferSize
	}
	if config.FileMode == 0 {
		config.FileMode = 0644
	}
	return &FileStore{config: config}
}

// Read returns the full contents of the file at path
func (s *FileStore) Read(path string) ([]byte, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var r io.Reader = file
	if s.config.MaxSize > 0 {
		r = io.LimitReader(file, s.config.MaxSize+1)
	}

	data, err := io.ReadAll(bufio.NewReaderSize(r, s.config.BufferSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if s.config.MaxSize > 0 && int64(len(data)) > s.config.MaxSize {
		return nil, fmt.Errorf("%w: %s is larger than %d bytes", ErrFileTooLarge, path, s.config.MaxSize)
	}
	return data, nil
}

// Write replaces the file at path with data. The bytes go to a temp file in the
// same directory which is renamed over the target, so readers never see a partial file.
func (s *FileStore) Write(path string, data []byte) error {
	if path == "" {
		return ErrEmptyPath
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	mode := s.config.FileMode
	if stat, err := os.Stat(path); err == nil {
		mode = stat.Mode().Perm()
	}

	tmpPath := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), ksuid.New()))
	file, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, mode)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	if err := s.writeAndClose(file, data); err != nil {
		os.Remove(tmpPath)
		return err
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

func (s *FileStore) writeAndClose(file *os.File, data []byte) error {
	writer := bufio.NewWriterSize(file, s.config.BufferSize)

	if _, err := writer.Write(data); err != nil {
		file.Close()
		return fmt.Errorf("failed to write: %w", err)
	}
	if err := writer.Flush(); err != nil {
		file.Close()
		return fmt.Errorf("failed to flush: %w", err)
	}
	if s.config.Fsync {
		if err := file.Sync(); err != nil {
			file.Close()
			return fmt.Errorf("failed to sync: %w", err)
		}
	}
	return file.Close()
}
