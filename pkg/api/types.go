package api

import (
	"time"

	"github.com/ssargent/pngstash/pkg/stash"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// DecodeResponse is returned by the decode endpoint
type DecodeResponse struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Port            int
	Bind            string
	APIKey          string
	MaxBodyBytes    int64         // request bodies above this are rejected with 413
	ShutdownTimeout time.Duration // grace period for in-flight requests
}

// IStash defines the chunk operations the API exposes
type IStash interface {
	Encode(data []byte, typeText, message, passphrase string) ([]byte, error)
	Decode(data []byte, typeText, passphrase string) (string, error)
	Remove(data []byte, typeText string) ([]byte, error)
	Print(data []byte) ([]string, error)
	Inspect(data []byte) ([]stash.ChunkInfo, error)
}
