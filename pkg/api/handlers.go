package api

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/ssargent/pngstash/pkg/codec"
	"github.com/ssargent/pngstash/pkg/logging"
	"github.com/ssargent/pngstash/pkg/png"
	"github.com/ssargent/pngstash/pkg/seal"
	"github.com/ssargent/pngstash/pkg/stash"
)

const defaultMaxBodyBytes = 32 << 20

// Server holds the API server state
type Server struct {
	stash   IStash
	config  ServerConfig
	metrics *Metrics
	logger  logging.Logger
}

// NewServer creates a new API server
func NewServer(svc IStash, config ServerConfig, metrics *Metrics, logger logging.Logger) *Server {
	if config.MaxBodyBytes <= 0 {
		config.MaxBodyBytes = defaultMaxBodyBytes
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Server{
		stash:   svc,
		config:  config,
		metrics: metrics,
		logger:  logger,
	}
}

// handleHealth reports liveness
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	sendSuccess(w, map[string]string{"status": "healthy"})
}

// handleEncode appends a message chunk to the PNG in the body and returns the new PNG
func (s *Server) handleEncode(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	typeText, ok := requireType(w, r)
	if !ok {
		return
	}

	body, ok := s.readBody(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	out, err := s.stash.Encode(body, typeText, query.Get("message"), r.Header.Get(headerPassphrase))
	s.record("encode", err, start)
	if err != nil {
		s.sendStashError(w, r, err)
		return
	}

	s.metrics.RecordBytes("out", len(out))
	sendPNG(w, out)
}

// handleDecode returns the message stored under the requested type
func (s *Server) handleDecode(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	typeText, ok := requireType(w, r)
	if !ok {
		return
	}

	body, ok := s.readBody(w, r)
	if !ok {
		return
	}

	message, err := s.stash.Decode(body, typeText, r.Header.Get(headerPassphrase))
	s.record("decode", err, start)
	if err != nil {
		s.sendStashError(w, r, err)
		return
	}

	sendSuccess(w, DecodeResponse{Type: typeText, Message: message})
}

// handleRemove drops the first chunk of the requested type and returns the new PNG
func (s *Server) handleRemove(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	typeText, ok := requireType(w, r)
	if !ok {
		return
	}

	body, ok := s.readBody(w, r)
	if !ok {
		return
	}

	out, err := s.stash.Remove(body, typeText)
	s.record("remove", err, start)
	if err != nil {
		s.sendStashError(w, r, err)
		return
	}

	s.metrics.RecordBytes("out", len(out))
	sendPNG(w, out)
}

// handleChunks lists every chunk of the PNG in the body
func (s *Server) handleChunks(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	body, ok := s.readBody(w, r)
	if !ok {
		return
	}

	infos, err := s.stash.Inspect(body)
	s.record("inspect", err, start)
	if err != nil {
		s.sendStashError(w, r, err)
		return
	}

	if infos == nil {
		infos = []stash.ChunkInfo{}
	}
	sendSuccess(w, infos)
}

func requireType(w http.ResponseWriter, r *http.Request) (string, bool) {
	typeText := r.URL.Query().Get("type")
	if typeText == "" {
		sendError(w, "type query parameter is required", http.StatusBadRequest)
		return "", false
	}
	return typeText, true
}

// readBody reads the whole request body, capped at MaxBodyBytes
func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxBodyBytes)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			sendError(w, "Request body too large", http.StatusRequestEntityTooLarge)
			return nil, false
		}
		sendError(w, "Failed to read request body", http.StatusBadRequest)
		return nil, false
	}

	s.metrics.RecordBytes("in", len(body))
	return body, true
}

func (s *Server) record(operation string, err error, start time.Time) {
	s.metrics.RecordOperation(operation, err == nil, time.Since(start))
}

// sendStashError maps a stash failure onto an HTTP status
func (s *Server) sendStashError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		s.logger.WithField("path", r.URL.Path).Error("request failed: %v", err)
	}
	sendError(w, err.Error(), status)
}

// statusForError classifies err. Parse failures are checked first because a
// corrupt chunk type inside a file also matches the invalid type sentinels.
func statusForError(err error) int {
	var parseErr *png.ParseError
	switch {
	case errors.As(err, &parseErr),
		errors.Is(err, png.ErrBadSignature),
		errors.Is(err, codec.ErrNonUTF8Payload),
		errors.Is(err, seal.ErrMalformed),
		errors.Is(err, seal.ErrNotSealed):
		return http.StatusUnprocessableEntity
	case errors.Is(err, codec.ErrInvalidTagBytes),
		errors.Is(err, codec.ErrInvalidTagLength),
		errors.Is(err, stash.ErrReservedType):
		return http.StatusBadRequest
	case errors.Is(err, png.ErrTagNotFound):
		return http.StatusNotFound
	case errors.Is(err, seal.ErrWrongPassphrase):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
