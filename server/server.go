// Package server exposes the PDF-to-Word conversion pipeline over
// HTTP.
//
// Two routes are served: GET /health for liveness checks and POST
// /convert, which accepts a multipart PDF upload and streams back the
// converted DOCX as an attachment. Each conversion runs synchronously
// inside its request; concurrent requests are isolated through
// per-request workspaces, so no shared mutable state exists between
// them.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
)

// Default limits applied when Config leaves them zero.
const (
	// DefaultMaxUploadBytes caps request bodies at 25 MiB.
	DefaultMaxUploadBytes = 25 << 20

	defaultAddr = ":5000"
)

// Config holds server settings. Zero fields fall back to defaults.
type Config struct {
	// Addr is the listen address, e.g. ":5000".
	Addr string

	// MaxUploadBytes caps the request body size. Requests above it are
	// rejected before any processing.
	MaxUploadBytes int64

	// TempDir is where per-request workspaces are created. Defaults to
	// the system temporary directory.
	TempDir string

	// DefaultDPI is the rasterization resolution used when the request
	// omits the dpi field.
	DefaultDPI int

	// MaxDPI caps the requested resolution; larger values are silently
	// clamped.
	MaxDPI int

	// PageWidthInches is the physical width of each page image in the
	// output document.
	PageWidthInches float64
}

// withDefaults fills zero fields with the documented defaults.
func (c Config) withDefaults() Config {
	if c.Addr == "" {
		c.Addr = defaultAddr
	}
	if c.MaxUploadBytes <= 0 {
		c.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if c.DefaultDPI <= 0 {
		c.DefaultDPI = 300
	}
	if c.MaxDPI <= 0 {
		c.MaxDPI = 400
	}
	if c.PageWidthInches <= 0 {
		c.PageWidthInches = 6.0
	}
	return c
}

// Server routes conversion requests. Build one with New.
type Server struct {
	cfg Config
	log logrus.FieldLogger
	mux *http.ServeMux
}

// New creates a Server with the given configuration. A nil logger
// disables request logging.
func New(cfg Config, log logrus.FieldLogger) *Server {
	if log == nil {
		nop := logrus.New()
		nop.SetOutput(nopWriter{})
		log = nop
	}
	s := &Server{cfg: cfg.withDefaults(), log: log}
	s.mux = http.NewServeMux()
	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.HandleFunc("/convert", s.handleConvert)
	return s
}

// Handler returns the root handler, primarily for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// ListenAndServe serves until the listener fails.
func (s *Server) ListenAndServe() error {
	s.log.WithField("addr", s.cfg.Addr).Info("listening")
	return http.ListenAndServe(s.cfg.Addr, s.mux)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeJSON emits a JSON body with the given status. Encoding errors
// are unrecoverable once the header is written and are dropped.
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }
