// Package webserver hosts the local static gateway that re-serves
// generated artifacts. Every read is confined to an allow-listed base
// directory; directory listings and traversal are always rejected.
package webserver

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// mimeTypes is the fixed extension table. Unknown extensions fall back to
// a generic binary type.
var mimeTypes = map[string]string{
	".pdf":   "application/pdf",
	".png":   "image/png",
	".jpg":   "image/jpeg",
	".jpeg":  "image/jpeg",
	".gif":   "image/gif",
	".svg":   "image/svg+xml",
	".html":  "text/html; charset=utf-8",
	".css":   "text/css; charset=utf-8",
	".js":    "application/javascript",
	".json":  "application/json",
	".pptx":  "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	".woff2": "font/woff2",
	".txt":   "text/plain; charset=utf-8",
}

const fallbackMIME = "application/octet-stream"

// ContentTypeFor returns the MIME type for a file path by extension.
func ContentTypeFor(path string) string {
	if t, ok := mimeTypes[strings.ToLower(filepath.Ext(path))]; ok {
		return t
	}
	return fallbackMIME
}

// StaticServer serves files from the managed data directory under
// /static/ and from the scratch directory under /tmp-static/.
type StaticServer struct {
	dataDir string
	tempDir string
	port    int
	logger  func(string)

	server *http.Server
}

// NewStaticServer creates a new StaticServer instance
func NewStaticServer(dataDir, tempDir string, port int, logger func(string)) *StaticServer {
	return &StaticServer{
		dataDir: dataDir,
		tempDir: tempDir,
		port:    port,
		logger:  logger,
	}
}

// Name returns the service name
func (s *StaticServer) Name() string {
	return "webserver"
}

// Port returns the configured listen port.
func (s *StaticServer) Port() int {
	return s.port
}

// Initialize binds the listener and starts serving in the background.
// A taken port surfaces here, not on the first request.
func (s *StaticServer) Initialize(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.Handle("/static/", http.StripPrefix("/static/", FileHandler(s.dataDir, s.logger)))
	mux.Handle("/tmp-static/", http.StripPrefix("/tmp-static/", FileHandler(s.tempDir, s.logger)))

	addr := fmt.Sprintf("127.0.0.1:%d", s.port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to bind static gateway on %s: %w", addr, err)
	}

	s.server = &http.Server{
		Handler:     mux,
		ReadTimeout: 30 * time.Second,
	}
	go func() {
		if err := s.server.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.log(fmt.Sprintf("[STATIC] server stopped: %v", err))
		}
	}()

	s.log(fmt.Sprintf("[STATIC] serving %s on http://%s/static/", s.dataDir, addr))
	return nil
}

// Shutdown stops the HTTP server.
func (s *StaticServer) Shutdown() error {
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *StaticServer) log(msg string) {
	if s.logger != nil {
		s.logger(msg)
	}
}

// FileHandler serves files strictly below base. The resolved absolute
// path must keep base as a prefix after normalization; anything else is
// rejected before any filesystem read. Directories are never listed.
func FileHandler(base string, logger func(string)) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rel := strings.TrimPrefix(r.URL.Path, "/")
		if rel == "" {
			http.Error(w, "file path is required", http.StatusBadRequest)
			return
		}

		absBase, err := filepath.Abs(base)
		if err != nil {
			http.Error(w, "invalid base directory", http.StatusInternalServerError)
			return
		}
		target := filepath.Join(absBase, filepath.FromSlash(rel))
		if target != absBase && !strings.HasPrefix(target, absBase+string(filepath.Separator)) {
			if logger != nil {
				logger(fmt.Sprintf("[STATIC] rejected traversal attempt: %q", rel))
			}
			http.Error(w, "invalid file path", http.StatusBadRequest)
			return
		}

		info, err := os.Stat(target)
		if err != nil {
			http.Error(w, "file not found", http.StatusNotFound)
			return
		}
		if info.IsDir() {
			http.Error(w, "directories cannot be served", http.StatusForbidden)
			return
		}

		f, err := os.Open(target)
		if err != nil {
			http.Error(w, "failed to open file", http.StatusInternalServerError)
			return
		}
		defer f.Close()

		w.Header().Set("Content-Type", ContentTypeFor(target))
		w.Header().Set("Content-Disposition", "inline")
		w.Header().Set("Content-Length", fmt.Sprintf("%d", info.Size()))
		if _, err := io.Copy(w, f); err != nil && logger != nil {
			logger(fmt.Sprintf("[STATIC] stream error for %q: %v", rel, err))
		}
	})
}
