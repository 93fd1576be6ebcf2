// Package web provides an HTTP API for checking Luca documents.
//
// The server checks one document on disk, keeps the latest report in memory
// and re-checks when the file changes. Clients can also post documents to be
// checked without touching the served file.
//
// SECURITY WARNING: This server has no authentication and should only be
// bound to localhost (127.0.0.1). Do not expose it to untrusted networks.
package web

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/robinvdvleuten/lucaschema/logging"
	"github.com/robinvdvleuten/lucaschema/report"
	"github.com/robinvdvleuten/lucaschema/schema"
	"github.com/robinvdvleuten/lucaschema/telemetry"
)

type Server struct {
	Port         int
	Host         string
	Version      string
	CommitSHA    string
	WatchEnabled bool
	Logger       *zap.Logger

	checker *report.Checker

	mu     sync.RWMutex
	report *report.Report
	source []byte

	// file is the absolute path of the served document.
	file string

	// SSE clients for broadcasting reload events
	sseClients map[chan string]struct{}
	sseMu      sync.Mutex
}

func New(port int, file string) *Server {
	return NewWithVersion(port, file, "", "")
}

func NewWithVersion(port int, file, version, commitSHA string) *Server {
	return &Server{
		Port:       port,
		Host:       "127.0.0.1",
		Version:    version,
		CommitSHA:  commitSHA,
		Logger:     logging.Nop(),
		checker:    report.NewChecker(schema.New()),
		file:       file,
		sseClients: make(map[chan string]struct{}),
	}
}

func (s *Server) Start(ctx context.Context) error {
	timer := telemetry.StartTimer(ctx, fmt.Sprintf("web.start %s:%d", s.Host, s.Port))

	if s.file == "" {
		timer.End()
		return fmt.Errorf("document file is required")
	}
	abs, err := filepath.Abs(s.file)
	if err != nil {
		timer.End()
		return fmt.Errorf("failed to resolve absolute path: %w", err)
	}
	s.file = abs

	loadTimer := timer.Child(fmt.Sprintf("web.load %s", filepath.Base(s.file)))
	err = s.reload(ctx)
	loadTimer.End()
	if err != nil {
		timer.End()
		return fmt.Errorf("failed to load document: %w", err)
	}

	if s.WatchEnabled {
		if err := s.startWatcher(ctx); err != nil {
			timer.End()
			return fmt.Errorf("failed to start file watcher: %w", err)
		}
	}

	mux := s.setupRouter()
	timer.End()

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.Host, s.Port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	s.Logger.Info("server started", zap.String("addr", server.Addr), zap.String("file", s.file))
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) setupRouter() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/version", s.handleGetVersion)
	mux.HandleFunc("GET /api/source", s.handleGetSource)
	mux.HandleFunc("GET /api/report", s.handleGetReport)
	mux.HandleFunc("POST /api/validate", s.handleValidate)
	mux.HandleFunc("GET /api/accounts", s.handleGetAccounts)
	mux.HandleFunc("GET /api/events", s.handleSSE)

	return mux
}

// reload reads and checks the served document. Problems with the document
// are kept in the report; only I/O failures are returned.
// Caller must NOT hold the mutex - this method acquires it internally.
func (s *Server) reload(ctx context.Context) error {
	data, err := os.ReadFile(s.file)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", s.file, err)
	}

	r, err := s.checker.Check(ctx, s.file, data)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.report = r
	s.source = data
	s.mu.Unlock()

	if !r.Valid {
		s.Logger.Warn("document has problems",
			zap.String("file", s.file),
			zap.Int("problems", len(r.Problems)),
			zap.Strings("unbalanced", unbalancedKeys(r)),
		)
	}
	return nil
}

func unbalancedKeys(r *report.Report) []string {
	if r.Entries == nil {
		return nil
	}
	return r.Entries.Invalid()
}

// startWatcher watches the directory of the served document, so atomic saves
// that replace the file are still seen.
func (s *Server) startWatcher(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(s.file)); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", s.file, err)
	}

	go s.runWatcher(ctx, watcher)
	return nil
}

// runWatcher processes file system events with debouncing.
func (s *Server) runWatcher(ctx context.Context, watcher *fsnotify.Watcher) {
	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
		_ = watcher.Close()
	}()

	// Editors often write files in multiple steps.
	const debounceDelay = 100 * time.Millisecond

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != s.file {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounceDelay, func() {
				s.handleFileChange(ctx)
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			s.Logger.Error("file watcher error", zap.Error(err))
		}
	}
}

// handleFileChange re-checks the document and tells clients to refetch.
func (s *Server) handleFileChange(ctx context.Context) {
	ctx = telemetry.WithCollector(ctx, telemetry.NewLogCollector(s.Logger))
	if err := s.reload(ctx); err != nil {
		s.Logger.Error("failed to reload document", zap.String("file", s.file), zap.Error(err))
		return
	}
	s.broadcast("reload")
}

// handleSSE handles Server-Sent Events connections for real-time updates.
func (s *Server) handleSSE(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	clientChan := make(chan string, 10)

	s.sseMu.Lock()
	s.sseClients[clientChan] = struct{}{}
	s.sseMu.Unlock()

	defer func() {
		s.sseMu.Lock()
		delete(s.sseClients, clientChan)
		s.sseMu.Unlock()
	}()

	_, _ = fmt.Fprintf(w, "data: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case event := <-clientChan:
			_, _ = fmt.Fprintf(w, "data: %s\n\n", event)
			flusher.Flush()
		}
	}
}

// broadcast sends an event to all connected SSE clients.
func (s *Server) broadcast(event string) {
	s.sseMu.Lock()
	defer s.sseMu.Unlock()

	for clientChan := range s.sseClients {
		select {
		case clientChan <- event:
		default:
			// Client buffer full, skip
		}
	}
}
