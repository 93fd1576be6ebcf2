package web

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"

	"go.uber.org/zap"
)

// maxDocumentSize bounds the body of POST /api/validate.
const maxDocumentSize = 10 << 20

// writeJSONResponse writes a JSON response to the http.ResponseWriter.
// If encoding fails, it writes an error response.
func writeJSONResponse(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

type VersionResponse struct {
	Version   string `json:"version"`
	CommitSHA string `json:"commitSha"`
}

type SourceResponse struct {
	Filepath string `json:"filepath"`
	Source   string `json:"source"`
}

func (s *Server) handleGetVersion(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, &VersionResponse{Version: s.Version, CommitSHA: s.CommitSHA})
}

// handleGetSource returns the served document as it was last read.
func (s *Server) handleGetSource(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	response := &SourceResponse{Filepath: s.file, Source: string(s.source)}
	s.mu.RUnlock()

	writeJSONResponse(w, response)
}

// handleGetReport returns the check report of the served document.
func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	rep := s.report
	s.mu.RUnlock()

	if rep == nil {
		http.Error(w, "No document loaded", http.StatusServiceUnavailable)
		return
	}
	writeJSONResponse(w, rep)
}

// handleValidate checks the document in the request body. The body format
// follows the Content-Type header (JSON or YAML) and is sniffed otherwise.
// The response is a report whether or not the document is valid.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxDocumentSize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "Document too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	rep, err := s.checker.Check(r.Context(), bodyFilename(r), data)
	if err != nil {
		s.Logger.Error("failed to check document", zap.Error(err))
		http.Error(w, "Failed to check document", http.StatusInternalServerError)
		return
	}

	writeJSONResponse(w, rep)
}

// bodyFilename names the request body after its media type, which selects
// the decoder.
func bodyFilename(r *http.Request) string {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return "request"
	}
	switch mediaType {
	case "application/json":
		return "request.json"
	case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
		return "request.yaml"
	default:
		return "request"
	}
}
