package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/clausemark/clausemark/internal/convert"
	"github.com/clausemark/clausemark/internal/doctree"
	"github.com/clausemark/clausemark/internal/parser"
	"github.com/clausemark/clausemark/internal/pipeline"
	"github.com/clausemark/clausemark/internal/transform"
	"github.com/go-chi/chi/v5"
)

type convertRequest struct {
	Source   string          `json:"source"`
	Targets  []string        `json:"targets"`
	Document json.RawMessage `json:"document"`
}

// handleConvert runs a synchronous conversion chain over an inline
// document. Binary source formats go through the file endpoint instead.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	var req convertRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Source == "" || len(req.Targets) == 0 {
		jsonError(w, "source and targets are required", http.StatusBadRequest)
		return
	}

	registry := s.orchestrator.Registry()
	format, ok := registry.Format(req.Source)
	if !ok {
		jsonError(w, fmt.Sprintf("unknown source format %q", req.Source), http.StatusBadRequest)
		return
	}

	var doc any
	switch format.Serialization {
	case convert.SerializationText:
		var text string
		if err := json.Unmarshal(req.Document, &text); err != nil {
			jsonError(w, "document must be a string for text formats", http.StatusBadRequest)
			return
		}
		doc = text
	case convert.SerializationTree:
		var tree doctree.Node
		if err := json.Unmarshal(req.Document, &tree); err != nil {
			jsonError(w, "document must be a document tree: "+err.Error(), http.StatusBadRequest)
			return
		}
		doc = &tree
	default:
		jsonError(w, fmt.Sprintf("binary format %q requires /api/convert/file", req.Source), http.StatusBadRequest)
		return
	}

	result, err := registry.Run(doc, req.Source, req.Targets)
	if err != nil {
		jsonError(w, err.Error(), conversionStatus(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"source":  req.Source,
		"targets": req.Targets,
		"result":  result,
	})
}

// conversionStatus maps conversion failures onto HTTP statuses: a missing
// hop is the caller's mistake, a transform failure is an unprocessable
// document.
func conversionStatus(err error) int {
	var unsupported *convert.UnsupportedConversionError
	if errors.As(err, &unsupported) {
		return http.StatusBadRequest
	}
	var unhandled *transform.UnhandledNodeTypeError
	if errors.As(err, &unhandled) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusUnprocessableEntity
}

// handleConvertFile accepts a document upload and queues an asynchronous
// conversion job.
func (s *Server) handleConvertFile(w http.ResponseWriter, r *http.Request) {
	// Limit total request size.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	targets := splitTargets(r.FormValue("targets"))
	if len(targets) == 0 {
		jsonError(w, "targets is required", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !parser.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	now := time.Now()
	job := &pipeline.Job{
		ID:        pipeline.NewJobID(),
		Filename:  filename,
		Targets:   targets,
		Status:    pipeline.StatusQueued,
		Phase:     "queued",
		CreatedAt: now,
		UpdatedAt: now,
	}
	job.SetFileData(data)

	if err := s.orchestrator.Submit(job); err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{
		"job_id":   job.ID,
		"status":   job.Status,
		"poll_url": fmt.Sprintf("/api/convert/%s/status", job.ID),
	})
}

func (s *Server) handleConvertStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(job.Snapshot())
}

func splitTargets(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
