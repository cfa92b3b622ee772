package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/dgallion1/plaintext/internal/metrics"
	"github.com/dgallion1/plaintext/internal/parser"
	"github.com/dgallion1/plaintext/internal/serializer/plain"
	"github.com/go-chi/chi/v5/middleware"
)

// flattenError carries the HTTP status for a failed conversion.
type flattenError struct {
	status int
	err    error
}

func (e *flattenError) Error() string { return e.err.Error() }
func (e *flattenError) Unwrap() error { return e.err }

type plainResult struct {
	Filename string `json:"filename"`
	Title    string `json:"title"`
	Text     string `json:"text"`
	Bytes    int    `json:"bytes"`
}

// flatten parses data according to the filename's extension and returns
// the plain text of the resulting component tree.
func (s *Server) flatten(filename string, data []byte, locale string) (*plainResult, error) {
	format := parser.Format(filename)
	start := time.Now()
	defer func() {
		metrics.FlattenLatency.WithLabelValues(format).Observe(time.Since(start).Seconds())
	}()

	res, err := s.flattenDocument(filename, data, locale)
	if err != nil {
		metrics.DocumentsFlattened.WithLabelValues(format, "error").Inc()
		return nil, err
	}
	metrics.DocumentsFlattened.WithLabelValues(format, "ok").Inc()
	metrics.FlattenedBytes.WithLabelValues(format).Add(float64(res.Bytes))
	return res, nil
}

func (s *Server) flattenDocument(filename string, data []byte, locale string) (*plainResult, error) {
	p, err := parser.ForFile(filename, parser.Options{PDFFallbackPdftotext: s.cfg.PDFFallbackPdftotext})
	if err != nil {
		return nil, &flattenError{status: http.StatusBadRequest, err: err}
	}

	doc, err := p.Parse(bytes.NewReader(data), filename)
	if err != nil {
		return nil, &flattenError{status: http.StatusUnprocessableEntity, err: fmt.Errorf("parse %s: %w", filename, err)}
	}

	text, err := s.serializer(locale).Serialize(doc.Root)
	if err != nil {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, plain.ErrUnsupportedVariant) {
			status = http.StatusInternalServerError
		}
		return nil, &flattenError{status: status, err: fmt.Errorf("serialize %s: %w", filename, err)}
	}

	return &plainResult{
		Filename: filename,
		Title:    doc.Title,
		Text:     text,
		Bytes:    len(text),
	}, nil
}

func statusOf(err error) int {
	var fe *flattenError
	if errors.As(err, &fe) {
		return fe.status
	}
	return http.StatusInternalServerError
}

func (s *Server) handlePlain(w http.ResponseWriter, r *http.Request) {
	// Limit total request size.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

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

	// Read file data.
	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	res, err := s.flatten(filename, data, r.FormValue("locale"))
	if err != nil {
		s.log.Error("flatten failed",
			"filename", filename,
			"request_id", middleware.GetReqID(r.Context()),
			"error", err,
		)
		jsonError(w, err.Error(), statusOf(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

func (s *Server) handleBatchPlain(w http.ResponseWriter, r *http.Request) {
	maxTotal := s.cfg.MaxUploadBytes*int64(s.cfg.MaxBatchFiles) + 10*1024*1024
	r.Body = http.MaxBytesReader(w, r.Body, maxTotal)

	if err := r.ParseMultipartForm(64 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		jsonError(w, "at least one file is required", http.StatusBadRequest)
		return
	}
	if len(files) > s.cfg.MaxBatchFiles {
		jsonError(w, fmt.Sprintf("too many files (max %d)", s.cfg.MaxBatchFiles), http.StatusBadRequest)
		return
	}
	locale := r.FormValue("locale")

	var results []map[string]any
	for _, fh := range files {
		filename := sanitizeFilename(fh.Filename)
		if !parser.IsSupportedExtension(filename) {
			results = append(results, map[string]any{
				"filename": filename,
				"error":    fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)),
			})
			continue
		}

		f, err := fh.Open()
		if err != nil {
			results = append(results, map[string]any{
				"filename": filename,
				"error":    "failed to open file",
			})
			continue
		}

		data, err := io.ReadAll(io.LimitReader(f, s.cfg.MaxUploadBytes+1))
		f.Close()
		if err != nil || int64(len(data)) > s.cfg.MaxUploadBytes {
			results = append(results, map[string]any{
				"filename": filename,
				"error":    "file too large or read error",
			})
			continue
		}

		res, err := s.flatten(filename, data, locale)
		if err != nil {
			s.log.Warn("flatten failed", "filename", filename, "error", err)
			results = append(results, map[string]any{
				"filename": filename,
				"error":    err.Error(),
			})
			continue
		}

		results = append(results, map[string]any{
			"filename": res.Filename,
			"title":    res.Title,
			"text":     res.Text,
			"bytes":    res.Bytes,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"results": results})
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	// Remove any path separators that might have survived.
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
