// Package server exposes the weekgrid pipeline over HTTP.
//
// # Endpoints
//
//	GET  /healthz          liveness and version
//	POST /compile          document body → timetable JSON
//	POST /render/{format}  document body → rendered artifact
//
// The document format is taken from the "doc" query parameter, falling back
// to the request Content-Type (application/toml, application/json, anything
// else is YAML). /render accepts "title", "summary=false" and "refresh=true"
// query parameters; /compile accepts "refresh=true".
//
// Failures are returned as JSON:
//
//	{"code": "INVALID_RANGE", "message": "...", "field": "Monday[1]", "text": "9:00 AM - 9:10 AM"}
//
// Document errors map to 422, bad requests to 400, unavailable converters to
// 501 and everything else to 500.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/weekgrid/pkg/buildinfo"
	errs "github.com/matzehuels/weekgrid/pkg/errors"
	"github.com/matzehuels/weekgrid/pkg/pipeline"
	"github.com/matzehuels/weekgrid/pkg/timetable"
)

// MaxDocumentBytes bounds request bodies.
const MaxDocumentBytes = 1 << 20

// shutdownTimeout bounds graceful shutdown in ListenAndServe.
const shutdownTimeout = 10 * time.Second

// Server serves the pipeline over HTTP.
type Server struct {
	runner *pipeline.Runner
	base   pipeline.Options
	logger *log.Logger
	router chi.Router
}

// New builds a server around runner. base supplies the default colours,
// title and summary settings for every request.
func New(runner *pipeline.Runner, base pipeline.Options, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		runner: runner,
		base:   base,
		logger: logger.WithPrefix("http"),
		router: chi.NewRouter(),
	}

	s.router.Use(requestID)
	s.router.Use(s.requestLogger)
	s.router.Use(middleware.Recoverer)

	s.router.Get("/healthz", s.handleHealth)
	s.router.Post("/compile", s.handleCompile)
	s.router.Post("/render/{format}", s.handleRender)
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": buildinfo.Resolved()})
}

func (s *Server) handleCompile(w http.ResponseWriter, r *http.Request) {
	data, opts, err := s.readRequest(w, r)
	if err != nil {
		writeError(w, err)
		return
	}

	tt, hit, err := s.runner.CompileWithCacheInfo(r.Context(), data, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	body, err := timetable.MarshalResult(tt)
	if err != nil {
		writeError(w, errs.Wrap(errs.ErrCodeInternal, err, "encode timetable"))
		return
	}

	w.Header().Set("Content-Type", pipeline.ContentType(pipeline.FormatJSON))
	w.Header().Set("X-Cache", cacheHeader(hit))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := strings.ToLower(chi.URLParam(r, "format"))
	if err := pipeline.ValidateFormat(format); err != nil {
		writeError(w, err)
		return
	}

	data, opts, err := s.readRequest(w, r)
	if err != nil {
		writeError(w, err)
		return
	}
	opts.Formats = []string{format}

	q := r.URL.Query()
	if title := q.Get("title"); title != "" {
		opts.Title = title
	}
	if v := q.Get("summary"); v != "" {
		on, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, errs.New(errs.ErrCodeInvalidInput, "summary must be true or false, got %q", v))
			return
		}
		opts.NoSummary = !on
	}

	res, err := s.runner.Execute(r.Context(), data, opts)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", pipeline.ContentType(format))
	w.Header().Set("X-Cache", cacheHeader(res.CacheInfo.CompileHit && res.CacheInfo.RenderHit))
	w.Header().Set("X-Timetable-Hash", res.TimetableHash)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

// readRequest reads the document body and builds per-request options.
func (s *Server) readRequest(w http.ResponseWriter, r *http.Request) ([]byte, pipeline.Options, error) {
	opts := s.base
	opts.Logger = s.logger.With("request_id", RequestID(r.Context()))
	opts.DocumentFormat = documentFormat(r)

	if v := r.URL.Query().Get("refresh"); v != "" {
		refresh, err := strconv.ParseBool(v)
		if err != nil {
			return nil, opts, errs.New(errs.ErrCodeInvalidInput, "refresh must be true or false, got %q", v)
		}
		opts.Refresh = refresh
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxDocumentBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, opts, errs.New(errs.ErrCodeInvalidInput, "document exceeds %d bytes", MaxDocumentBytes)
		}
		return nil, opts, errs.Wrap(errs.ErrCodeInvalidInput, err, "read request body")
	}
	if len(data) == 0 {
		return nil, opts, errs.New(errs.ErrCodeInvalidInput, "request body is empty")
	}
	return data, opts, nil
}

func documentFormat(r *http.Request) string {
	if f := r.URL.Query().Get("doc"); f != "" {
		return f
	}
	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mt {
	case "application/toml":
		return "toml"
	case "application/json":
		return "json"
	default:
		return "yaml"
	}
}

func cacheHeader(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}

// =============================================================================
// Responses
// =============================================================================

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Text    string `json:"text,omitempty"`
}

// StatusFor maps an error code to an HTTP status.
func StatusFor(code errs.Code) int {
	switch code {
	case errs.ErrCodeMalformedTime, errs.ErrCodeInvalidRange, errs.ErrCodeDocumentShape:
		return http.StatusUnprocessableEntity
	case errs.ErrCodeInvalidInput, errs.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	case errs.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errs.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	code := errs.GetCode(err)
	if code == "" {
		code = errs.ErrCodeInternal
	}
	writeJSON(w, StatusFor(code), errorBody{
		Code:    string(code),
		Message: errs.UserMessage(err),
		Field:   errs.Field(err),
		Text:    errs.Text(err),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
