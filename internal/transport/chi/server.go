package chi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	gochi "github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/tablesearch/internal/domain"
	"github.com/kailas-cloud/tablesearch/internal/domain/search/request"
	"github.com/kailas-cloud/tablesearch/internal/esquery"
	"github.com/kailas-cloud/tablesearch/internal/logger"
)

// Error codes returned in error bodies.
const (
	CodeBadRequest       = "bad_request"
	CodeValidationFailed = "validation_failed"
	CodeUnauthorized     = "unauthorized"
	CodeBodyTooLarge     = "body_too_large"
	CodeInternalError    = "internal_error"
)

// ErrorResponse is the JSON error body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HealthResponse is the GET /health body.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

// Compiler compiles table searches. Implemented by usecase/search.Service.
type Compiler interface {
	CompileTables(ctx context.Context, req *request.TableSearch) esquery.Document
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server serves the query compilation API.
type Server struct {
	compiler      Compiler
	logger        *zap.Logger
	maxBodyBytes  int64
	defaultLimit  int
	version       string
	errorHandlers []errorHandler
}

// Options tunes request handling.
type Options struct {
	MaxBodyBytes int64
	DefaultLimit int
	Version      string
}

// NewServer creates an HTTP API server.
func NewServer(compiler Compiler, log *zap.Logger, opts Options) *Server {
	s := &Server{
		compiler:     compiler,
		logger:       log,
		maxBodyBytes: opts.MaxBodyBytes,
		defaultLimit: opts.DefaultLimit,
		version:      opts.Version,
	}
	s.errorHandlers = []errorHandler{
		invalidParamHandler,
		sentinelHandler(domain.ErrInvalidRequest, http.StatusBadRequest, CodeBadRequest),
		sentinelHandler(domain.ErrUnauthorized, http.StatusUnauthorized, CodeUnauthorized),
	}
	return s
}

// Mount registers the API routes on r.
func (s *Server) Mount(r gochi.Router) {
	r.Post("/tables/query", s.CompileTablesPost)
	r.Get("/tables/query", s.CompileTablesGet)
	r.Get("/health", s.HealthCheck)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
}

// CompileTablesPost handles POST /tables/query.
func (s *Server) CompileTablesPost(w http.ResponseWriter, r *http.Request) {
	if s.maxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
	}

	var body TableSearchBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, CodeBodyTooLarge,
				fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
			return
		}
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	s.compileTables(w, r, &body)
}

// CompileTablesGet handles GET /tables/query.
func (s *Server) CompileTablesGet(w http.ResponseWriter, r *http.Request) {
	params, err := bindTableSearchParams(r.URL.Query())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	body, err := params.toBody()
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	s.compileTables(w, r, &body)
}

func (s *Server) compileTables(w http.ResponseWriter, r *http.Request, body *TableSearchBody) {
	req, err := body.ToRequest(s.defaultLimit)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	doc := s.compiler.CompileTables(r.Context(), &req)
	writeJSON(w, http.StatusOK, doc)
}

// HealthCheck handles GET /health. The compiler has no dependencies to probe.
func (s *Server) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Version: s.version})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: message})
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, sentinel.Error())
		return true
	}
}

// invalidParamHandler reports which parameter was rejected.
func invalidParamHandler(w http.ResponseWriter, err error) bool {
	var ipe *domain.InvalidParamError
	if !errors.As(err, &ipe) {
		return false
	}
	writeError(w, http.StatusBadRequest, CodeValidationFailed,
		fmt.Sprintf("invalid parameter %q: %s", ipe.Param, ipe.Reason))
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := s.requestLogger(r.Context())
	for _, h := range s.errorHandlers {
		if h(w, err) {
			log.Warn("request rejected", zap.Error(err))
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}

// requestLogger returns the per-request logger, falling back to the server's.
func (s *Server) requestLogger(ctx context.Context) *zap.Logger {
	if l := logger.FromContext(ctx); l.Core().Enabled(zap.FatalLevel) {
		return l
	}
	return s.logger
}
