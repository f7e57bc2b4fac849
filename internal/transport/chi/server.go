package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	gochi "github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"google.golang.org/protobuf/encoding/protojson"

	"github.com/kailas-cloud/vecprep/internal/domain"
	"github.com/kailas-cloud/vecprep/internal/logger"
	healthuc "github.com/kailas-cloud/vecprep/internal/usecase/health"
	prepareuc "github.com/kailas-cloud/vecprep/internal/usecase/prepare"
)

// Error codes returned in ErrorResponse.Code.
const (
	CodeBadRequest       = "bad_request"
	CodeUnknownOperation = "unknown_operation"
	CodeTypeMismatch     = "type_mismatch"
	CodeInvalidParameter = "invalid_parameter"
	CodeUnsupported      = "unsupported"
	CodeInternalError    = "internal_error"
)

// Render targets selected with ?target=.
const (
	TargetWire   = "wire"
	TargetQdrant = "qdrant"
)

// ErrorResponse is the JSON body of every non-2xx response.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server exposes the request builders over HTTP.
type Server struct {
	prepare       *prepareuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	maxBodyBytes  int64
	marshal       protojson.MarshalOptions
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	prepare *prepareuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
	maxBodyBytes int64,
) *Server {
	s := &Server{
		prepare:      prepare,
		health:       health,
		logger:       logger,
		maxBodyBytes: maxBodyBytes,
		marshal:      protojson.MarshalOptions{UseProtoNames: true},
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrTypeMismatch, http.StatusBadRequest, CodeTypeMismatch),
		sentinelHandler(domain.ErrInvalidParameter, http.StatusBadRequest, CodeInvalidParameter),
		sentinelHandler(domain.ErrUnsupported, http.StatusUnprocessableEntity, CodeUnsupported),
	}
	return s
}

// Routes mounts the API on r.
func (s *Server) Routes(r gochi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.Route("/v1/prepare", func(r gochi.Router) {
		r.Get("/", s.ListOperations)
		r.Post("/{op}", s.Prepare)
	})
}

// ListOperations handles GET /v1/prepare.
func (s *Server) ListOperations(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"operations": prepareuc.Ops})
}

// Prepare handles POST /v1/prepare/{op}.
func (s *Server) Prepare(w http.ResponseWriter, r *http.Request) {
	op, err := prepareuc.ParseOp(gochi.URLParam(r, "op"))
	if err != nil {
		writeError(w, http.StatusNotFound, CodeUnknownOperation, err.Error())
		return
	}

	target := r.URL.Query().Get("target")
	if target == "" {
		target = TargetWire
	}
	if target != TargetWire && target != TargetQdrant {
		writeError(w, http.StatusBadRequest, CodeBadRequest,
			fmt.Sprintf("target must be %q or %q, got %q", TargetWire, TargetQdrant, target))
		return
	}

	var args prepareuc.Args
	if s.maxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&args); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	ctx := logger.WithFields(r.Context(), zap.String("operation", string(op)), zap.String("target", target))

	if target == TargetQdrant {
		msg, err := s.prepare.BuildQdrant(ctx, op, args)
		if err != nil {
			s.handleDomainError(w, err)
			return
		}
		body, err := s.marshal.Marshal(msg)
		if err != nil {
			s.handleDomainError(w, fmt.Errorf("marshal qdrant request: %w", err))
			return
		}
		writeRaw(w, http.StatusOK, body)
		return
	}

	req, err := s.prepare.Build(ctx, op, args)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, report)
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeRaw(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: message})
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
// Validation messages describe the caller's own input and are returned as is.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, err.Error())
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	for _, h := range s.errorHandlers {
		if h(w, err) {
			s.logger.Debug("request rejected", zap.Error(err))
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}
