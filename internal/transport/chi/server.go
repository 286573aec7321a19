// Package chi is the HTTP transport: routing, CORS, auth, request schema
// validation, and the mapping from domain errors to response statuses.
package chi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/attendo-cloud/scangate/internal/domain"
	"github.com/attendo-cloud/scangate/internal/domain/property"
	healthuc "github.com/attendo-cloud/scangate/internal/usecase/health"
	patchuc "github.com/attendo-cloud/scangate/internal/usecase/patch"
	scanuc "github.com/attendo-cloud/scangate/internal/usecase/scan"
	searchuc "github.com/attendo-cloud/scangate/internal/usecase/search"
)

const maxBodyBytes = 1 << 20

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server wires the use case services to the HTTP routes.
type Server struct {
	search        *searchuc.Service
	scan          *scanuc.Service
	patch         *patchuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates the HTTP API server.
func NewServer(
	search *searchuc.Service,
	scan *scanuc.Service,
	patch *patchuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search: search,
		scan:   scan,
		patch:  patch,
		health: health,
		logger: logger,
	}
	s.errorHandlers = []errorHandler{
		ambiguousMatchHandler,
		upstreamHandler,
		sentinelHandler(domain.ErrValidation, http.StatusBadRequest),
		sentinelHandler(domain.ErrNoMatch, http.StatusNotFound),
		sentinelHandler(domain.ErrUnknownProperty, http.StatusBadRequest),
		sentinelHandler(property.ErrReadOnly, http.StatusBadRequest),
		sentinelHandler(property.ErrNotNumeric, http.StatusBadRequest),
	}
	return s
}

// Routes mounts the API on the given router.
func (s *Server) Routes(r chi.Router) {
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Get("/api/health", s.handleHealth)
	r.Post("/api/notion/search", s.handleSearch)
	r.Post("/api/notion/scan", s.handleScan)
	r.Patch("/api/notion/pages/{pageID}/property", s.handlePatchProperty)
	r.Handle("/metrics", promhttp.Handler())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.health.Check(r.Context()))
}

type searchRequest struct {
	Query    string `json:"query"`
	PageSize int    `json:"page_size"`
}

type searchResponse struct {
	Results []domain.PageSummary `json:"results"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if !s.decodeBody(w, r, searchSchema, &req) {
		return
	}

	results, err := s.search.Search(r.Context(), req.Query, req.PageSize)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	if results == nil {
		results = []domain.PageSummary{}
	}
	writeJSON(w, http.StatusOK, searchResponse{Results: results})
}

type scanRequest struct {
	ID    string `json:"id"`
	Debug bool   `json:"debug"`
}

type scanResponse struct {
	OK              bool            `json:"ok"`
	ScannedID       string          `json:"scannedId"`
	PageID          string          `json:"pageId"`
	Title           string          `json:"title"`
	FirstName       string          `json:"firstName"`
	LastName        string          `json:"lastName"`
	FullName        string          `json:"fullName"`
	Doc             string          `json:"doc"`
	DebugProperties json.RawMessage `json:"debugProperties,omitempty"`
}

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	var req scanRequest
	if !s.decodeBody(w, r, scanSchema, &req) {
		return
	}

	res, err := s.scan.Scan(r.Context(), req.ID)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	resp := scanResponse{
		OK:        true,
		ScannedID: res.ScannedID,
		PageID:    res.PageID,
		Title:     res.Title,
		FirstName: res.FirstName,
		LastName:  res.LastName,
		FullName:  res.FullName,
		Doc:       res.Doc,
	}
	if req.Debug {
		if raw, err := json.Marshal(res.Properties); err == nil {
			resp.DebugProperties = raw
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

type patchRequest struct {
	PropertyName string `json:"propertyName"`
	Value        any    `json:"value"`
}

type patchResponse struct {
	OK           bool   `json:"ok"`
	PageID       string `json:"pageId"`
	PropertyName string `json:"propertyName"`
	Type         string `json:"type"`
}

func (s *Server) handlePatchProperty(w http.ResponseWriter, r *http.Request) {
	pageID := chi.URLParam(r, "pageID")

	var req patchRequest
	if !s.decodeBody(w, r, patchSchema, &req) {
		return
	}

	res, err := s.patch.Patch(r.Context(), pageID, req.PropertyName, req.Value)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, patchResponse{
		OK:           true,
		PageID:       res.PageID,
		PropertyName: res.PropertyName,
		Type:         string(res.Type),
	})
}

// decodeBody reads, schema-validates, and unmarshals the request body.
// Writes the 400 response itself and returns false on failure.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, schema *requestSchema, out any) bool {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return false
	}
	if err := schema.validate(body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return false
	}
	if err := json.Unmarshal(body, out); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

// --- error mapping ---

type errorBody struct {
	Error   string               `json:"error"`
	Matches []domain.PageSummary `json:"matches,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorBody{Error: message})
}

func sentinelHandler(sentinel error, status int) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, err.Error())
		return true
	}
}

// ambiguousMatchHandler returns 409 with every matching page, so the operator
// can fix the duplicate titles; the flow never guesses.
func ambiguousMatchHandler(w http.ResponseWriter, err error) bool {
	var ambErr *domain.AmbiguousMatchError
	if !errors.As(err, &ambErr) {
		return false
	}
	writeJSON(w, http.StatusConflict, errorBody{
		Error:   ambErr.Error(),
		Matches: ambErr.Matches,
	})
	return true
}

// upstreamHandler forwards the Notion status when it is an HTTP error code,
// and maps anything else to 502.
func upstreamHandler(w http.ResponseWriter, err error) bool {
	var upErr *domain.UpstreamError
	if !errors.As(err, &upErr) {
		return false
	}
	status := upErr.Status
	if status < 400 || status > 599 {
		status = http.StatusBadGateway
	}
	writeError(w, status, upErr.Error())
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	for _, h := range s.errorHandlers {
		if h(w, err) {
			s.logger.Warn("request failed", zap.Error(err))
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error")
}
