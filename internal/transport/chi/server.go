// Package chi exposes the recruiter API over HTTP.
package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/roshan-Kawale/AI-Resume-Parser/internal/domain"
	candidateuc "github.com/roshan-Kawale/AI-Resume-Parser/internal/usecase/candidate"
	healthuc "github.com/roshan-Kawale/AI-Resume-Parser/internal/usecase/health"
	jobuc "github.com/roshan-Kawale/AI-Resume-Parser/internal/usecase/job"
)

// Error codes returned in the JSON error envelope.
const (
	codeBadRequest       = "bad_request"
	codeValidationFailed = "validation_failed"
	codeInvalidStatus    = "invalid_status"
	codeExtractionFailed = "extraction_failed"
	codeNotFound         = "not_found"
	codeProviderError    = "embedding_provider_error"
	codeInternalError    = "internal_error"
)

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server holds the HTTP handlers for the recruiter API.
type Server struct {
	candidates *candidateuc.Service
	jobs       *jobuc.Service
	health     *healthuc.Service
	logger     *zap.Logger

	maxResumeBytes int64
	errorHandlers  []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	candidates *candidateuc.Service,
	jobs *jobuc.Service,
	health *healthuc.Service,
	maxResumeBytes int64,
	logger *zap.Logger,
) *Server {
	if maxResumeBytes <= 0 {
		maxResumeBytes = 5 << 20
	}
	s := &Server{
		candidates:     candidates,
		jobs:           jobs,
		health:         health,
		maxResumeBytes: maxResumeBytes,
		logger:         logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidStatus, http.StatusBadRequest, codeInvalidStatus),
		sentinelHandler(domain.ErrValidation, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrExtraction, http.StatusBadRequest, codeExtractionFailed),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, codeNotFound),
		sentinelHandler(domain.ErrEmbeddingProviderError, http.StatusBadGateway, codeProviderError),
	}
	return s
}

// Routes registers all API routes on the router.
func (s *Server) Routes(r chi.Router) {
	r.Post("/candidates/apply", s.Apply)
	r.Get("/candidates/search", s.Search)
	r.Get("/candidates/{id}", s.GetCandidate)
	r.Put("/candidates/status", s.UpdateStatus)
	r.Post("/jobs/create", s.CreateJob)
	r.Get("/health", s.Health)
	r.Get("/metrics", s.Metrics)
}

// candidateJSON is the wire form of a candidate record.
type candidateJSON struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	LinkedinURL    string    `json:"linkedinUrl"`
	Skills         []string  `json:"skills"`
	Experience     string    `json:"experience"`
	Education      string    `json:"education"`
	ResumeText     string    `json:"resumeText,omitempty"`
	AISummary      string    `json:"aiSummary"`
	RelevanceScore int       `json:"relevanceScore"`
	MissingSkills  []string  `json:"missingSkills"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func candidateToJSON(c domain.Candidate) candidateJSON {
	skills := c.Skills
	if skills == nil {
		skills = []string{}
	}
	missing := c.MissingSkills
	if missing == nil {
		missing = []string{}
	}
	return candidateJSON{
		ID:             c.ID,
		Name:           c.Name,
		Email:          c.Email,
		LinkedinURL:    c.LinkedinURL,
		Skills:         skills,
		Experience:     c.Experience,
		Education:      c.Education,
		ResumeText:     c.ResumeText,
		AISummary:      c.AISummary,
		RelevanceScore: c.RelevanceScore,
		MissingSkills:  missing,
		Status:         string(c.Status),
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

// jobJSON is the wire form of a job posting.
type jobJSON struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	RequiredSkills []string  `json:"requiredSkills"`
	Experience     string    `json:"experience,omitempty"`
	Education      string    `json:"education,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

func jobToJSON(j domain.JobDescription) jobJSON {
	skills := j.RequiredSkills
	if skills == nil {
		skills = []string{}
	}
	return jobJSON{
		ID:             j.ID,
		Title:          j.Title,
		Description:    j.Description,
		RequiredSkills: skills,
		Experience:     j.Experience,
		Education:      j.Education,
		CreatedAt:      j.CreatedAt,
	}
}

// Apply handles POST /candidates/apply. Accepts a multipart form with the
// applicant fields and a PDF resume under the "resume" file field.
func (s *Server) Apply(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxResumeBytes)
	if err := r.ParseMultipartForm(s.maxResumeBytes); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid multipart form: "+err.Error())
		return
	}

	in := candidateuc.ApplyInput{
		Name:           r.FormValue("name"),
		Email:          r.FormValue("email"),
		LinkedinURL:    r.FormValue("linkedinUrl"),
		Skills:         splitCSV(r.FormValue("skills")),
		Experience:     r.FormValue("experience"),
		Education:      r.FormValue("education"),
		JobDescription: r.FormValue("jobDescription"),
	}

	file, _, err := r.FormFile("resume")
	if err == nil {
		defer file.Close()
		data, readErr := readAll(file, s.maxResumeBytes)
		if readErr != nil {
			writeError(w, http.StatusBadRequest, codeBadRequest, "failed to read resume file")
			return
		}
		in.Resume = data
	}

	c, err := s.candidates.Apply(r.Context(), in)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":   "Application submitted successfully",
		"candidate": candidateToJSON(c),
	})
}

// searchResult is one search hit with its similarity score.
type searchResult struct {
	candidateJSON
	MatchScore int `json:"matchScore"`
}

// Search handles GET /candidates/search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	topK := 0
	if raw := r.URL.Query().Get("topK"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, codeValidationFailed, "topK must be a positive integer")
			return
		}
		topK = n
	}

	matches, err := s.candidates.Search(r.Context(), query, topK)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	results := make([]searchResult, len(matches))
	for i, m := range matches {
		results[i] = searchResult{
			candidateJSON: candidateToJSON(m.Candidate),
			MatchScore:    m.MatchScore,
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"candidates": results,
		"count":      len(results),
	})
}

// GetCandidate handles GET /candidates/{id}.
func (s *Server) GetCandidate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	c, err := s.candidates.Fetch(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"candidate": candidateToJSON(c),
	})
}

// UpdateStatus handles PUT /candidates/status.
func (s *Server) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CandidateID string `json:"candidateId"`
		Status      string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}

	if err := s.candidates.UpdateStatus(r.Context(), req.CandidateID, req.Status); err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Candidate status updated successfully",
	})
}

// CreateJob handles POST /jobs/create.
func (s *Server) CreateJob(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title          string   `json:"title"`
		Description    string   `json:"description"`
		RequiredSkills []string `json:"requiredSkills"`
		Experience     string   `json:"experience"`
		Education      string   `json:"education"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}

	j, err := s.jobs.Create(r.Context(), jobuc.CreateInput{
		Title:          req.Title,
		Description:    req.Description,
		RequiredSkills: req.RequiredSkills,
		Experience:     req.Experience,
		Education:      req.Education,
	})
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Job posted successfully",
		"job":     jobToJSON(j),
	})
}

// Health handles GET /health.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
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

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a client-facing message without exposing
// internals: the full error text is only surfaced for sentinel errors the
// API knows about.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrValidation,
		domain.ErrInvalidStatus,
		domain.ErrExtraction,
		domain.ErrNotFound,
		domain.ErrEmbeddingProviderError,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return err.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			s.logger.Warn("domain error", zap.Error(err))
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}

// readAll reads the uploaded file, bounding it one byte past the limit so
// an oversized upload is detected rather than silently truncated.
func readAll(f io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("resume exceeds %d bytes", limit)
	}
	return data, nil
}

// splitCSV splits a comma-separated form value into trimmed parts.
func splitCSV(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
