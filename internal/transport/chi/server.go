// Package chi exposes the search and indexing services over HTTP.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/talentdex/internal/domain"
	healthuc "github.com/kailas-cloud/talentdex/internal/usecase/health"
	indexeruc "github.com/kailas-cloud/talentdex/internal/usecase/indexer"
	searchuc "github.com/kailas-cloud/talentdex/internal/usecase/search"
)

// Error codes returned in the "code" field of error responses.
const (
	codeBadRequest       = "bad_request"
	codeValidationFailed = "validation_failed"
	codeEmbeddingError   = "embedding_provider_error"
	codeSearchFailed     = "search_unavailable"
	codeInternalError    = "internal_error"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server routes HTTP requests to the usecase services.
type Server struct {
	search        *searchuc.Service
	indexer       *indexeruc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	indexer *indexeruc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search:  search,
		indexer: indexer,
		health:  health,
		logger:  logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrValidation, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrNoContent, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrEmbeddingProviderError, http.StatusInternalServerError, codeEmbeddingError),
		sentinelHandler(domain.ErrSearchUnavailable, http.StatusInternalServerError, codeSearchFailed),
	}
	return s
}

// Routes registers all API routes on the router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/search", s.Search)
		r.Route("/index", func(r chi.Router) {
			r.Post("/batch", s.IndexBatch)
			r.Post("/reindex", s.Reindex)
			r.Post("/backfill", s.Backfill)
		})
	})
}

// searchRequest is the POST /api/v1/search body.
type searchRequest struct {
	Query          string     `json:"query"`
	K              int        `json:"k,omitempty"`
	MatchThreshold float64    `json:"match_threshold,omitempty"`
	LLMConfig      *llmConfig `json:"llm_config,omitempty"`
}

type llmConfig struct {
	Enabled bool   `json:"enabled"`
	Model   string `json:"model,omitempty"`
}

// Search handles POST /api/v1/search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	opts := searchuc.Options{
		MatchThreshold: req.MatchThreshold,
		MatchCount:     req.K,
	}
	if req.LLMConfig != nil && req.LLMConfig.Enabled {
		opts.UseWeighting = true
		opts.WeightingModel = req.LLMConfig.Model
	}

	results, err := s.search.Search(r.Context(), req.Query, opts)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	if results == nil {
		results = []domain.Result{}
	}
	writeJSON(w, http.StatusOK, results)
}

// batchRequest is the POST /api/v1/index/batch body.
type batchRequest struct {
	Profiles []recordPayload `json:"profiles"`
}

// IndexBatch handles POST /api/v1/index/batch.
func (s *Server) IndexBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if len(req.Profiles) == 0 {
		writeError(w, http.StatusBadRequest, codeValidationFailed,
			`Missing or empty "profiles" array in request body`)
		return
	}

	records := make([]domain.Record, len(req.Profiles))
	for i, p := range req.Profiles {
		records[i] = p.toRecord()
	}

	report := s.indexer.IndexBatch(r.Context(), records)
	writeJSON(w, http.StatusOK, report)
}

// reindexRequest is the POST /api/v1/index/reindex body, the shape a
// row-change webhook delivers.
type reindexRequest struct {
	Record *recordPayload `json:"record"`
}

// Reindex handles POST /api/v1/index/reindex.
func (s *Server) Reindex(w http.ResponseWriter, r *http.Request) {
	var req reindexRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if req.Record == nil || req.Record.ID == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "record with an id is required")
		return
	}

	if err := s.indexer.Reindex(r.Context(), req.Record.toRecord()); err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Backfill handles POST /api/v1/index/backfill.
func (s *Server) Backfill(w http.ResponseWriter, r *http.Request) {
	report, err := s.indexer.Backfill(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// recordPayload mirrors domain.Record at the HTTP boundary. Callers send
// skills and target_industries as either a string or an array of strings.
type recordPayload struct {
	ID                  string     `json:"profile_id"`
	Name                string     `json:"name"`
	Bio                 string     `json:"bio"`
	Designation         string     `json:"designation"`
	Company             string     `json:"company"`
	Location            string     `json:"location"`
	Skills              flexString `json:"skills"`
	YearsOfExperience   int        `json:"years_of_experience"`
	CohortNumber        int        `json:"cohort_number"`
	IsStudent           bool       `json:"is_student"`
	WorkingProfessional bool       `json:"working_professional"`
	StudyStream         string     `json:"study_stream"`
	ExpectedOutcomes    string     `json:"expected_outcomes"`
	Track               string     `json:"track"`
	Founder             bool       `json:"founder"`
	FounderDetails      string     `json:"founder_details"`
	CodeType            string     `json:"code_type"`
	CurrentIndustry     string     `json:"current_industry"`
	Domain              string     `json:"domain"`
	TargetIndustries    flexString `json:"target_industries"`
	IndustryInterest    string     `json:"industry_interest"`
	InterestAreas       string     `json:"interest_areas"`
	OpenToWork          bool       `json:"open_to_work"`
	House               string     `json:"house"`
}

func (p *recordPayload) toRecord() domain.Record {
	return domain.Record{
		ID:                  p.ID,
		Name:                p.Name,
		Bio:                 p.Bio,
		Designation:         p.Designation,
		Company:             p.Company,
		Location:            p.Location,
		Skills:              string(p.Skills),
		YearsOfExperience:   p.YearsOfExperience,
		CohortNumber:        p.CohortNumber,
		IsStudent:           p.IsStudent,
		WorkingProfessional: p.WorkingProfessional,
		StudyStream:         p.StudyStream,
		ExpectedOutcomes:    p.ExpectedOutcomes,
		Track:               p.Track,
		Founder:             p.Founder,
		FounderDetails:      p.FounderDetails,
		CodeType:            p.CodeType,
		CurrentIndustry:     p.CurrentIndustry,
		Domain:              p.Domain,
		TargetIndustries:    string(p.TargetIndustries),
		IndustryInterest:    p.IndustryInterest,
		InterestAreas:       p.InterestAreas,
		OpenToWork:          p.OpenToWork,
		House:               p.House,
	}
}

// flexString accepts a JSON string or an array of strings, joined with
// ", ".
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexString(s)
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*f = flexString(strings.Join(list, ", "))
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrValidation,
		domain.ErrNoContent,
		domain.ErrEmbeddingProviderError,
		domain.ErrSearchUnavailable,
		domain.ErrKeywordIndexUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
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
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
