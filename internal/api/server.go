package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/resume-matcher/backend/internal/intake"
	"github.com/resume-matcher/backend/internal/match"
	"github.com/resume-matcher/backend/internal/metrics"
	"github.com/resume-matcher/backend/internal/storage"
)

type Server struct {
	Matcher *match.Matcher
	Intake  *intake.Validator
	Reports storage.ReportStorage // nil disables report persistence
	Logger  *logrus.Entry
	Router  chi.Router
}

func NewServer(matcher *match.Matcher, validator *intake.Validator, reports storage.ReportStorage, logger *logrus.Entry) *Server {
	s := &Server{
		Matcher: matcher,
		Intake:  validator,
		Reports: reports,
		Logger:  logger,
		Router:  chi.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.Router.Use(metrics.Middleware())
	s.Router.Get("/health", s.handleHealth)
	s.Router.Post("/api/v1/match", s.handleMatch)
	s.Router.Post("/api/v1/match/upload", s.handleMatchUpload)
	s.Router.Handle("/metrics", promhttp.Handler())
}

// Responses
type ErrorResponse struct {
	Error string `json:"error"`
}

type MatchResponse struct {
	Results      []match.Result `json:"results"`
	TotalMatched int            `json:"total_matched"`
}

// matchRequest uses pointer fields so missing keys can be told apart
// from empty values during validation.
type matchRequest struct {
	Resumes        []resumeEntry `json:"resumes"`
	JobDescription *string       `json:"job_description"`
}

type resumeEntry struct {
	Name    *string `json:"name"`
	Content *string `json:"content"`
}

// Handlers

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		jsonResponse(w, http.StatusBadRequest, ErrorResponse{Error: "Content-Type must be application/json"})
		return
	}

	var req matchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonResponse(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid JSON"})
		return
	}

	if req.Resumes == nil {
		jsonResponse(w, http.StatusBadRequest, ErrorResponse{Error: "Missing required field: 'resumes'"})
		return
	}
	if req.JobDescription == nil {
		jsonResponse(w, http.StatusBadRequest, ErrorResponse{Error: "Missing required field: 'job_description'"})
		return
	}
	if len(req.Resumes) == 0 {
		jsonResponse(w, http.StatusBadRequest, ErrorResponse{Error: "'resumes' list cannot be empty"})
		return
	}
	if strings.TrimSpace(*req.JobDescription) == "" {
		jsonResponse(w, http.StatusBadRequest, ErrorResponse{Error: "'job_description' must be a non-empty string"})
		return
	}

	resumes := make([]match.Resume, len(req.Resumes))
	for i, entry := range req.Resumes {
		if entry.Name == nil {
			jsonResponse(w, http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("Resume at index %d is missing 'name' field", i)})
			return
		}
		if entry.Content == nil {
			jsonResponse(w, http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("Resume at index %d is missing 'content' field", i)})
			return
		}
		resumes[i] = match.Resume{Name: *entry.Name, Content: *entry.Content}
	}

	s.respondWithRanking(w, resumes, *req.JobDescription)
}

func (s *Server) handleMatchUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonResponse(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid multipart form"})
		return
	}

	jobDescription := r.FormValue("job_description")
	if strings.TrimSpace(jobDescription) == "" {
		jsonResponse(w, http.StatusBadRequest, ErrorResponse{Error: "'job_description' must be a non-empty string"})
		return
	}

	files := r.MultipartForm.File["resumes"]
	if len(files) == 0 {
		jsonResponse(w, http.StatusBadRequest, ErrorResponse{Error: "At least one 'resumes' file is required"})
		return
	}

	resumes := make([]match.Resume, 0, len(files))
	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			jsonResponse(w, http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("Cannot read file %q", header.Filename)})
			return
		}
		text, err := s.Intake.Extract(header.Filename, file)
		file.Close()
		if err != nil {
			jsonResponse(w, http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("File %q rejected: %v", header.Filename, err)})
			return
		}
		resumes = append(resumes, match.Resume{Name: header.Filename, Content: text})
	}

	s.respondWithRanking(w, resumes, jobDescription)
}

// respondWithRanking runs the match, records metrics, persists the
// report when a store is configured, and writes the response.
func (s *Server) respondWithRanking(w http.ResponseWriter, resumes []match.Resume, jobDescription string) {
	s.Logger.Infof("Matching %d resumes against job description", len(resumes))

	start := time.Now()
	results := s.Matcher.Match(resumes, jobDescription)
	metrics.ObserveMatch(len(resumes), time.Since(start))

	s.persistReport(jobDescription, results)

	jsonResponse(w, http.StatusOK, MatchResponse{
		Results:      results,
		TotalMatched: len(results),
	})
}

func (s *Server) persistReport(jobDescription string, results []match.Result) {
	if s.Reports == nil {
		return
	}
	report := &storage.Report{
		ID:          fmt.Sprintf("match-%d", time.Now().UnixNano()),
		CreatedAt:   time.Now().UTC(),
		ResumeCount: len(results),
		QueryChars:  len(jobDescription),
		Results:     results,
	}
	if err := s.Reports.Save(report); err != nil {
		s.Logger.WithError(err).Error("Failed to save match report")
	}
}

func jsonResponse(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
