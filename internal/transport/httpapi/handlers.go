package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/va2ai/bvaapi2/internal/model"
)

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req model.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, fmt.Errorf("%w: malformed request body", model.ErrInvalidQuery))
		return
	}

	resp, err := s.pipeline.Search(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCase(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rec, err := s.pipeline.Case(r.Context(), q.Get("url"), boolParam(q.Get("full_text")), boolParam(q.Get("summarize")))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, rec)
}

// handleCaseText serves the raw document as text/plain, with the structured
// essentials carried in headers so scripted consumers keep them without
// parsing JSON.
func (s *Server) handleCaseText(w http.ResponseWriter, r *http.Request) {
	rec, err := s.pipeline.CaseText(r.Context(), r.URL.Query().Get("url"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Case-Number", rec.CaseNumber)
	w.Header().Set("X-Year", strconv.Itoa(rec.Year))
	w.Header().Set("X-Text-Length", strconv.Itoa(rec.TextLength))
	_, _ = w.Write([]byte(rec.FullText))
}

// batchSearchRequest is the inbound batch shape.
type batchSearchRequest struct {
	Queries  []string `json:"queries"`
	Year     int      `json:"year,omitempty"`
	MaxPages int      `json:"max_pages,omitempty"`
}

func (s *Server) handleBatchSearch(w http.ResponseWriter, r *http.Request) {
	var req batchSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, fmt.Errorf("%w: malformed request body", model.ErrInvalidQuery))
		return
	}

	results, err := s.pipeline.BatchSearch(r.Context(), req.Queries, req.Year, req.MaxPages)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"results": results,
		"count":   len(results),
	})
}

func (s *Server) handleAnalyzeText(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var keywords []string
	for _, kw := range strings.Split(q.Get("keywords"), ",") {
		if kw = strings.TrimSpace(kw); kw != "" {
			keywords = append(keywords, kw)
		}
	}

	result, err := s.pipeline.Analyze(r.Context(), q.Get("url"), keywords, boolParam(q.Get("include_context")))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func boolParam(v string) bool {
	b, _ := strconv.ParseBool(v)
	return b
}
