package http

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/pagedigest"
	"github.com/fwojciec/pagedigest/analyze"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// analyzeRequest is the body of POST /api/analyze. Content wins over URL;
// the URL is then only used to resolve relative links.
type analyzeRequest struct {
	URL     string `json:"url"`
	Content string `json:"content"`
}

// record is a digest as shown to clients, saved or not.
type record struct {
	*pagedigest.AnalysisResult
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	URL       *string   `json:"url"`
	Saved     bool      `json:"saved"`
}

type analyzeResponse struct {
	Analysis record  `json:"analysis"`
	Saved    bool    `json:"saved"`
	RecordID *string `json:"recordId"`
}

type updateTasksRequest struct {
	Tasks *[]pagedigest.Task `json:"tasks"`
}

func insightRecord(insight *pagedigest.Insight) record {
	return record{
		AnalysisResult: &insight.AnalysisResult,
		ID:             insight.ID,
		CreatedAt:      insight.CreatedAt,
		URL:            insight.URL,
		Saved:          true,
	}
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.MaxBodyBytes)

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	req.URL = strings.TrimSpace(req.URL)
	if req.URL == "" && req.Content == "" {
		jsonError(w, "Provide a URL or enriched content.", http.StatusBadRequest)
		return
	}
	if req.URL != "" {
		if err := validateURL(req.URL); err != nil {
			s.writeError(w, r, err)
			return
		}
	}

	document := req.Content
	if document == "" {
		if s.Fetcher == nil {
			jsonError(w, "fetching is disabled; provide content", http.StatusBadRequest)
			return
		}
		html, err := s.Fetcher.Fetch(r.Context(), req.URL)
		if err != nil {
			if pagedigest.ErrorCode(err) == pagedigest.EINVALID {
				s.writeError(w, r, err)
				return
			}
			s.log.Warn("fetch failed", "url", req.URL, "error", err)
			jsonError(w, err.Error(), http.StatusBadGateway)
			return
		}
		document = html
	}

	analysis, err := s.Analyzer.Analyze(document, req.URL)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var srcURL *string
	if req.URL != "" {
		srcURL = &req.URL
	} else if analysis.Metadata.URL != nil {
		srcURL = analysis.Metadata.URL
	}

	resp := analyzeResponse{
		Analysis: record{
			AnalysisResult: analysis,
			ID:             uuid.New().String(),
			CreatedAt:      time.Now().UTC(),
			URL:            srcURL,
		},
	}

	if insight := s.save(r, document, srcURL, analysis); insight != nil {
		resp.Analysis = insightRecord(insight)
		resp.Saved = true
		resp.RecordID = &insight.ID
	}

	writeJSON(w, http.StatusOK, resp)
}

// save persists an analysis. Failures are logged and yield nil; an
// unsaved analysis is still a successful response.
func (s *Server) save(r *http.Request, document string, srcURL *string, analysis *pagedigest.AnalysisResult) *pagedigest.Insight {
	if s.Insights == nil {
		return nil
	}

	insight := &pagedigest.Insight{
		URL:            srcURL,
		ContentHash:    analyze.ContentHash(document),
		AnalysisResult: *analysis,
	}
	if s.Converter != nil {
		var source string
		if srcURL != nil {
			source = *srcURL
		}
		md, err := s.Converter.Convert(document, source)
		if err != nil {
			s.log.Warn("markdown conversion failed", "error", err)
		} else {
			insight.Markdown = md
		}
	}

	if err := s.Insights.CreateInsight(r.Context(), insight); err != nil {
		s.log.Error("insight insert failed", "error", err)
		return nil
	}
	return insight
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	data := []record{}
	if s.Insights == nil {
		writeJSON(w, http.StatusOK, map[string]any{"data": data})
		return
	}

	limit := DefaultHistoryLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = min(n, maxHistoryLimit)
		}
	}

	insights, err := s.Insights.FindInsights(r.Context(), pagedigest.InsightFilter{Limit: limit})
	if err != nil {
		s.log.Error("history fetch failed", "error", err)
		writeJSON(w, http.StatusOK, map[string]any{"data": data})
		return
	}
	for _, insight := range insights {
		data = append(data, insightRecord(insight))
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": data})
}

func (s *Server) handleGetInsight(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	insight, err := s.Insights.FindInsightByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, insight)
}

func (s *Server) handleDeleteInsight(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	if err := s.Insights.DeleteInsight(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUpdateTasks(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.MaxBodyBytes)

	var req updateTasksRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Tasks == nil {
		jsonError(w, "tasks required", http.StatusBadRequest)
		return
	}

	if _, err := s.Insights.UpdateTasks(r.Context(), chi.URLParam(r, "id"), *req.Tasks); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// requireStore writes 503 and returns false when no store is configured.
func (s *Server) requireStore(w http.ResponseWriter) bool {
	if s.Insights == nil {
		jsonError(w, "storage is not configured", http.StatusServiceUnavailable)
		return false
	}
	return true
}

// validateURL accepts absolute http and https URLs.
func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return pagedigest.Errorf(pagedigest.EINVALID, "invalid url %q", raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return pagedigest.Errorf(pagedigest.EINVALID, "unsupported url scheme %q", u.Scheme)
	}
	return nil
}
