package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/fwojciec/pagedigest"
	"github.com/go-chi/chi/v5/middleware"
)

// RequestLogger logs one line per request.
func RequestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)
			log.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", sw.status,
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// codes maps application error codes to HTTP status codes.
var codes = map[string]int{
	pagedigest.ECONFLICT: http.StatusConflict,
	pagedigest.EINVALID:  http.StatusBadRequest,
	pagedigest.EEMPTY:    http.StatusBadRequest,
	pagedigest.ENOTFOUND: http.StatusNotFound,
	pagedigest.EINTERNAL: http.StatusInternalServerError,
}

// errorStatus returns the HTTP status for an application error.
func errorStatus(err error) int {
	if status, ok := codes[pagedigest.ErrorCode(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// writeError writes err as {"error": message}. Internal errors are logged
// and their details hidden from the client.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		s.log.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	jsonError(w, pagedigest.ErrorMessage(err), status)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
