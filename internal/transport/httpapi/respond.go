package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/va2ai/bvaapi2/internal/model"
)

// errorBody is the JSON error envelope. Detail carries a safe, human-readable
// message; upstream response bodies are never echoed into it.
type errorBody struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", zap.Error(err))
	}
}

// writeError maps the error taxonomy onto HTTP statuses. Anything outside the
// taxonomy is a 500 with a generic body; the detail stays in the log.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		// The client has gone away; 499 in the access log is all that remains.
		w.WriteHeader(499)
		return
	}

	code := model.ErrorCode(err)

	var status int
	switch code {
	case "invalid_query", "range_too_wide":
		status = http.StatusBadRequest
	case "case_not_found":
		status = http.StatusNotFound
	case "text_too_short":
		status = http.StatusUnprocessableEntity
	case "upstream_unavailable":
		status = http.StatusBadGateway
	default:
		status = http.StatusInternalServerError
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("request failed",
			zap.String("path", r.URL.Path),
			zap.Error(err))
		s.writeJSON(w, status, errorBody{Error: code})
		return
	}

	s.logger.Debug("request rejected",
		zap.String("path", r.URL.Path),
		zap.String("code", code),
		zap.Error(err))
	s.writeJSON(w, status, errorBody{Error: code, Detail: err.Error()})
}
