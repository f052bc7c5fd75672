package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/roach88/recordq/internal/engine"
)

// Transport-level error codes, alongside engine.Kind values.
const (
	CodeInvalidBody      = "INVALID_BODY"
	CodeValidationFailed = "VALIDATION_FAILED"
	CodeInvalidQuery     = "INVALID_QUERY"
	CodeRateLimited      = "RATE_LIMITED"
	CodeUnavailable      = "UNAVAILABLE"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error   string   `json:"error"`
	Code    string   `json:"code"`
	Status  int      `json:"status"`
	Details []string `json:"details,omitempty"`
}

// statusFor maps an engine error kind to an HTTP status.
func statusFor(k engine.Kind) int {
	switch k {
	case engine.KindMissingID,
		engine.KindDuplicateID,
		engine.KindInvalidField,
		engine.KindInvalidSortOrder:
		return http.StatusBadRequest
	case engine.KindDatasetNotFound:
		return http.StatusNotFound
	case engine.KindStoreUnavailable:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// writeEngineError renders err. Store failures are logged and their
// cause is not exposed to the client.
func (s *Server) writeEngineError(w http.ResponseWriter, r *http.Request, err error) {
	var ee *engine.Error
	if !errors.As(err, &ee) {
		s.logger.Error("unexpected error", zap.String("request_id", RequestIDFrom(r.Context())), zap.Error(err))
		writeError(w, http.StatusInternalServerError, errorBody{
			Error: "internal error",
			Code:  "INTERNAL",
		})
		return
	}

	status := statusFor(ee.Kind)
	if status >= http.StatusInternalServerError {
		s.logger.Error("engine failure",
			zap.String("request_id", RequestIDFrom(r.Context())),
			zap.String("kind", string(ee.Kind)),
			zap.Error(err))
	}
	writeError(w, status, errorBody{
		Error: ee.Message,
		Code:  string(ee.Kind),
	})
}

func writeError(w http.ResponseWriter, status int, body errorBody) {
	body.Status = status
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
