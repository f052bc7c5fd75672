package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/roach88/recordq/internal/record"
	"github.com/roach88/recordq/internal/validate"
)

type insertResponse struct {
	Message  string `json:"message"`
	Dataset  string `json:"dataset"`
	RecordID int64  `json:"recordId"`
}

func (s *Server) handleInsert(w http.ResponseWriter, r *http.Request) {
	dataset := r.PathValue("dataset")

	var rec record.Record
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err := dec.Decode(&rec); err != nil {
		writeError(w, http.StatusBadRequest, errorBody{
			Error: "Invalid request body or data type",
			Code:  CodeInvalidBody,
		})
		return
	}

	if err := s.validate(rec); err != nil {
		var ve *validate.Error
		if errors.As(err, &ve) {
			writeError(w, http.StatusBadRequest, errorBody{
				Error:   "Validation failed",
				Code:    CodeValidationFailed,
				Details: ve.Details(),
			})
			return
		}
		s.writeEngineError(w, r, err)
		return
	}

	stored, err := s.engine.Insert(r.Context(), dataset, rec)
	if err != nil {
		s.writeEngineError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, insertResponse{
		Message:  "Record added successfully",
		Dataset:  dataset,
		RecordID: stored.IDValue(),
	})
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	dataset := r.PathValue("dataset")
	q := r.URL.Query()
	groupBy := strings.TrimSpace(q.Get("groupBy"))
	sortBy := strings.TrimSpace(q.Get("sortBy"))

	switch {
	case groupBy != "" && sortBy != "":
		writeError(w, http.StatusBadRequest, errorBody{
			Error: "Specify either groupBy or sortBy, not both",
			Code:  CodeInvalidQuery,
		})

	case groupBy != "":
		g, err := s.engine.GroupBy(r.Context(), dataset, groupBy)
		if err != nil {
			s.writeEngineError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"groupedRecords": g})

	case sortBy != "":
		order := q.Get("order")
		if order == "" {
			order = string(record.DefaultDirection)
		}
		recs, err := s.engine.SortBy(r.Context(), dataset, sortBy, order)
		if err != nil {
			s.writeEngineError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"sortedRecords": recs})

	default:
		writeError(w, http.StatusBadRequest, errorBody{
			Error: "Either groupBy or sortBy parameter is required",
			Code:  CodeInvalidQuery,
		})
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.health != nil {
		if err := s.health(r.Context()); err != nil {
			s.logger.Warn("health check failed", zap.String("request_id", RequestIDFrom(r.Context())), zap.Error(err))
			writeError(w, http.StatusServiceUnavailable, errorBody{
				Error: "record store unavailable",
				Code:  CodeUnavailable,
			})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
