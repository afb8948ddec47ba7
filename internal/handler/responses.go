package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/osse101/PigFarmBot_Go/internal/domain"
	"github.com/osse101/PigFarmBot_Go/internal/logger"
)

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response. Code carries the business
// reason (or resource) when the failure is a rejection.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
	Code  string `json:"code,omitempty"`
}

// Reply bodies are small; reuse encode buffers across requests.
var responseBuffers = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, 512))
	},
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := responseBuffers.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		responseBuffers.Put(buf)
	}()

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// Headers are already sent
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// statusForKind maps a rejection kind to its HTTP status.
var statusForKind = map[domain.Kind]int{
	domain.KindNotFound:             http.StatusNotFound,
	domain.KindAlreadyExists:        http.StatusConflict,
	domain.KindPreconditionFailed:   http.StatusUnprocessableEntity,
	domain.KindInsufficientResource: http.StatusBadRequest,
	domain.KindInvalidArgument:      http.StatusBadRequest,
	domain.KindUnauthorized:         http.StatusForbidden,
}

// mapServiceError converts a service error to an HTTP status and body.
// Business rejections keep their message; anything else is reported as a
// generic server error so internals never leak.
func mapServiceError(err error) (int, ErrorResponse) {
	if err == nil {
		return http.StatusInternalServerError, ErrorResponse{Error: ErrMsgUnknownError}
	}
	if de, ok := domain.AsError(err); ok {
		status, known := statusForKind[de.Kind]
		if !known {
			status = http.StatusBadRequest
		}
		code := string(de.Reason)
		if de.Resource != "" {
			code = string(de.Resource)
		}
		return status, ErrorResponse{Error: de.Error(), Kind: string(de.Kind), Code: code}
	}
	if errors.Is(err, domain.ErrTxClosed) {
		return http.StatusServiceUnavailable, ErrorResponse{Error: ErrMsgUnavailableError}
	}
	return http.StatusInternalServerError, ErrorResponse{Error: ErrMsgGenericServerError}
}

// respondServiceError logs and writes a service failure.
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	status, body := mapServiceError(err)
	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(opName+" failed", "error", err)
	} else {
		log.Info(opName+" rejected", "error", err, "status", status)
	}
	respondJSON(w, status, body)
}
