package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"zendesk-analytics/internal/apperrors"
)

// ResultResponse wraps every successful payload.
type ResultResponse struct {
	Result any `json:"result"`
}

// ErrorResponse is the error body returned by every failing route.
type ErrorResponse struct {
	UserMessage     string `json:"userMessage"`
	InternalMessage string `json:"internalMessage"`
	MoreInfo        string `json:"moreInfo"`
}

// NotFoundResponse is returned for unknown routes.
type NotFoundResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Debug().Err(err).Msg("Failed to write response body")
	}
}

func writeResult(w http.ResponseWriter, result any) {
	writeJSON(w, http.StatusOK, ResultResponse{Result: result})
}

func internalMessage(code string) string {
	if code == "" {
		code = apperrors.DefaultCode
	}
	return "ERROR CATALOG: " + code
}

// ErrorHandler renders errors. Local environments see the full error chain.
type ErrorHandler struct {
	local bool
}

func NewErrorHandler(local bool) *ErrorHandler {
	return &ErrorHandler{local: local}
}

func (h *ErrorHandler) Handle(w http.ResponseWriter, r *http.Request, err error) {
	status := apperrors.StatusCode(err)
	op := apperrors.Op(err)

	ev := log.Warn()
	if status >= http.StatusInternalServerError {
		ev = log.Error()
	}
	ev.Err(err).
		Int("status", status).
		Str("op", op).
		Str("code", apperrors.Code(err)).
		Str("request_id", GetRequestID(r.Context())).
		Msg("Request failed")

	moreInfo := op + " | Check system logs for more detail"
	if h.local {
		moreInfo = errorChain(err)
	}

	writeJSON(w, status, ErrorResponse{
		UserMessage:     fmt.Sprintf("%s | %s", apperrors.Name(err), err.Error()),
		InternalMessage: internalMessage(apperrors.Code(err)),
		MoreInfo:        moreInfo,
	})
}

// errorChain lists each wrapped error from outermost to innermost.
func errorChain(err error) string {
	var parts []string
	for e := err; e != nil; e = errors.Unwrap(e) {
		parts = append(parts, fmt.Sprintf("%T: %s", e, e.Error()))
	}
	return strings.Join(parts, " <- ")
}
