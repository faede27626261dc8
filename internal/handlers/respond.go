package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/shortflix/backend/internal/logging"
	"github.com/shortflix/backend/internal/videos"
)

const maxBodyBytes = 1 << 20

// Error codes reported in the "code" field of error responses.
const (
	CodeInvalidInput       = "INVALID_INPUT"
	CodeUnsupportedAction  = "UNSUPPORTED_ACTION"
	CodeNotFound           = "NOT_FOUND"
	CodeInternalValidation = "INTERNAL_VALIDATION"
	CodeInternalError      = "INTERNAL_ERROR"
	CodeRateLimited        = "RATE_LIMITED"
	CodeUnavailable        = "UNAVAILABLE"
)

type errorResponse struct {
	Error  string            `json:"error"`
	Code   string            `json:"code"`
	Fields map[string]string `json:"fields,omitempty"`
}

func respondJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.FromContext(ctx).Error("encode response body", "status", status, "error", err)
		return
	}

	logger := logging.FromContext(ctx)
	switch {
	case status >= http.StatusInternalServerError:
		logger.Error("request failed", "status", status, "response", payload)
	case status >= http.StatusBadRequest:
		logger.Warn("request returned client error", "status", status, "response", payload)
	}
}

// respondError maps catalog errors onto status codes and the error body.
func respondError(ctx context.Context, w http.ResponseWriter, err error) {
	var fields map[string]string
	var verr *videos.ValidationError
	if errors.As(err, &verr) {
		fields = verr.Fields
	}

	switch {
	case errors.Is(err, videos.ErrInvalidInput):
		respondJSON(ctx, w, http.StatusBadRequest, errorResponse{Error: videos.ErrInvalidInput.Error(), Code: CodeInvalidInput, Fields: fields})
	case errors.Is(err, videos.ErrUnsupportedAction):
		respondJSON(ctx, w, http.StatusBadRequest, errorResponse{Error: videos.ErrUnsupportedAction.Error(), Code: CodeUnsupportedAction, Fields: fields})
	case errors.Is(err, videos.ErrNotFound):
		respondJSON(ctx, w, http.StatusNotFound, errorResponse{Error: videos.ErrNotFound.Error(), Code: CodeNotFound, Fields: fields})
	case errors.Is(err, videos.ErrInternalValidation):
		respondJSON(ctx, w, http.StatusInternalServerError, errorResponse{Error: videos.ErrInternalValidation.Error(), Code: CodeInternalValidation, Fields: fields})
	default:
		logging.FromContext(ctx).Error("unexpected catalog error", "error", err)
		respondJSON(ctx, w, http.StatusInternalServerError, errorResponse{Error: "internal server error", Code: CodeInternalError})
	}
}

func respondMethodNotAllowed(w http.ResponseWriter, allowed string) {
	w.Header().Set("Allow", allowed)
	w.WriteHeader(http.StatusMethodNotAllowed)
}

func respondRateLimited(ctx context.Context, w http.ResponseWriter) {
	respondJSON(ctx, w, http.StatusTooManyRequests, errorResponse{Error: "too many requests", Code: CodeRateLimited})
}

// decodeJSON reads a single JSON document from the request body into dst.
// Failures are reported as videos.ErrInvalidInput.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return decodeError(err)
	}
	if dec.More() {
		return &videos.ValidationError{Kind: videos.ErrInvalidInput, Fields: map[string]string{"body": "must contain a single JSON object"}}
	}
	return nil
}

func decodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	var maxErr *http.MaxBytesError

	message := "invalid request body"
	field := "body"
	switch {
	case errors.As(err, &typeErr):
		if typeErr.Field != "" {
			field = typeErr.Field
		}
		message = fmt.Sprintf("must be a %s", jsonKind(typeErr.Type.Kind().String()))
	case errors.As(err, &syntaxErr):
		message = fmt.Sprintf("malformed JSON at offset %d", syntaxErr.Offset)
	case errors.As(err, &maxErr):
		message = fmt.Sprintf("must not exceed %d bytes", maxErr.Limit)
	case errors.Is(err, io.EOF):
		message = "is required"
	case errors.Is(err, io.ErrUnexpectedEOF):
		message = "malformed JSON"
	}
	return &videos.ValidationError{Kind: videos.ErrInvalidInput, Fields: map[string]string{field: message}}
}

func jsonKind(goKind string) string {
	switch goKind {
	case "string":
		return "string"
	case "int", "int8", "int16", "int32", "int64", "uint", "uint8", "uint16", "uint32", "uint64":
		return "integer"
	case "float32", "float64":
		return "number"
	case "bool":
		return "boolean"
	case "slice", "array":
		return "array"
	case "struct", "map":
		return "object"
	}
	return goKind
}
