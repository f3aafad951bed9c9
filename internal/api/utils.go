package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/FACorreiaa/go-smart-travel-planner/internal/types"
)

// MaxBodyBytes caps planner request bodies. A plan request is three fields.
const MaxBodyBytes = 64 << 10

// ErrorBody is the JSON shape of every planner error response.
type ErrorBody struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	RequestID string `json:"request_id"`
}

// ErrorResponse writes message as an ErrorBody tagged with the request id.
func ErrorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	WriteJSONResponse(w, r, status, ErrorBody{
		Success:   false,
		Error:     message,
		RequestID: middleware.GetReqID(r.Context()),
	})
}

// WriteJSONResponse writes data as JSON with status. 204 writes no body.
func WriteJSONResponse(w http.ResponseWriter, r *http.Request, status int, data any) {
	if status == http.StatusNoContent {
		w.WriteHeader(status)
		return
	}

	reqID := slog.String("request_id", middleware.GetReqID(r.Context()))
	js, err := json.Marshal(data)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to encode planner response", slog.Any("error", err), reqID)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(js); err != nil {
		// Status is already on the wire.
		slog.ErrorContext(r.Context(), "Failed to write planner response", slog.Any("error", err), reqID)
		return
	}
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}
}

// DecodeJSONBody decodes exactly one JSON value from the request body into
// dst. Unknown fields, trailing data and bodies over MaxBodyBytes are
// rejected. Every returned error wraps types.ErrBadRequest.
func DecodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return badBody(err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: body must hold a single JSON value", types.ErrBadRequest)
	}
	return nil
}

func badBody(err error) error {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	var tooLarge *http.MaxBytesError
	var invalid *json.InvalidUnmarshalError

	switch {
	case errors.As(err, &invalid):
		// dst is not a pointer; a caller bug, not a client one.
		panic(fmt.Errorf("decode planner request: %w", err))
	case errors.As(err, &syntaxErr):
		return fmt.Errorf("%w: malformed JSON at offset %d", types.ErrBadRequest, syntaxErr.Offset)
	case errors.Is(err, io.ErrUnexpectedEOF):
		return fmt.Errorf("%w: malformed JSON", types.ErrBadRequest)
	case errors.As(err, &typeErr) && typeErr.Field != "":
		return fmt.Errorf("%w: field %q must be %s", types.ErrBadRequest, typeErr.Field, typeErr.Type)
	case errors.As(err, &typeErr):
		return fmt.Errorf("%w: wrong JSON type at offset %d", types.ErrBadRequest, typeErr.Offset)
	case errors.Is(err, io.EOF):
		return fmt.Errorf("%w: empty body", types.ErrBadRequest)
	case errors.As(err, &tooLarge):
		return fmt.Errorf("%w: body exceeds %d bytes", types.ErrBadRequest, tooLarge.Limit)
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		field := strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`)
		return fmt.Errorf("%w: unknown field %q", types.ErrBadRequest, field)
	default:
		return fmt.Errorf("%w: %v", types.ErrBadRequest, err)
	}
}
