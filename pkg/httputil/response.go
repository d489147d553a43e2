package httputil

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/matzehuels/labelsheet/pkg/errors"
)

// ErrCodeTooLarge is reported for request bodies over the configured limit.
const ErrCodeTooLarge errors.Code = "REQUEST_TOO_LARGE"

// ErrorResponse is the JSON body of every error response.
type ErrorResponse struct {
	Code      errors.Code `json:"code"`
	Message   string      `json:"message"`
	RequestID string      `json:"request_id,omitempty"`
}

// StatusFor maps an error to an HTTP status code.
func StatusFor(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case err == nil:
		return http.StatusOK
	case stderrors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.IsValidation(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// WriteJSON writes v as JSON with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteError writes err as an ErrorResponse. Internal error details are
// replaced with a generic message.
func WriteError(w http.ResponseWriter, requestID string, err error) int {
	status := StatusFor(err)
	resp := ErrorResponse{RequestID: requestID}

	switch status {
	case http.StatusRequestEntityTooLarge:
		resp.Code = ErrCodeTooLarge
		resp.Message = "request body exceeds maximum allowed size"
	case http.StatusBadRequest:
		resp.Code = errors.GetCode(err)
		resp.Message = errors.UserMessage(err)
	default:
		resp.Code = errors.ErrCodeInternal
		resp.Message = "internal error"
	}

	_ = WriteJSON(w, status, resp)
	return status
}

// WriteAttachment writes data as a file download.
func WriteAttachment(w http.ResponseWriter, filename, contentType string, data []byte) error {
	h := w.Header()
	h.Set("Content-Type", contentType)
	h.Set("Content-Length", strconv.Itoa(len(data)))
	h.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, err := w.Write(data)
	return err
}

// LimitBody returns middleware capping request bodies at maxBytes.
func LimitBody(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxBytes {
				WriteError(w, w.Header().Get("X-Request-ID"), &http.MaxBytesError{Limit: maxBytes})
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}
