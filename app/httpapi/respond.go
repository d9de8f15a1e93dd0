// Package httpapi holds the JSON plumbing and middleware shared by the
// module HTTP handlers.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	rounddomain "github.com/Black-And-White-Club/frolf-league/app/modules/round/domain"
	rounddb "github.com/Black-And-White-Club/frolf-league/app/modules/round/infrastructure/repositories"
)

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// WriteJSON encodes v as the response body with status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// StatusFor maps a service error onto an HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, rounddomain.ErrInputOutOfRange):
		return http.StatusUnprocessableEntity
	case errors.Is(err, rounddomain.ErrUnknownPlayer):
		return http.StatusNotFound
	case errors.Is(err, rounddb.ErrLedgerUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// WriteError writes err as an ErrorResponse with the status from StatusFor.
// Internal errors are not echoed to the caller.
func WriteError(w http.ResponseWriter, err error) {
	WriteErrorStatus(w, StatusFor(err), err)
}

// WriteErrorStatus writes err as an ErrorResponse with an explicit status.
func WriteErrorStatus(w http.ResponseWriter, status int, err error) {
	resp := ErrorResponse{Error: err.Error()}
	if status >= http.StatusInternalServerError {
		resp.Error = http.StatusText(status)
	}
	var verr *rounddomain.ValidationError
	if errors.As(err, &verr) {
		resp.Field = verr.Field
	}
	WriteJSON(w, status, resp)
}

// DecodeJSON reads the request body into v, rejecting unknown fields.
func DecodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
