// internal/app/features/apierrors/apierrors.go
//
// Package apierrors writes the JSON error envelope every handler shares.
// Field-level problems travel in form_errors; anything the client should
// toast travels in message_for_notification.
package apierrors

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/dalemusser/fieldhub/internal/app/system/formschema"
)

// ObsoletePayload is the sentinel placed on modified_at when a write
// carries a stale timestamp. Clients match on it to open the overwrite
// confirmation flow instead of retrying blindly.
const ObsoletePayload = "OBSOLETE_PAYLOAD"

// Envelope is the error body for all non-2xx JSON responses.
type Envelope struct {
	MessageForNotification string               `json:"message_for_notification,omitempty"`
	FormErrors             formschema.ErrorTree `json:"form_errors,omitempty"`
}

// WriteJSON writes v as the response body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Unauthorized writes a 401.
func Unauthorized(w http.ResponseWriter) {
	WriteJSON(w, http.StatusUnauthorized, Envelope{
		MessageForNotification: "Authentication credentials were not provided.",
	})
}

// Forbidden writes a 403 with the given notification message.
func Forbidden(w http.ResponseWriter, msg string) {
	if msg == "" {
		msg = "You do not have permission to perform this action."
	}
	WriteJSON(w, http.StatusForbidden, Envelope{MessageForNotification: msg})
}

// NotFound writes a 404.
func NotFound(w http.ResponseWriter, msg string) {
	if msg == "" {
		msg = "Not found."
	}
	WriteJSON(w, http.StatusNotFound, Envelope{MessageForNotification: msg})
}

// BadRequest writes a 400 carrying field errors.
func BadRequest(w http.ResponseWriter, errs formschema.ErrorTree, msg string) {
	WriteJSON(w, http.StatusBadRequest, Envelope{
		MessageForNotification: msg,
		FormErrors:             errs,
	})
}

// Conflict writes the stale-write rejection: a 400 whose modified_at field
// error is the OBSOLETE_PAYLOAD sentinel.
func Conflict(w http.ResponseWriter) {
	errs := formschema.ErrorTree{}
	errs.Add("modified_at", ObsoletePayload)
	WriteJSON(w, http.StatusBadRequest, Envelope{
		MessageForNotification: "This record was modified by someone else. Review before overwriting.",
		FormErrors:             errs,
	})
}

// ErrorLogger pairs server-error responses with structured logging so
// handlers report failures in one call.
type ErrorLogger struct {
	log *zap.Logger
}

// NewErrorLogger constructs an ErrorLogger.
func NewErrorLogger(log *zap.Logger) *ErrorLogger {
	return &ErrorLogger{log: log}
}

// LogServerError logs err with request context and writes a generic 500.
// The error detail stays in the log, never in the response body.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	e.log.Error(msg,
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err))
	WriteJSON(w, http.StatusInternalServerError, Envelope{
		MessageForNotification: "Something went wrong. Please try again.",
	})
}
