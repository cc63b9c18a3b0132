package web

// errors.go provides unified error response handling for the API.
//
// Every error is logged with its technical detail and request ID, then
// returned to the client as a user message with an action and a code.
// Column errors are mapped by column.MapError; the few failures that belong
// to the HTTP layer itself have their own codes below.

import (
	"errors"
	"log/slog"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/JonMunkholm/flatfiles/internal/column"
	"github.com/JonMunkholm/flatfiles/internal/logging"
)

var (
	errColumnNotFound = errors.New("column not found")
	errBadRequest     = errors.New("malformed request body")
	errRateLimited    = errors.New("rate limit exceeded")
)

// Codes:
//   - API001: Column not found
//   - API002: Malformed request body
//   - API003: Rate limit exceeded
var apiMessages = map[error]column.UserMessage{
	errColumnNotFound: {
		Message: "Column not found",
		Action:  "List available columns at /api/columns",
		Code:    "API001",
	},
	errBadRequest: {
		Message: "The request body could not be read",
		Action:  "Send a JSON object matching the endpoint",
		Code:    "API002",
	},
	errRateLimited: {
		Message: "Too many requests",
		Action:  "Wait a minute and try again",
		Code:    "API003",
	},
}

// ErrorResponse represents the JSON structure for API error responses.
// Includes both machine-readable (Code) and human-readable (Message, Action) fields.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// statusFor picks the HTTP status for err.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errColumnNotFound):
		return http.StatusNotFound
	case errors.Is(err, errRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, column.ErrFormat):
		return http.StatusUnprocessableEntity
	case errors.Is(err, column.ErrTypeMismatch), errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func userMessage(err error) column.UserMessage {
	for sentinel, msg := range apiMessages {
		if errors.Is(err, sentinel) {
			return msg
		}
	}
	return column.MapError(err)
}

// respondError logs err and writes its user message as JSON.
func respondError(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	msg := userMessage(err)

	attrs := append([]any{
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"request_id", chimw.GetReqID(r.Context()),
	}, logging.ErrorAttrs(err)...)
	for i := 0; i+1 < len(attrs); i += 2 {
		if attrs[i] == "code" {
			attrs[i+1] = msg.Code
		}
	}

	if statusCode >= http.StatusInternalServerError {
		slog.Error("request error", attrs...)
	} else {
		slog.Warn("request error", attrs...)
	}

	// Client errors carry the field detail; server errors stay generic.
	detail := msg.Message
	if statusCode < http.StatusInternalServerError {
		detail = err.Error()
	}

	writeJSON(w, statusCode, ErrorResponse{
		Error:   detail,
		Message: msg.Message,
		Action:  msg.Action,
		Code:    msg.Code,
	})
}
