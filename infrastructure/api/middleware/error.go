package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	jsoniter "github.com/json-iterator/go"

	"github.com/helixml/criteria/domain/criteria"
	"github.com/helixml/criteria/domain/document"
	"github.com/helixml/criteria/infrastructure/codec"
	"github.com/helixml/criteria/internal/database"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// JSONAPIError represents a JSON:API error object.
type JSONAPIError struct {
	Status string `json:"status"`
	Title  string `json:"title"`
	Detail string `json:"detail,omitempty"`
	ID     string `json:"id,omitempty"`
}

// JSONAPIErrorResponse wraps JSON:API error objects.
type JSONAPIErrorResponse struct {
	Errors []JSONAPIError `json:"errors"`
}

// StatusFor maps an error to its HTTP status and title.
func StatusFor(err error) (int, string) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge, "Document Too Large"
	case errors.Is(err, codec.ErrInvalidDocument):
		return http.StatusBadRequest, "Invalid Document"
	case errors.Is(err, document.ErrInvalidIdentifier):
		return http.StatusBadRequest, "Invalid Identifier"
	case errors.Is(err, document.ErrUnknownType):
		return http.StatusBadRequest, "Unknown Document Type"
	case errors.Is(err, criteria.ErrUnsupportedOption):
		return http.StatusBadRequest, "Unsupported Option"
	case errors.Is(err, database.ErrUnsupportedCondition):
		return http.StatusUnprocessableEntity, "Unsupported Condition"
	default:
		return http.StatusInternalServerError, "Internal Server Error"
	}
}

// WriteError writes a JSON:API formatted error response.
func WriteError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	status, title := StatusFor(err)
	requestID := middleware.GetReqID(r.Context())

	if logger != nil {
		logger.Error("request error",
			"request_id", requestID,
			"status", status,
			"error", err.Error(),
			"path", r.URL.Path,
		)
	}

	resp := JSONAPIErrorResponse{
		Errors: []JSONAPIError{
			{
				Status: http.StatusText(status),
				Title:  title,
				Detail: err.Error(),
				ID:     requestID,
			},
		},
	}

	w.Header().Set("Content-Type", "application/vnd.api+json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// WriteJSON writes a JSON response.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
