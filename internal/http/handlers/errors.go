package handlers

import (
	"net/http"

	"publicweb/internal/domain"
	"publicweb/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

const msgInternal = "A apărut o eroare. Te rugăm să încerci din nou."

// ErrorResponse standardizes error payloads.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string) {
	if code == "" {
		code = http.StatusText(status)
	}
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error:     message,
		Code:      code,
		Message:   message,
		RequestID: middleware.GetRequestID(c),
	})
}

// RespondDomainError maps domain and API errors to HTTP responses.
func RespondDomainError(c *gin.Context, err error) {
	if apiErr, ok := domain.AsAPIError(err); ok {
		status := apiErr.Status
		if status < 400 {
			status = http.StatusBadGateway
		}
		respondError(c, status, apiErr.Code, apiErr.Error())
		return
	}
	switch {
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error())
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, "conflict", err.Error())
	case domain.IsInternal(err):
		_ = c.Error(err)
		respondError(c, http.StatusInternalServerError, "internal_error", msgInternal)
	default:
		// untyped errors come from the remote checkout API (transport, decode, bare 5xx)
		_ = c.Error(err)
		respondError(c, http.StatusBadGateway, "upstream_error", msgInternal)
	}
}
