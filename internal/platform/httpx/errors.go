// Package httpx provides HTTP response utilities.
package httpx

import (
	"errors"
	"net/http"

	"github.com/odyssey-erp/procuredesk/internal/platform/webhook"
	"github.com/odyssey-erp/procuredesk/internal/session"
)

// Sentinel errors for the gateway layer.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
)

// RespondError maps errors to RFC7807 responses. Upstream failures keep the
// backend status in the detail so the view layer can show it.
func RespondError(w http.ResponseWriter, err error) {
	var httpErr *webhook.HTTPError
	switch {
	case errors.Is(err, ErrNotFound):
		Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, ErrValidation), errors.Is(err, webhook.ErrValidation):
		Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	case errors.Is(err, ErrUnauthorized), errors.Is(err, session.ErrNotSignedIn):
		Problem(w, http.StatusUnauthorized, "Unauthorized", err.Error())
	case errors.Is(err, webhook.ErrTimeout):
		Problem(w, http.StatusGatewayTimeout, "Upstream Timeout", err.Error())
	case errors.As(err, &httpErr):
		JSON(w, http.StatusBadGateway, ProblemDetail{
			Title:          "Upstream Error",
			Status:         http.StatusBadGateway,
			Detail:         httpErr.Status,
			UpstreamStatus: httpErr.StatusCode,
		})
	case errors.Is(err, webhook.ErrTransport), errors.Is(err, webhook.ErrDecode):
		Problem(w, http.StatusBadGateway, "Upstream Unavailable", err.Error())
	default:
		Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
