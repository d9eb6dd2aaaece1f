package api

import (
	stderrors "errors"
	"log/slog"
	"net/http"

	"group-chat/errors"
	"group-chat/validation"

	"github.com/gin-gonic/gin"
)

// statusFor maps each error class to a distinct HTTP status so clients can
// tell an authorization refusal from an invariant violation.
func statusFor(err error) int {
	switch {
	case stderrors.Is(err, errors.ErrValidation):
		return http.StatusBadRequest
	case stderrors.Is(err, errors.ErrUnauthenticated):
		return http.StatusUnauthorized
	case stderrors.Is(err, errors.ErrNotMember),
		stderrors.Is(err, errors.ErrNotAdmin),
		stderrors.Is(err, errors.ErrAdminOnlyRestricted),
		stderrors.Is(err, errors.ErrMuted),
		stderrors.Is(err, errors.ErrNotAuthorized):
		return http.StatusForbidden
	case stderrors.Is(err, errors.ErrNotFound):
		return http.StatusNotFound
	case stderrors.Is(err, errors.ErrAlreadyMember),
		stderrors.Is(err, errors.ErrLastAdminViolation):
		return http.StatusConflict
	case stderrors.Is(err, errors.ErrStorage):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

type errorBody struct {
	Success bool                    `json:"success"`
	Code    string                  `json:"code"`
	Message string                  `json:"message"`
	Errors  []validation.FieldError `json:"errors,omitempty"`
}

func writeError(c *gin.Context, log *slog.Logger, err error) {
	status := statusFor(err)
	body := errorBody{Code: errors.Code(err), Message: err.Error()}

	var verr *validation.Error
	if stderrors.As(err, &verr) {
		body.Errors = verr.Fields
	}
	switch {
	case status >= http.StatusInternalServerError:
		log.Error("Request failed", "path", c.FullPath(), "code", body.Code, "error", err)
		if status == http.StatusInternalServerError {
			body.Message = "internal error"
		}
	default:
		log.Debug("Request refused", "path", c.FullPath(), "code", body.Code, "error", err)
	}
	c.AbortWithStatusJSON(status, body)
}

func ok(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"success": true, "data": data})
}
