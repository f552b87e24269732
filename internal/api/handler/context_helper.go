package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"sports-scheduler/internal/api/middleware"
	"sports-scheduler/internal/model"
	pkgerrors "sports-scheduler/pkg/errors"
	"sports-scheduler/pkg/response"
	"sports-scheduler/pkg/validate"
)

// MustGetIdentity returns the caller put into the context by SessionAuth.
// On false a 401 has been written and the handler should return.
func MustGetIdentity(c *gin.Context) (model.Identity, bool) {
	v, exists := c.Get(middleware.IdentityKey)
	if !exists {
		response.Unauthorized(c, 10002, "authentication required")
		return model.Identity{}, false
	}
	id, ok := v.(model.Identity)
	if !ok || id.UserID == "" {
		response.Unauthorized(c, 10002, "authentication required")
		return model.Identity{}, false
	}
	return id, true
}

// uuidParam returns path parameter name. A value that is not a UUID can never
// match a row, so notFound is returned rather than letting the query fail.
func uuidParam(c *gin.Context, name string, notFound error) (string, error) {
	raw := c.Param(name)
	if _, err := uuid.Parse(raw); err != nil || len(raw) != 36 {
		return "", notFound
	}
	return raw, nil
}

// bindError answers a request that failed binding.
func bindError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		response.Error(c, http.StatusRequestEntityTooLarge, 10005, "request body too large")
		return
	}
	response.BadRequest(c, 10001, validate.Message(err))
}

// handleKind answers any error no module mapping claimed, using the kind it
// is marked with. Unmarked errors are storage failures.
func handleKind(c *gin.Context, err error) {
	msg := pkgerrors.Message(err)
	switch pkgerrors.Kind(err) {
	case pkgerrors.ErrValidation:
		response.BadRequest(c, 10001, msg)
	case pkgerrors.ErrPermissionDenied:
		response.Forbidden(c, 10003, msg)
	case pkgerrors.ErrNotFound:
		response.NotFound(c, 10006, msg)
	case pkgerrors.ErrConflict:
		response.Conflict(c, 10007, msg)
	default:
		response.InternalError(c)
	}
}

// attachment sends body as a file download.
func attachment(c *gin.Context, filename, contentType string, body []byte) {
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(filename))
	c.Data(http.StatusOK, contentType, body)
}
