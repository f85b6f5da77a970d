package httperr

import (
	"net/http"

	"campus-placement/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// FromError maps a use-case error onto its HTTP status by class. Rejections
// keep their specific message; forbidden is reported as not found so callers
// cannot probe for other people's records.
func FromError(c *gin.Context, err error) {
	switch errs.KindOf(err) {
	case errs.KindValidation:
		AbortWithError(c, http.StatusBadRequest, err, errs.Cause(err).Error(), nil)
	case errs.KindConflict:
		status := http.StatusConflict
		if errs.Is(err, errs.ErrNotEligible) {
			status = http.StatusUnprocessableEntity
		}
		AbortWithError(c, status, err, errs.Cause(err).Error(), nil)
	case errs.KindNotFound, errs.KindForbidden:
		AbortWithError(c, http.StatusNotFound, err, "Not found", nil)
	case errs.KindTransientStore:
		AbortWithError(c, http.StatusServiceUnavailable, err, "Service temporarily unavailable", nil)
	default:
		AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
