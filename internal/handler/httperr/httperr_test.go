//go:build unit

package httperr_test

import (
	"net/http"
	"testing"

	"campus-placement/internal/handler/httperr"
	"campus-placement/internal/pkg/errs"
	"campus-placement/internal/testutil/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestFromError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{name: "validation keeps its message", err: errs.Wrap(errs.Validation("limit must be positive"), "list"), status: http.StatusBadRequest, msg: "limit must be positive"},
		{name: "conflict", err: errs.Wrap(errs.ErrAlreadyApplied, "apply"), status: http.StatusConflict, msg: "already applied"},
		{name: "invalid state keeps the reason", err: errs.Reason(errs.ErrInvalidState, "application is REJECTED"), status: http.StatusConflict, msg: "application is REJECTED"},
		{name: "invalid round", err: errs.Reason(errs.ErrInvalidRound, "round 3 cannot be recorded before round 2"), status: http.StatusConflict, msg: "before round 2"},
		{name: "already processed", err: errs.ErrAlreadyProcessed, status: http.StatusConflict, msg: "already been responded to"},
		{name: "defined not-found sentinel", err: errs.Wrap(errs.Define(errs.ErrNotFound, "offer not found"), "respond"), status: http.StatusNotFound, msg: "Not found"},
		{name: "not eligible", err: errs.Reason(errs.ErrNotEligible, "minimum qualifying score not met"), status: http.StatusUnprocessableEntity, msg: "minimum qualifying score not met"},
		{name: "not found", err: errs.Mark(errs.New("application 42"), errs.ErrNotFound), status: http.StatusNotFound, msg: "Not found"},
		{name: "forbidden hides existence", err: errs.Mark(errs.New("other organization"), errs.ErrForbidden), status: http.StatusNotFound, msg: "Not found"},
		{name: "transient store", err: errs.Mark(errs.New("connection reset"), errs.ErrTransientStore), status: http.StatusServiceUnavailable, msg: "temporarily unavailable"},
		{name: "unclassified", err: errs.New("boom"), status: http.StatusInternalServerError, msg: "Internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/", func(c *gin.Context) { httperr.FromError(c, tt.err) })

			rec := httptest.PerformRequest(t, router, http.MethodGet, "/", nil, "")
			httptest.AssertErrorResponse(t, rec, tt.status, tt.msg)
		})
	}
}

func TestAbortWithErrorRequiresCause(t *testing.T) {
	c, _ := gin.CreateTestContext(nil)
	assert.Panics(t, func() { httperr.AbortWithError(c, http.StatusBadRequest, nil, "x", nil) })
}
