package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/learnpath-backend/internal/platform/apierr"
	"github.com/yungbote/learnpath-backend/internal/platform/logger"
)

// ErrorEnvelope is the body of every failed request.
type ErrorEnvelope struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	if msg == "" {
		msg = "unknown error"
	}
	c.AbortWithStatusJSON(status, ErrorEnvelope{Error: msg, Code: code})
}

// RespondAPIError maps err onto the envelope. *apierr.Error values keep their
// status and code; anything else becomes a generic 500. Server-side failures
// are logged with their underlying cause.
func RespondAPIError(c *gin.Context, log *logger.Logger, err error) {
	ae, ok := apierr.As(err)
	if !ok {
		ae = apierr.New(http.StatusInternalServerError, "internal_error", errors.New("internal server error"))
		if log != nil {
			log.Error("unhandled error", "path", c.FullPath(), "error", err)
		}
	} else if ae.Status >= http.StatusInternalServerError && log != nil {
		log.Error("request failed", "path", c.FullPath(), "code", ae.Code, "error", apierr.Cause(ae.Err))
	}
	_ = c.Error(err)
	RespondError(c, ae.Status, ae.Code, ae)
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
