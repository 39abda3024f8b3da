package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type HTTPError struct {
	OK      bool   `json:"ok"`
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		OK:      false,
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// Respond maps err onto the envelope. Storage failures are logged and never leaked.
func Respond(c *gin.Context, log *zap.Logger, err error) {
	var be *BusinessError
	if !errors.As(err, &be) {
		be = &BusinessError{Kind: KindStorage, Code: "internal_error", Message: "internal error", Err: err}
	}

	if be.Kind == KindStorage {
		log.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.String("code", be.Code),
			zap.Error(err),
		)
		Write(c, http.StatusInternalServerError, be.Code, "internal error")
		return
	}

	Write(c, be.Kind.Status(), be.Code, be.Message)
}
