package utils

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the uniform shape for non-2xx outcomes that are not part
// of a documented endpoint body.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ValidationEnvelope is the structured body returned on request shape errors.
// The 10422 code and field names are part of the public contract.
type ValidationEnvelope struct {
	StatusCode int         `json:"status_code"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data"`
}

// Error returns a standard error response.
func Error(ctx *gin.Context, status int, code int, message string) {
	ctx.JSON(status, ErrorResponse{Code: code, Message: message})
}

// ValidationError returns HTTP 422 with the structured validation envelope.
func ValidationError(ctx *gin.Context, err error) {
	msg := strings.ReplaceAll(err.Error(), "\n", " ")
	if Sugar != nil {
		Sugar.Errorf("request validation failed: %s %s: %s", ctx.Request.Method, ctx.Request.URL.Path, msg)
	}
	ctx.JSON(http.StatusUnprocessableEntity, ValidationEnvelope{
		StatusCode: 10422,
		Message:    msg,
		Data:       nil,
	})
}
