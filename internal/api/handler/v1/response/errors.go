package response

import (
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Err struct {
	StatusCode int    `json:"-"`
	Message    string `json:"message"`
	ErrorText  string `json:"error,omitempty"`
}

func RenderErr(ctx *gin.Context, e *Err) {
	if e.StatusCode >= http.StatusInternalServerError {
		zap.L().Error("server error",
			zap.String("request_id", requestid.Get(ctx)),
			zap.String("error", e.ErrorText))

		// Internal details stay in the logs.
		e.ErrorText = ""
	}

	ctx.AbortWithStatusJSON(e.StatusCode, e)
}

func ErrBadRequest(err error) *Err {
	return &Err{
		StatusCode: http.StatusBadRequest,
		Message:    "Bad request.",
		ErrorText:  err.Error(),
	}
}

func ErrUnauthorized(err error) *Err {
	return &Err{
		StatusCode: http.StatusUnauthorized,
		Message:    "Unauthorized.",
		ErrorText:  err.Error(),
	}
}

func ErrWrongCredentials(err error) *Err {
	return &Err{
		StatusCode: http.StatusUnauthorized,
		Message:    "Wrong credentials.",
		ErrorText:  err.Error(),
	}
}

func ErrNotFound(err error) *Err {
	return &Err{
		StatusCode: http.StatusNotFound,
		Message:    "Not found.",
		ErrorText:  err.Error(),
	}
}

func ErrConflict(err error) *Err {
	return &Err{
		StatusCode: http.StatusConflict,
		Message:    "Conflict.",
		ErrorText:  err.Error(),
	}
}

func ErrUnprocessableEntity(err error) *Err {
	return &Err{
		StatusCode: http.StatusUnprocessableEntity,
		Message:    "Unprocessable entity.",
		ErrorText:  err.Error(),
	}
}

func ErrInternalServerError(err error) *Err {
	return &Err{
		StatusCode: http.StatusInternalServerError,
		Message:    "Internal server error.",
		ErrorText:  err.Error(),
	}
}
