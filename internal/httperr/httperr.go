package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HTTPError is the wire shape every failure response uses. Detail is the
// human-readable message clients display.
type HTTPError struct {
	Code   string `json:"error_code"`
	Detail string `json:"detail"`
}

func Write(c *gin.Context, status int, code, detail string) {
	c.JSON(status, HTTPError{
		Code:   code,
		Detail: detail,
	})
}

func BadRequest(c *gin.Context, code, detail string) {
	Write(c, http.StatusBadRequest, code, detail)
}

func NotFound(c *gin.Context, code, detail string) {
	Write(c, http.StatusNotFound, code, detail)
}

func Conflict(c *gin.Context, code, detail string) {
	Write(c, http.StatusConflict, code, detail)
}

func Internal(c *gin.Context, code, detail string) {
	Write(c, http.StatusInternalServerError, code, detail)
}

func Unauthorized(c *gin.Context, code, detail string) {
	Write(c, http.StatusUnauthorized, code, detail)
}

func Forbidden(c *gin.Context, code, detail string) {
	Write(c, http.StatusForbidden, code, detail)
}

var businessStatus = map[string]int{
	CodeNotFound:              http.StatusNotFound,
	CodeSlotUnavailable:       http.StatusConflict,
	CodeInvalidTransition:     http.StatusConflict,
	CodeInvalidToken:          http.StatusBadRequest,
	CodeCancellationForbidden: http.StatusForbidden,
	CodeValidation:            http.StatusBadRequest,
}

var businessDetail = map[string]string{
	CodeNotFound:              "resource not found",
	CodeSlotUnavailable:       "slot is no longer available",
	CodeInvalidTransition:     "booking state does not allow this action",
	CodeInvalidToken:          "invalid or expired token",
	CodeCancellationForbidden: "cancellation is not allowed for this booking",
	CodeValidation:            "invalid request",
}

// Handle writes the HTTP response for a use case error: business codes map
// to their status, anything else is a 500.
func Handle(c *gin.Context, err error) {
	if code := BusinessCode(err); code != "" {
		Write(c, businessStatus[code], code, businessDetail[code])
		return
	}
	Internal(c, "internal_error", "internal server error")
}
