package httperr

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/appbarber/agenda-api/internal/apperr"
)

type HTTPError struct {
	Success bool     `json:"success"`
	Code    string   `json:"error_code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Success: false,
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

// Respond converte erros do domínio na resposta estruturada.
// Erros fora da taxonomia nunca vazam: viram internal_error e o
// detalhe fica só no log do servidor.
func Respond(c *gin.Context, err error) {
	var ae *apperr.Error
	if !errors.As(err, &ae) {
		log.Printf("internal error (path=%s): %v", c.FullPath(), err)
		Internal(c, "internal_error", "Erro interno.")
		return
	}

	c.JSON(statusFor(ae.Kind), HTTPError{
		Success: false,
		Code:    ae.Code,
		Message: ae.Message,
		Details: ae.Details,
	})
}

func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindAuthorization:
		return http.StatusForbidden
	case apperr.KindConflict:
		return http.StatusConflict
	case apperr.KindState:
		return http.StatusUnprocessableEntity
	case apperr.KindLimit:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
