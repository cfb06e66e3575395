// Package handler is the thin HTTP glue over the relay core. It maps the
// relay's failure taxonomy onto status codes: NotFound → 404, policy
// (validation) failures → 422, everything else → 500.
package handler

import (
	"net/http"

	"speakup/backend/internal/relay"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Handler holds the relay service and auth settings for the HTTP routes.
type Handler struct {
	Relay     *relay.Service
	JWTSecret []byte
	Log       *logrus.Logger
}

func NewHandler(r *relay.Service, jwtSecret []byte, log *logrus.Logger) *Handler {
	return &Handler{Relay: r, JWTSecret: jwtSecret, Log: log}
}

// renderError translates a relay error into an HTTP response.
func (h *Handler) renderError(c *gin.Context, err error) {
	if relay.IsNotFound(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if ve, ok := relay.AsValidation(err); ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":     ve.Reason,
			"has_pii":   ve.HasPII,
			"warnings":  ve.Warnings,
			"retryable": ve.Retryable,
		})
		return
	}
	h.Log.WithField("module", "handler").Error(err.Error())
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
