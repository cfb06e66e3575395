package handler

import (
	"net/http"
	"time"

	"speakup/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// reporterMessageView is the reporter-facing serialization. It is a
// separate, slimmer type: internal identities (authors, readers) and
// delivery bookkeeping never cross to the anonymous side.
type reporterMessageView struct {
	ID        string           `json:"id"`
	Direction models.Direction `json:"direction"`
	Body      string           `json:"body"`
	Subject   *string          `json:"subject,omitempty"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"created_at"`
}

func toReporterView(m *models.Message) reporterMessageView {
	return reporterMessageView{
		ID:        m.ID,
		Direction: m.Direction,
		Body:      m.Body,
		Subject:   m.Subject,
		Read:      m.Read,
		CreatedAt: m.CreatedAt,
	}
}

type reporterMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// ReceiveMessage handles POST /public/reports/:accessCode/messages.
func (h *Handler) ReceiveMessage(c *gin.Context) {
	var req reporterMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := h.Relay.ReceiveFromReporter(c.Request.Context(), c.Param("accessCode"), req.Content)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toReporterView(msg))
}

// ListReporterMessages handles GET /public/reports/:accessCode/messages.
// Loading the thread marks unread outbound messages as read.
func (h *Handler) ListReporterMessages(c *gin.Context) {
	messages, err := h.Relay.GetMessagesForReporter(c.Request.Context(), c.Param("accessCode"))
	if err != nil {
		h.renderError(c, err)
		return
	}

	views := make([]reporterMessageView, 0, len(messages))
	for i := range messages {
		views = append(views, toReporterView(&messages[i]))
	}
	c.JSON(http.StatusOK, gin.H{"messages": views})
}
