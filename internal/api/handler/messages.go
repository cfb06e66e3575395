package handler

import (
	"net/http"
	"time"

	"speakup/backend/internal/models"
	"speakup/backend/internal/relay"

	"github.com/gin-gonic/gin"
)

type sendMessageRequest struct {
	Content              string   `json:"content" binding:"required"`
	Subject              *string  `json:"subject"`
	SkipPiiCheck         bool     `json:"skip_pii_check"`
	AcknowledgedWarnings []string `json:"acknowledged_warnings"`
}

// messageView is the investigator-facing serialization of a message.
type messageView struct {
	ID             string                `json:"id"`
	CaseID         string                `json:"case_id"`
	Direction      models.Direction      `json:"direction"`
	Sender         models.SenderClass    `json:"sender"`
	Body           string                `json:"body"`
	Subject        *string               `json:"subject,omitempty"`
	Read           bool                  `json:"read"`
	ReadAt         *time.Time            `json:"read_at,omitempty"`
	ReadBy         *string               `json:"read_by,omitempty"`
	DeliveryStatus models.DeliveryStatus `json:"delivery_status"`
	CreatedBy      *string               `json:"created_by,omitempty"`
	CreatedAt      time.Time             `json:"created_at"`
}

func toMessageView(m *models.Message) messageView {
	return messageView{
		ID:             m.ID,
		CaseID:         m.CaseID,
		Direction:      m.Direction,
		Sender:         m.Sender,
		Body:           m.Body,
		Subject:        m.Subject,
		Read:           m.Read,
		ReadAt:         m.ReadAt,
		ReadBy:         m.ReadBy,
		DeliveryStatus: m.DeliveryStatus,
		CreatedBy:      m.CreatedBy,
		CreatedAt:      m.CreatedAt,
	}
}

// SendMessage handles POST /api/cases/:caseId/messages.
func (h *Handler) SendMessage(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := h.Relay.SendToReporter(
		c.Request.Context(),
		c.GetString("tenant_id"),
		c.Param("caseId"),
		c.GetString("user_id"),
		relay.SendInput{
			Content:              req.Content,
			Subject:              req.Subject,
			SkipPIICheck:         req.SkipPiiCheck,
			AcknowledgedWarnings: req.AcknowledgedWarnings,
		},
	)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toMessageView(msg))
}

// ListMessages handles GET /api/cases/:caseId/messages. Loading the
// thread marks unread inbound messages as read by the caller.
func (h *Handler) ListMessages(c *gin.Context) {
	messages, err := h.Relay.GetMessagesForInvestigator(
		c.Request.Context(),
		c.GetString("tenant_id"),
		c.Param("caseId"),
		c.GetString("user_id"),
	)
	if err != nil {
		h.renderError(c, err)
		return
	}

	views := make([]messageView, 0, len(messages))
	for i := range messages {
		views = append(views, toMessageView(&messages[i]))
	}
	c.JSON(http.StatusOK, gin.H{"messages": views})
}

// UnreadCount handles GET /api/cases/:caseId/messages/unread-count.
func (h *Handler) UnreadCount(c *gin.Context) {
	counts, err := h.Relay.GetUnreadCount(
		c.Request.Context(),
		c.GetString("tenant_id"),
		c.Param("caseId"),
	)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, counts)
}

type piiCheckRequest struct {
	Content string `json:"content" binding:"required"`
}

// CheckPII handles POST /api/pii/check: the advisory pre-flight scan a
// client runs before the authoritative check inside SendMessage.
func (h *Handler) CheckPII(c *gin.Context) {
	var req piiCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.Relay.CheckForPII(req.Content))
}
