package relay

import (
	"context"
	"time"

	"speakup/backend/internal/models"
)

// CaseRef is the tenant-scoped view of a case the relay is allowed to see.
type CaseRef struct {
	ID              string
	ReferenceNumber string
}

// ReporterRecord is what the identity resolver hands back for an access
// code or a case. The contact channel stays inside this value for the
// duration of one operation; it is never copied onto a Message or any
// other persisted relay type.
type ReporterRecord struct {
	TenantID       string
	LinkedCaseID   *string
	ContactChannel *string
}

// UnreadCounts are the per-direction unread tallies for one case.
type UnreadCounts struct {
	InboundUnread  int64 `json:"inbound_unread"`
	OutboundUnread int64 `json:"outbound_unread"`
	TotalMessages  int64 `json:"total_messages"`
}

// MessageStore is the persistence boundary for message records.
type MessageStore interface {
	CreateMessage(ctx context.Context, msg *models.Message) error
	MessagesForCase(ctx context.Context, tenantID, caseID string) ([]models.Message, error)
	// MarkRead flips every unread message of the given direction to read
	// in a single batch; it must be atomic relative to concurrent calls
	// on the same case. readBy is nil for reporter-side reads.
	MarkRead(ctx context.Context, tenantID, caseID string, direction models.Direction, readBy *string, at time.Time) error
	UnreadCounts(ctx context.Context, tenantID, caseID string) (UnreadCounts, error)
	UpdateDeliveryStatus(ctx context.Context, messageID string, from, to models.DeliveryStatus) error
}

// CaseResolver looks cases up within the caller's tenant.
type CaseResolver interface {
	ResolveCase(ctx context.Context, tenantID, caseID string) (*CaseRef, error)
}

// IdentityResolver maps access codes and cases to reporter-facing
// records. It is the only collaborator that ever sees reporter contact
// data; nothing past this interface stores it.
type IdentityResolver interface {
	ResolveByAccessCode(ctx context.Context, code string) (*ReporterRecord, error)
	ResolveForCase(ctx context.Context, tenantID, caseID string) (*ReporterRecord, error)
}

// Dispatcher hands a job to the asynchronous notification queue.
// Retry and backoff policy belong to the queue, not the relay.
type Dispatcher interface {
	Enqueue(ctx context.Context, jobType string, payload any) error
}

// AuditEmitter publishes message events for audit/logging consumers.
// Delivery is best-effort; the relay logs and swallows failures.
type AuditEmitter interface {
	Emit(ctx context.Context, event MessageEvent) error
}

// Audit event types.
const (
	EventMessageSent     = "message.sent"
	EventMessageReceived = "message.received"
)

// MessageEvent is the side-channel audit signal emitted after a message
// is persisted. Actor is nil for anonymous (reporter) activity.
type MessageEvent struct {
	Type      string           `json:"type"`
	CaseID    string           `json:"case_id"`
	MessageID string           `json:"message_id"`
	Actor     *string          `json:"actor,omitempty"`
	Direction models.Direction `json:"direction"`
}

// JobReporterMessage is the queue job type for reporter notifications.
const JobReporterMessage = "reporter.new_message"

// NewMessageJob tells the reporter that something new is waiting on their
// case. It structurally has no field for message content or subject: the
// reporter retrieves the message out-of-band with their access code.
type NewMessageJob struct {
	CaseID          string `json:"case_id"`
	TenantID        string `json:"tenant_id"`
	CaseReference   string `json:"case_reference"`
	StatusCheckPath string `json:"status_check_path"`
}
