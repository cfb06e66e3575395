package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Direction tells which way a message crossed the relay channel.
type Direction string

const (
	// DirectionInbound is a message from the anonymous reporter.
	DirectionInbound Direction = "INBOUND"
	// DirectionOutbound is a message to the reporter.
	DirectionOutbound Direction = "OUTBOUND"
)

// SenderClass identifies which party wrote a message.
type SenderClass string

const (
	SenderInvestigator SenderClass = "INVESTIGATOR"
	SenderReporter     SenderClass = "REPORTER"
)

// DeliveryStatus tracks the outbound notification hand-off.
// PENDING is the initial state; SENT and FAILED are terminal.
// Read tracking is a separate flag and never moves this status.
type DeliveryStatus string

const (
	DeliveryPending DeliveryStatus = "PENDING"
	DeliverySent    DeliveryStatus = "SENT"
	DeliveryFailed  DeliveryStatus = "FAILED"
)

// Message is one unit of communication on a case's relay channel.
//
// By construction it carries no reporter-identifying attribute: the
// reporter's contact channel lives on a separate record in the identity
// package and has no representation here. The barrier is structural,
// not a field-level filter.
type Message struct {
	ID       string `gorm:"primaryKey" json:"id"`
	CaseID   string `gorm:"type:uuid;not null;index:idx_case_messages" json:"case_id"`
	TenantID string `gorm:"type:uuid;not null;index:idx_case_messages" json:"tenant_id"`

	// Direction is fixed at creation and never mutated.
	Direction Direction   `gorm:"type:text;not null" json:"direction"`
	Sender    SenderClass `gorm:"type:text;not null" json:"sender"`

	Body    string  `gorm:"type:text;not null" json:"body"`
	Subject *string `gorm:"type:text" json:"subject,omitempty"`

	Read   bool       `gorm:"not null;default:false" json:"read"`
	ReadAt *time.Time `json:"read_at,omitempty"`
	// ReadBy is set only for INBOUND reads; the reporter side is anonymous.
	ReadBy *string `json:"read_by,omitempty"`

	DeliveryStatus DeliveryStatus `gorm:"type:text;not null" json:"delivery_status"`

	// AcknowledgedWarnings is the audit trail of PII warnings the sending
	// investigator acknowledged before an outbound send.
	AcknowledgedWarnings pq.StringArray `gorm:"type:text[]" json:"acknowledged_warnings,omitempty"`

	// CreatedBy is set only for OUTBOUND messages; inbound messages have
	// no internal author.
	CreatedBy *string   `json:"created_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate is a GORM hook that assigns a UUID when the ID is unset.
func (m *Message) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return
}

// Authorship says who wrote a message: a known investigator or the
// anonymous reporter. It replaces null-checks on CreatedBy at call sites.
type Authorship struct {
	Anonymous bool
	UserID    string
}

// Author returns the message's authorship.
func (m *Message) Author() Authorship {
	if m.CreatedBy == nil {
		return Authorship{Anonymous: true}
	}
	return Authorship{UserID: *m.CreatedBy}
}
