// Package identity owns the reporter-facing records: the opaque access
// code a reporter authenticates with and their private contact channel.
// Nothing outside this package persists or reads reporter contact data;
// the relay only ever receives the narrow relay.ReporterRecord view.
package identity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReporterRecord is the persisted reporter-facing record. It is a
// distinct type from models.Message with no shared representation, so a
// future field addition on either side cannot leak contact data across
// the barrier.
type ReporterRecord struct {
	ID         string `gorm:"primaryKey"`
	TenantID   string `gorm:"type:uuid;not null;index"`
	AccessCode string `gorm:"uniqueIndex;not null"`

	// LinkedCaseID is nil until triage assigns the report to a case.
	LinkedCaseID *string `gorm:"type:uuid;index"`

	// ContactEmail is the reporter's private notification channel.
	// Optional: a reporter may choose to stay poll-only.
	ContactEmail *string

	CreatedAt time.Time
}

// BeforeCreate is a GORM hook that assigns a UUID when the ID is unset.
func (r *ReporterRecord) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return
}
