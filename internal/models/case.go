package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Case is the minimal view of a compliance case that the relay needs:
// an identifier and the human-facing reference number. The full case
// lifecycle (triage, remediation, saved views) is owned elsewhere.
type Case struct {
	ID              string    `gorm:"primaryKey" json:"id"`
	TenantID        string    `gorm:"type:uuid;not null;uniqueIndex:idx_tenant_reference" json:"tenant_id"`
	ReferenceNumber string    `gorm:"not null;uniqueIndex:idx_tenant_reference" json:"reference_number"`
	CreatedAt       time.Time `json:"created_at"`
}

func (c *Case) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return
}
