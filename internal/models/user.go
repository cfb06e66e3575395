package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an investigator account. Only the identity needed for message
// authorship and read attribution lives here; account management is a
// separate subsystem.
type User struct {
	ID          string `gorm:"primaryKey" json:"id"`
	TenantID    string `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Email       string `gorm:"uniqueIndex;not null" json:"email"`
	DisplayName string `json:"display_name"`
}

// BeforeCreate is a GORM hook that assigns a UUID when the ID is unset.
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}
