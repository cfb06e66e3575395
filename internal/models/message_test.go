package models_test

import (
	"testing"

	"speakup/backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// TestMessageBeforeCreate_GeneratesUUID verifies that the BeforeCreate hook generates a valid UUID.
func TestMessageBeforeCreate_GeneratesUUID(t *testing.T) {
	// Arrange
	msg := &models.Message{
		CaseID:         uuid.New().String(),
		TenantID:       uuid.New().String(),
		Direction:      models.DirectionOutbound,
		Sender:         models.SenderInvestigator,
		Body:           "hello",
		DeliveryStatus: models.DeliveryPending,
	}

	assert.Empty(t, msg.ID, "Message ID should be empty before BeforeCreate")

	// Act - Call the hook directly (GORM would call this automatically)
	err := msg.BeforeCreate(nil)

	// Assert
	assert.NoError(t, err)
	assert.NotEmpty(t, msg.ID)

	parsed, parseErr := uuid.Parse(msg.ID)
	assert.NoError(t, parseErr, "Message ID must be a valid UUID string")
	assert.NotEqual(t, uuid.Nil, parsed)
}

// TestMessageBeforeCreate_PreservesExistingID verifies that the hook doesn't overwrite an existing ID.
func TestMessageBeforeCreate_PreservesExistingID(t *testing.T) {
	existingID := uuid.New().String()
	msg := &models.Message{ID: existingID, Body: "hello"}

	err := msg.BeforeCreate(nil)

	assert.NoError(t, err)
	assert.Equal(t, existingID, msg.ID)
}

// TestMessageAuthor verifies the authorship projection for both message kinds.
func TestMessageAuthor(t *testing.T) {
	investigator := "inv-42"

	outbound := &models.Message{Direction: models.DirectionOutbound, CreatedBy: &investigator}
	author := outbound.Author()
	assert.False(t, author.Anonymous)
	assert.Equal(t, "inv-42", author.UserID)

	inbound := &models.Message{Direction: models.DirectionInbound}
	author = inbound.Author()
	assert.True(t, author.Anonymous)
	assert.Empty(t, author.UserID)
}
