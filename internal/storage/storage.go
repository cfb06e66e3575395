// Package storage is the PostgreSQL persistence layer for cases and
// relay messages. It implements relay.MessageStore and relay.CaseResolver.
package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"speakup/backend/internal/models"
	"speakup/backend/internal/relay"

	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{DB: db}
}

// CreateMessage persists a new relay message.
func (s *Service) CreateMessage(ctx context.Context, msg *models.Message) error {
	return s.DB.WithContext(ctx).Create(msg).Error
}

// MessagesForCase loads every message on the case, ordered by creation
// ascending.
func (s *Service) MessagesForCase(ctx context.Context, tenantID, caseID string) ([]models.Message, error) {
	var messages []models.Message
	err := s.DB.WithContext(ctx).
		Where("tenant_id = ? AND case_id = ?", tenantID, caseID).
		Order("created_at ASC").
		Find(&messages).Error
	return messages, err
}

// MarkRead flips every unread message of the given direction on the case
// to read. A single UPDATE keeps the batch atomic: two concurrent viewers
// both converge on fully-read, never on a partial set.
func (s *Service) MarkRead(ctx context.Context, tenantID, caseID string, direction models.Direction, readBy *string, at time.Time) error {
	updates := map[string]interface{}{
		"read":    true,
		"read_at": at,
	}
	if readBy != nil {
		updates["read_by"] = *readBy
	}
	return s.DB.WithContext(ctx).
		Model(&models.Message{}).
		Where("tenant_id = ? AND case_id = ? AND direction = ? AND read = ?", tenantID, caseID, direction, false).
		Updates(updates).Error
}

// UnreadCounts returns the three independent counts for the case.
func (s *Service) UnreadCounts(ctx context.Context, tenantID, caseID string) (relay.UnreadCounts, error) {
	var counts relay.UnreadCounts
	base := func() *gorm.DB {
		return s.DB.WithContext(ctx).
			Model(&models.Message{}).
			Where("tenant_id = ? AND case_id = ?", tenantID, caseID)
	}

	if err := base().Where("direction = ? AND read = ?", models.DirectionInbound, false).
		Count(&counts.InboundUnread).Error; err != nil {
		return relay.UnreadCounts{}, err
	}
	if err := base().Where("direction = ? AND read = ?", models.DirectionOutbound, false).
		Count(&counts.OutboundUnread).Error; err != nil {
		return relay.UnreadCounts{}, err
	}
	if err := base().Count(&counts.TotalMessages).Error; err != nil {
		return relay.UnreadCounts{}, err
	}
	return counts, nil
}

// UpdateDeliveryStatus moves a message's delivery status. The from guard
// in the WHERE clause keeps SENT and FAILED terminal.
func (s *Service) UpdateDeliveryStatus(ctx context.Context, messageID string, from, to models.DeliveryStatus) error {
	res := s.DB.WithContext(ctx).
		Model(&models.Message{}).
		Where("id = ? AND delivery_status = ?", messageID, from).
		Update("delivery_status", to)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("message %s is not in status %s", messageID, from)
	}
	return nil
}

// ResolveCase finds a case within the caller's tenant.
func (s *Service) ResolveCase(ctx context.Context, tenantID, caseID string) (*relay.CaseRef, error) {
	var c models.Case
	err := s.DB.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", caseID, tenantID).
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &relay.NotFoundError{Resource: "case"}
	}
	if err != nil {
		return nil, err
	}
	return &relay.CaseRef{ID: c.ID, ReferenceNumber: c.ReferenceNumber}, nil
}

// CreateCase persists a new case. Used by intake tooling; case lifecycle
// beyond creation is owned by the case-management subsystem.
func (s *Service) CreateCase(ctx context.Context, c *models.Case) error {
	return s.DB.WithContext(ctx).Create(c).Error
}
