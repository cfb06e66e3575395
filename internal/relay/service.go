// Package relay implements the identity-protecting message channel
// between investigators and anonymous reporters. It enforces the one-way
// information barrier: reporter contact data enters through the identity
// resolver, drives notification dispatch, and never reaches a message
// record or a caller.
package relay

import (
	"context"
	"time"

	"speakup/backend/internal/config"
	"speakup/backend/internal/models"
	"speakup/backend/internal/pii"

	"github.com/sirupsen/logrus"
)

// Service orchestrates creation, retrieval and read-tracking of relay
// messages. All operations are synchronous request/response units of
// work; the service holds no mutable state and is safe for concurrent use.
type Service struct {
	store    MessageStore
	cases    CaseResolver
	identity IdentityResolver
	dispatch Dispatcher
	audit    AuditEmitter
	detector *pii.Engine
	log      *logrus.Logger
}

// NewService wires the relay over its collaborators.
func NewService(store MessageStore, cases CaseResolver, identity IdentityResolver, dispatch Dispatcher, audit AuditEmitter, detector *pii.Engine, log *logrus.Logger) *Service {
	return &Service{
		store:    store,
		cases:    cases,
		identity: identity,
		dispatch: dispatch,
		audit:    audit,
		detector: detector,
		log:      log,
	}
}

// SendInput carries an investigator's outbound message.
type SendInput struct {
	Content              string
	Subject              *string
	SkipPIICheck         bool
	AcknowledgedWarnings []string
}

// PIICheck is the advisory result of a pre-flight content scan.
type PIICheck struct {
	HasPII   bool     `json:"has_pii"`
	Warnings []string `json:"warnings"`
	Blocked  bool     `json:"blocked"`
}

// SendToReporter persists an outbound message on the case and queues a
// content-free notification for the reporter.
//
// Unless SkipPIICheck is set, the content is scanned first. Findings with
// no acknowledgment fail with a ValidationError carrying HasPII and the
// warning list; any non-empty acknowledgment list is accepted as proof of
// review (the acknowledgment is not matched against the current warnings;
// that trust sits at the UI layer).
func (s *Service) SendToReporter(ctx context.Context, tenantID, caseID, investigatorID string, in SendInput) (*models.Message, error) {
	caseRef, err := s.cases.ResolveCase(ctx, tenantID, caseID)
	if err != nil {
		return nil, err
	}

	if !in.SkipPIICheck {
		result := s.detector.Detect(in.Content)
		if result.HasPII && len(in.AcknowledgedWarnings) == 0 {
			return nil, &ValidationError{
				Reason:   "content may contain personally identifiable information",
				HasPII:   true,
				Warnings: result.Warnings,
			}
		}
	}

	msg := &models.Message{
		CaseID:               caseRef.ID,
		TenantID:             tenantID,
		Direction:            models.DirectionOutbound,
		Sender:               models.SenderInvestigator,
		Body:                 in.Content,
		Subject:              in.Subject,
		DeliveryStatus:       models.DeliveryPending,
		AcknowledgedWarnings: in.AcknowledgedWarnings,
		CreatedBy:            &investigatorID,
	}
	if err := s.store.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}

	s.notifyReporter(ctx, tenantID, caseRef, msg)

	s.emit(ctx, MessageEvent{
		Type:      EventMessageSent,
		CaseID:    caseRef.ID,
		MessageID: msg.ID,
		Actor:     &investigatorID,
		Direction: models.DirectionOutbound,
	})

	return msg, nil
}

// notifyReporter hands a content-free job to the dispatcher when the
// case has a reporter contact channel, then records the hand-off on the
// message's delivery status. The message is already persisted: a dispatch
// failure only downgrades bookkeeping, it never rolls the message back.
func (s *Service) notifyReporter(ctx context.Context, tenantID string, caseRef *CaseRef, msg *models.Message) {
	record, err := s.identity.ResolveForCase(ctx, tenantID, caseRef.ID)
	if err != nil {
		if !IsNotFound(err) {
			s.logWarn("SendToReporter", "resolve reporter record", err)
		}
		return
	}
	if record.ContactChannel == nil {
		// No contact channel: the reporter sees the message next time
		// they poll with their access code. Status stays PENDING.
		return
	}

	job := NewMessageJob{
		CaseID:          caseRef.ID,
		TenantID:        tenantID,
		CaseReference:   caseRef.ReferenceNumber,
		StatusCheckPath: config.ReporterStatusPath,
	}
	if err := s.dispatch.Enqueue(ctx, JobReporterMessage, job); err != nil {
		s.logWarn("SendToReporter", "enqueue notification", err)
		if err := s.store.UpdateDeliveryStatus(ctx, msg.ID, models.DeliveryPending, models.DeliveryFailed); err != nil {
			s.logWarn("SendToReporter", "mark delivery failed", err)
			return
		}
		msg.DeliveryStatus = models.DeliveryFailed
		return
	}

	if err := s.store.UpdateDeliveryStatus(ctx, msg.ID, models.DeliveryPending, models.DeliverySent); err != nil {
		s.logWarn("SendToReporter", "mark delivery sent", err)
		return
	}
	msg.DeliveryStatus = models.DeliverySent
}

// ReceiveFromReporter persists an inbound message submitted with an
// access code. Inbound content is never scanned for PII: the barrier
// protects the reporter, it does not police what they say about
// themselves.
func (s *Service) ReceiveFromReporter(ctx context.Context, accessCode, content string) (*models.Message, error) {
	record, err := s.identity.ResolveByAccessCode(ctx, accessCode)
	if err != nil {
		return nil, err
	}
	if record.LinkedCaseID == nil {
		// The report exists but triage has not assigned a case yet.
		// Distinct from NotFound so the caller knows to retry later.
		return nil, &ValidationError{
			Reason:    "report is not linked to a case yet, try again later",
			Retryable: true,
		}
	}

	msg := &models.Message{
		CaseID:         *record.LinkedCaseID,
		TenantID:       record.TenantID,
		Direction:      models.DirectionInbound,
		Sender:         models.SenderReporter,
		Body:           content,
		DeliveryStatus: models.DeliveryPending,
	}
	if err := s.store.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}

	s.emit(ctx, MessageEvent{
		Type:      EventMessageReceived,
		CaseID:    msg.CaseID,
		MessageID: msg.ID,
		Direction: models.DirectionInbound,
	})

	return msg, nil
}

// GetMessagesForInvestigator returns every message on the case ordered by
// creation ascending, marking all unread inbound messages as read by the
// calling investigator in one batch.
func (s *Service) GetMessagesForInvestigator(ctx context.Context, tenantID, caseID, investigatorID string) ([]models.Message, error) {
	caseRef, err := s.cases.ResolveCase(ctx, tenantID, caseID)
	if err != nil {
		return nil, err
	}

	messages, err := s.store.MessagesForCase(ctx, tenantID, caseRef.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.store.MarkRead(ctx, tenantID, caseRef.ID, models.DirectionInbound, &investigatorID, now); err != nil {
		return nil, err
	}
	reflectRead(messages, models.DirectionInbound, &investigatorID, now)

	return messages, nil
}

// GetMessagesForReporter resolves the access code and returns the linked
// case's messages, marking unread outbound messages as read with no
// reader identity. An unlinked report returns an empty list rather than
// an error, so probing a code reveals nothing about triage timing.
func (s *Service) GetMessagesForReporter(ctx context.Context, accessCode string) ([]models.Message, error) {
	record, err := s.identity.ResolveByAccessCode(ctx, accessCode)
	if err != nil {
		return nil, err
	}
	if record.LinkedCaseID == nil {
		return []models.Message{}, nil
	}

	messages, err := s.store.MessagesForCase(ctx, record.TenantID, *record.LinkedCaseID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.store.MarkRead(ctx, record.TenantID, *record.LinkedCaseID, models.DirectionOutbound, nil, now); err != nil {
		return nil, err
	}
	reflectRead(messages, models.DirectionOutbound, nil, now)

	return messages, nil
}

// GetUnreadCount returns the per-direction unread tallies for the case.
// No state is mutated.
func (s *Service) GetUnreadCount(ctx context.Context, tenantID, caseID string) (UnreadCounts, error) {
	caseRef, err := s.cases.ResolveCase(ctx, tenantID, caseID)
	if err != nil {
		return UnreadCounts{}, err
	}
	return s.store.UnreadCounts(ctx, tenantID, caseRef.ID)
}

// CheckForPII is a pure pre-flight scan for interactive validation. It
// performs no persistence and never blocks a send; the authoritative
// check lives in SendToReporter.
func (s *Service) CheckForPII(content string) PIICheck {
	result := s.detector.Detect(content)
	return PIICheck{
		HasPII:   result.HasPII,
		Warnings: result.Warnings,
		Blocked:  false,
	}
}

// reflectRead applies the batch read-mark to the already-loaded slice so
// the returned view matches what was just written.
func reflectRead(messages []models.Message, direction models.Direction, readBy *string, at time.Time) {
	for i := range messages {
		if messages[i].Direction == direction && !messages[i].Read {
			messages[i].Read = true
			messages[i].ReadAt = &at
			messages[i].ReadBy = readBy
		}
	}
}

// emit publishes the audit signal. Failures are logged and swallowed;
// they never fail the primary operation.
func (s *Service) emit(ctx context.Context, event MessageEvent) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Emit(ctx, event); err != nil {
		s.logWarn("emit", event.Type, err)
	}
}

func (s *Service) logWarn(funcName, context string, err error) {
	if s.log == nil {
		return
	}
	s.log.WithFields(logrus.Fields{
		"module":   "relay",
		"funcName": funcName,
		"context":  context,
	}).Warn(err.Error())
}
